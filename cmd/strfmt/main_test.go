package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRun(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		args []string
		want string
	}{
		"scalars": {
			args: []string{"%s %dSX SR%dDE%s", "日産", "180", "20", "T"},
			want: "日産 180SX SR20DET\n",
		},
		"flow list": {
			args: []string{"%d,%d,%d", "[4, 5, 6]"},
			want: "4,5,6\n",
		},
		"flow mapping": {
			args: []string{"%s=%d", "{FR: 1848000}"},
			want: "FR=1848000\n",
		},
		"block syntax stays text": {
			args: []string{"%s", "a: b"},
			want: "a: b\n",
		},
		"null": {
			args: []string{"%d,%d", "1", "~"},
			want: "1,(null)\n",
		},
		"sentinel flag": {
			args: []string{"--sentinel", "<nil>", "%s", "null"},
			want: "<nil>\n",
		},
		"no newline": {
			args: []string{"-n", "%s", "x"},
			want: "x",
		},
		"lang": {
			args: []string{"--lang", "en", "%d", "1848000"},
			want: "1,848,000\n",
		},
		"display width": {
			args: []string{"--display-width", "[%-6s]", "日産"},
			want: "[日産  ]\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunArgsFile(t *testing.T) {
	t.Parallel()
	packed, err := msgpack.Marshal([]any{1, "x"})
	require.NoError(t, err)
	tests := map[string]struct {
		name   string
		data   []byte
		format string
		want   string
	}{
		"yaml keeps key order": {
			name:   "car.yaml",
			data:   []byte("model: RPS13\ndisplacement: 1998\n"),
			format: "%s=%s %s=%d",
			want:   "model=RPS13 displacement=1998\n",
		},
		"json keeps key order": {
			name:   "car.json",
			data:   []byte(`{"b": 1, "a": [2, 3]}`),
			format: "%s %d %s %d %d",
			want:   "b 1 a 2 3\n",
		},
		"toml": {
			name:   "car.toml",
			data:   []byte("name = \"FR\"\nprice = 1848000\n"),
			format: "%s=%s %s=%d",
			want:   "name=FR price=1848000\n",
		},
		"msgpack": {
			name:   "args.msgpack",
			data:   packed,
			format: "%d %s",
			want:   "1 x\n",
		},
		"multiple yaml documents": {
			name:   "docs.yml",
			data:   []byte("1\n---\n[2, 3]\n"),
			format: "%d %d %d",
			want:   "1 2 3\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, tt.name, tt.data)
			got, err := execute(t, "", "--args", path, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunArgsAfterPositional(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "rest.yaml", []byte("[2, 3]\n"))
	got, err := execute(t, "", "--args", path, "%d %d %d", "1")
	require.NoError(t, err)
	assert.Equal(t, "1 2 3\n", got)
}

func TestRunArgsStdin(t *testing.T) {
	t.Parallel()
	got, err := execute(t, "- 1\n- 2\n", "--args", "-", "%d+%d")
	require.NoError(t, err)
	assert.Equal(t, "1+2\n", got)
}

func TestRunPipedStdin(t *testing.T) {
	t.Parallel()
	got, err := execute(t, "[2, 3]\n", "%d %d %d", "1")
	require.NoError(t, err)
	assert.Equal(t, "1 2 3\n", got)

	got, err = execute(t, "k = 4\n", "--encoding", "toml", "%s=%d")
	require.NoError(t, err)
	assert.Equal(t, "k=4\n", got)
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()
	assert.False(t, isTerminal(strings.NewReader("x")))
	f, err := os.Open(writeFile(t, "plain.txt", []byte("x")))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}

func TestRunArgsEncodingOverride(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "args.txt", []byte("k = 1\n"))
	got, err := execute(t, "", "--args", path, "--encoding", "toml", "%s:%d")
	require.NoError(t, err)
	assert.Equal(t, "k:1\n", got)
}

func TestRunConfigFile(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "strfmt.toml", []byte("sentinel = \"NULL\"\n"))
	got, err := execute(t, "", "--config", path, "%s", "~")
	require.NoError(t, err)
	assert.Equal(t, "NULL\n", got)

	got, err = execute(t, "", "--config", path, "--sentinel", "flag", "%s", "~")
	require.NoError(t, err)
	assert.Equal(t, "flag\n", got)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()
	badConfig := writeFile(t, "bad.toml", []byte("color = \"red\"\n"))
	tests := map[string]struct {
		args []string
		want string
	}{
		"no format":      {args: []string{}, want: "requires at least 1 arg"},
		"bad encoding":   {args: []string{"--args", "-", "--encoding", "xml", "%s"}, want: "unsupported encoding"},
		"missing file":   {args: []string{"--args", "/nonexistent/args.yaml", "%s"}, want: "failed to open args file"},
		"bad lang":       {args: []string{"--lang", "!!", "%s"}, want: "lang"},
		"unknown config": {args: []string{"--config", badConfig, "%s"}, want: "unknown key"},
		"missing config": {args: []string{"--config", "/nonexistent/strfmt.toml", "%s"}, want: "failed to parse TOML"},
		"depth limit":    {args: []string{"--max-depth", "1", "%v", "[[[1]]]"}, want: "nested too deeply"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// Not parallel: t.Setenv.
func TestRunEnv(t *testing.T) {
	t.Setenv("STRFMT_SENTINEL", "from-env")
	got, err := execute(t, "", "%s", "~")
	require.NoError(t, err)
	assert.Equal(t, "from-env\n", got)

	got, err = execute(t, "", "--sentinel", "from-flag", "%s", "~")
	require.NoError(t, err)
	assert.Equal(t, "from-flag\n", got)
}
