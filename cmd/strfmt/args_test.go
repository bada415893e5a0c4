package main

import (
	"strings"
	"testing"

	"github.com/bjaus/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseEncoding(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    Encoding
		wantErr require.ErrorAssertionFunc
	}{
		"yaml":    {input: "yaml", want: YAML, wantErr: require.NoError},
		"yml":     {input: "yml", want: YAML, wantErr: require.NoError},
		"json":    {input: "JSON", want: JSON, wantErr: require.NoError},
		"toml":    {input: "toml", want: TOML, wantErr: require.NoError},
		"msgpack": {input: "msgpack", want: Msgpack, wantErr: require.NoError},
		"mpk":     {input: "mpk", want: Msgpack, wantErr: require.NoError},
		"unknown": {input: "xml", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseEncoding(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodingFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, JSON, encodingFor("a/b.json"))
	assert.Equal(t, TOML, encodingFor("b.toml"))
	assert.Equal(t, Msgpack, encodingFor("b.mpk"))
	assert.Equal(t, YAML, encodingFor("b.txt"))
	assert.Equal(t, YAML, encodingFor("-"))
	assert.Equal(t, "toml", TOML.String())
}

func TestParseArg(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  []any
	}{
		"int":          {input: "180", want: []any{180}},
		"float":        {input: "11.8", want: []any{11.8}},
		"bool":         {input: "true", want: []any{true}},
		"text":         {input: "日産", want: []any{"日産"}},
		"quoted":       {input: `"180"`, want: []any{"180"}},
		"flow list":    {input: "[1, [2, 3]]", want: []any{1, 2, 3}},
		"block map":    {input: "a: b", want: []any{"a: b"}},
		"dash":         {input: "-", want: []any{"-"}},
		"empty":        {input: "", want: []any{""}},
		"comment only": {input: "# x", want: []any{"# x"}},
		"invalid":      {input: "[1,", want: []any{"[1,"}},
		"leading zero": {input: "007", want: []any{"007"}},
		"hex":          {input: "0x1F", want: []any{"0x1F"}},
		"signed octal": {input: "-01234", want: []any{"-01234"}},
		"zero":         {input: "0", want: []any{0}},
		"fraction":     {input: "0.5", want: []any{0.5}},
		"flow ids":     {input: "[007, 12]", want: []any{"007", 12}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := strfmt.Flatten(parseArg(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeArgsYAMLReturnsNodes(t *testing.T) {
	t.Parallel()
	args, err := decodeArgs(strings.NewReader("a: 1\n---\nb: 2\n"), YAML)
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.IsType(t, &yaml.Node{}, args[0])
}

func TestDecodeArgsTOMLOrder(t *testing.T) {
	t.Parallel()
	args, err := decodeArgs(strings.NewReader("z = 1\na = 2\n[t]\nk = 3\n"), TOML)
	require.NoError(t, err)
	got, err := strfmt.Flatten(args...)
	require.NoError(t, err)
	assert.Equal(t, []any{"z", int64(1), "a", int64(2), "t", "k", int64(3)}, got)
}

func TestDecodeArgsErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		enc   Encoding
	}{
		"yaml":    {input: "a: [1", enc: YAML},
		"toml":    {input: "a = ", enc: TOML},
		"msgpack": {input: "\xc1", enc: Msgpack},
		"unknown": {input: "", enc: Encoding("xml")},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := decodeArgs(strings.NewReader(tt.input), tt.enc)
			require.Error(t, err)
		})
	}
}
