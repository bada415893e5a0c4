// Command strfmt formats its arguments with a printf-style format string,
// flattening lists, maps and documents into individual directives.
//
//	strfmt '%s %dSX SR%dDE%s' 日産 180 20 T
//	strfmt --args car.yaml '形式:%s 排気量:%dcc'
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bjaus/strfmt"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strfmt FORMAT [ARG...]",
		Short: "Format arguments with a printf-style format string",
		Long: `strfmt binds each directive of FORMAT to the next flattened argument.
Arguments are read as YAML values, so 180 is a number and [1, 2] is a list.
Numbers with a leading zero or a 0x, 0o or 0b prefix (007, 0x1F) stay text.
Lists, maps and documents given with --args expand into their elements.
Piped stdin is read as an argument document when --args is not given.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	cmd.Flags().String("args", "", "read extra arguments from a document file (- for stdin)")
	cmd.Flags().String("encoding", "", "argument document encoding (yaml|json|toml|msgpack)")
	cmd.Flags().String("config", "", "TOML config file")
	cmd.Flags().String("sentinel", strfmt.DefaultSentinel, "text rendered for null values")
	cmd.Flags().String("lang", "", "BCP 47 language tag for locale-aware numbers")
	cmd.Flags().Bool("display-width", false, "pad strings by terminal column width")
	cmd.Flags().Int("max-depth", strfmt.DefaultMaxDepth, "maximum nesting depth")
	cmd.Flags().BoolP("no-newline", "n", false, "do not print the trailing newline")
	cmd.Flags().BoolP("verbose", "v", false, "log debug details to stderr")
	return cmd
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.Disabled
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger().Level(level)
}

func run(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	verbose, _ := flags.GetBool("verbose")
	log := newLogger(cmd.ErrOrStderr(), verbose)

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log.Debug().
		Str("sentinel", cfg.Sentinel).
		Str("lang", cfg.Lang).
		Bool("display_width", cfg.DisplayWidth).
		Int("max_depth", cfg.MaxDepth).
		Msg("config resolved")

	opts, err := cfg.options()
	if err != nil {
		return err
	}
	f := strfmt.New(opts...)

	values := make([]any, 0, len(args)-1)
	for _, a := range args[1:] {
		values = append(values, parseArg(a))
	}
	docs, err := readArgsFlag(cmd, log)
	if err != nil {
		return err
	}
	values = append(values, docs...)

	if verbose {
		leaves, err := f.Flatten(values...)
		if err == nil {
			log.Debug().Int("args", len(values)).Int("leaves", len(leaves)).Msg("flattened")
		}
	}

	out, err := f.Format(args[0], values...)
	if err != nil {
		return err
	}
	if noNewline, _ := flags.GetBool("no-newline"); !noNewline {
		out += "\n"
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func resolveConfig(cmd *cobra.Command) (config, error) {
	flags := cmd.Flags()
	cfg := defaultConfig()
	if path, _ := flags.GetString("config"); path != "" {
		if err := loadConfigFile(&cfg, path); err != nil {
			return cfg, err
		}
	}
	if err := loadEnv(&cfg); err != nil {
		return cfg, err
	}
	if flags.Changed("sentinel") {
		cfg.Sentinel, _ = flags.GetString("sentinel")
	}
	if flags.Changed("lang") {
		cfg.Lang, _ = flags.GetString("lang")
	}
	if flags.Changed("display-width") {
		cfg.DisplayWidth, _ = flags.GetBool("display-width")
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth, _ = flags.GetInt("max-depth")
	}
	return cfg, nil
}

func readArgsFlag(cmd *cobra.Command, log zerolog.Logger) ([]any, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("args")
	enc := encodingFor(path)
	if name, _ := flags.GetString("encoding"); name != "" {
		var err error
		if enc, err = ParseEncoding(name); err != nil {
			return nil, err
		}
	}
	in := cmd.InOrStdin()
	switch path {
	case "":
		if isTerminal(in) {
			return nil, nil
		}
		log.Debug().Stringer("encoding", enc).Msg("reading arguments from piped stdin")
		return decodeArgs(in, enc)
	case "-":
		if isTerminal(in) {
			log.Debug().Msg("reading arguments from terminal, end with Ctrl-D")
		}
		return decodeArgs(in, enc)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open args file: %w", err)
	}
	defer file.Close()
	log.Debug().Str("path", path).Stringer("encoding", enc).Msg("reading argument document")
	return decodeArgs(file, enc)
}

// isTerminal reports whether r is an interactive terminal. Readers that are
// not files count as piped input.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "strfmt: %v\n", err)
		os.Exit(1)
	}
}
