package strfmt

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedType = errors.New("unsupported argument type")
	ErrTooDeep         = errors.New("argument nested too deeply")
)

// DefaultSentinel is the text rendered for absent optionals and nil pointers.
const DefaultSentinel = "(null)"

// DefaultMaxDepth bounds how deep flattening descends into one argument.
const DefaultMaxDepth = 64

// Printer is the positional format engine leaves are handed to.
type Printer interface {
	Sprintf(format string, args ...any) string
}

// PrinterFunc adapts a plain function to [Printer].
type PrinterFunc func(format string, args ...any) string

// Sprintf calls fn.
func (fn PrinterFunc) Sprintf(format string, args ...any) string { return fn(format, args...) }

type languagePrinter struct {
	p *message.Printer
}

func (lp languagePrinter) Sprintf(format string, args ...any) string {
	return lp.p.Sprintf(format, args...)
}

// Formatter flattens arguments and renders them with a [Printer].
// A Formatter is immutable and safe for concurrent use.
type Formatter struct {
	printer      Printer
	custom       bool
	sentinel     Null
	displayWidth bool
	maxDepth     int
}

// Option configures a [Formatter].
type Option func(*Formatter)

// WithSentinel sets the text rendered for absent values.
// Default: [DefaultSentinel].
func WithSentinel(s string) Option {
	return func(f *Formatter) { f.sentinel = Null(s) }
}

// WithPrinter replaces the underlying format engine.
// Default: [fmt.Sprintf].
func WithPrinter(p Printer) Option {
	return func(f *Formatter) {
		if p != nil {
			f.printer = p
			f.custom = true
		}
	}
}

// WithLanguage renders through a golang.org/x/text/message printer for tag,
// which localizes number formatting (digit grouping, decimal marks).
func WithLanguage(tag language.Tag) Option {
	return WithPrinter(languagePrinter{p: message.NewPrinter(tag)})
}

// WithDisplayWidth makes %s and %v pad and truncate strings by terminal
// column width instead of rune count, so full-width characters line up.
func WithDisplayWidth(enabled bool) Option {
	return func(f *Formatter) { f.displayWidth = enabled }
}

// WithMaxDepth bounds nesting depth. Values below 1 are ignored.
// Default: [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(f *Formatter) {
		if depth > 0 {
			f.maxDepth = depth
		}
	}
}

// New returns a Formatter configured by opts.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		printer:  PrinterFunc(fmt.Sprintf),
		sentinel: DefaultSentinel,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

var std = New()

// Sentinel returns the leaf substituted for absent values.
func (f *Formatter) Sentinel() Null { return f.sentinel }

// Format flattens args and renders them into format. It fails with
// [ErrUnsupportedType] or [ErrTooDeep] before anything is rendered.
func (f *Formatter) Format(format string, args ...any) (string, error) {
	if err := Check(args...); err != nil {
		return "", err
	}
	leaves, err := f.Flatten(args...)
	if err != nil {
		return "", err
	}
	return f.printer.Sprintf(format, f.display(leaves)...), nil
}

// Sprintf is like [Formatter.Format] but reports errors in band.
func (f *Formatter) Sprintf(format string, args ...any) string {
	s, err := f.Format(format, args...)
	if err != nil {
		return badArg(err)
	}
	return s
}

// Fprintf formats and writes to w.
func (f *Formatter) Fprintf(w io.Writer, format string, args ...any) (int, error) {
	s, err := f.Format(format, args...)
	if err != nil {
		return 0, err
	}
	return io.WriteString(w, s)
}

// Errorf formats into an error. With the default printer it goes through
// [fmt.Errorf], so %w wraps error leaves.
func (f *Formatter) Errorf(format string, args ...any) error {
	if err := Check(args...); err != nil {
		return errors.New(badArg(err))
	}
	leaves, err := f.Flatten(args...)
	if err != nil {
		return errors.New(badArg(err))
	}
	leaves = f.display(leaves)
	if f.custom {
		return errors.New(f.printer.Sprintf(format, leaves...))
	}
	return fmt.Errorf(format, leaves...)
}

// WFormat is [Formatter.Format] for a wide format string.
func (f *Formatter) WFormat(format WString, args ...any) (WString, error) {
	s, err := f.Format(format.String(), args...)
	if err != nil {
		return nil, err
	}
	return W(s), nil
}

// WSprintf is [Formatter.Sprintf] for a wide format string.
func (f *Formatter) WSprintf(format WString, args ...any) WString {
	return W(f.Sprintf(format.String(), args...))
}

// Flatten returns the leaves of args in order.
func (f *Formatter) Flatten(args ...any) ([]any, error) {
	var out []any
	for leaf, err := range f.Leaves(args...) {
		if err != nil {
			return nil, err
		}
		out = append(out, leaf)
	}
	return out, nil
}

// Leaves yields the leaves of args in order. A classification error is
// yielded once with a nil leaf and ends the sequence.
func (f *Formatter) Leaves(args ...any) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		w := walker{f: f, yield: func(leaf any) bool { return yield(leaf, nil) }}
		for _, arg := range args {
			if err := w.walkArg(arg); err != nil {
				if !errors.Is(err, errStop) {
					yield(nil, err)
				}
				return
			}
		}
	}
}

func badArg(err error) string {
	return "%!(BADARG " + err.Error() + ")"
}

// Format flattens args and renders them into format using the default
// [Formatter].
func Format(format string, args ...any) (string, error) { return std.Format(format, args...) }

// Sprintf formats using the default [Formatter].
func Sprintf(format string, args ...any) string { return std.Sprintf(format, args...) }

// Fprintf formats using the default [Formatter] and writes to w.
func Fprintf(w io.Writer, format string, args ...any) (int, error) {
	return std.Fprintf(w, format, args...)
}

// Errorf formats into an error using the default [Formatter].
func Errorf(format string, args ...any) error { return std.Errorf(format, args...) }

// WFormat formats a wide format string using the default [Formatter].
func WFormat(format WString, args ...any) (WString, error) { return std.WFormat(format, args...) }

// WSprintf formats a wide format string using the default [Formatter].
func WSprintf(format WString, args ...any) WString { return std.WSprintf(format, args...) }

// Flatten returns the leaves of args using the default [Formatter].
func Flatten(args ...any) ([]any, error) { return std.Flatten(args...) }

// Leaves yields the leaves of args using the default [Formatter].
func Leaves(args ...any) iter.Seq2[any, error] { return std.Leaves(args...) }
