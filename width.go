package strfmt

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/mattn/go-runewidth"
)

// displayString is a string leaf padded and truncated by terminal column
// width rather than rune count.
type displayString string

func (d displayString) Format(s fmt.State, verb rune) {
	if (verb != 's' && verb != 'v') || s.Flag('#') {
		_, _ = fmt.Fprintf(s, fmt.FormatString(s, verb), string(d))
		return
	}
	str := string(d)
	if prec, ok := s.Precision(); ok && runewidth.StringWidth(str) > prec {
		str = runewidth.Truncate(str, prec, "")
	}
	if width, ok := s.Width(); ok {
		str = padCell(str, width, s.Flag('-'))
	}
	_, _ = io.WriteString(s, str)
}

// display wraps the text leaves so width and precision count terminal
// columns. Flattened leaves keep their own types; the wrapping happens only
// on the way to the printer.
func (f *Formatter) display(leaves []any) []any {
	if !f.displayWidth {
		return leaves
	}
	out := make([]any, len(leaves))
	for i, x := range leaves {
		out[i] = displayLeaf(x)
	}
	return out
}

func displayLeaf(x any) any {
	switch s := x.(type) {
	case WString:
		return displayString(s.String())
	case fmt.Formatter, fmt.Stringer, fmt.GoStringer, error:
		return x
	}
	if v := reflect.ValueOf(x); v.Kind() == reflect.String {
		return displayString(v.String())
	}
	return x
}

func padCell(s string, width int, left bool) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	if left {
		return s + strings.Repeat(" ", pad)
	}
	return strings.Repeat(" ", pad) + s
}
