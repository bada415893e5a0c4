package strfmt

import (
	"fmt"
	"unicode/utf16"
)

// WString is a wide (UTF-16) string. It flattens as a single leaf and keeps
// its type through flattening.
type WString []uint16

// W encodes s as a WString.
func W(s string) WString { return WString(utf16.Encode([]rune(s))) }

// String decodes w to UTF-8.
func (w WString) String() string { return string(utf16.Decode(w)) }

// Format implements [fmt.Formatter]. Text verbs render the decoded string;
// other verbs are reported the way fmt reports a bad verb.
func (w WString) Format(s fmt.State, verb rune) {
	switch verb {
	case 's', 'v', 'q', 'x', 'X':
		_, _ = fmt.Fprintf(s, fmt.FormatString(s, verb), w.String())
	default:
		_, _ = fmt.Fprintf(s, "%%!%c(strfmt.WString=%s)", verb, w.String())
	}
}
