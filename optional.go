package strfmt

import (
	"fmt"
	"io"
)

// Maybe is implemented by optional-like values. Maybe reports the held value
// and whether it is present.
type Maybe interface {
	Maybe() (any, bool)
}

// Optional holds zero or one value of type T.
// The zero Optional is absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, ok: true} }

// None returns an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// OptionalOf returns an Optional holding *p, or an absent one when p is nil.
func OptionalOf[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get returns the held value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

// IsPresent reports whether o holds a value.
func (o Optional[T]) IsPresent() bool { return o.ok }

// OrElse returns the held value, or fallback when absent.
func (o Optional[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// Maybe implements [Maybe].
func (o Optional[T]) Maybe() (any, bool) { return o.value, o.ok }

// Pair holds two values that flatten as First then Second.
type Pair[A, B any] struct {
	First  A
	Second B
}

// MakePair returns Pair{a, b}.
func MakePair[A, B any](a A, b B) Pair[A, B] { return Pair[A, B]{First: a, Second: b} }

// Null is the leaf substituted for absent values. It renders its text for
// every verb, honoring only width and the '-' flag.
type Null string

// Format implements [fmt.Formatter].
func (n Null) Format(s fmt.State, _ rune) {
	width, ok := s.Width()
	switch {
	case !ok:
		_, _ = io.WriteString(s, string(n))
	case s.Flag('-'):
		_, _ = fmt.Fprintf(s, "%-*s", width, string(n))
	default:
		_, _ = fmt.Fprintf(s, "%*s", width, string(n))
	}
}
