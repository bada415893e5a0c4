package strfmt

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Shape is the expansion strategy selected for a type.
type Shape int

const (
	ShapeUnsupported Shape = iota
	ShapeLeaf
	ShapeOptional
	ShapePointer
	ShapePair
	ShapeTuple
	ShapeIterable
)

var shapeNames = map[Shape]string{
	ShapeUnsupported: "unsupported",
	ShapeLeaf:        "leaf",
	ShapeOptional:    "optional",
	ShapePointer:     "pointer",
	ShapePair:        "pair",
	ShapeTuple:       "tuple",
	ShapeIterable:    "iterable",
}

// String returns the shape name.
func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

var (
	formatterType  = reflect.TypeFor[fmt.Formatter]()
	stringerType   = reflect.TypeFor[fmt.Stringer]()
	goStringerType = reflect.TypeFor[fmt.GoStringer]()
	errorType      = reflect.TypeFor[error]()
	maybeType      = reflect.TypeFor[Maybe]()
	valuerType     = reflect.TypeFor[driver.Valuer]()
	yamlNodeType   = reflect.TypeFor[yaml.Node]()
)

// Classify returns the shape of T.
func Classify[T any]() Shape {
	return ClassifyType(reflect.TypeFor[T]())
}

// ClassifyType returns the shape of t. A nil type is the type of an untyped
// nil argument and classifies as [ShapePointer].
func ClassifyType(t reflect.Type) Shape {
	switch {
	case t == nil:
		return ShapePointer
	case isLeaf(t):
		return ShapeLeaf
	case t.Implements(maybeType), t.Implements(valuerType):
		return ShapeOptional
	case t.Kind() == reflect.Pointer, t.Kind() == reflect.Interface, isWeakPointer(t):
		return ShapePointer
	case t == yamlNodeType:
		// Node's exported fields are parser bookkeeping; enumerate the document.
		return ShapeIterable
	case isPair(t):
		return ShapePair
	case t.Kind() == reflect.Struct:
		return ShapeTuple
	case isIterable(t):
		return ShapeIterable
	default:
		return ShapeUnsupported
	}
}

func isLeaf(t reflect.Type) bool {
	if t.Implements(formatterType) || t.Implements(stringerType) ||
		t.Implements(goStringerType) || t.Implements(errorType) {
		return true
	}
	switch k := t.Kind(); {
	case k >= reflect.Bool && k <= reflect.Complex128:
		return true
	case k == reflect.String, k == reflect.UnsafePointer:
		return true
	case k == reflect.Slice:
		return t.Elem().Kind() == reflect.Uint8
	}
	return false
}

func isWeakPointer(t reflect.Type) bool {
	return t.PkgPath() == "weak" && strings.HasPrefix(t.Name(), "Pointer[")
}

func isPair(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	fields := visibleFields(t)
	return len(fields) == 2 &&
		t.Field(fields[0]).Name == "First" &&
		t.Field(fields[1]).Name == "Second"
}

func isIterable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	case reflect.Func:
		return t.CanSeq() || t.CanSeq2()
	}
	return false
}

// visibleFields returns the indexes of the struct fields that take part in
// flattening: exported fields and embedded structs, or pointers to them,
// whose own exported fields are promoted. A nil embedded pointer flattens to
// the sentinel.
func visibleFields(t reflect.Type) []int {
	var idx []int
	for i := range t.NumField() {
		f := t.Field(i)
		switch {
		case f.IsExported():
			idx = append(idx, i)
		case f.Anonymous:
			if promotes(f.Type) {
				idx = append(idx, i)
			}
		}
	}
	return idx
}

func promotes(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	s := ClassifyType(t)
	return s == ShapeTuple || s == ShapePair
}

// IsSupported reports whether every value of type T can be flattened.
// Types reached through interfaces are only known at call time and are not
// checked here.
func IsSupported[T any]() bool {
	return checkType(reflect.TypeFor[T](), map[reflect.Type]bool{}) == nil
}

// Check reports an [ErrUnsupportedType] error for the first argument whose
// static type graph contains a type without a shape.
func Check(args ...any) error {
	seen := map[reflect.Type]bool{}
	for i, arg := range args {
		if err := checkType(reflect.TypeOf(arg), seen); err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
	}
	return nil
}

func checkType(t reflect.Type, seen map[reflect.Type]bool) error {
	if t == nil || seen[t] {
		return nil
	}
	seen[t] = true
	switch ClassifyType(t) {
	case ShapeUnsupported:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	case ShapePointer:
		if t.Kind() == reflect.Pointer {
			return checkType(t.Elem(), seen)
		}
	case ShapePair, ShapeTuple:
		for _, i := range visibleFields(t) {
			if err := checkType(t.Field(i).Type, seen); err != nil {
				return err
			}
		}
	case ShapeIterable:
		return checkIterable(t, seen)
	}
	return nil
}

func checkIterable(t reflect.Type, seen map[reflect.Type]bool) error {
	var elems []reflect.Type
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		elems = append(elems, t.Elem())
	case reflect.Map:
		elems = append(elems, t.Key(), t.Elem())
	case reflect.Func:
		yield := t.In(0)
		for i := range yield.NumIn() {
			elems = append(elems, yield.In(i))
		}
	}
	for _, e := range elems {
		if err := checkType(e, seen); err != nil {
			return err
		}
	}
	return nil
}
