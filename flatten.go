package strfmt

import (
	"cmp"
	"database/sql/driver"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"gopkg.in/yaml.v3"
)

// errStop ends a walk when the consumer stops iterating.
var errStop = errors.New("stop")

type walker struct {
	f     *Formatter
	yield func(any) bool
}

func (w *walker) emit(leaf any) error {
	if !w.yield(leaf) {
		return errStop
	}
	return nil
}

func (w *walker) walkArg(arg any) error {
	return w.walk(reflect.ValueOf(arg), 0)
}

func (w *walker) walk(v reflect.Value, depth int) error {
	if depth > w.f.maxDepth {
		return fmt.Errorf("%w: limit %d", ErrTooDeep, w.f.maxDepth)
	}
	if !v.IsValid() || isNil(v) {
		return w.emit(w.f.sentinel)
	}
	switch ClassifyType(v.Type()) {
	case ShapeLeaf:
		return w.emit(w.leaf(v))
	case ShapeOptional:
		return w.walkOptional(v, depth)
	case ShapePointer:
		if isWeakPointer(v.Type()) {
			return w.walk(v.MethodByName("Value").Call(nil)[0], depth+1)
		}
		return w.walk(v.Elem(), depth+1)
	case ShapePair, ShapeTuple:
		for _, i := range visibleFields(v.Type()) {
			if err := w.walk(v.Field(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	case ShapeIterable:
		return w.walkIterable(v, depth)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())
	}
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func (w *walker) walkOptional(v reflect.Value, depth int) error {
	switch o := v.Interface().(type) {
	case Maybe:
		held, ok := o.Maybe()
		if !ok {
			return w.emit(w.f.sentinel)
		}
		return w.walk(reflect.ValueOf(held), depth+1)
	case driver.Valuer:
		held, err := o.Value()
		if err != nil {
			return w.emit(err)
		}
		return w.walk(reflect.ValueOf(held), depth+1)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())
}

func (w *walker) walkIterable(v reflect.Value, depth int) error {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			if err := w.walk(v.Index(i), depth+1); err != nil {
				return err
			}
		}
	case reflect.Map:
		keys := v.MapKeys()
		slices.SortFunc(keys, compareValues)
		for _, k := range keys {
			if err := w.walk(k, depth+1); err != nil {
				return err
			}
			if err := w.walk(v.MapIndex(k), depth+1); err != nil {
				return err
			}
		}
	case reflect.Func:
		if v.IsNil() {
			return nil
		}
		return w.walkSeq(v, depth)
	case reflect.Struct:
		if v.CanAddr() {
			return w.walkNode(v.Addr().Interface().(*yaml.Node), depth)
		}
		node := v.Interface().(yaml.Node)
		return w.walkNode(&node, depth)
	}
	return nil
}

func (w *walker) walkSeq(v reflect.Value, depth int) error {
	var err error
	if v.Type().CanSeq() {
		for e := range v.Seq() {
			if err = w.walk(e, depth+1); err != nil {
				break
			}
		}
		return err
	}
	for k, e := range v.Seq2() {
		if err = w.walk(k, depth+1); err != nil {
			break
		}
		if err = w.walk(e, depth+1); err != nil {
			break
		}
	}
	return err
}

// walkNode enumerates a YAML document: sequence items in order, mapping keys
// and values in document order, scalars decoded to their resolved Go value.
func (w *walker) walkNode(n *yaml.Node, depth int) error {
	if depth > w.f.maxDepth {
		return fmt.Errorf("%w: limit %d", ErrTooDeep, w.f.maxDepth)
	}
	if n == nil {
		return w.emit(w.f.sentinel)
	}
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode, yaml.MappingNode:
		for _, c := range n.Content {
			if err := w.walkNode(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	case yaml.AliasNode:
		return w.walkNode(n.Alias, depth+1)
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return w.emit(w.f.sentinel)
		}
		var val any
		if err := n.Decode(&val); err != nil {
			return w.emit(w.leaf(reflect.ValueOf(n.Value)))
		}
		return w.emit(w.leaf(reflect.ValueOf(val)))
	}
	return nil
}

func (w *walker) leaf(v reflect.Value) any {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.CanInterface() {
		return primitive(v)
	}
	return v.Interface()
}

// primitive extracts the underlying value of a leaf that cannot be
// converted with Interface.
func primitive(v reflect.Value) any {
	switch k := v.Kind(); {
	case k == reflect.Bool:
		return v.Bool()
	case k >= reflect.Int && k <= reflect.Int64:
		return v.Int()
	case k >= reflect.Uint && k <= reflect.Uintptr:
		return v.Uint()
	case k == reflect.Float32, k == reflect.Float64:
		return v.Float()
	case k == reflect.Complex64, k == reflect.Complex128:
		return v.Complex()
	case k == reflect.Slice:
		return v.Bytes()
	default:
		return v.String()
	}
}

// compareValues orders map keys: numbers numerically, strings
// lexically, false before true, pointers by address, arrays and structs
// element by element, interface keys by dynamic type then value with nil first.
func compareValues(a, b reflect.Value) int {
	if a.Kind() == reflect.Interface {
		switch {
		case a.IsNil() && b.IsNil():
			return 0
		case a.IsNil():
			return -1
		case b.IsNil():
			return 1
		}
		a, b = a.Elem(), b.Elem()
	}
	if a.Type() != b.Type() {
		return cmp.Compare(a.Type().String(), b.Type().String())
	}
	switch k := a.Kind(); {
	case k >= reflect.Int && k <= reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case k >= reflect.Uint && k <= reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case k == reflect.String:
		return cmp.Compare(a.String(), b.String())
	case k == reflect.Float32, k == reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case k == reflect.Complex64, k == reflect.Complex128:
		if c := cmp.Compare(real(a.Complex()), real(b.Complex())); c != 0 {
			return c
		}
		return cmp.Compare(imag(a.Complex()), imag(b.Complex()))
	case k == reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case a.Bool():
			return 1
		}
		return -1
	case k == reflect.Pointer, k == reflect.UnsafePointer, k == reflect.Chan:
		return cmp.Compare(a.Pointer(), b.Pointer())
	case k == reflect.Struct:
		for i := range a.NumField() {
			if c := compareValues(a.Field(i), b.Field(i)); c != 0 {
				return c
			}
		}
	case k == reflect.Array:
		for i := range a.Len() {
			if c := compareValues(a.Index(i), b.Index(i)); c != 0 {
				return c
			}
		}
	}
	return 0
}
