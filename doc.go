// Package strfmt provides printf-style formatting over arguments of any shape.
//
// Arguments are flattened into an ordered list of leaf values before being
// bound to the directives of the format string. Containers, pointers,
// optionals, pairs and structs never need to be unpacked by hand:
//
//	strfmt.Sprintf("%s %dSX SR%dDE%s", "日産", 180, 20, "T") // 日産 180SX SR20DET
//	strfmt.Sprintf("%d,%d,%d", []int{4, 5, 6})              // 4,5,6
//
// Directive parsing, width, precision and locale handling belong to the
// underlying [Printer]. The default printer is [fmt.Sprintf]; [WithLanguage]
// switches to a locale-aware printer from golang.org/x/text/message.
//
// # Shapes
//
// Every argument type is classified into exactly one [Shape]. The checks run
// in this order and the first match wins:
//
//   - [ShapeLeaf]: booleans, numbers, strings, byte slices, [WString] and any
//     type implementing [fmt.Formatter], [fmt.Stringer], [fmt.GoStringer] or
//     error. Leaves are bound to one directive each.
//   - [ShapeOptional]: [Optional], any [Maybe] implementation, and
//     [database/sql/driver.Valuer] types such as [database/sql.NullString].
//   - [ShapePointer]: pointers, interface values and [weak.Pointer].
//   - [ShapePair]: [Pair] and any struct whose exported fields are exactly
//     First and Second.
//   - [ShapeTuple]: any other struct. Exported fields expand in declaration
//     order, with fields promoted from embedded structs and struct pointers
//     in place. A nil embedded pointer expands to the sentinel.
//   - [ShapeIterable]: slices, arrays, maps, [iter.Seq], [iter.Seq2] and
//     [gopkg.in/yaml.v3.Node] documents.
//
// Types matching none of these (channels, plain funcs) are
// [ShapeUnsupported] and make [Format] fail before anything is rendered.
//
// An absent optional or a nil pointer expands to a single [Null] leaf that
// renders the sentinel text ("(null)" by default) for any verb:
//
//	strfmt.Sprintf("%d,%d", strfmt.Some(1), strfmt.None[int]()) // 1,(null)
//
// Maps expand in sorted key order, key before value, which makes the common
// set idiom map[K]struct{} expand to its sorted keys.
//
// # Wide strings
//
// [WString] holds UTF-16 text. It is a leaf in its own right and stays a
// WString through flattening. [WSprintf] takes a wide format string and
// returns a wide result.
//
// # Errors
//
//   - [ErrUnsupportedType]: an argument contains a type with no shape
//   - [ErrTooDeep]: nesting exceeded the configured depth, usually a pointer cycle
//
// [Sprintf] and [WSprintf] never fail. Classification errors are rendered in
// band as "%!(BADARG ...)", the same way fmt reports bad verbs.
package strfmt
