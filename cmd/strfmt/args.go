package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bjaus/strfmt"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedEncoding is returned for an unknown argument document encoding.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// Encoding names the format of an argument document.
type Encoding string

const (
	YAML    Encoding = "yaml"
	JSON    Encoding = "json"
	TOML    Encoding = "toml"
	Msgpack Encoding = "msgpack"
)

var encodings = []Encoding{YAML, JSON, TOML, Msgpack}

// String returns the encoding name.
func (e Encoding) String() string { return string(e) }

// ParseEncoding parses an encoding name. "yml" and "mpk" are accepted as
// aliases.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "yml":
		return YAML, nil
	case "mpk":
		return Msgpack, nil
	}
	for _, e := range encodings {
		if string(e) == strings.ToLower(s) {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, s)
}

// encodingFor picks the encoding of path from its extension, defaulting to
// YAML.
func encodingFor(path string) Encoding {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if e, err := ParseEncoding(ext); err == nil {
		return e
	}
	return YAML
}

// decodeArgs reads every document in r and returns one argument per document.
func decodeArgs(r io.Reader, enc Encoding) ([]any, error) {
	switch enc {
	case YAML, JSON:
		return decodeYAML(r)
	case TOML:
		return decodeTOML(r)
	case Msgpack:
		return decodeMsgpack(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, enc)
	}
}

// decodeYAML keeps documents as nodes so mappings flatten in document order.
// JSON documents are parsed by the same decoder.
func decodeYAML(r io.Reader) ([]any, error) {
	dec := yaml.NewDecoder(r)
	var args []any
	for {
		var n yaml.Node
		err := dec.Decode(&n)
		if errors.Is(err, io.EOF) {
			return args, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		args = append(args, &n)
	}
}

// decodeTOML returns the top-level keys in document order, each paired with
// its value.
func decodeTOML(r io.Reader) ([]any, error) {
	var doc map[string]any
	meta, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	var args []any
	for _, key := range meta.Keys() {
		if len(key) != 1 {
			continue
		}
		args = append(args, strfmt.MakePair(key[0], doc[key[0]]))
	}
	return args, nil
}

func decodeMsgpack(r io.Reader) ([]any, error) {
	dec := msgpack.NewDecoder(r)
	var args []any
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return args, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
		args = append(args, v)
	}
}

// parseArg reads a command-line argument as a YAML value so numbers, booleans
// and flow collections ([1, 2], {a: 1}) keep their type. Anything else,
// including block collections such as "a: b" or "-", stays a plain string,
// as do numbers whose text a numeric reading would change (007, 0x1F).
func parseArg(s string) any {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(s), &n); err != nil || len(n.Content) != 1 {
		return s
	}
	root := n.Content[0]
	if root.Kind != yaml.ScalarNode && root.Style&yaml.FlowStyle == 0 {
		return s
	}
	keepNumberText(root)
	return &n
}

// keepNumberText retags the numeric scalars under n that are written with a
// leading zero or a base prefix as strings.
func keepNumberText(n *yaml.Node) {
	if prefixedNumber(n) {
		n.Tag = "!!str"
	}
	for _, c := range n.Content {
		keepNumberText(c)
	}
}

func prefixedNumber(n *yaml.Node) bool {
	if n.Kind != yaml.ScalarNode || n.Style != 0 {
		return false
	}
	if tag := n.ShortTag(); tag != "!!int" && tag != "!!float" {
		return false
	}
	v := strings.TrimLeft(n.Value, "+-")
	return len(v) > 1 && v[0] == '0' && !strings.ContainsRune(".eE", rune(v[1]))
}
