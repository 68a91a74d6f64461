// Package document parses agent configuration text (YAML or JSON) into the
// generic tree the validator consumes, keeping a source position for every node.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxNodes bounds alias expansion so a small document cannot expand into an
// arbitrarily large tree.
const maxNodes = 1_000_000

var (
	errEmpty         = errors.New("document is empty")
	errMultiDocument = errors.New("expected a single document, found several")
	errTooLarge      = fmt.Errorf("document expands to more than %d nodes", maxNodes)
)

// Position is a 1-based line and column in the source text.
type Position struct {
	Line   int
	Column int
}

// ParseError reports text that could not be turned into a document tree. It is
// raised before validation and never mixed with validation errors.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing document: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Document is a parsed configuration tree. Root holds map[string]any,
// []any, string, int64, uint64, float64, bool or nil values.
type Document struct {
	Root      any
	positions map[string]Position
}

// Parse decodes YAML (and therefore JSON) text into a Document.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Err: errEmpty}
		}
		return nil, &ParseError{Err: err}
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		return nil, &ParseError{Err: errMultiDocument}
	} else if !errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: err}
	}

	c := &converter{positions: make(map[string]Position)}
	v, err := c.convert(&root, "")
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return &Document{Root: v, positions: c.positions}, nil
}

// Position returns the source position for the node at pointer. When the
// pointer has no recorded position the nearest ancestor's is returned.
func (d *Document) Position(pointer string) (Position, bool) {
	if d == nil || d.positions == nil {
		return Position{}, false
	}
	for {
		if p, ok := d.positions[pointer]; ok {
			return p, true
		}
		if pointer == "" {
			return Position{}, false
		}
		i := strings.LastIndexByte(pointer, '/')
		if i < 0 {
			return Position{}, false
		}
		pointer = pointer[:i]
	}
}

type converter struct {
	positions map[string]Position
	count     int
}

func (c *converter) record(pointer string, n *yaml.Node) {
	if _, ok := c.positions[pointer]; ok {
		return
	}
	c.positions[pointer] = Position{Line: n.Line, Column: n.Column}
}

func (c *converter) convert(n *yaml.Node, pointer string) (any, error) {
	c.count++
	if c.count > maxNodes {
		return nil, errTooLarge
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, errEmpty
		}
		return c.convert(n.Content[0], pointer)

	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: unresolved alias", n.Line)
		}
		return c.convert(n.Alias, pointer)

	case yaml.MappingNode:
		c.record(pointer, n)
		return c.mapping(n, pointer)

	case yaml.SequenceNode:
		c.record(pointer, n)
		out := make([]any, 0, len(n.Content))
		for i, item := range n.Content {
			child := Index(pointer, i)
			c.record(child, item)
			v, err := c.convert(item, child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.ScalarNode:
		c.record(pointer, n)
		return scalar(n)
	}

	return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}

func (c *converter) mapping(n *yaml.Node, pointer string) (map[string]any, error) {
	out := make(map[string]any, len(n.Content)/2)
	var merged []map[string]any

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.AliasNode && k.Alias != nil {
			k = k.Alias
		}

		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			m, err := c.mergeSources(v, pointer)
			if err != nil {
				return nil, err
			}
			merged = append(merged, m...)
			continue
		}

		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}

		if _, dup := out[k.Value]; dup {
			return nil, fmt.Errorf("line %d: mapping key %q already defined", k.Line, k.Value)
		}

		child := Pointer(pointer, k.Value)
		c.record(child, k)
		val, err := c.convert(v, child)
		if err != nil {
			return nil, err
		}
		out[k.Value] = val
	}

	// Explicit keys win over merged ones; earlier merge sources win over later.
	for _, m := range merged {
		for key, val := range m {
			if _, ok := out[key]; !ok {
				out[key] = val
			}
		}
	}
	return out, nil
}

func (c *converter) mergeSources(v *yaml.Node, pointer string) ([]map[string]any, error) {
	if v.Kind == yaml.SequenceNode {
		var out []map[string]any
		for _, item := range v.Content {
			m, err := c.mergeSources(item, pointer)
			if err != nil {
				return nil, err
			}
			out = append(out, m...)
		}
		return out, nil
	}

	val, err := c.convert(v, pointer)
	if err != nil {
		return nil, err
	}
	m, ok := val.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("line %d: merge value must be a mapping", v.Line)
	}
	return []map[string]any{m}, nil
}

func scalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return u, nil
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid integer %q", n.Line, n.Value)
		}
		return f, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	default:
		// Strings, timestamps and binary values are kept as their source text.
		return n.Value, nil
	}
}

// Pointer appends token to the JSON pointer parent, escaping it per RFC 6901.
func Pointer(parent, token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return parent + "/" + token
}

// Index appends an array index to the JSON pointer parent.
func Index(parent string, i int) string {
	return parent + "/" + strconv.Itoa(i)
}
