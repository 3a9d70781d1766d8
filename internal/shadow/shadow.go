// Package shadow builds and maintains the flat, pre-order index ("shadow
// tree") of a parsed document. The index stores structure, addresses, and
// bounded previews only; it never copies large values, which keeps
// navigation cheap for big documents.
package shadow

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind classifies a document node independent of any display concern.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "Object"
	case KindArray:
		return "Array"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBool:
		return "Bool"
	case KindNull:
		return "Null"
	default:
		return "<unknown kind>"
	}
}

// IsScalar reports whether the kind carries a simple value rather than
// nested members.
func (k Kind) IsScalar() bool {
	return k != KindObject && k != KindArray
}

// Node is one entry of the flat index.
type Node struct {
	// Name is the key in the parent object, or "[i]" for array elements.
	// The root node is named "$".
	Name string
	// Address is the full dot/bracket path expression from the root.
	// It uniquely identifies the node and is used for extraction and
	// write-back.
	Address string
	Kind    Kind
	// Children is the immediate member count: key count for objects,
	// length for arrays, 0 for scalars.
	Children int
	// Preview is a bounded textual summary of the value.
	Preview string
	// Depth is 0 at the root.
	Depth int
	// Expanded and Visible drive the expansion/visibility state machine.
	Expanded bool
	Visible  bool
}

// previewRunes bounds string previews, counted in code points.
const previewRunes = 32

// Build walks doc once and returns the flat pre-order index: every node
// appears before its children, object children in ascending key order,
// array children in index order. index[0] is always the root with
// address "$" and depth 0.
//
// The walk uses an explicit stack so pathologically deep documents cannot
// exhaust the goroutine stack.
func Build(doc any) []Node {
	type frame struct {
		value   any
		name    string
		address string
		depth   int
	}
	out := make([]Node, 0, 1024)
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{value: doc, name: "$", address: "$"})

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		out = append(out, Node{
			Name:     f.name,
			Address:  f.address,
			Kind:     kindOf(f.value),
			Children: childCount(f.value),
			Preview:  previewOf(f.value),
			Depth:    f.depth,
			Visible:  true,
		})

		// Children are pushed in reverse so the first child pops first,
		// preserving pre-order in the output.
		switch v := f.value.(type) {
		case map[string]any:
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for i := len(keys) - 1; i >= 0; i-- {
				k := keys[i]
				stack = append(stack, frame{
					value:   v[k],
					name:    k,
					address: childAddress(f.address, k),
					depth:   f.depth + 1,
				})
			}
		case []any:
			for i := len(v) - 1; i >= 0; i-- {
				idx := "[" + strconv.Itoa(i) + "]"
				stack = append(stack, frame{
					value:   v[i],
					name:    idx,
					address: f.address + idx,
					depth:   f.depth + 1,
				})
			}
		}
	}
	return out
}

// childAddress appends an object-field suffix to a parent address. Plain
// keys use dot notation; anything else uses bracket notation with single
// quotes escaped.
func childAddress(parent, key string) string {
	if isPlainKey(key) {
		return parent + "." + key
	}
	return parent + "['" + strings.ReplaceAll(key, "'", `\'`) + "']"
}

func isPlainKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

func kindOf(v any) Kind {
	switch v.(type) {
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	case string:
		return KindString
	case bool:
		return KindBool
	case nil:
		return KindNull
	default:
		// json.Number plus the int/float forms the YAML loader produces.
		return KindNumber
	}
}

func childCount(v any) int {
	switch t := v.(type) {
	case map[string]any:
		return len(t)
	case []any:
		return len(t)
	default:
		return 0
	}
}

func previewOf(v any) string {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if r := []rune(s); len(r) > previewRunes {
			return `"` + string(r[:previewRunes]) + `..."`
		}
		return `"` + s + `"`
	case map[string]any:
		return fmt.Sprintf("{..} (%d keys)", len(t))
	case []any:
		return fmt.Sprintf("[..] (%d items)", len(t))
	default:
		// Numbers, booleans, and null all have a canonical JSON form.
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
