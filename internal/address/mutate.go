package address

import "fmt"

// Set assigns value into the slot addr resolves to and returns the document
// root (a new root when addr is "$", the same root otherwise). The slot must
// already exist: Set never creates keys or grows arrays.
func Set(doc any, addr string, value any) (any, error) {
	segs, err := Parse(addr)
	if err != nil {
		return doc, err
	}
	if len(segs) == 0 {
		return value, nil
	}

	parent := doc
	for _, s := range segs[:len(segs)-1] {
		parent, err = step(parent, s)
		if err != nil {
			return doc, fmt.Errorf("resolve %q: %w", addr, err)
		}
	}

	last := segs[len(segs)-1]
	switch t := parent.(type) {
	case map[string]any:
		if last.IsIndex {
			return doc, fmt.Errorf("address %q indexes into an object", addr)
		}
		if _, ok := t[last.Field]; !ok {
			return doc, fmt.Errorf("address %q: key %q not found", addr, last.Field)
		}
		t[last.Field] = value
	case []any:
		if !last.IsIndex {
			return doc, fmt.Errorf("address %q names a field of an array", addr)
		}
		if last.Index < 0 || last.Index >= len(t) {
			return doc, fmt.Errorf("address %q: index %d out of range", addr, last.Index)
		}
		t[last.Index] = value
	default:
		return doc, fmt.Errorf("address %q resolves into a non-updatable %T", addr, parent)
	}
	return doc, nil
}

func step(cur any, s Segment) (any, error) {
	switch t := cur.(type) {
	case map[string]any:
		if s.IsIndex {
			return nil, fmt.Errorf("index [%d] into object", s.Index)
		}
		v, ok := t[s.Field]
		if !ok {
			return nil, fmt.Errorf("key %q not found", s.Field)
		}
		return v, nil
	case []any:
		if !s.IsIndex {
			return nil, fmt.Errorf("field %q into array", s.Field)
		}
		if s.Index < 0 || s.Index >= len(t) {
			return nil, fmt.Errorf("index %d out of range", s.Index)
		}
		return t[s.Index], nil
	default:
		return nil, fmt.Errorf("cannot descend into %T", cur)
	}
}
