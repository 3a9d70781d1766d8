package address

import (
	"fmt"

	"github.com/theory/jsonpath"
)

// Resolution is the outcome of resolving one address: the value at the
// first match, and whether any match existed.
type Resolution struct {
	Value any
	Found bool
}

// First resolves expr against doc with first-match query semantics.
func First(doc any, expr string) (Resolution, error) {
	p, err := jsonpath.Parse(expr)
	if err != nil {
		return Resolution{}, fmt.Errorf("parse %q: %w", expr, err)
	}
	matches := p.Select(doc)
	if len(matches) == 0 {
		return Resolution{}, nil
	}
	return Resolution{Value: matches[0], Found: true}, nil
}

// ResolveSet resolves every distinct address in want exactly once. Distinct
// sibling addresses are frequently shared between matched nodes, so caching
// here collapses an O(nodes) query fan-out into O(distinct addresses).
func ResolveSet(doc any, want map[string]struct{}) (map[string]Resolution, error) {
	out := make(map[string]Resolution, len(want))
	for addr := range want {
		res, err := First(doc, addr)
		if err != nil {
			return nil, err
		}
		out[addr] = res
	}
	return out, nil
}
