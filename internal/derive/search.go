package derive

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oakwood-commons/jex/internal/address"
	"github.com/oakwood-commons/jex/internal/shadow"
)

// SearchResults builds an aggregate listing of every visible node whose
// address or name contains filter. Matching is case-sensitive, the same
// selection the index filter uses. A single match returns its pretty
// extraction directly; multiple matches return a wrapper object keyed
// "match_<i>_<name>" carrying each node's path, name, type, and content.
// No matches return "{}"; an empty filter returns "".
func SearchResults(doc any, nodes []shadow.Node, filter string) (string, error) {
	if strings.TrimSpace(filter) == "" {
		return "", nil
	}

	var matched []*shadow.Node
	for i := range nodes {
		n := &nodes[i]
		if n.Visible && (strings.Contains(n.Address, filter) || strings.Contains(n.Name, filter)) {
			matched = append(matched, n)
		}
	}
	if len(matched) == 0 {
		return "{}", nil
	}

	if len(matched) == 1 {
		res, err := address.First(doc, matched[0].Address)
		if err != nil {
			return "", err
		}
		if !res.Found {
			return "", fmt.Errorf("no match for %q", matched[0].Address)
		}
		b, err := json.MarshalIndent(res.Value, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	results := make(map[string]any, len(matched))
	for i, n := range matched {
		key := fmt.Sprintf("match_%d_%s", i+1, n.Name)
		entry := map[string]any{
			"path": n.Address,
			"name": n.Name,
			"type": n.Kind.String(),
		}
		res, err := address.First(doc, n.Address)
		switch {
		case err != nil:
			key = fmt.Sprintf("match_%d_%s_error", i+1, n.Name)
			entry["error"] = err.Error()
		case !res.Found:
			key = fmt.Sprintf("match_%d_%s_error", i+1, n.Name)
			entry["error"] = "no match"
		default:
			entry["content"] = res.Value
		}
		results[key] = entry
	}

	payload := map[string]any{
		"search_filter":     filter,
		"total_matches":     len(matched),
		"displayed_matches": len(matched),
		"truncated":         false,
		"results":           results,
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
