package derive

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Transform re-keys a previously produced intermediate artifact into the
// final product: a mapping from each item's sequence number (as decimal
// text) to its resolved value text. Keys sort lexicographically as text,
// not numerically — "10" sorts before "2" — and consumers depend on that
// textual order.
func Transform(intermediate string) (string, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(intermediate), &raw); err != nil {
		return "", fmt.Errorf("parse intermediate product: %w", err)
	}

	out := make(map[string]string)
	if items, ok := raw["items"].([]any); ok {
		for _, it := range items {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			seq := uint64(0)
			if f, ok := m["seq"].(float64); ok && f >= 0 {
				seq = uint64(f)
			}
			name, _ := m["name"].(string)
			out[strconv.FormatUint(seq, 10)] = name
		}
	}

	// encoding/json emits map keys in lexicographic order, which is exactly
	// the ordering the final product promises.
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
