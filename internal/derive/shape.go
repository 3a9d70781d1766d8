package derive

import (
	"encoding/json"
	"fmt"
)

// SameShape verifies two JSON texts share the same structure: objects must
// have identical key sets, arrays equal lengths with element-wise matching
// shapes, and scalars matching types. Used to validate an uploaded
// corrections file against the final product before applying it.
func SameShape(a, b string) error {
	var av, bv any
	if err := json.Unmarshal([]byte(a), &av); err != nil {
		return fmt.Errorf("uploaded text is not valid JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(b), &bv); err != nil {
		return fmt.Errorf("reference text is not valid JSON: %w", err)
	}
	if !sameShape(av, bv) {
		return fmt.Errorf("structure mismatch: key sets or value types differ")
	}
	return nil
}

func sameShape(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v1 := range av {
			v2, ok := bv[k]
			if !ok || !sameShape(v1, v2) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !sameShape(av[i], bv[i]) {
				return false
			}
		}
		return true
	case string:
		_, ok := b.(string)
		return ok
	case float64:
		_, ok := b.(float64)
		return ok
	case bool:
		_, ok := b.(bool)
		return ok
	case nil:
		return b == nil
	default:
		return false
	}
}
