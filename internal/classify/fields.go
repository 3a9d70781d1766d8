package classify

import (
	"sort"
	"strings"
)

// maxCandidates bounds the returned list so downstream consumers are never
// flooded by huge documents.
const maxCandidates = 20

// CandidateFields walks the document and collects candidate content field
// identifiers: for every object member with a string value whose trimmed
// text is neither timestamp- nor version-shaped, the trimmed key is
// collected — unless the value is URL-shaped, in which case the value itself
// is collected (URLs are self-describing). With leafOnly set, only members
// whose value is a scalar qualify.
//
// Candidates are then filtered to length 2..50 "pure" names (at least one
// letter, digits not outnumbering letters, letters/underscore/hyphen only),
// deduplicated, sorted, and truncated to maxCandidates.
func CandidateFields(doc any, leafOnly bool) []string {
	seen := make(map[string]struct{})

	stack := []any{doc}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch t := v.(type) {
		case []any:
			for _, item := range t {
				stack = append(stack, item)
			}
		case map[string]any:
			for key, val := range t {
				if !leafOnly || isScalar(val) {
					if sv, ok := val.(string); ok {
						collect(seen, key, sv)
					}
				}
				stack = append(stack, val)
			}
		}
	}

	out := make([]string, 0, len(seen))
	for s := range seen {
		if len(s) < 2 || len(s) > 50 {
			continue
		}
		if !pureField(s) {
			continue
		}
		out = append(out, s)
	}
	sort.Strings(out)
	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}
	return out
}

func collect(seen map[string]struct{}, key, value string) {
	k := strings.TrimSpace(key)
	v := strings.TrimSpace(value)
	if k == "" || TimestampLike(v) || VersionLike(v) {
		return
	}
	if URLLike(v) {
		seen[v] = struct{}{}
		return
	}
	seen[k] = struct{}{}
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	default:
		return true
	}
}

// pureField accepts names made of letters, underscores, and hyphens that
// contain at least one letter and are not timestamp- or version-shaped.
func pureField(s string) bool {
	letters, digits := 0, 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			letters++
		case c >= '0' && c <= '9':
			digits++
		}
	}
	if letters == 0 {
		return false
	}
	if TimestampLike(s) || VersionLike(s) {
		return false
	}
	if digits > letters {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '-' {
			continue
		}
		return false
	}
	return true
}

