// Package address resolves and mutates document locations identified by the
// dot/bracket path expressions the shadow index produces: root "$", fields
// ".name" or "['name']" (single quotes escaped as \'), and array
// indices "[n]".
package address

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one navigation step of a parsed address.
type Segment struct {
	Field   string
	Index   int
	IsIndex bool
}

// Parse splits an address into segments. The leading "$" is consumed and
// produces no segment; a bare "$" parses to an empty slice.
func Parse(addr string) ([]Segment, error) {
	if addr == "" || addr[0] != '$' {
		return nil, fmt.Errorf("address %q must start with '$'", addr)
	}
	rest := addr[1:]
	var segs []Segment
	for len(rest) > 0 {
		switch rest[0] {
		case '.':
			j := 1
			for j < len(rest) && rest[j] != '.' && rest[j] != '[' {
				j++
			}
			if j == 1 {
				return nil, fmt.Errorf("empty field in address %q", addr)
			}
			segs = append(segs, Segment{Field: rest[1:j]})
			rest = rest[j:]
		case '[':
			if len(rest) > 1 && rest[1] == '\'' {
				field, remainder, err := parseQuotedField(rest, addr)
				if err != nil {
					return nil, err
				}
				segs = append(segs, Segment{Field: field})
				rest = remainder
				continue
			}
			j := strings.IndexByte(rest, ']')
			if j < 0 {
				return nil, fmt.Errorf("unterminated '[' in address %q", addr)
			}
			n, err := strconv.Atoi(rest[1:j])
			if err != nil {
				return nil, fmt.Errorf("bad index %q in address %q", rest[1:j], addr)
			}
			segs = append(segs, Segment{Index: n, IsIndex: true})
			rest = rest[j+1:]
		default:
			return nil, fmt.Errorf("unexpected %q in address %q", rest[0], addr)
		}
	}
	return segs, nil
}

// parseQuotedField consumes a ['...'] form starting at rest[0]=='[' and
// returns the unescaped field plus the remainder after the closing bracket.
func parseQuotedField(rest, addr string) (string, string, error) {
	var b strings.Builder
	i := 2
	for i < len(rest) {
		if rest[i] == '\\' && i+1 < len(rest) && rest[i+1] == '\'' {
			b.WriteByte('\'')
			i += 2
			continue
		}
		if rest[i] == '\'' {
			break
		}
		b.WriteByte(rest[i])
		i++
	}
	if i+1 >= len(rest) || rest[i] != '\'' || rest[i+1] != ']' {
		return "", "", fmt.Errorf("unterminated quoted field in address %q", addr)
	}
	return b.String(), rest[i+2:], nil
}

// DeriveName rewrites addr to point at the sibling "name" field: the prefix
// up to the last dot at bracket-nesting depth zero, with ".name" appended.
// Returns false when no top-level dot exists (no sibling can be derived).
func DeriveName(addr string) (string, bool) {
	depth := 0
	last := -1
	for i := 0; i < len(addr); i++ {
		switch addr[i] {
		case '[':
			depth++
		case ']':
			depth--
		case '.':
			if depth == 0 {
				last = i
			}
		}
	}
	if last < 0 {
		return addr, false
	}
	return addr[:last] + ".name", true
}

// ToPointer converts an address into an RFC 6901 JSON Pointer. The root
// address converts to the empty pointer.
func ToPointer(addr string) (string, error) {
	segs, err := Parse(addr)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		if s.IsIndex {
			b.WriteString(strconv.Itoa(s.Index))
			continue
		}
		f := strings.ReplaceAll(s.Field, "~", "~0")
		f = strings.ReplaceAll(f, "/", "~1")
		b.WriteString(f)
	}
	return b.String(), nil
}
