// Package classify holds the text-shape heuristics that pick candidate
// content fields out of a document: strings shaped like timestamps,
// versions, or URLs are recognized and either excluded or collected in
// place of their key. The checks are deliberately cheap string scans, not
// locale-aware parsers.
package classify

import "strings"

// TimestampLike reports whether s looks like a date, a time, or an ISO 8601
// combined timestamp.
func TimestampLike(s string) bool {
	n := len(s)
	if n < 8 || n > 30 {
		return false
	}
	if !strings.ContainsAny(s, "-:TZ") {
		return false
	}

	// Combined form: 2023-01-01T12:34:56
	if strings.Contains(s, "T") && strings.Contains(s, "-") && strings.Contains(s, ":") {
		return true
	}

	// Date form: 2023-01-01
	if strings.Count(s, "-") == 2 && n <= 12 {
		parts := strings.Split(s, "-")
		if len(parts) == 3 &&
			len(parts[0]) == 4 && allDigits(parts[0]) &&
			len(parts[1]) == 2 && allDigits(parts[1]) &&
			len(parts[2]) == 2 && allDigits(parts[2]) {
			return true
		}
	}

	// Time form: 12:34:56
	if strings.Count(s, ":") == 2 && n <= 10 {
		parts := strings.Split(s, ":")
		if len(parts) == 3 && allDigits(parts[0]) && allDigits(parts[1]) && allDigits(parts[2]) {
			return true
		}
	}

	return false
}

// VersionLike reports whether s looks like a version number such as
// "1.0.0" or "v2.3".
func VersionLike(s string) bool {
	n := len(s)
	if n < 3 || n > 20 {
		return false
	}
	if !strings.Contains(s, ".") {
		return false
	}

	v := s
	if strings.HasPrefix(v, "v") || strings.HasPrefix(v, "V") {
		v = v[1:]
	}

	dots := strings.Count(v, ".")
	if dots < 1 || dots > 3 {
		return false
	}

	parts := strings.Split(v, ".")
	if len(parts) < 2 || len(parts) > 4 {
		return false
	}
	for _, p := range parts {
		if p == "" || !allDigits(p) {
			return false
		}
	}
	return true
}

// URLLike reports whether s looks like an http(s)/ftp(s) URL with a plausible
// host part.
func URLLike(s string) bool {
	n := len(s)
	if n < 7 || n > 2000 {
		return false
	}

	lower := strings.ToLower(s)
	for _, scheme := range []string{"http://", "https://", "ftp://", "ftps://"} {
		if !strings.HasPrefix(lower, scheme) {
			continue
		}
		if n <= len(scheme) {
			return false
		}
		host := s[len(scheme):]
		return strings.Contains(host, ".") || strings.HasPrefix(host, "localhost")
	}
	return false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
