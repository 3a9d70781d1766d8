// Package pager slices long text output into fixed-size pages for
// non-interactive display.
package pager

import (
	"fmt"
	"strings"
)

// Config holds the pagination parameters.
type Config struct {
	Page  int // 1-based page to show (0 = pagination disabled)
	Lines int // lines per page
}

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	if c.Page < 0 {
		return fmt.Errorf("--page must be non-negative, got %d", c.Page)
	}
	if c.Page > 0 && c.Lines <= 0 {
		return fmt.Errorf("--page-lines must be positive, got %d", c.Lines)
	}
	return nil
}

// IsActive reports whether pagination is configured.
func (c Config) IsActive() bool {
	return c.Page > 0
}

// Apply returns the requested page of text plus a trailer naming the page
// position. Inactive configs return the text unchanged. A page past the end
// returns the last page.
func (c Config) Apply(text string) string {
	if !c.IsActive() {
		return text
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	total := (len(lines) + c.Lines - 1) / c.Lines
	if total == 0 {
		total = 1
	}

	page := c.Page
	if page > total {
		page = total
	}
	start := (page - 1) * c.Lines
	end := start + c.Lines
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for _, line := range lines[start:end] {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "--- page %d of %d ---\n", page, total)
	return b.String()
}
