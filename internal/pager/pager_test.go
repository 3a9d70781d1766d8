package pager

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled", Config{}, false},
		{"valid", Config{Page: 1, Lines: 10}, false},
		{"negative page", Config{Page: -1, Lines: 10}, true},
		{"active without lines", Config{Page: 2, Lines: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestApplyInactivePassesThrough(t *testing.T) {
	text := "line1\nline2\n"
	assert.Equal(t, text, Config{}.Apply(text))
}

func TestApplyPages(t *testing.T) {
	var lines []string
	for i := 1; i <= 10; i++ {
		lines = append(lines, "line")
	}
	text := strings.Join(lines, "\n") + "\n"

	first := Config{Page: 1, Lines: 4}.Apply(text)
	assert.Equal(t, 5, strings.Count(first, "\n")) // 4 lines + trailer
	assert.Contains(t, first, "--- page 1 of 3 ---")

	last := Config{Page: 3, Lines: 4}.Apply(text)
	assert.Contains(t, last, "--- page 3 of 3 ---")
	assert.Equal(t, 3, strings.Count(last, "\n")) // 2 lines + trailer
}

func TestApplyPagePastEndClampsToLast(t *testing.T) {
	out := Config{Page: 99, Lines: 2}.Apply("a\nb\nc\n")
	assert.Contains(t, out, "--- page 2 of 2 ---")
	assert.Contains(t, out, "c\n")
	assert.NotContains(t, out, "a\n")
}
