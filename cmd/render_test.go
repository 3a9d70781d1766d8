package cmd

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jex/internal/shadow"
)

func TestRenderIndexShowsVisibleNodesOnly(t *testing.T) {
	nodes := []shadow.Node{
		{Address: "$", Preview: "{..} (2 keys)", Depth: 0, Visible: true},
		{Address: "$.a", Preview: `"hello"`, Depth: 1, Visible: true},
		{Address: "$.b", Preview: `"hidden"`, Depth: 1, Visible: false},
	}
	out := renderIndex(nodes, 80, false)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "$")
	assert.Contains(t, lines[0], "{..} (2 keys)")
	assert.Contains(t, lines[1], "$.a")
	assert.NotContains(t, out, "hidden")
}

func TestRenderIndexIndentsByDepth(t *testing.T) {
	nodes := []shadow.Node{
		{Address: "$", Preview: "x", Depth: 0, Visible: true},
		{Address: "$.a.b", Preview: "y", Depth: 2, Visible: true},
	}
	out := renderIndex(nodes, 80, false)
	assert.Contains(t, out, "    $.a.b")
}

func TestRenderIndexTruncatesToWidth(t *testing.T) {
	nodes := []shadow.Node{
		{Address: "$.key", Preview: strings.Repeat("長", 100), Depth: 0, Visible: true},
	}
	width := 40
	out := renderIndex(nodes, width, false)

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), width)
	}
}
