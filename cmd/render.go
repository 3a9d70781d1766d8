package cmd

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/oakwood-commons/jex/internal/shadow"
)

const (
	defaultRenderWidth = 120
	minPreviewWidth    = 16
	columnGap          = 2
)

// detectTerminalWidth returns the terminal width of stdout, or the default
// when stdout is not a terminal.
func detectTerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultRenderWidth
}

// renderIndex renders the visible nodes of the index as a two-column table:
// address (indented by depth) and preview. Rows are truncated to width by
// display cells, not bytes. Color is applied after padding so escape
// sequences never count against column widths.
func renderIndex(nodes []shadow.Node, width int, useColor bool) string {
	if width <= 0 {
		width = detectTerminalWidth()
	}

	type row struct {
		address string
		preview string
	}
	rows := make([]row, 0, len(nodes))
	addressCol := 0
	for _, n := range nodes {
		if !n.Visible {
			continue
		}
		addr := strings.Repeat("  ", n.Depth) + n.Address
		if w := runewidth.StringWidth(addr); w > addressCol {
			addressCol = w
		}
		rows = append(rows, row{address: addr, preview: n.Preview})
	}

	// Cap the address column so deeply nested addresses cannot squeeze the
	// preview out entirely.
	if max := width - minPreviewWidth - columnGap; addressCol > max && max > 0 {
		addressCol = max
	}

	var b strings.Builder
	for _, r := range rows {
		addr := runewidth.FillRight(runewidth.Truncate(r.address, addressCol, "…"), addressCol)
		if useColor {
			addr = color.CyanString("%s", addr)
		}
		b.WriteString(addr)
		b.WriteString(strings.Repeat(" ", columnGap))
		previewWidth := width - addressCol - columnGap
		if previewWidth > 0 {
			b.WriteString(runewidth.Truncate(r.preview, previewWidth, "…"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
