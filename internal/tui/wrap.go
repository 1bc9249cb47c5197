// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText wraps text at word boundaries to the given display width.
// Words wider than the width are kept on their own line.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out strings.Builder
	lineWidth := 0
	for i, word := range strings.Fields(text) {
		wordWidth := runewidth.StringWidth(word)
		switch {
		case i == 0:
			out.WriteString(word)
			lineWidth = wordWidth
		case lineWidth+1+wordWidth > width:
			out.WriteByte('\n')
			out.WriteString(word)
			lineWidth = wordWidth
		default:
			out.WriteByte(' ')
			out.WriteString(word)
			lineWidth += 1 + wordWidth
		}
	}
	return out.String()
}

// spacedPuzzle renders a masked word with gaps so underscores stay readable.
func spacedPuzzle(puzzle string) string {
	runes := []rune(puzzle)
	parts := make([]string, 0, len(runes))
	for _, r := range runes {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, " ")
}
