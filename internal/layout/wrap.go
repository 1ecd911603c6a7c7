// Package layout computes the wrapped, scrolled render state of a conversation.
//
// The layout is a pure function of the conversation and the viewport. It is
// recomputed on every display tick, so it holds no cached state.
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Measurer returns the rendered width of a line
type Measurer func(s string) int

// CellWidth measures text in terminal cells, counting wide runes as two
func CellWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Wrap greedily fills lines with space-separated words.
//
// Each word is appended together with a trailing space. Before a word is
// added the candidate line is measured; when it would exceed maxWidth and
// the word is not the first of the paragraph, the current line is committed
// and the word starts a new one. A word wider than maxWidth therefore sits
// alone on its own line, unsplit. The last partial line is always emitted.
// Hard line breaks in text start a new paragraph.
func Wrap(text string, maxWidth int, measure Measurer) []string {
	if measure == nil {
		measure = CellWidth
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(paragraph, maxWidth, measure)...)
	}
	return lines
}

func wrapParagraph(text string, maxWidth int, measure Measurer) []string {
	words := strings.Split(text, " ")

	var lines []string
	line := ""
	for i, word := range words {
		candidate := line + word + " "
		if measure(candidate) > maxWidth && i > 0 {
			lines = append(lines, line)
			line = word + " "
		} else {
			line = candidate
		}
	}
	return append(lines, line)
}
