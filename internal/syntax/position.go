package syntax

import (
	"strings"
	"unicode/utf8"
)

// Position converts a byte offset in text to a 1-based line and column.
// Columns count runes. Offsets past the end clamp to the end of text.
func Position(text string, offset int) (line, col int) {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	before := text[:offset]
	line = strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	col = utf8.RuneCountInString(before[lineStart:]) + 1
	return line, col
}
