package layout

import (
	"strings"

	"github.com/donaldgifford/kantfmt/internal/syntax"
)

// Unlimited disables the line length check.
const Unlimited = 0

// JoinedWidth returns the width of the line obtained by replacing every
// sibling from `from` up to, but not including, `to` with a single space:
// the text from the start of the line up to `from`, one space, and the text
// from `to` up to the next line break.
func JoinedWidth(t *syntax.Tree, from, to syntax.NodeID, indent IndentConfig) int {
	text := t.Render()
	start := t.StartOffset(from)
	lineStart := strings.LastIndexByte(text[:start], '\n') + 1

	rest := text[t.StartOffset(to):]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return indent.Columns(text[lineStart:start]) + 1 + indent.Columns(rest)
}

// LineWidth returns the width of the text between the start of the line
// containing offset and offset itself.
func LineWidth(t *syntax.Tree, offset int, indent IndentConfig) int {
	text := t.Render()
	if offset > len(text) {
		offset = len(text)
	}
	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	return indent.Columns(text[lineStart:offset])
}

// Fits reports whether a line of the given width respects maxLineLength.
// A non-positive maximum means there is no limit.
func Fits(width, maxLineLength int) bool {
	return maxLineLength <= Unlimited || width <= maxLineLength
}
