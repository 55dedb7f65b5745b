// Package layout measures the rendered width of lines in a syntax tree and
// performs the width-aware edits shared by the formatting rules: joining a
// value onto the line of its trigger, shifting moved blocks and relocating
// end-of-line comments.
package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/donaldgifford/kantfmt/internal/syntax"
)

// Indent styles.
const (
	StyleSpace = "space"
	StyleTab   = "tab"
)

// IndentConfig describes how indentation is written.
type IndentConfig struct {
	Style string
	Size  int
}

// DefaultIndent is four spaces.
var DefaultIndent = IndentConfig{Style: StyleSpace, Size: 4}

func (c IndentConfig) tabWidth() int {
	if c.Size <= 0 {
		return DefaultIndent.Size
	}
	return c.Size
}

// Columns returns the display width of s. A tab counts as one indent.
func (c IndentConfig) Columns(s string) int {
	cols := 0
	for _, r := range s {
		if r == '\t' {
			cols += c.tabWidth()
			continue
		}
		cols++
	}
	return cols
}

// Indent renders an indentation of the given width.
func (c IndentConfig) Indent(cols int) string {
	if cols <= 0 {
		return ""
	}
	if c.Style == StyleTab {
		w := c.tabWidth()
		return strings.Repeat("\t", cols/w) + strings.Repeat(" ", cols%w)
	}
	return strings.Repeat(" ", cols)
}

// Unit renders a single indentation level.
func (c IndentConfig) Unit() string {
	return c.Indent(c.tabWidth())
}

// LineIndent returns the leading whitespace of the line on which id starts.
func LineIndent(t *syntax.Tree, id syntax.NodeID) string {
	text := t.Render()
	start := t.StartOffset(id)
	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	line := text[lineStart:]
	end := strings.IndexFunc(line, func(r rune) bool { return r != ' ' && r != '\t' })
	if end < 0 {
		end = len(line)
	}
	return line[:end]
}

// Outdent shifts every line break inside the whitespace of the subtree
// rooted at id left by up to cols columns.
func Outdent(t *syntax.Tree, id syntax.NodeID, cols int, indent IndentConfig) error {
	if cols <= 0 {
		return nil
	}
	var targets []syntax.NodeID
	for leaf := range t.Leaves(id) {
		if t.Kind(leaf) == syntax.Whitespace && strings.Contains(t.Text(leaf), "\n") {
			targets = append(targets, leaf)
		}
	}
	for _, leaf := range targets {
		lines := strings.Split(t.Text(leaf), "\n")
		for i := 1; i < len(lines); i++ {
			lines[i] = trimColumns(lines[i], cols, indent)
		}
		if err := t.ReplaceLeafText(leaf, strings.Join(lines, "\n")); err != nil {
			return err
		}
	}
	return nil
}

func trimColumns(s string, cols int, indent IndentConfig) string {
	removed := 0
	for i, r := range s {
		w := 1
		switch r {
		case '\t':
			w = indent.tabWidth()
		case ' ':
		default:
			return s[i:]
		}
		if removed+w > cols {
			return s[i:]
		}
		removed += w
		if removed == cols {
			return s[i+utf8.RuneLen(r):]
		}
	}
	return ""
}
