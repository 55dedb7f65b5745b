package layout

import (
	"fmt"
	"unicode/utf8"

	"github.com/donaldgifford/kantfmt/internal/syntax"
)

// JoinLine moves value onto the line of the siblings preceding run. The run
// consists of the whitespace and comment siblings between the trigger and
// value; it is replaced by a single space. The moved block keeps its
// relative indentation. End-of-line comments of the run are relocated right
// after value. The first one stays on the value's last line when it fits
// within maxLineLength; every other comment gets a line of its own.
func JoinLine(t *syntax.Tree, run []syntax.NodeID, value syntax.NodeID, maxLineLength int, indent IndentConfig) error {
	if len(run) == 0 {
		return fmt.Errorf("%w: nothing to join before node %d", syntax.ErrInvalidMutation, value)
	}

	lineIndent := LineIndent(t, run[0])
	shift := indent.Columns(LineIndent(t, value)) - indent.Columns(lineIndent)

	var comments []syntax.NodeID
	for _, id := range run {
		if t.Kind(id) == syntax.EOLComment {
			comments = append(comments, id)
		}
		if err := t.Detach(id); err != nil {
			return err
		}
	}
	if err := t.UpsertWhitespaceBefore(value, " "); err != nil {
		return err
	}
	if err := Outdent(t, value, shift, indent); err != nil {
		return err
	}

	anchor := value
	for _, c := range comments {
		lead := "\n" + lineIndent
		width := LineWidth(t, t.EndOffset(anchor), indent) + 1 + utf8.RuneCountInString(t.Text(c))
		if anchor == value && Fits(width, maxLineLength) {
			lead = " "
		}
		if err := PlaceComment(t, c, anchor, lead, "\n"+lineIndent); err != nil {
			return err
		}
		anchor = c
	}
	return nil
}
