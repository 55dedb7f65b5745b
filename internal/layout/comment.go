package layout

import (
	"fmt"
	"strings"

	"github.com/donaldgifford/kantfmt/internal/syntax"
)

// PlaceComment inserts the detached end-of-line comment right after anchor,
// separated from it by lead. Code following the comment on the same line is
// pushed onto a new line that starts with brk.
func PlaceComment(t *syntax.Tree, comment, anchor syntax.NodeID, lead, brk string) error {
	if t.Parent(comment) != syntax.NoNode {
		return fmt.Errorf("%w: comment %d is still attached", syntax.ErrInvalidMutation, comment)
	}
	if err := t.InsertAfter(anchor, comment); err != nil {
		return err
	}
	if err := t.UpsertWhitespaceBefore(comment, lead); err != nil {
		return err
	}

	next := t.NextLeaf(comment, nil)
	switch {
	case next == syntax.NoNode:
		return nil
	case t.Kind(next) == syntax.Whitespace && strings.Contains(t.Text(next), "\n"):
		// Blanks before the break would trail the comment.
		text := t.Text(next)
		return t.ReplaceLeafText(next, text[strings.IndexByte(text, '\n'):])
	default:
		return t.UpsertWhitespaceAfter(comment, brk)
	}
}
