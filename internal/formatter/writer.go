// Package formatter provides the rule engine, the writer and the rule
// interface.
package formatter

import (
	"io"

	"github.com/donaldgifford/kantfmt/internal/syntax"
)

// Write serializes a syntax tree back into source text. The tree keeps
// every byte of the source in its leaves, so the output is the exact
// concatenation of the leaf texts.
func Write(w io.Writer, t *syntax.Tree) error {
	for leaf := range t.Leaves(t.Root()) {
		if _, err := io.WriteString(w, t.Text(leaf)); err != nil {
			return err
		}
	}
	return nil
}
