package syntax

import (
	"fmt"
	"slices"
)

// InsertChild inserts the detached node child into parent before the child
// before. When before is NoNode the child is appended.
func (t *Tree) InsertChild(parent, child, before NodeID) error {
	if !t.valid(parent) || t.nodes[parent].leaf {
		return fmt.Errorf("%w: cannot insert into leaf or unknown node %d", ErrInvalidMutation, parent)
	}
	if !t.valid(child) || t.nodes[child].parent != NoNode || child == t.root {
		return fmt.Errorf("%w: node %d is unknown or already attached", ErrInvalidMutation, child)
	}
	for p := parent; p != NoNode; p = t.nodes[p].parent {
		if p == child {
			return fmt.Errorf("%w: node %d cannot become its own descendant", ErrInvalidMutation, child)
		}
	}

	children := t.nodes[parent].children
	at := len(children)
	if before != NoNode {
		at = slices.Index(children, before)
		if at < 0 {
			return fmt.Errorf("%w: node %d is not a child of %d", ErrInvalidMutation, before, parent)
		}
	}
	t.nodes[parent].children = slices.Insert(children, at, child)
	t.nodes[child].parent = parent
	t.reindex()
	return nil
}

// InsertAfter inserts the detached node child right after anchor.
func (t *Tree) InsertAfter(anchor, child NodeID) error {
	p := t.Parent(anchor)
	if p == NoNode {
		return fmt.Errorf("%w: node %d has no parent", ErrInvalidMutation, anchor)
	}
	return t.InsertChild(p, child, t.NextSibling(anchor, nil))
}

// InsertBefore inserts the detached node child right before anchor.
func (t *Tree) InsertBefore(anchor, child NodeID) error {
	p := t.Parent(anchor)
	if p == NoNode {
		return fmt.Errorf("%w: node %d has no parent", ErrInvalidMutation, anchor)
	}
	return t.InsertChild(p, child, anchor)
}

// RemoveChild detaches child from parent. The detached subtree stays intact
// and can be inserted elsewhere.
func (t *Tree) RemoveChild(parent, child NodeID) error {
	if !t.valid(child) || t.Parent(child) != parent {
		return fmt.Errorf("%w: node %d is not a child of %d", ErrInvalidMutation, child, parent)
	}
	t.nodes[parent].children = slices.DeleteFunc(t.nodes[parent].children, func(c NodeID) bool {
		return c == child
	})
	t.nodes[child].parent = NoNode
	t.reindex()
	return nil
}

// Detach removes id from its parent.
func (t *Tree) Detach(id NodeID) error {
	return t.RemoveChild(t.Parent(id), id)
}

// ReplaceLeafText sets the text of a leaf.
func (t *Tree) ReplaceLeafText(leaf NodeID, text string) error {
	if !t.valid(leaf) || !t.nodes[leaf].leaf {
		return fmt.Errorf("%w: node %d is not a leaf", ErrInvalidMutation, leaf)
	}
	t.nodes[leaf].text = text
	t.reindex()
	return nil
}

// MergeAdjacentWhitespace joins runs of adjacent whitespace children of
// parent into the first leaf of each run and drops empty whitespace leaves.
func (t *Tree) MergeAdjacentWhitespace(parent NodeID) {
	if !t.valid(parent) || t.nodes[parent].leaf {
		return
	}
	var (
		kept []NodeID
		last = NoNode
	)
	for _, c := range t.nodes[parent].children {
		n := &t.nodes[c]
		if n.kind != Whitespace {
			kept = append(kept, c)
			last = NoNode
			continue
		}
		if last != NoNode {
			t.nodes[last].text += n.text
			n.parent = NoNode
			continue
		}
		kept = append(kept, c)
		last = c
	}
	kept = slices.DeleteFunc(kept, func(c NodeID) bool {
		if t.nodes[c].kind == Whitespace && t.nodes[c].text == "" {
			t.nodes[c].parent = NoNode
			return true
		}
		return false
	})
	t.nodes[parent].children = kept
	t.reindex()
}

// UpsertWhitespaceBefore makes the leaf immediately before id a whitespace
// leaf with the given text, replacing an existing one or inserting a new
// leaf right before id.
func (t *Tree) UpsertWhitespaceBefore(id NodeID, text string) error {
	if prev := t.PrevLeaf(id, nil); prev != NoNode && t.nodes[prev].kind == Whitespace {
		return t.ReplaceLeafText(prev, text)
	}
	return t.InsertBefore(id, t.NewLeaf(Whitespace, text))
}

// UpsertWhitespaceAfter makes the leaf immediately after id a whitespace
// leaf with the given text, replacing an existing one or inserting a new
// leaf right after id.
func (t *Tree) UpsertWhitespaceAfter(id NodeID, text string) error {
	if next := t.NextLeaf(id, nil); next != NoNode && t.nodes[next].kind == Whitespace {
		return t.ReplaceLeafText(next, text)
	}
	return t.InsertAfter(id, t.NewLeaf(Whitespace, text))
}
