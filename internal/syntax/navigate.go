package syntax

import "iter"

// Match filters nodes during navigation. A nil Match accepts every node.
type Match func(NodeID) bool

func (m Match) accepts(id NodeID) bool {
	return m == nil || m(id)
}

// siblingIndex returns the position of id in its parent's child list.
func (t *Tree) siblingIndex(id NodeID) (NodeID, int) {
	p := t.Parent(id)
	if p == NoNode {
		return NoNode, -1
	}
	for i, c := range t.nodes[p].children {
		if c == id {
			return p, i
		}
	}
	return p, -1
}

// NextSibling returns the first following sibling of id accepted by match.
func (t *Tree) NextSibling(id NodeID, match Match) NodeID {
	p, i := t.siblingIndex(id)
	if i < 0 {
		return NoNode
	}
	for _, c := range t.nodes[p].children[i+1:] {
		if match.accepts(c) {
			return c
		}
	}
	return NoNode
}

// PrevSibling returns the nearest preceding sibling of id accepted by match.
func (t *Tree) PrevSibling(id NodeID, match Match) NodeID {
	p, i := t.siblingIndex(id)
	if i < 0 {
		return NoNode
	}
	siblings := t.nodes[p].children
	for j := i - 1; j >= 0; j-- {
		if match.accepts(siblings[j]) {
			return siblings[j]
		}
	}
	return NoNode
}

// FirstLeaf returns the first leaf of the subtree rooted at id.
func (t *Tree) FirstLeaf(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	if t.nodes[id].leaf {
		return id
	}
	for _, c := range t.nodes[id].children {
		if l := t.FirstLeaf(c); l != NoNode {
			return l
		}
	}
	return NoNode
}

// LastLeaf returns the last leaf of the subtree rooted at id.
func (t *Tree) LastLeaf(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	if t.nodes[id].leaf {
		return id
	}
	c := t.nodes[id].children
	for i := len(c) - 1; i >= 0; i-- {
		if l := t.LastLeaf(c[i]); l != NoNode {
			return l
		}
	}
	return NoNode
}

// NextLeaf returns the first leaf after the subtree of id, in document
// order, accepted by match.
func (t *Tree) NextLeaf(id NodeID, match Match) NodeID {
	for cur := t.nextLeaf(id); cur != NoNode; cur = t.nextLeaf(cur) {
		if match.accepts(cur) {
			return cur
		}
	}
	return NoNode
}

// PrevLeaf returns the nearest leaf before the subtree of id, in document
// order, accepted by match.
func (t *Tree) PrevLeaf(id NodeID, match Match) NodeID {
	for cur := t.prevLeaf(id); cur != NoNode; cur = t.prevLeaf(cur) {
		if match.accepts(cur) {
			return cur
		}
	}
	return NoNode
}

func (t *Tree) nextLeaf(id NodeID) NodeID {
	for cur := id; cur != NoNode; cur = t.Parent(cur) {
		for s := t.NextSibling(cur, nil); s != NoNode; s = t.NextSibling(s, nil) {
			if l := t.FirstLeaf(s); l != NoNode {
				return l
			}
		}
	}
	return NoNode
}

func (t *Tree) prevLeaf(id NodeID) NodeID {
	for cur := id; cur != NoNode; cur = t.Parent(cur) {
		for s := t.PrevSibling(cur, nil); s != NoNode; s = t.PrevSibling(s, nil) {
			if l := t.LastLeaf(s); l != NoNode {
				return l
			}
		}
	}
	return NoNode
}

// Ancestor returns the nearest proper ancestor of id with the given kind.
func (t *Tree) Ancestor(id NodeID, kind Kind) NodeID {
	for cur := t.Parent(id); cur != NoNode; cur = t.Parent(cur) {
		if t.nodes[cur].kind == kind {
			return cur
		}
	}
	return NoNode
}

// Leaves yields the leaves of the subtree rooted at id in document order.
// The tree must not be mutated while iterating.
func (t *Tree) Leaves(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		t.walkLeaves(id, yield)
	}
}

func (t *Tree) walkLeaves(id NodeID, yield func(NodeID) bool) bool {
	if !t.valid(id) {
		return true
	}
	if t.nodes[id].leaf {
		return yield(id)
	}
	for _, c := range t.nodes[id].children {
		if !t.walkLeaves(c, yield) {
			return false
		}
	}
	return true
}

// Walk visits the subtree rooted at id in pre-order. Returning false from fn
// skips the children of the visited node.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !t.valid(id) || !fn(id) {
		return
	}
	for _, c := range t.nodes[id].children {
		t.Walk(c, fn)
	}
}
