package syntax

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidMutation is returned when a mutation would break the tree
	// invariants, e.g. replacing the text of a composite node.
	ErrInvalidMutation = errors.New("invalid tree mutation")

	// ErrInconsistentTree signals that the tree does not have the shape a
	// caller relied on, e.g. a list without its closing delimiter.
	ErrInconsistentTree = errors.New("inconsistent syntax tree")
)

// NodeID is a stable handle to a node stored in a Tree.
type NodeID int32

// NoNode is the NodeID returned when no node matches.
const NoNode NodeID = -1

// node is the arena slot backing a NodeID.
type node struct {
	kind     Kind
	leaf     bool
	text     string   // Leaf text; empty for composites.
	parent   NodeID   // Non-owning back reference.
	children []NodeID // Owned, in source order.
	start    int      // Absolute byte offset, valid while attached.
	length   int
}

// Tree is an editable concrete syntax tree. Nodes live in an arena and are
// addressed by NodeID; a node removed from the tree stays in the arena,
// detached, and may be inserted again.
//
// Offsets are recomputed after every mutation, so concatenating the leaf
// texts in document order always reproduces Render and every StartOffset is
// consistent with it.
type Tree struct {
	nodes []node
	root  NodeID
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{root: NoNode}
}

// NewLeaf allocates a detached leaf.
func (t *Tree) NewLeaf(kind Kind, text string) NodeID {
	t.nodes = append(t.nodes, node{kind: kind, leaf: true, text: text, parent: NoNode})
	return NodeID(len(t.nodes) - 1)
}

// NewNode allocates a detached composite node owning the given detached
// children. It panics if a child is already attached, since that is a
// programming error at construction time.
func (t *Tree) NewNode(kind Kind, children ...NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{kind: kind, parent: NoNode})
	for _, c := range children {
		if !t.valid(c) || t.nodes[c].parent != NoNode || c == t.root {
			panic(fmt.Sprintf("syntax: NewNode child %d is invalid or already attached", c))
		}
		t.nodes[c].parent = id
	}
	t.nodes[id].children = append([]NodeID(nil), children...)
	return id
}

// SetRoot makes id the root of the tree.
func (t *Tree) SetRoot(id NodeID) error {
	if !t.valid(id) || t.nodes[id].parent != NoNode {
		return fmt.Errorf("%w: root must be a detached node", ErrInvalidMutation)
	}
	t.root = id
	t.reindex()
	return nil
}

// Root returns the root node, or NoNode for an empty tree.
func (t *Tree) Root() NodeID {
	return t.root
}

// Kind returns the kind of id.
func (t *Tree) Kind(id NodeID) Kind {
	if !t.valid(id) {
		return KindInvalid
	}
	return t.nodes[id].kind
}

// IsLeaf reports whether id is a leaf.
func (t *Tree) IsLeaf(id NodeID) bool {
	return t.valid(id) && t.nodes[id].leaf
}

// Parent returns the parent of id, or NoNode for the root and detached nodes.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	return t.nodes[id].parent
}

// Children returns a copy of the children of id in source order.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return append([]NodeID(nil), t.nodes[id].children...)
}

// FirstChild returns the first child of id.
func (t *Tree) FirstChild(id NodeID) NodeID {
	if !t.valid(id) || len(t.nodes[id].children) == 0 {
		return NoNode
	}
	return t.nodes[id].children[0]
}

// LastChild returns the last child of id.
func (t *Tree) LastChild(id NodeID) NodeID {
	if !t.valid(id) || len(t.nodes[id].children) == 0 {
		return NoNode
	}
	c := t.nodes[id].children
	return c[len(c)-1]
}

// Text returns the source text of the subtree rooted at id.
func (t *Tree) Text(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	if t.nodes[id].leaf {
		return t.nodes[id].text
	}
	var b strings.Builder
	t.writeText(&b, id)
	return b.String()
}

func (t *Tree) writeText(b *strings.Builder, id NodeID) {
	n := &t.nodes[id]
	if n.leaf {
		b.WriteString(n.text)
		return
	}
	for _, c := range n.children {
		t.writeText(b, c)
	}
}

// Render returns the text of the whole tree.
func (t *Tree) Render() string {
	return t.Text(t.root)
}

// StartOffset returns the absolute byte offset of id. The value is only
// meaningful while id is attached to the tree.
func (t *Tree) StartOffset(id NodeID) int {
	if !t.valid(id) {
		return -1
	}
	return t.nodes[id].start
}

// TextLength returns the byte length of the text of id.
func (t *Tree) TextLength(id NodeID) int {
	if !t.valid(id) {
		return 0
	}
	if t.attached(id) {
		return t.nodes[id].length
	}
	return len(t.Text(id))
}

// EndOffset returns the offset just past the text of id.
func (t *Tree) EndOffset(id NodeID) int {
	return t.StartOffset(id) + t.TextLength(id)
}

// Clone returns a deep copy of the tree. NodeIDs stay valid in the copy.
func (t *Tree) Clone() *Tree {
	c := &Tree{root: t.root, nodes: make([]node, len(t.nodes))}
	for i, n := range t.nodes {
		n.children = append([]NodeID(nil), n.children...)
		c.nodes[i] = n
	}
	return c
}

// Spec declares a subtree. A Spec without children and with IsLeaf set, or
// with a non-empty Text, becomes a leaf.
type Spec struct {
	Kind     Kind
	Text     string
	IsLeaf   bool
	Children []Spec
}

// FromSpec builds a tree whose root is described by s.
func FromSpec(s Spec) *Tree {
	t := New()
	root := t.build(s)
	// A freshly built node is always detached, so SetRoot cannot fail.
	_ = t.SetRoot(root)
	return t
}

func (t *Tree) build(s Spec) NodeID {
	if s.IsLeaf || (s.Text != "" && len(s.Children) == 0) {
		return t.NewLeaf(s.Kind, s.Text)
	}
	children := make([]NodeID, 0, len(s.Children))
	for _, c := range s.Children {
		children = append(children, t.build(c))
	}
	return t.NewNode(s.Kind, children...)
}

// Spec returns the declarative form of the subtree rooted at id.
func (t *Tree) Spec(id NodeID) Spec {
	n := &t.nodes[id]
	if n.leaf {
		return Spec{Kind: n.kind, Text: n.text, IsLeaf: true}
	}
	s := Spec{Kind: n.kind, Children: make([]Spec, 0, len(n.children))}
	for _, c := range n.children {
		s.Children = append(s.Children, t.Spec(c))
	}
	return s
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// attached reports whether id is reachable from the root.
func (t *Tree) attached(id NodeID) bool {
	for cur := id; cur != NoNode; cur = t.nodes[cur].parent {
		if cur == t.root {
			return true
		}
	}
	return false
}

// reindex recomputes start offsets and lengths of every attached node.
func (t *Tree) reindex() {
	if t.root == NoNode {
		return
	}
	t.layout(t.root, 0)
}

func (t *Tree) layout(id NodeID, start int) int {
	n := &t.nodes[id]
	n.start = start
	if n.leaf {
		n.length = len(n.text)
		return start + n.length
	}
	end := start
	for _, c := range n.children {
		end = t.layout(c, end)
	}
	n.length = end - start
	return end
}
