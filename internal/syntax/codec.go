package syntax

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Document is a parsed source file as produced by an external parser: the
// path of the source it came from plus its syntax tree.
type Document struct {
	Source string
	Tree   *Tree
}

type dumpDocument struct {
	Source string    `yaml:"source,omitempty"`
	Root   *dumpNode `yaml:"root"`
}

// dumpNode is the YAML form of a node. A node carrying text is a leaf.
type dumpNode struct {
	Kind     string      `yaml:"kind"`
	Text     *string     `yaml:"text,omitempty"`
	Children []*dumpNode `yaml:"children,omitempty"`
}

// Decode reads a YAML tree dump.
func Decode(r io.Reader) (*Document, error) {
	var dump dumpDocument
	if err := yaml.NewDecoder(r).Decode(&dump); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("decoding tree dump: empty document")
		}
		return nil, fmt.Errorf("decoding tree dump: %w", err)
	}
	if dump.Root == nil {
		return nil, errors.New("decoding tree dump: missing root")
	}

	t := New()
	root, err := t.decodeNode(dump.Root, "root")
	if err != nil {
		return nil, fmt.Errorf("decoding tree dump: %w", err)
	}
	if err := t.SetRoot(root); err != nil {
		return nil, err
	}
	return &Document{Source: dump.Source, Tree: t}, nil
}

func (t *Tree) decodeNode(n *dumpNode, path string) (NodeID, error) {
	if n == nil {
		return NoNode, fmt.Errorf("%s: empty node", path)
	}
	kind, err := ParseKind(n.Kind)
	if err != nil {
		return NoNode, fmt.Errorf("%s: %w", path, err)
	}
	if n.Text != nil {
		if len(n.Children) > 0 {
			return NoNode, fmt.Errorf("%s: %s has both text and children", path, kind)
		}
		return t.NewLeaf(kind, *n.Text), nil
	}
	children := make([]NodeID, 0, len(n.Children))
	for i, c := range n.Children {
		id, err := t.decodeNode(c, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return NoNode, err
		}
		children = append(children, id)
	}
	return t.NewNode(kind, children...), nil
}

// Encode writes doc as a YAML tree dump.
func Encode(w io.Writer, doc *Document) error {
	if doc == nil || doc.Tree == nil || doc.Tree.Root() == NoNode {
		return errors.New("encoding tree dump: empty tree")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	dump := dumpDocument{Source: doc.Source, Root: doc.Tree.encodeNode(doc.Tree.Root())}
	if err := enc.Encode(&dump); err != nil {
		return fmt.Errorf("encoding tree dump: %w", err)
	}
	return enc.Close()
}

func (t *Tree) encodeNode(id NodeID) *dumpNode {
	n := &t.nodes[id]
	d := &dumpNode{Kind: n.kind.String()}
	if n.leaf {
		text := n.text
		d.Text = &text
		return d
	}
	for _, c := range n.children {
		d.Children = append(d.Children, t.encodeNode(c))
	}
	return d
}
