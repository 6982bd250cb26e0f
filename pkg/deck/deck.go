// Package deck defines the slide tree model shared by the parser, the
// navigation controller, and the renderers.
//
// A Document is an ordered forest of SlideNodes. Top-level nodes are the
// horizontal slides of a presentation; a node's children form the vertical
// stack entered below it. Each node carries an ordered body of content
// blocks, and each block contributes one or more reveal fragments (bullet
// lists reveal item by item, every other block reveals as a whole).
//
// Documents are built once by pkg/parse and are read-only afterwards.
// Navigation and rendering only ever traverse the tree; reloading a deck
// means parsing a fresh Document.
//
// # Usage
//
//	doc, err := parse.Parse(src)
//	if err != nil {
//	    return err
//	}
//	node, err := doc.Resolve(deck.Path{0, 1})
//	if err != nil {
//	    return err
//	}
//	total := node.FragmentCount()
package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Document is a fully parsed deck. It owns the root slides and is immutable
// after parsing.
type Document struct {
	// Title is the deck title, taken from the first top-level heading or the
	// source filename.
	Title string

	// Source is the path the deck was loaded from. Relative image paths are
	// resolved against its directory. Empty for in-memory decks.
	Source string

	// Slides are the top-level (depth 0) slide nodes in document order.
	Slides []*SlideNode
}

// SlideNode is one slide in the tree. Children are the nested vertical
// slides shown below this node.
type SlideNode struct {
	Title    string
	Body     []Block
	Children []*SlideNode

	// Depth is 0 for top-level slides; a child's depth is its parent's
	// depth plus one.
	Depth int
}

// Path addresses a node as child indices from the document root.
// An empty path is invalid; Path{2, 0} is the first child of the third
// top-level slide.
type Path []int

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	c := make(Path, len(p))
	copy(c, p)
	return c
}

// Equal reports whether two paths address the same node.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String formats the path as dot-separated indices, e.g. "2.0.1".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// ParsePath parses a dot-separated index path like "2.0.1".
func ParsePath(s string) (Path, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty path")
	}
	parts := strings.Split(s, ".")
	p := make(Path, len(parts))
	for i, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("invalid path segment %q", part)
		}
		p[i] = idx
	}
	return p, nil
}

// Resolve walks the path from the document root and returns the addressed
// node. It fails if any index is out of range.
func (d *Document) Resolve(p Path) (*SlideNode, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("empty path")
	}
	siblings := d.Slides
	var node *SlideNode
	for i, idx := range p {
		if idx < 0 || idx >= len(siblings) {
			return nil, fmt.Errorf("path %s: index %d out of range at depth %d", p, idx, i)
		}
		node = siblings[idx]
		siblings = node.Children
	}
	return node, nil
}

// SlideCount returns the total number of nodes in the tree.
func (d *Document) SlideCount() int {
	count := 0
	d.Walk(func(*SlideNode, Path) { count++ })
	return count
}

// Walk visits every node in presentation order (a node before its children,
// children before the next sibling).
func (d *Document) Walk(fn func(node *SlideNode, path Path)) {
	var visit func(nodes []*SlideNode, prefix Path)
	visit = func(nodes []*SlideNode, prefix Path) {
		for i, n := range nodes {
			p := append(prefix.Clone(), i)
			fn(n, p)
			visit(n.Children, p)
		}
	}
	visit(d.Slides, nil)
}

// FragmentCount returns the number of reveal steps in the node's body.
// Bullet lists contribute one fragment per top-level item; every other
// block contributes one.
func (n *SlideNode) FragmentCount() int {
	total := 0
	for _, b := range n.Body {
		total += b.Fragments()
	}
	return total
}

// Validate checks the depth invariant over the whole tree: top-level nodes
// have depth 0 and every child is exactly one deeper than its parent.
func (d *Document) Validate() error {
	var check func(nodes []*SlideNode, depth int, prefix Path) error
	check = func(nodes []*SlideNode, depth int, prefix Path) error {
		for i, n := range nodes {
			p := append(prefix.Clone(), i)
			if n.Depth != depth {
				return fmt.Errorf("node %s: depth %d, want %d", p, n.Depth, depth)
			}
			if err := check(n.Children, depth+1, p); err != nil {
				return err
			}
		}
		return nil
	}
	return check(d.Slides, 0, nil)
}
