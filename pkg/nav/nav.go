// Package nav implements presentation navigation over a slide tree.
//
// A Controller owns the single mutable Cursor of a presentation. Advance and
// Retreat move through reveal fragments first and slides second, descending
// into nested vertical stacks and ascending back out, so that repeatedly
// pressing forward visits every fragment of every slide exactly once in
// document order. The controller is driven serially by one event loop; it
// performs no locking of its own.
package nav

import (
	"fmt"

	"github.com/halvard/deckard/pkg/deck"
)

// Cursor is the presentation position: a path into the slide tree plus the
// number of revealed fragments on that slide.
type Cursor struct {
	Path     deck.Path `json:"path"`
	Fragment int       `json:"fragment"`
}

// Clone returns an independent copy of the cursor.
func (c Cursor) Clone() Cursor {
	return Cursor{Path: c.Path.Clone(), Fragment: c.Fragment}
}

// Equal reports whether two cursors mark the same position.
func (c Cursor) Equal(other Cursor) bool {
	return c.Fragment == other.Fragment && c.Path.Equal(other.Path)
}

// String formats the cursor as "path+fragment", e.g. "2.0+3".
func (c Cursor) String() string {
	return fmt.Sprintf("%s+%d", c.Path, c.Fragment)
}

// InvalidPathError is returned by JumpTo and Restore when the requested
// position does not resolve to a node. The cursor is left untouched.
type InvalidPathError struct {
	Path  deck.Path
	Cause error
}

// Error implements the error interface.
func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid slide path %q: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying resolution error.
func (e *InvalidPathError) Unwrap() error { return e.Cause }

// Controller tracks the cursor for one presentation run.
type Controller struct {
	doc *deck.Document
	cur Cursor
}

// New creates a controller positioned on the first slide with nothing
// revealed. It fails on an empty document.
func New(doc *deck.Document) (*Controller, error) {
	if doc == nil || len(doc.Slides) == 0 {
		return nil, fmt.Errorf("deck has no slides")
	}
	return &Controller{
		doc: doc,
		cur: Cursor{Path: deck.Path{0}},
	}, nil
}

// Cursor returns a copy of the current position.
func (c *Controller) Cursor() Cursor {
	return c.cur.Clone()
}

// Node returns the slide under the cursor.
func (c *Controller) Node() *deck.SlideNode {
	node, err := c.doc.Resolve(c.cur.Path)
	if err != nil {
		// The cursor invariant guarantees resolution; a failure here means
		// the document was mutated behind the controller's back.
		panic(fmt.Sprintf("nav: cursor no longer resolves: %v", err))
	}
	return node
}

// Advance moves one step forward: reveal the next fragment, else descend
// into the first child, else move to the next slide at the nearest depth
// that has one. It reports false, leaving the cursor unchanged, at the end
// of the document.
func (c *Controller) Advance() bool {
	node := c.Node()

	if c.cur.Fragment < node.FragmentCount() {
		c.cur.Fragment++
		return true
	}

	if len(node.Children) > 0 {
		c.cur.Path = append(c.cur.Path, 0)
		c.cur.Fragment = 0
		return true
	}

	// Next sibling, ascending ancestors until one exists.
	for i := len(c.cur.Path) - 1; i >= 0; i-- {
		if c.cur.Path[i]+1 < len(c.siblings(c.cur.Path[:i+1])) {
			c.cur.Path = c.cur.Path[:i+1]
			c.cur.Path[i]++
			c.cur.Fragment = 0
			return true
		}
	}
	return false
}

// Retreat moves one step backward, exactly inverting Advance: hide the last
// fragment, else move to the deepest last descendant of the previous slide
// (fully revealed), else ascend to the parent (fully revealed). It reports
// false at the start of the document.
func (c *Controller) Retreat() bool {
	if c.cur.Fragment > 0 {
		c.cur.Fragment--
		return true
	}

	last := len(c.cur.Path) - 1
	if c.cur.Path[last] > 0 {
		c.cur.Path[last]--
		c.descendLast()
		return true
	}

	if last > 0 {
		c.cur.Path = c.cur.Path[:last]
		c.cur.Fragment = c.Node().FragmentCount()
		return true
	}
	return false
}

// JumpTo moves directly to the slide at path with nothing revealed. On an
// unresolvable path it returns an *InvalidPathError and the cursor keeps
// its previous position.
func (c *Controller) JumpTo(path deck.Path) error {
	if _, err := c.doc.Resolve(path); err != nil {
		return &InvalidPathError{Path: path.Clone(), Cause: err}
	}
	c.cur = Cursor{Path: path.Clone()}
	return nil
}

// Restore places the cursor at a previously saved position, typically from
// a presenter session. The fragment count is validated against the node.
func (c *Controller) Restore(cur Cursor) error {
	node, err := c.doc.Resolve(cur.Path)
	if err != nil {
		return &InvalidPathError{Path: cur.Path.Clone(), Cause: err}
	}
	if cur.Fragment < 0 || cur.Fragment > node.FragmentCount() {
		return &InvalidPathError{
			Path:  cur.Path.Clone(),
			Cause: fmt.Errorf("fragment %d out of range [0,%d]", cur.Fragment, node.FragmentCount()),
		}
	}
	c.cur = cur.Clone()
	return nil
}

// First moves to the very first slide with nothing revealed.
func (c *Controller) First() {
	c.cur = Cursor{Path: deck.Path{0}}
}

// Last moves to the deepest last slide with everything revealed.
func (c *Controller) Last() {
	c.cur = Cursor{Path: deck.Path{len(c.doc.Slides) - 1}}
	c.descendLast()
}

// Position returns the 1-based index of the current slide in presentation
// order and the total slide count, for progress display.
func (c *Controller) Position() (current, total int) {
	idx := 0
	c.doc.Walk(func(_ *deck.SlideNode, p deck.Path) {
		idx++
		if p.Equal(c.cur.Path) {
			current = idx
		}
	})
	return current, idx
}

// descendLast walks to the deepest last descendant of the current node and
// reveals all of its fragments.
func (c *Controller) descendLast() {
	node := c.Node()
	for len(node.Children) > 0 {
		c.cur.Path = append(c.cur.Path, len(node.Children)-1)
		node = node.Children[len(node.Children)-1]
	}
	c.cur.Fragment = node.FragmentCount()
}

// siblings returns the sibling list containing the node at path.
func (c *Controller) siblings(path deck.Path) []*deck.SlideNode {
	if len(path) == 1 {
		return c.doc.Slides
	}
	parent, err := c.doc.Resolve(path[:len(path)-1])
	if err != nil {
		panic(fmt.Sprintf("nav: cursor no longer resolves: %v", err))
	}
	return parent.Children
}
