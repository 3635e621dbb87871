// Package scenegraph implements a tree of transform nodes. Each node stores a
// transform relative to its parent and lazily resolves its world-space
// ("derived") transform, recomputing only after something upstream changed.
//
// The package is single-threaded: callers serialize all mutations and derived
// queries on a subtree.
package scenegraph

import (
	"fmt"

	"github.com/Faultbox/meshview/pkg/math"
)

// Node is a scene graph element. A parent owns its children; the parent
// reference held by a child is only used to walk upward during resolution.
type Node struct {
	name string

	parent   *Node
	children []*Node

	// Local transform, relative to the parent.
	position           math.Vec3
	orientation        math.Quat
	scale              math.Vec3
	inheritOrientation bool
	inheritScale       bool

	// Rest pose captured by SetInitialState.
	initialPosition    math.Vec3
	initialOrientation math.Quat
	initialScale       math.Vec3

	// Cached world transform, valid while state == Clean.
	derivedPosition    math.Vec3
	derivedOrientation math.Quat
	derivedScale       math.Vec3
	derivedTransform   math.Mat4
	state              State

	// updates counts runs of the combination step.
	updates uint64
}

// New creates a detached node with an identity transform.
// The node starts Dirty.
func New(name string) *Node {
	return &Node{
		name:               name,
		orientation:        math.QuatIdentity(),
		scale:              math.Vec3One(),
		inheritOrientation: true,
		inheritScale:       true,
		initialOrientation: math.QuatIdentity(),
		initialScale:       math.Vec3One(),
		derivedOrientation: math.QuatIdentity(),
		derivedScale:       math.Vec3One(),
		derivedTransform:   math.Identity(),
		state:              Dirty,
	}
}

// Name returns the node name. Names need not be unique.
func (n *Node) Name() string { return n.name }

// SetName renames the node.
func (n *Node) SetName(name string) { n.name = name }

// String implements fmt.Stringer.
func (n *Node) String() string {
	return fmt.Sprintf("Node(%q)", n.name)
}

// --- Tree manipulation ---

// SetParent sets the parent reference of n. It does not add n to the
// children of parent; use AddChild for that, or Attach to do both.
// Keeping the two sides consistent is the caller's responsibility.
func (n *Node) SetParent(parent *Node) {
	n.parent = parent
	n.RequestUpdate()
}

// Parent returns the parent of n, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// AddChild appends child to the children of n. It does not set the parent
// reference of child and performs no validation: adding a node that belongs
// to another parent, or one of n's ancestors, corrupts the tree.
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)
}

// Attach makes child the last child of n, updating both sides of the
// relation. A child that already has a parent is removed from it first.
// Attach fails with ErrCycle if child is n or one of its ancestors.
func (n *Node) Attach(child *Node) error {
	if child == nil {
		return fmt.Errorf("attach to %q: %w", n.name, ErrNilNode)
	}
	if child.IsAncestorOf(n) {
		return fmt.Errorf("attach %q to %q: %w", child.name, n.name, ErrCycle)
	}
	child.Detach()
	child.SetParent(n)
	n.AddChild(child)
	return nil
}

// RemoveChild detaches child from n, clears its parent reference and marks
// it dirty. It reports whether child was found.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			child.parent = nil
			child.RequestUpdate()
			return true
		}
	}
	return false
}

// Detach removes n from its parent. No-op for a root.
func (n *Node) Detach() {
	if n.parent == nil {
		return
	}
	if !n.parent.RemoveChild(n) {
		// Parent reference without the matching child entry.
		n.parent = nil
		n.RequestUpdate()
	}
}

// Destroy detaches n and releases its whole subtree. A destroyed node must
// not be used again.
func (n *Node) Destroy() {
	n.Detach()
	n.destroy()
}

func (n *Node) destroy() {
	for _, child := range n.children {
		child.parent = nil
		child.destroy()
	}
	n.children = nil
	n.parent = nil
}

// Children returns the child list. The returned slice must not be mutated.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// ChildAt returns the child at index i.
func (n *Node) ChildAt(i int) *Node { return n.children[i] }

// Root returns the topmost ancestor of n (n itself for a root).
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// IsAncestorOf reports whether n is other or one of other's ancestors.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}
