package scenegraph

import "strings"

// Walk calls fn for n and its descendants in depth-first pre-order,
// following child insertion order. If fn returns false the subtree below
// that node is skipped.
// The tree must not be changed until Walk returns.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// Find returns the first node named name in pre-order, or nil.
func (n *Node) Find(name string) *Node {
	if n.name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Path returns the slash-separated names from the root down to n.
func (n *Node) Path() string {
	names := make([]string, n.Depth()+1)
	i := len(names) - 1
	for p := n; p != nil; p = p.parent {
		names[i] = p.name
		i--
	}
	return strings.Join(names, "/")
}
