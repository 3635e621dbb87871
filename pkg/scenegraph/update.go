package scenegraph

import "github.com/Faultbox/meshview/pkg/math"

// RequestUpdate marks n and every descendant Dirty. It runs eagerly so that
// State is always accurate; recomputation itself is deferred to the next
// derived query.
func (n *Node) RequestUpdate() {
	n.state = Dirty
	for _, child := range n.children {
		child.RequestUpdate()
	}
}

// State returns whether the cached derived transform is current.
func (n *Node) State() State { return n.state }

// IsDirty reports whether the next derived query will recompute.
func (n *Node) IsDirty() bool { return n.state == Dirty }

// DerivedOrientation returns the world-space orientation.
func (n *Node) DerivedOrientation() math.Quat {
	if n.state == Dirty {
		n.update()
	}
	return n.derivedOrientation
}

// DerivedPosition returns the world-space position.
func (n *Node) DerivedPosition() math.Vec3 {
	if n.state == Dirty {
		n.update()
	}
	return n.derivedPosition
}

// DerivedScale returns the world-space scale.
func (n *Node) DerivedScale() math.Vec3 {
	if n.state == Dirty {
		n.update()
	}
	return n.derivedScale
}

// DerivedTransform returns the world matrix
// Translate(DerivedPosition) * Rotate(DerivedOrientation) * Scale(DerivedScale),
// suitable as a model matrix.
func (n *Node) DerivedTransform() math.Mat4 {
	if n.state == Dirty {
		n.update()
	}
	return n.derivedTransform
}

// update combines the local transform with the parent's derived transform.
// A dirty parent is resolved first, so resolution walks toward the root and
// combines on the way back down.
func (n *Node) update() {
	parentPos := math.Vec3{}
	parentOri := math.QuatIdentity()
	parentScale := math.Vec3One()
	if p := n.parent; p != nil {
		if p.state == Dirty {
			p.update()
		}
		parentPos = p.derivedPosition
		parentOri = p.derivedOrientation
		parentScale = p.derivedScale
	}

	if n.inheritOrientation {
		n.derivedOrientation = parentOri.Mul(n.orientation)
	} else {
		n.derivedOrientation = n.orientation
	}

	if n.inheritScale {
		n.derivedScale = parentScale.Mul(n.scale)
	} else {
		n.derivedScale = n.scale
	}

	// The offset is scaled and rotated by the parent only as far as the
	// inheritance flags allow; translation always composes.
	offset := n.position
	if n.inheritScale {
		offset = parentScale.Mul(offset)
	}
	if n.inheritOrientation {
		offset = parentOri.Rotate(offset)
	}
	n.derivedPosition = parentPos.Add(offset)

	n.derivedTransform = math.TRS(n.derivedPosition, n.derivedOrientation, n.derivedScale)

	n.updates++
	n.state = Clean
}
