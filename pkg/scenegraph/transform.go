package scenegraph

import "github.com/Faultbox/meshview/pkg/math"

// --- Local transform ---

// SetPosition sets the position relative to the parent.
func (n *Node) SetPosition(p math.Vec3) {
	n.position = p
	n.RequestUpdate()
}

// Position returns the position relative to the parent.
func (n *Node) Position() math.Vec3 { return n.position }

// SetOrientation sets the orientation relative to the parent.
// q is expected to be a unit quaternion.
func (n *Node) SetOrientation(q math.Quat) {
	n.orientation = q
	n.RequestUpdate()
}

// Orientation returns the orientation relative to the parent.
func (n *Node) Orientation() math.Quat { return n.orientation }

// SetScale sets the per-axis scale.
func (n *Node) SetScale(s math.Vec3) {
	n.scale = s
	n.RequestUpdate()
}

// Scale returns the per-axis scale.
func (n *Node) Scale() math.Vec3 { return n.scale }

// Translate moves the node by delta in parent space.
func (n *Node) Translate(delta math.Vec3) {
	n.SetPosition(n.position.Add(delta))
}

// Rotate applies q after the current orientation, in local space.
func (n *Node) Rotate(q math.Quat) {
	n.SetOrientation(n.orientation.Mul(q).Normalize())
}

// SetInheritOrientation controls whether the parent's derived orientation
// affects this node.
func (n *Node) SetInheritOrientation(inherit bool) {
	n.inheritOrientation = inherit
	n.RequestUpdate()
}

// InheritOrientation reports whether the parent's orientation is inherited.
func (n *Node) InheritOrientation() bool { return n.inheritOrientation }

// SetInheritScale controls whether the parent's derived scale affects this
// node.
func (n *Node) SetInheritScale(inherit bool) {
	n.inheritScale = inherit
	n.RequestUpdate()
}

// InheritScale reports whether the parent's scale is inherited.
func (n *Node) InheritScale() bool { return n.inheritScale }

// --- Initial state ---

// SetInitialState records the current local transform as the rest pose that
// animation starts from.
func (n *Node) SetInitialState() {
	n.initialPosition = n.position
	n.initialOrientation = n.orientation
	n.initialScale = n.scale
}

// ResetToInitialState restores the rest pose. Without a prior
// SetInitialState the node returns to the identity transform.
func (n *Node) ResetToInitialState() {
	n.position = n.initialPosition
	n.orientation = n.initialOrientation
	n.scale = n.initialScale
	n.RequestUpdate()
}

// InitialPosition returns the rest-pose position.
func (n *Node) InitialPosition() math.Vec3 { return n.initialPosition }

// InitialOrientation returns the rest-pose orientation.
func (n *Node) InitialOrientation() math.Quat { return n.initialOrientation }

// InitialScale returns the rest-pose scale.
func (n *Node) InitialScale() math.Vec3 { return n.initialScale }
