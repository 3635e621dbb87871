package math

import "github.com/go-gl/mathgl/mgl32"

// Conversions to and from go-gl/mathgl, for renderers that keep their own
// uniforms in mgl32 types. Both libraries use column-major float32 storage,
// so matrices convert without reordering.

// MGL returns v as an mgl32.Vec3.
func (v Vec3) MGL() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Vec3FromMGL converts an mgl32.Vec3.
func Vec3FromMGL(v mgl32.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// MGL returns q as an mgl32.Quat.
func (q Quat) MGL() mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
}

// QuatFromMGL converts an mgl32.Quat.
func QuatFromMGL(q mgl32.Quat) Quat {
	return Quat{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

// MGL returns m as an mgl32.Mat4.
func (m Mat4) MGL() mgl32.Mat4 {
	return mgl32.Mat4(m)
}

// Mat4FromMGL converts an mgl32.Mat4.
func Mat4FromMGL(m mgl32.Mat4) Mat4 {
	return Mat4(m)
}
