package scene

import (
	"github.com/taigrr/painter/pkg/math3d"
)

// Transform is a node's placement relative to its parent. Rotation holds
// Euler angles in radians applied as Rx · Ry · Rz.
type Transform struct {
	Position math3d.Vec3
	Rotation math3d.Vec3
	Scale    math3d.Vec3
}

// IdentityTransform returns a transform that leaves geometry unchanged.
func IdentityTransform() Transform {
	return Transform{Scale: math3d.V3(1, 1, 1)}
}

// RotationMatrix returns the rotation-only part of the transform, used to
// carry normals.
func (t Transform) RotationMatrix() math3d.Mat4 {
	return math3d.RotateEuler(t.Rotation.X, t.Rotation.Y, t.Rotation.Z)
}

// Matrix returns the local-to-parent matrix T · R · S.
func (t Transform) Matrix() math3d.Mat4 {
	return math3d.Translate(t.Position).
		Mul(t.RotationMatrix()).
		Mul(math3d.Scale(t.Scale))
}
