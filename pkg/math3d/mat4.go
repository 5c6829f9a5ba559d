package math3d

import (
	"errors"
	"math"
)

// ErrSingularMatrix is returned when inverting a matrix whose determinant is zero.
var ErrSingularMatrix = errors.New("math3d: singular matrix")

// Mat4 is a 4x4 matrix stored in row-major order and applied to column
// vectors as M · v.
//
// Memory layout (indices):
// | 0  1  2  3  |
// | 4  5  6  7  |
// | 8  9  10 11 |
// | 12 13 14 15 |
//
// For a transform matrix:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX creates a counter-clockwise rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY creates a counter-clockwise rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ creates a counter-clockwise rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotateEuler composes RotateX(x) · RotateY(y) · RotateZ(z).
func RotateEuler(x, y, z float64) Mat4 {
	return RotateX(x).Mul(RotateY(y)).Mul(RotateZ(z))
}

// Rotate creates a rotation matrix around an arbitrary axis.
// A zero axis yields the identity.
func Rotate(axis Vec3, angle float64) Mat4 {
	if axis.LenSq() == 0 {
		return Identity()
	}
	axis = axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// LookAtRotation returns the rotation that orients an object at eye so that
// its -Z axis points at target. It is the camera's world orientation, not a
// view matrix; invert the full world transform to get the view.
func LookAtRotation(eye, target, up Vec3) Mat4 {
	f := eye.Sub(target)
	if f.LenSq() == 0 {
		return Identity()
	}
	f = f.Normalize()

	s := up.Cross(f)
	if s.LenSq() < Epsilon*Epsilon {
		// up is parallel to the view direction; pick any perpendicular
		s = V3(0, 0, 1).Cross(f)
		if s.LenSq() < Epsilon*Epsilon {
			s = V3(1, 0, 0)
		}
	}
	s = s.Normalize()
	u := f.Cross(s)

	return Mat4{
		s.X, u.X, f.X, 0,
		s.Y, u.Y, f.Y, 0,
		s.Z, u.Z, f.Z, 0,
		0, 0, 0, 1,
	}
}

// Frustum creates a perspective projection from the near-plane rectangle.
// Points on the near plane land on clip-space z = -w.
func Frustum(left, right, bottom, top, near, far float64) Mat4 {
	rl := 1.0 / (right - left)
	tb := 1.0 / (top - bottom)
	fn := 1.0 / (far - near)

	return Mat4{
		2 * near * rl, 0, (right + left) * rl, 0,
		0, 2 * near * tb, (top + bottom) * tb, 0,
		0, 0, -(far + near) * fn, -2 * far * near * fn,
		0, 0, -1, 0,
	}
}

// Perspective creates a perspective projection matrix.
// fovy is vertical field of view in radians.
// aspect is width/height.
// near and far are clipping planes.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	top := math.Tan(fovy/2) * near
	right := top * aspect
	return Frustum(-right, right, -top, top, near, far)
}

// Orthographic creates an orthographic projection matrix.
func Orthographic(left, right, bottom, top, near, far float64) Mat4 {
	rl := 1.0 / (right - left)
	tb := 1.0 / (top - bottom)
	fn := 1.0 / (far - near)

	return Mat4{
		2 * rl, 0, 0, -(right + left) * rl,
		0, 2 * tb, 0, -(top + bottom) * tb,
		0, 0, -2 * fn, -(far + near) * fn,
		0, 0, 0, 1,
	}
}

// Viewport maps normalized device coordinates onto a viewport centered at
// the origin: x and y are scaled by half the viewport size, z from [-1,1]
// to [0,1].
func Viewport(width, height float64) Mat4 {
	return Mat4{
		width / 2, 0, 0, 0,
		0, height / 2, 0, 0,
		0, 0, 0.5, 0.5,
		0, 0, 0, 1,
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row*4+k] * b[k*4+col]
			}
			m[row*4+col] = sum
		}
	}
	return m
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

// MulPoint transforms a Vec3 as a point (w=1).
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 1)).PerspectiveDivide()
}

// MulDir transforms a Vec3 as a direction (w=0, no translation).
func (m Mat4) MulDir(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 0)).Vec3()
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// minors holds the twelve 2x2 sub-determinants shared by Determinant and
// Inverse: [0..5] from the top two rows, [6..11] from the bottom two.
type minors [12]float64

func (m Mat4) subDeterminants() minors {
	return minors{
		m[0]*m[5] - m[1]*m[4],
		m[0]*m[6] - m[2]*m[4],
		m[0]*m[7] - m[3]*m[4],
		m[1]*m[6] - m[2]*m[5],
		m[1]*m[7] - m[3]*m[5],
		m[2]*m[7] - m[3]*m[6],
		m[8]*m[13] - m[9]*m[12],
		m[8]*m[14] - m[10]*m[12],
		m[8]*m[15] - m[11]*m[12],
		m[9]*m[14] - m[10]*m[13],
		m[9]*m[15] - m[11]*m[13],
		m[10]*m[15] - m[11]*m[14],
	}
}

func (b *minors) det() float64 {
	return b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float64 {
	b := m.subDeterminants()
	return b.det()
}

// Inverse returns the inverse of the matrix, or ErrSingularMatrix when the
// determinant is zero.
func (m Mat4) Inverse() (Mat4, error) {
	b := m.subDeterminants()
	det := b.det()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Identity(), ErrSingularMatrix
	}
	d := 1 / det

	return Mat4{
		(m[5]*b[11] - m[6]*b[10] + m[7]*b[9]) * d,
		(m[2]*b[10] - m[1]*b[11] - m[3]*b[9]) * d,
		(m[13]*b[5] - m[14]*b[4] + m[15]*b[3]) * d,
		(m[10]*b[4] - m[9]*b[5] - m[11]*b[3]) * d,

		(m[6]*b[8] - m[4]*b[11] - m[7]*b[7]) * d,
		(m[0]*b[11] - m[2]*b[8] + m[3]*b[7]) * d,
		(m[14]*b[2] - m[12]*b[5] - m[15]*b[1]) * d,
		(m[8]*b[5] - m[10]*b[2] + m[11]*b[1]) * d,

		(m[4]*b[10] - m[5]*b[8] + m[7]*b[6]) * d,
		(m[1]*b[8] - m[0]*b[10] - m[3]*b[6]) * d,
		(m[12]*b[4] - m[13]*b[2] + m[15]*b[0]) * d,
		(m[9]*b[2] - m[8]*b[4] - m[11]*b[0]) * d,

		(m[5]*b[7] - m[4]*b[9] - m[6]*b[6]) * d,
		(m[0]*b[9] - m[1]*b[7] + m[2]*b[6]) * d,
		(m[13]*b[1] - m[12]*b[3] - m[14]*b[0]) * d,
		(m[8]*b[3] - m[9]*b[1] + m[10]*b[0]) * d,
	}, nil
}

// Equal reports whether every element of a and b differs by at most eps.
//
//nolint:st1016 // a,b naming convention is clearer for comparison
func (a Mat4) Equal(b Mat4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row*4+col]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row*4+col] = val
}

// Translation extracts the translation component.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}
