package geom

import (
	"math"

	"github.com/taigrr/painter/pkg/math3d"
)

// Flat is a polygon laid flat in its own 2D frame: the plane normal is
// rotated onto the view axis (0,0,-1) and the contour is moved so its
// bounding rectangle starts at the origin. Matrix3D maps the 2D frame back
// onto the polygon's local 3D position.
type Flat struct {
	Vertices []math3d.Vec2
	Holes    [][]math3d.Vec2
	Matrix3D math3d.Mat4
	Width    float64
	Height   float64
}

// Flatten computes the flat projection of a valid polygon.
func Flatten(p *Polygon) Flat {
	points := p.Points()
	if len(points) == 0 || !p.Valid() {
		return Flat{Matrix3D: math3d.Identity()}
	}

	rot := rotationOnto(math3d.ViewAxis(), p.normal)
	origin := points[0]
	toXY := rot.Transpose().Mul(math3d.Translate(origin.Negate()))

	flat := func(contour []math3d.Vec3) []math3d.Vec3 {
		out := make([]math3d.Vec3, len(contour))
		for i, v := range contour {
			out[i] = toXY.MulPoint(v)
		}
		return out
	}

	outer := flat(points)
	offset := outer[0]
	for _, v := range outer[1:] {
		offset = offset.Min(v)
	}

	shift := func(contour []math3d.Vec3) []math3d.Vec2 {
		out := make([]math3d.Vec2, len(contour))
		for i, v := range contour {
			out[i] = math3d.V2(v.X-offset.X, v.Y-offset.Y)
		}
		return out
	}

	f := Flat{
		Vertices: shift(outer),
		Matrix3D: math3d.Translate(origin).Mul(rot).Mul(math3d.Translate(offset)),
	}
	for _, h := range p.Holes() {
		f.Holes = append(f.Holes, shift(flat(h)))
	}

	maxV := f.Vertices[0]
	for _, v := range f.Vertices[1:] {
		maxV = maxV.Max(v)
	}
	f.Width, f.Height = maxV.X, maxV.Y
	return f
}

// rotationOnto returns the rotation taking from onto to. Both must be unit.
func rotationOnto(from, to math3d.Vec3) math3d.Mat4 {
	axis := from.Cross(to)
	cos := math.Max(-1, math.Min(1, from.Dot(to)))
	if axis.LenSq() < math3d.Epsilon*math3d.Epsilon {
		if cos > 0 {
			return math3d.Identity()
		}
		// opposite directions: half turn about any perpendicular axis
		return math3d.RotateX(math.Pi)
	}
	return math3d.Rotate(axis, math.Acos(cos))
}
