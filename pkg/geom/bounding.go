package geom

import (
	"github.com/taigrr/painter/pkg/math3d"
)

// BoundingPlane is a labeled face of a bounding cuboid: an outward normal
// and the index of a cuboid corner lying on the face.
type BoundingPlane struct {
	Normal     math3d.Vec3
	PointIndex int
}

// Bounding is an oriented bounding cuboid. It starts as an axis-aligned box
// in local space; transforming it moves all 8 corners and rotates the face
// normals so faces and corners stay in correspondence. Min and Max are the
// axis-aligned extents of the transformed corners.
//
// Corner i has x = Max.X when i&4 != 0, y = Max.Y when i&2 != 0 and
// z = Max.Z when i&1 != 0:
//
//	  2--------6
//	 /|       /|
//	3--------7 |
//	| |      | |
//	| 0------|-4
//	|/       |/
//	1--------5
type Bounding struct {
	Cuboid [8]math3d.Vec3
	Planes [6]BoundingPlane
	Min    math3d.Vec3
	Max    math3d.Vec3
}

// NewBounding returns the axis-aligned box around points. An empty point set
// yields a box collapsed onto the origin.
func NewBounding(points []math3d.Vec3) Bounding {
	if len(points) == 0 {
		points = []math3d.Vec3{{}}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}

	b := Bounding{Min: lo, Max: hi}
	for i := range b.Cuboid {
		c := lo
		if i&4 != 0 {
			c.X = hi.X
		}
		if i&2 != 0 {
			c.Y = hi.Y
		}
		if i&1 != 0 {
			c.Z = hi.Z
		}
		b.Cuboid[i] = c
	}
	b.Planes = [6]BoundingPlane{
		{Normal: math3d.V3(0, 0, -1), PointIndex: 0},
		{Normal: math3d.V3(0, 0, 1), PointIndex: 7},
		{Normal: math3d.V3(0, -1, 0), PointIndex: 0},
		{Normal: math3d.V3(0, 1, 0), PointIndex: 7},
		{Normal: math3d.V3(-1, 0, 0), PointIndex: 0},
		{Normal: math3d.V3(1, 0, 0), PointIndex: 7},
	}
	return b
}

// Transform moves the corners by pointM and rotates the face normals by
// normalM, which must be the rotation-only part of pointM.
func (b Bounding) Transform(pointM, normalM math3d.Mat4) Bounding {
	var out Bounding
	for i, c := range b.Cuboid {
		out.Cuboid[i] = pointM.MulPoint(c)
	}
	for i, p := range b.Planes {
		out.Planes[i] = BoundingPlane{
			Normal:     normalM.MulDir(p.Normal),
			PointIndex: p.PointIndex,
		}
	}
	out.Min, out.Max = out.Cuboid[0], out.Cuboid[0]
	for _, c := range out.Cuboid[1:] {
		out.Min = out.Min.Min(c)
		out.Max = out.Max.Max(c)
	}
	return out
}

// Plane returns face i as a Plane.
func (b *Bounding) Plane(i int) Plane {
	p := b.Planes[i]
	return Plane{Point: b.Cuboid[p.PointIndex], Normal: p.Normal}
}

// Center returns the centroid of the cuboid corners.
func (b *Bounding) Center() math3d.Vec3 {
	var sum math3d.Vec3
	for _, c := range b.Cuboid {
		sum = sum.Add(c)
	}
	return sum.Scale(1.0 / 8)
}

// Size returns the axis-aligned extents.
func (b *Bounding) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}
