package models

import (
	"github.com/taigrr/painter/pkg/geom"
	"github.com/taigrr/painter/pkg/math3d"
)

// Cube returns the six faces of an axis-aligned cube of edge size centered
// on the origin, wound counter-clockwise seen from outside.
func Cube(size float64) []*geom.Polygon {
	h := size / 2
	face := func(id string, pts ...math3d.Vec3) *geom.Polygon {
		return geom.NewPolygon("cube-"+id, pts)
	}
	return []*geom.Polygon{
		face("front", math3d.V3(-h, -h, h), math3d.V3(h, -h, h), math3d.V3(h, h, h), math3d.V3(-h, h, h)),
		face("back", math3d.V3(h, -h, -h), math3d.V3(-h, -h, -h), math3d.V3(-h, h, -h), math3d.V3(h, h, -h)),
		face("right", math3d.V3(h, -h, h), math3d.V3(h, -h, -h), math3d.V3(h, h, -h), math3d.V3(h, h, h)),
		face("left", math3d.V3(-h, -h, -h), math3d.V3(-h, -h, h), math3d.V3(-h, h, h), math3d.V3(-h, h, -h)),
		face("top", math3d.V3(-h, h, h), math3d.V3(h, h, h), math3d.V3(h, h, -h), math3d.V3(-h, h, -h)),
		face("bottom", math3d.V3(-h, -h, -h), math3d.V3(h, -h, -h), math3d.V3(h, -h, h), math3d.V3(-h, -h, h)),
	}
}

// Quad returns a w by h rectangle in the XY plane facing +Z.
func Quad(w, h float64) *geom.Polygon {
	x, y := w/2, h/2
	return geom.NewPolygon("quad", []math3d.Vec3{
		math3d.V3(-x, -y, 0), math3d.V3(x, -y, 0), math3d.V3(x, y, 0), math3d.V3(-x, y, 0),
	})
}

// Window returns a w by h rectangle facing +Z with a centered rectangular
// hole inset from every edge.
func Window(w, h, inset float64) *geom.Polygon {
	x, y := w/2, h/2
	ix, iy := x-inset, y-inset
	return geom.NewPolygon("window", []math3d.Vec3{
		math3d.V3(-x, -y, 0), math3d.V3(x, -y, 0), math3d.V3(x, y, 0), math3d.V3(-x, y, 0),
	}, geom.WithHoles([]math3d.Vec3{
		math3d.V3(-ix, -iy, 0), math3d.V3(-ix, iy, 0), math3d.V3(ix, iy, 0), math3d.V3(ix, -iy, 0),
	}))
}

// Pyramid returns a square pyramid of base and height size centered on the
// origin with its apex on +Y.
func Pyramid(size float64) []*geom.Polygon {
	s := size / 2
	apex := math3d.V3(0, s, 0)
	face := func(id string, pts ...math3d.Vec3) *geom.Polygon {
		return geom.NewPolygon("pyramid-"+id, pts)
	}
	return []*geom.Polygon{
		face("base", math3d.V3(-s, -s, -s), math3d.V3(s, -s, -s), math3d.V3(s, -s, s), math3d.V3(-s, -s, s)),
		face("front", math3d.V3(-s, -s, s), math3d.V3(s, -s, s), apex),
		face("right", math3d.V3(s, -s, s), math3d.V3(s, -s, -s), apex),
		face("back", math3d.V3(s, -s, -s), math3d.V3(-s, -s, -s), apex),
		face("left", math3d.V3(-s, -s, -s), math3d.V3(-s, -s, s), apex),
	}
}

// Paint returns polys with every polygon set to mat.
func Paint(mat *geom.Material, polys ...*geom.Polygon) []*geom.Polygon {
	for _, p := range polys {
		p.Material = mat
	}
	return polys
}
