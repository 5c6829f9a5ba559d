// Package geom holds the geometry the painter pipeline operates on:
// planar polygons with holes, their planes, flat 2D projections and the
// oriented bounding cuboids used for cross-model ordering.
package geom

import (
	"image/color"

	"github.com/taigrr/painter/pkg/math3d"
)

// Material describes how a polygon is filled by a draw layer.
type Material struct {
	Name  string
	Color color.RGBA
}

// Polygon is a planar polygon: an outer contour, optional hole contours
// lying in the same plane, and a unit normal computed with Newell's method.
// Counter-clockwise winding seen from the front gives an outward normal.
//
// A Polygon is immutable once built. A polygon whose outer contour has zero
// area has no normal and reports Valid() == false.
type Polygon struct {
	ID       string
	Material *Material

	points []math3d.Vec3
	holes  [][]math3d.Vec3
	normal math3d.Vec3
	valid  bool
}

// Option configures a Polygon.
type Option func(*Polygon)

// WithHoles adds hole contours to the polygon.
func WithHoles(holes ...[]math3d.Vec3) Option {
	return func(p *Polygon) {
		for _, h := range holes {
			p.holes = append(p.holes, clonePoints(h))
		}
	}
}

// WithMaterial sets the polygon material.
func WithMaterial(m *Material) Option {
	return func(p *Polygon) {
		p.Material = m
	}
}

// NewPolygon creates a polygon from its outer contour.
func NewPolygon(id string, points []math3d.Vec3, opts ...Option) *Polygon {
	p := &Polygon{
		ID:     id,
		points: clonePoints(points),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.normal, p.valid = normalOf(p.points)
	for _, h := range p.holes {
		for _, v := range h {
			if !v.IsValid() {
				p.valid = false
			}
		}
	}
	return p
}

func normalOf(points []math3d.Vec3) (math3d.Vec3, bool) {
	for _, v := range points {
		if !v.IsValid() {
			return math3d.Vec3{}, false
		}
	}
	return math3d.NewellNormal(points)
}

// Fragment returns a polygon sharing p's material with new contours, as
// produced when p is split by a plane.
func (p *Polygon) Fragment(id string, points []math3d.Vec3, holes [][]math3d.Vec3) *Polygon {
	return NewPolygon(id, points, WithMaterial(p.Material), WithHoles(holes...))
}

// Points returns the outer contour. The slice must not be modified.
func (p *Polygon) Points() []math3d.Vec3 {
	return p.points
}

// Holes returns the hole contours. The slices must not be modified.
func (p *Polygon) Holes() [][]math3d.Vec3 {
	return p.holes
}

// Normal returns the unit normal; ok is false for degenerate polygons.
func (p *Polygon) Normal() (n math3d.Vec3, ok bool) {
	return p.normal, p.valid
}

// Valid reports whether the polygon has a defined normal.
func (p *Polygon) Valid() bool {
	return p.valid
}

// Plane returns the plane through the first vertex along the normal.
func (p *Polygon) Plane() Plane {
	var point math3d.Vec3
	if len(p.points) > 0 {
		point = p.points[0]
	}
	return Plane{Point: point, Normal: p.normal}
}

// VertexCount returns the number of vertices over all contours.
func (p *Polygon) VertexCount() int {
	n := len(p.points)
	for _, h := range p.holes {
		n += len(h)
	}
	return n
}

func clonePoints(points []math3d.Vec3) []math3d.Vec3 {
	out := make([]math3d.Vec3, len(points))
	copy(out, points)
	return out
}
