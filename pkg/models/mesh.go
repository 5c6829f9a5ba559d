// Package models turns meshes from files and a few built-in primitives into
// polygons for the painter pipeline.
package models

import (
	"fmt"
	"image/color"

	"github.com/taigrr/painter/pkg/geom"
	"github.com/taigrr/painter/pkg/math3d"
)

// Mesh is an indexed polygon mesh.
type Mesh struct {
	Name      string
	Positions []math3d.Vec3
	Faces     []Face
	Materials []geom.Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a planar polygon given by indices into Mesh.Positions, wound
// counter-clockwise seen from the front.
type Face struct {
	V        []int
	Material int // Index into Mesh.Materials (-1 for no material)
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddFace appends a face using material index mat.
func (m *Mesh) AddFace(mat int, v ...int) {
	m.Faces = append(m.Faces, Face{V: v, Material: mat})
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		return
	}

	m.BoundsMin = m.Positions[0]
	m.BoundsMax = m.Positions[0]

	for _, p := range m.Positions[1:] {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// Transform applies a transformation matrix to all positions.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, p := range m.Positions {
		m.Positions[i] = mat.MulPoint(p)
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales it uniformly so its
// largest dimension equals size.
func (m *Mesh) Normalize(size float64) {
	m.CalculateBounds()
	dims := m.Size()
	largest := max(dims.X, dims.Y, dims.Z)
	if largest == 0 {
		return
	}
	m.Transform(math3d.ScaleUniform(size / largest).Mul(math3d.Translate(m.Center().Negate())))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Positions: make([]math3d.Vec3, len(m.Positions)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]geom.Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Positions, m.Positions)
	copy(clone.Materials, m.Materials)
	for i, f := range m.Faces {
		clone.Faces[i] = Face{V: append([]int(nil), f.V...), Material: f.Material}
	}
	return clone
}

// Material returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) Material(i int) *geom.Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// Polygons converts every face into a polygon named "<mesh>-<face>".
// Faces with out-of-range indices are reported as an error.
func (m *Mesh) Polygons() ([]*geom.Polygon, error) {
	out := make([]*geom.Polygon, 0, len(m.Faces))
	for i, f := range m.Faces {
		pts := make([]math3d.Vec3, len(f.V))
		for k, idx := range f.V {
			if idx < 0 || idx >= len(m.Positions) {
				return nil, fmt.Errorf("mesh %q face %d: index %d out of range", m.Name, i, idx)
			}
			pts[k] = m.Positions[idx]
		}
		var opts []geom.Option
		if mat := m.Material(f.Material); mat != nil {
			opts = append(opts, geom.WithMaterial(mat))
		}
		out = append(out, geom.NewPolygon(fmt.Sprintf("%s-%d", m.Name, i), pts, opts...))
	}
	return out, nil
}

// RGBA converts a linear 0-1 color factor into color.RGBA.
func RGBA(f [4]float64) color.RGBA {
	c := func(v float64) uint8 {
		return uint8(max(0, min(1, v))*255 + 0.5)
	}
	return color.RGBA{R: c(f[0]), G: c(f[1]), B: c(f[2]), A: c(f[3])}
}
