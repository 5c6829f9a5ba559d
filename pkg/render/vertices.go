package render

import (
	"github.com/taigrr/painter/pkg/math3d"
)

// VertexArray is a vertex list that never stores two vertices equal within
// math3d.Epsilon. Polygons refer to its entries by index.
type VertexArray struct {
	vertices []math3d.Vec4
}

// Add returns the index of v, appending it when no equal vertex is stored.
func (a *VertexArray) Add(v math3d.Vec4) int {
	for i, u := range a.vertices {
		if u.Equal(v, math3d.Epsilon) {
			return i
		}
	}
	a.vertices = append(a.vertices, v)
	return len(a.vertices) - 1
}

// AddPoints adds each point as a position and returns their indices.
func (a *VertexArray) AddPoints(points []math3d.Vec3) []int {
	idx := make([]int, len(points))
	for i, p := range points {
		idx[i] = a.Add(math3d.Point(p))
	}
	return idx
}

// Vertices returns the stored vertices.
func (a *VertexArray) Vertices() []math3d.Vec4 {
	return a.vertices
}

// Len returns the number of stored vertices.
func (a *VertexArray) Len() int {
	return len(a.vertices)
}

func transformAll(m math3d.Mat4, src []math3d.Vec4) []math3d.Vec4 {
	out := make([]math3d.Vec4, len(src))
	for i, v := range src {
		out[i] = m.MulVec4(v)
	}
	return out
}
