package render

import (
	"github.com/taigrr/painter/pkg/math3d"
)

// ClipPlane names one of the six planes of the clip-space frustum.
// In homogeneous clip coordinates a vertex is inside the frustum when
// -w <= x, y, z <= w, so each plane is a row sum of the projection
// (Gribb/Hartmann) evaluated directly on the clip-space vertex.
type ClipPlane int

const (
	ClipLeft ClipPlane = iota
	ClipRight
	ClipBottom
	ClipTop
	ClipNear
	ClipFar
)

func (p ClipPlane) String() string {
	switch p {
	case ClipLeft:
		return "left"
	case ClipRight:
		return "right"
	case ClipBottom:
		return "bottom"
	case ClipTop:
		return "top"
	case ClipNear:
		return "near"
	case ClipFar:
		return "far"
	}
	return "unknown"
}

// PlaneDot returns the signed distance-like value of v against plane.
// Positive means inside, zero on the plane, negative outside.
func PlaneDot(plane ClipPlane, v math3d.Vec4) float64 {
	switch plane {
	case ClipLeft:
		return v.X + v.W
	case ClipRight:
		return -v.X + v.W
	case ClipBottom:
		return v.Y + v.W
	case ClipTop:
		return -v.Y + v.W
	case ClipNear:
		return v.Z + v.W
	case ClipFar:
		return -v.Z + v.W
	}
	return 0
}

// Position is the side of a clip plane a vertex lies on.
type Position int

const (
	Outside Position = iota - 1
	OnPlane
	Inside
)

func (p Position) String() string {
	switch p {
	case Outside:
		return "outside"
	case OnPlane:
		return "on plane"
	}
	return "inside"
}

// Classify places v relative to plane. Only an exact zero counts as on the
// plane.
func Classify(plane ClipPlane, v math3d.Vec4) Position {
	return position(PlaneDot(plane, v))
}

func position(dot float64) Position {
	switch {
	case dot > 0:
		return Inside
	case dot < 0:
		return Outside
	}
	return OnPlane
}

// ClipContour clips the closed contour given by indices into src against
// plane and appends the surviving vertices to dst. It returns the indices
// of the clipped contour in dst, which may be empty.
//
// Edges are walked from the previous vertex (wrapping) to the current one.
// An edge crossing from inside to outside or back emits the intersection;
// the current vertex is kept when it is inside or on the plane.
func ClipContour(dst *VertexArray, src []math3d.Vec4, indices []int, plane ClipPlane) []int {
	out := make([]int, 0, len(indices))
	n := len(indices)
	for i, idx := range indices {
		from := src[indices[(i+n-1)%n]]
		to := src[idx]

		fromDot := PlaneDot(plane, from)
		toDot := PlaneDot(plane, to)
		fromPos, toPos := position(fromDot), position(toDot)

		if (fromPos == Inside && toPos == Outside) || (fromPos == Outside && toPos == Inside) {
			alpha := fromDot / (fromDot - toDot)
			out = append(out, dst.Add(from.Lerp(to, alpha)))
		}
		if toPos != Outside {
			out = append(out, dst.Add(to))
		}
	}
	return out
}
