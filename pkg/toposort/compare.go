// Package toposort orders whole models for painter's-algorithm drawing.
// Pairs of eye-space bounding cuboids are compared with a separating axis
// test; the resulting "behind" relation is sorted topologically, and when
// it has a cycle the models fall back to ordering by distance.
package toposort

import (
	"github.com/taigrr/painter/pkg/geom"
	"github.com/taigrr/painter/pkg/math3d"
)

// Side is the outcome of comparing bounding A against bounding B.
type Side int

const (
	// Behind means A must be drawn before B.
	Behind Side = -1
	// Unordered means the pair imposes no drawing order.
	Unordered Side = 0
	// InFront means A must be drawn after B.
	InFront Side = 1
)

func (s Side) String() string {
	switch s {
	case Behind:
		return "behind"
	case InFront:
		return "in front"
	}
	return "unordered"
}

// Result is the outcome of Compare.
type Result struct {
	Side Side
	// Collision is set when no separating plane exists.
	Collision bool
}

// Compare decides whether eye-space bounding a lies behind or in front of
// b as seen from a camera at the eye-space origin looking down -Z.
func Compare(a, b *geom.Bounding, perspective bool) Result {
	if quadrantsSeparated(a, b) {
		return Result{}
	}
	if !perspective && extentsSeparated(a, b) {
		return Result{}
	}

	toCamera := func(p math3d.Vec3) math3d.Vec3 {
		if perspective {
			return p.Negate()
		}
		return math3d.V3(0, 0, 1)
	}

	// Face planes of both boxes. All six planes are tested since a result
	// only counts when it is unambiguous.
	var face Side
	for _, pl := range a.Planes {
		point := a.Cuboid[pl.PointIndex]
		back := math3d.IsBackFacing(pl.Normal, toCamera(point))
		side, ok := pointsAgainstPlane(point, pl.Normal, b.Cuboid[:], true, back)
		if !ok {
			continue
		}
		if face == Unordered {
			face = side
		} else if side != face {
			return Result{}
		}
	}
	for _, pl := range b.Planes {
		point := b.Cuboid[pl.PointIndex]
		back := math3d.IsBackFacing(pl.Normal, toCamera(point))
		side, ok := pointsAgainstPlane(point, pl.Normal, a.Cuboid[:], true, !back)
		if !ok {
			continue
		}
		if face == Unordered {
			face = side
		} else if side != face {
			return Result{}
		}
	}
	if face != Unordered {
		return Result{Side: face}
	}

	// Equally oriented boxes not split by a face plane overlap.
	if a.Planes[0].Normal.Equal(b.Planes[0].Normal, math3d.Epsilon) {
		return Result{Collision: true}
	}

	// Planes through the intersection line of every face pair.
	for _, pa := range a.Planes {
		for _, pb := range b.Planes {
			normal := pa.Normal.Cross(pb.Normal)
			lenSq := normal.LenSq()
			if lenSq == 0 {
				return Result{Collision: true}
			}
			da := -pa.Normal.Dot(a.Cuboid[pa.PointIndex])
			db := -pb.Normal.Dot(b.Cuboid[pb.PointIndex])
			point := pa.Normal.Scale(db).Sub(pb.Normal.Scale(da)).Cross(normal).Div(lenSq)

			back := math3d.IsBackFacing(normal, toCamera(point))
			sideB, ok := pointsAgainstPlane(point, normal, b.Cuboid[:], false, back)
			if !ok {
				continue
			}
			sideA, ok := pointsAgainstPlane(point, normal, a.Cuboid[:], false, !back)
			if !ok || sideA != sideB {
				continue
			}
			return Result{Side: sideA}
		}
	}
	return Result{Collision: true}
}

// quadrantsSeparated reports whether the boxes sit on opposite sides of the
// eye-space x=0 or y=0 plane.
func quadrantsSeparated(a, b *geom.Bounding) bool {
	return (a.Max.X <= 0 && b.Min.X >= 0) ||
		(b.Max.X <= 0 && a.Min.X >= 0) ||
		(a.Max.Y <= 0 && b.Min.Y >= 0) ||
		(b.Max.Y <= 0 && a.Min.Y >= 0)
}

// extentsSeparated reports whether the boxes cannot overlap on screen under
// an orthographic projection.
func extentsSeparated(a, b *geom.Bounding) bool {
	return a.Max.X <= b.Min.X || b.Max.X <= a.Min.X ||
		a.Max.Y <= b.Min.Y || b.Max.Y <= a.Min.Y
}

// pointsAgainstPlane returns Behind when every point is on the normal side
// of the plane (within Epsilon) and InFront when every point is on the
// other side; invert swaps the two. skipBack disables the second test.
func pointsAgainstPlane(point, normal math3d.Vec3, points []math3d.Vec3, skipBack, invert bool) (Side, bool) {
	front, behind := true, true
	for _, p := range points {
		d := p.Sub(point).Dot(normal)
		if d < -math3d.Epsilon {
			front = false
		}
		if d > math3d.Epsilon {
			behind = false
		}
	}
	switch {
	case front:
		if invert {
			return InFront, true
		}
		return Behind, true
	case skipBack:
		return Unordered, false
	case behind:
		if invert {
			return Behind, true
		}
		return InFront, true
	}
	return Unordered, false
}
