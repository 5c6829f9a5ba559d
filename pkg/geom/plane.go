package geom

import (
	"math"

	"github.com/taigrr/painter/pkg/math3d"
)

// Side is the classification of a point set against a plane.
type Side int

const (
	// Front means every point is on or in front of the plane.
	Front Side = iota
	// Back means every point is on or behind the plane.
	Back
	// Spanning means points lie on both sides.
	Spanning
)

func (s Side) String() string {
	switch s {
	case Front:
		return "front"
	case Back:
		return "back"
	default:
		return "spanning"
	}
}

// Plane is a plane through Point with unit Normal.
type Plane struct {
	Point  math3d.Vec3
	Normal math3d.Vec3
}

// Dot returns the signed distance of v from the plane.
func (pl Plane) Dot(v math3d.Vec3) float64 {
	return v.Sub(pl.Point).Dot(pl.Normal)
}

// Classify tests every point against the plane with tolerance eps.
// Points within eps of the plane count for either side, so a coplanar set
// is classified Front.
func (pl Plane) Classify(points []math3d.Vec3, eps float64) Side {
	front, back := true, true
	for _, v := range points {
		d := pl.Dot(v)
		if d < -eps {
			front = false
		}
		if d > eps {
			back = false
		}
	}
	switch {
	case front:
		return Front
	case back:
		return Back
	default:
		return Spanning
	}
}

// SplitContour splits a closed contour along the plane. Vertices exactly on
// the plane are kept on both sides and each crossing edge contributes its
// intersection point to both.
func (pl Plane) SplitContour(points []math3d.Vec3) (front, back []math3d.Vec3) {
	if len(points) == 0 {
		return nil, nil
	}
	prev := points[len(points)-1]
	prevDot := pl.Dot(prev)
	for _, cur := range points {
		d := pl.Dot(cur)
		if prevDot*d < 0 {
			t := math.Abs(prevDot) / (math.Abs(prevDot) + math.Abs(d))
			ip := prev.Lerp(cur, t)
			front = append(front, ip)
			back = append(back, ip)
		}
		if d >= 0 {
			front = append(front, cur)
		}
		if d <= 0 {
			back = append(back, cur)
		}
		prev, prevDot = cur, d
	}
	return front, back
}
