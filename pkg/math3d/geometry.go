package math3d

// Epsilon is the tolerance used for coordinate equality and plane-side tests.
const Epsilon = 1e-6

// NewellNormal returns the unit normal of a planar polygon using Newell's
// method. Counter-clockwise winding (seen from the front) yields a normal
// pointing towards the viewer. ok is false when the polygon has zero area.
func NewellNormal(points []Vec3) (normal Vec3, ok bool) {
	if len(points) < 3 {
		return Vec3{}, false
	}
	for i, cur := range points {
		next := points[(i+1)%len(points)]
		normal.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		normal.Y += (cur.Z - next.Z) * (cur.X + next.X)
		normal.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	if !normal.IsValid() || normal.Len() < Epsilon*Epsilon {
		return Vec3{}, false
	}
	return normal.Normalize(), true
}

// IsBackFacing reports whether a surface with the given normal faces away
// from a viewer in direction dirToCamera. Edge-on surfaces count as back-facing.
func IsBackFacing(normal, dirToCamera Vec3) bool {
	return normal.Dot(dirToCamera) <= 0
}
