// Package render runs the painter pipeline: it carries every model of a
// scene through the coordinate spaces from LOCAL to SCREEN, keeps the
// per-space results in an explicit Cache, orders polygons inside a model
// with its BSP tree and orders models against each other with a
// topological sort.
//
// The package never touches a pixel. A Frame is a back-to-front draw list
// in screen space, ready for a painter.
package render

// Space is a coordinate space of the pipeline. Spaces are ordered: every
// space is derived from the one before it.
type Space int

const (
	Local Space = iota
	World
	Eye
	Projection
	Clip
	NDC
	Screen
)

const spaceCount = int(Screen) + 1

// Spaces lists every space in pipeline order.
var Spaces = [spaceCount]Space{Local, World, Eye, Projection, Clip, NDC, Screen}

func (s Space) String() string {
	switch s {
	case Local:
		return "LOCAL"
	case World:
		return "WORLD"
	case Eye:
		return "EYE"
	case Projection:
		return "PROJECTION"
	case Clip:
		return "CLIP"
	case NDC:
		return "NDC"
	case Screen:
		return "SCREEN"
	}
	return "UNKNOWN"
}

// Valid reports whether s names a pipeline space.
func (s Space) Valid() bool {
	return s >= Local && s <= Screen
}
