package render

import (
	"errors"
	"fmt"

	"github.com/taigrr/painter/pkg/geom"
	"github.com/taigrr/painter/pkg/math3d"
	"github.com/taigrr/painter/pkg/scene"
)

var (
	// ErrSpaceNotCalculated is returned when a space is read before the
	// stage producing it has run.
	ErrSpaceNotCalculated = errors.New("render: space not calculated")
	// ErrNoBounding is returned when asking for a bounding past EYE space.
	ErrNoBounding = errors.New("render: no bounding in this space")
	// ErrStageNotRun is returned by per-polygon accessors whose stage has
	// not run yet.
	ErrStageNotRun = errors.New("render: stage not run")
)

// Cache holds the per-object, per-space pipeline results of one scene.
// It is passed to Renderer.Render explicitly; passing the same cache for
// the next frame lets unchanged stages be skipped.
type Cache struct {
	scene   *scene.Scene
	objects map[scene.NodeID]*ObjectBuffer
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{objects: make(map[scene.NodeID]*ObjectBuffer)}
}

// Object returns the buffer of a node, or nil when nothing was computed
// for it.
func (c *Cache) Object(id scene.NodeID) *ObjectBuffer {
	return c.objects[id]
}

// Len returns the number of cached objects.
func (c *Cache) Len() int {
	return len(c.objects)
}

// Reset drops every cached object.
func (c *Cache) Reset() {
	clear(c.objects)
}

// bind attaches the cache to sc. A cache used for another scene starts
// over.
func (c *Cache) bind(sc *scene.Scene) {
	if c.objects == nil {
		c.objects = make(map[scene.NodeID]*ObjectBuffer)
	}
	if c.scene != sc {
		c.Reset()
		c.scene = sc
	}
}

func (c *Cache) object(id scene.NodeID, n *scene.Node) *ObjectBuffer {
	o := c.objects[id]
	if o == nil {
		o = &ObjectBuffer{Node: id, Name: n.Name, Kind: n.Kind}
		c.objects[id] = o
	}
	return o
}

// ObjectBuffer holds the space buffers of one scene node.
type ObjectBuffer struct {
	Node scene.NodeID
	Name string
	Kind scene.Kind

	spaces [spaceCount]*SpaceBuffer
}

// Space returns the buffer for s, or an error wrapping
// ErrSpaceNotCalculated.
func (o *ObjectBuffer) Space(s Space) (*SpaceBuffer, error) {
	if !s.Valid() || o.spaces[s] == nil {
		return nil, fmt.Errorf("%w: %s of node %d (%q)", ErrSpaceNotCalculated, s, o.Node, o.Name)
	}
	return o.spaces[s], nil
}

// Has reports whether s has been computed.
func (o *ObjectBuffer) Has(s Space) bool {
	return s.Valid() && o.spaces[s] != nil
}

// set stores b and clears every later space, so a populated space always
// has all of its predecessors.
func (o *ObjectBuffer) set(b *SpaceBuffer) {
	o.spaces[b.Space] = b
	for s := b.Space + 1; s <= Screen; s++ {
		o.spaces[s] = nil
	}
}

// stageKey records the inputs a stage was computed from. A stage whose
// key matches the stored one is a cache hit.
type stageKey struct {
	revision uint64
	kind     scene.Kind
	m        math3d.Mat4
	n        math3d.Mat4
	ortho    bool
	culling  bool
}

// SpaceBuffer is the result of one stage for one object.
type SpaceBuffer struct {
	Space Space
	// Polygons are in drawing order from EYE on.
	Polygons []*PolygonGeo
	// Matrix maps LOCAL vertices into this space for WORLD, EYE and
	// PROJECTION; it is the viewport matrix for SCREEN.
	Matrix math3d.Mat4
	// NormalMatrix maps LOCAL normals into this space (WORLD and EYE).
	NormalMatrix math3d.Mat4

	vertices func() []math3d.Vec4
	bounding *geom.Bounding
	key      stageKey
}

// Vertices returns the vertex array of the space. Derived spaces compute it
// on first use.
func (b *SpaceBuffer) Vertices() []math3d.Vec4 {
	if b.vertices == nil {
		return nil
	}
	return b.vertices()
}

// Bounding returns the bounding box of the object in this space. Only
// LOCAL, WORLD and EYE carry one.
func (b *SpaceBuffer) Bounding() (geom.Bounding, error) {
	if b.bounding == nil {
		return geom.Bounding{}, fmt.Errorf("%w: %s", ErrNoBounding, b.Space)
	}
	return *b.bounding, nil
}

// PolygonData is what the stages learn about one polygon. It is shared by
// every space derived from the same LOCAL buffer.
type PolygonData struct {
	Polygon *geom.Polygon
	Flat    geom.Flat

	worldNormal *math3d.Vec3
	eyeNormal   *math3d.Vec3
	backFacing  *bool
}

// WorldNormal returns the normal in world space.
func (d *PolygonData) WorldNormal() (math3d.Vec3, error) {
	if d.worldNormal == nil {
		return math3d.Vec3{}, fmt.Errorf("%w: world normal of %s", ErrStageNotRun, d.Polygon.ID)
	}
	return *d.worldNormal, nil
}

// EyeNormal returns the normal in eye space.
func (d *PolygonData) EyeNormal() (math3d.Vec3, error) {
	if d.eyeNormal == nil {
		return math3d.Vec3{}, fmt.Errorf("%w: eye normal of %s", ErrStageNotRun, d.Polygon.ID)
	}
	return *d.eyeNormal, nil
}

// BackFacing reports whether the polygon faces away from the camera.
func (d *PolygonData) BackFacing() (bool, error) {
	if d.backFacing == nil {
		return false, fmt.Errorf("%w: facing of %s", ErrStageNotRun, d.Polygon.ID)
	}
	return *d.backFacing, nil
}

// PolygonGeo is a polygon as stored in one space: indices into the space's
// vertex array for the contour and each hole.
type PolygonGeo struct {
	*PolygonData
	VertexIndices []int
	HoleIndices   [][]int
}

// Empty reports whether clipping left nothing of the contour.
func (g *PolygonGeo) Empty() bool {
	return len(g.VertexIndices) == 0
}

// Resolve returns the contour and hole vertices from vertices.
func (g *PolygonGeo) Resolve(vertices []math3d.Vec4) (points []math3d.Vec4, holes [][]math3d.Vec4) {
	points = pick(vertices, g.VertexIndices)
	for _, h := range g.HoleIndices {
		if len(h) == 0 {
			continue
		}
		holes = append(holes, pick(vertices, h))
	}
	return points, holes
}

func pick(vertices []math3d.Vec4, idx []int) []math3d.Vec4 {
	out := make([]math3d.Vec4, len(idx))
	for i, j := range idx {
		out[i] = vertices[j]
	}
	return out
}
