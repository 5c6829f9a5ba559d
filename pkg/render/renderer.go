package render

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/taigrr/painter/internal/logger"
	"github.com/taigrr/painter/pkg/geom"
	"github.com/taigrr/painter/pkg/math3d"
	"github.com/taigrr/painter/pkg/scene"
	"github.com/taigrr/painter/pkg/toposort"
)

// ErrNilCamera is returned by Render without a camera.
var ErrNilCamera = errors.New("render: nil camera")

// SetLogger installs the logger used by every painter package. nil
// silences logging again.
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// Logger returns the logger installed with SetLogger.
func Logger() *slog.Logger {
	return logger.Get()
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBackfaceCulling drops polygons facing away from the camera in EYE
// space and every later space.
func WithBackfaceCulling(on bool) Option {
	return func(r *Renderer) {
		r.culling = on
	}
}

// WithWorkers bounds the goroutines used to compare models pairwise.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		r.workers = n
	}
}

// WithTarget stops the pipeline after space s. Model ordering needs EYE.
func WithTarget(s Space) Option {
	return func(r *Renderer) {
		if s.Valid() {
			r.target = s
		}
	}
}

// Renderer runs the pipeline over a scene.
type Renderer struct {
	culling bool
	workers int
	target  Space
}

// NewRenderer creates a renderer that runs every stage up to SCREEN
// without backface culling.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{target: Screen, workers: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BackfaceCulling reports whether culling is enabled.
func (r *Renderer) BackfaceCulling() bool {
	return r.culling
}

// SetBackfaceCulling toggles culling for later renders.
func (r *Renderer) SetBackfaceCulling(on bool) {
	r.culling = on
}

// Frame is the result of one Render. It refers into the cache and is valid
// until the cache is used for the next render.
type Frame struct {
	Space Space
	// Models are in drawing order, back to front, from EYE on; in scene
	// order before that.
	Models []*ObjectBuffer
	// Cyclic is set when model ordering fell back to distance.
	Cyclic bool
}

// Render runs every stage up to the renderer's target for each node of sc,
// orders the models and reports overlapping models as collision events on
// sc. A nil cache computes everything from scratch.
func (r *Renderer) Render(sc *scene.Scene, cam *Camera, cache *Cache) (*Frame, error) {
	if cam == nil {
		return nil, ErrNilCamera
	}
	if cache == nil {
		cache = NewCache()
	}
	cache.bind(sc)

	p := &pass{scene: sc, camera: cam, cache: cache, culling: r.culling}
	for _, id := range sc.Walk() {
		n := sc.Node(id)
		o := cache.object(id, n)
		last := r.target
		if n.Kind == scene.KindGroup {
			last = min(last, World)
		}
		for s := Local; s <= last; s++ {
			if err := stages[s](p, n, o); err != nil {
				return nil, fmt.Errorf("%s stage: %w", s, err)
			}
		}
	}

	frame := &Frame{Space: r.target}
	models := sc.Models()
	if r.target < Eye {
		for _, id := range models {
			frame.Models = append(frame.Models, cache.Object(id))
		}
		return frame, nil
	}

	// Models without polygons have no extent to order or collide; they
	// go first and draw nothing.
	var solid []scene.NodeID
	var boxes []geom.Bounding
	for _, id := range models {
		o := cache.Object(id)
		local, err := o.Space(Local)
		if err != nil {
			return nil, err
		}
		if len(local.Polygons) == 0 {
			frame.Models = append(frame.Models, o)
			continue
		}
		eye, err := o.Space(Eye)
		if err != nil {
			return nil, err
		}
		box, err := eye.Bounding()
		if err != nil {
			return nil, err
		}
		solid = append(solid, id)
		boxes = append(boxes, box)
	}
	sorter := toposort.Sorter{Perspective: cam.Projection == Perspective, Workers: r.workers}
	order, err := sorter.Sort(boxes)
	if err != nil {
		return nil, fmt.Errorf("order models: %w", err)
	}
	for _, c := range order.Collisions {
		sc.EmitCollision(solid[c.A], solid[c.B], rand.Uint64())
	}
	for _, i := range order.Indices {
		frame.Models = append(frame.Models, cache.Object(solid[i]))
	}
	frame.Cyclic = order.Cyclic
	return frame, nil
}

// DrawPolygon is one polygon of a frame resolved to vertices of the
// frame's space.
type DrawPolygon struct {
	Node        scene.NodeID
	Polygon     *geom.Polygon
	Points      []math3d.Vec4
	Holes       [][]math3d.Vec4
	WorldNormal math3d.Vec3
	BackFacing  bool
}

// DrawList flattens the frame into polygons, back to front. Polygons that
// clipping emptied are left out. The frame must have reached EYE space.
func (f *Frame) DrawList() ([]DrawPolygon, error) {
	if f.Space < Eye {
		return nil, fmt.Errorf("%w: draw list needs %s, frame stopped at %s", ErrSpaceNotCalculated, Eye, f.Space)
	}
	var out []DrawPolygon
	for _, o := range f.Models {
		b, err := o.Space(f.Space)
		if err != nil {
			return nil, err
		}
		vertices := b.Vertices()
		for _, g := range b.Polygons {
			if g.Empty() {
				continue
			}
			wn, err := g.WorldNormal()
			if err != nil {
				return nil, err
			}
			back, err := g.BackFacing()
			if err != nil {
				return nil, err
			}
			points, holes := g.Resolve(vertices)
			out = append(out, DrawPolygon{
				Node:        o.Node,
				Polygon:     g.Polygon,
				Points:      points,
				Holes:       holes,
				WorldNormal: wn,
				BackFacing:  back,
			})
		}
	}
	return out, nil
}
