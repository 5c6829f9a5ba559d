package render

import (
	"fmt"
	"sync"

	"github.com/taigrr/painter/pkg/geom"
	"github.com/taigrr/painter/pkg/math3d"
	"github.com/taigrr/painter/pkg/scene"
)

// pass is one Render call: the inputs every stage reads.
type pass struct {
	scene   *scene.Scene
	camera  *Camera
	cache   *Cache
	culling bool
}

type stageFunc func(p *pass, n *scene.Node, o *ObjectBuffer) error

var stages = [spaceCount]stageFunc{
	Local:      (*pass).local,
	World:      (*pass).world,
	Eye:        (*pass).eye,
	Projection: (*pass).projection,
	Clip:       (*pass).clip,
	NDC:        (*pass).ndc,
	Screen:     (*pass).screen,
}

// hit reports whether o already holds s computed from key.
func hit(o *ObjectBuffer, s Space, key stageKey) bool {
	b := o.spaces[s]
	return b != nil && b.key == key
}

func lazy(m math3d.Mat4, src *SpaceBuffer) func() []math3d.Vec4 {
	return sync.OnceValue(func() []math3d.Vec4 {
		return transformAll(m, src.Vertices())
	})
}

func fixed(v []math3d.Vec4) func() []math3d.Vec4 {
	return func() []math3d.Vec4 { return v }
}

// local collects the model's BSP polygons, split fragments included, into
// one deduplicated vertex array.
func (p *pass) local(n *scene.Node, o *ObjectBuffer) error {
	key := stageKey{revision: n.Polygons.Revision(), kind: n.Kind}
	if hit(o, Local, key) {
		return nil
	}

	var va VertexArray
	var polys []*PolygonGeo
	for _, poly := range n.Polygons.Tree().Polygons() {
		geo := &PolygonGeo{
			PolygonData:   &PolygonData{Polygon: poly, Flat: geom.Flatten(poly)},
			VertexIndices: va.AddPoints(poly.Points()),
		}
		for _, h := range poly.Holes() {
			geo.HoleIndices = append(geo.HoleIndices, va.AddPoints(h))
		}
		polys = append(polys, geo)
	}

	points := make([]math3d.Vec3, va.Len())
	for i, v := range va.Vertices() {
		points[i] = v.Vec3()
	}
	bounding := geom.NewBounding(points)

	o.set(&SpaceBuffer{
		Space:        Local,
		Polygons:     polys,
		Matrix:       math3d.Identity(),
		NormalMatrix: math3d.Identity(),
		vertices:     fixed(va.Vertices()),
		bounding:     &bounding,
		key:          key,
	})
	return nil
}

// world places the object under its parent's world transform.
func (p *pass) world(n *scene.Node, o *ObjectBuffer) error {
	local, err := o.Space(Local)
	if err != nil {
		return err
	}

	parentM, parentN := math3d.Identity(), math3d.Identity()
	if parent := n.Parent(); parent != scene.Root && parent != scene.None {
		po := p.cache.Object(parent)
		if po == nil {
			return fmt.Errorf("%w: parent %d of node %d", ErrSpaceNotCalculated, parent, o.Node)
		}
		pw, err := po.Space(World)
		if err != nil {
			return err
		}
		parentM, parentN = pw.Matrix, pw.NormalMatrix
	}

	model := parentM.Mul(n.Transform.Matrix())
	normal := parentN.Mul(n.Transform.RotationMatrix())
	key := stageKey{m: model, n: normal}
	if hit(o, World, key) {
		return nil
	}

	for _, g := range local.Polygons {
		pn, _ := g.Polygon.Normal()
		wn := normal.MulDir(pn)
		g.worldNormal = &wn
	}
	lb, err := local.Bounding()
	if err != nil {
		return err
	}
	bounding := lb.Transform(model, normal)

	o.set(&SpaceBuffer{
		Space:        World,
		Polygons:     local.Polygons,
		Matrix:       model,
		NormalMatrix: normal,
		vertices:     lazy(model, local),
		bounding:     &bounding,
		key:          key,
	})
	return nil
}

// eye moves the object into camera space, decides facing per polygon and
// orders the polygons with the model's BSP tree.
func (p *pass) eye(n *scene.Node, o *ObjectBuffer) error {
	local, err := o.Space(Local)
	if err != nil {
		return err
	}
	world, err := o.Space(World)
	if err != nil {
		return err
	}

	view, err := p.camera.ViewMatrix()
	if err != nil {
		return fmt.Errorf("camera view matrix: %w", err)
	}
	modelView := view.Mul(world.Matrix)
	modelViewNormal := p.camera.NormalMatrix().Transpose().Mul(world.NormalMatrix)

	ortho := p.camera.Projection == Orthographic
	key := stageKey{m: modelView, n: modelViewNormal, ortho: ortho, culling: p.culling}
	if hit(o, Eye, key) {
		return nil
	}

	vertices := local.Vertices()
	byPolygon := make(map[*geom.Polygon]*PolygonGeo, len(local.Polygons))
	facing := make(map[*geom.Polygon]bool, len(local.Polygons))
	for _, g := range local.Polygons {
		pn, _ := g.Polygon.Normal()
		en := modelViewNormal.MulDir(pn)
		first := modelView.MulVec4(vertices[g.VertexIndices[0]]).Vec3()
		back := math3d.IsBackFacing(en, p.camera.DirToCamera(first))

		g.eyeNormal = &en
		g.backFacing = &back
		byPolygon[g.Polygon] = g
		facing[g.Polygon] = back
	}

	sorted, err := n.Polygons.Tree().Sort(facing)
	if err != nil {
		return fmt.Errorf("sort polygons of node %d (%q): %w", o.Node, n.Name, err)
	}
	polys := make([]*PolygonGeo, 0, len(sorted))
	for _, sp := range sorted {
		g := byPolygon[sp]
		if p.culling && *g.backFacing {
			continue
		}
		polys = append(polys, g)
	}

	lb, err := local.Bounding()
	if err != nil {
		return err
	}
	bounding := lb.Transform(modelView, modelViewNormal)

	o.set(&SpaceBuffer{
		Space:        Eye,
		Polygons:     polys,
		Matrix:       modelView,
		NormalMatrix: modelViewNormal,
		vertices:     lazy(modelView, local),
		bounding:     &bounding,
		key:          key,
	})
	return nil
}

func (p *pass) projection(_ *scene.Node, o *ObjectBuffer) error {
	local, err := o.Space(Local)
	if err != nil {
		return err
	}
	eye, err := o.Space(Eye)
	if err != nil {
		return err
	}

	mvp := p.camera.ProjectionMatrix().Mul(eye.Matrix)
	key := stageKey{m: mvp}
	if hit(o, Projection, key) {
		return nil
	}
	o.set(&SpaceBuffer{
		Space:    Projection,
		Polygons: eye.Polygons,
		Matrix:   mvp,
		vertices: lazy(mvp, local),
		key:      key,
	})
	return nil
}

// clip cuts every contour and hole against the near plane into a fresh
// vertex array.
func (p *pass) clip(_ *scene.Node, o *ObjectBuffer) error {
	proj, err := o.Space(Projection)
	if err != nil {
		return err
	}
	if o.Has(Clip) {
		return nil
	}

	var va VertexArray
	src := proj.Vertices()
	polys := make([]*PolygonGeo, len(proj.Polygons))
	for i, g := range proj.Polygons {
		clipped := &PolygonGeo{
			PolygonData:   g.PolygonData,
			VertexIndices: ClipContour(&va, src, g.VertexIndices, ClipNear),
		}
		for _, h := range g.HoleIndices {
			clipped.HoleIndices = append(clipped.HoleIndices, ClipContour(&va, src, h, ClipNear))
		}
		polys[i] = clipped
	}

	o.set(&SpaceBuffer{
		Space:    Clip,
		Polygons: polys,
		Matrix:   proj.Matrix,
		vertices: fixed(va.Vertices()),
	})
	return nil
}

func (p *pass) ndc(_ *scene.Node, o *ObjectBuffer) error {
	clip, err := o.Space(Clip)
	if err != nil {
		return err
	}
	if o.Has(NDC) {
		return nil
	}
	o.set(&SpaceBuffer{
		Space:    NDC,
		Polygons: clip.Polygons,
		vertices: sync.OnceValue(func() []math3d.Vec4 {
			src := clip.Vertices()
			out := make([]math3d.Vec4, len(src))
			for i, v := range src {
				out[i] = v.Homogenize()
			}
			return out
		}),
	})
	return nil
}

func (p *pass) screen(_ *scene.Node, o *ObjectBuffer) error {
	ndc, err := o.Space(NDC)
	if err != nil {
		return err
	}
	viewport := p.camera.ViewportMatrix()
	key := stageKey{m: viewport}
	if hit(o, Screen, key) {
		return nil
	}
	o.set(&SpaceBuffer{
		Space:    Screen,
		Polygons: ndc.Polygons,
		Matrix:   viewport,
		vertices: lazy(viewport, ndc),
		key:      key,
	})
	return nil
}
