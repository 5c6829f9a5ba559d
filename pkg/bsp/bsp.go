// Package bsp orders the polygons of a single model for painter's-algorithm
// drawing with a binary space partition over the polygons' own planes.
package bsp

import (
	"errors"
	"fmt"

	"github.com/taigrr/painter/internal/logger"
	"github.com/taigrr/painter/pkg/geom"
	"github.com/taigrr/painter/pkg/math3d"
)

// ErrMissingPolygon is returned by Sort when a polygon stored in the tree has
// no entry in the supplied facing map.
var ErrMissingPolygon = errors.New("bsp: polygon missing from facing map")

type node struct {
	polygon *geom.Polygon
	plane   geom.Plane
	front   *node
	back    *node
}

// Tree is a BSP tree built once from a polygon list. Polygons spanning a
// node's plane are split and the fragments stored in their place.
type Tree struct {
	root     *node
	polygons []*geom.Polygon
}

// New builds a tree by inserting polygons in order. The first valid polygon
// becomes the root. Invalid polygons are skipped.
func New(polygons []*geom.Polygon) *Tree {
	t := &Tree{}
	for _, p := range polygons {
		if !p.Valid() {
			logger.Get().Warn("bsp: skipping degenerate polygon", "id", p.ID)
			continue
		}
		t.insert(&t.root, p)
	}
	return t
}

// Polygons returns every polygon stored in the tree, split fragments
// included, in insertion order.
func (t *Tree) Polygons() []*geom.Polygon {
	return t.polygons
}

// Len returns the number of polygons stored in the tree.
func (t *Tree) Len() int {
	return len(t.polygons)
}

// insert walks down from slot until p lands in an empty child. Spanning
// polygons are split and each fragment continues on its side.
func (t *Tree) insert(slot **node, p *geom.Polygon) {
	for {
		cur := *slot
		if cur == nil {
			*slot = t.leaf(p)
			return
		}
		switch cur.plane.Classify(p.Points(), math3d.Epsilon) {
		case geom.Front:
			slot = &cur.front
		case geom.Back:
			slot = &cur.back
		default:
			front, back := split(cur, p)
			if front != nil {
				t.insert(&cur.front, front)
			}
			if back != nil {
				t.insert(&cur.back, back)
			}
			return
		}
	}
}

func (t *Tree) leaf(p *geom.Polygon) *node {
	t.polygons = append(t.polygons, p)
	return &node{polygon: p, plane: p.Plane()}
}

// split cuts p along the plane of n. Fragments without a valid normal are
// dropped and reported as nil.
func split(n *node, p *geom.Polygon) (front, back *geom.Polygon) {
	frontPts, backPts := n.plane.SplitContour(p.Points())

	var frontHoles, backHoles [][]math3d.Vec3
	for _, h := range p.Holes() {
		f, b := n.plane.SplitContour(h)
		if len(f) > 0 {
			frontHoles = append(frontHoles, f)
		}
		if len(b) > 0 {
			backHoles = append(backHoles, b)
		}
	}

	lineage := fmt.Sprintf("%s-splitby[%s]", p.ID, n.polygon.ID)
	front = p.Fragment(lineage+"-front", frontPts, frontHoles)
	back = p.Fragment(lineage+"-back", backPts, backHoles)

	if !front.Valid() {
		logger.Get().Debug("bsp: dropping degenerate fragment", "id", front.ID)
		front = nil
	}
	if !back.Valid() {
		logger.Get().Debug("bsp: dropping degenerate fragment", "id", back.ID)
		back = nil
	}
	return front, back
}

// Sort returns the stored polygons in painter's order, farthest first.
// backFacing must hold an entry for every polygon in the tree: at each node
// the subtree on the camera's far side of the node's plane is emitted first,
// then the node, then the near subtree.
func (t *Tree) Sort(backFacing map[*geom.Polygon]bool) ([]*geom.Polygon, error) {
	out := make([]*geom.Polygon, 0, len(t.polygons))
	var walk func(n *node) error
	walk = func(n *node) error {
		if n == nil {
			return nil
		}
		back, ok := backFacing[n.polygon]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingPolygon, n.polygon.ID)
		}
		far, near := n.back, n.front
		if back {
			far, near = n.front, n.back
		}
		if err := walk(far); err != nil {
			return err
		}
		out = append(out, n.polygon)
		return walk(near)
	}
	if err := walk(t.root); err != nil {
		return nil, err
	}
	return out, nil
}
