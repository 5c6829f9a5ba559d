package scene

import (
	"github.com/taigrr/painter/internal/logger"
	"github.com/taigrr/painter/pkg/bsp"
	"github.com/taigrr/painter/pkg/geom"
)

// PolygonSet is a model's polygon list together with the BSP tree built
// from it. The set only changes through ReplaceAll, which rebuilds the tree
// and bumps the revision.
type PolygonSet struct {
	polygons []*geom.Polygon
	tree     *bsp.Tree
	revision uint64
}

// ReplaceAll swaps the polygon list. Degenerate polygons are logged and
// left out.
func (s *PolygonSet) ReplaceAll(polygons []*geom.Polygon) {
	kept := make([]*geom.Polygon, 0, len(polygons))
	for _, p := range polygons {
		if p == nil {
			continue
		}
		if !p.Valid() {
			logger.Get().Warn("scene: polygon has no normal, excluding it", "id", p.ID)
			continue
		}
		kept = append(kept, p)
	}
	s.polygons = kept
	s.tree = bsp.New(kept)
	s.revision++
}

// Polygons returns the authored polygons.
func (s *PolygonSet) Polygons() []*geom.Polygon {
	return s.polygons
}

// Tree returns the BSP tree over the polygons. Its Polygons include split
// fragments and are what the pipeline renders.
func (s *PolygonSet) Tree() *bsp.Tree {
	if s.tree == nil {
		s.tree = bsp.New(nil)
	}
	return s.tree
}

// Revision changes every time the set is replaced.
func (s *PolygonSet) Revision() uint64 {
	return s.revision
}

// Len returns the number of authored polygons.
func (s *PolygonSet) Len() int {
	return len(s.polygons)
}
