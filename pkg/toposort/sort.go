package toposort

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/painter/internal/logger"
	"github.com/taigrr/painter/pkg/geom"
)

// ErrInvalidBounding is returned when a bounding has a NaN or infinite
// corner.
var ErrInvalidBounding = errors.New("toposort: bounding is not finite")

// Collision names two inputs whose boundings overlap without a separating
// plane. A < B.
type Collision struct {
	A, B int
}

// Order is the outcome of Sort.
type Order struct {
	// Indices lists the inputs back to front.
	Indices []int
	// Cyclic is set when the behind relation had a cycle and Indices comes
	// from the distance fallback.
	Cyclic bool
	// Collisions in (A, B) order.
	Collisions []Collision
}

// Sorter orders eye-space boundings.
type Sorter struct {
	Perspective bool
	// Workers bounds the goroutines used for pairwise comparisons. Values
	// below 2 compare sequentially.
	Workers int
}

// Sort orders boxes back to front. Pairs are compared once each; inputs
// that impose no order on each other keep their input order.
func (s Sorter) Sort(boxes []geom.Bounding) (Order, error) {
	n := len(boxes)
	rows := make([][]Result, n)

	compareRow := func(i int) error {
		if !finite(&boxes[i]) {
			return fmt.Errorf("box %d: %w", i, ErrInvalidBounding)
		}
		row := make([]Result, n-i-1)
		for k := range row {
			row[k] = Compare(&boxes[i], &boxes[i+1+k], s.Perspective)
		}
		rows[i] = row
		return nil
	}

	if s.Workers < 2 || n < 3 {
		for i := range n {
			if err := compareRow(i); err != nil {
				return Order{}, err
			}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(s.Workers)
		for i := range n {
			g.Go(func() error { return compareRow(i) })
		}
		if err := g.Wait(); err != nil {
			return Order{}, err
		}
	}

	g := newGraph(n)
	var out Order
	for i, row := range rows {
		for k, r := range row {
			j := i + 1 + k
			switch r.Side {
			case Behind:
				g.edge(i, j)
			case InFront:
				g.edge(j, i)
			}
			if r.Collision {
				out.Collisions = append(out.Collisions, Collision{A: i, B: j})
			}
		}
	}

	if sorted, ok := g.sort(); ok {
		out.Indices = sorted
		return out, nil
	}

	logger.Get().Warn("toposort: cycle detected, ordering by distance", "models", n)
	out.Cyclic = true
	out.Indices = byDistance(boxes)
	return out, nil
}

// graph holds "behind" edges: an edge from a to b means a is drawn first.
type graph struct {
	fronts [][]int
	backs  []int
}

func newGraph(n int) *graph {
	return &graph{fronts: make([][]int, n), backs: make([]int, n)}
}

func (g *graph) edge(behind, front int) {
	g.fronts[behind] = append(g.fronts[behind], front)
	g.backs[front]++
}

// sort is Kahn's algorithm with a FIFO queue seeded in input order.
// It reports false when a cycle leaves nodes unsorted.
func (g *graph) sort() ([]int, bool) {
	n := len(g.backs)
	backs := slices.Clone(g.backs)
	queue := make([]int, 0, n)
	for i, b := range backs {
		if b == 0 {
			queue = append(queue, i)
		}
	}
	sorted := make([]int, 0, n)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		sorted = append(sorted, cur)
		for _, f := range g.fronts[cur] {
			backs[f]--
			if backs[f] == 0 {
				queue = append(queue, f)
			}
		}
	}
	return sorted, len(sorted) == n
}

// byDistance orders boxes by descending distance of their centroid from
// the eye-space origin, keeping input order on ties.
func byDistance(boxes []geom.Bounding) []int {
	dist := make([]float64, len(boxes))
	idx := make([]int, len(boxes))
	for i := range boxes {
		dist[i] = boxes[i].Center().Len()
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(dist[b], dist[a])
	})
	return idx
}

func finite(b *geom.Bounding) bool {
	for _, c := range b.Cuboid {
		if !c.IsValid() {
			return false
		}
	}
	return true
}
