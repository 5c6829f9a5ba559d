package toposort

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/taigrr/painter/pkg/geom"
	"github.com/taigrr/painter/pkg/math3d"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float64) geom.Bounding {
	return geom.NewBounding([]math3d.Vec3{
		math3d.V3(minX, minY, minZ),
		math3d.V3(maxX, maxY, maxZ),
	})
}

// cubeAt is a 2x2x2 box centered on (0, 0, z).
func cubeAt(z float64) geom.Bounding {
	return box(-1, -1, z-1, 1, 1, z+1)
}

func TestCompare(t *testing.T) {
	near, far := cubeAt(-10), cubeAt(-20)

	tests := []struct {
		name        string
		a, b        geom.Bounding
		perspective bool
		want        Result
	}{
		{"near vs far", near, far, true, Result{Side: InFront}},
		{"far vs near", far, near, true, Result{Side: Behind}},
		{"near vs far ortho", near, far, false, Result{Side: InFront}},
		{"identical boxes collide", near, near, true, Result{Collision: true}},
		{"overlapping boxes collide", near, box(-0.5, -0.5, -10.5, 0.5, 0.5, -9.5), true, Result{Collision: true}},
		{"opposite x quadrants", box(1, -1, -11, 2, 1, -9), box(-2, -1, -21, -1, 1, -19), true, Result{}},
		{"opposite y quadrants", box(-1, 1, -11, 1, 2, -9), box(-1, -2, -21, 1, -1, -19), true, Result{}},
		{"ortho disjoint extents", box(-1, -1, -11, -0.5, 1, -9), box(-0.4, -1, -21, 1, 1, -19), false, Result{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Compare(&tc.a, &tc.b, tc.perspective)
			if got != tc.want {
				t.Errorf("Compare = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestCompareRotatedBoxes(t *testing.T) {
	// A box turned 45 degrees around Y shares no face orientation with an
	// axis-aligned one.
	rot := math3d.RotateY(math.Pi / 4)
	place := math3d.Translate(math3d.V3(0, 0, -10)).Mul(rot)
	a := cubeAt(0).Transform(place, rot)
	b := cubeAt(-20)

	if got := Compare(&a, &b, true); got.Side != InFront || got.Collision {
		t.Errorf("Compare(rotated near, far) = %+v, want in front", got)
	}
	if got := Compare(&b, &a, true); got.Side != Behind || got.Collision {
		t.Errorf("Compare(far, rotated near) = %+v, want behind", got)
	}
}

func TestSort(t *testing.T) {
	boxes := []geom.Bounding{cubeAt(-5), cubeAt(-30), cubeAt(-15)}

	for _, workers := range []int{0, 1, 4} {
		order, err := Sorter{Perspective: true, Workers: workers}.Sort(boxes)
		if err != nil {
			t.Fatalf("workers=%d: Sort: %v", workers, err)
		}
		if want := []int{1, 2, 0}; !slices.Equal(order.Indices, want) {
			t.Errorf("workers=%d: order = %v, want %v", workers, order.Indices, want)
		}
		if order.Cyclic {
			t.Errorf("workers=%d: unexpected cycle", workers)
		}
		if len(order.Collisions) != 0 {
			t.Errorf("workers=%d: collisions = %v, want none", workers, order.Collisions)
		}
	}
}

func TestSortKeepsInputOrderForUnrelated(t *testing.T) {
	boxes := []geom.Bounding{
		box(1, 1, -11, 2, 2, -9),
		box(-2, -2, -21, -1, -1, -19),
		box(1, -2, -31, 2, -1, -29),
	}
	order, err := Sorter{Perspective: true}.Sort(boxes)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{0, 1, 2}; !slices.Equal(order.Indices, want) {
		t.Errorf("order = %v, want %v", order.Indices, want)
	}
}

func TestSortReportsCollisions(t *testing.T) {
	boxes := []geom.Bounding{cubeAt(-10), cubeAt(-40), cubeAt(-10)}
	order, err := Sorter{Perspective: true, Workers: 2}.Sort(boxes)
	if err != nil {
		t.Fatal(err)
	}
	want := []Collision{{A: 0, B: 2}}
	if !slices.Equal(order.Collisions, want) {
		t.Errorf("collisions = %v, want %v", order.Collisions, want)
	}
	if order.Indices[0] != 1 {
		t.Errorf("farthest box should come first, got %v", order.Indices)
	}
}

func TestSortInvalidBounding(t *testing.T) {
	bad := cubeAt(-10)
	bad.Cuboid[3].X = math.NaN()

	for _, workers := range []int{1, 4} {
		_, err := Sorter{Workers: workers}.Sort([]geom.Bounding{cubeAt(-5), bad, cubeAt(-20)})
		if !errors.Is(err, ErrInvalidBounding) {
			t.Errorf("workers=%d: err = %v, want ErrInvalidBounding", workers, err)
		}
	}
}

func TestGraphCycle(t *testing.T) {
	g := newGraph(3)
	g.edge(0, 1)
	g.edge(1, 2)
	g.edge(2, 0)
	if _, ok := g.sort(); ok {
		t.Fatal("sort of a 3-cycle reported success")
	}

	g = newGraph(4)
	g.edge(2, 0)
	g.edge(3, 0)
	sorted, ok := g.sort()
	if !ok {
		t.Fatal("acyclic graph reported a cycle")
	}
	if want := []int{1, 2, 3, 0}; !slices.Equal(sorted, want) {
		t.Errorf("sorted = %v, want %v", sorted, want)
	}
}

// plank is a length x width x width box along X, turned by yaw around Z
// after pitch around Y, centered on pos. Angles are in degrees.
func plank(length, width, yaw, pitch float64, pos math3d.Vec3) geom.Bounding {
	rot := math3d.RotateZ(yaw * math.Pi / 180).Mul(math3d.RotateY(pitch * math.Pi / 180))
	l, w := length/2, width/2
	return box(-l, -w, -w, l, w, w).Transform(math3d.Translate(pos).Mul(rot), rot)
}

func TestSortCycleFallback(t *testing.T) {
	// Three crossed planks where each overlaps the next on screen: 1 is
	// behind 0, 0 is behind 2 and 2 is behind 1.
	boxes := []geom.Bounding{
		plank(6, 0.5, 75, -15, math3d.V3(-1, -1, -8)),
		plank(3, 0.2, 0, 15, math3d.V3(-0.5, 0.5, -9)),
		plank(5, 0.5, 45, -45, math3d.V3(1, -0.5, -8)),
	}

	pairs := []struct {
		a, b int
		want Side
	}{
		{0, 1, InFront},
		{0, 2, Behind},
		{1, 2, InFront},
	}
	for _, p := range pairs {
		if got := Compare(&boxes[p.a], &boxes[p.b], true); got.Side != p.want || got.Collision {
			t.Fatalf("Compare(%d, %d) = %+v, want side %v", p.a, p.b, got, p.want)
		}
	}

	want := byDistance(boxes)
	if !slices.Equal(want, []int{1, 0, 2}) {
		t.Fatalf("byDistance = %v, want [1 0 2]", want)
	}
	for _, workers := range []int{0, 1, 4} {
		order, err := Sorter{Perspective: true, Workers: workers}.Sort(boxes)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if !order.Cyclic {
			t.Errorf("workers=%d: Cyclic not set", workers)
		}
		if len(order.Collisions) != 0 {
			t.Errorf("workers=%d: collisions = %v, want none", workers, order.Collisions)
		}
		seen := make([]bool, len(boxes))
		for _, i := range order.Indices {
			if i < 0 || i >= len(boxes) || seen[i] {
				t.Fatalf("workers=%d: indices %v are not a permutation", workers, order.Indices)
			}
			seen[i] = true
		}
		if !slices.Equal(order.Indices, want) {
			t.Errorf("workers=%d: indices = %v, want %v", workers, order.Indices, want)
		}
	}
}

func TestByDistance(t *testing.T) {
	boxes := []geom.Bounding{cubeAt(-5), cubeAt(-20), cubeAt(-10), cubeAt(-20)}
	if got, want := byDistance(boxes), []int{1, 3, 2, 0}; !slices.Equal(got, want) {
		t.Errorf("byDistance = %v, want %v", got, want)
	}
}

func BenchmarkSort(b *testing.B) {
	boxes := make([]geom.Bounding, 32)
	for i := range boxes {
		x := float64(i%4) - 1.5
		boxes[i] = box(x-0.4, -0.4, -float64(5+i)-0.4, x+0.4, 0.4, -float64(5+i)+0.4)
	}
	s := Sorter{Perspective: true, Workers: 4}
	for b.Loop() {
		if _, err := s.Sort(boxes); err != nil {
			b.Fatal(err)
		}
	}
}
