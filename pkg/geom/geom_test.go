package geom

import (
	"math"
	"testing"

	"github.com/taigrr/painter/pkg/math3d"
)

const tolerance = 1e-9

func square(z float64) []math3d.Vec3 {
	return []math3d.Vec3{
		math3d.V3(-1, -1, z),
		math3d.V3(1, -1, z),
		math3d.V3(1, 1, z),
		math3d.V3(-1, 1, z),
	}
}

func TestNewPolygon(t *testing.T) {
	tests := []struct {
		name   string
		points []math3d.Vec3
		opts   []Option
		valid  bool
		normal math3d.Vec3
	}{
		{
			name:   "square",
			points: square(0),
			valid:  true,
			normal: math3d.V3(0, 0, 1),
		},
		{
			name:   "square with hole",
			points: square(2),
			opts:   []Option{WithHoles(square(2))},
			valid:  true,
			normal: math3d.V3(0, 0, 1),
		},
		{
			name:   "degenerate line",
			points: []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(2, 0, 0)},
			valid:  false,
		},
		{
			name:   "nan vertex",
			points: []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(math.NaN(), 0, 0), math3d.V3(0, 1, 0)},
			valid:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPolygon(tt.name, tt.points, tt.opts...)
			if p.Valid() != tt.valid {
				t.Fatalf("Valid() = %v, want %v", p.Valid(), tt.valid)
			}
			n, ok := p.Normal()
			if ok != tt.valid {
				t.Errorf("Normal() ok = %v", ok)
			}
			if tt.valid && !n.Equal(tt.normal, tolerance) {
				t.Errorf("Normal() = %v, want %v", n, tt.normal)
			}
		})
	}
}

func TestPolygonCopiesInput(t *testing.T) {
	pts := square(0)
	p := NewPolygon("a", pts)
	pts[0] = math3d.V3(9, 9, 9)
	if p.Points()[0] == pts[0] {
		t.Error("polygon must not alias caller slice")
	}
}

func TestFragmentKeepsMaterial(t *testing.T) {
	mat := &Material{Name: "red"}
	p := NewPolygon("a", square(0), WithMaterial(mat))
	f := p.Fragment("a-part", square(0)[:3], nil)
	if f.Material != mat {
		t.Error("fragment lost material")
	}
	if f.ID != "a-part" {
		t.Errorf("ID = %q", f.ID)
	}
}

func TestPlaneClassify(t *testing.T) {
	pl := Plane{Point: math3d.V3(0, 0, 0), Normal: math3d.V3(0, 0, 1)}

	tests := []struct {
		name   string
		points []math3d.Vec3
		want   Side
	}{
		{"in front", square(1), Front},
		{"behind", square(-1), Back},
		{"coplanar", square(0), Front},
		{"within epsilon behind", square(-math3d.Epsilon / 2), Front},
		{"spanning", []math3d.Vec3{math3d.V3(0, 0, -1), math3d.V3(1, 0, 1), math3d.V3(0, 1, 1)}, Spanning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pl.Classify(tt.points, math3d.Epsilon); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaneSplitContour(t *testing.T) {
	// vertical square crossing z=0
	contour := []math3d.Vec3{
		math3d.V3(0, -1, -1),
		math3d.V3(0, -1, 1),
		math3d.V3(0, 1, 1),
		math3d.V3(0, 1, -1),
	}
	pl := Plane{Normal: math3d.V3(0, 0, 1)}

	front, back := pl.SplitContour(contour)
	if len(front) != 4 || len(back) != 4 {
		t.Fatalf("len(front)=%d len(back)=%d, want 4 and 4", len(front), len(back))
	}
	for _, v := range front {
		if v.Z < 0 {
			t.Errorf("front vertex %v behind plane", v)
		}
	}
	for _, v := range back {
		if v.Z > 0 {
			t.Errorf("back vertex %v in front of plane", v)
		}
	}

	// a vertex on the plane goes to both sides without extra intersections
	tri := []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 0, 1), math3d.V3(-1, 0, 1)}
	front, back = pl.SplitContour(tri)
	if len(front) != 3 {
		t.Errorf("front len = %d, want 3", len(front))
	}
	if len(back) != 1 {
		t.Errorf("back len = %d, want 1", len(back))
	}
}

func TestFlatten(t *testing.T) {
	// square facing +x, offset from origin
	p := NewPolygon("side", []math3d.Vec3{
		math3d.V3(2, -1, 1),
		math3d.V3(2, -1, -1),
		math3d.V3(2, 1, -1),
		math3d.V3(2, 1, 1),
	}, WithHoles([]math3d.Vec3{
		math3d.V3(2, -0.5, 0.5),
		math3d.V3(2, 0.5, 0.5),
		math3d.V3(2, 0.5, -0.5),
	}))

	f := Flatten(p)
	if math.Abs(f.Width-2) > tolerance || math.Abs(f.Height-2) > tolerance {
		t.Errorf("size = %vx%v, want 2x2", f.Width, f.Height)
	}
	for _, v := range f.Vertices {
		if v.X < -tolerance || v.Y < -tolerance {
			t.Errorf("vertex %v has negative coordinate", v)
		}
	}
	if len(f.Holes) != 1 || len(f.Holes[0]) != 3 {
		t.Fatalf("holes = %v", f.Holes)
	}

	// Matrix3D maps the flat frame back onto the polygon
	for i, v := range f.Vertices {
		got := f.Matrix3D.MulPoint(math3d.V3(v.X, v.Y, 0))
		if !got.Equal(p.Points()[i], 1e-9) {
			t.Errorf("vertex %d maps to %v, want %v", i, got, p.Points()[i])
		}
	}
}

func TestFlattenFacingViewer(t *testing.T) {
	// normal (0,0,1) is antiparallel to the view axis
	p := NewPolygon("front", square(3))
	f := Flatten(p)
	for i, v := range f.Vertices {
		got := f.Matrix3D.MulPoint(math3d.V3(v.X, v.Y, 0))
		if !got.Equal(p.Points()[i], 1e-9) {
			t.Errorf("vertex %d maps to %v, want %v", i, got, p.Points()[i])
		}
	}
}

func TestBounding(t *testing.T) {
	b := NewBounding([]math3d.Vec3{
		math3d.V3(-1, -2, -3),
		math3d.V3(1, 2, 3),
		math3d.V3(0, 0, 0),
	})

	if b.Cuboid[0] != b.Min || b.Cuboid[7] != b.Max {
		t.Errorf("corners 0/7 = %v/%v, want min/max", b.Cuboid[0], b.Cuboid[7])
	}
	if b.Cuboid[4] != math3d.V3(1, -2, -3) {
		t.Errorf("corner 4 = %v, want max x only", b.Cuboid[4])
	}
	if b.Cuboid[1] != math3d.V3(-1, -2, 3) {
		t.Errorf("corner 1 = %v, want max z only", b.Cuboid[1])
	}

	// every corner is on or behind every face
	for i := range b.Planes {
		pl := b.Plane(i)
		for _, c := range b.Cuboid {
			if pl.Dot(c) > tolerance {
				t.Errorf("plane %d: corner %v in front", i, c)
			}
		}
	}

	if c := b.Center(); !c.Equal(math3d.V3(0, 0, 0), tolerance) {
		t.Errorf("Center() = %v", c)
	}
}

func TestBoundingTransform(t *testing.T) {
	b := NewBounding(square(0)).Transform(math3d.Identity(), math3d.Identity())
	rot := math3d.RotateZ(math.Pi / 2)
	moved := b.Transform(math3d.Translate(math3d.V3(5, 0, 0)).Mul(rot), rot)

	if !moved.Center().Equal(math3d.V3(5, 0, 0), tolerance) {
		t.Errorf("center = %v", moved.Center())
	}
	// the +x face now points along +y
	if n := moved.Planes[5].Normal; !n.Equal(math3d.V3(0, 1, 0), tolerance) {
		t.Errorf("+x face normal = %v, want (0,1,0)", n)
	}
	for i := range moved.Planes {
		pl := moved.Plane(i)
		for _, c := range moved.Cuboid {
			if pl.Dot(c) > 1e-9 {
				t.Errorf("plane %d: corner %v in front after transform", i, c)
			}
		}
	}

	if got := NewBounding(nil); got.Min != (math3d.Vec3{}) || got.Max != (math3d.Vec3{}) {
		t.Errorf("empty bounding = %v..%v", got.Min, got.Max)
	}
}
