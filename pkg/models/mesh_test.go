package models

import (
	"image/color"
	"testing"

	"github.com/taigrr/painter/pkg/geom"
	"github.com/taigrr/painter/pkg/math3d"
)

func TestPrimitivesFaceOutwards(t *testing.T) {
	tests := []struct {
		name  string
		polys []*geom.Polygon
		count int
	}{
		{"cube", Cube(2), 6},
		{"pyramid", Pyramid(2), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if len(tc.polys) != tc.count {
				t.Fatalf("got %d faces, want %d", len(tc.polys), tc.count)
			}
			for _, p := range tc.polys {
				n, ok := p.Normal()
				if !ok {
					t.Fatalf("%s is degenerate", p.ID)
				}
				var center math3d.Vec3
				for _, v := range p.Points() {
					center = center.Add(v)
				}
				center = center.Scale(1 / float64(len(p.Points())))
				if n.Dot(center) <= 0 {
					t.Errorf("%s normal %v points inwards", p.ID, n)
				}
			}
		})
	}
}

func TestQuadAndWindow(t *testing.T) {
	n, ok := Quad(2, 1).Normal()
	if !ok || !n.Equal(math3d.V3(0, 0, 1), 1e-12) {
		t.Errorf("quad normal = %v (%v), want +Z", n, ok)
	}

	w := Window(4, 4, 1)
	if !w.Valid() {
		t.Fatal("window is degenerate")
	}
	if len(w.Holes()) != 1 || len(w.Holes()[0]) != 4 {
		t.Errorf("window holes = %v, want one quad", w.Holes())
	}
}

func TestMeshPolygons(t *testing.T) {
	m := NewMesh("tri")
	m.Positions = []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)}
	m.Materials = []geom.Material{{Name: "blue", Color: color.RGBA{B: 255, A: 255}}}
	m.AddFace(0, 0, 1, 2)
	m.AddFace(-1, 2, 1, 0)

	polys, err := m.Polygons()
	if err != nil {
		t.Fatal(err)
	}
	if polys[0].ID != "tri-0" || polys[1].ID != "tri-1" {
		t.Errorf("ids = %s, %s", polys[0].ID, polys[1].ID)
	}
	if polys[0].Material == nil || polys[0].Material.Name != "blue" {
		t.Errorf("face 0 material = %v, want blue", polys[0].Material)
	}
	if polys[1].Material != nil {
		t.Errorf("face 1 material = %v, want none", polys[1].Material)
	}

	m.AddFace(0, 0, 1, 7)
	if _, err := m.Polygons(); err == nil {
		t.Error("out-of-range index should fail")
	}
}

func TestMeshNormalizeAndClone(t *testing.T) {
	m := NewMesh("box")
	m.Positions = []math3d.Vec3{math3d.V3(2, 2, 2), math3d.V3(6, 4, 3)}
	m.AddFace(-1, 0, 1)

	c := m.Clone()
	m.Normalize(1)

	if got := m.Size(); !got.Equal(math3d.V3(1, 0.5, 0.25), 1e-12) {
		t.Errorf("normalized size = %v", got)
	}
	if got := m.Center(); !got.Equal(math3d.Vec3{}, 1e-12) {
		t.Errorf("normalized center = %v", got)
	}
	if c.Positions[0] != math3d.V3(2, 2, 2) {
		t.Errorf("clone shares positions: %v", c.Positions[0])
	}
	c.Faces[0].V[0] = 9
	if m.Faces[0].V[0] != 0 {
		t.Error("clone shares face indices")
	}
}

func TestRGBA(t *testing.T) {
	got := RGBA([4]float64{1, 0.5, -1, 2})
	want := color.RGBA{R: 255, G: 128, B: 0, A: 255}
	if got != want {
		t.Errorf("RGBA = %v, want %v", got, want)
	}
}
