package paint

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/taigrr/painter/pkg/geom"
	"github.com/taigrr/painter/pkg/math3d"
	"github.com/taigrr/painter/pkg/models"
	"github.com/taigrr/painter/pkg/render"
	"github.com/taigrr/painter/pkg/scene"
)

func TestLight(t *testing.T) {
	up := math3d.V3(0, 1, 0)

	tests := []struct {
		name   string
		n      math3d.Vec3
		modify func(*scene.Scene)
		want   uint8
	}{
		{"facing light clamps", up, nil, 255},
		{"facing away gets ambient", up.Scale(-1), nil, 128},
		{"sideways gets ambient", math3d.V3(1, 0, 0), nil, 128},
		{"ambient off", up, func(s *scene.Scene) { s.Ambient.Off = true }, 128},
		{"both off", up, func(s *scene.Scene) { s.Ambient.Off = true; s.Directional.Off = true }, 0},
		{"dim", up, func(s *scene.Scene) { s.Ambient.Intensity = 0.2; s.Directional.Intensity = 0.3 }, 51 + 77},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := scene.New()
			s.Directional.Direction = up
			if tc.modify != nil {
				tc.modify(s)
			}
			if got := Light(tc.n, s); got != tc.want {
				t.Errorf("Light = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestShade(t *testing.T) {
	sc := scene.New()
	sc.Directional.Direction = math3d.V3(0, 0, 1)
	mat := &geom.Material{Color: color.RGBA{R: 200, G: 100, B: 0, A: 128}}

	got := Shade(mat, sc.Directional.Direction.Scale(-1), sc)
	want := color.RGBA{R: 100, G: 50, B: 0, A: 128}
	if got != want {
		t.Errorf("Shade = %v, want %v", got, want)
	}
	if got := Shade(mat, sc.Directional.Direction, sc); got.R != 200 || got.G != 100 {
		t.Errorf("fully lit Shade = %v, want material color", got)
	}
}

func TestMaterialFor(t *testing.T) {
	red := &geom.Material{Name: "red"}
	blue := &geom.Material{Name: "blue"}

	tests := []struct {
		name  string
		poly  *geom.Polygon
		model *scene.Node
		want  string
	}{
		{"model fallback", models.Quad(1, 1), &scene.Node{Material: blue}, "blue"},
		{"polygon wins", geom.NewPolygon("p", nil, geom.WithMaterial(red)), &scene.Node{Material: blue}, "red"},
		{"no model", geom.NewPolygon("p", nil), nil, "default"},
		{"model without material", geom.NewPolygon("p", nil), &scene.Node{}, "default"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MaterialFor(tc.poly, tc.model); got.Name != tc.want {
				t.Errorf("MaterialFor = %s, want %s", got.Name, tc.want)
			}
		})
	}
}

func square(half float64) []math3d.Vec4 {
	return []math3d.Vec4{
		math3d.V4(-half, -half, 0, 1),
		math3d.V4(half, -half, 0, 1),
		math3d.V4(half, half, 0, 1),
		math3d.V4(-half, half, 0, 1),
	}
}

func near(a, b color.Color) bool {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	d := func(x, y uint32) bool {
		if x > y {
			return x-y < 0x0800
		}
		return y-x < 0x0800
	}
	return d(ar, br) && d(ag, bg) && d(ab, bb)
}

func TestCanvasPolygon(t *testing.T) {
	bg := color.RGBA{A: 255}
	fill := color.RGBA{R: 255, A: 255}

	tests := []struct {
		name  string
		holes [][]math3d.Vec4
		want  color.RGBA
	}{
		{"solid", nil, fill},
		{"hole", [][]math3d.Vec4{square(3)}, bg},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCanvas(40, 40)
			defer c.Close()
			c.Clear(bg)
			if err := c.Polygon(square(10), tc.holes, fill); err != nil {
				t.Fatal(err)
			}
			img := c.Image()
			if got := img.At(20, 20); !near(got, tc.want) {
				t.Errorf("center = %v, want %v", got, tc.want)
			}
			if got := img.At(13, 20); !near(got, fill) {
				t.Errorf("inside ring = %v, want %v", got, fill)
			}
			if got := img.At(2, 2); !near(got, bg) {
				t.Errorf("outside = %v, want %v", got, bg)
			}
		})
	}
}

func TestCanvasPixel(t *testing.T) {
	c := NewCanvas(800, 600)
	defer c.Close()
	x, y := c.Pixel(math3d.V4(100, 50, 0, 1))
	if x != 500 || y != 250 {
		t.Errorf("Pixel = (%v, %v), want (500, 250)", x, y)
	}
}

func TestCanvasDraw(t *testing.T) {
	sc := scene.New()
	id, err := sc.AddModel(scene.Root, "cube", models.Cube(2))
	if err != nil {
		t.Fatal(err)
	}
	sc.Node(id).Material = &geom.Material{Name: "green", Color: color.RGBA{G: 255, A: 255}}

	cam := render.NewCamera()
	cam.SetViewport(80, 60)
	cam.SetPosition(math3d.V3(0, 0, 5))
	frame, err := render.NewRenderer(render.WithBackfaceCulling(true)).Render(sc, cam, render.NewCache())
	if err != nil {
		t.Fatal(err)
	}
	list, err := frame.DrawList()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d visible faces, want 1", len(list))
	}

	c := NewCanvas(80, 60)
	defer c.Close()
	c.Clear(sc.Background)
	if err := c.Draw(list, sc); err != nil {
		t.Fatal(err)
	}
	want := Shade(sc.Node(id).Material, list[0].WorldNormal, sc)
	if got := c.Image().At(40, 30); !near(got, want) {
		t.Errorf("center = %v, want %v", got, want)
	}
}

func TestFramebuffer(t *testing.T) {
	fb := NewFramebuffer(10, 6)
	fb.Clear(color.RGBA{B: 255, A: 255})
	if got := fb.GetPixel(9, 5); got.B != 255 {
		t.Errorf("after Clear pixel = %v", got)
	}
	fb.SetPixel(-1, 0, color.RGBA{R: 255, A: 255})
	if got := fb.GetPixel(-1, 0); got != (color.RGBA{}) {
		t.Errorf("out of range GetPixel = %v, want zero", got)
	}

	white := color.RGBA{255, 255, 255, 255}
	fb.DrawLine(0, 0, 9, 0, white)
	for x := range 10 {
		if fb.GetPixel(x, 0) != white {
			t.Fatalf("pixel %d not drawn", x)
		}
	}
	fb.DrawLine(0, 5, 5, 0, white)
	if fb.GetPixel(3, 2) != white {
		t.Error("diagonal misses (3, 2)")
	}
}

func TestFramebufferBlit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 24))
	for y := range 24 {
		for x := range 40 {
			src.SetRGBA(x, y, color.RGBA{R: 200, G: 10, A: 255})
		}
	}
	fb := NewFramebuffer(10, 6)
	fb.Blit(src)
	if got := fb.GetPixel(5, 3); !near(got, color.RGBA{R: 200, G: 10, A: 255}) {
		t.Errorf("blitted pixel = %v", got)
	}
}

func TestFramebufferWireframe(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	list := []render.DrawPolygon{{Points: square(50)}}
	white := color.RGBA{255, 255, 255, 255}
	fb.Wireframe(list, 200, 200, white)

	// the square spans pixels 5..15 after scaling by 0.1
	for _, p := range [][2]int{{5, 5}, {15, 5}, {15, 15}, {5, 15}, {10, 5}} {
		if fb.GetPixel(p[0], p[1]) != white {
			t.Errorf("edge pixel %v not drawn", p)
		}
	}
	if fb.GetPixel(10, 10) == white {
		t.Error("wireframe filled the interior")
	}
}

func TestFramebufferSavePNG(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	path := filepath.Join(t.TempDir(), "fb.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatal(err)
	}
}

func BenchmarkCanvasPolygon(b *testing.B) {
	c := NewCanvas(200, 200)
	defer c.Close()
	points := square(80)
	fill := color.RGBA{R: 255, A: 255}
	for b.Loop() {
		_ = c.Polygon(points, nil, fill)
	}
}
