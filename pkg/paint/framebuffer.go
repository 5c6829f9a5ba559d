package paint

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/taigrr/painter/pkg/math3d"
	"github.com/taigrr/painter/pkg/render"
)

// Framebuffer is a small pixel grid sized for the terminal. It is twice as
// tall as the terminal has rows since every cell shows two pixels (▀).
type Framebuffer struct {
	Width  int
	Height int
	img    *image.RGBA
}

// NewFramebuffer creates a width by height framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	xdraw.Draw(fb.img, fb.img.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
}

// SetPixel sets the pixel at (x, y). Out of range writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.img.SetRGBA(x, y, c)
}

// GetPixel returns the color at (x, y), or transparent black out of range.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.img.RGBAAt(x, y)
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Blit scales src onto the whole framebuffer.
func (fb *Framebuffer) Blit(src image.Image) {
	xdraw.BiLinear.Scale(fb.img, fb.img.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}

// Wireframe draws the edges of every polygon in list, holes included.
// Points are screen space for a viewport of w by h; they are scaled to the
// framebuffer.
func (fb *Framebuffer) Wireframe(list []render.DrawPolygon, w, h int, c color.RGBA) {
	sx := float64(fb.Width) / float64(w)
	sy := float64(fb.Height) / float64(h)
	pixel := func(v math3d.Vec4) (int, int) {
		x := (float64(w)/2 + v.X) * sx
		y := (float64(h)/2 - v.Y) * sy
		return int(math.Round(x)), int(math.Round(y))
	}
	edges := func(points []math3d.Vec4) {
		for i, a := range points {
			b := points[(i+1)%len(points)]
			x0, y0 := pixel(a)
			x1, y1 := pixel(b)
			fb.DrawLine(x0, y0, x1, y1, c)
		}
	}
	for _, dp := range list {
		edges(dp.Points)
		for _, hole := range dp.Holes {
			edges(hole)
		}
	}
}

// ToImage returns the framebuffer pixels. The image shares memory with the
// framebuffer.
func (fb *Framebuffer) ToImage() *image.RGBA {
	return fb.img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.img)
}
