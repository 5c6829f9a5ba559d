package paint

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"

	"github.com/taigrr/painter/pkg/math3d"
	"github.com/taigrr/painter/pkg/render"
	"github.com/taigrr/painter/pkg/scene"
)

// Canvas paints screen-space polygons with gg. Screen space is centered on
// the viewport with +Y up; the canvas maps it onto pixels with the origin
// at the top left.
type Canvas struct {
	ctx    *gg.Context
	width  int
	height int

	// Outline strokes every polygon edge after filling it.
	Outline      bool
	OutlineColor color.RGBA
	OutlineWidth float64
}

// NewCanvas creates a width by height canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		ctx:          gg.NewContext(width, height),
		width:        width,
		height:       height,
		OutlineColor: color.RGBA{A: 255},
		OutlineWidth: 1,
	}
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.ctx.Close()
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Clear fills the whole canvas with bg.
func (c *Canvas) Clear(bg color.RGBA) {
	c.ctx.ClearWithColor(gg.FromColor(bg))
}

// Pixel maps a screen-space vertex to canvas pixel coordinates.
func (c *Canvas) Pixel(v math3d.Vec4) (x, y float64) {
	return float64(c.width)/2 + v.X, float64(c.height)/2 - v.Y
}

// Draw paints a frame's draw list in order, shading each polygon with the
// scene lights.
func (c *Canvas) Draw(list []render.DrawPolygon, sc *scene.Scene) error {
	for _, dp := range list {
		mat := MaterialFor(dp.Polygon, sc.Node(dp.Node))
		if err := c.Polygon(dp.Points, dp.Holes, Shade(mat, dp.WorldNormal, sc)); err != nil {
			return fmt.Errorf("draw %s: %w", dp.Polygon.ID, err)
		}
	}
	return nil
}

// Polygon fills a contour with holes cut out by the even-odd rule.
func (c *Canvas) Polygon(points []math3d.Vec4, holes [][]math3d.Vec4, fill color.RGBA) error {
	if len(points) < 3 {
		return nil
	}
	c.path(points, holes)
	c.ctx.SetFillRule(gg.FillRuleEvenOdd)
	c.ctx.SetRGBA(float64(fill.R)/255, float64(fill.G)/255, float64(fill.B)/255, float64(fill.A)/255)
	if !c.Outline {
		return c.ctx.Fill()
	}
	if err := c.ctx.FillPreserve(); err != nil {
		return err
	}
	c.ctx.SetColor(c.OutlineColor)
	c.ctx.SetLineWidth(c.OutlineWidth)
	return c.ctx.Stroke()
}

func (c *Canvas) path(points []math3d.Vec4, holes [][]math3d.Vec4) {
	c.contour(points)
	for _, h := range holes {
		if len(h) < 3 {
			continue
		}
		c.ctx.NewSubPath()
		c.contour(h)
	}
}

func (c *Canvas) contour(points []math3d.Vec4) {
	for i, v := range points {
		x, y := c.Pixel(v)
		if i == 0 {
			c.ctx.MoveTo(x, y)
		} else {
			c.ctx.LineTo(x, y)
		}
	}
	c.ctx.ClosePath()
}

// Image returns the canvas pixels.
func (c *Canvas) Image() image.Image {
	return c.ctx.Image()
}

// SavePNG writes the canvas to path.
func (c *Canvas) SavePNG(path string) error {
	return c.ctx.SavePNG(path)
}
