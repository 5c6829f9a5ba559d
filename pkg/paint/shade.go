// Package paint turns a render.Frame draw list into pixels: flat shaded,
// back to front, either as a vector raster through gg or as a half-block
// terminal image.
package paint

import (
	"image/color"
	"math"

	"github.com/taigrr/painter/pkg/geom"
	"github.com/taigrr/painter/pkg/math3d"
	"github.com/taigrr/painter/pkg/scene"
)

// DefaultMaterial fills polygons when neither the polygon nor its model
// names a material.
var DefaultMaterial = geom.Material{Name: "default", Color: color.RGBA{R: 220, G: 220, B: 220, A: 255}}

// MaterialFor picks the polygon material, then the model material, then
// DefaultMaterial.
func MaterialFor(p *geom.Polygon, model *scene.Node) *geom.Material {
	if p != nil && p.Material != nil {
		return p.Material
	}
	if model != nil && model.Material != nil {
		return model.Material
	}
	return &DefaultMaterial
}

// Light returns the white light level (0-255) reaching a surface with
// world-space normal n: the ambient level plus the directional level scaled
// by how squarely the surface faces the light.
func Light(n math3d.Vec3, sc *scene.Scene) uint8 {
	ambient := math.Round(255 * sc.Ambient.Value())
	directional := math.Round(255 * sc.Directional.Value())
	reflected := max(0, n.Dot(sc.Directional.Direction))
	return clamp(ambient + math.Trunc(directional*reflected))
}

// Shade multiplies the material color by the light reaching n. Alpha is
// kept.
func Shade(mat *geom.Material, n math3d.Vec3, sc *scene.Scene) color.RGBA {
	l := float64(Light(n, sc))
	c := mat.Color
	return color.RGBA{
		R: clamp(math.Round(float64(c.R) * l / 255)),
		G: clamp(math.Round(float64(c.G) * l / 255)),
		B: clamp(math.Round(float64(c.B) * l / 255)),
		A: c.A,
	}
}

func clamp(v float64) uint8 {
	return uint8(max(0, min(255, v)))
}
