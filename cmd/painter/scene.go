package main

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/taigrr/painter/pkg/geom"
	"github.com/taigrr/painter/pkg/math3d"
	"github.com/taigrr/painter/pkg/models"
	"github.com/taigrr/painter/pkg/render"
	"github.com/taigrr/painter/pkg/scene"
)

// viewDistance is how far the camera starts from the origin.
const viewDistance = 9.0

var background = color.RGBA{30, 30, 40, 255}

// loadScene builds the demo scene, or a scene holding the model named by
// args[0]. It returns the group the viewer rotates.
func loadScene(args []string) (*scene.Scene, scene.NodeID, error) {
	if len(args) == 0 {
		return demoScene()
	}
	return modelScene(args[0])
}

func modelScene(path string) (*scene.Scene, scene.NodeID, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".glb" && ext != ".gltf" {
		return nil, scene.None, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
	}
	loader := models.NewGLTFLoader()
	loader.Size = 4
	mesh, err := loader.Load(path)
	if err != nil {
		return nil, scene.None, fmt.Errorf("load model: %w", err)
	}
	polys, err := mesh.Polygons()
	if err != nil {
		return nil, scene.None, fmt.Errorf("load model: %w", err)
	}
	render.Logger().Debug("model loaded", "name", mesh.Name, "vertices", mesh.VertexCount(), "faces", mesh.FaceCount())

	sc := scene.New()
	sc.Background = background
	pivot, err := sc.AddGroup(scene.Root, "pivot")
	if err != nil {
		return nil, scene.None, err
	}
	if _, err := sc.AddModel(pivot, mesh.Name, polys); err != nil {
		return nil, scene.None, err
	}
	return sc, pivot, nil
}

// demoScene places three cubes in a row with a pyramid resting on the
// middle one.
func demoScene() (*scene.Scene, scene.NodeID, error) {
	sc := scene.New()
	sc.Background = background
	pivot, err := sc.AddGroup(scene.Root, "pivot")
	if err != nil {
		return nil, scene.None, err
	}

	items := []struct {
		name  string
		polys []*geom.Polygon
		pos   math3d.Vec3
		color color.RGBA
	}{
		{"left", models.Cube(1.5), math3d.V3(-2.5, 0, 0), color.RGBA{220, 80, 60, 255}},
		{"middle", models.Cube(1.5), math3d.V3(0, 0, 0), color.RGBA{90, 170, 90, 255}},
		{"right", models.Cube(1.5), math3d.V3(2.5, 0, 0), color.RGBA{70, 110, 210, 255}},
		{"pyramid", models.Pyramid(1.5), math3d.V3(0, 0.75, 0), color.RGBA{230, 200, 80, 255}},
	}
	for _, it := range items {
		id, err := sc.AddModel(pivot, it.name, it.polys)
		if err != nil {
			return nil, scene.None, err
		}
		n := sc.Node(id)
		n.Material = &geom.Material{Name: it.name, Color: it.color}
		n.Transform.Position = it.pos
	}

	for _, id := range sc.Models() {
		if _, err := sc.OnCollision(id, func(ev scene.CollisionEvent) {
			render.Logger().Debug("collision",
				"model", sc.Node(ev.Models[0]).Name,
				"with", sc.Node(ev.Models[1]).Name,
				"id", ev.ID)
		}); err != nil {
			return nil, scene.None, err
		}
	}
	return sc, pivot, nil
}

// placeCamera puts cam slightly above the scene looking at the origin.
func placeCamera(cam *render.Camera, distance float64) *render.Camera {
	cam.SetPosition(math3d.V3(0, distance*0.35, distance))
	cam.LookAt(math3d.Vec3{})
	return cam
}
