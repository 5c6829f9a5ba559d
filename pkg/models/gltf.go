package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/painter/internal/logger"
	"github.com/taigrr/painter/pkg/geom"
	"github.com/taigrr/painter/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Size, when positive, normalizes the mesh so its largest dimension
	// equals Size.
	Size float64
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{Size: 2}
}

// LoadGLB loads a binary GLTF (.glb) file with default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// LoadPolygons loads a GLTF or GLB file straight into polygons.
func LoadPolygons(path string) ([]*geom.Polygon, error) {
	mesh, err := LoadGLB(path)
	if err != nil {
		return nil, err
	}
	return mesh.Polygons()
}

// Load loads a GLTF or GLB file and returns a Mesh. Only triangle
// primitives are read; materials keep their base color factor.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mesh := NewMesh(name)
	for i, m := range doc.Materials {
		mesh.Materials = append(mesh.Materials, material(i, m))
	}

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if l.Size > 0 {
		mesh.Normalize(l.Size)
	} else {
		mesh.CalculateBounds()
	}
	return mesh, nil
}

func material(i int, m *gltf.Material) geom.Material {
	out := geom.Material{Name: m.Name, Color: RGBA([4]float64{1, 1, 1, 1})}
	if out.Name == "" {
		out.Name = fmt.Sprintf("material-%d", i)
	}
	if pbr := m.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
		out.Color = RGBA(*pbr.BaseColorFactor)
	}
	return out
}

// processMesh appends the triangles of every primitive of m.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			logger.Get().Debug("models: skipping non-triangle primitive", "mesh", m.Name, "mode", prim.Mode)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		mat := -1
		if prim.Material != nil {
			mat = *prim.Material
		}

		base := len(mesh.Positions)
		for _, p := range positions {
			mesh.Positions = append(mesh.Positions, math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])))
		}
		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := int(indices[i]), int(indices[i+1]), int(indices[i+2])
			if max(a, b, c) >= len(positions) {
				return fmt.Errorf("triangle %d: index out of range", i/3)
			}
			mesh.AddFace(mat, base+a, base+b, base+c)
		}
	}
	return nil
}
