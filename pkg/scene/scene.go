// Package scene is the arena-backed scene graph the painter pipeline reads:
// groups and models addressed by NodeID, per-node transforms, the model
// polygon sets, scene lights and collision event delivery.
package scene

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/taigrr/painter/pkg/geom"
	"github.com/taigrr/painter/pkg/math3d"
)

// ErrUnknownNode is returned when a NodeID does not name a node of the scene.
var ErrUnknownNode = errors.New("scene: unknown node")

// NodeID identifies a node in a Scene.
type NodeID int

const (
	// None is the parent of Root.
	None NodeID = -1
	// Root is the scene node itself.
	Root NodeID = 0
)

// Kind tells groups and models apart.
type Kind int

const (
	// KindGroup nodes only carry a transform for their children.
	KindGroup Kind = iota
	// KindModel nodes carry polygons.
	KindModel
)

func (k Kind) String() string {
	if k == KindModel {
		return "model"
	}
	return "group"
}

// Node is one entry of the scene arena.
type Node struct {
	Name      string
	Kind      Kind
	Transform Transform
	// Material is used for polygons that carry none.
	Material *geom.Material
	Polygons PolygonSet

	parent   NodeID
	children []NodeID
	events   emitter
}

// Parent returns the parent index, or None for the root.
func (n *Node) Parent() NodeID {
	return n.parent
}

// Children returns the child indices in insertion order.
func (n *Node) Children() []NodeID {
	return n.children
}

// AmbientLight lights every surface evenly.
type AmbientLight struct {
	Intensity float64
	Off       bool
}

// Value returns the effective intensity.
func (l AmbientLight) Value() float64 {
	if l.Off {
		return 0
	}
	return l.Intensity
}

// DirectionalLight lights surfaces facing Direction. Direction points from
// the surface towards the light.
type DirectionalLight struct {
	Intensity float64
	Direction math3d.Vec3
	Off       bool
}

// Value returns the effective intensity.
func (l DirectionalLight) Value() float64 {
	if l.Off {
		return 0
	}
	return l.Intensity
}

// Scene is an arena of nodes rooted at Root.
type Scene struct {
	Background  color.RGBA
	Ambient     AmbientLight
	Directional DirectionalLight

	nodes []*Node
}

// New creates an empty scene with default lights.
func New() *Scene {
	return &Scene{
		Background:  color.RGBA{A: 255},
		Ambient:     AmbientLight{Intensity: 0.5},
		Directional: DirectionalLight{Intensity: 0.5, Direction: math3d.V3(0.5, 1, 0.5).Normalize()},
		nodes: []*Node{{
			Name:      "scene",
			Kind:      KindGroup,
			Transform: IdentityTransform(),
			parent:    None,
		}},
	}
}

// Node returns the node for id, or nil if id is unknown.
func (s *Scene) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(s.nodes) {
		return nil
	}
	return s.nodes[id]
}

// Len returns the number of nodes including the root.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// AddGroup adds an empty group under parent.
func (s *Scene) AddGroup(parent NodeID, name string) (NodeID, error) {
	return s.add(parent, &Node{Name: name, Kind: KindGroup})
}

// AddModel adds a model under parent holding polygons.
func (s *Scene) AddModel(parent NodeID, name string, polygons []*geom.Polygon) (NodeID, error) {
	n := &Node{Name: name, Kind: KindModel}
	n.Polygons.ReplaceAll(polygons)
	return s.add(parent, n)
}

func (s *Scene) add(parent NodeID, n *Node) (NodeID, error) {
	p := s.Node(parent)
	if p == nil {
		return None, fmt.Errorf("add %q under %d: %w", n.Name, parent, ErrUnknownNode)
	}
	id := NodeID(len(s.nodes))
	n.parent = parent
	n.Transform = IdentityTransform()
	s.nodes = append(s.nodes, n)
	p.children = append(p.children, id)
	return id, nil
}

// SetTransform replaces the local transform of id.
func (s *Scene) SetTransform(id NodeID, t Transform) error {
	n := s.Node(id)
	if n == nil {
		return fmt.Errorf("set transform on %d: %w", id, ErrUnknownNode)
	}
	n.Transform = t
	return nil
}

// Walk returns every node below the root, depth first, parents before
// children.
func (s *Scene) Walk() []NodeID {
	out := make([]NodeID, 0, len(s.nodes)-1)
	var visit func(id NodeID)
	visit = func(id NodeID) {
		for _, c := range s.nodes[id].children {
			out = append(out, c)
			visit(c)
		}
	}
	visit(Root)
	return out
}

// Models returns the model nodes in Walk order.
func (s *Scene) Models() []NodeID {
	var out []NodeID
	for _, id := range s.Walk() {
		if s.nodes[id].Kind == KindModel {
			out = append(out, id)
		}
	}
	return out
}
