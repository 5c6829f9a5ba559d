package render

import (
	"math"

	"github.com/taigrr/painter/pkg/math3d"
)

// ProjectionMode selects how a camera maps eye space into clip space.
type ProjectionMode int

const (
	Perspective ProjectionMode = iota
	Orthographic
)

func (p ProjectionMode) String() string {
	if p == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// Camera defaults.
const (
	DefaultFOV            = 50 * math.Pi / 180
	DefaultPerspNear      = 0.1
	DefaultPerspFar       = 1000
	DefaultViewHeight     = 10
	DefaultOrthoNear      = 1
	DefaultOrthoFar       = 100
	DefaultViewportWidth  = 800
	DefaultViewportHeight = 600
)

// Camera is a viewpoint in world space. It looks down its local -Z axis
// with +Y up.
//
// Fields may be changed directly; derived matrices are recomputed the next
// time they are read.
type Camera struct {
	// World transform
	Position    math3d.Vec3
	Orientation math3d.Mat4 // rotation only

	Projection ProjectionMode
	FOV        float64 // vertical field of view in radians (perspective)
	ViewHeight float64 // visible world height (orthographic)
	Near       float64
	Far        float64

	// Viewport size in pixels
	Width  float64
	Height float64

	// Cached matrices and the inputs they were computed from
	world       math3d.Mat4
	view        math3d.Mat4
	viewErr     error
	viewValid   bool
	proj        math3d.Mat4
	projInputs  [6]float64
	projValid   bool
	viewport    math3d.Mat4
	viewportFor [2]float64
	viewportSet bool
}

// NewCamera creates a perspective camera at the origin with default
// settings.
func NewCamera() *Camera {
	return &Camera{
		Orientation: math3d.Identity(),
		Projection:  Perspective,
		FOV:         DefaultFOV,
		ViewHeight:  DefaultViewHeight,
		Near:        DefaultPerspNear,
		Far:         DefaultPerspFar,
		Width:       DefaultViewportWidth,
		Height:      DefaultViewportHeight,
	}
}

// NewOrthographicCamera creates an orthographic camera at the origin with
// default settings.
func NewOrthographicCamera() *Camera {
	c := NewCamera()
	c.SetProjection(Orthographic)
	return c
}

// SetProjection switches the projection and resets near and far to the
// defaults of the new mode.
func (c *Camera) SetProjection(p ProjectionMode) {
	c.Projection = p
	if p == Orthographic {
		c.Near, c.Far = DefaultOrthoNear, DefaultOrthoFar
	} else {
		c.Near, c.Far = DefaultPerspNear, DefaultPerspFar
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
}

// SetRotation sets the orientation from Euler angles (radians), composed
// as X·Y·Z like node transforms.
func (c *Camera) SetRotation(x, y, z float64) {
	c.Orientation = math3d.RotateEuler(x, y, z)
}

// SetViewport sets the viewport size in pixels.
func (c *Camera) SetViewport(width, height float64) {
	c.Width, c.Height = width, height
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near, c.Far = near, far
}

// LookAt turns the camera towards target, keeping up as close to +Y as
// possible.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.Orientation = math3d.LookAtRotation(c.Position, target, math3d.Up())
}

// Orbit places the camera on a sphere of radius around target at the given
// yaw and pitch (radians) and points it at target.
func (c *Camera) Orbit(target math3d.Vec3, radius, yaw, pitch float64) {
	const maxPitch = math.Pi/2 - 0.01
	pitch = max(-maxPitch, min(maxPitch, pitch))
	c.Position = target.Add(math3d.V3(
		radius*math.Cos(pitch)*math.Sin(yaw),
		radius*math.Sin(pitch),
		radius*math.Cos(pitch)*math.Cos(yaw),
	))
	c.LookAt(target)
}

// AspectRatio returns width / height of the viewport.
func (c *Camera) AspectRatio() float64 {
	if c.Height == 0 {
		return 1
	}
	return c.Width / c.Height
}

// WorldMatrix returns T(Position) · Orientation.
func (c *Camera) WorldMatrix() math3d.Mat4 {
	return math3d.Translate(c.Position).Mul(c.Orientation)
}

// NormalMatrix returns the rotation part of the world transform.
func (c *Camera) NormalMatrix() math3d.Mat4 {
	return c.Orientation
}

// ViewMatrix returns the inverse of the world matrix. It fails with
// math3d.ErrSingularMatrix when the orientation cannot be inverted.
func (c *Camera) ViewMatrix() (math3d.Mat4, error) {
	world := c.WorldMatrix()
	if c.viewValid && world == c.world {
		return c.view, c.viewErr
	}
	c.world = world
	c.view, c.viewErr = world.Inverse()
	c.viewValid = true
	return c.view, c.viewErr
}

// ProjectionMatrix returns the projection matrix for the current settings.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	inputs := [6]float64{float64(c.Projection), c.FOV, c.ViewHeight, c.Near, c.Far, c.AspectRatio()}
	if c.projValid && inputs == c.projInputs {
		return c.proj
	}
	c.projInputs = inputs
	c.projValid = true

	aspect := c.AspectRatio()
	if c.Projection == Orthographic {
		top := c.ViewHeight / 2
		right := top * aspect
		c.proj = math3d.Orthographic(-right, right, -top, top, c.Near, c.Far)
	} else {
		c.proj = math3d.Perspective(c.FOV, aspect, c.Near, c.Far)
	}
	return c.proj
}

// ViewportMatrix returns the NDC to screen matrix.
func (c *Camera) ViewportMatrix() math3d.Mat4 {
	size := [2]float64{c.Width, c.Height}
	if !c.viewportSet || size != c.viewportFor {
		c.viewport = math3d.Viewport(c.Width, c.Height)
		c.viewportFor = size
		c.viewportSet = true
	}
	return c.viewport
}

// DirToCamera returns the direction from an eye-space point towards the
// camera: the negated point for perspective, +Z for orthographic.
func (c *Camera) DirToCamera(eyePoint math3d.Vec3) math3d.Vec3 {
	if c.Projection == Orthographic {
		return math3d.V3(0, 0, 1)
	}
	return eyePoint.Negate()
}
