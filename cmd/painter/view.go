package main

import (
	"context"
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/painter/pkg/paint"
	"github.com/taigrr/painter/pkg/render"
	"github.com/taigrr/painter/pkg/scene"
)

// supersample is the canvas resolution per framebuffer pixel.
const supersample = 3

// RotationAxis tracks position and velocity for one rotation axis with
// spring decay.
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // spring velocity of Velocity itself
}

// NewRotationAxis creates an axis whose velocity settles back to zero.
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// critically damped, no overshoot
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0.
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState is the pivot orientation driven by keyboard impulses.
type RotationState struct {
	Pitch, Yaw RotationAxis
	fps        int
}

func NewRotationState(fps int) *RotationState {
	r := &RotationState{fps: fps}
	r.Reset()
	return r
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
}

// viewer owns everything one terminal session draws with.
type viewer struct {
	sc       *scene.Scene
	pivot    scene.NodeID
	opts     *options
	renderer *render.Renderer
	cache    *render.Cache
	camera   *render.Camera
	rotation *RotationState
	distance float64

	fb        *paint.Framebuffer
	canvas    *paint.Canvas
	wireframe bool
}

func newViewer(sc *scene.Scene, pivot scene.NodeID, opts *options, fps int) *viewer {
	return &viewer{
		sc:       sc,
		pivot:    pivot,
		opts:     opts,
		renderer: opts.renderer(),
		cache:    render.NewCache(),
		rotation: NewRotationState(fps),
		distance: viewDistance,
	}
}

// resize rebuilds the framebuffer and canvas for a terminal of cols by rows.
func (v *viewer) resize(cols, rows int) error {
	if v.canvas != nil {
		if err := v.canvas.Close(); err != nil {
			return err
		}
	}
	outline := v.canvas != nil && v.canvas.Outline
	v.fb = paint.NewFramebuffer(cols, rows*2)
	v.canvas = paint.NewCanvas(cols*supersample, rows*2*supersample)
	v.canvas.Outline = outline
	v.canvas.OutlineWidth = supersample / 2.0
	prev := v.camera
	v.camera = v.opts.camera(v.canvas.Width(), v.canvas.Height(), v.distance)
	if prev != nil && prev.Projection != v.camera.Projection {
		v.camera.SetProjection(prev.Projection)
	}
	return nil
}

func (v *viewer) zoom(delta float64) {
	v.distance = max(3, min(30, v.distance+delta))
	placeCamera(v.camera, v.distance)
}

func (v *viewer) toggleProjection() {
	if v.camera.Projection == render.Orthographic {
		v.camera.SetProjection(render.Perspective)
	} else {
		v.camera.SetProjection(render.Orthographic)
	}
}

// draw renders one frame into the framebuffer.
func (v *viewer) draw() error {
	v.rotation.Update()
	n := v.sc.Node(v.pivot)
	n.Transform.Rotation.X = v.rotation.Pitch.Position
	n.Transform.Rotation.Y = v.rotation.Yaw.Position

	frame, err := v.renderer.Render(v.sc, v.camera, v.cache)
	if err != nil {
		return err
	}
	list, err := frame.DrawList()
	if err != nil {
		return err
	}

	if v.wireframe {
		v.fb.Clear(v.sc.Background)
		v.fb.Wireframe(list, v.canvas.Width(), v.canvas.Height(), color.RGBA{0, 255, 128, 255})
		return nil
	}
	v.canvas.Clear(v.sc.Background)
	if err := v.canvas.Draw(list, v.sc); err != nil {
		return err
	}
	v.fb.Blit(v.canvas.Image())
	return nil
}

// handle applies one input event. It reports false when the viewer should
// quit.
func (v *viewer) handle(ev uv.Event) (bool, error) {
	const impulse = 0.04
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		return true, v.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("q", "escape", "ctrl+c"):
			return false, nil
		case ev.MatchString("w", "up"):
			v.rotation.ApplyImpulse(-impulse, 0)
		case ev.MatchString("s", "down"):
			v.rotation.ApplyImpulse(impulse, 0)
		case ev.MatchString("a", "left"):
			v.rotation.ApplyImpulse(0, -impulse)
		case ev.MatchString("d", "right"):
			v.rotation.ApplyImpulse(0, impulse)
		case ev.MatchString("space"):
			v.rotation.ApplyImpulse((rand.Float64()-0.5)*0.3, (rand.Float64()-0.5)*0.3)
		case ev.MatchString("r"):
			v.rotation.Reset()
		case ev.MatchString("c"):
			v.renderer.SetBackfaceCulling(!v.renderer.BackfaceCulling())
		case ev.MatchString("o"):
			v.toggleProjection()
		case ev.MatchString("x"):
			v.canvas.Outline = !v.canvas.Outline
		case ev.MatchString("f"):
			v.wireframe = !v.wireframe
		case ev.MatchString("+", "="):
			v.zoom(-0.5)
		case ev.MatchString("-", "_"):
			v.zoom(0.5)
		}
	}
	return true, nil
}

// view runs the interactive terminal viewer until the user quits or ctx
// is done.
func view(ctx context.Context, sc *scene.Scene, pivot scene.NodeID, opts *options, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}
	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background()) //nolint:errcheck
	}()

	v := newViewer(sc, pivot, opts, fps)
	if err := v.resize(width, height); err != nil {
		return err
	}
	defer func() { _ = v.canvas.Close() }()
	v.rotation.ApplyImpulse(0.02, 0.06)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if size, ok := ev.(uv.WindowSizeEvent); ok {
				term.Erase()
				term.Resize(size.Width, size.Height)
			}
			running, err := v.handle(ev)
			if err != nil {
				return err
			}
			if !running {
				return nil
			}
		case <-ticker.C:
			if err := v.draw(); err != nil {
				return fmt.Errorf("draw: %w", err)
			}
			v.fb.Draw(term, term.Bounds())
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
