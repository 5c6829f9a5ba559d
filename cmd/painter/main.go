// painter - painter's-algorithm polygon renderer
// Renders a scene of planar polygons back to front, either live in the
// terminal or to a PNG file.
//
// Controls (view):
//
//	W/S, Up/Down    - Pitch
//	A/D, Left/Right - Yaw
//	Space           - Random spin
//	R               - Reset rotation
//	C               - Toggle backface culling
//	O               - Toggle orthographic projection
//	X               - Toggle polygon outlines
//	F               - Toggle wireframe only
//	+/-             - Zoom
//	Q, Esc          - Quit
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/painter/pkg/render"
)

// options are the flags shared by every command.
type options struct {
	width   int
	height  int
	fov     float64
	cull    bool
	ortho   bool
	workers int
	verbose bool
}

// camera returns a camera for a width by height viewport looking at the
// origin from distance.
func (o *options) camera(width, height int, distance float64) *render.Camera {
	cam := render.NewCamera()
	if o.ortho {
		cam.SetProjection(render.Orthographic)
	}
	cam.FOV = o.fov * math.Pi / 180
	cam.SetViewport(float64(width), float64(height))
	return placeCamera(cam, distance)
}

func (o *options) renderer() *render.Renderer {
	return render.NewRenderer(
		render.WithBackfaceCulling(o.cull),
		render.WithWorkers(o.workers),
	)
}

func (o *options) setupLogging() {
	if !o.verbose {
		return
	}
	render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "painter",
		Short: "Render polygon scenes with the painter's algorithm",
		Long: "painter orders polygons back to front with a BSP tree per model and a\n" +
			"topological sort across models, then paints them in that order.\n" +
			"Without a model file a demo scene of three cubes and a pyramid is shown.",
		PersistentPreRun: func(*cobra.Command, []string) {
			opts.setupLogging()
		},
	}

	f := root.PersistentFlags()
	f.IntVar(&opts.width, "width", render.DefaultViewportWidth, "viewport width in pixels")
	f.IntVar(&opts.height, "height", render.DefaultViewportHeight, "viewport height in pixels")
	f.Float64Var(&opts.fov, "fov", render.DefaultFOV*180/math.Pi, "vertical field of view in degrees")
	f.BoolVar(&opts.cull, "cull", true, "drop polygons facing away from the camera")
	f.BoolVar(&opts.ortho, "ortho", false, "use an orthographic camera")
	f.IntVar(&opts.workers, "workers", 4, "goroutines comparing model bounding boxes")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(newViewCmd(opts), newSnapshotCmd(opts))
	return root
}

func newSnapshotCmd(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "snapshot [model.glb]",
		Short: "Render one frame to a PNG file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, _, err := loadScene(args)
			if err != nil {
				return err
			}
			if err := snapshot(sc, opts, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "painter.png", "PNG file to write")
	return cmd
}

func newViewCmd(opts *options) *cobra.Command {
	var fps int
	cmd := &cobra.Command{
		Use:   "view [model.glb]",
		Short: "Show a scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, pivot, err := loadScene(args)
			if err != nil {
				return err
			}
			return view(cmd.Context(), sc, pivot, opts, fps)
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "target frames per second")
	return cmd
}
