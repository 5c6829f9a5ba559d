package main

import (
	"fmt"

	"github.com/taigrr/painter/pkg/paint"
	"github.com/taigrr/painter/pkg/render"
	"github.com/taigrr/painter/pkg/scene"
)

// snapshot renders one frame of sc and saves it as a PNG at path.
func snapshot(sc *scene.Scene, opts *options, path string) error {
	cam := opts.camera(opts.width, opts.height, viewDistance)
	frame, err := opts.renderer().Render(sc, cam, render.NewCache())
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	list, err := frame.DrawList()
	if err != nil {
		return err
	}

	canvas := paint.NewCanvas(opts.width, opts.height)
	defer canvas.Close()
	canvas.Clear(sc.Background)
	if err := canvas.Draw(list, sc); err != nil {
		return err
	}
	if err := canvas.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
