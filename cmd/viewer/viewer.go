package main

import (
	"fmt"
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/controls"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// viewer is the assembled interaction stack for one configuration.
type viewer struct {
	perspective  camera.Camera
	orthographic camera.Camera
	target       game_object.GameObject
	controls     controls.Controls
}

// newCameras builds both cameras from the configuration. A zero left/right pair on the
// orthographic camera is derived from its top/bottom and the window aspect ratio.
func newCameras(cfg *config.Config) (camera.Camera, camera.Camera) {
	aspect := cfg.Aspect()

	p := cfg.Cameras.Perspective
	perspective := camera.NewPerspective(
		camera.WithPosition(p.Position[0], p.Position[1], p.Position[2]),
		camera.WithTarget(p.Target[0], p.Target[1], p.Target[2]),
		camera.WithFov(float32(float64(p.Fov)*math.Pi/180)),
		camera.WithAspect(aspect),
		camera.WithNear(p.Near),
		camera.WithFar(p.Far),
	)

	o := cfg.Cameras.Orthographic
	left, right := o.Left, o.Right
	if left == 0 && right == 0 {
		half := (o.Top - o.Bottom) * aspect / 2
		left, right = -half, half
	}
	orthographic := camera.NewOrthographic(
		camera.WithPosition(o.Position[0], o.Position[1], o.Position[2]),
		camera.WithTarget(o.Target[0], o.Target[1], o.Target[2]),
		camera.WithBounds(left, right, o.Top, o.Bottom),
		camera.WithNear(o.Near),
		camera.WithFar(o.Far),
	)
	return perspective, orthographic
}

// newViewer assembles cameras, the target box and the controls. extra options are applied
// after the configured ones.
func newViewer(cfg *config.Config, extra ...controls.ControlsBuilderOption) (*viewer, error) {
	opts, err := controls.OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}

	mesh, err := targetModel(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}

	perspective, orthographic := newCameras(cfg)
	t := cfg.Target
	target := game_object.NewGameObject(
		game_object.WithModel(mesh),
		game_object.WithPosition(t.Position[0], t.Position[1], t.Position[2]),
		game_object.WithLayers(cfg.Controls.RayLayer),
	)

	c := controls.NewControls(perspective, orthographic, target, append(opts, extra...)...)
	return &viewer{
		perspective:  perspective,
		orthographic: orthographic,
		target:       target,
		controls:     c,
	}, nil
}

// targetModel loads the configured glTF mesh, or builds the configured box.
func targetModel(t config.TargetConfig) (model.Model, error) {
	if t.Model == "" {
		return model.NewBox(t.Size[0], t.Size[1], t.Size[2]), nil
	}
	m, err := loader.NewLoader().Load(t.Model)
	if err != nil {
		return nil, err
	}
	log.Printf("[Viewer] loaded %s: %d triangles, radius %.2f", m.Name(), m.TriangleCount(), m.BoundingRadius())
	return m, nil
}

// logChanges reports camera switches and target moves.
func (v *viewer) logChanges() {
	v.controls.CameraSlot().Subscribe(func(c camera.Camera) {
		log.Printf("[Viewer] active camera: %s", c.Kind())
	})
	v.controls.PositionSlot().Subscribe(func(p mgl32.Vec3) {
		log.Printf("[Viewer] target position: %.2f, %.2f, %.2f", p.X(), p.Y(), p.Z())
	})
}

// watchConfig applies every reloaded configuration to the controls until the watcher is closed.
func watchConfig(path string, c controls.Controls) (*config.Watcher, error) {
	w, err := config.NewWatcher(path, config.DefaultDebounce)
	if err != nil {
		return nil, err
	}

	go func() {
		events, errs := w.Events, w.Errors
		for events != nil || errs != nil {
			select {
			case cfg, ok := <-events:
				if !ok {
					events = nil
					continue
				}
				if err := controls.ApplyConfig(c, cfg); err != nil {
					log.Printf("[Viewer] config reload rejected: %v", err)
					continue
				}
				log.Printf("[Viewer] config reloaded from %s", path)
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				log.Printf("[Viewer] config reload failed: %v", err)
			}
		}
	}()
	return w, nil
}
