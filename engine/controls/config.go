package controls

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
)

// TuningFromConfig converts the YAML tuning section.
func TuningFromConfig(t config.TuningConfig) Tuning {
	return Tuning{
		SpeedX:          t.SpeedX,
		SpeedY:          t.SpeedY,
		SpeedZ:          t.SpeedZ,
		RollDownDivisor: t.RollDownDivisor,
		FootprintDivX:   t.FootprintDivX,
		FootprintDivY:   t.FootprintDivY,
		MovementSpeed:   t.MovementSpeed,
	}
}

// OptionsFromConfig converts a viewer configuration into Controls options.
//
// Parameters:
//   - cfg: the viewer configuration
//
// Returns:
//   - []ControlsBuilderOption: options for NewControls
//   - error: if the strategy name is unknown
func OptionsFromConfig(cfg *config.Config) ([]ControlsBuilderOption, error) {
	strategy, err := ParseStrategy(cfg.Controls.Strategy)
	if err != nil {
		return nil, err
	}
	o := cfg.Orbit
	return []ControlsBuilderOption{
		WithNear(cfg.Controls.Near),
		WithFar(cfg.Controls.Far),
		WithRadius(cfg.Controls.Radius),
		WithStrategy(strategy),
		WithTuning(TuningFromConfig(cfg.Controls.Tuning)),
		WithRayLayer(cfg.Controls.RayLayer),
		WithKeyboardShortcuts(cfg.Controls.KeyboardShortcuts),
		WithDebug(cfg.Controls.Debug),
		WithResetDuration(o.ResetDuration),
		WithOrbitOptions(
			camera.WithZoomSpeed(o.ZoomSpeed),
			camera.WithZoomFactor(o.ZoomFactor),
			camera.WithRadiusBounds(o.MinRadius, o.MaxRadius),
			camera.WithZoomBounds(o.MinZoom, o.MaxZoom),
		),
	}, nil
}

// ApplyConfig reconfigures running controls from a reloaded configuration.
// Orbit and camera settings only take effect on construction and are left untouched.
//
// Parameters:
//   - c: the controls to update
//   - cfg: the reloaded configuration
//
// Returns:
//   - error: if the strategy name is unknown; nothing is changed in that case
func ApplyConfig(c Controls, cfg *config.Config) error {
	strategy, err := ParseStrategy(cfg.Controls.Strategy)
	if err != nil {
		return err
	}
	c.SetRange(cfg.Controls.Near, cfg.Controls.Far, cfg.Controls.Radius)
	c.SetTuning(TuningFromConfig(cfg.Controls.Tuning))
	c.SetStrategy(strategy)
	c.SetDebug(cfg.Controls.Debug)
	return nil
}
