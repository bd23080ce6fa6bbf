package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
	DefaultTickRate     = 60

	DefaultNear     = 55.0
	DefaultFar      = 265.0
	DefaultRadius   = 50.0
	DefaultRayLayer = 1
	DefaultStrategy = "plane-delta"

	DefaultSpeedX          = 0.03
	DefaultSpeedY          = 0.05
	DefaultSpeedZ          = 0.02
	DefaultRollDownDivisor = 80.0
	DefaultFootprintDivX   = 10.0
	DefaultFootprintDivY   = 40.0
	DefaultMovementSpeed   = 0.01

	DefaultResetDuration = 0.5
)

// Config is the viewer's YAML configuration.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Engine   EngineConfig   `yaml:"engine"`
	Cameras  CamerasConfig  `yaml:"cameras"`
	Orbit    OrbitConfig    `yaml:"orbit"`
	Controls ControlsConfig `yaml:"controls"`
	Target   TargetConfig   `yaml:"target"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type EngineConfig struct {
	TickRate int  `yaml:"tick_rate"`
	Profiler bool `yaml:"profiler"`
}

type CamerasConfig struct {
	Perspective  PerspectiveConfig  `yaml:"perspective"`
	Orthographic OrthographicConfig `yaml:"orthographic"`
}

// PerspectiveConfig describes the perspective camera. Fov is in degrees.
type PerspectiveConfig struct {
	Position [3]float32 `yaml:"position,flow"`
	Target   [3]float32 `yaml:"target,flow"`
	Fov      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// OrthographicConfig describes the orthographic camera. A zero Left/Right pair is derived from
// Top/Bottom and the window aspect ratio.
type OrthographicConfig struct {
	Position [3]float32 `yaml:"position,flow"`
	Target   [3]float32 `yaml:"target,flow"`
	Left     float32    `yaml:"left"`
	Right    float32    `yaml:"right"`
	Top      float32    `yaml:"top"`
	Bottom   float32    `yaml:"bottom"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

type OrbitConfig struct {
	ZoomSpeed     float32 `yaml:"zoom_speed"`
	ZoomFactor    float32 `yaml:"zoom_factor"`
	MinRadius     float32 `yaml:"min_radius"`
	MaxRadius     float32 `yaml:"max_radius"`
	MinZoom       float32 `yaml:"min_zoom"`
	MaxZoom       float32 `yaml:"max_zoom"`
	ResetDuration float32 `yaml:"reset_duration"`
}

type ControlsConfig struct {
	Near              float32      `yaml:"near"`
	Far               float32      `yaml:"far"`
	Radius            float32      `yaml:"radius"`
	Strategy          string       `yaml:"strategy"`
	RayLayer          int          `yaml:"ray_layer"`
	KeyboardShortcuts bool         `yaml:"keyboard_shortcuts"`
	Debug             bool         `yaml:"debug"`
	Tuning            TuningConfig `yaml:"tuning"`
}

type TuningConfig struct {
	SpeedX          float32 `yaml:"speed_x"`
	SpeedY          float32 `yaml:"speed_y"`
	SpeedZ          float32 `yaml:"speed_z"`
	RollDownDivisor float32 `yaml:"roll_down_divisor"`
	FootprintDivX   float32 `yaml:"footprint_div_x"`
	FootprintDivY   float32 `yaml:"footprint_div_y"`
	MovementSpeed   float32 `yaml:"movement_speed"`
}

// TargetConfig describes the object the viewer manipulates: a glTF mesh when Model is set,
// otherwise a box of the given size.
type TargetConfig struct {
	Model    string     `yaml:"model,omitempty"`
	Size     [3]float32 `yaml:"size,flow"`
	Position [3]float32 `yaml:"position,flow"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "oxy-viewer",
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Engine: EngineConfig{
			TickRate: DefaultTickRate,
		},
		Cameras: CamerasConfig{
			Perspective: PerspectiveConfig{
				Position: [3]float32{0, 0, 150},
				Fov:      45,
				Near:     0.1,
				Far:      2000,
			},
			Orthographic: OrthographicConfig{
				Position: [3]float32{0, 0, 150},
				Top:      100,
				Bottom:   -100,
				Near:     0.1,
				Far:      2000,
			},
		},
		Orbit: OrbitConfig{
			ZoomSpeed:     15,
			ZoomFactor:    1.1,
			MinRadius:     1,
			MaxRadius:     2000,
			MinZoom:       0.1,
			MaxZoom:       10,
			ResetDuration: DefaultResetDuration,
		},
		Controls: ControlsConfig{
			Near:              DefaultNear,
			Far:               DefaultFar,
			Radius:            DefaultRadius,
			Strategy:          DefaultStrategy,
			RayLayer:          DefaultRayLayer,
			KeyboardShortcuts: true,
			Tuning: TuningConfig{
				SpeedX:          DefaultSpeedX,
				SpeedY:          DefaultSpeedY,
				SpeedZ:          DefaultSpeedZ,
				RollDownDivisor: DefaultRollDownDivisor,
				FootprintDivX:   DefaultFootprintDivX,
				FootprintDivY:   DefaultFootprintDivY,
				MovementSpeed:   DefaultMovementSpeed,
			},
		},
		Target: TargetConfig{
			Size: [3]float32{40, 20, 10},
		},
	}
}

// Load reads a YAML file on top of DefaultConfig and validates the result.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - *Config: the loaded configuration
//   - error: read, decode or validation failure
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
//
// Parameters:
//   - path: the destination file
//   - cfg: the configuration to write
//
// Returns:
//   - error: encode or write failure
func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}

var (
	ErrInvalidWindow   = errors.New("window width and height must be positive")
	ErrInvalidTickRate = errors.New("engine tick_rate must be positive")
	ErrInvalidRange    = errors.New("controls near must be non-negative and below far")
	ErrInvalidRadius   = errors.New("controls radius must be positive")
	ErrInvalidLayer    = errors.New("controls ray_layer must be in [0, 32)")
	ErrInvalidStrategy = errors.New("controls strategy must be plane-delta or movement-delta")
	ErrInvalidDivisor  = errors.New("controls tuning divisors must be non-zero")
	ErrInvalidCamera   = errors.New("camera near must be positive and below far")
)

// Validate reports every problem found in c, joined into a single error.
//
// Returns:
//   - error: nil if the configuration is usable
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, ErrInvalidWindow)
	}
	if c.Engine.TickRate <= 0 {
		errs = append(errs, ErrInvalidTickRate)
	}
	if c.Controls.Near < 0 || c.Controls.Near >= c.Controls.Far {
		errs = append(errs, ErrInvalidRange)
	}
	if c.Controls.Radius <= 0 {
		errs = append(errs, ErrInvalidRadius)
	}
	if c.Controls.RayLayer < 0 || c.Controls.RayLayer >= 32 {
		errs = append(errs, ErrInvalidLayer)
	}
	switch c.Controls.Strategy {
	case "plane-delta", "movement-delta":
	default:
		errs = append(errs, fmt.Errorf("%w: got %q", ErrInvalidStrategy, c.Controls.Strategy))
	}
	t := c.Controls.Tuning
	if t.RollDownDivisor == 0 || t.FootprintDivX == 0 || t.FootprintDivY == 0 {
		errs = append(errs, ErrInvalidDivisor)
	}
	p, o := c.Cameras.Perspective, c.Cameras.Orthographic
	if p.Near <= 0 || p.Near >= p.Far || o.Near < 0 || o.Near >= o.Far {
		errs = append(errs, ErrInvalidCamera)
	}
	return errors.Join(errs...)
}

// Aspect returns the window aspect ratio.
func (c *Config) Aspect() float32 {
	if c.Window.Height == 0 {
		return 1
	}
	return float32(c.Window.Width) / float32(c.Window.Height)
}
