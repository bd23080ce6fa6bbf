package controls

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/observable"
	"github.com/go-gl/mathgl/mgl32"
)

// ControlsBuilderOption is a functional option for configuring Controls via NewControls.
type ControlsBuilderOption func(*controlsImpl)

// WithNear sets the smallest target-to-camera depth at which orbit controls stay enabled.
//
// Parameters:
//   - near: minimum depth distance
//
// Returns:
//   - ControlsBuilderOption: functional option to set the near distance
func WithNear(near float32) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.near = near
	}
}

// WithFar sets the largest target-to-camera depth at which orbit controls stay enabled.
//
// Parameters:
//   - far: maximum depth distance
//
// Returns:
//   - ControlsBuilderOption: functional option to set the far distance
func WithFar(far float32) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.far = far
	}
}

// WithRadius sets the half-width, in world units, of the target's horizontal footprint.
//
// Parameters:
//   - radius: footprint half-width
//
// Returns:
//   - ControlsBuilderOption: functional option to set the footprint radius
func WithRadius(radius float32) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.radius = radius
	}
}

// WithStrategy selects the rotation strategy.
//
// Parameters:
//   - s: StrategyPlaneDelta or StrategyMovementDelta
//
// Returns:
//   - ControlsBuilderOption: functional option to set the strategy
func WithStrategy(s Strategy) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.strategyKind = s
	}
}

// WithTuning replaces the rotation tuning. Zero divisors fall back to DefaultTuning.
//
// Parameters:
//   - t: the rotation tuning
//
// Returns:
//   - ControlsBuilderOption: functional option to set the tuning
func WithTuning(t Tuning) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.tuning = t.withDivisors()
	}
}

// WithRayLayer sets the layer the picking raycaster tests. The target must be on this layer to be picked.
//
// Parameters:
//   - layer: layer index in [0, 32)
//
// Returns:
//   - ControlsBuilderOption: functional option to set the ray layer
func WithRayLayer(layer int) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.rayLayer = layer
	}
}

// WithCameraSlot sets the slot the active camera is published to.
//
// Parameters:
//   - slot: the camera slot
//
// Returns:
//   - ControlsBuilderOption: functional option to set the camera slot
func WithCameraSlot(slot *observable.Slot[camera.Camera]) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.cameraSlot = slot
	}
}

// WithPositionSlot sets the slot the target's position is published to after every translation.
//
// Parameters:
//   - slot: the position slot
//
// Returns:
//   - ControlsBuilderOption: functional option to set the position slot
func WithPositionSlot(slot *observable.Slot[mgl32.Vec3]) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.positionSlot = slot
	}
}

// WithKeyboardShortcuts binds the O and P camera shortcuts when the controls are bound to a surface.
func WithKeyboardShortcuts(enabled bool) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.keyboard = enabled
	}
}

// WithDebug logs camera info on every wheel event and camera switch.
func WithDebug(enabled bool) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.debug = enabled
	}
}

// WithEventRecorder counts every handled input event on r.
func WithEventRecorder(r EventRecorder) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.recorder = r
	}
}

// WithResetDuration sets how long ResetView animates, in seconds.
func WithResetDuration(seconds float32) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.resetDuration = seconds
	}
}

// WithSurface sets the surface used to normalize pointer offsets without binding its callbacks.
func WithSurface(s Surface) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.surface = s
	}
}

// WithOrbitOptions passes extra options to both orbit controllers.
// Pan and rotate are always disabled after these are applied.
//
// Parameters:
//   - options: orbit controller options
//
// Returns:
//   - ControlsBuilderOption: functional option to configure the orbit controllers
func WithOrbitOptions(options ...camera.OrbitControllerOption) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.orbitOptions = append(c.orbitOptions, options...)
	}
}
