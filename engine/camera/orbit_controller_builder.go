package camera

import "github.com/tanema/gween/ease"

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - OrbitControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minRadius = min
		oc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - min: minimum vertical angle in radians
//   - max: maximum vertical angle in radians
//
// Returns:
//   - OrbitControllerOption: functional option to set elevation bounds
func WithElevationBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minElevation = min
		oc.maxElevation = max
	}
}

// WithZoomBounds sets the minimum and maximum zoom factor for orthographic cameras.
//
// Parameters:
//   - min: smallest zoom factor
//   - max: largest zoom factor
//
// Returns:
//   - OrbitControllerOption: functional option to set zoom bounds
func WithZoomBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minZoom = min
		oc.maxZoom = max
	}
}

// WithMouseSensitivity sets the rotation sensitivity.
//
// Parameters:
//   - sensitivity: radians per pixel of pointer movement
//
// Returns:
//   - OrbitControllerOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the perspective dolly distance per wheel unit.
//
// Parameters:
//   - speed: world units per wheel unit
//
// Returns:
//   - OrbitControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.zoomSpeed = speed
	}
}

// WithZoomFactor sets the orthographic zoom multiplier per wheel unit.
//
// Parameters:
//   - factor: multiplier applied once per wheel unit, must be > 1
//
// Returns:
//   - OrbitControllerOption: functional option to set zoom factor
func WithZoomFactor(factor float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		if factor > 1 {
			oc.zoomFactor = factor
		}
	}
}

// WithPanSpeed sets the pan speed multiplier.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - OrbitControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.panSpeed = speed
	}
}

// WithPanEnabled sets whether panning is initially allowed.
func WithPanEnabled(enabled bool) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.panEnabled = enabled
	}
}

// WithRotateEnabled sets whether rotation is initially allowed.
func WithRotateEnabled(enabled bool) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.rotateEnabled = enabled
	}
}

// WithEasing sets the easing function used by GoHome.
//
// Parameters:
//   - fn: easing function from github.com/tanema/gween/ease
//
// Returns:
//   - OrbitControllerOption: functional option to set the easing function
func WithEasing(fn ease.TweenFunc) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		if fn != nil {
			oc.easing = fn
		}
	}
}
