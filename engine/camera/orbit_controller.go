package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitController defines an orbit-style controller bound to a single Camera.
// The controller keeps the camera on a sphere around a pivot target using spherical coordinates
// (radius, azimuth, elevation) and supports rotating, zooming and panning. All manipulation is
// ignored while the controller is disabled; state management (SaveState, Reset, GoHome) is not.
type OrbitController interface {
	// Camera returns the camera driven by this controller.
	//
	// Returns:
	//   - Camera: the controlled camera
	Camera() Camera

	// Enable allows the controller to manipulate its camera.
	Enable()

	// Disable stops the controller from manipulating its camera until Enable is called.
	Disable()

	// Enabled reports whether the controller accepts manipulation.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SaveState records the camera's current position, target and zoom as the state Reset restores.
	SaveState()

	// Reset restores the camera to the last saved state and cancels any running animation.
	Reset()

	// SetPanEnabled toggles panning.
	SetPanEnabled(enabled bool)

	// SetRotateEnabled toggles rotation around the target.
	SetRotateEnabled(enabled bool)

	// SetZoomEnabled toggles zooming.
	SetZoomEnabled(enabled bool)

	// PanEnabled reports whether panning is allowed.
	PanEnabled() bool

	// RotateEnabled reports whether rotation is allowed.
	RotateEnabled() bool

	// ZoomEnabled reports whether zooming is allowed.
	ZoomEnabled() bool

	// Rotate orbits the camera around the target. Horizontal movement changes the azimuth and
	// vertical movement the elevation, clamped to the elevation bounds.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels, scaled by the mouse sensitivity
	Rotate(dx, dy float32)

	// Zoom moves a perspective camera toward (positive delta) or away from the target, clamped to
	// the radius bounds. Orthographic cameras scale their zoom factor instead, clamped to the zoom bounds.
	//
	// Parameters:
	//   - delta: wheel amount, positive zooms in
	Zoom(delta float32)

	// Pan translates both camera and target along the camera's local right and up axes.
	//
	// Parameters:
	//   - dx, dy: pan amount along right and up, scaled by the pan speed
	Pan(dx, dy float32)

	// Target returns the orbit pivot.
	//
	// Returns:
	//   - mgl32.Vec3: world-space pivot
	Target() mgl32.Vec3

	// SetTarget moves the orbit pivot, keeping the camera's offset from it.
	//
	// Parameters:
	//   - t: world-space pivot
	SetTarget(t mgl32.Vec3)

	// Radius returns the current distance between the camera and the target.
	Radius() float32

	// Azimuth returns the current horizontal angle around the Y axis in radians (0 = +Z).
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane in radians.
	Elevation() float32

	// GoHome animates the camera back to the pose it had when the controller was created.
	// A non-positive duration applies the home pose immediately.
	//
	// Parameters:
	//   - duration: animation length in seconds
	GoHome(duration float32)

	// Update advances a running GoHome animation.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// Animating reports whether a GoHome animation is in progress.
	//
	// Returns:
	//   - bool: true while animating
	Animating() bool
}
