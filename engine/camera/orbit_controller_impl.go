package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// orbitState is a snapshot of the camera pose restored by Reset and GoHome.
type orbitState struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	zoom     float32
}

// homeTween animates the camera position and zoom toward the home state.
// Each channel finishes independently; the tween is complete when all are done.
type homeTween struct {
	channels [4]*gween.Tween
	done     [4]bool
}

// orbitControllerImpl is the single implementation of OrbitController.
// Spherical coordinates are re-derived from the camera before every manipulation, so
// poses applied directly to the camera (Reset, GoHome, host code) are respected.
type orbitControllerImpl struct {
	mu *sync.Mutex

	camera Camera
	target mgl32.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	enabled       bool
	panEnabled    bool
	rotateEnabled bool
	zoomEnabled   bool

	// Constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32
	minZoom      float32
	maxZoom      float32

	// Speed settings
	mouseSensitivity float32
	zoomSpeed        float32
	zoomFactor       float32
	panSpeed         float32

	saved  orbitState
	home   orbitState
	easing ease.TweenFunc
	tween  *homeTween
}

// Compile-time interface compliance check
var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates a new orbit controller bound to cam.
// The camera's current target becomes the orbit pivot and its current pose becomes both the
// saved state and the home state. The controller starts enabled with pan, rotate and zoom allowed.
//
// Parameters:
//   - cam: the camera to control; must not be nil
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(cam Camera, options ...OrbitControllerOption) OrbitController {
	if cam == nil {
		panic("camera: NewOrbitController requires a non-nil Camera")
	}
	oc := &orbitControllerImpl{
		mu:     &sync.Mutex{},
		camera: cam,
		target: cam.Target(),

		enabled:       true,
		panEnabled:    true,
		rotateEnabled: true,
		zoomEnabled:   true,

		minRadius:    1.0,
		maxRadius:    2000.0,
		minElevation: -float32(math.Pi/2 - 0.1),
		maxElevation: float32(math.Pi/2 - 0.1),
		minZoom:      0.1,
		maxZoom:      10.0,

		mouseSensitivity: 0.005,
		zoomSpeed:        15.0,
		zoomFactor:       1.1,
		panSpeed:         1.0,

		easing: ease.InOutCubic,
	}

	for _, option := range options {
		option(oc)
	}

	oc.syncFromCamera()
	oc.saved = oc.snapshot()
	oc.home = oc.saved
	return oc
}

// --- internal helpers ---

// snapshot captures the current camera pose. Caller must hold the mutex.
func (oc *orbitControllerImpl) snapshot() orbitState {
	return orbitState{
		position: oc.camera.Position(),
		target:   oc.target,
		zoom:     oc.camera.Zoom(),
	}
}

// apply moves the camera to s. Caller must hold the mutex.
func (oc *orbitControllerImpl) apply(s orbitState) {
	oc.target = s.target
	oc.camera.SetTarget(s.target)
	oc.camera.SetPosition(s.position)
	oc.camera.SetZoom(s.zoom)
	oc.syncFromCamera()
}

// syncFromCamera recomputes spherical coordinates from the camera's position relative to the target.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) syncFromCamera() {
	offset := oc.camera.Position().Sub(oc.target)
	oc.radius = offset.Len()
	if oc.radius < 1e-8 {
		oc.azimuth = 0
		oc.elevation = 0
		return
	}
	oc.azimuth = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	oc.elevation = float32(math.Asin(float64(mgl32.Clamp(offset.Y()/oc.radius, -1, 1))))
}

// updatePosition recomputes the camera position from spherical coordinates.
// Must be called whenever radius, azimuth, elevation, or target changes.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(oc.elevation)))
	sinElev := float32(math.Sin(float64(oc.elevation)))
	cosAzim := float32(math.Cos(float64(oc.azimuth)))
	sinAzim := float32(math.Sin(float64(oc.azimuth)))

	oc.camera.SetTarget(oc.target)
	oc.camera.SetPosition(mgl32.Vec3{
		oc.target[0] + oc.radius*cosElev*sinAzim,
		oc.target[1] + oc.radius*sinElev,
		oc.target[2] + oc.radius*cosElev*cosAzim,
	})
}

// localAxes computes the camera's right and up axes consistent with the LookAt matrix.
// If position and target coincide, both returned vectors are zero.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) localAxes() (right, up mgl32.Vec3) {
	backward := oc.camera.Position().Sub(oc.target)
	if backward.Len() < 1e-8 {
		return
	}
	backward = backward.Normalize()

	right = mgl32.Vec3{0, 1, 0}.Cross(backward)
	if right.Len() < 1e-8 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	right = right.Normalize()
	up = backward.Cross(right)
	return
}

// manipulable reports whether user manipulation may proceed, cancelling any GoHome animation
// when it does. Caller must hold the mutex.
func (oc *orbitControllerImpl) manipulable(flag bool) bool {
	if !oc.enabled || !flag {
		return false
	}
	oc.tween = nil
	return true
}

// --- OrbitController implementation ---

func (oc *orbitControllerImpl) Camera() Camera {
	return oc.camera
}

func (oc *orbitControllerImpl) Enable() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enabled = true
}

func (oc *orbitControllerImpl) Disable() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enabled = false
}

func (oc *orbitControllerImpl) Enabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enabled
}

func (oc *orbitControllerImpl) SaveState() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.saved = oc.snapshot()
}

func (oc *orbitControllerImpl) Reset() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.tween = nil
	oc.apply(oc.saved)
}

func (oc *orbitControllerImpl) SetPanEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.panEnabled = enabled
}

func (oc *orbitControllerImpl) SetRotateEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.rotateEnabled = enabled
}

func (oc *orbitControllerImpl) SetZoomEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.zoomEnabled = enabled
}

func (oc *orbitControllerImpl) PanEnabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.panEnabled
}

func (oc *orbitControllerImpl) RotateEnabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.rotateEnabled
}

func (oc *orbitControllerImpl) ZoomEnabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.zoomEnabled
}

func (oc *orbitControllerImpl) Rotate(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.manipulable(oc.rotateEnabled) || (dx == 0 && dy == 0) {
		return
	}
	oc.syncFromCamera()
	oc.azimuth -= dx * oc.mouseSensitivity
	oc.elevation = mgl32.Clamp(oc.elevation+dy*oc.mouseSensitivity, oc.minElevation, oc.maxElevation)
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.manipulable(oc.zoomEnabled) || delta == 0 {
		return
	}

	if oc.camera.Kind() == KindOrthographic {
		scale := float32(math.Pow(float64(oc.zoomFactor), float64(delta)))
		oc.camera.SetZoom(mgl32.Clamp(oc.camera.Zoom()*scale, oc.minZoom, oc.maxZoom))
		return
	}

	oc.syncFromCamera()
	oc.radius = mgl32.Clamp(oc.radius-delta*oc.zoomSpeed, oc.minRadius, oc.maxRadius)
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Pan(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.manipulable(oc.panEnabled) || (dx == 0 && dy == 0) {
		return
	}

	right, up := oc.localAxes()
	offset := right.Mul(dx * oc.panSpeed).Add(up.Mul(dy * oc.panSpeed))

	oc.target = oc.target.Add(offset)
	oc.camera.SetTarget(oc.target)
	oc.camera.SetPosition(oc.camera.Position().Add(offset))
}

func (oc *orbitControllerImpl) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControllerImpl) SetTarget(t mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.syncFromCamera()
	oc.target = t
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.syncFromCamera()
	return oc.radius
}

func (oc *orbitControllerImpl) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.syncFromCamera()
	return oc.azimuth
}

func (oc *orbitControllerImpl) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.syncFromCamera()
	return oc.elevation
}

func (oc *orbitControllerImpl) GoHome(duration float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	if duration <= 0 {
		oc.tween = nil
		oc.apply(oc.home)
		return
	}

	oc.target = oc.home.target
	oc.camera.SetTarget(oc.home.target)

	from := oc.camera.Position()
	zoom := oc.camera.Zoom()
	oc.tween = &homeTween{
		channels: [4]*gween.Tween{
			gween.New(from.X(), oc.home.position.X(), duration, oc.easing),
			gween.New(from.Y(), oc.home.position.Y(), duration, oc.easing),
			gween.New(from.Z(), oc.home.position.Z(), duration, oc.easing),
			gween.New(zoom, oc.home.zoom, duration, oc.easing),
		},
	}
}

func (oc *orbitControllerImpl) Update(dt float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.tween == nil {
		return
	}

	var values [4]float32
	for i, t := range oc.tween.channels {
		if oc.tween.done[i] {
			values[i], _ = t.Update(0)
			continue
		}
		values[i], oc.tween.done[i] = t.Update(dt)
	}
	oc.camera.SetPosition(mgl32.Vec3{values[0], values[1], values[2]})
	oc.camera.SetZoom(values[3])

	if oc.tween.done[0] && oc.tween.done[1] && oc.tween.done[2] && oc.tween.done[3] {
		oc.tween = nil
		oc.syncFromCamera()
	}
}

func (oc *orbitControllerImpl) Animating() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.tween != nil
}
