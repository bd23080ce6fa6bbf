package controls

import (
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/observable"
	"github.com/Carmen-Shannon/oxy-viewer/engine/raycaster"
	"github.com/go-gl/mathgl/mgl32"
)

type controlsImpl struct {
	mu *sync.Mutex

	cameras [2]camera.Camera
	orbits  [2]camera.OrbitController
	active  camera.Kind

	target    game_object.GameObject
	raycaster raycaster.Raycaster

	near          float32
	far           float32
	radius        float32
	rayLayer      int
	strategyKind  Strategy
	strategy      RotationStrategy
	tuning        Tuning
	keyboard      bool
	debug         bool
	resetDuration float32
	orbitOptions  []camera.OrbitControllerOption

	cameraSlot   *observable.Slot[camera.Camera]
	positionSlot *observable.Slot[mgl32.Vec3]
	recorder     EventRecorder
	surface      Surface
	bound        bool

	buttons ButtonState
	drag    DragState
	picked  bool

	// projection scratch
	pointer mgl32.Vec2
	hit     mgl32.Vec3
	prevHit mgl32.Vec3
}

// Controls defines the interface for the viewer's interaction controller.
// Controls turn pointer, wheel and key events into camera switches, target rotation and target
// translation, and coordinate one orbit controller per camera: orbiting is suspended while any
// button is held and disabled entirely while the target sits outside the [near, far] depth range.
// Handlers never return errors; degenerate input (zero-size surface, ray parallel to the plane,
// target without a model) results in no interaction.
type Controls interface {
	// Switch makes the camera of the given kind active, resets its orbit controller to its saved
	// state and publishes it. Unknown kinds leave the active camera unchanged.
	//
	// Parameters:
	//   - kind: camera.KindPerspective or camera.KindOrthographic
	Switch(kind camera.Kind)

	// OnPointerDown handles a button press. The primary button starts rotating and the secondary
	// button starts moving, unless the other button is already held. The press ray initialises the
	// plane intersection, decides whether the target is picked and suspends both orbit controllers.
	//
	// Parameters:
	//   - e: the pointer event
	OnPointerDown(e common.PointerEvent)

	// OnPointerUp handles a button release. When no button remains held both orbit controllers are
	// re-enabled and the pick is cleared.
	//
	// Parameters:
	//   - e: the pointer event
	OnPointerUp(e common.PointerEvent)

	// OnPointerMove handles pointer movement, rotating or translating the target according to the
	// drag state.
	//
	// Parameters:
	//   - e: the pointer event
	OnPointerMove(e common.PointerEvent)

	// OnWheel forwards the wheel to the active orbit controller, then enables both orbit controllers
	// (saving their state) when the target's depth distance from the perspective camera lies in
	// [near, far], and disables and resets them otherwise.
	//
	// Parameters:
	//   - delta: wheel amount, positive away from the user
	OnWheel(delta float32)

	// OnKeyDown handles the keyboard shortcuts. O or 1 selects the orthographic camera, P or 0 the
	// perspective camera, R resets the view, C logs the active camera and I logs the pointer state.
	// Other keys are ignored.
	//
	// Parameters:
	//   - key: common key code
	OnKeyDown(key int)

	// ResetView animates both cameras back to their construction pose.
	ResetView()

	// Update advances orbit animations. Call once per tick.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// Bind registers the controls' handlers on s, replacing any previous binding.
	// Key handlers are registered only when keyboard shortcuts are enabled.
	//
	// Parameters:
	//   - s: the input surface
	Bind(s Surface)

	// Unbind removes every handler registered by Bind.
	Unbind()

	// SetTuning replaces the rotation tuning. Zero divisors fall back to DefaultTuning.
	SetTuning(t Tuning)

	// Tuning returns the rotation tuning.
	Tuning() Tuning

	// SetRange replaces the orbit depth range and the footprint radius.
	//
	// Parameters:
	//   - near, far: depth range in which orbit controls are enabled
	//   - radius: footprint half-width
	SetRange(near, far, radius float32)

	// SetStrategy replaces the rotation strategy.
	SetStrategy(s Strategy)

	// Strategy returns the rotation strategy.
	Strategy() Strategy

	// SetDebug toggles diagnostic logging.
	SetDebug(enabled bool)

	// ActiveCamera returns the active camera.
	ActiveCamera() camera.Camera

	// Orbit returns the orbit controller of the given camera kind, or nil for unknown kinds.
	Orbit(kind camera.Kind) camera.OrbitController

	// Raycaster returns the picking raycaster.
	Raycaster() raycaster.Raycaster

	// CameraSlot returns the slot the active camera is published to.
	CameraSlot() *observable.Slot[camera.Camera]

	// PositionSlot returns the slot the target position is published to.
	PositionSlot() *observable.Slot[mgl32.Vec3]

	// State returns the current drag state.
	State() DragState

	// Buttons returns the held buttons.
	Buttons() ButtonState

	// Picked reports whether the last press hit the target's geometry.
	Picked() bool

	// LogCameraInfo logs the active camera's projection and pose.
	LogCameraInfo()

	// LogPointerState logs the button and drag flags.
	LogPointerState()
}

var _ Controls = &controlsImpl{}

// NewControls creates Controls for a perspective and an orthographic camera manipulating target.
// The perspective camera starts active and is published to the camera slot. Each camera gets its
// own orbit controller with panning and rotating disabled.
//
// Parameters:
//   - perspective: the perspective camera; must not be nil
//   - orthographic: the orthographic camera; must not be nil
//   - target: the object to manipulate; must not be nil
//   - options: functional options to configure the controls
//
// Returns:
//   - Controls: the newly created controls
func NewControls(perspective, orthographic camera.Camera, target game_object.GameObject, options ...ControlsBuilderOption) Controls {
	if perspective == nil || orthographic == nil {
		panic("controls: NewControls requires non-nil perspective and orthographic Cameras")
	}
	if target == nil {
		panic("controls: NewControls requires a non-nil target GameObject")
	}

	c := &controlsImpl{
		mu:            &sync.Mutex{},
		cameras:       [2]camera.Camera{perspective, orthographic},
		active:        camera.KindPerspective,
		target:        target,
		near:          config.DefaultNear,
		far:           config.DefaultFar,
		radius:        config.DefaultRadius,
		rayLayer:      config.DefaultRayLayer,
		strategyKind:  StrategyPlaneDelta,
		tuning:        DefaultTuning(),
		resetDuration: config.DefaultResetDuration,
	}

	for _, option := range options {
		option(c)
	}

	if c.cameraSlot == nil {
		c.cameraSlot = observable.NewSlot[camera.Camera](nil)
	}
	if c.positionSlot == nil {
		c.positionSlot = observable.NewSlot(target.Position())
	}
	c.strategy = NewRotationStrategy(c.strategyKind)
	c.raycaster = raycaster.NewRaycaster(raycaster.WithLayers(c.rayLayer))

	orbitOptions := append(append([]camera.OrbitControllerOption{}, c.orbitOptions...),
		camera.WithPanEnabled(false),
		camera.WithRotateEnabled(false),
	)
	for i, cam := range c.cameras {
		c.orbits[i] = camera.NewOrbitController(cam, orbitOptions...)
	}

	c.cameraSlot.Set(perspective)
	return c
}

// --- internal helpers ---

func (c *controlsImpl) record() {
	if c.recorder != nil {
		c.recorder.RecordEvent()
	}
}

// activeCamera returns the active camera. Caller must hold the mutex.
func (c *controlsImpl) activeCamera() camera.Camera {
	return c.cameras[c.active]
}

// normalize converts a pointer offset to NDC using the surface size.
// Caller must hold the mutex.
func (c *controlsImpl) normalize(e common.PointerEvent) (mgl32.Vec2, bool) {
	if c.surface == nil {
		return mgl32.Vec2{}, false
	}
	w, h := c.surface.Size()
	return common.NormalizePointer(e.OffsetX, e.OffsetY, w, h)
}

// castPlane aims the raycaster through the current pointer and intersects the XY plane.
// Caller must hold the mutex.
func (c *controlsImpl) castPlane() (mgl32.Vec3, bool) {
	c.raycaster.SetFromCamera(c.pointer, c.activeCamera())
	return c.raycaster.IntersectPlane(common.PlaneXY)
}

// switchTo activates kind and resets its orbit controller. Reports false for unknown kinds.
// Caller must hold the mutex.
func (c *controlsImpl) switchTo(kind camera.Kind) bool {
	if kind != camera.KindPerspective && kind != camera.KindOrthographic {
		return false
	}
	c.active = kind
	c.orbits[kind].Reset()
	if c.debug {
		c.logCameraInfo()
	}
	return true
}

func (c *controlsImpl) enableOrbits() {
	for _, o := range c.orbits {
		o.Enable()
	}
}

func (c *controlsImpl) disableOrbits() {
	for _, o := range c.orbits {
		o.Disable()
	}
}

func (c *controlsImpl) logCameraInfo() {
	cam := c.activeCamera()
	log.Printf("[Controls] %s camera %s", cam.Kind(), cam)
}

// --- Controls implementation ---

func (c *controlsImpl) Switch(kind camera.Kind) {
	c.mu.Lock()
	if !c.switchTo(kind) {
		c.mu.Unlock()
		return
	}
	cam := c.activeCamera()
	c.mu.Unlock()

	c.cameraSlot.Set(cam)
}

func (c *controlsImpl) OnPointerDown(e common.PointerEvent) {
	c.record()
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e.Button {
	case common.MouseButtonPrimary:
		c.buttons.Left = true
		if c.buttons.Right {
			c.drag = DragIdle
		} else {
			c.drag = DragRotating
		}
	case common.MouseButtonSecondary:
		c.buttons.Right = true
		if c.buttons.Left {
			c.drag = DragIdle
		} else {
			c.drag = DragMoving
		}
	}

	if ndc, ok := c.normalize(e); ok {
		c.pointer = ndc
	}
	if p, ok := c.castPlane(); ok {
		c.prevHit = p
		c.hit = p
	}
	c.picked = len(c.raycaster.IntersectObject(c.target)) > 0

	c.disableOrbits()
}

func (c *controlsImpl) OnPointerUp(e common.PointerEvent) {
	c.record()
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e.Button {
	case common.MouseButtonPrimary:
		c.buttons.Left = false
		if c.drag == DragRotating {
			c.drag = DragIdle
		}
	case common.MouseButtonSecondary:
		c.buttons.Right = false
		if c.drag == DragMoving {
			c.drag = DragIdle
		}
	}

	if !c.buttons.AnyDown() {
		c.enableOrbits()
		c.picked = false
	}
}

func (c *controlsImpl) OnPointerMove(e common.PointerEvent) {
	c.record()
	c.mu.Lock()

	ndc, ok := c.normalize(e)
	if !ok {
		c.mu.Unlock()
		return
	}
	c.pointer = ndc
	if p, ok := c.castPlane(); ok {
		c.hit = p
	}
	delta := c.hit.Sub(c.prevHit)
	c.prevHit = c.hit

	var moved *mgl32.Vec3
	switch c.drag {
	case DragRotating:
		c.strategy.Rotate(RotationInput{
			Target:    c.target,
			Camera:    c.activeCamera(),
			Pointer:   c.pointer,
			Hit:       c.hit,
			Delta:     delta,
			MovementX: e.MovementX,
			MovementY: e.MovementY,
			Picked:    c.picked,
			Radius:    c.radius,
			Tuning:    c.tuning,
		})
	case DragMoving:
		if delta != (mgl32.Vec3{}) {
			p := c.target.Translate(delta)
			moved = &p
		}
	}
	c.mu.Unlock()

	if moved != nil {
		c.positionSlot.Set(*moved)
	}
}

func (c *controlsImpl) OnWheel(delta float32) {
	c.record()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.orbits[c.active].Zoom(delta)
	if c.debug {
		c.logCameraInfo()
	}

	dist := common.Abs(c.target.WorldPosition().Sub(c.cameras[camera.KindPerspective].Position()).Z())
	if dist < c.near || dist > c.far {
		c.disableOrbits()
		for _, o := range c.orbits {
			o.Reset()
		}
		return
	}
	for _, o := range c.orbits {
		o.SaveState()
	}
	c.enableOrbits()
}

func (c *controlsImpl) OnKeyDown(key int) {
	c.record()
	switch key {
	case common.KeyO, common.Key1:
		c.Switch(camera.KindOrthographic)
	case common.KeyP, common.Key0:
		c.Switch(camera.KindPerspective)
	case common.KeyR:
		c.ResetView()
	case common.KeyC:
		c.LogCameraInfo()
	case common.KeyI:
		c.LogPointerState()
	}
}

func (c *controlsImpl) ResetView() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, o := range c.orbits {
		o.GoHome(c.resetDuration)
	}
}

func (c *controlsImpl) Update(dt float32) {
	for _, o := range c.orbits {
		o.Update(dt)
	}
}

func (c *controlsImpl) Bind(s Surface) {
	c.Unbind()
	if s == nil {
		return
	}

	c.mu.Lock()
	c.surface = s
	c.bound = true
	keyboard := c.keyboard
	c.mu.Unlock()

	s.SetPointerDownCallback(c.OnPointerDown)
	s.SetPointerUpCallback(c.OnPointerUp)
	s.SetPointerMoveCallback(c.OnPointerMove)
	s.SetScrollCallback(c.OnWheel)
	if keyboard {
		s.SetKeyDownCallback(c.OnKeyDown)
	}
}

func (c *controlsImpl) Unbind() {
	c.mu.Lock()
	s, bound := c.surface, c.bound
	c.bound = false
	keyboard := c.keyboard
	c.mu.Unlock()

	if !bound || s == nil {
		return
	}
	s.SetPointerDownCallback(nil)
	s.SetPointerUpCallback(nil)
	s.SetPointerMoveCallback(nil)
	s.SetScrollCallback(nil)
	if keyboard {
		s.SetKeyDownCallback(nil)
	}
}

func (c *controlsImpl) SetTuning(t Tuning) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tuning = t.withDivisors()
}

func (c *controlsImpl) Tuning() Tuning {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tuning
}

func (c *controlsImpl) SetRange(near, far, radius float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.far = far
	c.radius = radius
}

func (c *controlsImpl) SetStrategy(s Strategy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strategyKind = s
	c.strategy = NewRotationStrategy(s)
}

func (c *controlsImpl) Strategy() Strategy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strategyKind
}

func (c *controlsImpl) SetDebug(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.debug = enabled
}

func (c *controlsImpl) ActiveCamera() camera.Camera {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeCamera()
}

func (c *controlsImpl) Orbit(kind camera.Kind) camera.OrbitController {
	if kind != camera.KindPerspective && kind != camera.KindOrthographic {
		return nil
	}
	return c.orbits[kind]
}

func (c *controlsImpl) Raycaster() raycaster.Raycaster {
	return c.raycaster
}

func (c *controlsImpl) CameraSlot() *observable.Slot[camera.Camera] {
	return c.cameraSlot
}

func (c *controlsImpl) PositionSlot() *observable.Slot[mgl32.Vec3] {
	return c.positionSlot
}

func (c *controlsImpl) State() DragState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drag
}

func (c *controlsImpl) Buttons() ButtonState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buttons
}

func (c *controlsImpl) Picked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.picked
}

func (c *controlsImpl) LogCameraInfo() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logCameraInfo()
}

func (c *controlsImpl) LogPointerState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	log.Printf("[Controls] left down: %t, right down: %t", c.buttons.Left, c.buttons.Right)
	log.Printf("[Controls] rotating: %t, moving: %t, picked: %t", c.drag == DragRotating, c.drag == DragMoving, c.picked)
}
