package camera

import (
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Kind identifies the projection a Camera uses.
type Kind int

const (
	// KindPerspective is a perspective projection defined by a vertical field of view and aspect ratio.
	KindPerspective Kind = 0
	// KindOrthographic is a parallel projection defined by left/right/top/bottom frustum bounds.
	KindOrthographic Kind = 1
)

func (k Kind) String() string {
	switch k {
	case KindPerspective:
		return "perspective"
	case KindOrthographic:
		return "orthographic"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type cameraImpl struct {
	mu *sync.Mutex

	kind Kind

	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3
	zoom     float32

	near float32
	far  float32

	// perspective
	fov    float32
	aspect float32

	// orthographic
	left   float32
	right  float32
	top    float32
	bottom float32

	viewMatrix                  mgl32.Mat4
	projectionMatrix            mgl32.Mat4
	viewProjectionMatrix        mgl32.Mat4
	inverseViewProjectionMatrix mgl32.Mat4
}

// Camera defines the interface for a viewer camera.
// A camera owns its pose (position, look-at target, up vector), a zoom factor and either a
// perspective or an orthographic frustum. Matrices are recomputed whenever any of these change.
type Camera interface {
	// Kind returns the projection kind of the camera.
	//
	// Returns:
	//   - Kind: KindPerspective or KindOrthographic
	Kind() Kind

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// SetPosition moves the camera, keeping it pointed at its target.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p mgl32.Vec3)

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space look-at point
	Target() mgl32.Vec3

	// SetTarget points the camera at t.
	//
	// Parameters:
	//   - t: world-space look-at point
	SetTarget(t mgl32.Vec3)

	// Up returns the camera's up vector.
	Up() mgl32.Vec3

	// SetUp sets the camera's up vector.
	SetUp(up mgl32.Vec3)

	// Zoom returns the zoom factor. 1 is unzoomed; larger values magnify.
	//
	// Returns:
	//   - float32: the zoom factor
	Zoom() float32

	// SetZoom sets the zoom factor. Values <= 0 are ignored.
	//
	// Parameters:
	//   - zoom: the zoom factor
	SetZoom(zoom float32)

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// SetNear sets the near clipping plane distance.
	SetNear(near float32)

	// SetFar sets the far clipping plane distance.
	SetFar(far float32)

	// Fov returns the unzoomed vertical field of view in radians. Orthographic cameras return 0.
	Fov() float32

	// SetFov sets the vertical field of view in radians. Ignored by orthographic cameras.
	SetFov(fov float32)

	// Aspect returns the aspect ratio (width / height). Orthographic cameras return the ratio of their bounds.
	Aspect() float32

	// SetAspect sets the aspect ratio. Orthographic cameras rescale their horizontal bounds
	// around the center so the vertical extent is preserved.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float32)

	// Bounds returns the unzoomed orthographic frustum bounds. Perspective cameras return zeros.
	//
	// Returns:
	//   - left, right, top, bottom: frustum bounds in view space
	Bounds() (left, right, top, bottom float32)

	// SetBounds sets the orthographic frustum bounds. Ignored by perspective cameras.
	//
	// Parameters:
	//   - left, right, top, bottom: frustum bounds in view space
	SetBounds(left, right, top, bottom float32)

	// ViewMatrix returns the current view matrix.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix, zoom applied.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the current combined view-projection matrix.
	ViewProjectionMatrix() mgl32.Mat4

	// Project maps a world-space point into normalized device coordinates.
	// X and Y of the result lie in [-1, 1] for points inside the view frustum.
	//
	// Parameters:
	//   - world: world-space point
	//
	// Returns:
	//   - mgl32.Vec3: the point in normalized device coordinates
	Project(world mgl32.Vec3) mgl32.Vec3

	// Ray returns the world-space ray passing through a point in normalized device coordinates.
	// Perspective rays start at the camera position; orthographic rays start on the near plane
	// and travel along the view direction.
	//
	// Parameters:
	//   - ndc: pointer position in normalized device coordinates
	//
	// Returns:
	//   - common.Ray: the world-space ray
	Ray(ndc mgl32.Vec2) common.Ray

	// String describes the camera's projection and pose.
	String() string
}

var _ Camera = &cameraImpl{}

// NewPerspective creates a new perspective Camera.
// Defaults: position (0, 0, 100) looking at the origin, fov 45 degrees, aspect 1, near 0.1, far 2000.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewPerspective(options ...CameraBuilderOption) Camera {
	c := newCamera(KindPerspective)
	c.fov = 45.0 * (math.Pi / 180.0)
	c.aspect = 1.0
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

// NewOrthographic creates a new orthographic Camera.
// Defaults: position (0, 0, 100) looking at the origin, bounds [-100, 100] on both axes, near 0.1, far 2000.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewOrthographic(options ...CameraBuilderOption) Camera {
	c := newCamera(KindOrthographic)
	c.left, c.right, c.top, c.bottom = -100, 100, 100, -100
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func newCamera(kind Kind) *cameraImpl {
	return &cameraImpl{
		mu:       &sync.Mutex{},
		kind:     kind,
		position: mgl32.Vec3{0, 0, 100},
		up:       mgl32.Vec3{0, 1, 0},
		zoom:     1,
		near:     0.1,
		far:      2000,
	}
}

func (c *cameraImpl) Kind() Kind {
	return c.kind
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateMatrices()
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) SetTarget(t mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = t
	c.updateMatrices()
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
	c.updateMatrices()
}

func (c *cameraImpl) Zoom() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) SetZoom(zoom float32) {
	if zoom <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = zoom
	c.updateMatrices()
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) SetFov(fov float32) {
	if c.kind != KindPerspective {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kind == KindOrthographic {
		if c.top == c.bottom {
			return 0
		}
		return (c.right - c.left) / (c.top - c.bottom)
	}
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kind == KindOrthographic {
		cx := (c.left + c.right) / 2
		half := (c.top - c.bottom) * aspect / 2
		c.left, c.right = cx-half, cx+half
	} else {
		c.aspect = aspect
	}
	c.updateMatrices()
}

func (c *cameraImpl) Bounds() (left, right, top, bottom float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.left, c.right, c.top, c.bottom
}

func (c *cameraImpl) SetBounds(left, right, top, bottom float32) {
	if c.kind != KindOrthographic {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.left, c.right, c.top, c.bottom = left, right, top, bottom
	c.updateMatrices()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Project(world mgl32.Vec3) mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ProjectPoint(world, c.viewProjectionMatrix)
}

func (c *cameraImpl) Ray(ndc mgl32.Vec2) common.Ray {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kind == KindOrthographic {
		origin := common.UnprojectPoint(mgl32.Vec3{ndc.X(), ndc.Y(), -1}, c.inverseViewProjectionMatrix)
		return common.NewRay(origin, c.target.Sub(c.position))
	}
	through := common.UnprojectPoint(mgl32.Vec3{ndc.X(), ndc.Y(), 0.5}, c.inverseViewProjectionMatrix)
	return common.NewRay(c.position, through.Sub(c.position))
}

func (c *cameraImpl) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.position
	if c.kind == KindOrthographic {
		return fmt.Sprintf("left:%g, right:%g, position:%g,%g,%g, zoom:%g", c.left, c.right, p[0], p[1], p[2], c.zoom)
	}
	return fmt.Sprintf("position:%g,%g,%g, zoom:%g", p[0], p[1], p[2], c.zoom)
}

// updateMatrices recalculates the view, projection, view-projection and inverse view-projection matrices.
// A pose with coincident position and target keeps the previous view matrix.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.position.Sub(c.target).LenSqr() > 0 {
		c.viewMatrix = mgl32.LookAtV(c.position, c.target, c.up)
	} else if c.viewMatrix == (mgl32.Mat4{}) {
		c.viewMatrix = mgl32.Ident4()
	}

	switch c.kind {
	case KindOrthographic:
		cx := (c.left + c.right) / 2
		cy := (c.top + c.bottom) / 2
		dx := (c.right - c.left) / (2 * c.zoom)
		dy := (c.top - c.bottom) / (2 * c.zoom)
		c.projectionMatrix = mgl32.Ortho(cx-dx, cx+dx, cy-dy, cy+dy, c.near, c.far)
	default:
		c.projectionMatrix = mgl32.Perspective(common.EffectiveFov(c.fov, c.zoom), c.aspect, c.near, c.far)
	}

	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseViewProjectionMatrix = c.viewProjectionMatrix.Inv()
}
