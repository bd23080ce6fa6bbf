package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// objectCount is an atomic counter used to assign unique IDs to game objects.
var objectCount atomic.Uint64

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	enabled atomic.Bool
	mdl     model.Model
	parent  GameObject
	layers  common.Layers

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3
}

// GameObject defines the interface for a transformable scene entity.
// The transform is stored as position, orientation quaternion and scale relative to an optional parent.
// All methods are safe for concurrent use.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Enabled returns whether this object takes part in picking.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object takes part in picking.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// SetModel assigns a Model to this object.
	//
	// Parameters:
	//   - m: the model to assign
	SetModel(m model.Model)

	// Layers returns the layer mask the object belongs to.
	//
	// Returns:
	//   - common.Layers: the layer mask
	Layers() common.Layers

	// SetLayers replaces the object's layer mask.
	//
	// Parameters:
	//   - layers: the new layer mask
	SetLayers(layers common.Layers)

	// Position returns the object's position relative to its parent.
	//
	// Returns:
	//   - mgl32.Vec3: local position
	Position() mgl32.Vec3

	// SetPosition sets the object's position relative to its parent.
	//
	// Parameters:
	//   - p: local position
	SetPosition(p mgl32.Vec3)

	// Translate adds delta to the object's local position.
	//
	// Parameters:
	//   - delta: offset to add
	//
	// Returns:
	//   - mgl32.Vec3: the new local position
	Translate(delta mgl32.Vec3) mgl32.Vec3

	// Rotation returns the object's orientation relative to its parent.
	//
	// Returns:
	//   - mgl32.Quat: local orientation
	Rotation() mgl32.Quat

	// SetRotation sets the object's orientation relative to its parent.
	//
	// Parameters:
	//   - q: local orientation
	SetRotation(q mgl32.Quat)

	// RotateOnWorldAxis rotates the object by angle radians around a world-space axis through
	// its origin. Assumes the parent carries no rotation. A zero angle leaves the orientation untouched.
	//
	// Parameters:
	//   - axis: normalized world-space axis
	//   - angle: rotation in radians
	RotateOnWorldAxis(axis mgl32.Vec3, angle float32)

	// Scale returns the object's scale relative to its parent.
	//
	// Returns:
	//   - mgl32.Vec3: local scale
	Scale() mgl32.Vec3

	// SetScale sets the object's scale relative to its parent.
	//
	// Parameters:
	//   - s: local scale
	SetScale(s mgl32.Vec3)

	// Parent returns the object's parent, or nil for a root object.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// SetParent attaches the object to a parent. A parent that is the object itself or one of its
	// descendants would form a cycle and is ignored.
	//
	// Parameters:
	//   - parent: the new parent, or nil to detach
	SetParent(parent GameObject)

	// LocalMatrix returns the translation * rotation * scale matrix relative to the parent.
	//
	// Returns:
	//   - mgl32.Mat4: the local transform
	LocalMatrix() mgl32.Mat4

	// WorldMatrix returns the object's transform in world space.
	//
	// Returns:
	//   - mgl32.Mat4: the world transform
	WorldMatrix() mgl32.Mat4

	// WorldPosition returns the object's origin in world space.
	//
	// Returns:
	//   - mgl32.Vec3: world-space position
	WorldPosition() mgl32.Vec3
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject at the origin with identity rotation, unit scale and
// layer 0 enabled.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	g := &gameObject{
		mu:       &sync.Mutex{},
		id:       objectCount.Add(1),
		layers:   common.LayerMask(0),
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
	g.enabled.Store(true)
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Model() model.Model {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mdl
}

func (g *gameObject) SetModel(m model.Model) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mdl = m
}

func (g *gameObject) Layers() common.Layers {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.layers
}

func (g *gameObject) SetLayers(layers common.Layers) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.layers = layers
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) SetPosition(p mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p
}

func (g *gameObject) Translate(delta mgl32.Vec3) mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = g.position.Add(delta)
	return g.position
}

func (g *gameObject) Rotation() mgl32.Quat {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) SetRotation(q mgl32.Quat) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = q
}

func (g *gameObject) RotateOnWorldAxis(axis mgl32.Vec3, angle float32) {
	if angle == 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = mgl32.QuatRotate(angle, axis).Mul(g.rotation).Normalize()
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) SetScale(s mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = s
}

func (g *gameObject) Parent() GameObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.parent
}

func (g *gameObject) SetParent(parent GameObject) {
	for p := parent; p != nil; p = p.Parent() {
		if p == GameObject(g) {
			return
		}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.parent = parent
}

func (g *gameObject) LocalMatrix() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.localMatrix()
}

func (g *gameObject) WorldMatrix() mgl32.Mat4 {
	g.mu.Lock()
	local := g.localMatrix()
	parent := g.parent
	g.mu.Unlock()

	// The parent is read outside the lock so a parent chain never holds two object locks.
	if parent == nil {
		return local
	}
	return parent.WorldMatrix().Mul4(local)
}

func (g *gameObject) WorldPosition() mgl32.Vec3 {
	return g.WorldMatrix().Col(3).Vec3()
}

// localMatrix composes translation, rotation and scale. Caller must hold the mutex.
func (g *gameObject) localMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(g.position.X(), g.position.Y(), g.position.Z())
	r := g.rotation.Mat4()
	s := mgl32.Scale3D(g.scale.X(), g.scale.Y(), g.scale.Z())
	return t.Mul4(r).Mul4(s)
}
