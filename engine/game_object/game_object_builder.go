package game_object

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject.
type GameObjectBuilderOption func(*gameObject)

// WithID overrides the automatically assigned identifier.
//
// Parameters:
//   - id: the ID to assign
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the ID option
func WithID(id uint64) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.id = id
	}
}

// WithEnabled sets whether the object starts enabled.
//
// Parameters:
//   - enabled: true to enable
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the enabled option
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.enabled.Store(enabled)
	}
}

// WithModel sets the object's pickable geometry.
//
// Parameters:
//   - m: the model to assign
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the model option
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mdl = m
	}
}

// WithPosition sets the initial local position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the position option
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.position = mgl32.Vec3{x, y, z}
	}
}

// WithScale sets the initial local scale.
//
// Parameters:
//   - sx, sy, sz: scale components
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the scale option
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.scale = mgl32.Vec3{sx, sy, sz}
	}
}

// WithRotation sets the initial orientation from Euler angles in radians, applied in X, Y, Z order.
//
// Parameters:
//   - rx, ry, rz: rotation angles in radians
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the rotation option
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.rotation = mgl32.AnglesToQuat(rx, ry, rz, mgl32.XYZ)
	}
}

// WithLayers sets the layer mask the object belongs to.
//
// Parameters:
//   - layers: layer indices to enable; replaces the default layer 0
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the layers option
func WithLayers(layers ...int) GameObjectBuilderOption {
	return func(g *gameObject) {
		var mask common.Layers
		for _, l := range layers {
			mask = mask.Enable(l)
		}
		g.layers = mask
	}
}

// WithParent attaches the object to a parent at construction.
//
// Parameters:
//   - parent: the parent object
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the parent option
func WithParent(parent GameObject) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.parent = parent
	}
}
