package raycaster

import "github.com/Carmen-Shannon/oxy-viewer/common"

// RaycasterBuilderOption is a functional option for configuring a Raycaster.
type RaycasterBuilderOption func(*raycasterImpl)

// WithLayers sets the layers the raycaster tests against, replacing the default layer 0.
//
// Parameters:
//   - layers: layer indices to enable
//
// Returns:
//   - RaycasterBuilderOption: functional option to set the layer mask
func WithLayers(layers ...int) RaycasterBuilderOption {
	return func(r *raycasterImpl) {
		var mask common.Layers
		for _, l := range layers {
			mask = mask.Enable(l)
		}
		r.layers = mask
	}
}

// WithRange limits hits to world-space distances in [near, far].
//
// Parameters:
//   - near: minimum hit distance
//   - far: maximum hit distance
//
// Returns:
//   - RaycasterBuilderOption: functional option to set the distance range
func WithRange(near, far float32) RaycasterBuilderOption {
	return func(r *raycasterImpl) {
		r.near = near
		r.far = far
	}
}
