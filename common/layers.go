package common

// MaxLayers is the number of distinct layers a Layers mask can hold.
const MaxLayers = 32

// Layers is a bitmask of the layers an object or raycaster belongs to.
// Two masks interact when they share at least one enabled layer.
type Layers uint32

// LayerMask returns a mask with only layer n enabled.
// Layers outside [0, MaxLayers) yield an empty mask.
func LayerMask(n int) Layers {
	if n < 0 || n >= MaxLayers {
		return 0
	}
	return Layers(1) << uint(n)
}

// Enable returns l with layer n enabled.
func (l Layers) Enable(n int) Layers {
	return l | LayerMask(n)
}

// Disable returns l with layer n disabled.
func (l Layers) Disable(n int) Layers {
	return l &^ LayerMask(n)
}

// IsEnabled reports whether layer n is enabled.
func (l Layers) IsEnabled(n int) bool {
	return l&LayerMask(n) != 0
}

// Test reports whether l and other share an enabled layer.
func (l Layers) Test(other Layers) bool {
	return l&other != 0
}
