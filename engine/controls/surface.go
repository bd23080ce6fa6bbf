package controls

import "github.com/Carmen-Shannon/oxy-viewer/common"

// Surface is the input surface the controls listen to.
// Passing nil to a setter unregisters that callback.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (width, height int)

	SetPointerDownCallback(cb func(common.PointerEvent))
	SetPointerUpCallback(cb func(common.PointerEvent))
	SetPointerMoveCallback(cb func(common.PointerEvent))

	// SetScrollCallback registers the wheel handler. Positive deltas scroll away from the user.
	SetScrollCallback(cb func(delta float32))

	// SetKeyDownCallback registers the key press handler. Keys use the common key codes.
	SetKeyDownCallback(cb func(key int))
}

// EventRecorder counts handled input events, typically a profiler.
type EventRecorder interface {
	RecordEvent()
}
