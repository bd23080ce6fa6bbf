// package common contains common types that are used throughout the viewer. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "fmt"

// MouseButton identifies a pointer button using the DOM numbering convention.
type MouseButton int

const (
	// MouseButtonPrimary is the left button.
	MouseButtonPrimary MouseButton = 0
	// MouseButtonAuxiliary is the middle button (wheel click).
	MouseButtonAuxiliary MouseButton = 1
	// MouseButtonSecondary is the right button.
	MouseButtonSecondary MouseButton = 2
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonPrimary:
		return "primary"
	case MouseButtonAuxiliary:
		return "auxiliary"
	case MouseButtonSecondary:
		return "secondary"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// PointerEvent is a pointer press, release or move delivered by an input surface.
type PointerEvent struct {
	// Button is the button that changed state. Ignored for move events.
	Button MouseButton

	// OffsetX and OffsetY are the pointer position in pixels relative to the surface's top-left corner.
	OffsetX, OffsetY float32

	// MovementX and MovementY are the pixel deltas since the previous pointer event.
	MovementX, MovementY float32
}
