package window

import "github.com/Carmen-Shannon/oxy-viewer/common"

// pointerTracker turns absolute cursor positions into pointer events carrying the movement since
// the previous position.
type pointerTracker struct {
	x, y   float32
	seeded bool
}

// move records a cursor position. The first position reports no movement.
func (p *pointerTracker) move(x, y float32) common.PointerEvent {
	e := common.PointerEvent{OffsetX: x, OffsetY: y}
	if p.seeded {
		e.MovementX = x - p.x
		e.MovementY = y - p.y
	}
	p.x, p.y, p.seeded = x, y, true
	return e
}

// button builds a press or release event at the last recorded position.
func (p *pointerTracker) button(b common.MouseButton) common.PointerEvent {
	return common.PointerEvent{Button: b, OffsetX: p.x, OffsetY: p.y}
}

// glfwButton maps GLFW button numbers (left 0, right 1, middle 2) to DOM numbering.
// Extra buttons keep their GLFW number.
func glfwButton(b int) common.MouseButton {
	switch b {
	case 0:
		return common.MouseButtonPrimary
	case 1:
		return common.MouseButtonSecondary
	case 2:
		return common.MouseButtonAuxiliary
	default:
		return common.MouseButton(b)
	}
}
