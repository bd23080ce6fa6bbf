package controls

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
)

// DragState is what a pointer drag currently does to the target.
type DragState int

const (
	// DragIdle means pointer movement does not touch the target.
	DragIdle DragState = iota
	// DragRotating means the primary button alone is held and movement rotates the target.
	DragRotating
	// DragMoving means the secondary button alone is held and movement translates the target.
	DragMoving
)

func (d DragState) String() string {
	switch d {
	case DragIdle:
		return "idle"
	case DragRotating:
		return "rotating"
	case DragMoving:
		return "moving"
	default:
		return fmt.Sprintf("drag(%d)", int(d))
	}
}

// ButtonState tracks which pointer buttons are held, independently of the drag state.
type ButtonState struct {
	Left  bool
	Right bool
}

// AnyDown reports whether either tracked button is held.
func (b ButtonState) AnyDown() bool {
	return b.Left || b.Right
}

// Tuning holds the speeds and divisors that shape target rotation.
type Tuning struct {
	// SpeedX scales pitch (world X) from the vertical plane delta.
	SpeedX float32
	// SpeedY scales yaw (world Y) from the horizontal plane delta.
	SpeedY float32
	// SpeedZ scales roll (world Z) from the vertical plane delta.
	SpeedZ float32
	// RollDownDivisor divides the quadrant roll correction.
	RollDownDivisor float32
	// FootprintDivX divides the horizontal distance between the plane hit and the target.
	FootprintDivX float32
	// FootprintDivY divides the vertical distance between the plane hit and the target.
	FootprintDivY float32
	// MovementSpeed scales raw pointer movement in the movement-delta strategy.
	MovementSpeed float32
}

// DefaultTuning returns the stock rotation tuning.
func DefaultTuning() Tuning {
	return Tuning{
		SpeedX:          config.DefaultSpeedX,
		SpeedY:          config.DefaultSpeedY,
		SpeedZ:          config.DefaultSpeedZ,
		RollDownDivisor: config.DefaultRollDownDivisor,
		FootprintDivX:   config.DefaultFootprintDivX,
		FootprintDivY:   config.DefaultFootprintDivY,
		MovementSpeed:   config.DefaultMovementSpeed,
	}
}

// withDivisors replaces zero divisors with their defaults. Speeds are kept as given, zero included.
func (t Tuning) withDivisors() Tuning {
	d := DefaultTuning()
	t.RollDownDivisor = common.Coalesce(t.RollDownDivisor, d.RollDownDivisor)
	t.FootprintDivX = common.Coalesce(t.FootprintDivX, d.FootprintDivX)
	t.FootprintDivY = common.Coalesce(t.FootprintDivY, d.FootprintDivY)
	return t
}
