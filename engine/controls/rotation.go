package controls

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
)

// Strategy selects how a rotating drag turns pointer input into target rotation.
type Strategy int

const (
	// StrategyPlaneDelta rotates by the world-space displacement of the pointer on the XY plane,
	// blending yaw, roll and pitch while the pointer is over the target's projected footprint.
	StrategyPlaneDelta Strategy = iota
	// StrategyMovementDelta rotates by raw pointer movement in pixels.
	StrategyMovementDelta
)

func (s Strategy) String() string {
	switch s {
	case StrategyPlaneDelta:
		return "plane-delta"
	case StrategyMovementDelta:
		return "movement-delta"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy maps a strategy name ("plane-delta" or "movement-delta") to a Strategy.
//
// Parameters:
//   - name: the strategy name
//
// Returns:
//   - Strategy: the parsed strategy
//   - error: if the name is unknown
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "plane-delta":
		return StrategyPlaneDelta, nil
	case "movement-delta":
		return StrategyMovementDelta, nil
	default:
		return StrategyPlaneDelta, fmt.Errorf("controls: unknown strategy %q", name)
	}
}

// RotationInput is everything a RotationStrategy sees for one pointer move.
type RotationInput struct {
	Target game_object.GameObject
	Camera camera.Camera

	// Pointer is the pointer position in normalized device coordinates.
	Pointer mgl32.Vec2
	// Hit is the current intersection of the pointer ray with the XY plane.
	Hit mgl32.Vec3
	// Delta is Hit minus the previous intersection.
	Delta mgl32.Vec3
	// MovementX and MovementY are the raw pointer movement in pixels.
	MovementX, MovementY float32

	Picked bool
	Radius float32
	Tuning Tuning
}

// RotationStrategy applies a rotating drag to the target.
type RotationStrategy interface {
	Rotate(in RotationInput)
}

// NewRotationStrategy returns the implementation for s. Unknown strategies fall back to plane-delta.
func NewRotationStrategy(s Strategy) RotationStrategy {
	if s == StrategyMovementDelta {
		return movementDeltaRotation{}
	}
	return planeDeltaRotation{}
}

type planeDeltaRotation struct{}

func (planeDeltaRotation) Rotate(in RotationInput) {
	obj := in.Target.WorldPosition()
	offset := mgl32.Vec3{in.Radius, 0, 0}
	proj := in.Camera.Project(obj)
	left := in.Camera.Project(obj.Sub(offset))
	right := in.Camera.Project(obj.Add(offset))

	t := in.Tuning
	dir := in.Delta
	px, py := in.Pointer.X(), in.Pointer.Y()
	side := common.Sign(px - proj.X())
	rightOfTarget := side > 0

	if (px >= left.X() && px <= right.X()) || in.Picked {
		deltaX := common.Abs(in.Hit.X()-obj.X()) / t.FootprintDivX
		deltaY := common.Abs(in.Hit.Y()-obj.Y()) / t.FootprintDivY

		radianZ := side * dir.Y() * t.SpeedZ * deltaX

		// Quadrant correction, tuned per quadrant around the projected target.
		dirX := dir.X() * deltaY
		switch {
		case !rightOfTarget && py >= proj.Y():
			radianZ += -dirX / t.RollDownDivisor
		case rightOfTarget && py >= proj.Y():
			radianZ += -dirX / t.RollDownDivisor
		case rightOfTarget && py < proj.Y():
			radianZ += dirX / t.RollDownDivisor
		case !rightOfTarget && py < proj.Y():
			radianZ += dirX / t.RollDownDivisor
		}

		in.Target.RotateOnWorldAxis(common.AxisY, dir.X()*t.SpeedY)
		in.Target.RotateOnWorldAxis(common.AxisZ, radianZ)
		in.Target.RotateOnWorldAxis(common.AxisX, -dir.Y()*t.SpeedX)
		return
	}

	in.Target.RotateOnWorldAxis(common.AxisZ, side*dir.Y()*t.SpeedZ)
}

type movementDeltaRotation struct{}

func (movementDeltaRotation) Rotate(in RotationInput) {
	speed := in.Tuning.MovementSpeed
	if in.Picked {
		in.Target.RotateOnWorldAxis(common.AxisY, in.MovementX*speed)
		in.Target.RotateOnWorldAxis(common.AxisX, in.MovementY*speed)
		return
	}

	proj := in.Camera.Project(in.Target.WorldPosition())
	side := common.Sign(in.Pointer.X() - proj.X())
	in.Target.RotateOnWorldAxis(common.AxisZ, side*in.MovementY*speed)
}
