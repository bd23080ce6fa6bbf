package controls

import (
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/gomega"
)

// halfHeight is the visible half-height of the XY plane seen by the default perspective camera
// (fov 45 degrees) from a distance of 100.
var halfHeight = float32(100 * math.Tan(math.Pi/8))

// surfaceSize is the fake surface's width and height in pixels.
const surfaceSize = 800

// px converts an NDC coordinate on the fake surface to a pixel offset.
func px(ndcX, ndcY float32) (float32, float32) {
	return (ndcX + 1) * surfaceSize / 2, (1 - ndcY) * surfaceSize / 2
}

func pointerAt(button common.MouseButton, ndcX, ndcY float32) common.PointerEvent {
	x, y := px(ndcX, ndcY)
	return common.PointerEvent{Button: button, OffsetX: x, OffsetY: y}
}

type fakeSurface struct {
	width, height int

	down, up, move func(common.PointerEvent)
	scroll         func(float32)
	key            func(int)
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{width: surfaceSize, height: surfaceSize}
}

func (s *fakeSurface) Size() (int, int) { return s.width, s.height }

func (s *fakeSurface) SetPointerDownCallback(cb func(common.PointerEvent)) { s.down = cb }
func (s *fakeSurface) SetPointerUpCallback(cb func(common.PointerEvent))   { s.up = cb }
func (s *fakeSurface) SetPointerMoveCallback(cb func(common.PointerEvent)) { s.move = cb }
func (s *fakeSurface) SetScrollCallback(cb func(float32))                  { s.scroll = cb }
func (s *fakeSurface) SetKeyDownCallback(cb func(int))                     { s.key = cb }

type countingRecorder struct {
	events int
}

func (r *countingRecorder) RecordEvent() { r.events++ }

// expectSameRotation compares two orientations by the basis vectors they produce.
func expectSameRotation(g Gomega, actual, expected mgl32.Quat) {
	for _, axis := range []mgl32.Vec3{common.AxisX, common.AxisY, common.AxisZ} {
		a, e := actual.Rotate(axis), expected.Rotate(axis)
		for i := 0; i < 3; i++ {
			g.ExpectWithOffset(1, a[i]).To(BeNumerically("~", e[i], 1e-4))
		}
	}
}

// blendedRotation is the orientation a picked plane-delta drag from the origin to (ndcX, ndcY)
// produces: pitch after roll after yaw, all about world axes.
func blendedRotation(t Tuning, ndcX, ndcY float32) mgl32.Quat {
	hx, hy := halfHeight*ndcX, halfHeight*ndcY
	roll := hy*t.SpeedZ*(hx/t.FootprintDivX) - hx*(hy/t.FootprintDivY)/t.RollDownDivisor
	return mgl32.QuatRotate(-hy*t.SpeedX, common.AxisX).
		Mul(mgl32.QuatRotate(roll, common.AxisZ)).
		Mul(mgl32.QuatRotate(hx*t.SpeedY, common.AxisY))
}
