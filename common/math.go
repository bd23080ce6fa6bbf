package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// World axes used for rotations applied in world space.
var (
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisY = mgl32.Vec3{0, 1, 0}
	AxisZ = mgl32.Vec3{0, 0, 1}
)

// NormalizePointer converts a pointer offset relative to a surface into normalized device
// coordinates. X grows left to right and Y grows bottom to top, both in [-1, 1].
// A surface with a zero dimension cannot be normalized and reports false.
//
// Parameters:
//   - offsetX, offsetY: pointer offset in pixels from the surface's top-left corner
//   - width, height: surface size in pixels
//
// Returns:
//   - mgl32.Vec2: the pointer in normalized device coordinates
//   - bool: false if the surface has no area
func NormalizePointer(offsetX, offsetY float32, width, height int) (mgl32.Vec2, bool) {
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{
		(offsetX/float32(width))*2 - 1,
		-(offsetY/float32(height))*2 + 1,
	}, true
}

// ProjectPoint transforms a world-space point by a view-projection matrix and performs the
// perspective divide, yielding normalized device coordinates.
// If the homogeneous w component is zero the point is returned untransformed in w.
//
// Parameters:
//   - p: world-space point
//   - viewProj: combined view-projection matrix
//
// Returns:
//   - mgl32.Vec3: the point in normalized device coordinates
func ProjectPoint(p mgl32.Vec3, viewProj mgl32.Mat4) mgl32.Vec3 {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip.W() == 0 {
		return clip.Vec3()
	}
	return clip.Vec3().Mul(1 / clip.W())
}

// UnprojectPoint maps a point in normalized device coordinates back to world space through
// the inverse of a view-projection matrix.
//
// Parameters:
//   - ndc: point in normalized device coordinates
//   - invViewProj: inverse of the view-projection matrix
//
// Returns:
//   - mgl32.Vec3: the world-space point
func UnprojectPoint(ndc mgl32.Vec3, invViewProj mgl32.Mat4) mgl32.Vec3 {
	return ProjectPoint(ndc, invViewProj)
}

// EffectiveFov returns the vertical field of view after applying a zoom factor, so that a
// zoom of 2 halves the visible height.
//
// Parameters:
//   - fovY: base vertical field of view in radians
//   - zoom: zoom factor (values <= 0 are treated as 1)
//
// Returns:
//   - float32: the zoomed field of view in radians
func EffectiveFov(fovY, zoom float32) float32 {
	if zoom <= 0 {
		zoom = 1
	}
	return 2 * float32(math.Atan(math.Tan(float64(fovY)/2)/float64(zoom)))
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

// Abs returns the absolute value of v.
func Abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
