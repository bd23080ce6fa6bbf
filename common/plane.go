package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents an infinite plane in 3D space using the equation: n·p + d = 0
// where n is the unit normal and d is the signed distance from the origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// PlaneXY is the world XY plane (normal +Z through the origin). Drag deltas are measured on it.
var PlaneXY = Plane{Normal: AxisZ}

// NewPlane creates a plane from a normal and a point lying on it.
// The normal is normalized; a zero normal yields a degenerate plane that nothing intersects.
//
// Parameters:
//   - normal: plane normal (any length)
//   - point: any point on the plane
//
// Returns:
//   - Plane: the constructed plane
func NewPlane(normal, point mgl32.Vec3) Plane {
	if normal.LenSqr() == 0 {
		return Plane{}
	}
	n := normal.Normalize()
	return Plane{Normal: n, Distance: -n.Dot(point)}
}

// DistanceToPoint returns the signed distance from the plane to p.
// Positive values lie on the side the normal points to.
func (p Plane) DistanceToPoint(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

// Degenerate reports whether the plane has no usable normal.
func (p Plane) Degenerate() bool {
	return p.Normal.LenSqr() == 0
}
