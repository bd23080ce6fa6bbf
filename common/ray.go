package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// parallelEpsilon is the smallest |n·d| treated as a non-parallel ray/plane pair.
const parallelEpsilon = 1e-6

// Ray is a half-line starting at Origin and extending along the unit Direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay creates a ray with a normalized direction.
// A zero direction is kept as-is and produces no intersections.
//
// Parameters:
//   - origin: ray start point
//   - direction: ray direction (any length)
//
// Returns:
//   - Ray: the constructed ray
func NewRay(origin, direction mgl32.Vec3) Ray {
	if direction.LenSqr() > 0 {
		direction = direction.Normalize()
	}
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform returns the ray mapped by the affine matrix m. The direction is not renormalized,
// so distances along the transformed ray are measured in the source space's units.
//
// Parameters:
//   - m: affine transform
//
// Returns:
//   - Ray: the transformed ray
func (r Ray) Transform(m mgl32.Mat4) Ray {
	return Ray{
		Origin:    m.Mul4x1(r.Origin.Vec4(1)).Vec3(),
		Direction: m.Mul4x1(r.Direction.Vec4(0)).Vec3(),
	}
}

// IntersectPlane returns the point where the ray crosses the plane.
// Rays parallel to the plane, rays pointing away from it and degenerate planes report false.
// A ray whose origin lies on the plane intersects at its origin.
//
// Parameters:
//   - p: the plane to test
//
// Returns:
//   - mgl32.Vec3: the intersection point
//   - bool: false if there is no intersection
func (r Ray) IntersectPlane(p Plane) (mgl32.Vec3, bool) {
	if p.Degenerate() {
		return mgl32.Vec3{}, false
	}
	dist := p.DistanceToPoint(r.Origin)
	if dist == 0 {
		return r.Origin, true
	}
	denom := p.Normal.Dot(r.Direction)
	if Abs(denom) < parallelEpsilon {
		return mgl32.Vec3{}, false
	}
	t := -dist / denom
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return r.At(t), true
}

// IntersectSphere returns the distance to the nearest intersection with a sphere.
// A ray starting inside the sphere reports the exit distance.
//
// Parameters:
//   - center: sphere center
//   - radius: sphere radius
//
// Returns:
//   - float32: distance along the ray
//   - bool: false if the sphere is missed
func (r Ray) IntersectSphere(center mgl32.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	a := r.Direction.Dot(r.Direction)
	if a == 0 {
		return 0, false
	}
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := (-b - sq) / a
	if t < 0 {
		t = (-b + sq) / a
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectTriangle tests the ray against triangle (a, b, c) using the Möller–Trumbore
// algorithm. Both faces are hit.
//
// Reference: https://www.graphics.cornell.edu/pubs/1997/MT97.pdf
//
// Parameters:
//   - a, b, c: triangle vertices
//
// Returns:
//   - float32: distance along the ray
//   - bool: false if the triangle is missed
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (float32, bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	h := r.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if Abs(det) < parallelEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := inv * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := inv * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := inv * edge2.Dot(q)
	if t < 0 {
		return 0, false
	}
	return t, true
}
