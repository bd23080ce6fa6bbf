package model

import "github.com/go-gl/mathgl/mgl32"

// Hit describes a ray/mesh intersection in the mesh's local space.
type Hit struct {
	// Distance is the distance along the ray to the intersection, in the ray's units.
	Distance float32

	// Point is the intersection point.
	Point mgl32.Vec3

	// Triangle is the index of the intersected triangle.
	Triangle int
}

// chunk is a contiguous run of triangles tested by a single worker task.
type chunk struct {
	first, last int
}
