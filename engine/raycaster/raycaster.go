package raycaster

import (
	"math"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
)

// Intersection is a ray hit against an object's geometry, expressed in world space.
type Intersection struct {
	// Distance is the world-space distance from the ray origin to Point.
	Distance float32

	// Point is the world-space intersection point.
	Point mgl32.Vec3

	// Object is the object whose geometry was hit.
	Object game_object.GameObject

	// Triangle is the index of the hit triangle within the object's model.
	Triangle int
}

type raycasterImpl struct {
	mu *sync.Mutex

	ray    common.Ray
	layers common.Layers
	near   float32
	far    float32
}

// Raycaster defines the interface for picking objects and planes with a world-space ray.
// Objects are only tested when enabled and when their layer mask shares a layer with the raycaster's.
type Raycaster interface {
	// SetFromCamera aims the ray through a point in normalized device coordinates of cam.
	//
	// Parameters:
	//   - ndc: pointer position in normalized device coordinates
	//   - cam: the camera the pointer is looking through
	SetFromCamera(ndc mgl32.Vec2, cam camera.Camera)

	// Ray returns the current world-space ray.
	//
	// Returns:
	//   - common.Ray: the ray
	Ray() common.Ray

	// SetRay replaces the current ray.
	//
	// Parameters:
	//   - r: the new world-space ray
	SetRay(r common.Ray)

	// Layers returns the layer mask objects must share to be tested.
	//
	// Returns:
	//   - common.Layers: the layer mask
	Layers() common.Layers

	// SetLayers replaces the layer mask.
	//
	// Parameters:
	//   - layers: the new layer mask
	SetLayers(layers common.Layers)

	// IntersectPlane intersects the current ray with a plane.
	//
	// Parameters:
	//   - p: the plane
	//
	// Returns:
	//   - mgl32.Vec3: the intersection point
	//   - bool: false when the ray is parallel to, points away from, or the plane is degenerate
	IntersectPlane(p common.Plane) (mgl32.Vec3, bool)

	// IntersectObject tests a single object. The ray is moved into the object's local space,
	// rejected early against the model's bounding sphere, and then tested triangle by triangle.
	// Objects without a model never intersect.
	//
	// Parameters:
	//   - obj: the object to test
	//
	// Returns:
	//   - []Intersection: the nearest hit, or nil
	IntersectObject(obj game_object.GameObject) []Intersection

	// IntersectObjects tests every object and returns the hits sorted by ascending distance.
	//
	// Parameters:
	//   - objs: the objects to test
	//
	// Returns:
	//   - []Intersection: all hits, nearest first
	IntersectObjects(objs []game_object.GameObject) []Intersection
}

var _ Raycaster = &raycasterImpl{}

// NewRaycaster creates a Raycaster on layer 0 with an unbounded distance range.
//
// Parameters:
//   - options: functional options to configure the raycaster
//
// Returns:
//   - Raycaster: the newly created raycaster
func NewRaycaster(options ...RaycasterBuilderOption) Raycaster {
	r := &raycasterImpl{
		mu:     &sync.Mutex{},
		ray:    common.NewRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}),
		layers: common.LayerMask(0),
		near:   0,
		far:    float32(math.Inf(1)),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *raycasterImpl) SetFromCamera(ndc mgl32.Vec2, cam camera.Camera) {
	if cam == nil {
		return
	}
	ray := cam.Ray(ndc)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ray = ray
}

func (r *raycasterImpl) Ray() common.Ray {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ray
}

func (r *raycasterImpl) SetRay(ray common.Ray) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ray = ray
}

func (r *raycasterImpl) Layers() common.Layers {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.layers
}

func (r *raycasterImpl) SetLayers(layers common.Layers) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.layers = layers
}

func (r *raycasterImpl) IntersectPlane(p common.Plane) (mgl32.Vec3, bool) {
	return r.Ray().IntersectPlane(p)
}

func (r *raycasterImpl) IntersectObject(obj game_object.GameObject) []Intersection {
	r.mu.Lock()
	ray, layers, near, far := r.ray, r.layers, r.near, r.far
	r.mu.Unlock()

	hit, ok := intersect(ray, layers, obj)
	if !ok || hit.Distance < near || hit.Distance > far {
		return nil
	}
	return []Intersection{hit}
}

func (r *raycasterImpl) IntersectObjects(objs []game_object.GameObject) []Intersection {
	var hits []Intersection
	for _, obj := range objs {
		hits = append(hits, r.IntersectObject(obj)...)
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// intersect runs the layer, bounding sphere and triangle tests for one object.
func intersect(ray common.Ray, layers common.Layers, obj game_object.GameObject) (Intersection, bool) {
	if obj == nil || !obj.Enabled() || !layers.Test(obj.Layers()) {
		return Intersection{}, false
	}
	mdl := obj.Model()
	if mdl == nil {
		return Intersection{}, false
	}

	world := obj.WorldMatrix()
	if world.Det() == 0 {
		return Intersection{}, false
	}
	local := ray.Transform(world.Inv())

	if _, ok := local.IntersectSphere(mgl32.Vec3{}, mdl.BoundingRadius()); !ok {
		return Intersection{}, false
	}

	hit, ok := mdl.Intersect(local)
	if !ok {
		return Intersection{}, false
	}

	point := world.Mul4x1(hit.Point.Vec4(1)).Vec3()
	return Intersection{
		Distance: point.Sub(ray.Origin).Len(),
		Point:    point,
		Object:   obj,
		Triangle: hit.Triangle,
	}, true
}
