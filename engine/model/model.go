package model

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultParallelThreshold is the triangle count above which Intersect fans out to the worker pool.
	DefaultParallelThreshold = 4096

	// DefaultChunkSize is the number of triangles each worker task tests.
	DefaultChunkSize = 1024
)

var (
	sharedPoolOnce sync.Once
	sharedPool     worker.DynamicWorkerPool
)

// SharedPool returns the process-wide worker pool used for parallel mesh picking.
// Workers idle-exit after a second without work, so the pool needs no shutdown.
//
// Returns:
//   - worker.DynamicWorkerPool: the shared pool
func SharedPool() worker.DynamicWorkerPool {
	sharedPoolOnce.Do(func() {
		sharedPool = worker.NewDynamicWorkerPool(runtime.NumCPU(), 256, 1*time.Second)
	})
	return sharedPool
}

// model is the implementation of the Model interface.
type model struct {
	name      string
	positions []mgl32.Vec3
	indices   []uint32

	boundingRadius float32
	boundingMin    mgl32.Vec3
	boundingMax    mgl32.Vec3

	pool              worker.DynamicWorkerPool
	parallelThreshold int
	chunkSize         int
}

// Model defines the interface for CPU-side mesh geometry used for picking.
// Geometry is immutable after construction, so a Model is safe for concurrent use.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Positions returns the vertex positions in model space.
	//
	// Returns:
	//   - []mgl32.Vec3: the vertex positions
	Positions() []mgl32.Vec3

	// Indices returns the triangle indices. Empty for non-indexed meshes, whose positions are
	// consumed three at a time.
	//
	// Returns:
	//   - []uint32: the triangle indices
	Indices() []uint32

	// TriangleCount returns the number of triangles in the mesh.
	//
	// Returns:
	//   - int: the triangle count
	TriangleCount() int

	// BoundingRadius returns the bounding sphere radius for this model, measured as
	// the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// BoundingBox returns the axis-aligned bounding box of the vertex positions.
	//
	// Returns:
	//   - min, max: the box corners
	BoundingBox() (min, max mgl32.Vec3)

	// Intersect returns the nearest triangle hit by a ray expressed in model space.
	// Meshes larger than the parallel threshold are split into chunks tested on the worker pool;
	// the call returns only after every chunk has finished.
	//
	// Parameters:
	//   - ray: the ray in model space
	//
	// Returns:
	//   - Hit: the nearest intersection
	//   - bool: false if no triangle is hit
	Intersect(ray common.Ray) (Hit, bool)
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// Bounds are computed from the positions after all options are applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		parallelThreshold: DefaultParallelThreshold,
		chunkSize:         DefaultChunkSize,
	}
	for _, opt := range options {
		opt(m)
	}
	m.computeBounds()
	return m
}

// NewBox creates an axis-aligned box mesh centered on the origin.
//
// Parameters:
//   - width, height, depth: box extents along X, Y and Z
//   - options: additional ModelBuilderOption functions
//
// Returns:
//   - Model: the box model
func NewBox(width, height, depth float32, options ...ModelBuilderOption) Model {
	x, y, z := width/2, height/2, depth/2
	positions := []mgl32.Vec3{
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}, // front
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z}, // back
	}
	indices := []uint32{
		0, 1, 2, 0, 2, 3, // front
		5, 4, 7, 5, 7, 6, // back
		4, 0, 3, 4, 3, 7, // left
		1, 5, 6, 1, 6, 2, // right
		3, 2, 6, 3, 6, 7, // top
		4, 5, 1, 4, 1, 0, // bottom
	}
	opts := append([]ModelBuilderOption{WithName("box"), WithPositions(positions), WithIndices(indices)}, options...)
	return NewModel(opts...)
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Positions() []mgl32.Vec3 {
	return m.positions
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) TriangleCount() int {
	if len(m.indices) > 0 {
		return len(m.indices) / 3
	}
	return len(m.positions) / 3
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) BoundingBox() (min, max mgl32.Vec3) {
	return m.boundingMin, m.boundingMax
}

func (m *model) Intersect(ray common.Ray) (Hit, bool) {
	count := m.TriangleCount()
	if count == 0 {
		return Hit{}, false
	}
	if count <= m.parallelThreshold || m.chunkSize <= 0 {
		return m.intersectRange(ray, chunk{first: 0, last: count})
	}

	pool := m.pool
	if pool == nil {
		pool = SharedPool()
	}

	var chunks []chunk
	for first := 0; first < count; first += m.chunkSize {
		chunks = append(chunks, chunk{first: first, last: min(first+m.chunkSize, count)})
	}

	// Each task writes only its own slot, so results needs no lock.
	type result struct {
		hit Hit
		ok  bool
	}
	results := make([]result, len(chunks))

	var wg sync.WaitGroup
	for i, c := range chunks {
		wg.Add(1)
		idx, cCap := i, c
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				hit, ok := m.intersectRange(ray, cCap)
				results[idx] = result{hit: hit, ok: ok}
				return nil, nil
			},
		})
	}
	wg.Wait()

	best := Hit{Distance: float32(math.Inf(1))}
	found := false
	for _, r := range results {
		if r.ok && r.hit.Distance < best.Distance {
			best = r.hit
			found = true
		}
	}
	return best, found
}

// intersectRange tests triangles [c.first, c.last) and returns the nearest hit.
func (m *model) intersectRange(ray common.Ray, c chunk) (Hit, bool) {
	best := Hit{Distance: float32(math.Inf(1))}
	found := false
	for tri := c.first; tri < c.last; tri++ {
		a, b, cc, ok := m.triangle(tri)
		if !ok {
			continue
		}
		t, hit := ray.IntersectTriangle(a, b, cc)
		if hit && t < best.Distance {
			best = Hit{Distance: t, Point: ray.At(t), Triangle: tri}
			found = true
		}
	}
	return best, found
}

// triangle returns the vertices of triangle i. Out-of-range indices report false.
func (m *model) triangle(i int) (a, b, c mgl32.Vec3, ok bool) {
	if len(m.indices) == 0 {
		base := i * 3
		if base+2 >= len(m.positions) {
			return a, b, c, false
		}
		return m.positions[base], m.positions[base+1], m.positions[base+2], true
	}
	i0, i1, i2 := int(m.indices[i*3]), int(m.indices[i*3+1]), int(m.indices[i*3+2])
	n := len(m.positions)
	if i0 >= n || i1 >= n || i2 >= n {
		return a, b, c, false
	}
	return m.positions[i0], m.positions[i1], m.positions[i2], true
}

// computeBounds derives the bounding radius and box from the positions.
func (m *model) computeBounds() {
	if len(m.positions) == 0 {
		return
	}
	m.boundingMin = m.positions[0]
	m.boundingMax = m.positions[0]
	var maxSq float32
	for _, p := range m.positions {
		for k := 0; k < 3; k++ {
			m.boundingMin[k] = min(m.boundingMin[k], p[k])
			m.boundingMax[k] = max(m.boundingMax[k], p[k])
		}
		maxSq = max(maxSq, p.LenSqr())
	}
	m.boundingRadius = float32(math.Sqrt(float64(maxSq)))
}
