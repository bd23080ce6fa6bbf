package model

import (
	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithPositions is an option builder that sets the vertex positions of the Model.
//
// Parameters:
//   - positions: vertex positions in model space
//
// Returns:
//   - ModelBuilderOption: a function that applies the positions option to a model
func WithPositions(positions []mgl32.Vec3) ModelBuilderOption {
	return func(m *model) {
		m.positions = positions
	}
}

// WithIndices is an option builder that sets the triangle indices of the Model.
// Trailing indices that do not form a full triangle are ignored.
//
// Parameters:
//   - indices: triangle indices into the positions
//
// Returns:
//   - ModelBuilderOption: a function that applies the indices option to a model
func WithIndices(indices []uint32) ModelBuilderOption {
	return func(m *model) {
		m.indices = indices[:len(indices)-len(indices)%3]
	}
}

// WithWorkerPool is an option builder that sets the pool used for parallel intersection.
// Models without a pool use SharedPool.
//
// Parameters:
//   - pool: the worker pool
//
// Returns:
//   - ModelBuilderOption: a function that applies the pool option to a model
func WithWorkerPool(pool worker.DynamicWorkerPool) ModelBuilderOption {
	return func(m *model) {
		m.pool = pool
	}
}

// WithParallelThreshold is an option builder that sets the triangle count above which
// intersection is split across the worker pool.
//
// Parameters:
//   - triangles: the threshold triangle count
//
// Returns:
//   - ModelBuilderOption: a function that applies the threshold option to a model
func WithParallelThreshold(triangles int) ModelBuilderOption {
	return func(m *model) {
		m.parallelThreshold = triangles
	}
}

// WithChunkSize is an option builder that sets how many triangles each worker task tests.
//
// Parameters:
//   - triangles: triangles per chunk
//
// Returns:
//   - ModelBuilderOption: a function that applies the chunk size option to a model
func WithChunkSize(triangles int) ModelBuilderOption {
	return func(m *model) {
		m.chunkSize = triangles
	}
}
