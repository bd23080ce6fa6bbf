package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache   map[string]model.Model
	modelOptions []model.ModelBuilderOption
}

// Loader imports pickable meshes from glTF 2.0 files and caches them.
// Only triangle geometry is kept: every triangle primitive reachable from the default scene is
// baked into a single indexed model.Model, with node transforms applied.
type Loader interface {
	// Load imports a .gltf or .glb file and caches the result by path.
	// If the path is already cached, the cached model is returned.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if the extension is unsupported or the file cannot be decoded
	Load(path string) (model.Model, error)

	// LoadReader imports a model from a reader and caches it by name.
	// External buffer URIs are not available to reader-based documents.
	//
	// Parameters:
	//   - name: the cache key and model name
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if decoding fails
	LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the given options applied.
//
// Parameters:
//   - options: functional options to configure the Loader
//
// Returns:
//   - Loader: the new loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		modelCache: make(map[string]model.Model),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if m := l.Get(path); m != nil {
		return m, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
	default:
		return nil, fmt.Errorf("loader: unsupported model format %q", filepath.Ext(path))
	}

	f, err := parseGLTFFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to load %s: %w", path, err)
	}
	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := l.build(f, fallback)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}
	return l.store(path, m), nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error) {
	if m := l.Get(name); m != nil {
		return m, nil
	}

	f, err := parseGLTFReader(r, isGLB, "")
	if err != nil {
		return nil, fmt.Errorf("loader: failed to load %s: %w", name, err)
	}
	m, err := l.build(f, name)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", name, err)
	}
	return l.store(name, m), nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cp := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		cp[k] = v
	}
	return cp
}

// build flattens a parsed document into a model. A document without triangles is an error.
func (l *loader) build(f *gltfFile, fallbackName string) (model.Model, error) {
	g, err := f.flatten()
	if err != nil {
		return nil, err
	}
	if len(g.indices) == 0 {
		return nil, fmt.Errorf("no triangle geometry")
	}

	name := g.name
	if name == "" {
		name = fallbackName
	}
	opts := append([]model.ModelBuilderOption{
		model.WithName(name),
		model.WithPositions(g.positions),
		model.WithIndices(g.indices),
	}, l.modelOptions...)
	return model.NewModel(opts...), nil
}

// store caches m under key unless another goroutine got there first, returning the cached model.
func (l *loader) store(key string, m model.Model) model.Model {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.modelCache[key]; ok {
		return existing
	}
	l.modelCache[key] = m
	return m
}
