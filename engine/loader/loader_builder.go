package loader

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithModelOptions appends options applied to every model the Loader builds, such as a shared
// worker pool or a parallel picking threshold.
//
// Parameters:
//   - options: model options
//
// Returns:
//   - LoaderBuilderOption: a function that applies the options to a loader
func WithModelOptions(options ...model.ModelBuilderOption) LoaderBuilderOption {
	return func(l *loader) {
		l.modelOptions = append(l.modelOptions, options...)
	}
}

// WithModel pre-populates the model cache.
//
// Parameters:
//   - key: the cache key for the model
//   - m: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, m model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = m
	}
}
