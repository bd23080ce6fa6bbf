package window

import (
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
)

// WindowBuilderOption is a functional option for configuring an engineWindow.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial client area size. Non-positive values keep the default.
//
// Parameters:
//   - width, height: initial size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithSizeLimits bounds the client area size while resizing.
//
// Parameters:
//   - minWidth, minHeight: smallest allowed size in pixels
//   - maxWidth, maxHeight: largest allowed size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}

// WithConfig applies the title and size from the window section of the viewer configuration.
func WithConfig(cfg config.WindowConfig) WindowBuilderOption {
	return func(w *engineWindow) {
		if cfg.Title != "" {
			w.title = cfg.Title
		}
		WithSize(cfg.Width, cfg.Height)(w)
	}
}

// WithPollRate sets how often the message loop wakes without input, in wakes per second.
// Match it to the engine tick rate so quit requests are noticed within a tick. Non-positive
// rates keep the default of 60.
func WithPollRate(hz int) WindowBuilderOption {
	return func(w *engineWindow) {
		if hz > 0 {
			w.pollInterval = time.Second / time.Duration(hz)
		}
	}
}
