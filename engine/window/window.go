package window

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/controls"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// A Window is the controls.Surface of the viewer: pointer, wheel and key input is delivered in
// surface-relative pixels with DOM button numbering.
type Window interface {
	controls.Surface

	// SetUpdateCallback sets the function run on the window thread after each poll.
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function receiving the new framebuffer size in pixels.
	SetResizeCallback(callback func(width, height int))

	// SetKeyUpCallback sets the function receiving released key codes.
	SetKeyUpCallback(callback func(keyCode int))

	// SurfaceDescriptor describes the native window for creating a WebGPU surface, or returns nil
	// once the window is closed.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is open and has not been asked to close.
	IsRunning() bool

	// Close destroys the window. Closing an already closed window is a no-op.
	//
	// Returns:
	//   - error: if the window was never created
	Close() error

	// ProcessMessages waits for input until the window closes, running the update callback after
	// each wait. A wait ends on the first event or after the poll interval. Must be called from
	// the thread that created the window.
	ProcessMessages()

	// Width and Height return the framebuffer size in pixels.
	Width() int
	Height() int
}

// engineWindow holds the window configuration and the registered callbacks. Input arrives from
// the GLFW backing in window_glfw.go.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the framebuffer size in pixels.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// pollInterval bounds how long ProcessMessages waits for input before running the update
	// callback.
	pollInterval time.Duration

	pointer pointerTracker

	onUpdate      func()
	onResize      func(width, height int)
	onScroll      func(delta float32)
	onKeyDown     func(keyCode int)
	onKeyUp       func(keyCode int)
	onPointerDown func(e common.PointerEvent)
	onPointerUp   func(e common.PointerEvent)
	onPointerMove func(e common.PointerEvent)
}

var _ Window = &engineWindow{}

// NewWindow opens a window configured by options. It locks the calling goroutine to its OS
// thread and panics if the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "oxy-viewer",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,

		pollInterval: time.Second / 60,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode int)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode int)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(e common.PointerEvent)) {
	w.onPointerDown = callback
}

func (w *engineWindow) SetPointerUpCallback(callback func(e common.PointerEvent)) {
	w.onPointerUp = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(e common.PointerEvent)) {
	w.onPointerMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

func (w *engineWindow) Size() (int, int) {
	return w.width, w.height
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// dispatchButton forwards a button transition at the last known cursor position.
func (w *engineWindow) dispatchButton(button common.MouseButton, pressed bool) {
	e := w.pointer.button(button)
	if pressed {
		if w.onPointerDown != nil {
			w.onPointerDown(e)
		}
		return
	}
	if w.onPointerUp != nil {
		w.onPointerUp(e)
	}
}

func (w *engineWindow) dispatchMove(x, y float32) {
	e := w.pointer.move(x, y)
	if w.onPointerMove != nil {
		w.onPointerMove(e)
	}
}
