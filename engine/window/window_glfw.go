package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow is the GLFW backing of an engineWindow. All methods must run on the thread that
// created it.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
	closed  bool
}

// newPlatformWindow initialises GLFW, opens a window without a client API (WebGPU draws to it)
// and routes its input into the engineWindow's callbacks.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("window: glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("window: create %q: %w", w.title, err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{parent: w, window: win, running: true}
	gw.install()
	w.internalWindow = gw

	// The framebuffer may be larger than the requested size on high-DPI displays.
	w.width, w.height = win.GetFramebufferSize()
	return nil
}

// install registers the GLFW input and resize callbacks.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window
func (gw *glfwWindow) install() {
	w, win := gw.parent, gw.window

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		gw.onKey(key, action)
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		w.dispatchButton(glfwButton(int(button)), action == glfw.Press)
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		x, y := gw.toFramebuffer(xpos, ypos)
		w.dispatchMove(x, y)
	})

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
}

// onKey closes the window on Escape and forwards presses and releases.
// Auto-repeat is dropped so a held key switches cameras once.
func (gw *glfwWindow) onKey(key glfw.Key, action glfw.Action) {
	w := gw.parent
	if int(key) == common.KeyEsc && action == glfw.Press {
		gw.running = false
		gw.window.SetShouldClose(true)
		return
	}
	switch action {
	case glfw.Press:
		if w.onKeyDown != nil {
			w.onKeyDown(int(key))
		}
	case glfw.Release:
		if w.onKeyUp != nil {
			w.onKeyUp(int(key))
		}
	}
}

// toFramebuffer scales a cursor position from screen coordinates to framebuffer pixels, the
// space Size reports.
func (gw *glfwWindow) toFramebuffer(xpos, ypos float64) (float32, float32) {
	sx, sy := float32(1), float32(1)
	if ww, wh := gw.window.GetSize(); ww > 0 && wh > 0 {
		sx = float32(gw.parent.width) / float32(ww)
		sy = float32(gw.parent.height) / float32(wh)
	}
	return float32(xpos) * sx, float32(ypos) * sy
}

func (gw *glfwWindow) alive() bool {
	return gw.running && !gw.closed && !gw.window.ShouldClose()
}

func (gw *glfwWindow) destroy() {
	if gw.closed {
		return
	}
	gw.running = false
	gw.closed = true
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
}

func backing(w *engineWindow) *glfwWindow {
	if w.internalWindow == nil {
		return nil
	}
	return w.internalWindow.(*glfwWindow)
}

// platformGetSurfaceDescriptor builds a WebGPU surface descriptor through the wgpuglfw bridge.
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw := backing(w)
	if gw == nil || gw.closed {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw := backing(w)
	return gw != nil && gw.alive()
}

// platformCloseWindow destroys the window and terminates GLFW. Closing twice is a no-op.
func platformCloseWindow(w *engineWindow) error {
	gw := backing(w)
	if gw == nil {
		return fmt.Errorf("window: not initialized")
	}
	gw.destroy()
	return nil
}

// platformProcessMessages sleeps until an event arrives or the poll interval elapses.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#WaitEventsTimeout
func platformProcessMessages(w *engineWindow) bool {
	glfw.WaitEventsTimeout(w.pollInterval.Seconds())
	return platformIsRunningCheck(w)
}
