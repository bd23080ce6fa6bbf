package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/controls"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// engine drives the controls from a ticker goroutine while the caller's thread owns the window.
type engine struct {
	tickRateChannel chan time.Duration // pending rate change for a running loop

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	window   window.Window
	controls controls.Controls
	cameras  []camera.Camera

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
}

// Engine is the main entry point for the viewer.
// It runs a fixed-rate tick loop that advances the controls' animations and pumps the window
// message loop that feeds them input.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Controls returns the interaction controls driven by the engine, if any.
	//
	// Returns:
	//   - controls.Controls: the controls instance
	Controls() controls.Controls

	// Profiler returns the engine profiler. It doubles as the controls' event recorder.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler
	Profiler() *profiler.Profiler

	// EnableProfiler and DisableProfiler toggle the per-interval stats line in the log.
	EnableProfiler()
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick after the controls update.
	//
	// Parameters:
	//   - callback: receives the seconds elapsed since the previous tick
	SetTickCallback(callback func(deltaTime float32))

	// Run starts the engine loop and blocks until the window closes or Quit is called.
	// The window is closed when Run returns.
	// Without a window Run blocks until Quit.
	Run()

	// Quit stops the tick loop and asks the window to close. Repeated calls do nothing.
	Quit()
}

// NewEngine builds an engine from options. When a window is configured its resize events update the aspect ratio of every registered camera.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the engine, not yet running
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		profiler:        profiler.NewProfiler(time.Second),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
		e.window.SetUpdateCallback(e.pump)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Controls() controls.Controls {
	return e.controls
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) Run() {
	e.running.Store(true)
	e.handle()

	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] failed to close window: %v", err)
		}
	}
	e.wg.Wait()
	e.running.Store(false)
}

func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handle launches the tick and quit goroutines.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()
}

// handleEngine ticks until quit. A panic in a tick is logged and shuts the engine down.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] tick goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

func (e *engine) tick(dt float32) {
	if e.controls != nil {
		e.controls.Update(dt)
	}
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	if e.profilingEnabled.Load() {
		e.profiler.Tick()
	}
}

// handleQuit blocks until the quit channel is closed.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// pump runs on the window thread once per message loop iteration and closes the window once
// Quit has been called.
func (e *engine) pump() {
	select {
	case <-e.quitChannel:
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] failed to close window: %v", err)
		}
	default:
	}
}

func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	aspect := float32(width) / float32(height)
	for _, c := range e.cameras {
		c.SetAspect(aspect)
	}
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect on the next loop iteration.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickDuration(fps)

	if !e.running.Load() {
		e.engineTickRate = newRate
		return
	}

	// Non-blocking send; a pending update is replaced.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func tickDuration(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}
