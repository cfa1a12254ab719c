package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-morph/engine/profiler"
	"github.com/Carmen-Shannon/oxy-morph/engine/window"
)

// engine implements the Engine interface.
// Everything runs on the window's message loop: input callbacks, the update callback and
// rendering all happen on that one goroutine.
type engine struct {
	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	updateCallback func(now time.Time, deltaTime float32)
	resizeCallback func(width, height int)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	clock            func() time.Time

	quitOnce  sync.Once
	quitting  bool
	lastFrame time.Time
	frames    uint64
}

// Engine is the main entry point for the demo.
// It owns the window and the profiler and drives the frame loop.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetUpdateCallback registers the function called once per loop iteration, after input
	// events were dispatched. It advances timers and renders.
	//
	// Parameters:
	//   - callback: receives the frame time and the seconds since the previous frame
	SetUpdateCallback(callback func(now time.Time, deltaTime float32))

	// SetResizeCallback registers the function called when the window size changes.
	//
	// Parameters:
	//   - callback: receives the new client size in pixels
	SetResizeCallback(callback func(width, height int))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Frames returns how many update callbacks have run.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Run starts the message loop. Blocks until the window closes or Quit is called.
	Run()

	// Quit asks the loop to exit after the current iteration.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// A window must be supplied with WithWindow.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, frame limit)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profilingEnabled: false,
		clock:            time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		panic("engine: a window is required")
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}

	e.window.SetResizeCallback(func(width, height int) {
		if e.resizeCallback != nil {
			e.resizeCallback(width, height)
		}
	})
	e.window.SetUpdateCallback(e.frame)

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.lastFrame = e.clock()
	e.window.ProcessMessages()
	log.Printf("[Engine] stopped after %d frames", e.frames)
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.quitting = true
		e.window.RequestClose()
	})
}

// frame is the window update callback: one update, one profiler tick, then the frame cap.
// Recovers from panics so a failed frame closes the window instead of crashing the process.
func (e *engine) frame() {
	if e.quitting {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame recovered from panic: %v", r)
			e.Quit()
		}
	}()

	now := e.clock()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	if e.updateCallback != nil {
		e.updateCallback(now, dt)
	}
	e.frames++

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.clock().Sub(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetUpdateCallback(callback func(now time.Time, deltaTime float32)) {
	e.updateCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Frames() uint64 {
	return e.frames
}
