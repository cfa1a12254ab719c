package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-morph/engine"
	"github.com/Carmen-Shannon/oxy-morph/engine/animator"
	"github.com/Carmen-Shannon/oxy-morph/engine/camera"
	"github.com/Carmen-Shannon/oxy-morph/engine/loader"
	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/Carmen-Shannon/oxy-morph/engine/profiler"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer"
	"github.com/Carmen-Shannon/oxy-morph/engine/session"
	"github.com/Carmen-Shannon/oxy-morph/engine/window"
	"github.com/Carmen-Shannon/oxy-morph/internal/config"
)

// maxFrameFailures is how many frames in a row may fail before the demo quits.
const maxFrameFailures = 60

func main() {
	flags := config.BindFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.LoadWithFlags(*flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// run returns before exiting so its deferred releases happen
	if err := run(cfg); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// run loads and bakes the poses, then drives the window until it closes.
func run(cfg config.Config) error {

	// ── Meshes ──────────────────────────────────────────────────────────
	ldr := loader.NewLoader(loader.WithWorkers(cfg.Workers))
	poses, err := ldr.LoadPoses(cfg.Models.Base, cfg.Models.PoseA, cfg.Models.PoseB)
	ldr.Close()
	if err != nil {
		return fmt.Errorf("failed to load poses: %w", err)
	}

	var bakeOpts []morph.BakeOption
	if cfg.Models.StrictTopology {
		bakeOpts = append(bakeOpts, morph.WithStrictTopology())
	}
	vertices, err := morph.Bake(poses.Base, poses.PoseA, poses.PoseB, bakeOpts...)
	if err != nil {
		return fmt.Errorf("failed to bake morph targets: %w", err)
	}
	log.Printf("Baked %d triangles from %s", len(vertices)/3, poses.Base.Name)

	// ── Engine + Window ─────────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithFullScreen(cfg.Window.FullScreen),
	)

	// ── Renderer ────────────────────────────────────────────────────────
	presentMode := renderer.PresentModeVSync
	if !*cfg.Renderer.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	msaa := renderer.MSAAOff
	if cfg.Renderer.MSAA {
		msaa = renderer.MSAA4x
	}
	grey := *cfg.Renderer.ClearGrey
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithClearColor(grey, grey, grey),
	)
	defer r.Release()

	// ── Session ─────────────────────────────────────────────────────────
	anim := animator.NewAnimator(
		animator.WithAdjustStep(cfg.Animation.AdjustStep),
		animator.WithPulseStep(cfg.Animation.PulseStep),
		animator.WithOvershoot(cfg.Animation.Overshoot),
		animator.WithTickPeriod(cfg.Animation.TickPeriod()),
	)
	cam := camera.NewCamera(
		camera.WithFov(45),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
	)

	var eng engine.Engine
	sess, err := session.NewSession(vertices, r,
		session.WithAnimator(anim),
		session.WithCamera(cam),
		session.WithTitleSink(win, cfg.Window.Title),
		session.WithQuitHook(func() { eng.Quit() }),
		session.WithFullScreenHook(win.SetFullScreen),
	)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer sess.Close()

	guard := session.NewFrameGuard(maxFrameFailures)
	eng = engine.NewEngine(
		engine.WithWindow(win),
		engine.WithProfiling(cfg.Profiling),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithStatus(func() string {
			wa, wb := anim.Weights()
			return fmt.Sprintf("Weights: %.2f %.2f", wa, wb)
		}))),
		engine.WithRenderFrameLimit(cfg.Renderer.FrameLimit),
		engine.WithUpdateCallback(func(now time.Time, _ float32) {
			err := sess.Frame(now)
			if err != nil {
				log.Printf("Frame failed: %v", err)
			}
			if guard.Observe(err) {
				log.Printf("Stopping after %d failed frames: %v", max(guard.Failures(), 1), err)
				eng.Quit()
			}
		}),
	)
	eng.SetResizeCallback(func(width, height int) {
		r.Resize(width, height)
		sess.Resize(width, height)
	})

	// ── Input ───────────────────────────────────────────────────────────
	win.SetKeyDownCallback(func(keyCode uint32) {
		sess.KeyDown(keyCode)
	})
	win.SetMouseDownCallback(func(button window.MouseButton, x, y int32) {
		if mode, ok := dragMode(button); ok {
			sess.MouseDown(mode, x, y)
		}
	})
	win.SetMouseUpCallback(func(button window.MouseButton, _, _ int32) {
		if mode, ok := dragMode(button); ok {
			sess.MouseUp(mode)
		}
	})
	win.SetMouseMoveCallback(sess.MouseMove)
	win.SetScrollCallback(sess.Scroll)

	for _, line := range sess.StatusLines() {
		log.Println(line)
	}
	eng.Run()
	return nil
}

// dragMode maps the left button to spinning and the right button to translating the model.
func dragMode(button window.MouseButton) (camera.DragMode, bool) {
	switch button {
	case window.MouseButtonLeft:
		return camera.DragSpin, true
	case window.MouseButtonRight:
		return camera.DragTranslate, true
	default:
		return camera.DragNone, false
	}
}
