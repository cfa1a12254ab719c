package session

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-morph/engine/animator"
	"github.com/Carmen-Shannon/oxy-morph/engine/camera"
	"github.com/Carmen-Shannon/oxy-morph/engine/input"
	"github.com/Carmen-Shannon/oxy-morph/engine/light"
	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer/shader"
)

// ErrClosed is returned by Frame once Close has run.
var ErrClosed = errors.New("session: closed")

// FrameRenderer is the GPU side a Session draws through. renderer.Renderer satisfies it.
type FrameRenderer interface {
	UploadMesh(vertices []morph.BlendVertex) error
	WriteUniform(key shader.AnnotationArg, data []byte) error
	RenderFrame() error
}

// TitleSink receives the status text. window.Window satisfies it.
type TitleSink interface {
	SetTitle(title string)
}

// session is the implementation of the Session interface.
type session struct {
	animator   animator.Animator
	camera     camera.Camera
	controller camera.ModelController
	light      light.Light
	material   material.Material
	bindings   input.Bindings

	renderer    FrameRenderer
	title       TitleSink
	baseTitle   string
	lastStatus  string
	vertexCount int

	onQuit       func()
	onFullScreen func(fullScreen bool)

	closed bool
}

// Session owns everything one running demo needs: the pose animator and its timers, the camera
// and model controller, the light and material, and the renderer the baked mesh was uploaded to.
// Input is translated into animator commands, and every Frame advances the pulse timers, pushes
// the uniforms and draws.
//
// A Session is not safe for concurrent use. Every method must be called from the event loop.
type Session interface {
	// Handle applies a single input command.
	//
	// Parameters:
	//   - cmd: the command to apply
	Handle(cmd input.Command)

	// KeyDown looks the key up in the session's bindings and applies the bound command.
	//
	// Parameters:
	//   - keyCode: the key that was pressed
	//
	// Returns:
	//   - bool: true if the key was bound
	KeyDown(keyCode uint32) bool

	// MouseDown starts a spin or translate drag of the model.
	//
	// Parameters:
	//   - mode: the drag kind bound to the pressed button
	//   - x, y: the cursor position in pixels
	MouseDown(mode camera.DragMode, x, y int32)

	// MouseUp ends a drag.
	//
	// Parameters:
	//   - mode: the drag kind bound to the released button
	MouseUp(mode camera.DragMode)

	// MouseMove forwards cursor motion to every active drag.
	//
	// Parameters:
	//   - x, y: the cursor position in pixels
	MouseMove(x, y int32)

	// Scroll moves the model along Z.
	//
	// Parameters:
	//   - delta: the wheel offset
	Scroll(delta float32)

	// Resize updates the camera aspect ratio. Zero sizes (a minimised window) are ignored.
	//
	// Parameters:
	//   - width, height: the new surface size in pixels
	Resize(width, height int)

	// Frame advances the pulse timers to now, writes the transform, weight, light and material
	// uniforms, draws the mesh and refreshes the status text if it changed.
	//
	// Parameters:
	//   - now: the frame time
	//
	// Returns:
	//   - error: ErrClosed after Close, or the first renderer failure
	Frame(now time.Time) error

	// StatusLines returns the on-screen help text with the current weights.
	//
	// Returns:
	//   - []string: one entry per line
	StatusLines() []string

	// Animator returns the pose animator.
	//
	// Returns:
	//   - animator.Animator: the animator driven by this session
	Animator() animator.Animator

	// Controller returns the mouse model controller.
	//
	// Returns:
	//   - camera.ModelController: the controller whose matrix is used as the model transform
	Controller() camera.ModelController

	// VertexCount returns the number of vertices drawn every frame.
	//
	// Returns:
	//   - int: three per baked triangle
	VertexCount() int

	// Close stops every pulse timer. It is safe to call more than once.
	Close()
}

var _ Session = &session{}

// NewSession uploads the baked vertices to r and builds a Session around them. Collaborators
// not supplied through options get their defaults: a wall-clock animator, the demo camera,
// a fresh model controller, the default light, material and key bindings.
//
// Parameters:
//   - vertices: the baked mesh, three vertices per triangle
//   - r: the renderer to draw with
//   - options: variadic list of SessionBuilderOption functions
//
// Returns:
//   - Session: the new session
//   - error: an error if the mesh upload fails
func NewSession(vertices []morph.BlendVertex, r FrameRenderer, options ...SessionBuilderOption) (Session, error) {
	if r == nil {
		return nil, errors.New("session: renderer is nil")
	}
	s := &session{renderer: r}
	for _, opt := range options {
		opt(s)
	}

	if s.animator == nil {
		s.animator = animator.NewAnimator()
	}
	if s.camera == nil {
		s.camera = camera.NewCamera()
	}
	if s.controller == nil {
		s.controller = camera.NewModelController()
	}
	if s.light == nil {
		s.light = light.NewLight()
	}
	if s.material == nil {
		s.material = material.NewMaterial()
	}
	if s.bindings == nil {
		s.bindings = input.DefaultBindings()
	}

	if err := r.UploadMesh(vertices); err != nil {
		return nil, fmt.Errorf("session: failed to upload mesh: %w", err)
	}
	s.vertexCount = len(vertices)
	log.Printf("[Session] uploaded %d vertices (%d triangles)", s.vertexCount, s.vertexCount/3)

	return s, nil
}

func (s *session) Handle(cmd input.Command) {
	switch cmd {
	case input.CommandIncreaseWeightA:
		s.animator.Adjust(animator.ChannelA, animator.Increase)
	case input.CommandDecreaseWeightA:
		s.animator.Adjust(animator.ChannelA, animator.Decrease)
	case input.CommandIncreaseWeightB:
		s.animator.Adjust(animator.ChannelB, animator.Increase)
	case input.CommandDecreaseWeightB:
		s.animator.Adjust(animator.ChannelB, animator.Decrease)
	case input.CommandPunchLeft:
		s.animator.Punch(animator.ChannelA)
	case input.CommandPunchRight:
		s.animator.Punch(animator.ChannelB)
	case input.CommandToggleAnimation:
		if s.animator.ToggleAnimation() {
			log.Printf("[Session] animation paused")
		} else {
			log.Printf("[Session] animation resumed")
		}
	case input.CommandFullScreen:
		if s.onFullScreen != nil {
			s.onFullScreen(true)
		}
	case input.CommandWindowed:
		if s.onFullScreen != nil {
			s.onFullScreen(false)
		}
	case input.CommandQuit:
		if s.onQuit != nil {
			s.onQuit()
		}
	}
}

func (s *session) KeyDown(keyCode uint32) bool {
	cmd, ok := s.bindings.Lookup(keyCode)
	if !ok {
		return false
	}
	s.Handle(cmd)
	return true
}

func (s *session) MouseDown(mode camera.DragMode, x, y int32) {
	s.controller.BeginDrag(mode, x, y)
}

func (s *session) MouseUp(mode camera.DragMode) {
	s.controller.EndDrag(mode)
}

func (s *session) MouseMove(x, y int32) {
	s.controller.MouseMove(x, y)
}

func (s *session) Scroll(delta float32) {
	s.controller.Wheel(delta)
}

func (s *session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.camera.SetViewport(width, height)
}

func (s *session) Frame(now time.Time) error {
	if s.closed {
		return ErrClosed
	}

	s.animator.Scheduler().Advance(now)

	transform := camera.NewTransformUniform(s.camera, s.controller.ModelMatrix())
	weights := animator.NewMorphWeights(s.animator)
	lt := s.light.GPU(s.camera.ViewMatrix())
	mat := s.material.GPU()

	uniforms := []struct {
		key  shader.AnnotationArg
		data []byte
	}{
		{shader.AnnotationArgTransform, transform.Marshal()},
		{shader.AnnotationArgMorphWeights, weights.Marshal()},
		{shader.AnnotationArgLight, lt.Marshal()},
		{shader.AnnotationArgMaterial, mat.Marshal()},
	}
	for _, u := range uniforms {
		if err := s.renderer.WriteUniform(u.key, u.data); err != nil {
			return fmt.Errorf("session: %w", err)
		}
	}

	if err := s.renderer.RenderFrame(); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	s.refreshStatus()
	return nil
}

// refreshStatus pushes the status text to the title sink when it differs from the last push.
func (s *session) refreshStatus() {
	if s.title == nil {
		return
	}
	status := strings.Join(s.StatusLines(), " | ")
	if s.baseTitle != "" {
		status = s.baseTitle + " | " + status
	}
	if status == s.lastStatus {
		return
	}
	s.lastStatus = status
	s.title.SetTitle(status)
}

func (s *session) StatusLines() []string {
	wa, wb := s.animator.Weights()
	lines := []string{
		fmt.Sprintf("Q-W change Pose one weight %.2f", wa),
		fmt.Sprintf("A-S change Pose two weight %.2f", wb),
		"Z trigger Left Punch X trigger Right",
	}
	if s.animator.Paused() {
		lines = append(lines, "[paused]")
	}
	return lines
}

func (s *session) Animator() animator.Animator {
	return s.animator
}

func (s *session) Controller() camera.ModelController {
	return s.controller
}

func (s *session) VertexCount() int {
	return s.vertexCount
}

func (s *session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.animator.Stop()
	log.Printf("[Session] closed")
}
