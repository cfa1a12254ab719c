package session

import (
	"github.com/Carmen-Shannon/oxy-morph/engine/animator"
	"github.com/Carmen-Shannon/oxy-morph/engine/camera"
	"github.com/Carmen-Shannon/oxy-morph/engine/input"
	"github.com/Carmen-Shannon/oxy-morph/engine/light"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer/material"
)

// SessionBuilderOption is a functional option for configuring a Session via NewSession.
type SessionBuilderOption func(*session)

// WithAnimator sets the pose animator. Its scheduler is advanced by Frame.
//
// Parameters:
//   - a: the animator to drive
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithAnimator(a animator.Animator) SessionBuilderOption {
	return func(s *session) {
		s.animator = a
	}
}

// WithCamera sets the camera used for the view and projection matrices.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithCamera(c camera.Camera) SessionBuilderOption {
	return func(s *session) {
		s.camera = c
	}
}

// WithController sets the mouse model controller.
//
// Parameters:
//   - m: the controller
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithController(m camera.ModelController) SessionBuilderOption {
	return func(s *session) {
		s.controller = m
	}
}

// WithLight sets the point light.
//
// Parameters:
//   - l: the light
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithLight(l light.Light) SessionBuilderOption {
	return func(s *session) {
		s.light = l
	}
}

// WithMaterial sets the surface material.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithMaterial(m material.Material) SessionBuilderOption {
	return func(s *session) {
		s.material = m
	}
}

// WithBindings replaces the default key bindings used by KeyDown.
//
// Parameters:
//   - b: the key table
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithBindings(b input.Bindings) SessionBuilderOption {
	return func(s *session) {
		s.bindings = b
	}
}

// WithTitleSink sends the status text to sink, prefixed with baseTitle when it is not empty.
//
// Parameters:
//   - sink: the title receiver, usually the window
//   - baseTitle: text placed before the status
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithTitleSink(sink TitleSink, baseTitle string) SessionBuilderOption {
	return func(s *session) {
		s.title = sink
		s.baseTitle = baseTitle
	}
}

// WithQuitHook sets the function the Quit command calls.
//
// Parameters:
//   - hook: usually the engine's Quit
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithQuitHook(hook func()) SessionBuilderOption {
	return func(s *session) {
		s.onQuit = hook
	}
}

// WithFullScreenHook sets the function the FullScreen and Windowed commands call.
//
// Parameters:
//   - hook: receives true for full screen and false for windowed
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithFullScreenHook(hook func(fullScreen bool)) SessionBuilderOption {
	return func(s *session) {
		s.onFullScreen = hook
	}
}
