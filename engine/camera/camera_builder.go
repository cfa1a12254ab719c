package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption is a functional option for configuring a Camera during construction.
type CameraBuilderOption func(*cameraImpl)

// WithEye sets the camera position.
//
// Parameters:
//   - eye: world-space camera position
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithEye(eye mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.eye = eye
	}
}

// WithTarget sets the look-at point.
//
// Parameters:
//   - target: world-space look-at point
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithTarget(target mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = target
	}
}

// WithUp sets the up vector.
//
// Parameters:
//   - up: the up direction
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithFov sets the vertical field of view.
//
// Parameters:
//   - degrees: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithFov(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = degrees
	}
}

// WithAspect sets the initial aspect ratio.
//
// Parameters:
//   - aspect: width divided by height
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithClipPlanes sets the near and far clipping planes.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}
