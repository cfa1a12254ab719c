package camera

import (
	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	eye    mgl32.Vec3
	target mgl32.Vec3
	up     mgl32.Vec3

	fov    float32 // degrees
	aspect float32
	near   float32
	far    float32

	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
}

// Camera defines the interface for a fixed look-at camera.
// The camera holds its eye, target and up vectors and perspective settings, and keeps the view
// and projection matrices current whenever one of them changes.
type Camera interface {
	// Eye returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Eye() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: the target position
	Target() mgl32.Vec3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetAspect sets the aspect ratio and recomputes the projection matrix.
	// Non-positive values are ignored.
	//
	// Parameters:
	//   - aspect: width divided by height
	SetAspect(aspect float32)

	// SetViewport derives the aspect ratio from a framebuffer size.
	// A zero height (minimised window) leaves the aspect unchanged.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	SetViewport(width, height int)

	// LookAt moves the camera and recomputes the view matrix.
	//
	// Parameters:
	//   - eye: the new camera position
	//   - target: the new look-at point
	//   - up: the new up vector
	LookAt(eye, target, up mgl32.Vec3)

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the world-to-eye matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix, with depth in [0, 1].
	//
	// Returns:
	//   - mgl32.Mat4: the eye-to-clip matrix
	ProjectionMatrix() mgl32.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera. Without options it looks from (0, 10, 40) at (0, 10, 0)
// with a 45 degree field of view, a near plane of 0.05 and a far plane of 350.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions to configure the Camera
//
// Returns:
//   - Camera: a new Camera instance
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		eye:    mgl32.Vec3{0, 10, 40},
		target: mgl32.Vec3{0, 10, 0},
		up:     mgl32.Vec3{0, 1, 0},
		fov:    45,
		aspect: 1024.0 / 720.0,
		near:   0.05,
		far:    350,
	}
	for _, opt := range options {
		opt(c)
	}
	c.updateView()
	c.updateProjection()
	return c
}

func (c *cameraImpl) Eye() mgl32.Vec3 {
	return c.eye
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.updateProjection()
}

func (c *cameraImpl) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.SetAspect(float32(width) / float32(height))
}

func (c *cameraImpl) LookAt(eye, target, up mgl32.Vec3) {
	c.eye, c.target, c.up = eye, target, up
	c.updateView()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) updateView() {
	c.viewMatrix = mgl32.LookAtV(c.eye, c.target, c.up)
}

func (c *cameraImpl) updateProjection() {
	c.projectionMatrix = common.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
}
