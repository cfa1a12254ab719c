package light

import (
	"github.com/go-gl/mathgl/mgl32"
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	position mgl32.Vec3
	ambient  mgl32.Vec3
	diffuse  mgl32.Vec3
	specular mgl32.Vec3
	enabled  bool
}

// Light defines the interface for the point light used by the morph shader's
// ambient, diffuse and specular terms.
//
// The light lives in world space. GPU moves it into the eye space the fragment shader works in.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Ambient returns the ambient intensity (La).
	//
	// Returns:
	//   - mgl32.Vec3: RGB ambient intensity
	Ambient() mgl32.Vec3

	// Diffuse returns the diffuse intensity (Ld).
	//
	// Returns:
	//   - mgl32.Vec3: RGB diffuse intensity
	Diffuse() mgl32.Vec3

	// Specular returns the specular intensity (Ls).
	//
	// Returns:
	//   - mgl32.Vec3: RGB specular intensity
	Specular() mgl32.Vec3

	// Enabled reports whether the light contributes to shading.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetPosition moves the light.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position mgl32.Vec3)

	// SetEnabled enables or disables the light. A disabled light uploads zero intensities.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// GPU converts the light into its uniform representation, moving the position into
	// eye space with the given view matrix.
	//
	// Parameters:
	//   - view: the camera view matrix
	//
	// Returns:
	//   - GPULight: the uniform data
	GPU(view mgl32.Mat4) GPULight
}

var _ Light = &lightImpl{}

// NewLight creates a new point light at (2, 20, 2) with ambient 0.1, diffuse 1.0 and
// specular 0.9 on every channel, then applies the given options.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		position: mgl32.Vec3{2, 20, 2},
		ambient:  mgl32.Vec3{0.1, 0.1, 0.1},
		diffuse:  mgl32.Vec3{1, 1, 1},
		specular: mgl32.Vec3{0.9, 0.9, 0.9},
		enabled:  true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Ambient() mgl32.Vec3 {
	return l.ambient
}

func (l *lightImpl) Diffuse() mgl32.Vec3 {
	return l.diffuse
}

func (l *lightImpl) Specular() mgl32.Vec3 {
	return l.specular
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(position mgl32.Vec3) {
	l.position = position
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) GPU(view mgl32.Mat4) GPULight {
	var g GPULight
	g.Position = view.Mul4x1(l.position.Vec4(1))
	if !l.enabled {
		return g
	}
	g.Ambient = l.ambient.Vec4(0)
	g.Diffuse = l.diffuse.Vec4(0)
	g.Specular = l.specular.Vec4(0)
	return g
}
