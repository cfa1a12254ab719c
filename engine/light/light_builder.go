package light

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = mgl32.Vec3{x, y, z}
	}
}

// WithIntensities is an option builder that sets the same ambient, diffuse and specular
// intensity on every colour channel.
//
// Parameters:
//   - ambient: La
//   - diffuse: Ld
//   - specular: Ls
//
// Returns:
//   - LightBuilderOption: a function that applies the intensities to a lightImpl
func WithIntensities(ambient, diffuse, specular float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.ambient = mgl32.Vec3{ambient, ambient, ambient}
		l.diffuse = mgl32.Vec3{diffuse, diffuse, diffuse}
		l.specular = mgl32.Vec3{specular, specular, specular}
	}
}

// WithColor is an option builder that tints the diffuse and specular terms.
//
// Parameters:
//   - r, g, b: the colour multiplier
//
// Returns:
//   - LightBuilderOption: a function that applies the colour to a lightImpl
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		tint := mgl32.Vec3{r, g, b}
		for i := range 3 {
			l.diffuse[i] *= tint[i]
			l.specular[i] *= tint[i]
		}
	}
}
