package material

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MaterialBuilderOption is a functional option for configuring a Material during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the material identifier.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor is an option builder that sets the base colour.
//
// Parameters:
//   - r, g, b: the colour channels in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the colour option to a material
func WithColor(r, g, b float32) MaterialBuilderOption {
	return func(m *material) {
		m.color = mgl32.Vec3{r, g, b}
	}
}

// WithCoefficients is an option builder that sets the Phong reflection coefficients.
//
// Parameters:
//   - ka: ambient coefficient
//   - kd: diffuse coefficient
//   - ks: specular coefficient
//
// Returns:
//   - MaterialBuilderOption: a function that applies the coefficients to a material
func WithCoefficients(ka, kd, ks float32) MaterialBuilderOption {
	return func(m *material) {
		m.ka, m.kd, m.ks = ka, kd, ks
	}
}

// WithShininess is an option builder that sets the specular exponent.
//
// Parameters:
//   - shininess: the exponent, ignored unless positive
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shininess option to a material
func WithShininess(shininess float32) MaterialBuilderOption {
	return func(m *material) {
		if shininess > 0 {
			m.shininess = shininess
		}
	}
}
