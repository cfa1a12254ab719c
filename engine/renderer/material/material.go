package material

import (
	"github.com/go-gl/mathgl/mgl32"
)

// material is the implementation of the Material interface.
type material struct {
	name      string
	color     mgl32.Vec3
	ka        float32
	kd        float32
	ks        float32
	shininess float32
}

// Material defines the interface for a Phong surface: a base colour and the ambient, diffuse
// and specular reflection coefficients plus a specular exponent.
//
// Surface properties are set at construction and are read-only through this interface.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Color retrieves the base RGB colour the coefficients scale.
	//
	// Returns:
	//   - mgl32.Vec3: the base colour
	Color() mgl32.Vec3

	// Ambient retrieves the ambient coefficient (Ka).
	//
	// Returns:
	//   - float32: Ka
	Ambient() float32

	// Diffuse retrieves the diffuse coefficient (Kd).
	//
	// Returns:
	//   - float32: Kd
	Diffuse() float32

	// Specular retrieves the specular coefficient (Ks).
	//
	// Returns:
	//   - float32: Ks
	Specular() float32

	// Shininess retrieves the specular exponent.
	//
	// Returns:
	//   - float32: the exponent
	Shininess() float32

	// GPU converts the material into its uniform representation.
	//
	// Returns:
	//   - GPUMaterial: the uniform data
	GPU() GPUMaterial
}

var _ Material = &material{}

// NewMaterial creates a white material with Ka 0.1, Kd 0.8, Ks 1.0 and a shininess of 1000,
// then applies the given options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		name:      "default",
		color:     mgl32.Vec3{1, 1, 1},
		ka:        0.1,
		kd:        0.8,
		ks:        1.0,
		shininess: 1000,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Color() mgl32.Vec3 {
	return m.color
}

func (m *material) Ambient() float32 {
	return m.ka
}

func (m *material) Diffuse() float32 {
	return m.kd
}

func (m *material) Specular() float32 {
	return m.ks
}

func (m *material) Shininess() float32 {
	return m.shininess
}

func (m *material) GPU() GPUMaterial {
	return GPUMaterial{
		Ambient:  m.color.Mul(m.ka).Vec4(0),
		Diffuse:  m.color.Mul(m.kd).Vec4(0),
		Specular: m.color.Mul(m.ks).Vec4(m.shininess),
	}
}
