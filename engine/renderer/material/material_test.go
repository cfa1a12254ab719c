package material

import (
	"testing"
)

func TestDefaultMaterialGPU(t *testing.T) {
	m := NewMaterial()
	g := m.GPU()

	tests := []struct {
		name string
		got  [4]float32
		want [4]float32
	}{
		{"ambient", g.Ambient, [4]float32{0.1, 0.1, 0.1, 0}},
		{"diffuse", g.Diffuse, [4]float32{0.8, 0.8, 0.8, 0}},
		{"specular", g.Specular, [4]float32{1, 1, 1, 1000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if n := len(g.Marshal()); n != 48 {
		t.Errorf("len(Marshal()) = %d, want 48", n)
	}
}

func TestMaterialOptions(t *testing.T) {
	m := NewMaterial(WithName("skin"), WithColor(1, 0.5, 0), WithCoefficients(0.2, 0.6, 0.4), WithShininess(32), WithShininess(-1))

	if m.Name() != "skin" {
		t.Errorf("Name() = %q, want skin", m.Name())
	}
	if m.Shininess() != 32 {
		t.Errorf("Shininess() = %v, want 32", m.Shininess())
	}
	g := m.GPU()
	if g.Diffuse != [4]float32{0.6, 0.3, 0, 0} {
		t.Errorf("Diffuse = %v, want [0.6 0.3 0 0]", g.Diffuse)
	}
}
