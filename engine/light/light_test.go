package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultLight(t *testing.T) {
	l := NewLight()
	if l.Position() != (mgl32.Vec3{2, 20, 2}) {
		t.Errorf("Position() = %v, want (2, 20, 2)", l.Position())
	}

	g := l.GPU(mgl32.Ident4())
	if g.Position != [4]float32{2, 20, 2, 1} {
		t.Errorf("GPU position = %v, want [2 20 2 1]", g.Position)
	}
	if g.Ambient[0] != 0.1 || g.Diffuse[1] != 1 || g.Specular[2] != 0.9 {
		t.Errorf("GPU intensities = %v %v %v, want 0.1 / 1 / 0.9", g.Ambient, g.Diffuse, g.Specular)
	}
	if n := len(g.Marshal()); n != 64 {
		t.Errorf("len(Marshal()) = %d, want 64", n)
	}
}

func TestLightEyeSpace(t *testing.T) {
	l := NewLight(WithPosition(0, 0, 0))
	g := l.GPU(mgl32.Translate3D(1, 2, 3))
	if g.Position != [4]float32{1, 2, 3, 1} {
		t.Errorf("GPU position = %v, want [1 2 3 1]", g.Position)
	}
}

func TestDisabledLight(t *testing.T) {
	l := NewLight(WithIntensities(0.2, 0.5, 0.7))
	l.SetEnabled(false)

	g := l.GPU(mgl32.Ident4())
	var zero [4]float32
	if g.Ambient != zero || g.Diffuse != zero || g.Specular != zero {
		t.Errorf("disabled light uploads %v %v %v, want zeros", g.Ambient, g.Diffuse, g.Specular)
	}
	if l.Enabled() {
		t.Error("Enabled() = true after SetEnabled(false)")
	}
}
