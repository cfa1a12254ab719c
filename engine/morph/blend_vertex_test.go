package morph

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/flywave/go3d/vec3"
)

func approxVec(a, b vec3.T) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func TestLayoutMatchesStride(t *testing.T) {
	if Stride != 72 {
		t.Fatalf("Stride = %d, want 72", Stride)
	}
	var end uint64
	for i, attr := range Layout {
		if attr.Location != uint32(i) {
			t.Errorf("Layout[%d].Location = %d, want %d", i, attr.Location, i)
		}
		if attr.Offset != end {
			t.Errorf("Layout[%d].Offset = %d, want %d", i, attr.Offset, end)
		}
		end = attr.Offset + uint64(attr.Components*4)
	}
	if end != Stride {
		t.Errorf("Layout covers %d bytes, want %d", end, Stride)
	}
}

func TestMarshalOffsets(t *testing.T) {
	v := BlendVertex{
		Position:   vec3.T{1, 2, 3},
		Normal:     vec3.T{4, 5, 6},
		PosDeltaA:  vec3.T{7, 8, 9},
		NormDeltaA: vec3.T{10, 11, 12},
		PosDeltaB:  vec3.T{13, 14, 15},
		NormDeltaB: vec3.T{16, 17, 18},
	}
	buf := Marshal([]BlendVertex{{}, v})
	if len(buf) != 2*Stride {
		t.Fatalf("len(Marshal()) = %d, want %d", len(buf), 2*Stride)
	}
	for i := 0; i < FloatsPerVertex; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[Stride+i*4:]))
		if got != float32(i+1) {
			t.Errorf("float %d = %v, want %v", i, got, i+1)
		}
	}
	for i, b := range buf[:Stride] {
		if b != 0 {
			t.Fatalf("zero vertex byte %d = %d, want 0", i, b)
		}
	}
}

func TestBlend(t *testing.T) {
	sqrtHalf := float32(1 / math.Sqrt2)
	v := BlendVertex{
		Position:   vec3.T{0, 0, 0},
		Normal:     vec3.T{0, 0, 1},
		PosDeltaA:  vec3.T{1, 0, 0},
		NormDeltaA: vec3.T{1, 0, -1},
		PosDeltaB:  vec3.T{0, 2, 0},
		NormDeltaB: vec3.T{0, 0, -2},
	}

	tests := []struct {
		name    string
		a, b    float32
		wantPos vec3.T
		wantNrm vec3.T
	}{
		{name: "rest", a: 0, b: 0, wantPos: vec3.T{0, 0, 0}, wantNrm: vec3.T{0, 0, 1}},
		{name: "full A", a: 1, b: 0, wantPos: vec3.T{1, 0, 0}, wantNrm: vec3.T{1, 0, 0}},
		{name: "half both", a: 0.5, b: 0.5, wantPos: vec3.T{0.5, 1, 0}, wantNrm: vec3.T{sqrtHalf, 0, -sqrtHalf}},
		{name: "collapsed normal", a: 0, b: 0.5, wantPos: vec3.T{0, 1, 0}, wantNrm: vec3.T{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, nrm := Blend(v, tt.a, tt.b)
			if !approxVec(pos, tt.wantPos) {
				t.Errorf("position = %v, want %v", pos, tt.wantPos)
			}
			if !approxVec(nrm, tt.wantNrm) {
				t.Errorf("normal = %v, want %v", nrm, tt.wantNrm)
			}
		})
	}

	if v.Position != (vec3.T{}) || v.Normal != (vec3.T{0, 0, 1}) {
		t.Errorf("Blend modified its input: %+v", v)
	}
}

func TestBounds(t *testing.T) {
	if got := Bounds(nil); got != (vec3.Box{}) {
		t.Errorf("Bounds(nil) = %v, want zero box", got)
	}

	vertices := []BlendVertex{
		{Position: vec3.T{1, -1, 0}, PosDeltaA: vec3.T{100, 100, 100}},
		{Position: vec3.T{-2, 3, 0.5}},
		{Position: vec3.T{0, 0, -4}},
	}
	got := Bounds(vertices)
	want := vec3.Box{Min: vec3.T{-2, -1, -4}, Max: vec3.T{1, 3, 0.5}}
	if got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestBlendedBounds(t *testing.T) {
	if got := BlendedBounds(nil, 1, 1); got != (vec3.Box{}) {
		t.Errorf("BlendedBounds(nil) = %v, want zero box", got)
	}

	vertices := []BlendVertex{
		{Position: vec3.T{1, -1, 0}, PosDeltaA: vec3.T{2, 0, 0}},
		{Position: vec3.T{-2, 3, 0.5}, PosDeltaB: vec3.T{0, 0, -3}},
	}
	if got, want := BlendedBounds(vertices, 0, 0), Bounds(vertices); got != want {
		t.Errorf("BlendedBounds(0, 0) = %v, want base bounds %v", got, want)
	}

	got := BlendedBounds(vertices, 0.5, 1)
	want := vec3.Box{Min: vec3.T{-2, -1, -2.5}, Max: vec3.T{2, 3, 0}}
	if !approxVec(got.Min, want.Min) || !approxVec(got.Max, want.Max) {
		t.Errorf("BlendedBounds(0.5, 1) = %v, want %v", got, want)
	}
}
