package exporter

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-morph/engine/loader"
	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/flywave/go3d/vec3"
	"github.com/qmuntal/gltf"
)

// bakedTriangle returns one baked triangle whose poses lift it along z.
func bakedTriangle() []morph.BlendVertex {
	corners := []vec3.T{{0, 0, 0}, {2, 0, 0}, {0, 3, 0}}
	out := make([]morph.BlendVertex, len(corners))
	for i, p := range corners {
		out[i] = morph.BlendVertex{
			Position:   p,
			Normal:     vec3.T{0, 0, 1},
			PosDeltaA:  vec3.T{0, 0, float32(i + 1)},
			NormDeltaA: vec3.T{0, 0.5, 0},
			PosDeltaB:  vec3.T{0, 0, -float32(i + 1)},
			NormDeltaB: vec3.T{0, -0.5, 0},
		}
	}
	return out
}

func TestBuildDocumentErrors(t *testing.T) {
	if _, err := BuildDocument(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("BuildDocument(nil) error = %v, want ErrEmpty", err)
	}
	if _, err := BuildDocument(make([]morph.BlendVertex, 4)); !errors.Is(err, ErrNotTriangles) {
		t.Errorf("BuildDocument(4 vertices) error = %v, want ErrNotTriangles", err)
	}
}

func TestBuildDocumentStructure(t *testing.T) {
	vertices := bakedTriangle()
	doc, err := BuildDocument(vertices,
		WithName("fighter"),
		WithWeights(0.25, 0.5),
		WithTargetNames("left", "right"),
	)
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}

	if len(doc.Buffers) != 1 || doc.Buffers[0].ByteLength != uint32(6*len(vertices)*12) {
		t.Fatalf("buffers = %d, want one buffer of %d bytes", len(doc.Buffers), 6*len(vertices)*12)
	}
	if len(doc.Accessors) != 6 || len(doc.BufferViews) != 6 {
		t.Fatalf("got %d accessors and %d views, want 6 and 6", len(doc.Accessors), len(doc.BufferViews))
	}
	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Fatalf("want a single mesh with a single primitive")
	}

	mesh := doc.Meshes[0]
	prim := mesh.Primitives[0]
	if mesh.Name != "fighter" {
		t.Errorf("mesh name = %q, want fighter", mesh.Name)
	}
	if prim.Indices != nil {
		t.Errorf("primitive is indexed, want a plain triangle list")
	}
	if len(prim.Targets) != 2 {
		t.Fatalf("len(Targets) = %d, want 2", len(prim.Targets))
	}
	if prim.Targets[0]["POSITION"] != 2 || prim.Targets[1]["NORMAL"] != 5 {
		t.Errorf("Targets = %v, want POSITION 2 then NORMAL 5", prim.Targets)
	}
	if len(mesh.Weights) != 2 || mesh.Weights[0] != 0.25 || mesh.Weights[1] != 0.5 {
		t.Errorf("Weights = %v, want [0.25 0.5]", mesh.Weights)
	}
	extras, ok := mesh.Extras.(map[string]any)
	if !ok {
		t.Fatalf("Extras = %T, want map", mesh.Extras)
	}
	if names, _ := extras["targetNames"].([]string); len(names) != 2 || names[0] != "left" || names[1] != "right" {
		t.Errorf("targetNames = %v, want [left right]", extras["targetNames"])
	}

	tests := []struct {
		accessor int
		min, max []float32
	}{
		{accessor: 0, min: []float32{0, 0, 0}, max: []float32{2, 3, 0}},
		{accessor: 2, min: []float32{0, 0, 1}, max: []float32{0, 0, 3}},
		{accessor: 4, min: []float32{0, 0, -3}, max: []float32{0, 0, -1}},
	}
	for _, tt := range tests {
		acc := doc.Accessors[tt.accessor]
		for k := 0; k < 3; k++ {
			if len(acc.Min) != 3 || acc.Min[k] != tt.min[k] || acc.Max[k] != tt.max[k] {
				t.Errorf("accessor %d min/max = %v/%v, want %v/%v", tt.accessor, acc.Min, acc.Max, tt.min, tt.max)
				break
			}
		}
	}
	if doc.Accessors[1].Min != nil {
		t.Errorf("normal accessor has min %v, want none", doc.Accessors[1].Min)
	}
}

func TestWriteGLBRoundTrip(t *testing.T) {
	vertices := bakedTriangle()
	doc, err := BuildDocument(vertices)
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}

	var out bytes.Buffer
	n, err := WriteGLB(&out, doc)
	if err != nil {
		t.Fatalf("WriteGLB() error = %v", err)
	}
	if n != out.Len() || n%4 != 0 {
		t.Errorf("wrote %d bytes (buffer %d), want a 4-byte multiple", n, out.Len())
	}
	if magic := string(out.Bytes()[:4]); magic != "glTF" {
		t.Errorf("magic = %q, want glTF", magic)
	}
	if total := binary.LittleEndian.Uint32(out.Bytes()[8:12]); int(total) != n {
		t.Errorf("header length = %d, want the %d bytes written", total, n)
	}

	decoded := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(out.Bytes())).Decode(decoded); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(decoded.Meshes) != 1 || len(decoded.Meshes[0].Primitives[0].Targets) != 2 {
		t.Fatalf("decoded document lost its morph targets")
	}

	l := loader.NewLoader()
	defer l.Close()
	m, err := l.LoadReader("triangle.glb", bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if len(m.Faces) != 1 || len(m.Vertices) != 3 {
		t.Fatalf("loaded %d faces %d vertices, want 1 and 3", len(m.Faces), len(m.Vertices))
	}
	if m.Vertices[2] != vertices[2].Position || m.Normals[0] != vertices[0].Normal {
		t.Errorf("loaded base pose %v / %v, want %v / %v", m.Vertices[2], m.Normals[0], vertices[2].Position, vertices[0].Normal)
	}
}

func TestWriteRaw(t *testing.T) {
	vertices := bakedTriangle()
	var out bytes.Buffer
	n, err := WriteRaw(&out, vertices)
	if err != nil {
		t.Fatalf("WriteRaw() error = %v", err)
	}
	if n != len(vertices)*morph.Stride {
		t.Fatalf("wrote %d bytes, want %d", n, len(vertices)*morph.Stride)
	}
	// third float of posDeltaA on the last vertex
	off := 2*morph.Stride + 24 + 8
	if got := math.Float32frombits(binary.LittleEndian.Uint32(out.Bytes()[off:])); got != 3 {
		t.Errorf("posDeltaA.z of vertex 2 = %v, want 3", got)
	}
}
