package loader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/flywave/go3d/vec3"
	"github.com/qmuntal/gltf"
)

const quadOBJ = `# unit quad
o Quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vn 0 0 1
s off
usemtl skin
f 1//1 2//1 3//1 4//1
`

func TestLoadReaderQuadFan(t *testing.T) {
	l := NewLoader()
	defer l.Close()

	m, err := l.LoadReader("quad.obj", strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if m.Name != "Quad" {
		t.Errorf("Name = %q, want %q", m.Name, "Quad")
	}
	if len(m.Vertices) != 4 || len(m.Normals) != 1 {
		t.Fatalf("got %d vertices %d normals, want 4 and 1", len(m.Vertices), len(m.Normals))
	}
	want := []morph.Face{
		{Vertex: [3]uint32{0, 1, 2}, Normal: [3]uint32{0, 0, 0}},
		{Vertex: [3]uint32{0, 2, 3}, Normal: [3]uint32{0, 0, 0}},
	}
	if len(m.Faces) != len(want) {
		t.Fatalf("len(Faces) = %d, want %d", len(m.Faces), len(want))
	}
	for i := range want {
		if m.Faces[i] != want[i] {
			t.Errorf("Faces[%d] = %+v, want %+v", i, m.Faces[i], want[i])
		}
	}
}

func TestLoadReaderCornerForms(t *testing.T) {
	tests := []struct {
		name  string
		face  string
		wantV [3]uint32
		wantN [3]uint32
	}{
		{name: "v", face: "f 1 2 3", wantV: [3]uint32{0, 1, 2}, wantN: [3]uint32{2, 3, 4}},
		{name: "v/vt", face: "f 1/1 2/1 3/1", wantV: [3]uint32{0, 1, 2}, wantN: [3]uint32{2, 3, 4}},
		{name: "v//vn", face: "f 1//2 2//2 3//1", wantV: [3]uint32{0, 1, 2}, wantN: [3]uint32{1, 1, 0}},
		{name: "v/vt/vn", face: "f 1/1/1 2/1/1 3/1/2", wantV: [3]uint32{0, 1, 2}, wantN: [3]uint32{0, 0, 1}},
		{name: "negative", face: "f -3//-2 -2//-1 -1//-1", wantV: [3]uint32{0, 1, 2}, wantN: [3]uint32{0, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\nvn 0 0 -1\n" + tt.face + "\n"
			l := NewLoader()
			defer l.Close()

			m, err := l.LoadReader(tt.name, strings.NewReader(src))
			if err != nil {
				t.Fatalf("LoadReader() error = %v", err)
			}
			if len(m.Faces) != 1 {
				t.Fatalf("len(Faces) = %d, want 1", len(m.Faces))
			}
			if m.Faces[0].Vertex != tt.wantV {
				t.Errorf("Vertex = %v, want %v", m.Faces[0].Vertex, tt.wantV)
			}
			if m.Faces[0].Normal != tt.wantN {
				t.Errorf("Normal = %v, want %v", m.Faces[0].Normal, tt.wantN)
			}
		})
	}
}

func TestLoadReaderComputesNormals(t *testing.T) {
	src := "v 0 0 0\nv 2 0 0\nv 0 2 0\nv 0 0 -2\nf 1 2 3\nf 1 2 4\n"
	l := NewLoader()
	defer l.Close()

	m, err := l.LoadReader("bent", strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if len(m.Normals) != len(m.Vertices) {
		t.Fatalf("len(Normals) = %d, want one per vertex (%d)", len(m.Normals), len(m.Vertices))
	}
	for i, f := range m.Faces {
		if f.Normal != f.Vertex {
			t.Errorf("face %d Normal = %v, want mirrored %v", i, f.Normal, f.Vertex)
		}
	}

	// vertex 2 (index 2) only touches the +z face, vertex 3 only the +y face
	assertVec(t, "normal 2", m.Normals[2], vec3.T{0, 0, 1})
	assertVec(t, "normal 3", m.Normals[3], vec3.T{0, 1, 0})
	// shared vertices average two equal-area faces
	s := float32(1 / math.Sqrt2)
	assertVec(t, "normal 0", m.Normals[0], vec3.T{0, s, s})
	for i, n := range m.Normals {
		if length := n.Length(); math.Abs(float64(length)-1) > 1e-5 {
			t.Errorf("normal %d length = %v, want 1", i, length)
		}
	}
}

func TestLoadReaderMixedNormals(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 1 0 0\nf 1//1 2 3\n"
	l := NewLoader()
	defer l.Close()

	m, err := l.LoadReader("mixed", strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if len(m.Normals) != 1+3 {
		t.Fatalf("len(Normals) = %d, want file normal plus 3 computed", len(m.Normals))
	}
	if want := [3]uint32{0, 2, 3}; m.Faces[0].Normal != want {
		t.Errorf("Normal = %v, want %v", m.Faces[0].Normal, want)
	}
	assertVec(t, "computed", m.Normals[2], vec3.T{0, 0, 1})
}

func TestLoadReaderErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
		wantErr  error
	}{
		{name: "two corners", src: "v 0 0 0\nv 1 0 0\nf 1 2\n", wantLine: 3, wantErr: ErrInvalidFace},
		{name: "zero index", src: "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", wantLine: 4, wantErr: ErrInvalidIndex},
		{name: "forward reference", src: "v 0 0 0\nf 1 2 3\nv 1 0 0\nv 0 1 0\n", wantLine: 2, wantErr: ErrInvalidIndex},
		{name: "negative too far", src: "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -4 -2 -1\n", wantLine: 4, wantErr: ErrInvalidIndex},
		{name: "bad normal", src: "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n", wantLine: 4, wantErr: ErrInvalidIndex},
		{name: "garbage index", src: "v 0 0 0\nv 1 0 0\nv 0 1 0\nf a b c\n", wantLine: 4, wantErr: ErrInvalidIndex},
		{name: "no faces", src: "v 0 0 0\n", wantLine: 0, wantErr: ErrNoFaces},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader()
			defer l.Close()

			_, err := l.LoadReader("broken.obj", strings.NewReader(tt.src))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
			if pe.File != "broken.obj" || pe.Line != tt.wantLine {
				t.Errorf("located at %s:%d, want broken.obj:%d", pe.File, pe.Line, tt.wantLine)
			}
		})
	}

	t.Run("bad coordinate", func(t *testing.T) {
		l := NewLoader()
		defer l.Close()

		_, err := l.LoadReader("x.obj", strings.NewReader("v 0 zero 0\n"))
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Line != 1 {
			t.Errorf("error = %v, want ParseError on line 1", err)
		}
	})

	view := uint32(0)
	gltfTests := []struct {
		name   string
		buffer []byte
		views  []*gltf.BufferView
		acc    *gltf.Accessor
	}{
		{
			name:   "empty accessor past its buffer",
			buffer: make([]byte, 4),
			views:  []*gltf.BufferView{{ByteLength: 4}},
			acc:    &gltf.Accessor{BufferView: &view, ByteOffset: 64, ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec3},
		},
		{
			name:   "accessor into the next view",
			buffer: make([]byte, 48),
			views:  []*gltf.BufferView{{ByteLength: 24}, {ByteOffset: 24, ByteLength: 24}},
			acc:    &gltf.Accessor{BufferView: &view, ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec3, Count: 4},
		},
		{
			name:   "view past its buffer",
			buffer: make([]byte, 12),
			views:  []*gltf.BufferView{{ByteOffset: 8, ByteLength: 12}},
			acc:    &gltf.Accessor{BufferView: &view, ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec3, Count: 1},
		},
	}
	for _, tt := range gltfTests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &gltf.Document{
				Buffers:     []*gltf.Buffer{{ByteLength: uint32(len(tt.buffer)), Data: tt.buffer}},
				BufferViews: tt.views,
				Accessors:   []*gltf.Accessor{tt.acc},
				Meshes: []*gltf.Mesh{{Primitives: []*gltf.Primitive{{
					Attributes: gltf.Attribute{"POSITION": 0},
					Mode:       gltf.PrimitiveTriangles,
				}}}},
			}
			_, err := meshFromDocument("broken.glb", doc)
			var pe *ParseError
			if !errors.As(err, &pe) || pe.File != "broken.glb" {
				t.Errorf("error = %v, want ParseError for broken.glb", err)
			}
		})
	}
}

func TestLoadCachesAndRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader()
	defer l.Close()

	first, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := l.Load(path)
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if first != second {
		t.Errorf("second Load() returned a new mesh, want cached pointer")
	}
	if got := l.Get(path); got != first {
		t.Errorf("Get() = %p, want %p", got, first)
	}
	if len(l.Meshes()) != 1 {
		t.Errorf("len(Meshes()) = %d, want 1", len(l.Meshes()))
	}

	if _, err := l.Load(filepath.Join(dir, "model.fbx")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load(.fbx) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := l.Load(filepath.Join(dir, "missing.obj")); err == nil {
		t.Errorf("Load(missing) error = nil, want error")
	}
}

func TestWithMesh(t *testing.T) {
	m := &morph.Mesh{Name: "preset"}
	l := NewLoader(WithMesh("base.obj", m))
	defer l.Close()

	got, err := l.Load("base.obj")
	if err != nil || got != m {
		t.Errorf("Load() = %p, %v, want preset mesh", got, err)
	}
}

func TestLoadPoses(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	base := write("base.obj", quadOBJ)
	a := write("a.obj", strings.Replace(quadOBJ, "v 1 1 0", "v 1 1 0.5", 1))
	b := write("b.obj", strings.Replace(quadOBJ, "v 0 1 0", "v 0 1 -0.5", 1))

	for _, workers := range []int{1, 3} {
		l := NewLoader(WithWorkers(workers))
		set, err := l.LoadPoses(base, a, b)
		l.Close()
		if err != nil {
			t.Fatalf("workers=%d: LoadPoses() error = %v", workers, err)
		}
		if set.Base == nil || set.PoseA == nil || set.PoseB == nil {
			t.Fatalf("workers=%d: incomplete PoseSet %+v", workers, set)
		}
		if set.PoseA.Vertices[2][2] != 0.5 || set.PoseB.Vertices[3][2] != -0.5 {
			t.Errorf("workers=%d: poses loaded into the wrong slots", workers)
		}
		if _, err := morph.Bake(set.Base, set.PoseA, set.PoseB); err != nil {
			t.Errorf("workers=%d: Bake() error = %v", workers, err)
		}
	}

	l := NewLoader()
	defer l.Close()
	_, err := l.LoadPoses(base, filepath.Join(dir, "nope.obj"), b)
	if err == nil || !strings.Contains(err.Error(), "pose A") {
		t.Errorf("LoadPoses() error = %v, want pose A failure", err)
	}
}

func TestLoadReaderGLB(t *testing.T) {
	positions := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0}
	indices := []uint16{0, 1, 2, 2, 1, 3}

	var data bytes.Buffer
	binary.Write(&data, binary.LittleEndian, positions)
	posLen := uint32(data.Len())
	binary.Write(&data, binary.LittleEndian, indices)

	posView, idxView := uint32(0), uint32(1)
	posAcc, idxAcc := uint32(0), uint32(1)
	doc := &gltf.Document{
		Asset:   gltf.Asset{Version: "2.0"},
		Buffers: []*gltf.Buffer{{ByteLength: uint32(data.Len()), Data: data.Bytes()}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: posLen},
			{Buffer: 0, ByteOffset: posLen, ByteLength: uint32(len(indices) * 2)},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: &posView, ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec3, Count: 4},
			{BufferView: &idxView, ComponentType: gltf.ComponentUshort, Type: gltf.AccessorScalar, Count: uint32(len(indices))},
		},
		Meshes: []*gltf.Mesh{{
			Name: "sheet",
			Primitives: []*gltf.Primitive{{
				Attributes: gltf.Attribute{"POSITION": posAcc},
				Indices:    &idxAcc,
				Mode:       gltf.PrimitiveTriangles,
			}},
		}},
	}

	var glb bytes.Buffer
	enc := gltf.NewEncoder(&glb)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	l := NewLoader()
	defer l.Close()
	m, err := l.LoadReader("sheet.glb", &glb)
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if m.Name != "sheet" || len(m.Vertices) != 4 || len(m.Faces) != 2 {
		t.Fatalf("got %q with %d vertices %d faces, want sheet/4/2", m.Name, len(m.Vertices), len(m.Faces))
	}
	if want := [3]uint32{2, 1, 3}; m.Faces[1].Vertex != want {
		t.Errorf("Faces[1].Vertex = %v, want %v", m.Faces[1].Vertex, want)
	}
	assertVec(t, "vertex 3", m.Vertices[3], vec3.T{1, 1, 0})
	assertVec(t, "computed normal", m.Normals[0], vec3.T{0, 0, 1})
}

func assertVec(t *testing.T, label string, got, want vec3.T) {
	t.Helper()
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > 1e-5 {
			t.Errorf("%s = %v, want %v", label, got, want)
			return
		}
	}
}
