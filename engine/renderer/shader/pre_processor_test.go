package shader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-morph/engine/camera"
	"github.com/Carmen-Shannon/oxy-morph/engine/light"
)

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    *Annotation
		wantErr bool
	}{
		{name: "plain code", line: "let x = 1.0;"},
		{name: "plain comment", line: "// just a comment"},
		{name: "prefix outside comment", line: "let s = \"@oxy:include light\";"},
		{
			name: "include",
			line: "  //@oxy:include light",
			want: &Annotation{Type: annotationTypeInclude, Args: []AnnotationArg{AnnotationArgLight}},
		},
		{
			name: "group",
			line: "//@oxy:group 1 2 storage_uniform sun light",
			want: &Annotation{Type: AnnotationTypeBindingGroup, Args: []AnnotationArg{annotationArgStorageTypeUniform, "sun", AnnotationArgLight}},
		},
		{name: "empty", line: "//@oxy:", wantErr: true},
		{name: "unknown type", line: "//@oxy:provider light", wantErr: true},
		{name: "include arity", line: "//@oxy:include light material", wantErr: true},
		{name: "include unknown struct", line: "//@oxy:include skeleton", wantErr: true},
		{name: "group arity", line: "//@oxy:group 0 0 storage_uniform light", wantErr: true},
		{name: "group bad number", line: "//@oxy:group zero 0 storage_uniform l light", wantErr: true},
		{name: "group bad binding", line: "//@oxy:group 0 x storage_uniform l light", wantErr: true},
		{name: "group bad address space", line: "//@oxy:group 0 0 private l light", wantErr: true},
		{name: "group storage buffer", line: "//@oxy:group 0 0 storage_read l light", wantErr: true},
		{name: "group unknown struct", line: "//@oxy:group 0 0 storage_uniform l sky", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnnotation(tt.line, 7)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseAnnotation(%q) error = nil, want error", tt.line)
				}
				if !strings.HasPrefix(err.Error(), "line 7:") {
					t.Errorf("error %q does not carry the line number", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAnnotation(%q) error = %v", tt.line, err)
			}
			if tt.want == nil {
				if got != nil {
					t.Fatalf("parseAnnotation(%q) = %+v, want nil", tt.line, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("parseAnnotation(%q) = nil", tt.line)
			}
			if got.Type != tt.want.Type || got.Line != 7 {
				t.Errorf("Type/Line = %q/%d, want %q/7", got.Type, got.Line, tt.want.Type)
			}
			if strings.Join(argStrings(got.Args), ",") != strings.Join(argStrings(tt.want.Args), ",") {
				t.Errorf("Args = %v, want %v", got.Args, tt.want.Args)
			}
			if got.Type == AnnotationTypeBindingGroup && (got.Group == nil || got.Binding == nil || *got.Group != 1 || *got.Binding != 2) {
				t.Errorf("Group/Binding not parsed: %+v", got)
			}
		})
	}
}

func argStrings(args []AnnotationArg) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = string(a)
	}
	return out
}

func TestProcessMorphSource(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process(MorphSource)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if strings.Contains(out, "@oxy:") {
		t.Errorf("processed source still contains annotations")
	}
	for _, want := range []string{
		"struct VertexInput",
		"struct TransformUniform",
		"struct MorphWeights",
		"struct Light",
		"struct Material",
		"@group(0) @binding(0) var<uniform> transform: TransformUniform;",
		"@group(0) @binding(1) var<uniform> morph: MorphWeights;",
		"@group(0) @binding(2) var<uniform> light: Light;",
		"@group(0) @binding(3) var<uniform> material: Material;",
		"fn vs_main",
		"fn fs_main",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("processed source missing %q", want)
		}
	}

	decls := pp.Declarations()
	wantTypes := []AnnotationArg{AnnotationArgTransform, AnnotationArgMorphWeights, AnnotationArgLight, AnnotationArgMaterial}
	if len(decls) != len(wantTypes) {
		t.Fatalf("len(Declarations()) = %d, want %d", len(decls), len(wantTypes))
	}
	for i, d := range decls {
		if d.StructType() != wantTypes[i] {
			t.Errorf("decl %d StructType() = %q, want %q", i, d.StructType(), wantTypes[i])
		}
		if *d.Group != 0 || *d.Binding != i {
			t.Errorf("decl %d slot = (%d, %d), want (0, %d)", i, *d.Group, *d.Binding, i)
		}
	}
}

func TestProcessResetsDeclarations(t *testing.T) {
	pp := NewPreProcessor()
	if _, err := pp.Process(MorphSource); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if _, err := pp.Process("//@oxy:group 0 0 storage_uniform l light\n"); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := len(pp.Declarations()); got != 1 {
		t.Errorf("len(Declarations()) = %d after second Process, want 1", got)
	}
}

func TestProcessRejectsDuplicateSlot(t *testing.T) {
	src := "//@oxy:group 0 0 storage_uniform a light\n//@oxy:group 0 0 storage_uniform b material\n"
	_, err := NewPreProcessor().Process(src)
	if err == nil || !strings.Contains(err.Error(), "already declared on line 1") {
		t.Errorf("Process() error = %v, want duplicate slot error", err)
	}
}

func TestProcessRejectsVertexBinding(t *testing.T) {
	_, err := NewPreProcessor().Process("//@oxy:group 0 0 storage_uniform v blend_vertex")
	if err == nil {
		t.Errorf("Process() error = nil, want error for vertex input bound as buffer")
	}
}

func TestBufferSize(t *testing.T) {
	pp := NewPreProcessor()
	var tu camera.GPUTransformUniform
	var gl light.GPULight
	if got := pp.BufferSize(AnnotationArgTransform); got != uint64(tu.Size()) || got != 192 {
		t.Errorf("BufferSize(transform) = %d, want 192", got)
	}
	if got := pp.BufferSize(AnnotationArgLight); got != uint64(gl.Size()) || got != 64 {
		t.Errorf("BufferSize(light) = %d, want 64", got)
	}
	if got := pp.BufferSize(AnnotationArgMorphWeights); got != 16 {
		t.Errorf("BufferSize(morph_weights) = %d, want 16", got)
	}
	if got := pp.BufferSize(AnnotationArgMaterial); got != 48 {
		t.Errorf("BufferSize(material) = %d, want 48", got)
	}
	if got := pp.BufferSize("nope"); got != 0 {
		t.Errorf("BufferSize(unknown) = %d, want 0", got)
	}
}
