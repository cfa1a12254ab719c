// pre_processor.go implements the Oxy WGSL shader pre-processor. It scans shader
// source code for @oxy: annotations, replaces them with generated WGSL declarations
// or injected struct source, and collects a declarations list that the renderer uses
// to create and bind one uniform buffer per declaration.
//
// The pre-processor maintains two registries:
//   - structRegistry: maps AnnotationArg keys to embedded WGSL struct sources, their
//     resolved type names and the byte size of the matching Go GPU type.
//   - addressSpaceRegistry: maps address space argument keys to WGSL var<> syntax strings.
package shader

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-morph/engine/animator"
	"github.com/Carmen-Shannon/oxy-morph/engine/camera"
	"github.com/Carmen-Shannon/oxy-morph/engine/light"
	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer/material"
)

// MorphSource is the annotated WGSL source of the morph blending shader. It must be run
// through a PreProcessor before it is handed to the GPU.
//
//go:embed assets/morph.wgsl
var MorphSource string

// registryEntry pairs a WGSL struct source string (embedded from a .wgsl asset file)
// with the resolved WGSL type name used in generated @group/@binding declarations.
type registryEntry struct {
	// Source is the raw WGSL struct definition text injected by @oxy:include.
	Source string

	// Type is the WGSL type name emitted in @oxy:group declarations (e.g. "TransformUniform", "Light").
	Type string

	// Size is the byte size of the Go GPU type that fills a buffer bound to this struct.
	// Zero for types that are never bound as a buffer (vertex inputs).
	Size uint64
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// structRegistry maps struct type argument keys to their embedded WGSL source and type name.
	structRegistry map[AnnotationArg]registryEntry

	// addressSpaceRegistry maps address space argument keys to WGSL var<> syntax strings.
	addressSpaceRegistry map[AnnotationArg]string

	// declarations accumulates annotations of type AnnotationTypeBindingGroup during a
	// Process call. Reset at the start of each Process invocation.
	declarations []Annotation
}

// PreProcessor processes raw WGSL shader source code containing @oxy: annotations,
// replacing them with generated declarations or injected struct sources while collecting
// a declarations list for downstream resource wiring by the renderer.
type PreProcessor interface {
	// Process takes raw WGSL shader source code and pre-processes it by replacing
	// @oxy: annotations with their corresponding WGSL output. @oxy:include annotations
	// are replaced with embedded struct source text. @oxy:group annotations are replaced
	// with generated @group/@binding variable declarations.
	//
	// The declarations list is reset at the start of each call and can be retrieved
	// via Declarations() after Process returns.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code containing annotations to be processed
	//
	// Returns:
	//   - string: the processed WGSL shader source code with annotations replaced
	//   - error: an error if any annotation is malformed or a binding slot is declared twice
	Process(source string) (string, error)

	// Declarations returns the AnnotationTypeBindingGroup annotations collected during
	// the most recent call to Process, in source order.
	//
	// Returns:
	//   - []Annotation: the declarations collected during the last Process call
	Declarations() []Annotation

	// BufferSize returns the byte size of the GPU type registered for a struct key.
	//
	// Parameters:
	//   - structType: the struct type key (e.g. AnnotationArgLight)
	//
	// Returns:
	//   - uint64: the buffer size in bytes, or 0 when the key is unknown or not bindable
	BufferSize(structType AnnotationArg) uint64
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor with all registered struct types and
// address space mappings pre-populated.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	var (
		transform camera.GPUTransformUniform
		weights   animator.GPUMorphWeights
		lightData light.GPULight
		surface   material.GPUMaterial
	)
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgTransform:    {Source: camera.GPUTransformUniformSource, Type: "TransformUniform", Size: uint64(transform.Size())},
			AnnotationArgMorphWeights: {Source: animator.GPUMorphWeightsSource, Type: "MorphWeights", Size: uint64(weights.Size())},
			AnnotationArgLight:        {Source: light.GPULightSource, Type: "Light", Size: uint64(lightData.Size())},
			AnnotationArgMaterial:     {Source: material.GPUMaterialSource, Type: "Material", Size: uint64(surface.Size())},
			annotationArgBlendVertex:  {Source: morph.GPUBlendVertexSource, Type: "VertexInput"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	slots := make(map[[2]int]int)

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", i+1, a.Args[0])
			}
			out = append(out, entry.Source)
		case AnnotationTypeBindingGroup:
			slot := [2]int{*a.Group, *a.Binding}
			if prev, dup := slots[slot]; dup {
				return "", fmt.Errorf("line %d: @group(%d) @binding(%d) already declared on line %d", i+1, slot[0], slot[1], prev)
			}
			slots[slot] = i + 1

			entry := p.structRegistry[a.Args[2]]
			if entry.Size == 0 {
				return "", fmt.Errorf("line %d: struct %q cannot be bound as a buffer", i+1, a.Args[2])
			}
			addrSpace := p.addressSpaceRegistry[a.Args[0]]
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, addrSpace, a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		default:
			return "", fmt.Errorf("line %d: unknown annotation type %q", i+1, a.Type)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}

func (p *preProcessor) BufferSize(structType AnnotationArg) uint64 {
	return p.structRegistry[structType].Size
}
