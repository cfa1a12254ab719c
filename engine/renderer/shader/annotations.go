// annotations.go defines the annotation types, argument constants, and parser for the
// Oxy WGSL shader pre-processor. Annotations are single-line WGSL comments prefixed
// with @oxy: that drive struct injection and uniform binding declaration. The parsed
// results are stored as Annotation values and consumed by the PreProcessor and the
// renderer to create uniform buffers without hand-written bind group layouts.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a WGSL comment line.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct definition
	// into the shader at the annotation site. It does not produce a declaration.
	//
	// Syntax: //@oxy:include <struct_type>
	//
	// Example: //@oxy:include blend_vertex
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration
	// and appends an Annotation to the PreProcessor's declarations list.
	//
	// Syntax: //@oxy:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@oxy:group 0 0 storage_uniform transform transform
	AnnotationTypeBindingGroup AnnotationType = "group"
)

// Annotation represents a single parsed @oxy: annotation from a WGSL shader source line.
type Annotation struct {
	// Type identifies which annotation was parsed (include or group).
	Type AnnotationType

	// Args holds the annotation's arguments. The contents depend on Type:
	//   - include: [0] = struct type key (e.g. "blend_vertex")
	//   - group:   [0] = address space, [1] = var name, [2] = struct type key
	Args []AnnotationArg

	// Line is the 1-based line number in the original WGSL source.
	Line int

	// Group is the @group index for group annotations. Nil for include annotations.
	Group *int

	// Binding is the @binding index for group annotations. Nil for include annotations.
	Binding *int
}

// StructType returns the struct key of a group annotation, or "" for other types.
//
// Returns:
//   - AnnotationArg: the bound struct type
func (a Annotation) StructType() AnnotationArg {
	if a.Type != AnnotationTypeBindingGroup || len(a.Args) < 3 {
		return ""
	}
	return a.Args[2]
}

// AnnotationArg is a typed string constant used as an argument in annotations.
type AnnotationArg string

// Struct type arguments. Each maps to a Go GPU type with an embedded .wgsl asset file.
const (
	// AnnotationArgTransform identifies the TransformUniform struct.
	// Source: engine/camera/assets/transform_uniform.wgsl
	AnnotationArgTransform AnnotationArg = "transform"

	// AnnotationArgMorphWeights identifies the MorphWeights struct.
	// Source: engine/animator/assets/morph_weights.wgsl
	AnnotationArgMorphWeights AnnotationArg = "morph_weights"

	// AnnotationArgLight identifies the Light struct.
	// Source: engine/light/assets/light.wgsl
	AnnotationArgLight AnnotationArg = "light"

	// AnnotationArgMaterial identifies the Material struct.
	// Source: engine/renderer/material/assets/material.wgsl
	AnnotationArgMaterial AnnotationArg = "material"

	// annotationArgBlendVertex identifies the VertexInput struct of the baked morph buffer.
	// Source: engine/morph/assets/blend_vertex.wgsl
	annotationArgBlendVertex AnnotationArg = "blend_vertex"
)

// annotationArgStorageTypeUniform maps to var<uniform> in WGSL. The renderer only builds
// uniform buffers, so it is the one address space a group annotation may name.
const annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

var validStructTypes = []AnnotationArg{
	AnnotationArgTransform,
	AnnotationArgMorphWeights,
	AnnotationArgLight,
	AnnotationArgMaterial,
	annotationArgBlendVertex,
}

var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
}

// parseAnnotation attempts to parse a single line of WGSL source as an @oxy: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case string(AnnotationTypeBindingGroup):
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @oxy group annotation requires exactly five arguments (group, binding, address space, var name, struct type)", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q in @oxy group annotation: %v", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @oxy group annotation: %v", lineNum, args[2], err)
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @oxy group annotation", lineNum, args[3])
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[5])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy group annotation", lineNum, args[5])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}
