package exporter

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/flywave/go3d/vec3"
	"github.com/qmuntal/gltf"
)

const gltfVersion = "2.0"

var (
	// ErrEmpty is returned when there is nothing to export.
	ErrEmpty = errors.New("exporter: no vertices")

	// ErrNotTriangles is returned when the vertex count is not a multiple of three.
	ErrNotTriangles = errors.New("exporter: vertex count is not a triangle list")
)

// exportOptions holds the settings collected from ExportOption values.
type exportOptions struct {
	name        string
	weights     [2]float32
	targetNames [2]string
}

// BuildDocument turns a baked vertex stream into a glTF document with native morph targets.
//
// The document holds one buffer and one non-indexed triangle primitive. The base positions and
// normals become the primitive's POSITION and NORMAL attributes and each pose's deltas become a
// morph target, so any glTF viewer can replay the blend with the mesh's default weights. Every
// POSITION accessor carries min and max as the format requires.
//
// Parameters:
//   - vertices: the baked vertices, three per triangle
//   - options: variadic list of ExportOption functions
//
// Returns:
//   - *gltf.Document: the document, ready for WriteGLB
//   - error: ErrEmpty or ErrNotTriangles for unusable input
func BuildDocument(vertices []morph.BlendVertex, options ...ExportOption) (*gltf.Document, error) {
	if len(vertices) == 0 {
		return nil, ErrEmpty
	}
	if len(vertices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d vertices", ErrNotTriangles, len(vertices))
	}

	opts := exportOptions{
		name:        "morph",
		targetNames: [2]string{"poseA", "poseB"},
	}
	for _, opt := range options {
		opt(&opts)
	}

	// attribute streams in accessor order
	streams := make([][]vec3.T, 6)
	for i := range streams {
		streams[i] = make([]vec3.T, len(vertices))
	}
	for i, v := range vertices {
		streams[0][i] = v.Position
		streams[1][i] = v.Normal
		streams[2][i] = v.PosDeltaA
		streams[3][i] = v.NormDeltaA
		streams[4][i] = v.PosDeltaB
		streams[5][i] = v.NormDeltaB
	}

	sceneIndex := uint32(0)
	meshIndex := uint32(0)
	doc := &gltf.Document{
		Asset: gltf.Asset{
			Version:   gltfVersion,
			Generator: "oxy-morph",
		},
		Scene:   &sceneIndex,
		Scenes:  []*gltf.Scene{{Nodes: []uint32{0}}},
		Nodes:   []*gltf.Node{{Name: opts.name, Mesh: &meshIndex}},
		Buffers: []*gltf.Buffer{{}},
	}

	buf := bytes.NewBuffer(nil)
	for i, stream := range streams {
		view := &gltf.BufferView{
			Buffer:     0,
			ByteOffset: uint32(buf.Len()),
		}
		binary.Write(buf, binary.LittleEndian, stream)
		view.ByteLength = uint32(buf.Len()) - view.ByteOffset
		doc.BufferViews = append(doc.BufferViews, view)

		viewIndex := uint32(i)
		accessor := &gltf.Accessor{
			BufferView:    &viewIndex,
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec3,
			Count:         uint32(len(stream)),
		}
		// even streams are positions
		if i%2 == 0 {
			box := bounds(stream)
			accessor.Min = []float32{box.Min[0], box.Min[1], box.Min[2]}
			accessor.Max = []float32{box.Max[0], box.Max[1], box.Max[2]}
		}
		doc.Accessors = append(doc.Accessors, accessor)
	}
	doc.Buffers[0].ByteLength = uint32(buf.Len())
	doc.Buffers[0].Data = buf.Bytes()

	doc.Meshes = []*gltf.Mesh{{
		Name: opts.name,
		Primitives: []*gltf.Primitive{{
			Mode:       gltf.PrimitiveTriangles,
			Attributes: gltf.Attribute{"POSITION": 0, "NORMAL": 1},
			Targets: []gltf.Attribute{
				{"POSITION": 2, "NORMAL": 3},
				{"POSITION": 4, "NORMAL": 5},
			},
		}},
		Weights: []float32{opts.weights[0], opts.weights[1]},
		Extras: map[string]any{
			"targetNames": []string{opts.targetNames[0], opts.targetNames[1]},
		},
	}}

	return doc, nil
}

// bounds returns the axis-aligned box around points.
func bounds(points []vec3.T) vec3.Box {
	box := vec3.Box{Min: points[0], Max: points[0]}
	for i := 1; i < len(points); i++ {
		p := points[i]
		box.Join(&vec3.Box{Min: p, Max: p})
	}
	return box
}

// WriteGLB encodes doc as binary glTF and writes it to w. The encoder aligns both chunks
// to 4 bytes and records the total in the header, so nothing may be appended afterwards.
//
// Parameters:
//   - w: the destination
//   - doc: the document to encode
//
// Returns:
//   - int: the number of bytes written
//   - error: an encoding or write error
func WriteGLB(w io.Writer, doc *gltf.Document) (int, error) {
	out := bytes.NewBuffer(nil)
	enc := gltf.NewEncoder(out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("exporter: failed to encode glb: %w", err)
	}
	return w.Write(out.Bytes())
}

// WriteRaw writes the interleaved vertex buffer exactly as the renderer uploads it:
// len(vertices)*morph.Stride bytes in morph.Layout order.
//
// Parameters:
//   - w: the destination
//   - vertices: the baked vertices
//
// Returns:
//   - int: the number of bytes written
//   - error: a write error
func WriteRaw(w io.Writer, vertices []morph.BlendVertex) (int, error) {
	return w.Write(morph.Marshal(vertices))
}
