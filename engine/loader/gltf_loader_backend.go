package loader

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/flywave/go3d/vec3"
	"github.com/qmuntal/gltf"
)

// gltfLoaderBackendImpl is the glTF/GLB implementation of loaderBackend. It reads the
// triangles of the first mesh in the document; materials, skins and animations are skipped.
type gltfLoaderBackendImpl struct{}

var _ loaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - loaderBackend: the loader backend for .gltf and .glb files
func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackendImpl{}
}

func (b *gltfLoaderBackendImpl) Load(path string) (*morph.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}
	return meshFromDocument(path, doc)
}

func (b *gltfLoaderBackendImpl) LoadReader(name string, r io.Reader) (*morph.Mesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, &ParseError{File: name, Err: err}
	}
	return meshFromDocument(name, doc)
}

// meshFromDocument concatenates every triangle primitive of the document's first mesh.
// Normal indices mirror vertex indices; when any primitive lacks NORMAL, smooth normals are computed.
func meshFromDocument(name string, doc *gltf.Document) (*morph.Mesh, error) {
	fail := func(err error) error {
		return &ParseError{File: name, Err: err}
	}
	if len(doc.Meshes) == 0 {
		return nil, fail(ErrNoFaces)
	}

	src := doc.Meshes[0]
	mesh := &morph.Mesh{Name: src.Name}
	if mesh.Name == "" {
		mesh.Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}

	hasNormals := true
	var normals []vec3.T
	for pi, p := range src.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			return nil, fail(fmt.Errorf("primitive %d: only triangle lists are supported", pi))
		}
		posIdx, ok := p.Attributes["POSITION"]
		if !ok {
			return nil, fail(fmt.Errorf("primitive %d: missing POSITION", pi))
		}
		positions, err := readVec3(doc, posIdx)
		if err != nil {
			return nil, fail(fmt.Errorf("primitive %d POSITION: %w", pi, err))
		}

		if nrmIdx, ok := p.Attributes["NORMAL"]; ok && hasNormals {
			n, err := readVec3(doc, nrmIdx)
			if err != nil {
				return nil, fail(fmt.Errorf("primitive %d NORMAL: %w", pi, err))
			}
			if len(n) != len(positions) {
				return nil, fail(fmt.Errorf("primitive %d: %d normals for %d positions", pi, len(n), len(positions)))
			}
			normals = append(normals, n...)
		} else {
			hasNormals = false
		}

		var indices []uint32
		if p.Indices != nil {
			indices, err = readIndices(doc, *p.Indices)
			if err != nil {
				return nil, fail(fmt.Errorf("primitive %d indices: %w", pi, err))
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}
		if len(indices)%3 != 0 {
			return nil, fail(fmt.Errorf("primitive %d: %d indices is not a triangle list", pi, len(indices)))
		}

		base := uint32(len(mesh.Vertices))
		for t := 0; t+2 < len(indices); t += 3 {
			var f morph.Face
			for j := 0; j < 3; j++ {
				if int(indices[t+j]) >= len(positions) {
					return nil, fail(fmt.Errorf("%w: %d with %d positions", ErrInvalidIndex, indices[t+j], len(positions)))
				}
				f.Vertex[j] = base + indices[t+j]
				f.Normal[j] = f.Vertex[j]
			}
			mesh.Faces = append(mesh.Faces, f)
		}
		mesh.Vertices = append(mesh.Vertices, positions...)
	}
	if len(mesh.Faces) == 0 {
		return nil, fail(ErrNoFaces)
	}

	if hasNormals {
		mesh.Normals = normals
	} else {
		mesh.Normals = computeNormals(mesh.Vertices, mesh.Faces)
	}
	return mesh, nil
}

// accessorData returns the bytes an accessor addresses and the distance between elements.
func accessorData(doc *gltf.Document, accIdx uint32, elemSize uint32) ([]byte, uint32, uint32, error) {
	if int(accIdx) >= len(doc.Accessors) {
		return nil, 0, 0, fmt.Errorf("%w: accessor %d", ErrInvalidIndex, accIdx)
	}
	acc := doc.Accessors[accIdx]
	if acc.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor %d has no buffer view", accIdx)
	}
	if int(*acc.BufferView) >= len(doc.BufferViews) {
		return nil, 0, 0, fmt.Errorf("%w: buffer view %d", ErrInvalidIndex, *acc.BufferView)
	}
	view := doc.BufferViews[*acc.BufferView]
	if int(view.Buffer) >= len(doc.Buffers) {
		return nil, 0, 0, fmt.Errorf("%w: buffer %d", ErrInvalidIndex, view.Buffer)
	}
	data := doc.Buffers[view.Buffer].Data

	viewEnd := uint64(view.ByteOffset) + uint64(view.ByteLength)
	if viewEnd > uint64(len(data)) {
		return nil, 0, 0, fmt.Errorf("buffer view %d overruns its buffer (%d > %d bytes)", *acc.BufferView, viewEnd, len(data))
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := uint64(view.ByteOffset) + uint64(acc.ByteOffset)
	if start > viewEnd {
		return nil, 0, 0, fmt.Errorf("accessor %d starts past its buffer view (%d > %d bytes)", accIdx, start, viewEnd)
	}
	if acc.Count > 0 {
		end := start + uint64(acc.Count-1)*uint64(stride) + uint64(elemSize)
		if end > viewEnd {
			return nil, 0, 0, fmt.Errorf("accessor %d overruns its buffer view (%d > %d bytes)", accIdx, end, viewEnd)
		}
	}
	return data[start:viewEnd], stride, acc.Count, nil
}

// readVec3 decodes a float VEC3 accessor.
func readVec3(doc *gltf.Document, accIdx uint32) ([]vec3.T, error) {
	if int(accIdx) < len(doc.Accessors) {
		acc := doc.Accessors[accIdx]
		if acc.ComponentType != gltf.ComponentFloat || acc.Type != gltf.AccessorVec3 {
			return nil, fmt.Errorf("accessor %d is not a float VEC3", accIdx)
		}
	}
	data, stride, count, err := accessorData(doc, accIdx, 12)
	if err != nil {
		return nil, err
	}
	out := make([]vec3.T, count)
	for i := range out {
		off := uint32(i) * stride
		for k := 0; k < 3; k++ {
			out[i][k] = math.Float32frombits(binary.LittleEndian.Uint32(data[off+uint32(k)*4:]))
		}
	}
	return out, nil
}

// readIndices decodes an unsigned SCALAR index accessor of any width.
func readIndices(doc *gltf.Document, accIdx uint32) ([]uint32, error) {
	if int(accIdx) >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d", ErrInvalidIndex, accIdx)
	}
	acc := doc.Accessors[accIdx]
	if acc.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("accessor %d is not SCALAR", accIdx)
	}

	var size uint32
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("accessor %d: unsupported index component type", accIdx)
	}

	data, stride, count, err := accessorData(doc, accIdx, size)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range out {
		off := uint32(i) * stride
		switch size {
		case 1:
			out[i] = uint32(data[off])
		case 2:
			out[i] = uint32(binary.LittleEndian.Uint16(data[off:]))
		default:
			out[i] = binary.LittleEndian.Uint32(data[off:])
		}
	}
	return out, nil
}
