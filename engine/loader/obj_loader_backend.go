package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/flywave/go3d/vec3"
)

// noNormal marks a face corner written without a normal reference.
const noNormal = -1

// objLoaderBackendImpl is the Wavefront OBJ implementation of loaderBackend.
type objLoaderBackendImpl struct{}

var _ loaderBackend = &objLoaderBackendImpl{}

// newOBJLoaderBackend creates a new OBJ loader backend.
//
// Returns:
//   - loaderBackend: the loader backend for .obj files
func newOBJLoaderBackend() loaderBackend {
	return &objLoaderBackendImpl{}
}

func (b *objLoaderBackendImpl) Load(path string) (*morph.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return b.LoadReader(path, f)
}

// objCorner is one face corner before normals are resolved.
type objCorner struct {
	vertex uint32
	normal int
}

func (b *objLoaderBackendImpl) LoadReader(name string, r io.Reader) (*morph.Mesh, error) {
	mesh := &morph.Mesh{Name: strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))}
	var triangles [][3]objCorner
	missingNormals := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		fail := func(err error) error {
			return &ParseError{File: name, Line: lineNum, Err: err}
		}

		switch fields[0] {
		case "v", "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fail(fmt.Errorf("%s: %w", fields[0], err))
			}
			if fields[0] == "v" {
				mesh.Vertices = append(mesh.Vertices, v)
			} else {
				mesh.Normals = append(mesh.Normals, v)
			}
		case "f":
			corners := fields[1:]
			if len(corners) < 3 {
				return nil, fail(ErrInvalidFace)
			}
			polygon := make([]objCorner, len(corners))
			for i, c := range corners {
				corner, err := parseCorner(c, len(mesh.Vertices), len(mesh.Normals))
				if err != nil {
					return nil, fail(err)
				}
				if corner.normal == noNormal {
					missingNormals = true
				}
				polygon[i] = corner
			}
			// fan around the first corner so every pose triangulates the same way
			for k := 1; k+1 < len(polygon); k++ {
				triangles = append(triangles, [3]objCorner{polygon[0], polygon[k], polygon[k+1]})
			}
		case "o":
			if len(fields) > 1 {
				mesh.Name = strings.Join(fields[1:], " ")
			}
		default:
			// vt, g, s, usemtl, mtllib: nothing the baker reads
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{File: name, Line: lineNum, Err: err}
	}
	if len(triangles) == 0 {
		return nil, &ParseError{File: name, Err: ErrNoFaces}
	}

	mesh.Faces = make([]morph.Face, len(triangles))
	for i, t := range triangles {
		for j, c := range t {
			mesh.Faces[i].Vertex[j] = c.vertex
		}
	}

	// Corners without a normal reference use smooth normals appended after the file's own.
	offset := uint32(len(mesh.Normals))
	if missingNormals {
		mesh.Normals = append(mesh.Normals, computeNormals(mesh.Vertices, mesh.Faces)...)
	}
	for i, t := range triangles {
		for j, c := range t {
			if c.normal == noNormal {
				mesh.Faces[i].Normal[j] = offset + c.vertex
			} else {
				mesh.Faces[i].Normal[j] = uint32(c.normal)
			}
		}
	}

	return mesh, nil
}

// parseVec3 reads the first three fields as float32 coordinates. Extra fields (w) are ignored.
func parseVec3(fields []string) (vec3.T, error) {
	var v vec3.T
	if len(fields) < 3 {
		return v, fmt.Errorf("expected 3 coordinates, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseCorner reads a v, v/vt, v//vn or v/vt/vn reference. Negative indices count back
// from the most recent element, as the format allows.
func parseCorner(s string, vertexCount, normalCount int) (objCorner, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return objCorner{}, fmt.Errorf("%w: corner %q", ErrInvalidIndex, s)
	}

	vi, err := resolveIndex(parts[0], vertexCount)
	if err != nil {
		return objCorner{}, fmt.Errorf("vertex %w", err)
	}
	corner := objCorner{vertex: uint32(vi), normal: noNormal}

	if len(parts) == 3 && parts[2] != "" {
		ni, err := resolveIndex(parts[2], normalCount)
		if err != nil {
			return objCorner{}, fmt.Errorf("normal %w", err)
		}
		corner.normal = ni
	}
	return corner, nil
}

// resolveIndex converts a 1-based or negative OBJ index into a 0-based one.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, s)
	}
	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("%w: %d with %d defined", ErrInvalidIndex, n, count)
	}
	return idx, nil
}

// computeNormals returns one smooth normal per vertex: the normalised sum of the
// area-weighted normals of every face touching it. Unreferenced vertices get a zero normal.
func computeNormals(vertices []vec3.T, faces []morph.Face) []vec3.T {
	normals := make([]vec3.T, len(vertices))
	for _, f := range faces {
		p0, p1, p2 := vertices[f.Vertex[0]], vertices[f.Vertex[1]], vertices[f.Vertex[2]]
		e1 := vec3.Sub(&p1, &p0)
		e2 := vec3.Sub(&p2, &p0)
		n := vec3.Cross(&e1, &e2)
		for _, vi := range f.Vertex {
			normals[vi].Add(&n)
		}
	}
	for i := range normals {
		if normals[i].Length() > 0 {
			normals[i].Normalize()
		}
	}
	return normals
}
