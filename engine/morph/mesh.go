package morph

import (
	"github.com/flywave/go3d/vec3"
)

// Face is a single triangle. Each corner holds an index into the owning mesh's vertex list
// and an index into its normal list.
type Face struct {
	Vertex [3]uint32
	Normal [3]uint32
}

// Source is the read-only view of a mesh that the baker consumes.
// Any loader that can produce ordered vertex, normal and face lists can feed the baker.
type Source interface {
	// VertexList returns the ordered vertex positions.
	//
	// Returns:
	//   - []vec3.T: the vertex positions
	VertexList() []vec3.T

	// NormalList returns the ordered vertex normals.
	//
	// Returns:
	//   - []vec3.T: the normals
	NormalList() []vec3.T

	// FaceList returns the ordered triangle list.
	//
	// Returns:
	//   - []Face: the faces, already triangulated
	FaceList() []Face
}

// Mesh is a triangulated polygon mesh with separate vertex and normal index spaces,
// the shape produced by the OBJ loader.
type Mesh struct {
	Name     string
	Vertices []vec3.T
	Normals  []vec3.T
	Faces    []Face
}

var _ Source = &Mesh{}

func (m *Mesh) VertexList() []vec3.T {
	return m.Vertices
}

func (m *Mesh) NormalList() []vec3.T {
	return m.Normals
}

func (m *Mesh) FaceList() []Face {
	return m.Faces
}

// FaceCount returns the number of triangles in the mesh.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}
