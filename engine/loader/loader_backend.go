package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
)

// loaderBackend defines the generic interface for loading meshes from files or streams.
// Concrete implementations (objLoaderBackendImpl, gltfLoaderBackendImpl) handle format-specific details.
type loaderBackend interface {
	// Load performs a mesh import from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *morph.Mesh: the triangulated mesh
	//   - error: error if loading fails
	Load(path string) (*morph.Mesh, error)

	// LoadReader imports a mesh from a reader stream.
	//
	// Parameters:
	//   - name: the name used for the mesh and in error messages
	//   - r: the reader providing mesh data
	//
	// Returns:
	//   - *morph.Mesh: the triangulated mesh
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (*morph.Mesh, error)
}
