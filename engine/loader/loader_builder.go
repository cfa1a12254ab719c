package loader

import (
	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithMesh is an option builder that pre-populates the mesh cache with a mesh.
//
// Parameters:
//   - key: the cache key for the mesh
//   - mesh: the mesh to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the mesh option to a loader
func WithMesh(key string, mesh *morph.Mesh) LoaderBuilderOption {
	return func(l *loader) {
		l.meshCache[key] = mesh
	}
}

// WithWorkers is an option builder that sets the size of the pool LoadPoses runs on.
//
// Parameters:
//   - n: the number of workers, ignored unless positive
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}
