package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
)

// LoaderBackendType identifies the mesh file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeOBJ selects the Wavefront OBJ backend.
	BackendTypeOBJ LoaderBackendType = iota

	// BackendTypeGLTF selects the glTF/GLB backend.
	BackendTypeGLTF
)

// defaultWorkers matches the number of meshes a pose set needs.
const defaultWorkers = 3

// PoseSet holds the three meshes a morph bake consumes.
type PoseSet struct {
	Base  *morph.Mesh
	PoseA *morph.Mesh
	PoseB *morph.Mesh
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	meshCache map[string]*morph.Mesh

	backends map[LoaderBackendType]loaderBackend
	workers  int
	pool     worker.DynamicWorkerPool
}

// Loader defines the public-facing interface for loading and caching meshes.
// It abstracts the file format (OBJ, glTF, GLB) behind a generic backend and
// manages a cache of previously loaded meshes.
type Loader interface {
	// Load imports a mesh file and caches the result.
	// If the mesh is already cached (by file path), the cached version is returned.
	// The backend is selected based on the file extension (.obj → OBJ, .gltf/.glb → glTF).
	//
	// Parameters:
	//   - path: the file path to the mesh file
	//
	// Returns:
	//   - *morph.Mesh: the loaded and cached mesh
	//   - error: error if loading fails
	Load(path string) (*morph.Mesh, error)

	// LoadReader imports a mesh from a reader stream and caches it by the given name.
	// The backend is chosen from the name's extension and defaults to OBJ.
	//
	// Parameters:
	//   - name: the cache key for the loaded mesh
	//   - r: the reader providing mesh data
	//
	// Returns:
	//   - *morph.Mesh: the loaded mesh
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (*morph.Mesh, error)

	// LoadPoses loads the base mesh and both target poses concurrently on the loader's
	// worker pool and waits for all three.
	//
	// Parameters:
	//   - base: path of the neutral mesh
	//   - poseA: path of the first target pose
	//   - poseB: path of the second target pose
	//
	// Returns:
	//   - PoseSet: the three meshes
	//   - error: the first failure in base, pose A, pose B order
	LoadPoses(base, poseA, poseB string) (PoseSet, error)

	// Get retrieves a cached mesh by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - *morph.Mesh: the cached mesh or nil
	Get(name string) *morph.Mesh

	// Meshes returns a copy of the mesh cache.
	//
	// Returns:
	//   - map[string]*morph.Mesh: all cached meshes keyed by name
	Meshes() map[string]*morph.Mesh

	// Close stops the worker pool. The Loader must not be used for LoadPoses afterwards.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the OBJ and glTF backends registered and the
// given options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		meshCache: make(map[string]*morph.Mesh),
		backends: map[LoaderBackendType]loaderBackend{
			BackendTypeOBJ:  newOBJLoaderBackend(),
			BackendTypeGLTF: newGLTFLoaderBackend(),
		},
		workers: defaultWorkers,
	}

	for _, option := range options {
		option(l)
	}

	l.pool = worker.NewDynamicWorkerPool(l.workers, 8, 1*time.Second)
	return l
}

func (l *loader) Load(path string) (*morph.Mesh, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(path, false)
	if err != nil {
		return nil, err
	}

	m, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to load %s: %w", path, err)
	}

	l.mu.Lock()
	l.meshCache[path] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) LoadReader(name string, r io.Reader) (*morph.Mesh, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(name, true)
	if err != nil {
		return nil, err
	}

	m, err := backend.LoadReader(name, r)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to load from reader %q: %w", name, err)
	}

	l.mu.Lock()
	l.meshCache[name] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) LoadPoses(base, poseA, poseB string) (PoseSet, error) {
	paths := [3]string{base, poseA, poseB}
	labels := [3]string{"base", "pose A", "pose B"}
	var meshes [3]*morph.Mesh
	var errs [3]error

	// The pool's Wait blocks until workers idle out, so a WaitGroup is the barrier.
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		l.pool.SubmitTask(worker.Task{
			ID:      i,
			Payload: path,
			Do: func() (any, error) {
				defer wg.Done()
				meshes[i], errs[i] = l.Load(path)
				return meshes[i], errs[i]
			},
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return PoseSet{}, fmt.Errorf("loader: %s: %w", labels[i], err)
		}
	}
	return PoseSet{Base: meshes[0], PoseA: meshes[1], PoseB: meshes[2]}, nil
}

func (l *loader) Get(name string) *morph.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.meshCache[name]
}

func (l *loader) Meshes() map[string]*morph.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]*morph.Mesh, len(l.meshCache))
	for k, v := range l.meshCache {
		result[k] = v
	}
	return result
}

func (l *loader) Close() {
	l.pool.Stop()
}

// resolveBackend selects a loader backend based on the file extension.
// Names without an extension fall back to OBJ when fallback is set.
func (l *loader) resolveBackend(name string, fallback bool) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".obj":
		return l.backends[BackendTypeOBJ], nil
	case ".gltf", ".glb":
		return l.backends[BackendTypeGLTF], nil
	case "":
		if fallback {
			return l.backends[BackendTypeOBJ], nil
		}
	}
	return nil, fmt.Errorf("loader: %w: %q", ErrUnsupportedFormat, ext)
}
