package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-morph/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	// bindings maps each declared uniform struct to its @binding index in group 0.
	bindings map[shader.AnnotationArg]uint32

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingClearColor    *[3]float64
}

// Renderer defines the interface for the morph rendering system.
//
// The Renderer owns a single pipeline built from the annotated morph shader. Its uniform
// buffers are created from the shader's @oxy:group declarations and addressed by struct key,
// so callers never deal with binding indices.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background colour of every frame.
	//
	// Parameters:
	//   - r, g, b: colour channels in [0, 1]
	SetClearColor(r, g, b float64)

	// UploadMesh replaces the drawn vertex buffer with the given baked vertices.
	//
	// Parameters:
	//   - vertices: the baked blend vertices, three per triangle
	//
	// Returns:
	//   - error: an error if buffer creation fails
	UploadMesh(vertices []morph.BlendVertex) error

	// WriteUniform writes a marshalled GPU struct into the uniform buffer declared for it.
	//
	// Parameters:
	//   - key: the struct type key the shader declared (e.g. shader.AnnotationArgLight)
	//   - data: the marshalled struct bytes
	//
	// Returns:
	//   - error: an error if the shader declares no buffer for key
	WriteUniform(key shader.AnnotationArg, data []byte) error

	// RenderFrame clears the surface, draws the uploaded mesh and presents the result.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	RenderFrame() error

	// Release frees every GPU resource. The Renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type for the given window,
// then builds the morph pipeline from shader.MorphSource. It panics if the GPU or the pipeline
// cannot be initialised.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window whose surface is rendered to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		bindings:    make(map[shader.AnnotationArg]uint32),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		c := *r.pendingClearColor
		r.backend.SetClearColor(c[0], c[1], c[2])
	}

	r.backend.ConfigureSurface(win.Width(), win.Height())

	if err := r.registerMorphPipeline(); err != nil {
		panic(err)
	}
	return r
}

// registerMorphPipeline pre-processes the morph shader and hands its declarations to the backend.
func (r *renderer) registerMorphPipeline() error {
	pp := shader.NewPreProcessor()
	source, err := pp.Process(shader.MorphSource)
	if err != nil {
		return fmt.Errorf("failed to pre-process morph shader: %w", err)
	}

	decls := pp.Declarations()
	bindings := make([]uniformBinding, 0, len(decls))
	for _, d := range decls {
		if *d.Group != 0 {
			return fmt.Errorf("morph shader line %d: only group 0 is supported, got %d", d.Line, *d.Group)
		}
		key := d.StructType()
		r.bindings[key] = uint32(*d.Binding)
		bindings = append(bindings, uniformBinding{
			Binding: uint32(*d.Binding),
			Size:    pp.BufferSize(key),
			Label:   string(d.Args[1]),
		})
	}

	attributes := make([]vertexAttribute, len(morph.Layout))
	for i, a := range morph.Layout {
		attributes[i] = vertexAttribute{Location: a.Location, Offset: a.Offset}
	}

	return r.backend.RegisterPipeline("Morph", source, bindings, morph.Stride, attributes)
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(red, green, blue float64) {
	r.backend.SetClearColor(red, green, blue)
}

func (r *renderer) UploadMesh(vertices []morph.BlendVertex) error {
	return r.backend.UploadVertices(morph.Marshal(vertices), len(vertices))
}

func (r *renderer) WriteUniform(key shader.AnnotationArg, data []byte) error {
	r.mu.Lock()
	binding, ok := r.bindings[key]
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("morph shader declares no uniform for %q", key)
	}
	return r.backend.WriteUniform(binding, data)
}

func (r *renderer) RenderFrame() error {
	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.backend.Draw()
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) Release() {
	r.backend.Release()
}
