package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass
	clearColor  wgpu.Color

	// Morph pipeline state, created once by RegisterPipeline
	shaderModule    *wgpu.ShaderModule
	bindGroupLayout *wgpu.BindGroupLayout
	pipelineLayout  *wgpu.PipelineLayout
	pipeline        *wgpu.RenderPipeline
	bindGroup       *wgpu.BindGroup
	uniformBuffers  map[uint32]*wgpu.Buffer

	vertexBuffer *wgpu.Buffer
	vertexCount  uint32

	// Frame state between BeginFrame and Present
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

type wgpuRendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when calling ConfigureSurface on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the colour the render pass clears to.
	//
	// Parameters:
	//   - r, g, b: colour channels in [0, 1]
	SetClearColor(r, g, b float64)

	// RegisterPipeline creates the shader module, the group 0 bind group with one uniform buffer per
	// binding, and the render pipeline reading the interleaved vertex layout.
	//
	// Parameters:
	//   - label: debug label for created objects
	//   - source: processed WGSL source with vs_main and fs_main entry points
	//   - bindings: the uniform buffers of group 0
	//   - stride: the vertex stride in bytes
	//   - attributes: the float32x3 vertex attributes
	//
	// Returns:
	//   - error: an error if any GPU object could not be created
	RegisterPipeline(label, source string, bindings []uniformBinding, stride uint64, attributes []vertexAttribute) error

	// UploadVertices replaces the vertex buffer.
	//
	// Parameters:
	//   - data: the raw interleaved vertex bytes
	//   - count: the number of vertices in data
	//
	// Returns:
	//   - error: an error if buffer creation fails
	UploadVertices(data []byte, count int) error

	// WriteUniform writes data at offset 0 of the uniform buffer at the given binding.
	//
	// Parameters:
	//   - binding: the binding index inside group 0
	//   - data: the bytes to write
	//
	// Returns:
	//   - error: an error if the binding has no buffer
	WriteUniform(binding uint32, data []byte) error

	// BeginFrame acquires the next swapchain texture, creates a command encoder, and begins
	// the main render pass. Must be paired with EndFrame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// Draw encodes the non-indexed draw of the uploaded vertex buffer within the current render pass.
	// Does nothing while no vertices are uploaded.
	Draw()

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface, call Present() after EndFrame to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// Release frees every GPU object held by the backend.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) wgpuRendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:             &sync.Mutex{},
		instance:       wgpu.CreateInstance(nil),
		presentMode:    wgpu.PresentModeFifo,
		sampleCount:    sampleCount,
		clearColor:     wgpu.Color{R: 0.4, G: 0.4, B: 0.4, A: 1.0},
		uniformBuffers: make(map[uint32]*wgpu.Buffer),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Minimised windows report a zero extent, which the surface rejects.
	if width <= 0 || height <= 0 {
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// Create the MSAA texture that the render pass draws into; the resolved
		// result is written to the swapchain view as the ResolveTarget.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	// When MSAA is enabled, View is the MSAA texture and ResolveTarget is
	// set per-frame to the swapchain view. When disabled, View is set
	// per-frame to the swapchain view and ResolveTarget remains nil.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.msaaTextureView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    storeOp,
				ClearValue: b.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

// releaseTargets frees the size-dependent attachments. Callers hold b.mu.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) SetClearColor(r, g, bl float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearColor = wgpu.Color{R: r, G: g, B: bl, A: 1.0}
	if b.renderPassDescriptor != nil {
		b.renderPassDescriptor.ColorAttachments[0].ClearValue = b.clearColor
	}
}

func (b *wgpuRendererBackendImpl) RegisterPipeline(label, source string, bindings []uniformBinding, stride uint64, attributes []vertexAttribute) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return errors.New("surface must be configured before registering a pipeline")
	}
	if b.pipeline != nil {
		return fmt.Errorf("pipeline %q already registered", label)
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create shader module: %w", err)
	}
	b.shaderModule = module

	layoutEntries := make([]wgpu.BindGroupLayoutEntry, len(bindings))
	for i, ub := range bindings {
		layoutEntries[i] = wgpu.BindGroupLayoutEntry{
			Binding:    ub.Binding,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		}
		layoutEntries[i].Buffer.Type = wgpu.BufferBindingTypeUniform
		layoutEntries[i].Buffer.MinBindingSize = ub.Size
	}
	b.bindGroupLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   label + " Bind Group Layout",
		Entries: layoutEntries,
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group layout for group 0: %w", err)
	}

	groupEntries := make([]wgpu.BindGroupEntry, len(bindings))
	for i, ub := range bindings {
		buf, bufErr := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: ub.Label + " Buffer",
			Size:  ub.Size,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if bufErr != nil {
			return fmt.Errorf("failed to create uniform buffer %q: %w", ub.Label, bufErr)
		}
		b.uniformBuffers[ub.Binding] = buf
		groupEntries[i] = wgpu.BindGroupEntry{
			Binding: ub.Binding,
			Buffer:  buf,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}
	}
	b.bindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   label + " Bind Group",
		Layout:  b.bindGroupLayout,
		Entries: groupEntries,
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group: %w", err)
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label,
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.bindGroupLayout},
	})
	if err != nil {
		return err
	}

	attrs := make([]wgpu.VertexAttribute, len(attributes))
	for i, a := range attributes {
		attrs[i] = wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x3,
			Offset:         a.Offset,
			ShaderLocation: a.Location,
		}
	}

	b.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label + " Render Pipeline",
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: stride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes:  attrs,
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    *b.surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	return err
}

func (b *wgpuRendererBackendImpl) UploadVertices(data []byte, count int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.vertexBuffer != nil {
		b.vertexBuffer.Release()
		b.vertexBuffer = nil
		b.vertexCount = 0
	}
	if len(data) == 0 {
		return nil
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "Morph Vertex Buffer",
		Size:             uint64(len(data)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(buf, 0, data)
	b.vertexBuffer = buf
	b.vertexCount = uint32(count)
	return nil
}

func (b *wgpuRendererBackendImpl) WriteUniform(binding uint32, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, ok := b.uniformBuffers[binding]
	if !ok {
		return fmt.Errorf("no uniform buffer at binding %d", binding)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return nil
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return errors.New("surface not configured")
	}
	// If a previous frame's surface texture is still held, avoid acquiring another one;
	// wgpu-native rejects a second acquire with "Surface image is already acquired".
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) Draw() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || b.pipeline == nil || b.vertexBuffer == nil || b.vertexCount == 0 {
		return
	}

	b.framePass.SetPipeline(b.pipeline)
	b.framePass.SetBindGroup(0, b.bindGroup, nil)
	b.framePass.SetVertexBuffer(0, b.vertexBuffer, 0, wgpu.WholeSize)
	b.framePass.Draw(b.vertexCount, 1, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.vertexBuffer != nil {
		b.vertexBuffer.Release()
		b.vertexBuffer = nil
	}
	for binding, buf := range b.uniformBuffers {
		buf.Release()
		delete(b.uniformBuffers, binding)
	}
	if b.bindGroup != nil {
		b.bindGroup.Release()
		b.bindGroup = nil
	}
	if b.pipeline != nil {
		b.pipeline.Release()
		b.pipeline = nil
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
		b.pipelineLayout = nil
	}
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
		b.bindGroupLayout = nil
	}
	if b.shaderModule != nil {
		b.shaderModule.Release()
		b.shaderModule = nil
	}
	b.releaseTargets()
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
