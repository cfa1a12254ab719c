package morph

import (
	_ "embed"
)

// GPUBlendVertexSource is the canonical WGSL definition of the VertexInput struct read by the
// morph vertex shader. Field order and locations match Layout.
//
//go:embed assets/blend_vertex.wgsl
var GPUBlendVertexSource string
