package animator

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-morph/common"
)

// GPUMorphWeightsSource is the canonical WGSL definition of the MorphWeights struct.
// Matches GPUMorphWeights layout exactly (16 bytes).
//
//go:embed assets/morph_weights.wgsl
var GPUMorphWeightsSource string

// GPUMorphWeights is the GPU-aligned uniform carrying both blend weights.
// Size: 16 bytes (one vec4<f32>).
type GPUMorphWeights struct {
	Weights [4]float32 // offset 0: x = ChannelA, y = ChannelB, zw unused
}

// NewMorphWeights snapshots the animator's current weights.
//
// Parameters:
//   - a: the animator to read
//
// Returns:
//   - GPUMorphWeights: the uniform data
func NewMorphWeights(a Animator) GPUMorphWeights {
	wa, wb := a.Weights()
	return GPUMorphWeights{Weights: [4]float32{wa, wb, 0, 0}}
}

// Size returns the size of the GPUMorphWeights struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUMorphWeights) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMorphWeights struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (g *GPUMorphWeights) Marshal() []byte {
	buf := make([]byte, g.Size())
	common.PutFloats(buf, 0, g.Weights[:]...)
	return buf
}
