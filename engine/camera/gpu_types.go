package camera

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUTransformUniformSource is the canonical WGSL definition of the TransformUniform struct.
// Matches GPUTransformUniform layout exactly (192 bytes).
//
//go:embed assets/transform_uniform.wgsl
var GPUTransformUniformSource string

// GPUTransformUniform is the GPU-aligned representation of the per-frame transform uniform.
// The normal matrix is stored as a mat4x4 to avoid mat3x3 column padding.
// Size: 192 bytes.
type GPUTransformUniform struct {
	MVP          [16]float32 // offset   0: projection * view * model
	MV           [16]float32 // offset  64: view * model
	NormalMatrix [16]float32 // offset 128: inverse transpose of MV's upper 3x3, in a mat4
}

// NewTransformUniform computes the matrices the morph shader needs for one model matrix.
//
// Parameters:
//   - c: the camera providing view and projection
//   - model: the model matrix
//
// Returns:
//   - GPUTransformUniform: the filled uniform
func NewTransformUniform(c Camera, model mgl32.Mat4) GPUTransformUniform {
	mv := c.ViewMatrix().Mul4(model)
	mvp := c.ProjectionMatrix().Mul4(mv)
	return GPUTransformUniform{
		MVP:          mvp,
		MV:           mv,
		NormalMatrix: mgl32.Mat4Normal(mv).Mat4(),
	}
}

// Size returns the size of the GPUTransformUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (192)
func (g *GPUTransformUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUTransformUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUTransformUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := common.PutFloats(buf, 0, g.MVP[:]...)
	off = common.PutFloats(buf, off, g.MV[:]...)
	common.PutFloats(buf, off, g.NormalMatrix[:]...)
	return buf
}
