package morph

import (
	"encoding/binary"
	"math"

	"github.com/flywave/go3d/vec3"
)

// BlendVertex is one baked triangle corner: the base pose plus the offsets to both morph targets.
// Field order matches Layout and the VertexInput struct of the morph shader (72 bytes, no padding).
type BlendVertex struct {
	Position   vec3.T // offset  0: base position
	Normal     vec3.T // offset 12: base normal
	PosDeltaA  vec3.T // offset 24: poseA position - base position
	NormDeltaA vec3.T // offset 36: poseA normal - base normal
	PosDeltaB  vec3.T // offset 48: poseB position - base position
	NormDeltaB vec3.T // offset 60: poseB normal - base normal
}

const (
	// FloatsPerVertex is the number of float32 values in one BlendVertex.
	FloatsPerVertex = 18

	// Stride is the size of one BlendVertex in bytes.
	Stride = FloatsPerVertex * 4
)

// Attribute describes one interleaved vertex attribute of the baked buffer.
type Attribute struct {
	Name       string
	Location   uint32 // shader location
	Offset     uint64 // byte offset inside a vertex
	Components int    // float32 components
}

// Layout is the fixed attribute layout of the baked buffer: six float32x3 attributes.
var Layout = []Attribute{
	{Name: "position", Location: 0, Offset: 0, Components: 3},
	{Name: "normal", Location: 1, Offset: 12, Components: 3},
	{Name: "posDeltaA", Location: 2, Offset: 24, Components: 3},
	{Name: "normDeltaA", Location: 3, Offset: 36, Components: 3},
	{Name: "posDeltaB", Location: 4, Offset: 48, Components: 3},
	{Name: "normDeltaB", Location: 5, Offset: 60, Components: 3},
}

// Floats returns the vertex as 18 floats in Layout order.
//
// Returns:
//   - [18]float32: position, normal, posDeltaA, normDeltaA, posDeltaB, normDeltaB
func (v *BlendVertex) Floats() [FloatsPerVertex]float32 {
	var out [FloatsPerVertex]float32
	for i, part := range [6]*vec3.T{&v.Position, &v.Normal, &v.PosDeltaA, &v.NormDeltaA, &v.PosDeltaB, &v.NormDeltaB} {
		copy(out[i*3:i*3+3], part[:])
	}
	return out
}

// Marshal serializes baked vertices into a little-endian byte buffer ready for a GPU vertex buffer.
//
// Parameters:
//   - vertices: the baked vertices
//
// Returns:
//   - []byte: len(vertices)*Stride bytes
func Marshal(vertices []BlendVertex) []byte {
	buf := make([]byte, len(vertices)*Stride)
	off := 0
	for i := range vertices {
		for _, f := range vertices[i].Floats() {
			binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(f))
			off += 4
		}
	}
	return buf
}

// Blend applies the two weights to a baked vertex the same way the morph vertex shader does.
// The returned normal is renormalised unless it collapses to zero.
//
// Parameters:
//   - v: the baked vertex
//   - weightA: blend weight of poseA
//   - weightB: blend weight of poseB
//
// Returns:
//   - vec3.T: the blended position
//   - vec3.T: the blended normal
func Blend(v BlendVertex, weightA, weightB float32) (vec3.T, vec3.T) {
	pos, normal := v.Position, v.Normal
	da, db := v.PosDeltaA, v.PosDeltaB
	pos.Add(da.Scale(weightA))
	pos.Add(db.Scale(weightB))

	na, nb := v.NormDeltaA, v.NormDeltaB
	normal.Add(na.Scale(weightA))
	normal.Add(nb.Scale(weightB))
	if normal.Length() > 0 {
		normal.Normalize()
	}
	return pos, normal
}

// Bounds returns the axis-aligned box around the base positions. An empty slice yields a zero box.
func Bounds(vertices []BlendVertex) vec3.Box {
	if len(vertices) == 0 {
		return vec3.Box{}
	}
	box := vec3.Box{Min: vertices[0].Position, Max: vertices[0].Position}
	for i := 1; i < len(vertices); i++ {
		p := vertices[i].Position
		box.Join(&vec3.Box{Min: p, Max: p})
	}
	return box
}

// BlendedBounds returns the box around the positions the shader produces at the given weights.
func BlendedBounds(vertices []BlendVertex, weightA, weightB float32) vec3.Box {
	if len(vertices) == 0 {
		return vec3.Box{}
	}
	first, _ := Blend(vertices[0], weightA, weightB)
	box := vec3.Box{Min: first, Max: first}
	for i := 1; i < len(vertices); i++ {
		p, _ := Blend(vertices[i], weightA, weightB)
		box.Join(&vec3.Box{Min: p, Max: p})
	}
	return box
}
