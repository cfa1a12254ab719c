package morph

import (
	"github.com/flywave/go3d/vec3"
)

// bakeOptions holds the switches collected from BakeOption values.
type bakeOptions struct {
	strictTopology bool
}

// BakeOption is a functional option applied to a single Bake call.
type BakeOption func(*bakeOptions)

// WithStrictTopology makes Bake compare every face of both poses against the base face list,
// instead of only comparing list lengths.
//
// Returns:
//   - BakeOption: option function to apply
func WithStrictTopology() BakeOption {
	return func(o *bakeOptions) {
		o.strictTopology = true
	}
}

// namedSource pairs a mesh with the name used in error reports.
type namedSource struct {
	name     string
	vertices []vec3.T
	normals  []vec3.T
}

// Bake packs three aligned meshes into one unindexed vertex stream: for every face of the base
// mesh, in order, and for corners 0, 1 and 2, it emits the base position and normal followed by
// the poseA and poseB differences from them. The result always holds 3*len(faces) vertices.
//
// The three meshes must share topology. Vertex, normal and face counts are checked up front and
// every face index is bounds checked against all three meshes, so a malformed pose aborts the
// bake instead of reading past a list.
//
// Parameters:
//   - base: the rest pose; its face list drives the walk
//   - poseA: the first morph target
//   - poseB: the second morph target
//   - options: optional bake switches
//
// Returns:
//   - []BlendVertex: the baked vertices in face-then-corner order
//   - error: a *TopologyError or *IndexError when the inputs are inconsistent
func Bake(base, poseA, poseB Source, options ...BakeOption) ([]BlendVertex, error) {
	var opts bakeOptions
	for _, opt := range options {
		opt(&opts)
	}

	if err := validateTopology(base, poseA, poseB, opts.strictTopology); err != nil {
		return nil, err
	}

	meshes := [3]namedSource{
		{name: "base", vertices: base.VertexList(), normals: base.NormalList()},
		{name: "poseA", vertices: poseA.VertexList(), normals: poseA.NormalList()},
		{name: "poseB", vertices: poseB.VertexList(), normals: poseB.NormalList()},
	}

	faces := base.FaceList()
	out := make([]BlendVertex, 0, len(faces)*3)
	for i, f := range faces {
		for j := 0; j < 3; j++ {
			vi, ni := f.Vertex[j], f.Normal[j]
			for _, m := range meshes {
				if int(vi) >= len(m.vertices) {
					return nil, &IndexError{Mesh: m.name, Kind: "vertex", Face: i, Corner: j, Index: vi, Len: len(m.vertices)}
				}
				if int(ni) >= len(m.normals) {
					return nil, &IndexError{Mesh: m.name, Kind: "normal", Face: i, Corner: j, Index: ni, Len: len(m.normals)}
				}
			}

			var v BlendVertex
			v.Position = meshes[0].vertices[vi]
			v.Normal = meshes[0].normals[ni]
			v.PosDeltaA = vec3.Sub(&meshes[1].vertices[vi], &v.Position)
			v.NormDeltaA = vec3.Sub(&meshes[1].normals[ni], &v.Normal)
			v.PosDeltaB = vec3.Sub(&meshes[2].vertices[vi], &v.Position)
			v.NormDeltaB = vec3.Sub(&meshes[2].normals[ni], &v.Normal)
			out = append(out, v)
		}
	}
	return out, nil
}

// validateTopology compares list lengths of both poses against the base mesh and, when strict,
// the face index tuples as well.
func validateTopology(base, poseA, poseB Source, strict bool) error {
	baseFaces := base.FaceList()
	for _, pose := range []struct {
		name string
		src  Source
	}{{"poseA", poseA}, {"poseB", poseB}} {
		if a, b := len(base.VertexList()), len(pose.src.VertexList()); a != b {
			return &TopologyError{Pose: pose.name, List: "vertices", Base: a, Other: b}
		}
		if a, b := len(base.NormalList()), len(pose.src.NormalList()); a != b {
			return &TopologyError{Pose: pose.name, List: "normals", Base: a, Other: b}
		}
		poseFaces := pose.src.FaceList()
		if a, b := len(baseFaces), len(poseFaces); a != b {
			return &TopologyError{Pose: pose.name, List: "faces", Base: a, Other: b}
		}
		if !strict {
			continue
		}
		for i := range baseFaces {
			if baseFaces[i] != poseFaces[i] {
				return &TopologyError{Pose: pose.name, List: "face", Base: i}
			}
		}
	}
	return nil
}
