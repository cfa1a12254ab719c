package exporter

// ExportOption is a functional option applied to a single BuildDocument call.
type ExportOption func(*exportOptions)

// WithName sets the mesh and node name.
//
// Parameters:
//   - name: the name, ignored when empty
//
// Returns:
//   - ExportOption: option function to apply
func WithName(name string) ExportOption {
	return func(o *exportOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// WithWeights sets the mesh's default morph weights.
//
// Parameters:
//   - weightA: the default weight of the first target
//   - weightB: the default weight of the second target
//
// Returns:
//   - ExportOption: option function to apply
func WithWeights(weightA, weightB float32) ExportOption {
	return func(o *exportOptions) {
		o.weights = [2]float32{weightA, weightB}
	}
}

// WithTargetNames sets the names stored in the mesh extras for both targets.
//
// Parameters:
//   - nameA: the first target's name
//   - nameB: the second target's name
//
// Returns:
//   - ExportOption: option function to apply
func WithTargetNames(nameA, nameB string) ExportOption {
	return func(o *exportOptions) {
		o.targetNames = [2]string{nameA, nameB}
	}
}
