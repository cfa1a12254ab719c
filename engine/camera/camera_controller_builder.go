package camera

// ModelControllerBuilderOption is a functional option for configuring a ModelController.
type ModelControllerBuilderOption func(*modelController)

// WithSpinSpeed sets the rotation applied per pixel of spin drag.
//
// Parameters:
//   - degreesPerPixel: rotation in degrees per pixel
//
// Returns:
//   - ModelControllerBuilderOption: option function to apply
func WithSpinSpeed(degreesPerPixel float32) ModelControllerBuilderOption {
	return func(m *modelController) {
		m.spinSpeed = degreesPerPixel
	}
}

// WithTranslateSpeed sets the translation applied per pixel of translate drag.
//
// Parameters:
//   - unitsPerPixel: world units per pixel
//
// Returns:
//   - ModelControllerBuilderOption: option function to apply
func WithTranslateSpeed(unitsPerPixel float32) ModelControllerBuilderOption {
	return func(m *modelController) {
		m.translateSpeed = unitsPerPixel
	}
}

// WithZoomStep sets the Z translation applied per wheel notch.
//
// Parameters:
//   - step: world units per notch
//
// Returns:
//   - ModelControllerBuilderOption: option function to apply
func WithZoomStep(step float32) ModelControllerBuilderOption {
	return func(m *modelController) {
		m.zoomStep = step
	}
}
