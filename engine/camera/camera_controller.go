package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DragMode is the kind of mouse drag a ModelController is tracking.
type DragMode int

const (
	// DragNone means no button is held.
	DragNone DragMode = iota

	// DragSpin rotates the model.
	DragSpin

	// DragTranslate moves the model in the view plane.
	DragTranslate
)

// modelController is the implementation of the ModelController interface.
type modelController struct {
	spinSpeed      float32 // degrees per pixel
	translateSpeed float32 // world units per pixel
	zoomStep       float32 // world units per wheel notch

	spinX, spinY float32 // degrees
	position     mgl32.Vec3

	spinning, translating bool
	spinOriginX           int32
	spinOriginY           int32
	moveOriginX           int32
	moveOriginY           int32
}

// ModelController turns mouse drags and wheel input into a model matrix.
//
// A spin drag rotates the model around its X and Y axes: horizontal motion spins about Y and
// vertical motion spins about X. A translate drag moves the model in X and Y with screen Y
// inverted. The wheel moves the model along Z. Spin and translate drags are tracked
// independently so both buttons may be held at once.
type ModelController interface {
	// BeginDrag starts tracking a drag from the given cursor position.
	//
	// Parameters:
	//   - mode: DragSpin or DragTranslate
	//   - x, y: the cursor position in pixels
	BeginDrag(mode DragMode, x, y int32)

	// EndDrag stops tracking a drag.
	//
	// Parameters:
	//   - mode: DragSpin or DragTranslate
	EndDrag(mode DragMode)

	// MouseMove applies cursor motion to every active drag.
	//
	// Parameters:
	//   - x, y: the cursor position in pixels
	MouseMove(x, y int32)

	// Wheel moves the model towards the viewer for positive deltas and away for negative ones.
	// A zero delta does nothing.
	//
	// Parameters:
	//   - delta: the wheel offset
	Wheel(delta float32)

	// Spin returns the accumulated rotation about X and Y.
	//
	// Returns:
	//   - float32: rotation about X in degrees
	//   - float32: rotation about Y in degrees
	Spin() (float32, float32)

	// Position returns the model translation.
	//
	// Returns:
	//   - mgl32.Vec3: the translation
	Position() mgl32.Vec3

	// ModelMatrix returns T(position) * Ry(spinY) * Rx(spinX).
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4

	// Reset clears rotation, translation and any active drag.
	Reset()
}

var _ ModelController = &modelController{}

// NewModelController creates a ModelController with the default speeds: 0.5 degrees of spin
// and 0.01 units of translation per pixel, and 0.1 units per wheel notch.
//
// Parameters:
//   - options: variadic list of ModelControllerBuilderOption functions
//
// Returns:
//   - ModelController: a new controller with an identity model matrix
func NewModelController(options ...ModelControllerBuilderOption) ModelController {
	m := &modelController{
		spinSpeed:      0.5,
		translateSpeed: 0.01,
		zoomStep:       0.1,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *modelController) BeginDrag(mode DragMode, x, y int32) {
	switch mode {
	case DragSpin:
		m.spinning = true
		m.spinOriginX, m.spinOriginY = x, y
	case DragTranslate:
		m.translating = true
		m.moveOriginX, m.moveOriginY = x, y
	}
}

func (m *modelController) EndDrag(mode DragMode) {
	switch mode {
	case DragSpin:
		m.spinning = false
	case DragTranslate:
		m.translating = false
	}
}

func (m *modelController) MouseMove(x, y int32) {
	if m.spinning {
		dx := float32(x - m.spinOriginX)
		dy := float32(y - m.spinOriginY)
		m.spinY += m.spinSpeed * dx
		m.spinX += m.spinSpeed * dy
		m.spinOriginX, m.spinOriginY = x, y
	}
	if m.translating {
		dx := float32(x - m.moveOriginX)
		dy := float32(y - m.moveOriginY)
		m.position[0] += m.translateSpeed * dx
		m.position[1] -= m.translateSpeed * dy
		m.moveOriginX, m.moveOriginY = x, y
	}
}

func (m *modelController) Wheel(delta float32) {
	switch {
	case delta > 0:
		m.position[2] += m.zoomStep
	case delta < 0:
		m.position[2] -= m.zoomStep
	}
}

func (m *modelController) Spin() (float32, float32) {
	return m.spinX, m.spinY
}

func (m *modelController) Position() mgl32.Vec3 {
	return m.position
}

func (m *modelController) ModelMatrix() mgl32.Mat4 {
	rotX := mgl32.HomogRotate3DX(mgl32.DegToRad(m.spinX))
	rotY := mgl32.HomogRotate3DY(mgl32.DegToRad(m.spinY))
	return mgl32.Translate3D(m.position[0], m.position[1], m.position[2]).Mul4(rotY.Mul4(rotX))
}

func (m *modelController) Reset() {
	m.spinX, m.spinY = 0, 0
	m.position = mgl32.Vec3{}
	m.spinning, m.translating = false, false
}
