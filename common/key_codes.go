package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA     = 65 // A key (ASCII)
	KeyF     = 70 // F key (ASCII)
	KeyN     = 78 // N key (ASCII)
	KeyQ     = 81 // Q key (ASCII)
	KeyS     = 83 // S key (ASCII)
	KeyW     = 87 // W key (ASCII)
	KeyX     = 88 // X key (ASCII)
	KeyZ     = 90 // Z key (ASCII)
	KeySpace = 32 // Spacebar (ASCII)

	KeyEsc = 256 // Escape key (GLFW)
)

// KeyName returns a short printable name for the key codes above, used in help text.
//
// Parameters:
//   - code: the GLFW key code
//
// Returns:
//   - string: the key name, or "?" for codes without a name
func KeyName(code uint32) string {
	switch {
	case code == KeySpace:
		return "Space"
	case code == KeyEsc:
		return "Esc"
	case code >= 'A' && code <= 'Z':
		return string(rune(code))
	case code >= '0' && code <= '9':
		return string(rune(code))
	default:
		return "?"
	}
}
