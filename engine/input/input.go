package input

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-morph/common"
)

// Command is a high-level action produced by a key press.
type Command int

const (
	// CommandNone is returned for unbound keys.
	CommandNone Command = iota
	CommandIncreaseWeightA
	CommandDecreaseWeightA
	CommandIncreaseWeightB
	CommandDecreaseWeightB
	CommandPunchLeft
	CommandPunchRight
	CommandToggleAnimation
	CommandFullScreen
	CommandWindowed
	CommandQuit
)

var commandNames = map[Command]string{
	CommandNone:            "none",
	CommandIncreaseWeightA: "increase weight A",
	CommandDecreaseWeightA: "decrease weight A",
	CommandIncreaseWeightB: "increase weight B",
	CommandDecreaseWeightB: "decrease weight B",
	CommandPunchLeft:       "punch left",
	CommandPunchRight:      "punch right",
	CommandToggleAnimation: "toggle animation",
	CommandFullScreen:      "full screen",
	CommandWindowed:        "windowed",
	CommandQuit:            "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// bindings is the implementation of the Bindings interface.
type bindings struct {
	keys map[uint32]Command
}

// Bindings maps key codes to Commands.
type Bindings interface {
	// Lookup returns the command bound to a key.
	//
	// Parameters:
	//   - keyCode: the GLFW key code
	//
	// Returns:
	//   - Command: the bound command, or CommandNone
	//   - bool: true if the key is bound
	Lookup(keyCode uint32) (Command, bool)

	// Bind assigns a command to a key, replacing any previous binding of that key.
	//
	// Parameters:
	//   - keyCode: the GLFW key code
	//   - cmd: the command to run
	Bind(keyCode uint32, cmd Command)

	// Unbind removes a key binding. Unbinding an unbound key is a no-op.
	//
	// Parameters:
	//   - keyCode: the GLFW key code
	Unbind(keyCode uint32)

	// Keys returns every key bound to a command, in ascending key code order.
	//
	// Parameters:
	//   - cmd: the command to search for
	//
	// Returns:
	//   - []uint32: the bound key codes
	Keys(cmd Command) []uint32
}

var _ Bindings = &bindings{}

// NewBindings creates an empty Bindings table.
//
// Returns:
//   - Bindings: a table with no keys bound
func NewBindings() Bindings {
	return &bindings{keys: make(map[uint32]Command)}
}

// DefaultBindings returns the demo's keyboard layout:
// Q/W lower and raise weight A, A/S lower and raise weight B, Z and X punch,
// Space toggles pulse playback, F and N switch between full screen and windowed, Esc quits.
//
// Returns:
//   - Bindings: the default key table
func DefaultBindings() Bindings {
	b := NewBindings()
	b.Bind(common.KeyQ, CommandDecreaseWeightA)
	b.Bind(common.KeyW, CommandIncreaseWeightA)
	b.Bind(common.KeyA, CommandDecreaseWeightB)
	b.Bind(common.KeyS, CommandIncreaseWeightB)
	b.Bind(common.KeyZ, CommandPunchLeft)
	b.Bind(common.KeyX, CommandPunchRight)
	b.Bind(common.KeySpace, CommandToggleAnimation)
	b.Bind(common.KeyF, CommandFullScreen)
	b.Bind(common.KeyN, CommandWindowed)
	b.Bind(common.KeyEsc, CommandQuit)
	return b
}

func (b *bindings) Lookup(keyCode uint32) (Command, bool) {
	cmd, ok := b.keys[keyCode]
	return cmd, ok
}

func (b *bindings) Bind(keyCode uint32, cmd Command) {
	if cmd == CommandNone {
		delete(b.keys, keyCode)
		return
	}
	b.keys[keyCode] = cmd
}

func (b *bindings) Unbind(keyCode uint32) {
	delete(b.keys, keyCode)
}

func (b *bindings) Keys(cmd Command) []uint32 {
	var out []uint32
	for k, c := range b.keys {
		if c == cmd {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
