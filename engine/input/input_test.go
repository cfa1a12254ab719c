package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-morph/common"
)

func TestDefaultBindings(t *testing.T) {
	b := DefaultBindings()

	tests := []struct {
		key  uint32
		want Command
	}{
		{common.KeyQ, CommandDecreaseWeightA},
		{common.KeyW, CommandIncreaseWeightA},
		{common.KeyA, CommandDecreaseWeightB},
		{common.KeyS, CommandIncreaseWeightB},
		{common.KeyZ, CommandPunchLeft},
		{common.KeyX, CommandPunchRight},
		{common.KeySpace, CommandToggleAnimation},
		{common.KeyF, CommandFullScreen},
		{common.KeyN, CommandWindowed},
		{common.KeyEsc, CommandQuit},
	}
	for _, tt := range tests {
		t.Run(common.KeyName(tt.key), func(t *testing.T) {
			got, ok := b.Lookup(tt.key)
			if !ok {
				t.Fatalf("Lookup(%d) not bound", tt.key)
			}
			if got != tt.want {
				t.Errorf("Lookup(%d) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}

	if cmd, ok := b.Lookup('B'); ok || cmd != CommandNone {
		t.Errorf("Lookup('B') = %v, %v, want none, false", cmd, ok)
	}
}

func TestBindAndUnbind(t *testing.T) {
	b := NewBindings()
	b.Bind('P', CommandPunchLeft)
	b.Bind('O', CommandPunchLeft)

	keys := b.Keys(CommandPunchLeft)
	if len(keys) != 2 || keys[0] != 'O' || keys[1] != 'P' {
		t.Errorf("Keys() = %v, want [O P]", keys)
	}

	b.Bind('P', CommandPunchRight)
	if cmd, _ := b.Lookup('P'); cmd != CommandPunchRight {
		t.Errorf("Lookup('P') after rebind = %v, want punch right", cmd)
	}

	b.Unbind('O')
	if _, ok := b.Lookup('O'); ok {
		t.Error("Lookup('O') still bound after Unbind")
	}

	b.Bind('P', CommandNone)
	if _, ok := b.Lookup('P'); ok {
		t.Error("binding CommandNone left the key bound")
	}
}

func TestCommandString(t *testing.T) {
	if got := CommandQuit.String(); got != "quit" {
		t.Errorf("String() = %q, want quit", got)
	}
	if got := Command(99).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}
