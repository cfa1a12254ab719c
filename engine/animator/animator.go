package animator

import (
	"time"

	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/Carmen-Shannon/oxy-morph/engine/timer"
)

const (
	defaultAdjustStep float32 = 0.1
	defaultPulseStep  float32 = 0.2
	defaultOvershoot  float32 = 1.1
	defaultTickPeriod         = 4 * time.Millisecond
)

// channel holds the complete state of one blend-weight channel.
type channel struct {
	weight float32
	state  PulseState
	timer  timer.Timer
}

// animator is the implementation of the Animator interface.
type animator struct {
	scheduler  timer.Scheduler
	channels   [channelCount]channel
	adjustStep float32
	pulseStep  float32
	overshoot  float32
	tickPeriod time.Duration
	paused     bool
}

// Animator defines the public interface for the pose animation state machine.
//
// The Animator owns two blend weights in [0, 1], one per morph target. Each weight can be nudged
// manually with Adjust or driven by a punch pulse: a periodic timer raises the weight past the
// overshoot threshold and then lowers it back to zero, after which the timer stops itself.
// Channels share no state. All methods must be called from the goroutine that advances the
// Scheduler, so no locking is performed.
type Animator interface {
	// Adjust moves a channel's weight one adjust step in the given direction and clamps the
	// result to [0, 1]. It works in every pulse state and never changes the state.
	//
	// Parameters:
	//   - ch: the channel to adjust
	//   - dir: Increase or Decrease
	//
	// Returns:
	//   - float32: the new weight
	Adjust(ch Channel, dir Direction) float32

	// Punch starts a pulse on an idle channel: the weight is reset to 0, the state becomes
	// Rising and the channel timer is started. A channel that is already pulsing is left alone.
	//
	// Parameters:
	//   - ch: the channel to pulse
	//
	// Returns:
	//   - bool: true if a new pulse was started
	Punch(ch Channel) bool

	// Tick advances a channel's pulse by one step. It is the channel timer callback and does
	// nothing on an idle channel.
	//
	// Parameters:
	//   - ch: the channel to advance
	Tick(ch Channel)

	// ToggleAnimation pauses or resumes pulse playback. Pausing stops every running channel
	// timer and keeps the weights where they are; resuming restarts the timers of channels that
	// are still pulsing. Manual adjustment keeps working while paused.
	//
	// Returns:
	//   - bool: true if playback is now paused
	ToggleAnimation() bool

	// Stop cancels every channel timer for shutdown. Weights and states are left untouched.
	Stop()

	// Weights returns both channel weights.
	//
	// Returns:
	//   - float32: the ChannelA weight
	//   - float32: the ChannelB weight
	Weights() (float32, float32)

	// Weight returns a single channel weight.
	//
	// Parameters:
	//   - ch: the channel to query
	//
	// Returns:
	//   - float32: the weight, 0 for an unknown channel
	Weight(ch Channel) float32

	// State returns the pulse phase of a channel.
	//
	// Parameters:
	//   - ch: the channel to query
	//
	// Returns:
	//   - PulseState: the current phase, StateIdle for an unknown channel
	State(ch Channel) PulseState

	// Pulsing reports whether a pulse is in progress on the channel.
	//
	// Parameters:
	//   - ch: the channel to query
	//
	// Returns:
	//   - bool: true if the channel is Rising or Falling
	Pulsing(ch Channel) bool

	// Paused reports whether pulse playback is paused.
	//
	// Returns:
	//   - bool: true if paused
	Paused() bool

	// Scheduler returns the scheduler that owns the channel timers.
	//
	// Returns:
	//   - timer.Scheduler: the scheduler to advance from the event loop
	Scheduler() timer.Scheduler
}

var _ Animator = &animator{}

// NewAnimator creates a new Animator with both weights at zero and both channels idle.
// When no scheduler is supplied through WithScheduler a wall-clock scheduler is created.
//
// Parameters:
//   - options: variadic list of AnimatorBuilderOption functions to configure the Animator
//
// Returns:
//   - Animator: a new Animator instance
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	a := &animator{
		adjustStep: defaultAdjustStep,
		pulseStep:  defaultPulseStep,
		overshoot:  defaultOvershoot,
		tickPeriod: defaultTickPeriod,
	}
	for _, opt := range options {
		opt(a)
	}
	if a.scheduler == nil {
		a.scheduler = timer.NewScheduler()
	}

	for i := range a.channels {
		ch := Channel(i)
		a.channels[i].timer = a.scheduler.NewTimer("pulse "+ch.String(), func() {
			a.Tick(ch)
		})
	}
	return a
}

func (a *animator) Adjust(ch Channel, dir Direction) float32 {
	if !ch.valid() {
		return 0
	}
	c := &a.channels[ch]
	c.weight = common.Clamp(c.weight+float32(dir)*a.adjustStep, 0, 1)
	return c.weight
}

func (a *animator) Punch(ch Channel) bool {
	if !ch.valid() {
		return false
	}
	c := &a.channels[ch]
	if c.state != StateIdle {
		return false
	}
	c.weight = 0
	c.state = StateRising
	if !a.paused {
		c.timer.Start(a.tickPeriod)
	}
	return true
}

func (a *animator) Tick(ch Channel) {
	if !ch.valid() {
		return
	}
	c := &a.channels[ch]
	switch c.state {
	case StateRising:
		c.weight += a.pulseStep
		// no clamp on the way up, the overshoot is visible for one tick
		if c.weight > a.overshoot {
			c.state = StateFalling
		}
	case StateFalling:
		c.weight -= a.pulseStep
		if c.weight <= 0 {
			c.weight = 0
			c.state = StateIdle
			c.timer.Stop()
		}
	}
}

func (a *animator) ToggleAnimation() bool {
	a.paused = !a.paused
	for i := range a.channels {
		c := &a.channels[i]
		if a.paused {
			c.timer.Stop()
			continue
		}
		if c.state != StateIdle {
			c.timer.Start(a.tickPeriod)
		}
	}
	return a.paused
}

func (a *animator) Stop() {
	for i := range a.channels {
		a.channels[i].timer.Stop()
	}
}

func (a *animator) Weights() (float32, float32) {
	return a.channels[ChannelA].weight, a.channels[ChannelB].weight
}

func (a *animator) Weight(ch Channel) float32 {
	if !ch.valid() {
		return 0
	}
	return a.channels[ch].weight
}

func (a *animator) State(ch Channel) PulseState {
	if !ch.valid() {
		return StateIdle
	}
	return a.channels[ch].state
}

func (a *animator) Pulsing(ch Channel) bool {
	return a.State(ch) != StateIdle
}

func (a *animator) Paused() bool {
	return a.paused
}

func (a *animator) Scheduler() timer.Scheduler {
	return a.scheduler
}
