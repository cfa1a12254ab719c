package animator

// Channel identifies one of the two independent blend-weight channels.
type Channel int

const (
	// ChannelA drives the first morph target (the left punch pose).
	ChannelA Channel = iota

	// ChannelB drives the second morph target (the right punch pose).
	ChannelB

	channelCount
)

func (c Channel) String() string {
	switch c {
	case ChannelA:
		return "A"
	case ChannelB:
		return "B"
	default:
		return "unknown"
	}
}

// valid reports whether c names an existing channel.
func (c Channel) valid() bool {
	return c >= 0 && c < channelCount
}

// PulseState is the phase of a channel's automatic punch pulse.
type PulseState int

const (
	// StateIdle means no pulse is running and the channel timer is stopped.
	StateIdle PulseState = iota

	// StateRising means the weight is climbing towards the overshoot threshold.
	StateRising

	// StateFalling means the weight is dropping back to zero.
	StateFalling
)

func (s PulseState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRising:
		return "rising"
	case StateFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// Direction is the sign of a manual weight adjustment.
type Direction int

const (
	// Decrease lowers the weight by one adjust step.
	Decrease Direction = -1

	// Increase raises the weight by one adjust step.
	Increase Direction = 1
)
