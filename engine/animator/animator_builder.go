package animator

import (
	"time"

	"github.com/Carmen-Shannon/oxy-morph/engine/timer"
)

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithScheduler is an option builder that sets the Scheduler the channel timers are created on.
// The event loop must advance this scheduler for pulses to play.
//
// Parameters:
//   - s: the scheduler to register channel timers with
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the scheduler option to an animator
func WithScheduler(s timer.Scheduler) AnimatorBuilderOption {
	return func(a *animator) {
		a.scheduler = s
	}
}

// WithAdjustStep is an option builder that sets the amount Adjust adds or removes.
//
// Parameters:
//   - step: the manual adjustment step, ignored unless positive
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the adjust step option to an animator
func WithAdjustStep(step float32) AnimatorBuilderOption {
	return func(a *animator) {
		if step > 0 {
			a.adjustStep = step
		}
	}
}

// WithPulseStep is an option builder that sets the amount a pulse tick adds or removes.
//
// Parameters:
//   - step: the per-tick pulse step, ignored unless positive
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the pulse step option to an animator
func WithPulseStep(step float32) AnimatorBuilderOption {
	return func(a *animator) {
		if step > 0 {
			a.pulseStep = step
		}
	}
}

// WithOvershoot is an option builder that sets the weight a rising pulse must exceed before it
// turns around.
//
// Parameters:
//   - threshold: the overshoot threshold, ignored unless positive
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the overshoot option to an animator
func WithOvershoot(threshold float32) AnimatorBuilderOption {
	return func(a *animator) {
		if threshold > 0 {
			a.overshoot = threshold
		}
	}
}

// WithTickPeriod is an option builder that sets the interval of the pulse timers.
//
// Parameters:
//   - period: the timer period, ignored unless positive
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the tick period option to an animator
func WithTickPeriod(period time.Duration) AnimatorBuilderOption {
	return func(a *animator) {
		if period > 0 {
			a.tickPeriod = period
		}
	}
}
