package profiler

import (
	"time"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often statistics are logged.
//
// Parameters:
//   - interval: the report interval, ignored unless positive
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithStatus appends the returned text to every report, e.g. the current blend weights.
//
// Parameters:
//   - status: called once per report
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithStatus(status func() string) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.status = status
	}
}

// WithClock replaces the wall clock. Tests use it to step time by hand.
//
// Parameters:
//   - clock: the function returning the current time
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(clock func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithLogger redirects report lines away from the standard logger.
//
// Parameters:
//   - logf: a Printf-style sink
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogger(logf func(format string, args ...any)) ProfilerBuilderOption {
	return func(p *Profiler) {
		if logf != nil {
			p.logf = logf
		}
	}
}
