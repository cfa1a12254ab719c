package timer

// SchedulerBuilderOption is a functional option for configuring a Scheduler during construction.
type SchedulerBuilderOption func(*scheduler)

// WithClock is an option builder that replaces the wall clock used to arm timers.
// Tests pass a manual clock so that time only moves when they say so.
//
// Parameters:
//   - clock: the function returning the current time
//
// Returns:
//   - SchedulerBuilderOption: a function that applies the clock option to a scheduler
func WithClock(clock Clock) SchedulerBuilderOption {
	return func(s *scheduler) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithCatchUpLimit is an option builder that sets how many missed periods one timer may replay
// during a single Advance before it is realigned.
//
// Parameters:
//   - limit: the maximum replays per timer per Advance, values below 1 are raised to 1
//
// Returns:
//   - SchedulerBuilderOption: a function that applies the catch-up limit option to a scheduler
func WithCatchUpLimit(limit int) SchedulerBuilderOption {
	return func(s *scheduler) {
		if limit < 1 {
			limit = 1
		}
		s.catchUpLimit = limit
	}
}
