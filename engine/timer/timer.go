package timer

import (
	"time"
)

// defaultCatchUpLimit bounds how many missed periods a single timer replays in one Advance.
const defaultCatchUpLimit = 16

// Clock returns the current time. The scheduler reads it when a timer is armed.
type Clock func() time.Time

// scheduler is the implementation of the Scheduler interface.
type scheduler struct {
	clock        Clock
	catchUpLimit int
	timers       []*periodicTimer
}

// Scheduler drives periodic timers from a single goroutine.
//
// The Scheduler never starts goroutines of its own. Timers only fire inside Advance, on the
// goroutine that calls it, which lets the window loop own every state mutation without locks.
type Scheduler interface {
	// NewTimer registers a stopped timer with the scheduler.
	// Timers fire in the order they were created.
	//
	// Parameters:
	//   - name: a label used in logs and tests
	//   - callback: the function invoked every time the timer fires
	//
	// Returns:
	//   - Timer: the new, inactive timer
	NewTimer(name string, callback func()) Timer

	// Advance fires every timer that is due at now.
	// A timer that fell behind replays its missed periods, up to the catch-up limit, then
	// realigns its next deadline to now plus its period.
	//
	// Parameters:
	//   - now: the current time
	//
	// Returns:
	//   - int: the number of callbacks fired
	Advance(now time.Time) int

	// Now reads the scheduler's clock.
	//
	// Returns:
	//   - time.Time: the current time according to the configured Clock
	Now() time.Time

	// ActiveCount returns how many timers are currently armed.
	//
	// Returns:
	//   - int: the number of active timers
	ActiveCount() int
}

var _ Scheduler = &scheduler{}

// NewScheduler creates a new Scheduler using the wall clock unless a Clock option is given.
//
// Parameters:
//   - options: variadic list of SchedulerBuilderOption functions to configure the Scheduler
//
// Returns:
//   - Scheduler: a new Scheduler with no timers
func NewScheduler(options ...SchedulerBuilderOption) Scheduler {
	s := &scheduler{
		clock:        time.Now,
		catchUpLimit: defaultCatchUpLimit,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scheduler) NewTimer(name string, callback func()) Timer {
	t := &periodicTimer{
		name:      name,
		callback:  callback,
		scheduler: s,
	}
	s.timers = append(s.timers, t)
	return t
}

func (s *scheduler) Advance(now time.Time) int {
	fired := 0
	// timers may be created by callbacks, so the length is re-read each iteration
	for i := 0; i < len(s.timers); i++ {
		t := s.timers[i]
		replayed := 0
		for t.active && !t.due.After(now) {
			if replayed >= s.catchUpLimit {
				t.due = now.Add(t.period)
				break
			}
			t.due = t.due.Add(t.period)
			t.fires++
			replayed++
			fired++
			t.callback()
		}
	}
	return fired
}

func (s *scheduler) Now() time.Time {
	return s.clock()
}

func (s *scheduler) ActiveCount() int {
	n := 0
	for _, t := range s.timers {
		if t.active {
			n++
		}
	}
	return n
}

// periodicTimer is the implementation of the Timer interface.
type periodicTimer struct {
	name      string
	callback  func()
	scheduler *scheduler

	period time.Duration
	due    time.Time
	active bool
	fires  uint64
}

// Timer is a restartable periodic timer owned by a Scheduler.
type Timer interface {
	// Name returns the label given at creation.
	//
	// Returns:
	//   - string: the timer name
	Name() string

	// Start arms the timer so it first fires one period after the scheduler's current clock.
	// Starting an active timer restarts it with the new period.
	// Non-positive periods are raised to one nanosecond, so the timer fires on every Advance.
	//
	// Parameters:
	//   - period: the interval between callbacks
	Start(period time.Duration)

	// Stop disarms the timer. A stopped timer never fires, even when it was already due
	// in the Advance pass that is currently running.
	Stop()

	// Active reports whether the timer is armed.
	//
	// Returns:
	//   - bool: true if the timer will fire once due
	Active() bool

	// Period returns the interval the timer was last started with.
	//
	// Returns:
	//   - time.Duration: the timer period
	Period() time.Duration

	// Fires returns how many times the callback has run since the timer was created.
	//
	// Returns:
	//   - uint64: the callback count
	Fires() uint64
}

var _ Timer = &periodicTimer{}

func (t *periodicTimer) Name() string {
	return t.name
}

func (t *periodicTimer) Start(period time.Duration) {
	if period <= 0 {
		period = time.Nanosecond
	}
	t.period = period
	t.due = t.scheduler.clock().Add(period)
	t.active = true
}

func (t *periodicTimer) Stop() {
	t.active = false
}

func (t *periodicTimer) Active() bool {
	return t.active
}

func (t *periodicTimer) Period() time.Duration {
	return t.period
}

func (t *periodicTimer) Fires() uint64 {
	return t.fires
}
