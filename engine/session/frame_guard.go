package session

import "errors"

// FrameGuard watches Frame results and decides when the run loop should stop.
// ErrClosed stops immediately; any other error stops once it repeats on limit consecutive frames.
type FrameGuard struct {
	limit    int
	failures int
}

// NewFrameGuard creates a FrameGuard that tolerates limit-1 consecutive failing frames.
//
// Parameters:
//   - limit: consecutive failures that end the run, raised to 1 if lower
//
// Returns:
//   - *FrameGuard: a guard with no failures recorded
func NewFrameGuard(limit int) *FrameGuard {
	return &FrameGuard{limit: max(limit, 1)}
}

// Observe records the result of one frame.
//
// Parameters:
//   - err: the error Frame returned, or nil
//
// Returns:
//   - bool: true when the caller should quit
func (g *FrameGuard) Observe(err error) bool {
	if err == nil {
		g.failures = 0
		return false
	}
	if errors.Is(err, ErrClosed) {
		return true
	}
	g.failures++
	return g.failures >= g.limit
}

// Failures returns the current run of consecutive failing frames.
func (g *FrameGuard) Failures() int {
	return g.failures
}
