package looper

import "time"

// now is the clock source for the package. Tests swap it out for a fake.
var now = time.Now

// Stopwatch tracks the start and end instants of a loop run and an optional
// deadline. A Stopwatch belongs to exactly one State and is not safe for
// concurrent use.
//
// The zero value is an unstarted stopwatch with no deadline.
type Stopwatch struct {
	// startTime is the first-use instant. Zero means not started yet.
	startTime time.Time
	// endTime is stamped once by End and never overwritten.
	endTime time.Time
	// deadline is an absolute cutoff. It takes precedence over timeout.
	deadline time.Time
	// timeout is a relative cutoff, measured from the actual start instant.
	timeout time.Duration
}

// Start stamps the start instant immediately, overwriting any previous one.
func (s *Stopwatch) Start() {
	s.startTime = now()
}

// StartIfNeeded stamps the start instant unless the stopwatch is already
// running. A configured relative timeout counts from this instant, not from
// when it was configured.
func (s *Stopwatch) StartIfNeeded() {
	if s.startTime.IsZero() {
		s.startTime = now()
	}
}

// End stamps the end instant. Calling End again has no effect.
func (s *Stopwatch) End() {
	if s.endTime.IsZero() {
		s.endTime = now()
	}
}

// SetDeadline configures an absolute cutoff instant.
func (s *Stopwatch) SetDeadline(t time.Time) {
	s.deadline = t
}

// SetTimeout configures a cutoff relative to the start instant. A
// non-positive d means no relative cutoff. If a deadline is also set, the
// deadline wins and the timeout is ignored.
func (s *Stopwatch) SetTimeout(d time.Duration) {
	s.timeout = d
}

// Deadline returns the effective cutoff instant: the absolute deadline if one
// is set, otherwise the start instant plus the relative timeout. The zero
// time means no cutoff applies (none configured, or the relative timeout has
// no start instant to count from yet).
func (s Stopwatch) Deadline() time.Time {
	if !s.deadline.IsZero() {
		return s.deadline
	}
	if s.timeout > 0 && !s.startTime.IsZero() {
		return s.startTime.Add(s.timeout)
	}
	return time.Time{}
}

// TimedOut reports whether the effective cutoff has passed. It is a pure
// query; it never finalizes the stopwatch. Callers that stop on timeout
// should call End themselves.
func (s Stopwatch) TimedOut() bool {
	deadline := s.Deadline()
	if deadline.IsZero() {
		return false
	}
	return !now().Before(deadline)
}

// Elapsed finalizes the stopwatch and returns the measured duration. If the
// stopwatch never started it returns zero without finalizing.
func (s *Stopwatch) Elapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	s.End()
	return s.endTime.Sub(s.startTime)
}

// Split returns the time elapsed so far without finalizing the stopwatch.
func (s Stopwatch) Split() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	if !s.endTime.IsZero() {
		return s.endTime.Sub(s.startTime)
	}
	return now().Sub(s.startTime)
}

// Restart clears the end instant and re-stamps the start instant. The
// deadline and timeout configuration are kept.
func (s *Stopwatch) Restart() {
	s.endTime = time.Time{}
	s.startTime = now()
}

// blank clears both instants, leaving the cutoff configuration in place. The
// relative timeout will count from the next start.
func (s *Stopwatch) blank() {
	s.startTime = time.Time{}
	s.endTime = time.Time{}
}

// StartTime returns the start instant, or the zero time if not started.
func (s Stopwatch) StartTime() time.Time {
	return s.startTime
}

// EndTime returns the end instant, or the zero time if not ended.
func (s Stopwatch) EndTime() time.Time {
	return s.endTime
}

// Copy returns an independent value copy of the stopwatch.
func (s Stopwatch) Copy() Stopwatch {
	return s
}
