package looper

import (
	"slices"
	"time"
)

// DefaultMaxAttempts bounds a loop that never had a limit configured.
const DefaultMaxAttempts = 1000

// State carries the counters, termination flags and aggregate outcomes of a
// single loop run. One State is owned by one Looper (or used standalone to
// drive a hand-written loop); it is not safe for concurrent use.
//
// Callbacks receive snapshots produced by Copy, never the live State.
type State struct {
	attempts int
	// index counts completed iterations (action and test both ran) and
	// indexes results. It trails attempts while an iteration is in flight.
	index  int
	done   bool
	failed bool

	maxAttempts int
	limited     bool

	// Aggregate outcomes over every recorded result. allSuccessful and
	// allFailed are vacuously true before the first result; each flag only
	// ever moves in one direction.
	allSuccessful  bool
	someSuccessful bool
	allFailed      bool
	someFailed     bool

	results []bool

	sw Stopwatch
}

// NewState returns a State bounded to DefaultMaxAttempts attempts.
func NewState() State {
	return State{
		maxAttempts:   DefaultMaxAttempts,
		limited:       true,
		allSuccessful: true,
		allFailed:     true,
	}
}

// Needed reports whether another attempt is permitted. Explicit outcomes are
// checked before the attempt bound, and the attempt bound before the
// deadline: an explicit done or failed always wins over a timeout observed in
// the same call.
func (s State) Needed() bool {
	if s.done || s.failed {
		return false
	}
	if s.limited && s.attempts >= s.maxAttempts {
		return false
	}
	return !s.sw.TimedOut()
}

// Attempt is the authoritative gate for starting an iteration. It starts the
// stopwatch on first use, re-evaluates Needed, and either counts the attempt
// and returns true, or finalizes the stopwatch and returns false.
func (s *State) Attempt() bool {
	s.sw.StartIfNeeded()
	if !s.Needed() {
		s.sw.End()
		return false
	}
	s.attempts++
	return true
}

// MarkDone records that the loop's goal has been reached.
func (s *State) MarkDone() {
	s.done = true
}

// MarkFailed records that the loop has conclusively failed.
func (s *State) MarkFailed() {
	s.failed = true
}

// AddResult records the current iteration's test outcome and folds it into
// the aggregate flags.
func (s *State) AddResult(ok bool) {
	if s.index < len(s.results) {
		s.results[s.index] = ok
	} else {
		s.results = append(s.results, ok)
	}
	s.allSuccessful = s.allSuccessful && ok
	s.someSuccessful = s.someSuccessful || ok
	s.allFailed = s.allFailed && !ok
	s.someFailed = s.someFailed || !ok
}

// IncrementIndex marks the current iteration complete, whatever its outcome.
func (s *State) IncrementIndex() {
	s.index++
}

// SetMaxAttempts bounds the loop to n attempts. n must be positive; use
// SetUnbounded to remove the limit. A non-positive n is taken literally and
// permits no attempts at all.
func (s *State) SetMaxAttempts(n int) {
	s.limited = true
	s.maxAttempts = n
}

// SetUnbounded removes the attempt limit.
func (s *State) SetUnbounded() {
	s.limited = false
}

// SetTimeout configures a cutoff relative to the loop's first attempt. A
// non-positive d means no cutoff.
func (s *State) SetTimeout(d time.Duration) {
	s.sw.SetTimeout(d)
}

// SetDeadline configures an absolute cutoff instant. It takes precedence
// over a relative timeout.
func (s *State) SetDeadline(t time.Time) {
	s.sw.SetDeadline(t)
}

// StartTimer starts the stopwatch immediately, overwriting any prior start.
func (s *State) StartTimer() {
	s.sw.Start()
}

// StopTimer finalizes the stopwatch. Safe to call more than once.
func (s *State) StopTimer() {
	s.sw.End()
}

// Reset prepares the State for another run: counters return to zero, the
// explicit flags clear, and the stopwatch is blanked. The attempt bound, the
// timeout configuration, the aggregate flags and the recorded results all
// persist; they are configuration and history, not per-run state.
func (s *State) Reset() {
	s.attempts = 0
	s.index = 0
	s.done = false
	s.failed = false
	s.sw.blank()
}

// Copy returns a snapshot that shares nothing mutable with the live State.
func (s State) Copy() State {
	s.results = slices.Clone(s.results)
	return s
}

// Attempts returns the number of iterations started.
func (s State) Attempts() int {
	return s.attempts
}

// SuccessfulLoops returns the number of iterations completed, which trails
// Attempts while an iteration is in flight.
func (s State) SuccessfulLoops() int {
	return s.index
}

// IsDone reports whether MarkDone has been called since the last Reset.
func (s State) IsDone() bool {
	return s.done
}

// IsFailed reports whether MarkFailed has been called since the last Reset.
func (s State) IsFailed() bool {
	return s.failed
}

// IsLimited reports whether an attempt bound is in force.
func (s State) IsLimited() bool {
	return s.limited
}

// MaxAttempts returns the configured attempt bound. It is only meaningful
// when IsLimited reports true.
func (s State) MaxAttempts() int {
	return s.maxAttempts
}

// AllSuccessful reports whether every recorded test result was true.
// Vacuously true when no results have been recorded.
func (s State) AllSuccessful() bool {
	return s.allSuccessful
}

// SomeSuccessful reports whether at least one recorded test result was true.
func (s State) SomeSuccessful() bool {
	return s.someSuccessful
}

// AllFailed reports whether every recorded test result was false. Vacuously
// true when no results have been recorded.
func (s State) AllFailed() bool {
	return s.allFailed
}

// SomeFailed reports whether at least one recorded test result was false.
func (s State) SomeFailed() bool {
	return s.someFailed
}

// Results returns a copy of the per-iteration test outcomes in order.
func (s State) Results() []bool {
	return slices.Clone(s.results)
}

// TimedOut reports whether the loop's cutoff has passed.
func (s State) TimedOut() bool {
	return s.sw.TimedOut()
}

// StartTime returns the instant of the first attempt, or the zero time if
// the loop has not started.
func (s State) StartTime() time.Time {
	return s.sw.StartTime()
}

// EndTime returns the instant the loop stopped, or the zero time while it is
// still running.
func (s State) EndTime() time.Time {
	return s.sw.EndTime()
}

// Elapsed finalizes the stopwatch and returns the run's measured duration.
func (s *State) Elapsed() time.Duration {
	return s.sw.Elapsed()
}

// Stopwatch returns a value copy of the owned stopwatch.
func (s State) Stopwatch() Stopwatch {
	return s.sw.Copy()
}
