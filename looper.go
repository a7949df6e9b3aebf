package looper

import (
	"errors"
	"time"
)

// Action is the work performed on each attempt. It receives a snapshot of
// the loop state. Returning a non-nil error aborts the loop immediately: the
// test does not run for that iteration, no completion callback fires, and
// the error is returned to the caller of Run. Soft per-attempt failure is
// reported through the Test, not through the error.
type Action func(s State) error

// Test reports whether the most recent attempt achieved the loop's goal. It
// receives a snapshot of the loop state.
type Test func(s State) bool

// Callback observes a snapshot of the loop state.
type Callback func(s State)

// Looper drives a bounded retry loop: it counts attempts against the
// configured limits, runs the action and the test each iteration, and fires
// completion callbacks keyed on the aggregate outcome. A Looper is owned by
// one goroutine; it is not safe for concurrent use.
type Looper struct {
	state State

	action Action
	test   Test
	// stopOnSuccess ends the loop on the first true test result.
	stopOnSuccess bool
	// stopOnFailure ends the loop on the first false test result.
	stopOnFailure bool

	// Completion callbacks. The aggregate four are independent: any subset
	// whose predicate holds will fire, in the order all-successful,
	// all-failed, some-successful, some-failed.
	onAllSuccessful  Callback
	onAllFailed      Callback
	onSomeSuccessful Callback
	onSomeFailed     Callback
	onSuccess        Callback
	onFailure        Callback

	err error
}

func doNothing(State) error { return nil }

func returnFalse(State) bool { return false }

// New creates a looper with the default configuration: a no-op action, an
// always-false test, stop on first success, and a bound of
// DefaultMaxAttempts attempts.
func New(options ...Option) (*Looper, error) {
	l := &Looper{
		state:         NewState(),
		action:        doNothing,
		test:          returnFalse,
		stopOnSuccess: true,
		stopOnFailure: false,
	}
	for _, o := range options {
		o(l)
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}

	return l, nil
}

// UntilSuccess configures a loop that retries until its test passes, with no
// attempt limit.
func UntilSuccess(options ...Option) (*Looper, error) {
	base := []Option{
		WithStopOnSuccess(true),
		WithStopOnFailure(false),
		WithInfiniteLoops(),
	}
	return New(append(base, options...)...)
}

// UntilSuccessOrLimit configures a loop that retries until its test passes
// or limit attempts have run.
func UntilSuccessOrLimit(limit int, options ...Option) (*Looper, error) {
	base := []Option{
		WithStopOnSuccess(true),
		WithStopOnFailure(false),
		WithMaxAttempts(limit),
	}
	return New(append(base, options...)...)
}

// UntilLimit configures a loop that runs exactly limit attempts regardless
// of test outcomes.
func UntilLimit(limit int, options ...Option) (*Looper, error) {
	base := []Option{
		WithStopOnSuccess(false),
		WithStopOnFailure(false),
		WithMaxAttempts(limit),
	}
	return New(append(base, options...)...)
}

// UntilFailure configures a loop that runs until its test first fails, with
// no attempt limit.
func UntilFailure(options ...Option) (*Looper, error) {
	base := []Option{
		WithStopOnSuccess(false),
		WithStopOnFailure(true),
		WithInfiniteLoops(),
	}
	return New(append(base, options...)...)
}

// UntilFailureOrLimit configures a loop that runs until its test first fails
// or limit attempts have run.
func UntilFailureOrLimit(limit int, options ...Option) (*Looper, error) {
	base := []Option{
		WithStopOnSuccess(false),
		WithStopOnFailure(true),
		WithMaxAttempts(limit),
	}
	return New(append(base, options...)...)
}

// Validate checks the configuration for invalid values.
func (l *Looper) Validate() error {
	if l.action == nil {
		return errors.New("action cannot be nil")
	}
	if l.test == nil {
		return errors.New("test cannot be nil")
	}
	if l.state.IsLimited() && l.state.MaxAttempts() <= 0 {
		return errors.New("max attempts must be greater than zero")
	}
	if l.state.sw.timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	return nil
}

// Run executes the loop until the state machine refuses another attempt.
//
// Each iteration runs the action, then the test, records the result, applies
// the stop-on-success and stop-on-failure policies, and fires the matching
// per-iteration hook. When iteration ends the stopwatch is finalized and
// every aggregate completion callback whose predicate holds fires; the
// predicates are not mutually exclusive, so several may fire for one run.
//
// A non-nil error from the action aborts the run at once: the error is
// returned, retained for Err, and no test, result or completion callback
// runs for that iteration. Running out of attempts or of time is not an
// error; inspect the state to tell those outcomes apart.
func (l *Looper) Run() error {
	l.err = nil
	for l.state.Attempt() {
		if err := l.action(l.state.Copy()); err != nil {
			l.err = err
			l.state.StopTimer()
			return err
		}
		ok := l.test(l.state.Copy())
		l.state.AddResult(ok)
		if ok {
			if l.stopOnSuccess {
				l.state.MarkDone()
			}
			if l.onSuccess != nil {
				l.onSuccess(l.state.Copy())
			}
		} else {
			if l.stopOnFailure {
				l.state.MarkFailed()
			}
			if l.onFailure != nil {
				l.onFailure(l.state.Copy())
			}
		}
		l.state.IncrementIndex()
	}
	l.state.StopTimer()

	if l.state.AllSuccessful() && l.onAllSuccessful != nil {
		l.onAllSuccessful(l.state.Copy())
	}
	if l.state.AllFailed() && l.onAllFailed != nil {
		l.onAllFailed(l.state.Copy())
	}
	if l.state.SomeSuccessful() && l.onSomeSuccessful != nil {
		l.onSomeSuccessful(l.state.Copy())
	}
	if l.state.SomeFailed() && l.onSomeFailed != nil {
		l.onSomeFailed(l.state.Copy())
	}
	return nil
}

// Loop replaces the action and runs the loop.
func (l *Looper) Loop(action Action) error {
	l.action = action
	return l.Run()
}

// LoopWithTest replaces the action and the test and runs the loop.
func (l *Looper) LoopWithTest(action Action, test Test) error {
	l.action = action
	l.test = test
	return l.Run()
}

// Reset prepares the looper for another run. Limits, timeout configuration
// and recorded history persist; see State.Reset.
func (l *Looper) Reset() {
	l.err = nil
	l.state.Reset()
}

// Attempts returns the number of iterations started. This may exceed
// SuccessfulLoops when the final iteration was cut short.
func (l *Looper) Attempts() int {
	return l.state.Attempts()
}

// SuccessfulLoops returns the number of iterations that ran to completion.
func (l *Looper) SuccessfulLoops() int {
	return l.state.SuccessfulLoops()
}

// Elapsed returns the measured duration of the run, finalizing the stopwatch
// if the loop is somehow still timing.
func (l *Looper) Elapsed() time.Duration {
	return l.state.Elapsed()
}

// StartTime returns the instant of the first attempt.
func (l *Looper) StartTime() time.Time {
	return l.state.StartTime()
}

// EndTime returns the instant the loop stopped.
func (l *Looper) EndTime() time.Time {
	return l.state.EndTime()
}

// IsLimited reports whether an attempt bound is in force.
func (l *Looper) IsLimited() bool {
	return l.state.IsLimited()
}

// Err returns the fatal error from the most recent run, or nil.
func (l *Looper) Err() error {
	return l.err
}

// State returns a snapshot of the loop state.
func (l *Looper) State() State {
	return l.state.Copy()
}
