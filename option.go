package looper

import "time"

type Option func(l *Looper)

// WithAction sets the work performed on each attempt.
func WithAction(action Action) Option {
	return func(l *Looper) {
		l.action = action
	}
}

// WithTest sets the per-iteration success predicate. The default test always
// returns false, so the loop runs until its limit or timeout.
func WithTest(test Test) Option {
	return func(l *Looper) {
		l.test = test
	}
}

// WithStopOnSuccess controls whether a true test result ends the loop.
// Default is true.
func WithStopOnSuccess(stop bool) Option {
	return func(l *Looper) {
		l.stopOnSuccess = stop
	}
}

// WithStopOnFailure controls whether a false test result ends the loop.
// Default is false.
func WithStopOnFailure(stop bool) Option {
	return func(l *Looper) {
		l.stopOnFailure = stop
	}
}

// WithMaxAttempts bounds the loop to n attempts. n must be greater than
// zero; use WithInfiniteLoops to remove the bound.
func WithMaxAttempts(n int) Option {
	return func(l *Looper) {
		l.state.SetMaxAttempts(n)
	}
}

// WithInfiniteLoops removes the default attempt bound of DefaultMaxAttempts.
func WithInfiniteLoops() Option {
	return func(l *Looper) {
		l.state.SetUnbounded()
	}
}

// WithTimeout ends the loop once d has elapsed since its first attempt.
func WithTimeout(d time.Duration) Option {
	return func(l *Looper) {
		l.state.SetTimeout(d)
	}
}

// WithDeadline ends the loop once the instant t has passed. A deadline takes
// precedence over WithTimeout.
func WithDeadline(t time.Time) Option {
	return func(l *Looper) {
		l.state.SetDeadline(t)
	}
}

// WithOnSuccess sets a hook invoked after each iteration whose test passed.
func WithOnSuccess(cb Callback) Option {
	return func(l *Looper) {
		l.onSuccess = cb
	}
}

// WithOnFailure sets a hook invoked after each iteration whose test failed.
func WithOnFailure(cb Callback) Option {
	return func(l *Looper) {
		l.onFailure = cb
	}
}

// WithOnAllSuccessful sets a completion callback fired when every recorded
// test result was true.
func WithOnAllSuccessful(cb Callback) Option {
	return func(l *Looper) {
		l.onAllSuccessful = cb
	}
}

// WithOnSomeSuccessful sets a completion callback fired when at least one
// recorded test result was true.
func WithOnSomeSuccessful(cb Callback) Option {
	return func(l *Looper) {
		l.onSomeSuccessful = cb
	}
}

// WithOnAllFailed sets a completion callback fired when every recorded test
// result was false.
func WithOnAllFailed(cb Callback) Option {
	return func(l *Looper) {
		l.onAllFailed = cb
	}
}

// WithOnSomeFailed sets a completion callback fired when at least one
// recorded test result was false.
func WithOnSomeFailed(cb Callback) Option {
	return func(l *Looper) {
		l.onSomeFailed = cb
	}
}
