// Package looper implements a bounded retry loop: a configurable replacement
// for hand-written for/while retry code that counts attempts, enforces an
// attempt limit or timeout, records per-iteration outcomes and fires
// completion callbacks based on the aggregate result.
//
// The loop is synchronous and single-threaded; attempts run one after the
// other on the calling goroutine. Two outcomes are kept deliberately
// separate: a fatal error returned by the action aborts the loop and is
// returned from Run, while running out of attempts or of time is ordinary
// termination, observable only through the loop state.
package looper
