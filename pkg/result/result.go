// Package result carries the outcome of validation and generation steps.
//
// A Result is either a success or a failure. A failure carries a message, an
// error payload, or both. Nothing in this package panics except ThrowOnFail
// and Must, which exist for callers that choose to escalate.
package result

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Result is the outcome of an operation that produces no value.
type Result struct {
	failed  bool
	message string
	err     error
}

// Succeed returns a successful Result.
func Succeed() Result {
	return Result{}
}

// Fail returns a failed Result carrying message.
func Fail(message string) Result {
	return Result{failed: true, message: message}
}

// Failf returns a failed Result with a formatted message.
func Failf(format string, args ...any) Result {
	return Result{failed: true, message: fmt.Sprintf(format, args...)}
}

// FailErr returns a failed Result whose payload is err. The message defaults
// to err.Error().
func FailErr(err error) Result {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return Result{failed: true, message: err.Error(), err: err}
}

func (r Result) IsSucceed() bool { return !r.failed }
func (r Result) IsFailure() bool { return r.failed }
func (r Result) Message() string { return r.message }

// Err adapts the Result to a Go error. It is nil on success.
func (r Result) Err() error {
	if !r.failed {
		return nil
	}
	if r.err != nil {
		return r.err
	}
	return errors.New(r.message)
}

// ThrowOnFail panics with the failure's error. It is the explicit boundary
// where a failure is escalated.
func (r Result) ThrowOnFail() {
	if r.failed {
		panic(r.Err())
	}
}

// Combine folds several results into one. The first failure wins; later
// failure messages are appended so nothing is lost.
func Combine(results ...Result) Result {
	var out Result
	for _, r := range results {
		if !r.failed {
			continue
		}
		if !out.failed {
			out = r
			continue
		}
		out.message = out.message + "; " + r.message
		out.err = errors.WithSecondaryError(out.Err(), r.Err())
	}
	return out
}

// Of is the outcome of an operation that produces a value of type T on success.
type Of[T any] struct {
	Result
	value T
}

// Ok returns a successful Of holding v.
func Ok[T any](v T) Of[T] {
	return Of[T]{value: v}
}

// FailOf returns a failed Of carrying message.
func FailOf[T any](message string) Of[T] {
	return Of[T]{Result: Fail(message)}
}

// FailOfErr returns a failed Of whose payload is err.
func FailOfErr[T any](err error) Of[T] {
	return Of[T]{Result: FailErr(err)}
}

// From lifts a Result into an Of. A successful r yields Ok(v).
func From[T any](r Result, v T) Of[T] {
	if r.failed {
		return Of[T]{Result: r}
	}
	return Ok(v)
}

// Value returns the held value. It is the zero value on failure.
func (o Of[T]) Value() T { return o.value }

// Unpack returns the value and the failure as a Go error.
func (o Of[T]) Unpack() (T, error) {
	return o.value, o.Err()
}

// Must returns the value or panics when o is a failure.
func (o Of[T]) Must() T {
	o.ThrowOnFail()
	return o.value
}
