// Package to turns the outcome of a promise into a result.Result, so
// callers branch on the shape of a value instead of recovering panics or
// chaining rejection handlers.
package to

import (
	"github.com/TelephoneTan/GoResult/async/promise"
	"github.com/TelephoneTan/GoResult/async/result"
)

// Awaitable is a pending computation. Outcome blocks until it settles.
// *promise.Promise satisfies it.
type Awaitable[T any] interface {
	Outcome() (value T, reason any, state promise.State)
}

// Await waits for p and returns its outcome with error as the failure type.
func Await[T any](p Awaitable[T]) result.Result[T, error] {
	return AwaitAs[T, error](p)
}

// AwaitAs is Await with a caller-chosen failure type. The reason is not
// checked against E; see result.Result.Err.
func AwaitAs[T any, E any](p Awaitable[T]) result.Result[T, E] {
	value, reason, state := p.Outcome()
	if state == promise.StateFulfilled {
		return result.Success[T, E](value)
	}
	if state == promise.StateCancelled {
		return result.Unchecked[T, E](promise.ErrCancelled)
	}
	return result.Unchecked[T, E](reason)
}

// Async is Await without blocking. The returned promise always fulfills.
func Async[T any](p Awaitable[T]) *promise.Promise[result.Result[T, error]] {
	return AsyncAs[T, error](p)
}

// AsyncAs is AwaitAs without blocking. The returned promise always fulfills.
func AsyncAs[T any, E any](p Awaitable[T]) *promise.Promise[result.Result[T, E]] {
	return promise.NewPromise(promise.Job[result.Result[T, E]]{
		Do: func(resolver promise.Resolver[result.Result[T, E]], _ promise.Rejector) {
			resolver.ResolveValue(AwaitAs[T, E](p))
		},
	})
}
