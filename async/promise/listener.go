package promise

import "time"

// FulfilledListener maps a fulfilled value. OnFulfilled returns either a
// SUPPLY, a *Promise[SUPPLY] to follow, or nil for the zero SUPPLY.
type FulfilledListener[NEED any, SUPPLY any] struct {
	OnFulfilled func(value NEED) any
}

// RejectedListener recovers from a rejection. Its return value follows the
// same rules as FulfilledListener.
type RejectedListener[SUPPLY any] struct {
	OnRejected func(reason any) any
}

type SettledListener[T any] struct {
	OnSettled func() *Promise[T]
}

type CancelledListener struct {
	OnCancelled func()
}

type TimeOutListener struct {
	OnTimeOut func(duration time.Duration)
}
