package promise

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/TelephoneTan/GoResult/internal/logging"
)

type Promise[T any] struct {
	value     T
	reason    any
	state     State
	timeoutSN atomic.Uint64
	acquired  atomic.Bool
	settled   line
	settleIt  sync.Once
	Semaphore *Semaphore
	Job       Job[T]
}

func (t *Promise[T]) init(wrapJobWithSemaphore bool, start bool) *Promise[T] {
	if start {
		defer t.start(wrapJobWithSemaphore)
	}
	t.settled = make(line)
	return t
}

func (t *Promise[T]) Init() *Promise[T] {
	return t.init(true, true)
}

func (t *Promise[T]) settle(assign func()) (ok bool) {
	t.settleIt.Do(func() {
		ok = true
		assign()
		t.release()
		close(t.settled)
	})
	return ok
}

// acquire takes a ticket from the semaphore. It reports false when the
// promise settled while waiting, in which case the ticket is already back.
func (t *Promise[T]) acquire() bool {
	if t.Semaphore == nil {
		return true
	}
	t.Semaphore.Acquire()
	t.acquired.Store(true)
	if t.TryAwait() {
		t.release()
		return false
	}
	return true
}

func (t *Promise[T]) release() {
	if t.acquired.CompareAndSwap(true, false) {
		t.Semaphore.Release()
	}
}

func (t *Promise[T]) succeed(value T) *Promise[T] {
	t.settle(func() {
		t.value = value
		t.state = StateFulfilled
	})
	return t
}

func (t *Promise[T]) fail(reason any) *Promise[T] {
	t.settle(func() {
		t.reason = reason
		t.state = StateRejected
	})
	return t
}

func (t *Promise[T]) Cancel() bool {
	return t.settle(func() {
		t.reason = ErrCancelled
		t.state = StateCancelled
	})
}

func (t *Promise[T]) Await() *Promise[T] {
	<-t.settled
	return t
}

func (t *Promise[T]) TryAwait() bool {
	select {
	case <-t.settled:
		return true
	default:
		return false
	}
}

// State reports the current state without blocking.
func (t *Promise[T]) State() State {
	if !t.TryAwait() {
		return StatePending
	}
	return t.state
}

// Outcome blocks until the promise settles. Exactly one of value and reason
// is meaningful, as told by state.
func (t *Promise[T]) Outcome() (value T, reason any, state State) {
	t.Await()
	return t.value, t.reason, t.state
}

func (t *Promise[T]) copyStateTo(tt *Promise[T]) {
	t.Await()
	switch t.state {
	case StateCancelled:
		tt.Cancel()
	case StateFulfilled:
		tt.succeed(t.value)
	case StateRejected:
		tt.fail(t.reason)
	}
}

func (t *Promise[T]) Resolve(valueOrPromise any) {
	switch x := valueOrPromise.(type) {
	case nil:
		var zero T
		t.ResolveValue(zero)
	case *Promise[T]:
		t.ResolvePromise(x)
	case T:
		t.ResolveValue(x)
	default:
		var zero T
		t.fail(Error.New("cannot resolve %T with %T", zero, x))
	}
}

func (t *Promise[T]) ResolveValue(value T) {
	t.succeed(value)
}

func (t *Promise[T]) ResolvePromise(promise *Promise[T]) {
	if promise == t {
		t.fail(Error.New("promise resolved with itself"))
		return
	}
	go func() {
		promise.copyStateTo(t)
	}()
}

func (t *Promise[T]) Reject(reason any) {
	t.fail(reason)
}

// recovered turns whatever stopped a job into its rejection reason. A nil
// value means the job called runtime.Goexit.
func (t *Promise[T]) recovered(a any) {
	logging.New().Debug("promise job stopped",
		logging.Any("reason", a),
		logging.Stack("stack"),
	)
	t.fail(a)
}

func (t *Promise[T]) start(wrapJobWithSemaphore bool) {
	if t.Job.Do != nil {
		go func() {
			debug.SetPanicOnFault(true)
			ok := false
			defer func() {
				if !ok {
					t.recovered(recover())
				}
			}()
			if wrapJobWithSemaphore && !t.acquire() {
				ok = true
				return
			}
			t.Job.Do(t, t)
			ok = true
		}()
	}
}

// SetTimeout cancels the promise if it is still pending after d. A later
// call replaces the previous deadline.
func (t *Promise[T]) SetTimeout(d time.Duration, onTimeOut ...*TimeOutListener) *Promise[T] {
	if t.TryAwait() {
		return t
	}
	go func(sn uint64) {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-t.settled:
			return
		case <-timer.C:
		}
		if t.timeoutSN.Load() == sn && t.Cancel() {
			logging.New().Debug("promise timed out",
				logging.Duration("after", d),
				logging.Uint("sn", sn),
			)
			if len(onTimeOut) > 0 && onTimeOut[0] != nil && onTimeOut[0].OnTimeOut != nil {
				onTimeOut[0].OnTimeOut(d)
			}
		}
	}(t.timeoutSN.Add(1))
	return t
}

func follow[NEED any, SUPPLY any, T any](
	semaphore *Semaphore,
	promise *Promise[NEED],
	f *FulfilledListener[NEED, SUPPLY],
	r *RejectedListener[SUPPLY],
	s *SettledListener[T],
	c *CancelledListener,
) *Promise[SUPPLY] {
	next := &Promise[SUPPLY]{Semaphore: semaphore}
	next.Job = Job[SUPPLY]{
		Do: func(resolver Resolver[SUPPLY], rejector Rejector) {
			value, reason, state := promise.Outcome()
			if !next.acquire() {
				return
			}
			if state == StateCancelled {
				next.Cancel()
				if c != nil && c.OnCancelled != nil {
					go c.OnCancelled()
				}
			}
			if s != nil && s.OnSettled != nil {
				if p := s.OnSettled(); p != nil {
					_, settledReason, settledState := p.Outcome()
					switch settledState {
					case StateCancelled:
						next.Cancel()
					case StateRejected:
						rejector.Reject(settledReason)
					}
				}
			}
			switch state {
			case StateFulfilled:
				if f == nil || f.OnFulfilled == nil {
					resolver.Resolve(nil)
				} else {
					resolver.Resolve(f.OnFulfilled(value))
				}
			case StateRejected:
				if r == nil || r.OnRejected == nil {
					rejector.Reject(reason)
				} else {
					resolver.Resolve(r.OnRejected(reason))
				}
			}
		},
	}
	return next.init(false, true)
}

func ThenSemaphore[SUPPLY any, NEED any](
	promise *Promise[NEED],
	semaphore *Semaphore,
	onFulfilled FulfilledListener[NEED, SUPPLY],
) *Promise[SUPPLY] {
	return follow[NEED, SUPPLY, any](semaphore, promise, &onFulfilled, nil, nil, nil)
}

func Then[SUPPLY any, NEED any](
	promise *Promise[NEED],
	onFulfilled FulfilledListener[NEED, SUPPLY],
) *Promise[SUPPLY] {
	return ThenSemaphore(promise, nil, onFulfilled)
}

func CatchSemaphore[SUPPLY any, NEED any](
	promise *Promise[NEED],
	semaphore *Semaphore,
	onRejected RejectedListener[SUPPLY],
) *Promise[SUPPLY] {
	return follow[NEED, SUPPLY, any](semaphore, promise, nil, &onRejected, nil, nil)
}

func Catch[SUPPLY any, NEED any](
	promise *Promise[NEED],
	onRejected RejectedListener[SUPPLY],
) *Promise[SUPPLY] {
	return CatchSemaphore(promise, nil, onRejected)
}

func ForCancelSemaphore[SUPPLY any, NEED any](
	promise *Promise[NEED],
	semaphore *Semaphore,
	onCancelled CancelledListener,
) *Promise[SUPPLY] {
	return follow[NEED, SUPPLY, any](semaphore, promise, nil, nil, nil, &onCancelled)
}

func ForCancel[SUPPLY any, NEED any](
	promise *Promise[NEED],
	onCancelled CancelledListener,
) *Promise[SUPPLY] {
	return ForCancelSemaphore[SUPPLY](promise, nil, onCancelled)
}

func FinallySemaphore[SUPPLY any, T any, NEED any](
	promise *Promise[NEED],
	semaphore *Semaphore,
	onFinally SettledListener[T],
) *Promise[SUPPLY] {
	return follow[NEED, SUPPLY, T](semaphore, promise, nil, nil, &onFinally, nil)
}

func Finally[SUPPLY any, T any, NEED any](
	promise *Promise[NEED],
	onFinally SettledListener[T],
) *Promise[SUPPLY] {
	return FinallySemaphore[SUPPLY, T, NEED](promise, nil, onFinally)
}

func Resolve[T any](value T) *Promise[T] {
	return (&Promise[T]{}).init(false, false).succeed(value)
}

func Reject[SUPPLY any](reason any) *Promise[SUPPLY] {
	return (&Promise[SUPPLY]{}).init(false, false).fail(reason)
}

func Cancelled[SUPPLY any]() *Promise[SUPPLY] {
	promise := (&Promise[SUPPLY]{}).init(false, false)
	promise.Cancel()
	return promise
}

func NewPromise[T any](job Job[T]) *Promise[T] {
	return (&Promise[T]{Job: job}).Init()
}

func NewPromiseWithSemaphore[T any](job Job[T], semaphore *Semaphore) *Promise[T] {
	return (&Promise[T]{Job: job, Semaphore: semaphore}).Init()
}

// Go runs fn in its own goroutine. A non-nil error rejects the promise
// with that error, otherwise the returned value fulfills it.
func Go[T any](fn func() (T, error)) *Promise[T] {
	return NewPromise(Job[T]{
		Do: func(resolver Resolver[T], rejector Rejector) {
			value, err := fn()
			if err != nil {
				rejector.Reject(err)
				return
			}
			resolver.ResolveValue(value)
		},
	})
}
