package task

import (
	"sync"

	"github.com/TelephoneTan/GoResult/async/promise"
	"github.com/TelephoneTan/GoResult/async/result"
	"github.com/TelephoneTan/GoResult/async/to"
)

// Once starts its job on the first Do and hands every caller that same
// promise afterwards.
type Once[T any] struct {
	Job       promise.Job[T]
	Semaphore *promise.Semaphore
	once      sync.Once
	promise   *promise.Promise[T]
}

func NewOnceTask[T any](job promise.Job[T]) *Once[T] {
	return &Once[T]{Job: job}
}

func NewOnceTaskWithSemaphore[T any](job promise.Job[T], semaphore *promise.Semaphore) *Once[T] {
	return &Once[T]{Job: job, Semaphore: semaphore}
}

// Cancel cancels the run, or prevents it if Do was never called.
func (o *Once[T]) Cancel() bool {
	cancelled := false
	o.once.Do(func() {
		o.promise = promise.Cancelled[T]()
		cancelled = true
	})
	return o.promise.Cancel() || cancelled
}

func (o *Once[T]) DoJob(job promise.Job[T]) *promise.Promise[T] {
	o.once.Do(func() {
		o.promise = promise.NewPromiseWithSemaphore(job, o.Semaphore)
	})
	return o.promise
}

func (o *Once[T]) Do() *promise.Promise[T] {
	return o.DoJob(o.Job)
}

// Result runs the task if needed and waits for its outcome.
func (o *Once[T]) Result() result.Result[T, error] {
	return to.Await[T](o.Do())
}
