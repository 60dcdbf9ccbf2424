package task

import (
	"github.com/TelephoneTan/GoResult/async/promise"
	"github.com/TelephoneTan/GoResult/async/result"
	"github.com/TelephoneTan/GoResult/async/to"
)

// Shared lets concurrent callers join a run that is still in flight. Once
// that run settles the next Do starts a fresh one.
type Shared[T any] struct {
	Job       promise.Job[T]
	Semaphore *promise.Semaphore
	promise   chan *promise.Promise[T]
}

func NewSharedTask[T any](job promise.Job[T]) *Shared[T] {
	return (&Shared[T]{Job: job}).Init()
}

func (s *Shared[T]) Init() *Shared[T] {
	s.promise = make(chan *promise.Promise[T], 1)
	s.promise <- nil
	return s
}

func (s *Shared[T]) Do() *promise.Promise[T] {
	p := <-s.promise
	if p == nil || p.TryAwait() {
		p = (&promise.Promise[T]{
			Job:       s.Job,
			Semaphore: s.Semaphore,
		}).Init()
	}
	s.promise <- p
	return p
}

func (s *Shared[T]) Result() result.Result[T, error] {
	return to.Await[T](s.Do())
}
