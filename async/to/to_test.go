package to_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TelephoneTan/GoResult/async/promise"
	"github.com/TelephoneTan/GoResult/async/to"
)

type item struct {
	ID int
}

func Test_ResolvedValueBecomesSuccess(t *testing.T) {
	data := &item{ID: 1}
	r := to.Await[*item](promise.Go(func() (*item, error) {
		return data, nil
	}))

	assert.True(t, r.Ok())
	assert.Same(t, data, r.Data())
	assert.Nil(t, r.Reason())
	assert.NoError(t, r.Err())
}

func Test_RejectedErrorBecomesFailure(t *testing.T) {
	boom := errors.New("boom")
	r := to.Await[*item](promise.Go(func() (*item, error) {
		return nil, boom
	}))

	assert.True(t, r.Failed())
	assert.Nil(t, r.Data())
	assert.Same(t, boom, r.Err())
	assert.EqualError(t, r.Err(), "boom")
}

func Test_NonErrorReasonIsPassedThrough(t *testing.T) {
	r := to.Await[int](promise.Reject[int]("oops"))

	assert.True(t, r.Failed())
	assert.Equal(t, "oops", r.Reason())
	assert.Nil(t, r.Err())

	data, err, ok := to.Await[*item](promise.Reject[*item]("oops")).Unwrap()
	assert.False(t, ok)
	assert.Nil(t, data)
	assert.NoError(t, err)

	typed := to.AwaitAs[int, string](promise.Reject[int]("oops"))
	assert.Equal(t, "oops", typed.Err())
}

func Test_NilValueIsStillSuccess(t *testing.T) {
	r := to.Await[*item](promise.Resolve[*item](nil))

	assert.True(t, r.Ok())
	assert.Nil(t, r.Data())
	assert.Nil(t, r.Reason())
}

func Test_PanickingJobBecomesFailure(t *testing.T) {
	r := to.Await[int](promise.NewPromise(promise.Job[int]{
		Do: func(promise.Resolver[int], promise.Rejector) {
			panic("oops")
		},
	}))

	assert.True(t, r.Failed())
	assert.Equal(t, "oops", r.Reason())
}

func Test_CancelledBecomesFailure(t *testing.T) {
	r := to.Await[int](promise.Cancelled[int]())

	assert.True(t, r.Failed())
	assert.ErrorIs(t, r.Err(), promise.ErrCancelled)
}

func Test_TimeoutSetOnComputationBecomesFailure(t *testing.T) {
	never := promise.NewPromise(promise.Job[int]{
		Do: func(promise.Resolver[int], promise.Rejector) {},
	}).SetTimeout(10 * time.Millisecond)

	r := to.Await[int](never)
	assert.True(t, r.Failed())
	assert.ErrorIs(t, r.Err(), promise.ErrCancelled)
}

func Test_AsyncAlwaysFulfills(t *testing.T) {
	boom := errors.New("boom")
	release := make(chan struct{})
	p := promise.Go(func() (int, error) {
		<-release
		return 0, boom
	})

	wrapped := to.Async[int](p)
	assert.Equal(t, promise.StatePending, wrapped.State())
	close(release)

	r, reason, state := wrapped.Outcome()
	require.Equal(t, promise.StateFulfilled, state)
	assert.Nil(t, reason)
	assert.True(t, r.Failed())
	assert.Same(t, boom, r.Err())
}

func Test_ConcurrentCallsStayIndependent(t *testing.T) {
	const Pairs = 50
	boom := errors.New("boom")

	var wg sync.WaitGroup
	wg.Add(Pairs * 2)
	for i := 0; i < Pairs; i++ {
		i := i
		go func() {
			defer wg.Done()
			r := to.Await[int](promise.Go(func() (int, error) {
				return i, nil
			}))
			assert.True(t, r.Ok())
			assert.Equal(t, i, r.Data())
			assert.Nil(t, r.Reason())
		}()
		go func() {
			defer wg.Done()
			r := to.Await[int](promise.Go(func() (int, error) {
				return i, boom
			}))
			assert.True(t, r.Failed())
			assert.Zero(t, r.Data())
			assert.Same(t, boom, r.Err())
		}()
	}
	wg.Wait()
}

type settled struct {
	value  string
	reason any
	state  promise.State
}

func (s settled) Outcome() (string, any, promise.State) {
	return s.value, s.reason, s.state
}

func Test_AcceptsAnyAwaitable(t *testing.T) {
	ok := to.Await[string](settled{value: "done", state: promise.StateFulfilled})
	assert.Equal(t, "done", ok.Data())

	failed := to.Await[string](settled{value: "ignored", reason: 7, state: promise.StateRejected})
	assert.True(t, failed.Failed())
	assert.Equal(t, 7, failed.Reason())
	assert.Zero(t, failed.Data())
}
