// Package result holds Result, a value that is either a Success carrying
// data or a Failure carrying whatever the computation failed with.
package result

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Result is either a Success or a Failure, never both. E only types the
// view returned by Err; the failure value itself is stored as given.
type Result[T any, E any] struct {
	data   T
	reason any
	failed bool
}

func Success[T any, E any](data T) Result[T, E] {
	return Result[T, E]{data: data}
}

func Failure[T any, E any](err E) Result[T, E] {
	return Result[T, E]{reason: err, failed: true}
}

// Unchecked returns a Failure whose reason is not required to be an E.
func Unchecked[T any, E any](reason any) Result[T, E] {
	return Result[T, E]{reason: reason, failed: true}
}

func (r Result[T, E]) Ok() bool {
	return !r.failed
}

func (r Result[T, E]) Failed() bool {
	return r.failed
}

// Data returns the produced value, or the zero T for a Failure.
func (r Result[T, E]) Data() T {
	return r.data
}

// Reason returns the failure value exactly as it was produced. It is nil
// for a Success, and may also be nil for a Failure.
func (r Result[T, E]) Reason() any {
	return r.reason
}

// Err returns the failure value as an E. The zero E is returned for a
// Success and for a reason of another type.
func (r Result[T, E]) Err() E {
	e, _ := r.reason.(E)
	return e
}

// Unwrap destructures r. ok is false for every Failure, including one whose
// err is empty because the reason is nil or not an E.
func (r Result[T, E]) Unwrap() (data T, err E, ok bool) {
	return r.data, r.Err(), !r.failed
}

func (r Result[T, E]) String() string {
	if r.failed {
		return fmt.Sprintf("{data: <nil>, error: %v}", r.reason)
	}
	return fmt.Sprintf("{data: %v, error: <nil>}", r.data)
}

func (r Result[T, E]) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddBool("ok", !r.failed)
	if r.failed {
		if err, ok := r.reason.(error); ok {
			enc.AddString("error", err.Error())
			return nil
		}
		return enc.AddReflected("error", r.reason)
	}
	return enc.AddReflected("data", r.data)
}
