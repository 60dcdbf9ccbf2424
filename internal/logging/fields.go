package logging

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

func Duration[S ~string](s S, t time.Duration) Field {
	return zap.Duration(string(s), t)
}

func Any[S ~string](s S, v any) Field {
	return zap.Any(string(s), v)
}

func Uint[S ~string, T constraints.Unsigned](s S, v T) Field {
	return zap.Uint64(string(s), uint64(v))
}

func String[U, V ~string](s U, v V) Field {
	return zap.String(string(s), string(v))
}

// Stack captures the calling goroutine's stack, so it must be built where
// the event happened.
func Stack[S ~string](s S) Field {
	return zap.StackSkip(string(s), 1)
}
