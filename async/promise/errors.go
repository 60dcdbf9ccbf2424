package promise

import "github.com/zeebo/errs"

// Error is the class of errors produced by the promise machinery itself.
// Reasons passed to Reject are never wrapped in it.
var Error = errs.Class("promise")

// ErrCancelled is the reason reported for a promise that was cancelled
// instead of being resolved or rejected.
var ErrCancelled = Error.New("cancelled")
