package promise

type Resolver[T any] interface {
	Resolve(valueOrPromise any)
	ResolveValue(value T)
	ResolvePromise(promise *Promise[T])
}

// Rejector settles a promise with a failure. The reason is kept as given,
// it does not have to be an error.
type Rejector interface {
	Reject(reason any)
}
