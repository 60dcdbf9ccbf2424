package promise

type line chan struct{}

var signal = struct{}{}
