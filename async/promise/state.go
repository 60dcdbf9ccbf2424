package promise

type State uint8

const (
	StatePending State = iota
	StateFulfilled
	StateRejected
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFulfilled:
		return "fulfilled"
	case StateRejected:
		return "rejected"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
