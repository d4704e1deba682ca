package stage

type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connecting
	Open
	Closing
)

func (s ConnectionState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closing:
		return "closing"
	}
	return "unknown"
}

// ParseConnectionState is the inverse of [ConnectionState.String].
func ParseConnectionState(name string) (ConnectionState, bool) {
	for _, state := range []ConnectionState{Disconnected, Connecting, Open, Closing} {
		if state.String() == name {
			return state, true
		}
	}
	return Disconnected, false
}
