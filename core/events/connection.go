package events

// KindConnectionStateChanged identifies a supervisor state transition.
const KindConnectionStateChanged Kind = "connection.state_changed"

// ConnectionStateChanged carries the previous and the new connection state
// by name so receivers do not depend on the client package.
type ConnectionStateChanged struct {
	Base
	ConnectionID string
	From         string
	To           string
}

func NewConnectionStateChanged(connectionID, from, to string) ConnectionStateChanged {
	return ConnectionStateChanged{
		Base:         NewBase(KindConnectionStateChanged),
		ConnectionID: connectionID,
		From:         from,
		To:           to,
	}
}
