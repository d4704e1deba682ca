package stage

import "errors"

var (
	// ErrTransport wraps connection failures: dialing, receiving or sending.
	ErrTransport = errors.New("transport error")
	// ErrProtocol wraps inbound messages that are not valid frames.
	ErrProtocol = errors.New("protocol error")

	ErrNotConnected   = errors.New("not connected")
	ErrAlreadyStarted = errors.New("client already started")
	ErrClosed         = errors.New("client closed")

	errConcurrentPop = errors.New("frame queue: concurrent Pop")
)
