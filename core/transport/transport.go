// Package transport describes the bidirectional message connection to the
// backend, independent of the library that implements it.
package transport

import (
	"context"
	"errors"
)

var (
	// ErrMalformedEndpoint is returned by a [Dialer] when the endpoint cannot
	// be turned into a connection at all (unsupported scheme, relative URL).
	// Callers may retry with a fallback endpoint.
	ErrMalformedEndpoint = errors.New("malformed endpoint")
	ErrClosed            = errors.New("connection closed")
)

// Message is one inbound frame as delivered by the connection.
type Message struct {
	Binary bool
	Data   []byte
}

// Conn is an established connection. Receive is only called from a single
// goroutine; SendText may be called concurrently with Receive.
type Conn interface {
	Receive(ctx context.Context) (Message, error)
	SendText(ctx context.Context, text string) error
	Close() error
}

type Dialer interface {
	Dial(ctx context.Context, endpoint string) (Conn, error)
}

type DialerFunc func(ctx context.Context, endpoint string) (Conn, error)

func (f DialerFunc) Dial(ctx context.Context, endpoint string) (Conn, error) {
	return f(ctx, endpoint)
}
