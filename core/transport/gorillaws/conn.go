// Package gorillaws implements the backend connection on top of
// github.com/gorilla/websocket.
package gorillaws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/koscakluka/ema-avatar/core/transport"
)

const (
	defaultHandshakeTimeout = 10 * time.Second
	closeGracePeriod        = time.Second
)

type Dialer struct {
	dialer websocket.Dialer
	header http.Header
}

type DialerOption func(*Dialer)

func WithHandshakeTimeout(timeout time.Duration) DialerOption {
	return func(d *Dialer) {
		if timeout > 0 {
			d.dialer.HandshakeTimeout = timeout
		}
	}
}

// WithHeader adds a header to every handshake request.
func WithHeader(key, value string) DialerOption {
	return func(d *Dialer) { d.header.Add(key, value) }
}

func NewDialer(opts ...DialerOption) *Dialer {
	d := &Dialer{
		dialer: websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: defaultHandshakeTimeout,
		},
		header: http.Header{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dial opens a websocket connection. Endpoints that are not absolute ws/wss
// URLs are rejected with [transport.ErrMalformedEndpoint] before any network
// activity.
func (d *Dialer) Dial(ctx context.Context, endpoint string) (transport.Conn, error) {
	u, err := transport.ValidateEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	ws, resp, err := d.dialer.DialContext(ctx, u.String(), d.header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to open websocket to %s (status %d): %w", u.Redacted(), resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to open websocket to %s: %w", u.Redacted(), err)
	}

	return &Conn{ws: ws}, nil
}

type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex

	closeOnce sync.Once
	closeErr  error
}

// Receive blocks for the next text or binary message. Cancelling ctx closes
// the connection so the blocked read returns.
func (c *Conn) Receive(ctx context.Context) (transport.Message, error) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = c.Close()
		case <-done:
		}
	}()

	for {
		msgType, data, err := c.ws.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return transport.Message{}, ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return transport.Message{}, fmt.Errorf("%w: %v", transport.ErrClosed, err)
			}
			return transport.Message{}, fmt.Errorf("websocket read error: %w", err)
		}

		switch msgType {
		case websocket.BinaryMessage:
			return transport.Message{Binary: true, Data: data}, nil
		case websocket.TextMessage:
			return transport.Message{Data: data}, nil
		}
	}
}

func (c *Conn) SendText(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		_ = c.ws.SetWriteDeadline(deadline)
		defer c.ws.SetWriteDeadline(time.Time{})
	}

	if err := c.ws.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("failed to write to websocket: %w", err)
	}
	return nil
}

// Close sends a normal closure frame and closes the socket. Repeated calls
// return the first result.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		writeErr := c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGracePeriod))
		c.mu.Unlock()

		if err := c.ws.Close(); err != nil {
			if writeErr != nil && !errors.Is(writeErr, websocket.ErrCloseSent) {
				c.closeErr = fmt.Errorf("failed to close websocket: %w", errors.Join(writeErr, err))
				return
			}
			c.closeErr = fmt.Errorf("failed to close websocket: %w", err)
		}
	})
	return c.closeErr
}
