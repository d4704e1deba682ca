package testsupport

import (
	"context"
	"sync"

	"github.com/koscakluka/ema-avatar/core/transport"
)

// Conn is an in-memory transport connection driven by the test.
type Conn struct {
	inbound chan transport.Message

	closeOnce sync.Once
	closed    chan struct{}

	mu   sync.Mutex
	sent []string
}

func NewConn() *Conn {
	return &Conn{
		inbound: make(chan transport.Message, 64),
		closed:  make(chan struct{}),
	}
}

func (c *Conn) DeliverText(text string) {
	c.inbound <- transport.Message{Data: []byte(text)}
}

func (c *Conn) DeliverBinary(data []byte) {
	c.inbound <- transport.Message{Binary: true, Data: data}
}

// Receive returns delivered messages in order. Once the connection is
// closed it reports transport.ErrClosed, even with messages still buffered.
func (c *Conn) Receive(ctx context.Context) (transport.Message, error) {
	select {
	case <-c.closed:
		return transport.Message{}, transport.ErrClosed
	default:
	}

	select {
	case msg := <-c.inbound:
		return msg, nil
	case <-c.closed:
		return transport.Message{}, transport.ErrClosed
	case <-ctx.Done():
		return transport.Message{}, transport.ErrClosed
	}
}

func (c *Conn) SendText(_ context.Context, text string) error {
	select {
	case <-c.closed:
		return transport.ErrClosed
	default:
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, text)
	return nil
}

// Close simulates either side closing the connection.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *Conn) Closed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *Conn) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sent...)
}

// Dialer hands out a new Conn for every successful dial.
type Dialer struct {
	// Reject, when set, decides per endpoint whether the dial fails.
	Reject func(endpoint string) error

	mu    sync.Mutex
	dials []string
	conns []*Conn
}

func (d *Dialer) Dial(ctx context.Context, endpoint string) (transport.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.dials = append(d.dials, endpoint)
	if d.Reject != nil {
		if err := d.Reject(endpoint); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn := NewConn()
	d.conns = append(d.conns, conn)
	return conn, nil
}

func (d *Dialer) Dials() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.dials...)
}

func (d *Dialer) Conns() []*Conn {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Conn(nil), d.conns...)
}

// Conn returns the i-th connection handed out, or nil.
func (d *Dialer) Conn(i int) *Conn {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.conns) {
		return nil
	}
	return d.conns[i]
}
