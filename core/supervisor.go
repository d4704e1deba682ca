package stage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/koscakluka/ema-avatar/core/transport"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultReconnectDelay = 5 * time.Second

// supervisorHooks are called outside the supervisor lock, in the order the
// transitions happen.
type supervisorHooks struct {
	onStateChanged func(connectionID string, from, to ConnectionState)
	onConnecting   func()
	onOpen         func()
	onDisconnected func(err error)
	onMessage      func(transport.Message)
}

// supervisor owns the connection lifecycle: one connection at a time, a
// reconnect timer after every loss, and nothing once closed.
type supervisor struct {
	dialer         transport.Dialer
	endpoints      transport.Endpoints
	reconnectDelay time.Duration
	hooks          supervisorHooks
	logger         *slog.Logger

	mu           sync.Mutex
	baseCtx      context.Context
	state        ConnectionState
	connectionID string
	conn         transport.Conn
	cancelConn   context.CancelFunc
	reconnect    *time.Timer
	closed       bool
}

func newSupervisor(dialer transport.Dialer, endpoints transport.Endpoints, reconnectDelay time.Duration, hooks supervisorHooks, l *slog.Logger) *supervisor {
	return &supervisor{
		dialer:         dialer,
		endpoints:      endpoints,
		reconnectDelay: reconnectDelay,
		hooks:          hooks,
		logger:         l,
		baseCtx:        context.Background(),
	}
}

func (s *supervisor) setBaseContext(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseCtx = ctx
}

func (s *supervisor) State() ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connect starts a connection attempt. It does nothing and returns false
// unless the supervisor is disconnected.
func (s *supervisor) Connect() bool {
	s.mu.Lock()
	if s.closed || s.state != Disconnected {
		s.mu.Unlock()
		return false
	}
	if s.reconnect != nil {
		s.reconnect.Stop()
		s.reconnect = nil
	}
	connectionID := uuid.NewString()
	s.connectionID = connectionID
	from := s.setStateLocked(Connecting)
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.cancelConn = cancel
	s.mu.Unlock()

	s.hooks.onStateChanged(connectionID, from, Connecting)
	s.hooks.onConnecting()

	go s.run(ctx, connectionID)
	return true
}

func (s *supervisor) run(ctx context.Context, connectionID string) {
	conn, err := s.dial(ctx, connectionID)
	if err != nil {
		s.lost(connectionID, err)
		return
	}

	s.mu.Lock()
	if s.closed || s.connectionID != connectionID {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.conn = conn
	from := s.setStateLocked(Open)
	s.mu.Unlock()

	s.hooks.onStateChanged(connectionID, from, Open)
	s.hooks.onOpen()

	for {
		msg, err := conn.Receive(ctx)
		if err != nil {
			if closeErr := conn.Close(); closeErr != nil && !errors.Is(closeErr, transport.ErrClosed) {
				s.logger.Debug("failed to close connection", "connection_id", connectionID, "error", closeErr)
			}
			if !errors.Is(err, transport.ErrClosed) {
				err = fmt.Errorf("%w: receive: %w", ErrTransport, err)
			}
			s.lost(connectionID, err)
			return
		}
		if !s.isCurrent(connectionID) {
			continue
		}
		s.hooks.onMessage(msg)
	}
}

func (s *supervisor) dial(ctx context.Context, connectionID string) (transport.Conn, error) {
	ctx, span := tracer.Start(ctx, "dial backend", trace.WithAttributes(
		attribute.String("connection.id", connectionID),
		attribute.String("endpoint.primary", s.endpoints.Primary),
	))
	defer span.End()

	conn, err := s.dialer.Dial(ctx, s.endpoints.Primary)
	if errors.Is(err, transport.ErrMalformedEndpoint) && s.endpoints.Fallback != "" {
		s.logger.Debug("primary endpoint rejected, dialing fallback",
			"primary", s.endpoints.Primary, "fallback", s.endpoints.Fallback, "error", err)
		span.SetAttributes(attribute.String("endpoint.fallback", s.endpoints.Fallback))
		conn, err = s.dialer.Dial(ctx, s.endpoints.Fallback)
	}
	if err != nil {
		err = fmt.Errorf("%w: dial: %w", ErrTransport, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return conn, nil
}

// lost moves the current connection to disconnected and schedules a
// reconnect. Events from stale connections are ignored.
func (s *supervisor) lost(connectionID string, err error) {
	s.mu.Lock()
	if s.closed || s.connectionID != connectionID || s.state == Disconnected {
		s.mu.Unlock()
		return
	}
	s.conn = nil
	if s.cancelConn != nil {
		s.cancelConn()
		s.cancelConn = nil
	}
	from := s.setStateLocked(Disconnected)
	s.mu.Unlock()

	s.hooks.onStateChanged(connectionID, from, Disconnected)
	s.hooks.onDisconnected(err)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state != Disconnected || s.connectionID != connectionID {
		return
	}
	if s.reconnect != nil {
		s.reconnect.Stop()
	}
	s.reconnect = time.AfterFunc(s.reconnectDelay, func() { s.Connect() })
}

// SendText sends text on the open connection.
func (s *supervisor) SendText(ctx context.Context, text string) error {
	s.mu.Lock()
	conn := s.conn
	state := s.state
	s.mu.Unlock()

	if conn == nil || state != Open {
		return fmt.Errorf("%w: %w", ErrTransport, ErrNotConnected)
	}
	if err := conn.SendText(ctx, text); err != nil {
		return fmt.Errorf("%w: send: %w", ErrTransport, err)
	}
	return nil
}

// Close stops any reconnect, closes the connection and refuses further
// connects.
func (s *supervisor) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	connectionID := s.connectionID
	if s.reconnect != nil {
		s.reconnect.Stop()
		s.reconnect = nil
	}
	conn, cancel := s.conn, s.cancelConn
	s.conn, s.cancelConn = nil, nil
	from := s.setStateLocked(Closing)
	s.mu.Unlock()

	s.hooks.onStateChanged(connectionID, from, Closing)

	var err error
	if cancel != nil {
		cancel()
	}
	if conn != nil {
		if closeErr := conn.Close(); closeErr != nil && !errors.Is(closeErr, transport.ErrClosed) {
			err = fmt.Errorf("%w: close: %w", ErrTransport, closeErr)
		}
	}

	s.mu.Lock()
	s.setStateLocked(Disconnected)
	s.mu.Unlock()
	s.hooks.onStateChanged(connectionID, Closing, Disconnected)

	return err
}

func (s *supervisor) isCurrent(connectionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.connectionID == connectionID
}

func (s *supervisor) setStateLocked(state ConnectionState) (previous ConnectionState) {
	previous, s.state = s.state, state
	return previous
}
