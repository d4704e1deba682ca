package stage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/koscakluka/ema-avatar/core/audio"
	"github.com/koscakluka/ema-avatar/core/events"
	"github.com/koscakluka/ema-avatar/core/frames"
	"github.com/koscakluka/ema-avatar/core/lipsync"
	"github.com/koscakluka/ema-avatar/core/playback"
	"github.com/koscakluka/ema-avatar/core/transport"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultConnectingNotice = "Connecting to backend..."
	DefaultMotionPriority   = 3
)

type Client struct {
	id string

	dialer         transport.Dialer
	endpoints      transport.Endpoints
	reconnectDelay time.Duration

	player         Player
	output         playback.Output
	samplerOptions []lipsync.SamplerOption

	captions CaptionSink
	render   RenderSink
	scenes   SceneLoader

	connectedNotice  string
	connectingNotice string
	motionPriority   int

	callbacks callbacks
	emitter   eventEmitter
	logger    *slog.Logger
	metrics   clientMetrics

	queue      *frameQueue
	session    *session
	supervisor *supervisor

	startOnce   sync.Once
	closeOnce   sync.Once
	lifecycleMu sync.Mutex
	started     bool
	cancel      context.CancelFunc
	stopWatcher chan struct{}
	done        chan struct{}
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		id:               uuid.NewString(),
		reconnectDelay:   DefaultReconnectDelay,
		captions:         noopCaptionSink{},
		render:           noopRenderSink{},
		scenes:           noopSceneLoader{},
		connectingNotice: DefaultConnectingNotice,
		motionPriority:   DefaultMotionPriority,
		emitter:          noopEventEmitter,
		logger:           logger,
		metrics:          newClientMetrics(),
		queue:            newFrameQueue(),
		session:          newSession(-1),
		done:             make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With("session_id", c.id)
	c.emitter = newCallbackEventEmitter(c.callbacks)

	if c.player == nil {
		output := c.output
		if output == nil {
			output = playback.NewNullOutput(audio.GetDefaultEncodingInfo())
		}
		sampler := lipsync.NewSampler(c.render, c.session.Speaker, c.samplerOptions...)
		c.player = playback.NewDriver(output,
			playback.WithSampler(sampler),
			playback.WithEventHandler(c.emit),
			playback.WithLogger(c.logger),
		)
	}

	if c.dialer == nil {
		c.dialer = transport.DialerFunc(func(context.Context, string) (transport.Conn, error) {
			return nil, errors.New("no dialer configured")
		})
	}

	c.supervisor = newSupervisor(c.dialer, c.endpoints, c.reconnectDelay, supervisorHooks{
		onStateChanged: c.connectionStateChanged,
		onConnecting:   c.connecting,
		onOpen:         c.opened,
		onDisconnected: c.disconnected,
		onMessage:      c.receive,
	}, c.logger)

	return c
}

// SessionID identifies this client instance in logs and traces.
func (c *Client) SessionID() string { return c.id }

// Speaker returns the actor of the most recent speech event.
func (c *Client) Speaker() string { return c.session.Speaker() }

func (c *Client) Title() string { return c.session.Title() }

func (c *Client) State() ConnectionState { return c.supervisor.State() }

// QueuedFrames is the number of frames waiting for the dispatcher.
func (c *Client) QueuedFrames() int { return c.queue.Len() }

// Start launches the dispatcher and the first connection attempt and returns
// immediately. ctx bounds the client: once done, the client closes.
//
// Only the first call starts the client; later calls return false.
func (c *Client) Start(ctx context.Context) bool {
	started := false
	c.startOnce.Do(func() {
		c.lifecycleMu.Lock()
		if c.isClosed() {
			c.lifecycleMu.Unlock()
			return
		}
		started = true
		c.started = true
		ctx, c.cancel = context.WithCancel(ctx)
		c.stopWatcher = withContextCancelHook(ctx, c.Close)
		c.lifecycleMu.Unlock()

		c.supervisor.setBaseContext(ctx)
		go c.dispatchLoop(ctx)
		c.Connect()
	})
	return started
}

// Run starts the client and blocks until ctx is done or the client is
// closed.
func (c *Client) Run(ctx context.Context) error {
	if !c.Start(ctx) {
		return ErrAlreadyStarted
	}
	<-c.done
	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Connect asks for a connection attempt. It returns false when the client is
// already connecting, connected or closing.
func (c *Client) Connect() bool {
	return c.supervisor.Connect()
}

// Close closes the connection, stops reconnecting and stops the dispatcher.
// A clip that is playing is stopped. Close waits for the dispatcher to exit.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		if err := c.supervisor.Close(); err != nil {
			c.logger.Warn("failed to close connection", "error", err)
		}
		c.lifecycleMu.Lock()
		defer c.lifecycleMu.Unlock()
		if c.cancel != nil {
			c.cancel()
		}
		if c.stopWatcher != nil {
			close(c.stopWatcher)
		}
		if !c.started {
			close(c.done)
		}
	})
	<-c.done
}

func (c *Client) isClosed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Client) emit(event events.Event) {
	c.emitter(event)
}

// receive runs on the connection reader goroutine.
func (c *Client) receive(msg transport.Message) {
	ctx := context.Background()

	frame, err := frames.Classify(msg.Binary, msg.Data)
	if errors.Is(err, frames.ErrUnknownKind) {
		c.logger.Debug("ignoring control event", "error", err)
		c.dropped(ctx, "", 1, "unknown kind")
		return
	} else if err != nil {
		err = fmt.Errorf("%w: %w", ErrProtocol, err)
		c.logger.Warn("dropping malformed message", "error", err, "size", len(msg.Data))
		c.dropped(ctx, "", 1, "malformed")
		return
	}
	c.metrics.framesReceived.Add(ctx, 1, metric.WithAttributes(attribute.String("frame.kind", string(frame.Kind()))))

	// Titles are not part of the playback timeline.
	if title, ok := frame.(frames.UpdateTitle); ok {
		c.session.setTitle(title.Title)
		c.captions.SetTitle(title.Title)
		return
	}

	c.queue.Push(frame)
}

func (c *Client) connectionStateChanged(connectionID string, from, to ConnectionState) {
	c.logger.Info("connection state changed", "connection_id", connectionID, "from", from.String(), "to", to.String())
	c.emit(events.NewConnectionStateChanged(connectionID, from.String(), to.String()))
}

func (c *Client) connecting() {
	c.discardQueued("connecting")
}

func (c *Client) opened() {
	if c.connectedNotice != "" {
		c.captions.Display(transport.DefaultActor, c.connectedNotice)
	}
}

func (c *Client) disconnected(err error) {
	if err != nil && !errors.Is(err, transport.ErrClosed) {
		c.logger.Warn("connection lost", "error", err, "reconnect_in", c.reconnectDelay)
	} else {
		c.logger.Info("connection closed", "reconnect_in", c.reconnectDelay)
	}
	c.metrics.reconnects.Add(context.Background(), 1)

	c.discardQueued("disconnected")
	if clearer, ok := c.captions.(captionClearer); ok {
		clearer.Clear()
	}
	c.captions.Display(transport.DefaultActor, c.connectingNotice)
}

// discardQueued drops queued frames and the pending waker. A clip that is
// already playing keeps playing.
func (c *Client) discardQueued(reason string) {
	ctx := context.Background()
	if n := c.queue.Clear(); n > 0 {
		c.dropped(ctx, "", n, reason)
	}
	if waker, ok := c.session.takeAck(); ok {
		c.forfeit(ctx, waker, reason)
	}
}

func (c *Client) dropped(ctx context.Context, kind string, n int, reason string) {
	c.metrics.framesDropped.Add(ctx, int64(n), metric.WithAttributes(attribute.String("reason", reason)))
	c.emit(events.NewFrameDropped(kind, n, reason))
}

func (c *Client) forfeit(ctx context.Context, waker, reason string) {
	c.logger.Debug("waker forfeited", "waker", waker, "reason", reason)
	c.metrics.acksForfeited.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	c.emit(events.NewAckForfeited(waker, reason))
}
