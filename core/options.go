package stage

import (
	"log/slog"
	"time"

	"github.com/koscakluka/ema-avatar/core/events"
	"github.com/koscakluka/ema-avatar/core/lipsync"
	"github.com/koscakluka/ema-avatar/core/playback"
	"github.com/koscakluka/ema-avatar/core/transport"
)

type ClientOption func(*Client)

func WithDialer(dialer transport.Dialer) ClientOption {
	return func(c *Client) {
		if dialer != nil {
			c.dialer = dialer
		}
	}
}

// WithEndpoints sets where the client connects. The fallback is dialed only
// when the dialer rejects the primary endpoint as malformed.
func WithEndpoints(endpoints transport.Endpoints) ClientOption {
	return func(c *Client) { c.endpoints = endpoints }
}

// WithPlayer replaces the built-in playback driver. Lip-sync options are
// ignored when a custom player is set.
func WithPlayer(player Player) ClientOption {
	return func(c *Client) { c.player = player }
}

// WithOutput sets the audio device the built-in playback driver plays on.
// Without an output clips are consumed silently in real time.
func WithOutput(output playback.Output) ClientOption {
	return func(c *Client) { c.output = output }
}

func WithLipSync(opts ...lipsync.SamplerOption) ClientOption {
	return func(c *Client) { c.samplerOptions = append(c.samplerOptions, opts...) }
}

func WithCaptionSink(sink CaptionSink) ClientOption {
	return func(c *Client) {
		if sink != nil {
			c.captions = sink
		}
	}
}

func WithRenderSink(sink RenderSink) ClientOption {
	return func(c *Client) {
		if sink != nil {
			c.render = sink
		}
	}
}

func WithSceneLoader(loader SceneLoader) ClientOption {
	return func(c *Client) {
		if loader != nil {
			c.scenes = loader
		}
	}
}

func WithReconnectDelay(delay time.Duration) ClientOption {
	return func(c *Client) {
		if delay > 0 {
			c.reconnectDelay = delay
		}
	}
}

// WithConnectedNotice shows notice as a caption of the default actor every
// time the connection opens. Empty disables it.
func WithConnectedNotice(notice string) ClientOption {
	return func(c *Client) { c.connectedNotice = notice }
}

// WithConnectingNotice replaces the caption shown while reconnecting.
func WithConnectingNotice(notice string) ClientOption {
	return func(c *Client) {
		if notice != "" {
			c.connectingNotice = notice
		}
	}
}

func WithMotionPriority(priority int) ClientOption {
	return func(c *Client) { c.motionPriority = priority }
}

// WithInitialScene records the scene already shown before the first frame,
// so a ChangeScene to the same index is skipped.
func WithInitialScene(index int) ClientOption {
	return func(c *Client) { c.session.setScene(index) }
}

func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEventHandler registers a handler receiving every lifecycle event.
// Handlers run on the goroutine producing the event and must not block.
func WithEventHandler(handler func(events.Event)) ClientOption {
	return func(c *Client) { c.callbacks.onEvent = handler }
}

func WithPlaybackStartedCallback(callback func(duration time.Duration)) ClientOption {
	return func(c *Client) { c.callbacks.onPlaybackStarted = callback }
}

// WithPlaybackProgressCallback registers a callback receiving the played
// share of the current clip in [0,1].
func WithPlaybackProgressCallback(callback func(fraction float64)) ClientOption {
	return func(c *Client) { c.callbacks.onPlaybackProgress = callback }
}

func WithPlaybackEndedCallback(callback func()) ClientOption {
	return func(c *Client) { c.callbacks.onPlaybackEnded = callback }
}

func WithConnectionStateCallback(callback func(state ConnectionState)) ClientOption {
	return func(c *Client) { c.callbacks.onConnectionStateChanged = callback }
}

func WithAckSentCallback(callback func(waker string)) ClientOption {
	return func(c *Client) { c.callbacks.onAckSent = callback }
}

func WithSceneChangedCallback(callback func(index int)) ClientOption {
	return func(c *Client) { c.callbacks.onSceneChanged = callback }
}
