package stage

import (
	"time"

	"github.com/koscakluka/ema-avatar/core/events"
)

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

type callbacks struct {
	onEvent                  func(events.Event)
	onPlaybackStarted        func(duration time.Duration)
	onPlaybackProgress       func(fraction float64)
	onPlaybackEnded          func()
	onConnectionStateChanged func(state ConnectionState)
	onAckSent                func(waker string)
	onSceneChanged           func(index int)
}

func newCallbackEventEmitter(opts callbacks) eventEmitter {
	return func(event events.Event) {
		if opts.onEvent != nil {
			opts.onEvent(event)
		}

		switch typedEvent := event.(type) {
		case events.PlaybackStarted:
			if opts.onPlaybackStarted != nil {
				opts.onPlaybackStarted(typedEvent.Duration)
			}
		case events.PlaybackProgress:
			if opts.onPlaybackProgress != nil {
				opts.onPlaybackProgress(typedEvent.Fraction())
			}
		case events.PlaybackEnded:
			if opts.onPlaybackEnded != nil {
				opts.onPlaybackEnded()
			}
		case events.ConnectionStateChanged:
			if opts.onConnectionStateChanged != nil {
				if state, ok := ParseConnectionState(typedEvent.To); ok {
					opts.onConnectionStateChanged(state)
				}
			}
		case events.AckSent:
			if opts.onAckSent != nil {
				opts.onAckSent(typedEvent.Waker)
			}
		case events.SceneChanged:
			if opts.onSceneChanged != nil {
				opts.onSceneChanged(typedEvent.Index)
			}
		}
	}
}
