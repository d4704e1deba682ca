// Package playback plays one decoded clip at a time on an audio output while
// a lip-sync sampler follows what is being played.
package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/koscakluka/ema-avatar/core/audio"
	"github.com/koscakluka/ema-avatar/core/events"
	"github.com/koscakluka/ema-avatar/core/lipsync"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrDecodeFailed   = errors.New("failed to decode audio clip")
	ErrOutputFailed   = errors.New("audio output failed")
	ErrAlreadyPlaying = errors.New("a clip is already playing")
)

const (
	DefaultProgressInterval = 250 * time.Millisecond

	stopGrace = time.Second
)

// Output is an audio device able to play one streamer at a time. onEnded
// must be called exactly once, when the streamer is drained or the output is
// stopped.
type Output interface {
	EncodingInfo() audio.EncodingInfo
	Play(s beep.Streamer, onEnded func()) error
	Stop() error
}

type Driver struct {
	output  Output
	sampler *lipsync.Sampler

	progressInterval time.Duration
	emit             func(events.Event)
	logger           *slog.Logger

	playing atomic.Bool

	clipsPlayed metric.Int64Counter
}

type DriverOption func(*Driver)

// WithSampler attaches the lip-sync sampler run for the duration of each
// clip.
func WithSampler(sampler *lipsync.Sampler) DriverOption {
	return func(d *Driver) {
		d.sampler = sampler
	}
}

func WithProgressInterval(interval time.Duration) DriverOption {
	return func(d *Driver) {
		if interval > 0 {
			d.progressInterval = interval
		}
	}
}

func WithEventHandler(handler func(events.Event)) DriverOption {
	return func(d *Driver) {
		if handler != nil {
			d.emit = handler
		}
	}
}

func WithLogger(l *slog.Logger) DriverOption {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

func NewDriver(output Output, opts ...DriverOption) *Driver {
	d := &Driver{
		output:           output,
		progressInterval: DefaultProgressInterval,
		emit:             func(events.Event) {},
		logger:           logger,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.clipsPlayed, _ = meter.Int64Counter("playback.clips",
		metric.WithDescription("Clips handed to the audio output, by outcome."))

	return d
}

// Play decodes data and plays it to the end. It returns once the output has
// drained the clip, the mouth has been closed and the sampler has stopped.
//
// Cancelling ctx stops the output early and returns the context error.
func (d *Driver) Play(ctx context.Context, data []byte) (err error) {
	if d == nil || d.output == nil {
		return fmt.Errorf("%w: no output configured", ErrOutputFailed)
	}
	if !d.playing.CompareAndSwap(false, true) {
		return ErrAlreadyPlaying
	}
	defer d.playing.Store(false)

	ctx, span := tracer.Start(ctx, "play clip")
	defer span.End()
	defer func() {
		outcome := "ended"
		if err != nil {
			outcome = "failed"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			d.emit(events.NewPlaybackFailed(err))
		}
		d.clipsPlayed.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}()

	clip, err := audio.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	span.SetAttributes(
		attribute.String("clip.container", string(clip.Container)),
		attribute.Int("clip.sample_rate", int(clip.Format.SampleRate)),
		attribute.Float64("clip.duration", clip.Duration().Seconds()),
	)

	rate := d.output.EncodingInfo().SampleRate
	if rate <= 0 {
		rate = int(clip.Format.SampleRate)
	}
	tap := audio.NewTap(audio.Resampled(clip.Streamer(), clip.Format.SampleRate, rate), lipsync.FFTSize)

	done := make(chan struct{})
	var endOnce sync.Once
	if err := d.output.Play(tap, func() { endOnce.Do(func() { close(done) }) }); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputFailed, err)
	}

	samplerCtx, stopSampler := context.WithCancel(context.WithoutCancel(ctx))
	var samplerDone sync.WaitGroup
	samplerDone.Add(1)
	go func() {
		defer samplerDone.Done()
		d.sampler.Run(samplerCtx, tap)
	}()

	duration := clip.Duration()
	d.emit(events.NewPlaybackStarted(duration))

	err = d.awaitEnd(ctx, done, tap, beep.SampleRate(rate), duration)

	stopSampler()
	samplerDone.Wait()
	d.sampler.Rest()

	if err != nil {
		return err
	}

	d.emit(events.NewPlaybackEnded(duration))
	return nil
}

func (d *Driver) awaitEnd(ctx context.Context, done <-chan struct{}, tap *audio.Tap, rate beep.SampleRate, duration time.Duration) error {
	ticker := time.NewTicker(d.progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return nil
		case <-ticker.C:
			d.emit(events.NewPlaybackProgress(min(rate.D(tap.Streamed()), duration), duration))
		case <-ctx.Done():
			if err := d.output.Stop(); err != nil {
				d.logger.Warn("failed to stop audio output", "error", err)
			}
			select {
			case <-done:
			case <-time.After(stopGrace):
				d.logger.Warn("audio output did not report end after stop")
			}
			return ctx.Err()
		}
	}
}

// Playing reports whether a clip is currently being played.
func (d *Driver) Playing() bool {
	return d != nil && d.playing.Load()
}
