package stage

import (
	"context"
	"errors"
	"fmt"

	"github.com/koscakluka/ema-avatar/core/events"
	"github.com/koscakluka/ema-avatar/core/frames"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// dispatchLoop is the only consumer of the frame queue and the only caller
// of the player. It exits when ctx is done.
func (c *Client) dispatchLoop(ctx context.Context) {
	defer close(c.done)

	for {
		frame, err := c.queue.Pop(ctx)
		if err != nil {
			return
		}

		worker := panicSafeNamedWorker("dispatch "+string(frame.Kind()), func(ctx context.Context) error {
			return c.dispatch(ctx, frame)
		})
		if err := worker(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			// A panic skips handleAudio's own forfeit; the waker belongs to
			// this clip and must not pair with the next one.
			if _, isAudio := frame.(frames.Audio); isAudio && errors.Is(err, errWorkerPanicked) {
				if waker, ok := c.session.takeAck(); ok {
					c.forfeit(ctx, waker, "playback failed")
				}
			}
			c.logger.Error("failed to handle frame", "kind", frame.Kind(), "error", err)
		}
	}
}

func (c *Client) dispatch(ctx context.Context, frame frames.Frame) (err error) {
	ctx, span := tracer.Start(ctx, "dispatch frame", trace.WithAttributes(
		attribute.String("frame.kind", string(frame.Kind())),
		attribute.Int("queue.remaining", c.queue.Len()),
	))
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	switch frame := frame.(type) {
	case frames.Audio:
		return c.handleAudio(ctx, frame)
	case frames.Speech:
		c.handleSpeech(ctx, frame)
	case frames.ChangeScene:
		return c.handleChangeScene(ctx, frame)
	case frames.UpdateTitle:
		c.session.setTitle(frame.Title)
		c.captions.SetTitle(frame.Title)
	default:
		return fmt.Errorf("%w: unexpected frame %T", ErrProtocol, frame)
	}
	return nil
}

func (c *Client) handleAudio(ctx context.Context, frame frames.Audio) error {
	if err := c.player.Play(ctx, frame.Data); err != nil {
		if waker, ok := c.session.takeAck(); ok {
			c.forfeit(ctx, waker, "playback failed")
		}
		return fmt.Errorf("failed to play audio clip: %w", err)
	}

	waker, ok := c.session.takeAck()
	if !ok {
		return nil
	}
	return c.sendAck(ctx, waker)
}

func (c *Client) sendAck(ctx context.Context, waker string) error {
	ctx, span := tracer.Start(ctx, "send ack")
	defer span.End()

	if err := c.supervisor.SendText(ctx, waker); err != nil {
		err = fmt.Errorf("failed to send waker: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.forfeit(ctx, waker, "send failed")
		if errors.Is(err, ErrNotConnected) {
			c.logger.Debug("waker not sent, connection is down", "waker", waker)
			return nil
		}
		return err
	}

	c.metrics.acksSent.Add(ctx, 1)
	c.emit(events.NewAckSent(waker))
	return nil
}

func (c *Client) handleSpeech(ctx context.Context, frame frames.Speech) {
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("speech.actor", frame.ActorID),
		attribute.Bool("speech.voice", frame.HasVoice()),
		attribute.Bool("speech.waker", frame.Waker != ""),
	)

	c.session.setSpeaker(frame.ActorID)
	c.captions.Display(frame.ActorID, frame.Message)
	if frame.Motion != "" {
		c.render.TriggerMotion(frame.ActorID, frame.Motion, c.motionPriority)
	}
	// A disconnect may have cleared the session after this frame was popped;
	// the waker then carries over to the next connection, as popped frames
	// are not part of the discarded queue.
	if frame.Waker != "" {
		if previous := c.session.setAck(frame.Waker); previous != "" {
			c.forfeit(ctx, previous, "superseded")
		}
	}
}

func (c *Client) handleChangeScene(ctx context.Context, frame frames.ChangeScene) error {
	if c.session.Scene() == frame.Index {
		return nil
	}
	if err := c.scenes.LoadScene(ctx, frame.Index); err != nil {
		return fmt.Errorf("failed to load scene %d: %w", frame.Index, err)
	}
	c.session.setScene(frame.Index)
	c.emit(events.NewSceneChanged(frame.Index))
	return nil
}
