package miniaudio

import (
	"fmt"
	"log/slog"

	"github.com/gen2brain/malgo"
	"github.com/gopxl/beep/v2"
	"github.com/koscakluka/ema-avatar/core/audio"
)

type Client struct {
	// audioContext is only saved to be able to uninitialize it, it is an
	// ownership thing
	audioContext *malgo.AllocatedContext
	playbackClient
}

type ClientOption func(*clientOptions)

type clientOptions struct {
	encodingInfo      audio.EncodingInfo
	periodSizeInFrame uint32
	logger            *slog.Logger
}

func WithEncodingInfo(info audio.EncodingInfo) ClientOption {
	return func(o *clientOptions) {
		if !info.IsZero() {
			o.encodingInfo = info
		}
	}
}

// WithPeriodSize sets the device period in frames. Smaller periods make the
// analysis tap follow the speaker more closely.
func WithPeriodSize(frames uint32) ClientOption {
	return func(o *clientOptions) {
		if frames > 0 {
			o.periodSizeInFrame = frames
		}
	}
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func NewClient(opts ...ClientOption) (*Client, error) {
	options := clientOptions{
		encodingInfo: audio.GetDefaultEncodingInfo(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	audioCtx, err := malgo.InitContext(
		nil,
		malgo.ContextConfig{},
		func(message string) { options.logger.Debug("malgo", "message", message) },
	)
	if err != nil {
		return nil, fmt.Errorf("malgo InitContext failed: %w", err)
	}

	client := Client{
		audioContext: audioCtx,
	}

	if err := client.playbackClient.Init(audioCtx, options.encodingInfo, options.periodSizeInFrame); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize playback client: %w", err)
	}

	if err := client.playbackClient.Start(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to start playback device: %w", err)
	}

	return &client, nil
}

func (c *Client) Close() {
	_ = c.playbackClient.Uninit()
	_ = c.audioContext.Uninit()
	c.audioContext.Free()
}

// Play starts streaming s to the device. onEnded runs once, on its own
// goroutine, after the streamer is drained or Stop is called.
func (c *Client) Play(s beep.Streamer, onEnded func()) error {
	return c.playbackClient.Play(s, onEnded)
}

func (c *Client) Stop() error {
	c.playbackClient.Clear()
	return nil
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return c.playbackClient.encodingInfo
}
