package main

import (
	"fmt"
	"log/slog"

	"github.com/koscakluka/ema-avatar/core/audio/miniaudio"
	"github.com/koscakluka/ema-avatar/core/audio/portaudio"
	"github.com/koscakluka/ema-avatar/core/playback"
	"github.com/koscakluka/ema-avatar/internal/config"
)

// openOutput opens the configured playback device. The returned func
// releases it.
func openOutput(cfg *config.Config, logger *slog.Logger) (playback.Output, func(), error) {
	info := cfg.EncodingInfo()

	switch cfg.Audio.Output {
	case "miniaudio":
		client, err := miniaudio.NewClient(
			miniaudio.WithEncodingInfo(info),
			miniaudio.WithPeriodSize(uint32(max(cfg.Audio.BufferFrames, 0))),
			miniaudio.WithLogger(logger),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("open miniaudio output: %w", err)
		}
		return client, client.Close, nil
	case "portaudio":
		client, err := portaudio.NewClient(info, cfg.Audio.BufferFrames)
		if err != nil {
			return nil, nil, fmt.Errorf("open portaudio output: %w", err)
		}
		return client, client.Close, nil
	case "null":
		return playback.NewNullOutput(info), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported audio output %q", cfg.Audio.Output)
	}
}
