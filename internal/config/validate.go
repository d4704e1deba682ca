package config

import (
	"fmt"
	"net/url"

	"github.com/koscakluka/ema-avatar/core/audio"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBackend(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateLipSync(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateUI()
}

func (c *Config) validateBackend() error {
	base, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("backend.base_url: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return fmt.Errorf("backend.base_url must be an absolute http(s) URL, got %q", c.Backend.BaseURL)
	}
	if c.Backend.ReconnectDelayMs <= 0 {
		return fmt.Errorf("backend.reconnect_delay_ms must be positive")
	}
	if c.Backend.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("backend.request_timeout_seconds must be positive")
	}
	if _, err := c.Endpoints(); err != nil {
		return fmt.Errorf("backend.endpoint: %w", err)
	}
	return nil
}

func (c *Config) validateAudio() error {
	switch c.Audio.Output {
	case "miniaudio", "portaudio", "null":
	default:
		return fmt.Errorf("audio.output must be one of miniaudio, portaudio or null, got %q", c.Audio.Output)
	}
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return fmt.Errorf("audio.sample_rate must be between 8000 and 192000, got %d", c.Audio.SampleRate)
	}
	if c.Audio.Channels != 1 && c.Audio.Channels != 2 {
		return fmt.Errorf("audio.channels must be 1 or 2, got %d", c.Audio.Channels)
	}
	if _, ok := audio.ParseFormat(c.Audio.Format); !ok {
		return fmt.Errorf("audio.format must be linear16 or float32, got %q", c.Audio.Format)
	}
	if c.Audio.Output == "portaudio" && c.Audio.Format != "linear16" {
		return fmt.Errorf("audio.format %q is not supported by the portaudio output", c.Audio.Format)
	}
	if c.Audio.BufferFrames < 0 {
		return fmt.Errorf("audio.buffer_frames must not be negative")
	}
	return nil
}

func (c *Config) validateLipSync() error {
	if c.LipSync.ParamID == "" {
		return fmt.Errorf("lipsync.param_id is required")
	}
	if c.LipSync.Weight <= 0 || c.LipSync.Weight > 1 {
		return fmt.Errorf("lipsync.weight must be in (0,1], got %v", c.LipSync.Weight)
	}
	if c.LipSync.IntervalMs <= 0 {
		return fmt.Errorf("lipsync.interval_ms must be positive")
	}
	if c.LipSync.Threshold < 0 || c.LipSync.Threshold > 1 {
		return fmt.Errorf("lipsync.threshold must be in [0,1], got %v", c.LipSync.Threshold)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateUI() error {
	switch c.UI.Mode {
	case "auto", "tui", "plain":
	default:
		return fmt.Errorf("ui.mode must be auto, tui or plain, got %q", c.UI.Mode)
	}
	if c.UI.CaptionHistory <= 0 {
		return fmt.Errorf("ui.caption_history must be positive")
	}
	return nil
}
