package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeBackend()
	c.normalizeAudio()
	c.normalizeLogging()
	c.normalizeUI()
	return c.normalizeInstance()
}

func (c *Config) normalizeBackend() {
	if value, ok := os.LookupEnv("EMA_AVATAR_BASE_URL"); ok && strings.TrimSpace(value) != "" {
		c.Backend.BaseURL = value
	}
	if value, ok := os.LookupEnv("EMA_AVATAR_ENDPOINT"); ok && strings.TrimSpace(value) != "" {
		c.Backend.Endpoint = value
	}
	if value, ok := os.LookupEnv("EMA_AVATAR_ACTOR"); ok && strings.TrimSpace(value) != "" {
		c.Backend.Actor = value
	}

	c.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(c.Backend.BaseURL), "/")
	c.Backend.Endpoint = strings.TrimSpace(c.Backend.Endpoint)
	if c.Backend.Endpoint == "" {
		c.Backend.Endpoint = defaultEndpoint
	}
	c.Backend.Actor = strings.TrimSpace(c.Backend.Actor)
	if c.Backend.Actor == "" {
		c.Backend.Actor = defaultActor
	}
}

func (c *Config) normalizeAudio() {
	c.Audio.Output = strings.ToLower(strings.TrimSpace(c.Audio.Output))
	if c.Audio.Output == "" {
		c.Audio.Output = defaultAudioOutput
	}
	c.Audio.Format = strings.ToLower(strings.TrimSpace(c.Audio.Format))
	if c.Audio.Format == "" {
		c.Audio.Format = defaultSampleFormat
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console", "text":
		c.Logging.Format = "console"
	default:
		c.Logging.Format = format
	}
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}

func (c *Config) normalizeUI() {
	c.UI.Mode = strings.ToLower(strings.TrimSpace(c.UI.Mode))
	if c.UI.Mode == "" {
		c.UI.Mode = defaultUIMode
	}
}

func (c *Config) normalizeInstance() error {
	if strings.TrimSpace(c.Instance.LockDir) == "" {
		c.Instance.LockDir = defaultLockDir
	}
	var err error
	if c.Instance.LockDir, err = expandPath(c.Instance.LockDir); err != nil {
		return fmt.Errorf("instance.lock_dir: %w", err)
	}
	return nil
}
