package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/koscakluka/ema-avatar/core/audio"
	"github.com/koscakluka/ema-avatar/core/transport"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Backend describes where the backend lives and how to stay connected to it.
type Backend struct {
	// BaseURL is the HTTP address of the backend. It plays the role of the
	// page location: the fallback socket endpoint is derived from it.
	BaseURL string `toml:"base_url"`
	// Endpoint is the socket endpoint; "{actor}" is replaced with Actor. A
	// relative endpoint always resolves against BaseURL.
	Endpoint              string `toml:"endpoint"`
	Actor                 string `toml:"actor"`
	ReconnectDelayMs      int    `toml:"reconnect_delay_ms"`
	ConnectedNotice       string `toml:"connected_notice"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// Audio selects the playback device.
type Audio struct {
	Output       string `toml:"output"` // miniaudio, portaudio or null
	SampleRate   int    `toml:"sample_rate"`
	Channels     int    `toml:"channels"`
	Format       string `toml:"format"` // linear16 or float32
	BufferFrames int    `toml:"buffer_frames"`
}

type LipSync struct {
	ParamID    string  `toml:"param_id"`
	Weight     float64 `toml:"weight"`
	IntervalMs int     `toml:"interval_ms"`
	Threshold  float64 `toml:"threshold"`
}

type Motion struct {
	Priority int `toml:"priority"`
}

type Scene struct {
	// Initial is the scene already shown at startup, -1 for none.
	Initial int `toml:"initial"`
}

type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

type UI struct {
	Mode           string `toml:"mode"` // auto, tui or plain
	CaptionHistory int    `toml:"caption_history"`
}

// Instance guards against two clients claiming the same actor on one host;
// the backend keeps a single socket per actor and the newer one wins.
type Instance struct {
	Enabled bool   `toml:"enabled"`
	LockDir string `toml:"lock_dir"`
}

type Config struct {
	Backend  Backend  `toml:"backend"`
	Audio    Audio    `toml:"audio"`
	LipSync  LipSync  `toml:"lipsync"`
	Motion   Motion   `toml:"motion"`
	Scene    Scene    `toml:"scene"`
	Logging  Logging  `toml:"logging"`
	UI       UI       `toml:"ui"`
	Instance Instance `toml:"instance"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/ema-avatar/config.toml")
}

// Load locates, parses, and validates a configuration file. It returns the
// config, the resolved path and whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ema-avatar.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Endpoints resolves the socket endpoints for the configured actor.
func (c *Config) Endpoints() (transport.Endpoints, error) {
	location, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return transport.Endpoints{}, fmt.Errorf("backend.base_url: %w", err)
	}
	return transport.ResolveEndpoints(c.Backend.Endpoint, c.Backend.Actor, location)
}

func (c *Config) ReconnectDelay() time.Duration {
	return time.Duration(c.Backend.ReconnectDelayMs) * time.Millisecond
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Backend.RequestTimeoutSeconds) * time.Second
}

func (c *Config) LipSyncInterval() time.Duration {
	return time.Duration(c.LipSync.IntervalMs) * time.Millisecond
}

// EncodingInfo returns the playback device format.
func (c *Config) EncodingInfo() audio.EncodingInfo {
	format, _ := audio.ParseFormat(c.Audio.Format)
	return audio.EncodingInfo{
		SampleRate: c.Audio.SampleRate,
		Channels:   c.Audio.Channels,
		Format:     format,
	}
}

// LockPath is the lock file claiming the configured actor on this host.
func (c *Config) LockPath() string {
	return filepath.Join(c.Instance.LockDir, "actor-"+url.PathEscape(c.Backend.Actor)+".lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// SampleConfig returns the commented sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
