package config

const (
	defaultBaseURL               = "http://127.0.0.1:8000"
	defaultEndpoint              = "/ws/{actor}"
	defaultActor                 = "default"
	defaultReconnectDelayMs      = 5000
	defaultRequestTimeoutSeconds = 10
	defaultAudioOutput           = "miniaudio"
	defaultSampleRate            = 48000
	defaultChannels              = 2
	defaultSampleFormat          = "linear16"
	defaultParamID               = "ParamMouthOpenY"
	defaultLipSyncWeight         = 0.8
	defaultLipSyncIntervalMs     = 90
	defaultLipSyncThreshold      = 0.4
	defaultMotionPriority        = 3
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultUIMode                = "auto"
	defaultCaptionHistory        = 5
	defaultLockDir               = "~/.cache/ema-avatar"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Backend: Backend{
			BaseURL:               defaultBaseURL,
			Endpoint:              defaultEndpoint,
			Actor:                 defaultActor,
			ReconnectDelayMs:      defaultReconnectDelayMs,
			RequestTimeoutSeconds: defaultRequestTimeoutSeconds,
		},
		Audio: Audio{
			Output:     defaultAudioOutput,
			SampleRate: defaultSampleRate,
			Channels:   defaultChannels,
			Format:     defaultSampleFormat,
		},
		LipSync: LipSync{
			ParamID:    defaultParamID,
			Weight:     defaultLipSyncWeight,
			IntervalMs: defaultLipSyncIntervalMs,
			Threshold:  defaultLipSyncThreshold,
		},
		Motion: Motion{
			Priority: defaultMotionPriority,
		},
		Scene: Scene{
			Initial: -1,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		UI: UI{
			Mode:           defaultUIMode,
			CaptionHistory: defaultCaptionHistory,
		},
		Instance: Instance{
			Enabled: true,
			LockDir: defaultLockDir,
		},
	}
}
