package miniaudio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/gopxl/beep/v2"
	"github.com/koscakluka/ema-avatar/core/audio"
)

var ErrPlaybackBusy = errors.New("playback already in progress")

type playbackClient struct {
	audioContext *malgo.AllocatedContext
	device       *malgo.Device
	config       malgo.DeviceConfig
	encodingInfo audio.EncodingInfo

	streamer beep.Streamer
	onEnded  func()
	samples  [][2]float64

	mu       sync.Mutex
	streamMu sync.Mutex
}

func (c *playbackClient) Init(audioContext *malgo.AllocatedContext, info audio.EncodingInfo, periodSize uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	format := malgo.FormatS16
	if info.Format == audio.EncodingFloat32 {
		format = malgo.FormatF32
	}
	sampleRate := uint32(info.SampleRate)
	if periodSize == 0 {
		periodSize = sampleRate / 50 // ~20ms of audio
	}

	c.config = malgo.DefaultDeviceConfig(malgo.Playback)
	c.config.SampleRate = sampleRate
	c.config.Playback.Format = format
	c.config.Playback.Channels = uint32(info.Channels)
	c.config.Alsa.NoMMap = 1
	c.config.PeriodSizeInFrames = periodSize
	c.config.Periods = 3

	c.audioContext = audioContext
	c.encodingInfo = info
	c.samples = make([][2]float64, periodSize)

	var err error
	if c.device, err = malgo.InitDevice(
		c.audioContext.Context,
		c.config,
		malgo.DeviceCallbacks{Data: c.processAudio(info.BytesPerFrame())},
	); err != nil {
		return err
	}

	return nil
}

func (c *playbackClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}

	return nil
}

func (c *playbackClient) Play(s beep.Streamer, onEnded func()) error {
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	} else if !c.device.IsStarted() {
		return fmt.Errorf("device not started")
	}

	c.streamMu.Lock()
	defer c.streamMu.Unlock()
	if c.streamer != nil {
		return ErrPlaybackBusy
	}
	if onEnded == nil {
		onEnded = func() {}
	}
	c.streamer = s
	c.onEnded = onEnded
	return nil
}

// Clear drops the current streamer and reports it as ended.
func (c *playbackClient) Clear() {
	c.streamMu.Lock()
	onEnded := c.onEnded
	c.streamer = nil
	c.onEnded = nil
	c.streamMu.Unlock()

	if onEnded != nil {
		go onEnded()
	}
}

func (c *playbackClient) Uninit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	c.device.Uninit()
	c.device = nil

	return nil
}

func (c *playbackClient) processAudio(bytesPerFrame int) malgo.DataProc {
	return func(pOutput, _ []byte, frameCount uint32) {
		need := int(frameCount)
		if len(pOutput) < need*bytesPerFrame {
			need = len(pOutput) / bytesPerFrame
		}

		c.streamMu.Lock()
		streamer := c.streamer
		if streamer == nil {
			c.streamMu.Unlock()
			clear(pOutput)
			return
		}

		if cap(c.samples) < need {
			c.samples = make([][2]float64, need)
		}
		samples := c.samples[:need]

		filled := 0
		drained := false
		for filled < need {
			n, ok := streamer.Stream(samples[filled:])
			filled += n
			if !ok {
				drained = true
				break
			} else if n == 0 {
				break
			}
		}

		written := audio.EncodeSamples(pOutput, samples[:filled], c.encodingInfo)
		clear(pOutput[written:])

		var onEnded func()
		if drained {
			onEnded = c.onEnded
			c.streamer = nil
			c.onEnded = nil
		}
		c.streamMu.Unlock()

		if onEnded != nil {
			go onEnded()
		}
	}
}
