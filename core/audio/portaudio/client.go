package portaudio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gordonklaus/portaudio"
	"github.com/koscakluka/ema-avatar/core/audio"
)

var ErrPlaybackBusy = errors.New("playback already in progress")

// Client writes audio through a blocking PortAudio output stream. Only
// linear16 output is supported.
type Client struct {
	bufferSize   int
	encodingInfo audio.EncodingInfo
	stream       *portaudio.Stream

	out     []int16
	pcm     []byte
	samples [][2]float64

	mu      sync.Mutex
	playing bool
	stop    chan struct{}
}

func NewClient(info audio.EncodingInfo, bufferSize int) (*Client, error) {
	if info.IsZero() {
		info = audio.GetDefaultEncodingInfo()
	}
	if info.Format != audio.EncodingLinear16 {
		return nil, fmt.Errorf("unsupported portaudio format %q", info.Format.Name())
	}
	if bufferSize <= 0 {
		bufferSize = info.SampleRate / 50
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	out := make([]int16, bufferSize*info.Channels)
	stream, err := portaudio.OpenDefaultStream(0, info.Channels, float64(info.SampleRate), bufferSize, out)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open PortAudio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to start PortAudio stream: %w", err)
	}

	return &Client{
		bufferSize:   bufferSize,
		encodingInfo: info,
		stream:       stream,
		out:          out,
		pcm:          make([]byte, len(out)*2),
		samples:      make([][2]float64, bufferSize),
	}, nil
}

func (c *Client) Close() {
	_ = c.Stop()
	c.stream.Stop()
	c.stream.Close()
	portaudio.Terminate()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return c.encodingInfo
}

// Play writes s to the stream on a separate goroutine and calls onEnded
// once the streamer is drained or Stop is called.
func (c *Client) Play(s beep.Streamer, onEnded func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		return ErrPlaybackBusy
	}
	c.playing = true
	c.stop = make(chan struct{})

	go c.write(s, c.stop, onEnded)
	return nil
}

func (c *Client) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing && c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	return nil
}

func (c *Client) write(s beep.Streamer, stop <-chan struct{}, onEnded func()) {
	defer func() {
		c.mu.Lock()
		c.playing = false
		c.mu.Unlock()
		if onEnded != nil {
			onEnded()
		}
	}()

	for {
		select {
		case <-stop:
			return
		default:
		}

		n, ok := s.Stream(c.samples)
		written := audio.EncodeSamples(c.pcm, c.samples[:n], c.encodingInfo)
		clear(c.out)
		for i := range written / 2 {
			c.out[i] = int16(binary.LittleEndian.Uint16(c.pcm[2*i:]))
		}

		// PERF: a drained streamer still flushes one period of silence
		if err := c.stream.Write(); err != nil && !errors.Is(err, portaudio.OutputUnderflowed) {
			return
		}
		if !ok || n == 0 {
			return
		}
	}
}
