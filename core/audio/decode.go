package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"
)

var (
	ErrEmptyClip            = errors.New("audio clip is empty")
	ErrUnsupportedContainer = errors.New("unsupported audio container")
	ErrInvalidFormat        = errors.New("audio clip has an invalid format")
)

type Container string

const (
	ContainerWAV Container = "wav"
	ContainerMP3 Container = "mp3"
)

// Clip is a fully decoded audio clip kept in memory.
type Clip struct {
	Container Container
	Format    beep.Format
	buffer    *beep.Buffer
}

func (c *Clip) Len() int {
	if c == nil || c.buffer == nil {
		return 0
	}
	return c.buffer.Len()
}

func (c *Clip) Duration() time.Duration {
	if c == nil {
		return 0
	}
	return c.Format.SampleRate.D(c.Len())
}

// Streamer returns a fresh streamer over the whole clip.
func (c *Clip) Streamer() beep.StreamSeeker {
	return c.buffer.Streamer(0, c.buffer.Len())
}

// SniffContainer guesses the container from the leading bytes.
func SniffContainer(data []byte) (Container, bool) {
	switch {
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return ContainerWAV, true
	case len(data) >= 3 && bytes.Equal(data[:3], []byte("ID3")):
		return ContainerMP3, true
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return ContainerMP3, true
	}
	return "", false
}

// Decode decodes a complete clip into memory. Any error means the clip is
// unusable; nothing is played from a partially decoded clip.
func Decode(data []byte) (*Clip, error) {
	if len(data) == 0 {
		return nil, ErrEmptyClip
	}

	container, ok := SniffContainer(data)
	if !ok {
		return nil, ErrUnsupportedContainer
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch container {
	case ContainerWAV:
		streamer, format, err = wav.Decode(bytes.NewReader(data))
	case ContainerMP3:
		streamer, format, err = mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s clip: %w", container, err)
	}
	defer streamer.Close()

	// wav.Decode accepts any header values; a zero rate would divide by zero
	// further down.
	if format.SampleRate <= 0 || format.NumChannels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidFormat, format.SampleRate, format.NumChannels)
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("failed to decode %s clip: %w", container, err)
	}
	if buffer.Len() == 0 {
		return nil, ErrEmptyClip
	}

	return &Clip{Container: container, Format: format, buffer: buffer}, nil
}

// Resampled returns s converted from the clip rate to the given rate, or s
// itself when the rates already match.
func Resampled(s beep.Streamer, from beep.SampleRate, to int) beep.Streamer {
	if to <= 0 || int(from) == to {
		return s
	}
	return beep.Resample(4, from, beep.SampleRate(to), s)
}
