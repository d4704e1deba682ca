package testsupport

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/koscakluka/ema-avatar/core/audio"
)

// Output is an in-memory audio output. It drains streamers faster than real
// time, one chunk per tick, and counts what it consumed.
type Output struct {
	Info  audio.EncodingInfo
	Chunk int
	Tick  time.Duration
	// PlayErr, when set, is returned by Play instead of starting playback.
	PlayErr error
	// Hold keeps the streamer open until Stop is called.
	Hold bool

	mu       sync.Mutex
	stop     chan struct{}
	consumed int
	plays    int
	stops    int
}

func NewOutput() *Output {
	return &Output{
		Info:  audio.EncodingInfo{SampleRate: 48000, Channels: 2, Format: audio.EncodingLinear16},
		Chunk: 4800,
		Tick:  time.Millisecond,
	}
}

func (o *Output) EncodingInfo() audio.EncodingInfo { return o.Info }

func (o *Output) Play(s beep.Streamer, onEnded func()) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.PlayErr != nil {
		return o.PlayErr
	}
	if o.stop != nil {
		return errors.New("output busy")
	}
	o.plays++
	stop := make(chan struct{})
	o.stop = stop

	go o.drain(s, stop, onEnded)
	return nil
}

func (o *Output) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stops++
	if o.stop != nil {
		close(o.stop)
		o.stop = nil
	}
	return nil
}

// Consumed is the number of samples pulled from all streamers so far.
func (o *Output) Consumed() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.consumed
}

func (o *Output) Plays() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.plays
}

func (o *Output) Stops() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stops
}

func (o *Output) drain(s beep.Streamer, stop chan struct{}, onEnded func()) {
	defer func() {
		o.mu.Lock()
		if o.stop == stop {
			o.stop = nil
		}
		o.mu.Unlock()
		onEnded()
	}()

	samples := make([][2]float64, o.Chunk)
	ticker := time.NewTicker(o.Tick)
	defer ticker.Stop()
	drained := false
	for {
		if !drained {
			n, ok := s.Stream(samples)
			o.mu.Lock()
			o.consumed += n
			o.mu.Unlock()
			drained = !ok || n < len(samples)
			if drained && !o.Hold {
				return
			}
		}
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}
