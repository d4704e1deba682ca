package playback

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/koscakluka/ema-avatar/core/audio"
)

var ErrOutputBusy = errors.New("output is already playing")

const nullPeriod = 20 * time.Millisecond

// NullOutput consumes streamers at real-time pace without producing sound.
// It stands in for a sound card on headless hosts so acknowledgements still
// arrive after the clip's natural duration.
type NullOutput struct {
	info audio.EncodingInfo

	mu   sync.Mutex
	stop chan struct{}
}

func NewNullOutput(info audio.EncodingInfo) *NullOutput {
	if info.IsZero() {
		info = audio.GetDefaultEncodingInfo()
	}
	return &NullOutput{info: info}
}

func (o *NullOutput) EncodingInfo() audio.EncodingInfo {
	return o.info
}

func (o *NullOutput) Play(s beep.Streamer, onEnded func()) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stop != nil {
		return ErrOutputBusy
	}
	stop := make(chan struct{})
	o.stop = stop

	go o.drain(s, stop, onEnded)
	return nil
}

func (o *NullOutput) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stop != nil {
		close(o.stop)
		o.stop = nil
	}
	return nil
}

func (o *NullOutput) drain(s beep.Streamer, stop chan struct{}, onEnded func()) {
	defer func() {
		o.mu.Lock()
		if o.stop == stop {
			o.stop = nil
		}
		o.mu.Unlock()
		if onEnded != nil {
			onEnded()
		}
	}()

	period := beep.SampleRate(o.info.SampleRate).N(nullPeriod)
	if period <= 0 {
		period = 1
	}
	samples := make([][2]float64, period)

	ticker := time.NewTicker(nullPeriod)
	defer ticker.Stop()
	for {
		if n, ok := s.Stream(samples); !ok || n < len(samples) {
			return
		}
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}
