package audio

import (
	"testing"

	"github.com/gopxl/beep/v2"
)

func rampStreamer(n int) beep.Streamer {
	i := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if i >= n {
			return 0, false
		}
		written := 0
		for written < len(samples) && i < n {
			samples[written] = [2]float64{float64(i), float64(i) + 2}
			i++
			written++
		}
		return written, true
	})
}

func TestTapKeepsLatestMonoSamples(t *testing.T) {
	tap := NewTap(rampStreamer(10), 4)

	samples := make([][2]float64, 3)
	for {
		if _, ok := tap.Stream(samples); !ok {
			break
		}
	}

	latest := make([]float64, 4)
	if n := tap.Latest(latest); n != 4 {
		t.Fatalf("expected 4 samples, got %d", n)
	}
	want := []float64{7, 8, 9, 10}
	for i := range want {
		if latest[i] != want[i] {
			t.Fatalf("expected latest %v, got %v", want, latest)
		}
	}
	if got := tap.Streamed(); got != 10 {
		t.Fatalf("expected 10 streamed samples, got %d", got)
	}
}

func TestTapLatestClampsToRingSize(t *testing.T) {
	tap := NewTap(rampStreamer(2), 2)
	tap.Stream(make([][2]float64, 2))

	dst := make([]float64, 8)
	if n := tap.Latest(dst); n != 2 {
		t.Fatalf("expected 2 samples, got %d", n)
	}
}
