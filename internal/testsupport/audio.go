// Package testsupport holds fixtures shared by package tests.
package testsupport

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// ToneWAV returns a 16-bit stereo WAV clip holding a sine tone.
func ToneWAV(t testing.TB, freq float64, duration time.Duration, sampleRate int) []byte {
	t.Helper()

	format := beep.Format{SampleRate: beep.SampleRate(sampleRate), NumChannels: 2, Precision: 2}
	return encodeWAV(t, format, beep.Take(format.SampleRate.N(duration), sine(format.SampleRate, freq, 0.8)))
}

// SilenceWAV returns a 16-bit stereo WAV clip holding digital silence.
func SilenceWAV(t testing.TB, duration time.Duration, sampleRate int) []byte {
	t.Helper()

	format := beep.Format{SampleRate: beep.SampleRate(sampleRate), NumChannels: 2, Precision: 2}
	return encodeWAV(t, format, beep.Take(format.SampleRate.N(duration), beep.Silence(-1)))
}

// NoiseWAV returns a 16-bit stereo WAV clip holding loud deterministic white
// noise, which opens the mouth on every sample tick.
func NoiseWAV(t testing.TB, duration time.Duration, sampleRate int) []byte {
	t.Helper()

	format := beep.Format{SampleRate: beep.SampleRate(sampleRate), NumChannels: 2, Precision: 2}
	rng := rand.New(rand.NewSource(1))
	noise := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := 0.8 * (rng.Float64()*2 - 1)
			samples[i][0], samples[i][1] = v, v
		}
		return len(samples), true
	})
	return encodeWAV(t, format, beep.Take(format.SampleRate.N(duration), noise))
}

func sine(sampleRate beep.SampleRate, freq, amplitude float64) beep.Streamer {
	step := 2 * math.Pi * freq / float64(sampleRate)
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := amplitude * math.Sin(phase)
			samples[i][0], samples[i][1] = v, v
			phase += step
		}
		return len(samples), true
	})
}

func encodeWAV(t testing.TB, format beep.Format, s beep.Streamer) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create wav fixture: %v", err)
	}
	if err := wav.Encode(f, s, format); err != nil {
		f.Close()
		t.Fatalf("failed to encode wav fixture: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close wav fixture: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read wav fixture: %v", err)
	}
	return data
}
