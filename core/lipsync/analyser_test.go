package lipsync

import (
	"math"
	"testing"
)

func TestAnalyserSilenceIsZero(t *testing.T) {
	analyser := NewAnalyser()
	bins := make([]uint8, BinCount)

	if n := analyser.ByteFrequencyData(bins, make([]float64, FFTSize)); n != BinCount {
		t.Fatalf("expected %d bins, got %d", BinCount, n)
	}
	for i, b := range bins {
		if b != 0 {
			t.Fatalf("expected silent bin %d to be 0, got %d", i, b)
		}
	}
	if got := Aperture(bins); got != 0 {
		t.Fatalf("expected closed mouth for silence, got %v", got)
	}
}

func TestAnalyserPeaksAtToneBin(t *testing.T) {
	const bin = 10
	samples := make([]float64, FFTSize)
	for i := range samples {
		samples[i] = 0.8 * math.Sin(2*math.Pi*bin*float64(i)/FFTSize)
	}

	analyser := NewAnalyser()
	bins := make([]uint8, BinCount)
	for i := 0; i < 10; i++ {
		analyser.ByteFrequencyData(bins, samples)
	}

	peak := 0
	for i := range bins {
		if bins[i] > bins[peak] {
			peak = i
		}
	}
	if peak != bin {
		t.Fatalf("expected peak at bin %d, got %d (%v)", bin, peak, bins)
	}
	if bins[bin] < 200 {
		t.Fatalf("expected loud tone bin, got %d", bins[bin])
	}
}

func TestAnalyserPadsShortInput(t *testing.T) {
	analyser := NewAnalyser()
	bins := make([]uint8, 4)

	if n := analyser.ByteFrequencyData(bins, []float64{0.5, -0.5}); n != 4 {
		t.Fatalf("expected 4 bins written, got %d", n)
	}
}
