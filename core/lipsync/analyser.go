package lipsync

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	FFTSize  = 256
	BinCount = FFTSize / 2

	DefaultSmoothing   = 0.8
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0
)

// Analyser produces byte frequency data the way a browser AnalyserNode does:
// Blackman window, magnitude smoothing over time, and decibels scaled onto
// 0..255 between the min and max decibel bounds.
type Analyser struct {
	fft    *fourier.FFT
	window []float64
	input  []float64
	coeffs []complex128

	smoothed  []float64
	smoothing float64
	minDb     float64
	maxDb     float64
}

func NewAnalyser() *Analyser {
	window := make([]float64, FFTSize)
	for n := range window {
		x := 2 * math.Pi * float64(n) / FFTSize
		window[n] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}

	return &Analyser{
		fft:       fourier.NewFFT(FFTSize),
		window:    window,
		input:     make([]float64, FFTSize),
		coeffs:    make([]complex128, FFTSize/2+1),
		smoothed:  make([]float64, BinCount),
		smoothing: DefaultSmoothing,
		minDb:     DefaultMinDecibels,
		maxDb:     DefaultMaxDecibels,
	}
}

// ByteFrequencyData analyses samples (the most recent FFTSize samples, zero
// padded when shorter) and writes up to BinCount values into dst.
func (a *Analyser) ByteFrequencyData(dst []uint8, samples []float64) int {
	for i := range a.input {
		var v float64
		if i < len(samples) {
			v = samples[i]
		}
		a.input[i] = v * a.window[i]
	}

	a.coeffs = a.fft.Coefficients(a.coeffs, a.input)

	n := min(len(dst), BinCount)
	scale := 255 / (a.maxDb - a.minDb)
	for k := 0; k < BinCount; k++ {
		magnitude := cmplx.Abs(a.coeffs[k]) / FFTSize
		a.smoothed[k] = a.smoothing*a.smoothed[k] + (1-a.smoothing)*magnitude
		if k >= n {
			continue
		}

		db := math.Inf(-1)
		if a.smoothed[k] > 0 {
			db = 20 * math.Log10(a.smoothed[k])
		}
		value := math.Floor(scale * (db - a.minDb))
		dst[k] = uint8(max(0, min(255, value)))
	}
	return n
}

// Reset forgets the smoothing history.
func (a *Analyser) Reset() {
	clear(a.smoothed)
}
