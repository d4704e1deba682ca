package lipsync

import (
	"context"
	"time"
)

const (
	DefaultParameterID = "ParamMouthOpenY"
	DefaultWeight      = 0.8
	DefaultInterval    = 90 * time.Millisecond
	DefaultThreshold   = 0.4
)

// ParameterSetter receives expression parameter updates.
type ParameterSetter interface {
	SetExpressionParameter(actorID, paramID string, value, weight float64)
}

// SampleSource exposes the most recently played mono samples.
type SampleSource interface {
	Latest(dst []float64) int
}

type Sampler struct {
	sink    ParameterSetter
	speaker func() string

	paramID   string
	weight    float64
	interval  time.Duration
	threshold float64
}

type SamplerOption func(*Sampler)

func WithParameterID(id string) SamplerOption {
	return func(s *Sampler) {
		if id != "" {
			s.paramID = id
		}
	}
}

func WithWeight(weight float64) SamplerOption {
	return func(s *Sampler) {
		if weight > 0 {
			s.weight = weight
		}
	}
}

// WithInterval sets the time between a sample tick and the close tick that
// follows it (and between the close tick and the next sample).
func WithInterval(interval time.Duration) SamplerOption {
	return func(s *Sampler) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

func WithThreshold(threshold float64) SamplerOption {
	return func(s *Sampler) {
		if threshold >= 0 && threshold <= 1 {
			s.threshold = threshold
		}
	}
}

// NewSampler creates a sampler writing to sink for whoever speaker returns
// at each tick. A nil speaker func means nobody speaks.
func NewSampler(sink ParameterSetter, speaker func() string, opts ...SamplerOption) *Sampler {
	if speaker == nil {
		speaker = func() string { return "" }
	}
	s := &Sampler{
		sink:      sink,
		speaker:   speaker,
		paramID:   DefaultParameterID,
		weight:    DefaultWeight,
		interval:  DefaultInterval,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run samples source until ctx is cancelled. It blocks; callers run it on
// its own goroutine for the lifetime of one playback.
func (s *Sampler) Run(ctx context.Context, source SampleSource) {
	if s == nil || source == nil {
		return
	}

	analyser := NewAnalyser()
	window := make([]float64, FFTSize)
	bins := make([]uint8, BinCount)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	wait := func() bool {
		timer.Reset(s.interval)
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
			return true
		}
	}

	for {
		if ctx.Err() != nil {
			return
		}

		n := source.Latest(window)
		analyser.ByteFrequencyData(bins, window[:n])
		if value := Aperture(bins); value > s.threshold {
			s.set(value)
		}

		if !wait() {
			return
		}
		s.set(0)

		if !wait() {
			return
		}
	}
}

// Rest closes the mouth of the current speaker.
func (s *Sampler) Rest() {
	if s == nil {
		return
	}
	s.set(0)
}

func (s *Sampler) set(value float64) {
	if s.sink == nil {
		return
	}
	speaker := s.speaker()
	if speaker == "" {
		return
	}
	s.sink.SetExpressionParameter(speaker, s.paramID, value, s.weight)
}
