package lipsync

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"
)

type parameterCall struct {
	actorID string
	paramID string
	value   float64
	weight  float64
}

type recordingSink struct {
	mu    sync.Mutex
	calls []parameterCall
}

func (s *recordingSink) SetExpressionParameter(actorID, paramID string, value, weight float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, parameterCall{actorID, paramID, value, weight})
}

func (s *recordingSink) snapshot() []parameterCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]parameterCall(nil), s.calls...)
}

type staticSource struct{ samples []float64 }

func (s staticSource) Latest(dst []float64) int {
	return copy(dst, s.samples)
}

func noise() staticSource {
	rng := rand.New(rand.NewSource(1))
	samples := make([]float64, FFTSize)
	for i := range samples {
		samples[i] = rng.Float64()*2 - 1
	}
	return staticSource{samples: samples}
}

func runSampler(t *testing.T, sampler *Sampler, source SampleSource, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	done := make(chan struct{})
	go func() {
		sampler.Run(ctx, source)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(d + time.Second):
		t.Fatalf("sampler did not stop after context cancellation")
	}
}

func TestSamplerFluttersForLoudAudio(t *testing.T) {
	sink := &recordingSink{}
	sampler := NewSampler(sink, func() string { return "Alice" }, WithInterval(5*time.Millisecond))

	runSampler(t, sampler, noise(), 60*time.Millisecond)

	calls := sink.snapshot()
	if len(calls) < 2 {
		t.Fatalf("expected open and close calls, got %v", calls)
	}
	if calls[0].value != 1.0 {
		t.Fatalf("expected first tick to open fully, got %v", calls[0].value)
	}
	if calls[1].value != 0 {
		t.Fatalf("expected close tick after sample, got %v", calls[1].value)
	}
	for _, call := range calls {
		if call.actorID != "Alice" || call.paramID != DefaultParameterID || call.weight != DefaultWeight {
			t.Fatalf("unexpected call %+v", call)
		}
	}
}

func TestSamplerKeepsMouthClosedForSilence(t *testing.T) {
	sink := &recordingSink{}
	sampler := NewSampler(sink, func() string { return "Alice" }, WithInterval(5*time.Millisecond))

	runSampler(t, sampler, staticSource{samples: make([]float64, FFTSize)}, 40*time.Millisecond)

	for _, call := range sink.snapshot() {
		if call.value != 0 {
			t.Fatalf("expected only close calls for silence, got %+v", call)
		}
	}
}

func TestSamplerWithoutSpeakerIsNoop(t *testing.T) {
	sink := &recordingSink{}
	sampler := NewSampler(sink, nil, WithInterval(5*time.Millisecond))

	runSampler(t, sampler, noise(), 30*time.Millisecond)
	sampler.Rest()

	if calls := sink.snapshot(); len(calls) != 0 {
		t.Fatalf("expected no render calls without a speaker, got %v", calls)
	}
}

func TestSamplerRestClosesMouth(t *testing.T) {
	sink := &recordingSink{}
	sampler := NewSampler(sink, func() string { return "Bob" }, WithParameterID("ParamMouth"), WithWeight(1))

	sampler.Rest()

	calls := sink.snapshot()
	if len(calls) != 1 || calls[0] != (parameterCall{"Bob", "ParamMouth", 0, 1}) {
		t.Fatalf("expected a single close call, got %v", calls)
	}
}
