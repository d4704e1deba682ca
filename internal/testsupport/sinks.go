package testsupport

import (
	"context"
	"sync"
)

type ParameterCall struct {
	ActorID string
	ParamID string
	Value   float64
	Weight  float64
}

type MotionCall struct {
	ActorID  string
	Group    string
	Priority int
}

// RenderSink records every render call it receives.
type RenderSink struct {
	mu         sync.Mutex
	parameters []ParameterCall
	motions    []MotionCall
}

func (s *RenderSink) SetExpressionParameter(actorID, paramID string, value, weight float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parameters = append(s.parameters, ParameterCall{actorID, paramID, value, weight})
}

func (s *RenderSink) TriggerMotion(actorID, group string, priority int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.motions = append(s.motions, MotionCall{actorID, group, priority})
}

func (s *RenderSink) Parameters() []ParameterCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ParameterCall(nil), s.parameters...)
}

func (s *RenderSink) Motions() []MotionCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]MotionCall(nil), s.motions...)
}

type Caption struct {
	ActorID string
	Text    string
}

// CaptionSink records captions and titles. It also implements the optional
// Clear capability.
type CaptionSink struct {
	mu       sync.Mutex
	captions []Caption
	titles   []string
	clears   int
}

func (s *CaptionSink) Display(actorID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captions = append(s.captions, Caption{actorID, text})
}

func (s *CaptionSink) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles = append(s.titles, title)
}

func (s *CaptionSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
}

func (s *CaptionSink) Captions() []Caption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Caption(nil), s.captions...)
}

func (s *CaptionSink) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.titles...)
}

func (s *CaptionSink) Clears() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

// SceneLoader records requested scene indexes.
type SceneLoader struct {
	Err error

	mu     sync.Mutex
	scenes []int
}

func (l *SceneLoader) LoadScene(_ context.Context, index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scenes = append(l.scenes, index)
	return l.Err
}

func (l *SceneLoader) Scenes() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int(nil), l.scenes...)
}
