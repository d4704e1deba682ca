package tui

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/koscakluka/ema-avatar/core/events"
)

// PlainSink writes captions, titles and state changes as text lines. Render
// calls are ignored.
type PlainSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPlainSink(w io.Writer) *PlainSink {
	return &PlainSink{w: w}
}

func (s *PlainSink) Display(actorID, text string) {
	s.printf("%s> %s\n", actorID, text)
}

func (s *PlainSink) SetTitle(title string) {
	s.printf("# %s\n", title)
}

func (s *PlainSink) Clear() {
	s.printf("--\n")
}

func (s *PlainSink) SetExpressionParameter(string, string, float64, float64) {}

func (s *PlainSink) TriggerMotion(actorID, group string, _ int) {
	s.printf("* %s %s\n", actorID, group)
}

func (s *PlainSink) LoadScene(_ context.Context, index int) error {
	s.printf("[scene %d]\n", index)
	return nil
}

// Events prints connection state changes.
func (s *PlainSink) Events(event events.Event) {
	if e, ok := event.(events.ConnectionStateChanged); ok {
		s.printf("[%s]\n", e.To)
	}
}

func (s *PlainSink) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.w, format, args...)
}
