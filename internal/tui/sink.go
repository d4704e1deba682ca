package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/koscakluka/ema-avatar/core/events"
)

// Sink turns client callbacks into messages for a running Model. It
// satisfies the caption, render and scene sink interfaces of the client and
// offers Events as an event handler.
type Sink struct {
	send func(tea.Msg)
}

func newSink(send func(tea.Msg)) *Sink {
	return &Sink{send: send}
}

func (s *Sink) Display(actorID, text string) {
	s.send(captionMsg{actorID: actorID, text: text})
}

func (s *Sink) SetTitle(title string) { s.send(titleMsg(title)) }

func (s *Sink) Clear() { s.send(clearMsg{}) }

func (s *Sink) SetExpressionParameter(actorID, paramID string, value, _ float64) {
	s.send(parameterMsg{actorID: actorID, paramID: paramID, value: value})
}

func (s *Sink) TriggerMotion(actorID, group string, _ int) {
	s.send(motionMsg{actorID: actorID, group: group})
}

// LoadScene records the scene; a terminal has no model assets to swap.
func (s *Sink) LoadScene(_ context.Context, index int) error {
	s.send(sceneMsg(index))
	return nil
}

// Events is meant for the client's event handler option.
func (s *Sink) Events(event events.Event) {
	switch e := event.(type) {
	case events.ConnectionStateChanged:
		s.send(stateMsg(e.To))
	case events.PlaybackStarted:
		s.send(playbackMsg{active: true})
	case events.PlaybackProgress:
		s.send(playbackMsg{active: true, fraction: e.Fraction()})
	case events.PlaybackEnded, events.PlaybackFailed:
		s.send(playbackMsg{})
	}
}
