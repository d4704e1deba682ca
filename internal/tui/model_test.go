package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("expected Model from Update, got %T", next)
		}
	}
	return m
}

func TestModelKeepsLastCaptions(t *testing.T) {
	m := NewModel(5)
	for i := range 7 {
		m = update(t, m, captionMsg{actorID: "Alice", text: fmt.Sprintf("line %d", i)})
	}

	if len(m.captions) != 5 {
		t.Fatalf("expected 5 captions, got %d", len(m.captions))
	}
	view := m.View()
	if strings.Contains(view, "line 1") {
		t.Fatalf("expected oldest captions to be dropped, got %q", view)
	}
	if !strings.Contains(view, "Alice> line 6") {
		t.Fatalf("expected newest caption in view, got %q", view)
	}
}

func TestModelClearDropsCaptions(t *testing.T) {
	m := update(t, NewModel(0),
		captionMsg{actorID: "Bob", text: "bye"},
		clearMsg{},
	)

	if len(m.captions) != 0 {
		t.Fatalf("expected captions to be cleared, got %v", m.captions)
	}
	if !strings.Contains(m.View(), "(no captions)") {
		t.Fatalf("expected empty caption placeholder")
	}
}

func TestModelShowsTitleStateSceneAndMotion(t *testing.T) {
	m := update(t, NewModel(0),
		titleMsg("Evening show"),
		stateMsg("open"),
		sceneMsg(2),
		motionMsg{actorID: "Alice", group: "wave"},
		parameterMsg{actorID: "Alice", paramID: "ParamMouthOpenY", value: 3},
	)

	if m.aperture != 1 {
		t.Fatalf("expected aperture to be clamped to 1, got %v", m.aperture)
	}
	view := m.View()
	for _, want := range []string{"Evening show", "open", "2", "Alice/wave", "ParamMouthOpenY"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view %q", want, view)
		}
	}
}

func TestModelTracksPlayback(t *testing.T) {
	m := update(t, NewModel(0), playbackMsg{active: true, fraction: 0.5})
	if !m.playing || m.fraction != 0.5 {
		t.Fatalf("expected playback at 0.5, got playing=%v fraction=%v", m.playing, m.fraction)
	}
	if !strings.Contains(m.View(), "clip") {
		t.Fatalf("expected clip progress while playing")
	}

	m = update(t, m, playbackMsg{})
	if m.playing || strings.Contains(m.View(), "clip") {
		t.Fatalf("expected clip progress to disappear after playback")
	}
}

func TestModelQuitsOnKey(t *testing.T) {
	_, cmd := NewModel(0).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
