package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const (
	DefaultCaptionHistory = 5
	defaultWidth          = 80
	barWidth              = 30
)

type caption struct {
	actorID string
	text    string
}

// Model is the bubbletea state of the stage view.
type Model struct {
	width   int
	history int

	title    string
	state    string
	captions []caption

	actorID  string
	paramID  string
	aperture float64
	motion   string
	scene    int

	playing  bool
	fraction float64

	spinner spinner.Model
	mouth   progress.Model
	clip    progress.Model
	quit    key.Binding
}

// NewModel creates a stage view keeping the last history captions.
func NewModel(history int) Model {
	if history <= 0 {
		history = DefaultCaptionHistory
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		width:   defaultWidth,
		history: history,
		state:   "disconnected",
		scene:   -1,
		spinner: sp,
		mouth:   progress.New(progress.WithSolidFill(string(accent)), progress.WithoutPercentage(), progress.WithWidth(barWidth)),
		clip:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth)),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.quit) {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case captionMsg:
		m.captions = append(m.captions, caption(msg))
		if len(m.captions) > m.history {
			m.captions = append([]caption(nil), m.captions[len(m.captions)-m.history:]...)
		}
	case titleMsg:
		m.title = string(msg)
	case clearMsg:
		m.captions = nil
	case parameterMsg:
		m.actorID = msg.actorID
		m.paramID = msg.paramID
		m.aperture = min(max(msg.value, 0), 1)
	case motionMsg:
		m.motion = msg.actorID + "/" + msg.group
	case sceneMsg:
		m.scene = int(msg)
	case stateMsg:
		m.state = string(msg)
	case playbackMsg:
		m.playing = msg.active
		m.fraction = msg.fraction
	}
	return m, nil
}

func (m Model) View() string {
	inner := max(m.width-4, 20)

	title := m.title
	if title == "" {
		title = "ema-avatar"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("backend") + m.stateView() + "\n")

	scene := "none"
	if m.scene >= 0 {
		scene = fmt.Sprint(m.scene)
	}
	b.WriteString(labelStyle.Render("scene") + scene + "\n")
	if m.motion != "" {
		b.WriteString(labelStyle.Render("motion") + m.motion + "\n")
	}
	b.WriteString(labelStyle.Render("mouth") + m.mouth.ViewAs(m.aperture))
	if m.paramID != "" {
		b.WriteString(" " + footerStyle.Render(m.actorID+" "+m.paramID))
	}
	b.WriteString("\n")
	if m.playing {
		b.WriteString(labelStyle.Render("clip") + m.clip.ViewAs(m.fraction) + "\n")
	}

	lines := make([]string, 0, len(m.captions))
	for _, c := range m.captions {
		lines = append(lines, wordwrap.String(actorStyle.Render(c.actorID)+"> "+c.text, inner))
	}
	if len(lines) == 0 {
		lines = append(lines, footerStyle.Render("(no captions)"))
	}
	b.WriteString(panelStyle.Width(inner).Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.quit.Help().Key + " " + m.quit.Help().Desc))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}

func (m Model) stateView() string {
	switch m.state {
	case "open":
		return openStyle.Render("● open")
	case "connecting":
		return m.spinner.View() + " connecting"
	case "closing":
		return offlineStyle.Render("○ closing")
	default:
		return offlineStyle.Render("○ " + m.state)
	}
}
