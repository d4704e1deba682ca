package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	CaptionHistory int
	// Input and Output override the terminal, mainly for tests.
	Input  io.Reader
	Output io.Writer
}

// TUI runs the stage view as a full-screen bubbletea program.
type TUI struct {
	program *tea.Program
	sink    *Sink
}

func New(opts Options) *TUI {
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	program := tea.NewProgram(NewModel(opts.CaptionHistory), programOpts...)
	return &TUI{program: program, sink: newSink(program.Send)}
}

// Sink returns the sink feeding this program.
func (t *TUI) Sink() *Sink { return t.sink }

// Run blocks until the user quits or ctx is done.
func (t *TUI) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		t.program.Quit()
	}()

	if _, err := t.program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
