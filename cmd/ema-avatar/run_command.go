package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	stage "github.com/koscakluka/ema-avatar/core"
	"github.com/koscakluka/ema-avatar/core/events"
	"github.com/koscakluka/ema-avatar/core/lipsync"
	"github.com/koscakluka/ema-avatar/core/transport/gorillaws"
	"github.com/koscakluka/ema-avatar/internal/config"
	"github.com/koscakluka/ema-avatar/internal/instance"
	"github.com/koscakluka/ema-avatar/internal/logging"
	"github.com/koscakluka/ema-avatar/internal/tui"
)

// stageSink is what the run command needs from a terminal renderer.
type stageSink interface {
	stage.CaptionSink
	stage.RenderSink
	stage.SceneLoader
	Events(events.Event)
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var uiMode string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Connect to the backend and perform what it sends",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if uiMode != "" {
				cfg.UI.Mode = uiMode
			}
			return runStage(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&uiMode, "ui", "", "Terminal output: auto, tui or plain")
	return cmd
}

func runStage(parent context.Context, cfg *config.Config, stdout io.Writer) (err error) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	useTUI := wantsTUI(cfg.UI.Mode)

	logger, closeLog, err := newRunLogger(cfg, useTUI)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	if cfg.Instance.Enabled {
		lock, lockErr := instance.Acquire(cfg.LockPath())
		if lockErr != nil {
			return lockErr
		}
		defer func() { err = errors.Join(err, lock.Release()) }()
	}

	endpoints, err := cfg.Endpoints()
	if err != nil {
		return err
	}

	output, closeOutput, err := openOutput(cfg, logger)
	if err != nil {
		return err
	}
	defer closeOutput()

	var sink stageSink
	var view *tui.TUI
	if useTUI {
		view = tui.New(tui.Options{CaptionHistory: cfg.UI.CaptionHistory})
		sink = view.Sink()
	} else {
		sink = tui.NewPlainSink(stdout)
	}

	client := stage.NewClient(
		stage.WithDialer(gorillaws.NewDialer()),
		stage.WithEndpoints(endpoints),
		stage.WithOutput(output),
		stage.WithLipSync(
			lipsync.WithParameterID(cfg.LipSync.ParamID),
			lipsync.WithWeight(cfg.LipSync.Weight),
			lipsync.WithInterval(cfg.LipSyncInterval()),
			lipsync.WithThreshold(cfg.LipSync.Threshold),
		),
		stage.WithCaptionSink(sink),
		stage.WithRenderSink(sink),
		stage.WithSceneLoader(sink),
		stage.WithEventHandler(sink.Events),
		stage.WithReconnectDelay(cfg.ReconnectDelay()),
		stage.WithConnectedNotice(cfg.Backend.ConnectedNotice),
		stage.WithMotionPriority(cfg.Motion.Priority),
		stage.WithInitialScene(cfg.Scene.Initial),
		stage.WithLogger(logger),
	)
	logger.Info("stage client starting",
		"session_id", client.SessionID(),
		"endpoint", endpoints.Primary,
		"audio_output", cfg.Audio.Output,
	)

	if view == nil {
		return client.Run(ctx)
	}

	if !client.Start(ctx) {
		return stage.ErrAlreadyStarted
	}
	defer client.Close()
	return view.Run(ctx)
}

func wantsTUI(mode string) bool {
	switch mode {
	case "tui":
		return true
	case "plain":
		return false
	default:
		return isTerminal(os.Stdout) && isTerminal(os.Stdin)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newRunLogger logs to stderr, or to a file next to the lock files while the
// terminal UI owns the screen.
func newRunLogger(cfg *config.Config, useTUI bool) (*slog.Logger, func(), error) {
	opts := logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: os.Stderr,
		Color:  isTerminal(os.Stderr),
	}
	closeLog := func() {}

	if useTUI {
		file, err := logging.OpenFile(filepath.Join(cfg.Instance.LockDir, "ema-avatar.log"))
		if err != nil {
			return nil, nil, err
		}
		opts.Writer = file
		opts.Color = false
		closeLog = func() { _ = file.Close() }
	}

	logger, err := logging.New(opts)
	if err != nil {
		closeLog()
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, closeLog, nil
}
