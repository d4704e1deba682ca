package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/koscakluka/ema-avatar/core/backend"
)

func newSayCommand(ctx *commandContext) *cobra.Command {
	var actor, motion, target, voicePath string

	cmd := &cobra.Command{
		Use:   "say [text]",
		Short: "Make an actor speak",
		Long: "Make an actor speak on the connection registered under --to. With --voice the\n" +
			"clip is uploaded as a form and the backend picks a connection itself.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.backendClient()
			if err != nil {
				return err
			}

			req := backend.SayRequest{ActorID: actor, Motion: motion}
			if len(args) > 0 {
				req.Text = args[0]
			}
			if strings.TrimSpace(req.ActorID) == "" {
				req.ActorID = cfg.Backend.Actor
			}
			if req.Text == "" && req.Motion == "" && voicePath == "" {
				return fmt.Errorf("nothing to say: give text, --motion or --voice")
			}

			if voicePath != "" {
				voice, err := os.ReadFile(voicePath)
				if err != nil {
					return fmt.Errorf("read voice clip: %w", err)
				}
				if err := client.SayForm(cmd.Context(), req, voice); err != nil {
					return err
				}
			} else {
				if target == "" {
					target = cfg.Backend.Actor
				}
				if err := client.Say(cmd.Context(), target, req); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sent to %s\n", req.ActorID)
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "Actor that speaks (defaults to the configured actor)")
	cmd.Flags().StringVar(&motion, "motion", "", "Motion group to trigger")
	cmd.Flags().StringVar(&target, "to", "", "Connection id to speak on (defaults to the configured actor)")
	cmd.Flags().StringVar(&voicePath, "voice", "", "Audio clip to upload with the message")
	return cmd
}

func newTitleCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "title <text>",
		Short: "Change the stage title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.backendClient()
			if err != nil {
				return err
			}
			if err := client.UpdateTitle(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Title updated")
			return nil
		},
	}
}

func newRegisterCallbackCommand(ctx *commandContext) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "register-callback <url>",
		Short: "Ask the backend to call a URL when the next clip finishes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.backendClient()
			if err != nil {
				return err
			}
			if target == "" {
				target = cfg.Backend.Actor
			}
			if err := client.RegisterCallback(cmd.Context(), target, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Callback registered for %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "to", "", "Connection id (defaults to the configured actor)")
	return cmd
}
