package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/dear-my-friend/internal/adapters/render/transcript"
	"github.com/bnema/dear-my-friend/internal/application"
	"github.com/bnema/dear-my-friend/internal/countdown"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newRoleCmd(w *wiring) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Show or switch the role you are writing as",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the current role",
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := w.open(cmd.Context(), openOptions{})
				if err != nil {
					return err
				}
				snap := app.Snapshot()
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "role: %s (%s)\n", snap.Locale.RoleLabel(snap.Role), snap.Role)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "messages: %d\n", len(snap.Messages))
				return nil
			},
		},
		newRoleSwitchCmd(w),
	)

	return cmd
}

func newRoleSwitchCmd(w *wiring) *cobra.Command {
	var skip bool

	cmd := &cobra.Command{
		Use:   "switch",
		Short: "Hand the conversation to the other role after the countdown",
		Long: "Starts the role switch countdown and waits for it, showing its progress.\n" +
			"With --skip the switch happens at once.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}

			if skip {
				if err := app.RequestRoleSwitch(cmd.Context()); err != nil {
					return err
				}
				app.SkipCountdown()
				w.settle()
			} else if err := waitForSwitch(cmd, w, app); err != nil {
				return err
			}

			snap := app.Snapshot()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Now writing as %s\n", snap.Locale.RoleLabel(snap.Role))
			return nil
		},
	}

	cmd.Flags().BoolVar(&skip, "skip", false, "switch immediately without the countdown")
	return cmd
}

// waitForSwitch runs the event loop until the countdown completes. The loop and
// the progress display run side by side; whichever fails first stops both.
// The switch completes on the App's own context, never on the group's.
func waitForSwitch(cmd *cobra.Command, w *wiring, app *application.App) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	updates := make(chan countdownTickMsg, 16)
	done := make(chan struct{})
	finished := false
	w.countdown.OnTick(func(state countdown.State) {
		if finished {
			return
		}
		if !state.Active {
			finished = true
			close(done)
			return
		}
		snap := app.Snapshot()
		select {
		case updates <- countdownTickMsg{progress: snap.CountdownProgress, label: transcript.CountdownLabel(snap)}:
		default:
		}
	})

	if err := app.RequestRoleSwitch(cmd.Context()); err != nil {
		return err
	}
	w.settle()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := w.loop.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return runCountdownDisplay(gctx, cmd.OutOrStdout(), updates, done)
	})

	err := g.Wait()
	w.settle()
	if cmd.Context().Err() != nil {
		return fmt.Errorf("role switch interrupted: %w", cmd.Context().Err())
	}
	return err
}
