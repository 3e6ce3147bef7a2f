package cmd

import (
	"fmt"

	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/spf13/cobra"
)

func newTutorialCmd(w *wiring) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Run or inspect the guided walkthrough",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Open the chat screen at the first tutorial step",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runChat(cmd, w, true)
			},
		},
		newTutorialStatusCmd(w),
		&cobra.Command{
			Use:   "reset",
			Short: "Forget that the tutorial was completed so it runs again",
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := w.open(cmd.Context(), openOptions{})
				if err != nil {
					return err
				}
				app.ResetTutorial(cmd.Context())
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "tutorial reset; it will start with the next chat")
				return nil
			},
		},
	)

	return cmd
}

func newTutorialStatusCmd(w *wiring) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the tutorial was completed and list its steps",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			locale := app.Locale()
			_, _ = fmt.Fprintf(out, "completed: %t\n", app.TutorialCompleted(cmd.Context()))
			for step := domain.StepWelcome; step <= domain.LastTutorialStep; step++ {
				_, _ = fmt.Fprintf(out, "%d. %-24s %s\n", int(step)+1, step, locale.StepTitle(step))
			}
			return nil
		},
	}
}
