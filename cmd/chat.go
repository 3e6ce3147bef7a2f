package cmd

import (
	"fmt"

	"github.com/bnema/dear-my-friend/internal/adapters/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newChatCmd(w *wiring) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive chat screen",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, w, false)
		},
	}
}

// runChat opens the chat screen. The walkthrough starts on its own until it has
// been completed once; restartTutorial replays it regardless.
func runChat(cmd *cobra.Command, w *wiring, restartTutorial bool) error {
	if err := w.useFileLogger(); err != nil {
		return err
	}

	ctx := cmd.Context()
	app, err := w.open(ctx, openOptions{autoStartTutorial: true})
	if err != nil {
		return err
	}
	if restartTutorial {
		app.StartTutorial(ctx)
		w.settle()
	}

	model := tui.New(ctx, app, tui.Options{
		PumpInterval: w.cfg.Countdown.Tick / 2,
		Logger:       w.logger.Named("tui"),
	})
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run chat screen: %w", err)
	}
	w.logger.Info("chat closed", zap.Int("sessions", len(app.Snapshot().Sessions)))
	return nil
}
