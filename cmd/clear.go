package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCmd(w *wiring) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every message of the current conversation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}

			count := len(app.Snapshot().Messages)
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete %d messages from the current conversation?", count))
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			app.ClearConversation(cmd.Context())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d messages\n", count)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
