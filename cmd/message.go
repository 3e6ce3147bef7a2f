package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/dear-my-friend/internal/adapters/render/transcript"
	"github.com/spf13/cobra"
)

func newMessageCmd(w *wiring) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "message",
		Aliases: []string{"msg"},
		Short:   "Work with the messages of the current conversation",
	}

	cmd.AddCommand(
		newMessageSendCmd(w),
		newMessageEditCmd(w),
		newMessageDeleteCmd(w),
		newMessageListCmd(w),
	)

	return cmd
}

func newMessageSendCmd(w *wiring) *cobra.Command {
	return &cobra.Command{
		Use:   "send <text>...",
		Short: "Write a message as the current role",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}
			message, err := app.SendMessage(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.Locale().RoleTag(message.Role), message.ID)
			return nil
		},
	}
}

func newMessageEditCmd(w *wiring) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>...",
		Short: "Replace the text of a message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}
			id, err := resolveMessageID(app.Snapshot().Messages, args[0])
			if err != nil {
				return err
			}
			if err := app.StartEditMessage(id); err != nil {
				return err
			}
			if err := app.EditMessage(cmd.Context(), id, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Edited message %s\n", id)
			return nil
		},
	}
}

func newMessageDeleteCmd(w *wiring) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}
			id, err := resolveMessageID(app.Snapshot().Messages, args[0])
			if err != nil {
				return err
			}
			app.DeleteMessage(cmd.Context(), id)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted message %s\n", id)
			return nil
		},
	}
}

func newMessageListCmd(w *wiring) *cobra.Command {
	var listing listFormat

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the current conversation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}

			snap := app.Snapshot()
			if listing.structured() {
				return listing.write(cmd.OutOrStdout(), snap.Messages)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), transcript.View(snap, transcript.RenderOptions{}))
			return err
		},
	}

	listing.register(cmd, "messages")
	return cmd
}
