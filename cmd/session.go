package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/dear-my-friend/internal/adapters/render/transcript"
	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/spf13/cobra"
)

var errAmbiguousID = errors.New("id prefix matches more than one entry")

func newSessionCmd(w *wiring) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions"},
		Short:   "Manage conversations",
	}

	cmd.AddCommand(
		newSessionNewCmd(w),
		newSessionListCmd(w),
		newSessionRenameCmd(w),
		newSessionDeleteCmd(w),
		newSessionSwitchCmd(w),
	)

	return cmd
}

func newSessionNewCmd(w *wiring) *cobra.Command {
	return &cobra.Command{
		Use:   "new [title]",
		Short: "Start a new conversation and make it current",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}

			title := ""
			if len(args) == 1 {
				title = args[0]
			}
			session := app.CreateSession(cmd.Context(), title)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created session %s (%s)\n", sanitizeForTerminal(session.Title), session.ID)
			return nil
		},
	}
}

func newSessionListCmd(w *wiring) *cobra.Command {
	var listing listFormat

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}

			snap := app.Snapshot()
			if listing.structured() {
				return listing.write(cmd.OutOrStdout(), snap.Sessions)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), transcript.SessionList(snap.Sessions, snap.CurrentSessionID, snap.Locale))
			return err
		},
	}

	listing.register(cmd, "sessions")
	return cmd
}

func newSessionRenameCmd(w *wiring) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a conversation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}
			id, err := resolveSessionID(app.Snapshot().Sessions, args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(args[1]) == "" {
				return errors.New("title must not be blank")
			}
			if err := app.RenameSession(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed session %s\n", id)
			return nil
		},
	}
}

func newSessionDeleteCmd(w *wiring) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a conversation; the last one cannot be deleted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}
			id, err := resolveSessionID(app.Snapshot().Sessions, args[0])
			if err != nil {
				return err
			}
			if err := app.DeleteSession(cmd.Context(), id); err != nil {
				return err
			}
			w.settle()
			current, _ := app.Snapshot().CurrentSession()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s; current is %s (%s)\n", id, sanitizeForTerminal(current.Title), current.ID)
			return nil
		},
	}
}

func newSessionSwitchCmd(w *wiring) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <id>",
		Short: "Make a conversation current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}
			id, err := resolveSessionID(app.Snapshot().Sessions, args[0])
			if err != nil {
				return err
			}
			if err := app.SwitchSession(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Switched to session %s\n", id)
			return nil
		},
	}
}

// resolveSessionID accepts a full id or an unambiguous prefix of one.
func resolveSessionID(sessions []domain.Session, raw string) (string, error) {
	ids := make([]string, 0, len(sessions))
	for _, session := range sessions {
		ids = append(ids, session.ID)
	}
	id, err := resolveID(ids, raw)
	if err != nil {
		return "", fmt.Errorf("resolve session %q: %w", raw, err)
	}
	if id == "" {
		return "", fmt.Errorf("resolve session %q: %w", raw, domain.ErrSessionNotFound)
	}
	return id, nil
}

func resolveMessageID(messages []domain.Message, raw string) (string, error) {
	ids := make([]string, 0, len(messages))
	for _, message := range messages {
		ids = append(ids, message.ID)
	}
	id, err := resolveID(ids, raw)
	if err != nil {
		return "", fmt.Errorf("resolve message %q: %w", raw, err)
	}
	if id == "" {
		return "", fmt.Errorf("resolve message %q: %w", raw, domain.ErrMessageNotFound)
	}
	return id, nil
}

func resolveID(ids []string, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	match := ""
	for _, id := range ids {
		if id == raw {
			return id, nil
		}
		if strings.HasPrefix(id, raw) {
			if match != "" {
				return "", errAmbiguousID
			}
			match = id
		}
	}
	return match, nil
}
