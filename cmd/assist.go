package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/dear-my-friend/internal/adapters/render/transcript"
	"github.com/bnema/dear-my-friend/internal/application"
	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/spf13/cobra"
)

var errPromptIndex = errors.New("no custom prompt at that index")

func newAssistCmd(w *wiring) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assist",
		Short: "Configure the guide's reflection prompts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showAssist(cmd, w)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the current framework and prompts",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return showAssist(cmd, w)
			},
		},
		newAssistToggleCmd(w, "enable", "Turn the prompt panel on", (*application.MentorAssistStore).Enable),
		newAssistToggleCmd(w, "disable", "Turn the prompt panel off", (*application.MentorAssistStore).Disable),
		newAssistFrameworkCmd(w),
		newAssistSectionCmd(w),
		newAssistPromptCmd(w),
	)

	return cmd
}

func showAssist(cmd *cobra.Command, w *wiring) error {
	app, err := w.open(cmd.Context(), openOptions{})
	if err != nil {
		return err
	}
	assist := app.MentorAssist()
	_, err = fmt.Fprintln(cmd.OutOrStdout(), transcript.MentorAssistPanel(assist.State(), assist.Guide(), assist.QuickPrompts(), app.Locale()))
	return err
}

func newAssistToggleCmd(w *wiring, use, short string, apply func(*application.MentorAssistStore, context.Context)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}
			apply(app.MentorAssist(), cmd.Context())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mentor assist enabled: %t\n", app.MentorAssist().IsEnabled())
			return nil
		},
	}
}

func newAssistFrameworkCmd(w *wiring) *cobra.Command {
	return &cobra.Command{
		Use:       "framework [next|WHAT|SO_WHAT|NOW_WHAT]",
		Short:     "Show or change the reflection framework",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"next", string(domain.FrameworkWhat), string(domain.FrameworkSoWhat), string(domain.FrameworkNowWhat)},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}
			assist := app.MentorAssist()

			switch {
			case len(args) == 0:
			case strings.EqualFold(args[0], "next"):
				assist.NextFramework(cmd.Context())
			default:
				framework, err := domain.ParseFramework(strings.ToUpper(args[0]))
				if err != nil {
					return err
				}
				if err := assist.SetFramework(cmd.Context(), framework); err != nil {
					return err
				}
			}

			guide := assist.Guide()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", assist.CurrentFramework(), guide.Title)
			return nil
		},
	}
}

func newAssistSectionCmd(w *wiring) *cobra.Command {
	return &cobra.Command{
		Use:       "section <frameworkGuide|quickPrompts>",
		Short:     "Expand or collapse a panel section",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.SectionFrameworkGuide), string(domain.SectionQuickPrompts)},
		RunE: func(cmd *cobra.Command, args []string) error {
			section := domain.Section(args[0])
			if section != domain.SectionFrameworkGuide && section != domain.SectionQuickPrompts {
				return fmt.Errorf("unknown section %q", args[0])
			}
			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}
			assist := app.MentorAssist()
			assist.ToggleSection(cmd.Context(), section)

			expanded := assist.ExpandedSections()
			open := expanded.FrameworkGuide
			if section == domain.SectionQuickPrompts {
				open = expanded.QuickPrompts
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s expanded: %t\n", section, open)
			return nil
		},
	}
}

func newAssistPromptCmd(w *wiring) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Manage custom prompts",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <text>...",
			Short: "Save a custom prompt",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := w.open(cmd.Context(), openOptions{})
				if err != nil {
					return err
				}
				if !app.MentorAssist().AddCustomPrompt(cmd.Context(), strings.Join(args, " ")) {
					return errors.New("prompt must not be blank")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved prompt %d\n", len(app.MentorAssist().CustomPrompts()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <number>",
			Short: "Delete a custom prompt by its number in the list",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("parse prompt number %q: %w", args[0], err)
				}
				app, err := w.open(cmd.Context(), openOptions{})
				if err != nil {
					return err
				}
				if !app.MentorAssist().RemoveCustomPrompt(cmd.Context(), n-1) {
					return fmt.Errorf("remove prompt %d: %w", n, errPromptIndex)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed prompt %d\n", n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "use <text>...",
			Short: "Send a prompt as the guide and remember it as recent",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := w.open(cmd.Context(), openOptions{})
				if err != nil {
					return err
				}
				if role := app.Snapshot().Role; role != domain.RoleGuide {
					return fmt.Errorf("prompts are sent by the guide; current role is %s", role)
				}
				prompt := strings.Join(args, " ")
				message, err := app.SendMessage(cmd.Context(), prompt)
				if err != nil {
					return err
				}
				app.MentorAssist().RecordPromptUsage(cmd.Context(), message.Content)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.Locale().RoleTag(message.Role), message.ID)
				return nil
			},
		},
	)

	return cmd
}
