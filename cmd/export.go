package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/dear-my-friend/internal/application"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

const exportFileMode = 0o600

func newExportCmd(w *wiring) *cobra.Command {
	var (
		formatFlag string
		output     string
		render     bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current conversation as markdown or plain text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := application.ParseExportFormat(formatFlag)
			if err != nil {
				return err
			}
			if render && format != application.ExportMarkdown {
				return errors.New("--render requires the markdown format")
			}

			app, err := w.open(cmd.Context(), openOptions{})
			if err != nil {
				return err
			}
			content, err := app.Export(format)
			if err != nil {
				return fmt.Errorf("export conversation: %w", err)
			}
			if content == "" {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Nothing to export: the conversation is empty")
				return nil
			}

			if output != "" {
				path := output
				if filepath.Ext(path) == "" {
					path += format.Extension()
				}
				if err := os.WriteFile(path, []byte(content), exportFileMode); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
				return nil
			}

			if render {
				content, err = renderMarkdown(content)
				if err != nil {
					return err
				}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			if err == nil && !strings.HasSuffix(content, "\n") {
				_, err = fmt.Fprintln(cmd.OutOrStdout())
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "markdown", "markdown (md) or text (txt)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&render, "render", false, "render markdown for the terminal")
	return cmd
}

func renderMarkdown(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return rendered, nil
}
