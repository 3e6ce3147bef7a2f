package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/dear-my-friend/internal/domain"
)

type ExportFormat string

const (
	ExportMarkdown ExportFormat = "markdown"
	ExportText     ExportFormat = "text"
)

func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case ExportMarkdown, "md", "":
		return ExportMarkdown, nil
	case ExportText, "txt":
		return ExportText, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidFormat, raw)
	}
}

// Extension is the file suffix used when a transcript is written to disk.
func (f ExportFormat) Extension() string {
	if f == ExportText {
		return ".txt"
	}
	return ".md"
}

func exportTranscript(messages []domain.Message, format ExportFormat, tutorial bool, locale domain.Locale, now time.Time) (string, error) {
	if format != ExportMarkdown && format != ExportText {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidFormat, format)
	}
	if len(messages) == 0 {
		return "", nil
	}

	exportedAt := locale.ExportedAtLabel() + ": " + locale.FormatTime(now)

	if format == ExportMarkdown {
		blocks := make([]string, 0, len(messages))
		for _, m := range messages {
			blocks = append(blocks, fmt.Sprintf("## %s - %s\n\n%s\n\n---\n",
				locale.RoleHeading(m.Role), locale.FormatTime(timestampTime(m.Timestamp)), m.Content))
		}
		return fmt.Sprintf("# %s\n\n%s\n\n%s", locale.TranscriptTitle(tutorial), exportedAt, strings.Join(blocks, "\n")), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", locale.TranscriptTitle(tutorial), exportedAt)
	for _, m := range messages {
		fmt.Fprintf(&b, "%s %s\n%s\n\n", locale.RoleTag(m.Role), locale.FormatTime(timestampTime(m.Timestamp)), m.Content)
	}
	return b.String(), nil
}
