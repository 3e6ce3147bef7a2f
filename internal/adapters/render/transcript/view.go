package transcript

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/dear-my-friend/internal/application"
	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 24

type RenderOptions struct {
	// Width wraps message bodies when positive.
	Width int
	// ShowHints adds key hints for interactive screens.
	ShowHints bool
}

// View renders the whole conversation screen for a snapshot.
func View(snap application.Snapshot, opts RenderOptions) string {
	return renderView(snap, opts, newStyles())
}

func renderView(snap application.Snapshot, opts RenderOptions, s styles) string {
	l := labelsFor(snap.Locale)
	lines := []string{renderHeader(snap, s, l)}

	lines = append(lines, s.section.Render(renderMessages(snap.Messages, snap.Locale, opts.Width, s, l)))

	if snap.Transitioning || snap.Countdown.Active {
		lines = append(lines, s.section.Render(renderCountdown(snap, opts, s, l)))
	}
	if snap.Tutorial.Active && snap.Tutorial.OverlayVisible {
		lines = append(lines, s.section.Render(renderTutorialCard(snap, opts, s, l)))
	}
	if snap.ShowTutorialReturn {
		lines = append(lines, s.hint.Render(l.returnHint))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderHeader(snap application.Snapshot, s styles, l labels) string {
	title := "dear-my-friend"
	if session, ok := snap.CurrentSession(); ok {
		title = session.Title
	}
	heading := s.title.Render(title) + " " + s.header.Render("· "+snap.Locale.ModeLabel(snap.TutorialMode))
	role := s.header.Render(l.role+": ") + s.roleTag(snap.Role == domain.RoleGuide).Render(snap.Locale.RoleLabel(snap.Role))
	return lipgloss.JoinVertical(lipgloss.Left, heading, role)
}

// Messages renders a transcript without the surrounding screen.
func Messages(messages []domain.Message, locale domain.Locale, width int) string {
	return renderMessages(messages, locale, width, newStyles(), labelsFor(locale))
}

func renderMessages(messages []domain.Message, locale domain.Locale, width int, s styles, l labels) string {
	if len(messages) == 0 {
		return s.empty.Render(l.noMessages)
	}

	blocks := make([]string, 0, len(messages))
	for _, message := range messages {
		blocks = append(blocks, renderMessage(message, locale, width, s, l))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderMessage(message domain.Message, locale domain.Locale, width int, s styles, l labels) string {
	meta := []string{
		s.roleTag(message.Role == domain.RoleGuide).Render(locale.RoleTag(message.Role)),
		s.timestamp.Render(locale.FormatTime(time.UnixMilli(message.Timestamp))),
	}
	if message.IsEditing {
		meta = append(meta, s.editing.Render(l.editing))
	}

	body := s.content
	if width > 2 {
		body = body.Width(width - 2)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		strings.Join(meta, " "),
		body.PaddingLeft(2).Render(message.Content),
	)
}

// Countdown renders the pending role switch as a progress bar.
func Countdown(snap application.Snapshot, opts RenderOptions) string {
	return renderCountdown(snap, opts, newStyles(), labelsFor(snap.Locale))
}

func renderCountdown(snap application.Snapshot, opts RenderOptions, s styles, l labels) string {
	target := snap.Locale.RoleLabel(snap.TargetRole)
	labelColor := interpolateColor(snap.CountdownProgress, 0, 1)
	label := lipgloss.NewStyle().Foreground(labelColor).Render(fmt.Sprintf(l.switchingTo, target, snap.CountdownLabel))

	parts := []string{renderProgressBar(snap.CountdownProgress, barWidth(opts.Width), s), label}
	if snap.Countdown.Paused {
		parts = append(parts, s.warning.Render(l.paused))
	}
	if opts.ShowHints {
		parts = append(parts, s.hint.Render(l.skipHint))
	}
	return strings.Join(parts, " ")
}

func renderTutorialCard(snap application.Snapshot, opts RenderOptions, s styles, l labels) string {
	step := snap.Tutorial.CurrentStep
	lines := []string{
		s.cardTitle.Render(snap.TutorialTitle),
		s.header.Render(fmt.Sprintf(l.tutorialStep, int(step)+1, int(domain.LastTutorialStep)+1)) + " " +
			renderProgressBar(step.Progress(), barWidth(opts.Width)/2, s),
		s.content.Render(snap.TutorialDescription),
	}
	if opts.ShowHints {
		lines = append(lines, s.hint.Render(l.tutorialHint))
	}

	card := s.card
	if opts.Width > 4 {
		card = card.Width(opts.Width - 4)
	}
	return card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// SessionList renders every session, marking the current one.
func SessionList(sessions []domain.Session, currentID string, locale domain.Locale) string {
	s := newStyles()
	l := labelsFor(locale)

	lines := []string{s.header.Render(fmt.Sprintf("%s: %d", l.sessions, len(sessions)))}
	if len(sessions) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.empty.Render(l.noSessions))...)
	}

	for _, session := range sessions {
		marker := "  "
		title := s.content.Render(session.Title)
		if session.ID == currentID {
			marker = s.current.Render("* ")
			title = s.current.Render(session.Title)
		}
		lines = append(lines, fmt.Sprintf("%s%s %s %s",
			marker,
			title,
			s.timestamp.Render(fmt.Sprintf("(%d %s, %s)", len(session.Messages), l.messagesSuffix, locale.FormatTime(time.UnixMilli(session.UpdatedAt)))),
			s.header.Render(session.ID),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// MentorAssistPanel renders the writing aid shown while speaking as the guide.
func MentorAssistPanel(state domain.MentorAssistState, guide domain.FrameworkGuide, quickPrompts []string, locale domain.Locale) string {
	s := newStyles()
	l := labelsFor(locale)

	if !state.IsEnabled {
		return s.empty.Render(l.assistOff)
	}

	lines := []string{
		s.header.Render(l.assistOn),
		s.cardTitle.Render(guide.Title),
	}
	if state.ExpandedSections.FrameworkGuide {
		lines = append(lines, s.content.Render(guide.Description))
		lines = append(lines, bulletList(guide.Prompts, s)...)
	}
	if state.ExpandedSections.QuickPrompts {
		lines = append(lines, s.section.Render(s.title.Render(l.quickPrompts)))
		lines = append(lines, bulletList(quickPrompts, s)...)
	}
	if len(state.CustomPrompts) > 0 {
		lines = append(lines, s.section.Render(s.title.Render(l.customPrompts)))
		for i, prompt := range state.CustomPrompts {
			lines = append(lines, s.content.Render(fmt.Sprintf("  %d. %s", i+1, prompt)))
		}
	}
	if len(state.RecentPrompts) > 0 {
		lines = append(lines, s.section.Render(s.title.Render(l.recentPrompts)))
		lines = append(lines, bulletList(state.RecentPrompts, s)...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func bulletList(items []string, s styles) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, s.content.Render("  • "+item))
	}
	return lines
}

func barWidth(width int) int {
	if width <= 0 {
		return defaultBarWidth
	}
	return max(8, min(defaultBarWidth, width/3))
}

func renderProgressBar(progress float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampFraction(progress)))
	filled = max(0, min(width, filled))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampFraction(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, lo, hi float64) lipgloss.Color {
	if hi == lo {
		return lipgloss.Color("255")
	}

	normalized := clampFraction((value - lo) / (hi - lo))
	code := int(240 + (255-240)*normalized)
	return lipgloss.Color(fmt.Sprintf("%d", code))
}

// Header renders the session title, mode and current role.
func Header(snap application.Snapshot) string {
	return renderHeader(snap, newStyles(), labelsFor(snap.Locale))
}

// CountdownLabel is the text shown beside a countdown bar.
func CountdownLabel(snap application.Snapshot) string {
	l := labelsFor(snap.Locale)
	label := fmt.Sprintf(l.switchingTo, snap.Locale.RoleLabel(snap.TargetRole), snap.CountdownLabel)
	if snap.Countdown.Paused {
		label += " (" + l.paused + ")"
	}
	return label
}

func TutorialCard(snap application.Snapshot, opts RenderOptions) string {
	return renderTutorialCard(snap, opts, newStyles(), labelsFor(snap.Locale))
}

func ReturnHint(locale domain.Locale) string {
	return newStyles().hint.Render(labelsFor(locale).returnHint)
}
