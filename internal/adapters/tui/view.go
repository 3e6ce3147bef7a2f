package tui

import (
	"github.com/bnema/dear-my-friend/internal/adapters/render/transcript"
	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	introStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("213")).Padding(0, 1)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("238")).PaddingLeft(1)
)

var introduction = map[domain.Locale]string{
	domain.LocaleEn: "Dear My Friend lets you talk to yourself the way a good friend would.\n" +
		"Write as the seeker, switch to the guide and answer with some distance.",
	domain.LocaleZhTW: "親愛的朋友讓你像對待好朋友一樣和自己對話。\n" +
		"以學徒身分寫下困擾，再切換成導師，用旁觀者的角度回應。",
}

// layout sizes the viewport around the footer and refreshes its content.
func (m *Model) layout() {
	header := transcript.Header(m.snapshot)
	footer := m.footer()
	height := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	m.viewport.Width = m.width
	m.viewport.Height = max(3, height)
	m.viewport.SetContent(transcript.Messages(m.snapshot.Messages, m.snapshot.Locale, m.width))
	m.viewport.GotoBottom()
}

func (m Model) footer() string {
	snap := m.snapshot
	parts := []string{}

	if snap.Transitioning || snap.Countdown.Active {
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Center,
			m.progress.ViewAs(snap.CountdownProgress), " ", transcript.CountdownLabel(snap)))
	}
	if snap.Tutorial.Active && snap.Tutorial.OverlayVisible {
		parts = append(parts, transcript.TutorialCard(snap, transcript.RenderOptions{Width: m.width, ShowHints: true}))
	}
	if snap.ShowTutorialReturn {
		parts = append(parts, transcript.ReturnHint(snap.Locale))
	}
	if snap.ShowIntroduction {
		parts = append(parts, introStyle.Render(introduction[snap.Locale]))
	}
	if assist := snap.MentorAssist; snap.Role == domain.RoleGuide && assist.IsEnabled && assist.IsPanelOpen {
		guide := snap.Locale.FrameworkGuide(assist.CurrentFramework)
		parts = append(parts, panelStyle.Render(transcript.MentorAssistPanel(assist, guide, snap.Locale.QuickPrompts(), snap.Locale)))
	}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.input.View(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		transcript.Header(m.snapshot),
		m.viewport.View(),
		m.footer(),
	)
}
