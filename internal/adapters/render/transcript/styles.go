package transcript

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	seekerTag  lipgloss.Style
	guideTag   lipgloss.Style
	timestamp  lipgloss.Style
	content    lipgloss.Style
	editing    lipgloss.Style
	warning    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	current    lipgloss.Style
	card       lipgloss.Style
	cardTitle  lipgloss.Style
	hint       lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		seekerTag:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		guideTag:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
		timestamp:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		content:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		editing:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("221")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		current:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		card:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("69")).Padding(0, 1),
		cardTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		hint:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

func (s styles) roleTag(guide bool) lipgloss.Style {
	if guide {
		return s.guideTag
	}
	return s.seekerTag
}
