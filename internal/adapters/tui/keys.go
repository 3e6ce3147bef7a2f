package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Send          key.Binding
	SwitchRole    key.Binding
	SkipCountdown key.Binding
	PauseResume   key.Binding
	TutorialNext  key.Binding
	SkipTutorial  key.Binding
	ReturnToGuide key.Binding
	Welcome       key.Binding
	NewSession    key.Binding
	NextSession   key.Binding
	PrevSession   key.Binding
	ToggleAssist  key.Binding
	NextFramework key.Binding
	InsertPrompt  key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		SwitchRole:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "switch role")),
		SkipCountdown: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "skip countdown")),
		PauseResume:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "pause/resume")),
		TutorialNext:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next step")),
		SkipTutorial:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip tutorial")),
		ReturnToGuide: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "back to tutorial")),
		Welcome:       key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "welcome")),
		NewSession:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new session")),
		NextSession:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next session")),
		PrevSession:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous session")),
		ToggleAssist:  key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "mentor assist")),
		NextFramework: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "next framework")),
		InsertPrompt:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "insert prompt")),
		Help:          key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:          key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.SwitchRole, k.SkipCountdown, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.SwitchRole, k.SkipCountdown, k.PauseResume},
		{k.TutorialNext, k.SkipTutorial, k.ReturnToGuide, k.Welcome},
		{k.NewSession, k.NextSession, k.PrevSession},
		{k.ToggleAssist, k.NextFramework, k.InsertPrompt, k.Help, k.Quit},
	}
}
