// Package tui is the interactive chat screen. It owns no state of its own
// beyond widgets: every action goes through application.App, and the event
// loop is pumped from Update so all store access stays on one goroutine.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/dear-my-friend/internal/application"
	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const (
	DefaultPumpInterval = 50 * time.Millisecond
	defaultWidth        = 80
	defaultHeight       = 24
	inputCharLimit      = 2000
)

type pumpMsg time.Time

type Options struct {
	// PumpInterval is how often the event loop is drained between key presses.
	PumpInterval time.Duration
	Logger       *zap.Logger
}

type Model struct {
	ctx    context.Context
	app    *application.App
	logger *zap.Logger
	keys   KeyMap
	pump   time.Duration

	input    textinput.Model
	viewport viewport.Model
	progress progress.Model
	help     help.Model

	snapshot  application.Snapshot
	status    string
	promptIdx int
	width     int
	height    int
}

func New(ctx context.Context, app *application.App, opts Options) Model {
	if opts.PumpInterval <= 0 {
		opts.PumpInterval = DefaultPumpInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = inputCharLimit
	input.Focus()
	app.MentorAssist().SetInputFocused(true)

	m := Model{
		ctx:      ctx,
		app:      app,
		logger:   logger,
		keys:     DefaultKeyMap(),
		pump:     opts.PumpInterval,
		input:    input,
		viewport: viewport.New(defaultWidth, defaultHeight-8),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:     help.New(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.pumpCmd())
}

func (m Model) pumpCmd() tea.Cmd {
	return tea.Tick(m.pump, func(t time.Time) tea.Msg {
		return pumpMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pumpMsg:
		m.app.Loop().RunPending()
		m.refresh()
		return m, m.pumpCmd()

	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 20)
		m.height = max(msg.Height, 10)
		m.input.Width = m.width - 4
		m.progress.Width = max(10, m.width/3)
		m.help.Width = m.width
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.app.MentorAssist().SetInputFocused(false)
			return m, tea.Quit
		}
		if handled := m.handleKey(msg); handled {
			m.app.Loop().RunPending()
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey runs the action bound to msg and reports whether one matched.
func (m *Model) handleKey(msg tea.KeyMsg) bool {
	ctx := m.ctx
	snap := m.snapshot
	m.status = ""

	tutorialCard := snap.Tutorial.Active && snap.Tutorial.OverlayVisible
	switch {
	case tutorialCard && key.Matches(msg, m.keys.TutorialNext):
		m.report(m.app.TutorialNext(ctx))
	case snap.Tutorial.Active && key.Matches(msg, m.keys.SkipTutorial):
		m.app.SkipTutorial(ctx)
	case key.Matches(msg, m.keys.ReturnToGuide):
		if snap.ShowTutorialReturn {
			m.report(m.app.ReturnToTutorial(ctx))
		}
	case key.Matches(msg, m.keys.Send):
		m.send()
	case key.Matches(msg, m.keys.SwitchRole):
		m.report(m.app.RequestRoleSwitch(ctx))
	case key.Matches(msg, m.keys.SkipCountdown):
		m.app.SkipCountdown()
	case key.Matches(msg, m.keys.PauseResume):
		if snap.Countdown.Paused {
			m.app.ResumeCountdown()
		} else {
			m.app.PauseCountdown()
		}
	case key.Matches(msg, m.keys.Welcome):
		m.app.OpenWelcome(ctx)
	case key.Matches(msg, m.keys.NewSession):
		m.app.CreateSession(ctx, "")
	case key.Matches(msg, m.keys.NextSession):
		m.cycleSession(1)
	case key.Matches(msg, m.keys.PrevSession):
		m.cycleSession(-1)
	case key.Matches(msg, m.keys.ToggleAssist):
		m.app.MentorAssist().TogglePanel(ctx)
	case key.Matches(msg, m.keys.NextFramework):
		m.app.MentorAssist().NextFramework(ctx)
		m.promptIdx = 0
	case key.Matches(msg, m.keys.InsertPrompt):
		m.insertPrompt()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		return false
	}
	return true
}

func (m *Model) send() {
	if m.snapshot.ShowIntroduction {
		m.app.CloseIntroduction()
	}
	_, err := m.app.SendMessage(m.ctx, m.input.Value())
	if errors.Is(err, domain.ErrBlankMessage) {
		return
	}
	if m.report(err) {
		m.input.Reset()
	}
}

func (m *Model) cycleSession(step int) {
	sessions := m.snapshot.Sessions
	if len(sessions) < 2 {
		return
	}
	current := 0
	for i, session := range sessions {
		if session.ID == m.snapshot.CurrentSessionID {
			current = i
			break
		}
	}
	next := (current + step + len(sessions)) % len(sessions)
	m.report(m.app.SwitchSession(m.ctx, sessions[next].ID))
}

func (m *Model) insertPrompt() {
	assist := m.app.MentorAssist()
	if !assist.IsEnabled() || m.snapshot.Role != domain.RoleGuide {
		return
	}
	prompts := assist.Guide().Prompts
	if len(prompts) == 0 {
		return
	}
	prompt := prompts[m.promptIdx%len(prompts)]
	m.promptIdx++
	m.input.SetValue(prompt)
	m.input.CursorEnd()
	assist.RecordPromptUsage(m.ctx, prompt)
}

// report shows err on the status line and reports whether it was nil.
func (m *Model) report(err error) bool {
	if err == nil {
		return true
	}
	m.status = err.Error()
	m.logger.Debug("action refused", zap.Error(err))
	return false
}

func (m *Model) refresh() {
	m.snapshot = m.app.Snapshot()
	if m.snapshot.InputLocked() {
		m.input.Blur()
	} else if !m.input.Focused() {
		m.input.Focus()
	}
	m.layout()
}

// Snapshot is the state rendered by the last refresh.
func (m Model) Snapshot() application.Snapshot {
	return m.snapshot
}

func (m Model) Status() string {
	return m.status
}
