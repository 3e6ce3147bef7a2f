package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

type countdownTickMsg struct {
	progress float64
	label    string
}

type countdownDoneMsg struct{}

type countdownDisplayModel struct {
	ctx      context.Context
	progress progress.Model
	updates  <-chan countdownTickMsg
	finished <-chan struct{}
	percent  float64
	label    string
	done     bool
}

func newCountdownDisplayModel(ctx context.Context, updates <-chan countdownTickMsg, finished <-chan struct{}) countdownDisplayModel {
	return countdownDisplayModel{
		ctx:      ctx,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		updates:  updates,
		finished: finished,
	}
}

func (m countdownDisplayModel) Init() tea.Cmd {
	return m.next()
}

func (m countdownDisplayModel) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.updates:
			return msg
		case <-m.finished:
			return countdownDoneMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m countdownDisplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case countdownTickMsg:
		m.percent = msg.progress
		m.label = msg.label
		return m, m.next()
	case countdownDoneMsg:
		m.done = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m countdownDisplayModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.progress.ViewAs(m.percent), m.label)
}

func runCountdownDisplay(ctx context.Context, output io.Writer, updates <-chan countdownTickMsg, finished <-chan struct{}) error {
	p := tea.NewProgram(
		newCountdownDisplayModel(ctx, updates, finished),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if _, ok := finalModel.(countdownDisplayModel); !ok {
		return fmt.Errorf("unexpected final countdown model type %T", finalModel)
	}
	return nil
}
