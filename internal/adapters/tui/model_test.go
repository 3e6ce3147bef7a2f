package tui

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/dear-my-friend/internal/adapters/kv/memory"
	"github.com/bnema/dear-my-friend/internal/application"
	"github.com/bnema/dear-my-friend/internal/countdown"
	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/bnema/dear-my-friend/internal/eventloop"
	"github.com/bnema/dear-my-friend/internal/ports/fakes"
	"github.com/bnema/dear-my-friend/internal/storage"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	clock *fakes.ManualClock
	app   *application.App
	model Model
}

func newFixture(t *testing.T, opts application.Options) *fixture {
	t.Helper()
	ctx := context.Background()
	clock := fakes.NewManualClock(time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC))
	logger := zaptest.NewLogger(t)
	loop := eventloop.New(clock, logger)
	if opts.Locale == "" {
		opts.Locale = domain.LocaleEn
	}

	app := application.NewApp(application.Deps{
		Loop:      loop,
		Storage:   storage.NewAdapter(memory.NewStore(), logger),
		Countdown: countdown.New(loop),
		IDs:       &fakes.SequentialIDs{Prefix: "id"},
		Logger:    logger,
	}, opts)
	app.Initialize(ctx)
	loop.RunPending()

	return &fixture{clock: clock, app: app, model: New(ctx, app, Options{Logger: logger})}
}

func (f *fixture) press(t *testing.T, msgs ...tea.Msg) {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := f.model.Update(msg)
		model, ok := updated.(Model)
		require.True(t, ok)
		f.model = model
	}
}

func (f *fixture) typeText(t *testing.T, text string) {
	t.Helper()
	f.press(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func (f *fixture) send(t *testing.T, text string) {
	t.Helper()
	f.typeText(t, text)
	f.press(t, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestEnterSendsAndClearsInput(t *testing.T) {
	f := newFixture(t, application.Options{})

	f.send(t, "I keep postponing things")

	snap := f.model.Snapshot()
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, "I keep postponing things", snap.Messages[0].Content)
	assert.Equal(t, domain.RoleSeeker, snap.Messages[0].Role)
	assert.Empty(t, f.model.input.Value())
	assert.Empty(t, f.model.Status())
}

func TestBlankEnterIsIgnored(t *testing.T) {
	f := newFixture(t, application.Options{})

	f.send(t, "   ")

	assert.Empty(t, f.model.Snapshot().Messages)
	assert.Empty(t, f.model.Status())
}

func TestSwitchRoleOnEmptyConversationShowsStatus(t *testing.T) {
	f := newFixture(t, application.Options{})

	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlT})

	assert.Equal(t, domain.ErrEmptyConversation.Error(), f.model.Status())
	assert.False(t, f.model.Snapshot().Transitioning)
}

func TestSwitchRoleLocksInputUntilSkipped(t *testing.T) {
	f := newFixture(t, application.Options{})
	f.send(t, "hello")

	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlT})
	snap := f.model.Snapshot()
	require.True(t, snap.Transitioning)
	assert.False(t, f.model.input.Focused())
	assert.Contains(t, f.model.View(), "switching to Guide in 10s")

	f.typeText(t, "ignored")
	assert.Empty(t, f.model.input.Value())

	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlS})
	snap = f.model.Snapshot()
	assert.Equal(t, domain.RoleGuide, snap.Role)
	assert.False(t, snap.Transitioning)
	assert.True(t, f.model.input.Focused())
}

func TestPumpCompletesCountdown(t *testing.T) {
	f := newFixture(t, application.Options{CountdownDuration: time.Second})
	f.send(t, "hello")
	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlT})

	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.True(t, f.model.Snapshot().Countdown.Paused)
	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.False(t, f.model.Snapshot().Countdown.Paused)

	for i := 0; i < 10; i++ {
		f.clock.Advance(countdown.DefaultTick)
		f.press(t, pumpMsg(f.clock.Now()))
	}

	assert.Equal(t, domain.RoleGuide, f.model.Snapshot().Role)
}

func TestTutorialKeys(t *testing.T) {
	f := newFixture(t, application.Options{AutoStartTutorial: true})
	require.True(t, f.model.Snapshot().Tutorial.Active)
	assert.Contains(t, f.model.View(), "step 1/7")

	f.press(t, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, domain.StepApprenticeDemo, f.model.Snapshot().Tutorial.CurrentStep)

	f.press(t, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, domain.ErrStepTransitioning.Error(), f.model.Status())

	f.press(t, tea.KeyMsg{Type: tea.KeyEsc})
	snap := f.model.Snapshot()
	assert.False(t, snap.Tutorial.Active)
	assert.False(t, snap.TutorialMode)
	assert.True(t, f.app.TutorialCompleted(context.Background()))
}

func TestReturnAffordanceKey(t *testing.T) {
	f := newFixture(t, application.Options{AutoStartTutorial: true})
	f.press(t, tea.KeyMsg{Type: tea.KeyEnter})
	f.clock.Advance(application.DefaultStepDuration)
	f.press(t, pumpMsg(f.clock.Now()))

	f.press(t, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, f.model.Snapshot().Messages, 1)
	f.clock.Advance(application.DefaultReturnDelay)
	f.press(t, pumpMsg(f.clock.Now()))
	require.True(t, f.model.Snapshot().ShowTutorialReturn)
	assert.Contains(t, f.model.View(), "return to the tutorial")

	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlR})
	snap := f.model.Snapshot()
	assert.False(t, snap.ShowTutorialReturn)
	assert.Equal(t, domain.StepSwitchGuide, snap.Tutorial.CurrentStep)
}

func TestSessionKeys(t *testing.T) {
	f := newFixture(t, application.Options{})
	first := f.model.Snapshot().CurrentSessionID
	f.send(t, "first session")

	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlN})
	snap := f.model.Snapshot()
	require.Len(t, snap.Sessions, 2)
	assert.NotEqual(t, first, snap.CurrentSessionID)
	assert.Empty(t, snap.Messages)

	f.press(t, tea.KeyMsg{Type: tea.KeyTab})
	snap = f.model.Snapshot()
	assert.Equal(t, first, snap.CurrentSessionID)
	require.Len(t, snap.Messages, 1)
}

func TestMentorAssistPanelForGuide(t *testing.T) {
	f := newFixture(t, application.Options{})
	f.send(t, "hello")
	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlT}, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, domain.RoleGuide, f.model.Snapshot().Role)

	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.True(t, f.model.Snapshot().MentorAssist.IsPanelOpen)
	assert.Contains(t, f.model.View(), "mentor assist: on")

	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlO})
	guide := domain.LocaleEn.FrameworkGuide(domain.FrameworkWhat)
	require.NotEmpty(t, guide.Prompts)
	assert.Equal(t, guide.Prompts[0], f.model.input.Value())
	assert.Equal(t, []string{guide.Prompts[0]}, f.model.Snapshot().MentorAssist.RecentPrompts)

	f.press(t, tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.Equal(t, domain.FrameworkSoWhat, f.model.Snapshot().MentorAssist.CurrentFramework)
}

func TestWindowSizeResizesWidgets(t *testing.T) {
	f := newFixture(t, application.Options{})

	f.press(t, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, f.model.width)
	assert.Equal(t, 40, f.model.height)
	assert.Equal(t, 120, f.model.viewport.Width)

	f.press(t, tea.WindowSizeMsg{Width: 0, Height: 0})
	assert.Equal(t, 20, f.model.width)
}

func TestQuitKey(t *testing.T) {
	f := newFixture(t, application.Options{})

	_, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
