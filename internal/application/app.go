package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/dear-my-friend/internal/countdown"
	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/bnema/dear-my-friend/internal/eventloop"
	"github.com/bnema/dear-my-friend/internal/ports"
	"github.com/bnema/dear-my-friend/internal/storage"
	"go.uber.org/zap"
)

const (
	DefaultOverlayDelay    = 500 * time.Millisecond
	DefaultReturnDelay     = time.Second
	DefaultMentorDemoDelay = 500 * time.Millisecond
)

type Deps struct {
	Loop      *eventloop.Loop
	Storage   *storage.Adapter
	Countdown *countdown.Engine
	IDs       ports.IDGenerator
	Logger    *zap.Logger
}

type Options struct {
	Locale            domain.Locale
	CountdownDuration time.Duration
	StepDuration      time.Duration
	OverlayDelay      time.Duration
	ReturnDelay       time.Duration
	MentorDemoDelay   time.Duration
	// AutoStartTutorial starts the walkthrough on Initialize unless it was
	// completed before. One-shot commands leave it off.
	AutoStartTutorial bool
}

func (o Options) withDefaults() Options {
	if o.Locale == "" {
		o.Locale = domain.LocaleZhTW
	}
	if o.OverlayDelay <= 0 {
		o.OverlayDelay = DefaultOverlayDelay
	}
	if o.ReturnDelay <= 0 {
		o.ReturnDelay = DefaultReturnDelay
	}
	if o.MentorDemoDelay <= 0 {
		o.MentorDemoDelay = DefaultMentorDemoDelay
	}
	return o
}

// App is the only component that knows about more than one store. It keeps
// the conversation working copy and the session store coherent, runs the
// countdown-mediated role switch and scripts the tutorial.
//
// Every method must run on the event loop goroutine, or on a goroutine that
// pumps the loop with RunPending afterwards.
type App struct {
	loop   *eventloop.Loop
	logger *zap.Logger
	opts   Options
	// ctx outlives single calls. Timers and deferred tasks use it.
	ctx context.Context

	conversation *ConversationStore
	viewMode     *ViewModeStore
	tutorial     *TutorialStore
	mentorAssist *MentorAssistStore
	sessions     *SessionStore
	ui           *UIStore
	countdown    *countdown.Engine

	// loadedSessionID is the session the conversation working copy came from.
	loadedSessionID string
	syncQueued      bool
	reconcileQueued bool

	choreography    *eventloop.Group
	demoAfterSwitch bool
}

func NewApp(deps Deps, opts Options) *App {
	opts = opts.withDefaults()
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Loop.Clock()
	engine := deps.Countdown
	if engine == nil {
		engine = countdown.New(deps.Loop, countdown.WithLogger(logger.Named("countdown")))
	}

	return &App{
		loop:         deps.Loop,
		logger:       logger,
		opts:         opts,
		ctx:          context.Background(),
		conversation: NewConversationStore(deps.IDs, clock, opts.Locale),
		viewMode:     NewViewModeStore(deps.Storage, opts.Locale),
		tutorial:     NewTutorialStore(deps.Storage, deps.Loop, opts.Locale, opts.StepDuration),
		mentorAssist: NewMentorAssistStore(deps.Storage, opts.Locale),
		sessions:     NewSessionStore(deps.Storage, deps.IDs, clock, opts.Locale, logger.Named("session")),
		ui:           NewUIStore(),
		countdown:    engine,
		choreography: deps.Loop.NewGroup(),
	}
}

// Initialize loads every store in dependency order and then brings the
// working copy in line with the active session.
func (a *App) Initialize(ctx context.Context) {
	a.ctx = context.WithoutCancel(ctx)
	a.sessions.Initialize(ctx)
	a.viewMode.Initialize(ctx)
	if a.opts.AutoStartTutorial {
		a.tutorial.Initialize(ctx)
	}
	a.mentorAssist.Initialize(ctx)
	a.loadCurrentSession()
	a.scheduleReconcile()
}

func (a *App) Loop() *eventloop.Loop {
	return a.loop
}

func (a *App) Locale() domain.Locale {
	return a.opts.Locale
}

func (a *App) MentorAssist() *MentorAssistStore {
	return a.mentorAssist
}

// SendMessage appends content as the current role.
func (a *App) SendMessage(ctx context.Context, content string) (domain.Message, error) {
	if a.inputLocked() {
		return domain.Message{}, domain.ErrInputLocked
	}
	if state := a.tutorial.State(); state.Active && !state.CurrentStep.AllowsInput() {
		return domain.Message{}, fmt.Errorf("send message at %s: %w", state.CurrentStep, domain.ErrTutorialLocked)
	}
	message, ok := a.conversation.SendMessage(content, a.viewMode.Current())
	if !ok {
		return domain.Message{}, domain.ErrBlankMessage
	}
	a.afterMutation()
	return message, nil
}

func (a *App) EditMessage(ctx context.Context, id, content string) error {
	if !a.hasMessage(id) {
		return domain.ErrMessageNotFound
	}
	a.conversation.EditMessage(id, content)
	a.afterMutation()
	return nil
}

func (a *App) StartEditMessage(id string) error {
	if !a.hasMessage(id) {
		return domain.ErrMessageNotFound
	}
	a.conversation.StartEditMessage(id)
	return nil
}

func (a *App) CancelEditMessage(id string) {
	a.conversation.CancelEditMessage(id)
}

// DeleteMessage removes the message; unknown ids are a logged no-op.
func (a *App) DeleteMessage(ctx context.Context, id string) bool {
	if !a.conversation.DeleteMessage(id) {
		a.logger.Debug("delete of unknown message", zap.String("message_id", id))
		return false
	}
	a.afterMutation()
	return true
}

// ClearConversation empties the list of the current mode and hands the floor
// back to the seeker. Callers confirm with the user first.
func (a *App) ClearConversation(ctx context.Context) {
	a.conversation.ClearMessages()
	a.viewMode.ResetToApprentice(ctx)
	a.afterMutation()
}

func (a *App) Export(format ExportFormat) (string, error) {
	return a.conversation.ExportMessages(format)
}

func (a *App) CreateSession(ctx context.Context, title string) domain.Session {
	a.flushSync(ctx)
	session := a.sessions.CreateSession(ctx, title)
	a.loadCurrentSession()
	a.scheduleReconcile()
	return session
}

func (a *App) SwitchSession(ctx context.Context, id string) error {
	if _, ok := a.sessions.Session(id); !ok {
		return domain.ErrSessionNotFound
	}
	a.flushSync(ctx)
	a.sessions.SwitchToSession(ctx, id)
	a.loadCurrentSession()
	a.scheduleReconcile()
	return nil
}

// DeleteSession refuses to remove the last remaining session.
func (a *App) DeleteSession(ctx context.Context, id string) error {
	if _, ok := a.sessions.Session(id); !ok {
		return domain.ErrSessionNotFound
	}
	if a.sessions.Len() <= 1 {
		return domain.ErrLastSession
	}
	a.flushSync(ctx)
	a.sessions.DeleteSession(ctx, id)
	a.loadCurrentSession()
	a.scheduleReconcile()
	return nil
}

func (a *App) RenameSession(ctx context.Context, id, title string) error {
	if !a.sessions.RenameSession(ctx, id, title) {
		return domain.ErrSessionNotFound
	}
	return nil
}

// RequestRoleSwitch starts the countdown that ends in a role switch. An empty
// conversation cannot switch, except at the tutorial steps that teach it.
func (a *App) RequestRoleSwitch(ctx context.Context) error {
	if a.switchInFlight() {
		return domain.ErrSwitchInProgress
	}
	state := a.tutorial.State()
	if state.Active && !state.CurrentStep.AllowsRoleSwitch() {
		return fmt.Errorf("switch role at %s: %w", state.CurrentStep, domain.ErrTutorialLocked)
	}
	guided := state.Active && state.CurrentStep.AllowsEmptySwitch()
	if len(a.conversation.ActiveMessages()) == 0 && !guided {
		return domain.ErrEmptyConversation
	}
	a.beginSwitch(guided)
	return nil
}

func (a *App) SkipCountdown() {
	a.countdown.Skip()
}

func (a *App) PauseCountdown() {
	a.countdown.Pause()
}

func (a *App) ResumeCountdown() {
	a.countdown.Resume()
}

func (a *App) beginSwitch(guided bool) {
	a.viewMode.SetTransitioning(true)
	a.countdown.Start(a.opts.CountdownDuration, func() {
		a.completeSwitch(guided)
	})
}

func (a *App) completeSwitch(guided bool) {
	a.viewMode.SetTransitioning(false)
	a.viewMode.SwitchViewMode(a.ctx)
	a.logger.Debug("role switched", zap.String("role", string(a.viewMode.Current())))

	if guided && a.tutorial.State().Active {
		a.choreography.AfterFunc(a.opts.OverlayDelay, func() {
			if !a.tutorial.State().Active {
				return
			}
			a.tutorial.ShowOverlay()
			if a.tutorial.State().CurrentStep == domain.StepSwitchGuide {
				a.tutorial.NextStep()
			}
			a.scheduleReconcile()
		})
	}

	if a.demoAfterSwitch {
		if a.viewMode.Current() == domain.RoleGuide {
			a.demoAfterSwitch = false
			a.choreography.AfterFunc(a.opts.MentorDemoDelay, func() {
				a.sendDemo(domain.RoleGuide)
			})
		} else {
			a.beginSwitch(false)
		}
	}

	a.scheduleReconcile()
}

// cancelSwitch abandons a pending switch without firing it.
func (a *App) cancelSwitch() {
	a.countdown.Reset()
	a.viewMode.SetTransitioning(false)
}

func (a *App) switchInFlight() bool {
	return a.countdown.State().Active || a.viewMode.IsTransitioning()
}

func (a *App) inputLocked() bool {
	return a.switchInFlight()
}

// StartTutorial replays the walkthrough from the first step on a fresh
// tutorial transcript.
func (a *App) StartTutorial(ctx context.Context) {
	a.cancelChoreography()
	a.cancelSwitch()
	a.conversation.ClearTutorialMessages()
	a.viewMode.ResetToApprentice(ctx)
	a.conversation.SwitchToTutorialMode()
	a.tutorial.StartTutorial()
	a.ui.SetShowIntroduction(false)
	a.afterMutation()
}

// TutorialNext performs the primary action of the current step.
func (a *App) TutorialNext(ctx context.Context) error {
	state := a.tutorial.State()
	if !state.Active {
		return domain.ErrTutorialInactive
	}
	if state.StepTransitioning {
		return domain.ErrStepTransitioning
	}

	switch state.CurrentStep {
	case domain.StepWelcome, domain.StepMentorResponseReview:
		a.tutorial.NextStep()
	case domain.StepApprenticeDemo:
		a.tutorial.HideOverlay()
		a.sendDemo(domain.RoleSeeker)
	case domain.StepSwitchGuide:
		// The switch itself advances this step.
		a.tutorial.HideOverlay()
	case domain.StepMentorIntro:
		a.tutorial.ShowOverlay()
		a.tutorial.NextStep()
	case domain.StepMentorDemo:
		a.tutorial.HideOverlay()
		if a.viewMode.Current() == domain.RoleGuide && !a.switchInFlight() {
			a.sendDemo(domain.RoleGuide)
			break
		}
		a.demoAfterSwitch = true
		if !a.switchInFlight() {
			a.beginSwitch(false)
		}
	case domain.StepComplete:
		a.finishTutorial(ctx, false)
		return nil
	}

	a.scheduleReconcile()
	return nil
}

// ReturnToTutorial is the floating affordance shown after a demo message.
func (a *App) ReturnToTutorial(ctx context.Context) error {
	if !a.tutorial.State().Active {
		return domain.ErrTutorialInactive
	}
	a.ui.SetShowTutorialReturn(false)
	a.tutorial.ShowOverlay()
	a.tutorial.NextStep()
	a.scheduleReconcile()
	return nil
}

func (a *App) SkipTutorial(ctx context.Context) {
	a.finishTutorial(ctx, true)
}

// PauseTutorial leaves the walkthrough without marking it completed.
func (a *App) PauseTutorial(ctx context.Context) {
	a.cancelChoreography()
	a.tutorial.PauseTutorial()
	a.scheduleReconcile()
}

// OpenWelcome starts the walkthrough for newcomers and shows the introduction
// to everyone else.
func (a *App) OpenWelcome(ctx context.Context) {
	if !a.tutorial.IsTutorialCompleted(ctx) {
		a.StartTutorial(ctx)
		return
	}
	a.ui.SetShowIntroduction(true)
}

func (a *App) CloseIntroduction() {
	a.ui.SetShowIntroduction(false)
}

func (a *App) TutorialCompleted(ctx context.Context) bool {
	return a.tutorial.IsTutorialCompleted(ctx)
}

func (a *App) ResetTutorial(ctx context.Context) {
	a.tutorial.ResetCompletion(ctx)
}

func (a *App) finishTutorial(ctx context.Context, skipped bool) {
	a.cancelChoreography()
	a.cancelSwitch()
	if skipped {
		a.tutorial.SkipTutorial(ctx)
	} else {
		a.tutorial.CompleteTutorial(ctx)
	}
	a.conversation.ClearTutorialMessages()
	a.viewMode.ResetToApprentice(ctx)
	a.conversation.SwitchToNormalMode()
	a.afterMutation()
}

// sendDemo posts the scripted message for role, bypassing the tutorial input lock.
func (a *App) sendDemo(role domain.Role) {
	if !a.tutorial.State().Active {
		return
	}
	a.conversation.SendMessage(a.tutorial.DemoMessage(role), role)
	a.choreography.AfterFunc(a.opts.ReturnDelay, func() {
		a.ui.SetShowTutorialReturn(true)
	})
	a.afterMutation()
}

func (a *App) cancelChoreography() {
	if n := a.choreography.Cancel(); n > 0 {
		a.logger.Debug("cancelled tutorial choreography", zap.Int("timers", n))
	}
	a.demoAfterSwitch = false
	a.ui.SetShowTutorialReturn(false)
}

func (a *App) afterMutation() {
	a.scheduleSync()
	a.scheduleReconcile()
}

// scheduleSync copies the working lists into their session once the current
// task has finished.
func (a *App) scheduleSync() {
	if a.syncQueued {
		return
	}
	a.syncQueued = true
	a.loop.Defer(func() {
		a.flushSync(a.ctx)
	})
}

func (a *App) flushSync(ctx context.Context) {
	if !a.syncQueued {
		return
	}
	a.syncQueued = false
	if a.loadedSessionID == "" {
		return
	}
	normal, tutorial := a.conversation.MessagesForSession()
	a.sessions.UpdateSessionMessages(ctx, a.loadedSessionID, normal, tutorial)
}

func (a *App) scheduleReconcile() {
	if a.reconcileQueued {
		return
	}
	a.reconcileQueued = true
	a.loop.Defer(func() {
		a.reconcileQueued = false
		a.reconcile(a.ctx)
	})
}

// reconcile enforces the cross-store rules after any change.
func (a *App) reconcile(ctx context.Context) {
	if a.sessions.CurrentSessionID() != a.loadedSessionID {
		a.flushSync(ctx)
		a.loadCurrentSession()
	}

	active := a.tutorial.State().Active
	switch {
	case active && !a.conversation.IsTutorialMode():
		a.viewMode.ResetToApprentice(ctx)
		a.conversation.SwitchToTutorialMode()
	case !active && a.conversation.IsTutorialMode():
		a.conversation.SwitchToNormalMode()
	}

	if !active &&
		!a.conversation.IsTutorialMode() &&
		len(a.conversation.ActiveMessages()) == 0 &&
		a.viewMode.Current() == domain.RoleGuide &&
		!a.viewMode.IsTransitioning() {
		a.viewMode.ResetToApprentice(ctx)
		a.logger.Debug("conversation empty, role reset to seeker")
	}
}

func (a *App) loadCurrentSession() {
	session, ok := a.sessions.CurrentSession()
	if !ok {
		a.loadedSessionID = ""
		a.conversation.LoadSessionMessages(nil, nil)
		return
	}
	a.conversation.LoadSessionMessages(session.Messages, session.TutorialMessages)
	a.loadedSessionID = session.ID
}

func (a *App) hasMessage(id string) bool {
	for _, m := range a.conversation.ActiveMessages() {
		if m.ID == id {
			return true
		}
	}
	return false
}
