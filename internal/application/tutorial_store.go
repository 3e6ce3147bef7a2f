package application

import (
	"context"
	"time"

	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/bnema/dear-my-friend/internal/eventloop"
	"github.com/bnema/dear-my-friend/internal/storage"
)

const (
	DefaultStepDuration = time.Second
	completedSentinel   = "true"
)

// TutorialStore runs the seven-step onboarding walkthrough. Only the completed
// flag is persisted.
type TutorialStore struct {
	storage      *storage.Adapter
	loop         *eventloop.Loop
	locale       domain.Locale
	stepDuration time.Duration

	state     domain.TutorialState
	stepTimer *eventloop.Timer
}

func NewTutorialStore(adapter *storage.Adapter, loop *eventloop.Loop, locale domain.Locale, stepDuration time.Duration) *TutorialStore {
	if stepDuration <= 0 {
		stepDuration = DefaultStepDuration
	}
	return &TutorialStore{
		storage:      adapter,
		loop:         loop,
		locale:       locale,
		stepDuration: stepDuration,
		state:        domain.InitialTutorialState(),
	}
}

// Initialize starts the walkthrough unless it was completed before.
func (s *TutorialStore) Initialize(ctx context.Context) {
	if s.ShouldAutoStartTutorial(ctx) {
		s.StartTutorial()
	}
}

func (s *TutorialStore) State() domain.TutorialState {
	return s.state
}

func (s *TutorialStore) StartTutorial() {
	s.stopStepTimer()
	s.state = domain.TutorialState{
		Active:         true,
		CurrentStep:    domain.StepWelcome,
		CanSkip:        true,
		OverlayVisible: true,
	}
}

// NextStep advances one step and opens the transition window. Advancing past
// the last step deactivates the walkthrough without marking it completed.
func (s *TutorialStore) NextStep() {
	next := s.state.CurrentStep + 1
	if next > domain.LastTutorialStep {
		s.state.Active = false
		return
	}

	s.state.CurrentStep = next
	s.state.StepTransitioning = true
	s.stopStepTimer()
	s.stepTimer = s.loop.AfterFunc(s.stepDuration, func() {
		s.state.StepTransitioning = false
	})
}

func (s *TutorialStore) SkipTutorial(ctx context.Context) {
	s.state.Active = false
	s.markCompleted(ctx)
}

func (s *TutorialStore) CompleteTutorial(ctx context.Context) {
	s.state.Active = false
	s.markCompleted(ctx)
}

// PauseTutorial deactivates without touching the completed flag, so the
// walkthrough starts again on the next launch.
func (s *TutorialStore) PauseTutorial() {
	s.state.Active = false
}

func (s *TutorialStore) HideOverlay() {
	s.state.OverlayVisible = false
}

func (s *TutorialStore) ShowOverlay() {
	s.state.OverlayVisible = true
}

func (s *TutorialStore) IsTutorialCompleted(ctx context.Context) bool {
	raw, ok := s.storage.LoadRaw(ctx, storage.KeyTutorialCompleted)
	return ok && raw == completedSentinel
}

func (s *TutorialStore) ShouldAutoStartTutorial(ctx context.Context) bool {
	return !s.IsTutorialCompleted(ctx)
}

// ResetCompletion forgets the completed flag so the walkthrough runs again.
func (s *TutorialStore) ResetCompletion(ctx context.Context) {
	s.storage.Remove(ctx, storage.KeyTutorialCompleted)
}

func (s *TutorialStore) CurrentStepTitle() string {
	return s.locale.StepTitle(s.state.CurrentStep)
}

func (s *TutorialStore) CurrentStepDescription() string {
	return s.locale.StepDescription(s.state.CurrentStep)
}

func (s *TutorialStore) DemoMessage(role domain.Role) string {
	return s.locale.DemoMessage(role)
}

func (s *TutorialStore) markCompleted(ctx context.Context) {
	s.storage.SaveRaw(ctx, storage.KeyTutorialCompleted, completedSentinel)
}

func (s *TutorialStore) stopStepTimer() {
	if s.stepTimer != nil {
		s.stepTimer.Stop()
		s.stepTimer = nil
	}
}
