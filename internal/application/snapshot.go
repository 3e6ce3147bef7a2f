package application

import (
	"github.com/bnema/dear-my-friend/internal/countdown"
	"github.com/bnema/dear-my-friend/internal/domain"
)

// Snapshot is a copy of everything the presentation layer renders.
type Snapshot struct {
	Locale           domain.Locale
	Sessions         []domain.Session
	CurrentSessionID string
	Messages         []domain.Message
	TutorialMode     bool

	Role          domain.Role
	TargetRole    domain.Role
	Transitioning bool
	Countdown     countdown.State
	// CountdownProgress runs from 0 to 1 while a switch is pending.
	CountdownProgress float64
	CountdownLabel    string

	Tutorial            domain.TutorialState
	TutorialTitle       string
	TutorialDescription string

	ShowIntroduction   bool
	ShowTutorialReturn bool

	MentorAssist domain.MentorAssistState
}

// InputLocked reports whether the message box and switch control are disabled.
func (s Snapshot) InputLocked() bool {
	if s.Transitioning || s.Countdown.Active {
		return true
	}
	return s.Tutorial.Active && !s.Tutorial.CurrentStep.AllowsInput()
}

func (s Snapshot) CurrentSession() (domain.Session, bool) {
	for _, session := range s.Sessions {
		if session.ID == s.CurrentSessionID {
			return session, true
		}
	}
	return domain.Session{}, false
}

func (a *App) Snapshot() Snapshot {
	return Snapshot{
		Locale:              a.opts.Locale,
		Sessions:            a.sessions.Sessions(),
		CurrentSessionID:    a.sessions.CurrentSessionID(),
		Messages:            a.conversation.ActiveMessages(),
		TutorialMode:        a.conversation.IsTutorialMode(),
		Role:                a.viewMode.Current(),
		TargetRole:          a.viewMode.TargetViewMode(),
		Transitioning:       a.viewMode.IsTransitioning(),
		Countdown:           a.countdown.State(),
		CountdownProgress:   a.countdown.Progress(),
		CountdownLabel:      a.countdown.FormattedTime(),
		Tutorial:            a.tutorial.State(),
		TutorialTitle:       a.tutorial.CurrentStepTitle(),
		TutorialDescription: a.tutorial.CurrentStepDescription(),
		ShowIntroduction:    a.ui.ShowIntroduction(),
		ShowTutorialReturn:  a.ui.ShowTutorialReturn(),
		MentorAssist:        a.mentorAssist.State(),
	}
}
