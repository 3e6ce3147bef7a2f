package domain

import (
	"fmt"
	"strings"
)

type Session struct {
	ID               string    `json:"id" yaml:"id"`
	Title            string    `json:"title" yaml:"title"`
	Messages         []Message `json:"messages" yaml:"messages"`
	TutorialMessages []Message `json:"tutorialMessages" yaml:"tutorialMessages"`
	CreatedAt        int64     `json:"createdAt" yaml:"createdAt"`
	UpdatedAt        int64     `json:"updatedAt" yaml:"updatedAt"`
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("session id is required")
	}
	if err := ValidateMessages(s.Messages); err != nil {
		return fmt.Errorf("session %s messages: %w", s.ID, err)
	}
	if err := ValidateMessages(s.TutorialMessages); err != nil {
		return fmt.Errorf("session %s tutorial messages: %w", s.ID, err)
	}
	return nil
}

// Clone returns a deep copy of the session's message lists.
func (s Session) Clone() Session {
	s.Messages = CloneMessages(s.Messages)
	s.TutorialMessages = CloneMessages(s.TutorialMessages)
	return s
}

func ValidateSessions(sessions []Session) error {
	seen := make(map[string]struct{}, len(sessions))
	for _, session := range sessions {
		if err := session.Validate(); err != nil {
			return err
		}
		if _, ok := seen[session.ID]; ok {
			return fmt.Errorf("duplicate session id %q", session.ID)
		}
		seen[session.ID] = struct{}{}
	}
	return nil
}
