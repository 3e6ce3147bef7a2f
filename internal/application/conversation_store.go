package application

import (
	"strings"
	"time"

	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/bnema/dear-my-friend/internal/ports"
)

// ConversationStore is the working copy of the active session's two message
// lists. Every mutation targets the list selected by the mode flag.
type ConversationStore struct {
	ids    ports.IDGenerator
	clock  ports.Clock
	locale domain.Locale

	messages         []domain.Message
	tutorialMessages []domain.Message
	tutorialMode     bool
}

func NewConversationStore(ids ports.IDGenerator, clock ports.Clock, locale domain.Locale) *ConversationStore {
	if ids == nil {
		ids = ports.UUIDGenerator{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &ConversationStore{
		ids:              ids,
		clock:            clock,
		locale:           locale,
		messages:         []domain.Message{},
		tutorialMessages: []domain.Message{},
	}
}

// SendMessage appends a trimmed message to the active list. Blank content is
// ignored and reported with ok=false.
func (s *ConversationStore) SendMessage(content string, role domain.Role) (domain.Message, bool) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || !role.Valid() {
		return domain.Message{}, false
	}

	message := domain.Message{
		ID:        s.ids.NewID(),
		Content:   trimmed,
		Role:      role,
		Timestamp: s.clock.Now().UnixMilli(),
	}
	s.setActive(append(s.active(), message))
	return message, true
}

// EditMessage replaces the content when the trimmed text is non-empty and
// different; otherwise it only leaves edit mode.
func (s *ConversationStore) EditMessage(id, newContent string) bool {
	trimmed := strings.TrimSpace(newContent)
	changed := false
	s.update(func(m *domain.Message) {
		if m.ID != id {
			return
		}
		if trimmed != "" && trimmed != m.Content {
			m.Content = trimmed
			changed = true
		}
		m.IsEditing = false
	})
	return changed
}

func (s *ConversationStore) StartEditMessage(id string) {
	s.update(func(m *domain.Message) {
		m.IsEditing = m.ID == id
	})
}

func (s *ConversationStore) CancelEditMessage(id string) {
	s.update(func(m *domain.Message) {
		if m.ID == id {
			m.IsEditing = false
		}
	})
}

// DeleteMessage removes the message and reports whether it existed.
func (s *ConversationStore) DeleteMessage(id string) bool {
	current := s.active()
	kept := make([]domain.Message, 0, len(current))
	for _, m := range current {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.setActive(kept)
	return len(kept) != len(current)
}

// ClearMessages empties the active list.
func (s *ConversationStore) ClearMessages() {
	s.setActive([]domain.Message{})
}

func (s *ConversationStore) ClearTutorialMessages() {
	s.tutorialMessages = []domain.Message{}
}

func (s *ConversationStore) SwitchToTutorialMode() {
	s.tutorialMode = true
}

func (s *ConversationStore) SwitchToNormalMode() {
	s.tutorialMode = false
}

func (s *ConversationStore) IsTutorialMode() bool {
	return s.tutorialMode
}

// LoadSessionMessages bulk-replaces both lists.
func (s *ConversationStore) LoadSessionMessages(normal, tutorial []domain.Message) {
	s.messages = domain.CloneMessages(normal)
	s.tutorialMessages = domain.CloneMessages(tutorial)
}

// MessagesForSession returns copies of both lists for persisting into a session.
func (s *ConversationStore) MessagesForSession() (normal, tutorial []domain.Message) {
	return domain.CloneMessages(s.messages), domain.CloneMessages(s.tutorialMessages)
}

func (s *ConversationStore) Messages() []domain.Message {
	return domain.CloneMessages(s.messages)
}

func (s *ConversationStore) TutorialMessages() []domain.Message {
	return domain.CloneMessages(s.tutorialMessages)
}

// ActiveMessages returns the list selected by the current mode.
func (s *ConversationStore) ActiveMessages() []domain.Message {
	return domain.CloneMessages(s.active())
}

func (s *ConversationStore) ExportMessages(format ExportFormat) (string, error) {
	return exportTranscript(s.ActiveMessages(), format, s.tutorialMode, s.locale, s.clock.Now())
}

func (s *ConversationStore) active() []domain.Message {
	if s.tutorialMode {
		return s.tutorialMessages
	}
	return s.messages
}

func (s *ConversationStore) setActive(messages []domain.Message) {
	if s.tutorialMode {
		s.tutorialMessages = messages
		return
	}
	s.messages = messages
}

// update rewrites the active list through fn on a fresh copy.
func (s *ConversationStore) update(fn func(*domain.Message)) {
	updated := domain.CloneMessages(s.active())
	for i := range updated {
		fn(&updated[i])
	}
	s.setActive(updated)
}

func timestampTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}
