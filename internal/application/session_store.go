package application

import (
	"context"
	"strings"

	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/bnema/dear-my-friend/internal/ports"
	"github.com/bnema/dear-my-friend/internal/storage"
	"go.uber.org/zap"
)

// SessionStore is the durable owner of every conversation and of the pointer
// to the active one.
type SessionStore struct {
	storage *storage.Adapter
	ids     ports.IDGenerator
	clock   ports.Clock
	locale  domain.Locale
	logger  *zap.Logger

	sessions  []domain.Session
	currentID string
}

func NewSessionStore(adapter *storage.Adapter, ids ports.IDGenerator, clock ports.Clock, locale domain.Locale, logger *zap.Logger) *SessionStore {
	if ids == nil {
		ids = ports.UUIDGenerator{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{
		storage:  adapter,
		ids:      ids,
		clock:    clock,
		locale:   locale,
		logger:   logger,
		sessions: []domain.Session{},
	}
}

// Initialize loads the persisted sessions. With none stored it synthesizes one
// default session, adopting any messages left under the legacy single-session
// keys. A dangling active pointer falls back to the first session.
func (s *SessionStore) Initialize(ctx context.Context) {
	sessions := storage.Load(ctx, s.storage, storage.KeySessions, []domain.Session{}, storage.ValidateSessions)
	currentID := storage.Load(ctx, s.storage, storage.KeyCurrentSessionID, "", nil)

	if len(sessions) == 0 {
		session := s.newSession(s.locale.DefaultSessionTitle(1))
		session.Messages, session.TutorialMessages = s.takeLegacyMessages(ctx)
		s.sessions = []domain.Session{session}
		s.currentID = session.ID
		s.saveSessions(ctx)
		s.saveCurrentID(ctx)
		return
	}

	for i := range sessions {
		sessions[i] = sessions[i].Clone()
	}
	s.sessions = sessions
	s.currentID = currentID
	if _, ok := s.indexOf(currentID); !ok {
		s.currentID = sessions[0].ID
		s.logger.Warn("active session missing, falling back to first", zap.String("session_id", currentID))
		s.saveCurrentID(ctx)
	}
}

func (s *SessionStore) takeLegacyMessages(ctx context.Context) (normal, tutorial []domain.Message) {
	normal = storage.Load(ctx, s.storage, storage.KeyConversation, []domain.Message{}, storage.ValidateMessages)
	tutorial = storage.Load(ctx, s.storage, storage.KeyTutorialConversation, []domain.Message{}, storage.ValidateMessages)
	if len(normal) > 0 || len(tutorial) > 0 {
		s.logger.Info("migrated legacy conversation", zap.Int("messages", len(normal)), zap.Int("tutorial_messages", len(tutorial)))
	}
	s.storage.Remove(ctx, storage.KeyConversation)
	s.storage.Remove(ctx, storage.KeyTutorialConversation)
	return domain.CloneMessages(normal), domain.CloneMessages(tutorial)
}

// CreateSession appends a new empty session and makes it active. A blank title
// becomes "conversation N" where N is the new session count.
func (s *SessionStore) CreateSession(ctx context.Context, title string) domain.Session {
	title = strings.TrimSpace(title)
	if title == "" {
		title = s.locale.DefaultSessionTitle(len(s.sessions) + 1)
	}
	session := s.newSession(title)
	s.sessions = append(s.sessions, session)
	s.currentID = session.ID
	s.saveSessions(ctx)
	s.saveCurrentID(ctx)
	return session.Clone()
}

// DeleteSession removes the session. When it was active, the most recently
// updated remaining session takes over, or none if the list is empty.
func (s *SessionStore) DeleteSession(ctx context.Context, id string) bool {
	i, ok := s.indexOf(id)
	if !ok {
		s.logger.Warn("delete of unknown session", zap.String("session_id", id))
		return false
	}
	s.sessions = append(s.sessions[:i:i], s.sessions[i+1:]...)

	if s.currentID == id {
		s.currentID = ""
		var latest *domain.Session
		for j := range s.sessions {
			if latest == nil || s.sessions[j].UpdatedAt > latest.UpdatedAt {
				latest = &s.sessions[j]
			}
		}
		if latest != nil {
			s.currentID = latest.ID
		}
	}

	s.saveSessions(ctx)
	s.saveCurrentID(ctx)
	return true
}

func (s *SessionStore) RenameSession(ctx context.Context, id, title string) bool {
	i, ok := s.indexOf(id)
	if !ok {
		s.logger.Warn("rename of unknown session", zap.String("session_id", id))
		return false
	}
	s.sessions[i].Title = strings.TrimSpace(title)
	s.sessions[i].UpdatedAt = s.now()
	s.saveSessions(ctx)
	return true
}

// SwitchToSession moves the active pointer; unknown ids are logged and ignored.
func (s *SessionStore) SwitchToSession(ctx context.Context, id string) bool {
	if _, ok := s.indexOf(id); !ok {
		s.logger.Warn("switch to unknown session", zap.String("session_id", id))
		return false
	}
	s.currentID = id
	s.saveCurrentID(ctx)
	return true
}

// UpdateSessionMessages stores copies of both lists on the session.
func (s *SessionStore) UpdateSessionMessages(ctx context.Context, id string, messages, tutorialMessages []domain.Message) bool {
	i, ok := s.indexOf(id)
	if !ok {
		return false
	}
	s.sessions[i].Messages = domain.CloneMessages(messages)
	s.sessions[i].TutorialMessages = domain.CloneMessages(tutorialMessages)
	s.sessions[i].UpdatedAt = s.now()
	s.saveSessions(ctx)
	return true
}

func (s *SessionStore) CurrentSession() (domain.Session, bool) {
	return s.Session(s.currentID)
}

func (s *SessionStore) CurrentSessionID() string {
	return s.currentID
}

func (s *SessionStore) Session(id string) (domain.Session, bool) {
	i, ok := s.indexOf(id)
	if !ok {
		return domain.Session{}, false
	}
	return s.sessions[i].Clone(), true
}

func (s *SessionStore) Sessions() []domain.Session {
	out := make([]domain.Session, len(s.sessions))
	for i := range s.sessions {
		out[i] = s.sessions[i].Clone()
	}
	return out
}

func (s *SessionStore) Len() int {
	return len(s.sessions)
}

func (s *SessionStore) newSession(title string) domain.Session {
	now := s.now()
	return domain.Session{
		ID:               s.ids.NewID(),
		Title:            title,
		Messages:         []domain.Message{},
		TutorialMessages: []domain.Message{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (s *SessionStore) indexOf(id string) (int, bool) {
	if id == "" {
		return -1, false
	}
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *SessionStore) now() int64 {
	return s.clock.Now().UnixMilli()
}

func (s *SessionStore) saveSessions(ctx context.Context) {
	s.storage.Save(ctx, storage.KeySessions, s.sessions)
}

// saveCurrentID writes null when no session is active.
func (s *SessionStore) saveCurrentID(ctx context.Context) {
	if s.currentID == "" {
		s.storage.Save(ctx, storage.KeyCurrentSessionID, nil)
		return
	}
	s.storage.Save(ctx, storage.KeyCurrentSessionID, s.currentID)
}
