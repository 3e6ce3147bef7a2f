package domain

import (
	"fmt"
	"strings"
)

type Message struct {
	ID        string `json:"id" yaml:"id"`
	Content   string `json:"content" yaml:"content"`
	Role      Role   `json:"role" yaml:"role"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
	IsEditing bool   `json:"isEditing,omitempty" yaml:"isEditing,omitempty"`
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("message id is required")
	}
	if !m.Role.Valid() {
		return fmt.Errorf("message %s: %w: %q", m.ID, ErrInvalidRole, m.Role)
	}
	return nil
}

// CloneMessages copies a message list so callers never share backing arrays.
func CloneMessages(messages []Message) []Message {
	if messages == nil {
		return []Message{}
	}
	out := make([]Message, len(messages))
	copy(out, messages)
	return out
}

func ValidateMessages(messages []Message) error {
	for _, message := range messages {
		if err := message.Validate(); err != nil {
			return err
		}
	}
	return nil
}
