package storage

import (
	"fmt"

	"github.com/bnema/dear-my-friend/internal/domain"
)

func ValidateSessions(sessions []domain.Session) error {
	return domain.ValidateSessions(sessions)
}

func ValidateMessages(messages []domain.Message) error {
	return domain.ValidateMessages(messages)
}

func ValidateViewMode(role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}
	return nil
}

// ValidateMentorAssist rejects blobs whose framework is unknown. Missing slices
// and sections are tolerated; the store fills them from defaults.
func ValidateMentorAssist(state MentorAssistBlob) error {
	if state.CurrentFramework != nil && !state.CurrentFramework.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidFramework, *state.CurrentFramework)
	}
	return nil
}

// MentorAssistBlob is the persisted mentor-assist shape with every field optional,
// so a partial blob can be merged over defaults.
type MentorAssistBlob struct {
	IsEnabled        *bool                    `json:"isEnabled"`
	IsPanelOpen      *bool                    `json:"isPanelOpen"`
	CurrentFramework *domain.Framework        `json:"currentFramework"`
	CustomPrompts    []string                 `json:"customPrompts"`
	ExpandedSections *domain.ExpandedSections `json:"expandedSections"`
	RecentPrompts    []string                 `json:"recentPrompts"`
}

// Merge overlays the blob on base.
func (b MentorAssistBlob) Merge(base domain.MentorAssistState) domain.MentorAssistState {
	merged := base.Clone()
	if b.IsEnabled != nil {
		merged.IsEnabled = *b.IsEnabled
	}
	if b.IsPanelOpen != nil {
		merged.IsPanelOpen = *b.IsPanelOpen
	}
	if b.CurrentFramework != nil {
		merged.CurrentFramework = *b.CurrentFramework
	}
	if b.CustomPrompts != nil {
		merged.CustomPrompts = append([]string{}, b.CustomPrompts...)
	}
	if b.ExpandedSections != nil {
		merged.ExpandedSections = *b.ExpandedSections
	}
	if b.RecentPrompts != nil {
		merged.RecentPrompts = append([]string{}, b.RecentPrompts...)
	}
	merged.IsInputFocused = false
	return merged
}
