package application

import (
	"context"
	"strings"

	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/bnema/dear-my-friend/internal/storage"
)

// MentorAssistStore holds the guide's prompt-panel preferences. Every change
// except input focus is persisted as one blob.
type MentorAssistStore struct {
	storage *storage.Adapter
	locale  domain.Locale
	state   domain.MentorAssistState
}

func NewMentorAssistStore(adapter *storage.Adapter, locale domain.Locale) *MentorAssistStore {
	return &MentorAssistStore{storage: adapter, locale: locale, state: domain.DefaultMentorAssistState()}
}

// Initialize merges the persisted blob over the defaults.
func (s *MentorAssistStore) Initialize(ctx context.Context) {
	blob := storage.Load(ctx, s.storage, storage.KeyMentorAssist, storage.MentorAssistBlob{}, storage.ValidateMentorAssist)
	s.state = blob.Merge(domain.DefaultMentorAssistState())
}

func (s *MentorAssistStore) State() domain.MentorAssistState {
	return s.state.Clone()
}

func (s *MentorAssistStore) Enable(ctx context.Context) {
	s.state.IsEnabled = true
	s.save(ctx)
}

// Disable also closes the panel.
func (s *MentorAssistStore) Disable(ctx context.Context) {
	s.state.IsEnabled = false
	s.state.IsPanelOpen = false
	s.save(ctx)
}

func (s *MentorAssistStore) TogglePanel(ctx context.Context) {
	if !s.state.IsEnabled {
		return
	}
	s.state.IsPanelOpen = !s.state.IsPanelOpen
	s.save(ctx)
}

func (s *MentorAssistStore) OpenPanel(ctx context.Context) {
	if !s.state.IsEnabled {
		return
	}
	s.state.IsPanelOpen = true
	s.save(ctx)
}

func (s *MentorAssistStore) ClosePanel(ctx context.Context) {
	s.state.IsPanelOpen = false
	s.save(ctx)
}

func (s *MentorAssistStore) SetFramework(ctx context.Context, framework domain.Framework) error {
	if !framework.Valid() {
		return domain.ErrInvalidFramework
	}
	s.state.CurrentFramework = framework
	s.save(ctx)
	return nil
}

func (s *MentorAssistStore) NextFramework(ctx context.Context) domain.Framework {
	s.state.CurrentFramework = s.state.CurrentFramework.Next()
	s.save(ctx)
	return s.state.CurrentFramework
}

func (s *MentorAssistStore) AddCustomPrompt(ctx context.Context, prompt string) bool {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return false
	}
	s.state.CustomPrompts = append(s.state.CustomPrompts, trimmed)
	s.save(ctx)
	return true
}

// RemoveCustomPrompt drops the prompt at index; stale indexes are ignored.
func (s *MentorAssistStore) RemoveCustomPrompt(ctx context.Context, index int) bool {
	if index < 0 || index >= len(s.state.CustomPrompts) {
		return false
	}
	prompts := make([]string, 0, len(s.state.CustomPrompts)-1)
	prompts = append(prompts, s.state.CustomPrompts[:index]...)
	prompts = append(prompts, s.state.CustomPrompts[index+1:]...)
	s.state.CustomPrompts = prompts
	s.save(ctx)
	return true
}

// SetInputFocused is transient and never written.
func (s *MentorAssistStore) SetInputFocused(focused bool) {
	s.state.IsInputFocused = focused
}

func (s *MentorAssistStore) ToggleSection(ctx context.Context, section domain.Section) {
	switch section {
	case domain.SectionFrameworkGuide:
		s.state.ExpandedSections.FrameworkGuide = !s.state.ExpandedSections.FrameworkGuide
	case domain.SectionQuickPrompts:
		s.state.ExpandedSections.QuickPrompts = !s.state.ExpandedSections.QuickPrompts
	default:
		return
	}
	s.save(ctx)
}

// RecordPromptUsage moves prompt to the front of the recent list, capped at
// domain.MaxRecentPrompts.
func (s *MentorAssistStore) RecordPromptUsage(ctx context.Context, prompt string) {
	recent := make([]string, 0, domain.MaxRecentPrompts)
	recent = append(recent, prompt)
	for _, p := range s.state.RecentPrompts {
		if p != prompt && len(recent) < domain.MaxRecentPrompts {
			recent = append(recent, p)
		}
	}
	s.state.RecentPrompts = recent
	s.save(ctx)
}

func (s *MentorAssistStore) IsEnabled() bool {
	return s.state.IsEnabled
}

func (s *MentorAssistStore) IsPanelOpen() bool {
	return s.state.IsPanelOpen
}

func (s *MentorAssistStore) IsInputFocused() bool {
	return s.state.IsInputFocused
}

func (s *MentorAssistStore) CurrentFramework() domain.Framework {
	return s.state.CurrentFramework
}

func (s *MentorAssistStore) ExpandedSections() domain.ExpandedSections {
	return s.state.ExpandedSections
}

func (s *MentorAssistStore) CustomPrompts() []string {
	return append([]string{}, s.state.CustomPrompts...)
}

func (s *MentorAssistStore) RecentPrompts() []string {
	return append([]string{}, s.state.RecentPrompts...)
}

// Guide returns the localized guide for the current framework.
func (s *MentorAssistStore) Guide() domain.FrameworkGuide {
	return s.locale.FrameworkGuide(s.state.CurrentFramework)
}

func (s *MentorAssistStore) QuickPrompts() []string {
	return s.locale.QuickPrompts()
}

func (s *MentorAssistStore) save(ctx context.Context) {
	s.storage.Save(ctx, storage.KeyMentorAssist, s.state)
}
