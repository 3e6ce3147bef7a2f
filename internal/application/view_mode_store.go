package application

import (
	"context"

	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/bnema/dear-my-friend/internal/storage"
)

// ViewModeStore owns the role currently being narrated and the transition flag
// raised while a countdown-mediated switch is pending.
type ViewModeStore struct {
	storage *storage.Adapter
	locale  domain.Locale

	current       domain.Role
	transitioning bool
}

func NewViewModeStore(adapter *storage.Adapter, locale domain.Locale) *ViewModeStore {
	return &ViewModeStore{storage: adapter, locale: locale, current: domain.RoleSeeker}
}

func (s *ViewModeStore) Initialize(ctx context.Context) {
	s.current = storage.Load(ctx, s.storage, storage.KeyViewMode, domain.RoleSeeker, storage.ValidateViewMode)
}

func (s *ViewModeStore) SwitchViewMode(ctx context.Context) {
	s.current = s.current.Other()
	s.storage.Save(ctx, storage.KeyViewMode, s.current)
}

// ResetToApprentice forces the seeker role, writing only when it changes.
func (s *ViewModeStore) ResetToApprentice(ctx context.Context) bool {
	if s.current != domain.RoleGuide {
		return false
	}
	s.current = domain.RoleSeeker
	s.storage.Save(ctx, storage.KeyViewMode, s.current)
	return true
}

func (s *ViewModeStore) Current() domain.Role {
	return s.current
}

func (s *ViewModeStore) TargetViewMode() domain.Role {
	return s.current.Other()
}

func (s *ViewModeStore) SetTransitioning(transitioning bool) {
	s.transitioning = transitioning
}

func (s *ViewModeStore) IsTransitioning() bool {
	return s.transitioning
}

func (s *ViewModeStore) CurrentRoleLabel() string {
	return s.locale.RoleLabel(s.current)
}

func (s *ViewModeStore) TargetRoleLabel() string {
	return s.locale.RoleLabel(s.TargetViewMode())
}
