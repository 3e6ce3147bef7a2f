package application

// UIStore holds transient presentation flags.
type UIStore struct {
	showIntroduction   bool
	showTutorialReturn bool
}

func NewUIStore() *UIStore {
	return &UIStore{}
}

func (s *UIStore) ShowIntroduction() bool {
	return s.showIntroduction
}

func (s *UIStore) SetShowIntroduction(show bool) {
	s.showIntroduction = show
}

// ShowTutorialReturn reports whether the floating "return to tutorial"
// affordance is visible.
func (s *UIStore) ShowTutorialReturn() bool {
	return s.showTutorialReturn
}

func (s *UIStore) SetShowTutorialReturn(show bool) {
	s.showTutorialReturn = show
}
