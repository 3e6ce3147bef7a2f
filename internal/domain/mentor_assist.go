package domain

import "fmt"

type Framework string

const (
	FrameworkWhat    Framework = "WHAT"
	FrameworkSoWhat  Framework = "SO_WHAT"
	FrameworkNowWhat Framework = "NOW_WHAT"
)

// Frameworks lists the reflection frameworks in cycling order.
var Frameworks = []Framework{FrameworkWhat, FrameworkSoWhat, FrameworkNowWhat}

const MaxRecentPrompts = 10

func (f Framework) Valid() bool {
	switch f {
	case FrameworkWhat, FrameworkSoWhat, FrameworkNowWhat:
		return true
	default:
		return false
	}
}

// Next cycles WHAT -> SO_WHAT -> NOW_WHAT -> WHAT. Unknown values restart at WHAT.
func (f Framework) Next() Framework {
	for i, candidate := range Frameworks {
		if candidate == f {
			return Frameworks[(i+1)%len(Frameworks)]
		}
	}
	return FrameworkWhat
}

func ParseFramework(raw string) (Framework, error) {
	f := Framework(raw)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFramework, raw)
	}
	return f, nil
}

type ExpandedSections struct {
	FrameworkGuide bool `json:"frameworkGuide"`
	QuickPrompts   bool `json:"quickPrompts"`
}

type Section string

const (
	SectionFrameworkGuide Section = "frameworkGuide"
	SectionQuickPrompts   Section = "quickPrompts"
)

type MentorAssistState struct {
	IsEnabled        bool             `json:"isEnabled"`
	IsPanelOpen      bool             `json:"isPanelOpen"`
	CurrentFramework Framework        `json:"currentFramework"`
	CustomPrompts    []string         `json:"customPrompts"`
	IsInputFocused   bool             `json:"isInputFocused"`
	ExpandedSections ExpandedSections `json:"expandedSections"`
	RecentPrompts    []string         `json:"recentPrompts"`
}

func DefaultMentorAssistState() MentorAssistState {
	return MentorAssistState{
		IsEnabled:        true,
		CurrentFramework: FrameworkWhat,
		CustomPrompts:    []string{},
		ExpandedSections: ExpandedSections{FrameworkGuide: true},
		RecentPrompts:    []string{},
	}
}

func (s MentorAssistState) Clone() MentorAssistState {
	s.CustomPrompts = append([]string{}, s.CustomPrompts...)
	s.RecentPrompts = append([]string{}, s.RecentPrompts...)
	return s
}

type FrameworkGuide struct {
	Title       string
	Description string
	Prompts     []string
	Placeholder string
}
