package domain

type TutorialStep int

const (
	StepWelcome TutorialStep = iota
	StepApprenticeDemo
	StepSwitchGuide
	StepMentorIntro
	StepMentorDemo
	StepMentorResponseReview
	StepComplete
)

// LastTutorialStep is terminal: advancing past it deactivates the tutorial.
const LastTutorialStep = StepComplete

func (s TutorialStep) Valid() bool {
	return s >= StepWelcome && s <= StepComplete
}

func (s TutorialStep) String() string {
	switch s {
	case StepWelcome:
		return "WELCOME"
	case StepApprenticeDemo:
		return "APPRENTICE_DEMO"
	case StepSwitchGuide:
		return "SWITCH_GUIDE"
	case StepMentorIntro:
		return "MENTOR_INTRO"
	case StepMentorDemo:
		return "MENTOR_DEMO"
	case StepMentorResponseReview:
		return "MENTOR_RESPONSE_REVIEW"
	case StepComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// Progress is the share of the walkthrough already covered, 0..1.
func (s TutorialStep) Progress() float64 {
	if !s.Valid() {
		return 0
	}
	return float64(s) / float64(StepComplete)
}

// AllowsEmptySwitch reports whether a role switch may start with no messages at this step.
func (s TutorialStep) AllowsEmptySwitch() bool {
	return s == StepSwitchGuide || s == StepMentorIntro
}

// AllowsRoleSwitch reports whether the user may request a switch at this step.
func (s TutorialStep) AllowsRoleSwitch() bool {
	return s.Valid() && s >= StepSwitchGuide
}

// AllowsInput reports whether the message box accepts text at this step.
func (s TutorialStep) AllowsInput() bool {
	return s == StepSwitchGuide || s == StepComplete
}

type TutorialState struct {
	Active            bool
	CurrentStep       TutorialStep
	StepTransitioning bool
	CanSkip           bool
	OverlayVisible    bool
}

func InitialTutorialState() TutorialState {
	return TutorialState{CurrentStep: StepWelcome, CanSkip: true}
}
