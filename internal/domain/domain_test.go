package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Role
		wantErr bool
	}{
		{name: "stored seeker value", raw: "apprentice", want: RoleSeeker},
		{name: "seeker alias", raw: "seeker", want: RoleSeeker},
		{name: "stored guide value", raw: "mentor", want: RoleGuide},
		{name: "guide alias", raw: "guide", want: RoleGuide},
		{name: "unknown role", raw: "coach", wantErr: true},
		{name: "empty role", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleOther(t *testing.T) {
	assert.Equal(t, RoleGuide, RoleSeeker.Other())
	assert.Equal(t, RoleSeeker, RoleGuide.Other())
}

func TestMessageValidate(t *testing.T) {
	require.NoError(t, Message{ID: "m1", Role: RoleSeeker}.Validate())
	require.Error(t, Message{Role: RoleSeeker}.Validate())
	require.ErrorIs(t, Message{ID: "m1", Role: "coach"}.Validate(), ErrInvalidRole)
}

func TestValidateSessionsRejectsDuplicatesAndBadMessages(t *testing.T) {
	good := Session{ID: "s1", Messages: []Message{{ID: "m1", Role: RoleGuide}}}

	require.NoError(t, ValidateSessions([]Session{good}))
	require.Error(t, ValidateSessions([]Session{good, good}))
	require.Error(t, ValidateSessions([]Session{{ID: " "}}))
	require.ErrorIs(t, ValidateSessions([]Session{{
		ID:               "s2",
		TutorialMessages: []Message{{ID: "m1", Role: "nobody"}},
	}}), ErrInvalidRole)
}

func TestSessionCloneDoesNotShareMessages(t *testing.T) {
	original := Session{ID: "s1", Messages: []Message{{ID: "m1", Content: "before", Role: RoleSeeker}}}

	clone := original.Clone()
	clone.Messages[0].Content = "after"

	assert.Equal(t, "before", original.Messages[0].Content)
	assert.NotNil(t, clone.TutorialMessages)
	assert.Empty(t, clone.TutorialMessages)
}

func TestTutorialStepProgressAndNames(t *testing.T) {
	tests := []struct {
		step         TutorialStep
		name         string
		progress     float64
		allowsSwitch bool
		userSwitch   bool
		input        bool
	}{
		{step: StepWelcome, name: "WELCOME", progress: 0},
		{step: StepApprenticeDemo, name: "APPRENTICE_DEMO", progress: 1.0 / 6},
		{step: StepSwitchGuide, name: "SWITCH_GUIDE", progress: 2.0 / 6, allowsSwitch: true, userSwitch: true, input: true},
		{step: StepMentorIntro, name: "MENTOR_INTRO", progress: 3.0 / 6, allowsSwitch: true, userSwitch: true},
		{step: StepMentorDemo, name: "MENTOR_DEMO", progress: 4.0 / 6, userSwitch: true},
		{step: StepMentorResponseReview, name: "MENTOR_RESPONSE_REVIEW", progress: 5.0 / 6, userSwitch: true},
		{step: StepComplete, name: "COMPLETE", progress: 1, userSwitch: true, input: true},
		{step: TutorialStep(42), name: "UNKNOWN", progress: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.step.String())
			assert.InDelta(t, tt.progress, tt.step.Progress(), 1e-9)
			assert.Equal(t, tt.allowsSwitch, tt.step.AllowsEmptySwitch())
			assert.Equal(t, tt.userSwitch, tt.step.AllowsRoleSwitch())
			assert.Equal(t, tt.input, tt.step.AllowsInput())
		})
	}
}

func TestFrameworkCycling(t *testing.T) {
	assert.Equal(t, FrameworkSoWhat, FrameworkWhat.Next())
	assert.Equal(t, FrameworkNowWhat, FrameworkSoWhat.Next())
	assert.Equal(t, FrameworkWhat, FrameworkNowWhat.Next())
	assert.Equal(t, FrameworkWhat, Framework("WHY").Next())

	_, err := ParseFramework("what")
	require.ErrorIs(t, err, ErrInvalidFramework)
	f, err := ParseFramework("NOW_WHAT")
	require.NoError(t, err)
	assert.Equal(t, FrameworkNowWhat, f)
}

func TestMentorAssistCloneCopiesPromptLists(t *testing.T) {
	state := DefaultMentorAssistState()
	state.CustomPrompts = append(state.CustomPrompts, "what do you need?")

	clone := state.Clone()
	clone.CustomPrompts[0] = "changed"

	assert.Equal(t, "what do you need?", state.CustomPrompts[0])
	assert.True(t, state.IsEnabled)
	assert.True(t, state.ExpandedSections.FrameworkGuide)
	assert.False(t, state.ExpandedSections.QuickPrompts)
}

func TestLocaleFormatting(t *testing.T) {
	at := time.Date(2026, 3, 7, 14, 5, 9, 0, time.UTC)

	assert.Equal(t, LocaleEn, ParseLocale("EN-us"))
	assert.Equal(t, LocaleZhTW, ParseLocale("fr"))
	assert.Equal(t, "3/7/2026, 2:05:09 PM", LocaleEn.FormatTime(at))
	assert.Equal(t, "2026/3/7 下午2:05:09", LocaleZhTW.FormatTime(at))
	assert.Equal(t, "[Guide]", LocaleEn.RoleTag(RoleGuide))
	assert.Equal(t, "[學徒]", LocaleZhTW.RoleTag(RoleSeeker))
	assert.Equal(t, "Conversation 3", LocaleEn.DefaultSessionTitle(3))
	assert.Equal(t, "對話 1", LocaleZhTW.DefaultSessionTitle(1))
}

func TestLocaleCoversEveryStepAndFramework(t *testing.T) {
	for _, locale := range []Locale{LocaleZhTW, LocaleEn} {
		for step := StepWelcome; step <= LastTutorialStep; step++ {
			assert.NotEmpty(t, locale.StepTitle(step), "%s title for %s", locale, step)
			assert.NotEmpty(t, locale.StepDescription(step), "%s description for %s", locale, step)
		}
		for _, f := range Frameworks {
			guide := locale.FrameworkGuide(f)
			assert.NotEmpty(t, guide.Title, "%s guide for %s", locale, f)
			assert.NotEmpty(t, guide.Prompts, "%s prompts for %s", locale, f)
		}
		assert.NotEmpty(t, locale.QuickPrompts())
		assert.NotEmpty(t, locale.DemoMessage(RoleSeeker))
		assert.NotEmpty(t, locale.DemoMessage(RoleGuide))
	}
}
