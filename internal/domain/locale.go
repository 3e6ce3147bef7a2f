package domain

import (
	"fmt"
	"strings"
	"time"
)

type Locale string

const (
	LocaleZhTW Locale = "zh-TW"
	LocaleEn   Locale = "en"
)

func ParseLocale(raw string) Locale {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "en", "en-us", "en_us", "en-gb":
		return LocaleEn
	default:
		return LocaleZhTW
	}
}

func (l Locale) RoleLabel(role Role) string {
	if l == LocaleEn {
		if role == RoleGuide {
			return "Guide"
		}
		return "Seeker"
	}
	if role == RoleGuide {
		return "導師"
	}
	return "學徒"
}

// RoleHeading is the emoji-prefixed label used in markdown transcripts.
func (l Locale) RoleHeading(role Role) string {
	if role == RoleGuide {
		return "🎓 " + l.RoleLabel(role)
	}
	return "🧑‍🎓 " + l.RoleLabel(role)
}

// RoleTag is the bracketed label used in plain-text transcripts.
func (l Locale) RoleTag(role Role) string {
	return "[" + l.RoleLabel(role) + "]"
}

func (l Locale) DefaultSessionTitle(n int) string {
	if l == LocaleEn {
		return fmt.Sprintf("Conversation %d", n)
	}
	return fmt.Sprintf("對話 %d", n)
}

func (l Locale) ModeLabel(tutorial bool) string {
	switch {
	case l == LocaleEn && tutorial:
		return "tutorial mode"
	case l == LocaleEn:
		return "normal mode"
	case tutorial:
		return "教學模式"
	default:
		return "一般模式"
	}
}

func (l Locale) TranscriptTitle(tutorial bool) string {
	if l == LocaleEn {
		return fmt.Sprintf("Dear My Friend - Conversation Log (%s)", l.ModeLabel(tutorial))
	}
	return fmt.Sprintf("Dear My Friend - 對話記錄 (%s)", l.ModeLabel(tutorial))
}

func (l Locale) ExportedAtLabel() string {
	if l == LocaleEn {
		return "Exported at"
	}
	return "匯出時間"
}

// FormatTime renders a timestamp the way the browser's toLocaleString does for the locale.
func (l Locale) FormatTime(t time.Time) string {
	if l == LocaleEn {
		return t.Format("1/2/2006, 3:04:05 PM")
	}
	meridiem := "上午"
	if t.Hour() >= 12 {
		meridiem = "下午"
	}
	return t.Format("2006/1/2 ") + meridiem + t.Format("3:04:05")
}

func (l Locale) StepTitle(step TutorialStep) string {
	titles := tutorialTitlesZh
	if l == LocaleEn {
		titles = tutorialTitlesEn
	}
	title, ok := titles[step]
	if !ok {
		return ""
	}
	return title
}

func (l Locale) StepDescription(step TutorialStep) string {
	descriptions := tutorialDescriptionsZh
	if l == LocaleEn {
		descriptions = tutorialDescriptionsEn
	}
	return descriptions[step]
}

func (l Locale) DemoMessage(role Role) string {
	if l == LocaleEn {
		if role == RoleGuide {
			return demoGuideEn
		}
		return demoSeekerEn
	}
	if role == RoleGuide {
		return demoGuideZh
	}
	return demoSeekerZh
}

func (l Locale) FrameworkGuide(f Framework) FrameworkGuide {
	guides := frameworkGuidesZh
	if l == LocaleEn {
		guides = frameworkGuidesEn
	}
	return guides[f]
}

func (l Locale) QuickPrompts() []string {
	if l == LocaleEn {
		return append([]string{}, quickPromptsEn...)
	}
	return append([]string{}, quickPromptsZh...)
}

var tutorialTitlesZh = map[TutorialStep]string{
	StepWelcome:              "歡迎使用 Dear My Friend",
	StepApprenticeDemo:       "學徒視角 - 表達困擾",
	StepSwitchGuide:          "視角切換 - 轉換思維",
	StepMentorIntro:          "導師視角 - 客觀分析",
	StepMentorDemo:           "導師回應 - 提供建議",
	StepMentorResponseReview: "查看導師回應",
	StepComplete:             "教學完成",
}

var tutorialTitlesEn = map[TutorialStep]string{
	StepWelcome:              "Welcome to Dear My Friend",
	StepApprenticeDemo:       "Seeker view - voice the problem",
	StepSwitchGuide:          "Switching views - change your mindset",
	StepMentorIntro:          "Guide view - step back and analyse",
	StepMentorDemo:           "Guide reply - offer advice",
	StepMentorResponseReview: "Review the guide's reply",
	StepComplete:             "Tutorial complete",
}

var tutorialDescriptionsZh = map[TutorialStep]string{
	StepWelcome:              "這是一個透過角色視角切換來幫助您解決問題的對話工具。接下來將透過實際示範介紹如何使用。",
	StepApprenticeDemo:       "在學徒視角下，您可以真實地表達內心的困惑。發送示範訊息後，閱讀完再回到教學。",
	StepSwitchGuide:          "請切換到導師視角。倒數計時的緩衝幫助您從「當局者」轉換為「旁觀者」。",
	StepMentorIntro:          "現在是導師視角，把學徒當成好朋友來回答，客觀地審視情況。",
	StepMentorDemo:           "觀察導師如何分析問題並提供建議。發送示範回應後，閱讀完再回到教學。",
	StepMentorResponseReview: "用面對朋友訴苦的視角給自己建議，你也可以成為自己的智慧導師。",
	StepComplete:             "您已完成教學，開始與自己對話吧！",
}

var tutorialDescriptionsEn = map[TutorialStep]string{
	StepWelcome:              "This tool helps you work through problems by switching between two roles. A short demo follows.",
	StepApprenticeDemo:       "As the seeker you voice what troubles you. Send the demo message, read it, then return to the tutorial.",
	StepSwitchGuide:          "Switch to the guide view. The countdown helps you move from participant to observer.",
	StepMentorIntro:          "You are now the guide: answer the seeker as you would a close friend.",
	StepMentorDemo:           "Watch how the guide analyses the problem. Send the demo reply, read it, then return to the tutorial.",
	StepMentorResponseReview: "Advise yourself the way you would advise a friend; you can be your own mentor.",
	StepComplete:             "You finished the tutorial. Start your own dialogue!",
}

const (
	demoSeekerZh = "我在新專案中被指派為團隊負責人，但我從來沒有管理經驗，現在團隊成員都比我資深，我不知道該如何建立公信力，也擔心自己做不好會讓大家失望..."
	demoGuideZh  = "親愛的朋友，我能感受到你內心的焦慮和壓力，這種感覺很正常，每個人第一次承擔新責任時都會有這樣的擔憂。讓我陪你一起看看這個挑戰：首先，你被選為負責人一定有原因，公司看到了你的潛力。關於建立權威，其實真正的領導力不是來自職位，而是來自你的專業能力、同理心和為團隊服務的態度。不如我們先從了解每位團隊成員的強項開始，讓他們感受到你的重視，這樣既能學習他們的經驗，也能建立信任基礎。你覺得這個方向如何？"
	demoSeekerEn = "I was just made team lead on a new project, but I have never managed anyone and everyone on the team is more senior than me. I don't know how to earn their trust, and I'm afraid of letting them down..."
	demoGuideEn  = "Dear friend, I can feel how anxious this makes you, and that is completely normal the first time you take on a new responsibility. You were chosen for a reason. Real leadership comes less from a title than from competence, empathy and serving the team. Why not start by learning each teammate's strengths so they feel valued? You will learn from their experience and build trust at the same time. How does that direction feel to you?"
)

var quickPromptsZh = []string{
	"我理解你現在的感受...",
	"讓我們換個角度來看這件事。",
	"聽起來這對你很重要。",
	"我想先了解一下...",
	"這確實是個值得思考的問題。",
	"或許我們可以這樣思考：",
	"我覺得你提到的重點是...",
	"從你的描述中，我注意到...",
}

var quickPromptsEn = []string{
	"I understand how you feel right now...",
	"Let's look at this from another angle.",
	"It sounds like this really matters to you.",
	"First I'd like to understand...",
	"This is genuinely worth thinking about.",
	"Maybe we could think about it this way:",
	"What I hear as the key point is...",
	"From what you describe, I notice...",
}

var frameworkGuidesZh = map[Framework]FrameworkGuide{
	FrameworkWhat: {
		Title:       "現況釐清",
		Description: "客觀分析問題的具體情況",
		Prompts: []string{
			"具體發生了什麼事？請客觀描述事實。",
			"這個問題涉及哪些關鍵人物？他們各自的立場是什麼？",
			"問題的核心癥結點在哪裡？",
			"這個情況從什麼時候開始的？有什麼變化？",
			"有哪些可以量化或具體描述的資訊？",
		},
		Placeholder: "試著客觀描述目前的情況...",
	},
	FrameworkSoWhat: {
		Title:       "意義洞察",
		Description: "深入探索問題的重要性和影響",
		Prompts: []string{
			"為什麼這個問題對你來說很重要？它觸及了什麼核心價值？",
			"如果不解決這個問題，會對你的生活或目標產生什麼影響？",
			"這個經歷反映了你內在的什麼需求或恐懼？",
			"回顧過去，你是否有類似的模式或經驗？",
			"這個挑戰可能在教會你什麼重要的人生課題？",
		},
		Placeholder: "思考這個問題對你的深層意義...",
	},
	FrameworkNowWhat: {
		Title:       "行動建議",
		Description: "制定具體可執行的行動方案",
		Prompts: []string{
			"基於前面的分析，你認為最關鍵的第一步行動是什麼？",
			"你需要哪些具體的資源、技能或人脈支持？",
			"如何將這個複雜問題分解成可管理的小步驟？",
			"什麼時間點開始行動最合適？如何設定里程碑？",
			"如何建立持續追蹤進度和調整策略的機制？",
		},
		Placeholder: "想想具體可行的行動計畫...",
	},
}

var frameworkGuidesEn = map[Framework]FrameworkGuide{
	FrameworkWhat: {
		Title:       "What happened",
		Description: "Describe the situation objectively",
		Prompts: []string{
			"What exactly happened? Describe the facts.",
			"Who is involved, and where does each of them stand?",
			"Where is the real sticking point?",
			"When did this start, and what has changed since?",
			"What can be measured or described concretely?",
		},
		Placeholder: "Try to describe the situation objectively...",
	},
	FrameworkSoWhat: {
		Title:       "So what",
		Description: "Explore why it matters and what it affects",
		Prompts: []string{
			"Why does this matter to you? Which value does it touch?",
			"What happens to your life or goals if it stays unresolved?",
			"Which need or fear does this experience reveal?",
			"Have you seen a similar pattern before?",
			"What might this challenge be teaching you?",
		},
		Placeholder: "Think about what this means to you...",
	},
	FrameworkNowWhat: {
		Title:       "Now what",
		Description: "Turn insight into concrete actions",
		Prompts: []string{
			"Given all that, what is the single most important first step?",
			"Which resources, skills or people do you need?",
			"How can the problem be split into manageable steps?",
			"When is the right moment to start, and what are the milestones?",
			"How will you track progress and adjust?",
		},
		Placeholder: "Sketch a concrete plan of action...",
	},
}
