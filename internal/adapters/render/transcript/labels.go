package transcript

import "github.com/bnema/dear-my-friend/internal/domain"

type labels struct {
	sessions       string
	role           string
	noMessages     string
	noSessions     string
	editing        string
	switchingTo    string
	paused         string
	skipHint       string
	returnHint     string
	tutorialStep   string
	tutorialHint   string
	assistOn       string
	assistOff      string
	customPrompts  string
	recentPrompts  string
	quickPrompts   string
	messagesSuffix string
}

var labelsEn = labels{
	sessions:       "sessions",
	role:           "speaking as",
	noMessages:     "No messages yet. Say what is on your mind.",
	noSessions:     "No sessions.",
	editing:        "(editing)",
	switchingTo:    "switching to %s in %ss",
	paused:         "paused",
	skipHint:       "ctrl+s to skip",
	returnHint:     "ctrl+r to return to the tutorial",
	tutorialStep:   "step %d/%d",
	tutorialHint:   "enter: next  esc: skip tutorial",
	assistOn:       "mentor assist: on",
	assistOff:      "mentor assist: off",
	customPrompts:  "custom prompts",
	recentPrompts:  "recent prompts",
	quickPrompts:   "quick prompts",
	messagesSuffix: "messages",
}

var labelsZh = labels{
	sessions:       "對話數",
	role:           "目前身分",
	noMessages:     "還沒有訊息，說說你的心事吧。",
	noSessions:     "沒有對話。",
	editing:        "(編輯中)",
	switchingTo:    "%[2]s 秒後切換為%[1]s",
	paused:         "已暫停",
	skipHint:       "ctrl+s 跳過",
	returnHint:     "ctrl+r 回到教學",
	tutorialStep:   "步驟 %d/%d",
	tutorialHint:   "enter：下一步  esc：跳過教學",
	assistOn:       "導師助手：開啟",
	assistOff:      "導師助手：關閉",
	customPrompts:  "自訂提示",
	recentPrompts:  "最近使用",
	quickPrompts:   "快速提示",
	messagesSuffix: "則訊息",
}

func labelsFor(locale domain.Locale) labels {
	if locale == domain.LocaleEn {
		return labelsEn
	}
	return labelsZh
}
