package application

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/bnema/dear-my-friend/internal/ports/fakes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConversation() *ConversationStore {
	return NewConversationStore(&fakes.SequentialIDs{Prefix: "m"}, fakes.NewManualClock(testStart), domain.LocaleZhTW)
}

func TestConversationSendMessageGrowsByOneOrZero(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		grows   int
	}{
		{content: "hello", grows: 1},
		{content: "  padded  ", grows: 1},
		{content: "  ", grows: 0},
		{content: "", grows: 0},
		{content: "\n\t", grows: 0},
	}

	store := newConversation()
	for _, tt := range tests {
		before := len(store.ActiveMessages())
		store.SendMessage(tt.content, domain.RoleSeeker)
		assert.Equal(t, before+tt.grows, len(store.ActiveMessages()), "content %q", tt.content)
	}

	messages := store.ActiveMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, "padded", messages[1].Content)
	assert.Equal(t, testStart.UnixMilli(), messages[0].Timestamp)
	assert.NotEqual(t, messages[0].ID, messages[1].ID)
}

func TestConversationAtMostOneMessageEditing(t *testing.T) {
	t.Parallel()

	store := newConversation()
	for i := 0; i < 4; i++ {
		store.SendMessage("message", domain.RoleSeeker)
	}
	ids := []string{"m-2", "m-4", "m-1", "m-1", "m-3", "missing"}

	for _, id := range ids {
		store.StartEditMessage(id)
		editing := 0
		for _, m := range store.ActiveMessages() {
			if m.IsEditing {
				editing++
			}
		}
		assert.LessOrEqual(t, editing, 1, "after starting edit on %s", id)
	}
}

func TestConversationEditMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
		changed bool
	}{
		{name: "new content replaces", content: "  revised ", want: "revised", changed: true},
		{name: "blank content cancels", content: "   ", want: "original"},
		{name: "same content cancels", content: "original", want: "original"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newConversation()
			sent, ok := store.SendMessage("original", domain.RoleGuide)
			require.True(t, ok)
			store.StartEditMessage(sent.ID)

			changed := store.EditMessage(sent.ID, tt.content)

			got := store.ActiveMessages()[0]
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.want, got.Content)
			assert.False(t, got.IsEditing)
		})
	}
}

func TestConversationCancelEditKeepsContent(t *testing.T) {
	t.Parallel()

	store := newConversation()
	sent, _ := store.SendMessage("keep me", domain.RoleSeeker)
	store.StartEditMessage(sent.ID)

	store.CancelEditMessage(sent.ID)

	got := store.ActiveMessages()[0]
	assert.False(t, got.IsEditing)
	assert.Equal(t, "keep me", got.Content)
}

func TestConversationDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newConversation()
	sent, _ := store.SendMessage("bye", domain.RoleSeeker)

	assert.True(t, store.DeleteMessage(sent.ID))
	assert.False(t, store.DeleteMessage(sent.ID))
	assert.Empty(t, store.ActiveMessages())
}

func TestConversationModesKeepSeparateLists(t *testing.T) {
	t.Parallel()

	store := newConversation()
	store.SendMessage("normal", domain.RoleSeeker)
	store.SwitchToTutorialMode()
	store.SendMessage("tutorial", domain.RoleSeeker)
	store.SendMessage("tutorial 2", domain.RoleGuide)

	assert.True(t, store.IsTutorialMode())
	assert.Len(t, store.ActiveMessages(), 2)

	store.ClearMessages()
	assert.Empty(t, store.TutorialMessages())
	assert.Len(t, store.Messages(), 1)

	store.SwitchToNormalMode()
	assert.Len(t, store.ActiveMessages(), 1)
}

func TestConversationLoadSessionMessagesReplaces(t *testing.T) {
	t.Parallel()

	store := newConversation()
	store.SendMessage("stale", domain.RoleSeeker)

	normal := []domain.Message{message("a", domain.RoleSeeker, 1)}
	store.LoadSessionMessages(normal, nil)
	normal[0].Content = "mutated by caller"

	got, tutorial := store.MessagesForSession()
	require.Len(t, got, 1)
	assert.Equal(t, "content a", got[0].Content)
	assert.NotNil(t, tutorial)
	assert.Empty(t, tutorial)
}

func TestExportEmptyListReturnsEmptyString(t *testing.T) {
	t.Parallel()

	store := newConversation()
	for _, format := range []ExportFormat{ExportMarkdown, ExportText} {
		out, err := store.ExportMessages(format)
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}

func TestExportTextHasOneRoleTagPerMessage(t *testing.T) {
	t.Parallel()

	store := newConversation()
	for i := 0; i < 3; i++ {
		store.SendMessage("question", domain.RoleSeeker)
		store.SendMessage("answer", domain.RoleGuide)
	}

	out, err := store.ExportMessages(ExportText)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Dear My Friend - 對話記錄 (一般模式)\n匯出時間: "))
	assert.Equal(t, 3, strings.Count(out, "[學徒]"))
	assert.Equal(t, 3, strings.Count(out, "[導師]"))
	assert.True(t, strings.HasSuffix(out, "answer\n\n"))
}

func TestExportMarkdownLayout(t *testing.T) {
	t.Parallel()

	store := newConversation()
	store.SwitchToTutorialMode()
	store.SendMessage("first", domain.RoleSeeker)
	store.SendMessage("second", domain.RoleGuide)

	out, err := store.ExportMessages(ExportMarkdown)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Dear My Friend - 對話記錄 (教學模式)\n\n匯出時間: "))
	assert.Contains(t, out, "## 🧑‍🎓 學徒 - ")
	assert.Contains(t, out, "\n\nfirst\n\n---\n\n## 🎓 導師 - ")
	assert.True(t, strings.HasSuffix(out, "second\n\n---\n"))
}

func TestExportEnglishLabels(t *testing.T) {
	t.Parallel()

	store := NewConversationStore(&fakes.SequentialIDs{}, fakes.NewManualClock(time.Date(2026, 1, 2, 15, 4, 5, 0, time.Local)), domain.LocaleEn)
	store.SendMessage("hi", domain.RoleSeeker)

	out, err := store.ExportMessages(ExportText)
	require.NoError(t, err)

	assert.Equal(t, "Dear My Friend - Conversation Log (normal mode)\nExported at: 1/2/2026, 3:04:05 PM\n\n[Seeker] 1/2/2026, 3:04:05 PM\nhi\n\n", out)
}

func TestParseExportFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    ExportFormat
		wantErr bool
	}{
		{raw: "markdown", want: ExportMarkdown},
		{raw: "MD", want: ExportMarkdown},
		{raw: "", want: ExportMarkdown},
		{raw: "text", want: ExportText},
		{raw: "txt", want: ExportText},
		{raw: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseExportFormat(tt.raw)
		if tt.wantErr {
			require.ErrorIs(t, err, domain.ErrInvalidFormat)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
