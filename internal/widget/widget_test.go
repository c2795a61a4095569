package widget

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nationwide/internal/dto"
	"nationwide/internal/models"
	"nationwide/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func loadKB(t *testing.T) *models.KnowledgeBase {
	t.Helper()
	f, err := os.Open(filepath.Join("..", "..", "data", "knowledge.json"))
	require.NoError(t, err)
	defer f.Close()
	kb, err := repository.DecodeKnowledgeBase(f)
	require.NoError(t, err)
	return kb
}

type fakeForwarder struct {
	resp  *dto.ChatResponse
	err   error
	calls []string
}

func (f *fakeForwarder) Chat(_ context.Context, message string) (*dto.ChatResponse, error) {
	f.calls = append(f.calls, message)
	return f.resp, f.err
}

func TestReduceIsPure(t *testing.T) {
	s0 := NewState()
	require.Len(t, s0.Messages, 1)
	assert.Equal(t, Greeting, s0.Messages[0].Text)
	assert.True(t, s0.ShowSuggestions)
	assert.Equal(t, CategoryAll, s0.ActiveCategory)

	s1 := Reduce(s0, SendStarted{Text: "hi"})
	s2a := Reduce(s1, BotReplied{Text: "a"})
	s2b := Reduce(s1, BotReplied{Text: "b"})

	assert.Len(t, s0.Messages, 1)
	assert.Len(t, s1.Messages, 2)
	assert.Equal(t, "a", s2a.Messages[2].Text)
	assert.Equal(t, "b", s2b.Messages[2].Text)
	assert.True(t, s1.Loading)
	assert.False(t, s1.ShowSuggestions)
	assert.Empty(t, s1.Input)
	assert.Less(t, s1.Messages[0].ID, s1.Messages[1].ID)

	reset := Reduce(s2a, Reset{})
	assert.Len(t, reset.Messages, 1)
	assert.Greater(t, reset.Messages[0].ID, s2a.Messages[2].ID)
}

func TestMatchLocal(t *testing.T) {
	kb := loadKB(t)

	tests := []struct {
		input    string
		wantRule string
		contains string
	}{
		{"Which university partners do you have?", "universities", "Monash University"},
		{"Tell me about Australia", "universities", "Deakin University"},
		{"How do I APPLY?", "admissions", "February"},
		{"visa help", "visa", "RCIC"},
		{"Are your immigration consultants certified?", "visa", "Visa & Immigration"},
		{"what is your phone number", "contact", "+1 905-462-6465"},
		{"is it free?", "counselling", "completely free initial counselling"},
		{"RCIC registered?", "certification", "fully certified"},
		{"any funding options", "scholarship", "Scholarship Assistance"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			reply, ok := MatchLocal(kb, tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.wantRule, reply.Rule)
			assert.Contains(t, reply.Text, tt.contains)
		})
	}

	_, ok := MatchLocal(kb, "What is the weather in Toronto?")
	assert.False(t, ok)
}

func TestContactReplyListsOffices(t *testing.T) {
	reply, ok := MatchLocal(loadKB(t), "office address")
	require.True(t, ok)
	assert.Contains(t, reply.Text, "**Canada Office:**")
	assert.Contains(t, reply.Text, "**India Office:**")
	assert.Contains(t, reply.Text, "Nawanshahr")
	assert.Contains(t, reply.Text, "• Facebook\n• Instagram\n• Linkedin\n• Youtube")
}

func TestCapitalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"facebook", "Facebook"},
		{"élan", "Élan"},
		{"вконтакте", "Вконтакте"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, capitalize(tt.in))
	}
}

func TestControllerLocalAnswerSkipsProxy(t *testing.T) {
	fwd := &fakeForwarder{}
	c := NewController(loadKB(t), fwd, zap.NewNop())

	s := c.Send(context.Background(), "  partner universities  ")
	assert.Empty(t, fwd.calls)
	require.Len(t, s.Messages, 3)
	assert.Equal(t, FromUser, s.Messages[1].From)
	assert.Equal(t, "partner universities", s.Messages[1].Text)
	assert.True(t, s.ShowUniversities)
	assert.False(t, s.Loading)

	s, err := c.SelectUniversity("monash")
	require.NoError(t, err)
	assert.False(t, s.ShowUniversities)
	assert.Contains(t, s.Messages[3].Text, "**Monash University**")

	_, err = c.SelectUniversity("nowhere")
	assert.ErrorIs(t, err, ErrUnknownUniversity)
}

func TestControllerForwarding(t *testing.T) {
	kb := loadKB(t)

	tests := []struct {
		name     string
		fwd      *fakeForwarder
		contains string
	}{
		{"reply", &fakeForwarder{resp: &dto.ChatResponse{Reply: "Intakes are in July."}}, "Intakes are in July."},
		{"soft error", &fakeForwarder{resp: &dto.ChatResponse{Error: "Service is busy"}}, "having trouble connecting"},
		{"empty", &fakeForwarder{resp: &dto.ChatResponse{}}, "couldn't process your request"},
		{"unreachable", &fakeForwarder{err: errors.New("dial tcp: refused")}, "currently unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(kb, tt.fwd, zap.NewNop())
			s := c.Send(context.Background(), "What are the tuition costs?")

			assert.Equal(t, []string{"What are the tuition costs?"}, tt.fwd.calls)
			require.Len(t, s.Messages, 3)
			assert.Contains(t, s.Messages[2].Text, tt.contains)
			assert.False(t, s.Loading)
		})
	}
}

func TestCannedFailureMessages(t *testing.T) {
	kb := loadKB(t)

	trouble := troubleMessage(kb)
	assert.Contains(t, trouble, "+1 905-462-6465 / +1 647-706-0737")
	assert.Contains(t, trouble, "+91-96272-00088")
	assert.NotContains(t, trouble, "Westmore")

	unavailable := unavailableMessage(kb)
	assert.Contains(t, unavailable, "23 Westmore Drive")
	assert.Contains(t, unavailable, "+91-96272-00088")
}

func TestControllerIgnoresBlankInput(t *testing.T) {
	fwd := &fakeForwarder{}
	c := NewController(loadKB(t), fwd, zap.NewNop())

	s := c.Send(context.Background(), "   ")
	assert.Len(t, s.Messages, 1)
	assert.Empty(t, fwd.calls)
}

func TestQuickActionsAndCategories(t *testing.T) {
	assert.Len(t, QuickActions(CategoryAll), 8)
	consult := QuickActions(CategoryConsultation)
	assert.Len(t, consult, 4)
	for _, qa := range consult {
		assert.Equal(t, CategoryConsultation, qa.Category)
	}
	assert.Empty(t, QuickActions(CategoryUniversities))

	assert.Len(t, Universities(CategoryAustralia), 7)
	assert.Len(t, Universities(CategoryUniversities), 7)
	assert.Empty(t, Universities(CategoryCanada))

	c := NewController(loadKB(t), &fakeForwarder{}, zap.NewNop())
	s := c.SetCategory(CategoryVisa)
	assert.Equal(t, CategoryVisa, s.ActiveCategory)
	s = c.RunQuickAction(context.Background(), QuickActions(s.ActiveCategory)[0])
	assert.Contains(t, s.Messages[len(s.Messages)-1].Text, "Visa & Immigration")

	s = c.Clear()
	assert.Equal(t, CategoryAll, s.ActiveCategory)
	assert.Len(t, s.Messages, 1)
}

func TestRender(t *testing.T) {
	text := "**Hi** <b>there</b>\nline two"

	assert.Equal(t, "<strong>Hi</strong> &lt;b&gt;there&lt;/b&gt;<br>line two", RenderHTML(text))
	assert.Equal(t, "\x1b[1mHi\x1b[0m <b>there</b>\nline two", RenderANSI(text))
	assert.Equal(t, "Hi <b>there</b>\nline two", RenderPlain(text))

	s := Reduce(Reduce(NewState(), SendStarted{Text: "**q**"}), BotReplied{Text: "a"})
	lines := Transcript(s, RenderPlain)
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Hello! Welcome"))
	assert.Equal(t, []string{"q", "a"}, lines[1:])
}
