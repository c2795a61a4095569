package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"nationwide/internal/dto"
	"nationwide/internal/models"
	"nationwide/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticKnowledge struct {
	kb  *models.KnowledgeBase
	err error
}

func (s staticKnowledge) Get(context.Context) (*models.KnowledgeBase, error) {
	return s.kb, s.err
}

func testKnowledge() *models.KnowledgeBase {
	kb := &models.KnowledgeBase{
		InstituteName: "Nationwide",
		Contact: models.Contact{
			Offices: []models.Office{
				{Country: "Canada", Address: "Brampton, ON", Phone: []string{"+1 905-462-6465"}},
				{Country: "India", Address: "Coimbatore", Phone: []string{"+91-96272-00088"}},
			},
			Email:   "info@nationwide.example",
			Website: "https://nationwide.example",
		},
	}
	_ = kb.Validate()
	return kb
}

// geminiStub answers generateContent and list calls from per-path tables and records every call.
type geminiStub struct {
	mu       sync.Mutex
	calls    []string
	statuses map[string]int           // "v1/gemini-2.0-flash" -> status
	models   map[string][]ModelInfo   // "v1" -> listing
	hang     map[string]time.Duration // generateContent paths that stall
	notFound map[string]int           // 404s served on a path before its status applies
	reply    string
}

func (g *geminiStub) handler(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	version, rest, _ := strings.Cut(path, "/")

	if r.Method == http.MethodGet && rest == "models" {
		g.record("list " + version)
		list, ok := g.models[version]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var b strings.Builder
		b.WriteString(`{"models":[`)
		for i, m := range list {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, `{"name":%q,"supportedGenerationMethods":["%s"]}`, m.Name, strings.Join(m.SupportedGenerationMethods, `","`))
		}
		b.WriteString("]}")
		_, _ = w.Write([]byte(b.String()))
		return
	}

	model := strings.TrimSuffix(strings.TrimPrefix(rest, "models/"), ":generateContent")
	key := version + "/" + model
	g.record(key)

	if d, ok := g.hang[key]; ok {
		select {
		case <-time.After(d):
		case <-r.Context().Done():
			return
		}
	}
	status, ok := g.statuses[key]
	if !ok || g.takeNotFound(key) {
		status = http.StatusNotFound
	}
	w.WriteHeader(status)
	if status == http.StatusOK {
		fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, g.reply)
		return
	}
	_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
}

func (g *geminiStub) record(call string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, call)
}

func (g *geminiStub) takeNotFound(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.notFound[key] == 0 {
		return false
	}
	g.notFound[key]--
	return true
}

func (g *geminiStub) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

func newTestChatService(t *testing.T, stub *geminiStub, mutate func(*config.GeminiConfig)) *ChatService {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(stub.handler))
	t.Cleanup(server.Close)

	cfg := &config.GeminiConfig{
		APIKey:            "test-key",
		Model:             "gemini-2.0-flash",
		BaseURL:           server.URL,
		CompletionTimeout: 2 * time.Second,
		ListTimeout:       time.Second,
	}
	if mutate != nil {
		mutate(cfg)
	}
	llm := NewLLMService(cfg, server.Client(), zap.NewNop())
	svc := NewChatService(staticKnowledge{kb: testKnowledge()}, llm, cfg, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC) }
	return svc
}

func TestChatService_Validation(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		apiKey    string
		knowledge KnowledgeSource
		wantErr   error
	}{
		{"empty", "", "k", nil, ErrInvalidInput},
		{"whitespace", "  \n\t ", "k", nil, ErrInvalidInput},
		{"too long", strings.Repeat("a", MaxMessageLength+1), "k", nil, ErrMessageTooLong},
		{"too long beats missing key", strings.Repeat("a", MaxMessageLength+1), "", nil, ErrMessageTooLong},
		{"missing key", "hello", "", nil, ErrServiceUnavailable},
		{"knowledge failure", "hello", "k", staticKnowledge{err: errors.New("disk")}, ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			knowledge := tt.knowledge
			if knowledge == nil {
				knowledge = staticKnowledge{kb: testKnowledge()}
			}
			svc := NewChatService(knowledge, nil, &config.GeminiConfig{APIKey: tt.apiKey, Model: "gemini-2.0-flash"}, zap.NewNop())

			resp, err := svc.Reply(context.Background(), dto.ChatRequest{Message: tt.message})
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestChatService_LengthCountsCharacters(t *testing.T) {
	stub := &geminiStub{statuses: map[string]int{"v1/gemini-2.0-flash": http.StatusOK}, reply: "ok"}
	svc := newTestChatService(t, stub, nil)

	resp, err := svc.Reply(context.Background(), dto.ChatRequest{Message: strings.Repeat("é", MaxMessageLength)})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Reply)
}

func TestChatService_PrimarySuccess(t *testing.T) {
	stub := &geminiStub{statuses: map[string]int{"v1/gemini-2.0-flash": http.StatusOK}, reply: "Hello from **Nationwide**"}
	svc := newTestChatService(t, stub, nil)

	resp, err := svc.Reply(context.Background(), dto.ChatRequest{Message: "hi", ConversationID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "Hello from **Nationwide**", resp.Reply)
	require.NotNil(t, resp.Metadata)
	assert.Equal(t, "gemini-2.0-flash", resp.Metadata.Model)
	assert.Equal(t, "v1", resp.Metadata.APIVersion)
	assert.Equal(t, "2025-03-01T10:30:00.000Z", resp.Metadata.Timestamp)
	require.NotNil(t, resp.Metadata.ConversationID)
	assert.Equal(t, "abc", *resp.Metadata.ConversationID)
	assert.Empty(t, resp.Error)
	assert.Equal(t, []string{"v1/gemini-2.0-flash"}, stub.Calls())
}

func TestChatService_MissingTextUsesCannedReply(t *testing.T) {
	stub := &geminiStub{statuses: map[string]int{"v1/gemini-2.0-flash": http.StatusOK}, reply: ""}
	svc := newTestChatService(t, stub, nil)

	resp, err := svc.Reply(context.Background(), dto.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Contains(t, resp.Reply, "+1 905-462-6465")
	assert.Contains(t, resp.Reply, "+91-96272-00088")
	assert.Contains(t, resp.Reply, "info@nationwide.example")
	assert.Nil(t, resp.Metadata.ConversationID)
}

func TestChatService_LatestFallbackStopsLadder(t *testing.T) {
	stub := &geminiStub{statuses: map[string]int{"v1/gemini-2.0-flash-latest": http.StatusOK}, reply: "from latest"}
	svc := newTestChatService(t, stub, nil)

	resp, err := svc.Reply(context.Background(), dto.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "from latest", resp.Reply)
	assert.Equal(t, "gemini-2.0-flash-latest", resp.Metadata.Model)
	assert.Equal(t, []string{"v1/gemini-2.0-flash", "v1/gemini-2.0-flash-latest"}, stub.Calls())
}

func TestChatService_LadderOrder(t *testing.T) {
	stub := &geminiStub{
		models: map[string][]ModelInfo{
			"v1beta": {{Name: "models/gemini-2.0-flash-001", SupportedGenerationMethods: []string{"generateContent"}}},
		},
		statuses: map[string]int{"v1beta/gemini-2.0-flash-001": http.StatusOK},
		reply:    "discovered",
	}
	svc := newTestChatService(t, stub, nil)

	resp, err := svc.Reply(context.Background(), dto.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "discovered", resp.Reply)
	assert.Equal(t, "v1beta", resp.Metadata.APIVersion)
	assert.Equal(t, []string{
		"v1/gemini-2.0-flash",
		"v1/gemini-2.0-flash-latest",
		"v1beta/gemini-2.0-flash",
		"v1/gemini-1.5-flash-latest",
		"v1beta/gemini-1.0-pro-latest",
		"list v1",
		"list v1beta",
		"v1beta/gemini-2.0-flash-001",
	}, stub.Calls())
}

func TestChatService_ListingPrefersExactModel(t *testing.T) {
	gen := []string{"generateContent"}
	stub := &geminiStub{
		models: map[string][]ModelInfo{
			"v1": {
				{Name: "models/gemini-1.0-pro", SupportedGenerationMethods: gen},
				{Name: "models/gemini-2.0-flash-lite", SupportedGenerationMethods: gen},
				{Name: "models/gemini-2.0-flash", SupportedGenerationMethods: gen},
			},
		},
		statuses: map[string]int{"v1/gemini-2.0-flash": http.StatusOK},
		notFound: map[string]int{"v1/gemini-2.0-flash": 1},
		reply:    "exact",
	}
	svc := newTestChatService(t, stub, nil)

	resp, err := svc.Reply(context.Background(), dto.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "exact", resp.Reply)
	assert.Equal(t, "gemini-2.0-flash", resp.Metadata.Model)
	calls := stub.Calls()
	assert.Equal(t, []string{"list v1", "v1/gemini-2.0-flash"}, calls[len(calls)-2:])
}

func TestChatService_ListingPrefersFamilyModel(t *testing.T) {
	gen := []string{"generateContent"}
	stub := &geminiStub{
		models: map[string][]ModelInfo{
			"v1": {
				{Name: "models/gemini-1.0-pro-001", SupportedGenerationMethods: gen},
				{Name: "models/gemini-2.0-flashx", SupportedGenerationMethods: gen},
				{Name: "models/gemini-2.0-flash-001", SupportedGenerationMethods: gen},
			},
		},
		statuses: map[string]int{
			"v1/gemini-1.0-pro-001":   http.StatusOK,
			"v1/gemini-2.0-flash-001": http.StatusOK,
		},
		reply: "family",
	}
	svc := newTestChatService(t, stub, nil)

	resp, err := svc.Reply(context.Background(), dto.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash-001", resp.Metadata.Model)
	assert.Equal(t, "v1", resp.Metadata.APIVersion)
}

func TestChatService_AllFallbacksFail(t *testing.T) {
	stub := &geminiStub{}
	svc := newTestChatService(t, stub, nil)

	resp, err := svc.Reply(context.Background(), dto.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Empty(t, resp.Reply)
	assert.Equal(t, "I'm having trouble processing your request right now", resp.Error)
	require.NotNil(t, resp.Contact)
	assert.Len(t, resp.Contact.Offices, 2)
}

func TestChatService_UpstreamStatusMessages(t *testing.T) {
	tests := []struct {
		status    int
		wantError string
	}{
		{http.StatusTooManyRequests, "Service is busy"},
		{http.StatusForbidden, "Service temporarily unavailable"},
		{http.StatusInternalServerError, "I'm having trouble processing your request right now"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			stub := &geminiStub{statuses: map[string]int{"v1/gemini-2.0-flash": tt.status}}
			svc := newTestChatService(t, stub, nil)

			resp, err := svc.Reply(context.Background(), dto.ChatRequest{Message: "hi"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantError, resp.Error)
			assert.NotEmpty(t, resp.Suggestion)
			assert.NotNil(t, resp.Contact)
			assert.Len(t, stub.Calls(), 1, "only a 404 starts the ladder")
		})
	}
}

func TestChatService_HangingStepTimesOut(t *testing.T) {
	stub := &geminiStub{
		hang:     map[string]time.Duration{"v1/gemini-2.0-flash-latest": 5 * time.Second},
		statuses: map[string]int{"v1beta/gemini-2.0-flash": http.StatusOK},
		reply:    "after timeout",
	}
	svc := newTestChatService(t, stub, func(cfg *config.GeminiConfig) {
		cfg.CompletionTimeout = 100 * time.Millisecond
	})

	start := time.Now()
	resp, err := svc.Reply(context.Background(), dto.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
	assert.Equal(t, "after timeout", resp.Reply)
	assert.Equal(t, "v1beta", resp.Metadata.APIVersion)
}

func TestChatService_VersionOverride(t *testing.T) {
	stub := &geminiStub{statuses: map[string]int{"v1beta/gemini-2.0-flash": http.StatusOK}, reply: "ok"}
	svc := newTestChatService(t, stub, func(cfg *config.GeminiConfig) { cfg.APIVersion = "v1beta" })

	resp, err := svc.Reply(context.Background(), dto.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "v1beta", resp.Metadata.APIVersion)
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		model, override    string
		wantModel, wantVer string
	}{
		{"gemini-pro", "", "gemini-1.0-pro", "v1beta"},
		{"gemini-2.0-flash", "", "gemini-2.0-flash", "v1"},
		{"gemini-1.5-flash", "", "gemini-1.5-flash", "v1"},
		{"gemini-1.0-pro", "", "gemini-1.0-pro", "v1beta"},
		{"gemini-exp-1206", "", "gemini-exp-1206", "v1"},
		{"gemini-pro", "v1", "gemini-pro", "v1"},
	}
	for _, tt := range tests {
		t.Run(tt.model+"/"+tt.override, func(t *testing.T) {
			model, version := ResolveModel(tt.model, tt.override)
			assert.Equal(t, tt.wantModel, model)
			assert.Equal(t, tt.wantVer, version)
		})
	}
}

func TestPickClosestModel(t *testing.T) {
	gen := []string{"generateContent"}
	embed := []string{"embedContent"}

	tests := []struct {
		name      string
		available []ModelInfo
		desired   string
		want      string
	}{
		{
			name: "exact beats family regardless of order",
			available: []ModelInfo{
				{Name: "models/gemini-1.5-flash-8b", SupportedGenerationMethods: gen},
				{Name: "models/gemini-1.5-flash", SupportedGenerationMethods: gen},
			},
			desired: "gemini-1.5-flash",
			want:    "gemini-1.5-flash",
		},
		{
			name: "latest variant",
			available: []ModelInfo{
				{Name: "models/gemini-1.5-flash-002", SupportedGenerationMethods: gen},
				{Name: "models/gemini-1.5-flash-latest", SupportedGenerationMethods: gen},
			},
			desired: "gemini-1.5-flash",
			want:    "gemini-1.5-flash-latest",
		},
		{
			name: "family in list order",
			available: []ModelInfo{
				{Name: "models/gemini-1.0-pro-001", SupportedGenerationMethods: gen},
				{Name: "models/gemini-2.0-flash-001", SupportedGenerationMethods: gen},
				{Name: "models/gemini-2.0-flash-lite", SupportedGenerationMethods: gen},
			},
			desired: "gemini-2.0-flash",
			want:    "gemini-2.0-flash-001",
		},
		{
			name: "family needs whole tokens",
			available: []ModelInfo{
				{Name: "models/gemini-2.0-flashx", SupportedGenerationMethods: gen},
				{Name: "models/gemini-2.0-flash-lite", SupportedGenerationMethods: gen},
			},
			desired: "gemini-2.0-flash",
			want:    "gemini-2.0-flash-lite",
		},
		{
			name: "exact listed after family",
			available: []ModelInfo{
				{Name: "models/gemini-2.0-flash-lite", SupportedGenerationMethods: gen},
				{Name: "models/gemini-2.0-flash", SupportedGenerationMethods: gen},
			},
			desired: "gemini-2.0-flash",
			want:    "gemini-2.0-flash",
		},
		{
			name: "exact match must generate",
			available: []ModelInfo{
				{Name: "models/gemini-2.0-flash", SupportedGenerationMethods: embed},
				{Name: "models/gemini-1.0-pro", SupportedGenerationMethods: gen},
			},
			desired: "gemini-2.0-flash",
			want:    "gemini-1.0-pro",
		},
		{
			name:      "nothing generates",
			available: []ModelInfo{{Name: "models/text-embedding-004", SupportedGenerationMethods: embed}},
			desired:   "gemini-2.0-flash",
			want:      "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PickClosestModel(tt.available, tt.desired))
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(testKnowledge(), "Which universities do you partner with?")
	require.NoError(t, err)
	assert.Contains(t, prompt, `"instituteName": "Nationwide"`)
	assert.Contains(t, prompt, "+1 905-462-6465")
	assert.Contains(t, prompt, "Which universities do you partner with?")
}

func TestGenericFailure_DefaultContact(t *testing.T) {
	resp := GenericFailure(nil)
	assert.Equal(t, "Something went wrong on our end", resp.Error)
	require.NotNil(t, resp.Contact)
	assert.NotEmpty(t, resp.Contact.Phone)
}

func TestUpstreamError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, &UpstreamError{Status: http.StatusNotFound}, ErrUpstreamModelNotFound)
	assert.ErrorIs(t, &UpstreamError{Status: http.StatusRequestTimeout}, ErrRequestTimeout)
	assert.ErrorIs(t, &UpstreamError{Status: http.StatusBadGateway}, ErrUpstreamGenericFailure)
}
