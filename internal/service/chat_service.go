package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"nationwide/internal/dto"
	"nationwide/internal/models"
	"nationwide/pkg/config"

	"go.uber.org/zap"
)

const (
	MaxMessageLength = 1000

	apiV1     = "v1"
	apiV1Beta = "v1beta"
)

// knownModels maps model names to the API version that serves them.
var knownModels = map[string]struct{ model, version string }{
	"gemini-pro":       {"gemini-1.0-pro", apiV1Beta},
	"gemini-2.0-flash": {"gemini-2.0-flash", apiV1},
	"gemini-1.5-flash": {"gemini-1.5-flash", apiV1},
	"gemini-1.0-pro":   {"gemini-1.0-pro", apiV1Beta},
}

// Used when the knowledge base itself cannot be read.
var defaultContact = models.Contact{
	Phone: []string{"+1 905-462-6465", "+91-96272-00088"},
}

// KnowledgeSource provides the current knowledge base.
type KnowledgeSource interface {
	Get(ctx context.Context) (*models.KnowledgeBase, error)
}

// Completer is the subset of the completion API the chat proxy needs.
type Completer interface {
	GenerateContent(ctx context.Context, model, version, prompt string) *CompletionResult
	ListModels(ctx context.Context, version string) ([]ModelInfo, error)
}

type ChatService struct {
	knowledge  KnowledgeSource
	llm        Completer
	apiKeySet  bool
	model      string
	apiVersion string
	logger     *zap.Logger
	now        func() time.Time
}

func NewChatService(knowledge KnowledgeSource, llm Completer, cfg *config.GeminiConfig, logger *zap.Logger) *ChatService {
	return &ChatService{
		knowledge:  knowledge,
		llm:        llm,
		apiKeySet:  cfg.APIKey != "",
		model:      cfg.Model,
		apiVersion: cfg.APIVersion,
		logger:     logger,
		now:        time.Now,
	}
}

// ResolveModel picks the model id and API version to call. An explicit version override wins;
// otherwise known models map to their compatible version and anything else goes to v1.
func ResolveModel(modelID, versionOverride string) (string, string) {
	if versionOverride != "" {
		return modelID, versionOverride
	}
	if known, ok := knownModels[modelID]; ok {
		return known.model, known.version
	}
	return modelID, apiV1
}

func flipVersion(version string) string {
	if version == apiV1 {
		return apiV1Beta
	}
	return apiV1
}

// PickClosestModel chooses from a models listing, in strict order of preference:
// exact id, id with -latest, same family (first three dash-separated tokens), any model that can generate.
// It returns "" when nothing in the listing can generate content.
func PickClosestModel(available []ModelInfo, desired string) string {
	base := strings.TrimSuffix(desired, "-latest")
	ids := make([]string, 0, len(available))
	for _, m := range available {
		if m.CanGenerate() {
			ids = append(ids, shortModelName(m.Name))
		}
	}

	for _, id := range ids {
		if id == desired {
			return id
		}
	}
	for _, id := range ids {
		if id == base+"-latest" {
			return id
		}
	}
	family := familyTokens(base)
	for _, id := range ids {
		if sameFamily(family, id) {
			return id
		}
	}
	if len(ids) > 0 {
		return ids[0]
	}
	return ""
}

func familyTokens(id string) []string {
	tokens := strings.Split(id, "-")
	if len(tokens) > 3 {
		tokens = tokens[:3]
	}
	return tokens
}

// sameFamily reports whether id starts with the given dash-separated tokens.
func sameFamily(family []string, id string) bool {
	tokens := strings.Split(id, "-")
	if len(tokens) < len(family) {
		return false
	}
	return slices.Equal(tokens[:len(family)], family)
}

func shortModelName(name string) string {
	if i := strings.LastIndex(name, "/models/"); i >= 0 {
		return name[i+len("/models/"):]
	}
	return strings.TrimPrefix(name, "models/")
}

// BuildPrompt grounds the question in the serialised knowledge base.
func BuildPrompt(kb *models.KnowledgeBase, message string) (string, error) {
	serialized, err := json.MarshalIndent(kb, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize knowledge base: %w", err)
	}

	return fmt.Sprintf(`
You are a helpful AI assistant for %[1]s, an education and immigration consultancy. Your role is to provide accurate, friendly, and professional information about %[1]s.

INSTITUTE CONTEXT:
%[2]s

USER QUESTION: %[3]q

RESPONSE GUIDELINES:
1. PRIMARY FOCUS: Use the knowledge base above to answer questions about:
   - Study abroad destinations and partner universities
   - Admission process, intakes, and eligibility
   - Visa and immigration consultation
   - Fees, counselling, and office contact details

2. RESPONSE STYLE:
   - Be warm, professional, and encouraging
   - Use clear, simple language; break longer answers into short bullet points
   - Keep answers concise

3. BOUNDARIES:
   - If the information is not in the knowledge base, say so politely and suggest contacting an office listed above
   - For unrelated topics, gently redirect to the institute's services
   - Never invent offices, phone numbers, fees, partners, or any other detail not present in the knowledge base

4. FORMATTING:
   - Use **bold** for headings and key facts
   - End with a helpful next step

Please provide a helpful, accurate response based on the knowledge base:
`, kb.InstituteName, serialized, message), nil
}

// Reply answers a chat message. Validation failures are returned as errors (see errors.go);
// every upstream failure is folded into a soft error envelope instead.
func (s *ChatService) Reply(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	message := req.Message
	if strings.TrimSpace(message) == "" {
		return nil, ErrInvalidInput
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}
	if !s.apiKeySet {
		return nil, ErrServiceUnavailable
	}
	kb, err := s.knowledge.Get(ctx)
	if err != nil {
		s.logger.Error("Failed to load knowledge base", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	prompt, err := BuildPrompt(kb, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	result, model, version := s.complete(ctx, prompt)
	if !result.OK() {
		upstreamErr := &UpstreamError{Status: result.Status, Model: model}
		s.logger.Error("Completion failed after fallbacks",
			zap.Error(upstreamErr),
			zap.String("api_version", version),
			zap.ByteString("response", truncate(result.Body, 512)),
		)
		return UpstreamFailure(kb, result.Status), nil
	}

	reply := result.Text()
	if reply == "" {
		s.logger.Warn("Completion returned no text", zap.String("model", model))
		reply = cannedReply(kb)
	}

	var conversationID *string
	if req.ConversationID != "" {
		id := req.ConversationID
		conversationID = &id
	}

	return &dto.ChatResponse{
		Reply: reply,
		Metadata: &dto.ChatMetadata{
			Model:          model,
			APIVersion:     version,
			Timestamp:      s.now().UTC().Format("2006-01-02T15:04:05.000Z"),
			ConversationID: conversationID,
		},
	}, nil
}

type ladderStep struct {
	model   string
	version string
}

// complete runs the primary call and, on a 404, the fallback ladder. Steps run sequentially and the
// first success wins. It returns the last result together with the model and version that produced it.
func (s *ChatService) complete(ctx context.Context, prompt string) (*CompletionResult, string, string) {
	model, version := ResolveModel(s.model, s.apiVersion)

	result := s.llm.GenerateContent(ctx, model, version, prompt)
	if result.OK() || result.Status != http.StatusNotFound {
		return result, model, version
	}

	s.logger.Info("Model not found, attempting fallbacks",
		zap.String("model", model),
		zap.String("api_version", version),
	)

	ladder := []ladderStep{
		{model + "-latest", version},
		{model, flipVersion(version)},
		{"gemini-1.5-flash-latest", apiV1},
		{"gemini-1.0-pro-latest", apiV1Beta},
	}
	lastModel, lastVersion := model, version
	for _, step := range ladder {
		res := s.llm.GenerateContent(ctx, step.model, step.version, prompt)
		if res.OK() {
			s.logger.Info("Fallback successful", zap.String("model", step.model), zap.String("api_version", step.version))
			return res, step.model, step.version
		}
		s.logger.Warn("Fallback attempt failed",
			zap.String("model", step.model),
			zap.String("api_version", step.version),
			zap.Int("status", res.Status),
		)
		result, lastModel, lastVersion = res, step.model, step.version
	}

	for _, ver := range []string{version, flipVersion(version)} {
		available, err := s.llm.ListModels(ctx, ver)
		if err != nil {
			s.logger.Warn("Model listing failed", zap.String("api_version", ver), zap.Error(err))
			continue
		}
		picked := PickClosestModel(available, model)
		if picked == "" {
			picked = PickClosestModel(available, "gemini-1.5-flash")
		}
		if picked == "" {
			picked = PickClosestModel(available, "gemini-pro")
		}
		if picked == "" {
			continue
		}

		res := s.llm.GenerateContent(ctx, picked, ver, prompt)
		if res.OK() {
			s.logger.Info("Discovered model succeeded", zap.String("model", picked), zap.String("api_version", ver))
			return res, picked, ver
		}
		result, lastModel, lastVersion = res, picked, ver
	}

	return result, lastModel, lastVersion
}

// UpstreamFailure builds the soft error envelope for the final upstream status.
func UpstreamFailure(kb *models.KnowledgeBase, status int) *dto.ChatResponse {
	resp := &dto.ChatResponse{
		Error:      "I'm having trouble processing your request right now",
		Suggestion: "Please try again in a moment, or contact the institute directly for immediate assistance",
		Contact:    contactOf(kb),
	}
	switch status {
	case http.StatusTooManyRequests:
		resp.Error = "Service is busy"
		resp.Suggestion = "Please wait a moment and try again"
	case http.StatusForbidden:
		resp.Error = "Service temporarily unavailable"
		resp.Suggestion = "Please contact the institute directly for assistance"
	}
	return resp
}

// GenericFailure is the envelope for malformed requests and unexpected faults. kb may be nil.
func GenericFailure(kb *models.KnowledgeBase) *dto.ChatResponse {
	return &dto.ChatResponse{
		Error:      "Something went wrong on our end",
		Suggestion: "Please try again in a few moments, or contact us directly for assistance",
		Contact:    contactOf(kb),
	}
}

func contactOf(kb *models.KnowledgeBase) *models.Contact {
	if kb == nil {
		c := defaultContact
		return &c
	}
	c := kb.Contact
	return &c
}

func cannedReply(kb *models.KnowledgeBase) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I apologize, but I'm having trouble generating a response right now.\n\n")
	fmt.Fprintf(&b, "For accurate and immediate information about %s, please:\n\n", kb.InstituteName)
	if phones := kb.AllPhones(); len(phones) > 0 {
		fmt.Fprintf(&b, "📞 Call: %s\n", strings.Join(phones, " or "))
	}
	if email := kb.PrimaryEmail(); email != "" {
		fmt.Fprintf(&b, "📧 Email: %s\n", email)
	}
	if kb.Contact.Website != "" {
		fmt.Fprintf(&b, "🌐 Visit: %s\n", kb.Contact.Website)
	}
	b.WriteString("\nOur team will be happy to assist you with any questions about study abroad, admissions, or visas!")
	return b.String()
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
