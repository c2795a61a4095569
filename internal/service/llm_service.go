package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nationwide/pkg/config"

	"go.uber.org/zap"
)

const maxCompletionBody = 4 << 20

// GenerationConfig holds the fixed sampling parameters sent with every completion request.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

var defaultGenerationConfig = GenerationConfig{
	Temperature:     0.7,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 1024,
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Role  string        `json:"role,omitempty"`
	Parts []contentPart `json:"parts"`
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// ModelInfo is one entry of the models listing.
type ModelInfo struct {
	Name                       string   `json:"name"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

// CanGenerate reports whether the model serves generateContent.
func (m ModelInfo) CanGenerate() bool {
	for _, method := range m.SupportedGenerationMethods {
		if method == "generateContent" {
			return true
		}
	}
	return false
}

// CompletionResult is the raw outcome of one generateContent call.
// Transport failures and timeouts are reported as status 408 rather than as errors.
type CompletionResult struct {
	Status int
	Body   []byte
}

func (r *CompletionResult) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Text returns the first candidate's first text part, or "" when the body has none.
func (r *CompletionResult) Text() string {
	var resp generateContentResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return ""
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return resp.Candidates[0].Content.Parts[0].Text
}

// LLMService talks to the Generative Language REST API.
type LLMService struct {
	httpClient        *http.Client
	baseURL           string
	apiKey            string
	completionTimeout time.Duration
	listTimeout       time.Duration
	logger            *zap.Logger
}

func NewLLMService(cfg *config.GeminiConfig, httpClient *http.Client, logger *zap.Logger) *LLMService {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &LLMService{
		httpClient:        httpClient,
		baseURL:           strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:            cfg.APIKey,
		completionTimeout: cfg.CompletionTimeout,
		listTimeout:       cfg.ListTimeout,
		logger:            logger,
	}
}

// GenerateContent calls {version}/models/{model}:generateContent with the completion timeout.
func (s *LLMService) GenerateContent(ctx context.Context, model, version, prompt string) *CompletionResult {
	ctx, cancel := context.WithTimeout(ctx, s.completionTimeout)
	defer cancel()

	payload, err := json.Marshal(generateContentRequest{
		Contents:         []content{{Role: "user", Parts: []contentPart{{Text: prompt}}}},
		GenerationConfig: defaultGenerationConfig,
	})
	if err != nil {
		return &CompletionResult{Status: http.StatusInternalServerError, Body: []byte(err.Error())}
	}

	endpoint := fmt.Sprintf("%s/%s/models/%s:generateContent?key=%s",
		s.baseURL, version, url.PathEscape(model), url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return &CompletionResult{Status: http.StatusInternalServerError, Body: []byte(err.Error())}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("Completion request failed",
			zap.String("model", model),
			zap.String("api_version", version),
			zap.Error(err),
		)
		return timeoutResult()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCompletionBody))
	if err != nil {
		return timeoutResult()
	}
	return &CompletionResult{Status: resp.StatusCode, Body: body}
}

// ListModels returns the models served under version, using the listing timeout.
func (s *LLMService) ListModels(ctx context.Context, version string) ([]ModelInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.listTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/%s/models?key=%s", s.baseURL, version, url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("failed to list models with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var modelsResp struct {
		Models []ModelInfo `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("failed to decode models response: %w", err)
	}
	return modelsResp.Models, nil
}

func timeoutResult() *CompletionResult {
	return &CompletionResult{Status: http.StatusRequestTimeout, Body: []byte(`{"error":"Request timeout"}`)}
}
