// Package client talks to the Nationwide REST API on behalf of the terminal tools.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nationwide/internal/dto"
	"nationwide/internal/models"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

var (
	ErrNotAuthenticated = errors.New("not logged in")
	ErrFileTooLarge     = errors.New("file too large, maximum size is 50MB")
	ErrVideoLimit       = errors.New("video limit reached, delete a video before uploading another")
	ErrFileRequired     = errors.New("a file is required")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for k, v := range e.Fields {
			parts = append(parts, k+": "+v)
		}
		return fmt.Sprintf("%s (%d): %s", e.Message, e.Status, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
	logger  *zap.Logger
}

// New returns a client for the server at baseURL. A nil httpClient uses a 2 minute timeout.
func New(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

// Chat posts a message to the chat proxy. Every JSON answer, including rejected requests,
// is returned as a response; an error means the proxy could not be reached or answered garbage.
func (c *Client) Chat(ctx context.Context, message string) (*dto.ChatResponse, error) {
	body, err := json.Marshal(dto.ChatRequest{Message: message})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	var out dto.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode chat response (status %d): %w", resp.StatusCode, err)
	}
	return &out, nil
}

// Knowledge fetches the knowledge base the widget answers from.
func (c *Client) Knowledge(ctx context.Context) (*models.KnowledgeBase, error) {
	var kb models.KnowledgeBase
	if err := c.doJSON(ctx, http.MethodGet, "/api/knowledge", nil, &kb, false); err != nil {
		return nil, err
	}
	return &kb, nil
}

// Login exchanges admin credentials for tokens and keeps the access token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/admin/login", dto.LoginRequest{Username: username, Password: password}, &out, false)
	if err != nil {
		return nil, err
	}
	c.token = out.AccessToken
	return &out, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/admin/refresh", dto.RefreshTokenRequest{RefreshToken: refreshToken}, &out, false)
	if err != nil {
		return nil, err
	}
	c.token = out.AccessToken
	return &out, nil
}

// doJSON sends an optional JSON body and decodes a JSON answer into out.
// GET requests are retried on transport errors and 502/503/504.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, authed bool) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return err
		}
	}

	attempt := func(ctx context.Context) error {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return c.send(req, out, authed)
	}

	if method != http.MethodGet {
		return attempt(ctx)
	}
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(250*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := attempt(ctx)
		if retryable(err) {
			c.logger.Debug("Retrying request", zap.String("path", path), zap.Error(err))
			return retry.RetryableError(err)
		}
		return err
	})
}

func retryable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	return !errors.Is(err, ErrNotAuthenticated) && !errors.Is(err, context.Canceled)
}

func (c *Client) send(req *http.Request, out any, authed bool) error {
	if authed {
		if c.token == "" {
			return ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(raw))
		if body.Error == "" {
			body.Error = http.StatusText(resp.StatusCode)
		}
	}
	return &APIError{Status: resp.StatusCode, Message: body.Error, Fields: body.Fields}
}

func query(values map[string]string) string {
	q := url.Values{}
	for k, v := range values {
		if v != "" && v != "0" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
