package dto

import "nationwide/internal/models"

type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

type ChatMetadata struct {
	Model          string  `json:"model"`
	APIVersion     string  `json:"apiVersion"`
	Timestamp      string  `json:"timestamp"`
	ConversationID *string `json:"conversationId"`
}

// ChatResponse is either a reply with metadata or a soft error envelope (error, suggestion, contact).
// Both are delivered with HTTP 200.
type ChatResponse struct {
	Reply      string          `json:"reply,omitempty"`
	Metadata   *ChatMetadata   `json:"metadata,omitempty"`
	Error      string          `json:"error,omitempty"`
	Suggestion string          `json:"suggestion,omitempty"`
	Contact    *models.Contact `json:"contact,omitempty"`
}

// ChatError is the body of a rejected chat request (400, 500, 503).
type ChatError struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion"`
}
