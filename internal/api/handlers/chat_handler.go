package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"nationwide/internal/dto"
	"nationwide/internal/models"
	"nationwide/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatReplier interface {
	Reply(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error)
}

type KnowledgeSource interface {
	Get(ctx context.Context) (*models.KnowledgeBase, error)
}

type ChatHandler struct {
	chat      ChatReplier
	knowledge KnowledgeSource
	logger    *zap.Logger
}

func NewChatHandler(chat ChatReplier, knowledge KnowledgeSource, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chat:      chat,
		knowledge: knowledge,
		logger:    logger,
	}
}

// Chat godoc
// @Summary Ask the institute assistant
// @Description Answers a question grounded in the knowledge base. Upstream failures are reported as a soft error envelope with HTTP 200.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ChatError
// @Failure 500 {object} dto.ChatError
// @Failure 503 {object} dto.ChatError
// @Router /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Chat handler panic", zap.Any("panic", r))
			err = c.Status(fiber.StatusOK).JSON(h.genericFailure(c))
		}
	}()

	var req dto.ChatRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		// Well-formed JSON with a non-string message is a validation failure, not a fault.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return invalidMessage(c)
		}
		h.logger.Warn("Invalid chat request body", zap.Error(err))
		return c.Status(fiber.StatusOK).JSON(h.genericFailure(c))
	}

	resp, err := h.chat.Reply(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			return invalidMessage(c)
		case errors.Is(err, service.ErrMessageTooLong):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ChatError{
				Error:      "Message too long",
				Suggestion: "Please keep your question under 1000 characters",
			})
		case errors.Is(err, service.ErrServiceUnavailable):
			h.logger.Error("Completion API key is not configured")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ChatError{
				Error:      "Service temporarily unavailable",
				Suggestion: "Please contact the institute directly for immediate assistance",
			})
		case errors.Is(err, service.ErrConfiguration):
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ChatError{
				Error:      "Service configuration issue",
				Suggestion: "Please contact the institute directly for accurate information",
			})
		default:
			h.logger.Error("Chat failed", zap.Error(err))
			return c.Status(fiber.StatusOK).JSON(h.genericFailure(c))
		}
	}

	if resp.Error == "" {
		c.Set(fiber.HeaderCacheControl, "no-cache")
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// RateLimited answers a throttled chat request with the busy envelope.
func (h *ChatHandler) RateLimited(c *fiber.Ctx) error {
	h.logger.Warn("Chat rate limited", zap.String("ip", c.IP()))
	return c.Status(fiber.StatusOK).JSON(service.UpstreamFailure(h.loadKnowledge(c), http.StatusTooManyRequests))
}

// Knowledge godoc
// @Summary Knowledge base
// @Description The institute reference document the assistant and widget answer from
// @Tags chat
// @Produce json
// @Success 200 {object} models.KnowledgeBase
// @Failure 500 {object} map[string]string
// @Router /api/knowledge [get]
func (h *ChatHandler) Knowledge(c *fiber.Ctx) error {
	kb, err := h.knowledge.Get(c.Context())
	if err != nil {
		h.logger.Error("Failed to load knowledge base", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Knowledge base unavailable",
		})
	}
	return c.JSON(kb)
}

func invalidMessage(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ChatError{
		Error:      "Please provide a valid message",
		Suggestion: "Ask about courses, admissions, fees, or any other institute information",
	})
}

func (h *ChatHandler) genericFailure(c *fiber.Ctx) *dto.ChatResponse {
	return service.GenericFailure(h.loadKnowledge(c))
}

// loadKnowledge returns nil when the knowledge base cannot be read; callers fall back to built-in contact data.
func (h *ChatHandler) loadKnowledge(c *fiber.Ctx) *models.KnowledgeBase {
	kb, err := h.knowledge.Get(c.Context())
	if err != nil {
		return nil
	}
	return kb
}
