package widget

import (
	"context"
	"errors"
	"strings"

	"nationwide/internal/dto"
	"nationwide/internal/models"

	"go.uber.org/zap"
)

// Forwarder sends a message to the chat proxy. A returned error means the proxy could not be reached.
type Forwarder interface {
	Chat(ctx context.Context, message string) (*dto.ChatResponse, error)
}

var ErrUnknownUniversity = errors.New("unknown university")

const emptyReply = "I apologize, but I couldn't process your request. Please contact Nationwide directly for assistance with your study abroad journey."

// Controller owns the widget state and runs the send flow. It is not safe for concurrent use.
type Controller struct {
	kb     *models.KnowledgeBase
	fwd    Forwarder
	state  State
	logger *zap.Logger
}

func NewController(kb *models.KnowledgeBase, fwd Forwarder, logger *zap.Logger) *Controller {
	return &Controller{
		kb:     kb,
		fwd:    fwd,
		state:  NewState(),
		logger: logger,
	}
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) dispatch(a Action) State {
	c.state = Reduce(c.state, a)
	return c.state
}

// Send handles one user message: a local rule answers it, otherwise it goes to the proxy.
// Blank input is ignored.
func (c *Controller) Send(ctx context.Context, text string) State {
	text = strings.TrimSpace(text)
	if text == "" {
		return c.state
	}
	c.dispatch(SendStarted{Text: text})

	if reply, ok := MatchLocal(c.kb, text); ok {
		c.logger.Debug("Answered locally", zap.String("rule", reply.Rule))
		c.dispatch(BotReplied{Text: reply.Text})
		if reply.ShowUniversities {
			c.dispatch(ToggleUniversities{Show: true})
		}
		return c.dispatch(SendFinished{})
	}

	resp, err := c.fwd.Chat(ctx, text)
	switch {
	case err != nil:
		c.logger.Warn("Chat proxy unreachable", zap.Error(err))
		c.dispatch(BotReplied{Text: unavailableMessage(c.kb)})
	case resp == nil:
		c.dispatch(BotReplied{Text: emptyReply})
	case resp.Error != "":
		c.logger.Info("Chat proxy returned an error", zap.String("error", resp.Error))
		c.dispatch(BotReplied{Text: troubleMessage(c.kb)})
	case strings.TrimSpace(resp.Reply) == "":
		c.dispatch(BotReplied{Text: emptyReply})
	default:
		c.dispatch(BotReplied{Text: resp.Reply})
	}
	return c.dispatch(SendFinished{})
}

// RunQuickAction sends the action's query as a user message.
func (c *Controller) RunQuickAction(ctx context.Context, qa QuickAction) State {
	return c.Send(ctx, qa.Query)
}

// SelectUniversity closes the picker and posts the university profile.
func (c *Controller) SelectUniversity(id string) (State, error) {
	u, ok := findUniversity(id)
	if !ok {
		return c.state, ErrUnknownUniversity
	}
	c.dispatch(ToggleUniversities{Show: false})
	return c.dispatch(BotReplied{Text: universityMessage(u)}), nil
}

func (c *Controller) SetCategory(id string) State {
	return c.dispatch(SelectCategory{ID: id})
}

// Clear restarts the conversation with the greeting.
func (c *Controller) Clear() State {
	return c.dispatch(Reset{})
}

func troubleMessage(kb *models.KnowledgeBase) string {
	var b strings.Builder
	b.WriteString("**I apologize, but I'm having trouble connecting right now.**\n\n")
	b.WriteString("For immediate assistance with study abroad opportunities, please contact us directly:")
	writeOffices(&b, kb, false)
	b.WriteString("\n\nWe're here to help you **get your best here!**")
	return b.String()
}

func unavailableMessage(kb *models.KnowledgeBase) string {
	var b strings.Builder
	b.WriteString("**I'm currently unavailable.**\n\n")
	b.WriteString("For immediate help with study abroad opportunities:")
	writeOffices(&b, kb, true)
	b.WriteString("\n\n**Get your best here!**")
	return b.String()
}
