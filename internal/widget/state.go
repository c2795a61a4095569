// Package widget is the chat widget that sits in front of the chat proxy.
// It answers common questions from the knowledge base and forwards everything else.
package widget

import "slices"

type Sender string

const (
	FromUser Sender = "user"
	FromBot  Sender = "bot"
)

// Message is one entry of the conversation. Text uses the **bold** markup.
type Message struct {
	ID   int
	From Sender
	Text string
}

// State is everything the widget displays. It is only changed through Reduce.
type State struct {
	Messages         []Message
	Input            string
	Loading          bool
	ActiveCategory   string
	ShowSuggestions  bool
	ShowUniversities bool

	nextID int
}

// Action is an event fed to Reduce.
type Action interface {
	isAction()
}

type (
	// Reset replaces the conversation with the greeting.
	Reset struct{}
	// SetInput records the text typed so far.
	SetInput struct{ Text string }
	// SendStarted appends the user's message and marks the widget busy.
	SendStarted struct{ Text string }
	// BotReplied appends a bot message.
	BotReplied struct{ Text string }
	// SendFinished clears the busy flag.
	SendFinished struct{}
	// SelectCategory filters quick actions and universities.
	SelectCategory struct{ ID string }
	// ToggleUniversities shows or hides the university picker.
	ToggleUniversities struct{ Show bool }
)

func (Reset) isAction()              {}
func (SetInput) isAction()           {}
func (SendStarted) isAction()        {}
func (BotReplied) isAction()         {}
func (SendFinished) isAction()       {}
func (SelectCategory) isAction()     {}
func (ToggleUniversities) isAction() {}

const Greeting = "**Hello! Welcome to Nationwide!**\n\n**Get your best here!**\n\nI'm here to help you with:\n\n" +
	"• **Study Abroad Opportunities**\n• **University Partnerships**\n• **Visa Consultation**\n" +
	"• **Admission Process**\n• **Free Counselling**\n• **Contact Details**\n\nHow can I assist you today?"

// NewState returns the initial widget state with the greeting.
func NewState() State {
	return Reduce(State{}, Reset{})
}

// Reduce returns the state after applying a. The input state is not modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Reset:
		return State{
			Messages:        []Message{{ID: s.nextID + 1, From: FromBot, Text: Greeting}},
			ActiveCategory:  CategoryAll,
			ShowSuggestions: true,
			nextID:          s.nextID + 1,
		}
	case SetInput:
		s.Input = a.Text
	case SendStarted:
		s = s.appendMessage(FromUser, a.Text)
		s.Input = ""
		s.Loading = true
		s.ShowSuggestions = false
		s.ShowUniversities = false
	case BotReplied:
		s = s.appendMessage(FromBot, a.Text)
	case SendFinished:
		s.Loading = false
	case SelectCategory:
		s.ActiveCategory = a.ID
	case ToggleUniversities:
		s.ShowUniversities = a.Show
	}
	return s
}

func (s State) appendMessage(from Sender, text string) State {
	s.nextID++
	s.Messages = append(slices.Clip(s.Messages), Message{ID: s.nextID, From: from, Text: text})
	if len(s.Messages) > 2 {
		s.ShowSuggestions = false
	}
	return s
}
