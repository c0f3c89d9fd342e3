package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pharmacare/showcase/internal/model"
)

// Senders shown in the conversation log.
const (
	SenderUser      = "You"
	SenderAssistant = "AI Assistant"
)

// User-visible texts.
const (
	MsgCameraDenied    = "Could not access camera. Please make sure you've granted camera permissions."
	MsgNotImage        = "Please upload an image file."
	MsgProcessingError = "An error occurred while processing your request. Please try again."
	ImagePlaceholder   = "[Image of product]"
)

// NewMessage stamps a chat message with a fresh id.
func NewMessage(sender, text string, isError bool, at time.Time) model.ChatMessage {
	return model.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		IsError:   isError,
		Timestamp: at,
	}
}

// Conversation is the ordered message log of one chat panel.
type Conversation struct {
	mu       sync.Mutex
	messages []model.ChatMessage
	now      func() time.Time
}

func NewConversation() *Conversation {
	return &Conversation{now: time.Now}
}

// Add appends a new message and returns it.
func (c *Conversation) Add(sender, text string, isError bool) model.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := NewMessage(sender, text, isError, c.now())
	c.messages = append(c.messages, m)
	return m
}

// Append adds an already built message, e.g. a simulator reply.
func (c *Conversation) Append(m model.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, m)
}

// Messages returns a copy of the log in insertion order.
func (c *Conversation) Messages() []model.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}
