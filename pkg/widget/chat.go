package widget

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/deepgram/asklyn/pkg/logger"
)

const timestampLayout = "15:04"

// ChatController owns the transcript and the round-trip to the chat endpoint.
type ChatController struct {
	elems    Elements
	backend  ChatBackend
	clock    Clock
	delay    time.Duration
	inFlight atomic.Bool
}

func NewChatController(elems Elements, backend ChatBackend, cfg Config) *ChatController {
	cfg = cfg.withDefaults()
	return &ChatController{
		elems:   elems,
		backend: backend,
		clock:   cfg.Clock,
		delay:   cfg.ResponseDelay,
	}
}

// AddMessage renders text as a bubble from sender and scrolls to it.
func (c *ChatController) AddMessage(text string, sender Sender) {
	c.elems.Transcript.AppendMessage(Message{
		Text:      text,
		Sender:    sender,
		Timestamp: c.clock.Now().Format(timestampLayout),
	})
	c.elems.Transcript.ScrollToBottom()
}

func (c *ChatController) ShowTypingIndicator() Indicator {
	ind := c.elems.Transcript.AppendIndicator()
	c.elems.Transcript.ScrollToBottom()
	return ind
}

// RemoveTypingIndicator is a no-op for a nil or already detached indicator.
func (c *ChatController) RemoveTypingIndicator(ind Indicator) {
	if ind == nil || !ind.Attached() {
		return
	}
	ind.Remove()
}

// Pending reports whether a send is waiting on the backend.
func (c *ChatController) Pending() bool {
	return c.inFlight.Load()
}

// SendMessage sends the current input. Whitespace-only input is ignored. Any
// backend failure is rendered as the fallback bot message; the cause is
// logged and returned for the caller's diagnostics.
func (c *ChatController) SendMessage(ctx context.Context) error {
	text := strings.TrimSpace(c.elems.Input.Value())
	if text == "" {
		return nil
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		logger.Debug(logger.WIDGET, "Send ignored while a reply is pending")
		return ErrSendInFlight
	}
	defer c.inFlight.Store(false)

	c.AddMessage(text, SenderUser)
	c.elems.Input.SetValue("")

	ind := c.ShowTypingIndicator()

	reply, err := c.backend.Chat(ctx, text)
	if err != nil {
		logger.Error(logger.WIDGET, "Chat request failed: %v", err)
		c.RemoveTypingIndicator(ind)
		c.AddMessage(FallbackMessage, SenderBot)
		return err
	}

	sleep(c.clock, c.delay, ctx.Done())

	c.RemoveTypingIndicator(ind)
	c.AddMessage(reply, SenderBot)
	return nil
}
