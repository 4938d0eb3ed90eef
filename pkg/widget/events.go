package widget

import (
	"context"

	"github.com/deepgram/asklyn/pkg/logger"
)

type EventType string

const (
	EventClick     EventType = "click"
	EventKeyPress  EventType = "keypress"
	EventChange    EventType = "change"
	EventDragEnter EventType = "dragenter"
	EventDragOver  EventType = "dragover"
	EventDragLeave EventType = "dragleave"
	EventDrop      EventType = "drop"
)

// Target names the element an event was fired on.
type Target string

const (
	TargetBody       Target = "body"
	TargetSendButton Target = "send-btn"
	TargetUserInput  Target = "user-input"
	TargetDropArea   Target = "drop-area"
	TargetFileInput  Target = "file-input"
)

// Event is a user interaction delivered by the host.
type Event struct {
	Type   EventType
	Target Target
	// Key is set for keypress events.
	Key string
	// Files carries the drop payload or the picker selection.
	Files []File

	defaultPrevented   bool
	propagationStopped bool
}

func (e *Event) PreventDefault()          { e.defaultPrevented = true }
func (e *Event) StopPropagation()         { e.propagationStopped = true }
func (e *Event) DefaultPrevented() bool   { return e.defaultPrevented }
func (e *Event) PropagationStopped() bool { return e.propagationStopped }

func (e *Event) isDrag() bool {
	switch e.Type {
	case EventDragEnter, EventDragOver, EventDragLeave, EventDrop:
		return true
	}
	return false
}

// Widget mounts both controllers on one set of elements and routes events to them.
type Widget struct {
	Chat   *ChatController
	Upload *UploadController
}

// New builds a Widget talking to cfg.BaseURL over HTTP.
func New(elems Elements, cfg Config) *Widget {
	client := NewClient(cfg)
	return NewWithBackends(elems, client, client, cfg)
}

// NewWithBackends builds a Widget on caller-supplied backends.
func NewWithBackends(elems Elements, chat ChatBackend, upload UploadBackend, cfg Config) *Widget {
	return &Widget{
		Chat:   NewChatController(elems, chat, cfg),
		Upload: NewUploadController(elems, upload, cfg),
	}
}

// Dispatch handles ev and blocks until any request it started has settled.
// Events with no handler are ignored. The returned error is diagnostic only:
// every failure has already been rendered.
func (w *Widget) Dispatch(ctx context.Context, ev *Event) error {
	// Drag events bubble to the body from any element, so every one is suppressed.
	if ev.isDrag() {
		w.Upload.HandleDragEvent(ev)
		if ev.Type == EventDrop && ev.Target == TargetDropArea {
			return w.Upload.HandleDrop(ctx, ev)
		}
		return nil
	}

	switch {
	case ev.Type == EventClick && ev.Target == TargetSendButton:
		return w.Chat.SendMessage(ctx)
	case ev.Type == EventKeyPress && ev.Target == TargetUserInput && ev.Key == "Enter":
		return w.Chat.SendMessage(ctx)
	case ev.Type == EventClick && ev.Target == TargetDropArea:
		w.Upload.OpenPicker()
	case ev.Type == EventChange && ev.Target == TargetFileInput:
		return w.Upload.HandleFiles(ctx, ev.Files)
	default:
		logger.Debug(logger.WIDGET, "No handler for %s on %s", ev.Type, ev.Target)
	}
	return nil
}
