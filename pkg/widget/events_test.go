package widget_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/deepgram/asklyn/pkg/widget"
	"github.com/deepgram/asklyn/pkg/widget/memview"
)

func newDispatchFixture(t *testing.T) (*widget.Widget, *memview.Document, *atomic.Int32, *atomic.Int32) {
	t.Helper()

	var chats, uploads atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		chats.Add(1)
		w.Write([]byte(`{"response":"pong"}`))
	})
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		uploads.Add(1)
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := widget.DefaultConfig(srv.URL)
	cfg.ResponseDelay = 0
	cfg.Clock = newFakeClock(time.Now())

	doc := memview.New()
	return widget.New(doc.Elements(), cfg), doc, &chats, &uploads
}

func TestDispatchSendTriggers(t *testing.T) {
	tests := []struct {
		name      string
		event     widget.Event
		wantChats int32
	}{
		{"send button", widget.Event{Type: widget.EventClick, Target: widget.TargetSendButton}, 1},
		{"enter key", widget.Event{Type: widget.EventKeyPress, Target: widget.TargetUserInput, Key: "Enter"}, 1},
		{"other key", widget.Event{Type: widget.EventKeyPress, Target: widget.TargetUserInput, Key: "a"}, 0},
		{"click elsewhere", widget.Event{Type: widget.EventClick, Target: widget.TargetBody}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, doc, chats, _ := newDispatchFixture(t)
			doc.SetValue("ping")

			ev := tt.event
			if err := w.Dispatch(context.Background(), &ev); err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}

			if chats.Load() != tt.wantChats {
				t.Errorf("chat requests = %d, want %d", chats.Load(), tt.wantChats)
			}
		})
	}
}

func TestDispatchDropUploadsFiles(t *testing.T) {
	w, doc, _, uploads := newDispatchFixture(t)

	enter := &widget.Event{Type: widget.EventDragEnter, Target: widget.TargetDropArea}
	w.Dispatch(context.Background(), enter)
	if doc.BorderColor() != widget.ColorActive {
		t.Errorf("border after dragenter = %q", doc.BorderColor())
	}

	drop := &widget.Event{
		Type:   widget.EventDrop,
		Target: widget.TargetDropArea,
		Files:  []widget.File{textFile("a.txt", "a"), textFile("b.txt", "b")},
	}
	if err := w.Dispatch(context.Background(), drop); err != nil {
		t.Fatalf("Dispatch(drop) error = %v", err)
	}

	if !drop.DefaultPrevented() {
		t.Error("drop must be suppressed")
	}
	if doc.BorderColor() != widget.ColorInactive {
		t.Errorf("border after drop = %q", doc.BorderColor())
	}
	if uploads.Load() != 2 {
		t.Errorf("uploads = %d, want 2", uploads.Load())
	}
}

func TestDispatchBodyDropDoesNotUpload(t *testing.T) {
	w, _, _, uploads := newDispatchFixture(t)

	drop := &widget.Event{Type: widget.EventDrop, Target: widget.TargetBody, Files: []widget.File{textFile("a.txt", "a")}}
	if err := w.Dispatch(context.Background(), drop); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if !drop.DefaultPrevented() || !drop.PropagationStopped() {
		t.Error("body drag events must be suppressed")
	}
	if uploads.Load() != 0 {
		t.Errorf("uploads = %d, want 0", uploads.Load())
	}
}

func TestDispatchSuppressesDragOnEveryTarget(t *testing.T) {
	targets := []widget.Target{widget.TargetUserInput, widget.TargetSendButton, widget.TargetFileInput}
	types := []widget.EventType{widget.EventDragEnter, widget.EventDragOver, widget.EventDragLeave, widget.EventDrop}

	for _, target := range targets {
		for _, typ := range types {
			t.Run(string(target)+"/"+string(typ), func(t *testing.T) {
				w, _, _, uploads := newDispatchFixture(t)

				ev := &widget.Event{Type: typ, Target: target, Files: []widget.File{textFile("a.txt", "a")}}
				if err := w.Dispatch(context.Background(), ev); err != nil {
					t.Fatalf("Dispatch() error = %v", err)
				}
				if !ev.DefaultPrevented() || !ev.PropagationStopped() {
					t.Errorf("%s on %s was not suppressed", typ, target)
				}
				if uploads.Load() != 0 {
					t.Errorf("uploads = %d, want 0 outside the drop area", uploads.Load())
				}
			})
		}
	}
}

func TestDispatchPickerFlow(t *testing.T) {
	w, doc, _, uploads := newDispatchFixture(t)

	click := &widget.Event{Type: widget.EventClick, Target: widget.TargetDropArea}
	if err := w.Dispatch(context.Background(), click); err != nil {
		t.Fatalf("Dispatch(click) error = %v", err)
	}
	if doc.PickerOpens() != 1 {
		t.Fatalf("picker opens = %d, want 1", doc.PickerOpens())
	}

	change := &widget.Event{Type: widget.EventChange, Target: widget.TargetFileInput, Files: []widget.File{textFile("picked.txt", "p")}}
	if err := w.Dispatch(context.Background(), change); err != nil {
		t.Fatalf("Dispatch(change) error = %v", err)
	}
	if uploads.Load() != 1 {
		t.Errorf("uploads = %d, want 1", uploads.Load())
	}
	if text, _ := doc.Status(); text != widget.StatusComplete {
		t.Errorf("status = %q", text)
	}
}
