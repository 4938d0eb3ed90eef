package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/deepgram/asklyn/pkg/widget"
	"github.com/deepgram/asklyn/pkg/widget/memview"
)

const (
	ansiReset = "\033[0m"
	ansiDim   = "\033[2m"
)

var ansiColors = map[string]string{
	widget.ColorActive:  "\033[36m",
	widget.ColorSuccess: "\033[32m",
	widget.ColorError:   "\033[31m",
}

var errQuit = errors.New("quit")

type lineReader interface {
	ReadLine() (string, error)
}

// terminal hosts a widget on an in-memory document and draws what it renders
// as lines of text.
type terminal struct {
	widget *widget.Widget
	doc    *memview.Document
	// markdown renders bot replies; nil prints them as they are.
	markdown func(string) (string, error)

	mu  sync.Mutex
	out io.Writer
}

func newTerminal(cfg widget.Config, out io.Writer) *terminal {
	doc := memview.New()
	t := &terminal{
		widget: widget.New(doc.Elements(), cfg),
		doc:    doc,
		out:    out,
	}
	doc.Listen(memview.Listener{
		Message:   t.drawMessage,
		Indicator: t.drawIndicator,
		Status:    t.drawStatus,
	})
	return t
}

func (t *terminal) printf(format string, v ...interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, v...)
}

func (t *terminal) drawMessage(m widget.Message) {
	if m.Sender == widget.SenderBot && t.markdown != nil {
		if out, err := t.markdown(m.Text); err == nil {
			t.printf("%s[%s]%s lyn:\n%s", ansiDim, m.Timestamp, ansiReset, out)
			return
		}
	}

	name := "you"
	if m.Sender == widget.SenderBot {
		name = "lyn"
	}
	t.printf("%s[%s]%s %s: %s\n", ansiDim, m.Timestamp, ansiReset, name, m.Text)
}

func (t *terminal) drawIndicator(shown bool) {
	if shown {
		t.printf("%slyn is typing...%s\n", ansiDim, ansiReset)
	}
}

func (t *terminal) drawStatus(text, color string) {
	if text == "" {
		return
	}
	t.printf("%s%s%s\n", ansiColors[color], text, ansiReset)
}

// handleLine sends a chat message, or runs a command:
//
//	/upload <paths...>   upload files as if dropped on the widget
//	/quit                end the session
func (t *terminal) handleLine(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)

	switch {
	case len(fields) == 0:
		return nil
	case fields[0] == "/quit" || fields[0] == "/exit":
		return errQuit
	case fields[0] == "/upload":
		if len(fields) == 1 {
			t.printf("usage: /upload <file> [file...]\n")
			return nil
		}
		return t.upload(ctx, fields[1:])
	}

	t.doc.SetValue(line)
	return t.widget.Dispatch(ctx, &widget.Event{
		Type:   widget.EventKeyPress,
		Target: widget.TargetUserInput,
		Key:    "Enter",
	})
}

func (t *terminal) upload(ctx context.Context, paths []string) error {
	files := make([]widget.File, 0, len(paths))
	for _, p := range paths {
		files = append(files, widget.LocalFile(p))
	}

	for _, typ := range []widget.EventType{widget.EventDragEnter, widget.EventDrop} {
		ev := &widget.Event{Type: typ, Target: widget.TargetDropArea}
		if typ == widget.EventDrop {
			ev.Files = files
		}
		if err := t.widget.Dispatch(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// run reads lines until EOF, /quit or ctx is done. Failed sends and uploads
// are already drawn, so they do not end the session.
func (t *terminal) run(ctx context.Context, rl lineReader) error {
	for ctx.Err() == nil {
		line, err := rl.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := t.handleLine(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			if errors.Is(err, widget.ErrSendInFlight) {
				t.printf("still waiting for the last reply\n")
			}
		}
	}
	return nil
}
