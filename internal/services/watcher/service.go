package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deepgram/asklyn/pkg/logger"
	"github.com/fsnotify/fsnotify"
)

// DefaultSettleDelay is how long a file must go without events before it is read.
const DefaultSettleDelay = 500 * time.Millisecond

// Ingester stores the content of a text file under its name, replacing the
// previous content stored for that name.
type Ingester interface {
	Put(ctx context.Context, name, text string) (int, error)
}

// Service feeds .txt files created or written in a directory to an Ingester.
type Service struct {
	watcher  *fsnotify.Watcher
	ingester Ingester
	dir      string
	settle   time.Duration

	// seen holds the last ingested content per path.
	seen    map[string]string
	pending map[string]*time.Timer
	ready   chan string
	done    chan struct{}
}

func NewService(dir string, ingester Ingester) (*Service, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	logger.Info(logger.WATCHER, "Watching %s for knowledge-base documents", dir)
	return &Service{
		watcher:  w,
		ingester: ingester,
		dir:      dir,
		settle:   DefaultSettleDelay,
		seen:     make(map[string]string),
		pending:  make(map[string]*time.Timer),
		ready:    make(chan string),
		done:     make(chan struct{}),
	}, nil
}

// Run processes events until ctx is cancelled or the watcher is closed.
// A file is read once its events have been quiet for the settle delay.
// Ingested reports each file stored, for callers that want to observe progress.
func (s *Service) Run(ctx context.Context, ingested func(path string)) {
	defer func() {
		close(s.done)
		for _, t := range s.pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !isTextFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			s.schedule(event.Name)
		case path := <-s.ready:
			delete(s.pending, path)
			added, err := s.ingest(ctx, path)
			if err != nil {
				logger.Warn(logger.WATCHER, "Skipping %s: %v", path, err)
				continue
			}
			if added && ingested != nil {
				ingested(path)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Error(logger.WATCHER, "Watcher error: %v", err)
		}
	}
}

// schedule (re)starts the settle timer for path.
func (s *Service) schedule(path string) {
	if t, ok := s.pending[path]; ok {
		t.Reset(s.settle)
		return
	}
	s.pending[path] = time.AfterFunc(s.settle, func() {
		select {
		case s.ready <- path:
		case <-s.done:
		}
	})
}

func (s *Service) ingest(ctx context.Context, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	text := string(data)
	if strings.TrimSpace(text) == "" || s.seen[path] == text {
		return false, nil
	}

	total, err := s.ingester.Put(ctx, filepath.Base(path), text)
	if err != nil {
		return false, err
	}
	s.seen[path] = text

	logger.Info(logger.WATCHER, "Ingested %s, knowledge base holds %d documents", filepath.Base(path), total)
	return true, nil
}

func (s *Service) Close() error {
	return s.watcher.Close()
}

func isTextFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}
