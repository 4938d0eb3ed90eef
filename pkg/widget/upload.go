package widget

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/deepgram/asklyn/pkg/logger"
)

// UploadController accepts dropped or picked files and sends them to the
// upload endpoint, reporting progress on the status line.
type UploadController struct {
	elems      Elements
	backend    UploadBackend
	clock      Clock
	clearDelay time.Duration

	mu         sync.Mutex
	generation uint64
	clearTimer Timer
}

func NewUploadController(elems Elements, backend UploadBackend, cfg Config) *UploadController {
	cfg = cfg.withDefaults()
	return &UploadController{
		elems:      elems,
		backend:    backend,
		clock:      cfg.Clock,
		clearDelay: cfg.StatusClearDelay,
	}
}

// HandleDragEvent suppresses the host's default handling of every drag event
// and updates the drop target border when the event is aimed at it.
func (u *UploadController) HandleDragEvent(ev *Event) {
	ev.PreventDefault()
	ev.StopPropagation()

	if ev.Target != TargetDropArea {
		return
	}
	switch ev.Type {
	case EventDragEnter, EventDragOver:
		u.elems.DropTarget.SetBorderColor(ColorActive)
	case EventDragLeave, EventDrop:
		u.elems.DropTarget.SetBorderColor(ColorInactive)
	}
}

func (u *UploadController) HandleDrop(ctx context.Context, ev *Event) error {
	return u.HandleFiles(ctx, ev.Files)
}

// OpenPicker asks the host to show its file chooser.
func (u *UploadController) OpenPicker() {
	u.elems.Picker.Open()
}

// HandleFiles uploads every file on its own goroutine and waits for all of
// them. One file failing has no effect on the others; the joined error is
// only for diagnostics.
func (u *UploadController) HandleFiles(ctx context.Context, files []File) error {
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f File) {
			defer wg.Done()
			errs[i] = u.UploadFile(ctx, f)
		}(i, f)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// UploadFile validates and uploads a single file.
//
// Success is decided by the status code alone: a 2xx reply whose body is not
// JSON still shows StatusComplete rather than StatusConnection.
// StatusConnection keeps the info colour of the preceding "Uploading" status.
func (u *UploadController) UploadFile(ctx context.Context, f File) error {
	if f.Type() != AcceptedFileType {
		u.showStatus(StatusUnsupported, ColorError, false)
		return fmt.Errorf("%w: %s has type %q", ErrUnsupportedFileType, f.Name(), f.Type())
	}

	u.showStatus(fmt.Sprintf("Uploading %s...", f.Name()), ColorInfo, false)

	result, err := u.backend.Upload(ctx, f)

	var statusErr *StatusError
	switch {
	case err == nil, errors.Is(err, ErrMalformedResponse):
		if err != nil {
			logger.Warn(logger.WIDGET, "Upload of %s succeeded with an unreadable body: %v", f.Name(), err)
		} else if result != nil && result.Message != "" {
			logger.Info(logger.WIDGET, "%s (%d documents)", result.Message, result.TotalDocs)
		}
		u.showStatus(StatusComplete, ColorSuccess, true)
		return nil
	case errors.As(err, &statusErr):
		logger.Warn(logger.WIDGET, "Upload of %s rejected: %v", f.Name(), err)
		u.showStatus(StatusFailed, ColorError, false)
	default:
		logger.Error(logger.WIDGET, "Upload of %s failed: %v", f.Name(), err)
		u.showStatus(StatusConnection, ColorInfo, false)
	}
	return err
}

// showStatus replaces the status line. Any pending self-clear belongs to an
// older status and is cancelled.
func (u *UploadController) showStatus(text, color string, selfClear bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.generation++
	if u.clearTimer != nil {
		u.clearTimer.Stop()
		u.clearTimer = nil
	}
	u.elems.Status.SetStatus(text, color)

	if !selfClear {
		return
	}
	gen := u.generation
	u.clearTimer = u.clock.AfterFunc(u.clearDelay, func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		if u.generation != gen {
			return
		}
		u.generation++
		u.clearTimer = nil
		u.elems.Status.SetStatus("", color)
	})
}
