package widget

import "errors"

var (
	// ErrSendInFlight rejects a send issued while the previous one is pending.
	ErrSendInFlight = errors.New("a message is already being sent")
	// ErrUnsupportedFileType rejects a file whose declared type is not text/plain.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
