package widget

import (
	"net/http"
	"time"
)

const (
	DefaultChatPath         = "/chat"
	DefaultUploadPath       = "/upload"
	DefaultResponseDelay    = 600 * time.Millisecond
	DefaultStatusClearDelay = 3000 * time.Millisecond

	FallbackMessage = "I'm having trouble connecting to my neural network. Please try again."

	StatusUnsupported = "Error: Only .txt files supported for now."
	StatusComplete    = "Upload Complete!"
	StatusFailed      = "Upload Failed."
	StatusConnection  = "Connection Error."

	// AcceptedFileType is compared verbatim against the declared file type.
	AcceptedFileType = "text/plain"
)

// Colors used on the status line and the drop target border.
const (
	ColorInfo     = "#38bdf8"
	ColorSuccess  = "#4ade80"
	ColorError    = "red"
	ColorActive   = "#38bdf8"
	ColorInactive = "#94a3b8"
)

// Config holds the endpoints and presentation timings of a widget.
type Config struct {
	// BaseURL is prefixed to ChatPath and UploadPath, e.g. "http://127.0.0.1:5000".
	BaseURL    string
	ChatPath   string
	UploadPath string

	// ResponseDelay is the minimum time the typing indicator stays up after a
	// successful reply. Zero renders the reply immediately.
	ResponseDelay time.Duration
	// StatusClearDelay is how long "Upload Complete!" stays on screen.
	StatusClearDelay time.Duration

	HTTPClient *http.Client
	Clock      Clock
}

// DefaultConfig returns a Config pointing at baseURL with the stock timings.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:          baseURL,
		ChatPath:         DefaultChatPath,
		UploadPath:       DefaultUploadPath,
		ResponseDelay:    DefaultResponseDelay,
		StatusClearDelay: DefaultStatusClearDelay,
	}
}

func (c Config) withDefaults() Config {
	if c.ChatPath == "" {
		c.ChatPath = DefaultChatPath
	}
	if c.UploadPath == "" {
		c.UploadPath = DefaultUploadPath
	}
	if c.ResponseDelay < 0 {
		c.ResponseDelay = 0
	}
	if c.StatusClearDelay < 0 {
		c.StatusClearDelay = 0
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Clock == nil {
		c.Clock = SystemClock()
	}
	return c
}
