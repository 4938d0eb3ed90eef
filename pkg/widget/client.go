package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

var (
	// ErrMalformedResponse is returned when a 2xx reply cannot be decoded.
	ErrMalformedResponse = errors.New("malformed response body")
)

// StatusError is a completed request answered with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("POST %s: unexpected status %d %s", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
}

// ChatBackend answers one user message.
type ChatBackend interface {
	Chat(ctx context.Context, message string) (string, error)
}

// UploadBackend accepts one file.
type UploadBackend interface {
	Upload(ctx context.Context, file File) (*UploadResult, error)
}

// UploadResult is the decoded body of a successful upload, when the server sent one.
type UploadResult struct {
	Message   string `json:"message"`
	TotalDocs int    `json:"total_docs"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response *string `json:"response"`
}

// Client talks to the AskLyn HTTP endpoints.
type Client struct {
	http      *http.Client
	chatURL   string
	uploadURL string
}

func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	base := strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		http:      cfg.HTTPClient,
		chatURL:   base + cfg.ChatPath,
		uploadURL: base + cfg.UploadPath,
	}
}

// Chat posts message and returns the bot's reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Endpoint: req.URL.Path, StatusCode: resp.StatusCode}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.Response == nil {
		return "", fmt.Errorf("%w: missing response field", ErrMalformedResponse)
	}
	return *out.Response, nil
}

// Upload sends file as the "file" field of a multipart form. Success is
// decided by the status code alone; the body is decoded when it is JSON.
func (c *Client) Upload(ctx context.Context, file File) (*UploadResult, error) {
	body, contentType, err := encodeFile(file)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, body)
	if err != nil {
		return nil, fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Endpoint: req.URL.Path, StatusCode: resp.StatusCode}
	}

	result := &UploadResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil && !errors.Is(err, io.EOF) {
		return result, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return result, nil
}

func encodeFile(file File) (io.Reader, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("opening %s: %w", file.Name(), err)
	}
	defer src.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Name())))
	partType := file.Type()
	if partType == "" {
		partType = "application/octet-stream"
	}
	h.Set("Content-Type", partType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("creating form part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", file.Name(), err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
