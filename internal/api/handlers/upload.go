package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/deepgram/asklyn/internal/services/knowledge"
	"github.com/deepgram/asklyn/pkg/httpext"
	"github.com/deepgram/asklyn/pkg/logger"
	"github.com/gabriel-vasile/mimetype"
)

const uploadField = "file"

// UploadResponse is returned when a document has been added to the knowledge base.
type UploadResponse struct {
	Message   string `json:"message"`
	TotalDocs int    `json:"total_docs"`
}

// HandleUpload adds the text file in the multipart field "file" to the knowledge base.
func HandleUpload(kb *knowledge.Service, maxBytes int64, w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > maxBytes {
		logger.Warn(logger.HANDLER, "Upload of %d bytes exceeds %d", r.ContentLength, maxBytes)
		httpext.JsonError(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn(logger.HANDLER, "Upload exceeds %d bytes", maxBytes)
			httpext.JsonError(w, "File too large", http.StatusRequestEntityTooLarge)
			return
		}
		logger.Warn(logger.HANDLER, "Upload is not a multipart form: %v", err)
		httpext.JsonError(w, "No file part", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		// A part submitted without a filename is parsed as a plain value
		if _, ok := r.MultipartForm.Value[uploadField]; ok {
			httpext.JsonError(w, "No selected file", http.StatusBadRequest)
			return
		}
		httpext.JsonError(w, "No file part", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		httpext.JsonError(w, "No selected file", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error(logger.HANDLER, "Failed to read uploaded file %s: %v", header.Filename, err)
		httpext.JsonError(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	if len(data) > 0 && !isPlainText(data) {
		logger.Warn(logger.HANDLER, "Rejected %s: detected %s", header.Filename, mimetype.Detect(data))
		httpext.JsonError(w, "Only text files are supported", http.StatusUnsupportedMediaType)
		return
	}

	total, err := kb.Add(r.Context(), header.Filename, string(data))
	if err != nil {
		if errors.Is(err, knowledge.ErrEmptyDocument) {
			httpext.JsonError(w, "File is empty", http.StatusBadRequest)
			return
		}
		logger.Error(logger.HANDLER, "Failed to add %s to knowledge base: %v", header.Filename, err)
		httpext.JsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	logger.Info(logger.HANDLER, "File %s assimilated, knowledge base holds %d documents", header.Filename, total)
	httpext.JsonResponse(w, http.StatusOK, UploadResponse{
		Message:   fmt.Sprintf("File %s assimilated into Knowledge Base.", header.Filename),
		TotalDocs: total,
	})
}

// isPlainText reports whether the content sniffs as text/plain or one of its
// text subtypes (csv, json, ...).
func isPlainText(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
