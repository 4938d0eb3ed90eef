package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/deepgram/asklyn/internal/services/chat"
	"github.com/deepgram/asklyn/pkg/httpext"
	"github.com/deepgram/asklyn/pkg/logger"
	"github.com/go-playground/validator/v10"
)

// ChatRequest is the body accepted by POST /chat and by socket frames.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// use a single instance of Validate, it caches struct info
var validate = validator.New(validator.WithRequiredStructEnabled())

// HandleChat answers a single chat message with the retrieved context and a reply.
func HandleChat(chatService *chat.Service, w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn(logger.HANDLER, "Client sent malformed JSON request: %v", err)
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		logger.Warn(logger.HANDLER, "Chat request validation failed: %v", err)
		httpext.JsonError(w, "No message provided", http.StatusBadRequest)
		return
	}

	reply, err := chatService.Respond(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			httpext.JsonError(w, "No message provided", http.StatusBadRequest)
			return
		}
		logger.Error(logger.HANDLER, "Chat service error: %v", err)
		httpext.JsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	logger.Debug(logger.HANDLER, "Chat reply used %d passages", len(reply.ContextUsed))
	httpext.JsonResponse(w, http.StatusOK, reply)
}
