package handlers

import (
	"net/http"

	"github.com/deepgram/asklyn/internal/services/knowledge"
	"github.com/deepgram/asklyn/pkg/httpext"
	"github.com/deepgram/asklyn/pkg/logger"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Documents int    `json:"documents"`
}

func HandleHealth(kb *knowledge.Service, w http.ResponseWriter, r *http.Request) {
	n, err := kb.Count(r.Context())
	if err != nil {
		logger.Error(logger.HANDLER, "Health check failed: %v", err)
		httpext.JsonResponse(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	httpext.JsonResponse(w, http.StatusOK, HealthResponse{Status: "ok", Documents: n})
}
