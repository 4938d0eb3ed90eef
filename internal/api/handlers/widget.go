package handlers

import (
	"net/http"

	"github.com/deepgram/asklyn/pkg/logger"
	"github.com/deepgram/asklyn/web"
)

// HandleIndex serves the chat page.
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	serveAsset(w, r, web.IndexPath, "text/html; charset=utf-8")
}

// HandleWidgetJS serves the widget script. It is never cached so a redeploy
// takes effect on the next page load.
func HandleWidgetJS(w http.ResponseWriter, r *http.Request) {
	log := logger.Fields(logger.HANDLER)
	log.Info().
		Str("client_ip", r.RemoteAddr).
		Str("user_agent", r.UserAgent()).
		Msg("Widget.js requested")

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	serveAsset(w, r, web.WidgetPath, "application/javascript")
}

func serveAsset(w http.ResponseWriter, r *http.Request, path, contentType string) {
	body, err := web.Static.ReadFile(path)
	if err != nil {
		logger.Error(logger.HANDLER, "Missing embedded asset %s: %v", path, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(body); err != nil {
		logger.Debug(logger.HANDLER, "Failed to write %s to %s: %v", path, r.RemoteAddr, err)
	}
}
