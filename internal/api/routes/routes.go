package routes

import (
	"net/http"

	"github.com/deepgram/asklyn/internal/api/handlers"
	"github.com/deepgram/asklyn/internal/api/middleware"
	"github.com/deepgram/asklyn/internal/config"
	"github.com/deepgram/asklyn/internal/services"
	"github.com/gorilla/mux"
)

// NewRouter builds the server's router with request logging on every route.
func NewRouter(services *services.Services) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger)
	RegisterRoutes(router, services)
	return router
}

func RegisterRoutes(router *mux.Router, services *services.Services) {
	maxUploadBytes := config.GetMaxUploadBytes()

	// Page and widget
	router.HandleFunc("/", handlers.HandleIndex).Methods("GET")
	router.HandleFunc("/widget.js", handlers.HandleWidgetJS).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleHealth(services.GetKnowledgeService(), w, r)
	}).Methods("GET")

	// Chat and knowledge-base routes
	router.Handle("/chat", middleware.RateLimit("chat")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleChat(services.GetChatService(), w, r)
	}))).Methods("POST")
	router.Handle("/upload", middleware.RateLimit("upload")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleUpload(services.GetKnowledgeService(), maxUploadBytes, w, r)
	}))).Methods("POST")
	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleChatSocket(services.GetChatService(), services.GetConnections(), w, r)
	})
}
