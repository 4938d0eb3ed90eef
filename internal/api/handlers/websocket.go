package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/deepgram/asklyn/internal/connections"
	"github.com/deepgram/asklyn/internal/services/chat"
	"github.com/deepgram/asklyn/pkg/httpext"
	"github.com/deepgram/asklyn/pkg/logger"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleChatSocket answers chat frames over a websocket. Each text frame is a
// ChatRequest; each answer is a chat.Reply or an httpext.ErrorResponse.
func HandleChatSocket(chatService *chat.Service, manager *connections.Manager, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn(logger.HANDLER, "Could not upgrade connection from %s: %v", r.RemoteAddr, err)
		return
	}

	manager.Add(conn)
	defer func() {
		manager.Remove(conn)
		conn.Close()
	}()

	timeouts := manager.Timeouts()

	// Set up ping/pong handlers
	conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))
	})

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(timeouts.PingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				deadline := time.Now().Add(timeouts.WriteWait)
				if err := conn.WriteControl(websocket.PingMessage, []byte{}, deadline); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	logger.Info(logger.HANDLER, "Socket chat opened from %s (%d open)", r.RemoteAddr, manager.Count())

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn(logger.HANDLER, "Unexpected socket closure: %v", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var out interface{}
		var req ChatRequest
		switch {
		case json.Unmarshal(message, &req) != nil:
			out = httpext.ErrorResponse{Error: "Invalid request format"}
		default:
			reply, err := chatService.Respond(r.Context(), req.Message)
			switch {
			case errors.Is(err, chat.ErrEmptyMessage):
				out = httpext.ErrorResponse{Error: "No message provided"}
			case err != nil:
				logger.Error(logger.HANDLER, "Chat service error: %v", err)
				out = httpext.ErrorResponse{Error: "Internal server error"}
			default:
				out = reply
			}
		}

		// Time spent generating does not count against the pong deadline
		conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))
		conn.SetWriteDeadline(time.Now().Add(timeouts.WriteWait))
		if err := conn.WriteJSON(out); err != nil {
			logger.Warn(logger.HANDLER, "Failed to write socket reply: %v", err)
			return
		}
	}
}
