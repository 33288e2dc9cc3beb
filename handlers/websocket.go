package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/highq/crm-backend/services"
)

// WebSocketHandler upgrades connections into the update-signal hub.
type WebSocketHandler struct {
	hub *services.Hub
}

func NewWebSocketHandler(hub *services.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // CORS is enforced at the HTTP layer
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		return
	}

	h.hub.ServeClient(conn)
}
