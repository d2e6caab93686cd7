package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tubefetch/tubefetch/internal/logger"
	"github.com/tubefetch/tubefetch/internal/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Local single-user tool; the server only binds loopback.
		return true
	},
}

// Handler handles WebSocket connections for the progress feed.
type Handler struct {
	hub *Hub
	log *logger.Logger
}

// NewHandler creates a new WebSocket handler.
func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
		log: logger.Default().WithComponent("websocket"),
	}
}

// ServeWS upgrades the request and attaches the client to the hub.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error(r.Context(), "websocket upgrade failed", err)
		return
	}

	client := NewClient(h.hub, conn)
	h.hub.register <- client
	metrics.Default().IncWSConnections()

	go func() {
		client.WritePump()
	}()
	go func() {
		client.ReadPump()
		metrics.Default().DecWSConnections()
	}()
}

// Hub returns the hub instance for external access.
func (h *Handler) Hub() *Hub {
	return h.hub
}
