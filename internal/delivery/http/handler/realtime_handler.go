package handler

import (
	"log/slog"

	"github.com/gdugdh24/roommate-backend/internal/infrastructure/realtime"
	"github.com/gin-gonic/gin"
)

type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Connect handles GET /ws
func (h *RealtimeHandler) Connect(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	// Upgrade writes its own error response.
	if err := h.hub.Serve(c.Writer, c.Request, userID); err != nil {
		slog.DebugContext(c.Request.Context(), "websocket upgrade failed", "user_id", userID, "error", err)
	}
}
