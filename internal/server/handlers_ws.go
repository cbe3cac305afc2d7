package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	apperrors "github.com/wmachuca/localstack-studio/internal/errors"
)

// The dashboard front end is served from a different origin in development,
// and the API carries no credentials.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleMessagesWebSocket upgrades the connection and subscribes it to the
// queue's message stream. The queue does not need to exist yet: the polling
// task retries until it does, so a dashboard can watch a queue that is about
// to be created.
func (s *Server) handleMessagesWebSocket(c echo.Context) error {
	queueName := c.Param("queue")
	if queueName == "" {
		return apperrors.ValidationError("queue name is required")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	if err := s.manager.Connect(queueName, conn); err != nil {
		slog.Warn("Failed to register streaming client", "queue", queueName, "error", err)
		return nil
	}
	slog.Info("Client connected", "queue", queueName)

	// Read pump. Client frames are keep-alives only; block until the
	// connection closes.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.manager.Disconnect(queueName, conn)
	slog.Info("Client disconnected", "queue", queueName)

	return nil
}
