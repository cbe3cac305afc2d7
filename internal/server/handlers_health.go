package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wmachuca/localstack-studio/internal/version"
)

const readinessTimeout = 5 * time.Second

func (s *Server) handleRoot(c echo.Context) error {
	info := version.Get()
	return c.JSON(http.StatusOK, map[string]string{
		"service": "LocalStack Studio API",
		"status":  "running",
		"version": info.Version,
	})
}

// handleLiveness reports process liveness only; no dependency checks.
func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadiness verifies the emulator is reachable.
func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	if _, err := s.queues.ListQueues(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"reason": "emulator unreachable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
