package server

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/wmachuca/localstack-studio/internal/config"
	"github.com/wmachuca/localstack-studio/internal/domain"
	apperrors "github.com/wmachuca/localstack-studio/internal/errors"
	"github.com/wmachuca/localstack-studio/internal/stream"
)

type Server struct {
	echo    *echo.Echo
	config  *config.Config
	queues  domain.QueueService
	tables  domain.TableService
	manager *stream.Manager
}

func NewServer(cfg *config.Config, queues domain.QueueService, tables domain.TableService, manager *stream.Manager) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	// The dashboard front end runs on its own dev server.
	e.Use(middleware.CORS())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:    e,
		config:  cfg,
		queues:  queues,
		tables:  tables,
		manager: manager,
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
