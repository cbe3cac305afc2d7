package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/", s.handleRoot)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// SQS routes
	s.echo.GET("/queues", s.handleListQueues)
	s.echo.POST("/queue", s.handleCreateQueue)
	s.echo.GET("/queue/:name", s.handleGetQueueInfo)
	s.echo.DELETE("/queue/:name", s.handleDeleteQueue)
	s.echo.POST("/queue/:name/message", s.handleSendMessage)
	s.echo.DELETE("/queue/:name/message", s.handleDeleteMessage)

	// DynamoDB routes
	s.echo.GET("/dynamodb/tables", s.handleListTables)
	s.echo.POST("/dynamodb/tables", s.handleCreateTable)
	s.echo.GET("/dynamodb/tables/:table", s.handleDescribeTable)
	s.echo.DELETE("/dynamodb/tables/:table", s.handleDeleteTable)
	s.echo.POST("/dynamodb/tables/:table/scan", s.handleScanTable)
	s.echo.POST("/dynamodb/tables/:table/query", s.handleQueryTable)
	s.echo.POST("/dynamodb/tables/:table/items/get", s.handleGetItem)
	s.echo.POST("/dynamodb/tables/:table/items", s.handlePutItem)
	s.echo.DELETE("/dynamodb/tables/:table/items", s.handleDeleteItem)

	// Streaming endpoint
	s.echo.GET("/ws/messages/:queue", s.handleMessagesWebSocket)
}
