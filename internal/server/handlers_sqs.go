package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wmachuca/localstack-studio/internal/domain"
	apperrors "github.com/wmachuca/localstack-studio/internal/errors"
)

type sendMessageRequest struct {
	MessageBody       string                             `json:"message_body"`
	MessageAttributes map[string]domain.MessageAttribute `json:"message_attributes,omitempty"`
	DelaySeconds      int32                              `json:"delay_seconds"`
}

type deleteMessageRequest struct {
	ReceiptHandle string `json:"receipt_handle"`
}

type createQueueRequest struct {
	QueueName  string            `json:"queue_name"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func (s *Server) handleListQueues(c echo.Context) error {
	queues, err := s.queues.ListQueues(c.Request().Context())
	if err != nil {
		return apperrors.ExternalError("failed to list queues", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"queues": queues,
		"count":  len(queues),
	})
}

func (s *Server) handleGetQueueInfo(c echo.Context) error {
	name := c.Param("name")

	attributes, err := s.queues.GetQueueAttributes(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrQueueNotFound) {
			return apperrors.NotFoundError("queue not found").WithField("queue", name)
		}
		return apperrors.ExternalError("failed to get queue attributes", err).WithField("queue", name)
	}

	return c.JSON(http.StatusOK, attributes)
}

func (s *Server) handleSendMessage(c echo.Context) error {
	name := c.Param("name")

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.MessageBody == "" {
		return apperrors.ValidationError("message_body is required")
	}
	if req.DelaySeconds < 0 || req.DelaySeconds > 900 {
		return apperrors.ValidationError("delay_seconds must be between 0 and 900")
	}

	result, err := s.queues.SendMessage(c.Request().Context(), name, req.MessageBody, req.MessageAttributes, req.DelaySeconds)
	if err != nil {
		if errors.Is(err, domain.ErrQueueNotFound) {
			return apperrors.NotFoundError("queue not found").WithField("queue", name)
		}
		return apperrors.ExternalError("failed to send message", err).WithField("queue", name)
	}

	slog.Info("Message sent", "queue", name, "message_id", result.MessageID)
	return c.JSON(http.StatusOK, map[string]any{
		"success":          true,
		"messageId":        result.MessageID,
		"md5OfMessageBody": result.MD5OfMessageBody,
	})
}

func (s *Server) handleDeleteMessage(c echo.Context) error {
	name := c.Param("name")

	var req deleteMessageRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.ReceiptHandle == "" {
		return apperrors.ValidationError("receipt_handle is required")
	}

	if err := s.queues.DeleteMessage(c.Request().Context(), name, req.ReceiptHandle); err != nil {
		if errors.Is(err, domain.ErrQueueNotFound) {
			return apperrors.NotFoundError("queue not found").WithField("queue", name)
		}
		return apperrors.ExternalError("failed to delete message", err).WithField("queue", name)
	}

	slog.Info("Message deleted", "queue", name)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Message deleted successfully",
	})
}

func (s *Server) handleCreateQueue(c echo.Context) error {
	var req createQueueRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.QueueName == "" {
		return apperrors.ValidationError("queue_name is required")
	}

	url, err := s.queues.CreateQueue(c.Request().Context(), req.QueueName, req.Attributes)
	if err != nil {
		return apperrors.ExternalError("failed to create queue", err).WithField("queue", req.QueueName)
	}

	slog.Info("Queue created", "queue", req.QueueName)
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"queueUrl":  url,
		"queueName": req.QueueName,
	})
}

func (s *Server) handleDeleteQueue(c echo.Context) error {
	name := c.Param("name")

	if err := s.queues.DeleteQueue(c.Request().Context(), name); err != nil {
		if errors.Is(err, domain.ErrQueueNotFound) {
			return apperrors.NotFoundError("queue not found").WithField("queue", name)
		}
		return apperrors.ExternalError("failed to delete queue", err).WithField("queue", name)
	}

	slog.Info("Queue deleted", "queue", name)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Queue " + name + " deleted successfully",
	})
}
