package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wmachuca/localstack-studio/internal/domain"
	apperrors "github.com/wmachuca/localstack-studio/internal/errors"
)

type scanRequest struct {
	Limit             int32      `json:"limit"`
	ExclusiveStartKey domain.Key `json:"exclusive_start_key,omitempty"`
}

type queryRequest struct {
	KeyConditionExpression    string         `json:"key_condition_expression"`
	ExpressionAttributeValues map[string]any `json:"expression_attribute_values"`
	IndexName                 string         `json:"index_name,omitempty"`
	Limit                     int32          `json:"limit"`
	ExclusiveStartKey         domain.Key     `json:"exclusive_start_key,omitempty"`
}

type getItemRequest struct {
	Key domain.Key `json:"key"`
}

type putItemRequest struct {
	Item domain.Item `json:"item"`
}

type deleteItemRequest struct {
	Key domain.Key `json:"key"`
}

type createTableRequest struct {
	TableName            string                       `json:"table_name"`
	KeySchema            []domain.KeyElement          `json:"key_schema"`
	AttributeDefinitions []domain.AttributeDefinition `json:"attribute_definitions"`
	BillingMode          string                       `json:"billing_mode"`
}

const defaultPageLimit = 50

func (s *Server) handleListTables(c echo.Context) error {
	tables, err := s.tables.ListTables(c.Request().Context())
	if err != nil {
		return apperrors.ExternalError("failed to list tables", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"tables": tables,
		"count":  len(tables),
	})
}

func (s *Server) handleDescribeTable(c echo.Context) error {
	name := c.Param("table")

	description, err := s.tables.DescribeTable(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return apperrors.NotFoundError("table not found").WithField("table", name)
		}
		return apperrors.ExternalError("failed to describe table", err).WithField("table", name)
	}

	return c.JSON(http.StatusOK, description)
}

func (s *Server) handleScanTable(c echo.Context) error {
	name := c.Param("table")

	req := scanRequest{Limit: defaultPageLimit}
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Limit < 0 {
		return apperrors.ValidationError("limit must not be negative")
	}

	page, err := s.tables.Scan(c.Request().Context(), name, req.Limit, req.ExclusiveStartKey)
	if err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return apperrors.NotFoundError("table not found").WithField("table", name)
		}
		return apperrors.ExternalError("failed to scan table", err).WithField("table", name)
	}

	slog.Info("Table scanned", "table", name, "count", page.Count)
	return c.JSON(http.StatusOK, page)
}

func (s *Server) handleQueryTable(c echo.Context) error {
	name := c.Param("table")

	req := queryRequest{Limit: defaultPageLimit}
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.KeyConditionExpression == "" {
		return apperrors.ValidationError("key_condition_expression is required")
	}
	if len(req.ExpressionAttributeValues) == 0 {
		return apperrors.ValidationError("expression_attribute_values is required")
	}

	page, err := s.tables.Query(c.Request().Context(), name, domain.QueryParams{
		KeyConditionExpression:    req.KeyConditionExpression,
		ExpressionAttributeValues: req.ExpressionAttributeValues,
		IndexName:                 req.IndexName,
		Limit:                     req.Limit,
		ExclusiveStartKey:         req.ExclusiveStartKey,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return apperrors.NotFoundError("table not found").WithField("table", name)
		}
		return apperrors.ExternalError("failed to query table", err).WithField("table", name)
	}

	slog.Info("Table queried", "table", name, "count", page.Count)
	return c.JSON(http.StatusOK, page)
}

func (s *Server) handleGetItem(c echo.Context) error {
	name := c.Param("table")

	var req getItemRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if len(req.Key) == 0 {
		return apperrors.ValidationError("key is required")
	}

	item, err := s.tables.GetItem(c.Request().Context(), name, req.Key)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return apperrors.NotFoundError("item not found").WithField("table", name)
		}
		if errors.Is(err, domain.ErrTableNotFound) {
			return apperrors.NotFoundError("table not found").WithField("table", name)
		}
		return apperrors.ExternalError("failed to get item", err).WithField("table", name)
	}

	return c.JSON(http.StatusOK, map[string]any{"item": item})
}

func (s *Server) handlePutItem(c echo.Context) error {
	name := c.Param("table")

	var req putItemRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if len(req.Item) == 0 {
		return apperrors.ValidationError("item is required")
	}

	if err := s.tables.PutItem(c.Request().Context(), name, req.Item); err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return apperrors.NotFoundError("table not found").WithField("table", name)
		}
		return apperrors.ExternalError("failed to put item", err).WithField("table", name)
	}

	slog.Info("Item written", "table", name)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Item created/updated successfully",
	})
}

func (s *Server) handleDeleteItem(c echo.Context) error {
	name := c.Param("table")

	var req deleteItemRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if len(req.Key) == 0 {
		return apperrors.ValidationError("key is required")
	}

	if err := s.tables.DeleteItem(c.Request().Context(), name, req.Key); err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return apperrors.NotFoundError("table not found").WithField("table", name)
		}
		return apperrors.ExternalError("failed to delete item", err).WithField("table", name)
	}

	slog.Info("Item deleted", "table", name)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Item deleted successfully",
	})
}

func (s *Server) handleCreateTable(c echo.Context) error {
	var req createTableRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.TableName == "" {
		return apperrors.ValidationError("table_name is required")
	}
	if len(req.KeySchema) == 0 {
		return apperrors.ValidationError("key_schema is required")
	}
	if len(req.AttributeDefinitions) == 0 {
		return apperrors.ValidationError("attribute_definitions is required")
	}

	description, err := s.tables.CreateTable(c.Request().Context(), req.TableName, req.KeySchema, req.AttributeDefinitions, req.BillingMode)
	if err != nil {
		return apperrors.ExternalError("failed to create table", err).WithField("table", req.TableName)
	}

	slog.Info("Table created", "table", req.TableName)
	return c.JSON(http.StatusOK, description)
}

func (s *Server) handleDeleteTable(c echo.Context) error {
	name := c.Param("table")

	if err := s.tables.DeleteTable(c.Request().Context(), name); err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return apperrors.NotFoundError("table not found").WithField("table", name)
		}
		return apperrors.ExternalError("failed to delete table", err).WithField("table", name)
	}

	slog.Info("Table deleted", "table", name)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Table " + name + " deleted successfully",
	})
}
