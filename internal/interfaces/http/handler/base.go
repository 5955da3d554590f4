package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common response helpers shared by all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return BaseHandler{logger: logger}
}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response, typically for binding failures
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", message)
}

// HandleError maps an error to an HTTP response. Domain errors carry their
// own code; anything else is treated as an internal fault and logged.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		if status >= http.StatusInternalServerError {
			h.logger.Error("request failed",
				zap.String("path", c.FullPath()),
				zap.String("code", domainErr.Code),
				zap.Error(err))
		}
		h.errorResponse(c, status, domainErr.Code, domainErr.Message)
		return
	}

	h.logger.Error("unhandled error",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	h.errorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
}

// mustParseUUID parses a string already validated by the uuid binding tag
func mustParseUUID(s string) uuid.UUID {
	id, _ := uuid.Parse(s)
	return id
}

// pathUUID parses a UUID path parameter, responding 400 on failure
func (h *BaseHandler) pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, name+" must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *BaseHandler) errorResponse(c *gin.Context, status int, code, message string) {
	requestID := c.GetString("request_id")
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, requestID))
}
