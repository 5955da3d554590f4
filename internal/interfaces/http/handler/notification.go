package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/application/notification"
	domainidentity "github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/interfaces/http/middleware"
)

// NotificationHandler serves SMS delivery log endpoints
type NotificationHandler struct {
	BaseHandler
	notifications *notification.Service
}

// NewNotificationHandler creates a notification handler
func NewNotificationHandler(notifications *notification.Service, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{BaseHandler: NewBaseHandler(logger), notifications: notifications}
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sms := rg.Group("/sms")
	sms.Use(middleware.RequireModuleAccess(domainidentity.ModuleSettings))
	{
		sms.GET("/logs", h.ListLogs)
		sms.GET("/stats", h.DeliveryStats)
	}

	rg.GET("/households/:id/messages",
		middleware.RequireModuleAccess(domainidentity.ModuleHouseholds),
		h.HouseholdMessages)
}

// ListLogs lists SMS delivery attempts matching the filter
func (h *NotificationHandler) ListLogs(c *gin.Context) {
	var filter notification.LogListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	logs, total, err := h.notifications.ListLogs(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, logs, total, filter.Page, filter.PageSize)
}

// DeliveryStats returns aggregate SMS delivery counts
func (h *NotificationHandler) DeliveryStats(c *gin.Context) {
	stats, err := h.notifications.DeliveryStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// HouseholdMessages lists messages sent to a household
func (h *NotificationHandler) HouseholdMessages(c *gin.Context) {
	householdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id must be a valid UUID")
		return
	}

	messages, err := h.notifications.HouseholdMessages(c.Request.Context(), householdID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, messages)
}
