package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/application/audit"
	domainidentity "github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/interfaces/http/middleware"
)

// SettingsHandler serves system configuration and audit trail endpoints
type SettingsHandler struct {
	BaseHandler
	configs *audit.ConfigService
	logs    *audit.LogService
}

// NewSettingsHandler creates a settings handler
func NewSettingsHandler(configs *audit.ConfigService, logs *audit.LogService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: NewBaseHandler(logger),
		configs:     configs,
		logs:        logs,
	}
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	settings := rg.Group("/settings")
	settings.Use(middleware.RequireModuleAccess(domainidentity.ModuleSettings))
	{
		settings.PUT("/configurations", h.SetConfiguration)
		settings.GET("/configurations", h.ListConfigurations)
		settings.GET("/configurations/:key", h.GetConfiguration)
		settings.PATCH("/configurations/:key", h.UpdateConfiguration)
		settings.DELETE("/configurations/:key", h.DeleteConfiguration)
		settings.GET("/audit-logs", h.ListAuditLogs)
		settings.GET("/audit-logs/history", h.ObjectHistory)
		settings.DELETE("/audit-logs", h.PurgeAuditLogs)
	}

	// Public settings feed client applications without privileged access.
	rg.GET("/settings/public", h.ListPublicConfigurations)
}

// SetConfiguration creates or replaces a configuration entry
func (h *SettingsHandler) SetConfiguration(c *gin.Context) {
	var req audit.SetConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if actorID, ok := authenticatedUserID(c); ok {
		req.ActorID = &actorID
	}

	cfg, err := h.configs.SetConfiguration(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}

// ListConfigurations lists configuration entries, optionally by category
func (h *SettingsHandler) ListConfigurations(c *gin.Context) {
	configs, err := h.configs.ListConfigurations(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, configs)
}

// ListPublicConfigurations lists configuration entries marked public
func (h *SettingsHandler) ListPublicConfigurations(c *gin.Context) {
	configs, err := h.configs.ListPublicConfigurations(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, configs)
}

// GetConfiguration returns a single configuration entry
func (h *SettingsHandler) GetConfiguration(c *gin.Context) {
	cfg, err := h.configs.GetConfiguration(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}

// UpdateConfiguration changes the value or metadata of an entry
func (h *SettingsHandler) UpdateConfiguration(c *gin.Context) {
	var req audit.UpdateConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if actorID, ok := authenticatedUserID(c); ok {
		req.ActorID = &actorID
	}

	cfg, err := h.configs.UpdateConfiguration(c.Request.Context(), c.Param("key"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}

// DeleteConfiguration removes an editable configuration entry
func (h *SettingsHandler) DeleteConfiguration(c *gin.Context) {
	if err := h.configs.DeleteConfiguration(c.Request.Context(), c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListAuditLogs lists audit trail entries matching the filter
func (h *SettingsHandler) ListAuditLogs(c *gin.Context) {
	var filter audit.LogListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, total, err := h.logs.ListEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// ObjectHistory lists the audit trail of a single record
func (h *SettingsHandler) ObjectHistory(c *gin.Context) {
	modelName := c.Query("model")
	objectID := c.Query("object_id")
	if modelName == "" || objectID == "" {
		h.BadRequest(c, "model and object_id are required")
		return
	}

	entries, err := h.logs.ObjectHistory(c.Request.Context(), modelName, objectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// PurgeAuditLogs deletes audit entries older than the cutoff date
func (h *SettingsHandler) PurgeAuditLogs(c *gin.Context) {
	raw := c.Query("before")
	cutoff, err := time.Parse("2006-01-02", raw)
	if err != nil {
		h.BadRequest(c, "before must be a date in YYYY-MM-DD form")
		return
	}

	removed, err := h.logs.PurgeBefore(c.Request.Context(), cutoff)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"removed": removed})
}
