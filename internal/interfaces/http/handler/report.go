package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/application/report"
	domainidentity "github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/interfaces/http/middleware"
)

// ReportHandler serves dashboard and summary report endpoints
type ReportHandler struct {
	BaseHandler
	dashboards *report.DashboardService
}

// NewReportHandler creates a report handler
func NewReportHandler(dashboards *report.DashboardService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{BaseHandler: NewBaseHandler(logger), dashboards: dashboards}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard",
		middleware.RequireModuleAccess(domainidentity.ModuleDashboard),
		h.Dashboard)

	reports := rg.Group("/reports")
	reports.Use(middleware.RequireModuleAccess(domainidentity.ModuleReports))
	{
		reports.GET("/households", h.HouseholdSummary)
		reports.GET("/grants", h.GrantSummary)
		reports.GET("/savings", h.SavingsSummary)
		reports.GET("/training", h.TrainingSummary)
		reports.GET("/group-health", h.GroupHealthSummary)
		reports.GET("/programs/:id/funnel", h.ProgramFunnel)
	}
}

// Dashboard returns the combined program dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.dashboards.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// HouseholdSummary returns registry-wide household statistics
func (h *ReportHandler) HouseholdSummary(c *gin.Context) {
	summary, err := h.dashboards.HouseholdSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GrantSummary returns grant pipeline and disbursement totals
func (h *ReportHandler) GrantSummary(c *gin.Context) {
	summary, err := h.dashboards.GrantSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// SavingsSummary returns savings totals with a monthly trend
func (h *ReportHandler) SavingsSummary(c *gin.Context) {
	months := 0
	if raw := c.Query("trend_months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "trend_months must be an integer")
			return
		}
		months = parsed
	}

	summary, err := h.dashboards.SavingsSummary(c.Request.Context(), months)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// TrainingSummary returns training delivery and attendance statistics
func (h *ReportHandler) TrainingSummary(c *gin.Context) {
	summary, err := h.dashboards.TrainingSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GroupHealthSummary returns the traffic light distribution of business groups
func (h *ReportHandler) GroupHealthSummary(c *gin.Context) {
	summary, err := h.dashboards.GroupHealthSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ProgramFunnel returns the enrollment funnel of one program
func (h *ReportHandler) ProgramFunnel(c *gin.Context) {
	programID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	funnel, err := h.dashboards.ProgramFunnel(c.Request.Context(), programID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, funnel)
}
