package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/application/household"
	domainidentity "github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/interfaces/http/middleware"
)

// HouseholdHandler serves household registry and eligibility endpoints
type HouseholdHandler struct {
	BaseHandler
	households  *household.Service
	eligibility *household.EligibilityService
}

// NewHouseholdHandler creates a household handler
func NewHouseholdHandler(households *household.Service, eligibility *household.EligibilityService, logger *zap.Logger) *HouseholdHandler {
	return &HouseholdHandler{
		BaseHandler: NewBaseHandler(logger),
		households:  households,
		eligibility: eligibility,
	}
}

// RegisterRoutes registers household routes
func (h *HouseholdHandler) RegisterRoutes(rg *gin.RouterGroup) {
	guard := middleware.RequireModuleAccess(domainidentity.ModuleHouseholds)

	households := rg.Group("/households")
	households.Use(guard)
	{
		households.POST("", h.Register)
		households.GET("", h.List)
		households.GET("/:id", h.Get)
		households.PATCH("/:id", h.Update)
		households.DELETE("/:id", h.Delete)
		households.POST("/:id/members", h.AddMember)
		households.DELETE("/:id/members/:memberID", h.RemoveMember)
		households.POST("/:id/ppi-assessments", h.RecordPPI)
		households.GET("/:id/ppi-assessments", h.ListPPI)
		households.GET("/:id/eligibility", h.AssessEligibility)
		households.POST("/:id/qualifications", h.Qualify)
	}

	// Batch assessment covers every household in a village.
	rg.POST("/villages/:id/eligibility-assessments", guard, h.BatchAssess)
}

// Register records a new household
func (h *HouseholdHandler) Register(c *gin.Context) {
	var req household.RegisterHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	hh, err := h.households.RegisterHousehold(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, hh)
}

// List returns households matching the filter
func (h *HouseholdHandler) List(c *gin.Context) {
	var filter household.HouseholdListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	households, total, err := h.households.ListHouseholds(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, households, total, filter.Page, filter.PageSize)
}

// Get returns a single household with its members
func (h *HouseholdHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	hh, err := h.households.GetHousehold(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, hh)
}

// Update applies a partial update to a household
func (h *HouseholdHandler) Update(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req household.UpdateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	hh, err := h.households.UpdateHousehold(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, hh)
}

// Delete removes a household
func (h *HouseholdHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.households.DeleteHousehold(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddMember adds a member to a household
func (h *HouseholdHandler) AddMember(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req household.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	hh, err := h.households.AddMember(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, hh)
}

// RemoveMember removes a member from a household
func (h *HouseholdHandler) RemoveMember(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberID")
	if !ok {
		return
	}

	hh, err := h.households.RemoveMember(c.Request.Context(), id, memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, hh)
}

// RecordPPI records a Poverty Probability Index assessment
func (h *HouseholdHandler) RecordPPI(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req household.RecordPPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	assessment, err := h.households.RecordPPIAssessment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, assessment)
}

// ListPPI lists a household's PPI assessment history
func (h *HouseholdHandler) ListPPI(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	assessments, err := h.households.ListPPIAssessments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, assessments)
}

// AssessEligibility scores a household against the eligibility criteria
func (h *HouseholdHandler) AssessEligibility(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.eligibility.AssessEligibility(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

type qualifyRequest struct {
	ProgramID string `json:"program_id" binding:"required,uuid"`
}

// Qualify checks a household against a specific program's requirements
func (h *HouseholdHandler) Qualify(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req qualifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	programID := mustParseUUID(req.ProgramID)

	report, err := h.eligibility.QualifyHousehold(c.Request.Context(), id, programID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// BatchAssess scores every household in a village
func (h *HouseholdHandler) BatchAssess(c *gin.Context) {
	villageID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	entries, err := h.eligibility.BatchAssess(c.Request.Context(), villageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
