package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/application/group"
	domainidentity "github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/interfaces/http/middleware"
)

// GroupHandler serves business group and savings group endpoints
type GroupHandler struct {
	BaseHandler
	business *group.BusinessService
	savings  *group.SavingsService
}

// NewGroupHandler creates a group handler
func NewGroupHandler(business *group.BusinessService, savings *group.SavingsService, logger *zap.Logger) *GroupHandler {
	return &GroupHandler{
		BaseHandler: NewBaseHandler(logger),
		business:    business,
		savings:     savings,
	}
}

// RegisterRoutes registers group routes
func (h *GroupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	business := rg.Group("/business-groups")
	business.Use(middleware.RequireModuleAccess(domainidentity.ModuleBusinessGroups))
	{
		business.POST("", h.FormBusinessGroup)
		business.GET("", h.ListBusinessGroups)
		business.GET("/:id", h.GetBusinessGroup)
		business.PATCH("/:id", h.UpdateBusinessGroup)
		business.POST("/:id/members", h.AddBusinessMember)
		business.DELETE("/:id/members/:householdID", h.RemoveBusinessMember)
		business.POST("/:id/health", h.RateHealth)
		business.POST("/:id/suspend", h.businessTransition(h.business.SuspendGroup))
		business.POST("/:id/reactivate", h.businessTransition(h.business.ReactivateGroup))
		business.POST("/:id/withdraw", h.businessTransition(h.business.WithdrawGroup))
		business.POST("/:id/progress-surveys", h.RecordBusinessSurvey)
		business.GET("/:id/progress-surveys", h.ListBusinessSurveys)
	}

	rg.GET("/programs/:id/business-groups",
		middleware.RequireModuleAccess(domainidentity.ModuleBusinessGroups),
		h.ListBusinessGroupsByProgram)

	savings := rg.Group("/savings-groups")
	savings.Use(middleware.RequireModuleAccess(domainidentity.ModuleSavingsGroups))
	{
		savings.POST("", h.FormSavingsGroup)
		savings.GET("", h.ListSavingsGroups)
		savings.GET("/:id", h.GetSavingsGroup)
		savings.POST("/:id/members", h.AddSavingsMember)
		savings.DELETE("/:id/members/:householdID", h.RemoveSavingsMember)
		savings.POST("/:id/business-groups", h.AttachBusinessGroup)
		savings.DELETE("/:id/business-groups/:businessGroupID", h.DetachBusinessGroup)
		savings.POST("/:id/savings", h.RecordSaving)
		savings.GET("/:id/savings", h.ListSavings)
		savings.POST("/:id/progress-surveys", h.RecordSavingsSurvey)
		savings.GET("/:id/progress-surveys", h.ListSavingsSurveys)
		savings.POST("/:id/deactivate", h.DeactivateSavingsGroup)
	}
}

// FormBusinessGroup forms a new business group
func (h *GroupHandler) FormBusinessGroup(c *gin.Context) {
	var req group.FormBusinessGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	g, err := h.business.FormGroup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, g)
}

// ListBusinessGroups returns business groups matching the filter
func (h *GroupHandler) ListBusinessGroups(c *gin.Context) {
	var filter group.BusinessGroupListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	groups, total, err := h.business.ListGroups(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, groups, total, filter.Page, filter.PageSize)
}

// ListBusinessGroupsByProgram returns business groups in a program
func (h *GroupHandler) ListBusinessGroupsByProgram(c *gin.Context) {
	programID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var filter group.BusinessGroupListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	groups, total, err := h.business.ListGroupsByProgram(c.Request.Context(), programID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, groups, total, filter.Page, filter.PageSize)
}

// GetBusinessGroup returns a single business group
func (h *GroupHandler) GetBusinessGroup(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	g, err := h.business.GetGroup(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// UpdateBusinessGroup applies a partial update to a business group
func (h *GroupHandler) UpdateBusinessGroup(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req group.UpdateBusinessGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	g, err := h.business.UpdateGroup(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// AddBusinessMember adds a household to a business group
func (h *GroupHandler) AddBusinessMember(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req group.GroupMemberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	g, err := h.business.AddMember(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// RemoveBusinessMember removes a household from a business group
func (h *GroupHandler) RemoveBusinessMember(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	householdID, ok := h.pathUUID(c, "householdID")
	if !ok {
		return
	}

	g, err := h.business.RemoveMember(c.Request.Context(), id, householdID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// RateHealth records a traffic light health rating for a business group
func (h *GroupHandler) RateHealth(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req group.RateHealthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	g, err := h.business.RateHealth(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

func (h *GroupHandler) businessTransition(fn func(ctx context.Context, id uuid.UUID) (*group.BusinessGroupResponse, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathUUID(c, "id")
		if !ok {
			return
		}
		g, err := fn(c.Request.Context(), id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, g)
	}
}

// RecordBusinessSurvey records a progress survey for a business group
func (h *GroupHandler) RecordBusinessSurvey(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req group.RecordBusinessSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	s, err := h.business.RecordProgressSurvey(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, s)
}

// ListBusinessSurveys lists a business group's progress surveys
func (h *GroupHandler) ListBusinessSurveys(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	surveys, err := h.business.ListProgressSurveys(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, surveys)
}

// FormSavingsGroup forms a new savings group
func (h *GroupHandler) FormSavingsGroup(c *gin.Context) {
	var req group.FormSavingsGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	g, err := h.savings.FormGroup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, g)
}

// ListSavingsGroups returns savings groups matching the filter
func (h *GroupHandler) ListSavingsGroups(c *gin.Context) {
	var filter group.SavingsGroupListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	groups, total, err := h.savings.ListGroups(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, groups, total, filter.Page, filter.PageSize)
}

// GetSavingsGroup returns a single savings group with its roster
func (h *GroupHandler) GetSavingsGroup(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	g, err := h.savings.GetGroup(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// AddSavingsMember adds a household to a savings group
func (h *GroupHandler) AddSavingsMember(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req group.GroupMemberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	g, err := h.savings.AddMember(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// RemoveSavingsMember removes a household from a savings group
func (h *GroupHandler) RemoveSavingsMember(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	householdID, ok := h.pathUUID(c, "householdID")
	if !ok {
		return
	}

	g, err := h.savings.RemoveMember(c.Request.Context(), id, householdID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

type attachBusinessGroupRequest struct {
	BusinessGroupID uuid.UUID `json:"business_group_id" binding:"required"`
}

// AttachBusinessGroup links a business group to a savings group
func (h *GroupHandler) AttachBusinessGroup(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req attachBusinessGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	g, err := h.savings.AttachBusinessGroup(c.Request.Context(), id, req.BusinessGroupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// DetachBusinessGroup unlinks a business group from a savings group
func (h *GroupHandler) DetachBusinessGroup(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	businessGroupID, ok := h.pathUUID(c, "businessGroupID")
	if !ok {
		return
	}

	g, err := h.savings.DetachBusinessGroup(c.Request.Context(), id, businessGroupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// RecordSaving records a savings contribution
func (h *GroupHandler) RecordSaving(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req group.RecordSavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.savings.RecordSaving(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// ListSavings lists a savings group's contribution records
func (h *GroupHandler) ListSavings(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	records, err := h.savings.ListRecords(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// RecordSavingsSurvey records a progress survey for a savings group
func (h *GroupHandler) RecordSavingsSurvey(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req group.RecordSavingsSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	s, err := h.savings.RecordProgressSurvey(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, s)
}

// ListSavingsSurveys lists a savings group's progress surveys
func (h *GroupHandler) ListSavingsSurveys(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	surveys, err := h.savings.ListProgressSurveys(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, surveys)
}

// DeactivateSavingsGroup deactivates a savings group
func (h *GroupHandler) DeactivateSavingsGroup(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	g, err := h.savings.DeactivateGroup(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}
