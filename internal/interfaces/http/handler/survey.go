package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/application/survey"
	domainidentity "github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/interfaces/http/middleware"
)

// SurveyHandler serves survey catalog and response endpoints
type SurveyHandler struct {
	BaseHandler
	surveys *survey.Service
}

// NewSurveyHandler creates a survey handler
func NewSurveyHandler(surveys *survey.Service, logger *zap.Logger) *SurveyHandler {
	return &SurveyHandler{BaseHandler: NewBaseHandler(logger), surveys: surveys}
}

// RegisterRoutes registers survey routes
func (h *SurveyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	guard := middleware.RequireModuleAccess(domainidentity.ModuleSurveys)

	surveys := rg.Group("/surveys", guard)
	{
		surveys.POST("", h.Create)
		surveys.GET("", h.List)
		surveys.GET("/:id", h.Get)
		surveys.PATCH("/:id", h.Update)
		surveys.DELETE("/:id", h.Delete)
		surveys.POST("/:id/versions", h.PublishVersion)
		surveys.POST("/:id/activate", h.transition(h.surveys.ActivateSurvey))
		surveys.POST("/:id/deactivate", h.transition(h.surveys.DeactivateSurvey))
		surveys.POST("/:id/responses", h.RecordResponse)
		surveys.GET("/:id/responses", h.ListResponses)
	}

	responses := rg.Group("/survey-responses", guard)
	{
		responses.GET("", h.ListHouseholdResponses)
		responses.PATCH("/:id", h.AmendResponse)
	}
}

// Create registers a new survey form
func (h *SurveyHandler) Create(c *gin.Context) {
	var req survey.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if id, ok := authenticatedUserID(c); ok {
		req.CreatedBy = id
	}

	s, err := h.surveys.CreateSurvey(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, s)
}

// List returns surveys matching the filter
func (h *SurveyHandler) List(c *gin.Context) {
	var filter survey.SurveyListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	surveys, total, err := h.surveys.ListSurveys(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, surveys, total, filter.Page, filter.PageSize)
}

// Get returns a single survey
func (h *SurveyHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	s, err := h.surveys.GetSurvey(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

// Update applies a partial update to a survey
func (h *SurveyHandler) Update(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req survey.UpdateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	s, err := h.surveys.UpdateSurvey(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

// Delete removes a survey that has no recorded responses
func (h *SurveyHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.surveys.DeleteSurvey(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// PublishVersion publishes a new version of a survey form
func (h *SurveyHandler) PublishVersion(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req survey.NewVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	s, err := h.surveys.PublishNewVersion(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

func (h *SurveyHandler) transition(fn func(ctx context.Context, id uuid.UUID) (*survey.SurveyResponse, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathUUID(c, "id")
		if !ok {
			return
		}
		s, err := fn(c.Request.Context(), id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, s)
	}
}

// RecordResponse records a household's survey response
func (h *SurveyHandler) RecordResponse(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req survey.RecordResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if surveyorID, ok := authenticatedUserID(c); ok && req.SurveyorID == nil {
		req.SurveyorID = &surveyorID
	}

	r, err := h.surveys.RecordResponse(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, r)
}

// AmendResponse merges additional answers into an in-progress response
func (h *SurveyHandler) AmendResponse(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req survey.AmendResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	r, err := h.surveys.AmendResponse(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// ListResponses lists responses recorded against a survey
func (h *SurveyHandler) ListResponses(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var filter survey.ResponseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	responses, total, err := h.surveys.ListResponses(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// ListHouseholdResponses lists every survey response of a household
func (h *SurveyHandler) ListHouseholdResponses(c *gin.Context) {
	householdID, err := uuid.Parse(c.Query("household_id"))
	if err != nil {
		h.BadRequest(c, "household_id must be a valid UUID")
		return
	}

	responses, err := h.surveys.ListHouseholdResponses(c.Request.Context(), householdID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}
