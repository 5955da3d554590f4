package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/application/program"
	domainidentity "github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/interfaces/http/middleware"
)

// ProgramHandler serves program and enrollment endpoints
type ProgramHandler struct {
	BaseHandler
	programs    *program.ProgramService
	enrollments *program.EnrollmentService
}

// NewProgramHandler creates a program handler
func NewProgramHandler(programs *program.ProgramService, enrollments *program.EnrollmentService, logger *zap.Logger) *ProgramHandler {
	return &ProgramHandler{
		BaseHandler: NewBaseHandler(logger),
		programs:    programs,
		enrollments: enrollments,
	}
}

// RegisterRoutes registers program and enrollment routes
func (h *ProgramHandler) RegisterRoutes(rg *gin.RouterGroup) {
	programs := rg.Group("/programs")
	programs.Use(middleware.RequireModuleAccess(domainidentity.ModulePrograms))
	{
		programs.POST("", h.Create)
		programs.GET("", h.List)
		programs.GET("/:id", h.Get)
		programs.PATCH("/:id", h.Update)
		programs.POST("/:id/activate", h.programTransition(h.programs.ActivateProgram))
		programs.POST("/:id/suspend", h.programTransition(h.programs.SuspendProgram))
		programs.POST("/:id/complete", h.programTransition(h.programs.CompleteProgram))
		programs.POST("/:id/cancel", h.programTransition(h.programs.CancelProgram))
		programs.POST("/:id/close-applications", h.programTransition(h.programs.CloseApplications))
		programs.GET("/:id/enrollments", h.ListEnrollmentsByProgram)
	}

	enrollments := rg.Group("/enrollments")
	enrollments.Use(middleware.RequireModuleAccess(domainidentity.ModulePrograms))
	{
		enrollments.POST("", h.Enroll)
		enrollments.GET("", h.ListEnrollmentsByHousehold)
		enrollments.GET("/:id", h.GetEnrollment)
		enrollments.POST("/:id/assign-mentor", h.AssignMentor)
		enrollments.POST("/:id/activate", h.enrollmentTransition(h.enrollments.ActivateEnrollment))
		enrollments.POST("/:id/graduate", h.enrollmentTransition(h.enrollments.GraduateHousehold))
		enrollments.POST("/:id/drop-out", h.DropOut)
		enrollments.GET("/:id/milestones", h.ListMilestones)
		enrollments.POST("/:id/milestones/:key/start", h.StartMilestone)
		enrollments.POST("/:id/milestones/:key/complete", h.CompleteMilestone)
		enrollments.POST("/:id/milestones/:key/skip", h.SkipMilestone)
	}
}

// Create registers a new program
func (h *ProgramHandler) Create(c *gin.Context) {
	var req program.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.programs.CreateProgram(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// List returns programs matching the filter
func (h *ProgramHandler) List(c *gin.Context) {
	var filter program.ProgramListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	programs, total, err := h.programs.ListPrograms(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, programs, total, filter.Page, filter.PageSize)
}

// Get returns a single program
func (h *ProgramHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.programs.GetProgram(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Update applies a partial update to a program
func (h *ProgramHandler) Update(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req program.UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.programs.UpdateProgram(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

func (h *ProgramHandler) programTransition(fn func(ctx context.Context, id uuid.UUID) (*program.ProgramResponse, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathUUID(c, "id")
		if !ok {
			return
		}
		p, err := fn(c.Request.Context(), id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, p)
	}
}

// Enroll enrolls a household into a program
func (h *ProgramHandler) Enroll(c *gin.Context) {
	var req program.EnrollHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	e, err := h.enrollments.EnrollHousehold(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, e)
}

// GetEnrollment returns a single enrollment
func (h *ProgramHandler) GetEnrollment(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	e, err := h.enrollments.GetEnrollment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, e)
}

// ListEnrollmentsByProgram lists enrollments in a program
func (h *ProgramHandler) ListEnrollmentsByProgram(c *gin.Context) {
	programID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var filter program.EnrollmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	enrollments, total, err := h.enrollments.ListByProgram(c.Request.Context(), programID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, enrollments, total, filter.Page, filter.PageSize)
}

// ListEnrollmentsByHousehold lists a household's enrollment history
func (h *ProgramHandler) ListEnrollmentsByHousehold(c *gin.Context) {
	householdID, err := uuid.Parse(c.Query("household_id"))
	if err != nil {
		h.BadRequest(c, "household_id must be a valid UUID")
		return
	}

	enrollments, err := h.enrollments.ListByHousehold(c.Request.Context(), householdID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, enrollments)
}

type assignMentorRequest struct {
	MentorID uuid.UUID `json:"mentor_id" binding:"required"`
}

// AssignMentor assigns a mentor to an enrollment
func (h *ProgramHandler) AssignMentor(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req assignMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	e, err := h.enrollments.AssignMentor(c.Request.Context(), id, req.MentorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, e)
}

func (h *ProgramHandler) enrollmentTransition(fn func(ctx context.Context, id uuid.UUID) (*program.EnrollmentResponse, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathUUID(c, "id")
		if !ok {
			return
		}
		e, err := fn(c.Request.Context(), id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, e)
	}
}

// DropOut records a household dropping out of a program
func (h *ProgramHandler) DropOut(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req program.DropOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	e, err := h.enrollments.DropOutHousehold(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, e)
}

// ListMilestones lists the milestone checklist of an enrollment
func (h *ProgramHandler) ListMilestones(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	milestones, err := h.enrollments.GetMilestones(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, milestones)
}

// StartMilestone marks a milestone as in progress
func (h *ProgramHandler) StartMilestone(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	m, err := h.enrollments.StartMilestone(c.Request.Context(), id, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// CompleteMilestone marks a milestone as completed
func (h *ProgramHandler) CompleteMilestone(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req program.CompleteMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	m, err := h.enrollments.CompleteMilestone(c.Request.Context(), id, c.Param("key"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

type skipMilestoneRequest struct {
	Notes string `json:"notes"`
}

// SkipMilestone marks a milestone as skipped
func (h *ProgramHandler) SkipMilestone(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req skipMilestoneRequest
	_ = c.ShouldBindJSON(&req) // notes are optional

	m, err := h.enrollments.SkipMilestone(c.Request.Context(), id, c.Param("key"), req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}
