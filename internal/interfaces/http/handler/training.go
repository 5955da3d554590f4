package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/application/training"
	domainidentity "github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/interfaces/http/middleware"
)

// TrainingHandler serves training cohort and mentoring endpoints
type TrainingHandler struct {
	BaseHandler
	trainings *training.Service
	mentoring *training.MentoringService
}

// NewTrainingHandler creates a training handler
func NewTrainingHandler(trainings *training.Service, mentoring *training.MentoringService, logger *zap.Logger) *TrainingHandler {
	return &TrainingHandler{
		BaseHandler: NewBaseHandler(logger),
		trainings:   trainings,
		mentoring:   mentoring,
	}
}

// RegisterRoutes registers training and mentoring routes
func (h *TrainingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	guard := middleware.RequireModuleAccess(domainidentity.ModuleTraining)

	trainings := rg.Group("/trainings", guard)
	{
		trainings.POST("", h.Create)
		trainings.GET("", h.List)
		trainings.GET("/:id", h.Get)
		trainings.POST("/:id/activate", h.transition(h.trainings.ActivateTraining))
		trainings.POST("/:id/cancel", h.transition(h.trainings.CancelTraining))
		trainings.POST("/:id/complete", h.transition(h.trainings.CompleteTraining))
		trainings.POST("/:id/enrollments", h.Enroll)
		trainings.POST("/:id/enrollments/:householdID/drop-out", h.enrollmentChange(h.trainings.DropOutHousehold))
		trainings.POST("/:id/enrollments/:householdID/transfer", h.enrollmentChange(h.trainings.TransferHousehold))
		trainings.POST("/:id/enrollments/:householdID/complete", h.enrollmentChange(h.trainings.CompleteHousehold))
		trainings.POST("/:id/attendance", h.MarkAttendance)
		trainings.GET("/:id/attendance", h.ListAttendance)
		trainings.POST("/:id/reminders", h.SendReminder)
	}

	mentoring := rg.Group("/mentoring", guard)
	{
		mentoring.POST("/visits", h.RecordVisit)
		mentoring.GET("/visits", h.ListVisits)
		mentoring.POST("/nudges", h.RecordNudge)
		mentoring.GET("/nudges", h.ListNudges)
		mentoring.POST("/reports", h.SubmitReport)
		mentoring.GET("/reports", h.ListReports)
		mentoring.GET("/activity", h.ActivitySummary)
	}
}

// Create registers a new training
func (h *TrainingHandler) Create(c *gin.Context) {
	var req training.CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if id, ok := authenticatedUserID(c); ok {
		req.CreatedBy = id
	}

	t, err := h.trainings.CreateTraining(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// List returns trainings matching the filter
func (h *TrainingHandler) List(c *gin.Context) {
	var filter training.TrainingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	trainings, total, err := h.trainings.ListTrainings(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, trainings, total, filter.Page, filter.PageSize)
}

// Get returns a single training with its cohort
func (h *TrainingHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	t, err := h.trainings.GetTraining(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

func (h *TrainingHandler) transition(fn func(ctx context.Context, id uuid.UUID) (*training.TrainingResponse, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathUUID(c, "id")
		if !ok {
			return
		}
		t, err := fn(c.Request.Context(), id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, t)
	}
}

// Enroll adds a household to the training cohort
func (h *TrainingHandler) Enroll(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req training.EnrollHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	t, err := h.trainings.EnrollHousehold(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

func (h *TrainingHandler) enrollmentChange(fn func(ctx context.Context, trainingID, householdID uuid.UUID) (*training.TrainingResponse, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathUUID(c, "id")
		if !ok {
			return
		}
		householdID, ok := h.pathUUID(c, "householdID")
		if !ok {
			return
		}
		t, err := fn(c.Request.Context(), id, householdID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, t)
	}
}

// MarkAttendance records one attendance mark for a session
func (h *TrainingHandler) MarkAttendance(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req training.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if markerID, ok := authenticatedUserID(c); ok {
		req.MarkedBy = markerID
	}

	attendance, err := h.trainings.MarkAttendance(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, attendance)
}

// ListAttendance lists attendance marks for a training
func (h *TrainingHandler) ListAttendance(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	attendance, err := h.trainings.ListAttendance(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, attendance)
}

// SendReminder sends an SMS reminder to the enrolled cohort
func (h *TrainingHandler) SendReminder(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req training.SessionReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if mentorID, ok := authenticatedUserID(c); ok {
		req.MentorID = mentorID
	}

	sent, err := h.trainings.SendSessionReminder(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"messages_sent": sent})
}

// RecordVisit logs a mentoring visit to a household
func (h *TrainingHandler) RecordVisit(c *gin.Context) {
	var req training.RecordVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if mentorID, ok := authenticatedUserID(c); ok {
		req.MentorID = mentorID
	}

	visit, err := h.mentoring.RecordVisit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, visit)
}

// ListVisits lists mentoring visits to a household
func (h *TrainingHandler) ListVisits(c *gin.Context) {
	householdID, err := uuid.Parse(c.Query("household_id"))
	if err != nil {
		h.BadRequest(c, "household_id must be a valid UUID")
		return
	}

	visits, err := h.mentoring.ListVisitsByHousehold(c.Request.Context(), householdID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, visits)
}

// RecordNudge logs a mentor's phone call to a household
func (h *TrainingHandler) RecordNudge(c *gin.Context) {
	var req training.RecordNudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if mentorID, ok := authenticatedUserID(c); ok {
		req.MentorID = mentorID
	}

	nudge, err := h.mentoring.RecordNudge(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, nudge)
}

// ListNudges lists phone nudges made to a household
func (h *TrainingHandler) ListNudges(c *gin.Context) {
	householdID, err := uuid.Parse(c.Query("household_id"))
	if err != nil {
		h.BadRequest(c, "household_id must be a valid UUID")
		return
	}

	nudges, err := h.mentoring.ListNudgesByHousehold(c.Request.Context(), householdID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nudges)
}

// SubmitReport files a mentor's periodic activity summary
func (h *TrainingHandler) SubmitReport(c *gin.Context) {
	var req training.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if mentorID, ok := authenticatedUserID(c); ok {
		req.MentorID = mentorID
	}

	report, err := h.mentoring.SubmitReport(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, report)
}

// ListReports lists a mentor's filed reports. Without a mentor_id query the
// listing defaults to the authenticated user's own reports.
func (h *TrainingHandler) ListReports(c *gin.Context) {
	mentorID, ok := h.mentorIDFromRequest(c)
	if !ok {
		return
	}

	reports, err := h.mentoring.ListReportsByMentor(c.Request.Context(), mentorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reports)
}

// ActivitySummary aggregates a mentor's visits, nudges and trainings over a
// date range
func (h *TrainingHandler) ActivitySummary(c *gin.Context) {
	mentorID, ok := h.mentorIDFromRequest(c)
	if !ok {
		return
	}

	from, err := parseDateQuery(c, "from", time.Now().AddDate(0, -1, 0))
	if err != nil {
		h.BadRequest(c, "from must be a date in YYYY-MM-DD form")
		return
	}
	to, err := parseDateQuery(c, "to", time.Now())
	if err != nil {
		h.BadRequest(c, "to must be a date in YYYY-MM-DD form")
		return
	}

	summary, err := h.mentoring.SummarizeActivity(c.Request.Context(), mentorID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

func (h *TrainingHandler) mentorIDFromRequest(c *gin.Context) (uuid.UUID, bool) {
	if raw := c.Query("mentor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "mentor_id must be a valid UUID")
			return uuid.Nil, false
		}
		return id, true
	}
	id, ok := authenticatedUserID(c)
	if !ok {
		h.BadRequest(c, "no authenticated session")
		return uuid.Nil, false
	}
	return id, true
}

func parseDateQuery(c *gin.Context, name string, fallback time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return time.Parse("2006-01-02", raw)
}
