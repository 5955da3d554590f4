package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/application/grant"
	domainidentity "github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/interfaces/http/middleware"
)

// GrantHandler serves seed business grants, performance recognition grants
// and the general application pipeline
type GrantHandler struct {
	BaseHandler
	sb           *grant.SBService
	pr           *grant.PRService
	applications *grant.ApplicationService
}

// NewGrantHandler creates a grant handler
func NewGrantHandler(sb *grant.SBService, pr *grant.PRService, applications *grant.ApplicationService, logger *zap.Logger) *GrantHandler {
	return &GrantHandler{
		BaseHandler:  NewBaseHandler(logger),
		sb:           sb,
		pr:           pr,
		applications: applications,
	}
}

// RegisterRoutes registers grant routes
func (h *GrantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	guard := middleware.RequireModuleAccess(domainidentity.ModuleGrants)
	reviewer := middleware.RequireGrantReviewer()
	approver := middleware.RequireGrantApprover()

	sb := rg.Group("/sb-grants", guard)
	{
		sb.POST("", h.ApplySB)
		sb.GET("", h.ListSBByApplicant)
		sb.GET("/:id", h.GetSB)
		sb.POST("/:id/recalculate", h.RecalculateSB)
		sb.POST("/:id/review", reviewer, h.StartSBReview)
		sb.POST("/:id/approve", approver, h.ApproveSB)
		sb.POST("/:id/reject", reviewer, h.RejectSB)
		sb.POST("/:id/cancel", h.CancelSB)
		sb.POST("/:id/disburse", approver, h.DisburseSB)
		sb.GET("/:id/disbursements", h.ListSBDisbursements)
		sb.POST("/:id/utilization", h.RecordSBUtilization)
	}
	rg.GET("/programs/:id/sb-grants", guard, h.ListSBByProgram)

	pr := rg.Group("/pr-grants", guard)
	{
		pr.POST("", h.RequestPR)
		pr.GET("/:id", h.GetPR)
		pr.POST("/:id/review", reviewer, h.StartPRReview)
		pr.POST("/:id/assess", reviewer, h.AssessPR)
		pr.POST("/:id/approve", approver, h.ApprovePR)
		pr.POST("/:id/reject", reviewer, h.RejectPR)
		pr.POST("/:id/cancel", h.CancelPR)
		pr.POST("/:id/disburse", approver, h.DisbursePR)
		pr.GET("/:id/disbursements", h.ListPRDisbursements)
	}
	rg.GET("/programs/:id/pr-grants", guard, h.ListPRByProgram)

	apps := rg.Group("/grant-applications", guard)
	{
		apps.POST("", h.CreateApplication)
		apps.GET("", h.ListApplications)
		apps.GET("/:id", h.GetApplication)
		apps.DELETE("/:id", h.DeleteApplication)
		apps.POST("/:id/submit", h.SubmitApplication)
		apps.POST("/:id/review", reviewer, h.ReviewApplication)
		apps.POST("/:id/approve", approver, h.ApproveApplication)
		apps.POST("/:id/reject", reviewer, h.RejectApplication)
		apps.POST("/:id/cancel", h.CancelApplication)
		apps.POST("/:id/disburse", approver, h.DisburseApplication)
		apps.POST("/:id/utilization", h.RecordApplicationUtilization)
	}
}

// ApplySB opens a seed business grant application
func (h *GrantHandler) ApplySB(c *gin.Context) {
	var req grant.ApplySBGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if id, ok := authenticatedUserID(c); ok {
		req.SubmittedBy = id
	}

	g, err := h.sb.Apply(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, g)
}

// GetSB returns a single seed business grant
func (h *GrantHandler) GetSB(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	g, err := h.sb.GetGrant(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// ListSBByProgram lists seed business grants in a program
func (h *GrantHandler) ListSBByProgram(c *gin.Context) {
	programID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var filter grant.GrantListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	grants, total, err := h.sb.ListByProgram(c.Request.Context(), programID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, grants, total, filter.Page, filter.PageSize)
}

// ListSBByApplicant lists seed business grants for an applicant
func (h *GrantHandler) ListSBByApplicant(c *gin.Context) {
	applicant, ok := h.queryApplicant(c)
	if !ok {
		return
	}

	grants, err := h.sb.ListByApplicant(c.Request.Context(), applicant)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, grants)
}

// RecalculateSB reruns the award calculation for a pending grant
func (h *GrantHandler) RecalculateSB(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	g, err := h.sb.Recalculate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// StartSBReview moves a grant into review under the current user
func (h *GrantHandler) StartSBReview(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	reviewerID, ok := authenticatedUserID(c)
	if !ok {
		h.BadRequest(c, "no authenticated session")
		return
	}

	g, err := h.sb.StartReview(c.Request.Context(), id, reviewerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// ApproveSB approves a seed business grant
func (h *GrantHandler) ApproveSB(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req grant.ApproveSBGrantRequest
	_ = c.ShouldBindJSON(&req) // final amount override is optional
	if approverID, ok := authenticatedUserID(c); ok {
		req.ApproverID = approverID
	}

	g, err := h.sb.Approve(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// RejectSB declines a seed business grant
func (h *GrantHandler) RejectSB(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req grant.RejectGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if reviewerID, ok := authenticatedUserID(c); ok {
		req.ReviewerID = reviewerID
	}

	g, err := h.sb.Reject(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// CancelSB withdraws a seed business grant application
func (h *GrantHandler) CancelSB(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	g, err := h.sb.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// DisburseSB books a payout against an approved seed business grant
func (h *GrantHandler) DisburseSB(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	req, ok := h.bindDisbursement(c)
	if !ok {
		return
	}

	g, err := h.sb.Disburse(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// ListSBDisbursements lists payouts made against a seed business grant
func (h *GrantHandler) ListSBDisbursements(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	disbursements, err := h.sb.ListDisbursements(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, disbursements)
}

// RecordSBUtilization captures how a seed business award was spent
func (h *GrantHandler) RecordSBUtilization(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req grant.RecordUtilizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	g, err := h.sb.RecordUtilization(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// RequestPR opens a performance recognition grant
func (h *GrantHandler) RequestPR(c *gin.Context) {
	var req grant.RequestPRGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if id, ok := authenticatedUserID(c); ok {
		req.RequestedBy = id
	}

	g, err := h.pr.RequestGrant(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, g)
}

// GetPR returns a single performance recognition grant
func (h *GrantHandler) GetPR(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	g, err := h.pr.GetGrant(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// ListPRByProgram lists performance recognition grants in a program
func (h *GrantHandler) ListPRByProgram(c *gin.Context) {
	programID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var filter grant.GrantListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	grants, total, err := h.pr.ListByProgram(c.Request.Context(), programID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, grants, total, filter.Page, filter.PageSize)
}

// StartPRReview moves a performance recognition grant into review
func (h *GrantHandler) StartPRReview(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	g, err := h.pr.StartReview(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// AssessPR grades the business over the seed grant period
func (h *GrantHandler) AssessPR(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req grant.AssessPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if assessorID, ok := authenticatedUserID(c); ok {
		req.AssessedBy = assessorID
	}

	g, err := h.pr.Assess(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// ApprovePR approves a performance recognition grant
func (h *GrantHandler) ApprovePR(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	approverID, ok := authenticatedUserID(c)
	if !ok {
		h.BadRequest(c, "no authenticated session")
		return
	}

	g, err := h.pr.Approve(c.Request.Context(), id, approverID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// RejectPR declines a performance recognition grant
func (h *GrantHandler) RejectPR(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	g, err := h.pr.Reject(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// CancelPR withdraws a performance recognition grant request
func (h *GrantHandler) CancelPR(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	g, err := h.pr.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// DisbursePR books a payout against an approved performance recognition grant
func (h *GrantHandler) DisbursePR(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	req, ok := h.bindDisbursement(c)
	if !ok {
		return
	}

	g, err := h.pr.Disburse(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, g)
}

// ListPRDisbursements lists payouts made against a performance recognition grant
func (h *GrantHandler) ListPRDisbursements(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	disbursements, err := h.pr.ListDisbursements(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, disbursements)
}

// CreateApplication drafts a grant application
func (h *GrantHandler) CreateApplication(c *gin.Context) {
	var req grant.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if id, ok := authenticatedUserID(c); ok {
		req.SubmittedBy = id
	}

	app, err := h.applications.CreateApplication(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, app)
}

// GetApplication returns a single grant application
func (h *GrantHandler) GetApplication(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	app, err := h.applications.GetApplication(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, app)
}

// ListApplications lists grant applications matching the filter. When an
// applicant is identified in the query, the listing is scoped to them.
func (h *GrantHandler) ListApplications(c *gin.Context) {
	if hasApplicantQuery(c) {
		applicant, ok := h.queryApplicant(c)
		if !ok {
			return
		}
		apps, err := h.applications.ListByApplicant(c.Request.Context(), applicant)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, apps)
		return
	}

	var filter grant.ApplicationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	apps, total, err := h.applications.ListApplications(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, apps, total, filter.Page, filter.PageSize)
}

// SubmitApplication submits a drafted application for review
func (h *GrantHandler) SubmitApplication(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	app, err := h.applications.SubmitApplication(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, app)
}

// ReviewApplication records a reviewer's assessment
func (h *GrantHandler) ReviewApplication(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req grant.ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if reviewerID, ok := authenticatedUserID(c); ok {
		req.ReviewerID = reviewerID
	}

	app, err := h.applications.ReviewApplication(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, app)
}

// ApproveApplication approves a grant application
func (h *GrantHandler) ApproveApplication(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req grant.ApproveApplicationRequest
	_ = c.ShouldBindJSON(&req) // approved amount override is optional
	if approverID, ok := authenticatedUserID(c); ok {
		req.ApproverID = approverID
	}

	app, err := h.applications.ApproveApplication(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, app)
}

// RejectApplication declines a grant application
func (h *GrantHandler) RejectApplication(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req grant.RejectGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if reviewerID, ok := authenticatedUserID(c); ok {
		req.ReviewerID = reviewerID
	}

	app, err := h.applications.RejectApplication(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, app)
}

// CancelApplication withdraws a grant application
func (h *GrantHandler) CancelApplication(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	app, err := h.applications.CancelApplication(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, app)
}

// DisburseApplication books a payout against an approved application
func (h *GrantHandler) DisburseApplication(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	req, ok := h.bindDisbursement(c)
	if !ok {
		return
	}

	app, err := h.applications.DisburseApplication(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, app)
}

// RecordApplicationUtilization closes out a disbursed application
func (h *GrantHandler) RecordApplicationUtilization(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req grant.ApplicationUtilizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	app, err := h.applications.RecordUtilization(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, app)
}

// DeleteApplication removes a draft application
func (h *GrantHandler) DeleteApplication(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.applications.DeleteApplication(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *GrantHandler) bindDisbursement(c *gin.Context) (grant.DisburseGrantRequest, bool) {
	var req grant.DisburseGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return req, false
	}
	if processorID, ok := authenticatedUserID(c); ok {
		req.ProcessedBy = processorID
	}
	return req, true
}

func (h *GrantHandler) queryApplicant(c *gin.Context) (grant.ApplicantInput, bool) {
	var applicant grant.ApplicantInput
	set := func(name string, dst **uuid.UUID) bool {
		raw := c.Query(name)
		if raw == "" {
			return true
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, name+" must be a valid UUID")
			return false
		}
		*dst = &id
		return true
	}
	if !set("household_id", &applicant.HouseholdID) ||
		!set("business_group_id", &applicant.BusinessGroupID) ||
		!set("savings_group_id", &applicant.SavingsGroupID) {
		return applicant, false
	}
	if !hasApplicantQuery(c) {
		h.BadRequest(c, "one of household_id, business_group_id or savings_group_id is required")
		return applicant, false
	}
	return applicant, true
}

func hasApplicantQuery(c *gin.Context) bool {
	return c.Query("household_id") != "" ||
		c.Query("business_group_id") != "" ||
		c.Query("savings_group_id") != ""
}
