package grant

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/upg/backend/internal/domain/grant"
)

// ApplicantInput identifies who is applying. Exactly one ID must be set.
type ApplicantInput struct {
	HouseholdID     *uuid.UUID `json:"household_id"`
	BusinessGroupID *uuid.UUID `json:"business_group_id"`
	SavingsGroupID  *uuid.UUID `json:"savings_group_id"`
}

func (a ApplicantInput) toRef() grant.ApplicantRef {
	return grant.ApplicantRef{
		HouseholdID:     a.HouseholdID,
		BusinessGroupID: a.BusinessGroupID,
		SavingsGroupID:  a.SavingsGroupID,
	}
}

// ApplySBGrantRequest opens a seed business grant application.
type ApplySBGrantRequest struct {
	ProgramID       uuid.UUID        `json:"program_id" binding:"required"`
	Applicant       ApplicantInput   `json:"applicant"`
	BusinessPlan    string           `json:"business_plan" binding:"required"`
	ProjectedIncome *decimal.Decimal `json:"projected_income"`
	StartupCosts    *decimal.Decimal `json:"startup_costs"`
	MonthlyExpenses *decimal.Decimal `json:"monthly_expenses"`
	SubmittedBy     uuid.UUID        `json:"-"`
}

// ApproveSBGrantRequest approves a grant, optionally overriding the
// calculated award.
type ApproveSBGrantRequest struct {
	FinalAmount *decimal.Decimal `json:"final_amount"`
	ApproverID  uuid.UUID        `json:"-"`
}

// RejectGrantRequest declines a grant with reviewer notes.
type RejectGrantRequest struct {
	Notes      string    `json:"notes" binding:"required"`
	ReviewerID uuid.UUID `json:"-"`
}

// DisburseGrantRequest books a payout against an approved grant.
type DisburseGrantRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	Method           string          `json:"method" binding:"required,oneof=bank_transfer mobile_money cash check"`
	Reference        string          `json:"reference"`
	RecipientName    string          `json:"recipient_name" binding:"required"`
	RecipientContact string          `json:"recipient_contact"`
	Notes            string          `json:"notes"`
	DisbursementDate time.Time       `json:"disbursement_date"`
	ProcessedBy      uuid.UUID       `json:"-"`
}

// RecordUtilizationRequest captures how an award was spent.
type RecordUtilizationRequest struct {
	Report string `json:"report" binding:"required"`
}

// GrantListFilter narrows grant listings.
type GrantListFilter struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// RequestPRGrantRequest opens a performance recognition grant against a
// completed seed business grant.
type RequestPRGrantRequest struct {
	SBGrantID   uuid.UUID `json:"sb_grant_id" binding:"required"`
	RequestedBy uuid.UUID `json:"-"`
}

// AssessPerformanceRequest grades the business over the seed grant period.
type AssessPerformanceRequest struct {
	Score              int              `json:"score" binding:"min=0,max=100"`
	Assessment         string           `json:"assessment"`
	RevenueGenerated   *decimal.Decimal `json:"revenue_generated"`
	SavingsAccumulated *decimal.Decimal `json:"savings_accumulated"`
	JobsCreated        int              `json:"jobs_created"`
	AssessedBy         uuid.UUID        `json:"-"`
}

// CreateApplicationRequest drafts a grant application in the general
// pipeline.
type CreateApplicationRequest struct {
	Applicant        ApplicantInput         `json:"applicant"`
	ProgramID        *uuid.UUID             `json:"program_id"`
	GrantType        string                 `json:"grant_type" binding:"required,oneof=seed_business performance_recognition livelihood emergency education housing other"`
	RequestedAmount  decimal.Decimal        `json:"requested_amount" binding:"required"`
	Title            string                 `json:"title" binding:"required,max=200"`
	Purpose          string                 `json:"purpose" binding:"required"`
	BusinessPlan     string                 `json:"business_plan"`
	ExpectedOutcomes string                 `json:"expected_outcomes"`
	BudgetBreakdown  map[string]interface{} `json:"budget_breakdown"`
	SupportingDocs   []string               `json:"supporting_docs"`
	SubmittedBy      uuid.UUID              `json:"-"`
}

// ReviewApplicationRequest records a reviewer's assessment.
type ReviewApplicationRequest struct {
	Score      int       `json:"score" binding:"min=0,max=100"`
	Notes      string    `json:"notes"`
	ReviewerID uuid.UUID `json:"-"`
}

// ApproveApplicationRequest approves an application, optionally for less
// than the requested amount.
type ApproveApplicationRequest struct {
	ApprovedAmount *decimal.Decimal `json:"approved_amount"`
	Notes          string           `json:"notes"`
	ApproverID     uuid.UUID        `json:"-"`
}

// ApplicationUtilizationRequest closes out a disbursed application.
type ApplicationUtilizationRequest struct {
	Report        string `json:"report" binding:"required"`
	FinalOutcomes string `json:"final_outcomes"`
}

// ApplicationListFilter narrows application listings.
type ApplicationListFilter struct {
	Status    string     `form:"status"`
	GrantType string     `form:"grant_type"`
	ProgramID *uuid.UUID `form:"program_id"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// GrantFactorsResponse exposes the four sizing multipliers.
type GrantFactorsResponse struct {
	GroupSize    decimal.Decimal `json:"group_size"`
	BusinessType decimal.Decimal `json:"business_type"`
	Location     decimal.Decimal `json:"location"`
	Performance  decimal.Decimal `json:"performance"`
	Total        decimal.Decimal `json:"total"`
}

// SBGrantResponse is the API representation of a seed business grant.
type SBGrantResponse struct {
	ID                     uuid.UUID            `json:"id"`
	ProgramID              uuid.UUID            `json:"program_id"`
	ApplicantType          string               `json:"applicant_type"`
	ApplicantID            uuid.UUID            `json:"applicant_id"`
	Status                 string               `json:"status"`
	DisbursementStatus     string               `json:"disbursement_status"`
	BaseAmount             decimal.Decimal      `json:"base_amount"`
	CalculatedAmount       *decimal.Decimal     `json:"calculated_amount,omitempty"`
	FinalAmount            *decimal.Decimal     `json:"final_amount,omitempty"`
	EffectiveAmount        decimal.Decimal      `json:"effective_amount"`
	DisbursedAmount        decimal.Decimal      `json:"disbursed_amount"`
	RemainingAmount        decimal.Decimal      `json:"remaining_amount"`
	DisbursementPercentage float64              `json:"disbursement_percentage"`
	Factors                GrantFactorsResponse `json:"factors"`
	BusinessPlan           string               `json:"business_plan"`
	ApplicationDate        time.Time            `json:"application_date"`
	ReviewDate             *time.Time           `json:"review_date,omitempty"`
	ReviewNotes            string               `json:"review_notes,omitempty"`
	ApprovalDate           *time.Time           `json:"approval_date,omitempty"`
	UtilizationReport      string               `json:"utilization_report,omitempty"`
	CreatedAt              time.Time            `json:"created_at"`
	UpdatedAt              time.Time            `json:"updated_at"`
}

// PRGrantResponse is the API representation of a performance recognition
// grant.
type PRGrantResponse struct {
	ID                 uuid.UUID        `json:"id"`
	ProgramID          uuid.UUID        `json:"program_id"`
	SBGrantID          uuid.UUID        `json:"sb_grant_id"`
	ApplicantType      string           `json:"applicant_type"`
	ApplicantID        uuid.UUID        `json:"applicant_id"`
	Status             string           `json:"status"`
	Amount             decimal.Decimal  `json:"amount"`
	PerformanceScore   *int             `json:"performance_score,omitempty"`
	PerformanceRating  string           `json:"performance_rating,omitempty"`
	RevenueGenerated   *decimal.Decimal `json:"revenue_generated,omitempty"`
	SavingsAccumulated *decimal.Decimal `json:"savings_accumulated,omitempty"`
	JobsCreated        int              `json:"jobs_created"`
	ApplicationDate    time.Time        `json:"application_date"`
	ApprovalDate       *time.Time       `json:"approval_date,omitempty"`
	DisbursementDate   *time.Time       `json:"disbursement_date,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// DisbursementResponse is one payout transaction.
type DisbursementResponse struct {
	ID               uuid.UUID       `json:"id"`
	Kind             string          `json:"kind"`
	Amount           decimal.Decimal `json:"amount"`
	DisbursementDate time.Time       `json:"disbursement_date"`
	Method           string          `json:"method"`
	ReferenceNumber  string          `json:"reference_number,omitempty"`
	RecipientName    string          `json:"recipient_name"`
	RecipientContact string          `json:"recipient_contact,omitempty"`
	ProcessedBy      uuid.UUID       `json:"processed_by"`
	Notes            string          `json:"notes,omitempty"`
}

// ApplicationResponse is the API representation of a general grant
// application.
type ApplicationResponse struct {
	ID                uuid.UUID        `json:"id"`
	ApplicantType     string           `json:"applicant_type"`
	ApplicantID       uuid.UUID        `json:"applicant_id"`
	ProgramID         *uuid.UUID       `json:"program_id,omitempty"`
	GrantType         string           `json:"grant_type"`
	Status            string           `json:"status"`
	Title             string           `json:"title"`
	Purpose           string           `json:"purpose"`
	RequestedAmount   decimal.Decimal  `json:"requested_amount"`
	ApprovedAmount    *decimal.Decimal `json:"approved_amount,omitempty"`
	EffectiveAmount   decimal.Decimal  `json:"effective_amount"`
	DisbursedAmount   decimal.Decimal  `json:"disbursed_amount"`
	RemainingAmount   decimal.Decimal  `json:"remaining_amount"`
	ReviewScore       *int             `json:"review_score,omitempty"`
	ReviewNotes       string           `json:"review_notes,omitempty"`
	SubmissionDate    *time.Time       `json:"submission_date,omitempty"`
	ApprovalDate      *time.Time       `json:"approval_date,omitempty"`
	DisbursementDate  *time.Time       `json:"disbursement_date,omitempty"`
	UtilizationReport string           `json:"utilization_report,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ToSBGrantResponse converts a seed business grant to its response DTO.
func ToSBGrantResponse(g *grant.SBGrant) *SBGrantResponse {
	resp := &SBGrantResponse{
		ID:                     g.ID,
		ProgramID:              g.ProgramID,
		ApplicantType:          string(g.Applicant.Type()),
		ApplicantID:            g.Applicant.ID(),
		Status:                 string(g.Status),
		DisbursementStatus:     string(g.DisbursementStatus),
		BaseAmount:             g.BaseAmount.Amount(),
		EffectiveAmount:        g.EffectiveAmount().Amount(),
		DisbursedAmount:        g.DisbursedAmount.Amount(),
		RemainingAmount:        g.RemainingAmount().Amount(),
		DisbursementPercentage: g.DisbursementPercentage(),
		Factors: GrantFactorsResponse{
			GroupSize:    g.Factors.GroupSize,
			BusinessType: g.Factors.BusinessType,
			Location:     g.Factors.Location,
			Performance:  g.Factors.Performance,
			Total:        g.Factors.Total(),
		},
		BusinessPlan:      g.BusinessPlan,
		ApplicationDate:   g.ApplicationDate,
		ReviewDate:        g.ReviewDate,
		ReviewNotes:       g.ReviewNotes,
		ApprovalDate:      g.ApprovalDate,
		UtilizationReport: g.UtilizationReport,
		CreatedAt:         g.CreatedAt,
		UpdatedAt:         g.UpdatedAt,
	}
	if g.CalculatedAmount != nil {
		amount := g.CalculatedAmount.Amount()
		resp.CalculatedAmount = &amount
	}
	if g.FinalAmount != nil {
		amount := g.FinalAmount.Amount()
		resp.FinalAmount = &amount
	}
	return resp
}

func ToSBGrantResponses(grants []*grant.SBGrant) []*SBGrantResponse {
	responses := make([]*SBGrantResponse, len(grants))
	for i, g := range grants {
		responses[i] = ToSBGrantResponse(g)
	}
	return responses
}

// ToPRGrantResponse converts a performance recognition grant to its
// response DTO.
func ToPRGrantResponse(g *grant.PRGrant) *PRGrantResponse {
	resp := &PRGrantResponse{
		ID:                g.ID,
		ProgramID:         g.ProgramID,
		SBGrantID:         g.SBGrantID,
		ApplicantType:     string(g.Applicant.Type()),
		ApplicantID:       g.Applicant.ID(),
		Status:            string(g.Status),
		Amount:            g.Amount.Amount(),
		PerformanceScore:  g.PerformanceScore,
		PerformanceRating: string(g.PerformanceRating),
		JobsCreated:       g.JobsCreated,
		ApplicationDate:   g.ApplicationDate,
		ApprovalDate:      g.ApprovalDate,
		DisbursementDate:  g.DisbursementDate,
		CreatedAt:         g.CreatedAt,
		UpdatedAt:         g.UpdatedAt,
	}
	if g.RevenueGenerated != nil {
		amount := g.RevenueGenerated.Amount()
		resp.RevenueGenerated = &amount
	}
	if g.SavingsAccumulated != nil {
		amount := g.SavingsAccumulated.Amount()
		resp.SavingsAccumulated = &amount
	}
	return resp
}

func ToPRGrantResponses(grants []*grant.PRGrant) []*PRGrantResponse {
	responses := make([]*PRGrantResponse, len(grants))
	for i, g := range grants {
		responses[i] = ToPRGrantResponse(g)
	}
	return responses
}

// ToDisbursementResponse converts a payout transaction to its response DTO.
func ToDisbursementResponse(d *grant.Disbursement) *DisbursementResponse {
	return &DisbursementResponse{
		ID:               d.ID,
		Kind:             string(d.Kind),
		Amount:           d.Amount.Amount(),
		DisbursementDate: d.DisbursementDate,
		Method:           string(d.Method),
		ReferenceNumber:  d.ReferenceNumber,
		RecipientName:    d.RecipientName,
		RecipientContact: d.RecipientContact,
		ProcessedBy:      d.ProcessedBy,
		Notes:            d.Notes,
	}
}

func ToDisbursementResponses(disbursements []*grant.Disbursement) []*DisbursementResponse {
	responses := make([]*DisbursementResponse, len(disbursements))
	for i, d := range disbursements {
		responses[i] = ToDisbursementResponse(d)
	}
	return responses
}

// ToApplicationResponse converts a general application to its response DTO.
func ToApplicationResponse(a *grant.Application) *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:                a.ID,
		ApplicantType:     string(a.Applicant.Type()),
		ApplicantID:       a.Applicant.ID(),
		ProgramID:         a.ProgramID,
		GrantType:         string(a.GrantType),
		Status:            string(a.Status),
		Title:             a.Title,
		Purpose:           a.Purpose,
		RequestedAmount:   a.RequestedAmount.Amount(),
		EffectiveAmount:   a.EffectiveAmount().Amount(),
		DisbursedAmount:   a.DisbursedAmount.Amount(),
		RemainingAmount:   a.RemainingAmount().Amount(),
		ReviewScore:       a.ReviewScore,
		ReviewNotes:       a.ReviewNotes,
		SubmissionDate:    a.SubmissionDate,
		ApprovalDate:      a.ApprovalDate,
		DisbursementDate:  a.DisbursementDate,
		UtilizationReport: a.UtilizationReport,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	if a.ApprovedAmount != nil {
		amount := a.ApprovedAmount.Amount()
		resp.ApprovedAmount = &amount
	}
	return resp
}

func ToApplicationResponses(applications []*grant.Application) []*ApplicationResponse {
	responses := make([]*ApplicationResponse, len(applications))
	for i, a := range applications {
		responses[i] = ToApplicationResponse(a)
	}
	return responses
}
