package grant

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/shared/valueobject"
)

// ApplicationGrantType classifies free-form grant applications submitted
// outside the structured SB/PR pipeline.
type ApplicationGrantType string

const (
	AppTypeSeedBusiness           ApplicationGrantType = "seed_business"
	AppTypePerformanceRecognition ApplicationGrantType = "performance_recognition"
	AppTypeLivelihood             ApplicationGrantType = "livelihood"
	AppTypeEmergency              ApplicationGrantType = "emergency"
	AppTypeEducation              ApplicationGrantType = "education"
	AppTypeHousing                ApplicationGrantType = "housing"
	AppTypeOther                  ApplicationGrantType = "other"
)

func (t ApplicationGrantType) IsValid() bool {
	switch t {
	case AppTypeSeedBusiness, AppTypePerformanceRecognition, AppTypeLivelihood,
		AppTypeEmergency, AppTypeEducation, AppTypeHousing, AppTypeOther:
		return true
	}
	return false
}

// ApplicationStatus is the workflow state of a grant application.
type ApplicationStatus string

const (
	AppStatusDraft       ApplicationStatus = "draft"
	AppStatusSubmitted   ApplicationStatus = "submitted"
	AppStatusUnderReview ApplicationStatus = "under_review"
	AppStatusApproved    ApplicationStatus = "approved"
	AppStatusRejected    ApplicationStatus = "rejected"
	AppStatusDisbursed   ApplicationStatus = "disbursed"
	AppStatusCancelled   ApplicationStatus = "cancelled"
)

// Application is a grant application in the general pipeline. Households,
// business groups and savings groups can all apply, one applicant per
// application.
type Application struct {
	shared.AuditedAggregateRoot

	Applicant   ApplicantRef `gorm:"embedded"`
	SubmittedBy uuid.UUID
	ProgramID   *uuid.UUID

	GrantType       ApplicationGrantType `gorm:"type:varchar(30)"`
	RequestedAmount valueobject.Money    `gorm:"type:decimal(10,2)"`
	ApprovedAmount  *valueobject.Money   `gorm:"type:decimal(10,2)"`

	Title            string                 `gorm:"type:varchar(200);not null"`
	Purpose          string                 `gorm:"type:text;not null"`
	BusinessPlan     string                 `gorm:"type:text"`
	ExpectedOutcomes string                 `gorm:"type:text"`
	BudgetBreakdown  map[string]interface{} `gorm:"serializer:json"`
	SupportingDocs   []string               `gorm:"serializer:json"`

	Status         ApplicationStatus `gorm:"type:varchar(20)"`
	SubmissionDate *time.Time

	ReviewedBy  *uuid.UUID
	ReviewDate  *time.Time
	ReviewNotes string `gorm:"type:text"`
	ReviewScore *int

	ApprovedBy    *uuid.UUID
	ApprovalDate  *time.Time
	ApprovalNotes string `gorm:"type:text"`

	DisbursementDate      *time.Time
	DisbursedAmount       valueobject.Money `gorm:"type:decimal(10,2)"`
	DisbursedBy           *uuid.UUID
	DisbursementMethod    DisbursementMethod `gorm:"type:varchar(50)"`
	DisbursementReference string             `gorm:"type:varchar(100)"`

	UtilizationReport string `gorm:"type:text"`
	UtilizationDate   *time.Time
	FinalOutcomes     string `gorm:"type:text"`
}

func NewApplication(applicant ApplicantRef, submittedBy uuid.UUID, grantType ApplicationGrantType,
	requestedAmount valueobject.Money, title, purpose string) (*Application, error) {
	if err := applicant.Validate(); err != nil {
		return nil, err
	}
	if !grantType.IsValid() {
		return nil, shared.NewDomainError("INVALID_GRANT_TYPE", "invalid grant type: "+string(grantType))
	}
	if requestedAmount.IsZero() || requestedAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "requested amount must be positive")
	}
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "title is required and cannot exceed 200 characters")
	}
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return nil, shared.NewDomainError("MISSING_PURPOSE", "purpose is required")
	}

	return &Application{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(submittedBy),
		Applicant:            applicant,
		SubmittedBy:          submittedBy,
		GrantType:            grantType,
		RequestedAmount:      requestedAmount,
		Title:                title,
		Purpose:              purpose,
		Status:               AppStatusDraft,
		DisbursedAmount:      valueobject.ZeroKES(),
	}, nil
}

func (a *Application) AttachProgram(programID uuid.UUID) {
	a.ProgramID = &programID
	a.Touch()
	a.IncrementVersion()
}

func (a *Application) SetNarrative(businessPlan, expectedOutcomes string) {
	a.BusinessPlan = strings.TrimSpace(businessPlan)
	a.ExpectedOutcomes = strings.TrimSpace(expectedOutcomes)
	a.Touch()
	a.IncrementVersion()
}

func (a *Application) SetBudgetBreakdown(budget map[string]interface{}) {
	a.BudgetBreakdown = budget
	a.Touch()
	a.IncrementVersion()
}

func (a *Application) AttachDocument(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return shared.NewDomainError("INVALID_DOCUMENT", "document path cannot be empty")
	}
	a.SupportingDocs = append(a.SupportingDocs, path)
	a.Touch()
	a.IncrementVersion()
	return nil
}

func (a *Application) Submit() error {
	if a.Status != AppStatusDraft {
		return shared.ErrInvalidState
	}
	now := time.Now().UTC()
	a.Status = AppStatusSubmitted
	a.SubmissionDate = &now
	a.Touch()
	a.IncrementVersion()
	a.AddDomainEvent(NewApplicationSubmittedEvent(a.ID, string(a.GrantType), a.RequestedAmount.String()))
	return nil
}

// Review records the reviewer's assessment. Score is 0-100.
func (a *Application) Review(reviewerID uuid.UUID, score int, notes string) error {
	if a.Status != AppStatusSubmitted && a.Status != AppStatusUnderReview {
		return shared.ErrInvalidState
	}
	if score < 0 || score > 100 {
		return shared.NewDomainError("INVALID_REVIEW_SCORE", "review score must be between 0 and 100")
	}
	now := time.Now().UTC()
	a.Status = AppStatusUnderReview
	a.ReviewedBy = &reviewerID
	a.ReviewDate = &now
	a.ReviewScore = &score
	a.ReviewNotes = strings.TrimSpace(notes)
	a.Touch()
	a.IncrementVersion()
	return nil
}

// Approve moves the application to approved. A nil approvedAmount grants
// the requested amount in full.
func (a *Application) Approve(approverID uuid.UUID, approvedAmount *valueobject.Money, notes string) error {
	if a.Status != AppStatusSubmitted && a.Status != AppStatusUnderReview {
		return shared.ErrInvalidState
	}
	if approvedAmount != nil {
		if approvedAmount.IsZero() || approvedAmount.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "approved amount must be positive")
		}
		a.ApprovedAmount = approvedAmount
	}
	now := time.Now().UTC()
	a.Status = AppStatusApproved
	a.ApprovedBy = &approverID
	a.ApprovalDate = &now
	a.ApprovalNotes = strings.TrimSpace(notes)
	a.Touch()
	a.IncrementVersion()
	return nil
}

func (a *Application) Reject(reviewerID uuid.UUID, notes string) error {
	if a.Status != AppStatusSubmitted && a.Status != AppStatusUnderReview {
		return shared.ErrInvalidState
	}
	a.Status = AppStatusRejected
	a.ReviewedBy = &reviewerID
	a.ReviewNotes = strings.TrimSpace(notes)
	a.Touch()
	a.IncrementVersion()
	return nil
}

func (a *Application) Cancel() error {
	if a.Status == AppStatusDisbursed || a.Status == AppStatusCancelled {
		return shared.ErrInvalidState
	}
	a.Status = AppStatusCancelled
	a.Touch()
	a.IncrementVersion()
	return nil
}

// EffectiveAmount is the approved amount when set, otherwise the
// requested one.
func (a *Application) EffectiveAmount() valueobject.Money {
	if a.ApprovedAmount != nil {
		return *a.ApprovedAmount
	}
	return a.RequestedAmount
}

func (a *Application) RemainingAmount() valueobject.Money {
	remaining, err := a.EffectiveAmount().Subtract(a.DisbursedAmount)
	if err != nil {
		return valueobject.ZeroKES()
	}
	return remaining
}

// Disburse books a payout against the approved application.
func (a *Application) Disburse(amount valueobject.Money, method DisbursementMethod,
	reference string, disbursedBy uuid.UUID) error {
	if a.Status != AppStatusApproved && a.Status != AppStatusDisbursed {
		return shared.NewDomainError("NOT_APPROVED", "application must be approved before disbursement")
	}
	if amount.IsZero() || amount.IsNegative() {
		return shared.NewDomainError("INVALID_DISBURSEMENT", "disbursement amount must be positive")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_DISBURSEMENT_METHOD", "invalid disbursement method: "+string(method))
	}
	next, err := a.DisbursedAmount.Add(amount)
	if err != nil {
		return err
	}
	within, err := a.EffectiveAmount().GreaterThanOrEqual(next)
	if err != nil {
		return err
	}
	if !within {
		return shared.NewDomainError("OVER_DISBURSEMENT", "disbursement would exceed the approved amount")
	}

	now := time.Now().UTC()
	a.DisbursedAmount = next
	a.DisbursementDate = &now
	a.DisbursedBy = &disbursedBy
	a.DisbursementMethod = method
	a.DisbursementReference = strings.TrimSpace(reference)
	if a.DisbursedAmount.Equals(a.EffectiveAmount()) {
		a.Status = AppStatusDisbursed
	}
	a.Touch()
	a.IncrementVersion()
	return nil
}

func (a *Application) RecordUtilization(report, finalOutcomes string) error {
	report = strings.TrimSpace(report)
	if report == "" {
		return shared.NewDomainError("EMPTY_UTILIZATION_REPORT", "utilization report cannot be empty")
	}
	now := time.Now().UTC()
	a.UtilizationReport = report
	a.FinalOutcomes = strings.TrimSpace(finalOutcomes)
	a.UtilizationDate = &now
	a.Touch()
	a.IncrementVersion()
	return nil
}

func (a *Application) IsPendingReview() bool {
	return a.Status == AppStatusSubmitted || a.Status == AppStatusUnderReview
}

func (a *Application) IsApproved() bool {
	return a.Status == AppStatusApproved
}
