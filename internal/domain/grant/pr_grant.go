package grant

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/shared/valueobject"
)

// PRGrantStatus extends the seed grant workflow with an eligibility gate:
// a performance recognition grant starts out not eligible and only opens
// for application once the seed grant has been disbursed and accounted for.
type PRGrantStatus string

const (
	PRNotEligible PRGrantStatus = "not_eligible"
	PREligible    PRGrantStatus = "eligible"
	PRPending     PRGrantStatus = "pending"
	PRUnderReview PRGrantStatus = "under_review"
	PRApproved    PRGrantStatus = "approved"
	PRDisbursed   PRGrantStatus = "disbursed"
	PRRejected    PRGrantStatus = "rejected"
	PRCancelled   PRGrantStatus = "cancelled"
)

// PerformanceRating grades the business over the seed grant period.
type PerformanceRating string

const (
	PerformanceExcellent    PerformanceRating = "excellent"
	PerformanceGood         PerformanceRating = "good"
	PerformanceSatisfactory PerformanceRating = "satisfactory"
	PerformancePoor         PerformanceRating = "poor"
)

// PRGrant is a performance recognition grant, the follow-on award made
// after a business has put its seed grant to work.
type PRGrant struct {
	shared.AuditedAggregateRoot

	ProgramID uuid.UUID
	Applicant ApplicantRef `gorm:"embedded"`
	SBGrantID uuid.UUID    `gorm:"type:uuid;uniqueIndex"`

	Amount          valueobject.Money `gorm:"type:decimal(10,2)"`
	ApplicationDate time.Time
	Status          PRGrantStatus `gorm:"type:varchar(20)"`

	PerformanceScore      *int
	PerformanceRating     PerformanceRating `gorm:"type:varchar(20)"`
	PerformanceAssessment string            `gorm:"type:text"`

	RevenueGenerated   *valueobject.Money
	JobsCreated        int
	SavingsAccumulated *valueobject.Money

	AssessedBy     *uuid.UUID
	AssessmentDate *time.Time

	ApprovedBy   *uuid.UUID
	ApprovalDate *time.Time

	DisbursementDate *time.Time
	DisbursedBy      *uuid.UUID
}

func NewPRGrant(programID uuid.UUID, applicant ApplicantRef, sbGrantID, createdBy uuid.UUID) (*PRGrant, error) {
	if err := applicant.Validate(); err != nil {
		return nil, err
	}
	if sbGrantID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_SB_GRANT", "performance recognition grants require a prior seed business grant")
	}
	return &PRGrant{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		ProgramID:            programID,
		Applicant:            applicant,
		SBGrantID:            sbGrantID,
		Amount:               defaultPRGrant,
		ApplicationDate:      time.Now().UTC(),
		Status:               PRNotEligible,
	}, nil
}

// CheckEligibility verifies the gate against the linked seed grant: it
// must be fully disbursed and carry a utilization report.
func (g *PRGrant) CheckEligibility(sb *SBGrant) (bool, string) {
	if sb == nil || sb.ID != g.SBGrantID {
		return false, "seed business grant not found"
	}
	if sb.Status != StatusDisbursed {
		return false, "seed business grant must be fully disbursed first"
	}
	if strings.TrimSpace(sb.UtilizationReport) == "" {
		return false, "seed business grant utilization report required"
	}
	return true, "eligible for performance recognition grant"
}

// MarkEligible opens the grant for application once the gate passes.
func (g *PRGrant) MarkEligible(sb *SBGrant) error {
	if g.Status != PRNotEligible {
		return shared.ErrInvalidState
	}
	ok, reason := g.CheckEligibility(sb)
	if !ok {
		return shared.NewDomainError("NOT_ELIGIBLE_FOR_PR", reason)
	}
	g.Status = PREligible
	g.Touch()
	g.IncrementVersion()
	g.AddDomainEvent(NewPRGrantEligibleEvent(g.ID, g.SBGrantID))
	return nil
}

func (g *PRGrant) Apply() error {
	if g.Status != PREligible {
		return shared.ErrInvalidState
	}
	g.Status = PRPending
	g.ApplicationDate = time.Now().UTC()
	g.Touch()
	g.IncrementVersion()
	return nil
}

func (g *PRGrant) StartReview() error {
	if g.Status != PRPending {
		return shared.ErrInvalidState
	}
	g.Status = PRUnderReview
	g.Touch()
	g.IncrementVersion()
	return nil
}

// AssessPerformance records the reviewer's grading of the business over
// the seed grant period. Score is 0-100 and maps onto the rating bands.
func (g *PRGrant) AssessPerformance(score int, assessment string, assessedBy uuid.UUID) error {
	if score < 0 || score > 100 {
		return shared.NewDomainError("INVALID_PERFORMANCE_SCORE", "performance score must be between 0 and 100")
	}
	now := time.Now().UTC()
	g.PerformanceScore = &score
	g.PerformanceRating = ratingForScore(score)
	g.PerformanceAssessment = strings.TrimSpace(assessment)
	g.AssessedBy = &assessedBy
	g.AssessmentDate = &now
	g.Touch()
	g.IncrementVersion()
	return nil
}

func ratingForScore(score int) PerformanceRating {
	switch {
	case score >= 85:
		return PerformanceExcellent
	case score >= 70:
		return PerformanceGood
	case score >= 50:
		return PerformanceSatisfactory
	default:
		return PerformancePoor
	}
}

// RecordBusinessMetrics captures what the business achieved with the seed
// capital.
func (g *PRGrant) RecordBusinessMetrics(revenue, savings valueobject.Money, jobsCreated int) error {
	if jobsCreated < 0 {
		return shared.NewDomainError("INVALID_METRIC", "jobs created cannot be negative")
	}
	g.RevenueGenerated = &revenue
	g.SavingsAccumulated = &savings
	g.JobsCreated = jobsCreated
	g.Touch()
	g.IncrementVersion()
	return nil
}

func (g *PRGrant) Approve(approverID uuid.UUID) error {
	if g.Status != PRUnderReview && g.Status != PRPending {
		return shared.ErrInvalidState
	}
	now := time.Now().UTC()
	g.Status = PRApproved
	g.ApprovedBy = &approverID
	g.ApprovalDate = &now
	g.Touch()
	g.IncrementVersion()
	g.AddDomainEvent(NewGrantApprovedEvent(g.ID, GrantKindPR, g.Amount.String()))
	return nil
}

func (g *PRGrant) Reject() error {
	if g.Status != PRUnderReview && g.Status != PRPending {
		return shared.ErrInvalidState
	}
	g.Status = PRRejected
	g.Touch()
	g.IncrementVersion()
	return nil
}

func (g *PRGrant) Cancel() error {
	if g.Status == PRDisbursed || g.Status == PRCancelled {
		return shared.ErrInvalidState
	}
	g.Status = PRCancelled
	g.Touch()
	g.IncrementVersion()
	return nil
}

// Disburse pays out the full award in one transaction.
func (g *PRGrant) Disburse(disbursedBy uuid.UUID) error {
	if g.Status != PRApproved {
		return shared.NewDomainError("NOT_APPROVED", "grant must be approved before disbursement")
	}
	now := time.Now().UTC()
	g.Status = PRDisbursed
	g.DisbursementDate = &now
	g.DisbursedBy = &disbursedBy
	g.Touch()
	g.IncrementVersion()
	g.AddDomainEvent(NewGrantDisbursedEvent(g.ID, GrantKindPR, g.Amount.String(), true))
	return nil
}

func (g *PRGrant) IsEligible() bool {
	return g.Status != PRNotEligible
}
