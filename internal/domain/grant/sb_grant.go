package grant

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/shared/valueobject"
)

// GrantStatus is the review workflow state of a seed business grant.
type GrantStatus string

const (
	StatusPending     GrantStatus = "pending"
	StatusUnderReview GrantStatus = "under_review"
	StatusApproved    GrantStatus = "approved"
	StatusDisbursed   GrantStatus = "disbursed"
	StatusRejected    GrantStatus = "rejected"
	StatusCancelled   GrantStatus = "cancelled"
)

// DisbursementStatus tracks how much of the award has been paid out.
type DisbursementStatus string

const (
	NotDisbursed       DisbursementStatus = "not_disbursed"
	PartiallyDisbursed DisbursementStatus = "partially_disbursed"
	FullyDisbursed     DisbursementStatus = "fully_disbursed"
)

// SBGrant is a seed business grant, the initial capital award made to a
// business group (or household, or savings group) under a graduation
// program.
type SBGrant struct {
	shared.AuditedAggregateRoot

	ProgramID   uuid.UUID
	Applicant   ApplicantRef `gorm:"embedded"`
	SubmittedBy *uuid.UUID

	BaseAmount       valueobject.Money  `gorm:"type:decimal(10,2)"`
	CalculatedAmount *valueobject.Money `gorm:"type:decimal(10,2)"`
	FinalAmount      *valueobject.Money `gorm:"type:decimal(10,2)"`
	Factors          GrantFactors       `gorm:"embedded;embeddedPrefix:factor_"`

	ApplicationDate    time.Time
	Status             GrantStatus        `gorm:"type:varchar(20)"`
	DisbursementStatus DisbursementStatus `gorm:"type:varchar(20)"`

	BusinessPlan    string `gorm:"type:text"`
	ProjectedIncome *valueobject.Money
	StartupCosts    *valueobject.Money
	MonthlyExpenses *valueobject.Money

	ReviewedBy  *uuid.UUID
	ReviewDate  *time.Time
	ReviewNotes string `gorm:"type:text"`

	ApprovedBy   *uuid.UUID
	ApprovalDate *time.Time

	DisbursedAmount valueobject.Money `gorm:"type:decimal(10,2)"`

	UtilizationReport string `gorm:"type:text"`
	UtilizationDate   *time.Time
}

func NewSBGrant(programID uuid.UUID, applicant ApplicantRef, businessPlan string,
	submittedBy, createdBy uuid.UUID) (*SBGrant, error) {
	if err := applicant.Validate(); err != nil {
		return nil, err
	}
	businessPlan = strings.TrimSpace(businessPlan)
	if businessPlan == "" {
		return nil, shared.NewDomainError("MISSING_BUSINESS_PLAN", "a business plan is required to apply for a seed business grant")
	}

	g := &SBGrant{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		ProgramID:            programID,
		Applicant:            applicant,
		SubmittedBy:          &submittedBy,
		BaseAmount:           baseSBGrant,
		Factors:              NeutralFactors(),
		ApplicationDate:      time.Now().UTC(),
		Status:               StatusPending,
		DisbursementStatus:   NotDisbursed,
		BusinessPlan:         businessPlan,
		DisbursedAmount:      valueobject.ZeroKES(),
	}
	g.AddDomainEvent(NewSBGrantAppliedEvent(g.ID, programID, string(applicant.Type()), applicant.ID()))
	return g, nil
}

// SetFinancials records the applicant's projections. Startup costs more
// than double the award, or projected income below monthly expenses, are
// rejected as implausible.
func (g *SBGrant) SetFinancials(projectedIncome, startupCosts, monthlyExpenses valueobject.Money) error {
	effective := g.EffectiveAmount()
	tooHigh, err := startupCosts.GreaterThan(effective.MultiplyByFloat(2))
	if err != nil {
		return err
	}
	if tooHigh {
		return shared.NewDomainError("IMPLAUSIBLE_COSTS", "startup costs are too high relative to the grant amount")
	}
	belowExpenses, err := projectedIncome.LessThan(monthlyExpenses)
	if err != nil {
		return err
	}
	if belowExpenses {
		return shared.NewDomainError("IMPLAUSIBLE_INCOME", "projected income should exceed monthly expenses")
	}
	g.ProjectedIncome = &projectedIncome
	g.StartupCosts = &startupCosts
	g.MonthlyExpenses = &monthlyExpenses
	g.Touch()
	g.IncrementVersion()
	return nil
}

// Calculate sizes the award from the applicant's profile and stores both
// the factors and the clamped amount. The final amount defaults to the
// calculated one until an approver overrides it.
func (g *SBGrant) Calculate(in CalculationInput) valueobject.Money {
	g.Factors = ComputeFactors(in)
	amount := SizeGrant(g.Factors)
	g.CalculatedAmount = &amount
	if g.FinalAmount == nil {
		g.FinalAmount = &amount
	}
	g.Touch()
	g.IncrementVersion()
	return amount
}

// EffectiveAmount is the amount to disburse against: the final amount if
// set, otherwise the calculated one, otherwise the base.
func (g *SBGrant) EffectiveAmount() valueobject.Money {
	if g.FinalAmount != nil {
		return *g.FinalAmount
	}
	if g.CalculatedAmount != nil {
		return *g.CalculatedAmount
	}
	return g.BaseAmount
}

func (g *SBGrant) RemainingAmount() valueobject.Money {
	remaining, err := g.EffectiveAmount().Subtract(g.DisbursedAmount)
	if err != nil {
		return valueobject.ZeroKES()
	}
	return remaining
}

// DisbursementPercentage reports how much of the award has been paid out,
// 0 to 100.
func (g *SBGrant) DisbursementPercentage() float64 {
	effective := g.EffectiveAmount()
	if effective.IsZero() {
		return 0
	}
	return g.DisbursedAmount.Amount().Div(effective.Amount()).InexactFloat64() * 100
}

func (g *SBGrant) StartReview(reviewerID uuid.UUID) error {
	if g.Status != StatusPending {
		return shared.ErrInvalidState
	}
	now := time.Now().UTC()
	g.Status = StatusUnderReview
	g.ReviewedBy = &reviewerID
	g.ReviewDate = &now
	g.Touch()
	g.IncrementVersion()
	return nil
}

// Approve moves the grant to approved. A non-nil finalAmount overrides
// the calculated award, still subject to the floor and cap.
func (g *SBGrant) Approve(approverID uuid.UUID, finalAmount *valueobject.Money) error {
	if g.Status != StatusUnderReview && g.Status != StatusPending {
		return shared.ErrInvalidState
	}
	if finalAmount != nil {
		clamped, err := finalAmount.Clamp(minSBGrant, maxSBGrant)
		if err != nil {
			return err
		}
		g.FinalAmount = &clamped
	}
	now := time.Now().UTC()
	g.Status = StatusApproved
	g.ApprovedBy = &approverID
	g.ApprovalDate = &now
	g.Touch()
	g.IncrementVersion()
	g.AddDomainEvent(NewGrantApprovedEvent(g.ID, GrantKindSB, g.EffectiveAmount().String()))
	return nil
}

func (g *SBGrant) Reject(reviewerID uuid.UUID, notes string) error {
	if g.Status != StatusUnderReview && g.Status != StatusPending {
		return shared.ErrInvalidState
	}
	g.Status = StatusRejected
	g.ReviewedBy = &reviewerID
	g.ReviewNotes = strings.TrimSpace(notes)
	g.Touch()
	g.IncrementVersion()
	return nil
}

func (g *SBGrant) Cancel() error {
	if g.Status == StatusDisbursed || g.Status == StatusCancelled {
		return shared.ErrInvalidState
	}
	g.Status = StatusCancelled
	g.Touch()
	g.IncrementVersion()
	return nil
}

// CanDisburse reports whether paying out the given amount would stay
// within the award.
func (g *SBGrant) CanDisburse(amount valueobject.Money) bool {
	next, err := g.DisbursedAmount.Add(amount)
	if err != nil {
		return false
	}
	within, err := g.EffectiveAmount().GreaterThanOrEqual(next)
	if err != nil {
		return false
	}
	return within
}

// RecordDisbursement books a payout against the award. The grant must be
// approved, and the running total may never exceed the effective amount.
// When the award is fully paid the grant moves to disbursed.
func (g *SBGrant) RecordDisbursement(amount valueobject.Money) error {
	if g.Status != StatusApproved && g.Status != StatusDisbursed {
		return shared.NewDomainError("NOT_APPROVED", "grant must be approved before disbursement")
	}
	if amount.IsZero() || amount.IsNegative() {
		return shared.NewDomainError("INVALID_DISBURSEMENT", "disbursement amount must be positive")
	}
	if !g.CanDisburse(amount) {
		return shared.NewDomainError("OVER_DISBURSEMENT", "disbursement would exceed the approved grant amount")
	}

	g.DisbursedAmount = g.DisbursedAmount.MustAdd(amount)
	if g.DisbursedAmount.Equals(g.EffectiveAmount()) {
		g.DisbursementStatus = FullyDisbursed
		g.Status = StatusDisbursed
	} else {
		g.DisbursementStatus = PartiallyDisbursed
	}
	g.Touch()
	g.IncrementVersion()
	g.AddDomainEvent(NewGrantDisbursedEvent(g.ID, GrantKindSB, amount.String(), g.DisbursementStatus == FullyDisbursed))
	return nil
}

// RecordUtilization captures how the award was spent. A utilization report
// is a precondition for performance recognition funding.
func (g *SBGrant) RecordUtilization(report string) error {
	report = strings.TrimSpace(report)
	if report == "" {
		return shared.NewDomainError("EMPTY_UTILIZATION_REPORT", "utilization report cannot be empty")
	}
	now := time.Now().UTC()
	g.UtilizationReport = report
	g.UtilizationDate = &now
	g.Touch()
	g.IncrementVersion()
	return nil
}

func (g *SBGrant) IsEligibleForDisbursement() bool {
	return g.Status == StatusApproved && g.DisbursementStatus == NotDisbursed
}
