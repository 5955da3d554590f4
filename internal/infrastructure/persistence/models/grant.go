package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/upg/backend/internal/domain/grant"
	"github.com/upg/backend/internal/domain/shared/valueobject"
)

// SBGrantModel is the persistence model for the SBGrant aggregate.
type SBGrantModel struct {
	AuditedAggregateModel
	ProgramID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	HouseholdID     *uuid.UUID `gorm:"type:uuid;index"`
	BusinessGroupID *uuid.UUID `gorm:"type:uuid;index"`
	SavingsGroupID  *uuid.UUID `gorm:"type:uuid;index"`
	SubmittedBy     *uuid.UUID `gorm:"type:uuid"`

	BaseAmount       valueobject.Money  `gorm:"type:decimal(10,2)"`
	CalculatedAmount *valueobject.Money `gorm:"type:decimal(10,2)"`
	FinalAmount      *valueobject.Money `gorm:"type:decimal(10,2)"`

	FactorGroupSize    decimal.Decimal `gorm:"column:factor_group_size;type:decimal(3,2)"`
	FactorBusinessType decimal.Decimal `gorm:"column:factor_business_type;type:decimal(3,2)"`
	FactorLocation     decimal.Decimal `gorm:"column:factor_location;type:decimal(3,2)"`
	FactorPerformance  decimal.Decimal `gorm:"column:factor_performance;type:decimal(3,2)"`

	ApplicationDate    time.Time                `gorm:"not null"`
	Status             grant.GrantStatus        `gorm:"type:varchar(20);not null;index"`
	DisbursementStatus grant.DisbursementStatus `gorm:"type:varchar(20);not null"`

	BusinessPlan    string             `gorm:"type:text"`
	ProjectedIncome *valueobject.Money `gorm:"type:decimal(10,2)"`
	StartupCosts    *valueobject.Money `gorm:"type:decimal(10,2)"`
	MonthlyExpenses *valueobject.Money `gorm:"type:decimal(10,2)"`

	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewDate  *time.Time
	ReviewNotes string `gorm:"type:text"`

	ApprovedBy   *uuid.UUID `gorm:"type:uuid"`
	ApprovalDate *time.Time

	DisbursedAmount valueobject.Money `gorm:"type:decimal(10,2)"`

	UtilizationReport string `gorm:"type:text"`
	UtilizationDate   *time.Time
}

// TableName returns the table name for GORM
func (SBGrantModel) TableName() string {
	return "sb_grants"
}

// ToDomain converts the persistence model to a domain SBGrant aggregate.
func (m *SBGrantModel) ToDomain() *grant.SBGrant {
	g := &grant.SBGrant{
		ProgramID: m.ProgramID,
		Applicant: grant.ApplicantRef{
			HouseholdID:     m.HouseholdID,
			BusinessGroupID: m.BusinessGroupID,
			SavingsGroupID:  m.SavingsGroupID,
		},
		SubmittedBy:      m.SubmittedBy,
		BaseAmount:       m.BaseAmount,
		CalculatedAmount: m.CalculatedAmount,
		FinalAmount:      m.FinalAmount,
		Factors: grant.GrantFactors{
			GroupSize:    m.FactorGroupSize,
			BusinessType: m.FactorBusinessType,
			Location:     m.FactorLocation,
			Performance:  m.FactorPerformance,
		},
		ApplicationDate:    m.ApplicationDate,
		Status:             m.Status,
		DisbursementStatus: m.DisbursementStatus,
		BusinessPlan:       m.BusinessPlan,
		ProjectedIncome:    m.ProjectedIncome,
		StartupCosts:       m.StartupCosts,
		MonthlyExpenses:    m.MonthlyExpenses,
		ReviewedBy:         m.ReviewedBy,
		ReviewDate:         m.ReviewDate,
		ReviewNotes:        m.ReviewNotes,
		ApprovedBy:         m.ApprovedBy,
		ApprovalDate:       m.ApprovalDate,
		DisbursedAmount:    m.DisbursedAmount,
		UtilizationReport:  m.UtilizationReport,
		UtilizationDate:    m.UtilizationDate,
	}
	m.PopulateAuditedAggregateRoot(&g.AuditedAggregateRoot)
	return g
}

// FromDomain populates the persistence model from a domain SBGrant aggregate.
func (m *SBGrantModel) FromDomain(g *grant.SBGrant) {
	m.FromDomainAuditedAggregateRoot(g.AuditedAggregateRoot)
	m.ProgramID = g.ProgramID
	m.HouseholdID = g.Applicant.HouseholdID
	m.BusinessGroupID = g.Applicant.BusinessGroupID
	m.SavingsGroupID = g.Applicant.SavingsGroupID
	m.SubmittedBy = g.SubmittedBy
	m.BaseAmount = g.BaseAmount
	m.CalculatedAmount = g.CalculatedAmount
	m.FinalAmount = g.FinalAmount
	m.FactorGroupSize = g.Factors.GroupSize
	m.FactorBusinessType = g.Factors.BusinessType
	m.FactorLocation = g.Factors.Location
	m.FactorPerformance = g.Factors.Performance
	m.ApplicationDate = g.ApplicationDate
	m.Status = g.Status
	m.DisbursementStatus = g.DisbursementStatus
	m.BusinessPlan = g.BusinessPlan
	m.ProjectedIncome = g.ProjectedIncome
	m.StartupCosts = g.StartupCosts
	m.MonthlyExpenses = g.MonthlyExpenses
	m.ReviewedBy = g.ReviewedBy
	m.ReviewDate = g.ReviewDate
	m.ReviewNotes = g.ReviewNotes
	m.ApprovedBy = g.ApprovedBy
	m.ApprovalDate = g.ApprovalDate
	m.DisbursedAmount = g.DisbursedAmount
	m.UtilizationReport = g.UtilizationReport
	m.UtilizationDate = g.UtilizationDate
}

// SBGrantModelFromDomain creates a new persistence model from a domain SBGrant.
func SBGrantModelFromDomain(g *grant.SBGrant) *SBGrantModel {
	m := &SBGrantModel{}
	m.FromDomain(g)
	return m
}

// PRGrantModel is the persistence model for the PRGrant aggregate.
type PRGrantModel struct {
	AuditedAggregateModel
	ProgramID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	HouseholdID     *uuid.UUID `gorm:"type:uuid;index"`
	BusinessGroupID *uuid.UUID `gorm:"type:uuid;index"`
	SavingsGroupID  *uuid.UUID `gorm:"type:uuid;index"`
	SBGrantID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`

	Amount          valueobject.Money   `gorm:"type:decimal(10,2)"`
	ApplicationDate time.Time           `gorm:"not null"`
	Status          grant.PRGrantStatus `gorm:"type:varchar(20);not null;index"`

	PerformanceScore      *int
	PerformanceRating     grant.PerformanceRating `gorm:"type:varchar(20)"`
	PerformanceAssessment string                  `gorm:"type:text"`

	RevenueGenerated   *valueobject.Money `gorm:"type:decimal(10,2)"`
	JobsCreated        int                `gorm:"not null;default:0"`
	SavingsAccumulated *valueobject.Money `gorm:"type:decimal(10,2)"`

	AssessedBy     *uuid.UUID `gorm:"type:uuid"`
	AssessmentDate *time.Time

	ApprovedBy   *uuid.UUID `gorm:"type:uuid"`
	ApprovalDate *time.Time

	DisbursementDate *time.Time
	DisbursedBy      *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PRGrantModel) TableName() string {
	return "pr_grants"
}

// ToDomain converts the persistence model to a domain PRGrant aggregate.
func (m *PRGrantModel) ToDomain() *grant.PRGrant {
	g := &grant.PRGrant{
		ProgramID: m.ProgramID,
		Applicant: grant.ApplicantRef{
			HouseholdID:     m.HouseholdID,
			BusinessGroupID: m.BusinessGroupID,
			SavingsGroupID:  m.SavingsGroupID,
		},
		SBGrantID:             m.SBGrantID,
		Amount:                m.Amount,
		ApplicationDate:       m.ApplicationDate,
		Status:                m.Status,
		PerformanceScore:      m.PerformanceScore,
		PerformanceRating:     m.PerformanceRating,
		PerformanceAssessment: m.PerformanceAssessment,
		RevenueGenerated:      m.RevenueGenerated,
		JobsCreated:           m.JobsCreated,
		SavingsAccumulated:    m.SavingsAccumulated,
		AssessedBy:            m.AssessedBy,
		AssessmentDate:        m.AssessmentDate,
		ApprovedBy:            m.ApprovedBy,
		ApprovalDate:          m.ApprovalDate,
		DisbursementDate:      m.DisbursementDate,
		DisbursedBy:           m.DisbursedBy,
	}
	m.PopulateAuditedAggregateRoot(&g.AuditedAggregateRoot)
	return g
}

// FromDomain populates the persistence model from a domain PRGrant aggregate.
func (m *PRGrantModel) FromDomain(g *grant.PRGrant) {
	m.FromDomainAuditedAggregateRoot(g.AuditedAggregateRoot)
	m.ProgramID = g.ProgramID
	m.HouseholdID = g.Applicant.HouseholdID
	m.BusinessGroupID = g.Applicant.BusinessGroupID
	m.SavingsGroupID = g.Applicant.SavingsGroupID
	m.SBGrantID = g.SBGrantID
	m.Amount = g.Amount
	m.ApplicationDate = g.ApplicationDate
	m.Status = g.Status
	m.PerformanceScore = g.PerformanceScore
	m.PerformanceRating = g.PerformanceRating
	m.PerformanceAssessment = g.PerformanceAssessment
	m.RevenueGenerated = g.RevenueGenerated
	m.JobsCreated = g.JobsCreated
	m.SavingsAccumulated = g.SavingsAccumulated
	m.AssessedBy = g.AssessedBy
	m.AssessmentDate = g.AssessmentDate
	m.ApprovedBy = g.ApprovedBy
	m.ApprovalDate = g.ApprovalDate
	m.DisbursementDate = g.DisbursementDate
	m.DisbursedBy = g.DisbursedBy
}

// DisbursementModel is the persistence model for a payout transaction.
type DisbursementModel struct {
	BaseModel
	SBGrantID *uuid.UUID `gorm:"type:uuid;index"`
	PRGrantID *uuid.UUID `gorm:"type:uuid;index"`

	Kind             grant.GrantKind    `gorm:"type:varchar(20);not null"`
	Amount           valueobject.Money  `gorm:"type:decimal(10,2)"`
	DisbursementDate time.Time          `gorm:"not null;index"`
	Method           grant.DisbursementMethod `gorm:"type:varchar(20);not null"`

	ReferenceNumber  string `gorm:"type:varchar(100)"`
	RecipientName    string `gorm:"type:varchar(100);not null"`
	RecipientContact string `gorm:"type:varchar(50)"`

	ProcessedBy uuid.UUID `gorm:"type:uuid;not null"`
	Notes       string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DisbursementModel) TableName() string {
	return "grant_disbursements"
}

// ToDomain converts the persistence model to a domain Disbursement.
func (m *DisbursementModel) ToDomain() *grant.Disbursement {
	return &grant.Disbursement{
		BaseEntity:       m.BaseModel.ToDomain(),
		SBGrantID:        m.SBGrantID,
		PRGrantID:        m.PRGrantID,
		Kind:             m.Kind,
		Amount:           m.Amount,
		DisbursementDate: m.DisbursementDate,
		Method:           m.Method,
		ReferenceNumber:  m.ReferenceNumber,
		RecipientName:    m.RecipientName,
		RecipientContact: m.RecipientContact,
		ProcessedBy:      m.ProcessedBy,
		Notes:            m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Disbursement.
func (m *DisbursementModel) FromDomain(d *grant.Disbursement) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.SBGrantID = d.SBGrantID
	m.PRGrantID = d.PRGrantID
	m.Kind = d.Kind
	m.Amount = d.Amount
	m.DisbursementDate = d.DisbursementDate
	m.Method = d.Method
	m.ReferenceNumber = d.ReferenceNumber
	m.RecipientName = d.RecipientName
	m.RecipientContact = d.RecipientContact
	m.ProcessedBy = d.ProcessedBy
	m.Notes = d.Notes
}

// GrantApplicationModel is the persistence model for the Application aggregate.
type GrantApplicationModel struct {
	AuditedAggregateModel
	HouseholdID     *uuid.UUID `gorm:"type:uuid;index"`
	BusinessGroupID *uuid.UUID `gorm:"type:uuid;index"`
	SavingsGroupID  *uuid.UUID `gorm:"type:uuid;index"`
	SubmittedBy     uuid.UUID  `gorm:"type:uuid;not null"`
	ProgramID       *uuid.UUID `gorm:"type:uuid;index"`

	GrantType       grant.ApplicationGrantType `gorm:"type:varchar(30);not null;index"`
	RequestedAmount valueobject.Money          `gorm:"type:decimal(10,2)"`
	ApprovedAmount  *valueobject.Money         `gorm:"type:decimal(10,2)"`

	Title            string                 `gorm:"type:varchar(200);not null"`
	Purpose          string                 `gorm:"type:text;not null"`
	BusinessPlan     string                 `gorm:"type:text"`
	ExpectedOutcomes string                 `gorm:"type:text"`
	BudgetBreakdown  map[string]interface{} `gorm:"serializer:json"`
	SupportingDocs   []string               `gorm:"serializer:json"`

	Status         grant.ApplicationStatus `gorm:"type:varchar(20);not null;index"`
	SubmissionDate *time.Time

	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewDate  *time.Time
	ReviewNotes string `gorm:"type:text"`
	ReviewScore *int

	ApprovedBy    *uuid.UUID `gorm:"type:uuid"`
	ApprovalDate  *time.Time
	ApprovalNotes string `gorm:"type:text"`

	DisbursementDate      *time.Time
	DisbursedAmount       valueobject.Money        `gorm:"type:decimal(10,2)"`
	DisbursedBy           *uuid.UUID               `gorm:"type:uuid"`
	DisbursementMethod    grant.DisbursementMethod `gorm:"type:varchar(50)"`
	DisbursementReference string                   `gorm:"type:varchar(100)"`

	UtilizationReport string `gorm:"type:text"`
	UtilizationDate   *time.Time
	FinalOutcomes     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (GrantApplicationModel) TableName() string {
	return "grant_applications"
}

// ToDomain converts the persistence model to a domain Application aggregate.
func (m *GrantApplicationModel) ToDomain() *grant.Application {
	a := &grant.Application{
		Applicant: grant.ApplicantRef{
			HouseholdID:     m.HouseholdID,
			BusinessGroupID: m.BusinessGroupID,
			SavingsGroupID:  m.SavingsGroupID,
		},
		SubmittedBy:           m.SubmittedBy,
		ProgramID:             m.ProgramID,
		GrantType:             m.GrantType,
		RequestedAmount:       m.RequestedAmount,
		ApprovedAmount:        m.ApprovedAmount,
		Title:                 m.Title,
		Purpose:               m.Purpose,
		BusinessPlan:          m.BusinessPlan,
		ExpectedOutcomes:      m.ExpectedOutcomes,
		BudgetBreakdown:       m.BudgetBreakdown,
		SupportingDocs:        m.SupportingDocs,
		Status:                m.Status,
		SubmissionDate:        m.SubmissionDate,
		ReviewedBy:            m.ReviewedBy,
		ReviewDate:            m.ReviewDate,
		ReviewNotes:           m.ReviewNotes,
		ReviewScore:           m.ReviewScore,
		ApprovedBy:            m.ApprovedBy,
		ApprovalDate:          m.ApprovalDate,
		ApprovalNotes:         m.ApprovalNotes,
		DisbursementDate:      m.DisbursementDate,
		DisbursedAmount:       m.DisbursedAmount,
		DisbursedBy:           m.DisbursedBy,
		DisbursementMethod:    m.DisbursementMethod,
		DisbursementReference: m.DisbursementReference,
		UtilizationReport:     m.UtilizationReport,
		UtilizationDate:       m.UtilizationDate,
		FinalOutcomes:         m.FinalOutcomes,
	}
	m.PopulateAuditedAggregateRoot(&a.AuditedAggregateRoot)
	return a
}

// FromDomain populates the persistence model from a domain Application aggregate.
func (m *GrantApplicationModel) FromDomain(a *grant.Application) {
	m.FromDomainAuditedAggregateRoot(a.AuditedAggregateRoot)
	m.HouseholdID = a.Applicant.HouseholdID
	m.BusinessGroupID = a.Applicant.BusinessGroupID
	m.SavingsGroupID = a.Applicant.SavingsGroupID
	m.SubmittedBy = a.SubmittedBy
	m.ProgramID = a.ProgramID
	m.GrantType = a.GrantType
	m.RequestedAmount = a.RequestedAmount
	m.ApprovedAmount = a.ApprovedAmount
	m.Title = a.Title
	m.Purpose = a.Purpose
	m.BusinessPlan = a.BusinessPlan
	m.ExpectedOutcomes = a.ExpectedOutcomes
	m.BudgetBreakdown = a.BudgetBreakdown
	m.SupportingDocs = a.SupportingDocs
	m.Status = a.Status
	m.SubmissionDate = a.SubmissionDate
	m.ReviewedBy = a.ReviewedBy
	m.ReviewDate = a.ReviewDate
	m.ReviewNotes = a.ReviewNotes
	m.ReviewScore = a.ReviewScore
	m.ApprovedBy = a.ApprovedBy
	m.ApprovalDate = a.ApprovalDate
	m.ApprovalNotes = a.ApprovalNotes
	m.DisbursementDate = a.DisbursementDate
	m.DisbursedAmount = a.DisbursedAmount
	m.DisbursedBy = a.DisbursedBy
	m.DisbursementMethod = a.DisbursementMethod
	m.DisbursementReference = a.DisbursementReference
	m.UtilizationReport = a.UtilizationReport
	m.UtilizationDate = a.UtilizationDate
	m.FinalOutcomes = a.FinalOutcomes
}
