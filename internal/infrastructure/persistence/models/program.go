package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/upg/backend/internal/domain/program"
)

// ProgramModel is the persistence model for the Program aggregate.
type ProgramModel struct {
	AuditedAggregateModel
	Name                    string                `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description             string                `gorm:"type:text"`
	Type                    program.ProgramType   `gorm:"type:varchar(30);not null;index"`
	Status                  program.ProgramStatus `gorm:"type:varchar(20);not null;index"`
	Cycle                   string                `gorm:"type:varchar(20)"`
	Budget                  *decimal.Decimal      `gorm:"type:decimal(14,2)"`
	TargetBeneficiaries     int                   `gorm:"not null;default:0"`
	DurationMonths          int                   `gorm:"not null;default:0"`
	StartDate               *time.Time
	EndDate                 *time.Time
	ApplicationDeadline     *time.Time
	County                  string `gorm:"type:varchar(100)"`
	SubCounty               string `gorm:"type:varchar(100)"`
	EligibilityCriteria     string `gorm:"type:text"`
	ApplicationRequirements string `gorm:"type:text"`
	AcceptingApplications   bool   `gorm:"not null;default:false"`
	RequiresApproval        bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProgramModel) TableName() string {
	return "programs"
}

// ToDomain converts the persistence model to a domain Program aggregate.
func (m *ProgramModel) ToDomain() *program.Program {
	p := &program.Program{
		Name:                    m.Name,
		Description:             m.Description,
		Type:                    m.Type,
		Status:                  m.Status,
		Cycle:                   m.Cycle,
		Budget:                  m.Budget,
		TargetBeneficiaries:     m.TargetBeneficiaries,
		DurationMonths:          m.DurationMonths,
		StartDate:               m.StartDate,
		EndDate:                 m.EndDate,
		ApplicationDeadline:     m.ApplicationDeadline,
		County:                  m.County,
		SubCounty:               m.SubCounty,
		EligibilityCriteria:     m.EligibilityCriteria,
		ApplicationRequirements: m.ApplicationRequirements,
		AcceptingApplications:   m.AcceptingApplications,
		RequiresApproval:        m.RequiresApproval,
	}
	m.PopulateAuditedAggregateRoot(&p.AuditedAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Program aggregate.
func (m *ProgramModel) FromDomain(p *program.Program) {
	m.FromDomainAuditedAggregateRoot(p.AuditedAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.Type = p.Type
	m.Status = p.Status
	m.Cycle = p.Cycle
	m.Budget = p.Budget
	m.TargetBeneficiaries = p.TargetBeneficiaries
	m.DurationMonths = p.DurationMonths
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
	m.ApplicationDeadline = p.ApplicationDeadline
	m.County = p.County
	m.SubCounty = p.SubCounty
	m.EligibilityCriteria = p.EligibilityCriteria
	m.ApplicationRequirements = p.ApplicationRequirements
	m.AcceptingApplications = p.AcceptingApplications
	m.RequiresApproval = p.RequiresApproval
}

// ProgramModelFromDomain creates a new persistence model from a domain Program.
func ProgramModelFromDomain(p *program.Program) *ProgramModel {
	m := &ProgramModel{}
	m.FromDomain(p)
	return m
}

// EnrollmentModel is the persistence model for a household's program enrollment.
type EnrollmentModel struct {
	AggregateModel
	HouseholdID    uuid.UUID                   `gorm:"type:uuid;not null;index:idx_enrollment_hh_program,unique"`
	ProgramID      uuid.UUID                   `gorm:"type:uuid;not null;index:idx_enrollment_hh_program,unique"`
	MentorID       *uuid.UUID                  `gorm:"type:uuid;index"`
	Status         program.ParticipationStatus `gorm:"type:varchar(20);not null;index"`
	EnrollmentDate *time.Time
	GraduationDate *time.Time
	DropoutDate    *time.Time
	DropoutReason  string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (EnrollmentModel) TableName() string {
	return "program_enrollments"
}

// ToDomain converts the persistence model to a domain Enrollment aggregate.
func (m *EnrollmentModel) ToDomain() *program.Enrollment {
	e := &program.Enrollment{
		HouseholdID:    m.HouseholdID,
		ProgramID:      m.ProgramID,
		MentorID:       m.MentorID,
		Status:         m.Status,
		EnrollmentDate: m.EnrollmentDate,
		GraduationDate: m.GraduationDate,
		DropoutDate:    m.DropoutDate,
		DropoutReason:  m.DropoutReason,
	}
	m.PopulateAggregateRoot(&e.BaseAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain Enrollment aggregate.
func (m *EnrollmentModel) FromDomain(e *program.Enrollment) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.HouseholdID = e.HouseholdID
	m.ProgramID = e.ProgramID
	m.MentorID = e.MentorID
	m.Status = e.Status
	m.EnrollmentDate = e.EnrollmentDate
	m.GraduationDate = e.GraduationDate
	m.DropoutDate = e.DropoutDate
	m.DropoutReason = e.DropoutReason
}

// MilestoneModel is the persistence model for an enrollment milestone.
type MilestoneModel struct {
	BaseModel
	EnrollmentID   uuid.UUID               `gorm:"type:uuid;not null;index:idx_milestone_enrollment_key,unique"`
	Key            program.MilestoneKey    `gorm:"type:varchar(50);not null;index:idx_milestone_enrollment_key,unique"`
	Status         program.MilestoneStatus `gorm:"type:varchar(20);not null"`
	TargetDate     *time.Time
	CompletionDate *time.Time
	Notes          string     `gorm:"type:text"`
	CompletedBy    *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (MilestoneModel) TableName() string {
	return "enrollment_milestones"
}

// ToDomain converts the persistence model to a domain Milestone entity.
func (m *MilestoneModel) ToDomain() *program.Milestone {
	return &program.Milestone{
		BaseEntity:     m.BaseModel.ToDomain(),
		EnrollmentID:   m.EnrollmentID,
		Key:            m.Key,
		Status:         m.Status,
		TargetDate:     m.TargetDate,
		CompletionDate: m.CompletionDate,
		Notes:          m.Notes,
		CompletedBy:    m.CompletedBy,
	}
}

// FromDomain populates the persistence model from a domain Milestone entity.
func (m *MilestoneModel) FromDomain(ms *program.Milestone) {
	m.FromDomainBaseEntity(ms.BaseEntity)
	m.EnrollmentID = ms.EnrollmentID
	m.Key = ms.Key
	m.Status = ms.Status
	m.TargetDate = ms.TargetDate
	m.CompletionDate = ms.CompletionDate
	m.Notes = ms.Notes
	m.CompletedBy = ms.CompletedBy
}
