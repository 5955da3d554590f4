package program

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/upg/backend/internal/domain/shared"
)

// ProgramStatus represents the lifecycle status of a program
type ProgramStatus string

const (
	ProgramStatusDraft     ProgramStatus = "draft"
	ProgramStatusActive    ProgramStatus = "active"
	ProgramStatusSuspended ProgramStatus = "suspended"
	ProgramStatusCompleted ProgramStatus = "completed"
	ProgramStatusCancelled ProgramStatus = "cancelled"
)

// ProgramType classifies what kind of intervention a program delivers
type ProgramType string

const (
	ProgramTypeGraduation       ProgramType = "graduation" // Ultra-Poor Graduation
	ProgramTypeMicrofinance     ProgramType = "microfinance"
	ProgramTypeAgricultural     ProgramType = "agricultural"
	ProgramTypeEducation        ProgramType = "education"
	ProgramTypeHealth           ProgramType = "health"
	ProgramTypeInfrastructure   ProgramType = "infrastructure"
	ProgramTypeSkillsTraining   ProgramType = "skills_training"
	ProgramTypeYouthEmpowerment ProgramType = "youth_empowerment"
	ProgramTypeWomenEmpowerment ProgramType = "women_empowerment"
	ProgramTypeOther            ProgramType = "other"
)

// The graduation model runs on a fixed 12-month cycle
const graduationDurationMonths = 12

var validProgramTypes = map[ProgramType]bool{
	ProgramTypeGraduation:       true,
	ProgramTypeMicrofinance:     true,
	ProgramTypeAgricultural:     true,
	ProgramTypeEducation:        true,
	ProgramTypeHealth:           true,
	ProgramTypeInfrastructure:   true,
	ProgramTypeSkillsTraining:   true,
	ProgramTypeYouthEmpowerment: true,
	ProgramTypeWomenEmpowerment: true,
	ProgramTypeOther:            true,
}

// Program is a county-run intervention that households enroll into.
// Graduation programs additionally carry PPI scoring, group formation,
// milestones and the SB/PR grant track.
type Program struct {
	shared.AuditedAggregateRoot
	Name                    string
	Description             string
	Type                    ProgramType
	Status                  ProgramStatus
	Cycle                   string // e.g. FY25C1
	Budget                  *decimal.Decimal
	TargetBeneficiaries     int
	DurationMonths          int
	StartDate               *time.Time
	EndDate                 *time.Time
	ApplicationDeadline     *time.Time
	County                  string
	SubCounty               string
	EligibilityCriteria     string
	ApplicationRequirements string
	AcceptingApplications   bool
	RequiresApproval        bool
}

// NewProgram creates a new program in draft status
func NewProgram(name, description string, programType ProgramType, createdBy uuid.UUID) (*Program, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Program name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Program name cannot exceed 200 characters")
	}
	if programType == "" {
		programType = ProgramTypeOther
	}
	if !validProgramTypes[programType] {
		return nil, shared.NewDomainError("INVALID_PROGRAM_TYPE", "Unknown program type: "+string(programType))
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "Creator ID cannot be empty")
	}

	duration := 6
	if programType == ProgramTypeGraduation {
		duration = graduationDurationMonths
	}

	p := &Program{
		AuditedAggregateRoot:  shared.NewAuditedAggregateRoot(createdBy),
		Name:                  name,
		Description:           description,
		Type:                  programType,
		Status:                ProgramStatusDraft,
		DurationMonths:        duration,
		AcceptingApplications: true,
		RequiresApproval:      true,
	}

	p.AddDomainEvent(NewProgramCreatedEvent(p))

	return p, nil
}

// IsGraduationProgram reports whether this is an Ultra-Poor Graduation program
func (p *Program) IsGraduationProgram() bool {
	return p.Type == ProgramTypeGraduation
}

// RequiresPPIScoring reports whether enrollment requires a PPI assessment
func (p *Program) RequiresPPIScoring() bool {
	return p.IsGraduationProgram()
}

// SupportsBusinessGroups reports whether the program forms business groups
func (p *Program) SupportsBusinessGroups() bool {
	return p.IsGraduationProgram()
}

// SupportsSavingsGroups reports whether the program forms savings groups
func (p *Program) SupportsSavingsGroups() bool {
	return p.IsGraduationProgram()
}

// HasGraduationMilestones reports whether the program tracks the 12-month milestones
func (p *Program) HasGraduationMilestones() bool {
	return p.IsGraduationProgram()
}

// SupportsGrants reports whether the program runs the SB and PR grant track
func (p *Program) SupportsGrants() bool {
	return p.IsGraduationProgram()
}

// SetSchedule sets the program dates
func (p *Program) SetSchedule(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return shared.NewDomainError("INVALID_SCHEDULE", "End date cannot be before start date")
	}

	p.StartDate = &startDate
	p.EndDate = &endDate
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetCycle sets the program cycle label (e.g. FY25C1)
func (p *Program) SetCycle(cycle string) error {
	cycle = strings.TrimSpace(cycle)
	if len(cycle) > 20 {
		return shared.NewDomainError("INVALID_CYCLE", "Cycle cannot exceed 20 characters")
	}

	p.Cycle = cycle
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetBudget sets the program budget
func (p *Program) SetBudget(budget decimal.Decimal) error {
	if budget.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}

	p.Budget = &budget
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetTargets sets beneficiary targets
func (p *Program) SetTargets(beneficiaries int) error {
	if beneficiaries < 0 {
		return shared.NewDomainError("INVALID_TARGET", "Target cannot be negative")
	}

	p.TargetBeneficiaries = beneficiaries
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetLocation sets the county and sub-county the program operates in
func (p *Program) SetLocation(county, subCounty string) {
	p.County = strings.TrimSpace(county)
	p.SubCounty = strings.TrimSpace(subCounty)
	p.Touch()
	p.IncrementVersion()
}

// Activate transitions the program from draft or suspended to active
func (p *Program) Activate() error {
	if p.Status != ProgramStatusDraft && p.Status != ProgramStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Only draft or suspended programs can be activated")
	}

	oldStatus := p.Status
	p.Status = ProgramStatusActive
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProgramStatusChangedEvent(p, oldStatus, ProgramStatusActive))

	return nil
}

// Suspend pauses an active program
func (p *Program) Suspend() error {
	if p.Status != ProgramStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active programs can be suspended")
	}

	p.Status = ProgramStatusSuspended
	p.AcceptingApplications = false
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProgramStatusChangedEvent(p, ProgramStatusActive, ProgramStatusSuspended))

	return nil
}

// Complete marks the program finished
func (p *Program) Complete() error {
	if p.Status != ProgramStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active programs can be completed")
	}

	p.Status = ProgramStatusCompleted
	p.AcceptingApplications = false
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProgramStatusChangedEvent(p, ProgramStatusActive, ProgramStatusCompleted))

	return nil
}

// Cancel abandons a program that never completed
func (p *Program) Cancel() error {
	if p.Status == ProgramStatusCompleted || p.Status == ProgramStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Program has already ended")
	}

	oldStatus := p.Status
	p.Status = ProgramStatusCancelled
	p.AcceptingApplications = false
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProgramStatusChangedEvent(p, oldStatus, ProgramStatusCancelled))

	return nil
}

// CloseApplications stops accepting new applications without changing status
func (p *Program) CloseApplications() {
	p.AcceptingApplications = false
	p.Touch()
	p.IncrementVersion()
}

// CanAcceptApplications reports whether new applications may be submitted
func (p *Program) CanAcceptApplications() bool {
	if p.Status != ProgramStatusActive || !p.AcceptingApplications {
		return false
	}
	if p.ApplicationDeadline != nil && time.Now().After(*p.ApplicationDeadline) {
		return false
	}
	return true
}
