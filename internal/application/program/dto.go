package program

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/upg/backend/internal/domain/program"
)

// CreateProgramRequest registers a new program in draft status
type CreateProgramRequest struct {
	Name                string           `json:"name" binding:"required,max=200"`
	Description         string           `json:"description"`
	Type                string           `json:"type" binding:"required"`
	Cycle               string           `json:"cycle" binding:"max=20"`
	Budget              *decimal.Decimal `json:"budget"`
	TargetBeneficiaries int              `json:"target_beneficiaries" binding:"min=0"`
	StartDate           *time.Time       `json:"start_date"`
	EndDate             *time.Time       `json:"end_date"`
	County              string           `json:"county" binding:"max=100"`
	SubCounty           string           `json:"sub_county" binding:"max=100"`
	CreatedBy           uuid.UUID        `json:"-"`
}

// UpdateProgramRequest modifies program details
type UpdateProgramRequest struct {
	Description         *string          `json:"description"`
	Cycle               *string          `json:"cycle" binding:"omitempty,max=20"`
	Budget              *decimal.Decimal `json:"budget"`
	TargetBeneficiaries *int             `json:"target_beneficiaries" binding:"omitempty,min=0"`
	StartDate           *time.Time       `json:"start_date"`
	EndDate             *time.Time       `json:"end_date"`
	County              *string          `json:"county" binding:"omitempty,max=100"`
	SubCounty           *string          `json:"sub_county" binding:"omitempty,max=100"`
}

// ProgramListFilter contains filtering options for listing programs
type ProgramListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Type     string `form:"type"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ProgramResponse represents a program in API responses
type ProgramResponse struct {
	ID                    uuid.UUID        `json:"id"`
	Name                  string           `json:"name"`
	Description           string           `json:"description"`
	Type                  string           `json:"type"`
	Status                string           `json:"status"`
	Cycle                 string           `json:"cycle"`
	Budget                *decimal.Decimal `json:"budget,omitempty"`
	TargetBeneficiaries   int              `json:"target_beneficiaries"`
	DurationMonths        int              `json:"duration_months"`
	StartDate             *time.Time       `json:"start_date,omitempty"`
	EndDate               *time.Time       `json:"end_date,omitempty"`
	County                string           `json:"county"`
	SubCounty             string           `json:"sub_county"`
	AcceptingApplications bool             `json:"accepting_applications"`
	IsGraduationProgram   bool             `json:"is_graduation_program"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

// EnrollHouseholdRequest enrolls a household into a program
type EnrollHouseholdRequest struct {
	HouseholdID uuid.UUID  `json:"household_id" binding:"required"`
	ProgramID   uuid.UUID  `json:"program_id" binding:"required"`
	MentorID    *uuid.UUID `json:"mentor_id"`
}

// DropOutRequest withdraws a household from its enrollment
type DropOutRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CompleteMilestoneRequest marks a milestone done
type CompleteMilestoneRequest struct {
	Notes       string    `json:"notes"`
	CompletedBy uuid.UUID `json:"-"`
}

// EnrollmentListFilter contains filtering options for listing enrollments
type EnrollmentListFilter struct {
	Status   string     `form:"status"`
	MentorID *uuid.UUID `form:"mentor_id"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// EnrollmentResponse represents an enrollment in API responses
type EnrollmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	HouseholdID    uuid.UUID  `json:"household_id"`
	ProgramID      uuid.UUID  `json:"program_id"`
	MentorID       *uuid.UUID `json:"mentor_id,omitempty"`
	Status         string     `json:"status"`
	EnrollmentDate *time.Time `json:"enrollment_date,omitempty"`
	GraduationDate *time.Time `json:"graduation_date,omitempty"`
	DropoutDate    *time.Time `json:"dropout_date,omitempty"`
	DropoutReason  string     `json:"dropout_reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// MilestoneResponse represents a graduation milestone in API responses
type MilestoneResponse struct {
	ID             uuid.UUID  `json:"id"`
	EnrollmentID   uuid.UUID  `json:"enrollment_id"`
	Key            string     `json:"key"`
	Label          string     `json:"label"`
	Status         string     `json:"status"`
	TargetDate     *time.Time `json:"target_date,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	IsOverdue      bool       `json:"is_overdue"`
}

// ToProgramResponse maps a domain program to an API response
func ToProgramResponse(p *program.Program) *ProgramResponse {
	return &ProgramResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		Description:           p.Description,
		Type:                  string(p.Type),
		Status:                string(p.Status),
		Cycle:                 p.Cycle,
		Budget:                p.Budget,
		TargetBeneficiaries:   p.TargetBeneficiaries,
		DurationMonths:        p.DurationMonths,
		StartDate:             p.StartDate,
		EndDate:               p.EndDate,
		County:                p.County,
		SubCounty:             p.SubCounty,
		AcceptingApplications: p.AcceptingApplications,
		IsGraduationProgram:   p.IsGraduationProgram(),
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

// ToProgramResponses maps a slice of domain programs
func ToProgramResponses(programs []*program.Program) []*ProgramResponse {
	responses := make([]*ProgramResponse, len(programs))
	for i, p := range programs {
		responses[i] = ToProgramResponse(p)
	}
	return responses
}

// ToEnrollmentResponse maps a domain enrollment to an API response
func ToEnrollmentResponse(e *program.Enrollment) *EnrollmentResponse {
	return &EnrollmentResponse{
		ID:             e.ID,
		HouseholdID:    e.HouseholdID,
		ProgramID:      e.ProgramID,
		MentorID:       e.MentorID,
		Status:         string(e.Status),
		EnrollmentDate: e.EnrollmentDate,
		GraduationDate: e.GraduationDate,
		DropoutDate:    e.DropoutDate,
		DropoutReason:  e.DropoutReason,
		CreatedAt:      e.CreatedAt,
	}
}

// ToEnrollmentResponses maps a slice of domain enrollments
func ToEnrollmentResponses(enrollments []*program.Enrollment) []*EnrollmentResponse {
	responses := make([]*EnrollmentResponse, len(enrollments))
	for i, e := range enrollments {
		responses[i] = ToEnrollmentResponse(e)
	}
	return responses
}

// ToMilestoneResponse maps a domain milestone to an API response
func ToMilestoneResponse(m *program.Milestone) *MilestoneResponse {
	return &MilestoneResponse{
		ID:             m.ID,
		EnrollmentID:   m.EnrollmentID,
		Key:            string(m.Key),
		Label:          m.Key.Label(),
		Status:         string(m.Status),
		TargetDate:     m.TargetDate,
		CompletionDate: m.CompletionDate,
		Notes:          m.Notes,
		IsOverdue:      m.IsOverdue(),
	}
}

// ToMilestoneResponses maps a slice of domain milestones
func ToMilestoneResponses(milestones []*program.Milestone) []*MilestoneResponse {
	responses := make([]*MilestoneResponse, len(milestones))
	for i, m := range milestones {
		responses[i] = ToMilestoneResponse(m)
	}
	return responses
}
