package program

import (
	"context"

	"github.com/google/uuid"
)

// ProgramRepository persists programs
type ProgramRepository interface {
	Create(ctx context.Context, program *Program) error
	Update(ctx context.Context, program *Program) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Program, error)
	FindByName(ctx context.Context, name string) (*Program, error)
	FindAll(ctx context.Context, filter ProgramFilter) ([]*Program, int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// EnrollmentRepository persists household enrollments and milestones
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *Enrollment) error
	Update(ctx context.Context, enrollment *Enrollment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Enrollment, error)
	FindByHouseholdAndProgram(ctx context.Context, householdID, programID uuid.UUID) (*Enrollment, error)
	FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*Enrollment, error)
	FindByProgram(ctx context.Context, programID uuid.UUID, filter EnrollmentFilter) ([]*Enrollment, int64, error)

	// FindOngoingByHousehold returns the household's current enrolled or
	// active participation, or nil when the household is free to enroll
	FindOngoingByHousehold(ctx context.Context, householdID uuid.UUID) (*Enrollment, error)

	CountByProgramAndStatus(ctx context.Context, programID uuid.UUID, status ParticipationStatus) (int64, error)

	SaveMilestones(ctx context.Context, milestones []*Milestone) error
	UpdateMilestone(ctx context.Context, milestone *Milestone) error
	FindMilestones(ctx context.Context, enrollmentID uuid.UUID) ([]*Milestone, error)
	FindMilestone(ctx context.Context, enrollmentID uuid.UUID, key MilestoneKey) (*Milestone, error)
}

// ProgramFilter contains filter options for querying programs
type ProgramFilter struct {
	Keyword  string
	Status   *ProgramStatus
	Type     *ProgramType
	Page     int
	PageSize int
}

// NewProgramFilter creates a filter with default values
func NewProgramFilter() ProgramFilter {
	return ProgramFilter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f ProgramFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f ProgramFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// EnrollmentFilter contains filter options for querying enrollments
type EnrollmentFilter struct {
	Status   *ParticipationStatus
	MentorID *uuid.UUID
	Page     int
	PageSize int
}

// NewEnrollmentFilter creates a filter with default values
func NewEnrollmentFilter() EnrollmentFilter {
	return EnrollmentFilter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f EnrollmentFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f EnrollmentFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
