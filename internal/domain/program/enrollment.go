package program

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/shared"
)

// ParticipationStatus tracks a household's progress through a program
type ParticipationStatus string

const (
	ParticipationEligible   ParticipationStatus = "eligible"
	ParticipationEnrolled   ParticipationStatus = "enrolled"
	ParticipationActive     ParticipationStatus = "active"
	ParticipationGraduated  ParticipationStatus = "graduated"
	ParticipationDroppedOut ParticipationStatus = "dropped_out"
)

// Enrollment records a household's participation in a program.
// A household holds at most one enrollment per program.
type Enrollment struct {
	shared.BaseAggregateRoot
	HouseholdID    uuid.UUID
	ProgramID      uuid.UUID
	MentorID       *uuid.UUID
	Status         ParticipationStatus
	EnrollmentDate *time.Time
	GraduationDate *time.Time
	DropoutDate    *time.Time
	DropoutReason  string
}

// NewEnrollment registers a household as eligible for a program
func NewEnrollment(householdID, programID uuid.UUID) (*Enrollment, error) {
	if householdID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_HOUSEHOLD_ID", "Household ID cannot be empty")
	}
	if programID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROGRAM_ID", "Program ID cannot be empty")
	}

	e := &Enrollment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		HouseholdID:       householdID,
		ProgramID:         programID,
		Status:            ParticipationEligible,
	}

	return e, nil
}

// AssignMentor attaches a mentor to the enrollment
func (e *Enrollment) AssignMentor(mentorID uuid.UUID) error {
	if mentorID == uuid.Nil {
		return shared.NewDomainError("INVALID_MENTOR_ID", "Mentor ID cannot be empty")
	}

	e.MentorID = &mentorID
	e.Touch()
	e.IncrementVersion()

	return nil
}

// Enroll moves an eligible household into the program
func (e *Enrollment) Enroll() error {
	if e.Status != ParticipationEligible {
		return shared.NewDomainError("INVALID_STATE", "Only eligible households can be enrolled")
	}

	now := time.Now()
	e.Status = ParticipationEnrolled
	e.EnrollmentDate = &now
	e.Touch()
	e.IncrementVersion()

	e.AddDomainEvent(NewHouseholdEnrolledEvent(e))

	return nil
}

// Activate marks the enrollment as actively participating
func (e *Enrollment) Activate() error {
	if e.Status != ParticipationEnrolled {
		return shared.NewDomainError("INVALID_STATE", "Only enrolled households can become active")
	}

	e.Status = ParticipationActive
	e.Touch()
	e.IncrementVersion()

	return nil
}

// Graduate completes the household's participation
func (e *Enrollment) Graduate() error {
	if e.Status != ParticipationActive {
		return shared.NewDomainError("INVALID_STATE", "Only active participants can graduate")
	}

	now := time.Now()
	e.Status = ParticipationGraduated
	e.GraduationDate = &now
	e.Touch()
	e.IncrementVersion()

	e.AddDomainEvent(NewHouseholdGraduatedEvent(e))

	return nil
}

// DropOut withdraws the household with a reason
func (e *Enrollment) DropOut(reason string) error {
	if e.Status == ParticipationGraduated || e.Status == ParticipationDroppedOut {
		return shared.NewDomainError("INVALID_STATE", "Participation has already ended")
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Dropout reason is required")
	}

	now := time.Now()
	e.Status = ParticipationDroppedOut
	e.DropoutDate = &now
	e.DropoutReason = reason
	e.Touch()
	e.IncrementVersion()

	e.AddDomainEvent(NewHouseholdDroppedOutEvent(e))

	return nil
}

// IsOngoing reports whether the enrollment still occupies the household's
// single active participation slot
func (e *Enrollment) IsOngoing() bool {
	switch e.Status {
	case ParticipationEnrolled, ParticipationActive:
		return true
	default:
		return false
	}
}
