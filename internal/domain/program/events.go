package program

import (
	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeProgram    = "Program"
	AggregateTypeEnrollment = "Enrollment"
)

// Program domain event types
const (
	EventTypeProgramCreated       = "ProgramCreated"
	EventTypeProgramStatusChanged = "ProgramStatusChanged"
	EventTypeHouseholdEnrolled    = "HouseholdEnrolled"
	EventTypeHouseholdGraduated   = "HouseholdGraduated"
	EventTypeHouseholdDroppedOut  = "HouseholdDroppedOut"
)

// ProgramCreatedEvent is published when a program is created
type ProgramCreatedEvent struct {
	shared.BaseDomainEvent
	Name string      `json:"name"`
	Type ProgramType `json:"program_type"`
}

// NewProgramCreatedEvent creates a new ProgramCreatedEvent
func NewProgramCreatedEvent(p *Program) *ProgramCreatedEvent {
	return &ProgramCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProgramCreated, AggregateTypeProgram, p.ID),
		Name:            p.Name,
		Type:            p.Type,
	}
}

// ProgramStatusChangedEvent is published when a program changes status
type ProgramStatusChangedEvent struct {
	shared.BaseDomainEvent
	Name      string        `json:"name"`
	OldStatus ProgramStatus `json:"old_status"`
	NewStatus ProgramStatus `json:"new_status"`
}

// NewProgramStatusChangedEvent creates a new ProgramStatusChangedEvent
func NewProgramStatusChangedEvent(p *Program, oldStatus, newStatus ProgramStatus) *ProgramStatusChangedEvent {
	return &ProgramStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProgramStatusChanged, AggregateTypeProgram, p.ID),
		Name:            p.Name,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// HouseholdEnrolledEvent is published when a household enrolls into a program
type HouseholdEnrolledEvent struct {
	shared.BaseDomainEvent
	HouseholdID uuid.UUID `json:"household_id"`
	ProgramID   uuid.UUID `json:"program_id"`
}

// NewHouseholdEnrolledEvent creates a new HouseholdEnrolledEvent
func NewHouseholdEnrolledEvent(e *Enrollment) *HouseholdEnrolledEvent {
	return &HouseholdEnrolledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeHouseholdEnrolled, AggregateTypeEnrollment, e.ID),
		HouseholdID:     e.HouseholdID,
		ProgramID:       e.ProgramID,
	}
}

// HouseholdGraduatedEvent is published when a household graduates
type HouseholdGraduatedEvent struct {
	shared.BaseDomainEvent
	HouseholdID uuid.UUID `json:"household_id"`
	ProgramID   uuid.UUID `json:"program_id"`
}

// NewHouseholdGraduatedEvent creates a new HouseholdGraduatedEvent
func NewHouseholdGraduatedEvent(e *Enrollment) *HouseholdGraduatedEvent {
	return &HouseholdGraduatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeHouseholdGraduated, AggregateTypeEnrollment, e.ID),
		HouseholdID:     e.HouseholdID,
		ProgramID:       e.ProgramID,
	}
}

// HouseholdDroppedOutEvent is published when a household drops out
type HouseholdDroppedOutEvent struct {
	shared.BaseDomainEvent
	HouseholdID uuid.UUID `json:"household_id"`
	ProgramID   uuid.UUID `json:"program_id"`
	Reason      string    `json:"reason"`
}

// NewHouseholdDroppedOutEvent creates a new HouseholdDroppedOutEvent
func NewHouseholdDroppedOutEvent(e *Enrollment) *HouseholdDroppedOutEvent {
	return &HouseholdDroppedOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeHouseholdDroppedOut, AggregateTypeEnrollment, e.ID),
		HouseholdID:     e.HouseholdID,
		ProgramID:       e.ProgramID,
		Reason:          e.DropoutReason,
	}
}
