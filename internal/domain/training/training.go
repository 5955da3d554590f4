package training

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/upg/backend/internal/domain/shared"
)

// TrainingStatus is the lifecycle state of a training module.
type TrainingStatus string

const (
	TrainingPlanned   TrainingStatus = "planned"
	TrainingActive    TrainingStatus = "active"
	TrainingCompleted TrainingStatus = "completed"
	TrainingCancelled TrainingStatus = "cancelled"
)

// EnrollmentStatus tracks a household's participation in one training.
type EnrollmentStatus string

const (
	EnrollmentEnrolled    EnrollmentStatus = "enrolled"
	EnrollmentCompleted   EnrollmentStatus = "completed"
	EnrollmentDroppedOut  EnrollmentStatus = "dropped_out"
	EnrollmentTransferred EnrollmentStatus = "transferred"
)

const defaultMaxHouseholds = 25

// Training is a business-skills training module delivered by a mentor to a
// cohort of households.
type Training struct {
	shared.AuditedAggregateRoot

	Name         string `gorm:"type:varchar(100);not null"`
	ModuleID     string `gorm:"type:varchar(50)"`
	ModuleNumber *int
	ProgramID    *uuid.UUID
	MentorID     *uuid.UUID

	DurationHours    *decimal.Decimal `gorm:"type:decimal(4,1)"`
	Location         string           `gorm:"type:varchar(200)"`
	ParticipantCount *int
	Description      string         `gorm:"type:text"`
	Status           TrainingStatus `gorm:"type:varchar(20)"`
	StartDate        *time.Time
	EndDate          *time.Time
	SessionDates     []time.Time `gorm:"serializer:json"`
	MaxHouseholds    int

	Enrollments []Enrollment `gorm:"-"`
}

// Enrollment links a household to a training.
type Enrollment struct {
	shared.BaseEntity

	TrainingID     uuid.UUID
	HouseholdID    uuid.UUID
	EnrolledDate   time.Time
	Status         EnrollmentStatus `gorm:"type:varchar(20)"`
	CompletionDate *time.Time
}

// Attendance is one household's attendance mark for one session date.
type Attendance struct {
	shared.BaseEntity

	TrainingID   uuid.UUID
	HouseholdID  uuid.UUID
	Attended     bool
	TrainingDate time.Time
	MarkedBy     *uuid.UUID
	MarkedAt     *time.Time
}

func NewTraining(name, moduleID string, createdBy uuid.UUID) (*Training, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TRAINING_NAME", "training name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_TRAINING_NAME", "training name cannot exceed 100 characters")
	}
	return &Training{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Name:                 name,
		ModuleID:             strings.TrimSpace(moduleID),
		Status:               TrainingPlanned,
		MaxHouseholds:        defaultMaxHouseholds,
	}, nil
}

func (t *Training) SetModuleNumber(n int) error {
	if n <= 0 {
		return shared.NewDomainError("INVALID_MODULE_NUMBER", "module number must be positive")
	}
	t.ModuleNumber = &n
	t.Touch()
	t.IncrementVersion()
	return nil
}

func (t *Training) AssignMentor(mentorID uuid.UUID) {
	t.MentorID = &mentorID
	t.Touch()
	t.IncrementVersion()
}

func (t *Training) AttachProgram(programID uuid.UUID) {
	t.ProgramID = &programID
	t.Touch()
	t.IncrementVersion()
}

func (t *Training) SetSchedule(start, end time.Time, sessionDates []time.Time) error {
	if end.Before(start) {
		return shared.NewDomainError("INVALID_SCHEDULE", "end date cannot be before start date")
	}
	t.StartDate = &start
	t.EndDate = &end
	t.SessionDates = sessionDates
	t.Touch()
	t.IncrementVersion()
	return nil
}

func (t *Training) SetVenue(location string, durationHours decimal.Decimal) {
	t.Location = strings.TrimSpace(location)
	t.DurationHours = &durationHours
	t.Touch()
	t.IncrementVersion()
}

func (t *Training) SetCapacity(maxHouseholds int) error {
	if maxHouseholds <= 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "capacity must be positive")
	}
	if maxHouseholds < t.ActiveEnrollmentCount() {
		return shared.NewDomainError("CAPACITY_BELOW_ENROLLMENT", "capacity cannot drop below current enrollment")
	}
	t.MaxHouseholds = maxHouseholds
	t.Touch()
	t.IncrementVersion()
	return nil
}

func (t *Training) Activate() error {
	if t.Status != TrainingPlanned {
		return shared.ErrInvalidState
	}
	t.Status = TrainingActive
	t.Touch()
	t.IncrementVersion()
	return nil
}

// Complete closes the training and marks every still-enrolled household as
// having completed it.
func (t *Training) Complete(completionDate time.Time) error {
	if t.Status != TrainingActive {
		return shared.ErrInvalidState
	}
	t.Status = TrainingCompleted
	for i := range t.Enrollments {
		if t.Enrollments[i].Status == EnrollmentEnrolled {
			t.Enrollments[i].Status = EnrollmentCompleted
			d := completionDate
			t.Enrollments[i].CompletionDate = &d
		}
	}
	t.Touch()
	t.IncrementVersion()
	return nil
}

func (t *Training) Cancel() error {
	if t.Status == TrainingCompleted || t.Status == TrainingCancelled {
		return shared.ErrInvalidState
	}
	t.Status = TrainingCancelled
	t.Touch()
	t.IncrementVersion()
	return nil
}

func (t *Training) ActiveEnrollmentCount() int {
	n := 0
	for _, e := range t.Enrollments {
		if e.Status == EnrollmentEnrolled {
			n++
		}
	}
	return n
}

func (t *Training) AvailableSlots() int {
	return t.MaxHouseholds - t.ActiveEnrollmentCount()
}

// Enroll adds a household to the cohort. The training must not be finished,
// must have a free slot, and the household may not already be enrolled.
func (t *Training) Enroll(householdID uuid.UUID, enrolledDate time.Time) (*Enrollment, error) {
	if t.Status == TrainingCompleted || t.Status == TrainingCancelled {
		return nil, shared.NewDomainError("TRAINING_CLOSED", "cannot enroll into a finished training")
	}
	if t.AvailableSlots() <= 0 {
		return nil, shared.ErrCapacityExceeded
	}
	for _, e := range t.Enrollments {
		if e.HouseholdID == householdID && e.Status == EnrollmentEnrolled {
			return nil, shared.ErrAlreadyEnrolled
		}
	}

	enrollment := Enrollment{
		BaseEntity:   shared.NewBaseEntity(),
		TrainingID:   t.ID,
		HouseholdID:  householdID,
		EnrolledDate: enrolledDate,
		Status:       EnrollmentEnrolled,
	}
	t.Enrollments = append(t.Enrollments, enrollment)
	t.Touch()
	t.IncrementVersion()
	return &enrollment, nil
}

func (t *Training) DropOut(householdID uuid.UUID) error {
	return t.closeEnrollment(householdID, EnrollmentDroppedOut, nil)
}

// Transfer releases the household's slot so it can enroll elsewhere.
func (t *Training) Transfer(householdID uuid.UUID) error {
	return t.closeEnrollment(householdID, EnrollmentTransferred, nil)
}

func (t *Training) CompleteHousehold(householdID uuid.UUID, completionDate time.Time) error {
	return t.closeEnrollment(householdID, EnrollmentCompleted, &completionDate)
}

func (t *Training) closeEnrollment(householdID uuid.UUID, status EnrollmentStatus, completionDate *time.Time) error {
	for i := range t.Enrollments {
		if t.Enrollments[i].HouseholdID == householdID && t.Enrollments[i].Status == EnrollmentEnrolled {
			t.Enrollments[i].Status = status
			t.Enrollments[i].CompletionDate = completionDate
			t.Touch()
			t.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

func (t *Training) IsEnrolled(householdID uuid.UUID) bool {
	for _, e := range t.Enrollments {
		if e.HouseholdID == householdID && e.Status == EnrollmentEnrolled {
			return true
		}
	}
	return false
}

// MarkAttendance records whether an enrolled household attended a session.
func (t *Training) MarkAttendance(householdID uuid.UUID, trainingDate time.Time,
	attended bool, markedBy uuid.UUID) (*Attendance, error) {
	if !t.IsEnrolled(householdID) {
		return nil, shared.NewDomainError("NOT_ENROLLED", "household is not enrolled in this training")
	}
	now := time.Now().UTC()
	return &Attendance{
		BaseEntity:   shared.NewBaseEntity(),
		TrainingID:   t.ID,
		HouseholdID:  householdID,
		Attended:     attended,
		TrainingDate: trainingDate,
		MarkedBy:     &markedBy,
		MarkedAt:     &now,
	}, nil
}
