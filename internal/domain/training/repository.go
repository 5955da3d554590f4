package training

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TrainingRepository persists trainings, enrollments and attendance
type TrainingRepository interface {
	Create(ctx context.Context, training *Training) error
	Update(ctx context.Context, training *Training) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Training, error)
	FindAll(ctx context.Context, filter TrainingFilter) ([]*Training, int64, error)
	FindByMentor(ctx context.Context, mentorID uuid.UUID) ([]*Training, error)

	SaveEnrollments(ctx context.Context, trainingID uuid.UUID, enrollments []Enrollment) error
	LoadEnrollments(ctx context.Context, trainingID uuid.UUID) ([]Enrollment, error)

	// FindActiveEnrollmentByHousehold returns the household's current
	// training enrollment, or nil when it is free to enroll
	FindActiveEnrollmentByHousehold(ctx context.Context, householdID uuid.UUID) (*Enrollment, error)

	SaveAttendance(ctx context.Context, attendance *Attendance) error
	FindAttendance(ctx context.Context, trainingID uuid.UUID) ([]*Attendance, error)
	FindAttendanceByHousehold(ctx context.Context, householdID uuid.UUID) ([]*Attendance, error)

	// AttendanceRate reports attended marks over total marks for households
	// in the given business group, for grant performance sizing
	AttendanceRateByBusinessGroup(ctx context.Context, businessGroupID uuid.UUID) (float64, error)
}

// MentoringRepository persists visits, nudges and reports
type MentoringRepository interface {
	SaveVisit(ctx context.Context, visit *MentoringVisit) error
	FindVisitsByHousehold(ctx context.Context, householdID uuid.UUID) ([]*MentoringVisit, error)
	FindVisitsByMentor(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]*MentoringVisit, error)

	SaveNudge(ctx context.Context, nudge *PhoneNudge) error
	FindNudgesByHousehold(ctx context.Context, householdID uuid.UUID) ([]*PhoneNudge, error)
	FindNudgesByMentor(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]*PhoneNudge, error)

	SaveReport(ctx context.Context, report *MentoringReport) error
	FindReport(ctx context.Context, mentorID uuid.UUID, period ReportingPeriod, periodStart time.Time) (*MentoringReport, error)
	FindReportsByMentor(ctx context.Context, mentorID uuid.UUID) ([]*MentoringReport, error)
}

// TrainingFilter contains filter options for querying trainings
type TrainingFilter struct {
	Keyword   string
	Status    *TrainingStatus
	ProgramID *uuid.UUID
	Page      int
	PageSize  int
}

// NewTrainingFilter creates a filter with default values
func NewTrainingFilter() TrainingFilter {
	return TrainingFilter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f TrainingFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f TrainingFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
