package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/upg/backend/internal/domain/training"
)

// TrainingModel is the persistence model for the Training aggregate.
type TrainingModel struct {
	AuditedAggregateModel
	Name         string     `gorm:"type:varchar(100);not null"`
	ModuleID     string     `gorm:"type:varchar(50)"`
	ModuleNumber *int
	ProgramID    *uuid.UUID `gorm:"type:uuid;index"`
	MentorID     *uuid.UUID `gorm:"type:uuid;index"`

	DurationHours    *decimal.Decimal `gorm:"type:decimal(4,1)"`
	Location         string           `gorm:"type:varchar(200)"`
	ParticipantCount *int
	Description      string                  `gorm:"type:text"`
	Status           training.TrainingStatus `gorm:"type:varchar(20);not null;index"`
	StartDate        *time.Time
	EndDate          *time.Time
	SessionDates     []time.Time `gorm:"serializer:json"`
	MaxHouseholds    int         `gorm:"not null;default:25"`
}

// TableName returns the table name for GORM
func (TrainingModel) TableName() string {
	return "trainings"
}

// ToDomain converts the persistence model to a domain Training aggregate.
// Note: Enrollments must be loaded separately by the repository.
func (m *TrainingModel) ToDomain() *training.Training {
	t := &training.Training{
		Name:             m.Name,
		ModuleID:         m.ModuleID,
		ModuleNumber:     m.ModuleNumber,
		ProgramID:        m.ProgramID,
		MentorID:         m.MentorID,
		DurationHours:    m.DurationHours,
		Location:         m.Location,
		ParticipantCount: m.ParticipantCount,
		Description:      m.Description,
		Status:           m.Status,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		SessionDates:     m.SessionDates,
		MaxHouseholds:    m.MaxHouseholds,
		Enrollments:      make([]training.Enrollment, 0), // Loaded separately
	}
	m.PopulateAuditedAggregateRoot(&t.AuditedAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain Training aggregate.
func (m *TrainingModel) FromDomain(t *training.Training) {
	m.FromDomainAuditedAggregateRoot(t.AuditedAggregateRoot)
	m.Name = t.Name
	m.ModuleID = t.ModuleID
	m.ModuleNumber = t.ModuleNumber
	m.ProgramID = t.ProgramID
	m.MentorID = t.MentorID
	m.DurationHours = t.DurationHours
	m.Location = t.Location
	m.ParticipantCount = t.ParticipantCount
	m.Description = t.Description
	m.Status = t.Status
	m.StartDate = t.StartDate
	m.EndDate = t.EndDate
	m.SessionDates = t.SessionDates
	m.MaxHouseholds = t.MaxHouseholds
}

// TrainingEnrollmentModel is the persistence model for a training enrollment.
type TrainingEnrollmentModel struct {
	BaseModel
	TrainingID     uuid.UUID                 `gorm:"type:uuid;not null;index:idx_training_enrollment,unique"`
	HouseholdID    uuid.UUID                 `gorm:"type:uuid;not null;index:idx_training_enrollment,unique"`
	EnrolledDate   time.Time                 `gorm:"not null"`
	Status         training.EnrollmentStatus `gorm:"type:varchar(20);not null;index"`
	CompletionDate *time.Time
}

// TableName returns the table name for GORM
func (TrainingEnrollmentModel) TableName() string {
	return "training_enrollments"
}

// ToDomain converts the persistence model to a domain Enrollment.
func (m *TrainingEnrollmentModel) ToDomain() training.Enrollment {
	return training.Enrollment{
		BaseEntity:     m.BaseModel.ToDomain(),
		TrainingID:     m.TrainingID,
		HouseholdID:    m.HouseholdID,
		EnrolledDate:   m.EnrolledDate,
		Status:         m.Status,
		CompletionDate: m.CompletionDate,
	}
}

// FromDomain populates the persistence model from a domain Enrollment.
func (m *TrainingEnrollmentModel) FromDomain(e training.Enrollment) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.TrainingID = e.TrainingID
	m.HouseholdID = e.HouseholdID
	m.EnrolledDate = e.EnrolledDate
	m.Status = e.Status
	m.CompletionDate = e.CompletionDate
}

// AttendanceModel is the persistence model for an attendance mark.
type AttendanceModel struct {
	BaseModel
	TrainingID   uuid.UUID `gorm:"type:uuid;not null;index"`
	HouseholdID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Attended     bool      `gorm:"not null;default:false"`
	TrainingDate time.Time `gorm:"not null"`
	MarkedBy     *uuid.UUID `gorm:"type:uuid"`
	MarkedAt     *time.Time
}

// TableName returns the table name for GORM
func (AttendanceModel) TableName() string {
	return "training_attendance"
}

// ToDomain converts the persistence model to a domain Attendance.
func (m *AttendanceModel) ToDomain() *training.Attendance {
	return &training.Attendance{
		BaseEntity:   m.BaseModel.ToDomain(),
		TrainingID:   m.TrainingID,
		HouseholdID:  m.HouseholdID,
		Attended:     m.Attended,
		TrainingDate: m.TrainingDate,
		MarkedBy:     m.MarkedBy,
		MarkedAt:     m.MarkedAt,
	}
}

// FromDomain populates the persistence model from a domain Attendance.
func (m *AttendanceModel) FromDomain(a *training.Attendance) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.TrainingID = a.TrainingID
	m.HouseholdID = a.HouseholdID
	m.Attended = a.Attended
	m.TrainingDate = a.TrainingDate
	m.MarkedBy = a.MarkedBy
	m.MarkedAt = a.MarkedAt
}

// MentoringVisitModel is the persistence model for a mentoring visit.
type MentoringVisitModel struct {
	BaseModel
	Name        string             `gorm:"type:varchar(100)"`
	HouseholdID uuid.UUID          `gorm:"type:uuid;not null;index"`
	MentorID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	Topic       string             `gorm:"type:varchar(200);not null"`
	VisitType   training.VisitType `gorm:"type:varchar(20);not null"`
	VisitDate   time.Time          `gorm:"not null;index"`
	Notes       string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (MentoringVisitModel) TableName() string {
	return "mentoring_visits"
}

// ToDomain converts the persistence model to a domain MentoringVisit.
func (m *MentoringVisitModel) ToDomain() *training.MentoringVisit {
	return &training.MentoringVisit{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		HouseholdID: m.HouseholdID,
		MentorID:    m.MentorID,
		Topic:       m.Topic,
		VisitType:   m.VisitType,
		VisitDate:   m.VisitDate,
		Notes:       m.Notes,
	}
}

// FromDomain populates the persistence model from a domain MentoringVisit.
func (m *MentoringVisitModel) FromDomain(v *training.MentoringVisit) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.Name = v.Name
	m.HouseholdID = v.HouseholdID
	m.MentorID = v.MentorID
	m.Topic = v.Topic
	m.VisitType = v.VisitType
	m.VisitDate = v.VisitDate
	m.Notes = v.Notes
}

// PhoneNudgeModel is the persistence model for a phone nudge.
type PhoneNudgeModel struct {
	BaseModel
	HouseholdID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	MentorID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	NudgeType         training.NudgeType `gorm:"type:varchar(20);not null"`
	CallDate          time.Time          `gorm:"not null;index"`
	DurationMinutes   int                `gorm:"not null;default:0"`
	Notes             string             `gorm:"type:text"`
	SuccessfulContact bool               `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PhoneNudgeModel) TableName() string {
	return "phone_nudges"
}

// ToDomain converts the persistence model to a domain PhoneNudge.
func (m *PhoneNudgeModel) ToDomain() *training.PhoneNudge {
	return &training.PhoneNudge{
		BaseEntity:        m.BaseModel.ToDomain(),
		HouseholdID:       m.HouseholdID,
		MentorID:          m.MentorID,
		NudgeType:         m.NudgeType,
		CallDate:          m.CallDate,
		DurationMinutes:   m.DurationMinutes,
		Notes:             m.Notes,
		SuccessfulContact: m.SuccessfulContact,
	}
}

// FromDomain populates the persistence model from a domain PhoneNudge.
func (m *PhoneNudgeModel) FromDomain(n *training.PhoneNudge) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.HouseholdID = n.HouseholdID
	m.MentorID = n.MentorID
	m.NudgeType = n.NudgeType
	m.CallDate = n.CallDate
	m.DurationMinutes = n.DurationMinutes
	m.Notes = n.Notes
	m.SuccessfulContact = n.SuccessfulContact
}

// MentoringReportModel is the persistence model for a periodic mentoring report.
type MentoringReportModel struct {
	BaseModel
	MentorID        uuid.UUID                `gorm:"type:uuid;not null;index:idx_mentoring_report,unique"`
	ReportingPeriod training.ReportingPeriod `gorm:"type:varchar(20);not null;index:idx_mentoring_report,unique"`
	PeriodStart     time.Time                `gorm:"not null;index:idx_mentoring_report,unique"`
	PeriodEnd       time.Time                `gorm:"not null"`

	HouseholdsVisited     int `gorm:"not null;default:0"`
	PhoneNudgesMade       int `gorm:"not null;default:0"`
	TrainingsConducted    int `gorm:"not null;default:0"`
	NewHouseholdsEnrolled int `gorm:"not null;default:0"`

	KeyActivities     string    `gorm:"type:text;not null"`
	ChallengesFaced   string    `gorm:"type:text"`
	SuccessesAchieved string    `gorm:"type:text"`
	NextPeriodPlans   string    `gorm:"type:text"`
	SubmittedDate     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MentoringReportModel) TableName() string {
	return "mentoring_reports"
}

// ToDomain converts the persistence model to a domain MentoringReport.
func (m *MentoringReportModel) ToDomain() *training.MentoringReport {
	return &training.MentoringReport{
		BaseEntity:            m.BaseModel.ToDomain(),
		MentorID:              m.MentorID,
		ReportingPeriod:       m.ReportingPeriod,
		PeriodStart:           m.PeriodStart,
		PeriodEnd:             m.PeriodEnd,
		HouseholdsVisited:     m.HouseholdsVisited,
		PhoneNudgesMade:       m.PhoneNudgesMade,
		TrainingsConducted:    m.TrainingsConducted,
		NewHouseholdsEnrolled: m.NewHouseholdsEnrolled,
		KeyActivities:         m.KeyActivities,
		ChallengesFaced:       m.ChallengesFaced,
		SuccessesAchieved:     m.SuccessesAchieved,
		NextPeriodPlans:       m.NextPeriodPlans,
		SubmittedDate:         m.SubmittedDate,
	}
}

// FromDomain populates the persistence model from a domain MentoringReport.
func (m *MentoringReportModel) FromDomain(r *training.MentoringReport) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.MentorID = r.MentorID
	m.ReportingPeriod = r.ReportingPeriod
	m.PeriodStart = r.PeriodStart
	m.PeriodEnd = r.PeriodEnd
	m.HouseholdsVisited = r.HouseholdsVisited
	m.PhoneNudgesMade = r.PhoneNudgesMade
	m.TrainingsConducted = r.TrainingsConducted
	m.NewHouseholdsEnrolled = r.NewHouseholdsEnrolled
	m.KeyActivities = r.KeyActivities
	m.ChallengesFaced = r.ChallengesFaced
	m.SuccessesAchieved = r.SuccessesAchieved
	m.NextPeriodPlans = r.NextPeriodPlans
	m.SubmittedDate = r.SubmittedDate
}
