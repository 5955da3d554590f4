package training

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/upg/backend/internal/domain/training"
)

// CreateTrainingRequest schedules a new training module
type CreateTrainingRequest struct {
	Name          string           `json:"name" binding:"required,max=100"`
	ModuleID      string           `json:"module_id"`
	ModuleNumber  int              `json:"module_number"`
	ProgramID     *uuid.UUID       `json:"program_id"`
	MentorID      *uuid.UUID       `json:"mentor_id"`
	Description   string           `json:"description"`
	Location      string           `json:"location"`
	DurationHours *decimal.Decimal `json:"duration_hours"`
	StartDate     *time.Time       `json:"start_date"`
	EndDate       *time.Time       `json:"end_date"`
	SessionDates  []time.Time      `json:"session_dates"`
	MaxHouseholds int              `json:"max_households"`
	CreatedBy     uuid.UUID        `json:"-"`
}

// TrainingListFilter narrows training queries
type TrainingListFilter struct {
	Search    string     `form:"search"`
	Status    string     `form:"status"`
	ProgramID *uuid.UUID `form:"program_id"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// EnrollHouseholdRequest adds a household to a training cohort
type EnrollHouseholdRequest struct {
	HouseholdID uuid.UUID `json:"household_id" binding:"required"`
}

// MarkAttendanceRequest records one attendance mark
type MarkAttendanceRequest struct {
	HouseholdID  uuid.UUID `json:"household_id" binding:"required"`
	TrainingDate time.Time `json:"training_date" binding:"required"`
	Attended     bool      `json:"attended"`
	MarkedBy     uuid.UUID `json:"-"`
}

// SessionReminderRequest sends an SMS reminder to the enrolled cohort
type SessionReminderRequest struct {
	Message  string    `json:"message" binding:"required"`
	MentorID uuid.UUID `json:"-"`
}

// RecordVisitRequest logs a mentoring visit to a household
type RecordVisitRequest struct {
	HouseholdID uuid.UUID `json:"household_id" binding:"required"`
	Topic       string    `json:"topic" binding:"required"`
	VisitType   string    `json:"visit_type" binding:"omitempty,oneof=on_site phone virtual"`
	VisitDate   time.Time `json:"visit_date"`
	Name        string    `json:"name"`
	Notes       string    `json:"notes"`
	MentorID    uuid.UUID `json:"-"`
}

// RecordNudgeRequest logs a mentor's phone call to a household
type RecordNudgeRequest struct {
	HouseholdID       uuid.UUID `json:"household_id" binding:"required"`
	NudgeType         string    `json:"nudge_type" binding:"required,oneof=reminder follow_up support check_in business_advice"`
	CallDate          time.Time `json:"call_date"`
	DurationMinutes   int       `json:"duration_minutes"`
	Notes             string    `json:"notes"`
	SuccessfulContact *bool     `json:"successful_contact"`
	MentorID          uuid.UUID `json:"-"`
}

// SubmitReportRequest files a mentor's periodic activity summary
type SubmitReportRequest struct {
	ReportingPeriod       string    `json:"reporting_period" binding:"required,oneof=weekly monthly quarterly"`
	PeriodStart           time.Time `json:"period_start" binding:"required"`
	PeriodEnd             time.Time `json:"period_end" binding:"required"`
	KeyActivities         string    `json:"key_activities" binding:"required"`
	ChallengesFaced       string    `json:"challenges_faced"`
	SuccessesAchieved     string    `json:"successes_achieved"`
	NextPeriodPlans       string    `json:"next_period_plans"`
	HouseholdsVisited     int       `json:"households_visited"`
	PhoneNudgesMade       int       `json:"phone_nudges_made"`
	TrainingsConducted    int       `json:"trainings_conducted"`
	NewHouseholdsEnrolled int       `json:"new_households_enrolled"`
	MentorID              uuid.UUID `json:"-"`
}

// TrainingEnrollmentResponse is one cohort roster entry
type TrainingEnrollmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	HouseholdID    uuid.UUID  `json:"household_id"`
	EnrolledDate   time.Time  `json:"enrolled_date"`
	Status         string     `json:"status"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
}

// TrainingResponse is the API representation of a training module
type TrainingResponse struct {
	ID             uuid.UUID                    `json:"id"`
	Name           string                       `json:"name"`
	ModuleID       string                       `json:"module_id,omitempty"`
	ModuleNumber   *int                         `json:"module_number,omitempty"`
	ProgramID      *uuid.UUID                   `json:"program_id,omitempty"`
	MentorID       *uuid.UUID                   `json:"mentor_id,omitempty"`
	Description    string                       `json:"description,omitempty"`
	Location       string                       `json:"location,omitempty"`
	DurationHours  *decimal.Decimal             `json:"duration_hours,omitempty"`
	Status         string                       `json:"status"`
	StartDate      *time.Time                   `json:"start_date,omitempty"`
	EndDate        *time.Time                   `json:"end_date,omitempty"`
	SessionDates   []time.Time                  `json:"session_dates,omitempty"`
	MaxHouseholds  int                          `json:"max_households"`
	EnrolledCount  int                          `json:"enrolled_count"`
	AvailableSlots int                          `json:"available_slots"`
	Enrollments    []TrainingEnrollmentResponse `json:"enrollments,omitempty"`
	CreatedAt      time.Time                    `json:"created_at"`
	UpdatedAt      time.Time                    `json:"updated_at"`
}

// AttendanceResponse is one recorded attendance mark
type AttendanceResponse struct {
	ID           uuid.UUID `json:"id"`
	TrainingID   uuid.UUID `json:"training_id"`
	HouseholdID  uuid.UUID `json:"household_id"`
	Attended     bool      `json:"attended"`
	TrainingDate time.Time `json:"training_date"`
}

// VisitResponse is one recorded mentoring visit
type VisitResponse struct {
	ID          uuid.UUID `json:"id"`
	HouseholdID uuid.UUID `json:"household_id"`
	MentorID    uuid.UUID `json:"mentor_id"`
	Topic       string    `json:"topic"`
	VisitType   string    `json:"visit_type"`
	VisitDate   time.Time `json:"visit_date"`
	Notes       string    `json:"notes,omitempty"`
}

// NudgeResponse is one recorded phone nudge
type NudgeResponse struct {
	ID                uuid.UUID `json:"id"`
	HouseholdID       uuid.UUID `json:"household_id"`
	MentorID          uuid.UUID `json:"mentor_id"`
	NudgeType         string    `json:"nudge_type"`
	CallDate          time.Time `json:"call_date"`
	DurationMinutes   int       `json:"duration_minutes"`
	SuccessfulContact bool      `json:"successful_contact"`
	Notes             string    `json:"notes,omitempty"`
}

// ReportResponse is a filed mentoring report
type ReportResponse struct {
	ID                    uuid.UUID `json:"id"`
	MentorID              uuid.UUID `json:"mentor_id"`
	ReportingPeriod       string    `json:"reporting_period"`
	PeriodStart           time.Time `json:"period_start"`
	PeriodEnd             time.Time `json:"period_end"`
	HouseholdsVisited     int       `json:"households_visited"`
	PhoneNudgesMade       int       `json:"phone_nudges_made"`
	TrainingsConducted    int       `json:"trainings_conducted"`
	NewHouseholdsEnrolled int       `json:"new_households_enrolled"`
	KeyActivities         string    `json:"key_activities"`
	ChallengesFaced       string    `json:"challenges_faced,omitempty"`
	SuccessesAchieved     string    `json:"successes_achieved,omitempty"`
	NextPeriodPlans       string    `json:"next_period_plans,omitempty"`
	SubmittedDate         time.Time `json:"submitted_date"`
}

// ToTrainingResponse converts a training to its API representation
func ToTrainingResponse(t *training.Training) *TrainingResponse {
	enrollments := make([]TrainingEnrollmentResponse, len(t.Enrollments))
	for i, e := range t.Enrollments {
		enrollments[i] = TrainingEnrollmentResponse{
			ID:             e.ID,
			HouseholdID:    e.HouseholdID,
			EnrolledDate:   e.EnrolledDate,
			Status:         string(e.Status),
			CompletionDate: e.CompletionDate,
		}
	}
	return &TrainingResponse{
		ID:             t.ID,
		Name:           t.Name,
		ModuleID:       t.ModuleID,
		ModuleNumber:   t.ModuleNumber,
		ProgramID:      t.ProgramID,
		MentorID:       t.MentorID,
		Description:    t.Description,
		Location:       t.Location,
		DurationHours:  t.DurationHours,
		Status:         string(t.Status),
		StartDate:      t.StartDate,
		EndDate:        t.EndDate,
		SessionDates:   t.SessionDates,
		MaxHouseholds:  t.MaxHouseholds,
		EnrolledCount:  t.ActiveEnrollmentCount(),
		AvailableSlots: t.AvailableSlots(),
		Enrollments:    enrollments,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToTrainingResponses converts a list of trainings
func ToTrainingResponses(trainings []*training.Training) []*TrainingResponse {
	responses := make([]*TrainingResponse, len(trainings))
	for i, t := range trainings {
		responses[i] = ToTrainingResponse(t)
	}
	return responses
}

// ToAttendanceResponse converts an attendance mark
func ToAttendanceResponse(a *training.Attendance) *AttendanceResponse {
	return &AttendanceResponse{
		ID:           a.ID,
		TrainingID:   a.TrainingID,
		HouseholdID:  a.HouseholdID,
		Attended:     a.Attended,
		TrainingDate: a.TrainingDate,
	}
}

// ToVisitResponse converts a mentoring visit
func ToVisitResponse(v *training.MentoringVisit) *VisitResponse {
	return &VisitResponse{
		ID:          v.ID,
		HouseholdID: v.HouseholdID,
		MentorID:    v.MentorID,
		Topic:       v.Topic,
		VisitType:   string(v.VisitType),
		VisitDate:   v.VisitDate,
		Notes:       v.Notes,
	}
}

// ToNudgeResponse converts a phone nudge
func ToNudgeResponse(n *training.PhoneNudge) *NudgeResponse {
	return &NudgeResponse{
		ID:                n.ID,
		HouseholdID:       n.HouseholdID,
		MentorID:          n.MentorID,
		NudgeType:         string(n.NudgeType),
		CallDate:          n.CallDate,
		DurationMinutes:   n.DurationMinutes,
		SuccessfulContact: n.SuccessfulContact,
		Notes:             n.Notes,
	}
}

// ToReportResponse converts a mentoring report
func ToReportResponse(r *training.MentoringReport) *ReportResponse {
	return &ReportResponse{
		ID:                    r.ID,
		MentorID:              r.MentorID,
		ReportingPeriod:       string(r.ReportingPeriod),
		PeriodStart:           r.PeriodStart,
		PeriodEnd:             r.PeriodEnd,
		HouseholdsVisited:     r.HouseholdsVisited,
		PhoneNudgesMade:       r.PhoneNudgesMade,
		TrainingsConducted:    r.TrainingsConducted,
		NewHouseholdsEnrolled: r.NewHouseholdsEnrolled,
		KeyActivities:         r.KeyActivities,
		ChallengesFaced:       r.ChallengesFaced,
		SuccessesAchieved:     r.SuccessesAchieved,
		NextPeriodPlans:       r.NextPeriodPlans,
		SubmittedDate:         r.SubmittedDate,
	}
}
