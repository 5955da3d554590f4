package training

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/shared"
)

// VisitType is how a mentoring visit was conducted.
type VisitType string

const (
	VisitOnSite  VisitType = "on_site"
	VisitPhone   VisitType = "phone"
	VisitVirtual VisitType = "virtual"
)

func (v VisitType) IsValid() bool {
	switch v {
	case VisitOnSite, VisitPhone, VisitVirtual:
		return true
	}
	return false
}

// NudgeType classifies a mentor's phone call to a household.
type NudgeType string

const (
	NudgeReminder       NudgeType = "reminder"
	NudgeFollowUp       NudgeType = "follow_up"
	NudgeSupport        NudgeType = "support"
	NudgeCheckIn        NudgeType = "check_in"
	NudgeBusinessAdvice NudgeType = "business_advice"
)

func (n NudgeType) IsValid() bool {
	switch n {
	case NudgeReminder, NudgeFollowUp, NudgeSupport, NudgeCheckIn, NudgeBusinessAdvice:
		return true
	}
	return false
}

// ReportingPeriod is the cadence of a mentoring report.
type ReportingPeriod string

const (
	PeriodWeekly    ReportingPeriod = "weekly"
	PeriodMonthly   ReportingPeriod = "monthly"
	PeriodQuarterly ReportingPeriod = "quarterly"
)

func (p ReportingPeriod) IsValid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly:
		return true
	}
	return false
}

// MentoringVisit records a mentor's visit to a household.
type MentoringVisit struct {
	shared.BaseEntity

	Name        string `gorm:"type:varchar(100)"`
	HouseholdID uuid.UUID
	MentorID    uuid.UUID
	Topic       string    `gorm:"type:varchar(200)"`
	VisitType   VisitType `gorm:"type:varchar(20)"`
	VisitDate   time.Time
	Notes       string `gorm:"type:text"`
}

func NewMentoringVisit(householdID, mentorID uuid.UUID, topic string,
	visitType VisitType, visitDate time.Time) (*MentoringVisit, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, shared.NewDomainError("MISSING_TOPIC", "visit topic is required")
	}
	if visitType == "" {
		visitType = VisitOnSite
	}
	if !visitType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VISIT_TYPE", "invalid visit type: "+string(visitType))
	}
	return &MentoringVisit{
		BaseEntity:  shared.NewBaseEntity(),
		HouseholdID: householdID,
		MentorID:    mentorID,
		Topic:       topic,
		VisitType:   visitType,
		VisitDate:   visitDate,
	}, nil
}

func (v *MentoringVisit) SetName(name string) {
	v.Name = strings.TrimSpace(name)
}

func (v *MentoringVisit) SetNotes(notes string) {
	v.Notes = strings.TrimSpace(notes)
}

// PhoneNudge records a short phone call from a mentor to a household.
type PhoneNudge struct {
	shared.BaseEntity

	HouseholdID       uuid.UUID
	MentorID          uuid.UUID
	NudgeType         NudgeType `gorm:"type:varchar(20)"`
	CallDate          time.Time
	DurationMinutes   int
	Notes             string `gorm:"type:text"`
	SuccessfulContact bool
}

func NewPhoneNudge(householdID, mentorID uuid.UUID, nudgeType NudgeType,
	callDate time.Time, durationMinutes int) (*PhoneNudge, error) {
	if !nudgeType.IsValid() {
		return nil, shared.NewDomainError("INVALID_NUDGE_TYPE", "invalid nudge type: "+string(nudgeType))
	}
	if durationMinutes < 0 {
		return nil, shared.NewDomainError("INVALID_DURATION", "call duration cannot be negative")
	}
	return &PhoneNudge{
		BaseEntity:        shared.NewBaseEntity(),
		HouseholdID:       householdID,
		MentorID:          mentorID,
		NudgeType:         nudgeType,
		CallDate:          callDate,
		DurationMinutes:   durationMinutes,
		SuccessfulContact: true,
	}, nil
}

func (n *PhoneNudge) MarkUnreachable() {
	n.SuccessfulContact = false
}

func (n *PhoneNudge) SetNotes(notes string) {
	n.Notes = strings.TrimSpace(notes)
}

// MentoringReport is a mentor's periodic activity summary. A mentor files
// at most one report per period start date and cadence.
type MentoringReport struct {
	shared.BaseEntity

	MentorID        uuid.UUID
	ReportingPeriod ReportingPeriod `gorm:"type:varchar(20)"`
	PeriodStart     time.Time
	PeriodEnd       time.Time

	HouseholdsVisited     int
	PhoneNudgesMade       int
	TrainingsConducted    int
	NewHouseholdsEnrolled int

	KeyActivities      string `gorm:"type:text;not null"`
	ChallengesFaced    string `gorm:"type:text"`
	SuccessesAchieved  string `gorm:"type:text"`
	NextPeriodPlans    string `gorm:"type:text"`
	SubmittedDate      time.Time
}

func NewMentoringReport(mentorID uuid.UUID, period ReportingPeriod,
	periodStart, periodEnd time.Time, keyActivities string) (*MentoringReport, error) {
	if !period.IsValid() {
		return nil, shared.NewDomainError("INVALID_REPORTING_PERIOD", "invalid reporting period: "+string(period))
	}
	if periodEnd.Before(periodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "period end cannot be before period start")
	}
	keyActivities = strings.TrimSpace(keyActivities)
	if keyActivities == "" {
		return nil, shared.NewDomainError("MISSING_ACTIVITIES", "key activities are required")
	}
	return &MentoringReport{
		BaseEntity:      shared.NewBaseEntity(),
		MentorID:        mentorID,
		ReportingPeriod: period,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		KeyActivities:   keyActivities,
		SubmittedDate:   time.Now().UTC(),
	}, nil
}

func (r *MentoringReport) SetStatistics(visited, nudges, trainings, newEnrollments int) error {
	if visited < 0 || nudges < 0 || trainings < 0 || newEnrollments < 0 {
		return shared.NewDomainError("INVALID_STATISTIC", "report statistics cannot be negative")
	}
	r.HouseholdsVisited = visited
	r.PhoneNudgesMade = nudges
	r.TrainingsConducted = trainings
	r.NewHouseholdsEnrolled = newEnrollments
	return nil
}

func (r *MentoringReport) SetNarrative(challenges, successes, plans string) {
	r.ChallengesFaced = strings.TrimSpace(challenges)
	r.SuccessesAchieved = strings.TrimSpace(successes)
	r.NextPeriodPlans = strings.TrimSpace(plans)
}
