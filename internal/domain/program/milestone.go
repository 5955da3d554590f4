package program

import (
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/shared"
)

// MilestoneKey identifies one of the twelve monthly graduation milestones
type MilestoneKey string

const (
	MilestoneMonth1  MilestoneKey = "month_1"  // PPI Assessment & Business Training Start
	MilestoneMonth2  MilestoneKey = "month_2"  // Business Group Formation
	MilestoneMonth3  MilestoneKey = "month_3"  // Business Plan Development
	MilestoneMonth4  MilestoneKey = "month_4"  // SB Grant Application
	MilestoneMonth5  MilestoneKey = "month_5"  // SB Grant Disbursement
	MilestoneMonth6  MilestoneKey = "month_6"  // Business Operations Start
	MilestoneMonth7  MilestoneKey = "month_7"  // Mid-term Assessment
	MilestoneMonth8  MilestoneKey = "month_8"  // Business Savings Group Formation
	MilestoneMonth9  MilestoneKey = "month_9"  // PR Grant Eligibility Assessment
	MilestoneMonth10 MilestoneKey = "month_10" // PR Grant Application
	MilestoneMonth11 MilestoneKey = "month_11" // Final Business Assessment
	MilestoneMonth12 MilestoneKey = "month_12" // Graduation Assessment
)

// GraduationMilestones lists the twelve milestones in program order
var GraduationMilestones = []MilestoneKey{
	MilestoneMonth1, MilestoneMonth2, MilestoneMonth3, MilestoneMonth4,
	MilestoneMonth5, MilestoneMonth6, MilestoneMonth7, MilestoneMonth8,
	MilestoneMonth9, MilestoneMonth10, MilestoneMonth11, MilestoneMonth12,
}

var milestoneLabels = map[MilestoneKey]string{
	MilestoneMonth1:  "Month 1 - PPI Assessment & Business Training Start",
	MilestoneMonth2:  "Month 2 - Business Group Formation",
	MilestoneMonth3:  "Month 3 - Business Plan Development",
	MilestoneMonth4:  "Month 4 - SB Grant Application",
	MilestoneMonth5:  "Month 5 - SB Grant Disbursement",
	MilestoneMonth6:  "Month 6 - Business Operations Start",
	MilestoneMonth7:  "Month 7 - Mid-term Assessment",
	MilestoneMonth8:  "Month 8 - Business Savings Group Formation",
	MilestoneMonth9:  "Month 9 - PR Grant Eligibility Assessment",
	MilestoneMonth10: "Month 10 - PR Grant Application",
	MilestoneMonth11: "Month 11 - Final Business Assessment",
	MilestoneMonth12: "Month 12 - Graduation Assessment",
}

// Label returns the human-readable milestone description
func (k MilestoneKey) Label() string {
	if label, ok := milestoneLabels[k]; ok {
		return label
	}
	return string(k)
}

// IsValid reports whether the key names a known milestone
func (k MilestoneKey) IsValid() bool {
	_, ok := milestoneLabels[k]
	return ok
}

// MilestoneStatus tracks progress on a single milestone
type MilestoneStatus string

const (
	MilestoneNotStarted MilestoneStatus = "not_started"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestoneDelayed    MilestoneStatus = "delayed"
	MilestoneSkipped    MilestoneStatus = "skipped"
)

// Milestone is one monthly checkpoint on an enrollment's graduation track
type Milestone struct {
	shared.BaseEntity
	EnrollmentID   uuid.UUID
	Key            MilestoneKey
	Status         MilestoneStatus
	TargetDate     *time.Time
	CompletionDate *time.Time
	Notes          string
	CompletedBy    *uuid.UUID
}

// NewMilestone creates a milestone for an enrollment
func NewMilestone(enrollmentID uuid.UUID, key MilestoneKey) (*Milestone, error) {
	if enrollmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENROLLMENT_ID", "Enrollment ID cannot be empty")
	}
	if !key.IsValid() {
		return nil, shared.NewDomainError("INVALID_MILESTONE", "Unknown milestone: "+string(key))
	}

	return &Milestone{
		BaseEntity:   shared.NewBaseEntity(),
		EnrollmentID: enrollmentID,
		Key:          key,
		Status:       MilestoneNotStarted,
	}, nil
}

// MilestoneScheduleFor builds the full 12-month milestone track for an
// enrollment, with target dates spaced monthly from the enrollment date
func MilestoneScheduleFor(enrollmentID uuid.UUID, enrolledAt time.Time) ([]*Milestone, error) {
	milestones := make([]*Milestone, 0, len(GraduationMilestones))
	for i, key := range GraduationMilestones {
		m, err := NewMilestone(enrollmentID, key)
		if err != nil {
			return nil, err
		}
		target := enrolledAt.AddDate(0, i+1, 0)
		m.TargetDate = &target
		milestones = append(milestones, m)
	}
	return milestones, nil
}

// Start moves the milestone into progress
func (m *Milestone) Start() error {
	if m.Status != MilestoneNotStarted && m.Status != MilestoneDelayed {
		return shared.NewDomainError("INVALID_STATE", "Milestone cannot be started in its current state")
	}

	m.Status = MilestoneInProgress
	m.Touch()

	return nil
}

// Complete marks the milestone done
func (m *Milestone) Complete(completedBy uuid.UUID, notes string) error {
	if m.Status == MilestoneCompleted {
		return shared.NewDomainError("INVALID_STATE", "Milestone is already completed")
	}
	if completedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER_ID", "Completing user is required")
	}

	now := time.Now()
	m.Status = MilestoneCompleted
	m.CompletionDate = &now
	m.CompletedBy = &completedBy
	m.Notes = notes
	m.Touch()

	return nil
}

// Skip excludes the milestone from the track
func (m *Milestone) Skip(notes string) error {
	if m.Status == MilestoneCompleted {
		return shared.NewDomainError("INVALID_STATE", "Completed milestones cannot be skipped")
	}

	m.Status = MilestoneSkipped
	m.Notes = notes
	m.Touch()

	return nil
}

// MarkDelayed flags the milestone as behind schedule
func (m *Milestone) MarkDelayed() error {
	if m.Status == MilestoneCompleted || m.Status == MilestoneSkipped {
		return shared.NewDomainError("INVALID_STATE", "Milestone has already ended")
	}

	m.Status = MilestoneDelayed
	m.Touch()

	return nil
}

// IsOverdue reports whether the target date passed without completion
func (m *Milestone) IsOverdue() bool {
	if m.TargetDate == nil {
		return false
	}
	if m.Status == MilestoneCompleted || m.Status == MilestoneSkipped {
		return false
	}
	return time.Now().After(*m.TargetDate)
}
