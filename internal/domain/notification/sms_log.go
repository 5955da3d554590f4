package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/shared"
)

// SMSLog records a single SMS delivery attempt.
type SMSLog struct {
	shared.BaseEntity

	PhoneNumber  string
	Message      string
	Success      bool
	Provider     string
	ErrorMessage string
	SentAt       time.Time

	// Optional links back to the triggering record
	HouseholdID *uuid.UUID
	TrainingID  *uuid.UUID
	MentorID    *uuid.UUID
}

// NewSMSLog records an SMS delivery attempt
func NewSMSLog(phoneNumber, message, provider string, success bool) (*SMSLog, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number cannot be empty")
	}
	if strings.TrimSpace(message) == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot be empty")
	}

	return &SMSLog{
		BaseEntity:  shared.NewBaseEntity(),
		PhoneNumber: phoneNumber,
		Message:     message,
		Success:     success,
		Provider:    provider,
		SentAt:      time.Now(),
	}, nil
}

// SetError records why the delivery failed
func (l *SMSLog) SetError(msg string) {
	l.Success = false
	l.ErrorMessage = msg
}

// LinkHousehold associates the message with a household
func (l *SMSLog) LinkHousehold(householdID uuid.UUID) {
	l.HouseholdID = &householdID
}

// LinkTraining associates the message with a training
func (l *SMSLog) LinkTraining(trainingID uuid.UUID) {
	l.TrainingID = &trainingID
}

// LinkMentor associates the message with the sending mentor
func (l *SMSLog) LinkMentor(mentorID uuid.UUID) {
	l.MentorID = &mentorID
}
