package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/notification"
)

// SMSLogModel is the persistence model for an SMS delivery log.
type SMSLogModel struct {
	BaseModel
	PhoneNumber  string    `gorm:"type:varchar(20);not null;index"`
	Message      string    `gorm:"type:text;not null"`
	Success      bool      `gorm:"not null;default:false;index"`
	Provider     string    `gorm:"type:varchar(50)"`
	ErrorMessage string    `gorm:"type:text"`
	SentAt       time.Time `gorm:"not null;index"`

	HouseholdID *uuid.UUID `gorm:"type:uuid;index"`
	TrainingID  *uuid.UUID `gorm:"type:uuid;index"`
	MentorID    *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (SMSLogModel) TableName() string {
	return "sms_logs"
}

// ToDomain converts the persistence model to a domain SMSLog.
func (m *SMSLogModel) ToDomain() *notification.SMSLog {
	return &notification.SMSLog{
		BaseEntity:   m.BaseModel.ToDomain(),
		PhoneNumber:  m.PhoneNumber,
		Message:      m.Message,
		Success:      m.Success,
		Provider:     m.Provider,
		ErrorMessage: m.ErrorMessage,
		SentAt:       m.SentAt,
		HouseholdID:  m.HouseholdID,
		TrainingID:   m.TrainingID,
		MentorID:     m.MentorID,
	}
}

// FromDomain populates the persistence model from a domain SMSLog.
func (m *SMSLogModel) FromDomain(l *notification.SMSLog) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.PhoneNumber = l.PhoneNumber
	m.Message = l.Message
	m.Success = l.Success
	m.Provider = l.Provider
	m.ErrorMessage = l.ErrorMessage
	m.SentAt = l.SentAt
	m.HouseholdID = l.HouseholdID
	m.TrainingID = l.TrainingID
	m.MentorID = l.MentorID
}
