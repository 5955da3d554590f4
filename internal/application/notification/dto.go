package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/notification"
)

// LogListFilter narrows SMS delivery log queries
type LogListFilter struct {
	PhoneNumber string `form:"phone_number"`
	Provider    string `form:"provider"`
	SuccessOnly bool   `form:"success_only"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

// SMSLogResponse is the API view of one delivery attempt
type SMSLogResponse struct {
	ID           uuid.UUID  `json:"id"`
	PhoneNumber  string     `json:"phone_number"`
	Message      string     `json:"message"`
	Success      bool       `json:"success"`
	Provider     string     `json:"provider"`
	ErrorMessage string     `json:"error_message,omitempty"`
	SentAt       time.Time  `json:"sent_at"`
	HouseholdID  *uuid.UUID `json:"household_id,omitempty"`
	TrainingID   *uuid.UUID `json:"training_id,omitempty"`
}

// DeliveryStatsResponse summarizes delivery outcomes
type DeliveryStatsResponse struct {
	Delivered   int64   `json:"delivered"`
	Failed      int64   `json:"failed"`
	SuccessRate float64 `json:"success_rate"`
}

// ToSMSLogResponse converts a delivery log to its API view
func ToSMSLogResponse(l *notification.SMSLog) *SMSLogResponse {
	return &SMSLogResponse{
		ID:           l.ID,
		PhoneNumber:  l.PhoneNumber,
		Message:      l.Message,
		Success:      l.Success,
		Provider:     l.Provider,
		ErrorMessage: l.ErrorMessage,
		SentAt:       l.SentAt,
		HouseholdID:  l.HouseholdID,
		TrainingID:   l.TrainingID,
	}
}

// ToSMSLogResponses converts a list of delivery logs
func ToSMSLogResponses(logs []*notification.SMSLog) []*SMSLogResponse {
	responses := make([]*SMSLogResponse, len(logs))
	for i, l := range logs {
		responses[i] = ToSMSLogResponse(l)
	}
	return responses
}
