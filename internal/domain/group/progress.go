package group

import (
	"time"

	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/shared/valueobject"
)

// BusinessProgressSurvey captures the financial state of a business group
// at a point in time, typically during a mentoring visit.
type BusinessProgressSurvey struct {
	shared.BaseEntity

	BusinessGroupID   uuid.UUID
	SurveyDate        time.Time
	SurveyorID        *uuid.UUID
	GrantValue        valueobject.Money `gorm:"type:decimal(10,2)"`
	GrantUsed         valueobject.Money `gorm:"type:decimal(10,2)"`
	Profit            valueobject.Money `gorm:"type:decimal(10,2)"`
	BusinessInputs    string            `gorm:"type:text"`
	BusinessInventory string            `gorm:"type:text"`
	BusinessCash      valueobject.Money `gorm:"type:decimal(10,2)"`
}

func NewBusinessProgressSurvey(businessGroupID uuid.UUID, surveyDate time.Time, surveyorID *uuid.UUID) *BusinessProgressSurvey {
	return &BusinessProgressSurvey{
		BaseEntity:      shared.NewBaseEntity(),
		BusinessGroupID: businessGroupID,
		SurveyDate:      surveyDate,
		SurveyorID:      surveyorID,
		GrantValue:      valueobject.ZeroKES(),
		GrantUsed:       valueobject.ZeroKES(),
		Profit:          valueobject.ZeroKES(),
		BusinessCash:    valueobject.ZeroKES(),
	}
}

// GrantUtilizationRate reports how much of the grant value has been used,
// as a fraction between 0 and 1. Zero grant value yields zero.
func (s *BusinessProgressSurvey) GrantUtilizationRate() float64 {
	if s.GrantValue.IsZero() {
		return 0
	}
	return s.GrantUsed.Amount().Div(s.GrantValue.Amount()).InexactFloat64()
}

// SavingsProgressSurvey is a monthly snapshot of a savings group's activity.
type SavingsProgressSurvey struct {
	shared.BaseEntity

	SavingsGroupID        uuid.UUID
	SurveyDate            time.Time
	SavingLastMonth       valueobject.Money `gorm:"type:decimal(10,2)"`
	MonthRecorded         time.Time
	AttendanceThisMeeting int
	SurveyorID            *uuid.UUID
}

func NewSavingsProgressSurvey(savingsGroupID uuid.UUID, surveyDate, monthRecorded time.Time, surveyorID *uuid.UUID) *SavingsProgressSurvey {
	return &SavingsProgressSurvey{
		BaseEntity:      shared.NewBaseEntity(),
		SavingsGroupID:  savingsGroupID,
		SurveyDate:      surveyDate,
		SavingLastMonth: valueobject.ZeroKES(),
		MonthRecorded:   monthRecorded,
		SurveyorID:      surveyorID,
	}
}
