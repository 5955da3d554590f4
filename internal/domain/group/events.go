package group

import (
	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/shared"
)

const (
	AggregateTypeBusinessGroup = "BusinessGroup"
	AggregateTypeSavingsGroup  = "SavingsGroup"

	EventTypeBusinessGroupFormed   = "group.business_group_formed"
	EventTypeBusinessHealthChanged = "group.business_health_changed"
	EventTypeSavingsGroupFormed    = "group.savings_group_formed"
	EventTypeSavingsRecorded       = "group.savings_recorded"
)

type BusinessGroupFormedEvent struct {
	shared.BaseDomainEvent
	Name         string    `json:"name"`
	ProgramID    uuid.UUID `json:"program_id"`
	BusinessType string    `json:"business_type"`
}

func NewBusinessGroupFormedEvent(groupID uuid.UUID, name string, programID uuid.UUID, businessType string) *BusinessGroupFormedEvent {
	return &BusinessGroupFormedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBusinessGroupFormed, AggregateTypeBusinessGroup, groupID),
		Name:            name,
		ProgramID:       programID,
		BusinessType:    businessType,
	}
}

type BusinessHealthChangedEvent struct {
	shared.BaseDomainEvent
	OldHealth string `json:"old_health"`
	NewHealth string `json:"new_health"`
}

func NewBusinessHealthChangedEvent(groupID uuid.UUID, oldHealth, newHealth string) *BusinessHealthChangedEvent {
	return &BusinessHealthChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBusinessHealthChanged, AggregateTypeBusinessGroup, groupID),
		OldHealth:       oldHealth,
		NewHealth:       newHealth,
	}
}

type SavingsGroupFormedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

func NewSavingsGroupFormedEvent(groupID uuid.UUID, name string) *SavingsGroupFormedEvent {
	return &SavingsGroupFormedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSavingsGroupFormed, AggregateTypeSavingsGroup, groupID),
		Name:            name,
	}
}

type SavingsRecordedEvent struct {
	shared.BaseDomainEvent
	HouseholdID uuid.UUID `json:"household_id"`
	Amount      string    `json:"amount"`
}

func NewSavingsRecordedEvent(groupID, householdID uuid.UUID, amount string) *SavingsRecordedEvent {
	return &SavingsRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSavingsRecorded, AggregateTypeSavingsGroup, groupID),
		HouseholdID:     householdID,
		Amount:          amount,
	}
}
