package household

import (
	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/shared"
)

// Aggregate type constant for Household
const AggregateTypeHousehold = "Household"

// Household domain event types
const (
	EventTypeHouseholdRegistered = "HouseholdRegistered"
	EventTypeHouseholdAssessed   = "HouseholdAssessed"
)

// HouseholdRegisteredEvent is published when a household is registered
type HouseholdRegisteredEvent struct {
	shared.BaseDomainEvent
	Name      string    `json:"name"`
	VillageID uuid.UUID `json:"village_id"`
}

// NewHouseholdRegisteredEvent creates a new HouseholdRegisteredEvent
func NewHouseholdRegisteredEvent(h *Household) *HouseholdRegisteredEvent {
	return &HouseholdRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeHouseholdRegistered, AggregateTypeHousehold, h.ID),
		Name:            h.Name,
		VillageID:       h.VillageID,
	}
}

// HouseholdAssessedEvent is published after an eligibility assessment
type HouseholdAssessedEvent struct {
	shared.BaseDomainEvent
	Name       string           `json:"name"`
	TotalScore float64          `json:"total_score"`
	Level      EligibilityLevel `json:"eligibility_level"`
}

// NewHouseholdAssessedEvent creates a new HouseholdAssessedEvent
func NewHouseholdAssessedEvent(h *Household, result EligibilityResult) *HouseholdAssessedEvent {
	return &HouseholdAssessedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeHouseholdAssessed, AggregateTypeHousehold, h.ID),
		Name:            h.Name,
		TotalScore:      result.TotalScore,
		Level:           result.Level,
	}
}
