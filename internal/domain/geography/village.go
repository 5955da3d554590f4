package geography

import (
	"strings"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/shared"
)

// Village is the smallest targeting unit for the graduation program
type Village struct {
	shared.BaseAggregateRoot
	Name              string
	SubCountyID       *uuid.UUID
	Saturation        string // Coverage level descriptor
	QualifiedHHCount  int    // Qualified households per village
	Country           string
	DistanceToMarket  int  // Kilometers
	IsProgramArea     bool // Whether this village is in a program target area
}

// NewVillage creates a new village
func NewVillage(name string, subCountyID *uuid.UUID) (*Village, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Village name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Village name cannot exceed 100 characters")
	}
	if subCountyID != nil && *subCountyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUBCOUNTY_ID", "Sub-county ID cannot be empty")
	}

	return &Village{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SubCountyID:       subCountyID,
		Country:           "Kenya",
		IsProgramArea:     true,
	}, nil
}

// SetProgramArea marks whether the village is inside the program target area
func (v *Village) SetProgramArea(inArea bool) {
	v.IsProgramArea = inArea
	v.Touch()
	v.IncrementVersion()
}

// SetDistanceToMarket records the distance to the nearest market in kilometers
func (v *Village) SetDistanceToMarket(km int) error {
	if km < 0 {
		return shared.NewDomainError("INVALID_DISTANCE", "Distance cannot be negative")
	}

	v.DistanceToMarket = km
	v.Touch()
	v.IncrementVersion()

	return nil
}

// SetSaturation records the coverage level descriptor
func (v *Village) SetSaturation(saturation string) {
	v.Saturation = strings.TrimSpace(saturation)
	v.Touch()
	v.IncrementVersion()
}

// RecordQualifiedHouseholds updates the qualified household count
func (v *Village) RecordQualifiedHouseholds(count int) error {
	if count < 0 {
		return shared.NewDomainError("INVALID_COUNT", "Qualified household count cannot be negative")
	}

	v.QualifiedHHCount = count
	v.Touch()
	v.IncrementVersion()

	return nil
}
