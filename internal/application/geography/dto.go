package geography

import (
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/geography"
)

// CreateCountyRequest registers a new county
type CreateCountyRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateSubCountyRequest registers a new sub-county within a county
type CreateSubCountyRequest struct {
	Name     string    `json:"name" binding:"required,max=100"`
	CountyID uuid.UUID `json:"county_id" binding:"required"`
}

// CreateVillageRequest registers a new village
type CreateVillageRequest struct {
	Name             string     `json:"name" binding:"required,max=100"`
	SubCountyID      *uuid.UUID `json:"sub_county_id"`
	Saturation       string     `json:"saturation" binding:"max=50"`
	DistanceToMarket int        `json:"distance_to_market" binding:"min=0"`
	IsProgramArea    *bool      `json:"is_program_area"`
}

// UpdateVillageRequest modifies village targeting attributes
type UpdateVillageRequest struct {
	Saturation       *string `json:"saturation" binding:"omitempty,max=50"`
	DistanceToMarket *int    `json:"distance_to_market" binding:"omitempty,min=0"`
	IsProgramArea    *bool   `json:"is_program_area"`
}

// CountyResponse represents a county in API responses
type CountyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

// SubCountyResponse represents a sub-county in API responses
type SubCountyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CountyID  uuid.UUID `json:"county_id"`
	CreatedAt time.Time `json:"created_at"`
}

// VillageResponse represents a village in API responses
type VillageResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	SubCountyID      *uuid.UUID `json:"sub_county_id,omitempty"`
	Saturation       string     `json:"saturation"`
	QualifiedHHCount int        `json:"qualified_hh_count"`
	Country          string     `json:"country"`
	DistanceToMarket int        `json:"distance_to_market"`
	IsProgramArea    bool       `json:"is_program_area"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ToCountyResponse maps a domain county to an API response
func ToCountyResponse(county *geography.County) *CountyResponse {
	return &CountyResponse{
		ID:        county.ID,
		Name:      county.Name,
		Country:   county.Country,
		CreatedAt: county.CreatedAt,
	}
}

// ToSubCountyResponse maps a domain sub-county to an API response
func ToSubCountyResponse(subCounty *geography.SubCounty) *SubCountyResponse {
	return &SubCountyResponse{
		ID:        subCounty.ID,
		Name:      subCounty.Name,
		CountyID:  subCounty.CountyID,
		CreatedAt: subCounty.CreatedAt,
	}
}

// ToVillageResponse maps a domain village to an API response
func ToVillageResponse(village *geography.Village) *VillageResponse {
	return &VillageResponse{
		ID:               village.ID,
		Name:             village.Name,
		SubCountyID:      village.SubCountyID,
		Saturation:       village.Saturation,
		QualifiedHHCount: village.QualifiedHHCount,
		Country:          village.Country,
		DistanceToMarket: village.DistanceToMarket,
		IsProgramArea:    village.IsProgramArea,
		CreatedAt:        village.CreatedAt,
		UpdatedAt:        village.UpdatedAt,
	}
}

// ToVillageResponses maps a slice of domain villages
func ToVillageResponses(villages []*geography.Village) []*VillageResponse {
	responses := make([]*VillageResponse, len(villages))
	for i, v := range villages {
		responses[i] = ToVillageResponse(v)
	}
	return responses
}
