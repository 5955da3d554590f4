package geography

import (
	"strings"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/shared"
)

// County is a top-level administrative area
type County struct {
	shared.BaseAggregateRoot
	Name    string
	Country string
}

// NewCounty creates a new county
func NewCounty(name string) (*County, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "County name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "County name cannot exceed 100 characters")
	}

	return &County{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Country:           "Kenya",
	}, nil
}

// Rename changes the county name
func (c *County) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "County name cannot be empty")
	}

	c.Name = name
	c.Touch()
	c.IncrementVersion()

	return nil
}

// SubCounty is an administrative subdivision of a county
type SubCounty struct {
	shared.BaseAggregateRoot
	Name     string
	CountyID uuid.UUID
}

// NewSubCounty creates a new sub-county within a county
func NewSubCounty(name string, countyID uuid.UUID) (*SubCounty, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Sub-county name cannot be empty")
	}
	if countyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTY_ID", "County ID cannot be empty")
	}

	return &SubCounty{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CountyID:          countyID,
	}, nil
}
