package geography

import (
	"context"

	"github.com/google/uuid"
)

// CountyRepository persists counties
type CountyRepository interface {
	Create(ctx context.Context, county *County) error
	Update(ctx context.Context, county *County) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*County, error)
	FindByName(ctx context.Context, name string) (*County, error)
	FindAll(ctx context.Context) ([]*County, error)
}

// SubCountyRepository persists sub-counties
type SubCountyRepository interface {
	Create(ctx context.Context, subCounty *SubCounty) error
	Update(ctx context.Context, subCounty *SubCounty) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*SubCounty, error)
	FindByCounty(ctx context.Context, countyID uuid.UUID) ([]*SubCounty, error)
}

// VillageRepository persists villages
type VillageRepository interface {
	Create(ctx context.Context, village *Village) error
	Update(ctx context.Context, village *Village) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Village, error)
	FindBySubCounty(ctx context.Context, subCountyID uuid.UUID) ([]*Village, error)
	FindProgramAreas(ctx context.Context) ([]*Village, error)
	FindAll(ctx context.Context) ([]*Village, error)
}
