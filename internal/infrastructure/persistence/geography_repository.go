package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/geography"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCountyRepository implements geography.CountyRepository using GORM
type GormCountyRepository struct {
	db *gorm.DB
}

// NewGormCountyRepository creates a new GormCountyRepository
func NewGormCountyRepository(db *gorm.DB) *GormCountyRepository {
	return &GormCountyRepository{db: db}
}

// Create creates a new county
func (r *GormCountyRepository) Create(ctx context.Context, county *geography.County) error {
	model := &models.CountyModel{}
	model.FromDomain(county)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing county
func (r *GormCountyRepository) Update(ctx context.Context, county *geography.County) error {
	model := &models.CountyModel{}
	model.FromDomain(county)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a county by ID
func (r *GormCountyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CountyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a county by ID
func (r *GormCountyRepository) FindByID(ctx context.Context, id uuid.UUID) (*geography.County, error) {
	var model models.CountyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a county by name
func (r *GormCountyRepository) FindByName(ctx context.Context, name string) (*geography.County, error) {
	var model models.CountyModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all counties
func (r *GormCountyRepository) FindAll(ctx context.Context) ([]*geography.County, error) {
	var countyModels []models.CountyModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&countyModels).Error; err != nil {
		return nil, err
	}

	counties := make([]*geography.County, len(countyModels))
	for i := range countyModels {
		counties[i] = countyModels[i].ToDomain()
	}
	return counties, nil
}

// GormSubCountyRepository implements geography.SubCountyRepository using GORM
type GormSubCountyRepository struct {
	db *gorm.DB
}

// NewGormSubCountyRepository creates a new GormSubCountyRepository
func NewGormSubCountyRepository(db *gorm.DB) *GormSubCountyRepository {
	return &GormSubCountyRepository{db: db}
}

// Create creates a new sub-county
func (r *GormSubCountyRepository) Create(ctx context.Context, subCounty *geography.SubCounty) error {
	model := &models.SubCountyModel{}
	model.FromDomain(subCounty)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing sub-county
func (r *GormSubCountyRepository) Update(ctx context.Context, subCounty *geography.SubCounty) error {
	model := &models.SubCountyModel{}
	model.FromDomain(subCounty)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a sub-county by ID
func (r *GormSubCountyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SubCountyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a sub-county by ID
func (r *GormSubCountyRepository) FindByID(ctx context.Context, id uuid.UUID) (*geography.SubCounty, error) {
	var model models.SubCountyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCounty finds sub-counties belonging to a county
func (r *GormSubCountyRepository) FindByCounty(ctx context.Context, countyID uuid.UUID) ([]*geography.SubCounty, error) {
	var subCountyModels []models.SubCountyModel
	if err := r.db.WithContext(ctx).
		Where("county_id = ?", countyID).
		Order("name ASC").
		Find(&subCountyModels).Error; err != nil {
		return nil, err
	}

	subCounties := make([]*geography.SubCounty, len(subCountyModels))
	for i := range subCountyModels {
		subCounties[i] = subCountyModels[i].ToDomain()
	}
	return subCounties, nil
}

// GormVillageRepository implements geography.VillageRepository using GORM
type GormVillageRepository struct {
	db *gorm.DB
}

// NewGormVillageRepository creates a new GormVillageRepository
func NewGormVillageRepository(db *gorm.DB) *GormVillageRepository {
	return &GormVillageRepository{db: db}
}

// Create creates a new village
func (r *GormVillageRepository) Create(ctx context.Context, village *geography.Village) error {
	model := &models.VillageModel{}
	model.FromDomain(village)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing village
func (r *GormVillageRepository) Update(ctx context.Context, village *geography.Village) error {
	model := &models.VillageModel{}
	model.FromDomain(village)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a village by ID
func (r *GormVillageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.VillageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a village by ID
func (r *GormVillageRepository) FindByID(ctx context.Context, id uuid.UUID) (*geography.Village, error) {
	var model models.VillageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySubCounty finds villages in a sub-county
func (r *GormVillageRepository) FindBySubCounty(ctx context.Context, subCountyID uuid.UUID) ([]*geography.Village, error) {
	var villageModels []models.VillageModel
	if err := r.db.WithContext(ctx).
		Where("sub_county_id = ?", subCountyID).
		Order("name ASC").
		Find(&villageModels).Error; err != nil {
		return nil, err
	}
	return villageModelsToDomain(villageModels), nil
}

// FindProgramAreas finds villages inside the program target area
func (r *GormVillageRepository) FindProgramAreas(ctx context.Context) ([]*geography.Village, error) {
	var villageModels []models.VillageModel
	if err := r.db.WithContext(ctx).
		Where("is_program_area = ?", true).
		Order("name ASC").
		Find(&villageModels).Error; err != nil {
		return nil, err
	}
	return villageModelsToDomain(villageModels), nil
}

// FindAll returns all villages
func (r *GormVillageRepository) FindAll(ctx context.Context) ([]*geography.Village, error) {
	var villageModels []models.VillageModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&villageModels).Error; err != nil {
		return nil, err
	}
	return villageModelsToDomain(villageModels), nil
}

func villageModelsToDomain(villageModels []models.VillageModel) []*geography.Village {
	villages := make([]*geography.Village, len(villageModels))
	for i := range villageModels {
		villages[i] = villageModels[i].ToDomain()
	}
	return villages
}
