package persistence

import (
	"context"
	"errors"

	"github.com/upg/backend/internal/domain/audit"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormConfigurationRepository implements audit.ConfigurationRepository using GORM
type GormConfigurationRepository struct {
	db *gorm.DB
}

// NewGormConfigurationRepository creates a new GormConfigurationRepository
func NewGormConfigurationRepository(db *gorm.DB) *GormConfigurationRepository {
	return &GormConfigurationRepository{db: db}
}

// Create creates a new setting
func (r *GormConfigurationRepository) Create(ctx context.Context, config *audit.Configuration) error {
	model := &models.ConfigurationModel{}
	model.FromDomain(config)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing setting
func (r *GormConfigurationRepository) Update(ctx context.Context, config *audit.Configuration) error {
	model := &models.ConfigurationModel{}
	model.FromDomain(config)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a setting by key
func (r *GormConfigurationRepository) Delete(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).Delete(&models.ConfigurationModel{}, "`key` = ?", key)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByKey finds a setting by its key
func (r *GormConfigurationRepository) FindByKey(ctx context.Context, key string) (*audit.Configuration, error) {
	var model models.ConfigurationModel
	if err := r.db.WithContext(ctx).
		Where("`key` = ?", key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCategory finds settings in a category
func (r *GormConfigurationRepository) FindByCategory(ctx context.Context, category string) ([]*audit.Configuration, error) {
	var configModels []models.ConfigurationModel
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("`key` ASC").
		Find(&configModels).Error; err != nil {
		return nil, err
	}
	return configurationModelsToDomain(configModels), nil
}

// FindAll returns all settings
func (r *GormConfigurationRepository) FindAll(ctx context.Context) ([]*audit.Configuration, error) {
	var configModels []models.ConfigurationModel
	if err := r.db.WithContext(ctx).
		Order("category ASC, `key` ASC").
		Find(&configModels).Error; err != nil {
		return nil, err
	}
	return configurationModelsToDomain(configModels), nil
}

// FindPublic returns settings exposed to non-admin users
func (r *GormConfigurationRepository) FindPublic(ctx context.Context) ([]*audit.Configuration, error) {
	var configModels []models.ConfigurationModel
	if err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order("`key` ASC").
		Find(&configModels).Error; err != nil {
		return nil, err
	}
	return configurationModelsToDomain(configModels), nil
}

func configurationModelsToDomain(configModels []models.ConfigurationModel) []*audit.Configuration {
	configs := make([]*audit.Configuration, len(configModels))
	for i := range configModels {
		configs[i] = configModels[i].ToDomain()
	}
	return configs
}
