package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/household"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormHouseholdRepository implements household.HouseholdRepository using GORM
type GormHouseholdRepository struct {
	db *gorm.DB
}

// NewGormHouseholdRepository creates a new GormHouseholdRepository
func NewGormHouseholdRepository(db *gorm.DB) *GormHouseholdRepository {
	return &GormHouseholdRepository{db: db}
}

// Create creates a new household
func (r *GormHouseholdRepository) Create(ctx context.Context, h *household.Household) error {
	model := models.HouseholdModelFromDomain(h)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing household
func (r *GormHouseholdRepository) Update(ctx context.Context, h *household.Household) error {
	model := models.HouseholdModelFromDomain(h)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a household by ID
func (r *GormHouseholdRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.HouseholdModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a household by ID
func (r *GormHouseholdRepository) FindByID(ctx context.Context, id uuid.UUID) (*household.Household, error) {
	var model models.HouseholdModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNationalID finds a household by the head's national ID
func (r *GormHouseholdRepository) FindByNationalID(ctx context.Context, nationalID string) (*household.Household, error) {
	if nationalID == "" {
		return nil, shared.NewDomainError("INVALID_NATIONAL_ID", "National ID cannot be empty")
	}
	var model models.HouseholdModel
	if err := r.db.WithContext(ctx).
		Where("national_id = ?", nationalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns households matching the filter with pagination
func (r *GormHouseholdRepository) FindAll(ctx context.Context, filter household.HouseholdFilter) ([]*household.Household, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.HouseholdModel{})

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR national_id LIKE ? OR head_last_name LIKE ?", kw, kw, kw)
	}
	if filter.VillageID != nil {
		query = query.Where("village_id = ?", *filter.VillageID)
	}
	if filter.SubCountyID != nil {
		query = query.Where("sub_county_id = ?", *filter.SubCountyID)
	}
	if filter.HasConsent != nil {
		query = query.Where("consent_given = ?", *filter.HasConsent)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var householdModels []models.HouseholdModel
	if err := query.Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit()).Find(&householdModels).Error; err != nil {
		return nil, 0, err
	}

	households := make([]*household.Household, len(householdModels))
	for i := range householdModels {
		households[i] = householdModels[i].ToDomain()
	}
	return households, total, nil
}

// FindByVillage finds all households in a village
func (r *GormHouseholdRepository) FindByVillage(ctx context.Context, villageID uuid.UUID) ([]*household.Household, error) {
	var householdModels []models.HouseholdModel
	if err := r.db.WithContext(ctx).
		Where("village_id = ?", villageID).
		Order("name ASC").
		Find(&householdModels).Error; err != nil {
		return nil, err
	}

	households := make([]*household.Household, len(householdModels))
	for i := range householdModels {
		households[i] = householdModels[i].ToDomain()
	}
	return households, nil
}

// Count returns the total number of households
func (r *GormHouseholdRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.HouseholdModel{}).Count(&count).Error
	return count, err
}

// SaveMembers saves the household's member roster, replacing the existing set
func (r *GormHouseholdRepository) SaveMembers(ctx context.Context, h *household.Household) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("household_id = ?", h.ID).Delete(&models.HouseholdMemberModel{}).Error; err != nil {
			return err
		}
		if len(h.Members) == 0 {
			return nil
		}
		memberModels := make([]models.HouseholdMemberModel, len(h.Members))
		for i, member := range h.Members {
			memberModels[i].FromDomain(member)
		}
		return tx.Create(&memberModels).Error
	})
}

// LoadMembers loads the household's member roster
func (r *GormHouseholdRepository) LoadMembers(ctx context.Context, h *household.Household) error {
	var memberModels []models.HouseholdMemberModel
	if err := r.db.WithContext(ctx).
		Where("household_id = ?", h.ID).
		Order("created_at ASC").
		Find(&memberModels).Error; err != nil {
		return err
	}

	h.Members = make([]household.HouseholdMember, len(memberModels))
	for i := range memberModels {
		h.Members[i] = memberModels[i].ToDomain()
	}
	return nil
}

// SavePPIAssessment stores a PPI score record
func (r *GormHouseholdRepository) SavePPIAssessment(ctx context.Context, assessment *household.PPIAssessment) error {
	model := &models.PPIAssessmentModel{}
	model.FromDomain(assessment)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindPPIAssessments finds all PPI assessments for a household, newest first
func (r *GormHouseholdRepository) FindPPIAssessments(ctx context.Context, householdID uuid.UUID) ([]*household.PPIAssessment, error) {
	var assessmentModels []models.PPIAssessmentModel
	if err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("assessment_date DESC").
		Find(&assessmentModels).Error; err != nil {
		return nil, err
	}

	assessments := make([]*household.PPIAssessment, len(assessmentModels))
	for i := range assessmentModels {
		assessments[i] = assessmentModels[i].ToDomain()
	}
	return assessments, nil
}

// FindLatestPPIAssessment finds the most recent PPI assessment for a household
func (r *GormHouseholdRepository) FindLatestPPIAssessment(ctx context.Context, householdID uuid.UUID) (*household.PPIAssessment, error) {
	var model models.PPIAssessmentModel
	if err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("assessment_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
