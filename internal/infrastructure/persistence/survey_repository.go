package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/survey"
	"github.com/upg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSurveyRepository implements survey.SurveyRepository using GORM
type GormSurveyRepository struct {
	db *gorm.DB
}

// NewGormSurveyRepository creates a new GormSurveyRepository
func NewGormSurveyRepository(db *gorm.DB) *GormSurveyRepository {
	return &GormSurveyRepository{db: db}
}

// Create creates a new survey definition
func (r *GormSurveyRepository) Create(ctx context.Context, s *survey.Survey) error {
	model := &models.SurveyModel{}
	model.FromDomain(s)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing survey definition
func (r *GormSurveyRepository) Update(ctx context.Context, s *survey.Survey) error {
	model := &models.SurveyModel{}
	model.FromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a survey definition by ID
func (r *GormSurveyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SurveyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a survey definition by ID
func (r *GormSurveyRepository) FindByID(ctx context.Context, id uuid.UUID) (*survey.Survey, error) {
	var model models.SurveyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns survey definitions matching the filter with pagination
func (r *GormSurveyRepository) FindAll(ctx context.Context, filter survey.SurveyFilter) ([]*survey.Survey, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SurveyModel{})

	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var surveyModels []models.SurveyModel
	if err := query.Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit()).Find(&surveyModels).Error; err != nil {
		return nil, 0, err
	}
	return surveyModelsToDomain(surveyModels), total, nil
}

// FindActive finds all active survey definitions
func (r *GormSurveyRepository) FindActive(ctx context.Context) ([]*survey.Survey, error) {
	var surveyModels []models.SurveyModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&surveyModels).Error; err != nil {
		return nil, err
	}
	return surveyModelsToDomain(surveyModels), nil
}

// SaveResponse stores a new survey response
func (r *GormSurveyRepository) SaveResponse(ctx context.Context, response *survey.Response) error {
	model := &models.SurveyResponseModel{}
	model.FromDomain(response)
	return r.db.WithContext(ctx).Create(model).Error
}

// UpdateResponse updates an existing survey response
func (r *GormSurveyRepository) UpdateResponse(ctx context.Context, response *survey.Response) error {
	model := &models.SurveyResponseModel{}
	model.FromDomain(response)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindResponseByID finds a survey response by ID
func (r *GormSurveyRepository) FindResponseByID(ctx context.Context, id uuid.UUID) (*survey.Response, error) {
	var model models.SurveyResponseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindResponses finds responses to a survey matching the filter
func (r *GormSurveyRepository) FindResponses(ctx context.Context, surveyID uuid.UUID, filter survey.ResponseFilter) ([]*survey.Response, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SurveyResponseModel{}).
		Where("survey_id = ?", surveyID)

	if filter.CompletedOnly {
		query = query.Where("completed = ?", true)
	}
	if filter.SurveyorID != nil {
		query = query.Where("surveyor_id = ?", *filter.SurveyorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var responseModels []models.SurveyResponseModel
	if err := query.Order("submitted_at DESC").Offset(filter.Offset()).Limit(filter.Limit()).Find(&responseModels).Error; err != nil {
		return nil, 0, err
	}
	return responseModelsToDomain(responseModels), total, nil
}

// FindResponsesByHousehold finds all responses submitted for a household
func (r *GormSurveyRepository) FindResponsesByHousehold(ctx context.Context, householdID uuid.UUID) ([]*survey.Response, error) {
	var responseModels []models.SurveyResponseModel
	if err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("submitted_at DESC").
		Find(&responseModels).Error; err != nil {
		return nil, err
	}
	return responseModelsToDomain(responseModels), nil
}

// CountResponses counts responses to a survey
func (r *GormSurveyRepository) CountResponses(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SurveyResponseModel{}).
		Where("survey_id = ?", surveyID).
		Count(&count).Error
	return count, err
}

func surveyModelsToDomain(surveyModels []models.SurveyModel) []*survey.Survey {
	surveys := make([]*survey.Survey, len(surveyModels))
	for i := range surveyModels {
		surveys[i] = surveyModels[i].ToDomain()
	}
	return surveys
}

func responseModelsToDomain(responseModels []models.SurveyResponseModel) []*survey.Response {
	responses := make([]*survey.Response, len(responseModels))
	for i := range responseModels {
		responses[i] = responseModels[i].ToDomain()
	}
	return responses
}
