package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/group"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBusinessGroupRepository implements group.BusinessGroupRepository using GORM
type GormBusinessGroupRepository struct {
	db *gorm.DB
}

// NewGormBusinessGroupRepository creates a new GormBusinessGroupRepository
func NewGormBusinessGroupRepository(db *gorm.DB) *GormBusinessGroupRepository {
	return &GormBusinessGroupRepository{db: db}
}

// Create creates a new business group
func (r *GormBusinessGroupRepository) Create(ctx context.Context, bg *group.BusinessGroup) error {
	model := &models.BusinessGroupModel{}
	model.FromDomain(bg)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing business group
func (r *GormBusinessGroupRepository) Update(ctx context.Context, bg *group.BusinessGroup) error {
	model := &models.BusinessGroupModel{}
	model.FromDomain(bg)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a business group by ID
func (r *GormBusinessGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BusinessGroupModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a business group by ID
func (r *GormBusinessGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*group.BusinessGroup, error) {
	var model models.BusinessGroupModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProgram finds business groups in a program matching the filter
func (r *GormBusinessGroupRepository) FindByProgram(ctx context.Context, programID uuid.UUID, filter group.BusinessGroupFilter) ([]*group.BusinessGroup, int64, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.BusinessGroupModel{}).Where("program_id = ?", programID),
		filter,
	)
	return r.findPage(query, filter)
}

// FindByHousehold finds business groups with an active membership for a household
func (r *GormBusinessGroupRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*group.BusinessGroup, error) {
	var groupModels []models.BusinessGroupModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN business_group_members ON business_group_members.business_group_id = business_groups.id").
		Where("business_group_members.household_id = ? AND business_group_members.is_active = ?", householdID, true).
		Find(&groupModels).Error; err != nil {
		return nil, err
	}
	return businessGroupModelsToDomain(groupModels), nil
}

// FindAll returns business groups matching the filter with pagination
func (r *GormBusinessGroupRepository) FindAll(ctx context.Context, filter group.BusinessGroupFilter) ([]*group.BusinessGroup, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BusinessGroupModel{}), filter)
	return r.findPage(query, filter)
}

func (r *GormBusinessGroupRepository) applyFilter(query *gorm.DB, filter group.BusinessGroupFilter) *gorm.DB {
	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Health != nil {
		query = query.Where("health = ?", *filter.Health)
	}
	if filter.Participation != nil {
		query = query.Where("participation = ?", *filter.Participation)
	}
	if filter.BusinessType != nil {
		query = query.Where("business_type = ?", *filter.BusinessType)
	}
	return query
}

func (r *GormBusinessGroupRepository) findPage(query *gorm.DB, filter group.BusinessGroupFilter) ([]*group.BusinessGroup, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groupModels []models.BusinessGroupModel
	if err := query.Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit()).Find(&groupModels).Error; err != nil {
		return nil, 0, err
	}
	return businessGroupModelsToDomain(groupModels), total, nil
}

// SaveMembers saves the group's membership roster, replacing the existing set
func (r *GormBusinessGroupRepository) SaveMembers(ctx context.Context, groupID uuid.UUID, members []group.BusinessGroupMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_group_id = ?", groupID).Delete(&models.BusinessGroupMemberModel{}).Error; err != nil {
			return err
		}
		if len(members) == 0 {
			return nil
		}
		memberModels := make([]models.BusinessGroupMemberModel, len(members))
		for i, member := range members {
			memberModels[i].FromDomain(member)
		}
		return tx.Create(&memberModels).Error
	})
}

// LoadMembers loads the group's membership roster
func (r *GormBusinessGroupRepository) LoadMembers(ctx context.Context, groupID uuid.UUID) ([]group.BusinessGroupMember, error) {
	var memberModels []models.BusinessGroupMemberModel
	if err := r.db.WithContext(ctx).
		Where("business_group_id = ?", groupID).
		Order("joined_date ASC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}

	members := make([]group.BusinessGroupMember, len(memberModels))
	for i := range memberModels {
		members[i] = memberModels[i].ToDomain()
	}
	return members, nil
}

// SaveProgressSurvey stores a business progress survey
func (r *GormBusinessGroupRepository) SaveProgressSurvey(ctx context.Context, survey *group.BusinessProgressSurvey) error {
	model := &models.BusinessProgressSurveyModel{}
	model.FromDomain(survey)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindProgressSurveys finds progress surveys for a group, newest first
func (r *GormBusinessGroupRepository) FindProgressSurveys(ctx context.Context, groupID uuid.UUID) ([]*group.BusinessProgressSurvey, error) {
	var surveyModels []models.BusinessProgressSurveyModel
	if err := r.db.WithContext(ctx).
		Where("business_group_id = ?", groupID).
		Order("survey_date DESC").
		Find(&surveyModels).Error; err != nil {
		return nil, err
	}

	surveys := make([]*group.BusinessProgressSurvey, len(surveyModels))
	for i := range surveyModels {
		surveys[i] = surveyModels[i].ToDomain()
	}
	return surveys, nil
}

// Count returns the total number of business groups
func (r *GormBusinessGroupRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BusinessGroupModel{}).Count(&count).Error
	return count, err
}

// CountByHealth counts business groups with a given health rating
func (r *GormBusinessGroupRepository) CountByHealth(ctx context.Context, health group.BusinessHealth) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BusinessGroupModel{}).
		Where("health = ?", health).
		Count(&count).Error
	return count, err
}

func businessGroupModelsToDomain(groupModels []models.BusinessGroupModel) []*group.BusinessGroup {
	groups := make([]*group.BusinessGroup, len(groupModels))
	for i := range groupModels {
		groups[i] = groupModels[i].ToDomain()
	}
	return groups
}
