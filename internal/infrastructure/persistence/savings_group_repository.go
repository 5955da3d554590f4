package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/group"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSavingsGroupRepository implements group.SavingsGroupRepository using GORM
type GormSavingsGroupRepository struct {
	db *gorm.DB
}

// NewGormSavingsGroupRepository creates a new GormSavingsGroupRepository
func NewGormSavingsGroupRepository(db *gorm.DB) *GormSavingsGroupRepository {
	return &GormSavingsGroupRepository{db: db}
}

// Create creates a new savings group
func (r *GormSavingsGroupRepository) Create(ctx context.Context, sg *group.SavingsGroup) error {
	model := &models.SavingsGroupModel{}
	model.FromDomain(sg)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing savings group
func (r *GormSavingsGroupRepository) Update(ctx context.Context, sg *group.SavingsGroup) error {
	model := &models.SavingsGroupModel{}
	model.FromDomain(sg)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a savings group by ID
func (r *GormSavingsGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SavingsGroupModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a savings group by ID
func (r *GormSavingsGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*group.SavingsGroup, error) {
	var model models.SavingsGroupModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns savings groups matching the filter with pagination
func (r *GormSavingsGroupRepository) FindAll(ctx context.Context, filter group.SavingsGroupFilter) ([]*group.SavingsGroup, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SavingsGroupModel{})

	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Frequency != nil {
		query = query.Where("savings_frequency = ?", *filter.Frequency)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groupModels []models.SavingsGroupModel
	if err := query.Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit()).Find(&groupModels).Error; err != nil {
		return nil, 0, err
	}

	groups := make([]*group.SavingsGroup, len(groupModels))
	for i := range groupModels {
		groups[i] = groupModels[i].ToDomain()
	}
	return groups, total, nil
}

// FindByHousehold finds savings groups with an active membership for a household
func (r *GormSavingsGroupRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*group.SavingsGroup, error) {
	var groupModels []models.SavingsGroupModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN savings_group_members ON savings_group_members.savings_group_id = savings_groups.id").
		Where("savings_group_members.household_id = ? AND savings_group_members.is_active = ?", householdID, true).
		Find(&groupModels).Error; err != nil {
		return nil, err
	}

	groups := make([]*group.SavingsGroup, len(groupModels))
	for i := range groupModels {
		groups[i] = groupModels[i].ToDomain()
	}
	return groups, nil
}

// SaveMembers saves the group's membership roster, replacing the existing set
func (r *GormSavingsGroupRepository) SaveMembers(ctx context.Context, groupID uuid.UUID, members []group.SavingsGroupMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("savings_group_id = ?", groupID).Delete(&models.SavingsGroupMemberModel{}).Error; err != nil {
			return err
		}
		if len(members) == 0 {
			return nil
		}
		memberModels := make([]models.SavingsGroupMemberModel, len(members))
		for i, member := range members {
			memberModels[i].FromDomain(member)
		}
		return tx.Create(&memberModels).Error
	})
}

// LoadMembers loads the group's membership roster
func (r *GormSavingsGroupRepository) LoadMembers(ctx context.Context, groupID uuid.UUID) ([]group.SavingsGroupMember, error) {
	var memberModels []models.SavingsGroupMemberModel
	if err := r.db.WithContext(ctx).
		Where("savings_group_id = ?", groupID).
		Order("joined_date ASC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}

	members := make([]group.SavingsGroupMember, len(memberModels))
	for i := range memberModels {
		members[i] = memberModels[i].ToDomain()
	}
	return members, nil
}

// SaveBusinessGroupLinks saves the group's business group links, replacing the existing set
func (r *GormSavingsGroupRepository) SaveBusinessGroupLinks(ctx context.Context, groupID uuid.UUID, businessGroupIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("savings_group_id = ?", groupID).Delete(&models.SavingsGroupLinkModel{}).Error; err != nil {
			return err
		}
		if len(businessGroupIDs) == 0 {
			return nil
		}
		links := make([]models.SavingsGroupLinkModel, len(businessGroupIDs))
		now := time.Now()
		for i, bgID := range businessGroupIDs {
			links[i] = models.SavingsGroupLinkModel{
				SavingsGroupID:  groupID,
				BusinessGroupID: bgID,
				CreatedAt:       now,
			}
		}
		return tx.Create(&links).Error
	})
}

// LoadBusinessGroupLinks loads the group's business group links
func (r *GormSavingsGroupRepository) LoadBusinessGroupLinks(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	var links []models.SavingsGroupLinkModel
	if err := r.db.WithContext(ctx).
		Where("savings_group_id = ?", groupID).
		Find(&links).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(links))
	for i, link := range links {
		ids[i] = link.BusinessGroupID
	}
	return ids, nil
}

// SaveRecord stores a savings deposit record
func (r *GormSavingsGroupRepository) SaveRecord(ctx context.Context, record *group.SavingsRecord) error {
	model := &models.SavingsRecordModel{}
	model.FromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindRecords finds savings records for a group, newest first
func (r *GormSavingsGroupRepository) FindRecords(ctx context.Context, groupID uuid.UUID) ([]*group.SavingsRecord, error) {
	var recordModels []models.SavingsRecordModel
	if err := r.db.WithContext(ctx).
		Where("savings_group_id = ?", groupID).
		Order("savings_date DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return savingsRecordModelsToDomain(recordModels), nil
}

// FindRecordsByMember finds savings records for a member, newest first
func (r *GormSavingsGroupRepository) FindRecordsByMember(ctx context.Context, memberID uuid.UUID) ([]*group.SavingsRecord, error) {
	var recordModels []models.SavingsRecordModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("savings_date DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return savingsRecordModelsToDomain(recordModels), nil
}

// SaveProgressSurvey stores a savings progress survey
func (r *GormSavingsGroupRepository) SaveProgressSurvey(ctx context.Context, survey *group.SavingsProgressSurvey) error {
	model := &models.SavingsProgressSurveyModel{}
	model.FromDomain(survey)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindProgressSurveys finds progress surveys for a group, newest first
func (r *GormSavingsGroupRepository) FindProgressSurveys(ctx context.Context, groupID uuid.UUID) ([]*group.SavingsProgressSurvey, error) {
	var surveyModels []models.SavingsProgressSurveyModel
	if err := r.db.WithContext(ctx).
		Where("savings_group_id = ?", groupID).
		Order("survey_date DESC").
		Find(&surveyModels).Error; err != nil {
		return nil, err
	}

	surveys := make([]*group.SavingsProgressSurvey, len(surveyModels))
	for i := range surveyModels {
		surveys[i] = surveyModels[i].ToDomain()
	}
	return surveys, nil
}

// Count returns the total number of savings groups
func (r *GormSavingsGroupRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavingsGroupModel{}).Count(&count).Error
	return count, err
}

func savingsRecordModelsToDomain(recordModels []models.SavingsRecordModel) []*group.SavingsRecord {
	records := make([]*group.SavingsRecord, len(recordModels))
	for i := range recordModels {
		records[i] = recordModels[i].ToDomain()
	}
	return records
}
