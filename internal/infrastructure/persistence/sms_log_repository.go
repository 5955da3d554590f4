package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/notification"
	"github.com/upg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSMSLogRepository implements notification.SMSLogRepository using GORM
type GormSMSLogRepository struct {
	db *gorm.DB
}

// NewGormSMSLogRepository creates a new GormSMSLogRepository
func NewGormSMSLogRepository(db *gorm.DB) *GormSMSLogRepository {
	return &GormSMSLogRepository{db: db}
}

// Save records an SMS delivery attempt
func (r *GormSMSLogRepository) Save(ctx context.Context, log *notification.SMSLog) error {
	model := &models.SMSLogModel{}
	model.FromDomain(log)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByPhone finds delivery logs for a phone number matching the filter
func (r *GormSMSLogRepository) FindByPhone(ctx context.Context, phoneNumber string, filter notification.SMSLogFilter) ([]*notification.SMSLog, int64, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.SMSLogModel{}).Where("phone_number = ?", phoneNumber),
		filter,
	)
	return r.findPage(query, filter)
}

// FindByHousehold finds delivery logs linked to a household, newest first
func (r *GormSMSLogRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*notification.SMSLog, error) {
	var logModels []models.SMSLogModel
	if err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("sent_at DESC").
		Find(&logModels).Error; err != nil {
		return nil, err
	}
	return smsLogModelsToDomain(logModels), nil
}

// FindAll returns delivery logs matching the filter with pagination
func (r *GormSMSLogRepository) FindAll(ctx context.Context, filter notification.SMSLogFilter) ([]*notification.SMSLog, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SMSLogModel{}), filter)
	return r.findPage(query, filter)
}

// CountBySuccess counts delivery logs by outcome
func (r *GormSMSLogRepository) CountBySuccess(ctx context.Context, success bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SMSLogModel{}).
		Where("success = ?", success).
		Count(&count).Error
	return count, err
}

func (r *GormSMSLogRepository) applyFilter(query *gorm.DB, filter notification.SMSLogFilter) *gorm.DB {
	if filter.SuccessOnly {
		query = query.Where("success = ?", true)
	}
	if filter.Provider != "" {
		query = query.Where("provider = ?", filter.Provider)
	}
	return query
}

func (r *GormSMSLogRepository) findPage(query *gorm.DB, filter notification.SMSLogFilter) ([]*notification.SMSLog, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logModels []models.SMSLogModel
	if err := query.Order("sent_at DESC").Offset(filter.Offset()).Limit(filter.Limit()).Find(&logModels).Error; err != nil {
		return nil, 0, err
	}
	return smsLogModelsToDomain(logModels), total, nil
}

func smsLogModelsToDomain(logModels []models.SMSLogModel) []*notification.SMSLog {
	logs := make([]*notification.SMSLog, len(logModels))
	for i := range logModels {
		logs[i] = logModels[i].ToDomain()
	}
	return logs
}
