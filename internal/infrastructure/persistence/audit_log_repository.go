package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/audit"
	"github.com/upg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLogRepository implements audit.LogRepository using GORM.
// The audit trail is append-only; entries are never updated.
type GormLogRepository struct {
	db *gorm.DB
}

// NewGormLogRepository creates a new GormLogRepository
func NewGormLogRepository(db *gorm.DB) *GormLogRepository {
	return &GormLogRepository{db: db}
}

// Append writes a new audit entry
func (r *GormLogRepository) Append(ctx context.Context, entry *audit.LogEntry) error {
	model := &models.AuditLogModel{}
	model.FromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByUser finds audit entries for a user matching the filter
func (r *GormLogRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter audit.LogFilter) ([]*audit.LogEntry, int64, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.AuditLogModel{}).Where("user_id = ?", userID),
		filter,
	)
	return r.findPage(query, filter)
}

// FindByModel finds the audit history for a specific record
func (r *GormLogRepository) FindByModel(ctx context.Context, modelName string, objectID string) ([]*audit.LogEntry, error) {
	var logModels []models.AuditLogModel
	if err := r.db.WithContext(ctx).
		Where("model_name = ? AND object_id = ?", modelName, objectID).
		Order("timestamp DESC").
		Find(&logModels).Error; err != nil {
		return nil, err
	}
	return auditLogModelsToDomain(logModels), nil
}

// FindAll returns audit entries matching the filter with pagination
func (r *GormLogRepository) FindAll(ctx context.Context, filter audit.LogFilter) ([]*audit.LogEntry, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AuditLogModel{}), filter)
	return r.findPage(query, filter)
}

// Purge removes entries older than the cutoff, returning how many were deleted
func (r *GormLogRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("timestamp < ?", before).
		Delete(&models.AuditLogModel{})
	return result.RowsAffected, result.Error
}

func (r *GormLogRepository) applyFilter(query *gorm.DB, filter audit.LogFilter) *gorm.DB {
	if filter.Action != nil {
		query = query.Where("action = ?", *filter.Action)
	}
	if filter.ModelName != "" {
		query = query.Where("model_name = ?", filter.ModelName)
	}
	if filter.From != nil {
		query = query.Where("timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("timestamp < ?", *filter.To)
	}
	return query
}

func (r *GormLogRepository) findPage(query *gorm.DB, filter audit.LogFilter) ([]*audit.LogEntry, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logModels []models.AuditLogModel
	if err := query.Order("timestamp DESC").Offset(filter.Offset()).Limit(filter.Limit()).Find(&logModels).Error; err != nil {
		return nil, 0, err
	}
	return auditLogModelsToDomain(logModels), total, nil
}

func auditLogModelsToDomain(logModels []models.AuditLogModel) []*audit.LogEntry {
	entries := make([]*audit.LogEntry, len(logModels))
	for i := range logModels {
		entries[i] = logModels[i].ToDomain()
	}
	return entries
}
