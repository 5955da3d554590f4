package notification

import (
	"context"

	"github.com/google/uuid"
)

// SMSLogRepository persists SMS delivery logs
type SMSLogRepository interface {
	Save(ctx context.Context, log *SMSLog) error
	FindByPhone(ctx context.Context, phoneNumber string, filter SMSLogFilter) ([]*SMSLog, int64, error)
	FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*SMSLog, error)
	FindAll(ctx context.Context, filter SMSLogFilter) ([]*SMSLog, int64, error)
	CountBySuccess(ctx context.Context, success bool) (int64, error)
}

// SMSLogFilter contains filter options for querying SMS logs
type SMSLogFilter struct {
	SuccessOnly bool
	Provider    string
	Page        int
	PageSize    int
}

// NewSMSLogFilter creates a filter with default values
func NewSMSLogFilter() SMSLogFilter {
	return SMSLogFilter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f SMSLogFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f SMSLogFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
