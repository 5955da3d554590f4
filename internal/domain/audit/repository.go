package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ConfigurationRepository persists system settings
type ConfigurationRepository interface {
	Create(ctx context.Context, config *Configuration) error
	Update(ctx context.Context, config *Configuration) error
	Delete(ctx context.Context, key string) error
	FindByKey(ctx context.Context, key string) (*Configuration, error)
	FindByCategory(ctx context.Context, category string) ([]*Configuration, error)
	FindAll(ctx context.Context) ([]*Configuration, error)
	FindPublic(ctx context.Context) ([]*Configuration, error)
}

// LogRepository persists audit entries. Entries are append-only.
type LogRepository interface {
	Append(ctx context.Context, entry *LogEntry) error
	FindByUser(ctx context.Context, userID uuid.UUID, filter LogFilter) ([]*LogEntry, int64, error)
	FindByModel(ctx context.Context, modelName string, objectID string) ([]*LogEntry, error)
	FindAll(ctx context.Context, filter LogFilter) ([]*LogEntry, int64, error)

	// Purge removes entries older than the cutoff, returning how many
	// were deleted
	Purge(ctx context.Context, before time.Time) (int64, error)
}

// LogFilter contains filter options for querying audit entries
type LogFilter struct {
	Action    *Action
	ModelName string
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

// NewLogFilter creates a filter with default values
func NewLogFilter() LogFilter {
	return LogFilter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f LogFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f LogFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
