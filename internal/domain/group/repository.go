package group

import (
	"context"

	"github.com/google/uuid"
)

// BusinessGroupRepository persists business groups and their memberships
type BusinessGroupRepository interface {
	Create(ctx context.Context, group *BusinessGroup) error
	Update(ctx context.Context, group *BusinessGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*BusinessGroup, error)
	FindByProgram(ctx context.Context, programID uuid.UUID, filter BusinessGroupFilter) ([]*BusinessGroup, int64, error)
	FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*BusinessGroup, error)
	FindAll(ctx context.Context, filter BusinessGroupFilter) ([]*BusinessGroup, int64, error)

	SaveMembers(ctx context.Context, groupID uuid.UUID, members []BusinessGroupMember) error
	LoadMembers(ctx context.Context, groupID uuid.UUID) ([]BusinessGroupMember, error)

	SaveProgressSurvey(ctx context.Context, survey *BusinessProgressSurvey) error
	FindProgressSurveys(ctx context.Context, groupID uuid.UUID) ([]*BusinessProgressSurvey, error)

	Count(ctx context.Context) (int64, error)
	CountByHealth(ctx context.Context, health BusinessHealth) (int64, error)
}

// SavingsGroupRepository persists savings groups, memberships and records
type SavingsGroupRepository interface {
	Create(ctx context.Context, group *SavingsGroup) error
	Update(ctx context.Context, group *SavingsGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*SavingsGroup, error)
	FindAll(ctx context.Context, filter SavingsGroupFilter) ([]*SavingsGroup, int64, error)
	FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*SavingsGroup, error)

	SaveMembers(ctx context.Context, groupID uuid.UUID, members []SavingsGroupMember) error
	LoadMembers(ctx context.Context, groupID uuid.UUID) ([]SavingsGroupMember, error)
	SaveBusinessGroupLinks(ctx context.Context, groupID uuid.UUID, businessGroupIDs []uuid.UUID) error
	LoadBusinessGroupLinks(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error)

	SaveRecord(ctx context.Context, record *SavingsRecord) error
	FindRecords(ctx context.Context, groupID uuid.UUID) ([]*SavingsRecord, error)
	FindRecordsByMember(ctx context.Context, memberID uuid.UUID) ([]*SavingsRecord, error)

	SaveProgressSurvey(ctx context.Context, survey *SavingsProgressSurvey) error
	FindProgressSurveys(ctx context.Context, groupID uuid.UUID) ([]*SavingsProgressSurvey, error)

	Count(ctx context.Context) (int64, error)
}

// BusinessGroupFilter contains filter options for querying business groups
type BusinessGroupFilter struct {
	Keyword       string
	Health        *BusinessHealth
	Participation *ParticipationStatus
	BusinessType  *BusinessType
	Page          int
	PageSize      int
}

// NewBusinessGroupFilter creates a filter with default values
func NewBusinessGroupFilter() BusinessGroupFilter {
	return BusinessGroupFilter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f BusinessGroupFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f BusinessGroupFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// SavingsGroupFilter contains filter options for querying savings groups
type SavingsGroupFilter struct {
	Keyword    string
	ActiveOnly bool
	Frequency  *SavingsFrequency
	Page       int
	PageSize   int
}

// NewSavingsGroupFilter creates a filter with default values
func NewSavingsGroupFilter() SavingsGroupFilter {
	return SavingsGroupFilter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f SavingsGroupFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f SavingsGroupFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
