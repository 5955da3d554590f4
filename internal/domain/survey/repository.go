package survey

import (
	"context"

	"github.com/google/uuid"
)

// SurveyRepository persists survey definitions and responses
type SurveyRepository interface {
	Create(ctx context.Context, survey *Survey) error
	Update(ctx context.Context, survey *Survey) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Survey, error)
	FindAll(ctx context.Context, filter SurveyFilter) ([]*Survey, int64, error)
	FindActive(ctx context.Context) ([]*Survey, error)

	SaveResponse(ctx context.Context, response *Response) error
	UpdateResponse(ctx context.Context, response *Response) error
	FindResponseByID(ctx context.Context, id uuid.UUID) (*Response, error)
	FindResponses(ctx context.Context, surveyID uuid.UUID, filter ResponseFilter) ([]*Response, int64, error)
	FindResponsesByHousehold(ctx context.Context, householdID uuid.UUID) ([]*Response, error)
	CountResponses(ctx context.Context, surveyID uuid.UUID) (int64, error)
}

// SurveyFilter contains filter options for querying surveys
type SurveyFilter struct {
	Keyword    string
	ActiveOnly bool
	Page       int
	PageSize   int
}

// NewSurveyFilter creates a filter with default values
func NewSurveyFilter() SurveyFilter {
	return SurveyFilter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f SurveyFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f SurveyFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// ResponseFilter contains filter options for querying responses
type ResponseFilter struct {
	CompletedOnly bool
	SurveyorID    *uuid.UUID
	Page          int
	PageSize      int
}

// NewResponseFilter creates a filter with default values
func NewResponseFilter() ResponseFilter {
	return ResponseFilter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f ResponseFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f ResponseFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
