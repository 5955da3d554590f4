package survey

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/shared"
)

// Survey is a reusable field data-collection instrument. Question
// structure lives in the response payloads rather than in a fixed schema,
// so field teams can iterate on forms without migrations.
type Survey struct {
	shared.AuditedAggregateRoot

	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	Version     string `gorm:"type:varchar(20)"`
	IsActive    bool
}

func NewSurvey(name, description string, createdBy uuid.UUID) (*Survey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SURVEY_NAME", "survey name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_SURVEY_NAME", "survey name cannot exceed 100 characters")
	}
	return &Survey{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Name:                 name,
		Description:          strings.TrimSpace(description),
		Version:              "1.0",
		IsActive:             true,
	}, nil
}

// NewVersion bumps the version label; responses keep pointing at the same
// survey and record which version they answered.
func (s *Survey) NewVersion(version string) error {
	version = strings.TrimSpace(version)
	if version == "" {
		return shared.NewDomainError("INVALID_VERSION", "version cannot be empty")
	}
	s.Version = version
	s.Touch()
	s.IncrementVersion()
	return nil
}

func (s *Survey) Deactivate() {
	s.IsActive = false
	s.Touch()
	s.IncrementVersion()
}

func (s *Survey) Activate() {
	s.IsActive = true
	s.Touch()
	s.IncrementVersion()
}

// Response is one household's answers to a survey, collected in the field.
type Response struct {
	shared.BaseEntity

	SurveyID      uuid.UUID
	SurveyVersion string `gorm:"type:varchar(20)"`
	HouseholdID   uuid.UUID
	SurveyorID    *uuid.UUID
	Data          map[string]interface{} `gorm:"serializer:json"`
	Completed     bool
	SubmittedAt   time.Time
}

// NewResponse records answers against an active survey. Partial responses
// are allowed; Complete marks them final.
func NewResponse(s *Survey, householdID uuid.UUID, surveyorID *uuid.UUID,
	data map[string]interface{}) (*Response, error) {
	if s == nil {
		return nil, shared.ErrNotFound
	}
	if !s.IsActive {
		return nil, shared.NewDomainError("SURVEY_INACTIVE", "cannot respond to an inactive survey")
	}
	if len(data) == 0 {
		return nil, shared.NewDomainError("EMPTY_RESPONSE", "response data cannot be empty")
	}
	return &Response{
		BaseEntity:    shared.NewBaseEntity(),
		SurveyID:      s.ID,
		SurveyVersion: s.Version,
		HouseholdID:   householdID,
		SurveyorID:    surveyorID,
		Data:          data,
		SubmittedAt:   time.Now().UTC(),
	}, nil
}

func (r *Response) MergeData(data map[string]interface{}) error {
	if r.Completed {
		return shared.NewDomainError("RESPONSE_FINAL", "cannot modify a completed response")
	}
	for k, v := range data {
		r.Data[k] = v
	}
	return nil
}

func (r *Response) Complete() {
	r.Completed = true
	r.SubmittedAt = time.Now().UTC()
}

// Answer fetches a single field from the payload.
func (r *Response) Answer(key string) (interface{}, bool) {
	v, ok := r.Data[key]
	return v, ok
}
