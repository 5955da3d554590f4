package survey

import (
	"time"

	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/survey"
)

// CreateSurveyRequest defines a new data-collection instrument.
type CreateSurveyRequest struct {
	Name        string    `json:"name" binding:"required,max=100"`
	Description string    `json:"description"`
	CreatedBy   uuid.UUID `json:"-"`
}

// UpdateSurveyRequest updates a survey definition. Nil fields are left
// unchanged.
type UpdateSurveyRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

// NewVersionRequest bumps the survey's version label.
type NewVersionRequest struct {
	Version string `json:"version" binding:"required,max=20"`
}

// SurveyListFilter narrows survey listings.
type SurveyListFilter struct {
	Keyword    string `form:"keyword"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// RecordResponseRequest captures a household's answers, possibly partial.
type RecordResponseRequest struct {
	HouseholdID uuid.UUID              `json:"household_id" binding:"required"`
	Data        map[string]interface{} `json:"data" binding:"required"`
	Complete    bool                   `json:"complete"`
	SurveyorID  *uuid.UUID             `json:"-"`
}

// AmendResponseRequest merges additional answers into a partial response.
type AmendResponseRequest struct {
	Data     map[string]interface{} `json:"data" binding:"required"`
	Complete bool                   `json:"complete"`
}

// ResponseListFilter narrows response listings.
type ResponseListFilter struct {
	CompletedOnly bool       `form:"completed_only"`
	SurveyorID    *uuid.UUID `form:"surveyor_id"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
}

// SurveyResponse is the API representation of a survey definition.
type SurveyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Version     string    `json:"version"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ResponseDetail is the API representation of a collected response.
type ResponseDetail struct {
	ID            uuid.UUID              `json:"id"`
	SurveyID      uuid.UUID              `json:"survey_id"`
	SurveyVersion string                 `json:"survey_version"`
	HouseholdID   uuid.UUID              `json:"household_id"`
	SurveyorID    *uuid.UUID             `json:"surveyor_id,omitempty"`
	Data          map[string]interface{} `json:"data"`
	Completed     bool                   `json:"completed"`
	SubmittedAt   time.Time              `json:"submitted_at"`
}

// ToSurveyResponse converts a survey definition to its response DTO.
func ToSurveyResponse(s *survey.Survey) *SurveyResponse {
	return &SurveyResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Version:     s.Version,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func ToSurveyResponses(surveys []*survey.Survey) []*SurveyResponse {
	responses := make([]*SurveyResponse, len(surveys))
	for i, s := range surveys {
		responses[i] = ToSurveyResponse(s)
	}
	return responses
}

// ToResponseDetail converts a collected response to its response DTO.
func ToResponseDetail(r *survey.Response) *ResponseDetail {
	return &ResponseDetail{
		ID:            r.ID,
		SurveyID:      r.SurveyID,
		SurveyVersion: r.SurveyVersion,
		HouseholdID:   r.HouseholdID,
		SurveyorID:    r.SurveyorID,
		Data:          r.Data,
		Completed:     r.Completed,
		SubmittedAt:   r.SubmittedAt,
	}
}

func ToResponseDetails(responses []*survey.Response) []*ResponseDetail {
	details := make([]*ResponseDetail, len(responses))
	for i, r := range responses {
		details[i] = ToResponseDetail(r)
	}
	return details
}
