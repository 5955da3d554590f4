package survey

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/household"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/survey"
)

// Service manages survey definitions and the responses field teams
// collect against them.
type Service struct {
	surveyRepo    survey.SurveyRepository
	householdRepo household.HouseholdRepository
	logger        *zap.Logger
}

// NewService creates a new survey service.
func NewService(
	surveyRepo survey.SurveyRepository,
	householdRepo household.HouseholdRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		surveyRepo:    surveyRepo,
		householdRepo: householdRepo,
		logger:        logger,
	}
}

// CreateSurvey defines a new instrument at version 1.0.
func (s *Service) CreateSurvey(ctx context.Context, req CreateSurveyRequest) (*SurveyResponse, error) {
	sv, err := survey.NewSurvey(req.Name, req.Description, req.CreatedBy)
	if err != nil {
		return nil, err
	}
	if err := s.surveyRepo.Create(ctx, sv); err != nil {
		s.logger.Error("failed to create survey", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create survey")
	}

	s.logger.Info("survey created",
		zap.String("survey_id", sv.ID.String()),
		zap.String("name", sv.Name))

	return ToSurveyResponse(sv), nil
}

// GetSurvey retrieves a survey definition by ID.
func (s *Service) GetSurvey(ctx context.Context, id uuid.UUID) (*SurveyResponse, error) {
	sv, err := s.findSurvey(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSurveyResponse(sv), nil
}

// ListSurveys lists survey definitions with optional keyword and
// active-only filters.
func (s *Service) ListSurveys(ctx context.Context, filter SurveyListFilter) ([]*SurveyResponse, int64, error) {
	domainFilter := survey.NewSurveyFilter()
	domainFilter.Keyword = filter.Keyword
	domainFilter.ActiveOnly = filter.ActiveOnly
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	surveys, total, err := s.surveyRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list surveys")
	}
	return ToSurveyResponses(surveys), total, nil
}

// UpdateSurvey updates a definition's name or description.
func (s *Service) UpdateSurvey(ctx context.Context, id uuid.UUID, req UpdateSurveyRequest) (*SurveyResponse, error) {
	sv, err := s.findSurvey(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := *req.Name
		if name == "" {
			return nil, shared.NewDomainError("INVALID_SURVEY_NAME", "Survey name cannot be empty")
		}
		sv.Name = name
	}
	if req.Description != nil {
		sv.Description = *req.Description
	}
	sv.Touch()
	sv.IncrementVersion()

	if err := s.surveyRepo.Update(ctx, sv); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update survey")
	}
	return ToSurveyResponse(sv), nil
}

// PublishNewVersion bumps the version label. Earlier responses keep the
// version they answered.
func (s *Service) PublishNewVersion(ctx context.Context, id uuid.UUID, req NewVersionRequest) (*SurveyResponse, error) {
	sv, err := s.findSurvey(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sv.NewVersion(req.Version); err != nil {
		return nil, err
	}
	if err := s.surveyRepo.Update(ctx, sv); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update survey")
	}

	s.logger.Info("survey version published",
		zap.String("survey_id", sv.ID.String()),
		zap.String("version", sv.Version))

	return ToSurveyResponse(sv), nil
}

// ActivateSurvey reopens a survey for responses.
func (s *Service) ActivateSurvey(ctx context.Context, id uuid.UUID) (*SurveyResponse, error) {
	sv, err := s.findSurvey(ctx, id)
	if err != nil {
		return nil, err
	}
	sv.Activate()
	if err := s.surveyRepo.Update(ctx, sv); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update survey")
	}
	return ToSurveyResponse(sv), nil
}

// DeactivateSurvey closes a survey to new responses.
func (s *Service) DeactivateSurvey(ctx context.Context, id uuid.UUID) (*SurveyResponse, error) {
	sv, err := s.findSurvey(ctx, id)
	if err != nil {
		return nil, err
	}
	sv.Deactivate()
	if err := s.surveyRepo.Update(ctx, sv); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update survey")
	}
	return ToSurveyResponse(sv), nil
}

// DeleteSurvey removes a definition that never collected responses.
func (s *Service) DeleteSurvey(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findSurvey(ctx, id); err != nil {
		return err
	}
	count, err := s.surveyRepo.CountResponses(ctx, id)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check responses")
	}
	if count > 0 {
		return shared.NewDomainError("SURVEY_IN_USE", "Cannot delete a survey with collected responses")
	}
	if err := s.surveyRepo.Delete(ctx, id); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete survey")
	}
	return nil
}

// RecordResponse captures a household's answers against an active survey.
// Partial submissions stay open for amendment until marked complete.
func (s *Service) RecordResponse(ctx context.Context, surveyID uuid.UUID, req RecordResponseRequest) (*ResponseDetail, error) {
	sv, err := s.findSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if _, err := s.householdRepo.FindByID(ctx, req.HouseholdID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Household not found")
		}
		return nil, err
	}

	r, err := survey.NewResponse(sv, req.HouseholdID, req.SurveyorID, req.Data)
	if err != nil {
		return nil, err
	}
	if req.Complete {
		r.Complete()
	}

	if err := s.surveyRepo.SaveResponse(ctx, r); err != nil {
		s.logger.Error("failed to save survey response",
			zap.String("survey_id", surveyID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save response")
	}

	s.logger.Info("survey response recorded",
		zap.String("survey_id", surveyID.String()),
		zap.String("household_id", req.HouseholdID.String()),
		zap.Bool("completed", r.Completed))

	return ToResponseDetail(r), nil
}

// AmendResponse merges new answers into a partial response.
func (s *Service) AmendResponse(ctx context.Context, responseID uuid.UUID, req AmendResponseRequest) (*ResponseDetail, error) {
	r, err := s.surveyRepo.FindResponseByID(ctx, responseID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Response not found")
		}
		return nil, err
	}

	if err := r.MergeData(req.Data); err != nil {
		return nil, err
	}
	if req.Complete {
		r.Complete()
	}

	if err := s.surveyRepo.UpdateResponse(ctx, r); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update response")
	}
	return ToResponseDetail(r), nil
}

// ListResponses lists a survey's responses.
func (s *Service) ListResponses(ctx context.Context, surveyID uuid.UUID, filter ResponseListFilter) ([]*ResponseDetail, int64, error) {
	domainFilter := survey.NewResponseFilter()
	domainFilter.CompletedOnly = filter.CompletedOnly
	domainFilter.SurveyorID = filter.SurveyorID
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	responses, total, err := s.surveyRepo.FindResponses(ctx, surveyID, domainFilter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list responses")
	}
	return ToResponseDetails(responses), total, nil
}

// ListHouseholdResponses lists every response a household has given
// across all surveys.
func (s *Service) ListHouseholdResponses(ctx context.Context, householdID uuid.UUID) ([]*ResponseDetail, error) {
	responses, err := s.surveyRepo.FindResponsesByHousehold(ctx, householdID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list responses")
	}
	return ToResponseDetails(responses), nil
}

func (s *Service) findSurvey(ctx context.Context, id uuid.UUID) (*survey.Survey, error) {
	sv, err := s.surveyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Survey not found")
		}
		return nil, err
	}
	return sv, nil
}
