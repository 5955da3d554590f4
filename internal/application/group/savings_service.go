package group

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/group"
	"github.com/upg/backend/internal/domain/household"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/shared/valueobject"
)

// SavingsService manages community savings groups and their ledgers
type SavingsService struct {
	savingsRepo   group.SavingsGroupRepository
	businessRepo  group.BusinessGroupRepository
	householdRepo household.HouseholdRepository
	eventBus      shared.EventPublisher
	logger        *zap.Logger
}

// NewSavingsService creates a new savings group service
func NewSavingsService(
	savingsRepo group.SavingsGroupRepository,
	businessRepo group.BusinessGroupRepository,
	householdRepo household.HouseholdRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *SavingsService {
	return &SavingsService{
		savingsRepo:   savingsRepo,
		businessRepo:  businessRepo,
		householdRepo: householdRepo,
		eventBus:      eventBus,
		logger:        logger,
	}
}

// FormGroup creates a savings group
func (s *SavingsService) FormGroup(ctx context.Context, req FormSavingsGroupRequest) (*SavingsGroupResponse, error) {
	formationDate := req.FormationDate
	if formationDate.IsZero() {
		formationDate = time.Now()
	}

	g, err := group.NewSavingsGroup(req.Name, formationDate, group.SavingsFrequency(req.Frequency), req.CreatedBy)
	if err != nil {
		return nil, err
	}
	if req.MeetingDay != "" || req.MeetingLocation != "" {
		g.SetMeetingSchedule(req.MeetingDay, req.MeetingLocation)
	}
	if req.TargetMembers > 0 {
		if err := g.SetTargetMembers(req.TargetMembers); err != nil {
			return nil, err
		}
	}

	if err := s.savingsRepo.Create(ctx, g); err != nil {
		s.logger.Error("failed to create savings group", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create savings group")
	}

	s.publishEvents(ctx, g.GetDomainEvents())
	g.ClearDomainEvents()

	s.logger.Info("savings group formed", zap.String("group_id", g.ID.String()))

	return ToSavingsGroupResponse(g), nil
}

// GetGroup retrieves a savings group with members and business group links
func (s *SavingsService) GetGroup(ctx context.Context, id uuid.UUID) (*SavingsGroupResponse, error) {
	g, err := s.findGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.loadRoster(ctx, g); err != nil {
		return nil, err
	}
	return ToSavingsGroupResponse(g), nil
}

// ListGroups returns savings groups matching the filter
func (s *SavingsService) ListGroups(ctx context.Context, filter SavingsGroupListFilter) ([]*SavingsGroupResponse, int64, error) {
	domainFilter := group.NewSavingsGroupFilter()
	domainFilter.Keyword = filter.Search
	domainFilter.ActiveOnly = filter.ActiveOnly
	if filter.Frequency != "" {
		frequency := group.SavingsFrequency(filter.Frequency)
		domainFilter.Frequency = &frequency
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	groups, total, err := s.savingsRepo.FindAll(ctx, domainFilter)
	if err != nil {
		s.logger.Error("failed to list savings groups", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list savings groups")
	}
	return ToSavingsGroupResponses(groups), total, nil
}

// AddMember joins a household directly to the savings group
func (s *SavingsService) AddMember(ctx context.Context, groupID uuid.UUID, req GroupMemberInput) (*SavingsGroupResponse, error) {
	g, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.loadRoster(ctx, g); err != nil {
		return nil, err
	}
	if _, err := s.householdRepo.FindByID(ctx, req.HouseholdID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Household not found")
		}
		return nil, err
	}

	if _, err := g.AddMember(req.HouseholdID, group.SavingsMemberRole(req.Role), time.Now()); err != nil {
		return nil, err
	}

	if err := s.savingsRepo.SaveMembers(ctx, g.ID, g.Members); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save group members")
	}
	return ToSavingsGroupResponse(g), nil
}

// RemoveMember deactivates a household's membership
func (s *SavingsService) RemoveMember(ctx context.Context, groupID, householdID uuid.UUID) (*SavingsGroupResponse, error) {
	g, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.loadRoster(ctx, g); err != nil {
		return nil, err
	}

	if err := g.RemoveMember(householdID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Household is not an active member of this savings group")
		}
		return nil, err
	}

	if err := s.savingsRepo.SaveMembers(ctx, g.ID, g.Members); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save group members")
	}
	return ToSavingsGroupResponse(g), nil
}

// AttachBusinessGroup links a whole business group to the savings group
func (s *SavingsService) AttachBusinessGroup(ctx context.Context, groupID, businessGroupID uuid.UUID) (*SavingsGroupResponse, error) {
	g, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.loadRoster(ctx, g); err != nil {
		return nil, err
	}
	if _, err := s.businessRepo.FindByID(ctx, businessGroupID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Business group not found")
		}
		return nil, err
	}

	if err := g.AttachBusinessGroup(businessGroupID); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Business group is already linked to this savings group")
		}
		return nil, err
	}

	if err := s.savingsRepo.SaveBusinessGroupLinks(ctx, g.ID, g.BusinessGroupIDs); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save business group links")
	}
	return ToSavingsGroupResponse(g), nil
}

// DetachBusinessGroup unlinks a business group
func (s *SavingsService) DetachBusinessGroup(ctx context.Context, groupID, businessGroupID uuid.UUID) (*SavingsGroupResponse, error) {
	g, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.loadRoster(ctx, g); err != nil {
		return nil, err
	}

	if err := g.DetachBusinessGroup(businessGroupID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Business group is not linked to this savings group")
		}
		return nil, err
	}

	if err := s.savingsRepo.SaveBusinessGroupLinks(ctx, g.ID, g.BusinessGroupIDs); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save business group links")
	}
	return ToSavingsGroupResponse(g), nil
}

// RecordSaving books a member contribution, updating the member and group
// running totals
func (s *SavingsService) RecordSaving(ctx context.Context, groupID uuid.UUID, req RecordSavingRequest) (*SavingsRecordResponse, error) {
	g, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.loadRoster(ctx, g); err != nil {
		return nil, err
	}

	savingsDate := req.SavingsDate
	if savingsDate.IsZero() {
		savingsDate = time.Now()
	}

	record, err := g.RecordSaving(req.HouseholdID, valueobject.NewMoneyKES(req.Amount), savingsDate, req.RecordedBy, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.savingsRepo.SaveRecord(ctx, record); err != nil {
		s.logger.Error("failed to save savings record",
			zap.String("group_id", g.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save savings record")
	}
	if err := s.savingsRepo.SaveMembers(ctx, g.ID, g.Members); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save group members")
	}
	if err := s.savingsRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update savings group")
	}

	s.publishEvents(ctx, g.GetDomainEvents())
	g.ClearDomainEvents()

	return ToSavingsRecordResponse(record), nil
}

// ListRecords returns the group's contribution ledger
func (s *SavingsService) ListRecords(ctx context.Context, groupID uuid.UUID) ([]*SavingsRecordResponse, error) {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return nil, err
	}

	records, err := s.savingsRepo.FindRecords(ctx, groupID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load savings records")
	}

	responses := make([]*SavingsRecordResponse, len(records))
	for i, record := range records {
		responses[i] = ToSavingsRecordResponse(record)
	}
	return responses, nil
}

// RecordProgressSurvey captures a monthly savings group snapshot
func (s *SavingsService) RecordProgressSurvey(ctx context.Context, groupID uuid.UUID, req RecordSavingsSurveyRequest) (*SavingsSurveyResponse, error) {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return nil, err
	}

	surveyDate := req.SurveyDate
	if surveyDate.IsZero() {
		surveyDate = time.Now()
	}

	survey := group.NewSavingsProgressSurvey(groupID, surveyDate, req.MonthRecorded, req.SurveyorID)
	survey.SavingLastMonth = valueobject.NewMoneyKES(req.SavingLastMonth)
	survey.AttendanceThisMeeting = req.AttendanceThisMeeting

	if err := s.savingsRepo.SaveProgressSurvey(ctx, survey); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save progress survey")
	}
	return ToSavingsSurveyResponse(survey), nil
}

// ListProgressSurveys returns the group's monthly snapshots
func (s *SavingsService) ListProgressSurveys(ctx context.Context, groupID uuid.UUID) ([]*SavingsSurveyResponse, error) {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return nil, err
	}

	surveys, err := s.savingsRepo.FindProgressSurveys(ctx, groupID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load progress surveys")
	}

	responses := make([]*SavingsSurveyResponse, len(surveys))
	for i, survey := range surveys {
		responses[i] = ToSavingsSurveyResponse(survey)
	}
	return responses, nil
}

// DeactivateGroup retires a savings group
func (s *SavingsService) DeactivateGroup(ctx context.Context, groupID uuid.UUID) (*SavingsGroupResponse, error) {
	g, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	g.Deactivate()

	if err := s.savingsRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update savings group")
	}
	return ToSavingsGroupResponse(g), nil
}

func (s *SavingsService) findGroup(ctx context.Context, id uuid.UUID) (*group.SavingsGroup, error) {
	g, err := s.savingsRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Savings group not found")
		}
		return nil, err
	}
	return g, nil
}

func (s *SavingsService) loadRoster(ctx context.Context, g *group.SavingsGroup) error {
	members, err := s.savingsRepo.LoadMembers(ctx, g.ID)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to load group members")
	}
	g.Members = members

	links, err := s.savingsRepo.LoadBusinessGroupLinks(ctx, g.ID)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to load business group links")
	}
	g.BusinessGroupIDs = links
	return nil
}

func (s *SavingsService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish savings group events", zap.Error(err))
	}
}
