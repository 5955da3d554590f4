package group

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/group"
	"github.com/upg/backend/internal/domain/household"
	"github.com/upg/backend/internal/domain/program"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/shared/valueobject"
)

// BusinessService manages joint-enterprise business groups
type BusinessService struct {
	groupRepo     group.BusinessGroupRepository
	programRepo   program.ProgramRepository
	householdRepo household.HouseholdRepository
	eventBus      shared.EventPublisher
	logger        *zap.Logger
}

// NewBusinessService creates a new business group service
func NewBusinessService(
	groupRepo group.BusinessGroupRepository,
	programRepo program.ProgramRepository,
	householdRepo household.HouseholdRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *BusinessService {
	return &BusinessService{
		groupRepo:     groupRepo,
		programRepo:   programRepo,
		householdRepo: householdRepo,
		eventBus:      eventBus,
		logger:        logger,
	}
}

// FormGroup creates a business group under a program, optionally with its
// founding member roster
func (s *BusinessService) FormGroup(ctx context.Context, req FormBusinessGroupRequest) (*BusinessGroupResponse, error) {
	if _, err := s.programRepo.FindByID(ctx, req.ProgramID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Program not found")
		}
		return nil, err
	}

	formationDate := req.FormationDate
	if formationDate.IsZero() {
		formationDate = time.Now()
	}

	g, err := group.NewBusinessGroup(req.Name, req.ProgramID, group.BusinessType(req.BusinessType), formationDate, req.CreatedBy)
	if err != nil {
		return nil, err
	}
	if req.BusinessTypeDetail != "" {
		g.SetBusinessDetail(req.BusinessTypeDetail)
	}
	if req.Location != "" {
		g.SetLocation(req.Location)
	}

	for _, m := range req.Members {
		if err := s.ensureHouseholdExists(ctx, m.HouseholdID); err != nil {
			return nil, err
		}
		if _, err := g.AddMember(m.HouseholdID, group.MemberRole(m.Role), formationDate); err != nil {
			return nil, err
		}
	}

	if err := s.groupRepo.Create(ctx, g); err != nil {
		s.logger.Error("failed to create business group", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create business group")
	}
	if len(g.Members) > 0 {
		if err := s.groupRepo.SaveMembers(ctx, g.ID, g.Members); err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save group members")
		}
	}

	s.publishEvents(ctx, g.GetDomainEvents())
	g.ClearDomainEvents()

	s.logger.Info("business group formed",
		zap.String("group_id", g.ID.String()),
		zap.String("program_id", req.ProgramID.String()),
		zap.Int("members", len(g.Members)))

	return ToBusinessGroupResponse(g), nil
}

// GetGroup retrieves a business group with its member roster
func (s *BusinessService) GetGroup(ctx context.Context, id uuid.UUID) (*BusinessGroupResponse, error) {
	g, err := s.findGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.loadMembers(ctx, g); err != nil {
		return nil, err
	}
	return ToBusinessGroupResponse(g), nil
}

// ListGroups returns business groups matching the filter
func (s *BusinessService) ListGroups(ctx context.Context, filter BusinessGroupListFilter) ([]*BusinessGroupResponse, int64, error) {
	domainFilter := s.buildFilter(filter)

	groups, total, err := s.groupRepo.FindAll(ctx, domainFilter)
	if err != nil {
		s.logger.Error("failed to list business groups", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list business groups")
	}
	return ToBusinessGroupResponses(groups), total, nil
}

// ListGroupsByProgram returns a program's business groups
func (s *BusinessService) ListGroupsByProgram(ctx context.Context, programID uuid.UUID, filter BusinessGroupListFilter) ([]*BusinessGroupResponse, int64, error) {
	groups, total, err := s.groupRepo.FindByProgram(ctx, programID, s.buildFilter(filter))
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list business groups")
	}
	return ToBusinessGroupResponses(groups), total, nil
}

// UpdateGroup modifies business group attributes
func (s *BusinessService) UpdateGroup(ctx context.Context, id uuid.UUID, req UpdateBusinessGroupRequest) (*BusinessGroupResponse, error) {
	g, err := s.findGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BusinessTypeDetail != nil {
		g.SetBusinessDetail(*req.BusinessTypeDetail)
	}
	if req.Location != nil {
		g.SetLocation(*req.Location)
	}

	if err := s.groupRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update business group")
	}
	return ToBusinessGroupResponse(g), nil
}

// AddMember joins a household to the group roster
func (s *BusinessService) AddMember(ctx context.Context, groupID uuid.UUID, req GroupMemberInput) (*BusinessGroupResponse, error) {
	g, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.loadMembers(ctx, g); err != nil {
		return nil, err
	}
	if err := s.ensureHouseholdExists(ctx, req.HouseholdID); err != nil {
		return nil, err
	}

	if _, err := g.AddMember(req.HouseholdID, group.MemberRole(req.Role), time.Now()); err != nil {
		return nil, err
	}

	if err := s.groupRepo.SaveMembers(ctx, g.ID, g.Members); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save group members")
	}
	if err := s.groupRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update business group")
	}
	return ToBusinessGroupResponse(g), nil
}

// RemoveMember deactivates a household's membership
func (s *BusinessService) RemoveMember(ctx context.Context, groupID, householdID uuid.UUID) (*BusinessGroupResponse, error) {
	g, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.loadMembers(ctx, g); err != nil {
		return nil, err
	}

	if err := g.RemoveMember(householdID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Household is not an active member of this group")
		}
		return nil, err
	}

	if err := s.groupRepo.SaveMembers(ctx, g.ID, g.Members); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save group members")
	}
	if err := s.groupRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update business group")
	}
	return ToBusinessGroupResponse(g), nil
}

// RateHealth records a traffic-light health rating for the group
func (s *BusinessService) RateHealth(ctx context.Context, groupID uuid.UUID, req RateHealthRequest) (*BusinessGroupResponse, error) {
	g, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if err := g.RateHealth(group.BusinessHealth(req.Health)); err != nil {
		return nil, err
	}

	if err := s.groupRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update business group")
	}

	s.publishEvents(ctx, g.GetDomainEvents())
	g.ClearDomainEvents()

	return ToBusinessGroupResponse(g), nil
}

// SuspendGroup pauses the group's program participation
func (s *BusinessService) SuspendGroup(ctx context.Context, groupID uuid.UUID) (*BusinessGroupResponse, error) {
	return s.transition(ctx, groupID, (*group.BusinessGroup).Suspend)
}

// ReactivateGroup resumes a suspended group
func (s *BusinessService) ReactivateGroup(ctx context.Context, groupID uuid.UUID) (*BusinessGroupResponse, error) {
	return s.transition(ctx, groupID, (*group.BusinessGroup).Reactivate)
}

// WithdrawGroup withdraws the group from the program
func (s *BusinessService) WithdrawGroup(ctx context.Context, groupID uuid.UUID) (*BusinessGroupResponse, error) {
	return s.transition(ctx, groupID, (*group.BusinessGroup).Withdraw)
}

// RecordProgressSurvey captures a business progress survey for the group
func (s *BusinessService) RecordProgressSurvey(ctx context.Context, groupID uuid.UUID, req RecordBusinessSurveyRequest) (*BusinessSurveyResponse, error) {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return nil, err
	}

	surveyDate := req.SurveyDate
	if surveyDate.IsZero() {
		surveyDate = time.Now()
	}

	survey := group.NewBusinessProgressSurvey(groupID, surveyDate, req.SurveyorID)
	survey.GrantValue = valueobject.NewMoneyKES(req.GrantValue)
	survey.GrantUsed = valueobject.NewMoneyKES(req.GrantUsed)
	survey.Profit = valueobject.NewMoneyKES(req.Profit)
	survey.BusinessCash = valueobject.NewMoneyKES(req.BusinessCash)
	survey.BusinessInputs = req.BusinessInputs
	survey.BusinessInventory = req.BusinessInventory

	if err := s.groupRepo.SaveProgressSurvey(ctx, survey); err != nil {
		s.logger.Error("failed to save business progress survey",
			zap.String("group_id", groupID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save progress survey")
	}
	return ToBusinessSurveyResponse(survey), nil
}

// ListProgressSurveys returns the group's progress survey history
func (s *BusinessService) ListProgressSurveys(ctx context.Context, groupID uuid.UUID) ([]*BusinessSurveyResponse, error) {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return nil, err
	}

	surveys, err := s.groupRepo.FindProgressSurveys(ctx, groupID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load progress surveys")
	}

	responses := make([]*BusinessSurveyResponse, len(surveys))
	for i, survey := range surveys {
		responses[i] = ToBusinessSurveyResponse(survey)
	}
	return responses, nil
}

func (s *BusinessService) buildFilter(filter BusinessGroupListFilter) group.BusinessGroupFilter {
	domainFilter := group.NewBusinessGroupFilter()
	domainFilter.Keyword = filter.Search
	if filter.Health != "" {
		health := group.BusinessHealth(filter.Health)
		domainFilter.Health = &health
	}
	if filter.Participation != "" {
		participation := group.ParticipationStatus(filter.Participation)
		domainFilter.Participation = &participation
	}
	if filter.BusinessType != "" {
		businessType := group.BusinessType(filter.BusinessType)
		domainFilter.BusinessType = &businessType
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	return domainFilter
}

func (s *BusinessService) transition(ctx context.Context, id uuid.UUID, fn func(*group.BusinessGroup) error) (*BusinessGroupResponse, error) {
	g, err := s.findGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(g); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("INVALID_STATE", "Business group cannot make this transition from its current state")
		}
		return nil, err
	}

	if err := s.groupRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update business group")
	}
	return ToBusinessGroupResponse(g), nil
}

func (s *BusinessService) findGroup(ctx context.Context, id uuid.UUID) (*group.BusinessGroup, error) {
	g, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Business group not found")
		}
		return nil, err
	}
	return g, nil
}

func (s *BusinessService) loadMembers(ctx context.Context, g *group.BusinessGroup) error {
	members, err := s.groupRepo.LoadMembers(ctx, g.ID)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to load group members")
	}
	g.Members = members
	g.GroupSize = g.ActiveMemberCount()
	return nil
}

func (s *BusinessService) ensureHouseholdExists(ctx context.Context, householdID uuid.UUID) error {
	if _, err := s.householdRepo.FindByID(ctx, householdID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Household not found")
		}
		return err
	}
	return nil
}

func (s *BusinessService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish business group events", zap.Error(err))
	}
}
