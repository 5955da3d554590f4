package household

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/geography"
	"github.com/upg/backend/internal/domain/household"
	"github.com/upg/backend/internal/domain/shared"
)

// Service manages household registration, member rosters, and PPI records
type Service struct {
	householdRepo household.HouseholdRepository
	villageRepo   geography.VillageRepository
	eventBus      shared.EventPublisher
	logger        *zap.Logger
}

// NewService creates a new household service
func NewService(
	householdRepo household.HouseholdRepository,
	villageRepo geography.VillageRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		householdRepo: householdRepo,
		villageRepo:   villageRepo,
		eventBus:      eventBus,
		logger:        logger,
	}
}

// RegisterHousehold registers a new household in a village
func (s *Service) RegisterHousehold(ctx context.Context, req RegisterHouseholdRequest) (*HouseholdResponse, error) {
	if _, err := s.villageRepo.FindByID(ctx, req.VillageID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Village not found")
		}
		return nil, err
	}

	if req.NationalID != "" {
		if existing, err := s.householdRepo.FindByNationalID(ctx, req.NationalID); err == nil && existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A household with this national ID is already registered")
		}
	}

	h, err := household.NewHousehold(req.Name, req.VillageID, req.CreatedBy)
	if err != nil {
		return nil, err
	}

	h.NationalID = req.NationalID
	h.PhoneNumber = req.PhoneNumber

	if req.Head != nil {
		err := h.SetHead(
			req.Head.FirstName, req.Head.MiddleName, req.Head.LastName,
			household.Gender(req.Head.Gender), req.Head.DateOfBirth,
			req.Head.IDNumber, req.Head.PhoneNumber,
		)
		if err != nil {
			return nil, err
		}
	}
	if req.MonthlyIncome != nil {
		if err := h.SetMonthlyIncome(*req.MonthlyIncome); err != nil {
			return nil, err
		}
	}
	if req.GPSLatitude != nil && req.GPSLongitude != nil {
		if err := h.SetGPS(*req.GPSLatitude, *req.GPSLongitude); err != nil {
			return nil, err
		}
	}
	if req.ConsentGiven {
		h.GiveConsent()
	}

	if err := s.householdRepo.Create(ctx, h); err != nil {
		s.logger.Error("failed to register household", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register household")
	}

	s.publishEvents(ctx, h.GetDomainEvents())
	h.ClearDomainEvents()

	s.logger.Info("household registered",
		zap.String("household_id", h.ID.String()),
		zap.String("village_id", req.VillageID.String()))

	return ToHouseholdResponse(h), nil
}

// GetHousehold retrieves a household with its member roster
func (s *Service) GetHousehold(ctx context.Context, id uuid.UUID) (*HouseholdResponse, error) {
	h, err := s.findHousehold(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.householdRepo.LoadMembers(ctx, h); err != nil {
		s.logger.Warn("failed to load household members",
			zap.String("household_id", h.ID.String()), zap.Error(err))
	}

	return ToHouseholdResponse(h), nil
}

// ListHouseholds returns households matching the filter with a total count
func (s *Service) ListHouseholds(ctx context.Context, filter HouseholdListFilter) ([]*HouseholdResponse, int64, error) {
	domainFilter := household.NewHouseholdFilter()
	domainFilter.Keyword = filter.Search
	domainFilter.VillageID = filter.VillageID
	domainFilter.HasConsent = filter.HasConsent
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	households, total, err := s.householdRepo.FindAll(ctx, domainFilter)
	if err != nil {
		s.logger.Error("failed to list households", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list households")
	}

	return ToHouseholdResponses(households), total, nil
}

// UpdateHousehold modifies household attributes
func (s *Service) UpdateHousehold(ctx context.Context, id uuid.UUID, req UpdateHouseholdRequest) (*HouseholdResponse, error) {
	h, err := s.findHousehold(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MonthlyIncome != nil {
		if err := h.SetMonthlyIncome(*req.MonthlyIncome); err != nil {
			return nil, err
		}
	}
	if req.Assets != nil {
		h.SetAssets(req.Assets)
	}
	if req.HasElectricity != nil || req.HasCleanWater != nil {
		electricity := h.HasElectricity
		water := h.HasCleanWater
		if req.HasElectricity != nil {
			electricity = *req.HasElectricity
		}
		if req.HasCleanWater != nil {
			water = *req.HasCleanWater
		}
		h.SetInfrastructure(electricity, water)
	}
	if req.GPSLatitude != nil && req.GPSLongitude != nil {
		if err := h.SetGPS(*req.GPSLatitude, *req.GPSLongitude); err != nil {
			return nil, err
		}
	}
	if req.ConsentGiven != nil {
		if *req.ConsentGiven {
			h.GiveConsent()
		} else {
			h.WithdrawConsent()
		}
	}
	if req.Head != nil {
		err := h.SetHead(
			req.Head.FirstName, req.Head.MiddleName, req.Head.LastName,
			household.Gender(req.Head.Gender), req.Head.DateOfBirth,
			req.Head.IDNumber, req.Head.PhoneNumber,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := s.householdRepo.Update(ctx, h); err != nil {
		s.logger.Error("failed to update household",
			zap.String("household_id", h.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update household")
	}

	return ToHouseholdResponse(h), nil
}

// DeleteHousehold removes a household
func (s *Service) DeleteHousehold(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findHousehold(ctx, id); err != nil {
		return err
	}

	if err := s.householdRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete household",
			zap.String("household_id", id.String()), zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete household")
	}

	return nil
}

// AddMember adds a member to the household roster
func (s *Service) AddMember(ctx context.Context, householdID uuid.UUID, req AddMemberRequest) (*HouseholdResponse, error) {
	h, err := s.findHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}

	if err := s.householdRepo.LoadMembers(ctx, h); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load household members")
	}

	_, err = h.AddMember(
		req.FirstName, req.LastName,
		household.Gender(req.Gender), req.Age,
		household.Relationship(req.Relationship),
		household.EducationLevel(req.EducationLevel),
	)
	if err != nil {
		return nil, err
	}

	if err := s.householdRepo.SaveMembers(ctx, h); err != nil {
		s.logger.Error("failed to save household members",
			zap.String("household_id", h.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save household members")
	}

	return ToHouseholdResponse(h), nil
}

// RemoveMember removes a member from the household roster
func (s *Service) RemoveMember(ctx context.Context, householdID, memberID uuid.UUID) (*HouseholdResponse, error) {
	h, err := s.findHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}

	if err := s.householdRepo.LoadMembers(ctx, h); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load household members")
	}

	if err := h.RemoveMember(memberID); err != nil {
		return nil, err
	}

	if err := s.householdRepo.SaveMembers(ctx, h); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save household members")
	}

	return ToHouseholdResponse(h), nil
}

// RecordPPIAssessment records a PPI score for the household
func (s *Service) RecordPPIAssessment(ctx context.Context, householdID uuid.UUID, req RecordPPIRequest) (*PPIAssessmentResponse, error) {
	if _, err := s.findHousehold(ctx, householdID); err != nil {
		return nil, err
	}

	assessment, err := household.NewPPIAssessment(householdID, req.Name, req.Score, req.AssessmentDate)
	if err != nil {
		return nil, err
	}

	if err := s.householdRepo.SavePPIAssessment(ctx, assessment); err != nil {
		s.logger.Error("failed to save PPI assessment",
			zap.String("household_id", householdID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save PPI assessment")
	}

	s.logger.Info("PPI assessment recorded",
		zap.String("household_id", householdID.String()),
		zap.Int("score", req.Score))

	return ToPPIAssessmentResponse(assessment), nil
}

// ListPPIAssessments returns the household's PPI history
func (s *Service) ListPPIAssessments(ctx context.Context, householdID uuid.UUID) ([]*PPIAssessmentResponse, error) {
	if _, err := s.findHousehold(ctx, householdID); err != nil {
		return nil, err
	}

	assessments, err := s.householdRepo.FindPPIAssessments(ctx, householdID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load PPI assessments")
	}

	responses := make([]*PPIAssessmentResponse, len(assessments))
	for i, a := range assessments {
		responses[i] = ToPPIAssessmentResponse(a)
	}
	return responses, nil
}

func (s *Service) findHousehold(ctx context.Context, id uuid.UUID) (*household.Household, error) {
	h, err := s.householdRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Household not found")
		}
		return nil, err
	}
	return h, nil
}

func (s *Service) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish household events", zap.Error(err))
	}
}
