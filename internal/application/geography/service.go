package geography

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/geography"
	"github.com/upg/backend/internal/domain/shared"
)

// Service manages the county / sub-county / village reference hierarchy
type Service struct {
	countyRepo    geography.CountyRepository
	subCountyRepo geography.SubCountyRepository
	villageRepo   geography.VillageRepository
	logger        *zap.Logger
}

// NewService creates a new geography service
func NewService(
	countyRepo geography.CountyRepository,
	subCountyRepo geography.SubCountyRepository,
	villageRepo geography.VillageRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		countyRepo:    countyRepo,
		subCountyRepo: subCountyRepo,
		villageRepo:   villageRepo,
		logger:        logger,
	}
}

// CreateCounty registers a new county
func (s *Service) CreateCounty(ctx context.Context, req CreateCountyRequest) (*CountyResponse, error) {
	if existing, err := s.countyRepo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "County already exists")
	}

	county, err := geography.NewCounty(req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.countyRepo.Create(ctx, county); err != nil {
		s.logger.Error("failed to create county", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create county")
	}

	return ToCountyResponse(county), nil
}

// ListCounties returns every county
func (s *Service) ListCounties(ctx context.Context) ([]*CountyResponse, error) {
	counties, err := s.countyRepo.FindAll(ctx)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list counties")
	}

	responses := make([]*CountyResponse, len(counties))
	for i, c := range counties {
		responses[i] = ToCountyResponse(c)
	}
	return responses, nil
}

// CreateSubCounty registers a sub-county under an existing county
func (s *Service) CreateSubCounty(ctx context.Context, req CreateSubCountyRequest) (*SubCountyResponse, error) {
	if _, err := s.countyRepo.FindByID(ctx, req.CountyID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "County not found")
		}
		return nil, err
	}

	subCounty, err := geography.NewSubCounty(req.Name, req.CountyID)
	if err != nil {
		return nil, err
	}

	if err := s.subCountyRepo.Create(ctx, subCounty); err != nil {
		s.logger.Error("failed to create sub-county", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create sub-county")
	}

	return ToSubCountyResponse(subCounty), nil
}

// ListSubCounties returns the sub-counties of a county
func (s *Service) ListSubCounties(ctx context.Context, countyID uuid.UUID) ([]*SubCountyResponse, error) {
	subCounties, err := s.subCountyRepo.FindByCounty(ctx, countyID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list sub-counties")
	}

	responses := make([]*SubCountyResponse, len(subCounties))
	for i, sc := range subCounties {
		responses[i] = ToSubCountyResponse(sc)
	}
	return responses, nil
}

// CreateVillage registers a new village
func (s *Service) CreateVillage(ctx context.Context, req CreateVillageRequest) (*VillageResponse, error) {
	if req.SubCountyID != nil {
		if _, err := s.subCountyRepo.FindByID(ctx, *req.SubCountyID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Sub-county not found")
			}
			return nil, err
		}
	}

	village, err := geography.NewVillage(req.Name, req.SubCountyID)
	if err != nil {
		return nil, err
	}

	if req.Saturation != "" {
		village.SetSaturation(req.Saturation)
	}
	if req.DistanceToMarket > 0 {
		if err := village.SetDistanceToMarket(req.DistanceToMarket); err != nil {
			return nil, err
		}
	}
	if req.IsProgramArea != nil {
		village.SetProgramArea(*req.IsProgramArea)
	}

	if err := s.villageRepo.Create(ctx, village); err != nil {
		s.logger.Error("failed to create village", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create village")
	}

	return ToVillageResponse(village), nil
}

// GetVillage retrieves a village by ID
func (s *Service) GetVillage(ctx context.Context, id uuid.UUID) (*VillageResponse, error) {
	village, err := s.villageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Village not found")
		}
		return nil, err
	}
	return ToVillageResponse(village), nil
}

// UpdateVillage modifies village targeting attributes
func (s *Service) UpdateVillage(ctx context.Context, id uuid.UUID, req UpdateVillageRequest) (*VillageResponse, error) {
	village, err := s.villageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Village not found")
		}
		return nil, err
	}

	if req.Saturation != nil {
		village.SetSaturation(*req.Saturation)
	}
	if req.DistanceToMarket != nil {
		if err := village.SetDistanceToMarket(*req.DistanceToMarket); err != nil {
			return nil, err
		}
	}
	if req.IsProgramArea != nil {
		village.SetProgramArea(*req.IsProgramArea)
	}

	if err := s.villageRepo.Update(ctx, village); err != nil {
		s.logger.Error("failed to update village", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update village")
	}

	return ToVillageResponse(village), nil
}

// ListVillages returns villages, optionally restricted to a sub-county or
// to program target areas only
func (s *Service) ListVillages(ctx context.Context, subCountyID *uuid.UUID, programAreasOnly bool) ([]*VillageResponse, error) {
	var (
		villages []*geography.Village
		err      error
	)
	switch {
	case subCountyID != nil:
		villages, err = s.villageRepo.FindBySubCounty(ctx, *subCountyID)
	case programAreasOnly:
		villages, err = s.villageRepo.FindProgramAreas(ctx)
	default:
		villages, err = s.villageRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list villages")
	}

	return ToVillageResponses(villages), nil
}

// RecordQualifiedHouseholds updates the qualified-household tally for a village
func (s *Service) RecordQualifiedHouseholds(ctx context.Context, id uuid.UUID, count int) (*VillageResponse, error) {
	village, err := s.villageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Village not found")
		}
		return nil, err
	}

	if err := village.RecordQualifiedHouseholds(count); err != nil {
		return nil, err
	}

	if err := s.villageRepo.Update(ctx, village); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update village")
	}

	return ToVillageResponse(village), nil
}
