package program

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/program"
	"github.com/upg/backend/internal/domain/shared"
)

// ProgramService manages the program catalog and its lifecycle
type ProgramService struct {
	programRepo program.ProgramRepository
	eventBus    shared.EventPublisher
	logger      *zap.Logger
}

// NewProgramService creates a new program service
func NewProgramService(programRepo program.ProgramRepository, eventBus shared.EventPublisher, logger *zap.Logger) *ProgramService {
	return &ProgramService{
		programRepo: programRepo,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// CreateProgram registers a new program in draft status
func (s *ProgramService) CreateProgram(ctx context.Context, req CreateProgramRequest) (*ProgramResponse, error) {
	exists, err := s.programRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		s.logger.Error("failed to check program name", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create program")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A program with this name already exists")
	}

	p, err := program.NewProgram(req.Name, req.Description, program.ProgramType(req.Type), req.CreatedBy)
	if err != nil {
		return nil, err
	}

	if req.Cycle != "" {
		if err := p.SetCycle(req.Cycle); err != nil {
			return nil, err
		}
	}
	if req.Budget != nil {
		if err := p.SetBudget(*req.Budget); err != nil {
			return nil, err
		}
	}
	if req.TargetBeneficiaries > 0 {
		if err := p.SetTargets(req.TargetBeneficiaries); err != nil {
			return nil, err
		}
	}
	if req.StartDate != nil && req.EndDate != nil {
		if err := p.SetSchedule(*req.StartDate, *req.EndDate); err != nil {
			return nil, err
		}
	}
	if req.County != "" || req.SubCounty != "" {
		p.SetLocation(req.County, req.SubCounty)
	}

	if err := s.programRepo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create program", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create program")
	}

	s.publishEvents(ctx, p.GetDomainEvents())
	p.ClearDomainEvents()

	s.logger.Info("program created",
		zap.String("program_id", p.ID.String()),
		zap.String("name", p.Name),
		zap.String("type", string(p.Type)))

	return ToProgramResponse(p), nil
}

// GetProgram retrieves a program by ID
func (s *ProgramService) GetProgram(ctx context.Context, id uuid.UUID) (*ProgramResponse, error) {
	p, err := s.findProgram(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProgramResponse(p), nil
}

// ListPrograms returns programs matching the filter with a total count
func (s *ProgramService) ListPrograms(ctx context.Context, filter ProgramListFilter) ([]*ProgramResponse, int64, error) {
	domainFilter := program.NewProgramFilter()
	domainFilter.Keyword = filter.Search
	if filter.Status != "" {
		status := program.ProgramStatus(filter.Status)
		domainFilter.Status = &status
	}
	if filter.Type != "" {
		programType := program.ProgramType(filter.Type)
		domainFilter.Type = &programType
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	programs, total, err := s.programRepo.FindAll(ctx, domainFilter)
	if err != nil {
		s.logger.Error("failed to list programs", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list programs")
	}

	return ToProgramResponses(programs), total, nil
}

// UpdateProgram modifies program details
func (s *ProgramService) UpdateProgram(ctx context.Context, id uuid.UUID, req UpdateProgramRequest) (*ProgramResponse, error) {
	p, err := s.findProgram(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		p.Description = *req.Description
		p.Touch()
	}
	if req.Cycle != nil {
		if err := p.SetCycle(*req.Cycle); err != nil {
			return nil, err
		}
	}
	if req.Budget != nil {
		if err := p.SetBudget(*req.Budget); err != nil {
			return nil, err
		}
	}
	if req.TargetBeneficiaries != nil {
		if err := p.SetTargets(*req.TargetBeneficiaries); err != nil {
			return nil, err
		}
	}
	if req.StartDate != nil && req.EndDate != nil {
		if err := p.SetSchedule(*req.StartDate, *req.EndDate); err != nil {
			return nil, err
		}
	}
	if req.County != nil || req.SubCounty != nil {
		county := p.County
		subCounty := p.SubCounty
		if req.County != nil {
			county = *req.County
		}
		if req.SubCounty != nil {
			subCounty = *req.SubCounty
		}
		p.SetLocation(county, subCounty)
	}

	if err := s.programRepo.Update(ctx, p); err != nil {
		s.logger.Error("failed to update program", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update program")
	}

	return ToProgramResponse(p), nil
}

// ActivateProgram opens a program for participation
func (s *ProgramService) ActivateProgram(ctx context.Context, id uuid.UUID) (*ProgramResponse, error) {
	return s.transition(ctx, id, (*program.Program).Activate)
}

// SuspendProgram pauses an active program
func (s *ProgramService) SuspendProgram(ctx context.Context, id uuid.UUID) (*ProgramResponse, error) {
	return s.transition(ctx, id, (*program.Program).Suspend)
}

// CompleteProgram closes out a program
func (s *ProgramService) CompleteProgram(ctx context.Context, id uuid.UUID) (*ProgramResponse, error) {
	return s.transition(ctx, id, (*program.Program).Complete)
}

// CancelProgram cancels a program
func (s *ProgramService) CancelProgram(ctx context.Context, id uuid.UUID) (*ProgramResponse, error) {
	return s.transition(ctx, id, (*program.Program).Cancel)
}

// CloseApplications stops the program from accepting new applications
func (s *ProgramService) CloseApplications(ctx context.Context, id uuid.UUID) (*ProgramResponse, error) {
	p, err := s.findProgram(ctx, id)
	if err != nil {
		return nil, err
	}

	p.CloseApplications()

	if err := s.programRepo.Update(ctx, p); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update program")
	}

	return ToProgramResponse(p), nil
}

func (s *ProgramService) transition(ctx context.Context, id uuid.UUID, fn func(*program.Program) error) (*ProgramResponse, error) {
	p, err := s.findProgram(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(p); err != nil {
		return nil, err
	}

	if err := s.programRepo.Update(ctx, p); err != nil {
		s.logger.Error("failed to update program status",
			zap.String("program_id", p.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update program")
	}

	s.publishEvents(ctx, p.GetDomainEvents())
	p.ClearDomainEvents()

	s.logger.Info("program status changed",
		zap.String("program_id", p.ID.String()),
		zap.String("status", string(p.Status)))

	return ToProgramResponse(p), nil
}

func (s *ProgramService) findProgram(ctx context.Context, id uuid.UUID) (*program.Program, error) {
	p, err := s.programRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Program not found")
		}
		return nil, err
	}
	return p, nil
}

func (s *ProgramService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish program events", zap.Error(err))
	}
}
