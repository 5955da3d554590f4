package training

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/household"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/training"
)

// MentoringService records mentor field activity: household visits, phone
// nudges and periodic activity reports
type MentoringService struct {
	mentoringRepo training.MentoringRepository
	householdRepo household.HouseholdRepository
	logger        *zap.Logger
}

// NewMentoringService creates a new mentoring service
func NewMentoringService(
	mentoringRepo training.MentoringRepository,
	householdRepo household.HouseholdRepository,
	logger *zap.Logger,
) *MentoringService {
	return &MentoringService{
		mentoringRepo: mentoringRepo,
		householdRepo: householdRepo,
		logger:        logger,
	}
}

// RecordVisit logs a mentoring visit to a household
func (s *MentoringService) RecordVisit(ctx context.Context, req RecordVisitRequest) (*VisitResponse, error) {
	if err := s.ensureHouseholdExists(ctx, req.HouseholdID); err != nil {
		return nil, err
	}

	visitDate := req.VisitDate
	if visitDate.IsZero() {
		visitDate = time.Now()
	}

	visit, err := training.NewMentoringVisit(req.HouseholdID, req.MentorID, req.Topic,
		training.VisitType(req.VisitType), visitDate)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		visit.SetName(req.Name)
	}
	if req.Notes != "" {
		visit.SetNotes(req.Notes)
	}

	if err := s.mentoringRepo.SaveVisit(ctx, visit); err != nil {
		s.logger.Error("failed to save mentoring visit",
			zap.String("household_id", req.HouseholdID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save mentoring visit")
	}
	return ToVisitResponse(visit), nil
}

// ListVisitsByHousehold returns a household's visit history
func (s *MentoringService) ListVisitsByHousehold(ctx context.Context, householdID uuid.UUID) ([]*VisitResponse, error) {
	visits, err := s.mentoringRepo.FindVisitsByHousehold(ctx, householdID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load visits")
	}

	responses := make([]*VisitResponse, len(visits))
	for i, visit := range visits {
		responses[i] = ToVisitResponse(visit)
	}
	return responses, nil
}

// RecordNudge logs a mentor's phone call to a household
func (s *MentoringService) RecordNudge(ctx context.Context, req RecordNudgeRequest) (*NudgeResponse, error) {
	if err := s.ensureHouseholdExists(ctx, req.HouseholdID); err != nil {
		return nil, err
	}

	callDate := req.CallDate
	if callDate.IsZero() {
		callDate = time.Now()
	}

	nudge, err := training.NewPhoneNudge(req.HouseholdID, req.MentorID,
		training.NudgeType(req.NudgeType), callDate, req.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if req.SuccessfulContact != nil && !*req.SuccessfulContact {
		nudge.MarkUnreachable()
	}
	if req.Notes != "" {
		nudge.SetNotes(req.Notes)
	}

	if err := s.mentoringRepo.SaveNudge(ctx, nudge); err != nil {
		s.logger.Error("failed to save phone nudge",
			zap.String("household_id", req.HouseholdID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save phone nudge")
	}
	return ToNudgeResponse(nudge), nil
}

// ListNudgesByHousehold returns a household's nudge history
func (s *MentoringService) ListNudgesByHousehold(ctx context.Context, householdID uuid.UUID) ([]*NudgeResponse, error) {
	nudges, err := s.mentoringRepo.FindNudgesByHousehold(ctx, householdID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load nudges")
	}

	responses := make([]*NudgeResponse, len(nudges))
	for i, nudge := range nudges {
		responses[i] = ToNudgeResponse(nudge)
	}
	return responses, nil
}

// SubmitReport files a mentor's periodic activity summary. A mentor files at
// most one report per cadence and period start.
func (s *MentoringService) SubmitReport(ctx context.Context, req SubmitReportRequest) (*ReportResponse, error) {
	period := training.ReportingPeriod(req.ReportingPeriod)

	existing, err := s.mentoringRepo.FindReport(ctx, req.MentorID, period, req.PeriodStart)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check existing reports")
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A report for this period has already been filed")
	}

	report, err := training.NewMentoringReport(req.MentorID, period, req.PeriodStart, req.PeriodEnd, req.KeyActivities)
	if err != nil {
		return nil, err
	}
	if err := report.SetStatistics(req.HouseholdsVisited, req.PhoneNudgesMade, req.TrainingsConducted, req.NewHouseholdsEnrolled); err != nil {
		return nil, err
	}
	report.SetNarrative(req.ChallengesFaced, req.SuccessesAchieved, req.NextPeriodPlans)

	if err := s.mentoringRepo.SaveReport(ctx, report); err != nil {
		s.logger.Error("failed to save mentoring report",
			zap.String("mentor_id", req.MentorID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save mentoring report")
	}

	s.logger.Info("mentoring report filed",
		zap.String("mentor_id", req.MentorID.String()),
		zap.String("period", string(period)))

	return ToReportResponse(report), nil
}

// ListReportsByMentor returns a mentor's filed reports
func (s *MentoringService) ListReportsByMentor(ctx context.Context, mentorID uuid.UUID) ([]*ReportResponse, error) {
	reports, err := s.mentoringRepo.FindReportsByMentor(ctx, mentorID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load reports")
	}

	responses := make([]*ReportResponse, len(reports))
	for i, report := range reports {
		responses[i] = ToReportResponse(report)
	}
	return responses, nil
}

// MentorActivitySummary aggregates a mentor's recorded activity in a window
type MentorActivitySummary struct {
	MentorID        uuid.UUID `json:"mentor_id"`
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	VisitsMade      int       `json:"visits_made"`
	NudgesMade      int       `json:"nudges_made"`
	SuccessfulCalls int       `json:"successful_calls"`
}

// SummarizeActivity counts a mentor's visits and nudges in a time window
func (s *MentoringService) SummarizeActivity(ctx context.Context, mentorID uuid.UUID, from, to time.Time) (*MentorActivitySummary, error) {
	visits, err := s.mentoringRepo.FindVisitsByMentor(ctx, mentorID, from, to)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load visits")
	}
	nudges, err := s.mentoringRepo.FindNudgesByMentor(ctx, mentorID, from, to)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load nudges")
	}

	successful := 0
	for _, nudge := range nudges {
		if nudge.SuccessfulContact {
			successful++
		}
	}

	return &MentorActivitySummary{
		MentorID:        mentorID,
		From:            from,
		To:              to,
		VisitsMade:      len(visits),
		NudgesMade:      len(nudges),
		SuccessfulCalls: successful,
	}, nil
}

func (s *MentoringService) ensureHouseholdExists(ctx context.Context, householdID uuid.UUID) error {
	if _, err := s.householdRepo.FindByID(ctx, householdID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Household not found")
		}
		return err
	}
	return nil
}
