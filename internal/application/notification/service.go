package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/notification"
	"github.com/upg/backend/internal/domain/shared"
)

// Service queries the SMS delivery audit trail
type Service struct {
	logRepo notification.SMSLogRepository
	logger  *zap.Logger
}

// NewService creates a new notification query service
func NewService(logRepo notification.SMSLogRepository, logger *zap.Logger) *Service {
	return &Service{logRepo: logRepo, logger: logger}
}

// ListLogs returns delivery attempts, optionally narrowed to one number
func (s *Service) ListLogs(ctx context.Context, filter LogListFilter) ([]*SMSLogResponse, int64, error) {
	domainFilter := notification.NewSMSLogFilter()
	domainFilter.SuccessOnly = filter.SuccessOnly
	domainFilter.Provider = filter.Provider
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	var (
		logs  []*notification.SMSLog
		total int64
		err   error
	)
	if filter.PhoneNumber != "" {
		logs, total, err = s.logRepo.FindByPhone(ctx, filter.PhoneNumber, domainFilter)
	} else {
		logs, total, err = s.logRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list SMS logs")
	}
	return ToSMSLogResponses(logs), total, nil
}

// HouseholdMessages returns every message sent to one household
func (s *Service) HouseholdMessages(ctx context.Context, householdID uuid.UUID) ([]*SMSLogResponse, error) {
	logs, err := s.logRepo.FindByHousehold(ctx, householdID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list household messages")
	}
	return ToSMSLogResponses(logs), nil
}

// DeliveryStats summarizes delivery outcomes across the whole log
func (s *Service) DeliveryStats(ctx context.Context) (*DeliveryStatsResponse, error) {
	delivered, err := s.logRepo.CountBySuccess(ctx, true)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute delivery stats")
	}
	failed, err := s.logRepo.CountBySuccess(ctx, false)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute delivery stats")
	}

	stats := &DeliveryStatsResponse{Delivered: delivered, Failed: failed}
	if total := delivered + failed; total > 0 {
		stats.SuccessRate = float64(delivered) / float64(total)
	}
	return stats, nil
}
