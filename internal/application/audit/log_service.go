package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/audit"
	"github.com/upg/backend/internal/domain/shared"
)

// LogService writes and queries the append-only audit trail
type LogService struct {
	logRepo audit.LogRepository
	logger  *zap.Logger
}

// NewLogService creates a new audit log service
func NewLogService(logRepo audit.LogRepository, logger *zap.Logger) *LogService {
	return &LogService{logRepo: logRepo, logger: logger}
}

// Record appends one audit entry. Failures are logged but never surfaced
// to the caller's request path.
func (s *LogService) Record(ctx context.Context, req RecordEntryRequest) (*LogEntryResponse, error) {
	entry, err := audit.NewLogEntry(audit.Action(req.Action), req.UserID)
	if err != nil {
		return nil, err
	}
	entry.SetTarget(req.ModelName, req.ObjectID, req.ObjectRef)
	entry.SetRequest(req.IPAddress, req.UserAgent, req.RequestPath, req.RequestMethod)
	if len(req.Changes) > 0 {
		entry.SetChanges(req.Changes)
	}
	if len(req.AdditionalData) > 0 {
		entry.SetAdditionalData(req.AdditionalData)
	}
	if req.ErrorMessage != "" {
		entry.MarkFailed(req.ErrorMessage)
	}

	if err := s.logRepo.Append(ctx, entry); err != nil {
		s.logger.Error("failed to append audit entry",
			zap.String("action", req.Action),
			zap.String("model", req.ModelName),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record audit entry")
	}
	return ToLogEntryResponse(entry), nil
}

// ListEntries queries the audit trail
func (s *LogService) ListEntries(ctx context.Context, filter LogListFilter) ([]*LogEntryResponse, int64, error) {
	domainFilter := audit.NewLogFilter()
	if filter.Action != "" {
		action := audit.Action(filter.Action)
		if !action.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_AUDIT_ACTION", "invalid audit action: "+filter.Action)
		}
		domainFilter.Action = &action
	}
	domainFilter.ModelName = filter.ModelName
	domainFilter.From = filter.From
	domainFilter.To = filter.To
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	var (
		entries []*audit.LogEntry
		total   int64
		err     error
	)
	if filter.UserID != nil {
		entries, total, err = s.logRepo.FindByUser(ctx, *filter.UserID, domainFilter)
	} else {
		entries, total, err = s.logRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to query audit trail")
	}
	return ToLogEntryResponses(entries), total, nil
}

// ObjectHistory returns every entry recorded against one object
func (s *LogService) ObjectHistory(ctx context.Context, modelName, objectID string) ([]*LogEntryResponse, error) {
	entries, err := s.logRepo.FindByModel(ctx, modelName, objectID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to query audit trail")
	}
	return ToLogEntryResponses(entries), nil
}

// PurgeBefore removes entries older than the retention cutoff
func (s *LogService) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if cutoff.After(time.Now().UTC()) {
		return 0, shared.NewDomainError("INVALID_CUTOFF", "purge cutoff cannot be in the future")
	}

	removed, err := s.logRepo.Purge(ctx, cutoff)
	if err != nil {
		s.logger.Error("failed to purge audit entries", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to purge audit entries")
	}
	s.logger.Info("purged audit entries",
		zap.Int64("removed", removed),
		zap.Time("before", cutoff))
	return removed, nil
}

// RecordLogin captures a successful or failed login attempt
func (s *LogService) RecordLogin(ctx context.Context, userID *uuid.UUID, ip, userAgent string, failureReason string) {
	req := RecordEntryRequest{
		Action:       string(audit.ActionLogin),
		UserID:       userID,
		IPAddress:    ip,
		UserAgent:    userAgent,
		ErrorMessage: failureReason,
	}
	if _, err := s.Record(ctx, req); err != nil {
		s.logger.Warn("login audit entry dropped", zap.Error(err))
	}
}
