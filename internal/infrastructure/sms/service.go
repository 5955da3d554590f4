package sms

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/notification"
	"github.com/upg/backend/internal/infrastructure/config"
)

// maxMessageLength is the single-segment GSM message limit. Longer messages
// are truncated rather than split into multiple segments.
const maxMessageLength = 160

// Service sends SMS messages and records every attempt in the delivery log.
type Service struct {
	provider Provider
	logs     notification.SMSLogRepository
	logger   *zap.Logger
}

// NewService creates an SMS service with the given provider
func NewService(provider Provider, logs notification.SMSLogRepository, logger *zap.Logger) *Service {
	return &Service{
		provider: provider,
		logs:     logs,
		logger:   logger,
	}
}

// NewServiceFromConfig picks the provider named in the configuration
func NewServiceFromConfig(cfg config.SMSConfig, logs notification.SMSLogRepository, logger *zap.Logger) *Service {
	var provider Provider
	switch cfg.Provider {
	case "africastalking":
		provider = NewAfricasTalkingProvider(cfg)
	default:
		provider = NewConsoleProvider(logger)
	}
	return NewService(provider, logs, logger)
}

// SendOptions carries optional links recorded on the delivery log entry
type SendOptions struct {
	HouseholdID *uuid.UUID
	TrainingID  *uuid.UUID
	MentorID    *uuid.UUID
}

// Send normalizes the phone number, truncates the message to a single
// segment, delivers it through the provider and logs the attempt. A failed
// delivery is logged and returned as an error.
func (s *Service) Send(ctx context.Context, phoneNumber, message string, opts SendOptions) error {
	normalized, err := NormalizePhoneNumber(phoneNumber)
	if err != nil {
		return err
	}

	message = TruncateMessage(message)

	sendErr := s.provider.Send(ctx, normalized, message)

	entry, logErr := notification.NewSMSLog(normalized, message, s.provider.Name(), sendErr == nil)
	if logErr == nil {
		if sendErr != nil {
			entry.SetError(sendErr.Error())
		}
		if opts.HouseholdID != nil {
			entry.LinkHousehold(*opts.HouseholdID)
		}
		if opts.TrainingID != nil {
			entry.LinkTraining(*opts.TrainingID)
		}
		if opts.MentorID != nil {
			entry.LinkMentor(*opts.MentorID)
		}
		if err := s.logs.Save(ctx, entry); err != nil {
			s.logger.Error("failed to record sms delivery log",
				zap.String("to", normalized),
				zap.Error(err),
			)
		}
	}

	if sendErr != nil {
		s.logger.Warn("sms delivery failed",
			zap.String("to", normalized),
			zap.String("provider", s.provider.Name()),
			zap.Error(sendErr),
		)
		return sendErr
	}

	s.logger.Debug("sms sent",
		zap.String("to", normalized),
		zap.String("provider", s.provider.Name()),
	)
	return nil
}

// SendBulk sends the same message to many recipients, continuing past
// individual failures. It returns the number of successful deliveries.
func (s *Service) SendBulk(ctx context.Context, phoneNumbers []string, message string, opts SendOptions) (int, error) {
	var sent int
	var lastErr error
	for _, number := range phoneNumbers {
		if err := s.Send(ctx, number, message, opts); err != nil {
			lastErr = err
			continue
		}
		sent++
	}
	if sent == 0 && lastErr != nil {
		return 0, fmt.Errorf("all %d deliveries failed: %w", len(phoneNumbers), lastErr)
	}
	return sent, nil
}

// NormalizePhoneNumber converts Kenyan phone numbers to E.164 form:
//
//	0712345678   -> +254712345678
//	254712345678 -> +254712345678
//	712345678    -> +254712345678
//	+254712345678 stays as is
func NormalizePhoneNumber(phone string) (string, error) {
	var digits strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()

	switch {
	case strings.HasPrefix(cleaned, "254") && len(cleaned) == 12:
		return "+" + cleaned, nil
	case strings.HasPrefix(cleaned, "0") && len(cleaned) == 10:
		return "+254" + cleaned[1:], nil
	case len(cleaned) == 9:
		return "+254" + cleaned, nil
	default:
		return "", fmt.Errorf("unrecognized phone number format: %q", phone)
	}
}

// TruncateMessage shortens a message to fit a single SMS segment. The cut is
// made on rune boundaries so multibyte characters are never split.
func TruncateMessage(message string) string {
	runes := []rune(message)
	if len(runes) <= maxMessageLength {
		return message
	}
	return string(runes[:maxMessageLength-3]) + "..."
}
