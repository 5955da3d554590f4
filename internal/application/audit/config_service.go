package audit

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/audit"
	"github.com/upg/backend/internal/domain/shared"
)

// ConfigService manages the typed system-configuration store
type ConfigService struct {
	configRepo audit.ConfigurationRepository
	logger     *zap.Logger
}

// NewConfigService creates a new configuration service
func NewConfigService(configRepo audit.ConfigurationRepository, logger *zap.Logger) *ConfigService {
	return &ConfigService{configRepo: configRepo, logger: logger}
}

// SetConfiguration creates a setting, or updates its value when the key
// already exists
func (s *ConfigService) SetConfiguration(ctx context.Context, req SetConfigurationRequest) (*ConfigurationResponse, error) {
	existing, err := s.configRepo.FindByKey(ctx, req.Key)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if err := existing.SetValue(req.Value, req.ActorID); err != nil {
			return nil, err
		}
		existing.SetMetadata(req.Description, req.Category, req.IsPublic)
		if err := s.configRepo.Update(ctx, existing); err != nil {
			s.logger.Error("failed to update configuration", zap.String("key", req.Key), zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update configuration")
		}
		return ToConfigurationResponse(existing), nil
	}

	config, err := audit.NewConfiguration(req.Key, req.Value, audit.SettingType(req.SettingType), req.ActorID)
	if err != nil {
		return nil, err
	}
	config.SetMetadata(req.Description, req.Category, req.IsPublic)

	if err := s.configRepo.Create(ctx, config); err != nil {
		s.logger.Error("failed to create configuration", zap.String("key", req.Key), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create configuration")
	}

	s.logger.Info("configuration created",
		zap.String("key", config.Key),
		zap.String("type", string(config.SettingType)))
	return ToConfigurationResponse(config), nil
}

// UpdateConfiguration changes the value of an existing setting
func (s *ConfigService) UpdateConfiguration(ctx context.Context, key string, req UpdateConfigurationRequest) (*ConfigurationResponse, error) {
	config, err := s.findConfiguration(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := config.SetValue(req.Value, req.ActorID); err != nil {
		return nil, err
	}

	description := config.Description
	if req.Description != nil {
		description = *req.Description
	}
	category := config.Category
	if req.Category != nil {
		category = *req.Category
	}
	isPublic := config.IsPublic
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	config.SetMetadata(description, category, isPublic)

	if err := s.configRepo.Update(ctx, config); err != nil {
		s.logger.Error("failed to update configuration", zap.String("key", key), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update configuration")
	}
	return ToConfigurationResponse(config), nil
}

// GetConfiguration fetches one setting by key
func (s *ConfigService) GetConfiguration(ctx context.Context, key string) (*ConfigurationResponse, error) {
	config, err := s.findConfiguration(ctx, key)
	if err != nil {
		return nil, err
	}
	return ToConfigurationResponse(config), nil
}

// ListConfigurations returns every setting, optionally narrowed to a category
func (s *ConfigService) ListConfigurations(ctx context.Context, category string) ([]*ConfigurationResponse, error) {
	var (
		configs []*audit.Configuration
		err     error
	)
	if category != "" {
		configs, err = s.configRepo.FindByCategory(ctx, category)
	} else {
		configs, err = s.configRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list configurations")
	}
	return ToConfigurationResponses(configs), nil
}

// ListPublicConfigurations returns the settings exposed to unauthenticated
// clients
func (s *ConfigService) ListPublicConfigurations(ctx context.Context) ([]*ConfigurationResponse, error) {
	configs, err := s.configRepo.FindPublic(ctx)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list configurations")
	}
	return ToConfigurationResponses(configs), nil
}

// DeleteConfiguration removes a setting. Read-only settings cannot be
// deleted.
func (s *ConfigService) DeleteConfiguration(ctx context.Context, key string) error {
	config, err := s.findConfiguration(ctx, key)
	if err != nil {
		return err
	}
	if !config.IsEditable {
		return shared.NewDomainError("CONFIG_READONLY", "Configuration is not editable")
	}

	if err := s.configRepo.Delete(ctx, key); err != nil {
		s.logger.Error("failed to delete configuration", zap.String("key", key), zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete configuration")
	}
	return nil
}

// BoolSetting reads a boolean setting, falling back when the key is absent
func (s *ConfigService) BoolSetting(ctx context.Context, key string, fallback bool) bool {
	config, err := s.configRepo.FindByKey(ctx, key)
	if err != nil || config == nil {
		return fallback
	}
	return config.BoolValue()
}

// IntSetting reads an integer setting, falling back when the key is absent
func (s *ConfigService) IntSetting(ctx context.Context, key string, fallback int) int {
	config, err := s.configRepo.FindByKey(ctx, key)
	if err != nil || config == nil {
		return fallback
	}
	return config.IntValue()
}

func (s *ConfigService) findConfiguration(ctx context.Context, key string) (*audit.Configuration, error) {
	config, err := s.configRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Configuration not found")
		}
		return nil, err
	}
	return config, nil
}
