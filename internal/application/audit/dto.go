package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/audit"
)

// SetConfigurationRequest creates or updates a typed setting
type SetConfigurationRequest struct {
	Key         string `json:"key" binding:"required,max=100"`
	Value       string `json:"value"`
	SettingType string `json:"setting_type" binding:"omitempty,oneof=string integer boolean json file"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"omitempty,max=50"`
	IsPublic    bool   `json:"is_public"`

	ActorID *uuid.UUID `json:"-"`
}

// UpdateConfigurationRequest changes the value of an existing setting
type UpdateConfigurationRequest struct {
	Value       string  `json:"value" binding:"required"`
	Description *string `json:"description"`
	Category    *string `json:"category" binding:"omitempty,max=50"`
	IsPublic    *bool   `json:"is_public"`

	ActorID *uuid.UUID `json:"-"`
}

// RecordEntryRequest captures one auditable action
type RecordEntryRequest struct {
	Action    string     `json:"action" binding:"required"`
	UserID    *uuid.UUID `json:"user_id"`
	ModelName string     `json:"model_name"`
	ObjectID  string     `json:"object_id"`
	ObjectRef string     `json:"object_ref"`

	IPAddress     string `json:"ip_address"`
	UserAgent     string `json:"user_agent"`
	RequestPath   string `json:"request_path"`
	RequestMethod string `json:"request_method"`

	Changes        map[string]interface{} `json:"changes"`
	AdditionalData map[string]interface{} `json:"additional_data"`

	ErrorMessage string `json:"error_message"`
}

// LogListFilter narrows audit trail queries
type LogListFilter struct {
	Action    string     `form:"action"`
	ModelName string     `form:"model_name"`
	UserID    *uuid.UUID `form:"user_id"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// ConfigurationResponse is the API view of a setting
type ConfigurationResponse struct {
	ID          uuid.UUID   `json:"id"`
	Key         string      `json:"key"`
	Value       string      `json:"value"`
	TypedValue  interface{} `json:"typed_value"`
	SettingType string      `json:"setting_type"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category"`
	IsPublic    bool        `json:"is_public"`
	IsEditable  bool        `json:"is_editable"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// LogEntryResponse is the API view of one audit entry
type LogEntryResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Action    string     `json:"action"`
	ModelName string     `json:"model_name,omitempty"`
	ObjectID  string     `json:"object_id,omitempty"`
	ObjectRef string     `json:"object_ref,omitempty"`

	IPAddress     string `json:"ip_address,omitempty"`
	RequestPath   string `json:"request_path,omitempty"`
	RequestMethod string `json:"request_method,omitempty"`

	Changes        map[string]interface{} `json:"changes,omitempty"`
	AdditionalData map[string]interface{} `json:"additional_data,omitempty"`

	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// ToConfigurationResponse converts a configuration to its API view
func ToConfigurationResponse(c *audit.Configuration) *ConfigurationResponse {
	return &ConfigurationResponse{
		ID:          c.ID,
		Key:         c.Key,
		Value:       c.Value,
		TypedValue:  c.TypedValue(),
		SettingType: string(c.SettingType),
		Description: c.Description,
		Category:    c.Category,
		IsPublic:    c.IsPublic,
		IsEditable:  c.IsEditable,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToConfigurationResponses converts a list of configurations
func ToConfigurationResponses(configs []*audit.Configuration) []*ConfigurationResponse {
	responses := make([]*ConfigurationResponse, len(configs))
	for i, c := range configs {
		responses[i] = ToConfigurationResponse(c)
	}
	return responses
}

// ToLogEntryResponse converts an audit entry to its API view
func ToLogEntryResponse(e *audit.LogEntry) *LogEntryResponse {
	return &LogEntryResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		Action:         string(e.Action),
		ModelName:      e.ModelName,
		ObjectID:       e.ObjectID,
		ObjectRef:      e.ObjectRef,
		IPAddress:      e.IPAddress,
		RequestPath:    e.RequestPath,
		RequestMethod:  e.RequestMethod,
		Changes:        e.Changes,
		AdditionalData: e.AdditionalData,
		Success:        e.Success,
		ErrorMessage:   e.ErrorMessage,
		Timestamp:      e.Timestamp,
	}
}

// ToLogEntryResponses converts a list of audit entries
func ToLogEntryResponses(entries []*audit.LogEntry) []*LogEntryResponse {
	responses := make([]*LogEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToLogEntryResponse(e)
	}
	return responses
}
