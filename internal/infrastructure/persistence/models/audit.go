package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/audit"
)

// ConfigurationModel is the persistence model for a system setting.
type ConfigurationModel struct {
	BaseModel
	Key         string            `gorm:"type:varchar(100);not null;uniqueIndex"`
	Value       string            `gorm:"type:text"`
	SettingType audit.SettingType `gorm:"type:varchar(20);not null"`
	Description string            `gorm:"type:text"`
	Category    string            `gorm:"type:varchar(50);not null;default:'general';index"`
	IsPublic    bool              `gorm:"not null;default:false"`
	IsEditable  bool              `gorm:"not null;default:true"`
	CreatedBy   *uuid.UUID        `gorm:"type:uuid"`
	ModifiedBy  *uuid.UUID        `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ConfigurationModel) TableName() string {
	return "system_configurations"
}

// ToDomain converts the persistence model to a domain Configuration.
func (m *ConfigurationModel) ToDomain() *audit.Configuration {
	return &audit.Configuration{
		BaseEntity:  m.BaseModel.ToDomain(),
		Key:         m.Key,
		Value:       m.Value,
		SettingType: m.SettingType,
		Description: m.Description,
		Category:    m.Category,
		IsPublic:    m.IsPublic,
		IsEditable:  m.IsEditable,
		CreatedBy:   m.CreatedBy,
		ModifiedBy:  m.ModifiedBy,
	}
}

// FromDomain populates the persistence model from a domain Configuration.
func (m *ConfigurationModel) FromDomain(c *audit.Configuration) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Key = c.Key
	m.Value = c.Value
	m.SettingType = c.SettingType
	m.Description = c.Description
	m.Category = c.Category
	m.IsPublic = c.IsPublic
	m.IsEditable = c.IsEditable
	m.CreatedBy = c.CreatedBy
	m.ModifiedBy = c.ModifiedBy
}

// AuditLogModel is the persistence model for an audit trail entry.
// Entries are immutable once written, so there is no UpdatedAt column.
type AuditLogModel struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID   `gorm:"type:uuid;index"`
	Action    audit.Action `gorm:"type:varchar(20);not null;index:idx_audit_action_ts"`
	ModelName string       `gorm:"type:varchar(100);index:idx_audit_model_ts"`
	ObjectID  string       `gorm:"type:varchar(100)"`
	ObjectRef string       `gorm:"type:varchar(200)"`

	IPAddress     string `gorm:"type:varchar(45)"`
	UserAgent     string `gorm:"type:text"`
	RequestPath   string `gorm:"type:varchar(500)"`
	RequestMethod string `gorm:"type:varchar(10)"`

	Changes        map[string]interface{} `gorm:"serializer:json"`
	AdditionalData map[string]interface{} `gorm:"serializer:json"`

	Success      bool   `gorm:"not null;default:true"`
	ErrorMessage string `gorm:"type:text"`

	Timestamp time.Time `gorm:"not null;index:idx_audit_action_ts;index:idx_audit_model_ts"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain LogEntry.
func (m *AuditLogModel) ToDomain() *audit.LogEntry {
	return &audit.LogEntry{
		ID:             m.ID,
		UserID:         m.UserID,
		Action:         m.Action,
		ModelName:      m.ModelName,
		ObjectID:       m.ObjectID,
		ObjectRef:      m.ObjectRef,
		IPAddress:      m.IPAddress,
		UserAgent:      m.UserAgent,
		RequestPath:    m.RequestPath,
		RequestMethod:  m.RequestMethod,
		Changes:        m.Changes,
		AdditionalData: m.AdditionalData,
		Success:        m.Success,
		ErrorMessage:   m.ErrorMessage,
		Timestamp:      m.Timestamp,
	}
}

// FromDomain populates the persistence model from a domain LogEntry.
func (m *AuditLogModel) FromDomain(e *audit.LogEntry) {
	m.ID = e.ID
	m.UserID = e.UserID
	m.Action = e.Action
	m.ModelName = e.ModelName
	m.ObjectID = e.ObjectID
	m.ObjectRef = e.ObjectRef
	m.IPAddress = e.IPAddress
	m.UserAgent = e.UserAgent
	m.RequestPath = e.RequestPath
	m.RequestMethod = e.RequestMethod
	m.Changes = e.Changes
	m.AdditionalData = e.AdditionalData
	m.Success = e.Success
	m.ErrorMessage = e.ErrorMessage
	m.Timestamp = e.Timestamp
}
