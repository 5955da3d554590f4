package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/survey"
)

// SurveyModel is the persistence model for the Survey aggregate.
type SurveyModel struct {
	AuditedAggregateModel
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	Version     string `gorm:"column:form_version;type:varchar(20);not null;default:'1.0'"`
	IsActive    bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (SurveyModel) TableName() string {
	return "surveys"
}

// ToDomain converts the persistence model to a domain Survey aggregate.
func (m *SurveyModel) ToDomain() *survey.Survey {
	s := &survey.Survey{
		Name:        m.Name,
		Description: m.Description,
		Version:     m.Version,
		IsActive:    m.IsActive,
	}
	m.PopulateAuditedAggregateRoot(&s.AuditedAggregateRoot)
	return s
}

// FromDomain populates the persistence model from a domain Survey aggregate.
func (m *SurveyModel) FromDomain(s *survey.Survey) {
	m.FromDomainAuditedAggregateRoot(s.AuditedAggregateRoot)
	m.Name = s.Name
	m.Description = s.Description
	m.Version = s.Version
	m.IsActive = s.IsActive
}

// SurveyResponseModel is the persistence model for a survey response.
type SurveyResponseModel struct {
	BaseModel
	SurveyID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	SurveyVersion string                 `gorm:"type:varchar(20);not null"`
	HouseholdID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	SurveyorID    *uuid.UUID             `gorm:"type:uuid"`
	Data          map[string]interface{} `gorm:"serializer:json"`
	Completed     bool                   `gorm:"not null;default:false;index"`
	SubmittedAt   time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SurveyResponseModel) TableName() string {
	return "survey_responses"
}

// ToDomain converts the persistence model to a domain Response.
func (m *SurveyResponseModel) ToDomain() *survey.Response {
	return &survey.Response{
		BaseEntity:    m.BaseModel.ToDomain(),
		SurveyID:      m.SurveyID,
		SurveyVersion: m.SurveyVersion,
		HouseholdID:   m.HouseholdID,
		SurveyorID:    m.SurveyorID,
		Data:          m.Data,
		Completed:     m.Completed,
		SubmittedAt:   m.SubmittedAt,
	}
}

// FromDomain populates the persistence model from a domain Response.
func (m *SurveyResponseModel) FromDomain(r *survey.Response) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.SurveyID = r.SurveyID
	m.SurveyVersion = r.SurveyVersion
	m.HouseholdID = r.HouseholdID
	m.SurveyorID = r.SurveyorID
	m.Data = r.Data
	m.Completed = r.Completed
	m.SubmittedAt = r.SubmittedAt
}
