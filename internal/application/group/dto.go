package group

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/upg/backend/internal/domain/group"
)

// FormBusinessGroupRequest creates a business group under a program
type FormBusinessGroupRequest struct {
	Name               string             `json:"name" binding:"required,max=100"`
	ProgramID          uuid.UUID          `json:"program_id" binding:"required"`
	BusinessType       string             `json:"business_type" binding:"required,oneof=crop retail service livestock skill"`
	BusinessTypeDetail string             `json:"business_type_detail"`
	Location           string             `json:"location"`
	FormationDate      time.Time          `json:"formation_date"`
	Members            []GroupMemberInput `json:"members"`
	CreatedBy          uuid.UUID          `json:"-"`
}

// GroupMemberInput adds one household to a group roster
type GroupMemberInput struct {
	HouseholdID uuid.UUID `json:"household_id" binding:"required"`
	Role        string    `json:"role" binding:"required"`
}

// UpdateBusinessGroupRequest modifies business group attributes
type UpdateBusinessGroupRequest struct {
	BusinessTypeDetail *string `json:"business_type_detail"`
	Location           *string `json:"location"`
}

// RateHealthRequest records a traffic-light health rating
type RateHealthRequest struct {
	Health string `json:"health" binding:"required,oneof=red yellow green"`
}

// BusinessGroupListFilter narrows business group queries
type BusinessGroupListFilter struct {
	Search        string `form:"search"`
	Health        string `form:"health"`
	Participation string `form:"participation"`
	BusinessType  string `form:"business_type"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
}

// RecordBusinessSurveyRequest captures a business progress survey
type RecordBusinessSurveyRequest struct {
	SurveyDate        time.Time       `json:"survey_date"`
	GrantValue        decimal.Decimal `json:"grant_value"`
	GrantUsed         decimal.Decimal `json:"grant_used"`
	Profit            decimal.Decimal `json:"profit"`
	BusinessInputs    string          `json:"business_inputs"`
	BusinessInventory string          `json:"business_inventory"`
	BusinessCash      decimal.Decimal `json:"business_cash"`
	SurveyorID        *uuid.UUID      `json:"-"`
}

// FormSavingsGroupRequest creates a community savings group
type FormSavingsGroupRequest struct {
	Name            string    `json:"name" binding:"required,max=100"`
	FormationDate   time.Time `json:"formation_date"`
	Frequency       string    `json:"savings_frequency" binding:"omitempty,oneof=weekly biweekly monthly"`
	MeetingDay      string    `json:"meeting_day"`
	MeetingLocation string    `json:"meeting_location"`
	TargetMembers   int       `json:"target_members"`
	CreatedBy       uuid.UUID `json:"-"`
}

// SavingsGroupListFilter narrows savings group queries
type SavingsGroupListFilter struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
	Frequency  string `form:"frequency"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// RecordSavingRequest books a member contribution
type RecordSavingRequest struct {
	HouseholdID uuid.UUID       `json:"household_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	SavingsDate time.Time       `json:"savings_date"`
	Notes       string          `json:"notes"`
	RecordedBy  *uuid.UUID      `json:"-"`
}

// RecordSavingsSurveyRequest captures a monthly savings group snapshot
type RecordSavingsSurveyRequest struct {
	SurveyDate            time.Time       `json:"survey_date"`
	MonthRecorded         time.Time       `json:"month_recorded"`
	SavingLastMonth       decimal.Decimal `json:"saving_last_month"`
	AttendanceThisMeeting int             `json:"attendance_this_meeting"`
	SurveyorID            *uuid.UUID      `json:"-"`
}

// BusinessGroupMemberResponse is one roster entry
type BusinessGroupMemberResponse struct {
	ID          uuid.UUID `json:"id"`
	HouseholdID uuid.UUID `json:"household_id"`
	Role        string    `json:"role"`
	JoinedDate  time.Time `json:"joined_date"`
	IsActive    bool      `json:"is_active"`
}

// BusinessGroupResponse is the API representation of a business group
type BusinessGroupResponse struct {
	ID                 uuid.UUID                     `json:"id"`
	Name               string                        `json:"name"`
	ProgramID          uuid.UUID                     `json:"program_id"`
	Health             string                        `json:"health"`
	Participation      string                        `json:"participation"`
	GroupSize          int                           `json:"group_size"`
	BusinessType       string                        `json:"business_type"`
	BusinessTypeDetail string                        `json:"business_type_detail,omitempty"`
	Location           string                        `json:"location,omitempty"`
	FormationDate      time.Time                     `json:"formation_date"`
	Members            []BusinessGroupMemberResponse `json:"members,omitempty"`
	CreatedAt          time.Time                     `json:"created_at"`
	UpdatedAt          time.Time                     `json:"updated_at"`
}

// BusinessSurveyResponse is a recorded business progress survey
type BusinessSurveyResponse struct {
	ID              uuid.UUID       `json:"id"`
	BusinessGroupID uuid.UUID       `json:"business_group_id"`
	SurveyDate      time.Time       `json:"survey_date"`
	GrantValue      decimal.Decimal `json:"grant_value"`
	GrantUsed       decimal.Decimal `json:"grant_used"`
	Profit          decimal.Decimal `json:"profit"`
	BusinessCash    decimal.Decimal `json:"business_cash"`
	UtilizationRate float64         `json:"grant_utilization_rate"`
}

// SavingsGroupMemberResponse is one savings roster entry
type SavingsGroupMemberResponse struct {
	ID           uuid.UUID       `json:"id"`
	HouseholdID  uuid.UUID       `json:"household_id"`
	Role         string          `json:"role"`
	JoinedDate   time.Time       `json:"joined_date"`
	TotalSavings decimal.Decimal `json:"total_savings"`
	IsActive     bool            `json:"is_active"`
}

// SavingsGroupResponse is the API representation of a savings group
type SavingsGroupResponse struct {
	ID               uuid.UUID                    `json:"id"`
	Name             string                       `json:"name"`
	TargetMembers    int                          `json:"target_members"`
	ActiveMembers    int                          `json:"active_members"`
	SavingsToDate    decimal.Decimal              `json:"savings_to_date"`
	FormationDate    time.Time                    `json:"formation_date"`
	MeetingDay       string                       `json:"meeting_day,omitempty"`
	MeetingLocation  string                       `json:"meeting_location,omitempty"`
	SavingsFrequency string                       `json:"savings_frequency"`
	IsActive         bool                         `json:"is_active"`
	Members          []SavingsGroupMemberResponse `json:"members,omitempty"`
	BusinessGroupIDs []uuid.UUID                  `json:"business_group_ids,omitempty"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`
}

// SavingsRecordResponse is one booked contribution
type SavingsRecordResponse struct {
	ID             uuid.UUID       `json:"id"`
	SavingsGroupID uuid.UUID       `json:"savings_group_id"`
	MemberID       uuid.UUID       `json:"member_id"`
	Amount         decimal.Decimal `json:"amount"`
	SavingsDate    time.Time       `json:"savings_date"`
	Notes          string          `json:"notes,omitempty"`
}

// SavingsSurveyResponse is a recorded monthly savings snapshot
type SavingsSurveyResponse struct {
	ID                    uuid.UUID       `json:"id"`
	SavingsGroupID        uuid.UUID       `json:"savings_group_id"`
	SurveyDate            time.Time       `json:"survey_date"`
	MonthRecorded         time.Time       `json:"month_recorded"`
	SavingLastMonth       decimal.Decimal `json:"saving_last_month"`
	AttendanceThisMeeting int             `json:"attendance_this_meeting"`
}

// ToBusinessGroupResponse converts a business group to its API representation
func ToBusinessGroupResponse(g *group.BusinessGroup) *BusinessGroupResponse {
	members := make([]BusinessGroupMemberResponse, len(g.Members))
	for i, m := range g.Members {
		members[i] = BusinessGroupMemberResponse{
			ID:          m.ID,
			HouseholdID: m.HouseholdID,
			Role:        string(m.Role),
			JoinedDate:  m.JoinedDate,
			IsActive:    m.IsActive,
		}
	}
	return &BusinessGroupResponse{
		ID:                 g.ID,
		Name:               g.Name,
		ProgramID:          g.ProgramID,
		Health:             string(g.Health),
		Participation:      string(g.Participation),
		GroupSize:          g.GroupSize,
		BusinessType:       string(g.BusinessType),
		BusinessTypeDetail: g.BusinessTypeDetail,
		Location:           g.Location,
		FormationDate:      g.FormationDate,
		Members:            members,
		CreatedAt:          g.CreatedAt,
		UpdatedAt:          g.UpdatedAt,
	}
}

// ToBusinessGroupResponses converts a list of business groups
func ToBusinessGroupResponses(groups []*group.BusinessGroup) []*BusinessGroupResponse {
	responses := make([]*BusinessGroupResponse, len(groups))
	for i, g := range groups {
		responses[i] = ToBusinessGroupResponse(g)
	}
	return responses
}

// ToBusinessSurveyResponse converts a progress survey
func ToBusinessSurveyResponse(s *group.BusinessProgressSurvey) *BusinessSurveyResponse {
	return &BusinessSurveyResponse{
		ID:              s.ID,
		BusinessGroupID: s.BusinessGroupID,
		SurveyDate:      s.SurveyDate,
		GrantValue:      s.GrantValue.Amount(),
		GrantUsed:       s.GrantUsed.Amount(),
		Profit:          s.Profit.Amount(),
		BusinessCash:    s.BusinessCash.Amount(),
		UtilizationRate: s.GrantUtilizationRate(),
	}
}

// ToSavingsGroupResponse converts a savings group to its API representation
func ToSavingsGroupResponse(g *group.SavingsGroup) *SavingsGroupResponse {
	members := make([]SavingsGroupMemberResponse, len(g.Members))
	for i, m := range g.Members {
		members[i] = SavingsGroupMemberResponse{
			ID:           m.ID,
			HouseholdID:  m.HouseholdID,
			Role:         string(m.Role),
			JoinedDate:   m.JoinedDate,
			TotalSavings: m.TotalSavings.Amount(),
			IsActive:     m.IsActive,
		}
	}
	return &SavingsGroupResponse{
		ID:               g.ID,
		Name:             g.Name,
		TargetMembers:    g.TargetMembers,
		ActiveMembers:    g.ActiveMemberCount(),
		SavingsToDate:    g.SavingsToDate.Amount(),
		FormationDate:    g.FormationDate,
		MeetingDay:       g.MeetingDay,
		MeetingLocation:  g.MeetingLocation,
		SavingsFrequency: string(g.SavingsFrequency),
		IsActive:         g.IsActive,
		Members:          members,
		BusinessGroupIDs: g.BusinessGroupIDs,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}
}

// ToSavingsGroupResponses converts a list of savings groups
func ToSavingsGroupResponses(groups []*group.SavingsGroup) []*SavingsGroupResponse {
	responses := make([]*SavingsGroupResponse, len(groups))
	for i, g := range groups {
		responses[i] = ToSavingsGroupResponse(g)
	}
	return responses
}

// ToSavingsRecordResponse converts a booked contribution
func ToSavingsRecordResponse(r *group.SavingsRecord) *SavingsRecordResponse {
	return &SavingsRecordResponse{
		ID:             r.ID,
		SavingsGroupID: r.SavingsGroupID,
		MemberID:       r.MemberID,
		Amount:         r.Amount.Amount(),
		SavingsDate:    r.SavingsDate,
		Notes:          r.Notes,
	}
}

// ToSavingsSurveyResponse converts a monthly savings snapshot
func ToSavingsSurveyResponse(s *group.SavingsProgressSurvey) *SavingsSurveyResponse {
	return &SavingsSurveyResponse{
		ID:                    s.ID,
		SavingsGroupID:        s.SavingsGroupID,
		SurveyDate:            s.SurveyDate,
		MonthRecorded:         s.MonthRecorded,
		SavingLastMonth:       s.SavingLastMonth.Amount(),
		AttendanceThisMeeting: s.AttendanceThisMeeting,
	}
}
