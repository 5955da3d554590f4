package group

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/shared"
)

// BusinessHealth is the traffic-light rating assigned to a business group
// during mentoring visits and progress surveys.
type BusinessHealth string

const (
	HealthRed    BusinessHealth = "red"
	HealthYellow BusinessHealth = "yellow"
	HealthGreen  BusinessHealth = "green"
)

func (h BusinessHealth) IsValid() bool {
	switch h {
	case HealthRed, HealthYellow, HealthGreen:
		return true
	}
	return false
}

// ParticipationStatus tracks whether the group is still taking part in the program.
type ParticipationStatus string

const (
	ParticipationActive    ParticipationStatus = "active"
	ParticipationWithdrawn ParticipationStatus = "withdrawn"
	ParticipationSuspended ParticipationStatus = "suspended"
)

// BusinessType is the line of business the group runs.
type BusinessType string

const (
	BusinessTypeCrop      BusinessType = "crop"
	BusinessTypeRetail    BusinessType = "retail"
	BusinessTypeService   BusinessType = "service"
	BusinessTypeLivestock BusinessType = "livestock"
	BusinessTypeSkill     BusinessType = "skill"
)

func (t BusinessType) IsValid() bool {
	switch t {
	case BusinessTypeCrop, BusinessTypeRetail, BusinessTypeService, BusinessTypeLivestock, BusinessTypeSkill:
		return true
	}
	return false
}

// MemberRole is the role a household holds inside a business group.
type MemberRole string

const (
	MemberRoleLeader    MemberRole = "leader"
	MemberRoleTreasurer MemberRole = "treasurer"
	MemberRoleSecretary MemberRole = "secretary"
	MemberRoleMember    MemberRole = "member"
)

func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleLeader, MemberRoleTreasurer, MemberRoleSecretary, MemberRoleMember:
		return true
	}
	return false
}

// BusinessGroup is a small joint enterprise, typically two or three
// entrepreneur households running a business together.
type BusinessGroup struct {
	shared.AuditedAggregateRoot

	Name               string `gorm:"type:varchar(100);not null"`
	ProgramID          uuid.UUID
	Health             BusinessHealth      `gorm:"type:varchar(10)"`
	Participation      ParticipationStatus `gorm:"type:varchar(20)"`
	GroupSize          int
	BusinessType       BusinessType `gorm:"type:varchar(20)"`
	BusinessTypeDetail string       `gorm:"type:varchar(100)"`
	Location           string       `gorm:"type:varchar(200)"`
	FormationDate      time.Time

	Members []BusinessGroupMember `gorm:"-"`
}

// BusinessGroupMember links a household to a business group with a role.
type BusinessGroupMember struct {
	shared.BaseEntity

	BusinessGroupID uuid.UUID
	HouseholdID     uuid.UUID
	Role            MemberRole `gorm:"type:varchar(20)"`
	JoinedDate      time.Time
	IsActive        bool
}

func NewBusinessGroup(name string, programID uuid.UUID, businessType BusinessType,
	formationDate time.Time, createdBy uuid.UUID) (*BusinessGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_GROUP_NAME", "business group name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_GROUP_NAME", "business group name cannot exceed 100 characters")
	}
	if !businessType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BUSINESS_TYPE", "invalid business type: "+string(businessType))
	}

	g := &BusinessGroup{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Name:                 name,
		ProgramID:            programID,
		Health:               HealthYellow,
		Participation:        ParticipationActive,
		GroupSize:            2,
		BusinessType:         businessType,
		FormationDate:        formationDate,
	}
	g.AddDomainEvent(NewBusinessGroupFormedEvent(g.ID, name, programID, string(businessType)))
	return g, nil
}

func (g *BusinessGroup) SetBusinessDetail(detail string) {
	g.BusinessTypeDetail = strings.TrimSpace(detail)
	g.Touch()
	g.IncrementVersion()
}

func (g *BusinessGroup) SetLocation(location string) {
	g.Location = strings.TrimSpace(location)
	g.Touch()
	g.IncrementVersion()
}

// RateHealth records a new traffic-light health rating for the group.
func (g *BusinessGroup) RateHealth(health BusinessHealth) error {
	if !health.IsValid() {
		return shared.NewDomainError("INVALID_HEALTH_RATING", "invalid business health rating: "+string(health))
	}
	if g.Health == health {
		return nil
	}
	old := g.Health
	g.Health = health
	g.Touch()
	g.IncrementVersion()
	g.AddDomainEvent(NewBusinessHealthChangedEvent(g.ID, string(old), string(health)))
	return nil
}

func (g *BusinessGroup) Suspend() error {
	if g.Participation != ParticipationActive {
		return shared.ErrInvalidState
	}
	g.Participation = ParticipationSuspended
	g.Touch()
	g.IncrementVersion()
	return nil
}

func (g *BusinessGroup) Reactivate() error {
	if g.Participation != ParticipationSuspended {
		return shared.ErrInvalidState
	}
	g.Participation = ParticipationActive
	g.Touch()
	g.IncrementVersion()
	return nil
}

func (g *BusinessGroup) Withdraw() error {
	if g.Participation == ParticipationWithdrawn {
		return shared.ErrInvalidState
	}
	g.Participation = ParticipationWithdrawn
	g.Touch()
	g.IncrementVersion()
	return nil
}

func (g *BusinessGroup) IsActive() bool {
	return g.Participation == ParticipationActive
}

// AddMember joins a household to the group. A household may appear at most
// once, and the leader, treasurer and secretary roles are each held by a
// single active member.
func (g *BusinessGroup) AddMember(householdID uuid.UUID, role MemberRole, joinedDate time.Time) (*BusinessGroupMember, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_MEMBER_ROLE", "invalid member role: "+string(role))
	}
	for _, m := range g.Members {
		if m.HouseholdID == householdID && m.IsActive {
			return nil, shared.NewDomainError("DUPLICATE_MEMBER", "household is already a member of this group")
		}
		if role != MemberRoleMember && m.Role == role && m.IsActive {
			return nil, shared.NewDomainError("ROLE_TAKEN", "group already has an active "+string(role))
		}
	}

	member := BusinessGroupMember{
		BaseEntity:      shared.NewBaseEntity(),
		BusinessGroupID: g.ID,
		HouseholdID:     householdID,
		Role:            role,
		JoinedDate:      joinedDate,
		IsActive:        true,
	}
	g.Members = append(g.Members, member)
	g.GroupSize = g.ActiveMemberCount()
	g.Touch()
	g.IncrementVersion()
	return &member, nil
}

// RemoveMember deactivates the membership rather than deleting it, so the
// history of who took part in the group is preserved.
func (g *BusinessGroup) RemoveMember(householdID uuid.UUID) error {
	for i := range g.Members {
		if g.Members[i].HouseholdID == householdID && g.Members[i].IsActive {
			g.Members[i].IsActive = false
			g.GroupSize = g.ActiveMemberCount()
			g.Touch()
			g.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

func (g *BusinessGroup) ActiveMemberCount() int {
	n := 0
	for _, m := range g.Members {
		if m.IsActive {
			n++
		}
	}
	return n
}

// MemberByRole returns the active member holding the given role, if any.
func (g *BusinessGroup) MemberByRole(role MemberRole) *BusinessGroupMember {
	for i := range g.Members {
		if g.Members[i].Role == role && g.Members[i].IsActive {
			return &g.Members[i]
		}
	}
	return nil
}

func (g *BusinessGroup) HasMember(householdID uuid.UUID) bool {
	for _, m := range g.Members {
		if m.HouseholdID == householdID && m.IsActive {
			return true
		}
	}
	return false
}
