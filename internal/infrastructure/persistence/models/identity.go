package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Username           string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email              string              `gorm:"type:varchar(200);uniqueIndex"`
	Phone              string              `gorm:"type:varchar(50)"`
	PasswordHash       string              `gorm:"type:varchar(255);not null"`
	FirstName          string              `gorm:"type:varchar(100)"`
	LastName           string              `gorm:"type:varchar(100)"`
	Role               identity.Role       `gorm:"type:varchar(30);not null;index"`
	Office             string              `gorm:"type:varchar(100)"`
	Country            string              `gorm:"type:varchar(100)"`
	Status             identity.UserStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	LastLoginAt        *time.Time          `gorm:"index"`
	LastLoginIP        string              `gorm:"type:varchar(45)"`
	FailedAttempts     int                 `gorm:"not null;default:0"`
	LockedUntil        *time.Time
	PasswordChangedAt  *time.Time
	MustChangePassword bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
// Note: AssignedVillageIDs must be loaded separately by the repository.
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Username:           m.Username,
		Email:              m.Email,
		Phone:              m.Phone,
		PasswordHash:       m.PasswordHash,
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		Role:               m.Role,
		Office:             m.Office,
		Country:            m.Country,
		Status:             m.Status,
		AssignedVillageIDs: make([]uuid.UUID, 0), // Loaded separately
		LastLoginAt:        m.LastLoginAt,
		LastLoginIP:        m.LastLoginIP,
		FailedAttempts:     m.FailedAttempts,
		LockedUntil:        m.LockedUntil,
		PasswordChangedAt:  m.PasswordChangedAt,
		MustChangePassword: m.MustChangePassword,
	}
	return user
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.Email = u.Email
	m.Phone = u.Phone
	m.PasswordHash = u.PasswordHash
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Role = u.Role
	m.Office = u.Office
	m.Country = u.Country
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
	m.PasswordChangedAt = u.PasswordChangedAt
	m.MustChangePassword = u.MustChangePassword
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// UserVillageModel is the persistence model for a user's village assignment.
type UserVillageModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	VillageID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserVillageModel) TableName() string {
	return "user_villages"
}

// PasswordResetTokenModel is the persistence model for password reset tokens.
type PasswordResetTokenModel struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Token    string    `gorm:"type:varchar(128);not null;uniqueIndex"`
	UsedAt   *time.Time
	IsActive bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}

// ToDomain converts the persistence model to a domain PasswordResetToken.
func (m *PasswordResetTokenModel) ToDomain() *identity.PasswordResetToken {
	return &identity.PasswordResetToken{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Token:      m.Token,
		UsedAt:     m.UsedAt,
		IsActive:   m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain PasswordResetToken.
func (m *PasswordResetTokenModel) FromDomain(t *identity.PasswordResetToken) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.UserID = t.UserID
	m.Token = t.Token
	m.UsedAt = t.UsedAt
	m.IsActive = t.IsActive
}
