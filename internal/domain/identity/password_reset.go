package identity

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/shared"
)

// Reset tokens expire 24 hours after issue
const resetTokenTTL = 24 * time.Hour

// PasswordResetToken is a single-use token for the forgot-password flow
type PasswordResetToken struct {
	shared.BaseEntity
	UserID   uuid.UUID
	Token    string
	UsedAt   *time.Time
	IsActive bool
}

// NewPasswordResetToken issues a fresh token for the user
func NewPasswordResetToken(userID uuid.UUID) (*PasswordResetToken, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}

	token, err := generateResetToken()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_GENERATION_ERROR", "Failed to generate reset token")
	}

	return &PasswordResetToken{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Token:      token,
		IsActive:   true,
	}, nil
}

// IsExpired reports whether the token has passed its validity window
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.CreatedAt.Add(resetTokenTTL))
}

// IsValid reports whether the token can still be redeemed
func (t *PasswordResetToken) IsValid() bool {
	return t.IsActive && t.UsedAt == nil && !t.IsExpired()
}

// MarkUsed consumes the token
func (t *PasswordResetToken) MarkUsed() error {
	if !t.IsValid() {
		return shared.NewDomainError("TOKEN_INVALID", "Reset token is expired or already used")
	}

	now := time.Now()
	t.UsedAt = &now
	t.IsActive = false
	t.Touch()

	return nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
