package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/identity"
)

// LoginInput carries credentials for authentication
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	IP       string `json:"-"`
}

// UserInfo is the user payload embedded in auth responses
type UserInfo struct {
	ID          uuid.UUID   `json:"id"`
	Username    string      `json:"username"`
	FullName    string      `json:"full_name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Role        string      `json:"role"`
	Office      string      `json:"office"`
	VillageIDs  []uuid.UUID `json:"village_ids"`
	MustChange  bool        `json:"must_change_password"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
}

// LoginResult is returned on successful authentication
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenInput carries a refresh token
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResult is returned on successful token refresh
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput identifies the session being terminated
type LogoutInput struct {
	UserID      uuid.UUID
	TokenID     string // JTI of the access token
	TokenTTL    time.Duration
	AllSessions bool
}

// ChangePasswordInput carries an authenticated password change
type ChangePasswordInput struct {
	UserID      uuid.UUID `json:"-"`
	OldPassword string    `json:"old_password" binding:"required"`
	NewPassword string    `json:"new_password" binding:"required,min=8"`
}

// RequestPasswordResetInput starts the forgotten-password flow
type RequestPasswordResetInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput completes the forgotten-password flow
type ResetPasswordInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// CreateUserRequest registers a new user account
type CreateUserRequest struct {
	Username  string      `json:"username" binding:"required,min=3,max=50"`
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required,min=8"`
	FirstName string      `json:"first_name" binding:"max=100"`
	LastName  string      `json:"last_name" binding:"max=100"`
	Phone     string      `json:"phone" binding:"omitempty,kenyan_phone,max=20"`
	Role      string      `json:"role" binding:"required"`
	Office    string      `json:"office" binding:"max=100"`
	Activate  bool        `json:"activate"`
	Villages  []uuid.UUID `json:"village_ids"`
}

// UpdateUserRequest modifies an existing user account
type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,kenyan_phone,max=20"`
	Role      *string `json:"role"`
	Office    *string `json:"office" binding:"omitempty,max=100"`
}

// AssignVillagesRequest replaces a user's village assignments
type AssignVillagesRequest struct {
	VillageIDs []uuid.UUID `json:"village_ids" binding:"required"`
}

// UserListFilter contains filtering options for listing users
type UserListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Role     string `form:"role"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID   `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	FullName    string      `json:"full_name"`
	Role        string      `json:"role"`
	Office      string      `json:"office"`
	Country     string      `json:"country"`
	Status      string      `json:"status"`
	VillageIDs  []uuid.UUID `json:"village_ids"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ToUserInfo maps a domain user to the auth payload
func ToUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		FullName:    user.FullName(),
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        string(user.Role),
		Office:      user.Office,
		VillageIDs:  user.AssignedVillageIDs,
		MustChange:  user.MustChangePassword,
		LastLoginAt: user.LastLoginAt,
	}
}

// ToUserResponse maps a domain user to an API response
func ToUserResponse(user *identity.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Phone:       user.Phone,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		Role:        string(user.Role),
		Office:      user.Office,
		Country:     user.Country,
		Status:      string(user.Status),
		VillageIDs:  user.AssignedVillageIDs,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// ToUserResponses maps a slice of domain users
func ToUserResponses(users []*identity.User) []*UserResponse {
	responses := make([]*UserResponse, len(users))
	for i, u := range users {
		responses[i] = ToUserResponse(u)
	}
	return responses
}
