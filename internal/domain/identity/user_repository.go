package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// Delete deletes a user by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll returns users matching the filter with pagination
	FindAll(ctx context.Context, filter UserFilter) ([]*User, int64, error)

	// FindByRole finds all users with a specific role
	FindByRole(ctx context.Context, role Role) ([]*User, error)

	// FindByVillage finds users assigned to a village (mentors, field associates)
	FindByVillage(ctx context.Context, villageID uuid.UUID) ([]*User, error)

	// ExistsByUsername checks if a username already exists
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks if an email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// SaveVillageAssignments saves the user's village assignments (replaces existing)
	SaveVillageAssignments(ctx context.Context, user *User) error

	// LoadVillageAssignments loads the user's village assignments
	LoadVillageAssignments(ctx context.Context, user *User) error

	// Count returns the total number of users
	Count(ctx context.Context) (int64, error)
}

// PasswordResetTokenRepository persists password reset tokens
type PasswordResetTokenRepository interface {
	// Create stores a new reset token
	Create(ctx context.Context, token *PasswordResetToken) error

	// Update updates a token (marking it used)
	Update(ctx context.Context, token *PasswordResetToken) error

	// FindByToken finds a token by its value
	FindByToken(ctx context.Context, token string) (*PasswordResetToken, error)

	// InvalidateForUser deactivates all outstanding tokens for a user
	InvalidateForUser(ctx context.Context, userID uuid.UUID) error
}

// UserFilter contains filter options for querying users
type UserFilter struct {
	// Search keyword for username, email, or name
	Keyword string

	// Filter by status
	Status *UserStatus

	// Filter by role
	Role *Role

	// Pagination
	Page     int
	PageSize int

	// Sorting
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// NewUserFilter creates a new UserFilter with default values
func NewUserFilter() UserFilter {
	return UserFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// WithKeyword sets the search keyword
func (f UserFilter) WithKeyword(keyword string) UserFilter {
	f.Keyword = keyword
	return f
}

// WithStatus sets the status filter
func (f UserFilter) WithStatus(status UserStatus) UserFilter {
	f.Status = &status
	return f
}

// WithRole sets the role filter
func (f UserFilter) WithRole(role Role) UserFilter {
	f.Role = &role
	return f
}

// WithPagination sets pagination parameters
func (f UserFilter) WithPagination(page, pageSize int) UserFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f UserFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f UserFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
