package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/infrastructure/auth"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	tokenRepo  identity.PasswordResetTokenRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	tokenRepo identity.PasswordResetTokenRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		config:     config,
		logger:     logger,
	}
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("login attempt", zap.String("username", input.Username))

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Warn("user not found during login", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.CanLogin() {
		switch {
		case user.IsLocked():
			s.logger.Warn("login attempt for locked account", zap.String("username", input.Username))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later or contact support")
		case user.Status == identity.UserStatusDeactivated:
			s.logger.Warn("login attempt for deactivated account", zap.String("username", input.Username))
			return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
		case user.Status == identity.UserStatusPending:
			s.logger.Warn("login attempt for pending account", zap.String("username", input.Username))
			return nil, shared.NewDomainError("ACCOUNT_PENDING", "Account is pending activation")
		default:
			return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
		}
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Update(ctx, user); err != nil {
			s.logger.Error("failed to update user after login failure", zap.Error(err))
		}

		if locked {
			s.logger.Warn("account locked after too many failed attempts",
				zap.String("username", input.Username),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if err := s.userRepo.LoadVillageAssignments(ctx, user); err != nil {
		s.logger.Error("failed to load village assignments", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load user data")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLoginSuccess(input.IP)
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Don't fail the login over a bookkeeping write
		s.logger.Error("failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("user logged in",
		zap.String("username", input.Username),
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  ToUserInfo(user),
	}, nil
}

// RefreshToken refreshes the access token using a valid refresh token. The
// user's current role is re-read so role changes take effect at refresh time.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	refreshClaims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	userID, err := uuid.Parse(refreshClaims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("user not found during token refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if !user.CanLogin() {
		s.logger.Warn("token refresh for inactive user", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, userID.String(), refreshClaims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("failed to check token invalidation", zap.Error(err))
	} else if invalidated {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Session has been terminated")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, user.Username, string(user.Role))
	if err != nil {
		s.logger.Warn("token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the current access token, and optionally every session the
// user holds.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenID != "" && input.TokenTTL > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, input.TokenID, input.TokenTTL); err != nil {
			s.logger.Error("failed to blacklist token", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to terminate session")
		}
	}

	if input.AllSessions {
		ttl := s.jwtService.GetRefreshTokenExpiration()
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, input.UserID.String(), ttl); err != nil {
			s.logger.Error("failed to invalidate user sessions", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to terminate sessions")
		}
	}

	s.logger.Info("user logged out",
		zap.String("user_id", input.UserID.String()),
		zap.Bool("all_sessions", input.AllSessions))
	return nil
}

// GetCurrentUser retrieves the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := s.userRepo.LoadVillageAssignments(ctx, user); err != nil {
		s.logger.Error("failed to load village assignments", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load user data")
	}

	return ToUserResponse(user), nil
}

// ChangePassword changes a user's password after verifying the old one
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("failed to update user after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	s.logger.Info("password changed", zap.String("user_id", input.UserID.String()))
	return nil
}

// RequestPasswordReset issues a reset token for the account with the given
// email. To avoid leaking which emails exist, an unknown address returns the
// token value "" with no error.
func (s *AuthService) RequestPasswordReset(ctx context.Context, input RequestPasswordResetInput) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Info("password reset requested for unknown email")
		return "", nil
	}

	if err := s.tokenRepo.InvalidateForUser(ctx, user.ID); err != nil {
		s.logger.Error("failed to invalidate old reset tokens", zap.Error(err))
		return "", shared.NewDomainError("INTERNAL_ERROR", "Failed to issue reset token")
	}

	token, err := identity.NewPasswordResetToken(user.ID)
	if err != nil {
		return "", err
	}

	if err := s.tokenRepo.Create(ctx, token); err != nil {
		s.logger.Error("failed to store reset token", zap.Error(err))
		return "", shared.NewDomainError("INTERNAL_ERROR", "Failed to issue reset token")
	}

	s.logger.Info("password reset token issued", zap.String("user_id", user.ID.String()))
	return token.Token, nil
}

// ResetPassword completes the forgotten-password flow
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	token, err := s.tokenRepo.FindByToken(ctx, input.Token)
	if err != nil {
		return shared.NewDomainError("INVALID_TOKEN", "Reset token is invalid")
	}

	if !token.IsValid() {
		return shared.NewDomainError("INVALID_TOKEN", "Reset token has expired or was already used")
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.SetPassword(input.NewPassword); err != nil {
		return err
	}

	if err := token.MarkUsed(); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("failed to update password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}
	if err := s.tokenRepo.Update(ctx, token); err != nil {
		s.logger.Error("failed to mark reset token used", zap.Error(err))
	}

	// Terminate existing sessions after a password reset
	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), ttl); err != nil {
		s.logger.Error("failed to invalidate sessions after reset", zap.Error(err))
	}

	s.logger.Info("password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}

// mapTokenError converts JWT validation errors to domain errors
func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case auth.ErrInvalidToken:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
