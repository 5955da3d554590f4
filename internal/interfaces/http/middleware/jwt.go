package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/infrastructure/auth"
	"github.com/upg/backend/internal/interfaces/http/dto"
)

// Context keys set by the JWT middleware.
const (
	ContextKeyUserID   = "jwt_user_id"
	ContextKeyUsername = "jwt_username"
	ContextKeyRole     = "jwt_role"
	ContextKeyClaims   = "jwt_claims"
)

// JWTAuthConfig configures the JWT authentication middleware
type JWTAuthConfig struct {
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
	Logger     *zap.Logger

	// SkipPaths are exact request paths that bypass authentication.
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that bypass authentication.
	SkipPathPrefixes []string
}

// JWTAuth validates the bearer token on every request, rejects revoked
// tokens, and stores the authenticated identity in the gin context.
func JWTAuth(cfg JWTAuthConfig) gin.HandlerFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		token, ok := extractBearerToken(c)
		if !ok {
			abortUnauthorized(c, "missing or malformed authorization header")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(token)
		if err != nil {
			abortUnauthorized(c, authErrorMessage(err))
			return
		}

		if cfg.Blacklist != nil {
			revoked, err := cfg.Blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Blacklist lookup failures fail open so an unavailable Redis
				// does not take authentication down with it.
				logger.Error("token blacklist check failed",
					zap.String("jti", claims.ID),
					zap.Error(err))
			} else if revoked {
				abortUnauthorized(c, "token has been revoked")
				return
			}

			invalidated, err := cfg.Blacklist.IsUserTokenInvalidated(c.Request.Context(), claims.UserID, claims.GetIssuedAtTime())
			if err != nil {
				logger.Error("user token invalidation check failed",
					zap.String("user_id", claims.UserID),
					zap.Error(err))
			} else if invalidated {
				abortUnauthorized(c, "token has been revoked")
				return
			}
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "token has expired"
	case errors.Is(err, auth.ErrInvalidTokenType):
		return "wrong token type"
	default:
		return "invalid token"
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("UNAUTHORIZED", message))
}

// GetUserID returns the authenticated user ID from the gin context
func GetUserID(c *gin.Context) (string, bool) {
	id, ok := c.Get(ContextKeyUserID)
	if !ok {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}

// GetUsername returns the authenticated username from the gin context
func GetUsername(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextKeyUsername)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetRole returns the authenticated user's role from the gin context
func GetRole(c *gin.Context) (identity.Role, bool) {
	v, ok := c.Get(ContextKeyRole)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return identity.Role(s), true
}

// GetClaims returns the full token claims from the gin context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
