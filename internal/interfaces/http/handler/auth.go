package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/application/identity"
	"github.com/upg/backend/internal/interfaces/http/middleware"
)

// AuthHandler serves authentication endpoints
type AuthHandler struct {
	BaseHandler
	auth *identity.AuthService
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(auth *identity.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{BaseHandler: NewBaseHandler(logger), auth: auth}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
		auth.POST("/change-password", h.ChangePassword)
		auth.POST("/password-reset/request", h.RequestPasswordReset)
		auth.POST("/password-reset/confirm", h.ResetPassword)
	}
}

// Login authenticates a user and issues a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var input identity.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.IP = c.ClientIP()

	result, err := h.auth.Login(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input identity.RefreshTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.auth.RefreshToken(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

type logoutRequest struct {
	AllSessions bool `json:"all_sessions"`
}

// Logout revokes the current access token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		h.BadRequest(c, "no authenticated session")
		return
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		h.BadRequest(c, "malformed user id in token")
		return
	}

	var req logoutRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	err = h.auth.Logout(c.Request.Context(), identity.LogoutInput{
		UserID:      userID,
		TokenID:     claims.ID,
		TokenTTL:    claims.GetRemainingTTL(),
		AllSessions: req.AllSessions,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		h.BadRequest(c, "no authenticated session")
		return
	}

	user, err := h.auth.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangePassword changes the authenticated user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		h.BadRequest(c, "no authenticated session")
		return
	}

	var input identity.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.UserID = userID

	if err := h.auth.ChangePassword(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RequestPasswordReset starts the forgotten-password flow. The response is
// the same whether or not the email is known, so the endpoint cannot be used
// to probe for accounts.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var input identity.RequestPasswordResetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if _, err := h.auth.RequestPasswordReset(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "if the email is registered, reset instructions have been sent"})
}

// ResetPassword completes the forgotten-password flow
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input identity.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// authenticatedUserID pulls the authenticated user's UUID from the context
func authenticatedUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
