package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/application/identity"
	domainidentity "github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/interfaces/http/middleware"
)

// UserHandler serves user administration endpoints
type UserHandler struct {
	BaseHandler
	users *identity.UserService
}

// NewUserHandler creates a user handler
func NewUserHandler(users *identity.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{BaseHandler: NewBaseHandler(logger), users: users}
}

// RegisterRoutes registers user administration routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.RequireModuleAccess(domainidentity.ModuleSettings))
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/mentors", h.MentorsByVillage)
		users.GET("/:id", h.Get)
		users.PATCH("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
		users.POST("/:id/activate", h.Activate)
		users.POST("/:id/deactivate", h.Deactivate)
		users.POST("/:id/unlock", h.Unlock)
		users.PUT("/:id/villages", h.AssignVillages)
		users.POST("/:id/reset-password", h.ResetPassword)
	}
}

// Create registers a new user account
func (h *UserHandler) Create(c *gin.Context) {
	var req identity.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// List returns users matching the filter
func (h *UserHandler) List(c *gin.Context) {
	var filter identity.UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	users, total, err := h.users.ListUsers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, users, total, filter.Page, filter.PageSize)
}

// Get returns a single user
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Update applies a partial update to a user
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req identity.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Delete removes a user account
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Activate enables a user account
func (h *UserHandler) Activate(c *gin.Context) {
	h.statusChange(c, h.users.ActivateUser)
}

// Deactivate disables a user account
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.statusChange(c, h.users.DeactivateUser)
}

// Unlock clears a lockout after failed login attempts
func (h *UserHandler) Unlock(c *gin.Context) {
	h.statusChange(c, h.users.UnlockUser)
}

// AssignVillages replaces a user's village assignments
func (h *UserHandler) AssignVillages(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req identity.AssignVillagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.AssignVillages(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

type resetUserPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword sets a new password for a user (administrative reset)
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req resetUserPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.users.ResetUserPassword(c.Request.Context(), id, req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MentorsByVillage lists mentors assigned to a village
func (h *UserHandler) MentorsByVillage(c *gin.Context) {
	raw := c.Query("village_id")
	villageID, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "village_id must be a valid UUID")
		return
	}

	mentors, err := h.users.GetMentorsByVillage(c.Request.Context(), villageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mentors)
}

func (h *UserHandler) statusChange(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) error) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := fn(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
