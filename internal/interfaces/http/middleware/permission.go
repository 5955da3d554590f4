package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/interfaces/http/dto"
)

// RequireModuleAccess allows only roles that can at least view the module.
// Mutating verbs (everything except GET, HEAD and OPTIONS) additionally
// require full access.
func RequireModuleAccess(module identity.Module) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok || !role.IsValid() {
			abortForbidden(c, "no role associated with this account")
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			if !role.CanView(module) {
				abortForbidden(c, "role cannot view this module")
				return
			}
		default:
			if !role.CanManage(module) {
				abortForbidden(c, "role cannot modify this module")
				return
			}
		}
		c.Next()
	}
}

// RequireRoles allows only the named roles through
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[identity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			abortForbidden(c, "no role associated with this account")
			return
		}
		if _, ok := allowed[role]; !ok {
			abortForbidden(c, "insufficient role")
			return
		}
		c.Next()
	}
}

// RequireGrantApprover restricts grant approval endpoints
func RequireGrantApprover() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok || !role.CanApproveGrants() {
			abortForbidden(c, "role cannot approve grants")
			return
		}
		c.Next()
	}
}

// RequireGrantReviewer restricts grant review endpoints
func RequireGrantReviewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok || !role.CanReviewGrants() {
			abortForbidden(c, "role cannot review grants")
			return
		}
		c.Next()
	}
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse("FORBIDDEN", message))
}
