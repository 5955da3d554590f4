package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/upg/backend/internal/domain/identity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRoleRouter(role identity.Role, guard gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextKeyRole, string(role))
		c.Next()
	})
	router.GET("/resource", guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.POST("/resource", guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequireModuleAccess(t *testing.T) {
	guard := RequireModuleAccess(identity.ModuleHouseholds)

	t.Run("mentor can read and write households", func(t *testing.T) {
		router := newRoleRouter(identity.RoleMentor, guard)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/resource", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("county assembly can read but not write", func(t *testing.T) {
		router := newRoleRouter(identity.RoleCountyAssembly, guard)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/resource", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no role is rejected", func(t *testing.T) {
		router := gin.New()
		router.GET("/resource", guard, func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRequireGrantApprover(t *testing.T) {
	guard := RequireGrantApprover()

	router := newRoleRouter(identity.RoleCountyExecutive, guard)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/resource", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	router = newRoleRouter(identity.RoleMentor, guard)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/resource", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoles(t *testing.T) {
	guard := RequireRoles(identity.RoleICTAdmin, identity.RoleMEStaff)

	router := newRoleRouter(identity.RoleMEStaff, guard)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	router = newRoleRouter(identity.RoleBeneficiary, guard)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
