package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performError(t *testing.T, err error) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	h := NewBaseHandler(zap.NewNop())

	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		h.HandleError(c, err)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleError(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		w, body := performError(t, shared.NewDomainError("NOT_FOUND", "household not found"))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, body.Success)
		assert.Equal(t, "NOT_FOUND", body.Error.Code)
		assert.Equal(t, "household not found", body.Error.Message)
	})

	t.Run("business rule maps to 422", func(t *testing.T) {
		w, body := performError(t, shared.NewDomainError("OVER_DISBURSEMENT", "disbursement exceeds award"))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "OVER_DISBURSEMENT", body.Error.Code)
	})

	t.Run("wrapped domain error is unwrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("saving grant: %w", shared.NewDomainError("ALREADY_EXISTS", "duplicate application"))
		w, body := performError(t, wrapped)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "ALREADY_EXISTS", body.Error.Code)
	})

	t.Run("unknown error maps to opaque 500", func(t *testing.T) {
		w, body := performError(t, errors.New("driver: bad connection"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.NotContains(t, body.Error.Message, "driver")
	})
}

func TestSuccessResponses(t *testing.T) {
	h := NewBaseHandler(zap.NewNop())

	router := gin.New()
	router.GET("/list", func(c *gin.Context) {
		h.SuccessWithMeta(c, []string{"a", "b"}, 42, 2, 10)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/list", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Meta)
	assert.Equal(t, int64(42), body.Meta.Total)
	assert.Equal(t, 2, body.Meta.Page)
	assert.Equal(t, 5, body.Meta.TotalPages)
}
