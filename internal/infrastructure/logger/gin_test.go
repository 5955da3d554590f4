package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func findEntry(logs []observer.LoggedEntry, msg string) *observer.LoggedEntry {
	for i := range logs {
		if logs[i].Message == msg {
			return &logs[i]
		}
	}
	return nil
}

func requestLogFields(entry *observer.LoggedEntry) map[string]zapcore.Field {
	fields := make(map[string]zapcore.Field, len(entry.Context))
	for _, f := range entry.Context {
		fields[f.Key] = f
	}
	return fields
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(zapLogger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	entry := findEntry(recorded.All(), "HTTP request")
	require.NotNil(t, entry, "request should be logged")
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := requestLogFields(entry)
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "latency")
	assert.Contains(t, fields, "client_ip")
	assert.Contains(t, fields, "user_agent")
}

func TestGinMiddlewareRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "test-req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zapLogger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	entry := findEntry(recorded.All(), "HTTP request")
	require.NotNil(t, entry)

	found := false
	for _, field := range entry.Context {
		if field.Key == "request_id" {
			found = true
			assert.Equal(t, "test-req-123", field.String)
		}
	}
	assert.True(t, found, "request_id should be in log fields")
}

func TestGinMiddlewareAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(zapLogger))
	router.GET("/test", func(c *gin.Context) {
		c.Set("jwt_user_id", "3f1a7e0a-9a2a-4a36-9a41-19c0a0f3a111")
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	entry := findEntry(recorded.All(), "HTTP request")
	require.NotNil(t, entry)

	fields := requestLogFields(entry)
	require.Contains(t, fields, "user_id")
	assert.Equal(t, "3f1a7e0a-9a2a-4a36-9a41-19c0a0f3a111", fields["user_id"].String)
}

func TestGinMiddlewareStatusLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{name: "client error logs warn", status: http.StatusBadRequest, level: zapcore.WarnLevel},
		{name: "server error logs error", status: http.StatusInternalServerError, level: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.InfoLevel)
			zapLogger := zap.New(core)

			router := gin.New()
			router.Use(GinMiddleware(zapLogger))
			router.GET("/error", func(c *gin.Context) {
				c.JSON(tt.status, gin.H{"error": "nope"})
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/error", nil)
			router.ServeHTTP(w, req)

			entry := findEntry(recorded.All(), "HTTP request")
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry.Level)
		})
	}
}

func TestGinMiddlewareQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(zapLogger))
	router.GET("/search", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/search?q=test&page=1", nil)
	router.ServeHTTP(w, req)

	entry := findEntry(recorded.All(), "HTTP request")
	require.NotNil(t, entry)

	fields := requestLogFields(entry)
	require.Contains(t, fields, "query")
	assert.Contains(t, fields["query"].String, "q=test")
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.ErrorLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(Recovery(zapLogger))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/panic", nil)

	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Contains(t, logs[0].Message, "Panic recovered")
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, _ := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	var retrieved *zap.Logger

	router := gin.New()
	router.Use(GinMiddleware(zapLogger))
	router.GET("/test", func(c *gin.Context) {
		retrieved = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.NotNil(t, retrieved)
}

func TestGetGinLoggerNotSet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var retrieved *zap.Logger

	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		retrieved = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	require.NotNil(t, retrieved)
	assert.NotPanics(t, func() {
		retrieved.Info("test")
	})
}
