package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appaudit "github.com/upg/backend/internal/application/audit"
	"github.com/upg/backend/internal/domain/audit"
)

// AuditTrail records every mutating request as an audit log entry after the
// handler has run. Read requests are not recorded; the volume would drown the
// trail without adding anything reviewable.
func AuditTrail(logs *appaudit.LogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		action, ok := actionForMethod(c.Request.Method)
		if !ok {
			return
		}

		var userID *uuid.UUID
		if raw, found := GetUserID(c); found {
			if parsed, err := uuid.Parse(raw); err == nil {
				userID = &parsed
			}
		}

		req := appaudit.RecordEntryRequest{
			Action:        string(action),
			UserID:        userID,
			IPAddress:     c.ClientIP(),
			UserAgent:     c.Request.UserAgent(),
			RequestPath:   c.FullPath(),
			RequestMethod: c.Request.Method,
			AdditionalData: map[string]interface{}{
				"status": strconv.Itoa(c.Writer.Status()),
			},
		}
		if c.Writer.Status() >= http.StatusBadRequest && len(c.Errors) > 0 {
			req.ErrorMessage = c.Errors.String()
		}

		// Recording failures must never fail the request itself; the log
		// service logs them internally.
		_, _ = logs.Record(c.Request.Context(), req)
	}
}

func actionForMethod(method string) (audit.Action, bool) {
	switch method {
	case http.MethodPost:
		return audit.ActionCreate, true
	case http.MethodPut, http.MethodPatch:
		return audit.ActionUpdate, true
	case http.MethodDelete:
		return audit.ActionDelete, true
	default:
		return "", false
	}
}
