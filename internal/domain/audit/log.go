package audit

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/shared"
)

// Action is the kind of operation an audit entry records.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionLogin  Action = "login"
	ActionLogout Action = "logout"
	ActionExport Action = "export"
	ActionImport Action = "import"
	ActionSystem Action = "system"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete,
		ActionLogin, ActionLogout, ActionExport, ActionImport, ActionSystem:
		return true
	}
	return false
}

// LogEntry is an immutable record of a user or system action.
type LogEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID
	Action    Action `gorm:"type:varchar(20);index:idx_audit_action_ts"`
	ModelName string `gorm:"type:varchar(100);index:idx_audit_model_ts"`
	ObjectID  string `gorm:"type:varchar(100)"`
	ObjectRef string `gorm:"type:varchar(200)"`

	IPAddress     string `gorm:"type:varchar(45)"`
	UserAgent     string `gorm:"type:text"`
	RequestPath   string `gorm:"type:varchar(500)"`
	RequestMethod string `gorm:"type:varchar(10)"`

	Changes        map[string]interface{} `gorm:"serializer:json"`
	AdditionalData map[string]interface{} `gorm:"serializer:json"`

	Success      bool
	ErrorMessage string `gorm:"type:text"`

	Timestamp time.Time `gorm:"index:idx_audit_action_ts;index:idx_audit_model_ts"`
}

func NewLogEntry(action Action, userID *uuid.UUID) (*LogEntry, error) {
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_AUDIT_ACTION", "invalid audit action: "+string(action))
	}
	return &LogEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Success:   true,
		Timestamp: time.Now().UTC(),
	}, nil
}

// SetTarget records which object the action touched.
func (e *LogEntry) SetTarget(modelName, objectID, objectRef string) {
	e.ModelName = strings.TrimSpace(modelName)
	e.ObjectID = strings.TrimSpace(objectID)
	e.ObjectRef = strings.TrimSpace(objectRef)
}

// SetRequest records where the action came from.
func (e *LogEntry) SetRequest(ip, userAgent, path, method string) {
	e.IPAddress = strings.TrimSpace(ip)
	e.UserAgent = userAgent
	e.RequestPath = path
	e.RequestMethod = strings.ToUpper(strings.TrimSpace(method))
}

func (e *LogEntry) SetChanges(changes map[string]interface{}) {
	e.Changes = changes
}

func (e *LogEntry) SetAdditionalData(data map[string]interface{}) {
	e.AdditionalData = data
}

func (e *LogEntry) MarkFailed(errMessage string) {
	e.Success = false
	e.ErrorMessage = errMessage
}
