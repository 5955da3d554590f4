package audit

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/shared"
)

// SettingType declares how a configuration value string is interpreted.
type SettingType string

const (
	SettingString  SettingType = "string"
	SettingInteger SettingType = "integer"
	SettingBoolean SettingType = "boolean"
	SettingJSON    SettingType = "json"
	SettingFile    SettingType = "file"
)

func (t SettingType) IsValid() bool {
	switch t {
	case SettingString, SettingInteger, SettingBoolean, SettingJSON, SettingFile:
		return true
	}
	return false
}

// Configuration is a system-wide setting stored as a typed key/value pair.
type Configuration struct {
	shared.BaseEntity

	Key         string      `gorm:"type:varchar(100);uniqueIndex;not null"`
	Value       string      `gorm:"type:text"`
	SettingType SettingType `gorm:"type:varchar(20)"`
	Description string      `gorm:"type:text"`
	Category    string      `gorm:"type:varchar(50)"`
	IsPublic    bool
	IsEditable  bool
	CreatedBy   *uuid.UUID
	ModifiedBy  *uuid.UUID
}

func NewConfiguration(key, value string, settingType SettingType, createdBy *uuid.UUID) (*Configuration, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, shared.NewDomainError("INVALID_CONFIG_KEY", "configuration key cannot be empty")
	}
	if len(key) > 100 {
		return nil, shared.NewDomainError("INVALID_CONFIG_KEY", "configuration key cannot exceed 100 characters")
	}
	if settingType == "" {
		settingType = SettingString
	}
	if !settingType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SETTING_TYPE", "invalid setting type: "+string(settingType))
	}

	c := &Configuration{
		BaseEntity:  shared.NewBaseEntity(),
		Key:         key,
		Value:       value,
		SettingType: settingType,
		Category:    "general",
		IsEditable:  true,
		CreatedBy:   createdBy,
	}
	if err := c.validateValue(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Configuration) validateValue() error {
	switch c.SettingType {
	case SettingInteger:
		if _, err := strconv.Atoi(strings.TrimSpace(c.Value)); err != nil {
			return shared.NewDomainError("INVALID_CONFIG_VALUE", "value is not a valid integer: "+c.Value)
		}
	case SettingJSON:
		if !json.Valid([]byte(c.Value)) {
			return shared.NewDomainError("INVALID_CONFIG_VALUE", "value is not valid JSON")
		}
	}
	return nil
}

// SetValue updates the raw value, validating it against the declared type.
func (c *Configuration) SetValue(value string, modifiedBy *uuid.UUID) error {
	if !c.IsEditable {
		return shared.NewDomainError("CONFIG_READONLY", "configuration "+c.Key+" is not editable")
	}
	old := c.Value
	c.Value = value
	if err := c.validateValue(); err != nil {
		c.Value = old
		return err
	}
	c.ModifiedBy = modifiedBy
	c.Touch()
	return nil
}

func (c *Configuration) SetMetadata(description, category string, isPublic bool) {
	c.Description = strings.TrimSpace(description)
	if category = strings.TrimSpace(category); category != "" {
		c.Category = category
	}
	c.IsPublic = isPublic
	c.Touch()
}

func (c *Configuration) MarkReadOnly() {
	c.IsEditable = false
	c.Touch()
}

// BoolValue interprets the value as a boolean. Unparseable values are false.
func (c *Configuration) BoolValue() bool {
	switch strings.ToLower(strings.TrimSpace(c.Value)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

// IntValue interprets the value as an integer. Unparseable values are zero.
func (c *Configuration) IntValue() int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Value))
	if err != nil {
		return 0
	}
	return n
}

// JSONValue interprets the value as a JSON object. Unparseable values
// yield an empty map.
func (c *Configuration) JSONValue() map[string]interface{} {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(c.Value), &m); err != nil {
		return map[string]interface{}{}
	}
	return m
}

// TypedValue returns the value converted per the declared setting type.
func (c *Configuration) TypedValue() interface{} {
	switch c.SettingType {
	case SettingBoolean:
		return c.BoolValue()
	case SettingInteger:
		return c.IntValue()
	case SettingJSON:
		return c.JSONValue()
	default:
		return c.Value
	}
}
