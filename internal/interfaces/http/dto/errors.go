package dto

import (
	"net/http"
	"strings"
)

// errorCodeStatus maps domain error codes that do not follow the common
// naming conventions, or that need a status the conventions would not pick.
var errorCodeStatus = map[string]int{
	// Authentication.
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"ACCOUNT_LOCKED":      http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusUnauthorized,
	"USER_DEACTIVATED":    http.StatusUnauthorized,

	// Authorization.
	"FORBIDDEN": http.StatusForbidden,

	// Resources.
	"NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,
	"ROLE_TAKEN":     http.StatusConflict,

	// Business rules that are neither INVALID_* input nor a simple conflict.
	"INVALID_STATE":             http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":        http.StatusUnprocessableEntity,
	"CAPACITY_EXCEEDED":         http.StatusUnprocessableEntity,
	"CAPACITY_BELOW_ENROLLMENT": http.StatusUnprocessableEntity,
	"APPLICATIONS_CLOSED":       http.StatusUnprocessableEntity,
	"TRAINING_CLOSED":           http.StatusUnprocessableEntity,
	"PROGRAM_INACTIVE":          http.StatusUnprocessableEntity,
	"GROUP_INACTIVE":            http.StatusUnprocessableEntity,
	"NOT_ELIGIBLE":              http.StatusUnprocessableEntity,
	"NOT_ELIGIBLE_FOR_PR":       http.StatusUnprocessableEntity,
	"NOT_UPG_PROGRAM":           http.StatusUnprocessableEntity,
	"NOT_ENROLLED":              http.StatusUnprocessableEntity,
	"NOT_A_MEMBER":              http.StatusUnprocessableEntity,
	"NOT_APPROVED":              http.StatusUnprocessableEntity,
	"NOT_CALCULABLE":            http.StatusUnprocessableEntity,
	"OVER_DISBURSEMENT":         http.StatusUnprocessableEntity,
	"SURVEY_INACTIVE":           http.StatusUnprocessableEntity,
	"SURVEY_IN_USE":             http.StatusUnprocessableEntity,
	"RESPONSE_FINAL":            http.StatusUnprocessableEntity,
	"CONFIG_READONLY":           http.StatusUnprocessableEntity,
	"HEAD_ALREADY_SET":          http.StatusUnprocessableEntity,
	"DUPLICATE_MEMBER":          http.StatusUnprocessableEntity,
	"MEMBER_NOT_FOUND":          http.StatusUnprocessableEntity,

	// Infrastructure.
	"SMS_UNAVAILABLE": http.StatusServiceUnavailable,
	"INTERNAL_ERROR":  http.StatusInternalServerError,
	"DB_ERROR":        http.StatusInternalServerError,
}

// GetHTTPStatus resolves a domain error code to an HTTP status. Codes not in
// the explicit table fall back on naming conventions: malformed-input codes
// map to 400, duplicate-state codes to 409, and anything else is treated as a
// violated business rule (422) rather than a server fault.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "INVALID_"),
		strings.HasPrefix(code, "MISSING_"),
		strings.HasPrefix(code, "EMPTY_"),
		strings.HasPrefix(code, "AMBIGUOUS_"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "ALREADY_"):
		return http.StatusConflict
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	}
	return http.StatusUnprocessableEntity
}
