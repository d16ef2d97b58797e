package responses

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"call-center-server/internal/domain/call"
	"call-center-server/internal/domain/webhook"
	"call-center-server/internal/utils/platformerrors"
)

// HandleError maps domain errors and platform errors to HTTP responses.
// Terminal sessions are reported the same as missing ones.
func HandleError(c *gin.Context, err error, message string) {
	logger := log.With().Str("path", c.Request.URL.Path).Logger()

	if errors.Is(err, call.ErrSessionNotFound) || errors.Is(err, call.ErrSessionTerminated) {
		platformerrors.WriteNotFound(c, message)
		return
	}
	if errors.Is(err, call.ErrSessionExists) {
		platformerrors.WriteConflict(c, message)
		return
	}
	if errors.Is(err, call.ErrTooManyCalls) {
		HandleNewError(c, platformerrors.ErrorTypeRateLimited, message)
		return
	}
	if errors.Is(err, webhook.ErrNotFound) {
		platformerrors.WriteNotFound(c, message)
		return
	}

	platformerrors.WriteError(c, err, logger)
}

// HandleNewError creates and writes a new typed error response.
// Use this for route-level errors like validation failures.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message string) {
	status := platformerrors.ErrorTypeToHTTPStatus(errorType)
	c.JSON(status, platformerrors.HTTPErrorResponse{
		Error: &platformerrors.HTTPErrorDetail{
			Message: message,
			Type:    errorTypeToString(errorType),
		},
	})
}

// errorTypeToString converts an ErrorType to a snake_case string for API
// responses.
func errorTypeToString(t platformerrors.ErrorType) string {
	switch t {
	case platformerrors.ErrorTypeNotFound:
		return "not_found_error"
	case platformerrors.ErrorTypeValidation:
		return "validation_error"
	case platformerrors.ErrorTypeConflict:
		return "conflict_error"
	case platformerrors.ErrorTypeUnauthorized:
		return "unauthorized_error"
	case platformerrors.ErrorTypeForbidden:
		return "forbidden_error"
	case platformerrors.ErrorTypeRateLimited:
		return "rate_limited_error"
	case platformerrors.ErrorTypeNotImplemented:
		return "not_implemented_error"
	case platformerrors.ErrorTypeExternal:
		return "external_error"
	case platformerrors.ErrorTypeTransferFailed:
		return "transfer_failed_error"
	case platformerrors.ErrorTypeInternal:
		fallthrough
	default:
		return "internal_error"
	}
}
