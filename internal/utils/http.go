package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/logger"
)

// Error kinds returned to clients next to the message
const (
	KindValidation   = "validation"
	KindUnauthorized = "unauthorized"
	KindForbidden    = "forbidden"
	KindNotFound     = "not_found"
	KindConflict     = "conflict"
	KindDependency   = "dependency"
	KindRateLimited  = "rate_limited"
	KindInternal     = "internal"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Code    int    `json:"code"`
}

// SuccessResponse sends a success response with data
func SuccessResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseHandler sends an error response of the given kind
func ErrorResponseHandler(c echo.Context, statusCode int, kind, errorMessage string) error {
	return c.JSON(statusCode, ErrorResponse{
		Success: false,
		Error:   errorMessage,
		Kind:    kind,
		Code:    statusCode,
	})
}

// BadRequestResponse sends a 400 for a malformed request
func BadRequestResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, KindValidation, errorMessage)
}

// UnauthorizedResponse sends a 401 for a missing or invalid credential
func UnauthorizedResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Unauthorized"
	}
	return ErrorResponseHandler(c, http.StatusUnauthorized, KindUnauthorized, errorMessage)
}

// DomainErrorResponse maps a typed application error onto its HTTP status.
// Untyped errors become 500 without leaking their message.
func DomainErrorResponse(c echo.Context, err error) error {
	switch {
	case apperror.IsValidation(err):
		var ve apperror.ValidationError
		errors.As(err, &ve)
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Kind:  KindValidation,
			Field: ve.Field,
			Code:  http.StatusBadRequest,
		})
	case apperror.IsAuthorization(err):
		return ErrorResponseHandler(c, http.StatusForbidden, KindForbidden, err.Error())
	case apperror.IsNotFound(err):
		return ErrorResponseHandler(c, http.StatusNotFound, KindNotFound, err.Error())
	case apperror.IsConflict(err):
		return ErrorResponseHandler(c, http.StatusConflict, KindConflict, err.Error())
	case apperror.IsDependency(err):
		return ErrorResponseHandler(c, http.StatusBadGateway, KindDependency, err.Error())
	case apperror.IsManualIntervention(err):
		return c.JSON(http.StatusAccepted, Response{
			Success: false,
			Message: err.Error(),
			Data:    map[string]bool{"manual_intervention_required": true},
		})
	}

	logger.ErrorCtx(c.Request().Context(), "Unhandled error",
		logger.String("path", c.Path()),
		logger.Err(err))
	return ErrorResponseHandler(c, http.StatusInternalServerError, KindInternal, "Internal server error")
}

// HTTPErrorHandler renders errors that escape the handlers (unknown routes,
// wrong methods, middleware errors) in the same envelope as DomainErrorResponse
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		_ = DomainErrorResponse(c, err)
		return
	}

	kind := KindInternal
	switch {
	case he.Code == http.StatusNotFound:
		kind = KindNotFound
	case he.Code == http.StatusUnauthorized:
		kind = KindUnauthorized
	case he.Code == http.StatusForbidden:
		kind = KindForbidden
	case he.Code == http.StatusTooManyRequests:
		kind = KindRateLimited
	case he.Code < 500:
		kind = KindValidation
	}

	msg := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok && m != "" {
		msg = m
	}
	_ = ErrorResponseHandler(c, he.Code, kind, msg)
}
