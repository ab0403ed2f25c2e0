package server

import (
	"errors"
	"net/http"
	"strings"

	admindomain "github.com/UknowEdy/chefetoile-backend/internal/admin/domain"
	auditdomain "github.com/UknowEdy/chefetoile-backend/internal/audit/domain"
	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/authorization"
	chefdomain "github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	menudomain "github.com/UknowEdy/chefetoile-backend/internal/menu/domain"
	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	ratingdomain "github.com/UknowEdy/chefetoile-backend/internal/rating/domain"
	subscriptiondomain "github.com/UknowEdy/chefetoile-backend/internal/subscription/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if code, ok := validationCode(err); ok {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: err.Error(),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isForbiddenError(err):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: forbiddenMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    conflictType(err),
			Message: err.Error(),
		}
	case errors.Is(err, authdomain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many attempts",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

var validationSentinels = []error{
	ErrInvalidRequest,
	authdomain.ErrInvalidEmail,
	authdomain.ErrInvalidPassword,
	authdomain.ErrInvalidName,
	authdomain.ErrInvalidPhone,
	authdomain.ErrInvalidRole,
	authdomain.ErrInvalidPickupPoint,
	authdomain.ErrSocialAccount,
	authdomain.ErrInvalidToken,
	authdomain.ErrTokenExpired,
	chefdomain.ErrInvalidName,
	chefdomain.ErrInvalidSettings,
	chefdomain.ErrInvalidDay,
	chefdomain.ErrInvalidLocation,
	menudomain.ErrInvalidStartDate,
	menudomain.ErrTooManyItems,
	menudomain.ErrInvalidMenuID,
	subscriptiondomain.ErrInvalidFormule,
	subscriptiondomain.ErrInvalidAction,
	subscriptiondomain.ErrInvalidPrice,
	orderdomain.ErrInvalidStatus,
	orderdomain.ErrInvalidMoment,
	orderdomain.ErrInvalidDate,
	orderdomain.ErrInvalidID,
	ratingdomain.ErrNoValidScores,
	ratingdomain.ErrInvalidScore,
	ratingdomain.ErrCommentTooLong,
	auditdomain.ErrInvalidPageToken,
	auditdomain.ErrInvalidTimeRange,
	auditdomain.ErrInvalidAction,
}

// validationCode returns the sentinel's code when err is a client input error.
func validationCode(err error) (string, bool) {
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return sentinel.Error(), true
		}
	}
	return "", false
}

func isForbiddenError(err error) bool {
	switch {
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden),
		errors.Is(err, admindomain.ErrNotAdmin),
		errors.Is(err, authdomain.ErrAccountSuspended),
		errors.Is(err, menudomain.ErrForbidden),
		errors.Is(err, subscriptiondomain.ErrForbidden),
		errors.Is(err, orderdomain.ErrForbidden):
		return true
	default:
		return false
	}
}

func forbiddenMessage(err error) string {
	if errors.Is(err, authdomain.ErrAccountSuspended) {
		return "account suspended"
	}
	return "forbidden"
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, chefdomain.ErrChefNotFound),
		errors.Is(err, menudomain.ErrMenuNotFound),
		errors.Is(err, subscriptiondomain.ErrSubscriptionNotFound),
		errors.Is(err, orderdomain.ErrOrderNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, subscriptiondomain.ErrAlreadyActive),
		errors.Is(err, subscriptiondomain.ErrInvalidState),
		errors.Is(err, subscriptiondomain.ErrMenuInactive),
		errors.Is(err, subscriptiondomain.ErrChefUnavailable),
		errors.Is(err, subscriptiondomain.ErrActivationInProgress),
		errors.Is(err, orderdomain.ErrInvalidTransition),
		errors.Is(err, ratingdomain.ErrOrderNotDelivered),
		errors.Is(err, ratingdomain.ErrAlreadyRated):
		return true
	default:
		return false
	}
}

func conflictType(err error) string {
	switch {
	case errors.Is(err, subscriptiondomain.ErrAlreadyActive):
		return "already_active"
	case errors.Is(err, ratingdomain.ErrAlreadyRated):
		return "already_rated"
	case errors.Is(err, authdomain.ErrUserExists):
		return "conflict"
	default:
		return "invalid_state"
	}
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	switch code {
	case ratingdomain.ErrNoValidScores.Error():
		return "notes"
	case ratingdomain.ErrCommentTooLong.Error():
		return "commentaire"
	default:
		return ""
	}
}

// classifyErrorForLog returns the error type and code recorded on the
// request log line.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	_, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	return payload.Type, code
}
