package lendsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Typed error codes carried in the "error" field of failed responses.
const (
	CodeNotFound                 = "not_found"
	CodeUserNotFound             = "user_not_found"
	CodeDuplicateID              = "duplicate_id"
	CodeDuplicateName            = "duplicate_name"
	CodeNotOwner                 = "not_owner"
	CodeNotAMember               = "not_a_member"
	CodeAlreadyMember            = "already_member"
	CodeOwnerCannotLeave         = "owner_cannot_leave"
	CodeInvalidQuantity          = "invalid_quantity"
	CodeInsufficientAvailability = "insufficient_availability"
	CodeOverReturn               = "over_return"
	CodeInvalidCapacity          = "invalid_capacity"
	CodeInvalidRequest           = "invalid_request"
	CodeInvalidCredentials       = "invalid_credentials"
	CodeInvalidResetToken        = "invalid_reset_token"
	CodeMFARequired              = "mfa_required"
	CodeInvalidTOTPCode          = "invalid_totp_code"
	CodeMFANotEnrolled           = "mfa_not_enrolled"
	CodeMFANotEnabled            = "mfa_not_enabled"
	CodeMFAAlreadyEnabled        = "mfa_already_enabled"
	CodeUnauthorized             = "unauthorized"
	CodeInsufficientScope        = "insufficient_scope"
	CodeRateLimitExceeded        = "rate_limit_exceeded"
	CodeInternalError            = "internal_error"
)

// ErrSessionExpired is returned by Session methods once the access token has
// expired. Sign in again to continue.
var ErrSessionExpired = errors.New("lendsdk: session expired")

// APIError is a failed API response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse turns a non-2xx response body into an APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var env Envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Error,
			Message:    env.Message,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       CodeInternalError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
