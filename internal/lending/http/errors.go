package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/hwlend/internal/lending/service"
	"github.com/aussiebroadwan/hwlend/pkg/httpx"
	"github.com/aussiebroadwan/hwlend/pkg/lendsdk"
	"github.com/aussiebroadwan/hwlend/pkg/slogx"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable is matched in order, so ErrUserNotFound must stay ahead of the
// ErrNotFound it wraps.
var errorTable = []errorMapping{
	{service.ErrUserNotFound, http.StatusNotFound, lendsdk.CodeUserNotFound},
	{service.ErrNotFound, http.StatusNotFound, lendsdk.CodeNotFound},
	{service.ErrDuplicateID, http.StatusConflict, lendsdk.CodeDuplicateID},
	{service.ErrDuplicateName, http.StatusConflict, lendsdk.CodeDuplicateName},
	{service.ErrNotOwner, http.StatusForbidden, lendsdk.CodeNotOwner},
	{service.ErrNotAMember, http.StatusForbidden, lendsdk.CodeNotAMember},
	{service.ErrAlreadyMember, http.StatusConflict, lendsdk.CodeAlreadyMember},
	{service.ErrOwnerCannotLeave, http.StatusConflict, lendsdk.CodeOwnerCannotLeave},
	{service.ErrInvalidQuantity, http.StatusBadRequest, lendsdk.CodeInvalidQuantity},
	{service.ErrInsufficientAvailability, http.StatusConflict, lendsdk.CodeInsufficientAvailability},
	{service.ErrOverReturn, http.StatusConflict, lendsdk.CodeOverReturn},
	{service.ErrInvalidCapacity, http.StatusBadRequest, lendsdk.CodeInvalidCapacity},
	{service.ErrInvalidRequest, http.StatusBadRequest, lendsdk.CodeInvalidRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, lendsdk.CodeInvalidCredentials},
	{service.ErrInvalidResetToken, http.StatusBadRequest, lendsdk.CodeInvalidResetToken},
	{service.ErrMFARequired, http.StatusUnauthorized, lendsdk.CodeMFARequired},
	{service.ErrInvalidTOTPCode, http.StatusUnauthorized, lendsdk.CodeInvalidTOTPCode},
	{service.ErrMFANotEnrolled, http.StatusConflict, lendsdk.CodeMFANotEnrolled},
	{service.ErrMFANotEnabled, http.StatusConflict, lendsdk.CodeMFANotEnabled},
	{service.ErrMFAAlreadyEnabled, http.StatusConflict, lendsdk.CodeMFAAlreadyEnabled},
}

// statusFor maps a service error to its HTTP status and typed code.
func statusFor(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, lendsdk.CodeInternalError
}

// writeServiceError writes the envelope for err. Internal errors are logged
// and replaced with a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, status, code, "internal server error")
		return
	}
	httpx.WriteError(w, status, code, err.Error())
}

func writeBadRequest(w http.ResponseWriter, message string) {
	httpx.WriteError(w, http.StatusBadRequest, lendsdk.CodeInvalidRequest, message)
}

// requireUser returns the token subject. AuthnMiddleware guarantees it, so a
// miss is answered with 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, ok := httpx.UsernameFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, lendsdk.CodeUnauthorized, "missing authenticated user")
		return "", false
	}
	return username, true
}

func success(message string) lendsdk.Envelope {
	return lendsdk.Envelope{Success: true, Message: message}
}
