package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

	ErrDuplicateID   = errors.New("project id already exists")
	ErrDuplicateName = errors.New("name already exists")

	ErrNotOwner         = errors.New("only the project owner may do this")
	ErrNotAMember       = errors.New("user is not a member of the project")
	ErrAlreadyMember    = errors.New("user is already a member of the project")
	ErrOwnerCannotLeave = errors.New("the project owner cannot leave the project")

	ErrInvalidQuantity          = errors.New("quantity must be a positive integer")
	ErrInsufficientAvailability = errors.New("not enough units available")
	ErrOverReturn               = errors.New("cannot check in more units than the project holds")
	ErrInvalidCapacity          = errors.New("capacity must be at least 1")

	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidResetToken  = errors.New("reset token is invalid or expired")

	ErrMFARequired       = errors.New("a TOTP code is required")
	ErrInvalidTOTPCode   = errors.New("invalid TOTP code")
	ErrMFANotEnrolled    = errors.New("MFA is not enrolled")
	ErrMFANotEnabled     = errors.New("MFA is not enabled")
	ErrMFAAlreadyEnabled = errors.New("MFA is already enabled")

	// ErrInternal covers storage failures and exhausted conflict retries.
	ErrInternal = errors.New("internal error")
)

var (
	errProjectNotFound    = fmt.Errorf("project %w", ErrNotFound)
	errHardwareNotFound   = fmt.Errorf("hardware set %w", ErrNotFound)
	errMembershipNotFound = fmt.Errorf("membership %w", ErrNotFound)
)

// domainErrors are returned to callers unchanged. Anything else escaping a
// transaction is reported as ErrInternal.
var domainErrors = []error{
	ErrNotFound,
	ErrDuplicateID,
	ErrDuplicateName,
	ErrNotOwner,
	ErrNotAMember,
	ErrAlreadyMember,
	ErrOwnerCannotLeave,
	ErrInvalidQuantity,
	ErrInsufficientAvailability,
	ErrOverReturn,
	ErrInvalidCapacity,
	ErrInvalidRequest,
	ErrInvalidCredentials,
	ErrInvalidResetToken,
	ErrMFARequired,
	ErrInvalidTOTPCode,
	ErrMFANotEnrolled,
	ErrMFANotEnabled,
	ErrMFAAlreadyEnabled,
	ErrInternal,
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func internal(err error) error {
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
