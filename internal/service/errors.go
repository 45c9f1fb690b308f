package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidToken           = errors.New("invalid token")
	ErrForbidden              = errors.New("forbidden")
	ErrDuplicateUser          = errors.New("user already exists")
	ErrProtectedAccount       = errors.New("account is protected")
	ErrUserNotFound           = errors.New("user not found")
	ErrDuplicateStaff         = errors.New("staff member already exists")
	ErrUnknownStaff           = errors.New("unknown staff member")
	ErrMisconfigured          = errors.New("auth config invalid")
)

// ValidationError reports a request payload rejected before it reaches a
// service operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
