package services

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP statuses by the handlers
var (
	ErrBlockNotFound    = errors.New("block not found")
	ErrBlockExists      = errors.New("block already exists")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrBadRequest       = errors.New("bad request")
	ErrValidationFailed = errors.New("validation failed")
)

// AuthorizationError is returned when the acting user lacks the rights for an action
type AuthorizationError struct {
	UserID   string
	Resource string
	Action   string
	Reason   string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("user %s cannot %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
}

func NewAuthorizationError(userID, resource, action, reason string) *AuthorizationError {
	return &AuthorizationError{
		UserID:   userID,
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}

func IsAuthorizationError(err error) bool {
	var authErr *AuthorizationError
	return errors.As(err, &authErr)
}
