package services

import (
	"context"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
)

// RealUserResolver looks up a user by login. The LMS runtime provides one;
// the studio runtime does not, which is how studio context is detected.
type RealUserResolver func(ctx context.Context, username string) (*models.User, error)

// Runtime carries the host facts a block action depends on
type Runtime struct {
	User        *models.User
	UserIsStaff *bool
	GetRealUser RealUserResolver
	Locale      string
}

// IsStaff reports the runtime's staff flag; an absent flag is false
func IsStaff(rt *Runtime) bool {
	return rt != nil && rt.UserIsStaff != nil && *rt.UserIsStaff
}

// IsStudioContext is true when no real-user resolver is available
func IsStudioContext(rt *Runtime) bool {
	return rt == nil || rt.GetRealUser == nil
}

// RequireStaff fails with an AuthorizationError for non-staff callers
func RequireStaff(rt *Runtime, resource, action string) error {
	if IsStaff(rt) {
		return nil
	}
	return NewAuthorizationError(rt.userID(), resource, action, "staff access required")
}

func (rt *Runtime) userID() string {
	if rt == nil || rt.User == nil {
		return "anonymous"
	}
	return rt.User.ID
}

func (rt *Runtime) locale() string {
	if rt == nil {
		return ""
	}
	return rt.Locale
}
