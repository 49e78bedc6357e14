package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gradable-block-service/internal/i18n"
	"github.com/SAP-F-2025/gradable-block-service/internal/models"
	"github.com/SAP-F-2025/gradable-block-service/internal/repositories"
	"github.com/SAP-F-2025/gradable-block-service/internal/services"
)

const runtimeKey = "runtime"

// RuntimeMiddleware builds the services.Runtime for the request from the
// authenticated user. Studio routes get no real-user resolver, which is what
// marks them as studio context.
func RuntimeMiddleware(userRepo repositories.UserRepository, defaultLocale string, studio bool) gin.HandlerFunc {
	var resolver services.RealUserResolver
	if !studio {
		resolver = realUserResolver(userRepo)
	}

	return func(c *gin.Context) {
		rt := &services.Runtime{
			GetRealUser: resolver,
			Locale:      i18n.Negotiate(c.GetHeader("Accept-Language"), defaultLocale),
		}

		if user, err := GetUserFromContext(c); err == nil {
			rt.User = user
		}
		if v, ok := c.Get(isStaffKey); ok {
			if staff, ok := v.(bool); ok {
				rt.UserIsStaff = &staff
			}
		}

		c.Set(runtimeKey, rt)
		c.Next()
	}
}

func realUserResolver(userRepo repositories.UserRepository) services.RealUserResolver {
	return func(ctx context.Context, username string) (*models.User, error) {
		if userRepo == nil {
			return nil, nil
		}
		user, err := userRepo.GetByUsername(ctx, username)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return user, err
	}
}

// GetRuntime returns the runtime set by RuntimeMiddleware
func GetRuntime(c *gin.Context) (*services.Runtime, error) {
	v, exists := c.Get(runtimeKey)
	if !exists {
		return nil, fmt.Errorf("runtime not found in context")
	}
	rt, ok := v.(*services.Runtime)
	if !ok {
		return nil, fmt.Errorf("invalid runtime type in context")
	}
	return rt, nil
}
