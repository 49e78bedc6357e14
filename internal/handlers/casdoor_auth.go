package handlers

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gradable-block-service/internal/config"
	"github.com/SAP-F-2025/gradable-block-service/internal/models"
	"github.com/SAP-F-2025/gradable-block-service/internal/repositories"
	"github.com/SAP-F-2025/gradable-block-service/internal/repositories/casdoor"
)

const isStaffKey = "is_staff"

// TokenParser validates a bearer token and returns its claims
type TokenParser interface {
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
}

// CasdoorAuthMiddleware provides authentication using Casdoor SDK
type CasdoorAuthMiddleware struct {
	parser     TokenParser
	userRepo   repositories.UserRepository
	staffRoles []models.UserRole
}

// NewCasdoorAuthMiddleware creates a new Casdoor authentication middleware
func NewCasdoorAuthMiddleware(cfg config.CasdoorConfig, staffRoles []string, userRepo repositories.UserRepository) *CasdoorAuthMiddleware {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)

	return newAuthMiddleware(client, staffRoles, userRepo)
}

func newAuthMiddleware(parser TokenParser, staffRoles []string, userRepo repositories.UserRepository) *CasdoorAuthMiddleware {
	roles := make([]models.UserRole, 0, len(staffRoles))
	for _, r := range staffRoles {
		roles = append(roles, casdoor.MapRole(strings.TrimSpace(r)))
	}

	return &CasdoorAuthMiddleware{
		parser:     parser,
		userRepo:   userRepo,
		staffRoles: roles,
	}
}

// AuthMiddleware returns a Gin middleware function for Casdoor authentication
func (cam *CasdoorAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "authorization header missing",
			})
			return
		}

		// Extract token from "Bearer <token>" format
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "invalid authorization header format",
			})
			return
		}

		claims, err := cam.parser.ParseJwtToken(tokenParts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "invalid token",
				Details: err.Error(),
			})
			return
		}

		user, err := cam.extractUserFromClaims(c.Request.Context(), claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "failed to extract user info",
				Details: err.Error(),
			})
			return
		}

		SetUser(c, user, cam.IsStaff(user))
		c.Next()
	}
}

// IsStaff reports whether the user's role is one of the configured staff roles
func (cam *CasdoorAuthMiddleware) IsStaff(user *models.User) bool {
	return user != nil && slices.Contains(cam.staffRoles, user.Role)
}

// RequireRoleMiddleware checks if user has required role
func (cam *CasdoorAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetUserRoleFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: err.Error(),
			})
			return
		}

		if role != models.RoleAdmin && !slices.Contains(requiredRoles, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
			})
			return
		}

		c.Next()
	}
}

// extractUserFromClaims prefers the identity provider's current record and
// falls back to the token claims when it cannot be fetched
func (cam *CasdoorAuthMiddleware) extractUserFromClaims(ctx context.Context, claims *casdoorsdk.Claims) (*models.User, error) {
	if claims.Id == "" {
		return nil, fmt.Errorf("invalid user ID in token")
	}

	if cam.userRepo != nil {
		if user, err := cam.userRepo.GetByID(ctx, claims.Id); err == nil && user != nil {
			return user, nil
		}
	}

	user := casdoor.ConvertUser(&claims.User)
	if user == nil {
		return nil, fmt.Errorf("failed to create user from claims")
	}
	return user, nil
}

// SetUser stores the authenticated user in the gin context
func SetUser(c *gin.Context, user *models.User, isStaff bool) {
	c.Set("user_id", user.ID)
	c.Set("user", user)
	c.Set("user_role", user.Role)
	c.Set(isStaffKey, isStaff)
}

// GetUserFromContext extracts user from Gin context
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	user, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("user not found in context")
	}

	userModel, ok := user.(*models.User)
	if !ok {
		return nil, fmt.Errorf("invalid user type in context")
	}

	return userModel, nil
}

// GetUserRoleFromContext extracts user role from Gin context
func GetUserRoleFromContext(c *gin.Context) (models.UserRole, error) {
	userRole, exists := c.Get("user_role")
	if !exists {
		return "", fmt.Errorf("user role not found in context")
	}

	role, ok := userRole.(models.UserRole)
	if !ok {
		return "", fmt.Errorf("invalid user role type in context")
	}

	return role, nil
}
