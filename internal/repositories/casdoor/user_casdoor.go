package casdoor

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/gradable-block-service/internal/cache"
	"github.com/SAP-F-2025/gradable-block-service/internal/models"
	"github.com/SAP-F-2025/gradable-block-service/internal/repositories"
)

// CasdoorConfig holds the configuration for Casdoor connection
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

type UserCasdoor struct {
	client *casdoorsdk.Client
	cache  *cache.CacheHelper
}

func NewUserCasdoor(config CasdoorConfig, redisClient *redis.Client) repositories.UserRepository {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)

	return &UserCasdoor{
		client: client,
		cache:  cache.NewCacheManager(redisClient).User,
	}
}

// ConvertUser maps a Casdoor account onto the acting-user model
func ConvertUser(casdoorUser *casdoorsdk.User) *models.User {
	if casdoorUser == nil {
		return nil
	}

	var avatar *string
	if casdoorUser.Avatar != "" {
		avatar = &casdoorUser.Avatar
	}

	fullName := casdoorUser.DisplayName
	if fullName == "" {
		fullName = casdoorUser.Name
	}

	return &models.User{
		ID:        casdoorUser.Id,
		Username:  casdoorUser.Name,
		FullName:  fullName,
		Email:     casdoorUser.Email,
		Role:      convertRoles(casdoorUser),
		AvatarURL: avatar,
	}
}

func convertRoles(casdoorUser *casdoorsdk.User) models.UserRole {
	var roles []models.UserRole
	seen := make(map[models.UserRole]bool)
	for _, casdoorRole := range casdoorUser.Roles {
		if casdoorRole == nil {
			continue
		}
		mapped := MapRole(casdoorRole.Name)
		if !seen[mapped] {
			roles = append(roles, mapped)
			seen[mapped] = true
		}
	}

	// if contain admin, only keep admin
	if slices.Contains(roles, models.RoleAdmin) || casdoorUser.IsAdmin {
		return models.RoleAdmin
	}
	if slices.Contains(roles, models.RoleTeacher) {
		return models.RoleTeacher
	}
	return models.RoleStudent
}

// MapRole maps a Casdoor role name onto a UserRole; unknown names are students
func MapRole(name string) models.UserRole {
	switch strings.ToLower(name) {
	case "teacher", "instructor", "staff":
		return models.RoleTeacher
	case "admin", "administrator":
		return models.RoleAdmin
	default:
		return models.RoleStudent
	}
}

// GetByID retrieves a user by Casdoor ID
func (u *UserCasdoor) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := u.cache.CacheOrExecute(ctx, "id:"+id, &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		casdoorUser, err := u.client.GetUserByUserId(id)
		if err != nil {
			return nil, fmt.Errorf("failed to get user from Casdoor: %w", err)
		}
		if casdoorUser == nil {
			return nil, repositories.ErrNotFound
		}
		return ConvertUser(casdoorUser), nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by login name
func (u *UserCasdoor) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := u.cache.CacheOrExecute(ctx, "name:"+username, &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		casdoorUser, err := u.client.GetUser(username)
		if err != nil {
			return nil, fmt.Errorf("failed to get user by name from Casdoor: %w", err)
		}
		if casdoorUser == nil {
			return nil, repositories.ErrNotFound
		}
		return ConvertUser(casdoorUser), nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
