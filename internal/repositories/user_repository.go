package repositories

import (
	"context"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
)

// UserRepository is read-only: the identity provider owns user data
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
