package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
)

// ErrNotFound is returned by every repository when the requested row does not exist
var ErrNotFound = errors.New("record not found")

// BlockRepository persists the settings-scope fields of blocks
type BlockRepository interface {
	Create(ctx context.Context, tx *gorm.DB, block *models.Block) error
	GetByLocation(ctx context.Context, tx *gorm.DB, location string) (*models.Block, error)
	// UpdateSettings overwrites the authored fields, including nil values
	UpdateSettings(ctx context.Context, tx *gorm.DB, block *models.Block) error
}

// StudentModuleRepository reads and writes per-student module state
type StudentModuleRepository interface {
	GetByStudent(ctx context.Context, tx *gorm.DB, studentID, location string) (*models.StudentModule, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username, location string) (*models.StudentModule, error)
	ListByModule(ctx context.Context, tx *gorm.DB, location string) ([]*models.StudentModule, error)
	// Save inserts the module when ID is zero and updates it otherwise
	Save(ctx context.Context, tx *gorm.DB, module *models.StudentModule) error
}
