package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
	"github.com/SAP-F-2025/gradable-block-service/internal/repositories"
)

// ModuleAccessor resolves a student's persisted module record for one block
type ModuleAccessor struct {
	modules repositories.StudentModuleRepository
}

func NewModuleAccessor(modules repositories.StudentModuleRepository) *ModuleAccessor {
	return &ModuleAccessor{modules: modules}
}

// GetModule returns nil, nil when the identity is absent or no record exists
func (a *ModuleAccessor) GetModule(ctx context.Context, location string, id Identity) (*models.StudentModule, error) {
	var (
		module *models.StudentModule
		err    error
	)

	switch v := id.(type) {
	case ByRecord:
		if v.User == nil {
			return nil, nil
		}
		module, err = a.modules.GetByStudent(ctx, nil, v.User.ID, location)
	case ByUsername:
		if v.Username == "" {
			return nil, nil
		}
		module, err = a.modules.GetByUsername(ctx, nil, v.Username, location)
	default:
		return nil, nil
	}

	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student module: %w", err)
	}
	return module, nil
}
