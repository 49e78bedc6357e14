package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
	"github.com/SAP-F-2025/gradable-block-service/internal/repositories"
)

// StudentModulePostgreSQL is not cached: module state is read and written
// within single requests and must never be served stale.
type StudentModulePostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewStudentModulePostgreSQL(db *gorm.DB) repositories.StudentModuleRepository {
	return &StudentModulePostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (s *StudentModulePostgreSQL) GetByStudent(ctx context.Context, tx *gorm.DB, studentID, location string) (*models.StudentModule, error) {
	db := s.helpers.getDB(tx)
	var module models.StudentModule
	err := db.WithContext(ctx).
		Where("student_id = ? AND module_state_key = ?", studentID, location).
		First(&module).Error
	if err != nil {
		return nil, s.helpers.mapError("get student module", err)
	}
	return &module, nil
}

func (s *StudentModulePostgreSQL) GetByUsername(ctx context.Context, tx *gorm.DB, username, location string) (*models.StudentModule, error) {
	db := s.helpers.getDB(tx)
	var module models.StudentModule
	err := db.WithContext(ctx).
		Where("username = ? AND module_state_key = ?", username, location).
		First(&module).Error
	if err != nil {
		return nil, s.helpers.mapError("get student module by username", err)
	}
	return &module, nil
}

func (s *StudentModulePostgreSQL) ListByModule(ctx context.Context, tx *gorm.DB, location string) ([]*models.StudentModule, error) {
	db := s.helpers.getDB(tx)
	var modules []*models.StudentModule
	err := db.WithContext(ctx).
		Where("module_state_key = ?", location).
		Order("username ASC").
		Find(&modules).Error
	if err != nil {
		return nil, s.helpers.mapError("list student modules", err)
	}
	return modules, nil
}

func (s *StudentModulePostgreSQL) Save(ctx context.Context, tx *gorm.DB, module *models.StudentModule) error {
	db := s.helpers.getDB(tx)
	return s.helpers.mapError("save student module", db.WithContext(ctx).Save(module).Error)
}
