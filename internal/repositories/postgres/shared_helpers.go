package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/gradable-block-service/internal/repositories"
)

// SharedHelpers contains the connection-selection and error-mapping logic
// shared by every gorm repository
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// getDB returns the transaction when one is in flight
func (h *SharedHelpers) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return h.db
}

// mapError turns gorm's not-found into repositories.ErrNotFound
func (h *SharedHelpers) mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
