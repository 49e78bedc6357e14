package services

import (
	"time"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
)

const DueDateLayout = "02.01.2006 15:04:05"

// DueDateResolver computes the effective due date of a block for one student
type DueDateResolver interface {
	Resolve(block *models.Block, module *models.StudentModule) *time.Time
}

// ExtendedDueResolver lets a per-student extended_due override the block due date
type ExtendedDueResolver struct{}

func (ExtendedDueResolver) Resolve(block *models.Block, module *models.StudentModule) *time.Time {
	if module != nil {
		if fields, err := module.Fields(); err == nil && fields.ExtendedDue != nil {
			return fields.ExtendedDue
		}
	}
	if block == nil {
		return nil
	}
	return block.Due
}

// FormatDue renders a due date in UTC, nil when absent
func FormatDue(due *time.Time) *string {
	if due == nil {
		return nil
	}
	s := due.UTC().Format(DueDateLayout)
	return &s
}
