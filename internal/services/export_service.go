package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/gradable-block-service/internal/repositories"
)

const gradesSheet = "Grades"

var gradeHeaders = []interface{}{"Username", "Student ID", "Points", "Grade", "Max Grade", "Updated At"}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

func (s *exportService) ExportGrades(ctx context.Context, location string, rt *Runtime) (*bytes.Buffer, error) {
	if err := RequireStaff(rt, blockResource, "export_grades"); err != nil {
		return nil, err
	}

	if _, err := s.repo.Block().GetByLocation(ctx, nil, location); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBlockNotFound
		}
		return nil, fmt.Errorf("failed to get block: %w", err)
	}

	modules, err := s.repo.StudentModule().ListByModule(ctx, nil, location)
	if err != nil {
		return nil, fmt.Errorf("failed to list student modules: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", gradesSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(gradesSheet, "A1", &gradeHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, module := range modules {
		fields, err := module.Fields()
		if err != nil {
			s.logger.Warn("Skipping unreadable module state", "module_id", module.ID, "error", err)
		}

		row := []interface{}{
			module.Username,
			module.StudentID,
			fields.Points,
			optionalFloat(module.Grade),
			optionalFloat(module.MaxGrade),
			module.UpdatedAt.UTC().Format(DueDateLayout),
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(gradesSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Grades exported", "location", location, "rows", len(modules), "user_id", rt.userID())
	return buf, nil
}

func optionalFloat(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
