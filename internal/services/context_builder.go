package services

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
	"github.com/SAP-F-2025/gradable-block-service/internal/utils"
)

// ContextBuilder assembles the read models handed to the views and to get_user_data
type ContextBuilder struct {
	modules *ModuleAccessor
	due     DueDateResolver
}

func NewContextBuilder(modules *ModuleAccessor, due DueDateResolver) *ContextBuilder {
	if due == nil {
		due = ExtendedDueResolver{}
	}
	return &ContextBuilder{
		modules: modules,
		due:     due,
	}
}

// BuildStudentContext returns the render context of the acting user. The result
// is computed once per request and block.
func (b *ContextBuilder) BuildStudentContext(ctx context.Context, block *models.Block, rt *Runtime) (*models.RenderContext, error) {
	key := fmt.Sprintf("student_context:%s:%s", block.Location, rt.userID())
	return utils.Memoize(ctx, key, func() (*models.RenderContext, error) {
		return b.buildStudentContext(ctx, block, rt)
	})
}

func (b *ContextBuilder) buildStudentContext(ctx context.Context, block *models.Block, rt *Runtime) (*models.RenderContext, error) {
	var module *models.StudentModule
	if rt != nil && rt.User != nil {
		var err error
		module, err = b.modules.GetModule(ctx, block.Location, ByRecord{User: rt.User})
		if err != nil {
			return nil, err
		}
	}

	var points float64
	if module != nil {
		fields, err := module.Fields()
		if err != nil {
			return nil, err
		}
		points = fields.Points
	}

	text := ""
	if block.Description != nil {
		text = *block.Description
	}

	score := GetScore(points, block.Weight)

	return &models.RenderContext{
		Meta: models.RenderMeta{
			Location: block.Location,
			ID:       block.BlockID,
			Name:     block.DisplayName,
			Text:     text,
			Due:      FormatDue(b.due.Resolve(block, module)),
			Attempts: block.Attempts,
		},
		StudentState: models.StudentState{
			Score: models.ScoreState{
				Earned: score.Score,
				Max:    score.Total,
				String: ScoreString(points, block.Weight, rt.locale()),
			},
			IsStaff:  IsStaff(rt),
			IsStudio: IsStudioContext(rt),
		},
	}, nil
}

// SettingsContext returns the authored fields for the studio view
func (b *ContextBuilder) SettingsContext(block *models.Block) *models.SettingsContext {
	return &models.SettingsContext{
		ID: block.Location,
		Metadata: models.SettingsMetadata{
			DisplayName: block.DisplayName,
			Description: block.Description,
			Weight:      block.Weight,
			Attempts:    block.Attempts,
		},
	}
}
