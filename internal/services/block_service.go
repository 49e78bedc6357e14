package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/gradable-block-service/internal/events"
	"github.com/SAP-F-2025/gradable-block-service/internal/i18n"
	"github.com/SAP-F-2025/gradable-block-service/internal/models"
	"github.com/SAP-F-2025/gradable-block-service/internal/render"
	"github.com/SAP-F-2025/gradable-block-service/internal/repositories"
	"github.com/SAP-F-2025/gradable-block-service/internal/validator"
)

const blockResource = "block"

type blockService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	renderer  ViewRenderer
	publisher events.EventPublisher
	contexts  *ContextBuilder
	modules   *ModuleAccessor
	saveHooks []SaveHook
}

func NewBlockService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	renderer ViewRenderer,
	publisher events.EventPublisher,
	due DueDateResolver,
	saveHooks ...SaveHook,
) BlockService {
	modules := NewModuleAccessor(repo.StudentModule())
	return &blockService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		renderer:  renderer,
		publisher: publisher,
		contexts:  NewContextBuilder(modules, due),
		modules:   modules,
		saveHooks: saveHooks,
	}
}

// ===== PROVISIONING =====

func (s *blockService) Create(ctx context.Context, req *models.CreateBlockRequest, rt *Runtime) (*models.Block, error) {
	s.logger.Info("Creating block", "location", req.Location, "user_id", rt.userID())

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	key, err := models.ParseUsageKey(req.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	if _, err := s.repo.Block().GetByLocation(ctx, nil, key.String()); err == nil {
		return nil, ErrBlockExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check block existence: %w", err)
	}

	displayName := req.DisplayName
	if displayName == nil {
		name := models.DefaultDisplayName
		displayName = &name
	}

	block := &models.Block{
		Location:    key.String(),
		CourseID:    key.CourseKey(),
		BlockID:     key.BlockID,
		BlockType:   key.BlockType,
		DisplayName: displayName,
		Description: req.Description,
		Weight:      req.Weight,
		Attempts:    req.Attempts,
		Due:         req.Due,
	}

	if err := s.repo.Block().Create(ctx, nil, block); err != nil {
		return nil, fmt.Errorf("failed to create block: %w", err)
	}

	s.logger.Info("Block created successfully", "location", block.Location)
	return block, nil
}

func (s *blockService) Get(ctx context.Context, location string) (*models.Block, error) {
	return s.loadBlock(ctx, location)
}

func (s *blockService) GetScore(ctx context.Context, location string, rt *Runtime) (*ScoreBreakdown, error) {
	block, err := s.loadBlock(ctx, location)
	if err != nil {
		return nil, err
	}

	var points float64
	if rt != nil && rt.User != nil {
		module, err := s.modules.GetModule(ctx, block.Location, ByRecord{User: rt.User})
		if err != nil {
			return nil, err
		}
		if module != nil {
			fields, err := module.Fields()
			if err != nil {
				return nil, err
			}
			points = fields.Points
		}
	}

	score := GetScore(points, block.Weight)
	return &score, nil
}

// ===== JSON ACTIONS =====

// ResetUserState clears the target student's module. There is no version
// check: a write racing with the reset may be lost or may win.
func (s *blockService) ResetUserState(ctx context.Context, location string, req *models.UserLoginRequest, rt *Runtime) (*models.StateResponse, error) {
	if err := RequireStaff(rt, blockResource, "reset_user_state"); err != nil {
		return nil, err
	}

	block, err := s.loadBlock(ctx, location)
	if err != nil {
		return nil, err
	}

	module, err := s.modules.GetModule(ctx, block.Location, IdentityFromLogin(req.UserLogin))
	if err != nil {
		return nil, err
	}
	if module == nil {
		return &models.StateResponse{State: i18n.T(rt.locale(), i18n.ModuleNotFound)}, nil
	}

	module.Clear()
	if err := s.repo.StudentModule().Save(ctx, nil, module); err != nil {
		return nil, fmt.Errorf("failed to reset student module: %w", err)
	}

	s.logger.Info("User state reset", "location", block.Location, "student_id", module.StudentID, "reset_by", rt.userID())
	s.publish(ctx, events.UserStateReset, events.UserStateResetEvent{
		Location:  block.Location,
		StudentID: module.StudentID,
		Username:  module.Username,
		ResetBy:   rt.userID(),
	})

	return &models.StateResponse{State: i18n.T(rt.locale(), i18n.UserStateReset)}, nil
}

func (s *blockService) GetUserState(ctx context.Context, location string, req *models.UserLoginRequest, rt *Runtime) (*models.StateResponse, error) {
	if err := RequireStaff(rt, blockResource, "get_user_state"); err != nil {
		return nil, err
	}

	block, err := s.loadBlock(ctx, location)
	if err != nil {
		return nil, err
	}

	module, err := s.modules.GetModule(ctx, block.Location, IdentityFromLogin(req.UserLogin))
	if err != nil {
		return nil, err
	}
	if module == nil {
		return &models.StateResponse{State: i18n.T(rt.locale(), i18n.ModuleNotFound)}, nil
	}

	state := string(module.State)
	if state == "" {
		state = models.EmptyState
	}
	return &models.StateResponse{State: state}, nil
}

func (s *blockService) GetUserData(ctx context.Context, location string, rt *Runtime) (*models.RenderContext, error) {
	block, err := s.loadBlock(ctx, location)
	if err != nil {
		return nil, err
	}
	return s.contexts.BuildStudentContext(ctx, block, rt)
}

func (s *blockService) SaveSettings(ctx context.Context, location string, req *models.SaveSettingsRequest, rt *Runtime) (map[string]interface{}, error) {
	block, err := s.loadBlock(ctx, location)
	if err != nil {
		return nil, err
	}

	for _, hook := range s.saveHooks {
		if err := hook(ctx, block, req); err != nil {
			return nil, fmt.Errorf("save hook failed: %w", err)
		}
	}

	block.DisplayName = req.DisplayName
	block.Description = req.Description
	block.Weight = req.Weight
	block.Attempts = req.Attempts

	if err := s.repo.Block().UpdateSettings(ctx, nil, block); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBlockNotFound
		}
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.Info("Block settings saved", "location", block.Location, "user_id", rt.userID())
	s.publish(ctx, events.SettingsSaved, events.SettingsSavedEvent{
		Location:    block.Location,
		DisplayName: block.DisplayName,
		Weight:      block.Weight,
		Attempts:    block.Attempts,
		SavedBy:     rt.userID(),
	})

	return map[string]interface{}{}, nil
}

// SavePoints records the acting student's points and the resulting grade,
// creating the module on first use.
func (s *blockService) SavePoints(ctx context.Context, location string, req *models.SavePointsRequest, rt *Runtime) (*models.RenderContext, error) {
	if rt == nil || rt.User == nil {
		return nil, ErrUnauthorized
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	block, err := s.loadBlock(ctx, location)
	if err != nil {
		return nil, err
	}

	var saved *models.StudentModule
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		module, err := NewModuleAccessor(txRepo.StudentModule()).GetModule(ctx, block.Location, ByRecord{User: rt.User})
		if err != nil {
			return err
		}
		if module == nil {
			module = &models.StudentModule{
				StudentID:      rt.User.ID,
				Username:       rt.User.Username,
				ModuleStateKey: block.Location,
				CourseID:       block.CourseID,
			}
		}

		if err := module.SetPoints(req.Points); err != nil {
			return err
		}
		score := GetScore(req.Points, block.Weight)
		module.Grade = score.Score
		module.MaxGrade = MaxScore(block.Weight)

		if err := txRepo.StudentModule().Save(ctx, nil, module); err != nil {
			return fmt.Errorf("failed to save student module: %w", err)
		}
		saved = module
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.ScoreUpdated, events.ScoreUpdatedEvent{
		Location:  block.Location,
		StudentID: saved.StudentID,
		Points:    req.Points,
		Grade:     saved.Grade,
		MaxGrade:  saved.MaxGrade,
	})

	// Built directly: a memoized context from earlier in the request is stale now
	return s.contexts.buildStudentContext(ctx, block, rt)
}

// ===== VIEWS =====

func (s *blockService) StudentView(ctx context.Context, location string, callerCtx map[string]interface{}, rt *Runtime) (*render.Fragment, error) {
	block, err := s.loadBlock(ctx, location)
	if err != nil {
		return nil, err
	}

	rc, err := s.contexts.BuildStudentContext(ctx, block, rt)
	if err != nil {
		return nil, err
	}

	return s.renderer.StudentView(callerCtx, rc)
}

func (s *blockService) StudioView(ctx context.Context, location string, callerCtx map[string]interface{}, rt *Runtime) (*render.Fragment, error) {
	block, err := s.loadBlock(ctx, location)
	if err != nil {
		return nil, err
	}

	return s.renderer.StudioView(callerCtx, s.contexts.SettingsContext(block))
}

// ===== HELPERS =====

func (s *blockService) loadBlock(ctx context.Context, location string) (*models.Block, error) {
	block, err := s.repo.Block().GetByLocation(ctx, nil, location)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBlockNotFound
		}
		return nil, fmt.Errorf("failed to get block: %w", err)
	}
	return block, nil
}

// publish never fails the action; delivery errors are only logged
func (s *blockService) publish(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	event := events.NewEvent(eventType, data)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event", "type", eventType, "event_id", event.ID, "error", err)
	}
}
