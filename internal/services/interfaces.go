package services

import (
	"bytes"
	"context"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
	"github.com/SAP-F-2025/gradable-block-service/internal/render"
)

// SaveHook runs before the authored fields are overwritten. Hooks run in the
// order given; the first error aborts the save.
type SaveHook func(ctx context.Context, block *models.Block, req *models.SaveSettingsRequest) error

// ViewRenderer composes fragments from built contexts
type ViewRenderer interface {
	StudentView(callerCtx map[string]interface{}, rc *models.RenderContext) (*render.Fragment, error)
	StudioView(callerCtx map[string]interface{}, sc *models.SettingsContext) (*render.Fragment, error)
}

type BlockService interface {
	// Provisioning
	Create(ctx context.Context, req *models.CreateBlockRequest, rt *Runtime) (*models.Block, error)
	Get(ctx context.Context, location string) (*models.Block, error)
	GetScore(ctx context.Context, location string, rt *Runtime) (*ScoreBreakdown, error)

	// JSON actions
	ResetUserState(ctx context.Context, location string, req *models.UserLoginRequest, rt *Runtime) (*models.StateResponse, error)
	GetUserState(ctx context.Context, location string, req *models.UserLoginRequest, rt *Runtime) (*models.StateResponse, error)
	GetUserData(ctx context.Context, location string, rt *Runtime) (*models.RenderContext, error)
	SaveSettings(ctx context.Context, location string, req *models.SaveSettingsRequest, rt *Runtime) (map[string]interface{}, error)
	SavePoints(ctx context.Context, location string, req *models.SavePointsRequest, rt *Runtime) (*models.RenderContext, error)

	// Views
	StudentView(ctx context.Context, location string, callerCtx map[string]interface{}, rt *Runtime) (*render.Fragment, error)
	StudioView(ctx context.Context, location string, callerCtx map[string]interface{}, rt *Runtime) (*render.Fragment, error)
}

type ExportService interface {
	// ExportGrades returns an xlsx workbook with one row per student module
	ExportGrades(ctx context.Context, location string, rt *Runtime) (*bytes.Buffer, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Block() BlockService
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
