package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/gradable-block-service/internal/events"
	"github.com/SAP-F-2025/gradable-block-service/internal/repositories"
	"github.com/SAP-F-2025/gradable-block-service/internal/validator"
)

// ServiceManagerConfig holds the injected collaborators of the block services
type ServiceManagerConfig struct {
	Renderer  ViewRenderer
	Publisher events.EventPublisher
	DueDates  DueDateResolver
	SaveHooks []SaveHook
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceManagerConfig

	// Service instances
	blockService  BlockService
	exportService ExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	if config.DueDates == nil {
		config.DueDates = ExtendedDueResolver{}
	}
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if sm.config.Renderer == nil {
		return fmt.Errorf("failed to initialize services: renderer is required")
	}

	sm.blockService = NewBlockService(sm.repo, sm.logger, sm.validator, sm.config.Renderer, sm.config.Publisher, sm.config.DueDates, sm.config.SaveHooks...)
	sm.logger.Info("Block service initialized", "save_hooks", len(sm.config.SaveHooks))

	sm.exportService = NewExportService(sm.repo, sm.logger)
	sm.logger.Info("Export service initialized")

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Block() BlockService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.blockService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.exportService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.config.Publisher != nil {
		if err := sm.config.Publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down")
	return nil
}
