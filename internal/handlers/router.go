package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gradable-block-service/internal/config"
	"github.com/SAP-F-2025/gradable-block-service/internal/models"
	"github.com/SAP-F-2025/gradable-block-service/internal/render"
	"github.com/SAP-F-2025/gradable-block-service/internal/repositories"
	"github.com/SAP-F-2025/gradable-block-service/internal/services"
	"github.com/SAP-F-2025/gradable-block-service/internal/utils"
)

// AssetPath is where the embedded js and css are served
const AssetPath = "/static/block"

var authorRoles = []models.UserRole{models.RoleTeacher, models.RoleAdmin}

type HandlerManager struct {
	blockHandler   *BlockHandler
	userHandler    *UserHandler
	authMiddleware *CasdoorAuthMiddleware
	serviceManager services.ServiceManager
	userRepo       repositories.UserRepository
	defaultLocale  string
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	cfg *config.Config,
	userRepo repositories.UserRepository,
) *HandlerManager {
	return &HandlerManager{
		blockHandler:   NewBlockHandler(serviceManager.Block(), serviceManager.Export(), logger),
		userHandler:    NewUserHandler(logger),
		authMiddleware: NewCasdoorAuthMiddleware(cfg.Casdoor, cfg.StaffRoles, userRepo),
		serviceManager: serviceManager,
		userRepo:       userRepo,
		defaultLocale:  cfg.DefaultLocale,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)
	router.StaticFS(AssetPath, http.FS(render.Assets()))

	// API v1 routes with authentication
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	registerRoutes(v1, hm.blockHandler, hm.userHandler, hm.authMiddleware.RequireRoleMiddleware(authorRoles...), hm.userRepo, hm.defaultLocale)
}

// registerRoutes wires the block routes onto an authenticated group. The LMS
// routes resolve real users; the studio routes do not.
func registerRoutes(v1 *gin.RouterGroup, bh *BlockHandler, uh *UserHandler, requireAuthor gin.HandlerFunc, userRepo repositories.UserRepository, defaultLocale string) {
	lms := v1.Group("")
	lms.Use(RuntimeMiddleware(userRepo, defaultLocale, false))
	{
		lms.GET("/users/me", uh.GetCurrentUser)
		lms.GET("/users/:username", uh.GetUser)

		blocks := lms.Group("/blocks")
		{
			blocks.POST("", requireAuthor, bh.CreateBlock)
			blocks.GET("/:location", bh.GetBlock)
			blocks.GET("/:location/score", bh.GetScore)
			blocks.GET("/:location/grades/export", bh.ExportGrades)
			blocks.POST("/:location/student_view", bh.StudentView)

			handler := blocks.Group("/:location/handler")
			{
				handler.POST("/reset_user_state", bh.ResetUserState)
				handler.POST("/get_user_state", bh.GetUserState)
				handler.POST("/get_user_data", bh.GetUserData)
				handler.POST("/save_points", bh.SavePoints)
			}
		}
	}

	studio := v1.Group("/studio")
	studio.Use(requireAuthor, RuntimeMiddleware(userRepo, defaultLocale, true))
	{
		blocks := studio.Group("/blocks")
		{
			blocks.POST("/:location/studio_view", bh.StudioView)
			blocks.POST("/:location/student_view", bh.StudentView)
			blocks.POST("/:location/handler/save_settings", bh.SaveSettings)
		}
	}
}

// HealthCheck endpoint
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	status := http.StatusOK
	state := "healthy"
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		state = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":    state,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gradable-block-service",
	})
}
