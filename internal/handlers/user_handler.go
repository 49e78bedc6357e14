package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
	"github.com/SAP-F-2025/gradable-block-service/internal/repositories"
	"github.com/SAP-F-2025/gradable-block-service/internal/services"
	"github.com/SAP-F-2025/gradable-block-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
}

func NewUserHandler(logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
	}
}

// CurrentUserResponse describes the acting user as the block runtime sees them
type CurrentUserResponse struct {
	User     *models.User `json:"user"`
	IsStaff  bool         `json:"is_staff"`
	IsStudio bool         `json:"is_studio"`
	Locale   string       `json:"locale"`
}

// GetCurrentUser returns the authenticated user and runtime flags
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} CurrentUserResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	rt, err := GetRuntime(c)
	if err != nil || rt.User == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	c.JSON(http.StatusOK, CurrentUserResponse{
		User:     rt.User,
		IsStaff:  services.IsStaff(rt),
		IsStudio: services.IsStudioContext(rt),
		Locale:   rt.Locale,
	})
}

// GetUser resolves a login through the runtime's real-user resolver (staff only)
// @Summary Get user by username
// @Tags users
// @Produce json
// @Param username path string true "Login name"
// @Success 200 {object} models.User
// @Failure 403 {object} ErrorResponse "Forbidden - staff only"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{username} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	rt, err := GetRuntime(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	if err := services.RequireStaff(rt, "user", "read"); err != nil {
		h.handleServiceError(c, err)
		return
	}
	if rt.GetRealUser == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "User lookup is not available in studio",
		})
		return
	}

	user, err := rt.GetRealUser(c.Request.Context(), c.Param("username"))
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		h.LogError(c, err, "Failed to resolve user")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to resolve user",
		})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "User not found",
		})
		return
	}

	c.JSON(http.StatusOK, user)
}
