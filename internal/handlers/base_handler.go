package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gradable-block-service/internal/services"
	"github.com/SAP-F-2025/gradable-block-service/internal/utils"
	"github.com/SAP-F-2025/gradable-block-service/internal/validator"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler carries the logging helpers shared by all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	return utils.LoggerFromContext(c.Request.Context(), h.logger)
}

// LogRequest logs an incoming request with the request-scoped logger
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	h.requestLogger(c).Info(msg, append(args, "path", c.Request.URL.Path)...)
}

// LogError logs a failed request with the request-scoped logger
func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	h.requestLogger(c).Error(msg, append(args, "error", err, "path", c.Request.URL.Path)...)
}

// bindOptionalJSON binds the request body into dst; an empty body is accepted
func bindOptionalJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (h *BaseHandler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Message: "Invalid request payload",
		Details: err.Error(),
	})
}

func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var authErr *services.AuthorizationError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &authErr):
		h.requestLogger(c).Warn("Authorization denied", "user_id", authErr.UserID, "action", authErr.Action, "resource", authErr.Resource)
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
			Details: authErr.Reason,
		})
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrs,
		})
	case errors.Is(err, services.ErrValidationFailed), errors.Is(err, services.ErrBadRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Bad request",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrBlockNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Block not found",
		})
	case errors.Is(err, services.ErrBlockExists):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Block already exists",
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
