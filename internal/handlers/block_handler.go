package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gradable-block-service/internal/models"
	"github.com/SAP-F-2025/gradable-block-service/internal/services"
	"github.com/SAP-F-2025/gradable-block-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BlockHandler struct {
	BaseHandler
	service services.BlockService
	export  services.ExportService
}

func NewBlockHandler(service services.BlockService, export services.ExportService, logger utils.Logger) *BlockHandler {
	return &BlockHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		export:      export,
	}
}

// runtime fetches the request runtime, answering 401 when it is missing
func (h *BlockHandler) runtime(c *gin.Context) (*services.Runtime, bool) {
	rt, err := GetRuntime(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return nil, false
	}
	return rt, true
}

// ===== PROVISIONING =====

// CreateBlock provisions a block at a usage key
// @Summary Create a block
// @Tags blocks
// @Accept json
// @Produce json
// @Param request body models.CreateBlockRequest true "Block creation request"
// @Success 201 {object} models.Block
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 409 {object} ErrorResponse "Conflict - block exists"
// @Router /blocks [post]
func (h *BlockHandler) CreateBlock(c *gin.Context) {
	rt, ok := h.runtime(c)
	if !ok {
		return
	}

	var req models.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	h.LogRequest(c, "Creating block", "location", req.Location)

	block, err := h.service.Create(c.Request.Context(), &req, rt)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, block)
}

// GetBlock returns the stored settings of a block
// @Summary Get a block
// @Tags blocks
// @Produce json
// @Param location path string true "Block usage key"
// @Success 200 {object} models.Block
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /blocks/{location} [get]
func (h *BlockHandler) GetBlock(c *gin.Context) {
	block, err := h.service.Get(c.Request.Context(), c.Param("location"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, block)
}

// GetScore returns the caller's score breakdown
// @Summary Get the caller's score
// @Tags blocks
// @Produce json
// @Param location path string true "Block usage key"
// @Success 200 {object} services.ScoreBreakdown
// @Router /blocks/{location}/score [get]
func (h *BlockHandler) GetScore(c *gin.Context) {
	rt, ok := h.runtime(c)
	if !ok {
		return
	}

	score, err := h.service.GetScore(c.Request.Context(), c.Param("location"), rt)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

// ===== JSON ACTIONS =====

// ResetUserState clears another student's state (staff only)
// @Summary Reset a student's state
// @Tags block-actions
// @Accept json
// @Produce json
// @Param location path string true "Block usage key"
// @Param request body models.UserLoginRequest true "Target user"
// @Success 200 {object} models.StateResponse
// @Failure 403 {object} ErrorResponse "Forbidden - staff only"
// @Router /blocks/{location}/handler/reset_user_state [post]
func (h *BlockHandler) ResetUserState(c *gin.Context) {
	rt, ok := h.runtime(c)
	if !ok {
		return
	}

	var req models.UserLoginRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.badRequest(c, err)
		return
	}

	h.LogRequest(c, "Resetting user state", "location", c.Param("location"))

	resp, err := h.service.ResetUserState(c.Request.Context(), c.Param("location"), &req, rt)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUserState returns another student's raw state (staff only)
// @Summary Get a student's raw state
// @Tags block-actions
// @Accept json
// @Produce json
// @Param location path string true "Block usage key"
// @Param request body models.UserLoginRequest true "Target user"
// @Success 200 {object} models.StateResponse
// @Failure 403 {object} ErrorResponse "Forbidden - staff only"
// @Router /blocks/{location}/handler/get_user_state [post]
func (h *BlockHandler) GetUserState(c *gin.Context) {
	rt, ok := h.runtime(c)
	if !ok {
		return
	}

	var req models.UserLoginRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.badRequest(c, err)
		return
	}

	resp, err := h.service.GetUserState(c.Request.Context(), c.Param("location"), &req, rt)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUserData returns the caller's render context
// @Summary Get the caller's render context
// @Tags block-actions
// @Produce json
// @Param location path string true "Block usage key"
// @Success 200 {object} models.RenderContext
// @Router /blocks/{location}/handler/get_user_data [post]
func (h *BlockHandler) GetUserData(c *gin.Context) {
	rt, ok := h.runtime(c)
	if !ok {
		return
	}

	rc, err := h.service.GetUserData(c.Request.Context(), c.Param("location"), rt)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rc)
}

// SaveSettings overwrites the authored fields of a block
// @Summary Save block settings
// @Tags studio
// @Accept json
// @Produce json
// @Param location path string true "Block usage key"
// @Param request body models.SaveSettingsRequest true "Settings"
// @Success 200 {object} map[string]interface{}
// @Router /studio/blocks/{location}/handler/save_settings [post]
func (h *BlockHandler) SaveSettings(c *gin.Context) {
	rt, ok := h.runtime(c)
	if !ok {
		return
	}

	var req models.SaveSettingsRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.badRequest(c, err)
		return
	}

	h.LogRequest(c, "Saving block settings", "location", c.Param("location"))

	resp, err := h.service.SaveSettings(c.Request.Context(), c.Param("location"), &req, rt)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SavePoints records the caller's points for the block
// @Summary Save the caller's points
// @Tags block-actions
// @Accept json
// @Produce json
// @Param location path string true "Block usage key"
// @Param request body models.SavePointsRequest true "Points"
// @Success 200 {object} models.RenderContext
// @Router /blocks/{location}/handler/save_points [post]
func (h *BlockHandler) SavePoints(c *gin.Context) {
	rt, ok := h.runtime(c)
	if !ok {
		return
	}

	var req models.SavePointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	rc, err := h.service.SavePoints(c.Request.Context(), c.Param("location"), &req, rt)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rc)
}

// ===== VIEWS =====

// StudentView renders the learner fragment
// @Summary Render the student view
// @Tags views
// @Accept json
// @Produce json
// @Param location path string true "Block usage key"
// @Success 200 {object} render.Fragment
// @Router /blocks/{location}/student_view [post]
func (h *BlockHandler) StudentView(c *gin.Context) {
	rt, ok := h.runtime(c)
	if !ok {
		return
	}

	var callerCtx map[string]interface{}
	if err := bindOptionalJSON(c, &callerCtx); err != nil {
		h.badRequest(c, err)
		return
	}

	frag, err := h.service.StudentView(c.Request.Context(), c.Param("location"), callerCtx, rt)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, frag)
}

// StudioView renders the authoring fragment
// @Summary Render the studio view
// @Tags studio
// @Accept json
// @Produce json
// @Param location path string true "Block usage key"
// @Success 200 {object} render.Fragment
// @Router /studio/blocks/{location}/studio_view [post]
func (h *BlockHandler) StudioView(c *gin.Context) {
	rt, ok := h.runtime(c)
	if !ok {
		return
	}

	var callerCtx map[string]interface{}
	if err := bindOptionalJSON(c, &callerCtx); err != nil {
		h.badRequest(c, err)
		return
	}

	frag, err := h.service.StudioView(c.Request.Context(), c.Param("location"), callerCtx, rt)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, frag)
}

// ===== EXPORT =====

// ExportGrades downloads every student's grade as xlsx (staff only)
// @Summary Export grades
// @Tags blocks
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param location path string true "Block usage key"
// @Success 200 {file} file
// @Failure 403 {object} ErrorResponse "Forbidden - staff only"
// @Router /blocks/{location}/grades/export [get]
func (h *BlockHandler) ExportGrades(c *gin.Context) {
	rt, ok := h.runtime(c)
	if !ok {
		return
	}

	buf, err := h.export.ExportGrades(c.Request.Context(), c.Param("location"), rt)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="grades.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
