package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/classware/gradebook-service/internal/repositories"
	"github.com/classware/gradebook-service/internal/services"
	"github.com/classware/gradebook-service/internal/utils"
)

type AssignmentHandler struct {
	BaseHandler
	service services.AssignmentService
}

func NewAssignmentHandler(service services.AssignmentService, logger utils.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateAssignment creates an assignment with optional questions
// @Summary Create assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Success 201 {object} services.AssignmentResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /assignments [post]
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	h.LogRequest(c, "Creating assignment")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	assignment, err := h.service.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// GetAssignment returns one assignment
// @Summary Get assignment
// @Tags assignments
// @Produce json
// @Success 200 {object} services.AssignmentResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /assignments/{id} [get]
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	assignment, err := h.service.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// GetAssignmentWithQuestions returns an assignment with its full
// question tree
// @Summary Get assignment details
// @Tags assignments
// @Produce json
// @Success 200 {object} services.AssignmentResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /assignments/{id}/details [get]
func (h *AssignmentHandler) GetAssignmentWithQuestions(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	assignment, err := h.service.GetByIDWithQuestions(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// ListAssignments returns a paginated assignment listing
// @Summary List assignments
// @Tags assignments
// @Produce json
// @Param limit query int false "Page size (default: 20)"
// @Param offset query int false "Offset into the listing"
// @Param mine query bool false "Only assignments created by the caller"
// @Success 200 {object} services.AssignmentListResponse
// @Router /assignments [get]
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	filters := repositories.AssignmentFilters{
		Limit:     parseIntQuery(c, "limit", 20),
		Offset:    parseIntQuery(c, "offset", 0),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}
	if c.Query("mine") == "true" {
		filters.CreatedBy = &userID
	}

	assignments, err := h.service.List(c.Request.Context(), filters, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// UpdateAssignment updates assignment metadata
// @Summary Update assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Success 200 {object} services.AssignmentResponse
// @Failure 403 {object} ErrorResponse "Not the owner"
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	h.LogRequest(c, "Updating assignment")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	assignment, err := h.service.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// DeleteAssignment removes an assignment and its dependents
// @Summary Delete assignment
// @Tags assignments
// @Produce json
// @Success 204
// @Failure 403 {object} ErrorResponse "Not the owner"
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	h.LogRequest(c, "Deleting assignment")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
