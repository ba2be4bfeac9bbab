package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classware/gradebook-service/internal/services"
	"github.com/classware/gradebook-service/internal/utils"
	"github.com/classware/gradebook-service/internal/validator"
)

type RosterHandler struct {
	BaseHandler
	service services.RosterService
}

func NewRosterHandler(service services.RosterService, logger utils.Logger) *RosterHandler {
	return &RosterHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// AddStudent creates a student account on the caller's roster
// @Summary Add student
// @Tags roster
// @Accept json
// @Produce json
// @Success 201 {object} models.User
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /students [post]
func (h *RosterHandler) AddStudent(c *gin.Context) {
	h.LogRequest(c, "Adding student")

	teacherID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req validator.AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	student, err := h.service.AddStudent(c.Request.Context(), &req, teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// RemoveStudent takes a student off the caller's roster
// @Summary Remove student
// @Tags roster
// @Produce json
// @Success 204
// @Failure 404 {object} ErrorResponse "Student not on roster"
// @Router /students/{id} [delete]
func (h *RosterHandler) RemoveStudent(c *gin.Context) {
	h.LogRequest(c, "Removing student")

	teacherID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	studentID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.RemoveStudent(c.Request.Context(), studentID, teacherID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListStudents returns the caller's roster
// @Summary List roster students
// @Tags roster
// @Produce json
// @Param group query string false "Only students in this group"
// @Success 200 {array} models.User
// @Router /students [get]
func (h *RosterHandler) ListStudents(c *gin.Context) {
	teacherID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	students, err := h.service.ListStudents(c.Request.Context(), teacherID, c.Query("group"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}
