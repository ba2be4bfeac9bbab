package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classware/gradebook-service/internal/repositories"
	"github.com/classware/gradebook-service/internal/services"
	"github.com/classware/gradebook-service/internal/utils"
)

type SubmissionHandler struct {
	BaseHandler
	submissions services.SubmissionService
	grading     services.GradingService
}

func NewSubmissionHandler(submissions services.SubmissionService, grading services.GradingService, logger utils.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler: NewBaseHandler(logger),
		submissions: submissions,
		grading:     grading,
	}
}

// Submit records the caller's work for an assignment
// @Summary Submit work
// @Tags submissions
// @Accept json
// @Produce json
// @Success 201 {object} services.SubmissionResponse
// @Failure 400 {object} ErrorResponse "Empty solution"
// @Failure 404 {object} ErrorResponse "Assignment not found"
// @Router /assignments/{id}/submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	h.LogRequest(c, "Submitting work")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	assignmentID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req services.SubmitSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	submission, err := h.submissions.Submit(c.Request.Context(), assignmentID, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// GetSubmission returns one submission
// @Summary Get submission
// @Tags submissions
// @Produce json
// @Success 200 {object} services.SubmissionResponse
// @Failure 403 {object} ErrorResponse "Not owner or grader"
// @Router /submissions/{id} [get]
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	submission, err := h.submissions.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// Grade records a score and feedback on a submission
// @Summary Grade submission
// @Tags submissions
// @Accept json
// @Produce json
// @Success 200 {object} services.SubmissionResponse
// @Failure 400 {object} ErrorResponse "Score out of range"
// @Failure 403 {object} ErrorResponse "Not the assignment owner"
// @Router /submissions/{id}/grade [post]
func (h *SubmissionHandler) Grade(c *gin.Context) {
	h.LogRequest(c, "Grading submission")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req services.GradeSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	submission, err := h.grading.Grade(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// ListMySubmissions returns the caller's submissions
// @Summary List own submissions
// @Tags submissions
// @Produce json
// @Success 200 {object} services.SubmissionListResponse
// @Router /submissions/me [get]
func (h *SubmissionHandler) ListMySubmissions(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	filters := h.parseFilters(c)
	submissions, err := h.submissions.ListByStudent(c.Request.Context(), userID, filters, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// ListByStudent returns one student's submissions for their teacher
// @Summary List student submissions
// @Tags submissions
// @Produce json
// @Success 200 {object} services.SubmissionListResponse
// @Failure 403 {object} ErrorResponse "Student not on roster"
// @Router /submissions/student/{student_id} [get]
func (h *SubmissionHandler) ListByStudent(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	studentID, ok := h.pathID(c, "student_id")
	if !ok {
		return
	}

	filters := h.parseFilters(c)
	submissions, err := h.submissions.ListByStudent(c.Request.Context(), studentID, filters, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// ListByAssignment returns all submissions for one assignment
// @Summary List assignment submissions
// @Tags submissions
// @Produce json
// @Success 200 {object} services.SubmissionListResponse
// @Failure 403 {object} ErrorResponse "Not the assignment owner"
// @Router /assignments/{id}/submissions [get]
func (h *SubmissionHandler) ListByAssignment(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	assignmentID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	filters := h.parseFilters(c)
	submissions, err := h.submissions.ListByAssignment(c.Request.Context(), assignmentID, filters, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

func (h *SubmissionHandler) parseFilters(c *gin.Context) repositories.SubmissionFilters {
	filters := repositories.SubmissionFilters{
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}

	switch c.Query("graded") {
	case "true":
		graded := true
		filters.Graded = &graded
	case "false":
		graded := false
		filters.Graded = &graded
	}

	return filters
}
