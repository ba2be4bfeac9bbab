package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classware/gradebook-service/internal/services"
	"github.com/classware/gradebook-service/internal/utils"
)

type StatisticsHandler struct {
	BaseHandler
	statistics services.StatisticsService
	export     services.ExportService
}

func NewStatisticsHandler(statistics services.StatisticsService, export services.ExportService, logger utils.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		BaseHandler: NewBaseHandler(logger),
		statistics:  statistics,
		export:      export,
	}
}

// GetStudentStats returns one aggregate row per roster student
// @Summary Get student statistics
// @Tags statistics
// @Produce json
// @Param group query string false "Only students in this group"
// @Param score query string false "Average score filter, e.g. >80"
// @Success 200 {array} services.StudentStat
// @Router /statistics/students [get]
func (h *StatisticsHandler) GetStudentStats(c *gin.Context) {
	teacherID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	filters := services.StudentStatFilters{
		Group: c.Query("group"),
		Score: c.Query("score"),
	}

	stats, err := h.statistics.GetStudentStats(c.Request.Context(), teacherID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetHeatmap returns the per-day submission counts for the caller's
// roster
// @Summary Get submission heatmap
// @Tags statistics
// @Produce json
// @Success 200 {array} services.HeatmapEntry
// @Router /statistics/heatmap [get]
func (h *StatisticsHandler) GetHeatmap(c *gin.Context) {
	teacherID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	heatmap, err := h.statistics.GetHeatmap(c.Request.Context(), teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, heatmap)
}

// ExportStudentStats downloads the stats listing as an xlsx workbook
// @Summary Export student statistics
// @Tags statistics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /statistics/export [get]
func (h *StatisticsHandler) ExportStudentStats(c *gin.Context) {
	h.LogRequest(c, "Exporting student stats")

	teacherID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	filters := services.StudentStatFilters{
		Group: c.Query("group"),
		Score: c.Query("score"),
	}

	workbook, err := h.export.ExportStudentStats(c.Request.Context(), teacherID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("students-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
