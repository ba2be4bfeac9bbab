package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

type exportService struct {
	statistics StatisticsService
	logger     *slog.Logger
}

func NewExportService(statistics StatisticsService, logger *slog.Logger) ExportService {
	return &exportService{
		statistics: statistics,
		logger:     logger,
	}
}

var exportHeaders = []string{
	"Student ID", "Name", "Email", "Group",
	"Average Score", "Completed", "Not Completed",
	"Late", "First Try", "Last Score",
}

// ExportStudentStats renders the stats listing as an xlsx workbook with
// one row per student.
func (s *exportService) ExportStudentStats(ctx context.Context, teacherID uint, filters StudentStatFilters) ([]byte, error) {
	stats, err := s.statistics.GetStudentStats(ctx, teacherID, filters)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	const sheet = "Students"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, stat := range stats {
		values := []interface{}{
			stat.StudentID, stat.Name, stat.Email, derefString(stat.Group),
			stat.AvgScore, stat.Completed, stat.NotCompleted,
			stat.Late, stat.FirstTry, derefInt(stat.LastScore),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("Exported student stats",
		"teacher_id", teacherID,
		"rows", len(stats))

	return buf.Bytes(), nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) interface{} {
	if i == nil {
		return ""
	}
	return *i
}
