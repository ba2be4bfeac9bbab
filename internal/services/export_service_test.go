package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/classware/gradebook-service/internal/models"
)

func TestExportService_ExportStudentStats(t *testing.T) {
	ctx := context.Background()

	repo := NewMockRepository()
	teacher := repo.AddUser(&models.User{Name: "Ms. Price", Role: models.RoleTeacher})
	group := "7A"
	student := repo.AddUser(&models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleStudent, Group: &group})
	repo.LinkStudent(teacher.ID, student.ID)

	assignment := repo.AddAssignment(&models.Assignment{Title: "Quiz", MaxScore: 10, CreatedBy: teacher.ID})
	repo.AddSubmission(&models.Submission{
		StudentID: student.ID, AssignmentID: assignment.ID,
		Solution: "work", Score: intPtr(8), SubmittedAt: day("2026-02-01"),
	})

	statistics := NewStatisticsService(nil, repo, testLogger())
	service := NewExportService(statistics, testLogger())

	workbook, err := service.ExportStudentStats(ctx, teacher.ID, StudentStatFilters{})
	if err != nil {
		t.Fatalf("ExportStudentStats() error = %v", err)
	}
	if len(workbook) == 0 {
		t.Fatal("workbook should not be empty")
	}

	f, err := excelize.OpenReader(bytes.NewReader(workbook))
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Students")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want header plus one student", len(rows))
	}
	if rows[0][0] != "Student ID" {
		t.Errorf("header = %q, want Student ID", rows[0][0])
	}
	if rows[1][1] != "Alice" {
		t.Errorf("name cell = %q, want Alice", rows[1][1])
	}
}
