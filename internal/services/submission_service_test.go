package services

import (
	"context"
	"testing"
	"time"

	"github.com/classware/gradebook-service/internal/models"
	"github.com/classware/gradebook-service/internal/repositories"
	"github.com/classware/gradebook-service/internal/validator"
)

func newSubmissionFixture() (*MockRepository, SubmissionService, *models.User, *models.User) {
	repo := NewMockRepository()
	teacher := repo.AddUser(&models.User{Name: "Mr. Ito", Role: models.RoleTeacher})
	student := repo.AddUser(&models.User{Name: "Lena", Role: models.RoleStudent})
	repo.LinkStudent(teacher.ID, student.ID)

	v := validator.New()
	grading := NewGradingService(nil, repo, testLogger(), v, nil)
	service := NewSubmissionService(nil, repo, testLogger(), v, grading, nil)
	return repo, service, teacher, student
}

func TestSubmissionService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("free text submission waits for manual grade", func(t *testing.T) {
		repo, service, teacher, student := newSubmissionFixture()
		assignment := repo.AddAssignment(&models.Assignment{
			Title: "Essay", MaxScore: 10, CreatedBy: teacher.ID,
		})

		before := time.Now()
		result, err := service.Submit(ctx, assignment.ID, &SubmitSubmissionRequest{
			Solution: "long division works because...",
		}, student.ID)
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}

		if result.Score != nil {
			t.Errorf("Score = %v, want nil for ungraded free text", result.Score)
		}
		if result.SubmittedAt.Before(before) {
			t.Error("SubmittedAt should be stamped at submission time")
		}
	})

	t.Run("blank free text is rejected", func(t *testing.T) {
		repo, service, teacher, student := newSubmissionFixture()
		assignment := repo.AddAssignment(&models.Assignment{
			Title: "Essay", MaxScore: 10, CreatedBy: teacher.ID,
		})

		_, err := service.Submit(ctx, assignment.ID, &SubmitSubmissionRequest{
			Solution: "   \n\t ",
		}, student.ID)
		if !IsValidationError(err) {
			t.Errorf("Submit() error = %v, want validation error", err)
		}
	})

	t.Run("multiple choice answers score immediately", func(t *testing.T) {
		repo, service, teacher, student := newSubmissionFixture()
		assignment := repo.AddAssignment(&models.Assignment{
			Title:     "Quiz",
			MaxScore:  10,
			CreatedBy: teacher.ID,
			Questions: []models.Question{
				{ID: 100, Options: []models.AnswerOption{
					{ID: 101, IsCorrect: true},
					{ID: 102},
				}},
				{ID: 200, Options: []models.AnswerOption{
					{ID: 201, IsCorrect: true},
					{ID: 202},
				}},
			},
		})

		result, err := service.Submit(ctx, assignment.ID, &SubmitSubmissionRequest{
			Answers: map[uint]uint{100: 101, 200: 202},
		}, student.ID)
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}

		// One of two answers correct, each worth floor(10/2).
		if result.Score == nil || *result.Score != 5 {
			t.Errorf("Score = %v, want 5", result.Score)
		}
	})

	t.Run("empty solution is allowed alongside answers", func(t *testing.T) {
		repo, service, teacher, student := newSubmissionFixture()
		assignment := repo.AddAssignment(&models.Assignment{
			Title:     "Quiz",
			MaxScore:  10,
			CreatedBy: teacher.ID,
			Questions: []models.Question{
				{ID: 1, Options: []models.AnswerOption{{ID: 11, IsCorrect: true}}},
			},
		})

		result, err := service.Submit(ctx, assignment.ID, &SubmitSubmissionRequest{
			Answers: map[uint]uint{1: 11},
		}, student.ID)
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if result.Score == nil || *result.Score != 10 {
			t.Errorf("Score = %v, want 10", result.Score)
		}
	})

	t.Run("repeat submissions each get a record", func(t *testing.T) {
		repo, service, teacher, student := newSubmissionFixture()
		assignment := repo.AddAssignment(&models.Assignment{
			Title: "Essay", MaxScore: 10, CreatedBy: teacher.ID,
		})

		first, err := service.Submit(ctx, assignment.ID, &SubmitSubmissionRequest{Solution: "draft one"}, student.ID)
		if err != nil {
			t.Fatalf("first Submit() error = %v", err)
		}
		second, err := service.Submit(ctx, assignment.ID, &SubmitSubmissionRequest{Solution: "draft two"}, student.ID)
		if err != nil {
			t.Fatalf("second Submit() error = %v", err)
		}
		if first.ID == second.ID {
			t.Error("repeat submissions should create distinct records")
		}
	})

	t.Run("missing assignment", func(t *testing.T) {
		_, service, _, student := newSubmissionFixture()

		_, err := service.Submit(ctx, 999, &SubmitSubmissionRequest{Solution: "work"}, student.ID)
		if !IsNotFoundError(err) {
			t.Errorf("Submit() error = %v, want not found error", err)
		}
	})

	t.Run("late flag set past deadline", func(t *testing.T) {
		repo, service, teacher, student := newSubmissionFixture()
		deadline := time.Now().Add(-24 * time.Hour)
		assignment := repo.AddAssignment(&models.Assignment{
			Title: "Essay", MaxScore: 10, CreatedBy: teacher.ID, Deadline: &deadline,
		})

		result, err := service.Submit(ctx, assignment.ID, &SubmitSubmissionRequest{Solution: "late work"}, student.ID)
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if !result.Late {
			t.Error("submission after the deadline should be late")
		}
	})
}

func TestSubmissionService_ListByStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher can list roster student submissions", func(t *testing.T) {
		repo, service, teacher, student := newSubmissionFixture()
		assignment := repo.AddAssignment(&models.Assignment{
			Title: "Essay", MaxScore: 10, CreatedBy: teacher.ID,
		})
		repo.AddSubmission(&models.Submission{
			StudentID: student.ID, AssignmentID: assignment.ID, Solution: "work",
		})

		list, err := service.ListByStudent(ctx, student.ID, repositories.SubmissionFilters{}, teacher.ID)
		if err != nil {
			t.Fatalf("ListByStudent() error = %v", err)
		}
		if list.Total != 1 {
			t.Errorf("Total = %d, want 1", list.Total)
		}
	})

	t.Run("stranger cannot list another student", func(t *testing.T) {
		repo, service, _, student := newSubmissionFixture()
		stranger := repo.AddUser(&models.User{Name: "Other", Role: models.RoleTeacher})

		_, err := service.ListByStudent(ctx, student.ID, repositories.SubmissionFilters{}, stranger.ID)
		if !IsPermissionError(err) {
			t.Errorf("ListByStudent() error = %v, want permission error", err)
		}
	})
}
