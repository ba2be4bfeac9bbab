package services

import (
	"context"
	"testing"
	"time"

	"github.com/classware/gradebook-service/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildStudentStat(t *testing.T) {
	student := &models.User{ID: 1, Name: "Lena", Email: "lena@example.com"}

	t.Run("average ignores ungraded submissions", func(t *testing.T) {
		assignments := []*models.Assignment{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
		submissions := []*models.Submission{
			{AssignmentID: 1, Solution: "a", Score: intPtr(8), SubmittedAt: day("2026-01-01")},
			{AssignmentID: 2, Solution: "b", Score: intPtr(10), SubmittedAt: day("2026-01-02")},
			{AssignmentID: 3, Solution: "c", SubmittedAt: day("2026-01-03")},
			{AssignmentID: 4, Solution: "d", Score: intPtr(6), SubmittedAt: day("2026-01-04")},
		}

		stat := buildStudentStat(student, assignments, submissions)
		if stat.AvgScore != 8.0 {
			t.Errorf("AvgScore = %v, want 8.0", stat.AvgScore)
		}
	})

	t.Run("no graded submissions yields zero average", func(t *testing.T) {
		stat := buildStudentStat(student, nil, []*models.Submission{
			{AssignmentID: 1, Solution: "x", SubmittedAt: day("2026-01-01")},
		})
		if stat.AvgScore != 0 {
			t.Errorf("AvgScore = %v, want 0", stat.AvgScore)
		}
	})

	t.Run("completed needs solution and score", func(t *testing.T) {
		assignments := []*models.Assignment{{ID: 1}, {ID: 2}, {ID: 3}}
		submissions := []*models.Submission{
			{AssignmentID: 1, Solution: "done", Score: intPtr(7), SubmittedAt: day("2026-01-01")},
			{AssignmentID: 2, Solution: "", Score: intPtr(5), SubmittedAt: day("2026-01-02")},
		}

		stat := buildStudentStat(student, assignments, submissions)
		if stat.Completed != 1 {
			t.Errorf("Completed = %d, want 1", stat.Completed)
		}
		if stat.NotCompleted != 2 {
			t.Errorf("NotCompleted = %d, want 2", stat.NotCompleted)
		}
	})

	t.Run("late counts submissions past the deadline only", func(t *testing.T) {
		deadline := day("2026-01-10")
		assignments := []*models.Assignment{
			{ID: 1, Deadline: &deadline},
			{ID: 2}, // no deadline, never late
		}
		submissions := []*models.Submission{
			{AssignmentID: 1, Solution: "a", SubmittedAt: day("2026-01-15")},
			{AssignmentID: 1, Solution: "b", SubmittedAt: day("2026-01-05")},
			{AssignmentID: 2, Solution: "c", SubmittedAt: day("2026-02-01")},
		}

		stat := buildStudentStat(student, assignments, submissions)
		if stat.Late != 1 {
			t.Errorf("Late = %d, want 1", stat.Late)
		}
	})

	t.Run("last score follows the latest submission", func(t *testing.T) {
		assignments := []*models.Assignment{{ID: 1}}
		submissions := []*models.Submission{
			{AssignmentID: 1, Solution: "old", Score: intPtr(9), SubmittedAt: day("2026-01-01")},
			{AssignmentID: 1, Solution: "new", SubmittedAt: day("2026-01-20")},
		}

		stat := buildStudentStat(student, assignments, submissions)
		if stat.LastScore != nil {
			t.Errorf("LastScore = %v, want nil (latest submission is ungraded)", stat.LastScore)
		}
	})

	t.Run("first try needs one graded submission", func(t *testing.T) {
		assignments := []*models.Assignment{{ID: 1}, {ID: 2}, {ID: 3}}
		submissions := []*models.Submission{
			// one graded submission: first try
			{AssignmentID: 1, Solution: "a", Score: intPtr(10), SubmittedAt: day("2026-01-01")},
			// two submissions: not a first try even though graded
			{AssignmentID: 2, Solution: "b", Score: intPtr(8), SubmittedAt: day("2026-01-02")},
			{AssignmentID: 2, Solution: "c", Score: intPtr(9), SubmittedAt: day("2026-01-03")},
			// single ungraded submission: not a first try
			{AssignmentID: 3, Solution: "d", SubmittedAt: day("2026-01-04")},
		}

		stat := buildStudentStat(student, assignments, submissions)
		if stat.FirstTry != 1 {
			t.Errorf("FirstTry = %d, want 1", stat.FirstTry)
		}
	})

	t.Run("no submissions yields empty stat", func(t *testing.T) {
		assignments := []*models.Assignment{{ID: 1}, {ID: 2}}
		stat := buildStudentStat(student, assignments, nil)
		if stat.AvgScore != 0 || stat.Completed != 0 || stat.LastScore != nil {
			t.Errorf("stat = %+v, want zero values", stat)
		}
		if stat.NotCompleted != 2 {
			t.Errorf("NotCompleted = %d, want 2", stat.NotCompleted)
		}
	})
}

func TestBuildHeatmap(t *testing.T) {
	t.Run("dense daily series spans min to max", func(t *testing.T) {
		submissions := []*models.Submission{
			{SubmittedAt: day("2026-03-01")},
			{SubmittedAt: day("2026-03-01")},
			{SubmittedAt: day("2026-03-04")},
		}

		entries := buildHeatmap(submissions)
		if len(entries) != 4 {
			t.Fatalf("len(entries) = %d, want 4", len(entries))
		}
		want := []HeatmapEntry{
			{Date: "2026-03-01", Count: 2},
			{Date: "2026-03-02", Count: 0},
			{Date: "2026-03-03", Count: 0},
			{Date: "2026-03-04", Count: 1},
		}
		for i, entry := range entries {
			if entry != want[i] {
				t.Errorf("entries[%d] = %+v, want %+v", i, entry, want[i])
			}
		}
	})

	t.Run("no submissions yields empty heatmap", func(t *testing.T) {
		entries := buildHeatmap(nil)
		if len(entries) != 0 {
			t.Errorf("len(entries) = %d, want 0", len(entries))
		}
	})

	t.Run("single day spans one entry", func(t *testing.T) {
		entries := buildHeatmap([]*models.Submission{{SubmittedAt: day("2026-05-10")}})
		if len(entries) != 1 || entries[0].Count != 1 {
			t.Errorf("entries = %+v, want single entry with count 1", entries)
		}
	})
}

func TestStatisticsService_GetStudentStats(t *testing.T) {
	ctx := context.Background()

	repo := NewMockRepository()
	teacher := repo.AddUser(&models.User{Name: "Ms. Price", Role: models.RoleTeacher})
	groupA := "7A"
	groupB := "7B"
	alice := repo.AddUser(&models.User{Name: "Alice", Role: models.RoleStudent, Group: &groupA})
	bob := repo.AddUser(&models.User{Name: "Bob", Role: models.RoleStudent, Group: &groupB})
	repo.LinkStudent(teacher.ID, alice.ID)
	repo.LinkStudent(teacher.ID, bob.ID)

	assignment := repo.AddAssignment(&models.Assignment{Title: "Quiz", MaxScore: 10, CreatedBy: teacher.ID})
	repo.AddSubmission(&models.Submission{
		StudentID: alice.ID, AssignmentID: assignment.ID,
		Solution: "a", Score: intPtr(9), SubmittedAt: day("2026-02-01"),
	})
	repo.AddSubmission(&models.Submission{
		StudentID: bob.ID, AssignmentID: assignment.ID,
		Solution: "b", Score: intPtr(4), SubmittedAt: day("2026-02-02"),
	})

	service := NewStatisticsService(nil, repo, testLogger())

	t.Run("unfiltered returns whole roster", func(t *testing.T) {
		stats, err := service.GetStudentStats(ctx, teacher.ID, StudentStatFilters{})
		if err != nil {
			t.Fatalf("GetStudentStats() error = %v", err)
		}
		if len(stats) != 2 {
			t.Fatalf("len(stats) = %d, want 2", len(stats))
		}
	})

	t.Run("group filter narrows roster", func(t *testing.T) {
		stats, err := service.GetStudentStats(ctx, teacher.ID, StudentStatFilters{Group: "7A"})
		if err != nil {
			t.Fatalf("GetStudentStats() error = %v", err)
		}
		if len(stats) != 1 || stats[0].Name != "Alice" {
			t.Errorf("stats = %+v, want only Alice", stats)
		}
	})

	t.Run("score filter applies to averages", func(t *testing.T) {
		stats, err := service.GetStudentStats(ctx, teacher.ID, StudentStatFilters{Score: ">5"})
		if err != nil {
			t.Fatalf("GetStudentStats() error = %v", err)
		}
		if len(stats) != 1 || stats[0].Name != "Alice" {
			t.Errorf("stats = %+v, want only Alice", stats)
		}
	})
}
