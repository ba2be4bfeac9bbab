package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/classware/gradebook-service/internal/models"
	"github.com/classware/gradebook-service/internal/repositories"
)

type statisticsService struct {
	db     *gorm.DB
	repo   repositories.Repository
	logger *slog.Logger
}

func NewStatisticsService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger) StatisticsService {
	return &statisticsService{
		db:     db,
		repo:   repo,
		logger: logger,
	}
}

// GetStudentStats builds one aggregate row per student on the teacher's
// roster, then applies the optional group and score filters.
func (s *statisticsService) GetStudentStats(ctx context.Context, teacherID uint, filters StudentStatFilters) ([]*StudentStat, error) {
	students, err := s.repo.Roster().ListStudents(ctx, nil, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}

	assignments, _, err := s.repo.Assignment().List(ctx, nil, repositories.AssignmentFilters{CreatedBy: &teacherID})
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	stats := make([]*StudentStat, 0, len(students))
	for _, student := range students {
		submissions, _, err := s.repo.Submission().ListByStudent(ctx, nil, student.ID, repositories.SubmissionFilters{})
		if err != nil {
			return nil, fmt.Errorf("failed to list submissions for student %d: %w", student.ID, err)
		}
		stats = append(stats, buildStudentStat(student, assignments, submissions))
	}

	return FilterStudentStats(stats, filters), nil
}

// buildStudentStat aggregates one student's submissions into a stats
// row against the teacher's assignments.
func buildStudentStat(student *models.User, assignments []*models.Assignment, submissions []*models.Submission) *StudentStat {
	stat := &StudentStat{
		StudentID: student.ID,
		Name:      student.Name,
		Email:     student.Email,
		Group:     student.Group,
	}

	deadlines := make(map[uint]*time.Time, len(assignments))
	for _, a := range assignments {
		deadlines[a.ID] = a.Deadline
	}

	var scoreSum, scoreCount int
	var latest *models.Submission
	perAssignment := make(map[uint][]*models.Submission)

	for _, sub := range submissions {
		perAssignment[sub.AssignmentID] = append(perAssignment[sub.AssignmentID], sub)

		if sub.Score != nil {
			scoreSum += *sub.Score
			scoreCount++
		}

		if deadline, ok := deadlines[sub.AssignmentID]; ok && deadline != nil && sub.SubmittedAt.After(*deadline) {
			stat.Late++
		}

		if latest == nil || sub.SubmittedAt.After(latest.SubmittedAt) {
			latest = sub
		}
	}

	if scoreCount > 0 {
		stat.AvgScore = roundFloat(float64(scoreSum)/float64(scoreCount), 2)
	}

	if latest != nil {
		stat.LastScore = latest.Score
	}

	completed := 0
	for _, subs := range perAssignment {
		done := false
		for _, sub := range subs {
			if sub.Solution != "" && sub.Score != nil {
				done = true
				break
			}
		}
		if done {
			completed++
		}

		// A first-try assignment has exactly one submission and it
		// already carries a score.
		if len(subs) == 1 && subs[0].Score != nil {
			stat.FirstTry++
		}
	}

	stat.Completed = completed
	stat.NotCompleted = len(assignments) - completed
	if stat.NotCompleted < 0 {
		stat.NotCompleted = 0
	}

	return stat
}

// GetHeatmap returns a dense per-day submission count covering every
// calendar day from the earliest to the latest submission, zeros
// included. An empty roster or no submissions yields an empty slice.
func (s *statisticsService) GetHeatmap(ctx context.Context, teacherID uint) ([]HeatmapEntry, error) {
	students, err := s.repo.Roster().ListStudents(ctx, nil, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}

	var all []*models.Submission
	for _, student := range students {
		submissions, _, err := s.repo.Submission().ListByStudent(ctx, nil, student.ID, repositories.SubmissionFilters{})
		if err != nil {
			return nil, fmt.Errorf("failed to list submissions for student %d: %w", student.ID, err)
		}
		all = append(all, submissions...)
	}

	return buildHeatmap(all), nil
}

func buildHeatmap(submissions []*models.Submission) []HeatmapEntry {
	if len(submissions) == 0 {
		return []HeatmapEntry{}
	}

	counts := make(map[string]int)
	var minDay, maxDay time.Time
	for i, sub := range submissions {
		day := sub.SubmittedAt.Truncate(24 * time.Hour)
		counts[day.Format("2006-01-02")]++
		if i == 0 || day.Before(minDay) {
			minDay = day
		}
		if i == 0 || day.After(maxDay) {
			maxDay = day
		}
	}

	var entries []HeatmapEntry
	for day := minDay; !day.After(maxDay); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		entries = append(entries, HeatmapEntry{Date: key, Count: counts[key]})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries
}

func roundFloat(val float64, precision int) float64 {
	ratio := 1.0
	for i := 0; i < precision; i++ {
		ratio *= 10
	}
	return float64(int(val*ratio+0.5)) / ratio
}
