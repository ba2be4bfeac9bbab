package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/classware/gradebook-service/internal/events"
	"github.com/classware/gradebook-service/internal/models"
	"github.com/classware/gradebook-service/internal/repositories"
	"github.com/classware/gradebook-service/internal/validator"
)

type gradingService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.Publisher
}

func NewGradingService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.Publisher) GradingService {
	return &gradingService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// ===== AUTO SCORING =====

// Evaluate scores a set of answers against the assignment's questions.
// Each question is worth floor(max_score / question_count) points; an
// answer counts only when it picks the question's correct option. A
// question without a correct option can never be matched. Answers for
// unknown question ids are ignored.
func (s *gradingService) Evaluate(assignment *models.Assignment, answers models.AnswerSet) *EvaluationResult {
	questionCount := len(assignment.Questions)

	pointsPerQuestion := assignment.MaxScore
	if questionCount > 0 {
		pointsPerQuestion = assignment.MaxScore / questionCount
	}

	correct := 0
	for _, question := range assignment.Questions {
		selected, ok := answers[question.ID]
		if !ok {
			continue
		}
		correctOption := question.CorrectOption()
		if correctOption != nil && correctOption.ID == selected {
			correct++
		}
	}

	return &EvaluationResult{
		Score:             correct * pointsPerQuestion,
		CorrectCount:      correct,
		QuestionCount:     questionCount,
		PointsPerQuestion: pointsPerQuestion,
	}
}

// ===== MANUAL GRADING =====

// Grade records a manual score on a submission. Only the teacher who
// created the assignment may grade its submissions.
func (s *gradingService) Grade(ctx context.Context, submissionID uint, req *GradeSubmissionRequest, graderID uint) (*SubmissionResponse, error) {
	s.logger.Info("Grading submission",
		"submission_id", submissionID,
		"grader_id", graderID)

	submission, err := s.repo.Submission().GetByIDWithDetails(ctx, nil, submissionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("submission", submissionID)
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, nil, submission.AssignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("assignment", submission.AssignmentID)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	if assignment.CreatedBy != graderID {
		return nil, NewPermissionError(graderID, submissionID, "submission", "grade", "not the assignment owner")
	}

	if errs := s.validator.ValidateGrade(req, assignment.MaxScore); errs.HasErrors() {
		return nil, NewValidationError("score", errs.Error(), req.Score)
	}

	now := time.Now()
	submission.Score = req.Score
	submission.Feedback = req.Feedback
	submission.GradedBy = &graderID
	submission.GradedAt = &now

	if err := s.repo.Submission().Update(ctx, nil, submission); err != nil {
		return nil, fmt.Errorf("failed to update submission grade: %w", err)
	}

	if s.publisher != nil {
		event := events.SubmissionGraded{
			SubmissionID: submission.ID,
			AssignmentID: submission.AssignmentID,
			StudentID:    submission.StudentID,
			Score:        *req.Score,
			GradedBy:     &graderID,
			GradedAt:     now,
		}
		if err := s.publisher.Publish(events.TopicSubmissionGraded, event); err != nil {
			s.logger.Error("Failed to publish graded event",
				"submission_id", submission.ID,
				"error", err)
		}
	}

	s.logger.Info("Submission graded",
		"submission_id", submissionID,
		"score", *req.Score,
		"max_score", assignment.MaxScore)

	return &SubmissionResponse{
		Submission: submission,
		CanGrade:   true,
		Late:       isLate(submission, assignment),
	}, nil
}

// isLate reports whether the submission landed after the assignment's
// deadline. Assignments without a deadline are never late.
func isLate(submission *models.Submission, assignment *models.Assignment) bool {
	if assignment.Deadline == nil {
		return false
	}
	return submission.SubmittedAt.After(*assignment.Deadline)
}
