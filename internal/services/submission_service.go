package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/classware/gradebook-service/internal/events"
	"github.com/classware/gradebook-service/internal/models"
	"github.com/classware/gradebook-service/internal/repositories"
	"github.com/classware/gradebook-service/internal/validator"
)

type submissionService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	grading   GradingService
	publisher events.Publisher
}

func NewSubmissionService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, grading GradingService, publisher events.Publisher) SubmissionService {
	return &submissionService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		grading:   grading,
		publisher: publisher,
	}
}

// Submit records a student's work for an assignment. Multiple-choice
// answers are scored immediately; free-text solutions wait for a
// teacher's grade. Repeat submissions for the same assignment are
// allowed and each gets its own record.
func (s *submissionService) Submit(ctx context.Context, assignmentID uint, req *SubmitSubmissionRequest, studentID uint) (*SubmissionResponse, error) {
	s.logger.Info("Submitting work",
		"assignment_id", assignmentID,
		"student_id", studentID)

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError("submission", errs.Error(), nil)
	}

	assignment, err := s.repo.Assignment().GetByIDWithQuestions(ctx, nil, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("assignment", assignmentID)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	submission := &models.Submission{
		StudentID:    studentID,
		AssignmentID: assignmentID,
		Solution:     req.Solution,
		SubmittedAt:  time.Now(),
	}

	autoScored := false
	if len(req.Answers) > 0 {
		if err := submission.SetAnswers(req.Answers); err != nil {
			return nil, fmt.Errorf("failed to encode answers: %w", err)
		}
		result := s.grading.Evaluate(assignment, req.Answers)
		submission.Score = &result.Score
		autoScored = true
	} else if strings.TrimSpace(req.Solution) == "" {
		return nil, NewValidationError("solution", "solution must not be empty", req.Solution)
	}

	if err := s.repo.Submission().Create(ctx, nil, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.publishReceived(submission, autoScored)

	s.logger.Info("Submission recorded",
		"submission_id", submission.ID,
		"assignment_id", assignmentID,
		"auto_scored", autoScored)

	return &SubmissionResponse{
		Submission: submission,
		Late:       isLate(submission, assignment),
	}, nil
}

func (s *submissionService) GetByID(ctx context.Context, id uint, userID uint) (*SubmissionResponse, error) {
	submission, err := s.repo.Submission().GetByIDWithDetails(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("submission", id)
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, nil, submission.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	isOwner := submission.StudentID == userID
	isGrader := assignment.CreatedBy == userID
	if !isOwner && !isGrader {
		return nil, NewPermissionError(userID, id, "submission", "read", "not owner or assignment creator")
	}

	return &SubmissionResponse{
		Submission: submission,
		CanGrade:   isGrader,
		Late:       isLate(submission, assignment),
	}, nil
}

func (s *submissionService) ListByStudent(ctx context.Context, studentID uint, filters repositories.SubmissionFilters, userID uint) (*SubmissionListResponse, error) {
	if studentID != userID {
		onRoster, err := s.repo.Roster().Contains(ctx, nil, userID, studentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check roster: %w", err)
		}
		if !onRoster {
			return nil, NewPermissionError(userID, studentID, "submission", "list", "student not on roster")
		}
	}

	submissions, total, err := s.repo.Submission().ListByStudent(ctx, nil, studentID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	return s.buildListResponse(ctx, submissions, total, filters, userID)
}

func (s *submissionService) ListByAssignment(ctx context.Context, assignmentID uint, filters repositories.SubmissionFilters, userID uint) (*SubmissionListResponse, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, nil, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("assignment", assignmentID)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment.CreatedBy != userID {
		return nil, NewPermissionError(userID, assignmentID, "assignment", "list_submissions", "not the assignment owner")
	}

	submissions, total, err := s.repo.Submission().ListByAssignment(ctx, nil, assignmentID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	return s.buildListResponse(ctx, submissions, total, filters, userID)
}

func (s *submissionService) buildListResponse(ctx context.Context, submissions []*models.Submission, total int64, filters repositories.SubmissionFilters, userID uint) (*SubmissionListResponse, error) {
	// Assignments are preloaded by the repository list queries.
	responses := make([]*SubmissionResponse, 0, len(submissions))
	for _, sub := range submissions {
		resp := &SubmissionResponse{
			Submission: sub,
			CanGrade:   sub.Assignment.CreatedBy == userID,
			Late:       isLate(sub, &sub.Assignment),
		}
		responses = append(responses, resp)
	}

	page := 1
	if filters.Limit > 0 {
		page = filters.Offset/filters.Limit + 1
	}

	return &SubmissionListResponse{
		Submissions: responses,
		Total:       total,
		Page:        page,
		Size:        len(responses),
	}, nil
}

func (s *submissionService) publishReceived(submission *models.Submission, autoScored bool) {
	if s.publisher == nil {
		return
	}

	event := events.SubmissionReceived{
		SubmissionID: submission.ID,
		AssignmentID: submission.AssignmentID,
		StudentID:    submission.StudentID,
		AutoScored:   autoScored,
		SubmittedAt:  submission.SubmittedAt,
	}
	if err := s.publisher.Publish(events.TopicSubmissionReceived, event); err != nil {
		s.logger.Error("Failed to publish received event",
			"submission_id", submission.ID,
			"error", err)
	}

	if autoScored && submission.Score != nil {
		graded := events.SubmissionGraded{
			SubmissionID: submission.ID,
			AssignmentID: submission.AssignmentID,
			StudentID:    submission.StudentID,
			Score:        *submission.Score,
			GradedAt:     submission.SubmittedAt,
		}
		if err := s.publisher.Publish(events.TopicSubmissionGraded, graded); err != nil {
			s.logger.Error("Failed to publish graded event",
				"submission_id", submission.ID,
				"error", err)
		}
	}
}
