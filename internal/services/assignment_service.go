package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/classware/gradebook-service/internal/models"
	"github.com/classware/gradebook-service/internal/repositories"
	"github.com/classware/gradebook-service/internal/validator"
)

type assignmentService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAssignmentService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AssignmentService {
	return &assignmentService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Create persists a new assignment with its questions and options in a
// single transaction.
func (s *assignmentService) Create(ctx context.Context, req *CreateAssignmentRequest, creatorID uint) (*AssignmentResponse, error) {
	s.logger.Info("Creating assignment",
		"title", req.Title,
		"creator_id", creatorID)

	if errs := s.validator.ValidateAssignmentCreate(req); errs.HasErrors() {
		return nil, NewValidationError("assignment", errs.Error(), nil)
	}

	assignment := &models.Assignment{
		Title:     req.Title,
		Topic:     req.Topic,
		MaxScore:  models.DefaultMaxScore,
		Deadline:  req.Deadline,
		CreatedBy: creatorID,
	}
	if req.MaxScore != nil {
		assignment.MaxScore = *req.MaxScore
	}

	for _, q := range req.Questions {
		question := models.Question{Text: q.Text}
		for _, opt := range q.Options {
			question.Options = append(question.Options, models.AnswerOption{
				Text:      opt.Text,
				IsCorrect: opt.IsCorrect,
			})
		}
		assignment.Questions = append(assignment.Questions, question)
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		return txRepo.Assignment().Create(ctx, nil, assignment)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info("Assignment created",
		"assignment_id", assignment.ID,
		"question_count", len(assignment.Questions))

	return s.toResponse(assignment, creatorID), nil
}

func (s *assignmentService) GetByID(ctx context.Context, id uint, userID uint) (*AssignmentResponse, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("assignment", id)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	return s.toResponse(assignment, userID), nil
}

func (s *assignmentService) GetByIDWithQuestions(ctx context.Context, id uint, userID uint) (*AssignmentResponse, error) {
	assignment, err := s.repo.Assignment().GetByIDWithQuestions(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("assignment", id)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	return s.toResponse(assignment, userID), nil
}

func (s *assignmentService) List(ctx context.Context, filters repositories.AssignmentFilters, userID uint) (*AssignmentListResponse, error) {
	assignments, total, err := s.repo.Assignment().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	responses := make([]*AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, s.toResponse(a, userID))
	}

	page := 1
	if filters.Limit > 0 {
		page = filters.Offset/filters.Limit + 1
	}

	return &AssignmentListResponse{
		Assignments: responses,
		Total:       total,
		Page:        page,
		Size:        len(responses),
	}, nil
}

func (s *assignmentService) Update(ctx context.Context, id uint, req *UpdateAssignmentRequest, userID uint) (*AssignmentResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError("assignment", errs.Error(), nil)
	}

	assignment, err := s.repo.Assignment().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("assignment", id)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	if assignment.CreatedBy != userID {
		return nil, NewPermissionError(userID, id, "assignment", "update", "not the assignment owner")
	}

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Topic != nil {
		assignment.Topic = req.Topic
	}
	if req.MaxScore != nil {
		assignment.MaxScore = *req.MaxScore
	}
	if req.Deadline != nil {
		assignment.Deadline = req.Deadline
	}

	if err := s.repo.Assignment().Update(ctx, nil, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	return s.toResponse(assignment, userID), nil
}

func (s *assignmentService) Delete(ctx context.Context, id uint, userID uint) error {
	assignment, err := s.repo.Assignment().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return NewNotFoundError("assignment", id)
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}

	if assignment.CreatedBy != userID {
		return NewPermissionError(userID, id, "assignment", "delete", "not the assignment owner")
	}

	if err := s.repo.Assignment().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.logger.Info("Assignment deleted", "assignment_id", id, "user_id", userID)
	return nil
}

func (s *assignmentService) toResponse(assignment *models.Assignment, userID uint) *AssignmentResponse {
	isOwner := assignment.CreatedBy == userID
	return &AssignmentResponse{
		Assignment: assignment,
		CanEdit:    isOwner,
		CanDelete:  isOwner,
	}
}
