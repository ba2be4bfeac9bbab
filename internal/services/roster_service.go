package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/classware/gradebook-service/internal/auth"
	"github.com/classware/gradebook-service/internal/models"
	"github.com/classware/gradebook-service/internal/repositories"
	"github.com/classware/gradebook-service/internal/validator"
)

type rosterService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewRosterService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) RosterService {
	return &rosterService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// AddStudent creates a student account and links it to the teacher's
// roster in one transaction.
func (s *rosterService) AddStudent(ctx context.Context, req *AddStudentRequest, teacherID uint) (*models.User, error) {
	s.logger.Info("Adding student to roster",
		"teacher_id", teacherID,
		"email", req.Email)

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError("student", errs.Error(), nil)
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, NewConflictError("user", "email already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	student := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleStudent,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Age:          req.Age,
		Gender:       req.Gender,
		Group:        req.Group,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Create(ctx, nil, student); err != nil {
			return fmt.Errorf("failed to create student: %w", err)
		}
		if err := txRepo.Roster().Add(ctx, nil, teacherID, student.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student added",
		"teacher_id", teacherID,
		"student_id", student.ID)

	return student, nil
}

// RemoveStudent unlinks a student from the teacher's roster and removes
// the account.
func (s *rosterService) RemoveStudent(ctx context.Context, studentID uint, teacherID uint) error {
	onRoster, err := s.repo.Roster().Contains(ctx, nil, teacherID, studentID)
	if err != nil {
		return fmt.Errorf("failed to check roster: %w", err)
	}
	if !onRoster {
		return NewNotFoundError("student", studentID)
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Roster().Remove(ctx, nil, teacherID, studentID); err != nil {
			return err
		}
		if err := txRepo.User().Delete(ctx, nil, studentID); err != nil {
			return fmt.Errorf("failed to delete student: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Student removed",
		"teacher_id", teacherID,
		"student_id", studentID)

	return nil
}

// ListStudents returns the teacher's roster sorted by name, narrowed to
// one group when the filter is set.
func (s *rosterService) ListStudents(ctx context.Context, teacherID uint, group string) ([]*models.User, error) {
	students, err := s.repo.Roster().ListStudents(ctx, nil, teacherID)
	if err != nil {
		return nil, err
	}

	if group == "" {
		return students, nil
	}

	filtered := make([]*models.User, 0, len(students))
	for _, student := range students {
		if student.Group != nil && *student.Group == group {
			filtered = append(filtered, student)
		}
	}
	return filtered, nil
}
