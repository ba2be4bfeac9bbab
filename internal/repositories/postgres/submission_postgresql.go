package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/classware/gradebook-service/internal/models"
	"github.com/classware/gradebook-service/internal/repositories"
)

// SubmissionPostgreSQL implements the SubmissionRepository interface
type SubmissionPostgreSQL struct {
	db *gorm.DB
}

func NewSubmissionPostgreSQL(db *gorm.DB) repositories.SubmissionRepository {
	return &SubmissionPostgreSQL{db: db}
}

func (s *SubmissionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	db := s.getDB(tx)
	return db.WithContext(ctx).Create(submission).Error
}

func (s *SubmissionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	db := s.getDB(tx)
	var submission models.Submission
	if err := db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionPostgreSQL) GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	db := s.getDB(tx)
	var submission models.Submission
	if err := db.WithContext(ctx).
		Preload("Student").
		Preload("Assignment").
		First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	db := s.getDB(tx)
	var submissions []*models.Submission
	var total int64

	query := db.WithContext(ctx).Model(&models.Submission{})
	query = s.applySubmissionFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.
		Preload("Student").
		Preload("Assignment").
		Order("submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (s *SubmissionPostgreSQL) ListByStudent(ctx context.Context, tx *gorm.DB, studentID uint, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	filters.StudentID = &studentID
	return s.List(ctx, tx, filters)
}

func (s *SubmissionPostgreSQL) ListByAssignment(ctx context.Context, tx *gorm.DB, assignmentID uint, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	filters.AssignmentID = &assignmentID
	return s.List(ctx, tx, filters)
}

func (s *SubmissionPostgreSQL) ListAll(ctx context.Context, tx *gorm.DB) ([]*models.Submission, error) {
	db := s.getDB(tx)
	var submissions []*models.Submission
	if err := db.WithContext(ctx).
		Order("submitted_at ASC").
		Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

func (s *SubmissionPostgreSQL) Update(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	db := s.getDB(tx)
	return db.WithContext(ctx).Save(submission).Error
}

func (s *SubmissionPostgreSQL) applySubmissionFilters(query *gorm.DB, filters repositories.SubmissionFilters) *gorm.DB {
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.AssignmentID != nil {
		query = query.Where("assignment_id = ?", *filters.AssignmentID)
	}
	if filters.Graded != nil {
		if *filters.Graded {
			query = query.Where("score IS NOT NULL")
		} else {
			query = query.Where("score IS NULL")
		}
	}
	if filters.DateFrom != nil {
		query = query.Where("submitted_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("submitted_at <= ?", *filters.DateTo)
	}
	return query
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (s *SubmissionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}
