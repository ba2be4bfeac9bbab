package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/classware/gradebook-service/internal/models"
	"github.com/classware/gradebook-service/internal/repositories"
)

// AssignmentPostgreSQL implements the AssignmentRepository interface
type AssignmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{db: db}
}

func (a *AssignmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	db := a.getDB(tx)
	// FullSaveAssociations persists nested questions and options together
	// with the assignment row.
	return db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Create(assignment).Error
}

func (a *AssignmentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error) {
	db := a.getDB(tx)
	var assignment models.Assignment
	if err := db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (a *AssignmentPostgreSQL) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error) {
	db := a.getDB(tx)
	var assignment models.Assignment
	if err := db.WithContext(ctx).
		Preload("Questions").
		Preload("Questions.Options").
		First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (a *AssignmentPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.AssignmentFilters) ([]*models.Assignment, int64, error) {
	db := a.getDB(tx)
	var assignments []*models.Assignment
	var total int64

	// apply filter first
	query := db.WithContext(ctx).Model(&models.Assignment{})
	query = a.applyAssignmentFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = a.applyPaginationAndSort(query, filters)

	if err := query.Preload("Creator").Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

func (a *AssignmentPostgreSQL) Update(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	db := a.getDB(tx)
	return db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(assignment).Error
}

func (a *AssignmentPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := a.getDB(tx)
	return db.WithContext(ctx).Delete(&models.Assignment{}, id).Error
}

func (a *AssignmentPostgreSQL) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := a.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).Model(&models.Assignment{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return count, nil
}

func (a *AssignmentPostgreSQL) applyAssignmentFilters(query *gorm.DB, filters repositories.AssignmentFilters) *gorm.DB {
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	return query
}

// applyPaginationAndSort applies pagination and sorting to a query
func (a *AssignmentPostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.AssignmentFilters) *gorm.DB {
	sortBy := filters.SortBy
	switch sortBy {
	case "title", "deadline", "created_at":
	default:
		sortBy = "created_at"
	}

	order := "DESC"
	if filters.SortOrder == "asc" {
		order = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, order))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (a *AssignmentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}
