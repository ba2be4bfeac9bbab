package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/classware/gradebook-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role   *models.UserRole `json:"role"`
	Group  *string          `json:"group"`
	Query  string           `json:"query"` // name or email substring
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type AssignmentFilters struct {
	CreatedBy *uint      `json:"created_by"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortBy    string     `json:"sort_by"`    // "created_at", "title", "deadline"
	SortOrder string     `json:"sort_order"` // "asc", "desc"
}

type SubmissionFilters struct {
	StudentID    *uint      `json:"student_id"`
	AssignmentID *uint      `json:"assignment_id"`
	Graded       *bool      `json:"graded"`
	DateFrom     *time.Time `json:"date_from"`
	DateTo       *time.Time `json:"date_to"`
	Limit        int        `json:"limit"`
	Offset       int        `json:"offset"`
}

// ===== ENTITY REPOSITORIES =====

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	List(ctx context.Context, tx *gorm.DB, filters UserFilters) ([]*models.User, int64, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

type RosterRepository interface {
	Add(ctx context.Context, tx *gorm.DB, teacherID, studentID uint) error
	Remove(ctx context.Context, tx *gorm.DB, teacherID, studentID uint) error
	Contains(ctx context.Context, tx *gorm.DB, teacherID, studentID uint) (bool, error)
	ListStudents(ctx context.Context, tx *gorm.DB, teacherID uint) ([]*models.User, error)
}

type AssignmentRepository interface {
	// Create persists the assignment together with its nested questions
	// and options as one unit.
	Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error)
	GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error)
	List(ctx context.Context, tx *gorm.DB, filters AssignmentFilters) ([]*models.Assignment, int64, error)
	Update(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type SubmissionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error)
	GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error)
	List(ctx context.Context, tx *gorm.DB, filters SubmissionFilters) ([]*models.Submission, int64, error)
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID uint, filters SubmissionFilters) ([]*models.Submission, int64, error)
	ListByAssignment(ctx context.Context, tx *gorm.DB, assignmentID uint, filters SubmissionFilters) ([]*models.Submission, int64, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*models.Submission, error)
	Update(ctx context.Context, tx *gorm.DB, submission *models.Submission) error
}

// IsNotFoundError reports whether err comes from a lookup that matched no
// rows.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
