package services

import (
	"context"

	"github.com/classware/gradebook-service/internal/models"
	"github.com/classware/gradebook-service/internal/repositories"
	"github.com/classware/gradebook-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateAssignmentRequest = validator.AssignmentCreateRequest
type UpdateAssignmentRequest = validator.AssignmentUpdateRequest
type SubmitSubmissionRequest = validator.SubmitRequest
type GradeSubmissionRequest = validator.GradeRequest
type RegisterRequest = validator.RegisterRequest
type AddStudentRequest = validator.AddStudentRequest

type AssignmentResponse struct {
	*models.Assignment
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

type AssignmentListResponse struct {
	Assignments []*AssignmentResponse `json:"assignments"`
	Total       int64                 `json:"total"`
	Page        int                   `json:"page"`
	Size        int                   `json:"size"`
}

type SubmissionResponse struct {
	*models.Submission
	CanGrade bool `json:"can_grade"`
	Late     bool `json:"late"`
}

type SubmissionListResponse struct {
	Submissions []*SubmissionResponse `json:"submissions"`
	Total       int64                 `json:"total"`
	Page        int                   `json:"page"`
	Size        int                   `json:"size"`
}

// ===== GRADING RELATED DTOs =====

// EvaluationResult is the outcome of auto-scoring a set of answers
// against an assignment's questions.
type EvaluationResult struct {
	Score             int `json:"score"`
	CorrectCount      int `json:"correct_count"`
	QuestionCount     int `json:"question_count"`
	PointsPerQuestion int `json:"points_per_question"`
}

// ===== STATISTICS RELATED DTOs =====

type StudentStat struct {
	StudentID    uint    `json:"student_id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Group        *string `json:"group"`
	AvgScore     float64 `json:"avg_score"`
	Completed    int     `json:"completed"`
	NotCompleted int     `json:"not_completed"`
	Late         int     `json:"late"`
	FirstTry     int     `json:"first_try"`
	LastScore    *int    `json:"last_score"`
}

type HeatmapEntry struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// StudentStatFilters narrows a student stats listing. Group matches
// exactly; Score is an expression like ">80", "<50" or "=75".
type StudentStatFilters struct {
	Group string `json:"group"`
	Score string `json:"score"`
}

// ===== SERVICE INTERFACES =====

type AssignmentService interface {
	Create(ctx context.Context, req *CreateAssignmentRequest, creatorID uint) (*AssignmentResponse, error)
	GetByID(ctx context.Context, id uint, userID uint) (*AssignmentResponse, error)
	GetByIDWithQuestions(ctx context.Context, id uint, userID uint) (*AssignmentResponse, error)
	List(ctx context.Context, filters repositories.AssignmentFilters, userID uint) (*AssignmentListResponse, error)
	Update(ctx context.Context, id uint, req *UpdateAssignmentRequest, userID uint) (*AssignmentResponse, error)
	Delete(ctx context.Context, id uint, userID uint) error
}

type SubmissionService interface {
	Submit(ctx context.Context, assignmentID uint, req *SubmitSubmissionRequest, studentID uint) (*SubmissionResponse, error)
	GetByID(ctx context.Context, id uint, userID uint) (*SubmissionResponse, error)
	ListByStudent(ctx context.Context, studentID uint, filters repositories.SubmissionFilters, userID uint) (*SubmissionListResponse, error)
	ListByAssignment(ctx context.Context, assignmentID uint, filters repositories.SubmissionFilters, userID uint) (*SubmissionListResponse, error)
}

type GradingService interface {
	// Evaluate auto-scores multiple-choice answers against an
	// assignment's questions. It is deterministic and side-effect free.
	Evaluate(assignment *models.Assignment, answers models.AnswerSet) *EvaluationResult

	// Grade records a manual score and feedback on a submission.
	Grade(ctx context.Context, submissionID uint, req *GradeSubmissionRequest, graderID uint) (*SubmissionResponse, error)
}

type StatisticsService interface {
	GetStudentStats(ctx context.Context, teacherID uint, filters StudentStatFilters) ([]*StudentStat, error)
	GetHeatmap(ctx context.Context, teacherID uint) ([]HeatmapEntry, error)
}

type RosterService interface {
	AddStudent(ctx context.Context, req *AddStudentRequest, teacherID uint) (*models.User, error)
	RemoveStudent(ctx context.Context, studentID uint, teacherID uint) error
	ListStudents(ctx context.Context, teacherID uint, group string) ([]*models.User, error)
}

type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type ExportService interface {
	// ExportStudentStats renders a stats listing as an xlsx workbook.
	ExportStudentStats(ctx context.Context, teacherID uint, filters StudentStatFilters) ([]byte, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Assignment() AssignmentService
	Submission() SubmissionService
	Grading() GradingService
	Statistics() StatisticsService
	Roster() RosterService
	User() UserService
	Export() ExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
