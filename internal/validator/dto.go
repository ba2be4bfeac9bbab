package validator

import (
	"time"

	"github.com/classware/gradebook-service/internal/models"
)

// RegisterRequest represents the request structure for account registration
type RegisterRequest struct {
	Name      string          `json:"name" validate:"required,max=200"`
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=6,max=128"`
	Role      models.UserRole `json:"role" validate:"required,oneof=student teacher"`
	FirstName *string         `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string         `json:"last_name" validate:"omitempty,max=100"`
	Age       *int            `json:"age" validate:"omitempty,min=3,max=120"`
	Gender    *string         `json:"gender" validate:"omitempty,max=32"`
	Group     *string         `json:"group" validate:"omitempty,max=64"`
}

// LoginRequest represents the request structure for session login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AddStudentRequest represents a teacher adding a student to their roster
type AddStudentRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6,max=128"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Age       *int    `json:"age" validate:"omitempty,min=3,max=120"`
	Gender    *string `json:"gender" validate:"omitempty,max=32"`
	Group     *string `json:"group" validate:"omitempty,max=64"`
}

// AnswerOptionRequest represents one choice of a multiple-choice question
type AnswerOptionRequest struct {
	Text      string `json:"text" validate:"required,max=500"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionCreateRequest represents the request structure for creating questions
type QuestionCreateRequest struct {
	Text    string                `json:"text" validate:"required,max=2000"`
	Options []AnswerOptionRequest `json:"options" validate:"omitempty,dive"`
}

// AssignmentCreateRequest represents the request structure for creating assignments
type AssignmentCreateRequest struct {
	Title     string                  `json:"title" validate:"required,max=200"`
	Topic     *string                 `json:"topic" validate:"omitempty,max=200"`
	MaxScore  *int                    `json:"max_score" validate:"omitempty,min=0"`
	Deadline  *time.Time              `json:"deadline"`
	Questions []QuestionCreateRequest `json:"questions" validate:"omitempty,dive"`
}

// AssignmentUpdateRequest represents the request structure for updating assignments
type AssignmentUpdateRequest struct {
	Title    *string    `json:"title" validate:"omitempty,max=200"`
	Topic    *string    `json:"topic" validate:"omitempty,max=200"`
	MaxScore *int       `json:"max_score" validate:"omitempty,min=0"`
	Deadline *time.Time `json:"deadline"`
}

// SubmitRequest represents a student handing in work for an assignment
type SubmitRequest struct {
	Solution string        `json:"solution" validate:"omitempty,max=20000"`
	Answers  map[uint]uint `json:"answers"`
}

// GradeRequest represents a teacher grading a submission
type GradeRequest struct {
	Score    *int    `json:"score" validate:"required,min=0"`
	Feedback *string `json:"feedback" validate:"omitempty,max=2000"`
}
