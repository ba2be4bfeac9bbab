package models

import (
	"time"
)

const DefaultMaxScore = 10

type Assignment struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	Title    string     `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Topic    *string    `json:"topic" gorm:"size:100" validate:"omitempty,max=100"`
	MaxScore int        `json:"max_score" gorm:"not null;default:10" validate:"min=0"`
	Deadline *time.Time `json:"deadline"`

	// Metadata
	CreatedBy uint      `json:"created_by" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Questions   []Question   `json:"questions" gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
	Submissions []Submission `json:"-" gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
	Creator     User         `json:"-" gorm:"foreignKey:CreatedBy"`
}

type Question struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	AssignmentID uint   `json:"assignment_id" gorm:"not null;index"`
	Text         string `json:"text" gorm:"type:text;not null" validate:"required"`

	CreatedAt time.Time `json:"created_at"`

	// Options are ordered by creation; question/option sets are immutable
	// once the assignment is created, only deletable via cascade.
	Options []AnswerOption `json:"options" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

type AnswerOption struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	Text       string `json:"text" gorm:"type:text;not null" validate:"required"`
	IsCorrect  bool   `json:"is_correct" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}

func (Question) TableName() string {
	return "questions"
}

func (AnswerOption) TableName() string {
	return "answer_options"
}

// HasQuestions reports whether the assignment is multiple-choice.
// Assignments without questions expect free-text solutions and are
// graded manually.
func (a *Assignment) HasQuestions() bool {
	return len(a.Questions) > 0
}

// CorrectOption returns the option marked correct, or nil when none is.
// At most one option per question is marked correct.
func (q *Question) CorrectOption() *AnswerOption {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}
