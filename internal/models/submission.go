package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// AnswerSet maps question id to the selected answer option id.
type AnswerSet map[uint]uint

type Submission struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	StudentID    uint `json:"student_id" gorm:"not null;index"`
	AssignmentID uint `json:"assignment_id" gorm:"not null;index"`

	// Exactly one of Solution / Answers carries the payload: free-text
	// solutions await manual grading, answer sets are auto-graded at
	// submission time. No uniqueness constraint on (student, assignment):
	// repeat attempts accumulate as separate rows.
	Solution string         `json:"solution" gorm:"type:text"`
	Answers  datatypes.JSON `json:"answers" gorm:"type:jsonb"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"not null;index"`

	// Grading
	Score    *int       `json:"score"`
	Feedback *string    `json:"feedback" gorm:"type:text"`
	GradedBy *uint      `json:"graded_by"`
	GradedAt *time.Time `json:"graded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Student    User       `json:"-" gorm:"foreignKey:StudentID"`
	Assignment Assignment `json:"-" gorm:"foreignKey:AssignmentID"`
	Grader     *User      `json:"-" gorm:"foreignKey:GradedBy"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) IsGraded() bool {
	return s.Score != nil
}

// AnswerSet decodes the stored answers payload. An empty payload decodes
// to an empty set.
func (s *Submission) AnswerSet() (AnswerSet, error) {
	if len(s.Answers) == 0 {
		return AnswerSet{}, nil
	}
	var answers AnswerSet
	if err := json.Unmarshal(s.Answers, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

// SetAnswers encodes the answer set into the JSONB payload column.
func (s *Submission) SetAnswers(answers AnswerSet) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	s.Answers = datatypes.JSON(raw)
	return nil
}
