package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"not null;size:150" validate:"required,max=150"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:150" validate:"required,email"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;index;size:50" validate:"required,oneof=student teacher"`

	// Profile info
	FirstName *string `json:"first_name" gorm:"size:100"`
	LastName  *string `json:"last_name" gorm:"size:100"`
	Age       *int    `json:"age"`
	Gender    *string `json:"gender" gorm:"size:20"`
	Group     *string `json:"group" gorm:"column:group_label;size:100;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Assignments []Assignment `json:"-" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
	Submissions []Submission `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`

	// Roster: the students a teacher actively tracks.
	Roster []*User `json:"-" gorm:"many2many:teacher_students;joinForeignKey:TeacherID;joinReferences:StudentID"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}
