package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleParent  UserRole = "parent"
	RoleVisitor UserRole = "visitor"
	RoleGuest   UserRole = "guest"
	RoleOther   UserRole = "other"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleParent, RoleVisitor, RoleGuest, RoleOther:
		return true
	}
	return false
}

// QuestionCount is the number of rated questions on the form.
const QuestionCount = 6

const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is one visitor's rating of one subject. Rows are never updated.
type Feedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserRole  UserRole  `gorm:"type:varchar(32);not null;index" json:"user_role"`
	Subject   string    `gorm:"type:varchar(255);not null;index" json:"subject"`
	Q1        int       `gorm:"not null;check:q1 >= 1 AND q1 <= 5" json:"q1"`
	Q2        int       `gorm:"not null;check:q2 >= 1 AND q2 <= 5" json:"q2"`
	Q3        int       `gorm:"not null;check:q3 >= 1 AND q3 <= 5" json:"q3"`
	Q4        int       `gorm:"not null;check:q4 >= 1 AND q4 <= 5" json:"q4"`
	Q5        int       `gorm:"not null;check:q5 >= 1 AND q5 <= 5" json:"q5"`
	Q6        int       `gorm:"not null;check:q6 >= 1 AND q6 <= 5" json:"q6"`
	Total     int       `gorm:"not null" json:"total"`
	Percent   float64   `gorm:"not null" json:"percent"`
	Comment   *string   `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Ratings returns q1..q6 in order.
func (f *Feedback) Ratings() [QuestionCount]int {
	return [QuestionCount]int{f.Q1, f.Q2, f.Q3, f.Q4, f.Q5, f.Q6}
}
