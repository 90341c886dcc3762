package model

import (
	"time"

	"gorm.io/gorm"
)

// Question is an immutable catalog entity authored in the admin console.
// Options and CorrectOrder are JSON-encoded string arrays; CorrectAnswer is
// the single expected value for MCQ/NUMERICAL questions and empty for
// FREE_TEXT/TECHNICAL.
type Question struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	Type          string         `json:"type" gorm:"not null;index"` // MCQ, SJT, NUMERICAL, FREE_TEXT, TECHNICAL
	GradeID       string         `json:"grade_id" gorm:"index"`
	Text          string         `json:"text" gorm:"type:text;not null"`
	Context       string         `json:"context,omitempty" gorm:"type:text"`
	Options       string         `json:"options,omitempty" gorm:"type:text"`
	CorrectAnswer string         `json:"correct_answer,omitempty"`
	CorrectOrder  string         `json:"correct_order,omitempty" gorm:"type:text"`
	Marks         float64        `json:"marks" gorm:"not null"`
	Rationale     string         `json:"rationale" gorm:"type:text"`
	Behaviours    []Behaviour    `json:"behaviours,omitempty" gorm:"many2many:question_behaviours"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
