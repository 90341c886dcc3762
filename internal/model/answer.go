package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer is the learner's response to one question within an attempt.
// Response is the JSON-encoded payload (text value or SJT ranking). One row
// per (attempt, question); autosave upserts replace it in place. Score fields
// stay nil until the attempt is submitted; ManualScore records an admin
// override for TECHNICAL (or disputed) answers.
type Answer struct {
	ID             string         `gorm:"type:uuid;primaryKey" json:"id"`
	TestAttemptID  string         `json:"test_attempt_id" gorm:"not null;index;uniqueIndex:idx_attempt_question"`
	QuestionID     string         `json:"question_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	Response       string         `json:"response" gorm:"type:text;not null"`
	Score          *float64       `json:"score,omitempty"`
	MaxScore       *float64       `json:"max_score,omitempty"`
	IsCorrect      *bool          `json:"is_correct,omitempty"`
	Feedback       string         `json:"feedback,omitempty" gorm:"type:text"`
	ManualScore    *float64       `json:"manual_score,omitempty"`
	ManualOverride bool           `json:"manual_override" gorm:"not null;default:false"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
