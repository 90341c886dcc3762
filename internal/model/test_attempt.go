package model

import (
	"time"

	"gorm.io/gorm"
)

// TestAttempt is one learner's run through a test. TestSnapshot holds the
// JSON-encoded test definition captured at start time, so finished attempts
// keep scoring stably even if the catalog changes afterwards. QuestionOrder
// and BehaviourScores are JSON-encoded as well.
type TestAttempt struct {
	ID              string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string         `json:"user_id" gorm:"not null;index"`
	TestID          string         `json:"test_id" gorm:"not null;index"`
	TestSnapshot    string         `json:"-" gorm:"type:text;not null"`
	QuestionOrder   string         `json:"-" gorm:"type:text;not null"`
	Status          string         `json:"status" gorm:"not null;index;default:'IN_PROGRESS'"`
	StartedAt       time.Time      `json:"started_at" gorm:"not null"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	Score           *float64       `json:"score,omitempty"` // percentage
	TotalScore      *float64       `json:"total_score,omitempty"`
	MaxScore        *float64       `json:"max_score,omitempty"`
	Passed          *bool          `json:"passed,omitempty"`
	BehaviourScores string         `json:"-" gorm:"type:text"`
	Answers         []Answer       `json:"answers,omitempty" gorm:"foreignKey:TestAttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
