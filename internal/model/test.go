package model

import (
	"time"

	"gorm.io/gorm"
)

// Test is an immutable catalog entity: an ordered set of questions with a
// time limit and a passing threshold. Question order lives on the join rows.
type Test struct {
	ID           string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string         `json:"name" gorm:"not null;uniqueIndex"`
	Description  string         `json:"description,omitempty" gorm:"type:text"`
	Type         string         `json:"type" gorm:"not null"`
	TimeLimit    int            `json:"time_limit" gorm:"not null"` // minutes
	GradeID      string         `json:"grade_id" gorm:"index"`
	PassingScore float64        `json:"passing_score" gorm:"not null"` // percentage 0-100
	IsPublished  bool           `json:"is_published" gorm:"not null;default:false"`
	Questions    []TestQuestion `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TestQuestion links a test to one of its questions at a fixed position.
type TestQuestion struct {
	ID         string   `gorm:"type:uuid;primaryKey" json:"id"`
	TestID     string   `json:"test_id" gorm:"not null;index;uniqueIndex:idx_test_position"`
	QuestionID string   `json:"question_id" gorm:"not null;index"`
	Question   Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Position   int      `json:"position" gorm:"not null;uniqueIndex:idx_test_position"`
}
