package model

import (
	"time"

	"gorm.io/gorm"
)

// Behaviour is a Success Profile competency dimension that questions are
// tagged against (e.g. "Delivering at Pace").
type Behaviour struct {
	ID              string         `gorm:"primaryKey" json:"id"`
	Name            string         `json:"name" gorm:"not null;uniqueIndex"`
	Description     string         `json:"description,omitempty" gorm:"type:text"`
	GradeID         *string        `json:"grade_id,omitempty" gorm:"index"`
	SuccessCriteria string         `json:"success_criteria,omitempty" gorm:"type:text"` // newline-separated
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
