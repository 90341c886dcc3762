package model

import (
	"time"

	"gorm.io/gorm"
)

// StatementDraft is a STAR-method behaviour statement a learner is working
// on, one per draft. Feedback is regenerated on demand, not stored.
type StatementDraft struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string         `json:"user_id" gorm:"not null;index"`
	BehaviourID string         `json:"behaviour_id" gorm:"not null;index"`
	Situation   string         `json:"situation" gorm:"type:text"`
	Task        string         `json:"task" gorm:"type:text"`
	Action      string         `json:"action" gorm:"type:text"`
	Result      string         `json:"result" gorm:"type:text"`
	MaxWords    int            `json:"max_words" gorm:"not null;default:250"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
