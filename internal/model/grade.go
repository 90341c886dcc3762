package model

import (
	"time"

	"gorm.io/gorm"
)

// Grade is a civil-service grade band (EO, HEO, SEO, G7, G6, SCS).
type Grade struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Name        string         `json:"name" gorm:"not null;uniqueIndex"`
	DisplayName string         `json:"display_name" gorm:"not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	SalaryRange string         `json:"salary_range,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
