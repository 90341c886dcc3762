package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID               string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string         `json:"name" gorm:"not null"`
	Email            string         `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash     string         `json:"-" gorm:"not null"`
	Role             string         `json:"role" gorm:"not null;default:'USER'"`
	TargetGradeID    *string        `json:"target_grade_id,omitempty"`
	TargetProfession *string        `json:"target_profession,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
