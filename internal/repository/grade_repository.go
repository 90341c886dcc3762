package repository

import (
	"github.com/lambourne/crownprep/internal/model"
	"gorm.io/gorm"
)

type GradeRepository interface {
	Create(grade *model.Grade) error
	FindByID(id string) (*model.Grade, error)
	FindAll() ([]model.Grade, error)
	Count() (int64, error)
}

type gradeRepository struct {
	db *gorm.DB
}

func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) Create(grade *model.Grade) error {
	return r.db.Create(grade).Error
}

func (r *gradeRepository) FindByID(id string) (*model.Grade, error) {
	var grade model.Grade
	if err := r.db.First(&grade, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepository) FindAll() ([]model.Grade, error) {
	var grades []model.Grade
	if err := r.db.Order("created_at ASC").Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Grade{}).Count(&count).Error
	return count, err
}
