package repository

import (
	"github.com/lambourne/crownprep/internal/model"
	"gorm.io/gorm"
)

type BehaviourRepository interface {
	Create(behaviour *model.Behaviour) error
	FindByID(id string) (*model.Behaviour, error)
	FindAll(gradeID *string) ([]model.Behaviour, error)
	Update(behaviour *model.Behaviour) error
	Delete(id string) error
	Count() (int64, error)
}

type behaviourRepository struct {
	db *gorm.DB
}

func NewBehaviourRepository(db *gorm.DB) BehaviourRepository {
	return &behaviourRepository{db: db}
}

func (r *behaviourRepository) Create(behaviour *model.Behaviour) error {
	return r.db.Create(behaviour).Error
}

func (r *behaviourRepository) FindByID(id string) (*model.Behaviour, error) {
	var behaviour model.Behaviour
	if err := r.db.First(&behaviour, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &behaviour, nil
}

func (r *behaviourRepository) FindAll(gradeID *string) ([]model.Behaviour, error) {
	var behaviours []model.Behaviour
	query := r.db.Order("name ASC")
	if gradeID != nil {
		query = query.Where("grade_id = ?", *gradeID)
	}
	if err := query.Find(&behaviours).Error; err != nil {
		return nil, err
	}
	return behaviours, nil
}

func (r *behaviourRepository) Update(behaviour *model.Behaviour) error {
	return r.db.Save(behaviour).Error
}

func (r *behaviourRepository) Delete(id string) error {
	return r.db.Delete(&model.Behaviour{}, "id = ?", id).Error
}

func (r *behaviourRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Behaviour{}).Count(&count).Error
	return count, err
}
