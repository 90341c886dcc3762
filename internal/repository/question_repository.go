package repository

import (
	"github.com/lambourne/crownprep/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id string) (*model.Question, error)
	FindAll(gradeID *string, questionType *string, page, pageSize int) ([]model.Question, int64, error)
	Update(question *model.Question) error
	ReplaceBehaviours(question *model.Question, behaviours []model.Behaviour) error
	Delete(id string) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	if err := r.db.Preload("Behaviours").First(&question, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindAll(gradeID *string, questionType *string, page, pageSize int) ([]model.Question, int64, error) {
	query := r.db.Model(&model.Question{})
	if gradeID != nil {
		query = query.Where("grade_id = ?", *gradeID)
	}
	if questionType != nil {
		query = query.Where("type = ?", *questionType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []model.Question
	err := query.
		Preload("Behaviours").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) ReplaceBehaviours(question *model.Question, behaviours []model.Behaviour) error {
	return r.db.Model(question).Association("Behaviours").Replace(behaviours)
}

func (r *questionRepository) Delete(id string) error {
	return r.db.Delete(&model.Question{}, "id = ?", id).Error
}
