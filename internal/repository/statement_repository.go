package repository

import (
	"github.com/lambourne/crownprep/internal/model"
	"gorm.io/gorm"
)

type StatementRepository interface {
	Create(draft *model.StatementDraft) error
	Update(draft *model.StatementDraft) error
	FindByID(id string) (*model.StatementDraft, error)
	FindAllByUser(userID string) ([]model.StatementDraft, error)
	Delete(id string) error
}

type statementRepository struct {
	db *gorm.DB
}

func NewStatementRepository(db *gorm.DB) StatementRepository {
	return &statementRepository{db: db}
}

func (r *statementRepository) Create(draft *model.StatementDraft) error {
	return r.db.Create(draft).Error
}

func (r *statementRepository) Update(draft *model.StatementDraft) error {
	return r.db.Save(draft).Error
}

func (r *statementRepository) FindByID(id string) (*model.StatementDraft, error) {
	var draft model.StatementDraft
	if err := r.db.First(&draft, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *statementRepository) FindAllByUser(userID string) ([]model.StatementDraft, error) {
	var drafts []model.StatementDraft
	if err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&drafts).Error; err != nil {
		return nil, err
	}
	return drafts, nil
}

func (r *statementRepository) Delete(id string) error {
	return r.db.Delete(&model.StatementDraft{}, "id = ?", id).Error
}
