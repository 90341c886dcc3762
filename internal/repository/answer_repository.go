package repository

import (
	"github.com/lambourne/crownprep/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	Upsert(answer *model.Answer) error
	Update(answer *model.Answer) error
	FindByAttempt(attemptID string) ([]model.Answer, error)
	FindByAttemptAndQuestion(attemptID, questionID string) (*model.Answer, error)
	DeleteByAttempt(attemptID string) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// Upsert implements last-write-wins per (attempt, question): autosave calls
// replace the stored response in place rather than appending rows.
func (r *answerRepository) Upsert(answer *model.Answer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "test_attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"response", "score", "max_score", "is_correct", "feedback", "updated_at",
		}),
	}).Create(answer).Error
}

func (r *answerRepository) Update(answer *model.Answer) error {
	return r.db.Save(answer).Error
}

func (r *answerRepository) FindByAttempt(attemptID string) ([]model.Answer, error) {
	var answers []model.Answer
	if err := r.db.Where("test_attempt_id = ?", attemptID).Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepository) FindByAttemptAndQuestion(attemptID, questionID string) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.Where("test_attempt_id = ? AND question_id = ?", attemptID, questionID).First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) DeleteByAttempt(attemptID string) error {
	return r.db.Where("test_attempt_id = ?", attemptID).Delete(&model.Answer{}).Error
}
