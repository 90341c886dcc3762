package repository

import (
	"github.com/lambourne/crownprep/internal/model"
	"gorm.io/gorm"
)

type TestAttemptRepository interface {
	Create(attempt *model.TestAttempt) error
	Update(attempt *model.TestAttempt) error
	FindByID(id string) (*model.TestAttempt, error)
	FindByIDWithAnswers(id string) (*model.TestAttempt, error)
	FindAllByUser(userID string, status *string, page, pageSize int) ([]model.TestAttempt, int64, error)
	CountByStatus(status string) (int64, error)
	Delete(id string) error
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func (r *testAttemptRepository) Create(attempt *model.TestAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *testAttemptRepository) Update(attempt *model.TestAttempt) error {
	return r.db.Save(attempt).Error
}

func (r *testAttemptRepository) FindByID(id string) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.db.First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindByIDWithAnswers(id string) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.db.Preload("Answers").First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindAllByUser(userID string, status *string, page, pageSize int) ([]model.TestAttempt, int64, error) {
	query := r.db.Model(&model.TestAttempt{}).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attempts []model.TestAttempt
	err := query.
		Order("started_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&attempts).Error
	if err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

func (r *testAttemptRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.TestAttempt{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *testAttemptRepository) Delete(id string) error {
	return r.db.Delete(&model.TestAttempt{}, "id = ?", id).Error
}
