package repository

import (
	"github.com/lambourne/crownprep/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	FindByID(id string) (*model.Test, error)
	FindByIDWithQuestions(id string) (*model.Test, error)
	FindAll(publishedOnly bool) ([]model.Test, error)
	Update(test *model.Test) error
	SetPublished(id string, published bool) error
	Delete(id string) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	// Create cascades to the TestQuestion join rows when test.Questions is
	// populated.
	return r.db.Create(test).Error
}

func (r *testRepository) FindByID(id string) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithQuestions(id string) (*model.Test, error) {
	var test model.Test
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("test_questions.position ASC")
		}).
		Preload("Questions.Question").
		Preload("Questions.Question.Behaviours").
		First(&test, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAll(publishedOnly bool) ([]model.Test, error) {
	var tests []model.Test
	query := r.db.Order("created_at DESC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if err := query.Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *testRepository) Update(test *model.Test) error {
	return r.db.Save(test).Error
}

func (r *testRepository) SetPublished(id string, published bool) error {
	return r.db.Model(&model.Test{}).Where("id = ?", id).Update("is_published", published).Error
}

func (r *testRepository) Delete(id string) error {
	return r.db.Delete(&model.Test{}, "id = ?", id).Error
}
