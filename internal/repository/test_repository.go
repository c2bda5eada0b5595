package repository

import (
	"errors"

	"github.com/devly/devly/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	// FindByIDWithQuestions loads a test with its sampled questions in
	// stored order and the creating professor.
	FindByIDWithQuestions(id uint) (*model.Test, error)
	FindByIDForOwner(id, ownerID uint) (*model.Test, error)
	FindAllByCreator(ownerID uint) ([]model.Test, error)
	FindAll() ([]model.Test, error)
	// Save persists scalar fields only; the question set is replaced
	// separately via ReplaceQuestions.
	Save(test *model.Test) error
	ReplaceQuestions(testID uint, questions []model.TestQuestion) error
	Delete(id uint) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("test_questions.position ASC")
}

func (r *testRepository) Create(test *model.Test) error {
	return r.db.Create(test).Error
}

func (r *testRepository) FindByIDWithQuestions(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.
		Preload("Questions", orderedQuestions).
		Preload("Questions.Question").
		Preload("CreatedBy").
		First(&test, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDForOwner(id, ownerID uint) (*model.Test, error) {
	var test model.Test
	err := r.db.
		Where("created_by_id = ?", ownerID).
		Preload("Questions", orderedQuestions).
		Preload("Questions.Question").
		First(&test, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAllByCreator(ownerID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.
		Where("created_by_id = ?", ownerID).
		Preload("Questions", orderedQuestions).
		Preload("Questions.Question").
		Preload("CreatedBy").
		Order("scheduled_date DESC").
		Find(&tests).Error
	return tests, err
}

func (r *testRepository) FindAll() ([]model.Test, error) {
	var tests []model.Test
	err := r.db.
		Preload("CreatedBy").
		Order("scheduled_date ASC").
		Find(&tests).Error
	return tests, err
}

func (r *testRepository) Save(test *model.Test) error {
	return r.db.Omit("Questions", "CreatedBy").Save(test).Error
}

func (r *testRepository) ReplaceQuestions(testID uint, questions []model.TestQuestion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", testID).Delete(&model.TestQuestion{}).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

func (r *testRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", id).Delete(&model.TestQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Test{}, id).Error
	})
}
