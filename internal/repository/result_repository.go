package repository

import (
	"errors"

	"github.com/devly/devly/internal/apperr"
	"github.com/devly/devly/internal/model"
	"gorm.io/gorm"
)

type ResultRepository interface {
	// Create inserts a result with its answer rows. A violation of the
	// (test, student) unique index is returned as the same conflict error
	// the pre-check produces, so a concurrent duplicate submit surfaces
	// as "already submitted" rather than a storage error.
	Create(result *model.TestResult) error
	FindByTestAndStudent(testID, studentID uint) (*model.TestResult, error)
	FindAllByStudent(studentID uint) ([]model.TestResult, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(result *model.TestResult) error {
	err := r.db.Create(result).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("Test already submitted").WithCause(err)
	}
	return err
}

func (r *resultRepository) FindByTestAndStudent(testID, studentID uint) (*model.TestResult, error) {
	var result model.TestResult
	err := r.db.Where("test_id = ? AND student_id = ?", testID, studentID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) FindAllByStudent(studentID uint) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.db.Where("student_id = ?", studentID).Find(&results).Error
	return results, err
}
