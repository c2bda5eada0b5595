package repository

import (
	"github.com/devly/devly/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	BulkCreate(questions []model.Question) error
	FindBySubjectAndDifficulty(subject string, difficulty int) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) BulkCreate(questions []model.Question) error {
	return r.db.Create(&questions).Error
}

func (r *questionRepository) FindBySubjectAndDifficulty(subject string, difficulty int) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("subject = ? AND difficulty = ?", subject, difficulty).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
