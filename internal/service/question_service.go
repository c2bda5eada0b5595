package service

import (
	"fmt"

	"github.com/devly/devly/internal/dto"
	"github.com/devly/devly/internal/model"
	"github.com/devly/devly/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuestionService seeds the question bank. Entries are immutable once
// imported; sampling is the only consumer.
type QuestionService interface {
	Import(req dto.QuestionImportDTO) (int, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository) QuestionService {
	return &questionService{questionRepo: questionRepo}
}

func (s *questionService) Import(req dto.QuestionImportDTO) (int, error) {
	questions := make([]model.Question, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, model.Question{
			Text:       q.Text,
			OptionA:    q.OptionA,
			OptionB:    q.OptionB,
			OptionC:    q.OptionC,
			OptionD:    q.OptionD,
			Answer:     q.Answer,
			Difficulty: q.Difficulty,
			Subject:    q.Subject,
		})
	}

	if err := s.questionRepo.BulkCreate(questions); err != nil {
		log.Error().Err(err).Int("count", len(questions)).Msg("Import: failed to insert questions")
		return 0, fmt.Errorf("error importing questions: %w", err)
	}
	log.Info().Int("count", len(questions)).Msg("Question bank import completed")
	return len(questions), nil
}
