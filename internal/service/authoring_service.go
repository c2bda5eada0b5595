package service

import (
	"fmt"
	"time"

	"github.com/devly/devly/internal/apperr"
	"github.com/devly/devly/internal/dto"
	"github.com/devly/devly/internal/model"
	"github.com/devly/devly/internal/repository"
	"github.com/devly/devly/internal/schedule"
	"github.com/rs/zerolog/log"
)

const (
	defaultDuration       = 60
	defaultTotalQuestions = 10
)

// AuthoringService covers the professor-facing test lifecycle: create with
// question sampling, list, patch and delete while Pending.
type AuthoringService interface {
	ListTests(professorID uint) ([]dto.TestProfessorDTO, error)
	CreateTest(professorID uint, req dto.TestCreateDTO) (*dto.TestProfessorDTO, error)
	UpdateTest(professorID, testID uint, req dto.TestUpdateDTO) (*dto.TestProfessorDTO, error)
	DeleteTest(professorID, testID uint) error
}

type authoringService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	now          func() time.Time
}

func NewAuthoringService(testRepo repository.TestRepository, questionRepo repository.QuestionRepository) AuthoringService {
	return &authoringService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		now:          time.Now,
	}
}

func (s *authoringService) ListTests(professorID uint) ([]dto.TestProfessorDTO, error) {
	tests, err := s.testRepo.FindAllByCreator(professorID)
	if err != nil {
		log.Error().Err(err).Uint("professorID", professorID).Msg("ListTests: repository error")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	now := s.now()
	dtos := make([]dto.TestProfessorDTO, 0, len(tests))
	for i := range tests {
		tests[i].RefreshStatus(now)
		dtos = append(dtos, toProfessorDTO(&tests[i]))
	}
	return dtos, nil
}

func (s *authoringService) CreateTest(professorID uint, req dto.TestCreateDTO) (*dto.TestProfessorDTO, error) {
	scheduledDate, err := time.ParseInLocation("2006-01-02", req.ScheduledDate, schedule.IST)
	if err != nil {
		return nil, apperr.Validation("Invalid scheduled date %q", req.ScheduledDate)
	}

	duration := req.Duration
	if duration == 0 {
		duration = defaultDuration
	}
	total := req.TotalQuestions
	if total == 0 {
		total = defaultTotalQuestions
	}

	sampled, err := s.sample(req.Subject, req.Difficulty, total)
	if err != nil {
		return nil, err
	}

	test := model.Test{
		Title:          req.Title,
		Subject:        req.Subject,
		Difficulty:     req.Difficulty,
		ScheduledDate:  scheduledDate,
		ScheduledTime:  req.ScheduledTime,
		Duration:       duration,
		TotalQuestions: total,
		Description:    req.Description,
		CreatedByID:    professorID,
		Questions:      toTestQuestions(0, sampled),
	}
	test.RefreshStatus(s.now())

	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Uint("professorID", professorID).Msg("CreateTest: repository error")
		return nil, fmt.Errorf("error creating test: %w", err)
	}

	return s.reload(test.ID)
}

func (s *authoringService) UpdateTest(professorID, testID uint, req dto.TestUpdateDTO) (*dto.TestProfessorDTO, error) {
	test, err := s.testRepo.FindByIDForOwner(testID, professorID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("UpdateTest: repository error")
		return nil, fmt.Errorf("error loading test: %w", err)
	}
	if test == nil {
		return nil, apperr.NotFound("Test not found")
	}

	if status := test.DeriveStatus(s.now()); status != schedule.StatusPending {
		return nil, apperr.Validation("Cannot edit %s test", status)
	}

	if req.Title != nil {
		test.Title = *req.Title
	}
	if req.Subject != nil {
		test.Subject = *req.Subject
	}
	if req.Difficulty != nil {
		test.Difficulty = *req.Difficulty
	}
	if req.ScheduledDate != nil {
		d, err := time.ParseInLocation("2006-01-02", *req.ScheduledDate, schedule.IST)
		if err != nil {
			return nil, apperr.Validation("Invalid scheduled date %q", *req.ScheduledDate)
		}
		test.ScheduledDate = d
	}
	if req.ScheduledTime != nil {
		test.ScheduledTime = *req.ScheduledTime
	}
	if req.Duration != nil {
		test.Duration = *req.Duration
	}
	if req.TotalQuestions != nil {
		test.TotalQuestions = *req.TotalQuestions
	}
	if req.Description != nil {
		test.Description = *req.Description
	}

	// The exam paper is regenerated only when the fields that define the
	// pool or its size change.
	if req.Subject != nil || req.Difficulty != nil || req.TotalQuestions != nil {
		sampled, err := s.sample(test.Subject, test.Difficulty, test.TotalQuestions)
		if err != nil {
			return nil, err
		}
		if err := s.testRepo.ReplaceQuestions(test.ID, toTestQuestions(test.ID, sampled)); err != nil {
			log.Error().Err(err).Uint("testID", test.ID).Msg("UpdateTest: failed to replace questions")
			return nil, fmt.Errorf("error updating test questions: %w", err)
		}
	}

	test.RefreshStatus(s.now())
	if err := s.testRepo.Save(test); err != nil {
		log.Error().Err(err).Uint("testID", test.ID).Msg("UpdateTest: failed to save test")
		return nil, fmt.Errorf("error updating test: %w", err)
	}

	return s.reload(test.ID)
}

func (s *authoringService) DeleteTest(professorID, testID uint) error {
	test, err := s.testRepo.FindByIDForOwner(testID, professorID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("DeleteTest: repository error")
		return fmt.Errorf("error loading test: %w", err)
	}
	if test == nil {
		return apperr.NotFound("Test not found")
	}

	if status := test.DeriveStatus(s.now()); status != schedule.StatusPending {
		return apperr.Validation("Cannot delete %s test", status)
	}

	if err := s.testRepo.Delete(test.ID); err != nil {
		log.Error().Err(err).Uint("testID", test.ID).Msg("DeleteTest: failed to delete test")
		return fmt.Errorf("error deleting test: %w", err)
	}
	return nil
}

// sample loads the matching pool and draws the requested count, or fails
// with the pool shortfall.
func (s *authoringService) sample(subject string, difficulty, total int) ([]model.Question, error) {
	pool, err := s.questionRepo.FindBySubjectAndDifficulty(subject, difficulty)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Int("difficulty", difficulty).Msg("sample: repository error")
		return nil, fmt.Errorf("error loading question pool: %w", err)
	}
	if len(pool) < total {
		return nil, apperr.Validation("Not enough questions available (%d)", len(pool))
	}
	return SampleQuestions(pool, total), nil
}

func toTestQuestions(testID uint, questions []model.Question) []model.TestQuestion {
	tqs := make([]model.TestQuestion, 0, len(questions))
	for i, q := range questions {
		tqs = append(tqs, model.TestQuestion{
			TestID:     testID,
			QuestionID: q.ID,
			Position:   i + 1,
		})
	}
	return tqs
}

func (s *authoringService) reload(testID uint) (*dto.TestProfessorDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil || test == nil {
		log.Error().Err(err).Uint("testID", testID).Msg("reload: failed to reload test")
		return nil, fmt.Errorf("error reloading test %d: %w", testID, err)
	}
	test.RefreshStatus(s.now())
	d := toProfessorDTO(test)
	return &d, nil
}

func toProfessorDTO(test *model.Test) dto.TestProfessorDTO {
	questions := make([]dto.QuestionProfessorDTO, 0, len(test.Questions))
	for _, tq := range test.Questions {
		questions = append(questions, dto.QuestionProfessorDTO{
			ID:         tq.QuestionID,
			Text:       tq.Question.Text,
			Difficulty: tq.Question.Difficulty,
		})
	}
	return dto.TestProfessorDTO{
		ID:             test.ID,
		Title:          test.Title,
		Subject:        test.Subject,
		Difficulty:     test.Difficulty,
		ScheduledDate:  test.ScheduledDate,
		ScheduledTime:  test.ScheduledTime,
		Duration:       test.Duration,
		TotalQuestions: test.TotalQuestions,
		Description:    test.Description,
		Status:         test.Status,
		CreatedByName:  test.CreatedBy.Name,
		Questions:      questions,
		CreatedAt:      test.CreatedAt,
	}
}
