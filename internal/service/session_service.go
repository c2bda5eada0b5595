package service

import (
	"fmt"
	"time"

	"github.com/devly/devly/internal/apperr"
	"github.com/devly/devly/internal/dto"
	"github.com/devly/devly/internal/model"
	"github.com/devly/devly/internal/repository"
	"github.com/devly/devly/internal/schedule"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// SessionService covers the student-facing flow: browse scheduled tests,
// open an Active one for taking, and submit exactly once.
type SessionService interface {
	AvailableTests(studentID uint) ([]dto.AvailableTestDTO, error)
	TestForAttempt(studentID, testID uint) (*dto.AttemptTestDTO, error)
	Submit(studentID, testID uint, req dto.TestSubmitDTO) (*dto.SubmitResultDTO, error)
}

type sessionService struct {
	testRepo   repository.TestRepository
	resultRepo repository.ResultRepository
	now        func() time.Time
}

func NewSessionService(testRepo repository.TestRepository, resultRepo repository.ResultRepository) SessionService {
	return &sessionService{
		testRepo:   testRepo,
		resultRepo: resultRepo,
		now:        time.Now,
	}
}

func (s *sessionService) AvailableTests(studentID uint) ([]dto.AvailableTestDTO, error) {
	tests, err := s.testRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("AvailableTests: failed to load tests")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	results, err := s.resultRepo.FindAllByStudent(studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("AvailableTests: failed to load results")
		return nil, fmt.Errorf("error fetching results: %w", err)
	}
	resultsByTest := make(map[uint]*model.TestResult, len(results))
	for i := range results {
		resultsByTest[results[i].TestID] = &results[i]
	}

	now := s.now()
	dtos := make([]dto.AvailableTestDTO, 0, len(tests))
	for i := range tests {
		test := &tests[i]
		row := dto.AvailableTestDTO{
			ID:             test.ID,
			Title:          test.Title,
			Subject:        test.Subject,
			Difficulty:     test.Difficulty,
			ScheduledDate:  test.ScheduledDate,
			ScheduledTime:  test.ScheduledTime,
			Duration:       test.Duration,
			TotalQuestions: test.TotalQuestions,
			Description:    test.Description,
			CreatedByName:  test.CreatedBy.Name,
			Status:         string(schedule.StatusPending),
			NowIST:         schedule.FormatIST(now),
		}

		start, err := test.Window()
		if err != nil {
			log.Warn().Err(err).Uint("testID", test.ID).Msg("AvailableTests: malformed schedule on stored test")
		} else {
			row.Status = string(schedule.DeriveStatus(start, test.Duration, now))
			row.StartTimeIST = schedule.FormatIST(start)
			row.EndTimeIST = schedule.FormatIST(schedule.EndAt(start, test.Duration))
		}

		if prior, ok := resultsByTest[test.ID]; ok {
			row.HasAttempted = true
			row.Result = &dto.ResultSummaryDTO{Score: prior.Score, Percentage: prior.Percentage}
		}
		dtos = append(dtos, row)
	}
	return dtos, nil
}

func (s *sessionService) TestForAttempt(studentID, testID uint) (*dto.AttemptTestDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("TestForAttempt: repository error")
		return nil, fmt.Errorf("error loading test: %w", err)
	}
	if test == nil {
		return nil, apperr.NotFound("Test not found")
	}

	start, err := test.Window()
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("TestForAttempt: malformed schedule on stored test")
		return nil, fmt.Errorf("invalid test schedule: %w", err)
	}

	switch schedule.DeriveStatus(start, test.Duration, s.now()) {
	case schedule.StatusPending:
		return nil, apperr.Validation("Test has not started yet. Starts at: %s", schedule.FormatIST(start))
	case schedule.StatusCompleted:
		return nil, apperr.Validation("Test has ended. You cannot attempt it now.")
	}

	prior, err := s.resultRepo.FindByTestAndStudent(test.ID, studentID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("TestForAttempt: failed to check prior result")
		return nil, fmt.Errorf("error checking prior attempt: %w", err)
	}
	if prior != nil {
		return nil, apperr.Conflict("You have already attempted this test").
			WithExtra("result", dto.ResultSummaryDTO{
				Score:          prior.Score,
				TotalQuestions: prior.TotalQuestions,
				Percentage:     prior.Percentage,
			})
	}

	var resp dto.AttemptTestDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("TestForAttempt: failed to map test to DTO")
		return nil, fmt.Errorf("error preparing test response: %w", err)
	}
	resp.CreatedByName = test.CreatedBy.Name
	resp.Questions = make([]dto.QuestionStudentDTO, 0, len(test.Questions))
	for _, tq := range test.Questions {
		q := tq.Question
		resp.Questions = append(resp.Questions, dto.QuestionStudentDTO{
			ID:   q.ID,
			Text: q.Text,
			Options: dto.OptionsDTO{
				A: q.OptionA,
				B: q.OptionB,
				C: q.OptionC,
				D: q.OptionD,
			},
			Difficulty: q.Difficulty,
		})
	}
	return &resp, nil
}

func (s *sessionService) Submit(studentID, testID uint, req dto.TestSubmitDTO) (*dto.SubmitResultDTO, error) {
	// Reload with the authoritative answer key; client-side correctness
	// claims never enter grading.
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Submit: repository error")
		return nil, fmt.Errorf("error loading test: %w", err)
	}
	if test == nil {
		return nil, apperr.NotFound("Test not found")
	}

	prior, err := s.resultRepo.FindByTestAndStudent(test.ID, studentID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Submit: failed to check prior result")
		return nil, fmt.Errorf("error checking prior submission: %w", err)
	}
	if prior != nil {
		return nil, apperr.Conflict("Test already submitted")
	}

	if len(req.Answers) != len(test.Questions) {
		return nil, apperr.Validation("Please answer all %d questions", len(test.Questions))
	}

	questionsByID := make(map[uint]model.Question, len(test.Questions))
	for _, tq := range test.Questions {
		questionsByID[tq.QuestionID] = tq.Question
	}

	score := 0
	graded := make([]model.ResultAnswer, 0, len(req.Answers))
	for _, ans := range req.Answers {
		question, ok := questionsByID[ans.QuestionID]
		if !ok {
			return nil, apperr.Validation("Question ID %d not found", ans.QuestionID)
		}

		selected := NormalizeOption(ans.SelectedAnswer)
		isCorrect := GradeAnswer(selected, question.Answer)
		if isCorrect {
			score++
		}
		graded = append(graded, model.ResultAnswer{
			QuestionID:    question.ID,
			Selected:      selected,
			CorrectAnswer: question.Answer,
			IsCorrect:     isCorrect,
		})
	}

	now := s.now()
	total := len(test.Questions)
	result := model.TestResult{
		TestID:         test.ID,
		StudentID:      studentID,
		Answers:        graded,
		Score:          score,
		TotalQuestions: total,
		Percentage:     Percentage(score, total),
		StartedAt:      now.Add(-time.Duration(req.TimeTaken) * time.Minute),
		SubmittedAt:    now,
		TimeTaken:      req.TimeTaken,
	}

	// The unique (test, student) index is the real duplicate guard; the
	// repository maps its violation to the same conflict as the pre-check.
	if err := s.resultRepo.Create(&result); err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("studentID", studentID).Msg("Submit: failed to persist result")
		return nil, err
	}

	resp := dto.SubmitResultDTO{
		Score:          score,
		TotalQuestions: total,
		Percentage:     result.Percentage,
		Answers:        make([]dto.GradedAnswerDTO, 0, len(graded)),
	}
	for _, g := range graded {
		resp.Answers = append(resp.Answers, dto.GradedAnswerDTO{
			QuestionID:     g.QuestionID,
			SelectedAnswer: g.Selected,
			CorrectAnswer:  g.CorrectAnswer,
			IsCorrect:      g.IsCorrect,
		})
	}
	return &resp, nil
}
