package service

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/devly/devly/internal/apperr"
	"github.com/devly/devly/internal/dto"
	"github.com/devly/devly/internal/model"
	"github.com/devly/devly/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const studentID = uint(42)

func newSessionFixture(now time.Time) (*fakeStore, *sessionService) {
	store := newFakeStore()
	svc := NewSessionService(&fakeTestRepo{store: store}, &fakeResultRepo{store: store}).(*sessionService)
	svc.now = func() time.Time { return now }
	return store, svc
}

// addScheduledTest seeds a 4-question test whose answer key is a,b,c,d in
// paper order.
func addScheduledTest(store *fakeStore, date time.Time, hhmm string, durationMin int) uint {
	qids := store.addQuestions(model.SubjectPy, 2, 4)

	tqs := make([]model.TestQuestion, 0, len(qids))
	for i, id := range qids {
		tqs = append(tqs, model.TestQuestion{QuestionID: id, Position: i + 1})
	}
	test := model.Test{
		Title:          "Python Basics",
		Subject:        model.SubjectPy,
		Difficulty:     2,
		ScheduledDate:  date,
		ScheduledTime:  hhmm,
		Duration:       durationMin,
		TotalQuestions: len(qids),
		CreatedByID:    professorID,
		CreatedBy:      model.User{ID: professorID, Name: "Prof. Lovelace"},
		Questions:      tqs,
		Status:         string(schedule.StatusPending),
	}
	repo := &fakeTestRepo{store: store}
	if err := repo.Create(&test); err != nil {
		panic(err)
	}
	return test.ID
}

func submission(store *fakeStore, testID uint, picks []string) dto.TestSubmitDTO {
	test := store.tests[testID]
	cp := store.testCopy(test)

	req := dto.TestSubmitDTO{TimeTaken: 12}
	for i, tq := range cp.Questions {
		pick := ""
		if i < len(picks) {
			pick = picks[i]
		}
		req.Answers = append(req.Answers, dto.SubmittedAnswerDTO{
			QuestionID:     tq.QuestionID,
			SelectedAnswer: pick,
		})
	}
	return req
}

func TestAvailableTests_JoinsPriorResults(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, schedule.IST)
	store, svc := newSessionFixture(now)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, schedule.IST)
	activeID := addScheduledTest(store, date, "09:00", 60)
	pendingID := addScheduledTest(store, date.AddDate(0, 0, 1), "09:00", 60)

	_, err := svc.Submit(studentID, activeID, submission(store, activeID, []string{"a", "b", "c", "d"}))
	require.NoError(t, err)

	rows, err := svc.AvailableTests(studentID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Sorted by scheduled start ascending.
	assert.Equal(t, activeID, rows[0].ID)
	assert.Equal(t, pendingID, rows[1].ID)

	assert.Equal(t, string(schedule.StatusActive), rows[0].Status)
	assert.True(t, rows[0].HasAttempted)
	require.NotNil(t, rows[0].Result)
	assert.Equal(t, 4, rows[0].Result.Score)
	assert.Equal(t, 100, rows[0].Result.Percentage)
	assert.Equal(t, "Prof. Lovelace", rows[0].CreatedByName)
	assert.NotEmpty(t, rows[0].StartTimeIST)
	assert.NotEmpty(t, rows[0].EndTimeIST)

	assert.Equal(t, string(schedule.StatusPending), rows[1].Status)
	assert.False(t, rows[1].HasAttempted)
	assert.Nil(t, rows[1].Result)
}

func TestAvailableTests_ReadIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, schedule.IST)
	store, svc := newSessionFixture(now)
	addScheduledTest(store, time.Date(2026, 3, 10, 0, 0, 0, 0, schedule.IST), "09:00", 60)

	first, err := svc.AvailableTests(studentID)
	require.NoError(t, err)
	second, err := svc.AvailableTests(studentID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTestForAttempt_WindowGates(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, schedule.IST)

	t.Run("pending", func(t *testing.T) {
		store, svc := newSessionFixture(time.Date(2026, 3, 10, 8, 0, 0, 0, schedule.IST))
		id := addScheduledTest(store, date, "09:00", 60)

		_, err := svc.TestForAttempt(studentID, id)
		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, apperr.KindValidation, ae.Kind)
		assert.Contains(t, ae.Message, "not started yet")
		assert.Contains(t, ae.Message, "Starts at:")
	})

	t.Run("completed", func(t *testing.T) {
		store, svc := newSessionFixture(time.Date(2026, 3, 10, 11, 0, 0, 1, schedule.IST))
		id := addScheduledTest(store, date, "09:00", 60)

		_, err := svc.TestForAttempt(studentID, id)
		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		assert.Contains(t, ae.Message, "Test has ended")
	})

	t.Run("unknown test", func(t *testing.T) {
		_, svc := newSessionFixture(time.Date(2026, 3, 10, 9, 30, 0, 0, schedule.IST))

		_, err := svc.TestForAttempt(studentID, 999)
		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, apperr.KindNotFound, ae.Kind)
	})
}

func TestTestForAttempt_PriorAttemptConflict(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, schedule.IST)
	store, svc := newSessionFixture(now)
	id := addScheduledTest(store, time.Date(2026, 3, 10, 0, 0, 0, 0, schedule.IST), "09:00", 60)

	_, err := svc.Submit(studentID, id, submission(store, id, []string{"a", "b", "c", "d"}))
	require.NoError(t, err)

	_, err = svc.TestForAttempt(studentID, id)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindConflict, ae.Kind)
	assert.Contains(t, ae.Message, "already attempted")

	summary, ok := ae.Extra["result"].(dto.ResultSummaryDTO)
	require.True(t, ok)
	assert.Equal(t, 4, summary.Score)
	assert.Equal(t, 100, summary.Percentage)
}

func TestTestForAttempt_StripsAnswerKey(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, schedule.IST)
	store, svc := newSessionFixture(now)
	id := addScheduledTest(store, time.Date(2026, 3, 10, 0, 0, 0, 0, schedule.IST), "09:00", 60)

	test, err := svc.TestForAttempt(studentID, id)
	require.NoError(t, err)
	require.Len(t, test.Questions, 4)

	for _, q := range test.Questions {
		assert.NotEmpty(t, q.Text)
		assert.NotEmpty(t, q.Options.A)
		assert.NotEmpty(t, q.Options.D)
	}

	// The serialized payload a student receives must carry no key fields.
	raw, err := json.Marshal(test)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"answer"`)
	assert.NotContains(t, string(raw), `"correctAnswer"`)
}

func TestSubmit_Grading(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, schedule.IST)
	store, svc := newSessionFixture(now)
	id := addScheduledTest(store, time.Date(2026, 3, 10, 0, 0, 0, 0, schedule.IST), "09:00", 60)

	// Key is a,b,c,d: first correct, second wrong, third correct (mixed
	// case), fourth left blank.
	result, err := svc.Submit(studentID, id, submission(store, id, []string{"a", "d", "C", ""}))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, 50, result.Percentage)
	require.Len(t, result.Answers, 4)

	assert.True(t, result.Answers[0].IsCorrect)
	assert.False(t, result.Answers[1].IsCorrect)
	assert.Equal(t, "d", result.Answers[1].SelectedAnswer)
	assert.True(t, result.Answers[2].IsCorrect)
	assert.Equal(t, "c", result.Answers[2].SelectedAnswer)
	assert.False(t, result.Answers[3].IsCorrect)
	assert.Equal(t, model.NotAnswered, result.Answers[3].SelectedAnswer)

	stored, err := (&fakeResultRepo{store: store}).FindByTestAndStudent(id, studentID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 2, stored.Score)
	assert.Equal(t, 50, stored.Percentage)
	assert.Equal(t, 12, stored.TimeTaken)
	assert.Equal(t, now, stored.SubmittedAt)
	assert.Equal(t, now.Add(-12*time.Minute), stored.StartedAt)
}

func TestSubmit_CountMismatch(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, schedule.IST)
	store, svc := newSessionFixture(now)
	id := addScheduledTest(store, time.Date(2026, 3, 10, 0, 0, 0, 0, schedule.IST), "09:00", 60)

	req := submission(store, id, []string{"a", "b", "c", "d"})
	req.Answers = req.Answers[:3]

	_, err := svc.Submit(studentID, id, req)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Contains(t, ae.Message, "all 4 questions")
	assert.Empty(t, store.results, "nothing must be written on mismatch")
}

func TestSubmit_ForeignQuestionID(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, schedule.IST)
	store, svc := newSessionFixture(now)
	id := addScheduledTest(store, time.Date(2026, 3, 10, 0, 0, 0, 0, schedule.IST), "09:00", 60)

	req := submission(store, id, []string{"a", "b", "c", "d"})
	req.Answers[2].QuestionID = 9999

	_, err := svc.Submit(studentID, id, req)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Contains(t, ae.Message, "9999")
	assert.Empty(t, store.results, "nothing must be written on foreign id")
}

func TestSubmit_DuplicateRejected(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, schedule.IST)
	store, svc := newSessionFixture(now)
	id := addScheduledTest(store, time.Date(2026, 3, 10, 0, 0, 0, 0, schedule.IST), "09:00", 60)

	_, err := svc.Submit(studentID, id, submission(store, id, []string{"a", "b", "c", "d"}))
	require.NoError(t, err)

	_, err = svc.Submit(studentID, id, submission(store, id, []string{"a", "b", "c", "d"}))
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindConflict, ae.Kind)
	assert.Equal(t, "Test already submitted", ae.Message)
	assert.Len(t, store.results, 1)
}

func TestSubmit_ConcurrentDuplicate(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, schedule.IST)
	store, svc := newSessionFixture(now)
	id := addScheduledTest(store, time.Date(2026, 3, 10, 0, 0, 0, 0, schedule.IST), "09:00", 60)

	req := submission(store, id, []string{"a", "b", "c", "d"})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(studentID, id, req)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, apperr.KindConflict, ae.Kind)
		assert.Equal(t, "Test already submitted", ae.Message)
		conflicts++
	}
	assert.Equal(t, 1, successes, "exactly one submission must persist")
	assert.Equal(t, 1, conflicts)
	assert.Len(t, store.results, 1)
}
