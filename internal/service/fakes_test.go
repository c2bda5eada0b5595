package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/devly/devly/internal/apperr"
	"github.com/devly/devly/internal/model"
)

// fakeStore is an in-memory stand-in for the shared database. It enforces
// the same (test, student) uniqueness the real store enforces with its
// composite index, so the duplicate-submission race is observable in tests.
type fakeStore struct {
	mu           sync.Mutex
	questions    map[uint]model.Question
	nextQID      uint
	tests        map[uint]model.Test
	nextTestID   uint
	results      map[string]model.TestResult
	nextResultID uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		questions: map[uint]model.Question{},
		tests:     map[uint]model.Test{},
		results:   map[string]model.TestResult{},
	}
}

func resultKey(testID, studentID uint) string {
	return fmt.Sprintf("%d/%d", testID, studentID)
}

func (s *fakeStore) addQuestions(subject string, difficulty, n int) []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		s.nextQID++
		q := model.Question{
			ID:         s.nextQID,
			Text:       fmt.Sprintf("%s q%d", subject, s.nextQID),
			OptionA:    "first",
			OptionB:    "second",
			OptionC:    "third",
			OptionD:    "fourth",
			Answer:     model.OptionLabels[i%len(model.OptionLabels)],
			Difficulty: difficulty,
			Subject:    subject,
		}
		s.questions[q.ID] = q
		ids = append(ids, q.ID)
	}
	return ids
}

// testCopy returns a detached copy with question rows hydrated from the
// bank, mimicking the repository preloads.
func (s *fakeStore) testCopy(t model.Test) model.Test {
	cp := t
	cp.Questions = make([]model.TestQuestion, len(t.Questions))
	copy(cp.Questions, t.Questions)
	sort.Slice(cp.Questions, func(i, j int) bool {
		return cp.Questions[i].Position < cp.Questions[j].Position
	})
	for i := range cp.Questions {
		cp.Questions[i].Question = s.questions[cp.Questions[i].QuestionID]
	}
	return cp
}

type fakeQuestionRepo struct{ store *fakeStore }

func (r *fakeQuestionRepo) BulkCreate(questions []model.Question) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, q := range questions {
		r.store.nextQID++
		q.ID = r.store.nextQID
		r.store.questions[q.ID] = q
	}
	return nil
}

func (r *fakeQuestionRepo) FindBySubjectAndDifficulty(subject string, difficulty int) ([]model.Question, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var pool []model.Question
	for _, q := range r.store.questions {
		if q.Subject == subject && q.Difficulty == difficulty {
			pool = append(pool, q)
		}
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })
	return pool, nil
}

type fakeTestRepo struct{ store *fakeStore }

func (r *fakeTestRepo) Create(test *model.Test) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextTestID++
	test.ID = r.store.nextTestID
	for i := range test.Questions {
		test.Questions[i].TestID = test.ID
	}
	r.store.tests[test.ID] = *test
	return nil
}

func (r *fakeTestRepo) FindByIDWithQuestions(id uint) (*model.Test, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tests[id]
	if !ok {
		return nil, nil
	}
	cp := r.store.testCopy(t)
	return &cp, nil
}

func (r *fakeTestRepo) FindByIDForOwner(id, ownerID uint) (*model.Test, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tests[id]
	if !ok || t.CreatedByID != ownerID {
		return nil, nil
	}
	cp := r.store.testCopy(t)
	return &cp, nil
}

func (r *fakeTestRepo) FindAllByCreator(ownerID uint) ([]model.Test, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var tests []model.Test
	for _, t := range r.store.tests {
		if t.CreatedByID == ownerID {
			tests = append(tests, r.store.testCopy(t))
		}
	}
	sort.Slice(tests, func(i, j int) bool {
		return tests[i].ScheduledDate.After(tests[j].ScheduledDate)
	})
	return tests, nil
}

func (r *fakeTestRepo) FindAll() ([]model.Test, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var tests []model.Test
	for _, t := range r.store.tests {
		tests = append(tests, r.store.testCopy(t))
	}
	sort.Slice(tests, func(i, j int) bool {
		return tests[i].ScheduledDate.Before(tests[j].ScheduledDate)
	})
	return tests, nil
}

func (r *fakeTestRepo) Save(test *model.Test) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.tests[test.ID]
	if !ok {
		return fmt.Errorf("test %d does not exist", test.ID)
	}
	questions := stored.Questions
	stored = *test
	stored.Questions = questions
	r.store.tests[test.ID] = stored
	return nil
}

func (r *fakeTestRepo) ReplaceQuestions(testID uint, questions []model.TestQuestion) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.tests[testID]
	if !ok {
		return fmt.Errorf("test %d does not exist", testID)
	}
	for i := range questions {
		questions[i].TestID = testID
	}
	stored.Questions = questions
	r.store.tests[testID] = stored
	return nil
}

func (r *fakeTestRepo) Delete(id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.tests, id)
	return nil
}

type fakeResultRepo struct{ store *fakeStore }

func (r *fakeResultRepo) Create(result *model.TestResult) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := resultKey(result.TestID, result.StudentID)
	if _, exists := r.store.results[key]; exists {
		return apperr.Conflict("Test already submitted")
	}
	r.store.nextResultID++
	result.ID = r.store.nextResultID
	r.store.results[key] = *result
	return nil
}

func (r *fakeResultRepo) FindByTestAndStudent(testID, studentID uint) (*model.TestResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	res, ok := r.store.results[resultKey(testID, studentID)]
	if !ok {
		return nil, nil
	}
	cp := res
	return &cp, nil
}

func (r *fakeResultRepo) FindAllByStudent(studentID uint) ([]model.TestResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var results []model.TestResult
	for _, res := range r.store.results {
		if res.StudentID == studentID {
			results = append(results, res)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}
