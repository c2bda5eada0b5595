package service

import (
	"math/rand"

	"github.com/devly/devly/internal/model"
)

// SampleQuestions picks n questions uniformly without replacement via a
// Fisher-Yates shuffle. Callers must have verified len(pool) >= n.
func SampleQuestions(pool []model.Question, n int) []model.Question {
	shuffled := make([]model.Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
