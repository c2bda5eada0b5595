package service

import (
	"math"
	"strings"

	"github.com/devly/devly/internal/model"
)

// NormalizeOption maps a submitted option to its stored form: lowercase
// a/b/c/d, or the "na" sentinel for anything else (blank, garbage, or a
// label outside the four choices).
func NormalizeOption(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if model.ValidOptionLabel(v) {
		return v
	}
	return model.NotAnswered
}

// GradeAnswer compares a normalized submission against the stored key.
// Unanswered never counts as correct, even if the key were somehow blank.
func GradeAnswer(submitted, correct string) bool {
	s := NormalizeOption(submitted)
	if s == model.NotAnswered {
		return false
	}
	return s == strings.ToLower(strings.TrimSpace(correct))
}

// Percentage computes round-half-up integer percent: 12.5% rounds to 13.
// math.Round is half-away-from-zero, which coincides with half-up for the
// non-negative ratios produced here.
func Percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
