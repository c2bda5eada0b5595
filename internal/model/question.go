package model

import (
	"time"
)

// Subject codes for the question bank. Fixed set, mirrored in the request
// DTO validation.
const (
	SubjectC    = "c"
	SubjectCpp  = "cpp"
	SubjectJava = "java"
	SubjectPy   = "py"
)

// Option labels. Answer must always be one of these four.
var OptionLabels = []string{"a", "b", "c", "d"}

// NotAnswered is the sentinel stored when a student leaves a question blank
// or submits something outside the four labels.
const NotAnswered = "na"

// Question is one bank entry. Rows are created by bulk import and are
// immutable afterwards; tests reference them, never copy them.
type Question struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Text       string    `json:"question" gorm:"type:text;not null"`
	OptionA    string    `json:"option_a" gorm:"not null"`
	OptionB    string    `json:"option_b" gorm:"not null"`
	OptionC    string    `json:"option_c" gorm:"not null"`
	OptionD    string    `json:"option_d" gorm:"not null"`
	Answer     string    `json:"-" gorm:"type:varchar(1);not null"` // a|b|c|d, never serialized to students
	Difficulty int       `json:"difficulty" gorm:"not null;index:idx_subject_difficulty"` // 1..3
	Subject    string    `json:"subject" gorm:"type:varchar(8);not null;index:idx_subject_difficulty,priority:1"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ValidSubject reports whether s is one of the enumerated subject codes.
func ValidSubject(s string) bool {
	switch s {
	case SubjectC, SubjectCpp, SubjectJava, SubjectPy:
		return true
	}
	return false
}

// ValidOptionLabel reports whether s is one of a/b/c/d.
func ValidOptionLabel(s string) bool {
	switch s {
	case "a", "b", "c", "d":
		return true
	}
	return false
}
