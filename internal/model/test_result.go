package model

import (
	"time"
)

// TestResult is the single persisted outcome of one student's attempt at
// one test. The composite unique index is the authoritative duplicate
// guard; the application pre-check exists only to give a friendly error
// on the common path.
type TestResult struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	TestID         uint           `json:"test_id" gorm:"not null;uniqueIndex:idx_test_student"`
	Test           Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	StudentID      uint           `json:"student_id" gorm:"not null;uniqueIndex:idx_test_student"`
	Student        User           `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Answers        []ResultAnswer `json:"answers,omitempty" gorm:"foreignKey:TestResultID;constraint:OnDelete:CASCADE"`
	Score          int            `json:"score" gorm:"not null;default:0"`
	TotalQuestions int            `json:"total_questions" gorm:"not null"`
	Percentage     int            `json:"percentage" gorm:"not null"`
	StartedAt      time.Time      `json:"started_at" gorm:"not null"`
	SubmittedAt    time.Time      `json:"submitted_at" gorm:"not null"`
	TimeTaken      int            `json:"time_taken" gorm:"not null"` // minutes
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ResultAnswer records one graded answer: what the student picked (or the
// "na" sentinel), the correct label, and whether they matched.
type ResultAnswer struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	TestResultID  uint   `json:"test_result_id" gorm:"not null;index"`
	QuestionID    uint   `json:"question_id" gorm:"not null"`
	Selected      string `json:"selected_answer" gorm:"type:varchar(2);not null;default:'na'"` // a|b|c|d|na
	CorrectAnswer string `json:"correct_answer" gorm:"type:varchar(1);not null"`
	IsCorrect     bool   `json:"is_correct" gorm:"not null"`
}
