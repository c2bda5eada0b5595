package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type LoginResponseDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// OptionsDTO mirrors the four labeled choices of a bank question.
type OptionsDTO struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
	D string `json:"d"`
}

// QuestionStudentDTO is a question as students may see it: no answer field
// exists on the type, so the key cannot leak through serialization.
type QuestionStudentDTO struct {
	ID         uint       `json:"id"`
	Text       string     `json:"question"`
	Options    OptionsDTO `json:"options"`
	Difficulty int        `json:"difficulty"`
}

// QuestionProfessorDTO is the trimmed view in a professor's test listing.
type QuestionProfessorDTO struct {
	ID         uint   `json:"id"`
	Text       string `json:"question"`
	Difficulty int    `json:"difficulty"`
}

// TestProfessorDTO is one row in the professor's own-test listing.
type TestProfessorDTO struct {
	ID             uint                   `json:"id"`
	Title          string                 `json:"title"`
	Subject        string                 `json:"subject"`
	Difficulty     int                    `json:"difficulty"`
	ScheduledDate  time.Time              `json:"scheduledDate"`
	ScheduledTime  string                 `json:"scheduledTime"`
	Duration       int                    `json:"duration"`
	TotalQuestions int                    `json:"totalQuestions"`
	Description    string                 `json:"description,omitempty"`
	Status         string                 `json:"status"`
	CreatedByName  string                 `json:"createdByName"`
	Questions      []QuestionProfessorDTO `json:"questions"`
	CreatedAt      time.Time              `json:"created_at"`
}

// ResultSummaryDTO is the prior-attempt summary attached to listings and
// duplicate-attempt conflicts.
type ResultSummaryDTO struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions,omitempty"`
	Percentage     int `json:"percentage"`
}

// AvailableTestDTO is one row of the student listing: live status, the
// student's prior attempt if any, and IST display strings.
type AvailableTestDTO struct {
	ID             uint              `json:"id"`
	Title          string            `json:"title"`
	Subject        string            `json:"subject"`
	Difficulty     int               `json:"difficulty"`
	ScheduledDate  time.Time         `json:"scheduledDate"`
	ScheduledTime  string            `json:"scheduledTime"`
	Duration       int               `json:"duration"`
	TotalQuestions int               `json:"totalQuestions"`
	Description    string            `json:"description,omitempty"`
	Status         string            `json:"status"`
	CreatedByName  string            `json:"createdByName"`
	HasAttempted   bool              `json:"hasAttempted"`
	Result         *ResultSummaryDTO `json:"result"`
	StartTimeIST   string            `json:"startTimeIST"`
	EndTimeIST     string            `json:"endTimeIST"`
	NowIST         string            `json:"nowIST"`
}

// AttemptTestDTO is a single test handed to a student for taking, with the
// answer key stripped.
type AttemptTestDTO struct {
	ID            uint                 `json:"id"`
	Title         string               `json:"title"`
	Subject       string               `json:"subject"`
	Difficulty    int                  `json:"difficulty"`
	Duration      int                  `json:"duration"`
	Description   string               `json:"description,omitempty"`
	CreatedByName string               `json:"createdByName"`
	Questions     []QuestionStudentDTO `json:"questions"`
}

// GradedAnswerDTO is the per-question outcome returned after submission.
type GradedAnswerDTO struct {
	QuestionID     uint   `json:"questionId"`
	SelectedAnswer string `json:"selectedAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

// SubmitResultDTO is the score summary returned on a successful submission.
type SubmitResultDTO struct {
	Score          int               `json:"score"`
	TotalQuestions int               `json:"totalQuestions"`
	Percentage     int               `json:"percentage"`
	Answers        []GradedAnswerDTO `json:"answers"`
}
