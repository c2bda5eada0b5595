package dto

// LoginDTO authenticates a user and yields a bearer token.
type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TestCreateDTO is the professor's request to schedule a new test.
// ScheduledDate/ScheduledTime are IST wall-clock values.
type TestCreateDTO struct {
	Title          string `json:"title" binding:"required"`
	Subject        string `json:"subject" binding:"required,oneof=c cpp java py"`
	Difficulty     int    `json:"difficulty" binding:"required,min=1,max=3"`
	ScheduledDate  string `json:"scheduledDate" binding:"required,datetime=2006-01-02"`
	ScheduledTime  string `json:"scheduledTime" binding:"required,datetime=15:04"`
	Duration       int    `json:"duration" binding:"omitempty,min=1"`
	TotalQuestions int    `json:"totalQuestions" binding:"omitempty,min=1"`
	Description    string `json:"description"`
}

// TestUpdateDTO patches a Pending test. Nil fields are left untouched;
// changing subject, difficulty or totalQuestions triggers a resample.
type TestUpdateDTO struct {
	Title          *string `json:"title" binding:"omitempty,min=1"`
	Subject        *string `json:"subject" binding:"omitempty,oneof=c cpp java py"`
	Difficulty     *int    `json:"difficulty" binding:"omitempty,min=1,max=3"`
	ScheduledDate  *string `json:"scheduledDate" binding:"omitempty,datetime=2006-01-02"`
	ScheduledTime  *string `json:"scheduledTime" binding:"omitempty,datetime=15:04"`
	Duration       *int    `json:"duration" binding:"omitempty,min=1"`
	TotalQuestions *int    `json:"totalQuestions" binding:"omitempty,min=1"`
	Description    *string `json:"description"`
}

// QuestionInputDTO is one bank entry in a bulk import.
type QuestionInputDTO struct {
	Text       string `json:"question" binding:"required"`
	OptionA    string `json:"option_a" binding:"required"`
	OptionB    string `json:"option_b" binding:"required"`
	OptionC    string `json:"option_c" binding:"required"`
	OptionD    string `json:"option_d" binding:"required"`
	Answer     string `json:"answer" binding:"required,oneof=a b c d"`
	Difficulty int    `json:"difficulty" binding:"required,min=1,max=3"`
	Subject    string `json:"subject" binding:"required,oneof=c cpp java py"`
}

// QuestionImportDTO seeds the question bank.
type QuestionImportDTO struct {
	Questions []QuestionInputDTO `json:"questions" binding:"required,min=1,dive"`
}

// SubmittedAnswerDTO is the student's pick for one question. SelectedAnswer
// is deliberately unconstrained here: anything outside a-d is graded as
// not answered rather than rejected.
type SubmittedAnswerDTO struct {
	QuestionID     uint   `json:"questionId" binding:"required"`
	SelectedAnswer string `json:"selectedAnswer"`
}

// TestSubmitDTO is the full submission for a test attempt. TimeTaken is in
// minutes as reported by the client.
type TestSubmitDTO struct {
	Answers   []SubmittedAnswerDTO `json:"answers" binding:"required,dive"`
	TimeTaken int                  `json:"timeTaken" binding:"omitempty,min=0"`
}
