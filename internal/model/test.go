package model

import (
	"time"

	"github.com/devly/devly/internal/schedule"
)

// Test is a scheduled assessment: a fixed, pre-sampled exam paper drawn
// from the question bank, owned by the professor who created it.
type Test struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Title          string         `json:"title" gorm:"not null"`
	Subject        string         `json:"subject" gorm:"type:varchar(8);not null"`
	Difficulty     int            `json:"difficulty" gorm:"not null"`
	ScheduledDate  time.Time      `json:"scheduled_date" gorm:"not null"`
	ScheduledTime  string         `json:"scheduled_time" gorm:"type:varchar(5);not null"` // HH:MM, IST wall clock
	Duration       int            `json:"duration" gorm:"not null;default:60"`            // minutes
	TotalQuestions int            `json:"total_questions" gorm:"not null;default:10"`
	Questions      []TestQuestion `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
	CreatedByID    uint           `json:"created_by_id" gorm:"not null;index"`
	CreatedBy      User           `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Description    string         `json:"description,omitempty" gorm:"type:text"`
	// Display cache only. Refreshed on save and on every listing; all
	// decisions recompute from the clock via Window().
	Status    string    `json:"status" gorm:"type:varchar(16);default:'Pending'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TestQuestion pins one sampled bank question to a test, preserving the
// sampled order. The set is fixed at creation/resample time.
type TestQuestion struct {
	ID         uint     `gorm:"primarykey" json:"id"`
	TestID     uint     `json:"test_id" gorm:"not null;index"`
	QuestionID uint     `json:"question_id" gorm:"not null;index"`
	Question   Question `json:"question" gorm:"foreignKey:QuestionID"`
	Position   int      `json:"position" gorm:"not null"`
}

// Window resolves the scheduled start instant. Errors only on a malformed
// stored time string, which validation keeps out of the database.
func (t *Test) Window() (time.Time, error) {
	return schedule.StartAt(t.ScheduledDate, t.ScheduledTime)
}

// DeriveStatus computes the live status at now.
func (t *Test) DeriveStatus(now time.Time) schedule.Status {
	start, err := t.Window()
	if err != nil {
		return schedule.StatusPending
	}
	return schedule.DeriveStatus(start, t.Duration, now)
}

// RefreshStatus updates the cached display status.
func (t *Test) RefreshStatus(now time.Time) {
	t.Status = string(t.DeriveStatus(now))
}
