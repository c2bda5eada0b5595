package model

import (
	"time"
)

// Roles carried in the bearer token.
const (
	RoleStudent   = "student"
	RoleProfessor = "professor"
)

// User is the minimal principal the test subsystem needs: enough to own
// tests, submit results, and log in. Account management beyond that lives
// outside this service.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         string    `json:"role" gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
