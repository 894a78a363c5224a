package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StudentRole = "student"
	MentorRole  = "mentor"
	AdminRole   = "admin"
)

type User struct {
	ID       uuid.UUID
	Username string
	Password string
	Email    string
	FullName string
	Roles    []string
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Profile is the role-specific record attached to a user. Exactly one of
// Student or Mentor is set, matching Role.
type Profile struct {
	Role    string          `json:"role"`
	Student *StudentProfile `json:"student,omitempty"`
	Mentor  *MentorProfile  `json:"mentor,omitempty"`
}

type StudentProfile struct {
	UserID            uuid.UUID `json:"user_id"`
	FullName          string    `json:"full_name"`
	XP                int       `json:"xp"`
	ReadinessScore    int       `json:"readiness_score"`
	ProfileCompletion int       `json:"profile_completion"`
	CreatedAt         time.Time `json:"created_at"`
}

type MentorProfile struct {
	UserID    uuid.UUID `json:"user_id"`
	FullName  string    `json:"full_name"`
	Expertise string    `json:"expertise"`
	CreatedAt time.Time `json:"created_at"`
}
