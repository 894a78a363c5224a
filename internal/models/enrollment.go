package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

type Enrollment struct {
	ID              uuid.UUID  `json:"id"`
	StudentID       uuid.UUID  `json:"student_id"`
	CourseID        uuid.UUID  `json:"course_id"`
	Status          string     `json:"status"`
	ProgressPercent int        `json:"progress_percent"`
	EnrolledAt      time.Time  `json:"enrolled_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

type LessonProgress struct {
	EnrollmentID     uuid.UUID `json:"enrollment_id"`
	LessonID         uuid.UUID `json:"lesson_id"`
	IsCompleted      bool      `json:"is_completed"`
	WatchTimeSeconds int       `json:"watch_time_seconds"`
	LastWatchedAt    time.Time `json:"last_watched_at"`
}
