package models

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID            uuid.UUID  `json:"id"`
	LessonID      *uuid.UUID `json:"lesson_id,omitempty"`
	ModuleID      *uuid.UUID `json:"module_id,omitempty"`
	Title         string     `json:"title"`
	PassingScore  int        `json:"passing_score"`
	TimeLimitMins int        `json:"time_limit_mins"`
	CreatedAt     time.Time  `json:"created_at"`
}
