package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
	DifficultyExpert       = "Expert"
)

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	}
	return false
}

type Course struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Slug               string    `json:"slug"`
	Description        string    `json:"description"`
	Difficulty         string    `json:"difficulty"`
	EstimatedHours     int       `json:"estimated_hours"`
	ThumbnailObjectKey string    `json:"thumbnail_object_key"`
	Category           string    `json:"category"`
	IsPublished        bool      `json:"is_published"`
	CreatedBy          uuid.UUID `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type CoursePreview struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	Difficulty     string    `json:"difficulty"`
	EstimatedHours int       `json:"estimated_hours"`
	Category       string    `json:"category"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	AuthorName     string    `json:"author_name"`
}

type ModuleDetail struct {
	Module  Module   `json:"module"`
	Lessons []Lesson `json:"lessons"`
}

type CourseDetail struct {
	Course  Course         `json:"course"`
	Modules []ModuleDetail `json:"modules"`
}
