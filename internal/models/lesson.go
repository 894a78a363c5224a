package models

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID              uuid.UUID     `json:"id"`
	ModuleID        uuid.UUID     `json:"module_id"`
	Title           string        `json:"title"`
	VideoURL        string        `json:"video_url"`
	DurationMins    int           `json:"duration_mins"`
	ContentMarkdown string        `json:"content_markdown"`
	CodeSnippets    []CodeSnippet `json:"code_snippets,omitempty"`
	OrderIndex      int           `json:"order_index"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type CodeSnippet struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}
