package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AnnouncementGeneral = "general"
	AnnouncementAlert   = "alert"
	AnnouncementEvent   = "event"
)

func ValidAnnouncementType(t string) bool {
	switch t {
	case AnnouncementGeneral, AnnouncementAlert, AnnouncementEvent:
		return true
	}
	return false
}

type Announcement struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	CreatedBy uuid.UUID `json:"created_by"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
