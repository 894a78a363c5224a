package announcement

import (
	"context"
	"strings"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"
	"MentorLink/pkg/logger"

	"github.com/google/uuid"
)

type announcementRepo interface {
	CreateAnnouncement(ctx context.Context, a models.Announcement) (*models.Announcement, error)
	ListActiveAnnouncements(ctx context.Context) ([]models.Announcement, error)
	DeactivateAnnouncement(ctx context.Context, id uuid.UUID) error
}

type AnnouncementService struct {
	log  logger.Log
	repo announcementRepo
}

func NewAnnouncementService(l logger.Log, repo announcementRepo) *AnnouncementService {
	return &AnnouncementService{log: l, repo: repo}
}

func (s *AnnouncementService) Create(ctx context.Context, author uuid.UUID, a models.Announcement) (*models.Announcement, error) {
	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Content) == "" {
		return nil, app_errors.ErrAnnouncementInvalid
	}
	if !models.ValidAnnouncementType(a.Type) {
		a.Type = models.AnnouncementGeneral
	}
	a.CreatedBy = author
	a.IsActive = true
	return s.repo.CreateAnnouncement(ctx, a)
}

// ListActive returns active announcements, newest first.
func (s *AnnouncementService) ListActive(ctx context.Context) ([]models.Announcement, error) {
	return s.repo.ListActiveAnnouncements(ctx)
}

func (s *AnnouncementService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeactivateAnnouncement(ctx, id)
}
