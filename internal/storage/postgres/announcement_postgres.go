package postgres

import (
	"context"
	"fmt"
	"time"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AnnouncementPostgres struct {
	db *pgxpool.Pool
}

func NewAnnouncementPostgres(db *pgxpool.Pool) *AnnouncementPostgres {
	return &AnnouncementPostgres{db: db}
}

func (r *AnnouncementPostgres) CreateAnnouncement(ctx context.Context, a models.Announcement) (*models.Announcement, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now().UTC()
	a.IsActive = true

	query := `
		INSERT INTO announcements (id, title, content, type, created_by, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, a.ID, a.Title, a.Content, a.Type, a.CreatedBy, a.IsActive, a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert announcement: %w", err)
	}
	return &a, nil
}

func (r *AnnouncementPostgres) ListActiveAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	query := `
		SELECT id, title, content, type, created_by, is_active, created_at
		FROM announcements
		WHERE is_active
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query announcements: %w", err)
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Type, &a.CreatedBy, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

func (r *AnnouncementPostgres) DeactivateAnnouncement(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE announcements SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrAnnouncementNotFound
	}
	return nil
}
