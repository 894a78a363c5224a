package announcement

import (
	"context"
	"sort"
	"testing"
	"time"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"
	"MentorLink/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnnouncementRepo struct {
	rows map[uuid.UUID]*models.Announcement
}

func (f *fakeAnnouncementRepo) CreateAnnouncement(_ context.Context, a models.Announcement) (*models.Announcement, error) {
	a.ID = uuid.New()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	f.rows[a.ID] = &a
	return &a, nil
}

func (f *fakeAnnouncementRepo) ListActiveAnnouncements(_ context.Context) ([]models.Announcement, error) {
	var out []models.Announcement
	for _, a := range f.rows {
		if a.IsActive {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeAnnouncementRepo) DeactivateAnnouncement(_ context.Context, id uuid.UUID) error {
	a, ok := f.rows[id]
	if !ok {
		return app_errors.ErrAnnouncementNotFound
	}
	a.IsActive = false
	return nil
}

func newAnnouncementFixture() (*AnnouncementService, *fakeAnnouncementRepo) {
	repo := &fakeAnnouncementRepo{rows: map[uuid.UUID]*models.Announcement{}}
	return NewAnnouncementService(logger.New("prod"), repo), repo
}

func TestCreateValidatesAndDefaultsType(t *testing.T) {
	svc, _ := newAnnouncementFixture()
	author := uuid.New()

	_, err := svc.Create(context.Background(), author, models.Announcement{Title: " ", Content: "x"})
	assert.ErrorIs(t, err, app_errors.ErrAnnouncementInvalid)

	a, err := svc.Create(context.Background(), author, models.Announcement{
		Title:   "Maintenance window",
		Content: "Saturday 02:00 UTC",
		Type:    "party",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AnnouncementGeneral, a.Type)
	assert.True(t, a.IsActive)
	assert.Equal(t, author, a.CreatedBy)
}

func TestListActiveNewestFirstAndSkipsDeactivated(t *testing.T) {
	svc, repo := newAnnouncementFixture()
	author := uuid.New()

	old, err := svc.Create(context.Background(), author, models.Announcement{Title: "Old", Content: "c", Type: models.AnnouncementGeneral})
	require.NoError(t, err)
	repo.rows[old.ID].CreatedAt = time.Now().Add(-time.Hour)

	gone, err := svc.Create(context.Background(), author, models.Announcement{Title: "Gone", Content: "c", Type: models.AnnouncementAlert})
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(context.Background(), gone.ID))

	fresh, err := svc.Create(context.Background(), author, models.Announcement{Title: "Fresh", Content: "c", Type: models.AnnouncementEvent})
	require.NoError(t, err)

	list, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, fresh.ID, list[0].ID)
	assert.Equal(t, old.ID, list[1].ID)
}

func TestDeactivateMissingAnnouncement(t *testing.T) {
	svc, _ := newAnnouncementFixture()
	err := svc.Deactivate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrAnnouncementNotFound)
}
