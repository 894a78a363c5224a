package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"MentorLink/internal/models"
	"MentorLink/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnnouncementService struct {
	created []models.Announcement
}

func (f *fakeAnnouncementService) Create(_ context.Context, author uuid.UUID, a models.Announcement) (*models.Announcement, error) {
	a.ID = uuid.New()
	a.CreatedBy = author
	a.IsActive = true
	f.created = append(f.created, a)
	return &a, nil
}

func (f *fakeAnnouncementService) ListActive(context.Context) ([]models.Announcement, error) {
	return nil, nil
}

func (f *fakeAnnouncementService) Deactivate(context.Context, uuid.UUID) error {
	return nil
}

// announcementTestRouter mirrors the route wiring: announcement writes sit
// behind the mentor/admin role gate.
func announcementTestRouter(svc AnnouncementService, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAnnouncementHandler(logger.New("prod"), svc)
	inject := func(c *gin.Context) {
		c.Set(ClientCtx, user)
		c.Set(ClientRolesCtx, user.Roles)
	}
	r.POST("/announcements", inject, RequireRoles(models.MentorRole, models.AdminRole), h.Create)
	return r
}

func postAnnouncement(r *gin.Engine) *httptest.ResponseRecorder {
	body := bytes.NewBufferString(`{"title":"Office hours","content":"Friday 15:00 UTC","type":"event"}`)
	req := httptest.NewRequest(http.MethodPost, "/announcements", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMentorCanCreateAnnouncement(t *testing.T) {
	svc := &fakeAnnouncementService{}
	mentor := &models.User{ID: uuid.New(), Username: "mentor", Roles: []string{models.MentorRole}}

	w := postAnnouncement(announcementTestRouter(svc, mentor))

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.created, 1)
	assert.Equal(t, mentor.ID, svc.created[0].CreatedBy)
}

func TestAdminCanCreateAnnouncement(t *testing.T) {
	svc := &fakeAnnouncementService{}
	admin := &models.User{ID: uuid.New(), Username: "admin", Roles: []string{models.AdminRole}}

	w := postAnnouncement(announcementTestRouter(svc, admin))

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.created, 1)
}

func TestStudentCannotCreateAnnouncement(t *testing.T) {
	svc := &fakeAnnouncementService{}
	student := &models.User{ID: uuid.New(), Username: "student", Roles: []string{models.StudentRole}}

	w := postAnnouncement(announcementTestRouter(svc, student))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, svc.created)
}
