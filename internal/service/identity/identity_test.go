package identity

import (
	"context"
	"errors"
	"testing"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"
	"MentorLink/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserRepo) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	copied := *u
	copied.Roles = append([]string(nil), u.Roles...)
	return &copied, nil
}

func (f *fakeUserRepo) AssignRole(_ context.Context, userID uuid.UUID, role string) error {
	u, ok := f.users[userID]
	if !ok {
		return app_errors.ErrUserNotFound
	}
	u.Roles = append(u.Roles, role)
	return nil
}

type fakeProfileRepo struct {
	students      map[uuid.UUID]*models.StudentProfile
	mentors       map[uuid.UUID]*models.MentorProfile
	createErr     error
	studentWrites int
	mentorWrites  int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		students: make(map[uuid.UUID]*models.StudentProfile),
		mentors:  make(map[uuid.UUID]*models.MentorProfile),
	}
}

func (f *fakeProfileRepo) StudentProfile(_ context.Context, userID uuid.UUID) (*models.StudentProfile, error) {
	p, ok := f.students[userID]
	if !ok {
		return nil, app_errors.ErrProfileUnavailable
	}
	return p, nil
}

func (f *fakeProfileRepo) CreateStudentProfile(_ context.Context, p models.StudentProfile) (*models.StudentProfile, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.studentWrites++
	f.students[p.UserID] = &p
	return &p, nil
}

func (f *fakeProfileRepo) MentorProfile(_ context.Context, userID uuid.UUID) (*models.MentorProfile, error) {
	p, ok := f.mentors[userID]
	if !ok {
		return nil, app_errors.ErrProfileUnavailable
	}
	return p, nil
}

func (f *fakeProfileRepo) CreateMentorProfile(_ context.Context, p models.MentorProfile) (*models.MentorProfile, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mentorWrites++
	f.mentors[p.UserID] = &p
	return &p, nil
}

func newIdentityFixture(roles ...string) (*IdentityService, *fakeUserRepo, *fakeProfileRepo, *models.User) {
	user := &models.User{
		ID:       uuid.New(),
		Username: "gopher",
		FullName: "Glenda Gopher",
		Roles:    roles,
	}
	users := &fakeUserRepo{users: map[uuid.UUID]*models.User{user.ID: user}}
	profiles := newFakeProfileRepo()
	svc := NewIdentityService(logger.New("prod"), users, profiles)
	return svc, users, profiles, user
}

func TestResolveSessionCreatesMissingStudentProfile(t *testing.T) {
	svc, _, profiles, user := newIdentityFixture(models.StudentRole)

	session, err := svc.ResolveSession(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StudentRole, session.Role)
	require.NotNil(t, session.Profile.Student)
	assert.Nil(t, session.Profile.Mentor)
	assert.Equal(t, "Glenda Gopher", session.Profile.Student.FullName)
	assert.Equal(t, 0, session.Profile.Student.XP)
	assert.Equal(t, 1, profiles.studentWrites)
}

func TestResolveSessionIsIdempotent(t *testing.T) {
	svc, _, profiles, user := newIdentityFixture(models.StudentRole)

	_, err := svc.ResolveSession(context.Background(), user.ID)
	require.NoError(t, err)
	_, err = svc.ResolveSession(context.Background(), user.ID)
	require.NoError(t, err)

	// The repair insert happens once; later resolves read the existing row.
	assert.Equal(t, 1, profiles.studentWrites)
}

func TestResolveSessionAssignsDefaultRole(t *testing.T) {
	svc, users, _, user := newIdentityFixture()

	session, err := svc.ResolveSession(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StudentRole, session.Role)
	assert.Contains(t, users.users[user.ID].Roles, models.StudentRole)
}

func TestResolveSessionPrefersAdminOverOtherRoles(t *testing.T) {
	svc, _, _, user := newIdentityFixture(models.StudentRole, models.MentorRole, models.AdminRole)

	session, err := svc.ResolveSession(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AdminRole, session.Role)
	assert.NotNil(t, session.Profile.Mentor)
}

func TestResolveSessionMentorGetsMentorProfile(t *testing.T) {
	svc, _, profiles, user := newIdentityFixture(models.MentorRole)

	session, err := svc.ResolveSession(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, models.MentorRole, session.Role)
	require.NotNil(t, session.Profile.Mentor)
	assert.Equal(t, 1, profiles.mentorWrites)
}

func TestResolveSessionSurfacesProfileFailure(t *testing.T) {
	svc, _, profiles, user := newIdentityFixture(models.StudentRole)
	profiles.createErr = errors.New("connection refused")

	_, err := svc.ResolveSession(context.Background(), user.ID)
	assert.ErrorIs(t, err, app_errors.ErrProfileUnavailable)
}

func TestRefreshProfileRetriesFailedCreate(t *testing.T) {
	svc, _, profiles, user := newIdentityFixture(models.StudentRole)
	profiles.createErr = errors.New("connection refused")

	_, err := svc.ResolveSession(context.Background(), user.ID)
	require.ErrorIs(t, err, app_errors.ErrProfileUnavailable)

	// Once the database is reachable again, the refresh endpoint heals the
	// profile itself instead of waiting for another full resolve.
	profiles.createErr = nil
	profile, err := svc.RefreshProfile(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.Student)
	assert.Equal(t, models.StudentRole, profile.Role)
	assert.Equal(t, 1, profiles.studentWrites)
}

func TestResolveSessionStripsPassword(t *testing.T) {
	svc, users, _, user := newIdentityFixture(models.StudentRole)
	users.users[user.ID].Password = "$2a$10$hash"

	session, err := svc.ResolveSession(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, session.User.Password)
}
