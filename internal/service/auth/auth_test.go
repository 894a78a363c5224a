package auth

import (
	"context"
	"testing"
	"time"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"
	"MentorLink/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byID   map[uuid.UUID]*models.User
	byName map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:   make(map[uuid.UUID]*models.User),
		byName: make(map[string]*models.User),
	}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	if _, ok := f.byName[user.Username]; ok {
		return nil, app_errors.ErrUserExists
	}
	user.ID = uuid.New()
	f.byID[user.ID] = &user
	f.byName[user.Username] = &user
	return &user, nil
}

func (f *fakeUserRepo) UserByName(_ context.Context, username string) (*models.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID uuid.UUID, hashedPassword string) error {
	u, ok := f.byID[userID]
	if !ok {
		return app_errors.ErrUserNotFound
	}
	u.Password = hashedPassword
	return nil
}

type fakeTokenRepo struct {
	tokens map[uuid.UUID]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[uuid.UUID]*models.RefreshToken)}
}

func (f *fakeTokenRepo) Create(_ context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error) {
	exp, _ := token.Claims.GetExpirationTime()
	record := &models.RefreshToken{UserID: userID, ExpiresAt: exp.Time}
	f.tokens[userID] = record
	return record, nil
}

func (f *fakeTokenRepo) ByPrimaryKey(_ context.Context, userID uuid.UUID, _ *jwt.Token) (*models.RefreshToken, error) {
	record, ok := f.tokens[userID]
	if !ok {
		return nil, app_errors.ErrTokenNotFound
	}
	return record, nil
}

func (f *fakeTokenRepo) DeleteUserTokens(_ context.Context, userID uuid.UUID) error {
	delete(f.tokens, userID)
	return nil
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeTokenRepo) {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	manager := NewJWTManager("test-secret", "mentorlink", time.Minute, time.Hour)
	return NewAuthService(logger.New("prod"), manager, users, tokens), users, tokens
}

func TestRegisterDefaultsToStudentRole(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.RegisterUser(context.Background(), models.User{
		Username: "gopher",
		Password: "hunter22",
		Email:    "g@example.com",
		FullName: "Glenda Gopher",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{models.StudentRole}, user.Roles)
	assert.NotEqual(t, "hunter22", user.Password, "password must be stored hashed")
}

func TestRegisterKeepsExplicitMentorRole(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.RegisterUser(context.Background(), models.User{
		Username: "mentor",
		Password: "hunter22",
		Roles:    []string{models.MentorRole},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{models.MentorRole}, user.Roles)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.RegisterUser(context.Background(), models.User{Username: "x", Password: "abc"})
	assert.ErrorIs(t, err, app_errors.ErrIncorrectPassword)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _, tokens := newAuthFixture()

	registered, err := svc.RegisterUser(context.Background(), models.User{
		Username: "gopher",
		Password: "hunter22",
	})
	require.NoError(t, err)

	access, refresh, err := svc.LoginUser(context.Background(), "gopher", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Contains(t, tokens.tokens, registered.ID)

	userID, roles, err := svc.AccessClaims(context.Background(), access)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, []string{models.StudentRole}, roles)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.RegisterUser(context.Background(), models.User{Username: "gopher", Password: "hunter22"})
	require.NoError(t, err)

	_, _, err = svc.LoginUser(context.Background(), "gopher", "wrong-pass")
	assert.ErrorIs(t, err, app_errors.ErrIncorrectPassword)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _, tokens := newAuthFixture()

	registered, err := svc.RegisterUser(context.Background(), models.User{Username: "gopher", Password: "hunter22"})
	require.NoError(t, err)
	_, refresh, err := svc.LoginUser(context.Background(), "gopher", "hunter22")
	require.NoError(t, err)

	pair, err := svc.RefreshTokens(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken.Raw)
	assert.Contains(t, tokens.tokens, registered.ID)
}

func TestUpdatePasswordInvalidatesSessions(t *testing.T) {
	svc, users, tokens := newAuthFixture()

	registered, err := svc.RegisterUser(context.Background(), models.User{Username: "gopher", Password: "hunter22"})
	require.NoError(t, err)
	_, _, err = svc.LoginUser(context.Background(), "gopher", "hunter22")
	require.NoError(t, err)

	err = svc.UpdatePassword(context.Background(), registered.ID, "hunter22", "new-password")
	require.NoError(t, err)

	assert.NotContains(t, tokens.tokens, registered.ID)
	assert.True(t, checkPasswordHash("new-password", users.byID[registered.ID].Password))

	err = svc.UpdatePassword(context.Background(), registered.ID, "hunter22", "whatever-else")
	assert.ErrorIs(t, err, app_errors.ErrIncorrectPassword)
}
