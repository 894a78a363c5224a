package identity

import (
	"context"
	"errors"
	"fmt"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"
	"MentorLink/pkg/logger"

	"github.com/google/uuid"
)

type userRepo interface {
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	AssignRole(ctx context.Context, userID uuid.UUID, role string) error
}

type profileRepo interface {
	StudentProfile(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error)
	CreateStudentProfile(ctx context.Context, p models.StudentProfile) (*models.StudentProfile, error)
	MentorProfile(ctx context.Context, userID uuid.UUID) (*models.MentorProfile, error)
	CreateMentorProfile(ctx context.Context, p models.MentorProfile) (*models.MentorProfile, error)
}

// Session is what the frontend needs to route the user after login: the
// resolved role plus the role-specific profile.
type Session struct {
	User    models.User    `json:"user"`
	Role    string         `json:"role"`
	Profile models.Profile `json:"profile"`
}

type IdentityService struct {
	log         logger.Log
	userRepo    userRepo
	profileRepo profileRepo
}

func NewIdentityService(l logger.Log, uRepo userRepo, pRepo profileRepo) *IdentityService {
	return &IdentityService{
		log:         l,
		userRepo:    uRepo,
		profileRepo: pRepo,
	}
}

// ResolveSession loads the user, repairs a missing role assignment, and
// returns the role-specific profile, creating it when absent. Accounts
// predating the profile tables resolve the same as fresh ones.
func (s *IdentityService) ResolveSession(ctx context.Context, userID uuid.UUID) (*Session, error) {
	user, err := s.userRepo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	role, err := s.ensureRole(ctx, user)
	if err != nil {
		return nil, err
	}

	profile, err := s.EnsureProfile(ctx, user, role)
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return &Session{User: *user, Role: role, Profile: *profile}, nil
}

// ensureRole picks the routing role. Admin wins over mentor, mentor over
// student; a user with no role rows at all gets the student role assigned.
func (s *IdentityService) ensureRole(ctx context.Context, user *models.User) (string, error) {
	switch {
	case user.HasRole(models.AdminRole):
		return models.AdminRole, nil
	case user.HasRole(models.MentorRole):
		return models.MentorRole, nil
	case user.HasRole(models.StudentRole):
		return models.StudentRole, nil
	}

	s.log.Warn("user has no role, assigning default", "user_id", user.ID)
	if err := s.userRepo.AssignRole(ctx, user.ID, models.StudentRole); err != nil {
		return "", fmt.Errorf("failed to assign default role: %w", err)
	}
	user.Roles = append(user.Roles, models.StudentRole)
	return models.StudentRole, nil
}

// EnsureProfile returns the role-specific profile, inserting a default one
// when the row is missing. Admins reuse the mentor shape.
func (s *IdentityService) EnsureProfile(ctx context.Context, user *models.User, role string) (*models.Profile, error) {
	if role == models.StudentRole {
		sp, err := s.profileRepo.StudentProfile(ctx, user.ID)
		if errors.Is(err, app_errors.ErrProfileUnavailable) {
			sp, err = s.profileRepo.CreateStudentProfile(ctx, models.StudentProfile{
				UserID:   user.ID,
				FullName: user.FullName,
			})
			if err != nil {
				s.log.ErrorErr("failed to create student profile", err, "user_id", user.ID)
				return nil, app_errors.ErrProfileUnavailable
			}
		} else if err != nil {
			return nil, err
		}
		return &models.Profile{Role: role, Student: sp}, nil
	}

	mp, err := s.profileRepo.MentorProfile(ctx, user.ID)
	if errors.Is(err, app_errors.ErrProfileUnavailable) {
		mp, err = s.profileRepo.CreateMentorProfile(ctx, models.MentorProfile{
			UserID:   user.ID,
			FullName: user.FullName,
		})
		if err != nil {
			s.log.ErrorErr("failed to create mentor profile", err, "user_id", user.ID)
			return nil, app_errors.ErrProfileUnavailable
		}
	} else if err != nil {
		return nil, err
	}
	return &models.Profile{Role: role, Mentor: mp}, nil
}

// RefreshProfile re-resolves the role-specific profile with the same repair
// path as a full session resolve, so a profile insert that failed earlier is
// retried here instead of sticking the user with ErrProfileUnavailable.
func (s *IdentityService) RefreshProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	user, err := s.userRepo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	role, err := s.ensureRole(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.EnsureProfile(ctx, user, role)
}
