package postgres

import (
	"context"
	"errors"
	"fmt"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfilePostgres struct {
	db *pgxpool.Pool
}

func NewProfilePostgres(db *pgxpool.Pool) *ProfilePostgres {
	return &ProfilePostgres{db: db}
}

func (r *ProfilePostgres) StudentProfile(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error) {
	query := `
		SELECT user_id, full_name, xp, readiness_score, profile_completion, created_at
		FROM student_profiles
		WHERE user_id = $1
	`
	var p models.StudentProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.XP, &p.ReadinessScore, &p.ProfileCompletion, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrProfileUnavailable
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfilePostgres) CreateStudentProfile(ctx context.Context, p models.StudentProfile) (*models.StudentProfile, error) {
	query := `
		INSERT INTO student_profiles (user_id, full_name, xp, readiness_score, profile_completion)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		p.UserID, p.FullName, p.XP, p.ReadinessScore, p.ProfileCompletion,
	).Scan(&p.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			// Lost a race against another resolve for the same user; the
			// existing row wins.
			return r.StudentProfile(ctx, p.UserID)
		}
		return nil, fmt.Errorf("failed to insert student profile: %w", err)
	}
	return &p, nil
}

func (r *ProfilePostgres) MentorProfile(ctx context.Context, userID uuid.UUID) (*models.MentorProfile, error) {
	query := `
		SELECT user_id, full_name, expertise, created_at
		FROM mentor_profiles
		WHERE user_id = $1
	`
	var p models.MentorProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.FullName, &p.Expertise, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrProfileUnavailable
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfilePostgres) CreateMentorProfile(ctx context.Context, p models.MentorProfile) (*models.MentorProfile, error) {
	query := `
		INSERT INTO mentor_profiles (user_id, full_name, expertise)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, p.UserID, p.FullName, p.Expertise).Scan(&p.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return r.MentorProfile(ctx, p.UserID)
		}
		return nil, fmt.Errorf("failed to insert mentor profile: %w", err)
	}
	return &p, nil
}
