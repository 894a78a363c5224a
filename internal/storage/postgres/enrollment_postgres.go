package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EnrollmentPostgres struct {
	db *pgxpool.Pool
}

func NewEnrollmentPostgres(db *pgxpool.Pool) *EnrollmentPostgres {
	return &EnrollmentPostgres{db: db}
}

func (r *EnrollmentPostgres) CreateEnrollment(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{
		ID:         uuid.New(),
		StudentID:  studentID,
		CourseID:   courseID,
		Status:     models.EnrollmentActive,
		EnrolledAt: time.Now().UTC(),
	}
	query := `
		INSERT INTO enrollments (id, student_id, course_id, status, progress_percent, enrolled_at)
		VALUES ($1, $2, $3, $4, 0, $5)
	`
	_, err := r.db.Exec(ctx, query,
		enrollment.ID, enrollment.StudentID, enrollment.CourseID,
		enrollment.Status, enrollment.EnrolledAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			// Raced against another enroll for the same pair; the winner's
			// row is the enrollment.
			return r.EnrollmentByStudentAndCourse(ctx, studentID, courseID)
		}
		return nil, fmt.Errorf("failed to insert enrollment: %w", err)
	}
	return enrollment, nil
}

const enrollmentColumns = `id, student_id, course_id, status, progress_percent, enrolled_at, completed_at`

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var e models.Enrollment
	err := row.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.ProgressPercent, &e.EnrolledAt, &e.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentPostgres) EnrollmentByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`
	return scanEnrollment(r.db.QueryRow(ctx, query, id))
}

func (r *EnrollmentPostgres) EnrollmentByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE student_id = $1 AND course_id = $2`
	return scanEnrollment(r.db.QueryRow(ctx, query, studentID, courseID))
}

func (r *EnrollmentPostgres) EnrollmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Enrollment, error) {
	query := `
		SELECT ` + enrollmentColumns + `
		FROM enrollments
		WHERE student_id = $1
		ORDER BY enrolled_at DESC
	`
	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.ProgressPercent, &e.EnrolledAt, &e.CompletedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// UpsertLessonProgress writes the completion flag for one (enrollment,
// lesson) pair. One row per pair, never a duplicate.
func (r *EnrollmentPostgres) UpsertLessonProgress(ctx context.Context, enrollmentID, lessonID uuid.UUID, completed bool) error {
	query := `
		INSERT INTO lesson_progress (enrollment_id, lesson_id, is_completed, last_watched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (enrollment_id, lesson_id)
		DO UPDATE SET is_completed = EXCLUDED.is_completed,
		              last_watched_at = EXCLUDED.last_watched_at
	`
	_, err := r.db.Exec(ctx, query, enrollmentID, lessonID, completed, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert lesson progress: %w", err)
	}
	return nil
}

// AddWatchTime bumps the watch counter without touching the completion flag.
func (r *EnrollmentPostgres) AddWatchTime(ctx context.Context, enrollmentID, lessonID uuid.UUID, seconds int) error {
	query := `
		INSERT INTO lesson_progress (enrollment_id, lesson_id, watch_time_seconds, last_watched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (enrollment_id, lesson_id)
		DO UPDATE SET watch_time_seconds = lesson_progress.watch_time_seconds + EXCLUDED.watch_time_seconds,
		              last_watched_at = EXCLUDED.last_watched_at
	`
	_, err := r.db.Exec(ctx, query, enrollmentID, lessonID, seconds, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record watch time: %w", err)
	}
	return nil
}

func (r *EnrollmentPostgres) LessonProgressByEnrollment(ctx context.Context, enrollmentID uuid.UUID) ([]models.LessonProgress, error) {
	query := `
		SELECT enrollment_id, lesson_id, is_completed, watch_time_seconds, last_watched_at
		FROM lesson_progress
		WHERE enrollment_id = $1
		ORDER BY last_watched_at DESC
	`
	rows, err := r.db.Query(ctx, query, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson progress: %w", err)
	}
	defer rows.Close()

	var progress []models.LessonProgress
	for rows.Next() {
		var p models.LessonProgress
		if err := rows.Scan(&p.EnrollmentID, &p.LessonID, &p.IsCompleted, &p.WatchTimeSeconds, &p.LastWatchedAt); err != nil {
			return nil, err
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}

func (r *EnrollmentPostgres) CompletedLessonCount(ctx context.Context, enrollmentID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM lesson_progress WHERE enrollment_id = $1 AND is_completed`
	var count int
	if err := r.db.QueryRow(ctx, query, enrollmentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}
	return count, nil
}

// UpdateProgress overwrites the cached projection. completedAt nil clears
// the column.
func (r *EnrollmentPostgres) UpdateProgress(ctx context.Context, enrollmentID uuid.UUID, percent int, status string, completedAt *time.Time) error {
	query := `
		UPDATE enrollments
		   SET progress_percent = $2,
		       status = $3,
		       completed_at = $4
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, enrollmentID, percent, status, completedAt)
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrEnrollmentNotFound
	}
	return nil
}

func (r *EnrollmentPostgres) UpdateStatus(ctx context.Context, enrollmentID uuid.UUID, status string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE enrollments SET status = $2 WHERE id = $1`, enrollmentID, status)
	if err != nil {
		return fmt.Errorf("failed to update enrollment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrEnrollmentNotFound
	}
	return nil
}
