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

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

const courseColumns = `
	id, title, slug, description, difficulty, estimated_hours,
	thumbnail_object_key, category, is_published, created_by, created_at, updated_at
`

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID, &course.Title, &course.Slug, &course.Description,
		&course.Difficulty, &course.EstimatedHours, &course.ThumbnailObjectKey,
		&course.Category, &course.IsPublished, &course.CreatedBy,
		&course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (r *CoursePostgres) NewCourse(ctx context.Context, course *models.Course) (uuid.UUID, error) {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	query := `
		INSERT INTO courses (
			id, title, slug, description, difficulty, estimated_hours,
			thumbnail_object_key, category, is_published, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	var returnedID uuid.UUID
	err := r.db.QueryRow(
		ctx,
		query,
		course.ID,
		course.Title,
		course.Slug,
		course.Description,
		course.Difficulty,
		course.EstimatedHours,
		course.ThumbnailObjectKey,
		course.Category,
		course.IsPublished,
		course.CreatedBy,
		course.CreatedAt,
		course.UpdatedAt,
	).Scan(&returnedID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert course: %w", err)
	}
	return returnedID, nil
}

func (r *CoursePostgres) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

func (r *CoursePostgres) CourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE slug = $1`
	return scanCourse(r.db.QueryRow(ctx, query, slug))
}

// UpdateCourse writes the mutable fields. Slug is deliberately untouched so
// existing links stay stable.
func (r *CoursePostgres) UpdateCourse(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		   SET title = $2,
		       description = $3,
		       difficulty = $4,
		       estimated_hours = $5,
		       category = $6,
		       updated_at = NOW()
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		course.ID, course.Title, course.Description,
		course.Difficulty, course.EstimatedHours, course.Category,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

func (r *CoursePostgres) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	query := `
		UPDATE courses
		   SET is_published = $2,
		       updated_at = NOW()
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, id, published)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

func (r *CoursePostgres) UpdateThumbnail(ctx context.Context, courseID uuid.UUID, objectKey string) error {
	query := `
		UPDATE courses
		   SET thumbnail_object_key = $2,
		       updated_at = NOW()
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, courseID, objectKey)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

// DeleteCourse removes the course row; modules, lessons, enrollments and
// their progress rows go with it through ON DELETE CASCADE.
func (r *CoursePostgres) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

func (r *CoursePostgres) ListPublishedCourses(ctx context.Context, limit int, offset int) ([]models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE is_published = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query published courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Slug, &c.Description, &c.Difficulty,
			&c.EstimatedHours, &c.ThumbnailObjectKey, &c.Category,
			&c.IsPublished, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *CoursePostgres) CountPublishedCourses(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses WHERE is_published = TRUE`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count published courses: %w", err)
	}
	return total, nil
}

func (r *CoursePostgres) ListCoursesByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE created_by = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query author courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Slug, &c.Description, &c.Difficulty,
			&c.EstimatedHours, &c.ThumbnailObjectKey, &c.Category,
			&c.IsPublished, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
