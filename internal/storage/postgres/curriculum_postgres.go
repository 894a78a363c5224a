package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CurriculumPostgres owns the module and lesson tables that hang off a
// course.
type CurriculumPostgres struct {
	db *pgxpool.Pool
}

func NewCurriculumPostgres(db *pgxpool.Pool) *CurriculumPostgres {
	return &CurriculumPostgres{db: db}
}

func (r *CurriculumPostgres) CreateModule(ctx context.Context, module models.Module) (*models.Module, error) {
	now := time.Now().UTC()
	if module.ID == uuid.Nil {
		module.ID = uuid.New()
	}
	module.CreatedAt = now
	module.UpdatedAt = now

	query := `
		INSERT INTO course_modules (id, course_id, title, description, order_index, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		module.ID, module.CourseID, module.Title, module.Description,
		module.OrderIndex, module.CreatedAt, module.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, app_errors.ErrDuplicateModuleOrder
		}
		return nil, fmt.Errorf("failed to insert module: %w", err)
	}
	return &module, nil
}

func (r *CurriculumPostgres) ModuleByID(ctx context.Context, id uuid.UUID) (*models.Module, error) {
	query := `
		SELECT id, course_id, title, description, order_index, created_at, updated_at
		FROM course_modules
		WHERE id = $1
	`
	var m models.Module
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.CourseID, &m.Title, &m.Description, &m.OrderIndex, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrModuleNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *CurriculumPostgres) UpdateModule(ctx context.Context, module models.Module) error {
	query := `
		UPDATE course_modules
		   SET title = $2,
		       description = $3,
		       order_index = $4,
		       updated_at = NOW()
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, module.ID, module.Title, module.Description, module.OrderIndex)
	if err != nil {
		if IsUniqueViolation(err) {
			return app_errors.ErrDuplicateModuleOrder
		}
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrModuleNotFound
	}
	return nil
}

// DeleteModule removes the module; its lessons go with it through
// ON DELETE CASCADE.
func (r *CurriculumPostgres) DeleteModule(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM course_modules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrModuleNotFound
	}
	return nil
}

func (r *CurriculumPostgres) ModulesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Module, error) {
	query := `
		SELECT id, course_id, title, description, order_index, created_at, updated_at
		FROM course_modules
		WHERE course_id = $1
		ORDER BY order_index
	`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		var m models.Module
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Title, &m.Description, &m.OrderIndex, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

func (r *CurriculumPostgres) CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	now := time.Now().UTC()
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}
	lesson.CreatedAt = now
	lesson.UpdatedAt = now

	snippets, err := marshalSnippets(lesson.CodeSnippets)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO course_lessons (
			id, module_id, title, video_url, duration_mins,
			content_markdown, code_snippets, order_index, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.db.Exec(ctx, query,
		lesson.ID, lesson.ModuleID, lesson.Title, lesson.VideoURL, lesson.DurationMins,
		lesson.ContentMarkdown, snippets, lesson.OrderIndex, lesson.CreatedAt, lesson.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, app_errors.ErrDuplicateLessonOrder
		}
		return nil, fmt.Errorf("failed to insert lesson: %w", err)
	}
	return &lesson, nil
}

func (r *CurriculumPostgres) LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	query := `
		SELECT id, module_id, title, video_url, duration_mins,
		       content_markdown, code_snippets, order_index, created_at, updated_at
		FROM course_lessons
		WHERE id = $1
	`
	lesson, err := scanLesson(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

func (r *CurriculumPostgres) UpdateLesson(ctx context.Context, lesson models.Lesson) error {
	snippets, err := marshalSnippets(lesson.CodeSnippets)
	if err != nil {
		return err
	}

	query := `
		UPDATE course_lessons
		   SET title = $2,
		       video_url = $3,
		       duration_mins = $4,
		       content_markdown = $5,
		       code_snippets = $6,
		       order_index = $7,
		       updated_at = NOW()
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		lesson.ID, lesson.Title, lesson.VideoURL, lesson.DurationMins,
		lesson.ContentMarkdown, snippets, lesson.OrderIndex,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return app_errors.ErrDuplicateLessonOrder
		}
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrLessonNotFound
	}
	return nil
}

func (r *CurriculumPostgres) DeleteLesson(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM course_lessons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrLessonNotFound
	}
	return nil
}

func (r *CurriculumPostgres) LessonsByModule(ctx context.Context, moduleID uuid.UUID) ([]models.Lesson, error) {
	query := `
		SELECT id, module_id, title, video_url, duration_mins,
		       content_markdown, code_snippets, order_index, created_at, updated_at
		FROM course_lessons
		WHERE module_id = $1
		ORDER BY order_index
	`
	rows, err := r.db.Query(ctx, query, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, *lesson)
	}
	return lessons, rows.Err()
}

// CountLessonsByCourse is the flat lesson count the progress recompute is
// defined over, ignoring module boundaries.
func (r *CurriculumPostgres) CountLessonsByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM course_lessons l
		JOIN course_modules m ON l.module_id = m.id
		WHERE m.course_id = $1
	`
	var total int
	if err := r.db.QueryRow(ctx, query, courseID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count course lessons: %w", err)
	}
	return total, nil
}

// LessonBelongsToCourse reports whether the lesson sits inside one of the
// course's modules.
func (r *CurriculumPostgres) LessonBelongsToCourse(ctx context.Context, lessonID, courseID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM course_lessons l
			JOIN course_modules m ON l.module_id = m.id
			WHERE l.id = $1 AND m.course_id = $2
		)
	`
	var ok bool
	if err := r.db.QueryRow(ctx, query, lessonID, courseID).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check lesson membership: %w", err)
	}
	return ok, nil
}

func scanLesson(row pgx.Row) (*models.Lesson, error) {
	var lesson models.Lesson
	var snippets []byte
	err := row.Scan(
		&lesson.ID, &lesson.ModuleID, &lesson.Title, &lesson.VideoURL, &lesson.DurationMins,
		&lesson.ContentMarkdown, &snippets, &lesson.OrderIndex, &lesson.CreatedAt, &lesson.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(snippets) > 0 {
		if err := json.Unmarshal(snippets, &lesson.CodeSnippets); err != nil {
			return nil, fmt.Errorf("failed to decode code snippets: %w", err)
		}
	}
	return &lesson, nil
}

func marshalSnippets(snippets []models.CodeSnippet) ([]byte, error) {
	if snippets == nil {
		return nil, nil
	}
	data, err := json.Marshal(snippets)
	if err != nil {
		return nil, fmt.Errorf("failed to encode code snippets: %w", err)
	}
	return data, nil
}
