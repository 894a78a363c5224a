package postgres

import (
	"context"
	"errors"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuizPostgres struct {
	db *pgxpool.Pool
}

func NewQuizPostgres(db *pgxpool.Pool) *QuizPostgres {
	return &QuizPostgres{db: db}
}

const quizColumns = `id, lesson_id, module_id, title, passing_score, time_limit_mins, created_at`

func scanQuiz(row pgx.Row) (*models.Quiz, error) {
	var q models.Quiz
	err := row.Scan(&q.ID, &q.LessonID, &q.ModuleID, &q.Title, &q.PassingScore, &q.TimeLimitMins, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrQuizNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *QuizPostgres) QuizByLesson(ctx context.Context, lessonID uuid.UUID) (*models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE lesson_id = $1`
	return scanQuiz(r.db.QueryRow(ctx, query, lessonID))
}

func (r *QuizPostgres) QuizByModule(ctx context.Context, moduleID uuid.UUID) (*models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE module_id = $1`
	return scanQuiz(r.db.QueryRow(ctx, query, moduleID))
}
