package authoring

import (
	"context"
	"io"
	"strings"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"
	"MentorLink/pkg/logger"

	"github.com/google/uuid"
)

type courseRepo interface {
	NewCourse(ctx context.Context, course *models.Course) (uuid.UUID, error)
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	UpdateThumbnail(ctx context.Context, courseID uuid.UUID, objectKey string) error
	DeleteCourse(ctx context.Context, id uuid.UUID) error
	ListCoursesByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Course, error)
}

type curriculumRepo interface {
	CreateModule(ctx context.Context, module models.Module) (*models.Module, error)
	ModuleByID(ctx context.Context, id uuid.UUID) (*models.Module, error)
	UpdateModule(ctx context.Context, module models.Module) error
	DeleteModule(ctx context.Context, id uuid.UUID) error
	ModulesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Module, error)
	CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error)
	LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, lesson models.Lesson) error
	DeleteLesson(ctx context.Context, id uuid.UUID) error
	LessonsByModule(ctx context.Context, moduleID uuid.UUID) ([]models.Lesson, error)
}

type searchIndex interface {
	Index(ctx context.Context, course models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type thumbnailStorage interface {
	UploadThumbnail(ctx context.Context, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	DeleteThumbnail(ctx context.Context, objectKey string) error
}

type AuthoringService struct {
	log        logger.Log
	courses    courseRepo
	curriculum curriculumRepo
	search     searchIndex
	thumbnails thumbnailStorage
}

func NewAuthoringService(
	l logger.Log,
	courses courseRepo,
	curriculum curriculumRepo,
	search searchIndex,
	thumbnails thumbnailStorage,
) *AuthoringService {
	return &AuthoringService{
		log:        l,
		courses:    courses,
		curriculum: curriculum,
		search:     search,
		thumbnails: thumbnails,
	}
}

// CreateCourse inserts an unpublished draft. The slug is derived from the
// title once, at creation, and never changes afterwards: enrolled students
// keep working URLs even if the title is edited.
func (s *AuthoringService) CreateCourse(ctx context.Context, author models.User, course models.Course) (*models.Course, error) {
	if !models.ValidDifficulty(course.Difficulty) {
		course.Difficulty = models.DifficultyBeginner
	}
	course.Slug = GenerateSlug(course.Title)
	course.IsPublished = false
	course.CreatedBy = author.ID

	id, err := s.courses.NewCourse(ctx, &course)
	if err != nil {
		return nil, err
	}
	return s.courses.CourseByID(ctx, id)
}

// UpdateCourse edits draft fields. The slug is immutable; whatever the
// caller sends for it is ignored.
func (s *AuthoringService) UpdateCourse(ctx context.Context, actor models.User, course models.Course) (*models.Course, error) {
	existing, err := s.ownedCourse(ctx, actor, course.ID)
	if err != nil {
		return nil, err
	}
	if !models.ValidDifficulty(course.Difficulty) {
		course.Difficulty = existing.Difficulty
	}
	course.Slug = existing.Slug
	course.CreatedBy = existing.CreatedBy
	if err := s.courses.UpdateCourse(ctx, &course); err != nil {
		return nil, err
	}

	updated, err := s.courses.CourseByID(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	if updated.IsPublished {
		if err := s.search.Index(ctx, *updated); err != nil {
			s.log.ErrorErr("failed to reindex course", err, "course_id", updated.ID)
		}
	}
	return updated, nil
}

// Publish makes the course visible in the catalog and indexes it for search.
func (s *AuthoringService) Publish(ctx context.Context, actor models.User, courseID uuid.UUID) error {
	course, err := s.ownedCourse(ctx, actor, courseID)
	if err != nil {
		return err
	}
	if err := s.courses.SetPublished(ctx, courseID, true); err != nil {
		return err
	}
	if err := s.search.Index(ctx, *course); err != nil {
		s.log.ErrorErr("failed to index published course", err, "course_id", courseID)
	}
	return nil
}

func (s *AuthoringService) Unpublish(ctx context.Context, actor models.User, courseID uuid.UUID) error {
	if _, err := s.ownedCourse(ctx, actor, courseID); err != nil {
		return err
	}
	if err := s.courses.SetPublished(ctx, courseID, false); err != nil {
		return err
	}
	if err := s.search.Delete(ctx, courseID); err != nil {
		s.log.ErrorErr("failed to deindex course", err, "course_id", courseID)
	}
	return nil
}

// DeleteCourse removes the course; modules, lessons, quizzes, enrollments
// and lesson progress go with it through the schema cascades.
func (s *AuthoringService) DeleteCourse(ctx context.Context, actor models.User, courseID uuid.UUID) error {
	course, err := s.ownedCourse(ctx, actor, courseID)
	if err != nil {
		return err
	}
	if err := s.courses.DeleteCourse(ctx, courseID); err != nil {
		return err
	}
	if err := s.search.Delete(ctx, courseID); err != nil {
		s.log.ErrorErr("failed to deindex deleted course", err, "course_id", courseID)
	}
	if course.ThumbnailObjectKey != "" {
		if err := s.thumbnails.DeleteThumbnail(ctx, course.ThumbnailObjectKey); err != nil {
			s.log.ErrorErr("failed to delete thumbnail", err, "course_id", courseID)
		}
	}
	return nil
}

func (s *AuthoringService) CoursesByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Course, error) {
	return s.courses.ListCoursesByAuthor(ctx, authorID)
}

const maxThumbnailSize = 5 << 20 // 5 MiB

// UploadThumbnail stores the image in object storage and records the key on
// the course row.
func (s *AuthoringService) UploadThumbnail(
	ctx context.Context,
	actor models.User,
	courseID uuid.UUID,
	filename string,
	reader io.Reader,
	size int64,
	contentType string,
) error {
	if _, err := s.ownedCourse(ctx, actor, courseID); err != nil {
		return err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return app_errors.ErrNotImage
	}
	if size <= 0 || size > maxThumbnailSize {
		return app_errors.ErrFileSize
	}
	objectKey, err := s.thumbnails.UploadThumbnail(ctx, courseID, filename, reader, size, contentType)
	if err != nil {
		return err
	}
	return s.courses.UpdateThumbnail(ctx, courseID, objectKey)
}

func (s *AuthoringService) CreateModule(ctx context.Context, actor models.User, module models.Module) (*models.Module, error) {
	if _, err := s.ownedCourse(ctx, actor, module.CourseID); err != nil {
		return nil, err
	}
	return s.curriculum.CreateModule(ctx, module)
}

func (s *AuthoringService) UpdateModule(ctx context.Context, actor models.User, module models.Module) error {
	existing, err := s.curriculum.ModuleByID(ctx, module.ID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(ctx, actor, existing.CourseID); err != nil {
		return err
	}
	module.CourseID = existing.CourseID
	return s.curriculum.UpdateModule(ctx, module)
}

// DeleteModule removes the module and, via cascade, its lessons.
func (s *AuthoringService) DeleteModule(ctx context.Context, actor models.User, moduleID uuid.UUID) error {
	module, err := s.curriculum.ModuleByID(ctx, moduleID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(ctx, actor, module.CourseID); err != nil {
		return err
	}
	return s.curriculum.DeleteModule(ctx, moduleID)
}

func (s *AuthoringService) CreateLesson(ctx context.Context, actor models.User, lesson models.Lesson) (*models.Lesson, error) {
	module, err := s.curriculum.ModuleByID(ctx, lesson.ModuleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(ctx, actor, module.CourseID); err != nil {
		return nil, err
	}
	if err := ValidateSnippets(lesson.CodeSnippets); err != nil {
		return nil, err
	}
	return s.curriculum.CreateLesson(ctx, lesson)
}

func (s *AuthoringService) UpdateLesson(ctx context.Context, actor models.User, lesson models.Lesson) error {
	existing, err := s.curriculum.LessonByID(ctx, lesson.ID)
	if err != nil {
		return err
	}
	module, err := s.curriculum.ModuleByID(ctx, existing.ModuleID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(ctx, actor, module.CourseID); err != nil {
		return err
	}
	if err := ValidateSnippets(lesson.CodeSnippets); err != nil {
		return err
	}
	lesson.ModuleID = existing.ModuleID
	return s.curriculum.UpdateLesson(ctx, lesson)
}

func (s *AuthoringService) DeleteLesson(ctx context.Context, actor models.User, lessonID uuid.UUID) error {
	lesson, err := s.curriculum.LessonByID(ctx, lessonID)
	if err != nil {
		return err
	}
	module, err := s.curriculum.ModuleByID(ctx, lesson.ModuleID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(ctx, actor, module.CourseID); err != nil {
		return err
	}
	return s.curriculum.DeleteLesson(ctx, lessonID)
}

// ValidateSnippets rejects malformed snippet lists before they reach the
// JSONB column. Each entry needs a language tag and non-empty code.
func ValidateSnippets(snippets []models.CodeSnippet) error {
	for _, sn := range snippets {
		if strings.TrimSpace(sn.Language) == "" || strings.TrimSpace(sn.Code) == "" {
			return app_errors.ErrInvalidSnippets
		}
	}
	return nil
}

// ownedCourse loads the course and checks the actor may edit it. Admins may
// edit anything; mentors only their own courses.
func (s *AuthoringService) ownedCourse(ctx context.Context, actor models.User, courseID uuid.UUID) (*models.Course, error) {
	course, err := s.courses.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.CreatedBy != actor.ID && !actor.HasRole(models.AdminRole) {
		return nil, app_errors.ErrNotCourseAuthor
	}
	return course, nil
}
