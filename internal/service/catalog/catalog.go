package catalog

import (
	"context"
	"sort"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"
	"MentorLink/pkg/logger"

	"github.com/google/uuid"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	CourseBySlug(ctx context.Context, slug string) (*models.Course, error)
	ListPublishedCourses(ctx context.Context, limit, offset int) ([]models.Course, error)
	CountPublishedCourses(ctx context.Context) (int, error)
}

type curriculumRepo interface {
	ModulesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Module, error)
	LessonsByModule(ctx context.Context, moduleID uuid.UUID) ([]models.Lesson, error)
}

type quizRepo interface {
	QuizByLesson(ctx context.Context, lessonID uuid.UUID) (*models.Quiz, error)
	QuizByModule(ctx context.Context, moduleID uuid.UUID) (*models.Quiz, error)
}

type userRepo interface {
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type thumbnailStorage interface {
	GetThumbnailURL(ctx context.Context, objectKey string) (string, error)
}

type courseSearch interface {
	Search(ctx context.Context, query string, size int) ([]uuid.UUID, error)
}

type CatalogService struct {
	log        logger.Log
	courses    courseRepo
	curriculum curriculumRepo
	quizzes    quizRepo
	users      userRepo
	thumbnails thumbnailStorage
	search     courseSearch
}

func NewCatalogService(
	l logger.Log,
	courses courseRepo,
	curriculum curriculumRepo,
	quizzes quizRepo,
	users userRepo,
	thumbnails thumbnailStorage,
	search courseSearch,
) *CatalogService {
	return &CatalogService{
		log:        l,
		courses:    courses,
		curriculum: curriculum,
		quizzes:    quizzes,
		users:      users,
		thumbnails: thumbnails,
		search:     search,
	}
}

const defaultPageSize = 20

type CoursePage struct {
	Courses []models.CoursePreview `json:"courses"`
	Total   int                    `json:"total"`
}

// ListPublishedCourses returns published course previews, newest first.
// Thumbnail or author lookups that fail degrade the preview instead of
// failing the whole list.
func (s *CatalogService) ListPublishedCourses(ctx context.Context, limit, offset int) (*CoursePage, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	courses, err := s.courses.ListPublishedCourses(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.courses.CountPublishedCourses(ctx)
	if err != nil {
		return nil, err
	}

	previews := make([]models.CoursePreview, 0, len(courses))
	for _, c := range courses {
		previews = append(previews, s.preview(ctx, c))
	}
	return &CoursePage{Courses: previews, Total: total}, nil
}

func (s *CatalogService) preview(ctx context.Context, c models.Course) models.CoursePreview {
	p := models.CoursePreview{
		ID:             c.ID,
		Title:          c.Title,
		Slug:           c.Slug,
		Description:    c.Description,
		Difficulty:     c.Difficulty,
		EstimatedHours: c.EstimatedHours,
		Category:       c.Category,
	}
	if c.ThumbnailObjectKey != "" {
		url, err := s.thumbnails.GetThumbnailURL(ctx, c.ThumbnailObjectKey)
		if err != nil {
			s.log.ErrorErr("failed to presign thumbnail", err, "course_id", c.ID)
		} else {
			p.ThumbnailURL = url
		}
	}
	author, err := s.users.UserByID(ctx, c.CreatedBy)
	if err != nil {
		s.log.ErrorErr("failed to load course author", err, "course_id", c.ID)
	} else {
		p.AuthorName = author.FullName
	}
	return p
}

// CourseBySlug returns the full course tree for the learning page. Only
// published courses are visible here; drafts 404 the same as missing slugs.
// Modules and their lessons come back ordered by order_index.
func (s *CatalogService) CourseBySlug(ctx context.Context, slug string) (*models.CourseDetail, error) {
	course, err := s.courses.CourseBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, app_errors.ErrCourseNotFound
	}

	modules, err := s.curriculum.ModulesByCourse(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(modules, func(i, j int) bool {
		return modules[i].OrderIndex < modules[j].OrderIndex
	})

	detail := &models.CourseDetail{Course: *course, Modules: make([]models.ModuleDetail, 0, len(modules))}
	for _, m := range modules {
		lessons, err := s.curriculum.LessonsByModule(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(lessons, func(i, j int) bool {
			return lessons[i].OrderIndex < lessons[j].OrderIndex
		})
		detail.Modules = append(detail.Modules, models.ModuleDetail{Module: m, Lessons: lessons})
	}
	return detail, nil
}

// SearchCourses resolves full-text hits back into published previews.
// IDs that no longer resolve (deleted or unpublished since indexing) are
// skipped.
func (s *CatalogService) SearchCourses(ctx context.Context, query string, size int) ([]models.CoursePreview, error) {
	ids, err := s.search.Search(ctx, query, size)
	if err != nil {
		return nil, err
	}
	previews := make([]models.CoursePreview, 0, len(ids))
	for _, id := range ids {
		course, err := s.courses.CourseByID(ctx, id)
		if err != nil {
			s.log.Warn("search hit does not resolve to a course", "course_id", id)
			continue
		}
		if !course.IsPublished {
			continue
		}
		previews = append(previews, s.preview(ctx, *course))
	}
	return previews, nil
}

func (s *CatalogService) QuizForLesson(ctx context.Context, lessonID uuid.UUID) (*models.Quiz, error) {
	return s.quizzes.QuizByLesson(ctx, lessonID)
}

func (s *CatalogService) QuizForModule(ctx context.Context, moduleID uuid.UUID) (*models.Quiz, error) {
	return s.quizzes.QuizByModule(ctx, moduleID)
}
