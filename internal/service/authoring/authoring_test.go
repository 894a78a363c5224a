package authoring

import (
	"context"
	"io"
	"regexp"
	"strings"
	"testing"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"
	"MentorLink/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourseRepo struct {
	courses map[uuid.UUID]*models.Course
}

func (f *fakeCourseRepo) NewCourse(_ context.Context, course *models.Course) (uuid.UUID, error) {
	course.ID = uuid.New()
	stored := *course
	f.courses[course.ID] = &stored
	return course.ID, nil
}

func (f *fakeCourseRepo) CourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCourseRepo) UpdateCourse(_ context.Context, course *models.Course) error {
	c, ok := f.courses[course.ID]
	if !ok {
		return app_errors.ErrCourseNotFound
	}
	c.Title = course.Title
	c.Description = course.Description
	c.Difficulty = course.Difficulty
	c.EstimatedHours = course.EstimatedHours
	c.Category = course.Category
	return nil
}

func (f *fakeCourseRepo) SetPublished(_ context.Context, id uuid.UUID, published bool) error {
	c, ok := f.courses[id]
	if !ok {
		return app_errors.ErrCourseNotFound
	}
	c.IsPublished = published
	return nil
}

func (f *fakeCourseRepo) UpdateThumbnail(_ context.Context, courseID uuid.UUID, objectKey string) error {
	c, ok := f.courses[courseID]
	if !ok {
		return app_errors.ErrCourseNotFound
	}
	c.ThumbnailObjectKey = objectKey
	return nil
}

func (f *fakeCourseRepo) DeleteCourse(_ context.Context, id uuid.UUID) error {
	if _, ok := f.courses[id]; !ok {
		return app_errors.ErrCourseNotFound
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseRepo) ListCoursesByAuthor(_ context.Context, authorID uuid.UUID) ([]models.Course, error) {
	var out []models.Course
	for _, c := range f.courses {
		if c.CreatedBy == authorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeCurriculumRepo struct {
	modules map[uuid.UUID]*models.Module
	lessons map[uuid.UUID]*models.Lesson
}

func (f *fakeCurriculumRepo) CreateModule(_ context.Context, module models.Module) (*models.Module, error) {
	module.ID = uuid.New()
	f.modules[module.ID] = &module
	return &module, nil
}

func (f *fakeCurriculumRepo) ModuleByID(_ context.Context, id uuid.UUID) (*models.Module, error) {
	m, ok := f.modules[id]
	if !ok {
		return nil, app_errors.ErrModuleNotFound
	}
	return m, nil
}

func (f *fakeCurriculumRepo) UpdateModule(_ context.Context, module models.Module) error {
	if _, ok := f.modules[module.ID]; !ok {
		return app_errors.ErrModuleNotFound
	}
	module.CourseID = f.modules[module.ID].CourseID
	f.modules[module.ID] = &module
	return nil
}

func (f *fakeCurriculumRepo) DeleteModule(_ context.Context, id uuid.UUID) error {
	if _, ok := f.modules[id]; !ok {
		return app_errors.ErrModuleNotFound
	}
	delete(f.modules, id)
	for lessonID, l := range f.lessons {
		if l.ModuleID == id {
			delete(f.lessons, lessonID)
		}
	}
	return nil
}

func (f *fakeCurriculumRepo) ModulesByCourse(_ context.Context, courseID uuid.UUID) ([]models.Module, error) {
	var out []models.Module
	for _, m := range f.modules {
		if m.CourseID == courseID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeCurriculumRepo) CreateLesson(_ context.Context, lesson models.Lesson) (*models.Lesson, error) {
	lesson.ID = uuid.New()
	f.lessons[lesson.ID] = &lesson
	return &lesson, nil
}

func (f *fakeCurriculumRepo) LessonByID(_ context.Context, id uuid.UUID) (*models.Lesson, error) {
	l, ok := f.lessons[id]
	if !ok {
		return nil, app_errors.ErrLessonNotFound
	}
	return l, nil
}

func (f *fakeCurriculumRepo) UpdateLesson(_ context.Context, lesson models.Lesson) error {
	if _, ok := f.lessons[lesson.ID]; !ok {
		return app_errors.ErrLessonNotFound
	}
	f.lessons[lesson.ID] = &lesson
	return nil
}

func (f *fakeCurriculumRepo) DeleteLesson(_ context.Context, id uuid.UUID) error {
	if _, ok := f.lessons[id]; !ok {
		return app_errors.ErrLessonNotFound
	}
	delete(f.lessons, id)
	return nil
}

func (f *fakeCurriculumRepo) LessonsByModule(_ context.Context, moduleID uuid.UUID) ([]models.Lesson, error) {
	var out []models.Lesson
	for _, l := range f.lessons {
		if l.ModuleID == moduleID {
			out = append(out, *l)
		}
	}
	return out, nil
}

type fakeSearchIndex struct {
	indexed map[uuid.UUID]bool
}

func (f *fakeSearchIndex) Index(_ context.Context, course models.Course) error {
	f.indexed[course.ID] = true
	return nil
}

func (f *fakeSearchIndex) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.indexed, id)
	return nil
}

type fakeThumbnails struct {
	objects map[string]bool
}

func (f *fakeThumbnails) UploadThumbnail(_ context.Context, courseID uuid.UUID, filename string, _ io.Reader, _ int64, _ string) (string, error) {
	key := "courses/" + courseID.String() + "/thumbnail.png"
	f.objects[key] = true
	return key, nil
}

func (f *fakeThumbnails) DeleteThumbnail(_ context.Context, objectKey string) error {
	delete(f.objects, objectKey)
	return nil
}

type authoringFixture struct {
	svc     *AuthoringService
	courses *fakeCourseRepo
	curr    *fakeCurriculumRepo
	search  *fakeSearchIndex
	thumbs  *fakeThumbnails
	mentor  models.User
	admin   models.User
}

func newAuthoringFixture() *authoringFixture {
	f := &authoringFixture{
		courses: &fakeCourseRepo{courses: map[uuid.UUID]*models.Course{}},
		curr:    &fakeCurriculumRepo{modules: map[uuid.UUID]*models.Module{}, lessons: map[uuid.UUID]*models.Lesson{}},
		search:  &fakeSearchIndex{indexed: map[uuid.UUID]bool{}},
		thumbs:  &fakeThumbnails{objects: map[string]bool{}},
		mentor:  models.User{ID: uuid.New(), Roles: []string{models.MentorRole}},
		admin:   models.User{ID: uuid.New(), Roles: []string{models.AdminRole}},
	}
	f.svc = NewAuthoringService(logger.New("prod"), f.courses, f.curr, f.search, f.thumbs)
	return f
}

func TestCreateCourseGeneratesSlugAndStartsAsDraft(t *testing.T) {
	f := newAuthoringFixture()

	course, err := f.svc.CreateCourse(context.Background(), f.mentor, models.Course{
		Title:      "Advanced Go Patterns",
		Difficulty: "nonsense",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^advanced-go-patterns-[a-z0-9]{5}$`), course.Slug)
	assert.False(t, course.IsPublished)
	assert.Equal(t, models.DifficultyBeginner, course.Difficulty)
	assert.Equal(t, f.mentor.ID, course.CreatedBy)
}

func TestUpdateCourseKeepsSlug(t *testing.T) {
	f := newAuthoringFixture()
	course, err := f.svc.CreateCourse(context.Background(), f.mentor, models.Course{Title: "Original Title"})
	require.NoError(t, err)
	originalSlug := course.Slug

	updated, err := f.svc.UpdateCourse(context.Background(), f.mentor, models.Course{
		ID:    course.ID,
		Title: "A Completely New Title",
		Slug:  "attempted-override-xxxxx",
	})
	require.NoError(t, err)

	assert.Equal(t, "A Completely New Title", updated.Title)
	assert.Equal(t, originalSlug, updated.Slug)
}

func TestOnlyAuthorOrAdminMayEdit(t *testing.T) {
	f := newAuthoringFixture()
	course, err := f.svc.CreateCourse(context.Background(), f.mentor, models.Course{Title: "Mine"})
	require.NoError(t, err)

	otherMentor := models.User{ID: uuid.New(), Roles: []string{models.MentorRole}}
	_, err = f.svc.UpdateCourse(context.Background(), otherMentor, models.Course{ID: course.ID, Title: "Taken"})
	assert.ErrorIs(t, err, app_errors.ErrNotCourseAuthor)

	_, err = f.svc.UpdateCourse(context.Background(), f.admin, models.Course{ID: course.ID, Title: "Moderated"})
	assert.NoError(t, err)
}

func TestPublishLifecycleDrivesSearchIndex(t *testing.T) {
	f := newAuthoringFixture()
	course, err := f.svc.CreateCourse(context.Background(), f.mentor, models.Course{Title: "Searchable"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Publish(context.Background(), f.mentor, course.ID))
	assert.True(t, f.search.indexed[course.ID])

	require.NoError(t, f.svc.Unpublish(context.Background(), f.mentor, course.ID))
	assert.False(t, f.search.indexed[course.ID])
}

func TestDeleteCourseCleansUpEverywhere(t *testing.T) {
	f := newAuthoringFixture()
	course, err := f.svc.CreateCourse(context.Background(), f.mentor, models.Course{Title: "Doomed"})
	require.NoError(t, err)
	require.NoError(t, f.svc.Publish(context.Background(), f.mentor, course.ID))
	require.NoError(t, f.svc.UploadThumbnail(context.Background(), f.mentor, course.ID, "t.png", strings.NewReader("img"), 3, "image/png"))

	require.NoError(t, f.svc.DeleteCourse(context.Background(), f.mentor, course.ID))

	_, err = f.courses.CourseByID(context.Background(), course.ID)
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
	assert.Empty(t, f.search.indexed)
	assert.Empty(t, f.thumbs.objects)
}

func TestUploadThumbnailValidation(t *testing.T) {
	f := newAuthoringFixture()
	course, err := f.svc.CreateCourse(context.Background(), f.mentor, models.Course{Title: "With Art"})
	require.NoError(t, err)

	err = f.svc.UploadThumbnail(context.Background(), f.mentor, course.ID, "notes.txt", strings.NewReader("hi"), 2, "text/plain")
	assert.ErrorIs(t, err, app_errors.ErrNotImage)

	err = f.svc.UploadThumbnail(context.Background(), f.mentor, course.ID, "big.png", strings.NewReader("x"), maxThumbnailSize+1, "image/png")
	assert.ErrorIs(t, err, app_errors.ErrFileSize)

	err = f.svc.UploadThumbnail(context.Background(), f.mentor, course.ID, "ok.png", strings.NewReader("img"), 3, "image/png")
	require.NoError(t, err)
	stored, err := f.courses.CourseByID(context.Background(), course.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ThumbnailObjectKey)
}

func TestCreateLessonValidatesSnippets(t *testing.T) {
	f := newAuthoringFixture()
	course, err := f.svc.CreateCourse(context.Background(), f.mentor, models.Course{Title: "With Code"})
	require.NoError(t, err)
	module, err := f.svc.CreateModule(context.Background(), f.mentor, models.Module{CourseID: course.ID, Title: "Intro", OrderIndex: 1})
	require.NoError(t, err)

	_, err = f.svc.CreateLesson(context.Background(), f.mentor, models.Lesson{
		ModuleID:     module.ID,
		Title:        "Broken",
		CodeSnippets: []models.CodeSnippet{{Language: "", Code: "x"}},
	})
	assert.ErrorIs(t, err, app_errors.ErrInvalidSnippets)

	lesson, err := f.svc.CreateLesson(context.Background(), f.mentor, models.Lesson{
		ModuleID:     module.ID,
		Title:        "Works",
		CodeSnippets: []models.CodeSnippet{{Language: "go", Code: "fmt.Println(1)"}},
	})
	require.NoError(t, err)
	assert.Len(t, lesson.CodeSnippets, 1)
}

func TestDeleteModuleCascadesToLessons(t *testing.T) {
	f := newAuthoringFixture()
	course, err := f.svc.CreateCourse(context.Background(), f.mentor, models.Course{Title: "Structured"})
	require.NoError(t, err)
	module, err := f.svc.CreateModule(context.Background(), f.mentor, models.Module{CourseID: course.ID, Title: "M1", OrderIndex: 1})
	require.NoError(t, err)
	_, err = f.svc.CreateLesson(context.Background(), f.mentor, models.Lesson{ModuleID: module.ID, Title: "L1", OrderIndex: 1})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteModule(context.Background(), f.mentor, module.ID))
	assert.Empty(t, f.curr.lessons)
}
