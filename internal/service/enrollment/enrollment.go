package enrollment

import (
	"context"
	"math"
	"time"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"
	"MentorLink/pkg/logger"

	"github.com/google/uuid"
)

type enrollmentRepo interface {
	CreateEnrollment(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
	EnrollmentByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error)
	EnrollmentByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
	EnrollmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Enrollment, error)
	UpsertLessonProgress(ctx context.Context, enrollmentID, lessonID uuid.UUID, completed bool) error
	AddWatchTime(ctx context.Context, enrollmentID, lessonID uuid.UUID, seconds int) error
	LessonProgressByEnrollment(ctx context.Context, enrollmentID uuid.UUID) ([]models.LessonProgress, error)
	CompletedLessonCount(ctx context.Context, enrollmentID uuid.UUID) (int, error)
	UpdateProgress(ctx context.Context, enrollmentID uuid.UUID, percent int, status string, completedAt *time.Time) error
	UpdateStatus(ctx context.Context, enrollmentID uuid.UUID, status string) error
}

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type curriculumRepo interface {
	CountLessonsByCourse(ctx context.Context, courseID uuid.UUID) (int, error)
	LessonBelongsToCourse(ctx context.Context, lessonID, courseID uuid.UUID) (bool, error)
}

type EnrollmentService struct {
	log         logger.Log
	enrollments enrollmentRepo
	courses     courseRepo
	curriculum  curriculumRepo
	now         func() time.Time
}

func NewEnrollmentService(l logger.Log, eRepo enrollmentRepo, cRepo courseRepo, curriculum curriculumRepo) *EnrollmentService {
	return &EnrollmentService{
		log:         l,
		enrollments: eRepo,
		courses:     cRepo,
		curriculum:  curriculum,
		now:         time.Now,
	}
}

// Enroll creates an active enrollment for a published course. Enrolling
// twice returns the existing enrollment unchanged; a dropped enrollment is
// reactivated with its recorded progress intact.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	course, err := s.courses.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, app_errors.ErrCourseNotPublished
	}

	enrollment, err := s.enrollments.CreateEnrollment(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	if enrollment.Status == models.EnrollmentDropped {
		if err := s.enrollments.UpdateStatus(ctx, enrollment.ID, models.EnrollmentActive); err != nil {
			return nil, err
		}
		return s.recalculate(ctx, enrollment.ID)
	}
	return enrollment, nil
}

// MarkLessonComplete records the completion and synchronously rederives the
// cached progress from the lesson rows. Marking the same lesson twice is a
// no-op for the percentage.
func (s *EnrollmentService) MarkLessonComplete(ctx context.Context, studentID, enrollmentID, lessonID uuid.UUID) (*models.Enrollment, error) {
	return s.setLessonCompletion(ctx, studentID, enrollmentID, lessonID, true)
}

// UnmarkLessonComplete reverses a completion; the percentage drops and a
// completed enrollment returns to active with completed_at cleared.
func (s *EnrollmentService) UnmarkLessonComplete(ctx context.Context, studentID, enrollmentID, lessonID uuid.UUID) (*models.Enrollment, error) {
	return s.setLessonCompletion(ctx, studentID, enrollmentID, lessonID, false)
}

func (s *EnrollmentService) setLessonCompletion(ctx context.Context, studentID, enrollmentID, lessonID uuid.UUID, completed bool) (*models.Enrollment, error) {
	enrollment, err := s.ownedEnrollment(ctx, studentID, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status == models.EnrollmentDropped {
		return nil, app_errors.ErrEnrollmentDropped
	}
	if err := s.courseLesson(ctx, lessonID, enrollment.CourseID); err != nil {
		return nil, err
	}

	if err := s.enrollments.UpsertLessonProgress(ctx, enrollmentID, lessonID, completed); err != nil {
		return nil, err
	}

	updated, err := s.recalculate(ctx, enrollmentID)
	if err != nil {
		// The completion row landed; the cached percent catches up on the
		// next recompute.
		s.log.ErrorErr("progress recompute failed", err, "enrollment_id", enrollmentID)
		return nil, err
	}
	return updated, nil
}

// RecordWatchTime accumulates watch seconds for a lesson without touching
// completion state.
func (s *EnrollmentService) RecordWatchTime(ctx context.Context, studentID, enrollmentID, lessonID uuid.UUID, seconds int) error {
	if seconds <= 0 {
		return nil
	}
	enrollment, err := s.ownedEnrollment(ctx, studentID, enrollmentID)
	if err != nil {
		return err
	}
	if enrollment.Status == models.EnrollmentDropped {
		return app_errors.ErrEnrollmentDropped
	}
	if err := s.courseLesson(ctx, lessonID, enrollment.CourseID); err != nil {
		return err
	}
	return s.enrollments.AddWatchTime(ctx, enrollmentID, lessonID, seconds)
}

// courseLesson rejects a lesson from outside the enrollment's course. The
// completion rows must stay within the course the percentage is derived over.
func (s *EnrollmentService) courseLesson(ctx context.Context, lessonID, courseID uuid.UUID) error {
	ok, err := s.curriculum.LessonBelongsToCourse(ctx, lessonID, courseID)
	if err != nil {
		return err
	}
	if !ok {
		return app_errors.ErrLessonNotFound
	}
	return nil
}

// RecalculateProgress rederives the cached percent and status from the
// lesson completion rows. Safe to call any number of times; the result
// depends only on current rows. A dropped enrollment stays dropped until it
// is re-enrolled.
func (s *EnrollmentService) RecalculateProgress(ctx context.Context, studentID, enrollmentID uuid.UUID) (*models.Enrollment, error) {
	enrollment, err := s.ownedEnrollment(ctx, studentID, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status == models.EnrollmentDropped {
		return nil, app_errors.ErrEnrollmentDropped
	}
	return s.recalculate(ctx, enrollmentID)
}

func (s *EnrollmentService) recalculate(ctx context.Context, enrollmentID uuid.UUID) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.EnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	total, err := s.curriculum.CountLessonsByCourse(ctx, enrollment.CourseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.enrollments.CompletedLessonCount(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	percent := ProgressPercent(completed, total)

	status := enrollment.Status
	completedAt := enrollment.CompletedAt
	switch {
	case percent == 100:
		status = models.EnrollmentCompleted
		if completedAt == nil {
			now := s.now().UTC()
			completedAt = &now
		}
	case enrollment.Status == models.EnrollmentCompleted:
		// A completion was reversed; back to active.
		status = models.EnrollmentActive
		completedAt = nil
	}

	if err := s.enrollments.UpdateProgress(ctx, enrollmentID, percent, status, completedAt); err != nil {
		return nil, err
	}

	enrollment.ProgressPercent = percent
	enrollment.Status = status
	enrollment.CompletedAt = completedAt
	return enrollment, nil
}

// ProgressPercent is the one formula for the cached projection: completed
// over total, rounded to the nearest integer. A course with no lessons is 0,
// never a division error.
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// Drop marks the enrollment dropped. Lesson progress rows stay; re-enrolling
// restores the percentage from them.
func (s *EnrollmentService) Drop(ctx context.Context, studentID, enrollmentID uuid.UUID) error {
	if _, err := s.ownedEnrollment(ctx, studentID, enrollmentID); err != nil {
		return err
	}
	return s.enrollments.UpdateStatus(ctx, enrollmentID, models.EnrollmentDropped)
}

type ProgressDetail struct {
	Enrollment models.Enrollment       `json:"enrollment"`
	Lessons    []models.LessonProgress `json:"lessons"`
}

func (s *EnrollmentService) Progress(ctx context.Context, studentID, enrollmentID uuid.UUID) (*ProgressDetail, error) {
	enrollment, err := s.ownedEnrollment(ctx, studentID, enrollmentID)
	if err != nil {
		return nil, err
	}
	lessons, err := s.enrollments.LessonProgressByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	return &ProgressDetail{Enrollment: *enrollment, Lessons: lessons}, nil
}

func (s *EnrollmentService) EnrollmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Enrollment, error) {
	return s.enrollments.EnrollmentsByStudent(ctx, studentID)
}

func (s *EnrollmentService) ownedEnrollment(ctx context.Context, studentID, enrollmentID uuid.UUID) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.EnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.StudentID != studentID {
		return nil, app_errors.ErrNotEnrollmentOwner
	}
	return enrollment, nil
}
