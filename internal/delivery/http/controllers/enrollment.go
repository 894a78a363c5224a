package controllers

import (
	"context"
	"errors"
	"net/http"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"
	"MentorLink/internal/service/enrollment"
	"MentorLink/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
	MarkLessonComplete(ctx context.Context, studentID, enrollmentID, lessonID uuid.UUID) (*models.Enrollment, error)
	UnmarkLessonComplete(ctx context.Context, studentID, enrollmentID, lessonID uuid.UUID) (*models.Enrollment, error)
	RecordWatchTime(ctx context.Context, studentID, enrollmentID, lessonID uuid.UUID, seconds int) error
	RecalculateProgress(ctx context.Context, studentID, enrollmentID uuid.UUID) (*models.Enrollment, error)
	Drop(ctx context.Context, studentID, enrollmentID uuid.UUID) error
	Progress(ctx context.Context, studentID, enrollmentID uuid.UUID) (*enrollment.ProgressDetail, error)
	EnrollmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Enrollment, error)
}

type EnrollmentHandler struct {
	EnrollmentService EnrollmentService
	log               logger.Log
}

func NewEnrollmentHandler(l logger.Log, svc EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		EnrollmentService: svc,
		log:               l,
	}
}

// enrollmentError maps service sentinels onto HTTP statuses shared by the
// enrollment endpoints. Returns false when the error needs the 500 path.
func enrollmentError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, app_errors.ErrEnrollmentNotFound),
		errors.Is(err, app_errors.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrNotEnrollmentOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrCourseNotPublished),
		errors.Is(err, app_errors.ErrEnrollmentDropped):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		return false
	}
	return true
}

type enrollRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var input enrollRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	courseID, err := uuid.Parse(input.CourseID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.EnrollmentService.Enroll(c.Request.Context(), user.ID, courseID)
	if err != nil {
		if enrollmentError(c, err) {
			return
		}
		h.log.ErrorErr("error enrolling student", err, "course_id", courseID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *EnrollmentHandler) MyEnrollments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	enrollments, err := h.EnrollmentService.EnrollmentsByStudent(c.Request.Context(), user.ID)
	if err != nil {
		h.log.ErrorErr("error listing enrollments", err, "student_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollments": enrollments})
}

func (h *EnrollmentHandler) Progress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	enrollmentID, err := uuid.Parse(c.Param("enrollment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.EnrollmentService.Progress(c.Request.Context(), user.ID, enrollmentID)
	if err != nil {
		if enrollmentError(c, err) {
			return
		}
		h.log.ErrorErr("error loading progress", err, "enrollment_id", enrollmentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *EnrollmentHandler) markLesson(c *gin.Context, completed bool) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	enrollmentID, err := uuid.Parse(c.Param("enrollment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var e *models.Enrollment
	if completed {
		e, err = h.EnrollmentService.MarkLessonComplete(c.Request.Context(), user.ID, enrollmentID, lessonID)
	} else {
		e, err = h.EnrollmentService.UnmarkLessonComplete(c.Request.Context(), user.ID, enrollmentID, lessonID)
	}
	if err != nil {
		if enrollmentError(c, err) {
			return
		}
		h.log.ErrorErr("error updating lesson completion", err, "enrollment_id", enrollmentID, "lesson_id", lessonID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EnrollmentHandler) CompleteLesson(c *gin.Context) {
	h.markLesson(c, true)
}

func (h *EnrollmentHandler) UncompleteLesson(c *gin.Context) {
	h.markLesson(c, false)
}

type watchTimeRequest struct {
	Seconds int `json:"seconds" binding:"required"`
}

func (h *EnrollmentHandler) RecordWatchTime(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	enrollmentID, err := uuid.Parse(c.Param("enrollment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var input watchTimeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.EnrollmentService.RecordWatchTime(c.Request.Context(), user.ID, enrollmentID, lessonID, input.Seconds); err != nil {
		if enrollmentError(c, err) {
			return
		}
		h.log.ErrorErr("error recording watch time", err, "enrollment_id", enrollmentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *EnrollmentHandler) Recalculate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	enrollmentID, err := uuid.Parse(c.Param("enrollment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.EnrollmentService.RecalculateProgress(c.Request.Context(), user.ID, enrollmentID)
	if err != nil {
		if enrollmentError(c, err) {
			return
		}
		h.log.ErrorErr("error recalculating progress", err, "enrollment_id", enrollmentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EnrollmentHandler) Drop(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	enrollmentID, err := uuid.Parse(c.Param("enrollment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.EnrollmentService.Drop(c.Request.Context(), user.ID, enrollmentID); err != nil {
		if enrollmentError(c, err) {
			return
		}
		h.log.ErrorErr("error dropping enrollment", err, "enrollment_id", enrollmentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
