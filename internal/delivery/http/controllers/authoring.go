package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"
	"MentorLink/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthoringService interface {
	CreateCourse(ctx context.Context, author models.User, course models.Course) (*models.Course, error)
	UpdateCourse(ctx context.Context, actor models.User, course models.Course) (*models.Course, error)
	Publish(ctx context.Context, actor models.User, courseID uuid.UUID) error
	Unpublish(ctx context.Context, actor models.User, courseID uuid.UUID) error
	DeleteCourse(ctx context.Context, actor models.User, courseID uuid.UUID) error
	CoursesByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Course, error)
	UploadThumbnail(ctx context.Context, actor models.User, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) error
	CreateModule(ctx context.Context, actor models.User, module models.Module) (*models.Module, error)
	UpdateModule(ctx context.Context, actor models.User, module models.Module) error
	DeleteModule(ctx context.Context, actor models.User, moduleID uuid.UUID) error
	CreateLesson(ctx context.Context, actor models.User, lesson models.Lesson) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, actor models.User, lesson models.Lesson) error
	DeleteLesson(ctx context.Context, actor models.User, lessonID uuid.UUID) error
}

type AuthoringHandler struct {
	AuthoringService AuthoringService
	log              logger.Log
}

func NewAuthoringHandler(l logger.Log, svc AuthoringService) *AuthoringHandler {
	return &AuthoringHandler{
		AuthoringService: svc,
		log:              l,
	}
}

func authoringError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, app_errors.ErrCourseNotFound),
		errors.Is(err, app_errors.ErrModuleNotFound),
		errors.Is(err, app_errors.ErrLessonNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrNotCourseAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrDuplicateModuleOrder),
		errors.Is(err, app_errors.ErrDuplicateLessonOrder):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrInvalidSnippets),
		errors.Is(err, app_errors.ErrNotImage),
		errors.Is(err, app_errors.ErrFileSize):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		return false
	}
	return true
}

type courseRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	Difficulty     string `json:"difficulty"`
	EstimatedHours int    `json:"estimated_hours"`
	Category       string `json:"category"`
}

func (h *AuthoringHandler) CreateCourse(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var input courseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.AuthoringService.CreateCourse(c.Request.Context(), *user, models.Course{
		Title:          input.Title,
		Description:    input.Description,
		Difficulty:     input.Difficulty,
		EstimatedHours: input.EstimatedHours,
		Category:       input.Category,
	})
	if err != nil {
		if authoringError(c, err) {
			return
		}
		h.log.ErrorErr("error creating course", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *AuthoringHandler) UpdateCourse(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var input courseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.AuthoringService.UpdateCourse(c.Request.Context(), *user, models.Course{
		ID:             courseID,
		Title:          input.Title,
		Description:    input.Description,
		Difficulty:     input.Difficulty,
		EstimatedHours: input.EstimatedHours,
		Category:       input.Category,
	})
	if err != nil {
		if authoringError(c, err) {
			return
		}
		h.log.ErrorErr("error updating course", err, "course_id", courseID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *AuthoringHandler) setPublished(c *gin.Context, published bool) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if published {
		err = h.AuthoringService.Publish(c.Request.Context(), *user, courseID)
	} else {
		err = h.AuthoringService.Unpublish(c.Request.Context(), *user, courseID)
	}
	if err != nil {
		if authoringError(c, err) {
			return
		}
		h.log.ErrorErr("error toggling publication", err, "course_id", courseID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *AuthoringHandler) PublishCourse(c *gin.Context) {
	h.setPublished(c, true)
}

func (h *AuthoringHandler) UnpublishCourse(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *AuthoringHandler) DeleteCourse(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.AuthoringService.DeleteCourse(c.Request.Context(), *user, courseID); err != nil {
		if authoringError(c, err) {
			return
		}
		h.log.ErrorErr("error deleting course", err, "course_id", courseID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *AuthoringHandler) MyCourses(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	courses, err := h.AuthoringService.CoursesByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		h.log.ErrorErr("error listing author courses", err, "author_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *AuthoringHandler) UploadThumbnail(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("thumbnail")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "thumbnail file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	err = h.AuthoringService.UploadThumbnail(
		c.Request.Context(),
		*user,
		courseID,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		if authoringError(c, err) {
			return
		}
		h.log.ErrorErr("error uploading thumbnail", err, "course_id", courseID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

type moduleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

func (h *AuthoringHandler) CreateModule(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var input moduleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	module, err := h.AuthoringService.CreateModule(c.Request.Context(), *user, models.Module{
		CourseID:    courseID,
		Title:       input.Title,
		Description: input.Description,
		OrderIndex:  input.OrderIndex,
	})
	if err != nil {
		if authoringError(c, err) {
			return
		}
		h.log.ErrorErr("error creating module", err, "course_id", courseID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, module)
}

func (h *AuthoringHandler) UpdateModule(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	moduleID, err := uuid.Parse(c.Param("module_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var input moduleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.AuthoringService.UpdateModule(c.Request.Context(), *user, models.Module{
		ID:          moduleID,
		Title:       input.Title,
		Description: input.Description,
		OrderIndex:  input.OrderIndex,
	})
	if err != nil {
		if authoringError(c, err) {
			return
		}
		h.log.ErrorErr("error updating module", err, "module_id", moduleID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *AuthoringHandler) DeleteModule(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	moduleID, err := uuid.Parse(c.Param("module_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.AuthoringService.DeleteModule(c.Request.Context(), *user, moduleID); err != nil {
		if authoringError(c, err) {
			return
		}
		h.log.ErrorErr("error deleting module", err, "module_id", moduleID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

type lessonRequest struct {
	Title           string               `json:"title" binding:"required"`
	VideoURL        string               `json:"video_url"`
	DurationMins    int                  `json:"duration_mins"`
	ContentMarkdown string               `json:"content_markdown"`
	CodeSnippets    []models.CodeSnippet `json:"code_snippets"`
	OrderIndex      int                  `json:"order_index"`
}

func (h *AuthoringHandler) CreateLesson(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	moduleID, err := uuid.Parse(c.Param("module_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var input lessonRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson, err := h.AuthoringService.CreateLesson(c.Request.Context(), *user, models.Lesson{
		ModuleID:        moduleID,
		Title:           input.Title,
		VideoURL:        input.VideoURL,
		DurationMins:    input.DurationMins,
		ContentMarkdown: input.ContentMarkdown,
		CodeSnippets:    input.CodeSnippets,
		OrderIndex:      input.OrderIndex,
	})
	if err != nil {
		if authoringError(c, err) {
			return
		}
		h.log.ErrorErr("error creating lesson", err, "module_id", moduleID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

func (h *AuthoringHandler) UpdateLesson(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var input lessonRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.AuthoringService.UpdateLesson(c.Request.Context(), *user, models.Lesson{
		ID:              lessonID,
		Title:           input.Title,
		VideoURL:        input.VideoURL,
		DurationMins:    input.DurationMins,
		ContentMarkdown: input.ContentMarkdown,
		CodeSnippets:    input.CodeSnippets,
		OrderIndex:      input.OrderIndex,
	})
	if err != nil {
		if authoringError(c, err) {
			return
		}
		h.log.ErrorErr("error updating lesson", err, "lesson_id", lessonID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *AuthoringHandler) DeleteLesson(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.AuthoringService.DeleteLesson(c.Request.Context(), *user, lessonID); err != nil {
		if authoringError(c, err) {
			return
		}
		h.log.ErrorErr("error deleting lesson", err, "lesson_id", lessonID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
