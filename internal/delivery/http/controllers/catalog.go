package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"
	"MentorLink/internal/service/catalog"
	"MentorLink/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogService interface {
	ListPublishedCourses(ctx context.Context, limit, offset int) (*catalog.CoursePage, error)
	CourseBySlug(ctx context.Context, slug string) (*models.CourseDetail, error)
	SearchCourses(ctx context.Context, query string, size int) ([]models.CoursePreview, error)
	QuizForLesson(ctx context.Context, lessonID uuid.UUID) (*models.Quiz, error)
	QuizForModule(ctx context.Context, moduleID uuid.UUID) (*models.Quiz, error)
}

type CatalogHandler struct {
	CatalogService CatalogService
	log            logger.Log
}

func NewCatalogHandler(l logger.Log, svc CatalogService) *CatalogHandler {
	return &CatalogHandler{
		CatalogService: svc,
		log:            l,
	}
}

func (h *CatalogHandler) ListCourses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.CatalogService.ListPublishedCourses(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.ErrorErr("error listing courses", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CatalogHandler) CourseBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug is required"})
		return
	}

	detail, err := h.CatalogService.CourseBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, app_errors.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error loading course", err, "slug", slug)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *CatalogHandler) SearchCourses(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	previews, err := h.CatalogService.SearchCourses(c.Request.Context(), query, size)
	if err != nil {
		h.log.ErrorErr("error searching courses", err, "query", query)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": previews})
}

func (h *CatalogHandler) QuizForLesson(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.CatalogService.QuizForLesson(c.Request.Context(), lessonID)
	if err != nil {
		if errors.Is(err, app_errors.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error loading quiz", err, "lesson_id", lessonID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *CatalogHandler) QuizForModule(c *gin.Context) {
	moduleID, err := uuid.Parse(c.Param("module_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.CatalogService.QuizForModule(c.Request.Context(), moduleID)
	if err != nil {
		if errors.Is(err, app_errors.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error loading quiz", err, "module_id", moduleID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quiz)
}
