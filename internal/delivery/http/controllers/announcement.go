package controllers

import (
	"context"
	"errors"
	"net/http"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"
	"MentorLink/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnnouncementService interface {
	Create(ctx context.Context, author uuid.UUID, a models.Announcement) (*models.Announcement, error)
	ListActive(ctx context.Context) ([]models.Announcement, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type AnnouncementHandler struct {
	AnnouncementService AnnouncementService
	log                 logger.Log
}

func NewAnnouncementHandler(l logger.Log, svc AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		AnnouncementService: svc,
		log:                 l,
	}
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	announcements, err := h.AnnouncementService.ListActive(c.Request.Context())
	if err != nil {
		h.log.ErrorErr("error listing announcements", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}

type announcementRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Type    string `json:"type"`
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var input announcementRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.AnnouncementService.Create(c.Request.Context(), user.ID, models.Announcement{
		Title:   input.Title,
		Content: input.Content,
		Type:    input.Type,
	})
	if err != nil {
		if errors.Is(err, app_errors.ErrAnnouncementInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error creating announcement", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AnnouncementHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("announcement_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.AnnouncementService.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, app_errors.ErrAnnouncementNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error deactivating announcement", err, "announcement_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
