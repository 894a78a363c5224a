package controllers

import (
	"context"
	"errors"
	"net/http"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"
	"MentorLink/internal/service/identity"
	"MentorLink/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IdentityService interface {
	ResolveSession(ctx context.Context, userID uuid.UUID) (*identity.Session, error)
	RefreshProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

type IdentityHandler struct {
	IdentityService IdentityService
	log             logger.Log
}

func NewIdentityHandler(l logger.Log, svc IdentityService) *IdentityHandler {
	return &IdentityHandler{
		IdentityService: svc,
		log:             l,
	}
}

// Me resolves the caller's session: user, routing role and role profile.
func (h *IdentityHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session, err := h.IdentityService.ResolveSession(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, app_errors.ErrProfileUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error resolving session", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *IdentityHandler) Profile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.IdentityService.RefreshProfile(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, app_errors.ErrProfileUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("error loading profile", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}
