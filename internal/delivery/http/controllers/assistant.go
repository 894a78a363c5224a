package controllers

import (
	"context"
	"net/http"

	"MentorLink/internal/models"
	"MentorLink/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AssistantService interface {
	SendMessage(ctx context.Context, history []models.ChatTurn, message string) string
}

type AssistantHandler struct {
	AssistantService AssistantService
	log              logger.Log
}

func NewAssistantHandler(l logger.Log, svc AssistantService) *AssistantHandler {
	return &AssistantHandler{
		AssistantService: svc,
		log:              l,
	}
}

type chatRequest struct {
	Message string            `json:"message" binding:"required"`
	History []models.ChatTurn `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat always answers 200 with a reply; provider trouble shows up as the
// fallback text, never as a broken chat box.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var input chatRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := h.AssistantService.SendMessage(c.Request.Context(), input.History, input.Message)
	c.JSON(http.StatusOK, chatResponse{Reply: reply})
}
