package assistant

import (
	"context"
	"strings"

	"MentorLink/internal/models"
	"MentorLink/pkg/logger"
)

// systemPrompt frames every conversation. It is fixed server-side; clients
// only send the message and prior turns.
const systemPrompt = `You are the learning assistant for an online course platform.
Help students understand programming concepts from their courses.
Keep answers concise and format them in Markdown.
Guide students towards a solution instead of writing complete homework answers for them.
You have no access to student records or any private platform data; if asked, say so.`

// fallbackReply is returned when the model cannot be reached so the chat UI
// always has something to render.
const fallbackReply = "Sorry, I'm having trouble answering right now. Please try again in a moment."

const maxHistoryTurns = 20

type provider interface {
	Generate(ctx context.Context, systemPrompt string, history []models.ChatTurn, message string) (string, error)
}

type AssistantService struct {
	log      logger.Log
	provider provider
}

func NewAssistantService(l logger.Log, p provider) *AssistantService {
	return &AssistantService{log: l, provider: p}
}

// SendMessage forwards a chat turn to the model and returns the reply text.
// Provider failures degrade to a canned reply rather than an error; a chat
// box that errors out teaches nobody anything.
func (s *AssistantService) SendMessage(ctx context.Context, history []models.ChatTurn, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return fallbackReply
	}
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	reply, err := s.provider.Generate(ctx, systemPrompt, history, message)
	if err != nil {
		s.log.ErrorErr("assistant provider call failed", err)
		return fallbackReply
	}
	return reply
}
