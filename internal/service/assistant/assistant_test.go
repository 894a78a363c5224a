package assistant

import (
	"context"
	"errors"
	"testing"

	"MentorLink/internal/models"
	"MentorLink/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type fakeProvider struct {
	reply       string
	err         error
	gotHistory  []models.ChatTurn
	gotMessage  string
	gotSysLines string
}

func (f *fakeProvider) Generate(_ context.Context, systemPrompt string, history []models.ChatTurn, message string) (string, error) {
	f.gotSysLines = systemPrompt
	f.gotHistory = history
	f.gotMessage = message
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestSendMessagePassesThrough(t *testing.T) {
	p := &fakeProvider{reply: "Use a slice, not an array."}
	svc := NewAssistantService(logger.New("prod"), p)

	history := []models.ChatTurn{
		{Role: models.ChatRoleUser, Text: "what is a slice?"},
		{Role: models.ChatRoleAssistant, Text: "a view over an array"},
	}
	reply := svc.SendMessage(context.Background(), history, "when should I use one?")

	assert.Equal(t, "Use a slice, not an array.", reply)
	assert.Equal(t, history, p.gotHistory)
	assert.Equal(t, "when should I use one?", p.gotMessage)
	assert.Contains(t, p.gotSysLines, "learning assistant")
}

func TestSendMessageFallsBackOnProviderError(t *testing.T) {
	p := &fakeProvider{err: errors.New("upstream 500")}
	svc := NewAssistantService(logger.New("prod"), p)

	reply := svc.SendMessage(context.Background(), nil, "help")
	assert.Equal(t, fallbackReply, reply)
}

func TestSendMessageRejectsEmptyMessage(t *testing.T) {
	p := &fakeProvider{reply: "never called"}
	svc := NewAssistantService(logger.New("prod"), p)

	reply := svc.SendMessage(context.Background(), nil, "   ")
	assert.Equal(t, fallbackReply, reply)
	assert.Empty(t, p.gotMessage)
}

func TestSendMessageBoundsHistory(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	svc := NewAssistantService(logger.New("prod"), p)

	history := make([]models.ChatTurn, 50)
	for i := range history {
		history[i] = models.ChatTurn{Role: models.ChatRoleUser, Text: "turn"}
	}
	svc.SendMessage(context.Background(), history, "latest")

	assert.Len(t, p.gotHistory, maxHistoryTurns)
}
