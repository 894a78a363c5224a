package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MentorLink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respondWithText(w http.ResponseWriter, text string) {
	res := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"role":  "model",
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
	_ = json.NewEncoder(w).Encode(res)
}

func TestGenerateSendsHistoryAndReturnsReply(t *testing.T) {
	var captured generateRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		respondWithText(w, "A goroutine is a lightweight thread.")
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL, "gemini-1.5-flash", "secret", 5*time.Second, 256)
	require.NoError(t, err)

	history := []models.ChatTurn{
		{Role: models.ChatRoleUser, Text: "hi"},
		{Role: models.ChatRoleAssistant, Text: "hello"},
	}
	reply, err := client.Generate(context.Background(), "be brief", history, "what is a goroutine?")
	require.NoError(t, err)
	assert.Equal(t, "A goroutine is a lightweight thread.", reply)

	require.NotNil(t, captured.SystemInstruction)
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, "what is a goroutine?", captured.Contents[2].Parts[0].Text)
	assert.Equal(t, 256, captured.GenerationConfig.MaxOutputTokens)
}

func TestGenerateRetriesOnServerError(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		respondWithText(w, "second try worked")
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL, "gemini-1.5-flash", "secret", 5*time.Second, 256)
	require.NoError(t, err)

	reply, err := client.Generate(context.Background(), "", nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, "second try worked", reply)
	assert.Equal(t, 2, calls)
}

func TestGenerateDoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL, "gemini-1.5-flash", "secret", 5*time.Second, 256)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "", nil, "hello")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("https://example.com", "gemini-1.5-flash", "", time.Second, 256)
	assert.Error(t, err)
}
