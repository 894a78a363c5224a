package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"MentorLink/internal/models"
)

// Client talks to a Gemini-style generateContent REST endpoint. No official
// SDK is pulled in; the payloads are small enough that a plain HTTP client
// keeps the dependency surface flat.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	model           string
	apiKey          string
	maxOutputTokens int
}

func NewClient(baseURL, model, apiKey string, timeout time.Duration, maxOutputTokens int) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("genai: api key is not configured")
	}
	return &Client{
		httpClient:      &http.Client{Timeout: timeout},
		baseURL:         strings.TrimRight(baseURL, "/"),
		model:           model,
		apiKey:          apiKey,
		maxOutputTokens: maxOutputTokens,
	}, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"system_instruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the system prompt, prior turns and the new message, and
// returns the model's text reply. One retry on transport errors and 5xx.
func (c *Client) Generate(ctx context.Context, systemPrompt string, history []models.ChatTurn, message string) (string, error) {
	req := generateRequest{
		GenerationConfig: generationConfig{MaxOutputTokens: c.maxOutputTokens},
	}
	if systemPrompt != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: systemPrompt}}}
	}
	for _, turn := range history {
		role := "user"
		if turn.Role == models.ChatRoleAssistant {
			role = "model"
		}
		req.Contents = append(req.Contents, content{Role: role, Parts: []part{{Text: turn.Text}}})
	}
	req.Contents = append(req.Contents, content{Role: "user", Parts: []part{{Text: message}}})

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("genai: encode request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		reply, retryable, err := c.doGenerate(ctx, body)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}

func (c *Client) doGenerate(ctx context.Context, body []byte) (reply string, retryable bool, err error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("genai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", true, fmt.Errorf("genai: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 500 {
		return "", true, fmt.Errorf("genai: provider returned status %d", res.StatusCode)
	}
	if res.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(res.Body)
		return "", false, fmt.Errorf("genai: provider returned status %d: %s", res.StatusCode, string(bodyBytes))
	}

	var genRes generateResponse
	if err := json.NewDecoder(res.Body).Decode(&genRes); err != nil {
		return "", false, fmt.Errorf("genai: decode response: %w", err)
	}
	if genRes.Error != nil {
		return "", false, fmt.Errorf("genai: provider error %d: %s", genRes.Error.Code, genRes.Error.Message)
	}
	if len(genRes.Candidates) == 0 || len(genRes.Candidates[0].Content.Parts) == 0 {
		return "", false, fmt.Errorf("genai: empty response")
	}

	var sb strings.Builder
	for _, p := range genRes.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), false, nil
}
