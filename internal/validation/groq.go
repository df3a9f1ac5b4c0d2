package validation

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lukman83/pricecompare/internal/httputil"
	"github.com/lukman83/pricecompare/internal/models"
)

const (
	groqEndpoint     = "https://api.groq.com/openai/v1/chat/completions"
	DefaultGroqModel = "llama-3.3-70b-versatile"
)

// Groq classifies offers with a chat-completions model hosted on Groq.
type Groq struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

// NewGroq returns nil when apiKey is empty.
func NewGroq(client *http.Client, apiKey, model string) *Groq {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = DefaultGroqModel
	}
	return &Groq{client: client, apiKey: apiKey, model: model, baseURL: groqEndpoint}
}

func (g *Groq) Name() string { return "groq" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (g *Groq) Validate(ctx context.Context, query string, items []models.ValidationItem) (map[int]models.Verdict, error) {
	if len(items) == 0 {
		return map[int]models.Verdict{}, nil
	}

	req := chatRequest{
		Model:       g.model,
		Messages:    []chatMessage{{Role: "user", Content: buildPrompt(query, items)}},
		Temperature: 0.1,
		MaxTokens:   1000,
	}

	var resp chatResponse
	if err := httputil.PostJSON(ctx, g.client, g.baseURL, httputil.BearerHeaders(g.apiKey), req, &resp); err != nil {
		return nil, fmt.Errorf("groq: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("groq: empty choices")
	}
	return parseVerdicts(resp.Choices[0].Message.Content, len(items))
}
