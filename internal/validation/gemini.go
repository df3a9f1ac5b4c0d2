package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/lukman83/pricecompare/internal/models"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// contentGenerator is the slice of the genai client this package needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini classifies offers with a Gemini model using a structured JSON reply.
type Gemini struct {
	models contentGenerator
	model  string
}

// NewGemini returns nil, nil when apiKey is empty.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{models: client.Models, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

var verdictSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"idx":    {Type: genai.TypeInteger},
			"valid":  {Type: genai.TypeBoolean},
			"reason": {Type: genai.TypeString},
		},
		Required: []string{"idx", "valid"},
	},
}

func (g *Gemini) Validate(ctx context.Context, query string, items []models.ValidationItem) (map[int]models.Verdict, error) {
	if len(items) == 0 {
		return map[int]models.Verdict{}, nil
	}

	temp := float32(0.1)
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(query, items)), &genai.GenerateContentConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema:   verdictSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, errors.New("gemini: empty response")
	}
	return parseVerdicts(text, len(items))
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
