package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Tarunp72/SMART-SDLC/internal/config"
	"google.golang.org/genai"
)

type GeminiBackend struct {
	model  string
	client *genai.Client
}

func NewGeminiBackend(ctx context.Context, cfg config.GeminiConfig) (*GeminiBackend, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY (or GOOGLE_API_KEY) is required")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	return &GeminiBackend{
		model:  model,
		client: client,
	}, nil
}

func (g *GeminiBackend) Name() string {
	return "gemini"
}

func (g *GeminiBackend) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	response, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(req.Prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(req.Temperature),
			MaxOutputTokens: int32(req.MaxTokens),
			StopSequences:   req.Stop,
		},
	)
	if err != nil {
		return "", err
	}
	if len(response.Candidates) == 0 {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(response.Text()), nil
}
