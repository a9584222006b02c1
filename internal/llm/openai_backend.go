package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/Tarunp72/SMART-SDLC/internal/config"
	"github.com/sashabaranov/go-openai"
)

func newOpenAIClient(apiKey string, baseURL string) *openai.Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
		clientConfig.BaseURL = strings.TrimRight(trimmed, "/")
	}
	return openai.NewClientWithConfig(clientConfig)
}

// LlamaCppBackend talks to a llama.cpp server (or any server exposing the
// OpenAI-compatible /v1/completions endpoint) with raw prompts.
type LlamaCppBackend struct {
	model  string
	client *openai.Client
}

func NewLlamaCppBackend(cfg config.LlamaCppConfig) (*LlamaCppBackend, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("llamacpp base_url is required")
	}
	return &LlamaCppBackend{
		model:  cfg.Model,
		client: newOpenAIClient("", cfg.BaseURL),
	}, nil
}

func (l *LlamaCppBackend) Name() string {
	return "llamacpp"
}

func (l *LlamaCppBackend) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	response, err := l.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       l.model,
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stop:        req.Stop,
	})
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(response.Choices[0].Text), nil
}

// OpenAIBackend sends each prompt as a single user chat message.
type OpenAIBackend struct {
	model  string
	client *openai.Client
}

func NewOpenAIBackend(cfg config.OpenAIConfig) (*OpenAIBackend, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is required")
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIBackend{
		model:  model,
		client: newOpenAIClient(apiKey, cfg.BaseURL),
	}, nil
}

func (o *OpenAIBackend) Name() string {
	return "openai"
}

func (o *OpenAIBackend) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	response, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stop:        req.Stop,
	})
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
