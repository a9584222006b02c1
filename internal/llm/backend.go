package llm

import (
	"context"
	"fmt"

	"github.com/Tarunp72/SMART-SDLC/internal/config"
	"github.com/Tarunp72/SMART-SDLC/internal/logging"
)

// Backend is a single text-completion capability. Implementations must be
// safe for concurrent use once constructed.
type Backend interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
	// Task labels logs and metrics only; it never changes the completion.
	Task        string
	Prompt      string
	MaxTokens   int
	Temperature float32
	Stop        []string
}

// Selection records which backend was asked for and which one is serving.
type Selection struct {
	Requested string
	Active    string
	Fallback  bool
}

// NewBackendFromConfig builds the configured backend, falling back to the
// mock backend when it cannot be constructed. The result is instrumented
// with the configured timeout.
func NewBackendFromConfig(cfg *config.Config) (Backend, Selection) {
	requested := cfg.LLM.Provider
	if requested == "" {
		requested = "llamacpp"
	}

	backend, err := newBackend(requested, cfg)
	selection := Selection{Requested: requested}
	if err != nil {
		logging.Component("backend").
			WithError(err).
			WithField("backend", requested).
			Warn("backend unavailable, falling back to mock")
		backend = NewMockBackend()
		selection.Fallback = true
	}
	selection.Active = backend.Name()

	return Instrument(backend, cfg.LLM.Timeout), selection
}

func newBackend(name string, cfg *config.Config) (Backend, error) {
	switch name {
	case "llamacpp":
		return NewLlamaCppBackend(cfg.LlamaCpp)
	case "openai":
		return NewOpenAIBackend(cfg.OpenAI)
	case "gemini":
		return NewGeminiBackend(context.Background(), cfg.Gemini)
	case "mock":
		return NewMockBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}
