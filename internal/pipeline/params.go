package pipeline

import "github.com/Tarunp72/SMART-SDLC/internal/domain"

// GenerationParams are the sampling settings sent with a completion.
type GenerationParams struct {
	MaxTokens   int
	Temperature float32
	Stop        []string
}

var defaultStopMarkers = []string{"</s>", "User:", "AI:"}

var taskParams = map[domain.TaskKind]struct {
	maxTokens   int
	temperature float32
}{
	domain.TaskAnalyzeRequirements: {maxTokens: 800, temperature: 0.3},
	domain.TaskGenerateDesign:      {maxTokens: 1200, temperature: 0.4},
	domain.TaskGenerateCode:        {maxTokens: 1000, temperature: 0.2},
	domain.TaskExplainCode:         {maxTokens: 800, temperature: 0.3},
	domain.TaskGenerateTests:       {maxTokens: 1000, temperature: 0.2},
	domain.TaskFixBug:              {maxTokens: 700, temperature: 0.2},
	domain.TaskChat:                {maxTokens: 400, temperature: 0.6},
}

// DefaultStopMarkers returns a fresh copy of the stop set shared by every task.
func DefaultStopMarkers() []string {
	return append([]string(nil), defaultStopMarkers...)
}

// ParamsFor returns the fixed generation parameters of a task kind.
func ParamsFor(kind domain.TaskKind) (GenerationParams, bool) {
	entry, ok := taskParams[kind]
	if !ok {
		return GenerationParams{}, false
	}
	return GenerationParams{
		MaxTokens:   entry.maxTokens,
		Temperature: entry.temperature,
		Stop:        DefaultStopMarkers(),
	}, true
}
