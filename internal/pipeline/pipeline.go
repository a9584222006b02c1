package pipeline

import (
	"context"
	"strings"

	"github.com/Tarunp72/SMART-SDLC/internal/domain"
	"github.com/Tarunp72/SMART-SDLC/internal/llm"
)

type RequirementsInput struct {
	DocumentText string
	// Instructions is optional free text appended after the document.
	Instructions string
}

type DesignInput struct {
	Prompt     string
	DesignType string
}

type CodeGenerationInput struct {
	Prompt   string
	Language domain.Language
}

// CodeInput carries a snippet for explain, test and fix tasks.
type CodeInput struct {
	Code     string
	Language domain.Language
}

type ChatInput struct {
	Message string
	// History is the caller's transcript; it may be empty and is never modified.
	History []string
}

// Pipeline turns one task request into exactly one backend completion.
// It holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	backend llm.Backend
}

func New(backend llm.Backend) *Pipeline {
	return &Pipeline{backend: backend}
}

func (p *Pipeline) BackendName() string {
	return p.backend.Name()
}

func (p *Pipeline) AnalyzeRequirements(ctx context.Context, in RequirementsInput) (domain.RequirementAnalysisResponse, error) {
	task := domain.TaskAnalyzeRequirements
	if err := requireText(task, field{"document text", in.DocumentText}); err != nil {
		return domain.RequirementAnalysisResponse{}, err
	}

	raw, err := p.complete(ctx, task, requirementsPrompt(in.DocumentText, in.Instructions))
	if err != nil {
		return domain.RequirementAnalysisResponse{}, err
	}
	return domain.RequirementAnalysisResponse{Requirements: splitRequirements(raw)}, nil
}

func (p *Pipeline) GenerateDesign(ctx context.Context, in DesignInput) (domain.DesignResponse, error) {
	task := domain.TaskGenerateDesign
	if err := requireText(task, field{"prompt", in.Prompt}, field{"design_type", in.DesignType}); err != nil {
		return domain.DesignResponse{}, err
	}

	raw, err := p.complete(ctx, task, designPrompt(strings.TrimSpace(in.Prompt), strings.TrimSpace(in.DesignType)))
	if err != nil {
		return domain.DesignResponse{}, err
	}
	return domain.DesignResponse{Design: strings.TrimSpace(raw)}, nil
}

func (p *Pipeline) GenerateCode(ctx context.Context, in CodeGenerationInput) (domain.CodeGenerationResponse, error) {
	task := domain.TaskGenerateCode
	if err := requireText(task, field{"prompt", in.Prompt}, field{"language", string(in.Language)}); err != nil {
		return domain.CodeGenerationResponse{}, err
	}

	raw, err := p.complete(ctx, task, codePrompt(strings.TrimSpace(in.Prompt), in.Language))
	if err != nil {
		return domain.CodeGenerationResponse{}, err
	}
	return domain.CodeGenerationResponse{Code: strings.TrimSpace(raw)}, nil
}

func (p *Pipeline) ExplainCode(ctx context.Context, in CodeInput) (domain.CodeExplanationResponse, error) {
	task := domain.TaskExplainCode
	if err := requireCode(task, in); err != nil {
		return domain.CodeExplanationResponse{}, err
	}

	raw, err := p.complete(ctx, task, explainPrompt(strings.TrimSpace(in.Code), in.Language))
	if err != nil {
		return domain.CodeExplanationResponse{}, err
	}
	return domain.CodeExplanationResponse{Explanation: strings.TrimSpace(raw)}, nil
}

func (p *Pipeline) GenerateTests(ctx context.Context, in CodeInput) (domain.TestGenerationResponse, error) {
	task := domain.TaskGenerateTests
	if err := requireCode(task, in); err != nil {
		return domain.TestGenerationResponse{}, err
	}

	raw, err := p.complete(ctx, task, testsPrompt(strings.TrimSpace(in.Code), in.Language))
	if err != nil {
		return domain.TestGenerationResponse{}, err
	}
	return domain.TestGenerationResponse{TestCases: strings.TrimSpace(raw)}, nil
}

func (p *Pipeline) FixBug(ctx context.Context, in CodeInput) (domain.BugFixResponse, error) {
	task := domain.TaskFixBug
	if err := requireCode(task, in); err != nil {
		return domain.BugFixResponse{}, err
	}

	raw, err := p.complete(ctx, task, fixPrompt(strings.TrimSpace(in.Code), in.Language))
	if err != nil {
		return domain.BugFixResponse{}, err
	}
	fixed, explanation := splitBugFix(raw)
	return domain.BugFixResponse{FixedCode: fixed, Explanation: explanation}, nil
}

func (p *Pipeline) Chat(ctx context.Context, in ChatInput) (domain.ChatResponse, error) {
	task := domain.TaskChat
	if err := requireText(task, field{"message", in.Message}); err != nil {
		return domain.ChatResponse{}, err
	}

	raw, err := p.complete(ctx, task, chatPrompt(in.Message, in.History))
	if err != nil {
		return domain.ChatResponse{}, err
	}
	return domain.ChatResponse{Response: strings.TrimSpace(raw)}, nil
}

func requireCode(task domain.TaskKind, in CodeInput) error {
	return requireText(task, field{"code", in.Code}, field{"language", string(in.Language)})
}

func (p *Pipeline) complete(ctx context.Context, task domain.TaskKind, prompt string) (string, error) {
	params, _ := ParamsFor(task)
	raw, err := p.backend.Complete(ctx, llm.CompletionRequest{
		Task:        string(task),
		Prompt:      prompt,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
		Stop:        params.Stop,
	})
	if err != nil {
		return "", &BackendError{Task: task, Backend: p.backend.Name(), Err: err}
	}
	return raw, nil
}
