package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type commandFunc func(ctx context.Context, client *apiClient, stdout io.Writer, stderr io.Writer, args []string) int

var commands = map[string]commandFunc{
	"health": func(ctx context.Context, client *apiClient, stdout io.Writer, _ io.Writer, _ []string) int {
		return runRequest(ctx, client, stdout, http.MethodGet, "/api/health", nil)
	},
	"capabilities": func(ctx context.Context, client *apiClient, stdout io.Writer, _ io.Writer, _ []string) int {
		return runRequest(ctx, client, stdout, http.MethodGet, "/api/capabilities", nil)
	},
	"analyze":     runAnalyze,
	"analyze-doc": runAnalyzeDocument,
	"design":      runDesign,
	"code":        runCode,
	"explain":     codeTask("explain", "/api/explain-code"),
	"tests":       codeTask("tests", "/api/generate-tests"),
	"fix":         codeTask("fix", "/api/fix-bug"),
	"chat":        runChat,
	"export":      runExport,
}

func Run(args []string, stdout io.Writer, stderr io.Writer) int {
	root := flag.NewFlagSet("smartsdlc", flag.ContinueOnError)
	root.SetOutput(stderr)

	baseURL := root.String("base-url", envOrDefault("SMARTSDLC_BASE_URL", "http://localhost:8080"), "SMART-SDLC API base URL")
	timeout := root.Duration("timeout", 180*time.Second, "HTTP timeout; local models can be slow")

	if err := root.Parse(args); err != nil {
		writeCLIError(stdout, "invalid_arguments", err.Error(), 0)
		return 2
	}

	remaining := root.Args()
	if len(remaining) == 0 {
		writeCLIError(stdout, "missing_command", usageText(), 0)
		return 2
	}

	command, ok := commands[remaining[0]]
	if !ok {
		writeCLIError(stdout, "unknown_command", fmt.Sprintf("unknown command %q\n%s", remaining[0], usageText()), 0)
		return 2
	}

	client := &apiClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(*baseURL), "/"),
		httpClient: &http.Client{Timeout: *timeout},
	}
	return command(context.Background(), client, stdout, stderr, remaining[1:])
}

func runAnalyze(ctx context.Context, client *apiClient, stdout io.Writer, stderr io.Writer, args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)

	filePath := fs.String("file", "", "Path to the requirements PDF")
	prompt := fs.String("prompt", "", "Additional instructions")
	if err := fs.Parse(args); err != nil {
		writeCLIError(stdout, "invalid_arguments", err.Error(), 0)
		return 2
	}
	if strings.TrimSpace(*filePath) == "" {
		writeCLIError(stdout, "missing_file", "analyze requires -file", 0)
		return 2
	}

	fields := map[string]string{}
	if strings.TrimSpace(*prompt) != "" {
		fields["prompt"] = *prompt
	}
	responseBody, err := client.uploadFile(ctx, "/api/analyze-requirements", "file", *filePath, fields)
	return writeResponse(stdout, responseBody, err)
}

func runAnalyzeDocument(ctx context.Context, client *apiClient, stdout io.Writer, stderr io.Writer, args []string) int {
	fs := flag.NewFlagSet("analyze-doc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	documentID := fs.String("document-id", "", "Connector document ID")
	prompt := fs.String("prompt", "", "Additional instructions")
	if err := fs.Parse(args); err != nil {
		writeCLIError(stdout, "invalid_arguments", err.Error(), 0)
		return 2
	}
	if strings.TrimSpace(*documentID) == "" {
		writeCLIError(stdout, "missing_document_id", "analyze-doc requires -document-id", 0)
		return 2
	}

	payload := map[string]string{
		"document_id": strings.TrimSpace(*documentID),
		"prompt":      *prompt,
	}
	return runRequest(ctx, client, stdout, http.MethodPost, "/api/analyze-requirements/import", payload)
}

func runDesign(ctx context.Context, client *apiClient, stdout io.Writer, stderr io.Writer, args []string) int {
	fs := flag.NewFlagSet("design", flag.ContinueOnError)
	fs.SetOutput(stderr)

	prompt := fs.String("prompt", "", "Project description")
	designType := fs.String("type", "Design Document", "Design type, e.g. \"UML Diagram (text)\" or \"Summary\"")
	if err := fs.Parse(args); err != nil {
		writeCLIError(stdout, "invalid_arguments", err.Error(), 0)
		return 2
	}
	if strings.TrimSpace(*prompt) == "" {
		writeCLIError(stdout, "missing_prompt", "design requires -prompt", 0)
		return 2
	}

	payload := map[string]string{
		"prompt":      *prompt,
		"design_type": *designType,
	}
	return runRequest(ctx, client, stdout, http.MethodPost, "/api/generate-design", payload)
}

func runCode(ctx context.Context, client *apiClient, stdout io.Writer, stderr io.Writer, args []string) int {
	fs := flag.NewFlagSet("code", flag.ContinueOnError)
	fs.SetOutput(stderr)

	prompt := fs.String("prompt", "", "Requirement to implement")
	language := fs.String("language", "Python", "Target language")
	if err := fs.Parse(args); err != nil {
		writeCLIError(stdout, "invalid_arguments", err.Error(), 0)
		return 2
	}
	if strings.TrimSpace(*prompt) == "" {
		writeCLIError(stdout, "missing_prompt", "code requires -prompt", 0)
		return 2
	}

	payload := map[string]string{
		"prompt":   *prompt,
		"language": *language,
	}
	return runRequest(ctx, client, stdout, http.MethodPost, "/api/generate-code", payload)
}

// codeTask builds the explain, tests and fix commands, which share one request shape.
func codeTask(name string, path string) commandFunc {
	return func(ctx context.Context, client *apiClient, stdout io.Writer, stderr io.Writer, args []string) int {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		fs.SetOutput(stderr)

		code := fs.String("code", "", "Code snippet")
		filePath := fs.String("file", "", "Read the code from a file instead of -code")
		language := fs.String("language", "Python", "Language of the code")
		if err := fs.Parse(args); err != nil {
			writeCLIError(stdout, "invalid_arguments", err.Error(), 0)
			return 2
		}

		source := *code
		if strings.TrimSpace(*filePath) != "" {
			data, err := os.ReadFile(*filePath)
			if err != nil {
				writeCLIError(stdout, "invalid_arguments", err.Error(), 0)
				return 2
			}
			source = string(data)
		}
		if strings.TrimSpace(source) == "" {
			writeCLIError(stdout, "missing_code", name+" requires -code or -file", 0)
			return 2
		}

		payload := map[string]string{
			"code":     source,
			"language": *language,
		}
		return runRequest(ctx, client, stdout, http.MethodPost, path, payload)
	}
}

func runExport(ctx context.Context, client *apiClient, stdout io.Writer, stderr io.Writer, args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)

	documentID := fs.String("document-id", "", "Connector document ID")
	content := fs.String("content", "", "Content to export")
	filePath := fs.String("file", "", "Read the content from a file instead of -content")
	mode := fs.String("mode", "replace", "replace or append")
	if err := fs.Parse(args); err != nil {
		writeCLIError(stdout, "invalid_arguments", err.Error(), 0)
		return 2
	}
	if strings.TrimSpace(*documentID) == "" {
		writeCLIError(stdout, "missing_document_id", "export requires -document-id", 0)
		return 2
	}

	text := *content
	if strings.TrimSpace(*filePath) != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			writeCLIError(stdout, "invalid_arguments", err.Error(), 0)
			return 2
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		writeCLIError(stdout, "missing_content", "export requires -content or -file", 0)
		return 2
	}

	payload := map[string]string{
		"document_id": strings.TrimSpace(*documentID),
		"content":     text,
		"mode":        *mode,
	}
	return runRequest(ctx, client, stdout, http.MethodPost, "/api/connectors/export", payload)
}

func runRequest(ctx context.Context, client *apiClient, stdout io.Writer, method string, path string, payload any) int {
	responseBody, err := client.requestJSON(ctx, method, path, payload)
	return writeResponse(stdout, responseBody, err)
}

func writeResponse(stdout io.Writer, responseBody []byte, err error) int {
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) {
			writeCLIError(stdout, apiErr.Code, apiErr.Message, apiErr.Status)
			return 1
		}
		writeCLIError(stdout, "request_failed", err.Error(), 0)
		return 1
	}

	if err := writeStructuredJSON(stdout, responseBody); err != nil {
		writeCLIError(stdout, "invalid_response", err.Error(), 0)
		return 1
	}
	return 0
}

func writeStructuredJSON(output io.Writer, body []byte) error {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return err
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func writeCLIError(output io.Writer, code string, message string, status int) {
	payload := map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	}
	if status > 0 {
		payload["error"].(map[string]any)["status"] = status
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(payload)
}

func usageText() string {
	return strings.Join([]string{
		"usage: smartsdlc [global flags] <command> [command flags]",
		"commands: health, capabilities, analyze, analyze-doc, design, code, explain, tests, fix, chat, export",
		"global flags: -base-url -timeout",
	}, "\n")
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
