package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunHealthSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/health" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	var stdout strings.Builder
	var stderr strings.Builder

	exitCode := Run([]string{"-base-url", server.URL, "health"}, &stdout, &stderr)
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d stdout=%s stderr=%s", exitCode, stdout.String(), stderr.String())
	}

	if !strings.Contains(stdout.String(), `"ok": true`) {
		t.Fatalf("expected health response in output, got %s", stdout.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var stdout strings.Builder
	var stderr strings.Builder

	exitCode := Run([]string{"summarize"}, &stdout, &stderr)
	if exitCode != 2 {
		t.Fatalf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(stdout.String(), `"code": "unknown_command"`) {
		t.Fatalf("expected unknown_command error, got %s", stdout.String())
	}
}

func TestRunDesignMissingPrompt(t *testing.T) {
	var stdout strings.Builder
	var stderr strings.Builder

	exitCode := Run([]string{"design"}, &stdout, &stderr)
	if exitCode != 2 {
		t.Fatalf("expected exit code 2, got %d", exitCode)
	}

	if !strings.Contains(stdout.String(), `"code": "missing_prompt"`) {
		t.Fatalf("expected missing_prompt error, got %s", stdout.String())
	}
}

func TestRunDesignSendsPayload(t *testing.T) {
	var seen map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/generate-design" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&seen)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"design":"Three tiers."}`))
	}))
	defer server.Close()

	var stdout strings.Builder
	var stderr strings.Builder

	exitCode := Run([]string{
		"-base-url", server.URL,
		"design",
		"-prompt", "An inventory tracker",
		"-type", "Summary",
	}, &stdout, &stderr)
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d stdout=%s", exitCode, stdout.String())
	}
	if seen["prompt"] != "An inventory tracker" || seen["design_type"] != "Summary" {
		t.Fatalf("unexpected payload: %v", seen)
	}
	if !strings.Contains(stdout.String(), `"design": "Three tiers."`) {
		t.Fatalf("expected design in output, got %s", stdout.String())
	}
}

func TestRunFixReadsCodeFromFile(t *testing.T) {
	var seen map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/fix-bug" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&seen)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fixed_code":"print(x)","explanation":"closed paren"}`))
	}))
	defer server.Close()

	codePath := filepath.Join(t.TempDir(), "buggy.py")
	if err := os.WriteFile(codePath, []byte("print(x"), 0o600); err != nil {
		t.Fatalf("write code: %v", err)
	}

	var stdout strings.Builder
	var stderr strings.Builder

	exitCode := Run([]string{"-base-url", server.URL, "fix", "-file", codePath, "-language", "python"}, &stdout, &stderr)
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d stdout=%s", exitCode, stdout.String())
	}
	if seen["code"] != "print(x" || seen["language"] != "python" {
		t.Fatalf("unexpected payload: %v", seen)
	}
}

func TestRunExplainMissingCode(t *testing.T) {
	var stdout strings.Builder
	var stderr strings.Builder

	exitCode := Run([]string{"explain", "-language", "Go"}, &stdout, &stderr)
	if exitCode != 2 {
		t.Fatalf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(stdout.String(), `"code": "missing_code"`) {
		t.Fatalf("expected missing_code error, got %s", stdout.String())
	}
}

func TestRunAnalyzeUploadsFile(t *testing.T) {
	var seenFile string
	var seenPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analyze-requirements" {
			http.NotFound(w, r)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(file)
		seenFile = string(data)
		seenPrompt = r.FormValue("prompt")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"requirements":["Users can log in"]}`))
	}))
	defer server.Close()

	pdfPath := filepath.Join(t.TempDir(), "srs.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4"), 0o600); err != nil {
		t.Fatalf("write pdf: %v", err)
	}

	var stdout strings.Builder
	var stderr strings.Builder

	exitCode := Run([]string{"-base-url", server.URL, "analyze", "-file", pdfPath, "-prompt", "security only"}, &stdout, &stderr)
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d stdout=%s", exitCode, stdout.String())
	}
	if seenFile != "%PDF-1.4" || seenPrompt != "security only" {
		t.Fatalf("unexpected upload: file=%q prompt=%q", seenFile, seenPrompt)
	}
	if !strings.Contains(stdout.String(), "Users can log in") {
		t.Fatalf("expected requirements in output, got %s", stdout.String())
	}
}

func TestRunChatAppendsTranscript(t *testing.T) {
	var seenHistory []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Message string   `json:"message"`
			History []string `json:"history"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		seenHistory = body.History
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"Goodbye!"}`))
	}))
	defer server.Close()

	historyPath := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(historyPath, []byte(`["User: hi","AI: hello"]`), 0o600); err != nil {
		t.Fatalf("write history: %v", err)
	}

	var stdout strings.Builder
	var stderr strings.Builder

	exitCode := Run([]string{"-base-url", server.URL, "chat", "-message", "bye", "-history-file", historyPath}, &stdout, &stderr)
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d stdout=%s", exitCode, stdout.String())
	}
	if len(seenHistory) != 2 || seenHistory[1] != "AI: hello" {
		t.Fatalf("expected stored history to be sent, got %q", seenHistory)
	}

	data, err := os.ReadFile(historyPath)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	var updated []string
	if err := json.Unmarshal(data, &updated); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	want := []string{"User: hi", "AI: hello", "User: bye", "AI: Goodbye!"}
	if strings.Join(updated, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, updated)
	}
}

func TestRunChatFailureLeavesTranscriptUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":{"code":"backend_error","message":"model backend llamacpp failed","requestId":"req-1"}}`))
	}))
	defer server.Close()

	historyPath := filepath.Join(t.TempDir(), "history.json")

	var stdout strings.Builder
	var stderr strings.Builder

	exitCode := Run([]string{"-base-url", server.URL, "chat", "-message", "hi", "-history-file", historyPath}, &stdout, &stderr)
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(stdout.String(), `"code": "backend_error"`) || !strings.Contains(stdout.String(), `"status": 502`) {
		t.Fatalf("expected backend_error with status, got %s", stdout.String())
	}
	if _, err := os.Stat(historyPath); !os.IsNotExist(err) {
		t.Fatalf("expected no transcript to be written, got %v", err)
	}
}

func TestRunExportAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/connectors/export" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"connector_unavailable","message":"no connector is configured","requestId":"req-1"}}`))
	}))
	defer server.Close()

	var stdout strings.Builder
	var stderr strings.Builder

	exitCode := Run([]string{
		"-base-url", server.URL,
		"export",
		"-document-id", "doc-1",
		"-content", "design text",
	}, &stdout, &stderr)
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(stdout.String(), `"code": "connector_unavailable"`) {
		t.Fatalf("expected connector_unavailable error, got %s", stdout.String())
	}
	if !strings.Contains(stdout.String(), `"status": 400`) {
		t.Fatalf("expected status 400 in error output, got %s", stdout.String())
	}
}
