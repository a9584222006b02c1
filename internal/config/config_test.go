package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("PORT", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected defaults to load, got %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.LLM.Provider != "llamacpp" {
		t.Fatalf("expected llamacpp provider, got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Timeout != 120*time.Second {
		t.Fatalf("expected 120s timeout, got %s", cfg.LLM.Timeout)
	}
	if cfg.LLM.ContextWindow != 2048 {
		t.Fatalf("expected context window 2048, got %d", cfg.LLM.ContextWindow)
	}
	if cfg.Server.MaxUploadBytes != 20<<20 {
		t.Fatalf("expected 20MiB upload limit, got %d", cfg.Server.MaxUploadBytes)
	}
	if len(cfg.CORS.AllowedOrigins) != 3 {
		t.Fatalf("expected 3 default origins, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", " OpenAI ")
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}
	if cfg.LLM.Provider != "openai" {
		t.Fatalf("expected normalized provider openai, got %q", cfg.LLM.Provider)
	}
	if cfg.Address() != ":9090" {
		t.Fatalf("expected address :9090, got %q", cfg.Address())
	}
	if cfg.LLM.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.LLM.Timeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("expected split origins, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Gemini.APIKey != "google-key" {
		t.Fatalf("expected GOOGLE_API_KEY fallback, got %q", cfg.Gemini.APIKey)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLAMACPP_BASE_URL", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "llm:\n  provider: gemini\nllamacpp:\n  base_url: http://llama:9000/v1\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected yaml config to load, got %v", err)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Fatalf("expected gemini from file, got %q", cfg.LLM.Provider)
	}
	if cfg.LlamaCpp.BaseURL != "http://llama:9000/v1" {
		t.Fatalf("expected base url from file, got %q", cfg.LlamaCpp.BaseURL)
	}
	if cfg.LlamaCpp.Model != "granite-3.3-2b-instruct" {
		t.Fatalf("expected default model to survive, got %q", cfg.LlamaCpp.Model)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing config file to fail")
	}
}

func TestLoadExampleConfig(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load(filepath.Join("..", "..", "configs", "config.example.yaml"))
	if err != nil {
		t.Fatalf("expected example config to load, got %v", err)
	}
	if cfg.LLM.Provider != "llamacpp" || cfg.LLM.ContextWindow != 2048 {
		t.Fatalf("unexpected llm config: %+v", cfg.LLM)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.CORS.AllowedOrigins)
	}
}
