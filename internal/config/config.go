package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Log        LogConfig        `mapstructure:"log"`
	LLM        LLMConfig        `mapstructure:"llm"`
	LlamaCpp   LlamaCppConfig   `mapstructure:"llamacpp"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Connector  ConnectorConfig  `mapstructure:"connector"`
	GoogleDocs GoogleDocsConfig `mapstructure:"google_docs"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	Timeout  time.Duration `mapstructure:"timeout"`
	// ContextWindow is informational; the llama.cpp server owns the real limit.
	ContextWindow int `mapstructure:"context_window"`
}

type LlamaCppConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type ConnectorConfig struct {
	Provider string `mapstructure:"provider"`
}

type GoogleDocsConfig struct {
	AccessToken     string `mapstructure:"access_token"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

var defaults = map[string]any{
	"server.port":             8080,
	"server.read_timeout":     "30s",
	"server.write_timeout":    "180s",
	"server.max_upload_bytes": 20 << 20,
	"cors.allowed_origins":    []string{"http://localhost:3000", "http://localhost:8501", "http://localhost"},
	"log.level":               "info",
	"log.format":              "text",
	"llm.provider":            "llamacpp",
	"llm.timeout":             "120s",
	"llm.context_window":      2048,
	"llamacpp.base_url":       "http://localhost:8081/v1",
	"llamacpp.model":          "granite-3.3-2b-instruct",
	"openai.base_url":         "https://api.openai.com/v1",
	"openai.model":            "gpt-4o-mini",
	"gemini.model":            "gemini-2.5-flash",
	"connector.provider":      "none",
}

// envBindings maps config keys to the environment variables that override them.
// The first variable that is set wins.
var envBindings = map[string][]string{
	"server.port":                  {"PORT"},
	"server.read_timeout":          {"SERVER_READ_TIMEOUT"},
	"server.write_timeout":         {"SERVER_WRITE_TIMEOUT"},
	"server.max_upload_bytes":      {"MAX_UPLOAD_BYTES"},
	"cors.allowed_origins":         {"CORS_ALLOWED_ORIGINS"},
	"log.level":                    {"LOG_LEVEL"},
	"log.format":                   {"LOG_FORMAT"},
	"llm.provider":                 {"LLM_PROVIDER"},
	"llm.timeout":                  {"LLM_TIMEOUT"},
	"llm.context_window":           {"LLM_CONTEXT_WINDOW"},
	"llamacpp.base_url":            {"LLAMACPP_BASE_URL"},
	"llamacpp.model":               {"LLAMACPP_MODEL"},
	"openai.api_key":               {"OPENAI_API_KEY"},
	"openai.base_url":              {"OPENAI_BASE_URL"},
	"openai.model":                 {"OPENAI_MODEL"},
	"gemini.api_key":               {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"gemini.model":                 {"GEMINI_MODEL"},
	"connector.provider":           {"CONNECTOR_PROVIDER"},
	"google_docs.access_token":     {"GOOGLE_DOCS_ACCESS_TOKEN"},
	"google_docs.credentials_file": {"GOOGLE_APPLICATION_CREDENTIALS"},
}

// Load reads defaults, then the optional YAML file at configPath, then the
// environment. An empty configPath skips the file.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if strings.TrimSpace(configPath) != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	c.Connector.Provider = strings.ToLower(strings.TrimSpace(c.Connector.Provider))

	// CORS_ALLOWED_ORIGINS arrives as one comma separated string.
	origins := make([]string, 0, len(c.CORS.AllowedOrigins))
	for _, entry := range c.CORS.AllowedOrigins {
		for _, origin := range strings.Split(entry, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}
	c.CORS.AllowedOrigins = origins
}

func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
