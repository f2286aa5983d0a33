// Package config loads jotbot configuration from a JSON5 file with
// environment variable overrides for secrets and endpoints.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/titanous/json5"
)

// Config is the root configuration.
type Config struct {
	Telegram TelegramConfig `json:"telegram"`
	Database DatabaseConfig `json:"database"`
	Ollama   OllamaConfig   `json:"ollama"`
	Whisper  WhisperConfig  `json:"whisper"`
	Log      LogConfig      `json:"log"`
}

// TelegramConfig holds bot credentials.
type TelegramConfig struct {
	Token string `json:"token"`
}

// DatabaseConfig holds the Postgres connection string.
type DatabaseConfig struct {
	PostgresDSN string `json:"postgresDsn"`
}

// OllamaConfig holds the inference endpoint settings.
type OllamaConfig struct {
	BaseURL string `json:"baseUrl"`
	Model   string `json:"model"`
}

// WhisperConfig holds the optional transcription endpoint.
// An empty URL disables /summarize_meeting transcription.
type WhisperConfig struct {
	URL string `json:"url"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level string `json:"level"` // debug, info, warn, error
}

// DefaultPath returns the default config file location (~/.jotbot/config.json5),
// overridable with JOTBOT_CONFIG.
func DefaultPath() string {
	if p := os.Getenv("JOTBOT_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.json5"
	}
	return filepath.Join(home, ".jotbot", "config.json5")
}

// Load reads the config file at path, applies defaults and environment
// overrides, and validates the result. A missing file is not an error;
// env-only configuration is supported.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json5.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// env-only
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.Database.PostgresDSN = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		c.Ollama.BaseURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		c.Ollama.Model = v
	}
	if v := os.Getenv("WHISPER_URL"); v != "" {
		c.Whisper.URL = v
	}
	if v := os.Getenv("JOTBOT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) applyDefaults() {
	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = "http://localhost:11434"
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = "deepseek-r1:1.5b"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	var missing []string
	if c.Telegram.Token == "" {
		missing = append(missing, "telegram.token (TELEGRAM_BOT_TOKEN)")
	}
	if c.Database.PostgresDSN == "" {
		missing = append(missing, "database.postgresDsn (POSTGRES_DSN)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config missing: %s", strings.Join(missing, ", "))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

// Redacted returns a copy safe for display: secrets are masked.
func (c *Config) Redacted() Config {
	out := *c
	out.Telegram.Token = maskSecret(c.Telegram.Token)
	out.Database.PostgresDSN = maskSecret(c.Database.PostgresDSN)
	return out
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) > 8 {
		return s[:4] + "****" + s[len(s)-4:]
	}
	return "****"
}
