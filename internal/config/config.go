// Package config loads runtime configuration from environment variables with
// sensible defaults, using the SPEND_ prefix.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"spendscribe/internal/logging"
)

// Config holds every runtime setting.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Mongo      MongoConfig
	AI         AIConfig
	Categories CategoriesConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string
}

// LogConfig configures log output.
type LogConfig struct {
	Level  string
	Format string
}

// MongoConfig configures the transaction store.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// AIConfig configures the hosted-AI accessor. When Enabled is false the
// service runs fully offline.
type AIConfig struct {
	Enabled         bool
	Provider        string
	Model           string
	TranscribeModel string
	APIKey          string `yaml:"-"`
}

// CategoriesConfig points at the optional keyword override file.
type CategoriesConfig struct {
	File string
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SPEND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// An optional config.yaml next to the binary; the environment still wins.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "expense-tracker")
	v.SetDefault("mongo.collection", "expenses")
	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.transcribe_model", "whisper-1")
	v.SetDefault("categories.file", "")

	// The API key is also picked up from the conventional provider variables
	// so a plain OPENAI_API_KEY works without the prefix.
	if err := v.BindEnv("ai.api_key", "SPEND_AI_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding API key variables: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr: v.GetString("server.addr"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Mongo: MongoConfig{
			URI:        v.GetString("mongo.uri"),
			Database:   v.GetString("mongo.database"),
			Collection: v.GetString("mongo.collection"),
		},
		AI: AIConfig{
			Enabled:         v.GetBool("ai.enabled"),
			Provider:        v.GetString("ai.provider"),
			Model:           v.GetString("ai.model"),
			TranscribeModel: v.GetString("ai.transcribe_model"),
			APIKey:          v.GetString("ai.api_key"),
		},
		Categories: CategoriesConfig{
			File: v.GetString("categories.file"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.AI.Enabled {
		switch c.AI.Provider {
		case "openai", "gemini":
		default:
			return fmt.Errorf("invalid AI provider %q", c.AI.Provider)
		}
		if c.AI.APIKey == "" {
			return fmt.Errorf("AI is enabled but no API key is set")
		}
	}
	return nil
}

// ConfigureLogging builds the logger the configuration asks for.
func ConfigureLogging(cfg *Config) logging.Logger {
	return logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
}
