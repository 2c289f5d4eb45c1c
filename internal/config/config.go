// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/llm"
)

// DefaultDBPath is where the SQLite database lives unless configured.
const DefaultDBPath = "$HOME/.local/share/tally/tally.db"

// DefaultUser is the user ID used when none is configured. The CLI is
// single-user by default but every record is still keyed by user.
const DefaultUser = "default"

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DBPath resolves the database path from configuration.
func DBPath() string {
	path := viper.GetString("database.path")
	if path == "" {
		path = DefaultDBPath
	}
	return ExpandPath(path)
}

// UserID resolves the acting user from configuration.
func UserID() string {
	if user := viper.GetString("user"); user != "" {
		return user
	}
	return DefaultUser
}

// LoadLLMConfig reads LLM settings from Viper and environment variables.
// Gemini is the default provider; API keys fall back to the conventional
// environment variable for each provider.
func LoadLLMConfig() (llm.Config, error) {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = "gemini"
	}

	config := llm.Config{
		Provider:    provider,
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		MaxRetries:  viper.GetInt("llm.max_retries"),
		RetryDelay:  viper.GetDuration("llm.retry_delay"),
		CacheTTL:    viper.GetDuration("llm.cache_ttl"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
	}

	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = time.Second
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = 24 * time.Hour
	}
	if config.RateLimit == 0 {
		config.RateLimit = 1000 // requests per minute
	}

	var configKey, envVar string
	switch provider {
	case "gemini":
		configKey, envVar = "llm.gemini_api_key", "GEMINI_API_KEY"
	case "openai":
		configKey, envVar = "llm.openai_api_key", "OPENAI_API_KEY"
	case "anthropic":
		configKey, envVar = "llm.anthropic_api_key", "ANTHROPIC_API_KEY"
	default:
		return llm.Config{}, fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, provider)
	}

	apiKey := viper.GetString(configKey)
	if apiKey == "" {
		apiKey = os.Getenv(envVar)
	}
	if apiKey == "" {
		return llm.Config{}, fmt.Errorf("%w: %s API key not found in config or %s environment variable", common.ErrMissingConfig, provider, envVar)
	}
	config.APIKey = apiKey

	return config, nil
}
