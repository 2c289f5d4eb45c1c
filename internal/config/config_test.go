package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("TALLY_TEST_DIR", "/data")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty stays empty", input: "", want: ""},
		{name: "tilde prefix", input: "~/tally/tally.db", want: filepath.Join(home, "tally/tally.db")},
		{name: "bare tilde", input: "~", want: home},
		{name: "env var", input: "$TALLY_TEST_DIR/tally.db", want: "/data/tally.db"},
		{name: "plain path untouched", input: "/var/lib/tally.db", want: "/var/lib/tally.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestLoadLLMConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("defaults to gemini with env key", func(t *testing.T) {
		viper.Reset()
		t.Setenv("GEMINI_API_KEY", "test-key")

		cfg, err := LoadLLMConfig()
		require.NoError(t, err)
		assert.Equal(t, "gemini", cfg.Provider)
		assert.Equal(t, "test-key", cfg.APIKey)
		assert.Equal(t, 3, cfg.MaxRetries)
		assert.Equal(t, 1000, cfg.RateLimit)
	})

	t.Run("missing key fails", func(t *testing.T) {
		viper.Reset()
		t.Setenv("GEMINI_API_KEY", "")

		_, err := LoadLLMConfig()
		assert.Error(t, err)
	})

	t.Run("unknown provider fails", func(t *testing.T) {
		viper.Reset()
		viper.Set("llm.provider", "mystery")

		_, err := LoadLLMConfig()
		assert.Error(t, err)
	})

	t.Run("config key beats environment", func(t *testing.T) {
		viper.Reset()
		viper.Set("llm.provider", "openai")
		viper.Set("llm.openai_api_key", "from-config")
		t.Setenv("OPENAI_API_KEY", "from-env")

		cfg, err := LoadLLMConfig()
		require.NoError(t, err)
		assert.Equal(t, "from-config", cfg.APIKey)
	})
}

func TestUserID(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Reset()
	assert.Equal(t, DefaultUser, UserID())

	viper.Set("user", "alice")
	assert.Equal(t, "alice", UserID())
}
