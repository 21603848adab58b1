package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ASKGRACE_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("VITE_OPENAI_API_KEY", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.ListenPort)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "https://api.openai.com/v1", cfg.CompletionBaseURL)
	assert.Equal(t, "gpt-4", cfg.CompletionModel)
	assert.Equal(t, "https://bible-api.com", cfg.VerseAPIURL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.AllowedCIDRS)
	assert.Equal(t, int64(8192), cfg.MaxQuestionBytes)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Empty(t, cfg.CompletionAPIKey, "a missing credential is not an error")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ASKGRACE_ENV_FILE", "")
	t.Setenv("ASKGRACE_COMPLETION_BASE_URL", "http://localhost:9999/v1/")
	t.Setenv("ASKGRACE_VERSE_API_URL", "http://verses.local/")
	t.Setenv("ASKGRACE_RATE_LIMIT_BURST", "2")
	t.Setenv("ASKGRACE_ALLOWED_CIDRS", "10.0.0.0/8, 127.0.0.1")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("VITE_OPENAI_API_KEY", "sk-vite")

	cfg := Load()

	assert.Equal(t, "http://localhost:9999/v1", cfg.CompletionBaseURL, "trailing slash trimmed")
	assert.Equal(t, "http://verses.local", cfg.VerseAPIURL)
	assert.Equal(t, 2, cfg.RateLimitBurst)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.AllowedCIDRS)
	assert.Equal(t, "sk-vite", cfg.CompletionAPIKey, "falls back to the browser-era variable")
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "ASKGRACE_TEST_DOTENV_ONLY=from-file\nASKGRACE_TEST_DOTENV_BOTH=from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("ASKGRACE_TEST_DOTENV_BOTH", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("ASKGRACE_TEST_DOTENV_ONLY") })

	loadDotEnv(path)

	assert.Equal(t, "from-file", os.Getenv("ASKGRACE_TEST_DOTENV_ONLY"))
	assert.Equal(t, "from-env", os.Getenv("ASKGRACE_TEST_DOTENV_BOTH"))
}

func TestFirstEnv(t *testing.T) {
	t.Setenv("TEST_FIRST_A", "  ")
	t.Setenv("TEST_FIRST_B", "b")

	assert.Equal(t, "b", firstEnv("TEST_FIRST_A", "TEST_FIRST_B"))
	assert.Equal(t, "", firstEnv("TEST_FIRST_MISSING"))
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single value", input: "value1", expected: []string{"value1"}},
		{name: "multiple values", input: "value1, value2 ,value3", expected: []string{"value1", "value2", "value3"}},
		{name: "quoted values", input: `"https://a.example", 'https://b.example'`, expected: []string{"https://a.example", "https://b.example"}},
		{name: "blank entries dropped", input: "a,, ,b", expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitAndTrim(tt.input))
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", key: "TEST_DURATION", value: "5s", def: time.Second, expected: 5 * time.Second},
		{name: "invalid duration uses default", key: "TEST_DURATION_INVALID", value: "invalid", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "missing variable uses default", key: "TEST_DURATION_MISSING", value: "", def: 15 * time.Second, expected: 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}
			assert.Equal(t, tt.expected, mustDuration(tt.key, tt.def))
		})
	}
}

func TestMustBoolAndInt(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BOOL_INVALID", "maybe")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_INVALID", "forty-two")

	assert.True(t, mustBool("TEST_BOOL", false))
	assert.True(t, mustBool("TEST_BOOL_INVALID", true))
	assert.False(t, mustBool("TEST_BOOL_MISSING", false))
	assert.Equal(t, 42, getenvInt("TEST_INT", 1))
	assert.Equal(t, 7, getenvInt("TEST_INT_INVALID", 7))
}
