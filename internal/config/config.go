package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline applied by the router

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)
	LogFile   string // optional, rotated log file instead of stderr

	CatalogFile string // optional YAML replacing the embedded curated tables

	// Completion provider
	CompletionAPIKey  string        // never validated here, a missing key surfaces as a 401 upstream
	CompletionBaseURL string        // ex: https://api.openai.com/v1
	CompletionModel   string        // ex: gpt-4
	CompletionTimeout time.Duration // transport timeout for one completion call

	// Verse lookup
	VerseAPIURL  string        // ex: https://bible-api.com
	VerseTimeout time.Duration // transport timeout for one lookup

	// /api/answer limits
	MaxQuestionBytes int64
	RateLimitBurst   int
	RateLimitPerMin  int

	AllowedOrigins []string // CORS origins allowed to call the API
	AllowedCIDRS   []string // optional, restrict /readyz and /infra to specific IPs
	TrustProxy     bool     // true => trust X-Forwarded-For headers
}

// Load reads the configuration from the environment. A .env file in the
// working directory (or the one named by ASKGRACE_ENV_FILE) is applied
// first without overriding variables that are already set.
func Load() *Config {
	loadDotEnv(getenv("ASKGRACE_ENV_FILE", ".env"))

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("ASKGRACE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("ASKGRACE_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("ASKGRACE_REQUEST_TIMEOUT", 90*time.Second),

		// Logging
		LogLevel:  getenv("ASKGRACE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("ASKGRACE_PRETTY_LOG", true),
		LogFile:   getenv("ASKGRACE_LOG_FILE", ""),

		CatalogFile: getenv("ASKGRACE_CATALOG_FILE", ""),

		// Completion provider
		CompletionAPIKey:  firstEnv("OPENAI_API_KEY", "VITE_OPENAI_API_KEY"),
		CompletionBaseURL: strings.TrimRight(getenv("ASKGRACE_COMPLETION_BASE_URL", "https://api.openai.com/v1"), "/"),
		CompletionModel:   getenv("ASKGRACE_COMPLETION_MODEL", "gpt-4"),
		CompletionTimeout: mustDuration("ASKGRACE_COMPLETION_TIMEOUT", 60*time.Second),

		// Verse lookup
		VerseAPIURL:  strings.TrimRight(getenv("ASKGRACE_VERSE_API_URL", "https://bible-api.com"), "/"),
		VerseTimeout: mustDuration("ASKGRACE_VERSE_TIMEOUT", 15*time.Second),

		// /api/answer limits
		MaxQuestionBytes: int64(getenvInt("ASKGRACE_MAX_QUESTION_BYTES", 8<<10)),
		RateLimitBurst:   getenvInt("ASKGRACE_RATE_LIMIT_BURST", 5),
		RateLimitPerMin:  getenvInt("ASKGRACE_RATE_LIMIT_PER_MIN", 10),

		// Access restrictions
		AllowedOrigins: splitAndTrim(getenv("ASKGRACE_ALLOWED_ORIGINS", "*")),
		AllowedCIDRS:   splitAndTrim(getenv("ASKGRACE_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("ASKGRACE_TRUST_PROXY", false),
	}

	// Log config only in debug mode with the credential redacted
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.CompletionAPIKey != "" {
			cfgCopy.CompletionAPIKey = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// loadDotEnv applies a dotenv file. A missing file is normal in production.
func loadDotEnv(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[WARN] ignoring unreadable env file %s: %v", path, err)
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// firstEnv returns the first non-empty value among keys.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
