package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/askgrace/internal/domain"
	"github.com/MrSnakeDoc/askgrace/internal/logger"
	"github.com/MrSnakeDoc/askgrace/internal/verse"
)

// Answerer runs the question pipeline.
type Answerer interface {
	GetAnswer(ctx context.Context, question string) (domain.Answer, error)
}

// VerseLookup runs the verse pipeline.
type VerseLookup interface {
	Lookup(ctx context.Context, input string) (verse.Passage, error)
}

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Answers Answerer
	Verses  VerseLookup
	Catalog *domain.Catalog // curated tables, read-only after startup

	CompletionModel      string // reported on /infra
	CompletionConfigured bool   // false when no API key was supplied
	VerseAPIURL          string // reported on /infra

	MaxQuestionBytes int64    // cap on the /api/answer request body
	AllowedCIDRS     []string // IPs allowed to access readyz/infra endpoints
	TrustProxy       bool     // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateLimitBurst   int      // /api/answer bucket size per client IP
	RateLimitPerMin  int      // /api/answer refill rate per client IP
}
