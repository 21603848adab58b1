package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/askgrace/internal/answer"
	"github.com/MrSnakeDoc/askgrace/internal/completion"
	"github.com/MrSnakeDoc/askgrace/internal/config"
	"github.com/MrSnakeDoc/askgrace/internal/domain"
	"github.com/MrSnakeDoc/askgrace/internal/httpserver"
	"github.com/MrSnakeDoc/askgrace/internal/httpserver/deps"
	"github.com/MrSnakeDoc/askgrace/internal/logger"
	"github.com/MrSnakeDoc/askgrace/internal/response"
	"github.com/MrSnakeDoc/askgrace/internal/sources/catalog"
	"github.com/MrSnakeDoc/askgrace/internal/verse"
	"github.com/MrSnakeDoc/askgrace/internal/version"
)

type App struct {
	cfg    *config.Config
	logger logger.Logger
	server *httpserver.Server
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.PrettyLog,
		File:   cfg.LogFile,
	})

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	loggerClient.Info("catalog loaded",
		logger.String("source", catalog.NewLoader(cfg.CatalogFile).Source()),
		logger.Int("books", len(cat.Books())),
		logger.Int("sources", len(cat.Sources())))

	validator, err := response.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("compile response schema: %w", err)
	}

	if cfg.CompletionAPIKey == "" {
		loggerClient.Warn("no completion API key configured, questions will fail upstream")
	}
	completer := completion.New(completion.Config{
		APIKey:  cfg.CompletionAPIKey,
		BaseURL: cfg.CompletionBaseURL,
		Model:   cfg.CompletionModel,
		Timeout: cfg.CompletionTimeout,
	}, completion.SystemPrompt(cat), loggerClient.With(logger.String("component", "completion")))

	answers := answer.NewService(
		completer,
		response.NewExtractor(loggerClient.With(logger.String("component", "extractor"))),
		validator,
		domain.NewResolver(cat),
		loggerClient.With(logger.String("component", "answer")),
	)

	verses := verse.NewService(
		verse.NewFetcher(cfg.VerseAPIURL, cfg.VerseTimeout),
		loggerClient.With(logger.String("component", "verse")),
	)

	// Dependencies passed to routes.
	d := deps.Deps{
		Logger:               loggerClient,
		StartTime:            time.Now(),
		Version:              version.Version,
		Commit:               version.Commit,
		BuildDate:            version.BuildDate,
		GoVersion:            version.GoVersion,
		Answers:              answers,
		Verses:               verses,
		Catalog:              cat,
		CompletionModel:      completer.Model(),
		CompletionConfigured: cfg.CompletionAPIKey != "",
		VerseAPIURL:          cfg.VerseAPIURL,
		MaxQuestionBytes:     cfg.MaxQuestionBytes,
		AllowedCIDRS:         cfg.AllowedCIDRS,
		TrustProxy:           cfg.TrustProxy,
		RateLimitBurst:       cfg.RateLimitBurst,
		RateLimitPerMin:      cfg.RateLimitPerMin,
	}

	return &App{
		cfg:    cfg,
		logger: loggerClient,
		server: httpserver.New(cfg, loggerClient, d),
	}, nil
}

func (a *App) Run() error {
	defer func() { _ = a.logger.Sync() }()

	a.logger.Infof("Starting %s on %s", version.String(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("askgrace stopped cleanly")
	return nil
}
