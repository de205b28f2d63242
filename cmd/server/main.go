package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/RDias-31/presenteperfeito/config"
	httpDelivery "github.com/RDias-31/presenteperfeito/internal/delivery/http"
	"github.com/RDias-31/presenteperfeito/internal/domain"
	"github.com/RDias-31/presenteperfeito/internal/infrastructure/gemini"
	"github.com/RDias-31/presenteperfeito/internal/infrastructure/ledger"
	"github.com/RDias-31/presenteperfeito/internal/infrastructure/logging"
	"github.com/RDias-31/presenteperfeito/internal/infrastructure/metrics"
	"github.com/RDias-31/presenteperfeito/internal/infrastructure/openai"
	"github.com/RDias-31/presenteperfeito/internal/infrastructure/session"
	"github.com/RDias-31/presenteperfeito/internal/usecase"
)

const version = "1.0.0"

// ledgerStore is what the server needs from a credits backend
type ledgerStore interface {
	domain.CreditsLedger
	httpDelivery.Pinger
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{
		ServiceName: "presenteperfeito-backend",
		Level:       logging.ParseLevel(cfg.Log.Level),
		Format:      cfg.Log.Format,
	})

	logger.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("ledger", cfg.Ledger.Type).
		Str("provider", cfg.LLM.Provider).
		Msg("starting Presente Perfeito backend")

	ctx := context.Background()

	// Metrics
	registry := metrics.NewRegistry()
	generationMetrics := metrics.NewGenerationMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	// Infrastructure
	provider, err := newProvider(ctx, cfg.LLM, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create completion provider")
	}
	if provider == nil {
		logger.Warn().
			Str("provider", cfg.LLM.Provider).
			Msg("no LLM API key configured, suggestion requests will fail")
	}

	store, closeStore, err := newLedger(ctx, cfg.Ledger, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open credits ledger")
	}
	defer closeStore()

	verifier, err := session.NewVerifier(session.Config{
		Secret:   cfg.Auth.SupabaseJWTSecret,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session verifier")
	}

	// Usecase layer
	suggestionService := usecase.NewSuggestionService(
		provider,
		generationMetrics,
		logger,
		usecase.SuggestionServiceConfig{
			APIKey:      cfg.LLM.APIKey,
			Temperature: cfg.LLM.Temperature,
		},
	)

	quizFlow := usecase.NewQuizFlow(store, suggestionService, logger, usecase.QuizFlowConfig{
		InitialCredits: cfg.Ledger.InitialCredits,
	})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(suggestionService, quizFlow, store, httpDelivery.ServiceInfo{
		Version:            version,
		Provider:           cfg.LLM.Provider,
		ProviderConfigured: suggestionService.Configured(),
	})

	router := httpDelivery.SetupRouter(cfg, handler, httpDelivery.RouterOptions{
		Logger:         logger,
		Verifier:       verifier,
		Requests:       httpMetrics,
		MetricsHandler: metrics.Handler(registry),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.RequestTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server stopped")
}

// newProvider returns nil when no API key is set
func newProvider(ctx context.Context, cfg config.LLMConfig, logger zerolog.Logger) (domain.CompletionProvider, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}

	switch cfg.Provider {
	case "gemini":
		return gemini.NewClient(ctx, gemini.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		}, logger)
	default:
		return openai.NewClient(openai.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		}, logger), nil
	}
}

func newLedger(ctx context.Context, cfg config.LedgerConfig, logger zerolog.Logger) (ledgerStore, func(), error) {
	if cfg.Type != "postgres" {
		logger.Warn().Msg("using in-memory credits ledger, balances are lost on restart")
		return ledger.NewMemoryStore(), func() {}, nil
	}

	db, err := ledger.Open(cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql database: %w", err)
	}
	closeDB := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}

	if cfg.AutoMigrate {
		if err := ledger.Migrate(ctx, sqlDB, ledger.DialectPostgres, logger); err != nil {
			closeDB()
			return nil, nil, err
		}
	}

	return ledger.NewPostgresStore(db), closeDB, nil
}
