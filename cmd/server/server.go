package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"

	"clarus-server/services/council-api/internal/config"
	"clarus-server/services/council-api/internal/domain/advisor"
	"clarus-server/services/council-api/internal/domain/debate"
	"clarus-server/services/council-api/internal/infrastructure/auth"
	"clarus-server/services/council-api/internal/infrastructure/completion"
	"clarus-server/services/council-api/internal/infrastructure/database"
	"clarus-server/services/council-api/internal/infrastructure/logger"
	"clarus-server/services/council-api/internal/infrastructure/observability"
	"clarus-server/services/council-api/internal/infrastructure/ratelimit"
	councilrepo "clarus-server/services/council-api/internal/infrastructure/repository/council"
	debaterepo "clarus-server/services/council-api/internal/infrastructure/repository/debate"
	"clarus-server/services/council-api/internal/interfaces/httpserver"
	"clarus-server/services/council-api/internal/interfaces/httpserver/handlers"
)

// @title Council API
// @version 1.0
// @description Orchestrates multi-advisor debates with streaming rounds, persisted transcripts, and verdict synthesis.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	councilRepository := councilrepo.NewPostgresRepository(db)
	debateRepository := debaterepo.NewPostgresRepository(db)

	rosterService := advisor.NewRosterService(councilRepository, advisor.ModelTiers{
		Standard: cfg.AdvisorModelStandard,
		Advanced: cfg.AdvisorModelAdvanced,
		Premium:  cfg.AdvisorModelPremium,
	}, log)

	completionClient := completion.NewClient(cfg, log)
	orchestrator := debate.NewOrchestrator(completionClient, debateRepository, debate.Options{
		AdvisorMaxTokens: cfg.AdvisorMaxTokens,
		VerdictMaxTokens: cfg.VerdictMaxTokens,
		VerdictModel:     cfg.VerdictModel,
	}, log)

	limiter := ratelimit.New(cfg.DebateRateLimit, cfg.DebateRateWindow)

	handlerProvider := handlers.NewProvider(
		rosterService,
		councilRepository,
		debateRepository,
		orchestrator,
		limiter,
		cfg,
		log,
	)

	httpServer := httpserver.New(cfg, log, handlerProvider, authValidator)
	app := NewApplication(httpServer, log)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return app.Start(groupCtx)
	})
	group.Go(func() error {
		return runMetricsServer(groupCtx, cfg, log)
	})

	if err := group.Wait(); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

// runMetricsServer exposes the Prometheus registry on its own listener so
// scrapes never contend with long-lived debate streams.
func runMetricsServer(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    cfg.MetricsAddr(),
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("metrics server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
