//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"clarus-server/services/council-api/internal/config"
	"clarus-server/services/council-api/internal/domain/advisor"
	"clarus-server/services/council-api/internal/domain/debate"
	"clarus-server/services/council-api/internal/domain/llm"
	"clarus-server/services/council-api/internal/infrastructure/auth"
	"clarus-server/services/council-api/internal/infrastructure/completion"
	"clarus-server/services/council-api/internal/infrastructure/database"
	"clarus-server/services/council-api/internal/infrastructure/logger"
	"clarus-server/services/council-api/internal/infrastructure/ratelimit"
	councilrepo "clarus-server/services/council-api/internal/infrastructure/repository/council"
	debaterepo "clarus-server/services/council-api/internal/infrastructure/repository/debate"
	"clarus-server/services/council-api/internal/interfaces/httpserver"
	"clarus-server/services/council-api/internal/interfaces/httpserver/handlers"
)

var councilSet = wire.NewSet(
	councilrepo.NewPostgresRepository,
	wire.Bind(new(advisor.Repository), new(*councilrepo.PostgresRepository)),
	debaterepo.NewPostgresRepository,
	wire.Bind(new(debate.Repository), new(*debaterepo.PostgresRepository)),
	completion.NewClient,
	wire.Bind(new(llm.Provider), new(*completion.Client)),
	newRosterService,
	newOrchestrator,
	newRateLimiter,
	handlers.NewProvider,
)

// BuildApplication demonstrates how to assemble the council service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		newAuthValidator,
		councilSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}

func newRosterService(repo advisor.Repository, cfg *config.Config, log zerolog.Logger) *advisor.RosterService {
	return advisor.NewRosterService(repo, advisor.ModelTiers{
		Standard: cfg.AdvisorModelStandard,
		Advanced: cfg.AdvisorModelAdvanced,
		Premium:  cfg.AdvisorModelPremium,
	}, log)
}

func newOrchestrator(provider llm.Provider, store debate.Repository, cfg *config.Config, log zerolog.Logger) *debate.Orchestrator {
	return debate.NewOrchestrator(provider, store, debate.Options{
		AdvisorMaxTokens: cfg.AdvisorMaxTokens,
		VerdictMaxTokens: cfg.VerdictMaxTokens,
		VerdictModel:     cfg.VerdictModel,
	}, log)
}

func newRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.DebateRateLimit, cfg.DebateRateWindow)
}
