package handlers

import (
	"github.com/rs/zerolog"

	"clarus-server/services/council-api/internal/config"
	"clarus-server/services/council-api/internal/domain/advisor"
	"clarus-server/services/council-api/internal/domain/debate"
	"clarus-server/services/council-api/internal/infrastructure/ratelimit"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Council   *CouncilHandler
	Boardroom *BoardroomHandler
	Debate    *DebateHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	roster *advisor.RosterService,
	councils advisor.Repository,
	debates debate.Repository,
	orchestrator *debate.Orchestrator,
	limiter *ratelimit.Limiter,
	cfg *config.Config,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Council:   NewCouncilHandler(roster, councils, orchestrator, limiter, cfg, log),
		Boardroom: NewBoardroomHandler(orchestrator, limiter, cfg, log),
		Debate:    NewDebateHandler(debates, log),
	}
}
