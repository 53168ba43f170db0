package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"clarus-server/services/council-api/internal/config"
	"clarus-server/services/council-api/internal/domain/advisor"
	"clarus-server/services/council-api/internal/domain/debate"
	"clarus-server/services/council-api/internal/infrastructure/metrics"
	"clarus-server/services/council-api/internal/infrastructure/observability"
	"clarus-server/services/council-api/internal/infrastructure/ratelimit"
	"clarus-server/services/council-api/internal/interfaces/httpserver/dto"
	"clarus-server/services/council-api/internal/utils/platformerrors"
)

const councilDebateRounds = 3

// CouncilHandler serves council CRUD plus the council debate stream.
type CouncilHandler struct {
	roster       *advisor.RosterService
	councils     advisor.Repository
	orchestrator *debate.Orchestrator
	limiter      *ratelimit.Limiter
	cfg          *config.Config
	log          zerolog.Logger
}

func NewCouncilHandler(
	roster *advisor.RosterService,
	councils advisor.Repository,
	orchestrator *debate.Orchestrator,
	limiter *ratelimit.Limiter,
	cfg *config.Config,
	log zerolog.Logger,
) *CouncilHandler {
	return &CouncilHandler{
		roster:       roster,
		councils:     councils,
		orchestrator: orchestrator,
		limiter:      limiter,
		cfg:          cfg,
		log:          log.With().Str("handler", "council").Logger(),
	}
}

// Create handles POST /v1/councils.
//
//	@Summary	Create a custom council
//	@Tags		councils
//	@Accept		json
//	@Produce	json
//	@Param		request	body	dto.CreateCouncilRequest	true	"council definition"
//	@Success	201	{object}	dto.CouncilDTO
//	@Failure	400	{object}	map[string]string
//	@Router		/v1/councils [post]
func (h *CouncilHandler) Create(c *gin.Context) {
	var req dto.CreateCouncilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	userID := resolveUserID(c, req.UserID)
	if userID == "" {
		respondBadRequest(c, "userId is required")
		return
	}

	specs := make([]advisor.AdvisorSpec, 0, len(req.Advisors))
	for _, s := range req.Advisors {
		specs = append(specs, s.ToAdvisorSpec())
	}

	council, err := h.roster.CreateCouncil(c.Request.Context(), userID, req.Name, specs)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromCouncil(council))
}

// List handles GET /v1/councils.
//
//	@Summary	List the user's councils
//	@Tags		councils
//	@Produce	json
//	@Param		userId	query	string	false	"user id when auth is disabled"
//	@Success	200	{object}	map[string][]dto.CouncilDTO
//	@Router		/v1/councils [get]
func (h *CouncilHandler) List(c *gin.Context) {
	userID := resolveUserID(c, c.Query("userId"))
	if userID == "" {
		respondBadRequest(c, "userId is required")
		return
	}

	councils, err := h.councils.ListCouncilsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]dto.CouncilDTO, 0, len(councils))
	for _, council := range councils {
		out = append(out, dto.FromCouncil(council))
	}
	c.JSON(http.StatusOK, gin.H{"councils": out})
}

// Get handles GET /v1/councils/:council_id.
//
//	@Summary	Fetch one council with its advisors
//	@Tags		councils
//	@Produce	json
//	@Param		council_id	path	string	true	"council public id"
//	@Success	200	{object}	dto.CouncilDTO
//	@Failure	404	{object}	map[string]string
//	@Router		/v1/councils/{council_id} [get]
func (h *CouncilHandler) Get(c *gin.Context) {
	userID := resolveUserID(c, c.Query("userId"))
	if userID == "" {
		respondBadRequest(c, "userId is required")
		return
	}

	council, err := h.councils.FindCouncilByPublicID(c.Request.Context(), userID, c.Param("council_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if council == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "council not found"})
		return
	}
	c.JSON(http.StatusOK, dto.FromCouncil(council))
}

// Quick handles POST /v1/council/quick. It resolves a roster from the
// question and returns the created council synchronously; the debate
// itself is a separate call.
//
//	@Summary	Auto-build a council from a question
//	@Tags		councils
//	@Accept		json
//	@Produce	json
//	@Param		request	body	dto.QuickCouncilRequest	true	"question"
//	@Success	201	{object}	dto.CouncilDTO
//	@Failure	400	{object}	map[string]string
//	@Router		/v1/council/quick [post]
func (h *CouncilHandler) Quick(c *gin.Context) {
	var req dto.QuickCouncilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	userID := resolveUserID(c, req.UserID)
	if userID == "" {
		respondBadRequest(c, "userId is required")
		return
	}

	council, err := h.roster.BuildQuickCouncil(c.Request.Context(), userID, req.Question)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromCouncil(council))
}

// Debate handles POST /v1/council/debate. The response is one SSE
// stream covering every round and the verdict.
//
//	@Summary	Run a council debate as an SSE stream
//	@Tags		councils
//	@Accept		json
//	@Produce	text/event-stream
//	@Param		request	body	dto.DebateRequest	true	"debate request"
//	@Success	200	{string}	string	"SSE event stream"
//	@Failure	400	{object}	map[string]string
//	@Failure	429	{object}	map[string]string
//	@Router		/v1/council/debate [post]
func (h *CouncilHandler) Debate(c *gin.Context) {
	var req dto.DebateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	userID := resolveUserID(c, req.UserID)
	if userID == "" {
		respondBadRequest(c, "userId is required")
		return
	}

	if !h.limiter.Allow(userID) {
		metrics.RateLimitedTotal.Inc()
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "debate rate limit exceeded, try again later"})
		return
	}

	ctx, span := observability.StartSpan(c.Request.Context(), h.cfg.ServiceName, "council.debate")
	defer span.End()
	observability.AddSpanAttributes(ctx,
		attribute.String("council.id", req.CouncilID),
	)

	council, err := h.roster.ResolveCouncil(ctx, userID, req.CouncilID)
	if err != nil {
		observability.RecordError(ctx, err)
		// an unusable council is a client error here, not a missing page
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			respondBadRequest(c, "No advisors found for council "+req.CouncilID)
			return
		}
		respondError(c, h.log, err)
		return
	}

	if err := h.councils.IncrementUsage(ctx, council.ID); err != nil {
		h.log.Warn().Err(err).Str("council_id", council.PublicID).Msg("failed to increment council usage")
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		respondError(c, h.log, platformerrors.NewError(ctx, platformerrors.LayerHandler,
			platformerrors.ErrorTypeInternal, "streaming unsupported by connection", nil, ""))
		return
	}

	d := &debate.Debate{
		UserID:    userID,
		CouncilID: &council.ID,
		Question:  req.Question,
		ThreadID:  req.ThreadID,
		Rounds:    councilDebateRounds,
	}

	runDebateStream(c, ctx, h.orchestrator, d, participantsFromCouncil(council), flusher, "council", h.log)
}
