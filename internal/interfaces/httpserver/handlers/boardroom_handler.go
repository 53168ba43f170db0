package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"clarus-server/services/council-api/internal/config"
	"clarus-server/services/council-api/internal/domain/boardroom"
	"clarus-server/services/council-api/internal/domain/debate"
	"clarus-server/services/council-api/internal/infrastructure/metrics"
	"clarus-server/services/council-api/internal/infrastructure/observability"
	"clarus-server/services/council-api/internal/infrastructure/ratelimit"
	"clarus-server/services/council-api/internal/interfaces/httpserver/dto"
	"clarus-server/services/council-api/internal/utils/platformerrors"
)

// BoardroomHandler serves the preset-board catalog and board debates.
type BoardroomHandler struct {
	orchestrator *debate.Orchestrator
	limiter      *ratelimit.Limiter
	cfg          *config.Config
	log          zerolog.Logger
}

func NewBoardroomHandler(
	orchestrator *debate.Orchestrator,
	limiter *ratelimit.Limiter,
	cfg *config.Config,
	log zerolog.Logger,
) *BoardroomHandler {
	return &BoardroomHandler{
		orchestrator: orchestrator,
		limiter:      limiter,
		cfg:          cfg,
		log:          log.With().Str("handler", "boardroom").Logger(),
	}
}

// ListBoards handles GET /v1/boardroom/boards.
//
//	@Summary	List the preset boards
//	@Tags		boardroom
//	@Produce	json
//	@Success	200	{object}	map[string][]boardroom.Board
//	@Router		/v1/boardroom/boards [get]
func (h *BoardroomHandler) ListBoards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"boards": boardroom.All()})
}

// Debate handles POST /v1/boardroom/debate as an SSE stream.
//
//	@Summary	Run a preset-board debate as an SSE stream
//	@Tags		boardroom
//	@Accept		json
//	@Produce	text/event-stream
//	@Param		request	body	dto.BoardDebateRequest	true	"debate request"
//	@Success	200	{string}	string	"SSE event stream"
//	@Failure	400	{object}	map[string]string
//	@Failure	429	{object}	map[string]string
//	@Router		/v1/boardroom/debate [post]
func (h *BoardroomHandler) Debate(c *gin.Context) {
	var req dto.BoardDebateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	userID := resolveUserID(c, req.UserID)
	if userID == "" {
		respondBadRequest(c, "userId is required")
		return
	}

	board, ok := boardroom.Lookup(req.BoardType)
	if !ok {
		respondBadRequest(c, "unknown board type "+req.BoardType)
		return
	}

	if !h.limiter.Allow(userID) {
		metrics.RateLimitedTotal.Inc()
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "debate rate limit exceeded, try again later"})
		return
	}

	ctx, span := observability.StartSpan(c.Request.Context(), h.cfg.ServiceName, "boardroom.debate")
	defer span.End()
	observability.AddSpanAttributes(ctx,
		attribute.String("board.type", board.Type),
	)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		respondError(c, h.log, platformerrors.NewError(ctx, platformerrors.LayerHandler,
			platformerrors.ErrorTypeInternal, "streaming unsupported by connection", nil, ""))
		return
	}

	d := &debate.Debate{
		UserID:    userID,
		BoardType: board.Type,
		Question:  req.Question,
		Rounds:    board.Rounds,
	}

	runDebateStream(c, ctx, h.orchestrator, d, board.Participants(), flusher, "boardroom", h.log)
}
