package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"clarus-server/services/council-api/internal/domain/debate"
	"clarus-server/services/council-api/internal/interfaces/httpserver/dto"
)

// DebateHandler serves debate history views.
type DebateHandler struct {
	debates debate.Repository
	log     zerolog.Logger
}

func NewDebateHandler(debates debate.Repository, log zerolog.Logger) *DebateHandler {
	return &DebateHandler{
		debates: debates,
		log:     log.With().Str("handler", "debate").Logger(),
	}
}

// List handles GET /v1/debates.
//
//	@Summary	List the user's past debates
//	@Tags		debates
//	@Produce	json
//	@Param		userId	query	string	false	"user id when auth is disabled"
//	@Success	200	{object}	map[string][]dto.DebateDTO
//	@Router		/v1/debates [get]
func (h *DebateHandler) List(c *gin.Context) {
	userID := resolveUserID(c, c.Query("userId"))
	if userID == "" {
		respondBadRequest(c, "userId is required")
		return
	}

	debates, err := h.debates.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]dto.DebateDTO, 0, len(debates))
	for _, d := range debates {
		out = append(out, dto.FromDebate(d, nil))
	}
	c.JSON(http.StatusOK, gin.H{"debates": out})
}

// Get handles GET /v1/debates/:debate_id with the full transcript. A
// turn lost to a swallowed persistence failure is simply absent here.
//
//	@Summary	Fetch one debate with its transcript
//	@Tags		debates
//	@Produce	json
//	@Param		debate_id	path	string	true	"debate public id"
//	@Success	200	{object}	dto.DebateDTO
//	@Failure	404	{object}	map[string]string
//	@Router		/v1/debates/{debate_id} [get]
func (h *DebateHandler) Get(c *gin.Context) {
	userID := resolveUserID(c, c.Query("userId"))
	if userID == "" {
		respondBadRequest(c, "userId is required")
		return
	}

	d, err := h.debates.FindByPublicID(c.Request.Context(), userID, c.Param("debate_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if d == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "debate not found"})
		return
	}

	transcript, err := h.debates.GetTranscript(c.Request.Context(), d.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDebate(d, transcript))
}
