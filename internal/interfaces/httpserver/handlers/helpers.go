package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"clarus-server/services/council-api/internal/domain/advisor"
	"clarus-server/services/council-api/internal/domain/debate"
	"clarus-server/services/council-api/internal/infrastructure/auth"
	"clarus-server/services/council-api/internal/utils/platformerrors"
)

func extractSubject(c *gin.Context) string {
	if v, ok := c.Get(auth.UserIDKey); ok {
		if sub, ok := v.(string); ok {
			return sub
		}
	}
	return ""
}

// resolveUserID prefers the authenticated subject over the body field,
// so a forged userId cannot read someone else's councils when auth is
// on. With auth disabled the body field is all there is.
func resolveUserID(c *gin.Context, bodyUserID string) string {
	if sub := extractSubject(c); sub != "" {
		return sub
	}
	return bodyUserID
}

func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var perr *platformerrors.PlatformError
	if errors.As(err, &perr) {
		platformerrors.LogError(log, perr)
		c.JSON(platformerrors.ErrorTypeToHTTPStatus(perr.Type), gin.H{"error": perr.Message})
		return
	}
	log.Error().Err(err).Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// participantsFromCouncil maps persisted advisors into debate seats.
func participantsFromCouncil(council *advisor.Council) []debate.Participant {
	out := make([]debate.Participant, 0, len(council.Advisors))
	for _, a := range council.Advisors {
		_, icon := advisor.Profile(a.Archetype)
		out = append(out, debate.Participant{
			Name:         a.Name,
			Archetype:    string(a.Archetype),
			Icon:         icon,
			Model:        a.Model,
			SystemPrompt: a.SystemPrompt,
			Position:     a.Position,
		})
	}
	return out
}
