package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"clarus-server/services/council-api/internal/domain/debate"
	"clarus-server/services/council-api/internal/infrastructure/metrics"
	"clarus-server/services/council-api/internal/infrastructure/observability"
	"clarus-server/services/council-api/internal/utils/platformerrors"
)

const doneSentinel = "[DONE]"

// sseEmitter frames debate events as SSE data lines. Every event is a
// JSON object on one `data: ` line; the terminal event becomes the bare
// [DONE] sentinel.
type sseEmitter struct {
	writer  http.ResponseWriter
	flusher http.Flusher
	log     zerolog.Logger
	mu      sync.Mutex
}

func newSSEEmitter(w http.ResponseWriter, flusher http.Flusher, log zerolog.Logger) *sseEmitter {
	return &sseEmitter{
		writer:  w,
		flusher: flusher,
		log:     log,
	}
}

var _ debate.Emitter = (*sseEmitter)(nil)

func (o *sseEmitter) Emit(event debate.Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if event.Type == debate.EventDone {
		return o.writeLine(doneSentinel)
	}

	data, err := json.Marshal(event)
	if err != nil {
		o.log.Error().Err(err).Str("event", string(event.Type)).Msg("marshal SSE payload")
		return err
	}
	return o.writeLine(string(data))
}

func (o *sseEmitter) writeLine(payload string) error {
	if _, err := fmt.Fprintf(o.writer, "data: %s\n\n", payload); err != nil {
		return err
	}
	o.flusher.Flush()
	return nil
}

// runDebateStream owns the SSE response for the life of the debate.
// Once headers go out there is no error envelope left; a failure shows
// up to the client as a stream that ends without its sentinel.
func runDebateStream(
	c *gin.Context,
	ctx context.Context,
	orchestrator *debate.Orchestrator,
	d *debate.Debate,
	roster []debate.Participant,
	flusher http.Flusher,
	source string,
	log zerolog.Logger,
) {
	setupSSEHeaders(c)

	metrics.ActiveDebates.Inc()
	defer metrics.ActiveDebates.Dec()
	start := time.Now()

	emitter := newSSEEmitter(c.Writer, flusher, log)
	if err := orchestrator.Run(ctx, d, roster, emitter); err != nil {
		observability.RecordError(ctx, err)
		metrics.RecordDebate(source, "failed", time.Since(start))
		platformerrors.LogError(log, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "debate stream failed"))
		return
	}
	metrics.RecordDebate(source, "completed", time.Since(start))
	log.Info().
		Str("debate_id", d.PublicID).
		Str("source", source).
		Dur("duration", time.Since(start)).
		Msg("debate completed")
}

func setupSSEHeaders(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Writer.WriteHeaderNow()
}
