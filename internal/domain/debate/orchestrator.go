package debate

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"clarus-server/services/council-api/internal/domain/llm"
	"clarus-server/services/council-api/internal/utils/idgen"
	"clarus-server/services/council-api/internal/utils/platformerrors"
)

const (
	debateIDPrefix = "dbt"
	debateIDLength = 24

	verdictTemperature = 0.5

	verdictSystemPrompt = "You are the Verdict, the impartial synthesizer of a multi-advisor debate. " +
		"You do not take sides; you weigh what was actually argued. " +
		"Given the transcript and the original question, output exactly four labeled sections, each starting on its own line:\n" +
		"Consensus Points: where the advisors agree.\n" +
		"Key Disagreements: where they diverge and why it matters.\n" +
		"Recommended Action: the single course of action best supported by the debate.\n" +
		"Confidence Level: a percentage from 0-100% with one sentence of justification."
)

// Options fixes the completion budgets for a debate. Advisor turns are
// deliberately short; the verdict gets a higher ceiling because it has
// to summarize everything.
type Options struct {
	AdvisorMaxTokens int
	VerdictMaxTokens int
	VerdictModel     string
}

// Orchestrator drives one debate end to end: sequential rounds over the
// roster, one completion call per advisor turn, best-effort persistence
// of each turn, then verdict synthesis. Advisors never run concurrently
// with each other; the whole debate is one cooperative stream.
type Orchestrator struct {
	provider llm.Provider
	store    Repository
	opts     Options
	logger   zerolog.Logger
}

func NewOrchestrator(provider llm.Provider, store Repository, opts Options, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		store:    store,
		opts:     opts,
		logger:   logger.With().Str("component", "orchestrator").Logger(),
	}
}

// Run creates the session, executes every round over the roster in
// order and synthesizes the verdict, pushing the full event sequence
// through the emitter. A completion failure aborts the whole debate:
// the stream terminates without its sentinel and the session stays
// in_progress. A failed Response write is logged and swallowed; the
// debate continues on the in-memory transcript.
func (o *Orchestrator) Run(ctx context.Context, d *Debate, roster []Participant, emitter Emitter) error {
	if len(roster) == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"cannot run a debate with an empty roster", nil, "")
	}

	if d.PublicID == "" {
		id, err := idgen.GenerateSecureID(debateIDPrefix, debateIDLength)
		if err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
				"failed to generate debate id", err, "")
		}
		d.PublicID = id
	}
	d.Status = StatusInProgress
	if err := o.store.CreateDebate(ctx, d); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create debate session")
	}

	machine := NewMachine()
	emit := func(e Event) error {
		if err := machine.Check(e); err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
				"debate stream corrupted", err, "")
		}
		if err := emitter.Emit(e); err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
				"failed to emit debate event", err, "")
		}
		return nil
	}

	if err := emit(Event{Type: EventDebateID, DebateID: d.PublicID}); err != nil {
		return err
	}

	infos := make([]AdvisorInfo, 0, len(roster))
	for _, p := range roster {
		infos = append(infos, AdvisorInfo{Name: p.Name, Archetype: p.Archetype, Icon: p.Icon})
	}
	if err := emit(Event{Type: EventAdvisors, Advisors: infos}); err != nil {
		return err
	}

	// in-memory transcript survives persistence failures
	var transcript []Response

	for _, round := range BuildRounds(d.Rounds) {
		if err := emit(Event{Type: EventRoundStart, Round: round.Number}); err != nil {
			return err
		}

		priorContext := ""
		if round.Number > 1 {
			priorContext = o.priorContext(ctx, d, transcript, round.Number)
		}

		for _, p := range roster {
			// the completion call opens before advisor_start so a dead
			// backend kills the stream at a turn boundary
			stream, err := o.provider.StreamCompletion(ctx, llm.CompletionRequest{
				SystemPrompt: p.SystemPrompt,
				UserPrompt:   round.UserPrompt(d.Question, priorContext),
				Model:        p.Model,
				MaxTokens:    o.opts.AdvisorMaxTokens,
				Temperature:  round.Temperature,
			})
			if err != nil {
				return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
					fmt.Sprintf("completion failed for advisor %s in round %d", p.Name, round.Number), err, "",
					map[string]any{"debate_id": d.PublicID, "advisor": p.Name, "round": round.Number})
			}

			if err := emit(Event{Type: EventAdvisorStart, Advisor: p.Name, Round: round.Number}); err != nil {
				stream.Close()
				return err
			}

			content, err := o.pumpStream(stream, func(chunk string) error {
				return emit(Event{Type: EventText, Advisor: p.Name, Content: chunk, Round: round.Number})
			})
			if err != nil {
				return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
					fmt.Sprintf("completion failed for advisor %s in round %d", p.Name, round.Number), err, "",
					map[string]any{"debate_id": d.PublicID, "advisor": p.Name, "round": round.Number})
			}

			if err := emit(Event{Type: EventAdvisorEnd, Advisor: p.Name, Round: round.Number}); err != nil {
				return err
			}

			resp := Response{
				DebateID:    d.ID,
				AdvisorName: p.Name,
				Archetype:   p.Archetype,
				Round:       round.Number,
				Position:    p.Position,
				Content:     content,
				Model:       p.Model,
			}
			transcript = append(transcript, resp)
			if err := o.store.AppendResponse(ctx, &resp); err != nil {
				o.logger.Warn().
					Err(err).
					Str("debate_id", d.PublicID).
					Str("advisor", p.Name).
					Int("round", round.Number).
					Msg("failed to persist response, continuing with in-memory transcript")
			}
		}

		if err := emit(Event{Type: EventRoundEnd, Round: round.Number}); err != nil {
			return err
		}
	}

	verdict, err := o.synthesize(ctx, d, transcript, emit)
	if err != nil {
		return err
	}

	d.Verdict = verdict
	d.Status = StatusCompleted
	if err := o.store.MarkCompleted(ctx, d.ID, verdict); err != nil {
		o.logger.Error().
			Err(err).
			Str("debate_id", d.PublicID).
			Msg("failed to mark debate completed")
	}

	return emit(Event{Type: EventDone})
}

// priorContext prefers the store's transcript slice so history and
// context agree, falling back to the in-memory copy when the read
// fails or when the store is missing turns that a failed append never
// delivered. Only a lost write is allowed to shrink the history view;
// the prompt context always carries every earlier turn.
func (o *Orchestrator) priorContext(ctx context.Context, d *Debate, inMemory []Response, round int) string {
	persisted, err := o.store.GetTranscriptBeforeRound(ctx, d.ID, round)
	if err != nil {
		o.logger.Warn().
			Err(err).
			Str("debate_id", d.PublicID).
			Int("round", round).
			Msg("failed to read transcript slice, using in-memory transcript")
		return PriorRoundsContext(inMemory, round)
	}
	if len(persisted) < len(inMemory) {
		o.logger.Warn().
			Str("debate_id", d.PublicID).
			Int("round", round).
			Int("persisted", len(persisted)).
			Int("in_memory", len(inMemory)).
			Msg("store transcript is missing turns, using in-memory transcript")
		return PriorRoundsContext(inMemory, round)
	}
	return PriorRoundsContext(persisted, round)
}

func (o *Orchestrator) synthesize(ctx context.Context, d *Debate, inMemory []Response, emit func(Event) error) (string, error) {
	transcript, err := o.store.GetTranscript(ctx, d.ID)
	if err != nil || len(transcript) < len(inMemory) {
		transcript = inMemory
	}

	if err := emit(Event{Type: EventVerdictStart}); err != nil {
		return "", err
	}

	userPrompt := fmt.Sprintf("Original question: %s\n\nDebate transcript:\n\n%s", d.Question, VerdictTranscript(transcript))
	verdict, err := o.streamTurn(ctx, llm.CompletionRequest{
		SystemPrompt: verdictSystemPrompt,
		UserPrompt:   userPrompt,
		Model:        o.opts.VerdictModel,
		MaxTokens:    o.opts.VerdictMaxTokens,
		Temperature:  verdictTemperature,
	}, func(chunk string) error {
		return emit(Event{Type: EventVerdict, Content: chunk})
	})
	if err != nil {
		return "", platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"verdict synthesis failed", err, "", map[string]any{"debate_id": d.PublicID})
	}

	if err := emit(Event{Type: EventVerdictEnd}); err != nil {
		return "", err
	}
	return verdict, nil
}

// streamTurn runs one completion call to the end, forwarding each chunk
// and returning the accumulated text.
func (o *Orchestrator) streamTurn(ctx context.Context, req llm.CompletionRequest, onChunk func(string) error) (string, error) {
	stream, err := o.provider.StreamCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	return o.pumpStream(stream, onChunk)
}

// pumpStream drains a completion stream, forwarding each chunk.
func (o *Orchestrator) pumpStream(stream llm.Stream, onChunk func(string) error) (string, error) {
	defer stream.Close()

	var full strings.Builder
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if chunk == "" {
			continue
		}
		full.WriteString(chunk)
		if err := onChunk(chunk); err != nil {
			return "", err
		}
	}
	return full.String(), nil
}
