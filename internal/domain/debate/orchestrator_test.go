package debate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarus-server/services/council-api/internal/domain/llm"
	"clarus-server/services/council-api/internal/utils/platformerrors"
)

type scriptedStream struct {
	chunks []string
	idx    int
}

func (s *scriptedStream) Recv() (string, error) {
	if s.idx >= len(s.chunks) {
		return "", io.EOF
	}
	chunk := s.chunks[s.idx]
	s.idx++
	return chunk, nil
}

func (s *scriptedStream) Close() error { return nil }

type fakeProvider struct {
	calls      []llm.CompletionRequest
	failOnCall int
}

func (p *fakeProvider) StreamCompletion(ctx context.Context, req llm.CompletionRequest) (llm.Stream, error) {
	p.calls = append(p.calls, req)
	n := len(p.calls)
	if p.failOnCall == n {
		return nil, errors.New("completion backend unavailable")
	}
	return &scriptedStream{chunks: []string{"turn-", fmt.Sprintf("%d", n)}}, nil
}

func (p *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	stream, err := p.StreamCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	var out string
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return "", err
		}
		out += chunk
	}
}

type fakeStore struct {
	nextID      uint
	debates     map[uint]*Debate
	responses   []Response
	appendErr   error
	appendErrOn int // fail only this append call; 0 fails every one
	appendCalls int
	createErr   error
	markErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{debates: make(map[uint]*Debate)}
}

func (s *fakeStore) CreateDebate(ctx context.Context, d *Debate) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	d.ID = s.nextID
	s.debates[d.ID] = d
	return nil
}

func (s *fakeStore) AppendResponse(ctx context.Context, r *Response) error {
	s.appendCalls++
	if s.appendErr != nil && (s.appendErrOn == 0 || s.appendErrOn == s.appendCalls) {
		return s.appendErr
	}
	r.ID = uint(len(s.responses) + 1)
	s.responses = append(s.responses, *r)
	return nil
}

func (s *fakeStore) GetTranscript(ctx context.Context, debateID uint) ([]Response, error) {
	var out []Response
	for _, r := range s.responses {
		if r.DebateID == debateID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) GetTranscriptBeforeRound(ctx context.Context, debateID uint, round int) ([]Response, error) {
	var out []Response
	for _, r := range s.responses {
		if r.DebateID == debateID && r.Round < round {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) MarkCompleted(ctx context.Context, debateID uint, verdict string) error {
	if s.markErr != nil {
		return s.markErr
	}
	d, ok := s.debates[debateID]
	if !ok {
		return errors.New("debate not found")
	}
	d.Status = StatusCompleted
	d.Verdict = verdict
	return nil
}

func (s *fakeStore) FindByPublicID(ctx context.Context, userID, publicID string) (*Debate, error) {
	for _, d := range s.debates {
		if d.UserID == userID && d.PublicID == publicID {
			return d, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListByUser(ctx context.Context, userID string) ([]*Debate, error) {
	var out []*Debate
	for _, d := range s.debates {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

type recordingEmitter struct {
	events    []Event
	failAfter int
}

func (e *recordingEmitter) Emit(event Event) error {
	if e.failAfter > 0 && len(e.events) >= e.failAfter {
		return errors.New("client gone")
	}
	e.events = append(e.events, event)
	return nil
}

func (e *recordingEmitter) ofType(t EventType) []Event {
	var out []Event
	for _, ev := range e.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func testRoster(n int) []Participant {
	var roster []Participant
	for i := 0; i < n; i++ {
		roster = append(roster, Participant{
			Name:         fmt.Sprintf("Advisor %d", i+1),
			Archetype:    "sage",
			Icon:         "🦉",
			Model:        "gpt-4o-mini",
			SystemPrompt: "You are an advisor.",
			Position:     i,
		})
	}
	return roster
}

func newTestOrchestrator(p llm.Provider, s Repository) *Orchestrator {
	return NewOrchestrator(p, s, Options{
		AdvisorMaxTokens: 400,
		VerdictMaxTokens: 1200,
		VerdictModel:     "gpt-4o",
	}, zerolog.Nop())
}

func TestRunHappyPath(t *testing.T) {
	provider := &fakeProvider{}
	store := newFakeStore()
	emitter := &recordingEmitter{}
	o := newTestOrchestrator(provider, store)

	d := &Debate{UserID: "user-1", Question: "Should I raise prices 10%?", Rounds: 2}
	require.NoError(t, o.Run(context.Background(), d, testRoster(3), emitter))

	// the recorded sequence replays cleanly through the grammar
	m := NewMachine()
	for i, e := range emitter.events {
		require.NoError(t, m.Check(e), "event %d (%s)", i, e.Type)
	}
	assert.True(t, m.Finished())

	assert.Len(t, emitter.ofType(EventDebateID), 1)
	assert.Len(t, emitter.ofType(EventAdvisors), 1)
	assert.Len(t, emitter.ofType(EventRoundStart), 2)
	assert.Len(t, emitter.ofType(EventAdvisorStart), 6)
	assert.Len(t, emitter.ofType(EventAdvisorEnd), 6)
	assert.Equal(t, EventDone, emitter.events[len(emitter.events)-1].Type)

	// 3 advisors x 2 rounds persisted, plus the verdict on the session
	assert.Len(t, store.responses, 6)
	stored := store.debates[d.ID]
	require.NotNil(t, stored)
	assert.Equal(t, StatusCompleted, stored.Status)
	assert.NotEmpty(t, stored.Verdict)
	assert.Equal(t, stored.Verdict, d.Verdict)

	// 6 advisor turns + 1 verdict call
	assert.Len(t, provider.calls, 7)
	verdictCall := provider.calls[6]
	assert.Equal(t, "gpt-4o", verdictCall.Model)
	assert.Equal(t, 1200, verdictCall.MaxTokens)
	assert.Contains(t, verdictCall.SystemPrompt, "Consensus Points")
	assert.Contains(t, verdictCall.SystemPrompt, "Key Disagreements")
	assert.Contains(t, verdictCall.SystemPrompt, "Recommended Action")
	assert.Contains(t, verdictCall.SystemPrompt, "Confidence Level")
	assert.Contains(t, verdictCall.UserPrompt, "Advisor 1 (Round 1): turn-1")
}

func TestRunCompletionFailureAbortsWholeDebate(t *testing.T) {
	provider := &fakeProvider{failOnCall: 2}
	store := newFakeStore()
	emitter := &recordingEmitter{}
	o := newTestOrchestrator(provider, store)

	d := &Debate{UserID: "user-1", Question: "q", Rounds: 3}
	err := o.Run(context.Background(), d, testRoster(3), emitter)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))

	// stream dies right after advisor 1's turn closes, no sentinel
	last := emitter.events[len(emitter.events)-1]
	assert.Equal(t, EventAdvisorEnd, last.Type)
	assert.Equal(t, "Advisor 1", last.Advisor)
	assert.Empty(t, emitter.ofType(EventDone))
	assert.Empty(t, emitter.ofType(EventVerdictStart))

	// exactly one turn made it to the store, session still open
	assert.Len(t, store.responses, 1)
	assert.Equal(t, StatusInProgress, store.debates[d.ID].Status)
	assert.Empty(t, store.debates[d.ID].Verdict)
}

func TestRunPersistenceFailureIsSwallowed(t *testing.T) {
	provider := &fakeProvider{}
	store := newFakeStore()
	store.appendErr = errors.New("disk full")
	emitter := &recordingEmitter{}
	o := newTestOrchestrator(provider, store)

	d := &Debate{UserID: "user-1", Question: "q", Rounds: 2}
	require.NoError(t, o.Run(context.Background(), d, testRoster(2), emitter))

	assert.Equal(t, EventDone, emitter.events[len(emitter.events)-1].Type)
	assert.Empty(t, store.responses)

	// round 2 context fell back to the in-memory transcript
	round2Call := provider.calls[2]
	assert.Contains(t, round2Call.UserPrompt, "PREVIOUS ROUNDS")
	assert.Contains(t, round2Call.UserPrompt, "Round 1 - Advisor 1: turn-1")
	assert.Contains(t, round2Call.UserPrompt, "Round 1 - Advisor 2: turn-2")
}

func TestRunSingleLostWriteStaysInContext(t *testing.T) {
	provider := &fakeProvider{}
	store := newFakeStore()
	store.appendErr = errors.New("deadlock victim")
	store.appendErrOn = 2 // advisor 2's round-1 turn never reaches the store
	emitter := &recordingEmitter{}
	o := newTestOrchestrator(provider, store)

	d := &Debate{UserID: "user-1", Question: "q", Rounds: 2}
	require.NoError(t, o.Run(context.Background(), d, testRoster(2), emitter))

	// only the lost row is missing from history
	assert.Len(t, store.responses, 3)

	// both round-1 turns still reach every round-2 prompt
	for _, call := range provider.calls[2:4] {
		assert.Contains(t, call.UserPrompt, "Round 1 - Advisor 1: turn-1")
		assert.Contains(t, call.UserPrompt, "Round 1 - Advisor 2: turn-2")
	}

	// and the verdict still sees the full debate
	verdictCall := provider.calls[len(provider.calls)-1]
	assert.Contains(t, verdictCall.UserPrompt, "Advisor 2 (Round 1): turn-2")
	assert.Equal(t, EventDone, emitter.events[len(emitter.events)-1].Type)
}

func TestRunContextContainsOnlyEarlierRounds(t *testing.T) {
	provider := &fakeProvider{}
	store := newFakeStore()
	o := newTestOrchestrator(provider, store)

	d := &Debate{UserID: "user-1", Question: "q", Rounds: 3}
	require.NoError(t, o.Run(context.Background(), d, testRoster(1), emitterDiscard()))

	require.Len(t, provider.calls, 4)
	assert.NotContains(t, provider.calls[0].UserPrompt, "PREVIOUS ROUNDS")

	round2 := provider.calls[1].UserPrompt
	assert.Contains(t, round2, "Round 1 - Advisor 1: turn-1")
	assert.NotContains(t, round2, "turn-2")

	round3 := provider.calls[2].UserPrompt
	assert.Contains(t, round3, "Round 1 - Advisor 1: turn-1")
	assert.Contains(t, round3, "Round 2 - Advisor 1: turn-2")
	assert.NotContains(t, round3, "turn-3")
}

func TestRunEmptyRoster(t *testing.T) {
	provider := &fakeProvider{}
	store := newFakeStore()
	emitter := &recordingEmitter{}
	o := newTestOrchestrator(provider, store)

	err := o.Run(context.Background(), &Debate{UserID: "user-1", Question: "q", Rounds: 3}, nil, emitter)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
	assert.Empty(t, emitter.events)
	assert.Empty(t, store.debates)
}

func TestRunStopsWhenEmitterFails(t *testing.T) {
	provider := &fakeProvider{}
	store := newFakeStore()
	emitter := &recordingEmitter{failAfter: 3}
	o := newTestOrchestrator(provider, store)

	err := o.Run(context.Background(), &Debate{UserID: "user-1", Question: "q", Rounds: 3}, testRoster(3), emitter)
	require.Error(t, err)

	// debate_id, advisors, round_start were delivered; the first
	// advisor turn died mid-stream and no further calls were issued
	assert.Len(t, emitter.events, 3)
	assert.LessOrEqual(t, len(provider.calls), 1)
}

func emitterDiscard() Emitter {
	return &recordingEmitter{}
}
