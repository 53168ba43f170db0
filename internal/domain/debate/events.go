package debate

type EventType string

const (
	EventDebateID     EventType = "debate_id"
	EventAdvisors     EventType = "advisors"
	EventRoundStart   EventType = "round_start"
	EventAdvisorStart EventType = "advisor_start"
	EventText         EventType = "text"
	EventAdvisorEnd   EventType = "advisor_end"
	EventRoundEnd     EventType = "round_end"
	EventVerdictStart EventType = "verdict_start"
	EventVerdict      EventType = "verdict"
	EventVerdictEnd   EventType = "verdict_end"

	// EventDone maps to the bare terminal sentinel on the wire rather
	// than a JSON object.
	EventDone EventType = "done"
)

// AdvisorInfo is the roster metadata pushed once per debate so clients
// can render seats before any text arrives.
type AdvisorInfo struct {
	Name      string `json:"name"`
	Archetype string `json:"archetype"`
	Icon      string `json:"icon"`
}

// Event is one multiplexer frame. Fields are populated per type; the
// zero values are omitted from the wire form.
type Event struct {
	Type     EventType     `json:"type"`
	DebateID string        `json:"debate_id,omitempty"`
	Round    int           `json:"round,omitempty"`
	Advisor  string        `json:"advisor,omitempty"`
	Content  string        `json:"content,omitempty"`
	Advisors []AdvisorInfo `json:"advisors,omitempty"`
}

// Emitter receives the event sequence for one debate. Implementations
// decide the framing; a returned error aborts the debate.
type Emitter interface {
	Emit(event Event) error
}
