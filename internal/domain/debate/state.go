package debate

import "fmt"

type streamState int

const (
	stateAwaitingID streamState = iota
	stateAwaitingRoster
	stateBetweenRounds
	stateRoundOpen
	stateAdvisorOpen
	stateVerdictOpen
	stateVerdictClosed
	stateDone
)

// Machine enforces the event grammar of one debate stream: one
// debate_id, one advisors, then strictly ordered round blocks, one
// verdict block, and the terminal sentinel. The orchestrator runs every
// event through it before emitting, so a sequencing bug surfaces as an
// error instead of a malformed stream.
type Machine struct {
	state          streamState
	round          int
	currentAdvisor string
}

func NewMachine() *Machine {
	return &Machine{state: stateAwaitingID}
}

func (m *Machine) Check(e Event) error {
	switch e.Type {
	case EventDebateID:
		if m.state != stateAwaitingID {
			return m.violation(e, "debate_id must be the first event")
		}
		if e.DebateID == "" {
			return m.violation(e, "debate_id event carries no id")
		}
		m.state = stateAwaitingRoster

	case EventAdvisors:
		if m.state != stateAwaitingRoster {
			return m.violation(e, "advisors must directly follow debate_id")
		}
		if len(e.Advisors) == 0 {
			return m.violation(e, "advisors event carries an empty roster")
		}
		m.state = stateBetweenRounds

	case EventRoundStart:
		if m.state != stateBetweenRounds {
			return m.violation(e, "round_start outside round boundary")
		}
		if e.Round != m.round+1 {
			return m.violation(e, fmt.Sprintf("expected round %d", m.round+1))
		}
		m.round = e.Round
		m.state = stateRoundOpen

	case EventAdvisorStart:
		if m.state != stateRoundOpen {
			return m.violation(e, "advisor_start outside an open round")
		}
		if e.Round != m.round {
			return m.violation(e, fmt.Sprintf("advisor_start for round %d inside round %d", e.Round, m.round))
		}
		m.currentAdvisor = e.Advisor
		m.state = stateAdvisorOpen

	case EventText:
		if m.state != stateAdvisorOpen {
			return m.violation(e, "text outside an open advisor turn")
		}
		if e.Advisor != m.currentAdvisor {
			return m.violation(e, fmt.Sprintf("text attributed to %q during %q's turn", e.Advisor, m.currentAdvisor))
		}

	case EventAdvisorEnd:
		if m.state != stateAdvisorOpen || e.Advisor != m.currentAdvisor {
			return m.violation(e, "advisor_end without matching advisor_start")
		}
		m.currentAdvisor = ""
		m.state = stateRoundOpen

	case EventRoundEnd:
		if m.state != stateRoundOpen {
			return m.violation(e, "round_end outside an open round")
		}
		if e.Round != m.round {
			return m.violation(e, fmt.Sprintf("round_end for round %d inside round %d", e.Round, m.round))
		}
		m.state = stateBetweenRounds

	case EventVerdictStart:
		if m.state != stateBetweenRounds || m.round == 0 {
			return m.violation(e, "verdict_start before all rounds completed")
		}
		m.state = stateVerdictOpen

	case EventVerdict:
		if m.state != stateVerdictOpen {
			return m.violation(e, "verdict chunk outside verdict block")
		}

	case EventVerdictEnd:
		if m.state != stateVerdictOpen {
			return m.violation(e, "verdict_end without verdict_start")
		}
		m.state = stateVerdictClosed

	case EventDone:
		if m.state != stateVerdictClosed {
			return m.violation(e, "terminal sentinel before verdict block closed")
		}
		m.state = stateDone

	default:
		return m.violation(e, "unknown event type")
	}
	return nil
}

// Finished reports whether the stream reached its terminal sentinel.
func (m *Machine) Finished() bool {
	return m.state == stateDone
}

func (m *Machine) violation(e Event, reason string) error {
	return fmt.Errorf("event sequence violation on %s: %s", e.Type, reason)
}
