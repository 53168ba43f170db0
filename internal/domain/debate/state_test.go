package debate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roster() []AdvisorInfo {
	return []AdvisorInfo{{Name: "The Sage", Archetype: "sage", Icon: "🦉"}}
}

func TestMachineAcceptsWellFormedSequence(t *testing.T) {
	m := NewMachine()
	sequence := []Event{
		{Type: EventDebateID, DebateID: "dbt_1"},
		{Type: EventAdvisors, Advisors: roster()},
		{Type: EventRoundStart, Round: 1},
		{Type: EventAdvisorStart, Advisor: "The Sage", Round: 1},
		{Type: EventText, Advisor: "The Sage", Content: "a", Round: 1},
		{Type: EventText, Advisor: "The Sage", Content: "b", Round: 1},
		{Type: EventAdvisorEnd, Advisor: "The Sage", Round: 1},
		{Type: EventRoundEnd, Round: 1},
		{Type: EventRoundStart, Round: 2},
		{Type: EventAdvisorStart, Advisor: "The Sage", Round: 2},
		{Type: EventAdvisorEnd, Advisor: "The Sage", Round: 2},
		{Type: EventRoundEnd, Round: 2},
		{Type: EventVerdictStart},
		{Type: EventVerdict, Content: "Consensus Points: none"},
		{Type: EventVerdictEnd},
		{Type: EventDone},
	}
	for i, e := range sequence {
		require.NoError(t, m.Check(e), "event %d (%s)", i, e.Type)
	}
	assert.True(t, m.Finished())
}

func TestMachineRejectsViolations(t *testing.T) {
	tests := []struct {
		name   string
		prefix []Event
		bad    Event
	}{
		{
			name:   "first event must be debate_id",
			prefix: nil,
			bad:    Event{Type: EventAdvisors, Advisors: roster()},
		},
		{
			name:   "duplicate debate_id",
			prefix: []Event{{Type: EventDebateID, DebateID: "dbt_1"}},
			bad:    Event{Type: EventDebateID, DebateID: "dbt_2"},
		},
		{
			name: "round numbers must be sequential",
			prefix: []Event{
				{Type: EventDebateID, DebateID: "dbt_1"},
				{Type: EventAdvisors, Advisors: roster()},
			},
			bad: Event{Type: EventRoundStart, Round: 2},
		},
		{
			name: "text outside advisor turn",
			prefix: []Event{
				{Type: EventDebateID, DebateID: "dbt_1"},
				{Type: EventAdvisors, Advisors: roster()},
				{Type: EventRoundStart, Round: 1},
			},
			bad: Event{Type: EventText, Advisor: "The Sage", Content: "x", Round: 1},
		},
		{
			name: "text attributed to wrong advisor",
			prefix: []Event{
				{Type: EventDebateID, DebateID: "dbt_1"},
				{Type: EventAdvisors, Advisors: roster()},
				{Type: EventRoundStart, Round: 1},
				{Type: EventAdvisorStart, Advisor: "The Sage", Round: 1},
			},
			bad: Event{Type: EventText, Advisor: "The Contrarian", Content: "x", Round: 1},
		},
		{
			name: "round_end with open advisor turn",
			prefix: []Event{
				{Type: EventDebateID, DebateID: "dbt_1"},
				{Type: EventAdvisors, Advisors: roster()},
				{Type: EventRoundStart, Round: 1},
				{Type: EventAdvisorStart, Advisor: "The Sage", Round: 1},
			},
			bad: Event{Type: EventRoundEnd, Round: 1},
		},
		{
			name: "verdict before any round",
			prefix: []Event{
				{Type: EventDebateID, DebateID: "dbt_1"},
				{Type: EventAdvisors, Advisors: roster()},
			},
			bad: Event{Type: EventVerdictStart},
		},
		{
			name: "done before verdict",
			prefix: []Event{
				{Type: EventDebateID, DebateID: "dbt_1"},
				{Type: EventAdvisors, Advisors: roster()},
				{Type: EventRoundStart, Round: 1},
				{Type: EventAdvisorStart, Advisor: "The Sage", Round: 1},
				{Type: EventAdvisorEnd, Advisor: "The Sage", Round: 1},
				{Type: EventRoundEnd, Round: 1},
			},
			bad: Event{Type: EventDone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			for i, e := range tt.prefix {
				require.NoError(t, m.Check(e), "prefix event %d", i)
			}
			assert.Error(t, m.Check(tt.bad))
		})
	}
}
