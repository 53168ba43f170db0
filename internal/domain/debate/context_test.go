package debate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTranscript() []Response {
	return []Response{
		{Round: 1, Position: 0, AdvisorName: "The Visionary", Content: "go for it"},
		{Round: 1, Position: 1, AdvisorName: "The Guardian", Content: "too risky"},
		{Round: 2, Position: 0, AdvisorName: "The Visionary", Content: "risk is the point"},
		{Round: 2, Position: 1, AdvisorName: "The Guardian", Content: "hedge first"},
	}
}

func TestPriorRoundsContextExcludesCurrentAndLaterRounds(t *testing.T) {
	ctx := PriorRoundsContext(sampleTranscript(), 2)

	assert.Contains(t, ctx, "Round 1 - The Visionary: go for it")
	assert.Contains(t, ctx, "Round 1 - The Guardian: too risky")
	assert.NotContains(t, ctx, "risk is the point")
	assert.NotContains(t, ctx, "hedge first")
}

func TestPriorRoundsContextPreservesOrder(t *testing.T) {
	ctx := PriorRoundsContext(sampleTranscript(), 3)

	first := strings.Index(ctx, "go for it")
	second := strings.Index(ctx, "too risky")
	third := strings.Index(ctx, "risk is the point")
	assert.True(t, first < second && second < third)
}

func TestPriorRoundsContextEmptyForFirstRound(t *testing.T) {
	assert.Empty(t, PriorRoundsContext(sampleTranscript(), 1))
	assert.Empty(t, PriorRoundsContext(nil, 2))
}

func TestVerdictTranscriptFormat(t *testing.T) {
	out := VerdictTranscript(sampleTranscript()[:2])

	assert.Equal(t, "The Visionary (Round 1): go for it\n\nThe Guardian (Round 1): too risky", out)
}
