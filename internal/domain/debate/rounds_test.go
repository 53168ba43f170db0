package debate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRounds(t *testing.T) {
	specs := BuildRounds(3)
	require.Len(t, specs, 3)
	assert.Equal(t, RoundKindOpening, specs[0].Kind)
	assert.Equal(t, RoundKindRebuttal, specs[1].Kind)
	assert.Equal(t, RoundKindClosing, specs[2].Kind)
	for i, s := range specs {
		assert.Equal(t, i+1, s.Number)
	}

	two := BuildRounds(2)
	require.Len(t, two, 2)
	assert.Equal(t, RoundKindOpening, two[0].Kind)
	assert.Equal(t, RoundKindClosing, two[1].Kind)

	one := BuildRounds(1)
	require.Len(t, one, 1)
	assert.Equal(t, RoundKindOpening, one[0].Kind)

	// nonsense input clamps to a single round
	assert.Len(t, BuildRounds(0), 1)
}

func TestUserPromptShaping(t *testing.T) {
	specs := BuildRounds(3)

	opening := specs[0].UserPrompt("Should I raise prices?", "")
	assert.Contains(t, opening, "Should I raise prices?")
	assert.Contains(t, opening, "opening statement")
	assert.NotContains(t, opening, "PREVIOUS ROUNDS")

	rebuttal := specs[1].UserPrompt("Should I raise prices?", "Round 1 - The Sage: think first")
	assert.Contains(t, rebuttal, "round 2")
	assert.Contains(t, rebuttal, "PREVIOUS ROUNDS:\nRound 1 - The Sage: think first")

	closing := specs[2].UserPrompt("Should I raise prices?", "ctx")
	assert.Contains(t, closing, "falsifiable prediction")
	assert.Contains(t, closing, "PREVIOUS ROUNDS")
}
