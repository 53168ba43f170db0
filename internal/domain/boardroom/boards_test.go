package boardroom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	board, ok := Lookup("startup")
	require.True(t, ok)
	assert.Equal(t, "Startup Board", board.Name)
	assert.Equal(t, 3, board.Rounds)
	assert.Len(t, board.Members, 3)

	_, ok = Lookup("imaginary")
	assert.False(t, ok)
}

func TestAllBoardsAreWellFormed(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)

	for _, b := range all {
		assert.NotEmpty(t, b.Type)
		assert.NotEmpty(t, b.Name)
		assert.Greater(t, b.Rounds, 0)
		require.NotEmpty(t, b.Members, "board %s", b.Type)
		for _, m := range b.Members {
			assert.NotEmpty(t, m.Name, "board %s", b.Type)
			assert.NotEmpty(t, m.Role, "board %s", b.Type)
			assert.NotEmpty(t, m.Model, "board %s member %s", b.Type, m.Name)
			assert.Contains(t, m.SystemPrompt, "150 words", "board %s member %s", b.Type, m.Name)
		}
	}
}

func TestParticipantsPreserveSeatingOrder(t *testing.T) {
	board, ok := Lookup("product")
	require.True(t, ok)

	parts := board.Participants()
	require.Len(t, parts, len(board.Members))
	for i, p := range parts {
		assert.Equal(t, i, p.Position)
		assert.Equal(t, board.Members[i].Name, p.Name)
		assert.Equal(t, board.Members[i].Role, p.Archetype)
		assert.NotEmpty(t, p.SystemPrompt)
	}
}
