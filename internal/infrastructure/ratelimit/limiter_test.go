package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowWithinLimit(t *testing.T) {
	l := New(3, time.Hour)

	assert.True(t, l.Allow("user-1"))
	assert.True(t, l.Allow("user-1"))
	assert.True(t, l.Allow("user-1"))
	assert.False(t, l.Allow("user-1"))

	// other keys are unaffected
	assert.True(t, l.Allow("user-2"))
}

func TestAllowSlidingWindow(t *testing.T) {
	current := time.Now()
	l := New(2, time.Minute)
	l.now = func() time.Time { return current }

	assert.True(t, l.Allow("user-1"))
	assert.True(t, l.Allow("user-1"))
	assert.False(t, l.Allow("user-1"))

	// old hits fall out of the window
	current = current.Add(61 * time.Second)
	assert.True(t, l.Allow("user-1"))
}

func TestRemaining(t *testing.T) {
	l := New(2, time.Minute)

	assert.Equal(t, 2, l.Remaining("user-1"))
	l.Allow("user-1")
	assert.Equal(t, 1, l.Remaining("user-1"))
	l.Allow("user-1")
	assert.Equal(t, 0, l.Remaining("user-1"))
}

func TestIdleKeysAreSwept(t *testing.T) {
	current := time.Now()
	l := New(5, time.Minute)
	l.now = func() time.Time { return current }

	l.Allow("user-1")
	l.Allow("user-2")
	assert.Len(t, l.hits, 2)

	// both keys go quiet; a later caller triggers the sweep
	current = current.Add(2 * time.Minute)
	l.Allow("user-3")

	assert.Len(t, l.hits, 1)
	assert.Contains(t, l.hits, "user-3")
}

func TestZeroLimitDisables(t *testing.T) {
	l := New(0, time.Minute)
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("user-1"))
	}
}
