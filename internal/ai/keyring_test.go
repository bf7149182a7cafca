package ai_test

import (
	"testing"

	"github.com/marketfeed/trendyol-sync/internal/ai"
	"github.com/stretchr/testify/assert"
)

func TestKeyRingRoundRobin(t *testing.T) {
	t.Parallel()

	ring := ai.NewKeyRing([]string{"a", "b", "c"})

	assert.Equal(t, "a", ring.Next())
	assert.Equal(t, "b", ring.Next())
	assert.Equal(t, "c", ring.Next())
	assert.Equal(t, "a", ring.Next())
}

func TestKeyRingEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ai.NewKeyRing(nil).Next())
}
