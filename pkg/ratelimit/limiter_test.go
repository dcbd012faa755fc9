package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestLimiterStore_Allow(t *testing.T) {
	store := NewLimiterStore(rate.Limit(0), 2)

	for i := 0; i < 2; i++ {
		ok, err := store.Allow("10.0.0.1")
		assert.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := store.Allow("10.0.0.1")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Allow("10.0.0.2")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiterStore_GetLimiterReusesBucket(t *testing.T) {
	store := NewLimiterStore(rate.Limit(1), 1)
	assert.Same(t, store.GetLimiter("a"), store.GetLimiter("a"))
	assert.NotSame(t, store.GetLimiter("a"), store.GetLimiter("b"))
}
