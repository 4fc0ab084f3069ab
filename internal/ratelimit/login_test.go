package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilLimiterAllowsEverything(t *testing.T) {
	var limiter *LoginLimiter

	allowed, err := limiter.Allow(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, allowed)

	assert.NoError(t, limiter.Reset(context.Background(), "203.0.113.7"))
}

func TestLimiterWithoutRedisAllowsEverything(t *testing.T) {
	limiter := NewLoginLimiter(nil, 5, 0)

	allowed, err := limiter.Allow(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, allowed)
}
