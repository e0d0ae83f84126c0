package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteWithRetrySuccess(t *testing.T) {
	calls := 0
	result, err := completeWithRetry(context.Background(), 3, func() (string, error) {
		calls++
		return "summary", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "summary", result)
	assert.Equal(t, 1, calls)
}

func TestCompleteWithRetryZeroBudgetStillCalls(t *testing.T) {
	// a zero retry budget must still attempt once, never report a
	// nil-error success with an empty result
	calls := 0
	result, err := completeWithRetry(context.Background(), 0, func() (string, error) {
		calls++
		return "", errors.New("provider unavailable")
	})
	assert.Error(t, err)
	assert.Empty(t, result)
	assert.Equal(t, 1, calls)

	calls = 0
	result, err = completeWithRetry(context.Background(), 0, func() (string, error) {
		calls++
		return "summary", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "summary", result)
	assert.Equal(t, 1, calls)
}

func TestCompleteWithRetryExhaustionReturnsLastError(t *testing.T) {
	calls := 0
	first := errors.New("first failure")
	last := errors.New("last failure")
	_, err := completeWithRetry(context.Background(), 2, func() (string, error) {
		calls++
		if calls == 1 {
			return "", first
		}
		return "", last
	})
	assert.Equal(t, last, err)
	assert.Equal(t, 2, calls)
}

func TestIsRateLimitError(t *testing.T) {
	assert.False(t, IsRateLimitError(nil))
	assert.False(t, IsRateLimitError(errors.New("connection refused")))
	assert.True(t, IsRateLimitError(errors.New("googleapi: Error 429: too many requests")))
	assert.True(t, IsRateLimitError(errors.New("RESOURCE_EXHAUSTED")))
	assert.True(t, IsRateLimitError(errors.New("Quota exceeded for requests per minute")))
}
